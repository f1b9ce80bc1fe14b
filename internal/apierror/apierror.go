// Package apierror provides the standardized error envelope for the API.
// Every 4xx/5xx response goes through this package so clients always see the
// same shape and internal details (SQL, stack traces) never leak.
package apierror

// APIError is the canonical error envelope for all 4xx/5xx HTTP responses.
type APIError struct {
	Detail string `json:"detail"`
	// Datos carries optional structured context, e.g. the list of
	// ingredientes faltantes when a pesaje cannot be confirmed.
	Datos interface{} `json:"datos,omitempty"`
}

func New(msg string) *APIError {
	return &APIError{Detail: msg}
}

// WithDatos attaches structured context to the error envelope.
func WithDatos(msg string, datos interface{}) *APIError {
	return &APIError{Detail: msg, Datos: datos}
}

// ValidationError wraps multiple field errors from DTO validation.
type ValidationError struct {
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields"`
}

func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Detail: "Error de validacion", Fields: fields}
}
