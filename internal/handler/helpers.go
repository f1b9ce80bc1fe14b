package handler

import (
	"errors"
	"net/http"
	"reflect"

	"github.com/Jaycoach/WebApp-LaArtesa-Produccion/internal/apierror"
	"github.com/Jaycoach/WebApp-LaArtesa-Produccion/internal/middleware"
	"github.com/Jaycoach/WebApp-LaArtesa-Produccion/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var validate = validator.New()

func init() {
	// Register decimal.Decimal as a numeric type so that validator tags like
	// min=0, gt=0, required work without panicking ("Bad field type decimal.Decimal").
	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if v, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := v.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
}

// bindAndValidate binds JSON body and runs go-playground/validator tags.
// Returns false and writes the error response if validation fails —
// the caller should return immediately without writing another response.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("JSON invalido: "+err.Error()))
		return false
	}
	if err := validate.Struct(req); err != nil {
		fields := make(map[string]string)
		for _, fe := range err.(validator.ValidationErrors) {
			fields[fe.Field()] = fe.Tag()
		}
		c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(fields))
		return false
	}
	return true
}

// parseUUIDParam parses a :param path segment. Writes the 400 response itself.
func parseUUIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return uuid.Nil, false
	}
	return id, true
}

// usuarioActual extracts the authenticated user's id from the JWT claims.
func usuarioActual(c *gin.Context) *uuid.UUID {
	claims := middleware.GetClaims(c)
	if claims == nil {
		return nil
	}
	id, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil
	}
	return &id
}

// respondError maps the service error taxonomy onto HTTP statuses.
func respondError(c *gin.Context, err error) {
	var notFound *service.NotFoundError
	var precondicion *service.PreconditionError
	var checklist *service.ChecklistIncompletoError
	var configuracion *service.ConfiguracionInvalidaError
	var conflicto *service.ConflictoError

	switch {
	case errors.As(err, &notFound):
		c.JSON(http.StatusNotFound, apierror.New(notFound.Error()))
	case errors.As(err, &precondicion):
		c.JSON(http.StatusBadRequest, apierror.New(precondicion.Error()))
	case errors.As(err, &checklist):
		c.JSON(http.StatusConflict, apierror.WithDatos(checklist.Error(), gin.H{
			"total":       checklist.Total,
			"completados": checklist.Completados,
			"faltantes":   checklist.Faltantes,
		}))
	case errors.As(err, &configuracion):
		c.JSON(http.StatusBadRequest, apierror.New(configuracion.Error()))
	case errors.As(err, &conflicto):
		c.JSON(http.StatusConflict, apierror.New(conflicto.Error()))
	default:
		_ = c.Error(err)
		c.Abort()
	}
}
