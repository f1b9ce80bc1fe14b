package infra

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/Jaycoach/WebApp-LaArtesa-Produccion/internal/config"

	"github.com/shopspring/decimal"
)

// OrdenProduccionSAP is one production order (OWOR) as returned by the SAP
// Business One Service Layer. U_TipoMasa, U_Gramaje and U_Presentacion are
// user-defined fields maintained by planning on each order.
type OrdenProduccionSAP struct {
	DocEntry           int             `json:"DocEntry"`
	DocNum             int             `json:"DocNum"`
	ItemCode           string          `json:"ItemCode"`
	ProductDescription string          `json:"ProductDescription"`
	PlannedQuantity    decimal.Decimal `json:"PlannedQuantity"`
	PostingDate        string          `json:"PostingDate"`
	Status             string          `json:"Status"` // P=Planned R=Released C=Closed L=Canceled
	TipoMasa           string          `json:"U_TipoMasa"`
	GramajeUnitario    decimal.Decimal `json:"U_Gramaje"`
	Presentacion       string          `json:"U_Presentacion"`

	Lineas []LineaOrdenSAP `json:"ProductionOrderLines"`
}

// LineaOrdenSAP is one BOM component line of a production order.
// PlannedQuantity comes in grams for the full order.
type LineaOrdenSAP struct {
	ItemCode        string          `json:"ItemCode"`
	ItemName        string          `json:"ItemName"`
	PlannedQuantity decimal.Decimal `json:"PlannedQuantity"`
	Warehouse       string          `json:"Warehouse"`
}

type sapLoginRequest struct {
	CompanyDB string `json:"CompanyDB"`
	UserName  string `json:"UserName"`
	Password  string `json:"Password"`
}

type sapLoginResponse struct {
	SessionID string `json:"SessionId"`
}

type sapValueEnvelope struct {
	Value []OrdenProduccionSAP `json:"value"`
}

// SAPClient talks to the SAP Business One Service Layer. It logs in lazily,
// caches the B1SESSION cookie and re-authenticates once on a 401.
type SAPClient struct {
	baseURL    string
	companyDB  string
	username   string
	password   string
	httpClient *http.Client
	cb         *CircuitBreaker

	mu        sync.Mutex
	sessionID string
}

func NewSAPClient(cfg *config.Config, cb *CircuitBreaker) *SAPClient {
	transport := &http.Transport{}
	if cfg.Env != "production" {
		// Service Layer instances in dev run with self-signed certificates.
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
	}
	return &SAPClient{
		baseURL:   cfg.SAPURL,
		companyDB: cfg.SAPCompanyDB,
		username:  cfg.SAPUsername,
		password:  cfg.SAPPassword,
		httpClient: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
		cb: cb,
	}
}

// Login opens a Service Layer session and caches the B1SESSION cookie.
func (c *SAPClient) Login(ctx context.Context) error {
	body, err := json.Marshal(sapLoginRequest{
		CompanyDB: c.companyDB,
		UserName:  c.username,
		Password:  c.password,
	})
	if err != nil {
		return fmt.Errorf("sap: marshal login: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/Login", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("sap: create login request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("sap: service layer unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("sap: login returned %d", resp.StatusCode)
	}

	var result sapLoginResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("sap: decode login response: %w", err)
	}

	c.mu.Lock()
	c.sessionID = result.SessionID
	c.mu.Unlock()
	return nil
}

// Logout closes the Service Layer session. Errors are swallowed: the session
// expires server-side anyway.
func (c *SAPClient) Logout(ctx context.Context) {
	c.mu.Lock()
	session := c.sessionID
	c.sessionID = ""
	c.mu.Unlock()
	if session == "" {
		return
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/Logout", nil)
	if err != nil {
		return
	}
	req.Header.Set("Cookie", "B1SESSION="+session)
	if resp, err := c.httpClient.Do(req); err == nil {
		resp.Body.Close()
	}
}

// ObtenerOrdenesProduccion fetches the planned and released production orders
// for one posting date, BOM lines included. Calls go through the circuit
// breaker so a dead Service Layer fast-fails instead of hanging every sync.
func (c *SAPClient) ObtenerOrdenesProduccion(ctx context.Context, fecha string) ([]OrdenProduccionSAP, error) {
	filter := fmt.Sprintf("PostingDate eq '%s' and (Status eq 'P' or Status eq 'R')", fecha)
	path := "/ProductionOrders?$filter=" + filter +
		"&$select=DocEntry,DocNum,ItemCode,ProductDescription,PlannedQuantity,PostingDate,Status,U_TipoMasa,U_Gramaje,U_Presentacion,ProductionOrderLines"

	var envelope sapValueEnvelope
	err := c.cb.Execute(func() error {
		return c.get(ctx, path, &envelope)
	})
	if err != nil {
		return nil, err
	}
	return envelope.Value, nil
}

// get performs an authenticated GET, logging in lazily and retrying exactly
// once when the cached session expired.
func (c *SAPClient) get(ctx context.Context, path string, out interface{}) error {
	c.mu.Lock()
	session := c.sessionID
	c.mu.Unlock()

	if session == "" {
		if err := c.Login(ctx); err != nil {
			return err
		}
	}

	status, err := c.doGet(ctx, path, out)
	if err != nil {
		return err
	}
	if status == http.StatusUnauthorized {
		if err := c.Login(ctx); err != nil {
			return err
		}
		status, err = c.doGet(ctx, path, out)
		if err != nil {
			return err
		}
	}
	if status != http.StatusOK {
		return fmt.Errorf("sap: service layer returned %d for %s", status, path)
	}
	return nil
}

func (c *SAPClient) doGet(ctx context.Context, path string, out interface{}) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return 0, fmt.Errorf("sap: create request: %w", err)
	}
	c.mu.Lock()
	if c.sessionID != "" {
		req.Header.Set("Cookie", "B1SESSION="+c.sessionID)
	}
	c.mu.Unlock()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("sap: service layer unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return resp.StatusCode, nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return resp.StatusCode, fmt.Errorf("sap: decode response: %w", err)
	}
	return resp.StatusCode, nil
}
