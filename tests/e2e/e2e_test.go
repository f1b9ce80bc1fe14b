//go:build integration

package e2e

// e2e_test.go
// End-to-end integration tests using real Postgres + Redis via testcontainers
// and a fake SAP Service Layer.
// Run with: go test -tags integration ./tests/e2e/... -v
//
// These tests:
//   T-E2E-1: SAP sync → checklist → confirmar pesaje (AMASADO unlocked)
//   T-E2E-2: Re-sync is idempotent (groups skipped, no duplicate masas)
//   T-E2E-3: Requests without JWT are rejected
//   T-E2E-4: Operador cannot trigger the SAP sync (supervisor-only)

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Jaycoach/WebApp-LaArtesa-Produccion/internal/config"
	"github.com/Jaycoach/WebApp-LaArtesa-Produccion/internal/infra"
	"github.com/Jaycoach/WebApp-LaArtesa-Produccion/internal/model"
	"github.com/Jaycoach/WebApp-LaArtesa-Produccion/internal/router"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcPostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	tcRedis "github.com/testcontainers/testcontainers-go/modules/redis"
	"golang.org/x/crypto/bcrypt"
)

// ── Helpers ──────────────────────────────────────────────────────────────────

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

func do(t *testing.T, srv *httptest.Server, method, path string, body *bytes.Buffer, token string) *http.Response {
	t.Helper()
	var req *http.Request
	var err error
	if body != nil {
		req, err = http.NewRequest(method, srv.URL+path, body)
	} else {
		req, err = http.NewRequest(method, srv.URL+path, nil)
	}
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	return resp
}

func decodeJSON(t *testing.T, resp *http.Response, dest any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(dest))
}

// fakeServiceLayer imitates the two SAP B1 endpoints the backend touches:
// POST /Login and GET /ProductionOrders.
func fakeServiceLayer(t *testing.T, ordenes []map[string]any) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/Login":
			_ = json.NewEncoder(w).Encode(map[string]string{"SessionId": "e2e-session"})
		case r.Method == http.MethodPost && r.URL.Path == "/Logout":
			w.WriteHeader(http.StatusNoContent)
		case r.Method == http.MethodGet && r.URL.Path == "/ProductionOrders":
			_ = json.NewEncoder(w).Encode(map[string]any{"value": ordenes})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func ordenesDemo() []map[string]any {
	return []map[string]any{
		{
			"DocEntry": 1, "DocNum": 1001,
			"ItemCode": "PT-BAGUETTE", "ProductDescription": "Baguette 250g",
			"PlannedQuantity": 120, "PostingDate": "2025-09-01", "Status": "R",
			"U_TipoMasa": "BLANCA", "U_Gramaje": 250, "U_Presentacion": "UNIDAD",
			"ProductionOrderLines": []map[string]any{
				{"ItemCode": "MP-HARINA", "ItemName": "Harina 000", "PlannedQuantity": 20000, "Warehouse": "01"},
			},
		},
		{
			"DocEntry": 2, "DocNum": 1002,
			"ItemCode": "PT-BOLLO", "ProductDescription": "Bollo 100g",
			"PlannedQuantity": 300, "PostingDate": "2025-09-01", "Status": "R",
			"U_TipoMasa": "BLANCA", "U_Gramaje": 100, "U_Presentacion": "UNIDAD",
			"ProductionOrderLines": []map[string]any{
				{"ItemCode": "MP-HARINA", "ItemName": "Harina 000", "PlannedQuantity": 16000, "Warehouse": "01"},
				{"ItemCode": "MP-SAL", "ItemName": "Sal", "PlannedQuantity": 700, "Warehouse": "01"},
			},
		},
	}
}

// ── Test Suite Setup ─────────────────────────────────────────────────────────

type testEnv struct {
	server *httptest.Server
	token  string // admin JWT
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()

	// Start Postgres container
	pgC, err := tcPostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		tcPostgres.WithDatabase("artesa_test"),
		tcPostgres.WithUsername("artesa"),
		tcPostgres.WithPassword("artesa"),
		tcPostgres.BasicWaitStrategies(),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pgC.Terminate(ctx) })

	pgURL, err := pgC.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	// Start Redis container
	rdC, err := tcRedis.RunContainer(ctx,
		testcontainers.WithImage("redis:7-alpine"),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = rdC.Terminate(ctx) })

	rdURL, err := rdC.ConnectionString(ctx)
	require.NoError(t, err)

	// Fake SAP Service Layer
	sapSrv := fakeServiceLayer(t, ordenesDemo())

	cfg := &config.Config{
		Port:               3000,
		Env:                "test",
		WorkerPoolSize:     1,
		JWTSecret:          "test-secret-key",
		JWTExpirationHours: 8,
		JWTRefreshHours:    24,
		DatabaseURL:        pgURL,
		RedisURL:           rdURL,
		SAPURL:             sapSrv.URL,
		SAPCompanyDB:       "SBO_TEST",
		SAPUsername:        "manager",
		SAPPassword:        "manager",
		CorreosEmpaque:     "empaque@e2e.test",
	}

	// Connect DB (runs migrations) + Redis
	db, err := infra.NewDatabase(cfg.DatabaseURL)
	require.NoError(t, err)

	rdb, err := infra.NewRedis(cfg.RedisURL)
	require.NoError(t, err)

	// Seed the BLANCA tipo de masa and an admin user
	require.NoError(t, db.Create(&model.TipoMasaCatalogo{
		TipoMasa: "BLANCA", Nombre: "Masa blanca",
		RequiereFormado: true, TiempoFermentacionEstandarMinutos: 40,
		Activo: true,
	}).Error)

	hash, err := bcrypt.GenerateFromPassword([]byte("artesa2026"), bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, db.Create(&model.Usuario{
		ID:             uuid.New(),
		Username:       "admin.e2e",
		NombreCompleto: "Admin E2E",
		PasswordHash:   string(hash),
		Rol:            "administrador",
		Activo:         true,
	}).Error)

	cb := infra.NewCircuitBreaker(infra.DefaultCBConfig())
	sapClient := infra.NewSAPClient(cfg, cb)

	r := router.New(cfg, db, rdb, sapClient)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	loginResp := do(t, srv, "POST", "/v1/auth/login",
		jsonBody(t, map[string]string{"username": "admin.e2e", "password": "artesa2026"}),
		"",
	)
	require.Equal(t, http.StatusOK, loginResp.StatusCode)
	var loginBody struct {
		AccessToken string `json:"access_token"`
	}
	decodeJSON(t, loginResp, &loginBody)
	require.NotEmpty(t, loginBody.AccessToken)

	return &testEnv{server: srv, token: loginBody.AccessToken}
}

// ── Tests ────────────────────────────────────────────────────────────────────

// T-E2E-1 + T-E2E-2: sync, work the checklist, confirm PESAJE, re-sync.
func TestE2E_SincronizarYPesaje(t *testing.T) {
	env := setupTestEnv(t)

	// 1. Sync the day's orders
	syncResp := do(t, env.server, "POST", "/v1/sap/sincronizar",
		jsonBody(t, map[string]string{"fecha_produccion": "2025-09-01"}), env.token)
	require.Equal(t, http.StatusOK, syncResp.StatusCode)
	var sync struct {
		OrdenesLeidas int `json:"ordenes_leidas"`
		MasasCreadas  int `json:"masas_creadas"`
		Detalle       []struct {
			MasaID     string `json:"masa_id"`
			CodigoMasa string `json:"codigo_masa"`
		} `json:"detalle"`
	}
	decodeJSON(t, syncResp, &sync)
	assert.Equal(t, 2, sync.OrdenesLeidas)
	require.Equal(t, 1, sync.MasasCreadas)
	assert.Equal(t, "MASA-20250901-BLANCA", sync.Detalle[0].CodigoMasa)
	masaID := sync.Detalle[0].MasaID

	// 2. Checklist: flour aggregated across both orders
	checkResp := do(t, env.server, "GET", "/v1/pesaje/"+masaID, nil, env.token)
	require.Equal(t, http.StatusOK, checkResp.StatusCode)
	var checklist struct {
		Total        int  `json:"total"`
		Completo     bool `json:"completo"`
		Ingredientes []struct {
			ID             string `json:"id"`
			CantidadGramos string `json:"cantidad_gramos"`
		} `json:"ingredientes"`
	}
	decodeJSON(t, checkResp, &checklist)
	require.Equal(t, 2, checklist.Total)
	assert.False(t, checklist.Completo)
	assert.Equal(t, "36000", checklist.Ingredientes[0].CantidadGramos)

	// 3. Confirming an incomplete checklist is a conflict
	conflictResp := do(t, env.server, "POST", "/v1/pesaje/"+masaID+"/confirmar", jsonBody(t, map[string]any{}), env.token)
	assert.Equal(t, http.StatusConflict, conflictResp.StatusCode)
	conflictResp.Body.Close()

	// 4. Clear the three flags on every ingredient, in order
	for _, ing := range checklist.Ingredientes {
		path := "/v1/pesaje/" + masaID + "/ingredientes/" + ing.ID
		for _, body := range []map[string]any{
			{"disponible": true},
			{"verificado": true},
			{"pesado": true, "peso_real": 100},
		} {
			resp := do(t, env.server, "PATCH", path, jsonBody(t, body), env.token)
			require.Equal(t, http.StatusOK, resp.StatusCode)
			resp.Body.Close()
		}
	}

	// 5. Confirm PESAJE → AMASADO unlocked
	confirmResp := do(t, env.server, "POST", "/v1/pesaje/"+masaID+"/confirmar", jsonBody(t, map[string]any{}), env.token)
	require.Equal(t, http.StatusOK, confirmResp.StatusCode)
	var confirm struct {
		FaseCompletada  string `json:"fase_completada"`
		FaseDesbloquada string `json:"fase_desbloqueada"`
	}
	decodeJSON(t, confirmResp, &confirm)
	assert.Equal(t, "PESAJE", confirm.FaseCompletada)
	assert.Equal(t, "AMASADO", confirm.FaseDesbloquada)

	// 6. Re-sync: the already-created group is skipped
	resyncResp := do(t, env.server, "POST", "/v1/sap/sincronizar",
		jsonBody(t, map[string]string{"fecha_produccion": "2025-09-01"}), env.token)
	require.Equal(t, http.StatusOK, resyncResp.StatusCode)
	var resync struct {
		MasasCreadas    int `json:"masas_creadas"`
		OrdenesOmitidas int `json:"ordenes_omitidas"`
	}
	decodeJSON(t, resyncResp, &resync)
	assert.Equal(t, 0, resync.MasasCreadas)
	assert.Equal(t, 2, resync.OrdenesOmitidas)
}

// T-E2E-3: no token, no service.
func TestE2E_AuthRequerido(t *testing.T) {
	env := setupTestEnv(t)

	resp := do(t, env.server, "GET", "/v1/masas", nil, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()
}

// T-E2E-4: operadores cannot trigger the SAP sync.
func TestE2E_SincronizarRequiereSupervisor(t *testing.T) {
	env := setupTestEnv(t)

	crearResp := do(t, env.server, "POST", "/v1/usuarios",
		jsonBody(t, map[string]any{
			"username":        "operador.e2e",
			"password":        "1234",
			"nombre_completo": "Operador E2E",
			"rol":             "operador",
		}), env.token)
	require.Equal(t, http.StatusCreated, crearResp.StatusCode)
	crearResp.Body.Close()

	loginResp := do(t, env.server, "POST", "/v1/auth/login",
		jsonBody(t, map[string]string{"username": "operador.e2e", "password": "1234"}), "")
	require.Equal(t, http.StatusOK, loginResp.StatusCode)
	var login struct {
		AccessToken string `json:"access_token"`
	}
	decodeJSON(t, loginResp, &login)

	resp := do(t, env.server, "POST", "/v1/sap/sincronizar",
		jsonBody(t, map[string]string{"fecha_produccion": "2025-09-01"}), login.AccessToken)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()
}
