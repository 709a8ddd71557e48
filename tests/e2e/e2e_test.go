//go:build integration

package e2e

// End-to-end tests against real Postgres + Redis via testcontainers.
// Run with: go test -tags integration ./tests/e2e/... -v

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"gasolinera/internal/config"
	"gasolinera/internal/infra"
	"gasolinera/internal/router"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcPostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	tcRedis "github.com/testcontainers/testcontainers-go/modules/redis"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
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
	req.Header.Set("X-Session-ID", "e2e-session")
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

// ── Test Suite Setup ─────────────────────────────────────────────────────────

type testEnv struct {
	server *httptest.Server
	token  string // admin JWT
	engine *gin.Engine
	db     *gorm.DB
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()

	pgC, err := tcPostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		tcPostgres.WithDatabase("gasolinera_test"),
		tcPostgres.WithUsername("gasolinera"),
		tcPostgres.WithPassword("gasolinera"),
		tcPostgres.BasicWaitStrategies(),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pgC.Terminate(ctx) })

	pgURL, err := pgC.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	rdC, err := tcRedis.RunContainer(ctx,
		testcontainers.WithImage("redis:7-alpine"),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = rdC.Terminate(ctx) })

	rdURL, err := rdC.ConnectionString(ctx)
	require.NoError(t, err)

	cfg := &config.Config{
		Port:               8000,
		Env:                "test",
		JWTSecret:          "test-secret-key",
		JWTExpirationHours: 8,
		DatabaseURL:        pgURL,
		RedisURL:           rdURL,
		WorkerPoolSize:     1,
		ReportStoragePath:  t.TempDir(),
		CarritoTTLMinutes:  5,
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	require.NoError(t, err)
	require.NoError(t, infra.RunMigrations(db))

	rdb, err := infra.NewRedis(cfg.RedisURL)
	require.NoError(t, err)

	// Seed the admin user and the fuel catalog.
	hash, err := bcrypt.GenerateFromPassword([]byte("gasolinera2026"), bcrypt.DefaultCost)
	require.NoError(t, err)
	require.NoError(t, db.Exec(`INSERT INTO usuarios (username, password_hash, rol, activo)
		VALUES ('admin', ?, 'admin', true) ON CONFLICT DO NOTHING`, string(hash)).Error)
	require.NoError(t, db.Exec(`INSERT INTO tipos_combustible (nombre, precio)
		VALUES ('Diesel', 28.50), ('Regular', 30.10), ('Super', 32.40)
		ON CONFLICT DO NOTHING`).Error)

	r, _ := router.New(cfg, db, rdb)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	loginResp := do(t, srv, "POST", "/v1/auth/login",
		jsonBody(t, map[string]string{"username": "admin", "password": "gasolinera2026"}),
		"",
	)
	require.Equal(t, http.StatusOK, loginResp.StatusCode)
	var loginBody struct {
		Token string `json:"token"`
	}
	decodeJSON(t, loginResp, &loginBody)
	require.NotEmpty(t, loginBody.Token)

	return &testEnv{server: srv, token: loginBody.Token, engine: r, db: db}
}

type movimiento struct {
	ID                int64           `json:"id"`
	InventarioInicial decimal.Decimal `json:"inventario_inicial"`
	Entrada           decimal.Decimal `json:"entrada"`
	Salida            decimal.Decimal `json:"salida"`
	InventarioFinal   decimal.Decimal `json:"inventario_final"`
	EsAutomatico      bool            `json:"es_automatico"`
}

func registrarMovimiento(t *testing.T, env *testEnv, tipoID int64, inicial, entrada, salida, fecha string) movimiento {
	t.Helper()
	resp := do(t, env.server, "POST", "/v1/inventario/movimientos",
		jsonBody(t, map[string]any{
			"tipo_combustible_id": tipoID,
			"inventario_inicial":  inicial,
			"entrada":             entrada,
			"salida":              salida,
			"fecha":               fecha,
		}), env.token)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var m movimiento
	decodeJSON(t, resp, &m)
	return m
}

func saldoActual(t *testing.T, env *testEnv, tipoID int64) decimal.Decimal {
	t.Helper()
	resp := do(t, env.server, "GET", fmt.Sprintf("/v1/inventario/saldos/%d", tipoID), nil, env.token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var body struct {
		Saldo decimal.Decimal `json:"saldo"`
	}
	decodeJSON(t, resp, &body)
	return body.Saldo
}

// ── Tests ────────────────────────────────────────────────────────────────────

// Ledger chain survives an edit: the cascade rewrites every later row.
func TestE2E_LedgerEditCascade(t *testing.T) {
	env := setupTestEnv(t)

	primero := registrarMovimiento(t, env, 1, "0", "1000", "0", "2024-01-01")
	segundo := registrarMovimiento(t, env, 1, "1000", "0", "200", "2024-01-02")
	assert.True(t, segundo.InventarioFinal.Equal(decimal.NewFromInt(800)))

	editResp := do(t, env.server, "PUT", fmt.Sprintf("/v1/inventario/movimientos/%d", primero.ID),
		jsonBody(t, map[string]any{
			"tipo_combustible_id": 1,
			"inventario_inicial":  "0",
			"entrada":             "1500",
			"salida":              "0",
			"fecha":               "2024-01-01",
		}), env.token)
	require.Equal(t, http.StatusOK, editResp.StatusCode)
	editResp.Body.Close()

	listResp := do(t, env.server, "GET", "/v1/inventario/movimientos?mes=1&anio=2024", nil, env.token)
	require.Equal(t, http.StatusOK, listResp.StatusCode)
	var lista struct {
		Data []movimiento `json:"data"`
	}
	decodeJSON(t, listResp, &lista)
	require.Len(t, lista.Data, 2)
	// Listing is newest first.
	assert.True(t, lista.Data[0].InventarioInicial.Equal(decimal.NewFromInt(1500)))
	assert.True(t, lista.Data[0].InventarioFinal.Equal(decimal.NewFromInt(1300)))

	assert.True(t, saldoActual(t, env, 1).Equal(decimal.NewFromInt(1300)))
}

// A fuel sale writes its automatic ledger rows in the same transaction.
func TestE2E_VentaCombustibleGeneraMovimientos(t *testing.T) {
	env := setupTestEnv(t)

	registrarMovimiento(t, env, 1, "0", "100", "0", "2024-05-01")

	clienteResp := do(t, env.server, "POST", "/v1/clientes",
		jsonBody(t, map[string]any{"nombre": "Transportes El Norte"}), env.token)
	require.Equal(t, http.StatusCreated, clienteResp.StatusCode)
	var cliente struct {
		ID string `json:"id"`
	}
	decodeJSON(t, clienteResp, &cliente)

	ventaResp := do(t, env.server, "POST", "/v1/ventas-combustible",
		jsonBody(t, map[string]any{
			"cliente_id":  cliente.ID,
			"fecha":       "2024-05-02",
			"metodo_pago": "Efectivo",
			"detalles": []map[string]any{
				{"tipo_combustible_id": 1, "cantidad_litros": "30"},
			},
		}), env.token)
	require.Equal(t, http.StatusCreated, ventaResp.StatusCode)
	var venta struct {
		ID    string          `json:"id"`
		Total decimal.Decimal `json:"total"`
	}
	decodeJSON(t, ventaResp, &venta)
	assert.True(t, venta.Total.Equal(decimal.RequireFromString("855")), "total: %s", venta.Total)

	assert.True(t, saldoActual(t, env, 1).Equal(decimal.NewFromInt(70)))

	// The automatic row rejects manual edits.
	listResp := do(t, env.server, "GET", "/v1/inventario/movimientos?mes=5&anio=2024", nil, env.token)
	var lista struct {
		Data []movimiento `json:"data"`
	}
	decodeJSON(t, listResp, &lista)
	require.Len(t, lista.Data, 2)
	auto := lista.Data[0]
	require.True(t, auto.EsAutomatico)

	editResp := do(t, env.server, "PUT", fmt.Sprintf("/v1/inventario/movimientos/%d", auto.ID),
		jsonBody(t, map[string]any{
			"tipo_combustible_id": 1,
			"inventario_inicial":  "0",
			"entrada":             "0",
			"salida":              "1",
			"fecha":               "2024-05-02",
		}), env.token)
	assert.Equal(t, http.StatusConflict, editResp.StatusCode)
	editResp.Body.Close()

	delResp := do(t, env.server, "DELETE", fmt.Sprintf("/v1/inventario/movimientos/%d", auto.ID), nil, env.token)
	assert.Equal(t, http.StatusConflict, delResp.StatusCode)
	delResp.Body.Close()
}

// If the automatic ledger insert fails mid-transaction, the whole sale rolls
// back: no sale header, no line items, no ledger row. A CHECK constraint on
// salida forces the failure.
func TestE2E_VentaCombustibleRollbackAtomico(t *testing.T) {
	env := setupTestEnv(t)

	registrarMovimiento(t, env, 1, "0", "100", "0", "2024-05-01")

	clienteResp := do(t, env.server, "POST", "/v1/clientes",
		jsonBody(t, map[string]any{"nombre": "Gasolinera Central"}), env.token)
	require.Equal(t, http.StatusCreated, clienteResp.StatusCode)
	var cliente struct {
		ID string `json:"id"`
	}
	decodeJSON(t, clienteResp, &cliente)

	require.NoError(t, env.db.Exec(
		`ALTER TABLE inventario_combustible ADD CONSTRAINT chk_salida_e2e CHECK (salida < 50)`).Error)

	ventaResp := do(t, env.server, "POST", "/v1/ventas-combustible",
		jsonBody(t, map[string]any{
			"cliente_id":  cliente.ID,
			"fecha":       "2024-05-02",
			"metodo_pago": "Efectivo",
			"detalles": []map[string]any{
				{"tipo_combustible_id": 1, "cantidad_litros": "50"},
			},
		}), env.token)
	assert.Equal(t, http.StatusInternalServerError, ventaResp.StatusCode)
	ventaResp.Body.Close()

	var ventas, detalles, movimientos int64
	require.NoError(t, env.db.Raw(`SELECT COUNT(*) FROM ventas_combustible`).Scan(&ventas).Error)
	require.NoError(t, env.db.Raw(`SELECT COUNT(*) FROM detalle_venta_combustible`).Scan(&detalles).Error)
	require.NoError(t, env.db.Raw(`SELECT COUNT(*) FROM inventario_combustible WHERE es_automatico`).Scan(&movimientos).Error)
	assert.Zero(t, ventas)
	assert.Zero(t, detalles)
	assert.Zero(t, movimientos)

	require.NoError(t, env.db.Exec(
		`ALTER TABLE inventario_combustible DROP CONSTRAINT chk_salida_e2e`).Error)

	// Ledger untouched, a smaller sale now succeeds.
	assert.True(t, saldoActual(t, env, 1).Equal(decimal.NewFromInt(100)))
}

// Full product sale cycle: create product, fill the cart, finalize, stock drops.
func TestE2E_VentaProductosConCarrito(t *testing.T) {
	env := setupTestEnv(t)

	prodResp := do(t, env.server, "POST", "/v1/productos",
		jsonBody(t, map[string]any{
			"codigo":   "AC-001",
			"nombre":   "Aceite 15W40",
			"precio":   "45.00",
			"cantidad": 10,
		}), env.token)
	require.Equal(t, http.StatusCreated, prodResp.StatusCode)
	var prod struct {
		ID string `json:"id"`
	}
	decodeJSON(t, prodResp, &prod)

	addResp := do(t, env.server, "POST", "/v1/carrito/items",
		jsonBody(t, map[string]any{"producto_id": prod.ID, "cantidad": 3}), env.token)
	require.Equal(t, http.StatusOK, addResp.StatusCode)
	addResp.Body.Close()

	finResp := do(t, env.server, "POST", "/v1/ventas",
		jsonBody(t, map[string]any{"metodo_pago": "Efectivo"}), env.token)
	require.Equal(t, http.StatusCreated, finResp.StatusCode)
	var venta struct {
		Subtotal decimal.Decimal `json:"subtotal"`
		IVA      decimal.Decimal `json:"iva"`
		Total    decimal.Decimal `json:"total"`
	}
	decodeJSON(t, finResp, &venta)
	assert.True(t, venta.Subtotal.Equal(decimal.NewFromInt(135)))
	assert.True(t, venta.IVA.Equal(decimal.RequireFromString("16.20")), "iva: %s", venta.IVA)
	assert.True(t, venta.Total.Equal(decimal.RequireFromString("151.20")), "total: %s", venta.Total)

	detResp := do(t, env.server, "GET", "/v1/productos/"+prod.ID, nil, env.token)
	require.Equal(t, http.StatusOK, detResp.StatusCode)
	var actualizado struct {
		Cantidad int `json:"cantidad"`
	}
	decodeJSON(t, detResp, &actualizado)
	assert.Equal(t, 7, actualizado.Cantidad)

	carritoResp := do(t, env.server, "GET", "/v1/carrito", nil, env.token)
	require.Equal(t, http.StatusOK, carritoResp.StatusCode)
	var carrito struct {
		Items []any `json:"items"`
	}
	decodeJSON(t, carritoResp, &carrito)
	assert.Empty(t, carrito.Items)
}

// Report download renders a real PDF from live data.
func TestE2E_DescargarReporte(t *testing.T) {
	env := setupTestEnv(t)

	registrarMovimiento(t, env, 1, "0", "500", "0", time.Now().Format("2006-01-02"))

	hoy := time.Now().Format("2006-01-02")
	resp := do(t, env.server, "GET",
		fmt.Sprintf("/v1/reportes/inventario_combustible?fecha_inicio=%s&fecha_fin=%s&formato=pdf", hoy, hoy),
		nil, env.token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	defer resp.Body.Close()
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
}

// Role enforcement: requests without a token are rejected.
func TestE2E_RutasProtegidas(t *testing.T) {
	env := setupTestEnv(t)

	resp := do(t, env.server, "GET", "/v1/inventario/movimientos", nil, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()
}
