package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/stock-ledger/internal/application/auth"
	"github.com/jhoicas/stock-ledger/internal/application/inventory"
	"github.com/jhoicas/stock-ledger/internal/application/usecase"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/infrastructure/memory"
	"github.com/jhoicas/stock-ledger/internal/infrastructure/pdf"
	apphttp "github.com/jhoicas/stock-ledger/internal/interfaces/http"
	"github.com/jhoicas/stock-ledger/pkg/config"
	pkgjwt "github.com/jhoicas/stock-ledger/pkg/jwt"
	"github.com/jhoicas/stock-ledger/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testIssuer    = "stock-ledger-test"
	testUserID    = "00000000-0000-0000-0000-000000000001"
	testBranchID  = "branch-a"
	testExpMin    = 60
	storeSecret   = "s3cr3t"
)

var testLimits = config.InventoryConfig{BulkMaxItems: 3, MaxPageSize: 200}

// server API completa (router real) sobre el Store en memoria.
type server struct {
	app   *fiber.App
	store *memory.Store
}

func newServer(t *testing.T) *server {
	t.Helper()
	st := memory.New()
	balance := inventory.NewBalanceCalculator(st.Ledger(), st.Levels())
	resolver := inventory.NewWarehouseResolver(st.Settings(), st.Warehouses())
	adjust := inventory.NewAdjustStockUseCase(st.TxRunner(), st.Ledger(), st.Products(), resolver, balance, logger.Nop())
	bulk := inventory.NewBulkAdjustStockUseCase(adjust, logger.Nop())
	history := inventory.NewMovementHistoryUseCase(st.Ledger())
	report := inventory.NewStockReportUseCase(balance, pdf.NewMarotoStockReportGenerator())

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		Inventory: apphttp.NewInventoryHandler(adjust, bulk, balance, history, report, testLimits),
		Warehouse: apphttp.NewWarehouseHandler(usecase.NewWarehouseUseCase(st.Warehouses(), st.Settings()), testLimits.MaxPageSize),
		Auth: apphttp.AuthConfig{
			JWTSecret: testJWTSecret,
			JWTIssuer: testIssuer,
			Stores:    auth.NewStoreAuthUseCase(st.Stores()),
		},
	})
	return &server{app: app, store: st}
}

// token genera un Bearer JWT para la sucursal y rol indicados.
func token(t *testing.T, branchID, role string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, testIssuer, pkgjwt.Principal{UserID: testUserID, BranchID: branchID, Role: role}, testExpMin)
	require.NoError(t, err, "debe generarse un token JWT válido")
	return "Bearer " + tok
}

// addStore registra una integración y devuelve su API key.
func (s *server) addStore(t *testing.T, branchID string, active bool) (string, string) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(storeSecret), bcrypt.MinCost)
	require.NoError(t, err)
	id := uuid.New().String()
	s.store.AddStore(&entity.Store{ID: id, Name: "POS", BranchID: branchID, APIKeyHash: string(hash), Active: active})
	return id, id + "." + storeSecret
}

// seedCatalog crea un producto y una bodega activa en testBranchID.
func (s *server) seedCatalog(productID, warehouseID string, minStock int64) {
	s.store.AddProduct(&entity.Product{ID: productID, BranchID: testBranchID, SKU: "SKU-" + productID, Name: "Producto " + productID, MinStock: dec(minStock)})
	s.store.AddWarehouse(&entity.Warehouse{ID: warehouseID, BranchID: testBranchID, Name: warehouseID, Status: entity.WarehouseStatusActive, CreatedAt: time.Now()})
}

func dec(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

type header struct{ key, value string }

func bearer(v string) header { return header{"Authorization", v} }
func apiKey(v string) header { return header{apphttp.HeaderAPIKey, v} }

// do lanza la petición con body JSON opcional y devuelve la respuesta.
func (s *server) do(t *testing.T, method, path string, body any, headers ...header) *http.Response {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, h := range headers {
		req.Header.Set(h.key, h.value)
	}
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}
