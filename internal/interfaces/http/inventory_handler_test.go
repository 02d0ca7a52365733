package http_test

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-ledger/internal/application/dto"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// POST /api/v1/inventory/stock
// ──────────────────────────────────────────────────────────────────────────────

// [in 10, out 3] y set 5 → old 7, new 5, un movimiento out de 2.
func TestAdjustStock_Set(t *testing.T) {
	s := newServer(t)
	s.seedCatalog("p-1", "wh-1", 0)
	auth := bearer(token(t, testBranchID, "bodeguero"))
	s.do(t, http.MethodPost, "/api/v1/inventory/stock", map[string]any{"product_id": "p-1", "direction": "in", "quantity": 10}, auth).Body.Close()
	s.do(t, http.MethodPost, "/api/v1/inventory/stock", map[string]any{"product_id": "p-1", "direction": "out", "quantity": "3"}, auth).Body.Close()

	resp := s.do(t, http.MethodPost, "/api/v1/inventory/stock", map[string]any{"product_id": "p-1", "direction": "set", "quantity": 5}, auth)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	out := decode[dto.AdjustmentResult](t, resp)
	assert.Equal(t, "SKU-p-1", out.SKU)
	assert.True(t, out.OldQuantity.Equal(dec(7)), "old %s", out.OldQuantity)
	assert.True(t, out.NewQuantity.Equal(dec(5)), "new %s", out.NewQuantity)

	movs := s.store.Movements()
	require.Len(t, movs, 3)
	last := movs[2]
	assert.Equal(t, entity.DirectionOut, last.Direction)
	assert.True(t, last.Quantity.Equal(dec(2)))
	assert.Equal(t, "API stock update", last.Reason)
	assert.Equal(t, testUserID, last.CreatedBy)
}

func TestAdjustStock_Errores(t *testing.T) {
	s := newServer(t)
	s.seedCatalog("p-1", "wh-1", 0)
	auth := bearer(token(t, "", "bodeguero"))

	cases := []struct {
		name   string
		body   map[string]any
		status int
		code   string
	}{
		{"sin identificador", map[string]any{"direction": "in", "quantity": 1}, http.StatusBadRequest, "VALIDATION"},
		{"sin cantidad", map[string]any{"product_id": "p-1", "direction": "in"}, http.StatusBadRequest, "INVALID_INPUT"},
		{"cantidad null", map[string]any{"product_id": "p-1", "direction": "in", "quantity": nil}, http.StatusBadRequest, "INVALID_INPUT"},
		{"dirección inválida", map[string]any{"product_id": "p-1", "direction": "move", "quantity": 1}, http.StatusBadRequest, "INVALID_INPUT"},
		{"set negativo", map[string]any{"product_id": "p-1", "direction": "set", "quantity": -1}, http.StatusBadRequest, "INVALID_INPUT"},
		{"producto inexistente", map[string]any{"product_id": "nope", "direction": "in", "quantity": 1}, http.StatusNotFound, "NOT_FOUND"},
		{"external_id sin integración", map[string]any{"external_id": "ext-1", "direction": "in", "quantity": 1}, http.StatusNotFound, "NOT_FOUND"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := s.do(t, http.MethodPost, "/api/v1/inventory/stock", tc.body, auth)
			assert.Equal(t, tc.status, resp.StatusCode)
			assert.Equal(t, tc.code, decode[dto.ErrorResponse](t, resp).Code)
		})
	}
	assert.Empty(t, s.store.Movements(), "ningún error escribe en el ledger")
}

// Sin ninguna bodega activa en el sistema → 422 antes de escribir.
func TestAdjustStock_SinBodega_Retorna422(t *testing.T) {
	s := newServer(t)
	s.store.AddProduct(&entity.Product{ID: "p-1", SKU: "A"})

	resp := s.do(t, http.MethodPost, "/api/v1/inventory/stock", map[string]any{"product_id": "p-1", "direction": "in", "quantity": 1}, bearer(token(t, "", "admin")))
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Equal(t, "VALIDATION", decode[dto.ErrorResponse](t, resp).Code)
	assert.Empty(t, s.store.Movements())
}

// Un producto de otra sucursal no es visible para el llamador.
func TestAdjustStock_OtraSucursal_Retorna404(t *testing.T) {
	s := newServer(t)
	s.seedCatalog("p-1", "wh-1", 0)

	resp := s.do(t, http.MethodPost, "/api/v1/inventory/stock", map[string]any{"product_id": "p-1", "direction": "in", "quantity": 1}, bearer(token(t, "branch-b", "admin")))
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

// Una integración ajusta por external_id; el movimiento no lleva created_by.
func TestAdjustStock_IntegracionPorExternalID(t *testing.T) {
	s := newServer(t)
	s.seedCatalog("p-1", "wh-1", 0)
	storeID, key := s.addStore(t, testBranchID, true)
	s.store.MapExternalID(entity.ProductStoreMapping{StoreID: storeID, ExternalID: "woo-77", ProductID: "p-1"})

	resp := s.do(t, http.MethodPost, "/api/v1/inventory/stock", map[string]any{"external_id": "woo-77", "direction": "set", "quantity": "4.5"}, apiKey(key))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	out := decode[dto.AdjustmentResult](t, resp)
	assert.Equal(t, "p-1", out.ProductID)
	assert.Equal(t, "4.5", out.NewQuantity.String())

	movs := s.store.Movements()
	require.Len(t, movs, 1)
	assert.Empty(t, movs[0].CreatedBy)
	assert.Equal(t, entity.ReferenceAPISync, movs[0].ReferenceType)
}

// Un fallo del almacén se reporta como 500 STORAGE sin filtrar el detalle.
func TestAdjustStock_FalloDeAlmacen_Retorna500(t *testing.T) {
	s := newServer(t)
	s.seedCatalog("p-1", "wh-1", 0)
	s.store.OnAppend(func(*entity.StockMovement) error { return fmt.Errorf("connection reset by peer") })

	resp := s.do(t, http.MethodPost, "/api/v1/inventory/stock", map[string]any{"product_id": "p-1", "direction": "in", "quantity": 1}, bearer(token(t, "", "admin")))
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	body := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, "STORAGE", body.Code)
	assert.NotContains(t, body.Message, "connection reset")
}

// ──────────────────────────────────────────────────────────────────────────────
// POST /api/v1/inventory/stock/bulk
// ──────────────────────────────────────────────────────────────────────────────

func TestBulkAdjustStock_FallosParciales(t *testing.T) {
	s := newServer(t)
	s.seedCatalog("p-1", "wh-1", 0)
	s.seedCatalog("p-2", "wh-2", 0)

	resp := s.do(t, http.MethodPost, "/api/v1/inventory/stock/bulk", map[string]any{
		"warehouse_id": "wh-2",
		"updates": []map[string]any{
			{"product_id": "p-1", "direction": "set", "quantity": 5},
			{"product_id": "nope", "direction": "set", "quantity": 3},
			{"direction": "set", "quantity": 1},
		},
	}, bearer(token(t, testBranchID, "bodeguero")))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	out := decode[dto.BulkAdjustmentResult](t, resp)

	require.Len(t, out.Success, 1)
	assert.Equal(t, "p-1", out.Success[0].ProductID)
	assert.Equal(t, []dto.BulkFailure{
		{Identifier: "nope", Error: "producto no encontrado"},
		{Identifier: "", Error: "producto no encontrado"},
	}, out.Failed)

	movs := s.store.Movements()
	require.Len(t, movs, 1)
	assert.Equal(t, "wh-2", movs[0].WarehouseID, "hereda la bodega de la petición")
	assert.Equal(t, "API bulk stock update", movs[0].Reason)
}

func TestBulkAdjustStock_Validaciones(t *testing.T) {
	s := newServer(t)
	auth := bearer(token(t, "", "admin"))

	resp := s.do(t, http.MethodPost, "/api/v1/inventory/stock/bulk", map[string]any{"updates": []any{}}, auth)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", decode[dto.ErrorResponse](t, resp).Code)

	items := make([]map[string]any, testLimits.BulkMaxItems+1)
	for i := range items {
		items[i] = map[string]any{"product_id": "p", "direction": "in", "quantity": 1}
	}
	resp = s.do(t, http.MethodPost, "/api/v1/inventory/stock/bulk", map[string]any{"updates": items}, auth)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "BULK_TOO_LARGE", decode[dto.ErrorResponse](t, resp).Code)
}

// ──────────────────────────────────────────────────────────────────────────────
// GET /api/v1/inventory/stock y /stock/report
// ──────────────────────────────────────────────────────────────────────────────

func TestGetStock_StockBajo(t *testing.T) {
	s := newServer(t)
	s.seedCatalog("p-1", "wh-1", 10)
	s.store.AddProduct(&entity.Product{ID: "p-2", BranchID: testBranchID, SKU: "SKU-p-2", MinStock: dec(10)})
	auth := bearer(token(t, testBranchID, "bodeguero"))
	s.do(t, http.MethodPost, "/api/v1/inventory/stock", map[string]any{"product_id": "p-1", "direction": "in", "quantity": 8}, auth).Body.Close()
	s.do(t, http.MethodPost, "/api/v1/inventory/stock", map[string]any{"product_id": "p-2", "direction": "in", "quantity": 12}, auth).Body.Close()

	resp := s.do(t, http.MethodGet, "/api/v1/inventory/stock?low_stock=true", nil, auth)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	out := decode[dto.StockLevelListResponse](t, resp)
	require.Len(t, out.Items, 1)
	assert.Equal(t, "p-1", out.Items[0].ProductID)
	assert.True(t, out.Items[0].CurrentQuantity.Equal(dec(8)))
	assert.Equal(t, dto.PageResponse{Limit: 100, Offset: 0, Total: 1}, out.Page)
}

// limit por encima del máximo se recorta a MaxPageSize.
func TestGetStock_LimitRecortado(t *testing.T) {
	s := newServer(t)

	resp := s.do(t, http.MethodGet, "/api/v1/inventory/stock?limit=10000", nil, bearer(token(t, "", "admin")))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, testLimits.MaxPageSize, decode[dto.StockLevelListResponse](t, resp).Page.Limit)
}

func TestGetStock_SinAuth_Retorna401(t *testing.T) {
	s := newServer(t)
	resp := s.do(t, http.MethodGet, "/api/v1/inventory/stock", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()
}

func TestStockReport_DevuelvePDF(t *testing.T) {
	s := newServer(t)
	s.seedCatalog("p-1", "wh-1", 10)
	auth := bearer(token(t, testBranchID, "admin"))
	s.do(t, http.MethodPost, "/api/v1/inventory/stock", map[string]any{"product_id": "p-1", "direction": "in", "quantity": 3}, auth).Body.Close()

	resp := s.do(t, http.MethodGet, "/api/v1/inventory/stock/report?low_stock=true", nil, auth)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "stock-report.pdf")
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(body, []byte("%PDF")))
}

// ──────────────────────────────────────────────────────────────────────────────
// GET /api/v1/inventory/movements
// ──────────────────────────────────────────────────────────────────────────────

func TestGetMovements_FiltrosYOrden(t *testing.T) {
	s := newServer(t)
	s.seedCatalog("p-1", "wh-1", 0)
	auth := bearer(token(t, testBranchID, "admin"))
	for _, q := range []int{5, 2, 7} {
		s.do(t, http.MethodPost, "/api/v1/inventory/stock", map[string]any{"product_id": "p-1", "direction": "in", "quantity": q}, auth).Body.Close()
	}

	resp := s.do(t, http.MethodGet, "/api/v1/inventory/movements?product_id=p-1&direction=in&limit=2", nil, auth)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	out := decode[dto.MovementListResponse](t, resp)
	assert.Equal(t, 3, out.Page.Total)
	require.Len(t, out.Items, 2)
	assert.False(t, out.Items[0].CreatedAt.Before(out.Items[1].CreatedAt), "más recientes primero")
}

func TestGetMovements_FechaInvalida_Retorna400(t *testing.T) {
	s := newServer(t)

	resp := s.do(t, http.MethodGet, "/api/v1/inventory/movements?start_date=2024-13-01", nil, bearer(token(t, "", "admin")))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INVALID_INPUT", decode[dto.ErrorResponse](t, resp).Code)
}
