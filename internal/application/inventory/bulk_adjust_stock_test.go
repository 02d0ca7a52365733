package inventory_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/jhoicas/stock-ledger/internal/application/dto"
	"github.com/jhoicas/stock-ledger/internal/application/inventory"
	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/pkg/logger"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ──────────────────────────────────────────────────────────────────────────────
// AdjustMany
// ──────────────────────────────────────────────────────────────────────────────

// Éxitos y fallos conservan el orden de entrada; los fallos no afectan a los demás ítems.
func TestAdjustMany_FallosParciales_ConservanOrden(t *testing.T) {
	e := newEngine(t)
	e.product("p-1", "", "SKU-1", 0)
	e.product("p-2", "", "SKU-2", 0)
	e.warehouse("wh-a", "", entity.WarehouseStatusActive, t0)

	res := e.bulk.AdjustMany(context.Background(), userScope, dto.BulkAdjustStockRequest{
		Updates: []dto.AdjustStockRequest{
			setReq("p-1", 5),
			{Direction: "set", Quantity: qty(1)}, // sin identificador
			setReq("nope", 3),
			{ProductID: "p-2", Direction: "in", Quantity: qty(2)},
			{ProductID: "p-2", Direction: "move", Quantity: qty(2)},
		},
	})

	require.Len(t, res.Success, 2)
	assert.Equal(t, "p-1", res.Success[0].ProductID)
	assert.Equal(t, "p-2", res.Success[1].ProductID)

	require.Len(t, res.Failed, 3)
	assert.Equal(t, dto.BulkFailure{Identifier: "", Error: domain.ErrProductNotFound.Error()}, res.Failed[0])
	assert.Equal(t, dto.BulkFailure{Identifier: "nope", Error: domain.ErrProductNotFound.Error()}, res.Failed[1])
	assert.Equal(t, "p-2", res.Failed[2].Identifier)
	assert.Equal(t, domain.ErrInvalidDirection.Error(), res.Failed[2].Error)

	assert.Len(t, e.store.Movements(), 2)
}

// Los ítems sin bodega heredan la bodega de la petición.
func TestAdjustMany_BodegaDeLaPeticion(t *testing.T) {
	e := newEngine(t)
	e.product("p-1", "", "SKU-1", 0)
	e.product("p-2", "", "SKU-2", 0)
	e.warehouse("wh-a", "", entity.WarehouseStatusActive, t0)
	e.warehouse("wh-b", "", entity.WarehouseStatusActive, t0.Add(time1h))

	own := setReq("p-2", 4)
	own.WarehouseID = "wh-a"
	res := e.bulk.AdjustMany(context.Background(), userScope, dto.BulkAdjustStockRequest{
		WarehouseID: "wh-b",
		Updates:     []dto.AdjustStockRequest{setReq("p-1", 5), own},
	})
	require.Len(t, res.Success, 2)
	require.Empty(t, res.Failed)

	movs := e.store.Movements()
	require.Len(t, movs, 2)
	assert.Equal(t, "wh-b", movs[0].WarehouseID)
	assert.Equal(t, "wh-a", movs[1].WarehouseID, "la bodega del ítem tiene prioridad")
	assert.Equal(t, inventory.DefaultReasonBulk, movs[0].Reason)
}

// Un fallo de almacén en un ítem queda en failed y los siguientes se aplican.
func TestAdjustMany_FalloDeAlmacenAislado(t *testing.T) {
	e := newEngine(t)
	e.product("p-1", "", "SKU-1", 0)
	e.product("p-2", "", "SKU-2", 0)
	e.product("p-3", "", "SKU-3", 0)
	e.warehouse("wh-a", "", entity.WarehouseStatusActive, t0)
	e.store.OnAppend(func(m *entity.StockMovement) error {
		if m.ProductID == "p-2" {
			return errors.New("deadlock detected")
		}
		return nil
	})

	res := e.bulk.AdjustMany(context.Background(), userScope, dto.BulkAdjustStockRequest{
		Updates: []dto.AdjustStockRequest{setReq("p-1", 1), setReq("p-2", 2), setReq("p-3", 3)},
	})

	require.Len(t, res.Success, 2)
	assert.Equal(t, "p-1", res.Success[0].ProductID)
	assert.Equal(t, "p-3", res.Success[1].ProductID)
	require.Len(t, res.Failed, 1)
	assert.Equal(t, "p-2", res.Failed[0].Identifier)
	assert.Contains(t, res.Failed[0].Error, "deadlock detected")
	assert.Len(t, e.store.Movements(), 2)
}

func TestAdjustMany_SinBodega_TodosFallan(t *testing.T) {
	e := newEngine(t)
	e.product("p-1", "", "SKU-1", 0)

	res := e.bulk.AdjustMany(context.Background(), userScope, dto.BulkAdjustStockRequest{
		Updates: []dto.AdjustStockRequest{setReq("p-1", 1)},
	})
	assert.Empty(t, res.Success)
	require.Len(t, res.Failed, 1)
	assert.Equal(t, domain.ErrNoWarehouseAvailable.Error(), res.Failed[0].Error)
	assert.Empty(t, e.store.Movements())
}

// La carga masiva escribe directo al ledger del pool, sin pasar por el TxRunner.
func TestAdjustMany_NoUsaTransaccion(t *testing.T) {
	e := newEngine(t)
	e.product("p-1", "", "SKU-1", 0)
	e.warehouse("wh-a", "", entity.WarehouseStatusActive, t0)
	runner := &countingRunner{}
	adjust := inventory.NewAdjustStockUseCase(runner, e.store.Ledger(), e.store.Products(), e.resolver, e.balance, logger.Nop())
	bulk := inventory.NewBulkAdjustStockUseCase(adjust, logger.Nop())

	res := bulk.AdjustMany(context.Background(), userScope, dto.BulkAdjustStockRequest{
		Updates: []dto.AdjustStockRequest{setReq("p-1", 3)},
	})
	require.Len(t, res.Success, 1)
	assert.Zero(t, runner.calls)
	assert.Len(t, e.store.Movements(), 1)
}

func TestAdjustMany_RegistraResumen(t *testing.T) {
	e := newEngine(t)
	e.product("p-1", "", "SKU-1", 0)
	e.warehouse("wh-a", "", entity.WarehouseStatusActive, t0)
	var buf bytes.Buffer
	log := logger.FromZerolog(zerolog.New(&buf))
	adjust := inventory.NewAdjustStockUseCase(e.store.TxRunner(), e.store.Ledger(), e.store.Products(), e.resolver, e.balance, log)
	bulk := inventory.NewBulkAdjustStockUseCase(adjust, log)

	bulk.AdjustMany(context.Background(), userScope, dto.BulkAdjustStockRequest{
		Updates: []dto.AdjustStockRequest{setReq("p-1", 3), setReq("nope", 1)},
	})

	out := buf.String()
	assert.Contains(t, out, `"message":"carga masiva de stock completada"`)
	assert.Contains(t, out, `"success":1`)
	assert.Contains(t, out, `"failed":1`)
	assert.Contains(t, out, `"identifier":"nope"`)
}
