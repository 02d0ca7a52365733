package inventory_test

import (
	"context"
	"testing"
	"time"

	"github.com/jhoicas/stock-ledger/internal/application/dto"
	"github.com/jhoicas/stock-ledger/internal/application/inventory"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
	"github.com/jhoicas/stock-ledger/internal/infrastructure/memory"
	"github.com/jhoicas/stock-ledger/pkg/logger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const time1h = time.Hour

var t0 = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

const (
	branchA = "branch-a"
	branchB = "branch-b"
)

// engine arma el motor completo sobre el Store en memoria.
type engine struct {
	store    *memory.Store
	balance  *inventory.BalanceCalculator
	resolver *inventory.WarehouseResolver
	adjust   *inventory.AdjustStockUseCase
	bulk     *inventory.BulkAdjustStockUseCase
	history  *inventory.MovementHistoryUseCase
}

func newEngine(t *testing.T) *engine {
	t.Helper()
	st := memory.New()
	balance := inventory.NewBalanceCalculator(st.Ledger(), st.Levels())
	resolver := inventory.NewWarehouseResolver(st.Settings(), st.Warehouses())
	adjust := inventory.NewAdjustStockUseCase(st.TxRunner(), st.Ledger(), st.Products(), resolver, balance, logger.Nop())
	return &engine{
		store:    st,
		balance:  balance,
		resolver: resolver,
		adjust:   adjust,
		bulk:     inventory.NewBulkAdjustStockUseCase(adjust, logger.Nop()),
		history:  inventory.NewMovementHistoryUseCase(st.Ledger()),
	}
}

func d(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func qty(v int64) decimal.NullDecimal { return decimal.NewNullDecimal(d(v)) }

func (e *engine) product(id, branchID, sku string, minStock int64) {
	e.store.AddProduct(&entity.Product{ID: id, BranchID: branchID, SKU: sku, Name: "Producto " + sku, MinStock: d(minStock)})
}

func (e *engine) warehouse(id, branchID, status string, createdAt time.Time) {
	e.store.AddWarehouse(&entity.Warehouse{ID: id, BranchID: branchID, Name: id, Status: status, CreatedAt: createdAt})
}

// seed agrega un movimiento directo al ledger.
func (e *engine) seed(t *testing.T, id, productID, warehouseID, direction string, q int64, at time.Time) {
	t.Helper()
	require.NoError(t, e.store.Ledger().Append(context.Background(), &entity.StockMovement{
		ID: id, ProductID: productID, WarehouseID: warehouseID, Direction: direction,
		Quantity: d(q), ReferenceType: entity.ReferenceManual, CreatedAt: at,
	}))
}

func (e *engine) stock(t *testing.T, productID, warehouseID string) decimal.Decimal {
	t.Helper()
	got, err := e.balance.CurrentStock(context.Background(), productID, warehouseID, "")
	require.NoError(t, err)
	return got
}

func setReq(productID string, q int64) dto.AdjustStockRequest {
	return dto.AdjustStockRequest{ProductID: productID, Direction: "set", Quantity: qty(q)}
}

var userScope = inventory.Scope{UserID: "user-1"}

// countingRunner TxRunner que cuenta las transacciones abiertas y no persiste nada.
type countingRunner struct{ calls int }

func (r *countingRunner) Run(ctx context.Context, fn func(movRepo repository.StockMovementRepository) error) error {
	r.calls++
	return fn(nil)
}

func inventoryScope(branchID string) inventory.Scope {
	return inventory.Scope{BranchID: branchID}
}
