package inventory

import (
	"context"

	"github.com/jhoicas/stock-ledger/internal/application/dto"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/inventory"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// BalanceCalculator deriva saldos desde el ledger en cada lectura (no hay saldo almacenado).
// Solo lectura; seguro para llamadas concurrentes.
type BalanceCalculator struct {
	movRepo   repository.StockMovementRepository
	levelRepo repository.StockLevelRepository
}

// NewBalanceCalculator construye el calculador.
func NewBalanceCalculator(movRepo repository.StockMovementRepository, levelRepo repository.StockLevelRepository) *BalanceCalculator {
	return &BalanceCalculator{movRepo: movRepo, levelRepo: levelRepo}
}

// CurrentStock devuelve Σin − Σout del producto, filtrando opcionalmente por bodega y sucursal
// (filtros independientes, combinados con AND). Cero si no hay movimientos.
func (c *BalanceCalculator) CurrentStock(ctx context.Context, productID, warehouseID, branchID string) (decimal.Decimal, error) {
	return c.movRepo.SumBalance(ctx, repository.BalanceFilter{
		ProductID:   productID,
		WarehouseID: warehouseID,
		BranchID:    branchID,
	})
}

// ListLevels lista saldos agrupados por producto. q.Limit/q.Offset ya deben venir normalizados.
// La cantidad mostrada tiene piso en cero; la marca low_stock usa el saldo real.
func (c *BalanceCalculator) ListLevels(ctx context.Context, scope Scope, q dto.StockLevelQuery) (*dto.StockLevelListResponse, error) {
	levels, total, err := c.levelRepo.List(ctx, repository.StockLevelFilter{
		BranchID:    scope.BranchID,
		SKU:         q.SKU,
		WarehouseID: q.WarehouseID,
		LowStock:    q.LowStock,
	}, q.Limit, q.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.StockLevelResponse, 0, len(levels))
	for _, l := range levels {
		items = append(items, toStockLevelResponse(l))
	}
	return &dto.StockLevelListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: q.Limit, Offset: q.Offset, Total: total},
	}, nil
}

func toStockLevelResponse(l entity.StockLevel) dto.StockLevelResponse {
	return dto.StockLevelResponse{
		ProductID:       l.ProductID,
		Name:            l.Name,
		SKU:             l.SKU,
		MinStock:        l.MinStock,
		BranchID:        l.BranchID,
		CurrentQuantity: inventory.ClampNonNegative(l.CurrentQuantity),
		LowStock:        l.IsLow(),
	}
}
