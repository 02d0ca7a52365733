package repository

import (
	"context"

	"github.com/jhoicas/stock-ledger/internal/domain/entity"
)

// StockLevelFilter filtros del listado de saldos agrupados por producto.
type StockLevelFilter struct {
	BranchID    string // alcance del llamador
	SKU         string
	WarehouseID string // restringe los movimientos agregados
	LowStock    bool   // solo saldo <= min_stock
}

// StockLevelRepository lista saldos calculados desde el ledger, paginando sobre el resultado agrupado.
type StockLevelRepository interface {
	List(ctx context.Context, filter StockLevelFilter, limit, offset int) ([]entity.StockLevel, int, error)
}
