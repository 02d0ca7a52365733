package repository

import (
	"context"
	"time"

	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// BalanceFilter filtros AND para agregar el saldo de un producto. Campos vacíos = sin filtro.
type BalanceFilter struct {
	ProductID   string
	WarehouseID string
	BranchID    string
}

// MovementFilter filtros del historial de movimientos. Las fechas se comparan por día calendario (inclusive).
type MovementFilter struct {
	BranchID    string
	ProductID   string
	WarehouseID string
	Direction   string
	From        *time.Time
	To          *time.Time
}

// StockMovementRepository es el puerto del ledger: solo agrega y lee, nunca actualiza ni borra.
type StockMovementRepository interface {
	Append(ctx context.Context, movement *entity.StockMovement) error
	SumBalance(ctx context.Context, filter BalanceFilter) (decimal.Decimal, error)
	List(ctx context.Context, filter MovementFilter, limit, offset int) ([]*entity.StockMovement, int, error)
}
