package inventory

import (
	"context"
	"time"

	"github.com/jhoicas/stock-ledger/internal/application/dto"
)

// reportMaxRows tope de filas del reporte PDF.
const reportMaxRows = 1000

// StockReportUseCase genera el reporte PDF de saldos con los mismos filtros del listado.
type StockReportUseCase struct {
	balance   *BalanceCalculator
	generator StockReportGenerator
	now       func() time.Time
}

// NewStockReportUseCase construye el caso de uso.
func NewStockReportUseCase(balance *BalanceCalculator, generator StockReportGenerator) *StockReportUseCase {
	return &StockReportUseCase{balance: balance, generator: generator, now: time.Now}
}

// Generate devuelve los bytes del PDF.
func (uc *StockReportUseCase) Generate(ctx context.Context, scope Scope, q dto.StockLevelQuery) ([]byte, error) {
	q.Limit, q.Offset = reportMaxRows, 0
	levels, err := uc.balance.ListLevels(ctx, scope, q)
	if err != nil {
		return nil, err
	}
	title := "Reporte de stock"
	if q.LowStock {
		title = "Reporte de stock bajo mínimo"
	}
	return uc.generator.GenerateStockReport(ctx, StockReport{
		Title:       title,
		GeneratedAt: uc.now(),
		BranchID:    scope.BranchID,
		WarehouseID: q.WarehouseID,
		LowStock:    q.LowStock,
		Items:       levels.Items,
	})
}
