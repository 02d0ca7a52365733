package inventory

import (
	"context"
	"time"

	"github.com/jhoicas/stock-ledger/internal/application/dto"
	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
)

const dateLayout = "2006-01-02"

// MovementHistoryUseCase consulta el historial del ledger (más recientes primero).
type MovementHistoryUseCase struct {
	movRepo repository.StockMovementRepository
}

// NewMovementHistoryUseCase construye el caso de uso.
func NewMovementHistoryUseCase(movRepo repository.StockMovementRepository) *MovementHistoryUseCase {
	return &MovementHistoryUseCase{movRepo: movRepo}
}

// List devuelve movimientos filtrados por producto, bodega, dirección y rango de fechas
// (YYYY-MM-DD, ambos extremos inclusive). Acotado a la sucursal del llamador.
func (uc *MovementHistoryUseCase) List(ctx context.Context, scope Scope, q dto.MovementQuery) (*dto.MovementListResponse, error) {
	if q.Direction != "" && q.Direction != entity.DirectionIn && q.Direction != entity.DirectionOut {
		return nil, domain.ErrInvalidInput
	}
	from, err := parseDate(q.StartDate)
	if err != nil {
		return nil, err
	}
	to, err := parseDate(q.EndDate)
	if err != nil {
		return nil, err
	}

	list, total, err := uc.movRepo.List(ctx, repository.MovementFilter{
		BranchID:    scope.BranchID,
		ProductID:   q.ProductID,
		WarehouseID: q.WarehouseID,
		Direction:   q.Direction,
		From:        from,
		To:          to,
	}, q.Limit, q.Offset)
	if err != nil {
		return nil, err
	}

	items := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		items = append(items, dto.MovementResponse{
			ID:            m.ID,
			ProductID:     m.ProductID,
			WarehouseID:   m.WarehouseID,
			BranchID:      m.BranchID,
			Direction:     m.Direction,
			Quantity:      m.Quantity,
			Reason:        m.Reason,
			ReferenceType: m.ReferenceType,
			CreatedBy:     m.CreatedBy,
			CreatedAt:     m.CreatedAt,
		})
	}
	return &dto.MovementListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: q.Limit, Offset: q.Offset, Total: total},
	}, nil
}

func parseDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	return &t, nil
}
