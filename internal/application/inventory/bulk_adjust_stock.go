package inventory

import (
	"context"

	"github.com/jhoicas/stock-ledger/internal/application/dto"
	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/pkg/logger"
)

// BulkAdjustStockUseCase aplica una lista de ajustes con aislamiento por ítem:
// el fallo de un ítem no revierte ni bloquea a los siguientes.
type BulkAdjustStockUseCase struct {
	adjust *AdjustStockUseCase
	log    *logger.Logger
}

// NewBulkAdjustStockUseCase construye el coordinador sobre el caso de uso individual.
func NewBulkAdjustStockUseCase(adjust *AdjustStockUseCase, log *logger.Logger) *BulkAdjustStockUseCase {
	return &BulkAdjustStockUseCase{adjust: adjust, log: log}
}

// AdjustMany procesa los ítems en orden, secuencialmente. Success y Failed conservan el orden de entrada.
// Cada movimiento se persiste con un insert directo (atómico por sí mismo) sin transacción externa.
func (uc *BulkAdjustStockUseCase) AdjustMany(ctx context.Context, scope Scope, in dto.BulkAdjustStockRequest) dto.BulkAdjustmentResult {
	result := dto.BulkAdjustmentResult{
		Success: make([]dto.AdjustmentResult, 0, len(in.Updates)),
		Failed:  []dto.BulkFailure{},
	}

	for _, item := range in.Updates {
		if item.ProductID == "" && item.ExternalID == "" {
			result.Failed = append(result.Failed, dto.BulkFailure{
				Identifier: "",
				Error:      domain.ErrProductNotFound.Error(),
			})
			continue
		}
		if item.WarehouseID == "" {
			item.WarehouseID = in.WarehouseID
		}
		if item.Reason == "" {
			item.Reason = DefaultReasonBulk
		}

		res, err := uc.adjust.adjust(ctx, scope, item, uc.adjust.movRepo.Append)
		if err != nil {
			uc.log.Warn().Err(err).
				Str("identifier", item.Identifier()).
				Msg("ítem de carga masiva fallido")
			result.Failed = append(result.Failed, dto.BulkFailure{
				Identifier: item.Identifier(),
				Error:      err.Error(),
			})
			continue
		}
		result.Success = append(result.Success, *res)
	}

	uc.log.Info().
		Int("items", len(in.Updates)).
		Int("success", len(result.Success)).
		Int("failed", len(result.Failed)).
		Msg("carga masiva de stock completada")
	return result
}
