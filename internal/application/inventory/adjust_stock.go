package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/stock-ledger/internal/application/dto"
	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/inventory"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
	"github.com/jhoicas/stock-ledger/pkg/logger"
)

// appendFunc persiste un movimiento. El ajuste individual lo hace dentro de una transacción,
// la carga masiva con un insert directo por ítem.
type appendFunc func(ctx context.Context, m *entity.StockMovement) error

// AdjustStockUseCase orquesta un ajuste de stock: resuelve producto y bodega, calcula el delta
// contra el saldo actual y agrega un único movimiento al ledger.
type AdjustStockUseCase struct {
	txRunner    TxRunner
	movRepo     repository.StockMovementRepository
	productRepo repository.ProductRepository
	resolver    *WarehouseResolver
	balance     *BalanceCalculator
	log         *logger.Logger
	now         func() time.Time
}

// NewAdjustStockUseCase construye el caso de uso. movRepo debe estar atado al pool (se usa en la carga masiva).
func NewAdjustStockUseCase(
	txRunner TxRunner,
	movRepo repository.StockMovementRepository,
	productRepo repository.ProductRepository,
	resolver *WarehouseResolver,
	balance *BalanceCalculator,
	log *logger.Logger,
) *AdjustStockUseCase {
	return &AdjustStockUseCase{
		txRunner:    txRunner,
		movRepo:     movRepo,
		productRepo: productRepo,
		resolver:    resolver,
		balance:     balance,
		log:         log,
		now:         time.Now,
	}
}

// Adjust aplica un ajuste individual. Errores: ErrInvalidInput (dirección/cantidad),
// ErrProductNotFound, ErrNoWarehouseAvailable (antes de cualquier escritura) o StorageError.
func (uc *AdjustStockUseCase) Adjust(ctx context.Context, scope Scope, in dto.AdjustStockRequest) (*dto.AdjustmentResult, error) {
	if in.Reason == "" {
		in.Reason = DefaultReasonSingle
	}
	return uc.adjust(ctx, scope, in, uc.appendInTx)
}

func (uc *AdjustStockUseCase) appendInTx(ctx context.Context, m *entity.StockMovement) error {
	return uc.txRunner.Run(ctx, func(movRepo repository.StockMovementRepository) error {
		return movRepo.Append(ctx, m)
	})
}

func (uc *AdjustStockUseCase) adjust(ctx context.Context, scope Scope, in dto.AdjustStockRequest, appendMovement appendFunc) (*dto.AdjustmentResult, error) {
	if err := validateAdjustment(in); err != nil {
		return nil, err
	}

	product, err := uc.resolveProduct(ctx, scope, in)
	if err != nil {
		return nil, err
	}

	warehouseID, ok, err := uc.resolver.Resolve(ctx, in.WarehouseID, product.BranchID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrNoWarehouseAvailable
	}

	old, err := uc.balance.CurrentStock(ctx, product.ID, warehouseID, product.BranchID)
	if err != nil {
		return nil, err
	}

	adj, err := inventory.PlanAdjustment(in.Direction, in.Quantity.Decimal, old)
	if err != nil {
		return nil, err
	}

	if adj.IsNoop() {
		uc.log.Debug().
			Str("product_id", product.ID).
			Str("warehouse_id", warehouseID).
			Str("mode", in.Direction).
			Msg("ajuste sin delta, no se registra movimiento")
	} else {
		mov := &entity.StockMovement{
			ID:            uuid.New().String(),
			ProductID:     product.ID,
			WarehouseID:   warehouseID,
			BranchID:      product.BranchID,
			Direction:     adj.Direction,
			Quantity:      adj.AppliedQty,
			Reason:        in.Reason,
			ReferenceType: entity.ReferenceAPISync,
			CreatedBy:     scope.UserID,
			CreatedAt:     uc.now(),
		}
		if err := appendMovement(ctx, mov); err != nil {
			return nil, err
		}
		uc.log.Info().
			Str("movement_id", mov.ID).
			Str("product_id", product.ID).
			Str("warehouse_id", warehouseID).
			Str("direction", mov.Direction).
			Str("qty", mov.Quantity.String()).
			Msg("movimiento de stock registrado")
	}

	return &dto.AdjustmentResult{
		ProductID:   product.ID,
		SKU:         product.SKU,
		OldQuantity: adj.OldQuantity,
		NewQuantity: inventory.ClampNonNegative(adj.NewQuantity),
	}, nil
}

// resolveProduct busca por ID interno (acotado a la sucursal del llamador) o, si el llamador es
// una integración, por el external_id mapeado a esa integración.
func (uc *AdjustStockUseCase) resolveProduct(ctx context.Context, scope Scope, in dto.AdjustStockRequest) (*entity.Product, error) {
	var (
		product *entity.Product
		err     error
	)
	switch {
	case in.ProductID != "":
		product, err = uc.productRepo.GetByID(ctx, in.ProductID, scope.BranchID)
	case in.ExternalID != "" && scope.StoreID != "":
		product, err = uc.productRepo.GetByExternalID(ctx, scope.StoreID, in.ExternalID)
	}
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}
	return product, nil
}

func validateAdjustment(in dto.AdjustStockRequest) error {
	if !inventory.ValidMode(in.Direction) {
		return domain.ErrInvalidDirection
	}
	if !in.Quantity.Valid {
		return domain.ErrQuantityRequired
	}
	if in.Direction == inventory.ModeSet && in.Quantity.Decimal.IsNegative() {
		return domain.ErrNegativeTarget
	}
	return nil
}
