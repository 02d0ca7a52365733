package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/stock-ledger/internal/application/dto"
	"github.com/jhoicas/stock-ledger/internal/application/inventory"
	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
)

// WarehouseUseCase catálogo de bodegas y bodega por defecto (insumos de la resolución de bodega).
type WarehouseUseCase struct {
	repo     repository.WarehouseRepository
	settings repository.SettingsRepository
	now      func() time.Time
}

// NewWarehouseUseCase construye el caso de uso.
func NewWarehouseUseCase(repo repository.WarehouseRepository, settings repository.SettingsRepository) *WarehouseUseCase {
	return &WarehouseUseCase{repo: repo, settings: settings, now: time.Now}
}

// Create crea una nueva bodega. Sin status explícito queda activa.
// Un llamador con sucursal solo puede crear bodegas de su sucursal.
func (uc *WarehouseUseCase) Create(ctx context.Context, branchID string, in dto.CreateWarehouseRequest) (*dto.WarehouseResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	status := in.Status
	if status == "" {
		status = entity.WarehouseStatusActive
	}
	if !validStatus(status) {
		return nil, domain.ErrInvalidStatus
	}
	if branchID == "" {
		branchID = in.BranchID
	}
	now := uc.now()
	warehouse := &entity.Warehouse{
		ID:        uuid.New().String(),
		BranchID:  branchID,
		Name:      name,
		Status:    status,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, warehouse); err != nil {
		return nil, err
	}
	return toWarehouseResponse(warehouse), nil
}

// List lista bodegas de la sucursal (todas si branchID es vacío) con paginación.
func (uc *WarehouseUseCase) List(ctx context.Context, branchID string, page dto.PageRequest) (*dto.WarehouseListResponse, error) {
	list, total, err := uc.repo.List(ctx, branchID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.WarehouseResponse, 0, len(list))
	for _, w := range list {
		items = append(items, *toWarehouseResponse(w))
	}
	return &dto.WarehouseListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}, nil
}

// UpdateStatus activa o desactiva una bodega. Una bodega inactiva deja de ser elegible en la resolución automática.
func (uc *WarehouseUseCase) UpdateStatus(ctx context.Context, branchID, id string, in dto.UpdateWarehouseStatusRequest) (*dto.WarehouseResponse, error) {
	if !validStatus(in.Status) {
		return nil, domain.ErrInvalidStatus
	}
	warehouse, err := uc.getInBranch(ctx, branchID, id)
	if err != nil {
		return nil, err
	}
	if err := uc.repo.UpdateStatus(ctx, id, in.Status); err != nil {
		return nil, err
	}
	warehouse.Status = in.Status
	warehouse.UpdatedAt = uc.now()
	return toWarehouseResponse(warehouse), nil
}

// GetDefault devuelve la bodega por defecto configurada (nil si no hay).
func (uc *WarehouseUseCase) GetDefault(ctx context.Context) (*dto.DefaultWarehouseResponse, error) {
	value, ok, err := uc.settings.Get(ctx, inventory.SettingDefaultWarehouseID)
	if err != nil {
		return nil, err
	}
	value = strings.TrimSpace(value)
	if !ok || value == "" {
		return &dto.DefaultWarehouseResponse{}, nil
	}
	return &dto.DefaultWarehouseResponse{WarehouseID: &value}, nil
}

// SetDefault fija la bodega por defecto; nil o vacío la borra. La bodega debe existir.
func (uc *WarehouseUseCase) SetDefault(ctx context.Context, in dto.DefaultWarehouseRequest) (*dto.DefaultWarehouseResponse, error) {
	if in.WarehouseID == nil || strings.TrimSpace(*in.WarehouseID) == "" {
		if err := uc.settings.Delete(ctx, inventory.SettingDefaultWarehouseID); err != nil {
			return nil, err
		}
		return &dto.DefaultWarehouseResponse{}, nil
	}
	id := strings.TrimSpace(*in.WarehouseID)
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrInvalidInput
	}
	if _, err := uc.getInBranch(ctx, "", id); err != nil {
		return nil, err
	}
	if err := uc.settings.Set(ctx, inventory.SettingDefaultWarehouseID, id); err != nil {
		return nil, err
	}
	return &dto.DefaultWarehouseResponse{WarehouseID: &id}, nil
}

func (uc *WarehouseUseCase) getInBranch(ctx context.Context, branchID, id string) (*entity.Warehouse, error) {
	warehouse, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if warehouse == nil || (branchID != "" && warehouse.BranchID != branchID) {
		return nil, domain.ErrWarehouseNotFound
	}
	return warehouse, nil
}

func validStatus(s string) bool {
	return s == entity.WarehouseStatusActive || s == entity.WarehouseStatusInactive
}

func toWarehouseResponse(w *entity.Warehouse) *dto.WarehouseResponse {
	if w == nil {
		return nil
	}
	return &dto.WarehouseResponse{
		ID:        w.ID,
		BranchID:  w.BranchID,
		Name:      w.Name,
		Status:    w.Status,
		CreatedAt: w.CreatedAt,
		UpdatedAt: w.UpdatedAt,
	}
}
