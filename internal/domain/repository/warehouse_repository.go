package repository

import (
	"context"

	"github.com/jhoicas/stock-ledger/internal/domain/entity"
)

// WarehouseRepository define el puerto de persistencia para Warehouse.
type WarehouseRepository interface {
	Create(ctx context.Context, warehouse *entity.Warehouse) error
	GetByID(ctx context.Context, id string) (*entity.Warehouse, error)
	UpdateStatus(ctx context.Context, id, status string) error
	// List devuelve la página pedida y el total de bodegas del filtro.
	List(ctx context.Context, branchID string, limit, offset int) ([]*entity.Warehouse, int, error)
	// FirstActive devuelve la primera bodega activa en orden estable (created_at, id).
	// Con branchID vacío busca en todo el sistema. (nil, nil) si no existe ninguna.
	FirstActive(ctx context.Context, branchID string) (*entity.Warehouse, error)
}
