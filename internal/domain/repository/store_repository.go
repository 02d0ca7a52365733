package repository

import (
	"context"

	"github.com/jhoicas/stock-ledger/internal/domain/entity"
)

// StoreRepository lectura de credenciales de integraciones. (nil, nil) si no existe.
type StoreRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Store, error)
}
