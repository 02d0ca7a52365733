package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
)

var _ repository.StoreRepository = (*StoreRepo)(nil)

// StoreRepo credenciales de integraciones sobre PostgreSQL.
type StoreRepo struct {
	q Querier
}

// NewStoreRepository construye el adaptador.
func NewStoreRepository(q Querier) *StoreRepo {
	return &StoreRepo{q: q}
}

// GetByID obtiene una integración por ID. (nil, nil) si no existe.
func (r *StoreRepo) GetByID(ctx context.Context, id string) (*entity.Store, error) {
	query := `
		SELECT id, name, branch_id, api_key_hash, active, created_at
		FROM stores WHERE id = $1`
	var (
		s        entity.Store
		branchID *string
	)
	err := r.q.QueryRow(ctx, query, id).Scan(&s.ID, &s.Name, &branchID, &s.APIKeyHash, &s.Active, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, storageError("get store", err)
	}
	s.BranchID = derefString(branchID)
	return &s, nil
}
