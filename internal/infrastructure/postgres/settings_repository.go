package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
)

var _ repository.SettingsRepository = (*SettingsRepo)(nil)

// SettingsRepo tabla settings(key, value).
type SettingsRepo struct {
	q Querier
}

// NewSettingsRepository construye el adaptador de configuración. Pasar pool o tx (Querier).
func NewSettingsRepository(q Querier) *SettingsRepo {
	return &SettingsRepo{q: q}
}

// Get devuelve el valor de la clave y si existe.
func (r *SettingsRepo) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := r.q.QueryRow(ctx, `SELECT value FROM settings WHERE key = $1`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", false, nil
		}
		return "", false, storageError("get setting", err)
	}
	return value, true, nil
}

// Set inserta o reemplaza el valor de la clave.
func (r *SettingsRepo) Set(ctx context.Context, key, value string) error {
	query := `
		INSERT INTO settings (key, value, updated_at) VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()`
	_, err := r.q.Exec(ctx, query, key, value)
	return storageError("set setting", err)
}

// Delete borra la clave; no falla si no existe.
func (r *SettingsRepo) Delete(ctx context.Context, key string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM settings WHERE key = $1`, key)
	return storageError("delete setting", err)
}
