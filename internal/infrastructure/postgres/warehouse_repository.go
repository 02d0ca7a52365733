package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
)

var _ repository.WarehouseRepository = (*WarehouseRepo)(nil)

const warehouseColumns = `id, branch_id, name, status, created_at, updated_at`

// WarehouseRepo implementación del puerto WarehouseRepository sobre PostgreSQL.
type WarehouseRepo struct {
	q Querier
}

// NewWarehouseRepository construye el adaptador de persistencia para bodegas.
func NewWarehouseRepository(q Querier) *WarehouseRepo {
	return &WarehouseRepo{q: q}
}

// Create persiste una nueva bodega. El nombre es único por sucursal.
func (r *WarehouseRepo) Create(ctx context.Context, w *entity.Warehouse) error {
	query := `
		INSERT INTO warehouses (id, branch_id, name, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(ctx, query,
		w.ID, nullString(w.BranchID), w.Name, w.Status, w.CreatedAt, w.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrWarehouseDuplicate
		}
		return storageError("insert warehouse", err)
	}
	return nil
}

// GetByID obtiene una bodega por ID.
func (r *WarehouseRepo) GetByID(ctx context.Context, id string) (*entity.Warehouse, error) {
	return r.scanOne(ctx, "get warehouse",
		`SELECT `+warehouseColumns+` FROM warehouses WHERE id = $1`, id)
}

// UpdateStatus cambia el estado de una bodega. ErrWarehouseNotFound si no existe.
func (r *WarehouseRepo) UpdateStatus(ctx context.Context, id, status string) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE warehouses SET status = $2, updated_at = now() WHERE id = $1`, id, status)
	if err != nil {
		return storageError("update warehouse status", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrWarehouseNotFound
	}
	return nil
}

// List lista bodegas (de la sucursal si branchID no es vacío) en orden de creación, con el total sin paginar.
func (r *WarehouseRepo) List(ctx context.Context, branchID string, limit, offset int) ([]*entity.Warehouse, int, error) {
	var args queryArgs
	clause := ""
	if branchID != "" {
		clause = ` WHERE branch_id = ` + args.add(branchID)
	}

	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM warehouses`+clause, args.vals...).Scan(&total); err != nil {
		return nil, 0, storageError("count warehouses", err)
	}

	query := `SELECT ` + warehouseColumns + ` FROM warehouses` + clause +
		` ORDER BY created_at, id LIMIT ` + args.add(limit) + ` OFFSET ` + args.add(offset)
	rows, err := r.q.Query(ctx, query, args.vals...)
	if err != nil {
		return nil, 0, storageError("list warehouses", err)
	}
	defer rows.Close()
	list := make([]*entity.Warehouse, 0)
	for rows.Next() {
		w, err := scanWarehouse(rows)
		if err != nil {
			return nil, 0, storageError("scan warehouse", err)
		}
		list = append(list, w)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, storageError("list warehouses", err)
	}
	return list, total, nil
}

// FirstActive devuelve la bodega activa más antigua (created_at, id); branchID vacío = todo el sistema.
func (r *WarehouseRepo) FirstActive(ctx context.Context, branchID string) (*entity.Warehouse, error) {
	var args queryArgs
	query := `SELECT ` + warehouseColumns + ` FROM warehouses WHERE status = ` + args.add(entity.WarehouseStatusActive)
	if branchID != "" {
		query += ` AND branch_id = ` + args.add(branchID)
	}
	query += ` ORDER BY created_at, id LIMIT 1`
	return r.scanOne(ctx, "first active warehouse", query, args.vals...)
}

func (r *WarehouseRepo) scanOne(ctx context.Context, op, query string, args ...any) (*entity.Warehouse, error) {
	w, err := scanWarehouse(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, storageError(op, err)
	}
	return w, nil
}

func scanWarehouse(row pgx.Row) (*entity.Warehouse, error) {
	var (
		w        entity.Warehouse
		branchID *string
	)
	if err := row.Scan(&w.ID, &branchID, &w.Name, &w.Status, &w.CreatedAt, &w.UpdatedAt); err != nil {
		return nil, err
	}
	w.BranchID = derefString(branchID)
	return &w, nil
}
