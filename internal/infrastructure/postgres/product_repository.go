package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `p.id, p.branch_id, p.sku, p.name, p.min_stock, p.created_at, p.updated_at`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// GetByID obtiene un producto por ID, restringido a branchID si no es vacío.
// Un ID que no es UUID no puede existir en la tabla: (nil, nil) sin consultar.
func (r *ProductRepo) GetByID(ctx context.Context, id, branchID string) (*entity.Product, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, nil
	}
	query := `SELECT ` + productColumns + ` FROM products p WHERE p.id = $1`
	args := []any{id}
	if branchID != "" {
		query += ` AND p.branch_id = $2`
		args = append(args, branchID)
	}
	return r.scanOne(ctx, "get product", query, args...)
}

// GetByExternalID obtiene el producto mapeado al external_id de una integración.
func (r *ProductRepo) GetByExternalID(ctx context.Context, storeID, externalID string) (*entity.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM product_store_mappings psm
		JOIN products p ON p.id = psm.product_id
		WHERE psm.store_id = $1 AND psm.external_id = $2`
	return r.scanOne(ctx, "get product by external id", query, storeID, externalID)
}

func (r *ProductRepo) scanOne(ctx context.Context, op, query string, args ...any) (*entity.Product, error) {
	var (
		p        entity.Product
		branchID *string
	)
	err := r.q.QueryRow(ctx, query, args...).Scan(
		&p.ID, &branchID, &p.SKU, &p.Name, &p.MinStock, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, storageError(op, err)
	}
	p.BranchID = derefString(branchID)
	return &p, nil
}
