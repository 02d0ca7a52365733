package postgres

import (
	"context"
	"strings"

	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
)

var _ repository.StockLevelRepository = (*StockLevelRepo)(nil)

// StockLevelRepo listado de saldos por producto derivado del ledger.
type StockLevelRepo struct {
	q Querier
}

// NewStockLevelRepository construye el adaptador.
func NewStockLevelRepository(q Querier) *StockLevelRepo {
	return &StockLevelRepo{q: q}
}

// List agrupa los movimientos por producto. El LEFT JOIN incluye productos sin movimientos con saldo 0;
// el filtro de bodega va en la condición del JOIN para no descartarlos.
// La paginación y el total se aplican sobre el resultado agrupado.
func (r *StockLevelRepo) List(ctx context.Context, f repository.StockLevelFilter, limit, offset int) ([]entity.StockLevel, int, error) {
	var args queryArgs
	join := "m.product_id = p.id"
	if f.WarehouseID != "" {
		join += " AND m.warehouse_id = " + args.add(f.WarehouseID)
	}
	var where []string
	if f.BranchID != "" {
		where = append(where, "p.branch_id = "+args.add(f.BranchID))
	}
	if f.SKU != "" {
		where = append(where, "p.sku = "+args.add(f.SKU))
	}

	balance := balanceSQL("m.")
	grouped := `
		SELECT p.id, p.name, p.sku, p.min_stock, p.branch_id, ` + balance + ` AS current_quantity
		FROM products p
		LEFT JOIN stock_movements m ON ` + join
	if len(where) > 0 {
		grouped += " WHERE " + strings.Join(where, " AND ")
	}
	grouped += " GROUP BY p.id, p.name, p.sku, p.min_stock, p.branch_id"
	if f.LowStock {
		grouped += " HAVING " + balance + " <= p.min_stock"
	}

	var total int
	if err := r.q.QueryRow(ctx, "SELECT COUNT(*) FROM ("+grouped+") AS levels", args.vals...).Scan(&total); err != nil {
		return nil, 0, storageError("count stock levels", err)
	}

	query := grouped + " ORDER BY p.sku, p.id LIMIT " + args.add(limit) + " OFFSET " + args.add(offset)
	rows, err := r.q.Query(ctx, query, args.vals...)
	if err != nil {
		return nil, 0, storageError("list stock levels", err)
	}
	defer rows.Close()

	list := make([]entity.StockLevel, 0)
	for rows.Next() {
		var (
			l        entity.StockLevel
			branchID *string
		)
		if err := rows.Scan(&l.ProductID, &l.Name, &l.SKU, &l.MinStock, &branchID, &l.CurrentQuantity); err != nil {
			return nil, 0, storageError("scan stock level", err)
		}
		l.BranchID = derefString(branchID)
		list = append(list, l)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, storageError("list stock levels", err)
	}
	return list, total, nil
}
