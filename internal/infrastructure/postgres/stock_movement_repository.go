package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// balanceExpr agrega el saldo como Σin − Σout; 0 cuando no hay filas.
const balanceExpr = `COALESCE(SUM(CASE WHEN %[1]sdirection = 'in' THEN %[1]squantity ELSE 0 END)
		- SUM(CASE WHEN %[1]sdirection = 'out' THEN %[1]squantity ELSE 0 END), 0)`

// dateLayout formato de día calendario usado en los filtros de fecha.
const dateLayout = "2006-01-02"

// balanceSQL expande balanceExpr con el alias de tabla indicado ("" o "m.").
func balanceSQL(alias string) string {
	return fmt.Sprintf(balanceExpr, alias)
}

// StockMovementRepo ledger de movimientos sobre PostgreSQL (usable con pool o tx).
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador del ledger. Pasar pool o tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

// Append inserta un movimiento. Es la única escritura del ledger.
func (r *StockMovementRepo) Append(ctx context.Context, m *entity.StockMovement) error {
	query := `
		INSERT INTO stock_movements (id, product_id, warehouse_id, branch_id, direction, quantity, reason, reference_type, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.ProductID, m.WarehouseID, nullString(m.BranchID), m.Direction, m.Quantity,
		nullString(m.Reason), m.ReferenceType, nullString(m.CreatedBy), m.CreatedAt,
	)
	return storageError("insert stock movement", err)
}

// SumBalance calcula Σin − Σout de las filas que cumplen todos los filtros no vacíos.
func (r *StockMovementRepo) SumBalance(ctx context.Context, f repository.BalanceFilter) (decimal.Decimal, error) {
	var args queryArgs
	where := []string{"product_id = " + args.add(f.ProductID)}
	if f.WarehouseID != "" {
		where = append(where, "warehouse_id = "+args.add(f.WarehouseID))
	}
	if f.BranchID != "" {
		where = append(where, "branch_id = "+args.add(f.BranchID))
	}
	query := "SELECT " + balanceSQL("") + " FROM stock_movements WHERE " + strings.Join(where, " AND ")

	var balance decimal.Decimal
	if err := r.q.QueryRow(ctx, query, args.vals...).Scan(&balance); err != nil {
		return decimal.Zero, storageError("sum stock balance", err)
	}
	return balance, nil
}

// List devuelve el historial filtrado, más reciente primero, junto con el total sin paginar.
func (r *StockMovementRepo) List(ctx context.Context, f repository.MovementFilter, limit, offset int) ([]*entity.StockMovement, int, error) {
	var args queryArgs
	var where []string
	if f.BranchID != "" {
		where = append(where, "branch_id = "+args.add(f.BranchID))
	}
	if f.ProductID != "" {
		where = append(where, "product_id = "+args.add(f.ProductID))
	}
	if f.WarehouseID != "" {
		where = append(where, "warehouse_id = "+args.add(f.WarehouseID))
	}
	if f.Direction != "" {
		where = append(where, "direction = "+args.add(f.Direction))
	}
	if f.From != nil {
		where = append(where, "created_at::date >= "+args.add(f.From.Format(dateLayout))+"::date")
	}
	if f.To != nil {
		where = append(where, "created_at::date <= "+args.add(f.To.Format(dateLayout))+"::date")
	}
	clause := ""
	if len(where) > 0 {
		clause = " WHERE " + strings.Join(where, " AND ")
	}

	var total int
	if err := r.q.QueryRow(ctx, "SELECT COUNT(*) FROM stock_movements"+clause, args.vals...).Scan(&total); err != nil {
		return nil, 0, storageError("count stock movements", err)
	}

	query := `
		SELECT id, product_id, warehouse_id, branch_id, direction, quantity, reason, reference_type, created_by, created_at
		FROM stock_movements` + clause + `
		ORDER BY created_at DESC, id DESC LIMIT ` + args.add(limit) + ` OFFSET ` + args.add(offset)
	rows, err := r.q.Query(ctx, query, args.vals...)
	if err != nil {
		return nil, 0, storageError("list stock movements", err)
	}
	defer rows.Close()

	list := make([]*entity.StockMovement, 0)
	for rows.Next() {
		var (
			m                           entity.StockMovement
			branchID, reason, createdBy *string
		)
		if err := rows.Scan(&m.ID, &m.ProductID, &m.WarehouseID, &branchID, &m.Direction, &m.Quantity,
			&reason, &m.ReferenceType, &createdBy, &m.CreatedAt); err != nil {
			return nil, 0, storageError("scan stock movement", err)
		}
		m.BranchID = derefString(branchID)
		m.Reason = derefString(reason)
		m.CreatedBy = derefString(createdBy)
		list = append(list, &m)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, storageError("list stock movements", err)
	}
	return list, total, nil
}
