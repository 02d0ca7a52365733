package memory

import (
	"context"
	"errors"

	"github.com/jhoicas/stock-ledger/internal/application/inventory"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var errCheck = errors.New("new row violates check constraint")

var _ inventory.TxRunner = (*TxRunner)(nil)

// TxRunner acumula los movimientos de fn y los aplica al Store, todos o ninguno, solo si fn no devuelve error.
type TxRunner struct{ s *Store }

// Run ejecuta fn con un ledger transaccional.
func (r *TxRunner) Run(ctx context.Context, fn func(movRepo repository.StockMovementRepository) error) error {
	tx := &txLedger{s: r.s}
	if err := fn(tx); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, m := range tx.pending {
		if err := r.s.checkLocked(m); err != nil {
			return err
		}
	}
	r.s.movements = append(r.s.movements, tx.pending...)
	return nil
}

// txLedger lee del Store comprometido y escribe en pending.
type txLedger struct {
	s       *Store
	pending []*entity.StockMovement
}

func (l *txLedger) Append(_ context.Context, m *entity.StockMovement) error {
	cp := *m
	l.pending = append(l.pending, &cp)
	return nil
}

func (l *txLedger) SumBalance(ctx context.Context, f repository.BalanceFilter) (decimal.Decimal, error) {
	return l.s.Ledger().SumBalance(ctx, f)
}

func (l *txLedger) List(ctx context.Context, f repository.MovementFilter, limit, offset int) ([]*entity.StockMovement, int, error) {
	return l.s.Ledger().List(ctx, f, limit, offset)
}
