package inventory

import (
	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// Modos de ajuste aceptados: relativos (in/out) o absoluto (set).
const (
	ModeIn  = entity.DirectionIn
	ModeOut = entity.DirectionOut
	ModeSet = "set"
)

// Adjustment es el resultado de planificar un ajuste contra el saldo actual.
type Adjustment struct {
	Direction   string          // dirección del movimiento a registrar
	AppliedQty  decimal.Decimal // |delta|; cero = no se escribe nada
	OldQuantity decimal.Decimal
	NewQuantity decimal.Decimal // saldo resultante sin piso
}

// IsNoop indica que el ajuste no produce movimiento.
func (a Adjustment) IsNoop() bool {
	return a.AppliedQty.IsZero()
}

// ValidMode indica si mode es in, out o set.
func ValidMode(mode string) bool {
	return mode == ModeIn || mode == ModeOut || mode == ModeSet
}

// PlanAdjustment calcula dirección, cantidad aplicada y nuevo saldo.
//
//	set:    new = requested; delta = new - old; dir = delta >= 0 ? in : out; applied = |delta|
//	in/out: applied = |requested|; new = old ± applied
func PlanAdjustment(mode string, requested, old decimal.Decimal) (Adjustment, error) {
	switch mode {
	case ModeSet:
		if requested.IsNegative() {
			return Adjustment{}, domain.ErrNegativeTarget
		}
		delta := requested.Sub(old)
		dir := entity.DirectionIn
		if delta.IsNegative() {
			dir = entity.DirectionOut
		}
		return Adjustment{
			Direction:   dir,
			AppliedQty:  delta.Abs(),
			OldQuantity: old,
			NewQuantity: requested,
		}, nil
	case ModeIn, ModeOut:
		applied := requested.Abs()
		newQty := old.Add(applied)
		if mode == ModeOut {
			newQty = old.Sub(applied)
		}
		return Adjustment{
			Direction:   mode,
			AppliedQty:  applied,
			OldQuantity: old,
			NewQuantity: newQty,
		}, nil
	default:
		return Adjustment{}, domain.ErrInvalidDirection
	}
}
