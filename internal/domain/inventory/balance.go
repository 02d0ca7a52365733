// Package inventory contiene la lógica pura del ledger de stock (servicio de dominio):
// agregación de saldos y cálculo del delta de un ajuste. Sin I/O.
package inventory

import (
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// Balance agrega movimientos: Σqty(in) − Σqty(out). Devuelve cero si no hay movimientos.
// El resultado no depende del orden de los movimientos.
func Balance(movements []*entity.StockMovement) decimal.Decimal {
	in, out := decimal.Zero, decimal.Zero
	for _, m := range movements {
		switch m.Direction {
		case entity.DirectionIn:
			in = in.Add(m.Quantity)
		case entity.DirectionOut:
			out = out.Add(m.Quantity)
		}
	}
	return in.Sub(out)
}

// ClampNonNegative aplica el piso en cero usado al reportar cantidades.
// El ledger nunca se ajusta con este valor.
func ClampNonNegative(q decimal.Decimal) decimal.Decimal {
	if q.IsNegative() {
		return decimal.Zero
	}
	return q
}
