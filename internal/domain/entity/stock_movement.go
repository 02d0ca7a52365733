package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Direcciones de un movimiento de stock.
const (
	DirectionIn  = "in"  // entrada
	DirectionOut = "out" // salida
)

// Tipos de referencia (origen del movimiento).
const (
	ReferenceManual  = "manual"
	ReferenceAPISync = "api_sync"
)

// StockMovement es una entrada del ledger: inmutable una vez creada.
// Las correcciones se hacen agregando movimientos compensatorios, nunca editando ni borrando.
type StockMovement struct {
	ID            string
	ProductID     string
	WarehouseID   string
	BranchID      string
	Direction     string          // in, out
	Quantity      decimal.Decimal // siempre > 0; el signo lo da Direction
	Reason        string
	ReferenceType string
	CreatedBy     string // UserID; vacío si vino de una integración
	CreatedAt     time.Time
}

// SignedQuantity devuelve la cantidad con signo según la dirección.
func (m *StockMovement) SignedQuantity() decimal.Decimal {
	if m.Direction == DirectionOut {
		return m.Quantity.Neg()
	}
	return m.Quantity
}
