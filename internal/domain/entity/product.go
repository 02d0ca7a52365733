package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo tal como lo consume el motor de stock.
// Los atributos comerciales (precio, impuestos) pertenecen al catálogo externo.
type Product struct {
	ID        string
	BranchID  string // sucursal dueña; vacío = sin sucursal
	SKU       string
	Name      string
	MinStock  decimal.Decimal // umbral de stock mínimo para la vista "low stock"
	CreatedAt time.Time
	UpdatedAt time.Time
}
