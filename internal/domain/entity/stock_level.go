package entity

import "github.com/shopspring/decimal"

// StockLevel es una fila del listado de stock: un producto con su saldo calculado desde el ledger.
// No se persiste; se deriva en cada lectura.
type StockLevel struct {
	ProductID       string
	Name            string
	SKU             string
	MinStock        decimal.Decimal
	BranchID        string
	CurrentQuantity decimal.Decimal // Σin − Σout, puede ser negativo
}

// IsLow indica si el saldo está en o por debajo del mínimo configurado.
func (l StockLevel) IsLow() bool {
	return l.CurrentQuantity.LessThanOrEqual(l.MinStock)
}
