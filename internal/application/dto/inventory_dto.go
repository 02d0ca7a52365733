package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// AdjustStockRequest body de POST /api/v1/inventory/stock y cada ítem de la carga masiva.
// Se identifica el producto por product_id o, para integraciones, por external_id.
type AdjustStockRequest struct {
	ProductID   string              `json:"product_id,omitempty"`
	ExternalID  string              `json:"external_id,omitempty"`
	Direction   string              `json:"direction"` // in, out, set
	Quantity    decimal.NullDecimal `json:"quantity"`  // obligatorio
	WarehouseID string              `json:"warehouse_id,omitempty"`
	Reason      string              `json:"reason,omitempty"`
}

// Identifier devuelve el identificador que envió el llamador: product_id si existe, si no external_id.
func (r AdjustStockRequest) Identifier() string {
	if r.ProductID != "" {
		return r.ProductID
	}
	return r.ExternalID
}

// BulkAdjustStockRequest body de POST /api/v1/inventory/stock/bulk.
// WarehouseID aplica a los ítems que no traen su propia bodega.
type BulkAdjustStockRequest struct {
	WarehouseID string               `json:"warehouse_id,omitempty"`
	Updates     []AdjustStockRequest `json:"updates"`
}

// AdjustmentResult resultado de un ajuste. NewQuantity se reporta con piso en cero.
type AdjustmentResult struct {
	ProductID   string          `json:"product_id"`
	SKU         string          `json:"sku"`
	OldQuantity decimal.Decimal `json:"old_quantity"`
	NewQuantity decimal.Decimal `json:"new_quantity"`
}

// BulkFailure ítem fallido de una carga masiva.
type BulkFailure struct {
	Identifier string `json:"identifier"`
	Error      string `json:"error"`
}

// BulkAdjustmentResult particiona la carga masiva en éxitos y fallos, ambos en el orden de entrada.
type BulkAdjustmentResult struct {
	Success []AdjustmentResult `json:"success"`
	Failed  []BulkFailure      `json:"failed"`
}

// StockLevelQuery filtros de GET /api/v1/inventory/stock.
type StockLevelQuery struct {
	SKU         string `query:"sku"`
	WarehouseID string `query:"warehouse_id"`
	LowStock    bool   `query:"low_stock"`
	PageRequest
}

// StockLevelResponse saldo de un producto. CurrentQuantity se muestra con piso en cero.
type StockLevelResponse struct {
	ProductID       string          `json:"product_id"`
	Name            string          `json:"name"`
	SKU             string          `json:"sku"`
	MinStock        decimal.Decimal `json:"min_stock"`
	BranchID        string          `json:"branch_id,omitempty"`
	CurrentQuantity decimal.Decimal `json:"current_quantity"`
	LowStock        bool            `json:"low_stock"`
}

// StockLevelListResponse lista paginada de saldos.
type StockLevelListResponse struct {
	Items []StockLevelResponse `json:"items"`
	Page  PageResponse         `json:"page"`
}

// MovementQuery filtros de GET /api/v1/inventory/movements. Fechas en formato YYYY-MM-DD.
type MovementQuery struct {
	ProductID   string `query:"product_id"`
	WarehouseID string `query:"warehouse_id"`
	Direction   string `query:"direction"`
	StartDate   string `query:"start_date"`
	EndDate     string `query:"end_date"`
	PageRequest
}

// MovementResponse una entrada del ledger.
type MovementResponse struct {
	ID            string          `json:"id"`
	ProductID     string          `json:"product_id"`
	WarehouseID   string          `json:"warehouse_id"`
	BranchID      string          `json:"branch_id,omitempty"`
	Direction     string          `json:"direction"`
	Quantity      decimal.Decimal `json:"quantity"`
	Reason        string          `json:"reason"`
	ReferenceType string          `json:"reference_type"`
	CreatedBy     string          `json:"created_by,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}

// MovementListResponse lista paginada de movimientos (más recientes primero).
type MovementListResponse struct {
	Items []MovementResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
