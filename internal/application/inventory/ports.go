package inventory

import (
	"context"
	"time"

	"github.com/jhoicas/stock-ledger/internal/application/dto"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
)

// SettingDefaultWarehouseID clave de configuración con la bodega por defecto del sistema.
const SettingDefaultWarehouseID = "default_warehouse_id"

// Motivos por defecto cuando el llamador no envía uno.
const (
	DefaultReasonSingle = "API stock update"
	DefaultReasonBulk   = "API bulk stock update"
)

// TxRunner ejecuta una función dentro de una transacción de BD con el ledger atado a esa tx.
// El ajuste individual escribe exactamente un movimiento dentro de Run.
type TxRunner interface {
	Run(ctx context.Context, fn func(movRepo repository.StockMovementRepository) error) error
}

// SettingsProvider lectura de configuración dinámica (clave/valor).
// Se inyecta para que WarehouseResolver no dependa de estado global.
type SettingsProvider interface {
	Get(ctx context.Context, key string) (string, bool, error)
}

// StockReportGenerator genera la representación PDF del listado de saldos.
type StockReportGenerator interface {
	GenerateStockReport(ctx context.Context, report StockReport) ([]byte, error)
}

// StockReport datos de entrada del reporte PDF.
type StockReport struct {
	Title       string
	GeneratedAt time.Time
	BranchID    string
	WarehouseID string
	LowStock    bool
	Items       []dto.StockLevelResponse
}

// Scope alcance del llamador resuelto por la capa HTTP (usuario JWT o integración con API key).
type Scope struct {
	UserID   string
	BranchID string // filtro de sucursal; vacío = sin filtro
	StoreID  string // integración; habilita la búsqueda por external_id
}
