package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/stock-ledger/internal/application/dto"
	"github.com/jhoicas/stock-ledger/internal/application/inventory"
	"github.com/jhoicas/stock-ledger/pkg/config"
)

// Límites por defecto de los listados.
const (
	defaultStockLimit    = 100
	defaultMovementLimit = 50
)

// InventoryHandler maneja las peticiones HTTP de saldos, ajustes y movimientos (protegido).
type InventoryHandler struct {
	adjust  *inventory.AdjustStockUseCase
	bulk    *inventory.BulkAdjustStockUseCase
	balance *inventory.BalanceCalculator
	history *inventory.MovementHistoryUseCase
	report  *inventory.StockReportUseCase
	limits  config.InventoryConfig
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(
	adjust *inventory.AdjustStockUseCase,
	bulk *inventory.BulkAdjustStockUseCase,
	balance *inventory.BalanceCalculator,
	history *inventory.MovementHistoryUseCase,
	report *inventory.StockReportUseCase,
	limits config.InventoryConfig,
) *InventoryHandler {
	return &InventoryHandler{
		adjust:  adjust,
		bulk:    bulk,
		balance: balance,
		history: history,
		report:  report,
		limits:  limits,
	}
}

// GetStock godoc
// @Summary      Listar saldos de stock
// @Description  Saldo por producto derivado del ledger (Σentradas − Σsalidas). Productos sin movimientos aparecen con 0.
// @Tags         inventory
// @Security     Bearer
// @Security     ApiKey
// @Produce      json
// @Param        sku           query  string  false  "Filtrar por SKU exacto"
// @Param        warehouse_id  query  string  false  "Restringe los movimientos agregados a una bodega"
// @Param        low_stock     query  bool    false  "Solo saldo <= stock mínimo"
// @Param        limit         query  int     false  "Límite"  default(100)
// @Param        offset        query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.StockLevelListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/v1/inventory/stock [get]
func (h *InventoryHandler) GetStock(c *fiber.Ctx) error {
	q, err := h.stockQuery(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros de consulta inválidos"})
	}
	out, err := h.balance.ListLevels(c.Context(), scopeFrom(c), q)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(out)
}

// StockReport godoc
// @Summary      Reporte PDF de saldos
// @Tags         inventory
// @Security     Bearer
// @Security     ApiKey
// @Produce      application/pdf
// @Param        sku           query  string  false  "Filtrar por SKU exacto"
// @Param        warehouse_id  query  string  false  "Restringe los movimientos agregados a una bodega"
// @Param        low_stock     query  bool    false  "Solo saldo <= stock mínimo"
// @Success      200  {file}    binary
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/v1/inventory/stock/report [get]
func (h *InventoryHandler) StockReport(c *fiber.Ctx) error {
	q, err := h.stockQuery(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros de consulta inválidos"})
	}
	pdf, err := h.report.Generate(c.Context(), scopeFrom(c), q)
	if err != nil {
		return writeDomainError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="stock-report.pdf"`)
	return c.Send(pdf)
}

// AdjustStock godoc
// @Summary      Ajustar stock de un producto
// @Description  direction in/out suma o resta |quantity|; set fija el saldo en quantity registrando solo la diferencia.
// @Description  Un delta cero no registra movimiento. new_quantity se reporta con piso en cero.
// @Tags         inventory
// @Security     Bearer
// @Security     ApiKey
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AdjustStockRequest  true  "product_id o external_id, direction, quantity, warehouse_id opcional"
// @Success      200   {object}  dto.AdjustmentResult
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /api/v1/inventory/stock [post]
func (h *InventoryHandler) AdjustStock(c *fiber.Ctx) error {
	var in dto.AdjustStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.ProductID == "" && in.ExternalID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "product_id o external_id es requerido"})
	}
	out, err := h.adjust.Adjust(c.Context(), scopeFrom(c), in)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(out)
}

// BulkAdjustStock godoc
// @Summary      Ajuste masivo de stock
// @Description  Procesa los ítems en orden; cada fallo se reporta en failed sin afectar a los demás.
// @Tags         inventory
// @Security     Bearer
// @Security     ApiKey
// @Accept       json
// @Produce      json
// @Param        body  body  dto.BulkAdjustStockRequest  true  "updates[] y warehouse_id opcional para los ítems sin bodega"
// @Success      200   {object}  dto.BulkAdjustmentResult
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/v1/inventory/stock/bulk [post]
func (h *InventoryHandler) BulkAdjustStock(c *fiber.Ctx) error {
	var in dto.BulkAdjustStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if len(in.Updates) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "updates es requerido"})
	}
	if len(in.Updates) > h.limits.BulkMaxItems {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "BULK_TOO_LARGE", Message: "demasiados ítems en la carga masiva"})
	}
	return c.JSON(h.bulk.AdjustMany(c.Context(), scopeFrom(c), in))
}

// GetMovements godoc
// @Summary      Historial de movimientos de stock
// @Tags         inventory
// @Security     Bearer
// @Security     ApiKey
// @Produce      json
// @Param        product_id    query  string  false  "Producto"
// @Param        warehouse_id  query  string  false  "Bodega"
// @Param        direction     query  string  false  "in u out"
// @Param        start_date    query  string  false  "Desde (YYYY-MM-DD, inclusive)"
// @Param        end_date      query  string  false  "Hasta (YYYY-MM-DD, inclusive)"
// @Param        limit         query  int     false  "Límite"  default(50)
// @Param        offset        query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.MovementListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/v1/inventory/movements [get]
func (h *InventoryHandler) GetMovements(c *fiber.Ctx) error {
	var q dto.MovementQuery
	if err := c.QueryParser(&q); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros de consulta inválidos"})
	}
	q.Normalize(defaultMovementLimit, h.limits.MaxPageSize)
	out, err := h.history.List(c.Context(), scopeFrom(c), q)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(out)
}

func (h *InventoryHandler) stockQuery(c *fiber.Ctx) (dto.StockLevelQuery, error) {
	var q dto.StockLevelQuery
	if err := c.QueryParser(&q); err != nil {
		return q, err
	}
	q.Normalize(defaultStockLimit, h.limits.MaxPageSize)
	return q, nil
}
