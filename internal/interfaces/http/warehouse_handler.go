package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/stock-ledger/internal/application/dto"
	"github.com/jhoicas/stock-ledger/internal/application/usecase"
)

const defaultWarehouseLimit = 20

// WarehouseHandler maneja las peticiones HTTP para Warehouse y la bodega por defecto (protegido).
type WarehouseHandler struct {
	uc          *usecase.WarehouseUseCase
	maxPageSize int
}

// NewWarehouseHandler construye el handler.
func NewWarehouseHandler(uc *usecase.WarehouseUseCase, maxPageSize int) *WarehouseHandler {
	return &WarehouseHandler{uc: uc, maxPageSize: maxPageSize}
}

// Create godoc
// @Summary      Crear bodega
// @Tags         warehouses
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateWarehouseRequest  true  "Datos de la bodega"
// @Success      201   {object}  dto.WarehouseResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/v1/warehouses [post]
func (h *WarehouseHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateWarehouseRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "name es requerido"})
	}
	out, err := h.uc.Create(c.Context(), GetBranchID(c), in)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar bodegas
// @Tags         warehouses
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"  default(20)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200     {object}  dto.WarehouseListResponse
// @Router       /api/v1/warehouses [get]
func (h *WarehouseHandler) List(c *fiber.Ctx) error {
	page := dto.PageRequest{Limit: c.QueryInt("limit", defaultWarehouseLimit), Offset: c.QueryInt("offset", 0)}
	page.Normalize(defaultWarehouseLimit, h.maxPageSize)
	out, err := h.uc.List(c.Context(), GetBranchID(c), page)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(out)
}

// UpdateStatus godoc
// @Summary      Activar o desactivar bodega
// @Description  Las bodegas inactivas dejan de elegirse en la resolución automática de bodega.
// @Tags         warehouses
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                            true  "ID de la bodega"
// @Param        body  body  dto.UpdateWarehouseStatusRequest  true  "status: active | inactive"
// @Success      200   {object}  dto.WarehouseResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/v1/warehouses/{id}/status [patch]
func (h *WarehouseHandler) UpdateStatus(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	var in dto.UpdateWarehouseStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.UpdateStatus(c.Context(), GetBranchID(c), id, in)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(out)
}

// GetDefault godoc
// @Summary      Bodega por defecto
// @Tags         settings
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DefaultWarehouseResponse
// @Router       /api/v1/settings/default-warehouse [get]
func (h *WarehouseHandler) GetDefault(c *fiber.Ctx) error {
	out, err := h.uc.GetDefault(c.Context())
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(out)
}

// SetDefault godoc
// @Summary      Fijar o borrar la bodega por defecto
// @Tags         settings
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.DefaultWarehouseRequest  true  "warehouse_id o null para borrar"
// @Success      200   {object}  dto.DefaultWarehouseResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/v1/settings/default-warehouse [put]
func (h *WarehouseHandler) SetDefault(c *fiber.Ctx) error {
	var in dto.DefaultWarehouseRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.SetDefault(c.Context(), in)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(out)
}
