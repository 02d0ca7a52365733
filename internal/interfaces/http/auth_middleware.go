package http

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/stock-ledger/internal/application/dto"
	"github.com/jhoicas/stock-ledger/internal/application/inventory"
	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/pkg/jwt"
)

// Locals keys del alcance del llamador en Fiber.
const (
	LocalUserID   = "user_id"
	LocalBranchID = "branch_id"
	LocalRole     = "role"
	LocalStoreID  = "store_id"
)

// HeaderAPIKey header con la API key de una integración (<store_id>.<secreto>).
const HeaderAPIKey = "X-API-Key"

// RoleAdmin rol con permisos de administración del catálogo de bodegas.
const RoleAdmin = "admin"

// StoreAuthenticator valida API keys de integraciones.
type StoreAuthenticator interface {
	Authenticate(ctx context.Context, apiKey string) (*entity.Store, error)
}

// AuthConfig parámetros de AuthMiddleware. Stores puede ser nil (solo JWT).
type AuthConfig struct {
	JWTSecret string
	JWTIssuer string
	Stores    StoreAuthenticator
}

// AuthMiddleware acepta un Bearer Token JWT o una API key de integración y deja el alcance en c.Locals.
// Con JWT: user_id, branch_id, role. Con API key: store_id y la sucursal de la integración.
func AuthMiddleware(cfg AuthConfig) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if apiKey := strings.TrimSpace(c.Get(HeaderAPIKey)); apiKey != "" && cfg.Stores != nil {
			store, err := cfg.Stores.Authenticate(c.Context(), apiKey)
			if err != nil {
				switch {
				case errors.Is(err, domain.ErrForbidden):
					return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "STORE_INACTIVE", Message: "integración inactiva"})
				case errors.Is(err, domain.ErrUnauthorized):
					return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_API_KEY", Message: "API key inválida"})
				}
				return writeDomainError(c, err)
			}
			c.Locals(LocalStoreID, store.ID)
			c.Locals(LocalBranchID, store.BranchID)
			return c.Next()
		}

		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization header o X-API-Key requerido"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vacío"})
		}
		principal, err := jwt.Parse(cfg.JWTSecret, cfg.JWTIssuer, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}
		c.Locals(LocalUserID, principal.UserID)
		c.Locals(LocalBranchID, principal.BranchID)
		c.Locals(LocalRole, principal.Role)
		return c.Next()
	}
}

// RequireRole autoriza solo a usuarios JWT con alguno de los roles indicados.
// Las integraciones (API key) no tienen rol y reciben 403.
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if GetStoreID(c) != "" {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "operación no permitida para integraciones"})
		}
		role := GetRole(c)
		if role == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_ROLE", Message: "el token no incluye rol"})
		}
		for _, r := range roles {
			if r == role {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "rol sin permiso para esta operación"})
	}
}

func localString(c *fiber.Ctx, key string) string {
	s, _ := c.Locals(key).(string)
	return s
}

// GetUserID devuelve el UserID del contexto (después del middleware de auth).
func GetUserID(c *fiber.Ctx) string { return localString(c, LocalUserID) }

// GetBranchID devuelve la sucursal del llamador; vacío = sin restricción.
func GetBranchID(c *fiber.Ctx) string { return localString(c, LocalBranchID) }

// GetRole devuelve el rol del usuario JWT.
func GetRole(c *fiber.Ctx) string { return localString(c, LocalRole) }

// GetStoreID devuelve la integración autenticada por API key.
func GetStoreID(c *fiber.Ctx) string { return localString(c, LocalStoreID) }

// scopeFrom arma el alcance que consumen los casos de uso de inventario.
func scopeFrom(c *fiber.Ctx) inventory.Scope {
	return inventory.Scope{
		UserID:   GetUserID(c),
		BranchID: GetBranchID(c),
		StoreID:  GetStoreID(c),
	}
}
