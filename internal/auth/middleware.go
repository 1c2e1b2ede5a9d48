package auth

import (
	"context"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

const (
	CtxClientKey = "client"
	CtxRoleKey   = "client_role"
)

// JWTMiddleware requires a Bearer token signed with secret.
func JWTMiddleware(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "Falta el encabezado Authorization")
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			return fiber.NewError(fiber.StatusUnauthorized, "Authorization debe ser 'Bearer <token>'")
		}

		token, err := jwt.ParseWithClaims(parts[1], &JWTCustomClaims{}, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("beklenmeyen imzalama yöntemi: %v", t.Header["alg"])
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			return fiber.NewError(fiber.StatusUnauthorized, "Token inválido o vencido")
		}

		claims, ok := token.Claims.(*JWTCustomClaims)
		if !ok {
			return fiber.NewError(fiber.StatusUnauthorized, "Token inválido")
		}

		c.Locals(CtxClientKey, claims.Client)
		c.Locals(CtxRoleKey, claims.Role)
		c.SetUserContext(WithClient(c.UserContext(), claims.Client))

		return c.Next()
	}
}

func RequireRole(allowedRoles ...Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, ok := c.Locals(CtxRoleKey).(Role)
		if !ok {
			return fiber.NewError(fiber.StatusForbidden, "Rol desconocido")
		}
		for _, r := range allowedRoles {
			if r == role {
				return c.Next()
			}
		}
		return fiber.NewError(fiber.StatusForbidden, "No autorizado para esta operación")
	}
}

// Passthrough is used in place of the middleware when no secret is configured.
func Passthrough() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.Next()
	}
}

// ClientFromContext returns the token's client name, or "" for anonymous calls.
func ClientFromContext(c *fiber.Ctx) string {
	if v, ok := c.Locals(CtxClientKey).(string); ok {
		return v
	}
	return ""
}

type ctxKey struct{}

// WithClient stores the caller name on a context so services below the handlers can see it.
func WithClient(ctx context.Context, client string) context.Context {
	return context.WithValue(ctx, ctxKey{}, client)
}

func ClientFrom(ctx context.Context) string {
	if v, ok := ctx.Value(ctxKey{}).(string); ok {
		return v
	}
	return ""
}
