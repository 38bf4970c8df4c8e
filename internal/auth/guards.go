package auth

import (
	"github.com/gofiber/fiber/v2"

	apperrors "github.com/echonet/echonet/pkg/util/errorutil"
)

// RequireUserID ensures the gate resolved a numeric identity.
// A username-only identity is not looked up; it is rejected.
func RequireUserID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, err := UserIDFromCtx(c); err != nil {
			return err
		}
		return c.Next()
	}
}

// RequireUsername ensures the gate resolved a username identity.
func RequireUsername() fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, ok := IdentityFromCtx(c)
		if !ok {
			return apperrors.NewUnauthorized("unauthorized")
		}
		if _, ok := identity.Name(); !ok {
			return apperrors.NewUnauthorized("username identity required")
		}
		return c.Next()
	}
}

// UserIDFromCtx returns the caller's numeric id or an unauthorized error.
func UserIDFromCtx(c *fiber.Ctx) (int64, error) {
	identity, ok := IdentityFromCtx(c)
	if !ok {
		return 0, apperrors.NewUnauthorized("unauthorized")
	}
	id, ok := identity.ID()
	if !ok {
		return 0, apperrors.NewUnauthorized("numeric identity required")
	}
	return id, nil
}
