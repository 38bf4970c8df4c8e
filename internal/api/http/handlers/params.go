package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	apperrors "github.com/echonet/echonet/pkg/util/errorutil"
)

func pathID(c *fiber.Ctx, name string) (int64, error) {
	raw := c.Params(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.NewValidationError("invalid "+name, map[string]any{name: raw})
	}
	return id, nil
}
