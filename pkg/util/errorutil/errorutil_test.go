package errorutil

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
)

func TestToDomainError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		code   string
		status int
	}{
		{"domain error passes through", NewConflict("taken", nil), "CONFLICT", http.StatusConflict},
		{"wrapped domain error", fmt.Errorf("ctx: %w", NewForbidden("nope")), "FORBIDDEN", http.StatusForbidden},
		{"no rows", fmt.Errorf("get user: %w", pgx.ErrNoRows), "NOT_FOUND", http.StatusNotFound},
		{"fiber error", fiber.NewError(http.StatusBadRequest, "bad"), "VALIDATION_FAILED", http.StatusBadRequest},
		{"unknown", errors.New("boom"), "INTERNAL_ERROR", http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			de := ToDomainError(tt.err)
			assert.Equal(t, tt.code, de.Code)
			assert.Equal(t, tt.status, de.HTTPStatus)
		})
	}

	assert.Nil(t, ToDomainError(nil))
}

func TestInternalErrorUnwraps(t *testing.T) {
	cause := errors.New("db down")
	err := NewInternalError(cause)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "internal server error: db down", err.Error())
}

func TestMapError(t *testing.T) {
	assert.NoError(t, MapError(nil))

	var de *DomainError
	assert.ErrorAs(t, MapError(pgx.ErrNoRows), &de)
	assert.Equal(t, http.StatusNotFound, de.HTTPStatus)
}
