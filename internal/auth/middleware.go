package auth

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/echonet/echonet/internal/observability"
	apperrors "github.com/echonet/echonet/pkg/util/errorutil"
)

// TokenVerifier resolves a bearer token into a caller identity.
type TokenVerifier interface {
	Verify(token string) (Identity, error)
}

// Gate authenticates every request before it reaches a handler.
// It holds only immutable collaborators and can serve concurrent requests.
type Gate struct {
	verifier TokenVerifier
	logger   *zap.Logger
	metrics  *observability.Metrics
}

// NewGate constructs the middleware. metrics may be nil.
func NewGate(verifier TokenVerifier, logger *zap.Logger, metrics *observability.Metrics) *Gate {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Gate{verifier: verifier, logger: logger, metrics: metrics}
}

// Handle verifies the bearer token and attaches the caller identity.
func (g *Gate) Handle(c *fiber.Ctx) error {
	token, err := bearerToken(c.Get(fiber.HeaderAuthorization))
	if err != nil {
		return g.reject(c, err)
	}

	identity, err := g.verifier.Verify(token)
	if err != nil {
		return g.reject(c, err)
	}

	c.Locals(identityKey, identity)
	c.SetUserContext(WithIdentity(c.UserContext(), identity))
	return c.Next()
}

// reject answers with the same 401 for every failure kind; only logs and
// metrics see the difference.
func (g *Gate) reject(c *fiber.Ctx, err error) error {
	kind := Kind(err)
	g.metrics.RecordAuthRejection(kind)
	g.logger.Debug("request rejected",
		zap.String("kind", kind),
		zap.String("method", c.Method()),
		zap.String("path", c.Path()),
		zap.Error(err))
	return apperrors.Respond(c, apperrors.ToDomainError(apperrors.NewUnauthorized("unauthorized")))
}

func bearerToken(header string) (string, error) {
	if header == "" {
		return "", fmt.Errorf("%w: no authorization header", ErrMissingCredential)
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", fmt.Errorf("%w: not a bearer header", ErrMissingCredential)
	}
	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", fmt.Errorf("%w: empty bearer token", ErrMissingCredential)
	}
	return token, nil
}
