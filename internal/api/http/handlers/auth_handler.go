package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/echonet/echonet/internal/api/dto"
	"github.com/echonet/echonet/internal/service"
	apperrors "github.com/echonet/echonet/pkg/util/errorutil"
)

// AuthHandler exposes registration, login and account lookup.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// Banner handles GET /auth.
func (h *AuthHandler) Banner(c *fiber.Ctx) error {
	return c.SendString("EchoNet AuthService is running!")
}

// Register handles POST /auth/register.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	user, err := h.auth.RegisterUser(c.UserContext(), service.RegisterInput{
		Name:     req.Name,
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Bio:      req.Bio,
		Location: req.Location,
		Website:  req.Website,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewUserResponse(user)})
}

// RegisterSimple handles POST /auth/register/simple.
func (h *AuthHandler) RegisterSimple(c *fiber.Ctx) error {
	var req dto.SimpleRegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	user, err := h.auth.RegisterSimple(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewUserResponse(user)})
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Email == "" || req.Password == "" {
		return apperrors.NewValidationError("email and password required", nil)
	}
	res, err := h.auth.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(loginBody(res))
}

// LoginByUsername handles POST /auth/login/username.
func (h *AuthHandler) LoginByUsername(c *fiber.Ctx) error {
	var req dto.UsernameLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Username == "" || req.Password == "" {
		return apperrors.NewValidationError("username and password required", nil)
	}
	res, err := h.auth.LoginByUsername(c.UserContext(), req.Username, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(loginBody(res))
}

// UserByID handles GET /auth/user/:id.
func (h *AuthHandler) UserByID(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	user, err := h.auth.GetUserByID(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewUserResponse(user)})
}

// UserByEmail handles GET /auth/user/email/:email.
func (h *AuthHandler) UserByEmail(c *fiber.Ctx) error {
	user, err := h.auth.GetUserByEmail(c.UserContext(), c.Params("email"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewUserResponse(user)})
}

// UserByUsername handles GET /auth/user/username/:username.
func (h *AuthHandler) UserByUsername(c *fiber.Ctx) error {
	user, err := h.auth.GetUserByUsername(c.UserContext(), c.Params("username"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewUserResponse(user)})
}

func loginBody(res *service.LoginResult) fiber.Map {
	return fiber.Map{
		"data": fiber.Map{
			"user": dto.NewUserResponse(res.User),
			"auth": dto.AuthResponse{Token: res.Token.Value, ExpiresAt: res.Token.ExpiresAt},
		},
	}
}
