package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/echonet/echonet/internal/api/dto"
	"github.com/echonet/echonet/internal/auth"
	"github.com/echonet/echonet/internal/service"
	apperrors "github.com/echonet/echonet/pkg/util/errorutil"
)

// UsersHandler manages profile and friend endpoints.
type UsersHandler struct {
	friends  *service.FriendService
	profiles *service.ProfileService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(friends *service.FriendService, profiles *service.ProfileService) *UsersHandler {
	return &UsersHandler{friends: friends, profiles: profiles}
}

// Profile GET /api/users/profile.
func (h *UsersHandler) Profile(c *fiber.Ctx) error {
	userID, err := auth.UserIDFromCtx(c)
	if err != nil {
		return err
	}
	user, err := h.profiles.Get(c.UserContext(), userID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewUserResponse(user)})
}

// UpdateProfile PUT /api/users/profile.
func (h *UsersHandler) UpdateProfile(c *fiber.Ctx) error {
	userID, err := auth.UserIDFromCtx(c)
	if err != nil {
		return err
	}
	var req dto.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	user, err := h.profiles.Update(c.UserContext(), userID, service.ProfileUpdate{
		Name:            req.Name,
		Bio:             req.Bio,
		Location:        req.Location,
		Website:         req.Website,
		ProfileImageURL: req.ProfileImageURL,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewUserResponse(user)})
}

// UserProfile GET /api/users/:userId.
func (h *UsersHandler) UserProfile(c *fiber.Ctx) error {
	id, err := pathID(c, "userId")
	if err != nil {
		return err
	}
	user, err := h.profiles.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewUserResponse(user)})
}

// Friends GET /api/users/friends.
func (h *UsersHandler) Friends(c *fiber.Ctx) error {
	userID, err := auth.UserIDFromCtx(c)
	if err != nil {
		return err
	}
	users, err := h.friends.Friends(c.UserContext(), userID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewUserResponses(users)})
}

// AddFriend POST /api/users/friends/:friendId.
func (h *UsersHandler) AddFriend(c *fiber.Ctx) error {
	userID, err := auth.UserIDFromCtx(c)
	if err != nil {
		return err
	}
	friendID, err := pathID(c, "friendId")
	if err != nil {
		return err
	}
	friend, err := h.friends.AddFriend(c.UserContext(), userID, friendID)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewUserResponse(friend)})
}

// RemoveFriend DELETE /api/users/friends/:friendId.
func (h *UsersHandler) RemoveFriend(c *fiber.Ctx) error {
	userID, err := auth.UserIDFromCtx(c)
	if err != nil {
		return err
	}
	friendID, err := pathID(c, "friendId")
	if err != nil {
		return err
	}
	if err := h.friends.RemoveFriend(c.UserContext(), userID, friendID); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// Available GET /api/users/available.
func (h *UsersHandler) Available(c *fiber.Ctx) error {
	userID, err := auth.UserIDFromCtx(c)
	if err != nil {
		return err
	}
	users, err := h.friends.Available(c.UserContext(), userID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewUserResponses(users)})
}

// Search GET /api/users/search?query= (q is accepted as an alias).
func (h *UsersHandler) Search(c *fiber.Ctx) error {
	query := c.Query("query", c.Query("q"))
	users, err := h.friends.Search(c.UserContext(), query)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewUserResponses(users)})
}
