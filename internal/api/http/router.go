package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/echonet/echonet/internal/api/http/handlers"
	"github.com/echonet/echonet/internal/auth"
)

// RegisterHealthRoutes wires probes shared by every service.
func RegisterHealthRoutes(app *fiber.App, health *handlers.HealthHandler) {
	app.Get("/health/live", health.Live)
	app.Get("/health/ready", health.Ready)
	app.Get("/health/metrics", health.Metrics)
}

// RegisterAuthRoutes wires the identity service. None of these routes are gated.
func RegisterAuthRoutes(app *fiber.App, h *handlers.AuthHandler) {
	authGroup := app.Group("/auth")
	authGroup.Get("", h.Banner)
	authGroup.Post("/register", h.Register)
	authGroup.Post("/register/simple", h.RegisterSimple)
	authGroup.Post("/login", h.Login)
	authGroup.Post("/login/username", h.LoginByUsername)
	authGroup.Get("/user/email/:email", h.UserByEmail)
	authGroup.Get("/user/username/:username", h.UserByUsername)
	authGroup.Get("/user/:id", h.UserByID)
}

// RegisterPostRoutes wires the post service behind the gate. Reads accept any
// resolved identity; writes and per-user reads need a numeric id.
func RegisterPostRoutes(app *fiber.App, gate *auth.Gate, h *handlers.PostsHandler) {
	posts := app.Group("/api/posts", gate.Handle)
	posts.Get("", h.ListPosts)
	posts.Post("", auth.RequireUserID(), h.CreatePost)
	posts.Delete("/comments/:commentId", auth.RequireUserID(), h.DeleteComment)
	posts.Get("/:id", h.GetPost)
	posts.Post("/:id/like", auth.RequireUserID(), h.ToggleLike)
	posts.Get("/:id/like-status", auth.RequireUserID(), h.LikeStatus)
	posts.Post("/:id/comments", auth.RequireUserID(), h.AddComment)
	posts.Get("/:id/comments", h.ListComments)
}

// RegisterUserRoutes wires the user service behind the gate.
func RegisterUserRoutes(app *fiber.App, gate *auth.Gate, h *handlers.UsersHandler) {
	users := app.Group("/api/users", gate.Handle, auth.RequireUserID())
	users.Get("/profile", h.Profile)
	users.Put("/profile", h.UpdateProfile)
	users.Get("/friends", h.Friends)
	users.Post("/friends/:friendId", h.AddFriend)
	users.Delete("/friends/:friendId", h.RemoveFriend)
	users.Get("/available", h.Available)
	users.Get("/search", h.Search)
	users.Get("/:userId", h.UserProfile)
}
