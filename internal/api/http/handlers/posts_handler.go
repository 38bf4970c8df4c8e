package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/echonet/echonet/internal/api/dto"
	"github.com/echonet/echonet/internal/auth"
	"github.com/echonet/echonet/internal/service"
	apperrors "github.com/echonet/echonet/pkg/util/errorutil"
)

// PostsHandler manages post, like and comment endpoints.
type PostsHandler struct {
	posts    *service.PostService
	reaction *service.LikeCommentService
}

// NewPostsHandler constructs handler.
func NewPostsHandler(posts *service.PostService, reactions *service.LikeCommentService) *PostsHandler {
	return &PostsHandler{posts: posts, reaction: reactions}
}

// CreatePost POST /api/posts.
func (h *PostsHandler) CreatePost(c *fiber.Ctx) error {
	userID, err := auth.UserIDFromCtx(c)
	if err != nil {
		return err
	}
	var req dto.CreatePostRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	post, err := h.posts.Create(c.UserContext(), userID, service.CreatePostInput{Title: req.Title, Content: req.Content})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewPostResponse(post)})
}

// ListPosts GET /api/posts.
func (h *PostsHandler) ListPosts(c *fiber.Ctx) error {
	posts, err := h.posts.List(c.UserContext(), c.QueryInt("limit", 50), c.QueryInt("offset", 0))
	if err != nil {
		return err
	}
	items := make([]dto.PostResponse, 0, len(posts))
	for i := range posts {
		items = append(items, dto.NewPostResponse(&posts[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// GetPost GET /api/posts/:id.
func (h *PostsHandler) GetPost(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	post, err := h.posts.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewPostResponse(post)})
}

// ToggleLike POST /api/posts/:id/like.
func (h *PostsHandler) ToggleLike(c *fiber.Ctx) error {
	userID, err := auth.UserIDFromCtx(c)
	if err != nil {
		return err
	}
	postID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	status, err := h.reaction.ToggleLike(c.UserContext(), postID, userID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewLikeStatusResponse(status)})
}

// LikeStatus GET /api/posts/:id/like-status.
func (h *PostsHandler) LikeStatus(c *fiber.Ctx) error {
	userID, err := auth.UserIDFromCtx(c)
	if err != nil {
		return err
	}
	postID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	status, err := h.reaction.LikeStatus(c.UserContext(), postID, userID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewLikeStatusResponse(status)})
}

// AddComment POST /api/posts/:id/comments.
func (h *PostsHandler) AddComment(c *fiber.Ctx) error {
	userID, err := auth.UserIDFromCtx(c)
	if err != nil {
		return err
	}
	postID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req dto.CreateCommentRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	comment, err := h.reaction.AddComment(c.UserContext(), postID, userID, req.Content)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewCommentResponse(comment)})
}

// ListComments GET /api/posts/:id/comments.
func (h *PostsHandler) ListComments(c *fiber.Ctx) error {
	postID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	comments, err := h.reaction.Comments(c.UserContext(), postID)
	if err != nil {
		return err
	}
	items := make([]dto.CommentResponse, 0, len(comments))
	for i := range comments {
		items = append(items, dto.NewCommentResponse(&comments[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// DeleteComment DELETE /api/posts/comments/:commentId.
func (h *PostsHandler) DeleteComment(c *fiber.Ctx) error {
	userID, err := auth.UserIDFromCtx(c)
	if err != nil {
		return err
	}
	commentID, err := pathID(c, "commentId")
	if err != nil {
		return err
	}
	if err := h.reaction.DeleteComment(c.UserContext(), commentID, userID); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}
