package http

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"social-api/internal/service"
)

const (
	msgAllPosts        = "All users posts data"
	msgNoData          = "No data found"
	msgPostIDRequired  = "Post ID is required"
	msgPostNotFound    = "Post not found"
	msgCommentRequired = "Post ID,and comment are required"
)

// PostHandler expone el CRUD de publicaciones, likes y comentarios.
type PostHandler struct {
	logger  *zap.Logger
	postSvc *service.PostService
}

// NewPostHandler crea una instancia de PostHandler.
func NewPostHandler(logger *zap.Logger, postSvc *service.PostService) *PostHandler {
	return &PostHandler{logger: logger, postSvc: postSvc}
}

// List maneja GET /posts.
func (h *PostHandler) List(c *gin.Context) {
	posts, err := h.postSvc.List(c.Request.Context())
	if err != nil {
		if errors.Is(err, service.ErrNoPosts) {
			respondMessage(c, http.StatusNotFound, msgNoData)
			return
		}
		respondInternal(c, h.logger, "list posts failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": msgAllPosts, "userAllPosts": posts})
}

// Get maneja GET /posts/:id.
func (h *PostHandler) Get(c *gin.Context) {
	post, err := h.postSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrPostNotFound) || errors.Is(err, service.ErrMissingPostID) {
			respondMessage(c, http.StatusNotFound, msgNoData)
			return
		}
		respondInternal(c, h.logger, "get post failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": msgAllPosts, "userAllPosts": post})
}

// Create maneja POST /posts/:userId.
func (h *PostHandler) Create(c *gin.Context) {
	var req struct {
		Title   string `json:"title"`
		Content string `json:"content"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid create post request", zap.Error(err))
		respondMessage(c, http.StatusBadRequest, "invalid request")
		return
	}

	post, err := h.postSvc.Create(c.Request.Context(), c.Param("userId"), req.Title, req.Content)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPostInvalidInput):
			respondMessage(c, http.StatusBadRequest, "Title and content are required")
		case errors.Is(err, service.ErrMissingUserID):
			respondMessage(c, http.StatusBadRequest, "User ID is required")
		case errors.Is(err, service.ErrUserNotFound):
			respondMessage(c, http.StatusNotFound, "User not found")
		default:
			respondInternal(c, h.logger, "create post failed", err)
		}
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Post created successfully", "post": post})
}

// Like maneja POST /posts/like/:id.
func (h *PostHandler) Like(c *gin.Context) {
	postID := c.Param("id")
	likes, err := h.postSvc.Like(c.Request.Context(), postID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMissingPostID):
			respondMessage(c, http.StatusBadRequest, msgPostIDRequired)
		case errors.Is(err, service.ErrPostNotFound):
			respondMessage(c, http.StatusNotFound, "post not found")
		default:
			respondInternal(c, h.logger, "like post failed", err)
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("You have liked the post with ID %s", postID),
		"like":    likes,
	})
}

// Update maneja PUT /posts/edit/:id.
func (h *PostHandler) Update(c *gin.Context) {
	var req struct {
		Title   string `json:"title"`
		Content string `json:"content"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid update post request", zap.Error(err))
		respondMessage(c, http.StatusBadRequest, "invalid request")
		return
	}

	postID := c.Param("id")
	if err := h.postSvc.Update(c.Request.Context(), postID, req.Title, req.Content); err != nil {
		h.respondPostError(c, "update post failed", err)
		return
	}
	respondMessage(c, http.StatusOK, fmt.Sprintf("Post with ID %s has been updated successfully", postID))
}

// AddComment maneja POST /posts/comment/:id.
func (h *PostHandler) AddComment(c *gin.Context) {
	var req struct {
		Comment string `json:"comment"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid comment request", zap.Error(err))
		respondMessage(c, http.StatusBadRequest, "invalid request")
		return
	}

	post, err := h.postSvc.AddComment(c.Request.Context(), c.Param("id"), req.Comment)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCommentInvalidInput), errors.Is(err, service.ErrMissingPostID):
			respondMessage(c, http.StatusBadRequest, msgCommentRequired)
		case errors.Is(err, service.ErrPostNotFound):
			respondMessage(c, http.StatusNotFound, msgPostNotFound)
		default:
			respondInternal(c, h.logger, "add comment failed", err)
		}
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Comment added successfully", "updatedPost": post})
}

// Delete maneja DELETE /posts/delete/:id.
func (h *PostHandler) Delete(c *gin.Context) {
	postID := c.Param("id")
	if err := h.postSvc.Delete(c.Request.Context(), postID); err != nil {
		h.respondPostError(c, "delete post failed", err)
		return
	}
	respondMessage(c, http.StatusOK, fmt.Sprintf("Post with ID %s has been deleted successfully", postID))
}

func (h *PostHandler) respondPostError(c *gin.Context, msg string, err error) {
	switch {
	case errors.Is(err, service.ErrMissingPostID):
		respondMessage(c, http.StatusBadRequest, msgPostIDRequired)
	case errors.Is(err, service.ErrPostNotFound):
		respondMessage(c, http.StatusNotFound, msgPostNotFound)
	default:
		respondInternal(c, h.logger, msg, err)
	}
}
