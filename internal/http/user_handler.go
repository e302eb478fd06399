package http

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"social-api/internal/service"
)

// UserHandler mantiene dependencias para endpoints de usuarios.
type UserHandler struct {
	logger  *zap.Logger
	userSvc *service.UserService
}

// NewUserHandler crea una instancia de UserHandler.
func NewUserHandler(logger *zap.Logger, userSvc *service.UserService) *UserHandler {
	return &UserHandler{logger: logger, userSvc: userSvc}
}

// Follow maneja POST /users/follow/:userId.
func (h *UserHandler) Follow(c *gin.Context) {
	userID := c.Param("userId")
	follow, err := h.userSvc.Follow(c.Request.Context(), userID)
	if err != nil {
		h.respondUserError(c, "follow failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("You have successfully followed user with ID %s", userID),
		"follow":  follow,
	})
}

// Unfollow maneja POST /users/unfollow/:userId.
func (h *UserHandler) Unfollow(c *gin.Context) {
	userID := c.Param("userId")
	follow, err := h.userSvc.Unfollow(c.Request.Context(), userID)
	if err != nil {
		h.respondUserError(c, "unfollow failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("You have successfully Unfollowed user with ID %s", userID),
		"follow":  follow,
	})
}

// Profile maneja GET /users/:userId y devuelve el perfil público.
func (h *UserHandler) Profile(c *gin.Context) {
	user, err := h.userSvc.GetByID(c.Request.Context(), c.Param("userId"))
	if err != nil {
		h.respondUserError(c, "get profile failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"userDetails": user.PublicProfile(),
		"follow":      user.Follow,
	})
}

func (h *UserHandler) respondUserError(c *gin.Context, msg string, err error) {
	switch {
	case errors.Is(err, service.ErrMissingUserID):
		respondMessage(c, http.StatusBadRequest, "User ID is required")
	case errors.Is(err, service.ErrUserNotFound):
		respondMessage(c, http.StatusNotFound, "User not found")
	default:
		respondInternal(c, h.logger, msg, err)
	}
}
