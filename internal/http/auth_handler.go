package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"social-api/internal/service"
)

const (
	msgRegistered         = "Successfully registered"
	msgMissingName        = "enter user name"
	msgPasswordMismatch   = "Please make sure your passwords match."
	msgWeakPassword       = "Password must contain at least 8 characters, including at least 1 number, 1 lowercase letter, and 1 uppercase letter."
	msgPasswordTooLong    = "Password must not be longer than 72 bytes."
	msgInvalidEmail       = "Please provide a valid email address."
	msgAlreadyRegistered  = "user already registered"
	msgLoginSuccessful    = "Login successful"
	msgMissingCredentials = "Fill in all the details"
	msgInvalidCredentials = "Invalid credentials"
	msgTooManyAttempts    = "Too many login attempts, try again later"
)

// AuthHandler expone signup, login y el perfil del token.
type AuthHandler struct {
	logger  *zap.Logger
	authSvc *service.AuthService
}

// NewAuthHandler crea una instancia de AuthHandler.
func NewAuthHandler(logger *zap.Logger, authSvc *service.AuthService) *AuthHandler {
	return &AuthHandler{logger: logger, authSvc: authSvc}
}

// Signup maneja POST /auth/signup.
func (h *AuthHandler) Signup(c *gin.Context) {
	var req struct {
		Name       string `json:"name"`
		Email      string `json:"email"`
		Password   string `json:"password"`
		RePassword string `json:"rePassword"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid signup request", zap.Error(err))
		respondMessage(c, http.StatusBadRequest, "invalid request")
		return
	}

	_, err := h.authSvc.Signup(c.Request.Context(), service.SignupInput{
		Name:       req.Name,
		Email:      req.Email,
		Password:   req.Password,
		RePassword: req.RePassword,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrDuplicateEmail):
			respondMessage(c, http.StatusConflict, msgAlreadyRegistered)
		case errors.Is(err, service.ErrMissingName):
			respondMessage(c, http.StatusBadRequest, msgMissingName)
		case errors.Is(err, service.ErrPasswordMismatch):
			respondMessage(c, http.StatusBadRequest, msgPasswordMismatch)
		case errors.Is(err, service.ErrWeakPassword):
			respondMessage(c, http.StatusBadRequest, msgWeakPassword)
		case errors.Is(err, service.ErrPasswordTooLong):
			respondMessage(c, http.StatusBadRequest, msgPasswordTooLong)
		case errors.Is(err, service.ErrInvalidEmail):
			respondMessage(c, http.StatusBadRequest, msgInvalidEmail)
		default:
			respondInternal(c, h.logger, "signup failed", err)
		}
		return
	}

	respondMessage(c, http.StatusCreated, msgRegistered)
}

// Login maneja POST /auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid login request", zap.Error(err))
		respondMessage(c, http.StatusBadRequest, "invalid request")
		return
	}

	result, err := h.authSvc.Login(c.Request.Context(), service.LoginInput{
		Email:    req.Email,
		Password: req.Password,
		ClientIP: c.ClientIP(),
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMissingCredentials):
			respondMessage(c, http.StatusUnprocessableEntity, msgMissingCredentials)
		case errors.Is(err, service.ErrInvalidCredentials):
			respondMessage(c, http.StatusUnauthorized, msgInvalidCredentials)
		case errors.Is(err, service.ErrRateLimited):
			respondMessage(c, http.StatusTooManyRequests, msgTooManyAttempts)
		default:
			respondInternal(c, h.logger, "login failed", err)
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":     msgLoginSuccessful,
		"token":       result.Token,
		"userDetails": result.User.PublicProfile(),
	})
}

// Me maneja GET /auth/me; requiere JWTAuthMiddleware.
func (h *AuthHandler) Me(c *gin.Context) {
	claims, ok := GetAuthClaims(c)
	if !ok {
		respondMessage(c, http.StatusUnauthorized, "Unauthorized")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"userDetails": gin.H{
			"userName": claims.Name,
			"id":       claims.Subject,
		},
	})
}
