package handler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/ErlanBelekov/task-api/internal/domain"
	"github.com/ErlanBelekov/task-api/internal/identity"
	"github.com/ErlanBelekov/task-api/internal/transport/http/middleware"
	"github.com/ErlanBelekov/task-api/internal/usecase"
	"github.com/gin-gonic/gin"
)

// authUsecaser is the subset of AuthUsecase the handler needs.
// Defined here (point of use) so tests can inject a fake.
type authUsecaser interface {
	Register(ctx context.Context, input usecase.RegisterInput) (*usecase.AuthResult, error)
	Login(ctx context.Context, email, password string) (*usecase.AuthResult, error)
	RefreshToken(ctx context.Context, rawToken string) (*usecase.AuthResult, error)
	GetSession(ctx context.Context, userID string) (*domain.Session, error)
}

type AuthHandler struct {
	authUsecase authUsecaser
	cookies     CookieConfig
	logger      *slog.Logger
}

func NewAuthHandler(authUsecase authUsecaser, cookies CookieConfig, logger *slog.Logger) *AuthHandler {
	registerValidators()
	return &AuthHandler{
		authUsecase: authUsecase,
		cookies:     cookies,
		logger:      logger.With("component", "auth_handler"),
	}
}

type registerRequest struct {
	FullName string `json:"fullName" binding:"required,min=5,max=255"`
	Email    string `json:"email"    binding:"required,email,max=255"`
	Password string `json:"password" binding:"required,strongpassword,max=72"`
}

type loginRequest struct {
	Email    string `json:"email"    binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type refreshRequest struct {
	Token string `json:"token"`
}

// POST /v1/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": bindingError(err)})
		return
	}

	result, err := h.authUsecase.Register(c.Request.Context(), usecase.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		FullName: req.FullName,
	})
	if err != nil {
		respondError(c, h.logger, "register", err)
		return
	}

	h.respondAuth(c, http.StatusCreated, result, "User registered successfully")
}

// POST /v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": bindingError(err)})
		return
	}

	result, err := h.authUsecase.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, h.logger, "login", err)
		return
	}

	h.respondAuth(c, http.StatusOK, result, "Login successful")
}

// POST /v1/auth/refresh-token
// Takes {"token": "<refresh>"}; an empty body falls back to the refresh_token cookie.
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": bindingError(err)})
		return
	}

	raw := req.Token
	if raw == "" {
		raw, _ = c.Cookie(middleware.RefreshCookie)
	}
	if raw == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": errTokenInvalid})
		return
	}

	result, err := h.authUsecase.RefreshToken(c.Request.Context(), raw)
	if err != nil {
		respondError(c, h.logger, "refresh token", err)
		return
	}

	h.respondAuth(c, http.StatusOK, result, "Token refreshed successfully")
}

// POST /v1/auth/logout
// Tokens are stateless; logging out only expires the cookies.
func (h *AuthHandler) Logout(c *gin.Context) {
	h.cookies.clearTokens(c)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

// GET /v1/auth/session (guarded)
func (h *AuthHandler) Session(c *gin.Context) {
	userID := identity.UserID(c.Request.Context())
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": errUnauthorized})
		return
	}

	session, err := h.authUsecase.GetSession(c.Request.Context(), userID)
	if err != nil {
		respondError(c, h.logger, "get session", err)
		return
	}

	c.JSON(http.StatusOK, response[sessionResponse]{
		Data: sessionResponse{
			ID:       session.ID,
			Email:    session.Email,
			FullName: session.FullName,
		},
		Message: "Session retrieved successfully",
	})
}

func (h *AuthHandler) respondAuth(c *gin.Context, status int, result *usecase.AuthResult, msg string) {
	h.cookies.setTokens(c, result.Token, result.RefreshToken)
	c.JSON(status, response[authResponse]{
		Data: authResponse{
			User:         toUserResponse(result.User),
			Token:        result.Token,
			RefreshToken: result.RefreshToken,
		},
		Message: msg,
	})
}
