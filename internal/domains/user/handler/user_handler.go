package handler

import (
	"errors"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"beetlevault-backend/internal/domains/user"
	"beetlevault-backend/internal/shared/middleware"
	"beetlevault-backend/internal/shared/response"
	"beetlevault-backend/pkg/token"
)

type UserHandler struct {
	service user.Service
	tokens  *token.Manager
}

func NewUserHandler(service user.Service, tokens *token.Manager) *UserHandler {
	return &UserHandler{service: service, tokens: tokens}
}

// Signup creates an account and starts a session in the same request.
// POST /api/v1/auth/signup
func (h *UserHandler) Signup(c *gin.Context) {
	var req user.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid request body")
		return
	}

	created, err := h.service.Signup(c.Request.Context(), req)
	if err != nil {
		h.writeAuthError(c, err)
		return
	}

	if !h.startSession(c, created.ID.String()) {
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"user": created})
}

// Login verifies credentials and sets the session cookie.
// POST /api/v1/auth/login
func (h *UserHandler) Login(c *gin.Context) {
	var req user.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid request body")
		return
	}

	found, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		h.writeAuthError(c, err)
		return
	}

	if !h.startSession(c, found.ID.String()) {
		return
	}

	response.Success(c, http.StatusOK, gin.H{"user": found})
}

// Logout clears the session cookie. Always succeeds, signed in or not.
// POST /api/v1/auth/logout
func (h *UserHandler) Logout(c *gin.Context) {
	middleware.ClearSessionCookie(c)
	response.Success(c, http.StatusOK, gin.H{"success": true})
}

// Me returns the authenticated user's public projection.
// GET /api/v1/auth/me
func (h *UserHandler) Me(c *gin.Context) {
	current := middleware.CurrentUser(c)
	response.Success(c, http.StatusOK, gin.H{"user": current})
}

func (h *UserHandler) startSession(c *gin.Context, userID string) bool {
	sessionToken, err := h.tokens.IssueSession(userID)
	if err != nil {
		log.Error().Err(err).Msg("Failed to issue session token")
		response.InternalError(c)
		return false
	}
	middleware.SetSessionCookie(c, sessionToken)
	return true
}

func (h *UserHandler) writeAuthError(c *gin.Context, err error) {
	var verrs validation.Errors
	switch {
	case errors.As(err, &verrs):
		response.ValidationError(c, response.ValidationMessage(err))
	case errors.Is(err, user.ErrEmailAlreadyExists):
		response.UserExists(c, "an account with this email already exists")
	case errors.Is(err, user.ErrInvalidCredentials):
		response.InvalidCredentials(c, "invalid email or password")
	default:
		log.Error().Err(err).Msg("Auth request failed")
		response.InternalError(c)
	}
}
