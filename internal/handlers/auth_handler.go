package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "finboard/internal/errors"
	"finboard/internal/middleware"
	"finboard/internal/models"
	"finboard/internal/services"
)

// AuthHandler handles authentication-related requests
type AuthHandler struct {
	session      services.SessionServicer
	auditService services.AuditServicer
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(session services.SessionServicer, auditService services.AuditServicer) *AuthHandler {
	return &AuthHandler{session: session, auditService: auditService}
}

// LoginRequest represents the login request payload. Field checks are done
// by the session so the form gets its inline messages.
type LoginRequest struct {
	Email    string `json:"email" binding:"max=255"`
	Password string `json:"password" binding:"max=128"`
}

// AuthResponse represents the authentication response with token
type AuthResponse struct {
	Token     string      `json:"token"`
	ExpiresAt time.Time   `json:"expires_at"`
	User      models.User `json:"user"`
}

// SessionResponse represents the state of the session
type SessionResponse struct {
	User      *models.User `json:"user"`
	IsLoading bool         `json:"isLoading"`
}

// Login handles email and password sign-in
// @Summary     Sign in
// @Description Sign in with any email and a password of at least 6 characters
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       request body LoginRequest true "Credentials"
// @Success     200 {object} AuthResponse "Signed in"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Invalid credentials"
// @Failure     409 {object} ErrorResponse "A sign-in is already in progress"
// @Router      /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	user, err := h.session.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondWithError(c, err)
		return
	}
	h.respondWithToken(c, user, "LOGIN")
}

// LoginWithGoogle handles Google sign-in
// @Summary     Sign in with Google
// @Description Sign in with the demo Google account
// @Tags        auth
// @Produce     json
// @Success     200 {object} AuthResponse "Signed in"
// @Failure     409 {object} ErrorResponse "A sign-in is already in progress"
// @Router      /auth/google [post]
func (h *AuthHandler) LoginWithGoogle(c *gin.Context) {
	user, err := h.session.LoginWithGoogle(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}
	h.respondWithToken(c, user, "LOGIN_GOOGLE")
}

func (h *AuthHandler) respondWithToken(c *gin.Context, user models.User, action string) {
	token, expiresAt, err := middleware.GenerateAccessToken(user)
	if err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrInternalServer, err))
		return
	}

	h.auditService.Log(user.ID, action, "session", user.Email, c.ClientIP(), nil)

	c.JSON(http.StatusOK, AuthResponse{Token: token, ExpiresAt: expiresAt, User: user})
}

// Logout handles sign-out
// @Summary     Sign out
// @Description End the session. Every issued token stops working.
// @Tags        auth
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} SessionResponse "Signed out"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.session.Logout(c.Request.Context()); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "LOGOUT", "session", c.GetString("email"), c.ClientIP(), nil)

	c.JSON(http.StatusOK, SessionResponse{})
}

// GetSession returns the state of the session
// @Summary     Get session
// @Description Get the signed-in user and whether a sign-in is in progress
// @Tags        auth
// @Produce     json
// @Success     200 {object} SessionResponse "Session state"
// @Router      /auth/session [get]
func (h *AuthHandler) GetSession(c *gin.Context) {
	st := h.session.State()
	c.JSON(http.StatusOK, SessionResponse{User: st.User, IsLoading: st.IsLoading})
}

// GetProfile handles retrieving the signed-in user's profile
// @Summary     Get user profile
// @Description Get the authenticated user's profile information
// @Tags        user
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} ProfileResponse "User profile"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /profile [get]
func (h *AuthHandler) GetProfile(c *gin.Context) {
	if _, err := getUserID(c); err != nil {
		respondWithError(c, err)
		return
	}

	user, ok := h.session.CurrentUser()
	if !ok {
		respondWithError(c, apperrors.ErrUnauthorized)
		return
	}

	c.JSON(http.StatusOK, ProfileResponse{User: user})
}
