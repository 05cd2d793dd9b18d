// Package handlers contains HTTP request handlers for the auth service.
package handlers

import (
	"crypto/subtle"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/wasa-portal/auth-service/internal/apperrors"
	"github.com/wasa-portal/auth-service/internal/models"
	"github.com/wasa-portal/auth-service/internal/respond"
	"github.com/wasa-portal/auth-service/internal/service"
)

// AuthHandler handles authentication HTTP requests.
type AuthHandler struct {
	authService service.AuthService
	setupKey    string
	logger      *slog.Logger
}

// NewAuthHandler creates a new AuthHandler instance.
func NewAuthHandler(authService service.AuthService, setupKey string, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		setupKey:    setupKey,
		logger:      logger,
	}
}

// SetupAdminRequest is the bootstrap registration payload: the regular
// registration fields plus the out-of-band setup key.
type SetupAdminRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	SetupKey string `json:"setupKey"`
}

// Login godoc
// @Summary User login
// @Description Authenticate user by username, password and role and return a signed token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body service.LoginRequest true "Login credentials"
// @Success 200 {object} service.LoginResponse
// @Failure 400 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Router /login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req service.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, apperrors.Validation("Username, password and role are required", nil))
		return
	}

	response, err := h.authService.Login(c.Request.Context(), req)
	if err != nil {
		respond.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// RegisterAdmin godoc
// @Summary Register an admin user
// @Description Create a new admin user (admin token required)
// @Tags auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body service.RegisterRequest true "New user fields"
// @Success 201 {object} models.User
// @Failure 400 {object} map[string]interface{}
// @Failure 409 {object} map[string]interface{}
// @Router /register-admin [post]
func (h *AuthHandler) RegisterAdmin(c *gin.Context) {
	h.register(c, models.RoleAdmin)
}

// RegisterSupervisor godoc
// @Summary Register a supervisor user
// @Description Create a new supervisor user (admin token required)
// @Tags auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body service.RegisterRequest true "New user fields"
// @Success 201 {object} models.User
// @Failure 400 {object} map[string]interface{}
// @Failure 409 {object} map[string]interface{}
// @Router /register-supervisor [post]
func (h *AuthHandler) RegisterSupervisor(c *gin.Context) {
	h.register(c, models.RoleSupervisor)
}

func (h *AuthHandler) register(c *gin.Context, role string) {
	var req service.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, apperrors.Validation("Username, password, name and email are required", nil))
		return
	}

	user, err := h.authService.Register(c.Request.Context(), req, role)
	if err != nil {
		respond.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, user)
}

// SetupAdmin godoc
// @Summary Bootstrap the first admin
// @Description Create an admin user without authentication, gated by the shared setup key
// @Tags auth
// @Accept json
// @Produce json
// @Param request body SetupAdminRequest true "New admin fields plus setup key"
// @Success 201 {object} models.User
// @Failure 400 {object} map[string]interface{}
// @Failure 403 {object} map[string]interface{}
// @Router /setup-admin [post]
func (h *AuthHandler) SetupAdmin(c *gin.Context) {
	var req SetupAdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, apperrors.Validation("Username, password, name, email, and setup key are required", nil))
		return
	}
	if req.Username == "" || req.Password == "" || req.Name == "" || req.Email == "" || req.SetupKey == "" {
		h.logger.Error("setup admin failed: missing fields",
			"username", req.Username, "email", req.Email)
		respond.Error(c, apperrors.Validation("Username, password, name, email, and setup key are required", nil))
		return
	}

	// The key check happens before the registration flow: a wrong key must
	// never create a row.
	if subtle.ConstantTimeCompare([]byte(req.SetupKey), []byte(h.setupKey)) != 1 {
		h.logger.Warn("setup admin failed: invalid setup key",
			"username", req.Username, "email", req.Email)
		respond.Error(c, apperrors.Forbidden("Invalid setup key"))
		return
	}

	user, err := h.authService.Register(c.Request.Context(), service.RegisterRequest{
		Username: req.Username,
		Password: req.Password,
		Name:     req.Name,
		Email:    req.Email,
	}, models.RoleAdmin)
	if err != nil {
		respond.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, user)
}

// ListUsers godoc
// @Summary List all users
// @Description Return all users without password hashes (admin token required)
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.User
// @Failure 401 {object} map[string]interface{}
// @Failure 403 {object} map[string]interface{}
// @Router /users [get]
func (h *AuthHandler) ListUsers(c *gin.Context) {
	users, err := h.authService.ListUsers(c.Request.Context())
	if err != nil {
		respond.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, users)
}
