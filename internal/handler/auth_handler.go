package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"apartment-be-svc/internal/config"
	"apartment-be-svc/internal/models/response"
	"apartment-be-svc/internal/service"
	"apartment-be-svc/pkg/logger"
	"apartment-be-svc/pkg/utils"
)

const (
	refreshCookieName = "refresh_token"
	refreshCookiePath = "/api/v1/auth"
)

// AuthHandler handles login and token lifecycle requests
type AuthHandler struct {
	authService service.AuthService
	jwtConfig   config.JWTConfig
	logger      *logger.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService service.AuthService, jwtConfig config.JWTConfig, logger *logger.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		jwtConfig:   jwtConfig,
		logger:      logger,
	}
}

// LoginRequest represents the login request body
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" example:"admin@bluemoon.vn"`
	Password string `json:"password" binding:"required" example:"secret"`
}

// Login handles POST /api/v1/auth/login
// @Summary Log in
// @Description Exchange email and password for an access token. The refresh token is set as an HttpOnly cookie.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Credentials"
// @Success 200 {object} utils.APIResponse{data=response.LoginResponse} "Logged in"
// @Failure 400 {object} utils.APIResponse "Invalid request body"
// @Failure 401 {object} utils.APIResponse "Invalid credentials"
// @Failure 429 {object} utils.APIResponse "Too many attempts"
// @Router /api/v1/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err)
		return
	}

	result, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, h.logger, err, "Failed to log in")
		return
	}

	h.setRefreshCookie(c, result.RefreshToken, int(h.jwtConfig.RefreshTTL.Seconds()))
	utils.SuccessResponse(c, "Login successful", toLoginResponse(result))
}

// Refresh handles POST /api/v1/auth/refresh
// @Summary Refresh access token
// @Description Rotate the refresh token cookie and issue a new access token
// @Tags auth
// @Produce json
// @Success 200 {object} utils.APIResponse{data=response.LoginResponse} "Token refreshed"
// @Failure 401 {object} utils.APIResponse "Missing or invalid refresh token"
// @Router /api/v1/auth/refresh [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	token, err := c.Cookie(refreshCookieName)
	if err != nil || token == "" {
		utils.UnauthorizedResponse(c, "Missing refresh token")
		return
	}

	result, err := h.authService.Refresh(c.Request.Context(), token)
	if err != nil {
		h.setRefreshCookie(c, "", -1)
		respondError(c, h.logger, err, "Failed to refresh token")
		return
	}

	h.setRefreshCookie(c, result.RefreshToken, int(h.jwtConfig.RefreshTTL.Seconds()))
	utils.SuccessResponse(c, "Token refreshed", toLoginResponse(result))
}

// Logout handles POST /api/v1/auth/logout
// @Summary Log out
// @Description Revoke the refresh token and expire its cookie
// @Tags auth
// @Produce json
// @Success 200 {object} utils.APIResponse "Logged out"
// @Router /api/v1/auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	if token, err := c.Cookie(refreshCookieName); err == nil && token != "" {
		if err := h.authService.Logout(c.Request.Context(), token); err != nil {
			h.logger.WithError(err).Warn("Failed to revoke refresh token")
		}
	}

	h.setRefreshCookie(c, "", -1)
	utils.SuccessResponse(c, "Logged out", nil)
}

// Me handles GET /api/v1/auth/me
// @Summary Current user
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} utils.APIResponse{data=billing.User} "Current user"
// @Failure 401 {object} utils.APIResponse "Unauthorized"
// @Router /api/v1/auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	user, err := h.authService.Me(c.Request.Context(), actor.UserID)
	if err != nil {
		respondError(c, h.logger, err, "Failed to load current user")
		return
	}

	utils.SuccessResponse(c, "User retrieved successfully", user)
}

func (h *AuthHandler) setRefreshCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(refreshCookieName, value, maxAge, refreshCookiePath, "", h.jwtConfig.CookieSecure, true)
}

func toLoginResponse(result *service.AuthResult) response.LoginResponse {
	return response.LoginResponse{
		AccessToken: result.AccessToken,
		TokenType:   "Bearer",
		ExpiresIn:   int64(result.ExpiresIn.Seconds()),
		User:        result.User,
	}
}
