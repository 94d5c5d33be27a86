package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"LandWatch-App/internal/application"
	"LandWatch-App/internal/domain/model"
	"LandWatch-App/internal/logging"
)

// AuthHandler 登録・ログイン・トークンに関するHTTPハンドラー
type AuthHandler struct {
	authService application.AuthService
	logger      logging.Logger
}

// NewAuthHandler AuthHandlerの新しいインスタンスを作成
func NewAuthHandler(authService application.AuthService, logger logging.Logger) *AuthHandler {
	return &AuthHandler{authService: authService, logger: logger}
}

// SignUp POST /auth/sign-up
func (h *AuthHandler) SignUp(c *gin.Context) {
	var req model.CredentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	pair, err := h.authService.SignUp(c.Request.Context(), &req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, pair)
}

// SignIn POST /auth/sign-in
func (h *AuthHandler) SignIn(c *gin.Context) {
	var req model.CredentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	pair, err := h.authService.SignIn(c.Request.Context(), &req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, pair)
}

// Refresh POST /auth/refresh
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req model.TokenRefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	access, err := h.authService.Refresh(c.Request.Context(), req.Refresh)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, model.TokenPair{Access: access})
}

// Me GET /auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"email": currentUser(c).Email})
}

// MeFromToken POST /auth/me - ボディのアクセストークンを検証
func (h *AuthHandler) MeFromToken(c *gin.Context) {
	var req model.AccessTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
		return
	}

	user, err := h.authService.Authenticate(c.Request.Context(), req.Access)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"email": user.Email})
}

// Protected GET /auth/protected
func (h *AuthHandler) Protected(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("Hello %s, you are authenticated.", currentUser(c).Email),
	})
}
