package handler

import (
	"net/http"

	"foodreview/internal/microservices/http-api/dto"
	"foodreview/internal/microservices/http-api/middleware"
	"foodreview/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authService service.AuthService
}

func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) RegisterRoutes(rg *gin.RouterGroup, limit gin.HandlerFunc) {
	rg.POST("/register", limit, h.Register)
	rg.POST("/login", limit, h.Login)
	rg.POST("/refresh-token", limit, h.RefreshToken)
	rg.POST("/revoke", h.RevokeToken)
	rg.GET("/profile", middleware.RequireAuth(), h.Profile)
	rg.PUT("/profile", middleware.RequireAuth(), h.UpdateProfile)
	rg.PUT("/change-password", middleware.RequireAuth(), h.ChangePassword)
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	user, err := h.authService.Register(ctx, service.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		FullName: req.FullName,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.FromUser(user))
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Identifier() == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username or email is required"})
		return
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	pair, user, err := h.authService.Login(ctx, req.Identifier(), req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.AuthResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    int64(h.authService.AccessTokenTTL().Seconds()),
		User:         dto.FromUser(user),
	})
}

// RefreshToken exchanges a refresh token for a new token pair. The presented
// token is consumed.
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req dto.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	pair, err := h.authService.RefreshAccessToken(ctx, req.RefreshToken)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.TokenResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    int64(h.authService.AccessTokenTTL().Seconds()),
	})
}

func (h *AuthHandler) RevokeToken(c *gin.Context) {
	var req dto.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	if err := h.authService.RevokeToken(ctx, req.RefreshToken); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Refresh token revoked successfully"})
}

func (h *AuthHandler) Profile(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	user, err := h.authService.Profile(ctx, c.GetString(middleware.ContextKeyUserID))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromUser(user))
}

func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	var req dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	user, err := h.authService.UpdateProfile(ctx, c.GetString(middleware.ContextKeyUserID), service.ProfileUpdate{
		FullName: req.FullName,
		Bio:      req.Bio,
		Avatar:   req.Avatar,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Profile updated successfully", "user": dto.FromUser(user)})
}

// ChangePassword also signs the user out of every other session: all
// refresh tokens are revoked.
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var req dto.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	err := h.authService.ChangePassword(ctx, c.GetString(middleware.ContextKeyUserID), req.CurrentPassword, req.NewPassword)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Password changed successfully"})
}
