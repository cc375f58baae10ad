package handler

import (
	"context"
	"net/http"

	"parqueo_api/internal/api/middleware"
	"parqueo_api/internal/api/respond"
	"parqueo_api/internal/domain"

	"github.com/gin-gonic/gin"
)

type AuthService interface {
	Register(ctx context.Context, dto domain.RegisterUserDTO, caller *domain.UserIdentity) (*domain.User, error)
	Login(ctx context.Context, dto domain.LoginUserDTO) (*domain.AuthResponseDTO, error)
	Profile(ctx context.Context, userID int) (*domain.User, error)
	Logout(ctx context.Context, userID int) error
}

type AuthHandler struct {
	authService AuthService
}

func NewAuthHandler(as AuthService) *AuthHandler {
	return &AuthHandler{authService: as}
}

// POST /auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var dto domain.RegisterUserDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		respond.Error(c, err)
		return
	}

	caller, _ := middleware.Identity(c)
	user, err := h.authService.Register(c.Request.Context(), dto, caller)
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"mensaje": "Usuario registrado exitosamente", "usuario": user})
}

// POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var dto domain.LoginUserDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		respond.Error(c, err)
		return
	}

	authResponse, err := h.authService.Login(c.Request.Context(), dto)
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"mensaje": "Login exitoso", "token": authResponse.Token, "usuario": authResponse.Usuario})
}

// GET /auth/perfil
func (h *AuthHandler) Profile(c *gin.Context) {
	user, err := h.authService.Profile(c.Request.Context(), callerID(c))
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"usuario": user})
}

// POST /auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.authService.Logout(c.Request.Context(), callerID(c)); err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"mensaje": "Logout exitoso"})
}
