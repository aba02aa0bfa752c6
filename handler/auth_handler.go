package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/watercharging/evtax-service/dto"
	"github.com/watercharging/evtax-service/service"
)

type AuthHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Login handles the POST /auth/login endpoint.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendError(c, http.StatusBadRequest, "email and password required", err)
		return
	}

	resp, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, dto.ErrInvalidCredentials) {
			sendError(c, http.StatusUnauthorized, "Invalid email or password", err)
			return
		}
		sendError(c, http.StatusInternalServerError, "Login failed", err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
