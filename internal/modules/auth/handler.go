package auth

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/maximohlupin-omd-work/foodgram/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.FieldError(c, "non_field_errors", "Unable to log in with provided credentials.")
		return
	}

	tokenStr, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			response.FieldError(c, "non_field_errors", "Unable to log in with provided credentials.")
			return
		}
		response.Detail(c, http.StatusInternalServerError, "Failed to log in")
		return
	}

	c.JSON(http.StatusOK, TokenResponse{AuthToken: tokenStr})
}

func (h *Handler) Logout(c *gin.Context) {
	header := c.GetHeader("Authorization")
	if header == "" {
		response.Detail(c, http.StatusUnauthorized, "Authentication credentials were not provided.")
		return
	}

	tokenStr := header
	for _, prefix := range []string{"Token ", "Bearer "} {
		if strings.HasPrefix(header, prefix) {
			tokenStr = strings.TrimSpace(strings.TrimPrefix(header, prefix))
			break
		}
	}

	if err := h.service.Logout(c.Request.Context(), tokenStr); err != nil {
		if errors.Is(err, ErrTokenNotFound) {
			response.Detail(c, http.StatusNotFound, "Credentials were not found")
			return
		}
		response.Detail(c, http.StatusInternalServerError, "Failed to log out")
		return
	}

	c.Status(http.StatusNoContent)
}
