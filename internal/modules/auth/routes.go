package auth

import "github.com/gin-gonic/gin"

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	tokens := rg.Group("/auth/token")
	{
		tokens.POST("/login/", h.Login)
		tokens.POST("/logout/", h.Logout)
	}
}
