package users

import "github.com/gin-gonic/gin"

// RegisterPublicRoutes attaches the endpoints open to anonymous callers.
// The group is expected to carry optional-auth middleware so cards can be
// annotated for authenticated viewers.
func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	group := rg.Group("/users")
	{
		group.POST("/", h.Register)
		group.GET("/", h.List)
		group.GET("/:id/", h.Get)
	}
}

func (h *Handler) RegisterProtectedRoutes(rg *gin.RouterGroup) {
	group := rg.Group("/users")
	{
		group.GET("/me/", h.Me)
		group.POST("/set_password/", h.SetPassword)
		group.GET("/subscriptions/", h.Subscriptions)
		group.POST("/:id/subscribe/", h.Subscribe)
		group.DELETE("/:id/subscribe/", h.Unsubscribe)
	}
}
