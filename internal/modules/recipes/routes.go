package recipes

import "github.com/gin-gonic/gin"

// RegisterRoutes wires the recipe endpoints. Read endpoints carry optional
// auth so flags can be annotated for authenticated viewers; everything else
// requires a live token. The static download path is registered alongside
// the :id routes, which gin resolves without conflict.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, optional, required gin.HandlerFunc) {
	group := rg.Group("/recipes")
	{
		group.GET("/", optional, h.List)
		group.GET("/:id/", optional, h.Get)

		group.POST("/", required, h.Create)
		group.PATCH("/:id/", required, h.Update)
		group.DELETE("/:id/", required, h.Delete)

		group.GET("/download_shopping_cart/", required, h.DownloadShoppingCart)

		group.POST("/:id/favorite/", required, h.AddFavorite)
		group.DELETE("/:id/favorite/", required, h.RemoveFavorite)
		group.POST("/:id/shopping_cart/", required, h.AddToShopList)
		group.DELETE("/:id/shopping_cart/", required, h.RemoveFromShopList)
	}
}
