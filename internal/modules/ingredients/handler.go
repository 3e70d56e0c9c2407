package ingredients

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/maximohlupin-omd-work/foodgram/internal/pkg/response"
	"github.com/maximohlupin-omd-work/foodgram/internal/repository"
)

// Handler serves the read-only ingredient catalog used when authoring
// recipes.
type Handler struct {
	units *repository.IngredientUnitRepository
}

func NewHandler(units *repository.IngredientUnitRepository) *Handler {
	return &Handler{units: units}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group("/ingredients")
	{
		group.GET("/", h.List)
		group.GET("/:id/", h.Get)
	}
}

func (h *Handler) List(c *gin.Context) {
	list, err := h.units.List(c.Request.Context(), c.Query("name"))
	if err != nil {
		response.Detail(c, http.StatusInternalServerError, "Failed to list ingredients")
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *Handler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Detail(c, http.StatusNotFound, "Ingredient not found")
		return
	}

	unit, err := h.units.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Detail(c, http.StatusNotFound, "Ingredient not found")
		return
	}
	c.JSON(http.StatusOK, unit)
}
