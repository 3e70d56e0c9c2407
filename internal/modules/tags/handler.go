package tags

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/maximohlupin-omd-work/foodgram/internal/pkg/response"
	"github.com/maximohlupin-omd-work/foodgram/internal/repository"
)

type Handler struct {
	tags *repository.TagRepository
}

func NewHandler(tags *repository.TagRepository) *Handler {
	return &Handler{tags: tags}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group("/tags")
	{
		group.GET("/", h.List)
		group.GET("/:id/", h.Get)
	}
}

// List is unpaginated; tags are a small fixed vocabulary.
func (h *Handler) List(c *gin.Context) {
	list, err := h.tags.List(c.Request.Context(), c.Query("name"))
	if err != nil {
		response.Detail(c, http.StatusInternalServerError, "Failed to list tags")
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *Handler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Detail(c, http.StatusNotFound, "Tag not found")
		return
	}

	tag, err := h.tags.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Detail(c, http.StatusNotFound, "Tag not found")
		return
	}
	c.JSON(http.StatusOK, tag)
}
