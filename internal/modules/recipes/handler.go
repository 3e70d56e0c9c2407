package recipes

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/maximohlupin-omd-work/foodgram/internal/domain"
	"github.com/maximohlupin-omd-work/foodgram/internal/middleware"
	"github.com/maximohlupin-omd-work/foodgram/internal/pkg/images"
	"github.com/maximohlupin-omd-work/foodgram/internal/pkg/pagination"
	"github.com/maximohlupin-omd-work/foodgram/internal/pkg/response"
	"github.com/maximohlupin-omd-work/foodgram/internal/pkg/validator"
)

type Handler struct {
	service  *Service
	media    *images.Store
	pageSize int
}

func NewHandler(service *Service, media *images.Store, pageSize int) *Handler {
	return &Handler{service: service, media: media, pageSize: pageSize}
}

func (h *Handler) payload(c *gin.Context, v *RecipeView) RecipePayload {
	r := v.Recipe

	p := RecipePayload{
		ID:               r.ID,
		Tags:             make([]TagPayload, 0, len(r.Tags)),
		Ingredients:      make([]IngredientPayload, 0, len(r.Ingredients)),
		IsFavorited:      v.IsFavorited,
		IsInShoppingCart: v.IsInShoppingCart,
		Name:             r.Name,
		Image:            images.AbsoluteURL(c, r.Image),
		Text:             r.Text,
		CookingTime:      r.CookingTime,
	}
	for _, t := range r.Tags {
		p.Tags = append(p.Tags, TagPayload{ID: t.ID, Name: t.Name, Color: t.Color, Slug: t.Slug})
	}
	for _, item := range r.Ingredients {
		ip := IngredientPayload{ID: item.IngredientUnitID, Amount: item.Amount}
		if item.Unit != nil {
			ip.Name = item.Unit.Name
			ip.MeasurementUnit = item.Unit.MeasurementUnit
		}
		p.Ingredients = append(p.Ingredients, ip)
	}
	if r.Author != nil {
		p.Author = AuthorPayload{
			ID:           r.Author.ID,
			Email:        r.Author.Email,
			Username:     r.Author.Username,
			FirstName:    r.Author.FirstName,
			LastName:     r.Author.LastName,
			IsSubscribed: v.AuthorSubscribed,
		}
	}
	return p
}

func (h *Handler) listQuery(c *gin.Context) ListQuery {
	q := ListQuery{TagSlugs: c.QueryArray("tags")}

	if raw := c.Query("author"); raw != "" {
		if id, err := strconv.ParseInt(raw, 10, 64); err == nil {
			q.AuthorID = &id
		}
	}
	// flag filters are meaningful only for authenticated viewers
	if middleware.ViewerID(c) != nil {
		if raw := c.Query("is_favorited"); raw == "1" || raw == "0" {
			v := raw == "1"
			q.IsFavorited = &v
		}
		if raw := c.Query("is_in_shopping_cart"); raw == "1" || raw == "0" {
			v := raw == "1"
			q.IsInShoppingCart = &v
		}
	}
	return q
}

func (h *Handler) List(c *gin.Context) {
	p := pagination.FromQuery(c, h.pageSize)

	views, total, err := h.service.List(c.Request.Context(), middleware.ViewerID(c), h.listQuery(c), p.Limit, p.Offset())
	if err != nil {
		response.Detail(c, http.StatusInternalServerError, "Failed to list recipes")
		return
	}

	results := make([]RecipePayload, 0, len(views))
	for i := range views {
		results = append(results, h.payload(c, &views[i]))
	}
	c.JSON(http.StatusOK, pagination.Wrap(c, p, total, results))
}

func (h *Handler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Detail(c, http.StatusNotFound, "Recipe not found")
		return
	}

	view, err := h.service.Get(c.Request.Context(), middleware.ViewerID(c), id)
	if err != nil {
		if errors.Is(err, ErrRecipeNotFound) {
			response.Detail(c, http.StatusNotFound, "Recipe not found")
			return
		}
		response.Detail(c, http.StatusInternalServerError, "Failed to load recipe")
		return
	}
	c.JSON(http.StatusOK, h.payload(c, view))
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.FieldErrors(c, validator.Fields(err))
		return
	}

	imagePath, err := h.media.SaveDataURI(req.Image)
	if err != nil {
		response.FieldError(c, "image", "Invalid image payload")
		return
	}

	view, err := h.service.Create(c.Request.Context(), c.GetInt64("user_id"), req, imagePath)
	if err != nil {
		h.media.Remove(imagePath)
		h.writeValidationError(c, err)
		return
	}
	c.JSON(http.StatusCreated, h.payload(c, view))
}

func (h *Handler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Detail(c, http.StatusNotFound, "Recipe not found")
		return
	}

	var req UpdateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.FieldErrors(c, validator.Fields(err))
		return
	}

	var imagePath *string
	if req.Image != nil {
		stored, err := h.media.SaveDataURI(*req.Image)
		if err != nil {
			response.FieldError(c, "image", "Invalid image payload")
			return
		}
		imagePath = &stored
	}

	view, replaced, err := h.service.Update(c.Request.Context(), c.GetInt64("user_id"), id, req, imagePath)
	if err != nil {
		if imagePath != nil {
			h.media.Remove(*imagePath)
		}
		switch {
		case errors.Is(err, ErrRecipeNotFound):
			response.Detail(c, http.StatusNotFound, "Recipe not found")
		case errors.Is(err, ErrForbidden):
			response.Detail(c, http.StatusForbidden, "No access")
		default:
			h.writeValidationError(c, err)
		}
		return
	}

	h.media.Remove(replaced)
	c.JSON(http.StatusOK, h.payload(c, view))
}

func (h *Handler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Detail(c, http.StatusNotFound, "Recipe not found")
		return
	}

	imagePath, err := h.service.Delete(c.Request.Context(), c.GetInt64("user_id"), id)
	if err != nil {
		switch {
		case errors.Is(err, ErrRecipeNotFound):
			response.Detail(c, http.StatusNotFound, "Recipe not found")
		case errors.Is(err, ErrForbidden):
			response.Detail(c, http.StatusForbidden, "No access")
		default:
			response.Detail(c, http.StatusInternalServerError, "Failed to delete recipe")
		}
		return
	}

	h.media.Remove(imagePath)
	c.Status(http.StatusNoContent)
}

func (h *Handler) writeValidationError(c *gin.Context, err error) {
	var entryErr *EntryAmountError
	switch {
	case errors.Is(err, ErrEmptyIngredients):
		response.FieldError(c, "ingredients", "This list may not be empty.")
	case errors.As(err, &entryErr):
		response.FieldError(c, "ingredients", entryErr.Error())
	case errors.Is(err, ErrUnitNotFound):
		response.FieldError(c, "ingredients", "Unit not found.")
	case errors.Is(err, ErrTagNotFound):
		response.FieldError(c, "tags", "Tag not found.")
	case errors.Is(err, ErrCookingTime):
		response.FieldError(c, "cooking_time", "Must be greater than or equal to 1.")
	default:
		response.Detail(c, http.StatusInternalServerError, "Failed to save recipe")
	}
}

func (h *Handler) addMembership(c *gin.Context, add func(ctx context.Context, userID, recipeID int64) (*domain.Recipe, error)) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Detail(c, http.StatusNotFound, "Recipe not found")
		return
	}

	recipe, err := add(c.Request.Context(), c.GetInt64("user_id"), id)
	if err != nil {
		switch {
		case errors.Is(err, ErrRecipeNotFound):
			response.Detail(c, http.StatusNotFound, "Recipe not found")
		case errors.Is(err, ErrAlreadyAdded):
			response.Conflict(c, "Recipe is already on the list")
		default:
			response.Detail(c, http.StatusInternalServerError, "Failed to add recipe")
		}
		return
	}

	c.JSON(http.StatusCreated, ShortRecipePayload{
		ID:          recipe.ID,
		Name:        recipe.Name,
		Image:       images.AbsoluteURL(c, recipe.Image),
		CookingTime: recipe.CookingTime,
	})
}

func (h *Handler) removeMembership(c *gin.Context, remove func(ctx context.Context, userID, recipeID int64) error, missing string) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Detail(c, http.StatusNotFound, "Recipe not found")
		return
	}

	if err := remove(c.Request.Context(), c.GetInt64("user_id"), id); err != nil {
		switch {
		case errors.Is(err, ErrRecipeNotFound):
			response.Detail(c, http.StatusNotFound, "Recipe not found")
		case errors.Is(err, ErrNotAdded):
			response.Conflict(c, missing)
		default:
			response.Detail(c, http.StatusInternalServerError, "Failed to remove recipe")
		}
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) AddFavorite(c *gin.Context) {
	h.addMembership(c, h.service.AddFavorite)
}

func (h *Handler) RemoveFavorite(c *gin.Context) {
	h.removeMembership(c, h.service.RemoveFavorite, "Recipe was not in favorites")
}

func (h *Handler) AddToShopList(c *gin.Context) {
	h.addMembership(c, h.service.AddToShopList)
}

func (h *Handler) RemoveFromShopList(c *gin.Context) {
	h.removeMembership(c, h.service.RemoveFromShopList, "Recipe was not in the shopping list")
}

func (h *Handler) DownloadShoppingCart(c *gin.Context) {
	data, err := h.service.ShoppingListCSV(c.Request.Context(), c.GetInt64("user_id"))
	if err != nil {
		response.Detail(c, http.StatusInternalServerError, "Failed to export shopping list")
		return
	}

	c.Header("Content-Disposition", "attachment;filename=export.csv")
	c.Data(http.StatusOK, "text/csv", data)
}
