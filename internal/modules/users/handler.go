package users

import (
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
	pageSize int
}

func NewHandler(service *Service, pageSize int) *Handler {
	return &Handler{service: service, pageSize: pageSize}
}

func card(u *domain.User, isSubscribed bool) UserCard {
	return UserCard{
		ID:           u.ID,
		Email:        u.Email,
		Username:     u.Username,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		IsSubscribed: isSubscribed,
	}
}

func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.FieldErrors(c, validator.Fields(err))
		return
	}

	user, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrEmailExists) {
			response.FieldError(c, "email", "A user with this email already exists.")
			return
		}
		response.Detail(c, http.StatusInternalServerError, "Failed to register")
		return
	}

	c.JSON(http.StatusCreated, card(user, false))
}

func (h *Handler) List(c *gin.Context) {
	p := pagination.FromQuery(c, h.pageSize)

	list, subscribed, total, err := h.service.List(c.Request.Context(), middleware.ViewerID(c), p.Limit, p.Offset())
	if err != nil {
		response.Detail(c, http.StatusInternalServerError, "Failed to list users")
		return
	}

	cards := make([]UserCard, 0, len(list))
	for i := range list {
		cards = append(cards, card(&list[i], subscribed[list[i].ID]))
	}
	c.JSON(http.StatusOK, pagination.Wrap(c, p, total, cards))
}

func (h *Handler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Detail(c, http.StatusNotFound, "User not found")
		return
	}

	user, isSubscribed, err := h.service.Get(c.Request.Context(), middleware.ViewerID(c), id)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			response.Detail(c, http.StatusNotFound, "User not found")
			return
		}
		response.Detail(c, http.StatusInternalServerError, "Failed to load user")
		return
	}
	c.JSON(http.StatusOK, card(user, isSubscribed))
}

func (h *Handler) Me(c *gin.Context) {
	user, err := h.service.Me(c.Request.Context(), c.GetInt64("user_id"))
	if err != nil {
		response.Detail(c, http.StatusNotFound, "User not found")
		return
	}
	c.JSON(http.StatusOK, card(user, false))
}

func (h *Handler) SetPassword(c *gin.Context) {
	var req SetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.FieldErrors(c, validator.Fields(err))
		return
	}

	err := h.service.SetPassword(c.Request.Context(), c.GetInt64("user_id"), req)
	if err != nil {
		if errors.Is(err, ErrWrongPassword) {
			response.FieldError(c, "current_password", "Wrong password.")
			return
		}
		response.Detail(c, http.StatusInternalServerError, "Failed to change password")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) Subscribe(c *gin.Context) {
	ownerID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Detail(c, http.StatusNotFound, "User not found")
		return
	}

	owner, err := h.service.Subscribe(c.Request.Context(), c.GetInt64("user_id"), ownerID)
	if err != nil {
		switch {
		case errors.Is(err, ErrSelfSubscribe):
			response.Conflict(c, "Cannot subscribe to yourself")
		case errors.Is(err, ErrUserNotFound):
			response.Detail(c, http.StatusNotFound, "User not found")
		case errors.Is(err, ErrAlreadySubscribed):
			response.Conflict(c, "Already subscribed")
		default:
			response.Detail(c, http.StatusInternalServerError, "Failed to subscribe")
		}
		return
	}

	c.JSON(http.StatusCreated, card(owner, true))
}

func (h *Handler) Unsubscribe(c *gin.Context) {
	ownerID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Detail(c, http.StatusNotFound, "User not found")
		return
	}

	err = h.service.Unsubscribe(c.Request.Context(), c.GetInt64("user_id"), ownerID)
	if err != nil {
		switch {
		case errors.Is(err, ErrSelfSubscribe):
			response.Conflict(c, "Cannot subscribe to yourself")
		case errors.Is(err, ErrUserNotFound):
			response.Detail(c, http.StatusNotFound, "User not found")
		case errors.Is(err, ErrNotSubscribed):
			response.Conflict(c, "Was not subscribed")
		default:
			response.Detail(c, http.StatusInternalServerError, "Failed to unsubscribe")
		}
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) Subscriptions(c *gin.Context) {
	p := pagination.FromQuery(c, h.pageSize)

	recipesLimit := 0
	if raw := c.Query("recipes_limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			recipesLimit = n
		}
	}

	items, total, err := h.service.Subscriptions(c.Request.Context(), c.GetInt64("user_id"), p.Limit, p.Offset(), recipesLimit)
	if err != nil {
		response.Detail(c, http.StatusInternalServerError, "Failed to list subscriptions")
		return
	}

	cards := make([]SubscriptionCard, 0, len(items))
	for _, item := range items {
		sc := SubscriptionCard{
			UserCard:     card(&item.User, true),
			Recipes:      make([]RecipeCard, 0, len(item.Recipes)),
			RecipesCount: item.RecipesCount,
		}
		for _, r := range item.Recipes {
			sc.Recipes = append(sc.Recipes, RecipeCard{
				ID:          r.ID,
				Name:        r.Name,
				Image:       images.AbsoluteURL(c, r.Image),
				CookingTime: r.CookingTime,
			})
		}
		cards = append(cards, sc)
	}
	c.JSON(http.StatusOK, pagination.Wrap(c, p, total, cards))
}
