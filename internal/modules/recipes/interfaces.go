package recipes

import (
	"context"

	"github.com/maximohlupin-omd-work/foodgram/internal/domain"
	"github.com/maximohlupin-omd-work/foodgram/internal/repository"
)

// RecipeRepositoryInterface — only the methods the recipes service uses
type RecipeRepositoryInterface interface {
	List(ctx context.Context, f repository.RecipeFilter, limit, offset int) ([]domain.Recipe, int64, error)
	GetByID(ctx context.Context, id int64) (*domain.Recipe, error)
	Exists(ctx context.Context, id int64) (bool, error)
	Create(ctx context.Context, recipe *domain.Recipe) error
	UpdateFields(ctx context.Context, id int64, fields map[string]any) error
	ReplaceTags(ctx context.Context, recipe *domain.Recipe, tags []domain.Tag) error
	Delete(ctx context.Context, id int64) error
	LineItems(ctx context.Context, recipeID int64) ([]domain.Ingredient, error)
	DeleteLineItems(ctx context.Context, recipeID int64, unitIDs []int64) error
	UpdateLineItemAmount(ctx context.Context, recipeID, unitID int64, amount int) (int64, error)
	CreateLineItem(ctx context.Context, item *domain.Ingredient) error
	ShoppingListRows(ctx context.Context, userID int64) ([]repository.ShoppingListRow, error)
}

// UnitReader — catalog lookups; recipe paths never write the catalog
type UnitReader interface {
	GetByIDs(ctx context.Context, ids []int64) ([]domain.IngredientUnit, error)
}

// TagReader — tag lookups for recipe binding
type TagReader interface {
	GetByIDs(ctx context.Context, ids []int64) ([]domain.Tag, error)
}

// SubscriptionReader — annotates recipe authors with is_subscribed
type SubscriptionReader interface {
	OwnerIDSet(ctx context.Context, subscriberID int64, ownerIDs []int64) (map[int64]bool, error)
}
