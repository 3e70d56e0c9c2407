package domain

import "time"

// FavoriteRecipe marks a recipe as bookmarked by a user.
type FavoriteRecipe struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	UserID    int64     `json:"user_id" gorm:"not null;index;uniqueIndex:idx_favorite_user_recipe"`
	RecipeID  int64     `json:"recipe_id" gorm:"not null;uniqueIndex:idx_favorite_user_recipe"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

func (FavoriteRecipe) TableName() string { return "favorite_recipes" }

// ShopListRecipe marks a recipe as added to a user's shopping list.
type ShopListRecipe struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	UserID    int64     `json:"user_id" gorm:"not null;index;uniqueIndex:idx_shoplist_user_recipe"`
	RecipeID  int64     `json:"recipe_id" gorm:"not null;uniqueIndex:idx_shoplist_user_recipe"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

func (ShopListRecipe) TableName() string { return "shop_list_recipes" }
