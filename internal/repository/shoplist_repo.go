package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/maximohlupin-omd-work/foodgram/internal/domain"
)

// ShopListRepository is the per-user shopping list recipe set.
type ShopListRepository interface {
	Add(ctx context.Context, userID, recipeID int64) error
	Remove(ctx context.Context, userID, recipeID int64) (bool, error)
	Exists(ctx context.Context, userID, recipeID int64) (bool, error)
	RecipeIDSet(ctx context.Context, userID int64, recipeIDs []int64) (map[int64]bool, error)
}

type shopListRepository struct {
	db *gorm.DB
}

func NewShopListRepository(db *gorm.DB) ShopListRepository {
	return &shopListRepository{db: db}
}

func (r *shopListRepository) Add(ctx context.Context, userID, recipeID int64) error {
	err := r.db.WithContext(ctx).Create(&domain.ShopListRecipe{
		UserID:   userID,
		RecipeID: recipeID,
	}).Error
	if err != nil && isUniqueViolation(err) {
		return ErrDuplicate
	}
	return err
}

func (r *shopListRepository) Remove(ctx context.Context, userID, recipeID int64) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Delete(&domain.ShopListRecipe{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *shopListRepository) Exists(ctx context.Context, userID, recipeID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.ShopListRecipe{}).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Count(&count).Error
	return count > 0, err
}

func (r *shopListRepository) RecipeIDSet(ctx context.Context, userID int64, recipeIDs []int64) (map[int64]bool, error) {
	set := make(map[int64]bool, len(recipeIDs))
	if len(recipeIDs) == 0 {
		return set, nil
	}

	var ids []int64
	err := r.db.WithContext(ctx).Model(&domain.ShopListRecipe{}).
		Where("user_id = ? AND recipe_id IN ?", userID, recipeIDs).
		Pluck("recipe_id", &ids).Error
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		set[id] = true
	}
	return set, nil
}
