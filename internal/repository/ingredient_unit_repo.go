package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/maximohlupin-omd-work/foodgram/internal/domain"
)

type IngredientUnitRepository struct {
	db *gorm.DB
}

func NewIngredientUnitRepository(db *gorm.DB) *IngredientUnitRepository {
	return &IngredientUnitRepository{db: db}
}

func (r *IngredientUnitRepository) Create(ctx context.Context, u *domain.IngredientUnit) error {
	return r.db.WithContext(ctx).Create(u).Error
}

// List returns catalog units newest-first, optionally narrowed by a
// case-insensitive name substring.
func (r *IngredientUnitRepository) List(ctx context.Context, name string) ([]domain.IngredientUnit, error) {
	var units []domain.IngredientUnit
	query := r.db.WithContext(ctx).Order("id DESC")
	if name != "" {
		query = query.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(name)+"%")
	}
	if err := query.Find(&units).Error; err != nil {
		return nil, err
	}
	return units, nil
}

func (r *IngredientUnitRepository) GetByID(ctx context.Context, id int64) (*domain.IngredientUnit, error) {
	var u domain.IngredientUnit
	if err := r.db.WithContext(ctx).First(&u, id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *IngredientUnitRepository) GetByIDs(ctx context.Context, ids []int64) ([]domain.IngredientUnit, error) {
	var units []domain.IngredientUnit
	if len(ids) == 0 {
		return units, nil
	}
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&units).Error; err != nil {
		return nil, err
	}
	return units, nil
}
