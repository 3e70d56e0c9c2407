package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/maximohlupin-omd-work/foodgram/internal/domain"
)

// RecipeFilter composes the list predicates with AND semantics. Nil pointer
// fields are inactive; the favorite/cart pairs carry the 1/0 query flags for
// an authenticated viewer.
type RecipeFilter struct {
	TagSlugs       []string
	AuthorID       *int64
	FavoritedBy    *int64
	NotFavoritedBy *int64
	InCartBy       *int64
	NotInCartBy    *int64
}

// ShoppingListRow is one exported line of the shopping list: the catalog
// unit plus the amount from one specific recipe line item. Rows are not
// merged by unit.
type ShoppingListRow struct {
	Name            string
	Amount          int
	MeasurementUnit string
}

type RecipeRepository struct {
	db *gorm.DB
}

func NewRecipeRepository(db *gorm.DB) *RecipeRepository {
	return &RecipeRepository{db: db}
}

func (r *RecipeRepository) applyFilter(ctx context.Context, f RecipeFilter) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&domain.Recipe{})

	if len(f.TagSlugs) > 0 {
		// membership subquery de-duplicates recipes matching several slugs
		query = query.Where("recipes.id IN (?)",
			r.db.Table("recipe_tags").
				Select("recipe_tags.recipe_id").
				Joins("JOIN tags ON tags.id = recipe_tags.tag_id").
				Where("tags.slug IN ?", f.TagSlugs),
		)
	}
	if f.AuthorID != nil {
		query = query.Where("recipes.author_id = ?", *f.AuthorID)
	}

	query = r.applyMembership(query, "favorite_recipes", f.FavoritedBy, f.NotFavoritedBy)
	query = r.applyMembership(query, "shop_list_recipes", f.InCartBy, f.NotInCartBy)

	return query
}

func (r *RecipeRepository) applyMembership(query *gorm.DB, table string, in, notIn *int64) *gorm.DB {
	if in != nil {
		query = query.Where("recipes.id IN (?)",
			r.db.Table(table).Select("recipe_id").Where("user_id = ?", *in))
	}
	if notIn != nil {
		query = query.Where("recipes.id NOT IN (?)",
			r.db.Table(table).Select("recipe_id").Where("user_id = ?", *notIn))
	}
	return query
}

// List returns matching recipes newest-first with tags, line items (and
// their catalog units) and author preloaded, plus the total for pagination.
func (r *RecipeRepository) List(ctx context.Context, f RecipeFilter, limit, offset int) ([]domain.Recipe, int64, error) {
	var total int64
	if err := r.applyFilter(ctx, f).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query := r.applyFilter(ctx, f).
		Preload("Tags").
		Preload("Ingredients.Unit").
		Preload("Author").
		Order("recipes.id DESC")
	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}

	var recipes []domain.Recipe
	if err := query.Find(&recipes).Error; err != nil {
		return nil, 0, err
	}
	return recipes, total, nil
}

func (r *RecipeRepository) GetByID(ctx context.Context, id int64) (*domain.Recipe, error) {
	var recipe domain.Recipe
	err := r.db.WithContext(ctx).
		Preload("Tags").
		Preload("Ingredients.Unit").
		Preload("Author").
		First(&recipe, id).Error
	if err != nil {
		return nil, err
	}
	return &recipe, nil
}

func (r *RecipeRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Recipe{}).
		Where("id = ?", id).
		Count(&count).Error
	return count > 0, err
}

// Create inserts the recipe together with its tag links and line items.
func (r *RecipeRepository) Create(ctx context.Context, recipe *domain.Recipe) error {
	return r.db.WithContext(ctx).Create(recipe).Error
}

func (r *RecipeRepository) UpdateFields(ctx context.Context, id int64, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&domain.Recipe{}).
		Where("id = ?", id).
		Updates(fields).Error
}

func (r *RecipeRepository) ReplaceTags(ctx context.Context, recipe *domain.Recipe, tags []domain.Tag) error {
	return r.db.WithContext(ctx).Model(recipe).Association("Tags").Replace(tags)
}

// Delete removes the recipe, its line items, its tag links and its
// favorite/shopping list memberships in one transaction. Catalog units are
// untouched.
func (r *RecipeRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("recipe_id = ?", id).Delete(&domain.Ingredient{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", id).Delete(&domain.FavoriteRecipe{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", id).Delete(&domain.ShopListRecipe{}).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM recipe_tags WHERE recipe_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&domain.Recipe{}, id).Error
	})
}

func (r *RecipeRepository) LineItems(ctx context.Context, recipeID int64) ([]domain.Ingredient, error) {
	var items []domain.Ingredient
	err := r.db.WithContext(ctx).
		Where("recipe_id = ?", recipeID).
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *RecipeRepository) DeleteLineItems(ctx context.Context, recipeID int64, unitIDs []int64) error {
	if len(unitIDs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Where("recipe_id = ? AND ingredient_unit_id IN ?", recipeID, unitIDs).
		Delete(&domain.Ingredient{}).Error
}

// UpdateLineItemAmount returns the number of rows changed so the caller can
// fall back to an insert when no line item exists for the unit.
func (r *RecipeRepository) UpdateLineItemAmount(ctx context.Context, recipeID, unitID int64, amount int) (int64, error) {
	result := r.db.WithContext(ctx).Model(&domain.Ingredient{}).
		Where("recipe_id = ? AND ingredient_unit_id = ?", recipeID, unitID).
		Update("amount", amount)
	return result.RowsAffected, result.Error
}

func (r *RecipeRepository) CreateLineItem(ctx context.Context, item *domain.Ingredient) error {
	if err := r.db.WithContext(ctx).Create(item).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

// CountByAuthors returns per-author recipe counts in one query.
func (r *RecipeRepository) CountByAuthors(ctx context.Context, authorIDs []int64) (map[int64]int64, error) {
	counts := make(map[int64]int64, len(authorIDs))
	if len(authorIDs) == 0 {
		return counts, nil
	}

	var rows []struct {
		AuthorID int64
		Total    int64
	}
	err := r.db.WithContext(ctx).Model(&domain.Recipe{}).
		Select("author_id, COUNT(*) AS total").
		Where("author_id IN ?", authorIDs).
		Group("author_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		counts[row.AuthorID] = row.Total
	}
	return counts, nil
}

func (r *RecipeRepository) ListByAuthor(ctx context.Context, authorID int64, limit int) ([]domain.Recipe, error) {
	var recipes []domain.Recipe
	query := r.db.WithContext(ctx).
		Where("author_id = ?", authorID).
		Order("id DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&recipes).Error; err != nil {
		return nil, err
	}
	return recipes, nil
}

// ShoppingListRows walks every line item of every recipe in the user's
// shopping list. One row per line item; duplicate units across recipes stay
// separate.
func (r *RecipeRepository) ShoppingListRows(ctx context.Context, userID int64) ([]ShoppingListRow, error) {
	var rows []ShoppingListRow
	err := r.db.WithContext(ctx).
		Table("ingredients").
		Select("ingredient_units.name AS name, ingredients.amount AS amount, ingredient_units.measurement_unit AS measurement_unit").
		Joins("JOIN shop_list_recipes ON shop_list_recipes.recipe_id = ingredients.recipe_id AND shop_list_recipes.user_id = ?", userID).
		Joins("JOIN ingredient_units ON ingredient_units.id = ingredients.ingredient_unit_id").
		Order("ingredient_units.name, ingredients.recipe_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
