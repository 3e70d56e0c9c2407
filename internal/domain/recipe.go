package domain

import "time"

// IngredientUnit is a catalog entry: a named ingredient with its measurement
// unit, shared across recipes. Recipe paths look these up by id and never
// create or delete them.
type IngredientUnit struct {
	ID              int64  `json:"id" gorm:"primaryKey"`
	Name            string `json:"name" gorm:"size:200;not null;index"`
	MeasurementUnit string `json:"measurement_unit" gorm:"size:200;not null"`
}

func (IngredientUnit) TableName() string { return "ingredient_units" }

// Ingredient is a line item binding a recipe to a catalog unit with a
// quantity. A recipe holds at most one line item per unit.
type Ingredient struct {
	ID               int64 `json:"id" gorm:"primaryKey"`
	RecipeID         int64 `json:"recipe_id" gorm:"not null;uniqueIndex:idx_recipe_unit"`
	IngredientUnitID int64 `json:"ingredient_unit_id" gorm:"not null;uniqueIndex:idx_recipe_unit"`
	Amount           int   `json:"amount" gorm:"not null"`

	Unit *IngredientUnit `json:"unit,omitempty" gorm:"foreignKey:IngredientUnitID"`
}

func (Ingredient) TableName() string { return "ingredients" }

type Recipe struct {
	ID          int64     `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"size:200;not null"`
	Image       string    `json:"image" gorm:"size:500"`
	Text        string    `json:"text" gorm:"type:text"`
	CookingTime int       `json:"cooking_time" gorm:"not null"`
	AuthorID    int64     `json:"author_id" gorm:"not null;index"`
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime"`

	Author      *User        `json:"author,omitempty" gorm:"foreignKey:AuthorID"`
	Tags        []Tag        `json:"tags,omitempty" gorm:"many2many:recipe_tags"`
	Ingredients []Ingredient `json:"ingredients,omitempty" gorm:"constraint:OnDelete:CASCADE"`
}

func (Recipe) TableName() string { return "recipes" }
