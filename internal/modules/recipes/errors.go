package recipes

import (
	"errors"
	"fmt"
)

var (
	ErrRecipeNotFound   = errors.New("recipe not found")
	ErrForbidden        = errors.New("not the recipe author")
	ErrAlreadyAdded     = errors.New("already added")
	ErrNotAdded         = errors.New("was not added")
	ErrTagNotFound      = errors.New("tag not found")
	ErrUnitNotFound     = errors.New("unit not found")
	ErrEmptyIngredients = errors.New("ingredient list must not be empty")
	ErrCookingTime      = errors.New("cooking_time must be greater than or equal to 1")
)

// EntryAmountError identifies the offending submission entry by index.
type EntryAmountError struct {
	Index int
}

func (e *EntryAmountError) Error() string {
	return fmt.Sprintf("entry %d: amount must be greater than or equal to 1", e.Index)
}
