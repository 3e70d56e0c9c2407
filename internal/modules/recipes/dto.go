package recipes

// IngredientEntry is one submitted line item: a catalog unit id with the
// desired amount.
type IngredientEntry struct {
	ID     int64 `json:"id"`
	Amount int   `json:"amount"`
}

type CreateRecipeRequest struct {
	Name        string            `json:"name" binding:"required,max=200"`
	Image       string            `json:"image" binding:"required"`
	Text        string            `json:"text" binding:"required"`
	CookingTime int               `json:"cooking_time" binding:"required"`
	Tags        []int64           `json:"tags" binding:"required,min=1"`
	Ingredients []IngredientEntry `json:"ingredients" binding:"required,min=1"`
}

// UpdateRecipeRequest carries a partial update; nil fields stay untouched.
// A present ingredient list fully replaces the recipe's line-item unit set.
type UpdateRecipeRequest struct {
	Name        *string           `json:"name"`
	Image       *string           `json:"image"`
	Text        *string           `json:"text"`
	CookingTime *int              `json:"cooking_time"`
	Tags        []int64           `json:"tags"`
	Ingredients []IngredientEntry `json:"ingredients"`
}

// TagPayload mirrors the tag entity in recipe bodies.
type TagPayload struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
	Slug  string `json:"slug"`
}

type AuthorPayload struct {
	ID           int64  `json:"id"`
	Email        string `json:"email"`
	Username     string `json:"username"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	IsSubscribed bool   `json:"is_subscribed"`
}

// IngredientPayload flattens a line item with its catalog unit; ID is the
// unit id, matching the write-side key space.
type IngredientPayload struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
	Amount          int    `json:"amount"`
}

type RecipePayload struct {
	ID               int64               `json:"id"`
	Tags             []TagPayload        `json:"tags"`
	Author           AuthorPayload       `json:"author"`
	Ingredients      []IngredientPayload `json:"ingredients"`
	IsFavorited      bool                `json:"is_favorited"`
	IsInShoppingCart bool                `json:"is_in_shopping_cart"`
	Name             string              `json:"name"`
	Image            string              `json:"image"`
	Text             string              `json:"text"`
	CookingTime      int                 `json:"cooking_time"`
}

// ShortRecipePayload is the compact card returned by the favorite and
// shopping cart toggles.
type ShortRecipePayload struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Image       string `json:"image"`
	CookingTime int    `json:"cooking_time"`
}
