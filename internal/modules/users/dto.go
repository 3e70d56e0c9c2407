package users

type RegisterRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Username  string `json:"username" binding:"required,max=150"`
	FirstName string `json:"first_name" binding:"max=150"`
	LastName  string `json:"last_name" binding:"max=150"`
	Password  string `json:"password" binding:"required,min=6"`
}

type SetPasswordRequest struct {
	NewPassword     string `json:"new_password" binding:"required,min=6"`
	CurrentPassword string `json:"current_password" binding:"required"`
}

// UserCard is the public user payload, annotated per viewer.
type UserCard struct {
	ID           int64  `json:"id"`
	Email        string `json:"email"`
	Username     string `json:"username"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	IsSubscribed bool   `json:"is_subscribed"`
}

// RecipeCard is the compact recipe payload embedded in subscription items.
type RecipeCard struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Image       string `json:"image"`
	CookingTime int    `json:"cooking_time"`
}

// SubscriptionCard is a subscribed author with their recipe cards.
type SubscriptionCard struct {
	UserCard
	Recipes      []RecipeCard `json:"recipes"`
	RecipesCount int64        `json:"recipes_count"`
}
