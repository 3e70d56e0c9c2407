package main

import (
	"fmt"
	"log"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"

	"github.com/maximohlupin-omd-work/foodgram/internal/config"
	"github.com/maximohlupin-omd-work/foodgram/internal/database"
	"github.com/maximohlupin-omd-work/foodgram/internal/domain"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DSN)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running AutoMigrate...")
	if err := database.Migrate(db); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	// Cleanup old data (in safe order to avoid foreign key errors)
	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM shop_list_recipes")
	db.Exec("DELETE FROM favorite_recipes")
	db.Exec("DELETE FROM subscriptions")
	db.Exec("DELETE FROM recipe_tags")
	db.Exec("DELETE FROM ingredients")
	db.Exec("DELETE FROM recipes")
	db.Exec("DELETE FROM ingredient_units")
	db.Exec("DELETE FROM tags")
	db.Exec("DELETE FROM auth_tokens")
	db.Exec("DELETE FROM users")

	// ================== USERS ==================
	log.Println("Creating users...")
	users := make([]domain.User, 0, 3)
	profiles := []struct {
		email, username, first, last string
	}{
		{"chef@foodgram.local", "chef", "Julia", "Cook"},
		{"baker@foodgram.local", "baker", "Paul", "Crumb"},
		{"guest@foodgram.local", "guest", "Sam", "Taster"},
	}
	for _, p := range profiles {
		hash, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
		u := domain.User{
			Email:        p.email,
			Username:     p.username,
			FirstName:    p.first,
			LastName:     p.last,
			PasswordHash: string(hash),
		}
		db.Create(&u)
		users = append(users, u)
	}

	// ================== TAGS ==================
	log.Println("Creating tags...")
	tagRows := []domain.Tag{
		{Name: "Breakfast", Color: "#E26C2D", Slug: "breakfast"},
		{Name: "Lunch", Color: "#49B64E", Slug: "lunch"},
		{Name: "Dinner", Color: "#8775D2", Slug: "dinner"},
	}
	for i := range tagRows {
		if !domain.ValidSlug(tagRows[i].Slug) {
			log.Fatalf("invalid tag slug: %q", tagRows[i].Slug)
		}
		db.Create(&tagRows[i])
	}

	// ================== INGREDIENT CATALOG ==================
	log.Println("Creating ingredient catalog...")
	unitRows := []domain.IngredientUnit{
		{Name: "flour", MeasurementUnit: "g"},
		{Name: "sugar", MeasurementUnit: "g"},
		{Name: "milk", MeasurementUnit: "ml"},
		{Name: "egg", MeasurementUnit: "pcs"},
		{Name: "butter", MeasurementUnit: "g"},
		{Name: "salt", MeasurementUnit: "g"},
	}
	for i := range unitRows {
		db.Create(&unitRows[i])
	}

	// ================== RECIPES ==================
	log.Println("Creating recipes...")
	pancakes := domain.Recipe{
		Name:        "Pancakes",
		Image:       "recipes/seed-pancakes.png",
		Text:        "Mix, fry, serve warm.",
		CookingTime: 20,
		AuthorID:    users[0].ID,
		Tags:        []domain.Tag{tagRows[0]},
		Ingredients: []domain.Ingredient{
			{IngredientUnitID: unitRows[0].ID, Amount: 200},
			{IngredientUnitID: unitRows[2].ID, Amount: 300},
			{IngredientUnitID: unitRows[3].ID, Amount: 2},
		},
	}
	db.Create(&pancakes)

	cookies := domain.Recipe{
		Name:        "Butter cookies",
		Image:       "recipes/seed-cookies.png",
		Text:        "Cream butter and sugar, bake until golden.",
		CookingTime: 45,
		AuthorID:    users[1].ID,
		Tags:        []domain.Tag{tagRows[0], tagRows[2]},
		Ingredients: []domain.Ingredient{
			{IngredientUnitID: unitRows[0].ID, Amount: 250},
			{IngredientUnitID: unitRows[1].ID, Amount: 100},
			{IngredientUnitID: unitRows[4].ID, Amount: 150},
		},
	}
	db.Create(&cookies)

	// ================== RELATIONS ==================
	log.Println("Creating favorites, shopping lists and subscriptions...")
	db.Create(&domain.FavoriteRecipe{UserID: users[2].ID, RecipeID: pancakes.ID})
	db.Create(&domain.ShopListRecipe{UserID: users[2].ID, RecipeID: pancakes.ID})
	db.Create(&domain.ShopListRecipe{UserID: users[2].ID, RecipeID: cookies.ID})
	db.Create(&domain.Subscription{OwnerID: users[0].ID, SubscriberID: users[2].ID})
	db.Create(&domain.Subscription{OwnerID: users[1].ID, SubscriberID: users[2].ID})

	log.Println("Seed completed!")
	log.Println("Test accounts (password: password123):")
	for _, u := range users {
		log.Println(fmt.Sprintf("  %s (%s)", u.Email, u.Username))
	}
}
