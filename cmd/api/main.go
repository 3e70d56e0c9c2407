package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/maximohlupin-omd-work/foodgram/internal/config"
	"github.com/maximohlupin-omd-work/foodgram/internal/database"
	"github.com/maximohlupin-omd-work/foodgram/internal/middleware"
	"github.com/maximohlupin-omd-work/foodgram/internal/modules/auth"
	"github.com/maximohlupin-omd-work/foodgram/internal/modules/ingredients"
	"github.com/maximohlupin-omd-work/foodgram/internal/modules/recipes"
	"github.com/maximohlupin-omd-work/foodgram/internal/modules/tags"
	"github.com/maximohlupin-omd-work/foodgram/internal/modules/users"
	"github.com/maximohlupin-omd-work/foodgram/internal/pkg/images"
	"github.com/maximohlupin-omd-work/foodgram/internal/pkg/token"
	"github.com/maximohlupin-omd-work/foodgram/internal/repository"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DSN)
	if err != nil {
		log.Fatal(err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal(err)
	}

	media, err := images.NewStore(cfg.MediaDir)
	if err != nil {
		log.Fatal(err)
	}

	userRepo := repository.NewUserRepository(db)
	tokenRepo := repository.NewAuthTokenRepository(db)
	tagRepo := repository.NewTagRepository(db)
	unitRepo := repository.NewIngredientUnitRepository(db)
	recipeRepo := repository.NewRecipeRepository(db)
	favoriteRepo := repository.NewFavoriteRepository(db)
	shopListRepo := repository.NewShopListRepository(db)
	subscriptionRepo := repository.NewSubscriptionRepository(db)

	tokens := token.New(cfg.JWTSecret, cfg.TokenTTL)

	authService := auth.NewService(userRepo, tokenRepo, tokens)
	authHandler := auth.NewHandler(authService)

	userService := users.NewService(userRepo, subscriptionRepo, recipeRepo, tokenRepo)
	userHandler := users.NewHandler(userService, cfg.PageSize)

	recipeService := recipes.NewService(
		recipeRepo,
		unitRepo,
		tagRepo,
		favoriteRepo,
		shopListRepo,
		subscriptionRepo,
	)
	recipeHandler := recipes.NewHandler(recipeService, media, cfg.PageSize)

	tagHandler := tags.NewHandler(tagRepo)
	ingredientHandler := ingredients.NewHandler(unitRepo)

	optional := middleware.OptionalAuth(tokens, tokenRepo)
	required := middleware.RequireAuth(tokens, tokenRepo)

	r := gin.Default()
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorLogger())

	r.Static("/media", cfg.MediaDir)

	api := r.Group("/api")
	{
		authHandler.RegisterRoutes(api)
		tagHandler.RegisterRoutes(api)
		ingredientHandler.RegisterRoutes(api)

		public := api.Group("/")
		public.Use(optional)
		{
			userHandler.RegisterPublicRoutes(public)
		}

		protected := api.Group("/")
		protected.Use(required)
		{
			userHandler.RegisterProtectedRoutes(protected)
		}

		recipeHandler.RegisterRoutes(api, optional, required)
	}

	if err := r.Run(cfg.Addr); err != nil {
		log.Fatal(err)
	}
}
