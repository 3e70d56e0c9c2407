package recipes

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"strconv"

	"gorm.io/gorm"

	"github.com/maximohlupin-omd-work/foodgram/internal/domain"
	"github.com/maximohlupin-omd-work/foodgram/internal/repository"
)

type Service struct {
	recipes       RecipeRepositoryInterface
	units         UnitReader
	tags          TagReader
	favorites     repository.FavoriteRepository
	shopList      repository.ShopListRepository
	subscriptions SubscriptionReader
}

func NewService(
	recipes RecipeRepositoryInterface,
	units UnitReader,
	tags TagReader,
	favorites repository.FavoriteRepository,
	shopList repository.ShopListRepository,
	subscriptions SubscriptionReader,
) *Service {
	return &Service{
		recipes:       recipes,
		units:         units,
		tags:          tags,
		favorites:     favorites,
		shopList:      shopList,
		subscriptions: subscriptions,
	}
}

// ListQuery carries the composable list filters. The boolean flags are only
// honored for authenticated viewers.
type ListQuery struct {
	TagSlugs         []string
	AuthorID         *int64
	IsFavorited      *bool
	IsInShoppingCart *bool
}

// RecipeView is a recipe with its per-viewer annotations resolved.
type RecipeView struct {
	Recipe           domain.Recipe
	IsFavorited      bool
	IsInShoppingCart bool
	AuthorSubscribed bool
}

func (s *Service) List(ctx context.Context, viewerID *int64, q ListQuery, limit, offset int) ([]RecipeView, int64, error) {
	f := repository.RecipeFilter{
		TagSlugs: q.TagSlugs,
		AuthorID: q.AuthorID,
	}
	if viewerID != nil {
		if q.IsFavorited != nil {
			if *q.IsFavorited {
				f.FavoritedBy = viewerID
			} else {
				f.NotFavoritedBy = viewerID
			}
		}
		if q.IsInShoppingCart != nil {
			if *q.IsInShoppingCart {
				f.InCartBy = viewerID
			} else {
				f.NotInCartBy = viewerID
			}
		}
	}

	list, total, err := s.recipes.List(ctx, f, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	views, err := s.buildViews(ctx, viewerID, list)
	if err != nil {
		return nil, 0, err
	}
	return views, total, nil
}

func (s *Service) Get(ctx context.Context, viewerID *int64, id int64) (*RecipeView, error) {
	recipe, err := s.recipes.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecipeNotFound
		}
		return nil, err
	}

	views, err := s.buildViews(ctx, viewerID, []domain.Recipe{*recipe})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

// buildViews resolves the per-viewer flags for a recipe page with three set
// queries. Anonymous viewers get all-false flags.
func (s *Service) buildViews(ctx context.Context, viewerID *int64, list []domain.Recipe) ([]RecipeView, error) {
	views := make([]RecipeView, 0, len(list))
	if len(list) == 0 {
		return views, nil
	}

	favSet := map[int64]bool{}
	cartSet := map[int64]bool{}
	subSet := map[int64]bool{}

	if viewerID != nil {
		recipeIDs := make([]int64, 0, len(list))
		authorIDs := make([]int64, 0, len(list))
		for _, r := range list {
			recipeIDs = append(recipeIDs, r.ID)
			authorIDs = append(authorIDs, r.AuthorID)
		}

		var err error
		if favSet, err = s.favorites.RecipeIDSet(ctx, *viewerID, recipeIDs); err != nil {
			return nil, err
		}
		if cartSet, err = s.shopList.RecipeIDSet(ctx, *viewerID, recipeIDs); err != nil {
			return nil, err
		}
		if subSet, err = s.subscriptions.OwnerIDSet(ctx, *viewerID, authorIDs); err != nil {
			return nil, err
		}
	}

	for _, r := range list {
		views = append(views, RecipeView{
			Recipe:           r,
			IsFavorited:      favSet[r.ID],
			IsInShoppingCart: cartSet[r.ID],
			AuthorSubscribed: subSet[r.AuthorID],
		})
	}
	return views, nil
}

// validateEntries checks the submitted line items and returns the distinct
// unit ids in submission order.
func validateEntries(entries []IngredientEntry) ([]int64, error) {
	if len(entries) == 0 {
		return nil, ErrEmptyIngredients
	}

	seen := make(map[int64]bool, len(entries))
	ids := make([]int64, 0, len(entries))
	for i, e := range entries {
		if e.Amount < 1 {
			return nil, &EntryAmountError{Index: i}
		}
		if !seen[e.ID] {
			seen[e.ID] = true
			ids = append(ids, e.ID)
		}
	}
	return ids, nil
}

// resolveUnits confirms every referenced catalog unit exists. Units are
// never created or deleted here.
func (s *Service) resolveUnits(ctx context.Context, ids []int64) error {
	units, err := s.units.GetByIDs(ctx, ids)
	if err != nil {
		return err
	}
	if len(units) != len(ids) {
		return ErrUnitNotFound
	}
	return nil
}

func (s *Service) resolveTags(ctx context.Context, ids []int64) ([]domain.Tag, error) {
	tags, err := s.tags.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	distinct := make(map[int64]bool, len(ids))
	for _, id := range ids {
		distinct[id] = true
	}
	if len(tags) != len(distinct) {
		return nil, ErrTagNotFound
	}
	return tags, nil
}

// Create inserts the recipe with its tag links and line items. imagePath is
// the stored media path of the decoded upload.
func (s *Service) Create(ctx context.Context, authorID int64, req CreateRecipeRequest, imagePath string) (*RecipeView, error) {
	if req.CookingTime < 1 {
		return nil, ErrCookingTime
	}

	unitIDs, err := validateEntries(req.Ingredients)
	if err != nil {
		return nil, err
	}
	if err := s.resolveUnits(ctx, unitIDs); err != nil {
		return nil, err
	}

	tags, err := s.resolveTags(ctx, req.Tags)
	if err != nil {
		return nil, err
	}

	recipe := &domain.Recipe{
		Name:        req.Name,
		Image:       imagePath,
		Text:        req.Text,
		CookingTime: req.CookingTime,
		AuthorID:    authorID,
		Tags:        tags,
	}
	amounts := make(map[int64]int, len(req.Ingredients))
	for _, e := range req.Ingredients {
		amounts[e.ID] = e.Amount
	}
	for _, id := range unitIDs {
		recipe.Ingredients = append(recipe.Ingredients, domain.Ingredient{
			IngredientUnitID: id,
			Amount:           amounts[id],
		})
	}

	if err := s.recipes.Create(ctx, recipe); err != nil {
		return nil, err
	}

	viewerID := authorID
	return s.Get(ctx, &viewerID, recipe.ID)
}

// Update applies a partial update; a submitted ingredient list is
// reconciled against the attached line items. The caller must be the
// author. When imagePath replaces the stored image, the old path is
// returned so the caller can remove the file.
func (s *Service) Update(ctx context.Context, userID, recipeID int64, req UpdateRecipeRequest, imagePath *string) (*RecipeView, string, error) {
	recipe, err := s.recipes.GetByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrRecipeNotFound
		}
		return nil, "", err
	}
	if recipe.AuthorID != userID {
		return nil, "", ErrForbidden
	}

	replaced := ""
	if imagePath != nil && *imagePath != recipe.Image {
		replaced = recipe.Image
	}

	fields := map[string]any{}
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if imagePath != nil {
		fields["image"] = *imagePath
	}
	if req.Text != nil {
		fields["text"] = *req.Text
	}
	if req.CookingTime != nil {
		if *req.CookingTime < 1 {
			return nil, "", ErrCookingTime
		}
		fields["cooking_time"] = *req.CookingTime
	}

	if req.Ingredients != nil {
		if err := s.reconcile(ctx, recipeID, req.Ingredients); err != nil {
			return nil, "", err
		}
	}

	if len(req.Tags) > 0 {
		tags, err := s.resolveTags(ctx, req.Tags)
		if err != nil {
			return nil, "", err
		}
		if err := s.recipes.ReplaceTags(ctx, recipe, tags); err != nil {
			return nil, "", err
		}
	}

	if err := s.recipes.UpdateFields(ctx, recipeID, fields); err != nil {
		return nil, "", err
	}

	view, err := s.Get(ctx, &userID, recipeID)
	if err != nil {
		return nil, "", err
	}
	return view, replaced, nil
}

// reconcile synchronizes the recipe's line items with the submission.
// Line items for units leaving the set are deleted; units entering the set
// are updated in place when a row exists and inserted otherwise. Units in
// the submission that were already attached keep their stored amount, even
// if the submission names a different one.
func (s *Service) reconcile(ctx context.Context, recipeID int64, entries []IngredientEntry) error {
	unitIDs, err := validateEntries(entries)
	if err != nil {
		return err
	}
	if err := s.resolveUnits(ctx, unitIDs); err != nil {
		return err
	}

	current, err := s.recipes.LineItems(ctx, recipeID)
	if err != nil {
		return err
	}

	oldIDs := make(map[int64]bool, len(current))
	for _, item := range current {
		oldIDs[item.IngredientUnitID] = true
	}
	newIDs := make(map[int64]bool, len(unitIDs))
	for _, id := range unitIDs {
		newIDs[id] = true
	}

	var toDelete []int64
	for id := range oldIDs {
		if !newIDs[id] {
			toDelete = append(toDelete, id)
		}
	}
	if err := s.recipes.DeleteLineItems(ctx, recipeID, toDelete); err != nil {
		return err
	}

	for _, e := range entries {
		if oldIDs[e.ID] {
			continue
		}
		affected, err := s.recipes.UpdateLineItemAmount(ctx, recipeID, e.ID, e.Amount)
		if err != nil {
			return err
		}
		if affected == 0 {
			err := s.recipes.CreateLineItem(ctx, &domain.Ingredient{
				RecipeID:         recipeID,
				IngredientUnitID: e.ID,
				Amount:           e.Amount,
			})
			if err != nil && !errors.Is(err, repository.ErrDuplicate) {
				return err
			}
		}
	}
	return nil
}

// Delete removes the recipe and its dependents, returning the stored image
// path so the caller can clean up the media file.
func (s *Service) Delete(ctx context.Context, userID, recipeID int64) (string, error) {
	recipe, err := s.recipes.GetByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrRecipeNotFound
		}
		return "", err
	}
	if recipe.AuthorID != userID {
		return "", ErrForbidden
	}

	if err := s.recipes.Delete(ctx, recipeID); err != nil {
		return "", err
	}
	return recipe.Image, nil
}

func (s *Service) AddFavorite(ctx context.Context, userID, recipeID int64) (*domain.Recipe, error) {
	return s.addMembership(ctx, s.favorites, userID, recipeID)
}

func (s *Service) RemoveFavorite(ctx context.Context, userID, recipeID int64) error {
	return s.removeMembership(ctx, s.favorites, userID, recipeID)
}

func (s *Service) AddToShopList(ctx context.Context, userID, recipeID int64) (*domain.Recipe, error) {
	return s.addMembership(ctx, s.shopList, userID, recipeID)
}

func (s *Service) RemoveFromShopList(ctx context.Context, userID, recipeID int64) error {
	return s.removeMembership(ctx, s.shopList, userID, recipeID)
}

type membershipSet interface {
	Add(ctx context.Context, userID, recipeID int64) error
	Remove(ctx context.Context, userID, recipeID int64) (bool, error)
	Exists(ctx context.Context, userID, recipeID int64) (bool, error)
}

func (s *Service) addMembership(ctx context.Context, set membershipSet, userID, recipeID int64) (*domain.Recipe, error) {
	recipe, err := s.recipes.GetByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecipeNotFound
		}
		return nil, err
	}

	present, err := set.Exists(ctx, userID, recipeID)
	if err != nil {
		return nil, err
	}
	if present {
		return nil, ErrAlreadyAdded
	}

	if err := set.Add(ctx, userID, recipeID); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrAlreadyAdded
		}
		return nil, err
	}
	return recipe, nil
}

func (s *Service) removeMembership(ctx context.Context, set membershipSet, userID, recipeID int64) error {
	exists, err := s.recipes.Exists(ctx, recipeID)
	if err != nil {
		return err
	}
	if !exists {
		return ErrRecipeNotFound
	}

	removed, err := set.Remove(ctx, userID, recipeID)
	if err != nil {
		return err
	}
	if !removed {
		return ErrNotAdded
	}
	return nil
}

// ShoppingListCSV renders the flat export: a header row, then one row per
// line item of every recipe in the user's shopping list. Duplicate units
// across recipes are not summed.
func (s *Service) ShoppingListCSV(ctx context.Context, userID int64) ([]byte, error) {
	rows, err := s.recipes.ShoppingListRows(ctx, userID)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"name", "amount", "measurement_unit"}); err != nil {
		return nil, err
	}
	for _, row := range rows {
		if err := w.Write([]string{row.Name, strconv.Itoa(row.Amount), row.MeasurementUnit}); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
