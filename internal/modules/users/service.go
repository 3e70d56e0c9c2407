package users

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/maximohlupin-omd-work/foodgram/internal/domain"
	"github.com/maximohlupin-omd-work/foodgram/internal/repository"
)

type Service struct {
	users         UserRepositoryInterface
	subscriptions SubscriptionRepositoryInterface
	recipes       RecipeReader
	tokens        TokenRevoker
}

func NewService(
	users UserRepositoryInterface,
	subscriptions SubscriptionRepositoryInterface,
	recipes RecipeReader,
	tokens TokenRevoker,
) *Service {
	return &Service{
		users:         users,
		subscriptions: subscriptions,
		recipes:       recipes,
		tokens:        tokens,
	}
}

// Register creates the account in one atomic insert. The shopping list,
// favorite and subscription relations are pair-scoped rows, so an account
// that exists can always resolve all three sets.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*domain.User, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	exists, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Email:        email,
		Username:     req.Username,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		PasswordHash: string(hash),
	}
	if err := s.users.Create(ctx, user); err != nil {
		// unique index backstop against a concurrent registration
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrEmailExists
		}
		return nil, err
	}
	return user, nil
}

// List returns a user page plus the subset of those users the viewer is
// subscribed to. The set is empty for anonymous viewers.
func (s *Service) List(ctx context.Context, viewerID *int64, limit, offset int) ([]domain.User, map[int64]bool, int64, error) {
	list, total, err := s.users.List(ctx, limit, offset)
	if err != nil {
		return nil, nil, 0, err
	}

	subscribed := map[int64]bool{}
	if viewerID != nil {
		ids := make([]int64, 0, len(list))
		for _, u := range list {
			ids = append(ids, u.ID)
		}
		subscribed, err = s.subscriptions.OwnerIDSet(ctx, *viewerID, ids)
		if err != nil {
			return nil, nil, 0, err
		}
	}
	return list, subscribed, total, nil
}

func (s *Service) Get(ctx context.Context, viewerID *int64, id int64) (*domain.User, bool, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, ErrUserNotFound
		}
		return nil, false, err
	}

	isSubscribed := false
	if viewerID != nil && *viewerID != user.ID {
		set, err := s.subscriptions.OwnerIDSet(ctx, *viewerID, []int64{user.ID})
		if err != nil {
			return nil, false, err
		}
		isSubscribed = set[user.ID]
	}
	return user, isSubscribed, nil
}

func (s *Service) Me(ctx context.Context, userID int64) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *Service) SetPassword(ctx context.Context, userID int64, req SetPasswordRequest) error {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		return ErrWrongPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if err := s.users.UpdatePassword(ctx, userID, string(hash)); err != nil {
		return err
	}

	// every issued token dies with the old password
	return s.tokens.DeleteByUser(ctx, userID)
}

// Subscribe adds the (owner, subscriber) edge. Self-subscription is rejected
// before any existence or state check.
func (s *Service) Subscribe(ctx context.Context, subscriberID, ownerID int64) (*domain.User, error) {
	if subscriberID == ownerID {
		return nil, ErrSelfSubscribe
	}

	owner, err := s.users.GetByID(ctx, ownerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if err := s.subscriptions.Add(ctx, ownerID, subscriberID); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrAlreadySubscribed
		}
		return nil, err
	}
	return owner, nil
}

func (s *Service) Unsubscribe(ctx context.Context, subscriberID, ownerID int64) error {
	if subscriberID == ownerID {
		return ErrSelfSubscribe
	}

	if _, err := s.users.GetByID(ctx, ownerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	removed, err := s.subscriptions.Remove(ctx, ownerID, subscriberID)
	if err != nil {
		return err
	}
	if !removed {
		return ErrNotSubscribed
	}
	return nil
}

// SubscriptionItem is a subscribed author with recipe annotations, before
// image URL resolution.
type SubscriptionItem struct {
	User         domain.User
	Recipes      []domain.Recipe
	RecipesCount int64
}

// Subscriptions returns the authors the user follows, each with their
// newest recipes (capped at recipesLimit when > 0) and total recipe count.
func (s *Service) Subscriptions(ctx context.Context, subscriberID int64, limit, offset, recipesLimit int) ([]SubscriptionItem, int64, error) {
	owners, total, err := s.subscriptions.ListOwners(ctx, subscriberID, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	ids := make([]int64, 0, len(owners))
	for _, o := range owners {
		ids = append(ids, o.ID)
	}
	counts, err := s.recipes.CountByAuthors(ctx, ids)
	if err != nil {
		return nil, 0, err
	}

	items := make([]SubscriptionItem, 0, len(owners))
	for _, owner := range owners {
		recipes, err := s.recipes.ListByAuthor(ctx, owner.ID, recipesLimit)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, SubscriptionItem{
			User:         owner,
			Recipes:      recipes,
			RecipesCount: counts[owner.ID],
		})
	}
	return items, total, nil
}
