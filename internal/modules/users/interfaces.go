package users

import (
	"context"

	"github.com/maximohlupin-omd-work/foodgram/internal/domain"
)

// UserRepositoryInterface — only the methods the users service uses
type UserRepositoryInterface interface {
	Create(ctx context.Context, u *domain.User) error
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	List(ctx context.Context, limit, offset int) ([]domain.User, int64, error)
	UpdatePassword(ctx context.Context, id int64, hash string) error
}

// SubscriptionRepositoryInterface — the follow graph edges
type SubscriptionRepositoryInterface interface {
	Add(ctx context.Context, ownerID, subscriberID int64) error
	Remove(ctx context.Context, ownerID, subscriberID int64) (bool, error)
	OwnerIDSet(ctx context.Context, subscriberID int64, ownerIDs []int64) (map[int64]bool, error)
	ListOwners(ctx context.Context, subscriberID int64, limit, offset int) ([]domain.User, int64, error)
}

// RecipeReader — recipe lookups for subscription annotation
type RecipeReader interface {
	CountByAuthors(ctx context.Context, authorIDs []int64) (map[int64]int64, error)
	ListByAuthor(ctx context.Context, authorID int64, limit int) ([]domain.Recipe, error)
}

// TokenRevoker — bulk token revocation on password change
type TokenRevoker interface {
	DeleteByUser(ctx context.Context, userID int64) error
}
