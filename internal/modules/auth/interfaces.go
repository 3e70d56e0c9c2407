package auth

import (
	"context"

	"github.com/maximohlupin-omd-work/foodgram/internal/domain"
)

// UserReader — only the lookups the auth service needs
type UserReader interface {
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

// TokenStore — persistence for revocable token rows
type TokenStore interface {
	Create(ctx context.Context, t *domain.AuthToken) error
	Delete(ctx context.Context, id string) (bool, error)
}
