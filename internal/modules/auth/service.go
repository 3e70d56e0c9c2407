package auth

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/maximohlupin-omd-work/foodgram/internal/domain"
	"github.com/maximohlupin-omd-work/foodgram/internal/pkg/token"
)

// Service issues and revokes access tokens. A token is valid while its
// signature checks out and its backing row still exists.
type Service struct {
	users  UserReader
	store  TokenStore
	tokens *token.Service
}

func NewService(users UserReader, store TokenStore, tokens *token.Service) *Service {
	return &Service{users: users, store: store, tokens: tokens}
}

func (s *Service) Login(ctx context.Context, req LoginRequest) (string, error) {
	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return "", ErrInvalidCredentials
	}

	row := &domain.AuthToken{ID: uuid.NewString(), UserID: user.ID}
	if err := s.store.Create(ctx, row); err != nil {
		return "", err
	}

	return s.tokens.Generate(user.ID, row.ID)
}

// Logout revokes the presented token. Unknown or malformed tokens surface as
// ErrTokenNotFound.
func (s *Service) Logout(ctx context.Context, rawToken string) error {
	claims, err := s.tokens.Validate(rawToken)
	if err != nil {
		return ErrTokenNotFound
	}

	deleted, err := s.store.Delete(ctx, claims.ID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrTokenNotFound
	}
	return nil
}
