package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/maximohlupin-omd-work/foodgram/internal/domain"
	"github.com/maximohlupin-omd-work/foodgram/internal/pkg/token"
)

// Mock repositories
type MockUserReader struct {
	mock.Mock
}

func (m *MockUserReader) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

type MockTokenStore struct {
	mock.Mock
}

func (m *MockTokenStore) Create(ctx context.Context, t *domain.AuthToken) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *MockTokenStore) Delete(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func testTokens() *token.Service {
	return token.New("test-secret", time.Hour)
}

func TestService_Login_Success(t *testing.T) {
	mockUsers := new(MockUserReader)
	mockStore := new(MockTokenStore)
	tokens := testTokens()
	service := NewService(mockUsers, mockStore, tokens)

	hash, _ := bcrypt.GenerateFromPassword([]byte("secret-password"), bcrypt.DefaultCost)
	mockUsers.On("GetByEmail", mock.Anything, "chef@example.com").Return(&domain.User{
		ID:           7,
		Email:        "chef@example.com",
		PasswordHash: string(hash),
	}, nil)

	var row *domain.AuthToken
	mockStore.On("Create", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		row = args.Get(1).(*domain.AuthToken)
	}).Return(nil)

	raw, err := service.Login(context.Background(), LoginRequest{
		Email:    "chef@example.com",
		Password: "secret-password",
	})

	assert.NoError(t, err)
	assert.NotEmpty(t, raw)
	assert.NotNil(t, row)
	assert.Equal(t, int64(7), row.UserID)

	// the issued token carries the row id as jti
	claims, err := tokens.Validate(raw)
	assert.NoError(t, err)
	assert.Equal(t, int64(7), claims.UserID)
	assert.Equal(t, row.ID, claims.ID)
}

func TestService_Login_WrongPassword(t *testing.T) {
	mockUsers := new(MockUserReader)
	mockStore := new(MockTokenStore)
	service := NewService(mockUsers, mockStore, testTokens())

	hash, _ := bcrypt.GenerateFromPassword([]byte("right"), bcrypt.DefaultCost)
	mockUsers.On("GetByEmail", mock.Anything, "chef@example.com").Return(&domain.User{
		ID:           7,
		PasswordHash: string(hash),
	}, nil)

	_, err := service.Login(context.Background(), LoginRequest{
		Email:    "chef@example.com",
		Password: "wrong",
	})

	assert.ErrorIs(t, err, ErrInvalidCredentials)
	mockStore.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestService_Login_UnknownEmail(t *testing.T) {
	mockUsers := new(MockUserReader)
	service := NewService(mockUsers, new(MockTokenStore), testTokens())

	mockUsers.On("GetByEmail", mock.Anything, "ghost@example.com").Return(nil, gorm.ErrRecordNotFound)

	_, err := service.Login(context.Background(), LoginRequest{
		Email:    "ghost@example.com",
		Password: "whatever",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestService_Logout_DeletesRow(t *testing.T) {
	mockStore := new(MockTokenStore)
	tokens := testTokens()
	service := NewService(new(MockUserReader), mockStore, tokens)

	raw, err := tokens.Generate(7, "row-id")
	assert.NoError(t, err)

	mockStore.On("Delete", mock.Anything, "row-id").Return(true, nil)

	assert.NoError(t, service.Logout(context.Background(), raw))
	mockStore.AssertExpectations(t)
}

func TestService_Logout_AlreadyRevoked(t *testing.T) {
	mockStore := new(MockTokenStore)
	tokens := testTokens()
	service := NewService(new(MockUserReader), mockStore, tokens)

	raw, _ := tokens.Generate(7, "row-id")
	mockStore.On("Delete", mock.Anything, "row-id").Return(false, nil)

	err := service.Logout(context.Background(), raw)
	assert.ErrorIs(t, err, ErrTokenNotFound)
}

func TestService_Logout_MalformedToken(t *testing.T) {
	mockStore := new(MockTokenStore)
	service := NewService(new(MockUserReader), mockStore, testTokens())

	err := service.Logout(context.Background(), "not-a-token")
	assert.ErrorIs(t, err, ErrTokenNotFound)
	mockStore.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}
