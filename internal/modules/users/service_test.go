package users

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/maximohlupin-omd-work/foodgram/internal/domain"
	"github.com/maximohlupin-omd-work/foodgram/internal/repository"
)

// Mock repositories
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, u *domain.User) error {
	args := m.Called(ctx, u)
	if u != nil {
		u.ID = 999 // simulate DB insert
	}
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) List(ctx context.Context, limit, offset int) ([]domain.User, int64, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.User), args.Get(1).(int64), args.Error(2)
}

func (m *MockUserRepository) UpdatePassword(ctx context.Context, id int64, hash string) error {
	args := m.Called(ctx, id, hash)
	return args.Error(0)
}

type MockSubscriptionRepository struct {
	mock.Mock
}

func (m *MockSubscriptionRepository) Add(ctx context.Context, ownerID, subscriberID int64) error {
	args := m.Called(ctx, ownerID, subscriberID)
	return args.Error(0)
}

func (m *MockSubscriptionRepository) Remove(ctx context.Context, ownerID, subscriberID int64) (bool, error) {
	args := m.Called(ctx, ownerID, subscriberID)
	return args.Bool(0), args.Error(1)
}

func (m *MockSubscriptionRepository) OwnerIDSet(ctx context.Context, subscriberID int64, ownerIDs []int64) (map[int64]bool, error) {
	args := m.Called(ctx, subscriberID, ownerIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[int64]bool), args.Error(1)
}

func (m *MockSubscriptionRepository) ListOwners(ctx context.Context, subscriberID int64, limit, offset int) ([]domain.User, int64, error) {
	args := m.Called(ctx, subscriberID, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.User), args.Get(1).(int64), args.Error(2)
}

type MockRecipeReader struct {
	mock.Mock
}

func (m *MockRecipeReader) CountByAuthors(ctx context.Context, authorIDs []int64) (map[int64]int64, error) {
	args := m.Called(ctx, authorIDs)
	return args.Get(0).(map[int64]int64), args.Error(1)
}

func (m *MockRecipeReader) ListByAuthor(ctx context.Context, authorID int64, limit int) ([]domain.Recipe, error) {
	args := m.Called(ctx, authorID, limit)
	return args.Get(0).([]domain.Recipe), args.Error(1)
}

type MockTokenRevoker struct {
	mock.Mock
}

func (m *MockTokenRevoker) DeleteByUser(ctx context.Context, userID int64) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func TestService_Register_Success(t *testing.T) {
	mockUsers := new(MockUserRepository)
	mockSubs := new(MockSubscriptionRepository)
	mockRecipes := new(MockRecipeReader)
	service := NewService(mockUsers, mockSubs, mockRecipes, new(MockTokenRevoker))

	mockUsers.On("ExistsByEmail", mock.Anything, "chef@example.com").Return(false, nil)
	mockUsers.On("Create", mock.Anything, mock.Anything).Return(nil)

	user, err := service.Register(context.Background(), RegisterRequest{
		Email:     "Chef@Example.com",
		Username:  "chef",
		FirstName: "Julia",
		LastName:  "Cook",
		Password:  "secret-password",
	})

	assert.NoError(t, err)
	assert.Equal(t, "chef@example.com", user.Email)
	// stored hash verifies against the submitted password
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("secret-password")))
}

func TestService_Register_EmailTaken(t *testing.T) {
	mockUsers := new(MockUserRepository)
	service := NewService(mockUsers, new(MockSubscriptionRepository), new(MockRecipeReader), new(MockTokenRevoker))

	mockUsers.On("ExistsByEmail", mock.Anything, "chef@example.com").Return(true, nil)

	_, err := service.Register(context.Background(), RegisterRequest{Email: "chef@example.com"})
	assert.ErrorIs(t, err, ErrEmailExists)
	mockUsers.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestService_Register_ConcurrentDuplicate(t *testing.T) {
	mockUsers := new(MockUserRepository)
	service := NewService(mockUsers, new(MockSubscriptionRepository), new(MockRecipeReader), new(MockTokenRevoker))

	mockUsers.On("ExistsByEmail", mock.Anything, "chef@example.com").Return(false, nil)
	mockUsers.On("Create", mock.Anything, mock.Anything).Return(repository.ErrDuplicate)

	_, err := service.Register(context.Background(), RegisterRequest{Email: "chef@example.com"})
	assert.ErrorIs(t, err, ErrEmailExists)
}

func TestService_Get_SubscribedFlag(t *testing.T) {
	mockUsers := new(MockUserRepository)
	mockSubs := new(MockSubscriptionRepository)
	service := NewService(mockUsers, mockSubs, new(MockRecipeReader), new(MockTokenRevoker))

	mockUsers.On("GetByID", mock.Anything, int64(2)).Return(&domain.User{ID: 2}, nil)
	mockSubs.On("OwnerIDSet", mock.Anything, int64(1), []int64{2}).Return(map[int64]bool{2: true}, nil)

	viewer := int64(1)
	_, isSubscribed, err := service.Get(context.Background(), &viewer, 2)
	assert.NoError(t, err)
	assert.True(t, isSubscribed)
}

func TestService_Get_SelfIsNeverSubscribed(t *testing.T) {
	mockUsers := new(MockUserRepository)
	mockSubs := new(MockSubscriptionRepository)
	service := NewService(mockUsers, mockSubs, new(MockRecipeReader), new(MockTokenRevoker))

	mockUsers.On("GetByID", mock.Anything, int64(1)).Return(&domain.User{ID: 1}, nil)

	viewer := int64(1)
	_, isSubscribed, err := service.Get(context.Background(), &viewer, 1)
	assert.NoError(t, err)
	assert.False(t, isSubscribed)
	mockSubs.AssertNotCalled(t, "OwnerIDSet", mock.Anything, mock.Anything, mock.Anything)
}

func TestService_SetPassword_WrongCurrent(t *testing.T) {
	mockUsers := new(MockUserRepository)
	service := NewService(mockUsers, new(MockSubscriptionRepository), new(MockRecipeReader), new(MockTokenRevoker))

	hash, _ := bcrypt.GenerateFromPassword([]byte("right"), bcrypt.DefaultCost)
	mockUsers.On("GetByID", mock.Anything, int64(1)).Return(&domain.User{ID: 1, PasswordHash: string(hash)}, nil)

	err := service.SetPassword(context.Background(), 1, SetPasswordRequest{
		CurrentPassword: "wrong",
		NewPassword:     "new-password",
	})
	assert.ErrorIs(t, err, ErrWrongPassword)
	mockUsers.AssertNotCalled(t, "UpdatePassword", mock.Anything, mock.Anything, mock.Anything)
}

func TestService_SetPassword_RevokesTokens(t *testing.T) {
	mockUsers := new(MockUserRepository)
	mockTokens := new(MockTokenRevoker)
	service := NewService(mockUsers, new(MockSubscriptionRepository), new(MockRecipeReader), mockTokens)

	hash, _ := bcrypt.GenerateFromPassword([]byte("old-password"), bcrypt.DefaultCost)
	mockUsers.On("GetByID", mock.Anything, int64(1)).Return(&domain.User{ID: 1, PasswordHash: string(hash)}, nil)
	mockUsers.On("UpdatePassword", mock.Anything, int64(1), mock.Anything).Return(nil)
	mockTokens.On("DeleteByUser", mock.Anything, int64(1)).Return(nil)

	err := service.SetPassword(context.Background(), 1, SetPasswordRequest{
		CurrentPassword: "old-password",
		NewPassword:     "new-password",
	})

	assert.NoError(t, err)
	mockTokens.AssertExpectations(t)
}

func TestService_Subscribe_SelfRejectedFirst(t *testing.T) {
	mockUsers := new(MockUserRepository)
	mockSubs := new(MockSubscriptionRepository)
	service := NewService(mockUsers, mockSubs, new(MockRecipeReader), new(MockTokenRevoker))

	_, err := service.Subscribe(context.Background(), 1, 1)

	assert.ErrorIs(t, err, ErrSelfSubscribe)
	// the self check precedes every lookup
	mockUsers.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	mockSubs.AssertNotCalled(t, "Add", mock.Anything, mock.Anything, mock.Anything)
}

func TestService_Subscribe_OwnerMissing(t *testing.T) {
	mockUsers := new(MockUserRepository)
	mockSubs := new(MockSubscriptionRepository)
	service := NewService(mockUsers, mockSubs, new(MockRecipeReader), new(MockTokenRevoker))

	mockUsers.On("GetByID", mock.Anything, int64(404)).Return(nil, gorm.ErrRecordNotFound)

	_, err := service.Subscribe(context.Background(), 1, 404)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestService_Subscribe_Duplicate(t *testing.T) {
	mockUsers := new(MockUserRepository)
	mockSubs := new(MockSubscriptionRepository)
	service := NewService(mockUsers, mockSubs, new(MockRecipeReader), new(MockTokenRevoker))

	mockUsers.On("GetByID", mock.Anything, int64(2)).Return(&domain.User{ID: 2}, nil)
	mockSubs.On("Add", mock.Anything, int64(2), int64(1)).Return(repository.ErrDuplicate)

	_, err := service.Subscribe(context.Background(), 1, 2)
	assert.ErrorIs(t, err, ErrAlreadySubscribed)
}

func TestService_Unsubscribe_NotSubscribed(t *testing.T) {
	mockUsers := new(MockUserRepository)
	mockSubs := new(MockSubscriptionRepository)
	service := NewService(mockUsers, mockSubs, new(MockRecipeReader), new(MockTokenRevoker))

	mockUsers.On("GetByID", mock.Anything, int64(2)).Return(&domain.User{ID: 2}, nil)
	mockSubs.On("Remove", mock.Anything, int64(2), int64(1)).Return(false, nil)

	err := service.Unsubscribe(context.Background(), 1, 2)
	assert.ErrorIs(t, err, ErrNotSubscribed)
}

func TestService_Subscriptions_AnnotatesCounts(t *testing.T) {
	mockUsers := new(MockUserRepository)
	mockSubs := new(MockSubscriptionRepository)
	mockRecipes := new(MockRecipeReader)
	service := NewService(mockUsers, mockSubs, mockRecipes, new(MockTokenRevoker))

	owners := []domain.User{{ID: 2, Username: "baker"}, {ID: 3, Username: "chef"}}
	mockSubs.On("ListOwners", mock.Anything, int64(1), 6, 0).Return(owners, int64(2), nil)
	mockRecipes.On("CountByAuthors", mock.Anything, []int64{2, 3}).Return(map[int64]int64{2: 5, 3: 1}, nil)
	mockRecipes.On("ListByAuthor", mock.Anything, int64(2), 3).Return([]domain.Recipe{{ID: 10}, {ID: 9}, {ID: 8}}, nil)
	mockRecipes.On("ListByAuthor", mock.Anything, int64(3), 3).Return([]domain.Recipe{{ID: 7}}, nil)

	items, total, err := service.Subscriptions(context.Background(), 1, 6, 0, 3)

	assert.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, items, 2)
	assert.Equal(t, int64(5), items[0].RecipesCount)
	assert.Len(t, items[0].Recipes, 3)
	assert.Equal(t, int64(1), items[1].RecipesCount)
}
