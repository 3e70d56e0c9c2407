package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maximohlupin-omd-work/foodgram/internal/domain"
)

func TestUserRepository_Create_DuplicateEmail(t *testing.T) {
	db := testDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	first := &domain.User{Email: "Chef@Example.com", Username: "chef"}
	require.NoError(t, repo.Create(ctx, first))
	assert.Equal(t, "chef@example.com", first.Email)

	err := repo.Create(ctx, &domain.User{Email: "chef@example.com", Username: "other"})
	assert.ErrorIs(t, err, ErrDuplicate)

	exists, err := repo.ExistsByEmail(ctx, "chef@example.com")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestUserRepository_GetByEmail(t *testing.T) {
	db := testDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &domain.User{Email: "chef@example.com", Username: "chef"}))

	user, err := repo.GetByEmail(ctx, "chef@example.com")
	require.NoError(t, err)
	assert.Equal(t, "chef", user.Username)
}

func TestUserRepository_List_NewestFirst(t *testing.T) {
	db := testDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &domain.User{Email: "a@example.com", Username: "a"}))
	require.NoError(t, repo.Create(ctx, &domain.User{Email: "b@example.com", Username: "b"}))
	require.NoError(t, repo.Create(ctx, &domain.User{Email: "c@example.com", Username: "c"}))

	list, total, err := repo.List(ctx, 2, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, list, 2)
	assert.Equal(t, "c", list[0].Username)
	assert.Equal(t, "b", list[1].Username)
}

func TestSubscriptionRepository_EdgeLifecycle(t *testing.T) {
	db := testDB(t)
	users := NewUserRepository(db)
	repo := NewSubscriptionRepository(db)
	ctx := context.Background()

	owner := &domain.User{Email: "owner@example.com", Username: "owner"}
	follower := &domain.User{Email: "fan@example.com", Username: "fan"}
	require.NoError(t, users.Create(ctx, owner))
	require.NoError(t, users.Create(ctx, follower))

	require.NoError(t, repo.Add(ctx, owner.ID, follower.ID))
	assert.ErrorIs(t, repo.Add(ctx, owner.ID, follower.ID), ErrDuplicate)

	set, err := repo.OwnerIDSet(ctx, follower.ID, []int64{owner.ID})
	require.NoError(t, err)
	assert.True(t, set[owner.ID])

	// the inverse edge does not exist
	set, err = repo.OwnerIDSet(ctx, owner.ID, []int64{follower.ID})
	require.NoError(t, err)
	assert.False(t, set[follower.ID])

	owners, total, err := repo.ListOwners(ctx, follower.ID, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, owners, 1)
	assert.Equal(t, "owner", owners[0].Username)

	removed, err := repo.Remove(ctx, owner.ID, follower.ID)
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = repo.Remove(ctx, owner.ID, follower.ID)
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestAuthTokenRepository_RevocationRoundTrip(t *testing.T) {
	db := testDB(t)
	users := NewUserRepository(db)
	repo := NewAuthTokenRepository(db)
	ctx := context.Background()

	user := &domain.User{Email: "chef@example.com", Username: "chef"}
	require.NoError(t, users.Create(ctx, user))

	require.NoError(t, repo.Create(ctx, &domain.AuthToken{ID: "row-1", UserID: user.ID}))

	alive, err := repo.Exists(ctx, "row-1")
	require.NoError(t, err)
	assert.True(t, alive)

	deleted, err := repo.Delete(ctx, "row-1")
	require.NoError(t, err)
	assert.True(t, deleted)

	alive, err = repo.Exists(ctx, "row-1")
	require.NoError(t, err)
	assert.False(t, alive)

	deleted, err = repo.Delete(ctx, "row-1")
	require.NoError(t, err)
	assert.False(t, deleted)
}
