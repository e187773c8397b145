package repository

import (
	"context"
	"testing"
	"time"

	"github.com/AyaBm214/PremiumConnect/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository(t *testing.T) {
	ctx := context.Background()
	database := newTestDB(t)
	repo := NewUserRepository(database)

	created := seedUser(t, database, "u1", "owner@example.com")

	got, err := repo.ByEmail(ctx, "owner@example.com")
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, model.RoleClient, got.Role)
	assert.True(t, created.CreatedAt.Equal(got.CreatedAt))

	dup := *created
	dup.ID = "u2"
	err = repo.Create(ctx, &dup)
	assert.ErrorIs(t, err, ErrDuplicateEmail)

	err = repo.UpdateRole(ctx, "u1", model.RoleAdmin)
	require.NoError(t, err)
	got, err = repo.ByID(ctx, "u1")
	require.NoError(t, err)
	assert.True(t, got.IsAdmin())
	assert.WithinDuration(t, time.Now(), got.UpdatedAt, time.Minute)

	_, err = repo.ByID(ctx, "nobody")
	assert.ErrorIs(t, err, ErrUserNotFound)
	_, err = repo.ByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, ErrUserNotFound)
	err = repo.UpdateRole(ctx, "nobody", model.RoleAdmin)
	assert.ErrorIs(t, err, ErrUserNotFound)
}
