package repository

import (
	"context"
	"testing"

	"github.com/AyaBm214/PremiumConnect/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileUpsert(t *testing.T) {
	ctx := context.Background()
	database := newTestDB(t)
	seedUser(t, database, "u1", "owner@example.com")
	repo := NewProfileRepository(database)

	_, err := repo.ByUserID(ctx, "u1")
	require.ErrorIs(t, err, ErrProfileNotFound)

	profile := &model.UserProfile{UserID: "u1", FullName: "Claire Tremblay", PhoneNumber: "+1 418 555 0100"}
	require.NoError(t, repo.Upsert(ctx, profile))
	assert.False(t, profile.UpdatedAt.IsZero())

	voidCheque := "https://cdn.test/user-docs/u1/documents/void_cheque_1.pdf"
	profile.BusinessNumber = "123456789"
	profile.TaxConfirmed = true
	profile.Documents.SetDocument(model.DocumentVoidCheque, voidCheque)
	require.NoError(t, repo.Upsert(ctx, profile))

	got, err := repo.ByUserID(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "Claire Tremblay", got.FullName)
	assert.Equal(t, "123456789", got.BusinessNumber)
	assert.True(t, got.TaxConfirmed)
	require.NotNil(t, got.Documents.VoidCheque)
	assert.Equal(t, voidCheque, *got.Documents.VoidCheque)
	assert.Nil(t, got.Documents.IdentityProof)
}
