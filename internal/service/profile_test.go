package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/AyaBm214/PremiumConnect/internal/model"
	"github.com/AyaBm214/PremiumConnect/internal/onboarding"
	"github.com/AyaBm214/PremiumConnect/internal/repository"
	"github.com/AyaBm214/PremiumConnect/internal/storage"
	"github.com/AyaBm214/PremiumConnect/internal/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProfileService(t *testing.T) (*ProfileService, *memoryBlobs) {
	t.Helper()
	database := newTestDB(t)
	now := time.Now().UTC()
	err := repository.NewUserRepository(database).Create(context.Background(), &model.User{
		ID: "u1", Email: "owner@example.com", PasswordHash: "x", Role: model.RoleClient, CreatedAt: now, UpdatedAt: now,
	})
	require.NoError(t, err)

	blobs := newMemoryBlobs()
	s := NewProfileService(repository.NewProfileRepository(database), blobs)
	s.now = fixedClock(time.UnixMilli(1767225600000))
	return s, blobs
}

func TestProfileUpsertNormalizes(t *testing.T) {
	ctx := context.Background()
	s, _ := newProfileService(t)

	empty, err := s.ByUserID(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, &model.UserProfile{UserID: "u1"}, empty)

	err = s.Upsert(ctx, &model.UserProfile{UserID: "u1", FullName: "  Claire Tremblay ", Email: " Claire@Example.COM "})
	require.NoError(t, err)

	got, err := s.ByUserID(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "Claire Tremblay", got.FullName)
	assert.Equal(t, "claire@example.com", got.Email)

	err = s.Upsert(ctx, &model.UserProfile{UserID: "u1", Email: "not an email"})
	var verr *validation.Error
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "email", verr.Fields[0].Field)
}

func TestUploadDocument(t *testing.T) {
	ctx := context.Background()
	s, blobs := newProfileService(t)

	_, err := s.UploadDocument(ctx, "u1", model.DocumentKind("passport_scan"), onboarding.File{Name: "a.pdf", Body: strings.NewReader("%PDF")})
	assert.ErrorIs(t, err, ErrUnknownDocument)
	assert.Empty(t, blobs.objects)

	url, err := s.UploadDocument(ctx, "u1", model.DocumentVoidCheque, onboarding.File{Name: "Cheque.PDF", ContentType: "application/pdf", Body: strings.NewReader("%PDF")})
	require.NoError(t, err)
	key := storage.BucketUserDocs + "/u1/documents/void_cheque_1767225600000.pdf"
	assert.Equal(t, "https://cdn.test/"+key, url)
	assert.Equal(t, "%PDF", blobs.objects[key])

	got, err := s.ByUserID(ctx, "u1")
	require.NoError(t, err)
	require.NotNil(t, got.Documents.VoidCheque)
	assert.Equal(t, url, *got.Documents.VoidCheque)

	s.now = fixedClock(time.UnixMilli(1767225700000))
	replaced, err := s.UploadDocument(ctx, "u1", model.DocumentVoidCheque, onboarding.File{Name: "cheque2.pdf", Body: strings.NewReader("%PDF-2")})
	require.NoError(t, err)
	assert.NotEqual(t, url, replaced)
	assert.NotContains(t, blobs.objects, key)
	assert.Len(t, blobs.objects, 1)

	_, err = s.UploadDocument(ctx, "u1", model.DocumentIdentityProof, onboarding.File{Name: "id.jpg", Body: strings.NewReader("fail")})
	assert.ErrorContains(t, err, "bucket unavailable")
}
