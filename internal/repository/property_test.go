package repository

import (
	"context"
	"testing"
	"time"

	"github.com/AyaBm214/PremiumConnect/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T {
	return &v
}

func sampleProperty(id, owner string, updated time.Time) *model.Property {
	return &model.Property{
		ID:          id,
		OwnerID:     owner,
		Name:        model.DefaultPropertyName,
		Status:      model.PropertyStatusDraft,
		CurrentStep: 1,
		TotalSteps:  7,
		CreatedAt:   updated,
		UpdatedAt:   updated,
	}
}

func TestPropertyRowRoundTrip(t *testing.T) {
	typ := model.PropertyTypeVilla
	now := time.Date(2026, 5, 2, 14, 30, 0, 0, time.UTC)
	p := &model.Property{
		ID:          "p1",
		OwnerID:     "u1",
		Name:        "Villa Soleil",
		Status:      model.PropertyStatusPendingReview,
		CurrentStep: 6,
		TotalSteps:  7,
		Progress:    100,
		Data: model.PropertyData{
			Info: &model.Info{PropertyName: ptr("Villa Soleil"), Type: &typ, NumRooms: ptr(4), NumBathrooms: ptr(0)},
			Amenities: &model.Amenities{
				Selected: []string{"Pool"},
				Rooms:    []model.RoomAmenity{{ZoneType: model.ZoneBedroom, ZoneIndex: 2, ItemID: "King bed"}},
			},
			Photos: &model.Photos{Items: []model.Photo{{Zone: model.ZoneRef{Type: model.ZoneBedroom, Index: 2}, URL: "https://cdn.test/a.jpg"}}},
			Access: &model.Access{Instructions: ptr("Code 1234")},
			Rules:  &model.Rules{Smoking: ptr(false), CleaningFee: ptr(85.5)},
			Guide:  &model.Guide{LockVideoURL: ptr("https://cdn.test/lock.mp4"), KitchenPhotos: []string{"https://cdn.test/k.jpg"}},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	row, err := toRow(p)
	require.NoError(t, err)
	assert.Equal(t, "pending_review", row.Status)
	assert.NotContains(t, row.Data, "payment")

	back, err := fromRow(row)
	require.NoError(t, err)
	assert.Equal(t, p, back)
}

func TestFromRowEmptyData(t *testing.T) {
	p, err := fromRow(propertyRow{ID: "p1", Status: "draft", Data: " "})
	require.NoError(t, err)
	assert.Equal(t, model.PropertyData{}, p.Data)

	_, err = fromRow(propertyRow{ID: "p1", Data: "{not json"})
	assert.Error(t, err)
}

func TestPropertyRepository(t *testing.T) {
	ctx := context.Background()
	database := newTestDB(t)
	seedUser(t, database, "u1", "one@example.com")
	seedUser(t, database, "u2", "two@example.com")
	repo := NewPropertyRepository(database)

	base := time.Date(2026, 1, 10, 8, 0, 0, 0, time.UTC)
	older := sampleProperty("p-old", "u1", base)
	newer := sampleProperty("p-new", "u1", base.Add(time.Hour))
	other := sampleProperty("p-other", "u2", base.Add(2*time.Hour))
	for _, p := range []*model.Property{older, newer, other} {
		require.NoError(t, repo.Create(ctx, p))
	}

	mine, err := repo.Query(ctx, PropertyFilter{OwnerID: "u1"}, OrderUpdatedDesc)
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, "p-new", mine[0].ID)
	assert.Equal(t, "p-old", mine[1].ID)

	older.Data.Info = &model.Info{PropertyName: ptr("Chalet du Lac"), NumRooms: ptr(3)}
	older.CurrentStep = 2
	older.Progress = 17
	older.UpdatedAt = base.Add(3 * time.Hour)
	require.NoError(t, repo.Update(ctx, older))

	got, err := repo.ByID(ctx, "p-old")
	require.NoError(t, err)
	assert.Equal(t, older.Data, got.Data)
	assert.Equal(t, 2, got.CurrentStep)
	assert.Equal(t, 17, got.Progress)
	assert.True(t, older.UpdatedAt.Equal(got.UpdatedAt))
	assert.True(t, base.Equal(got.CreatedAt))

	mine, err = repo.Query(ctx, PropertyFilter{OwnerID: "u1"}, OrderUpdatedDesc)
	require.NoError(t, err)
	assert.Equal(t, "p-old", mine[0].ID)

	require.NoError(t, repo.UpdateStatus(ctx, "p-other", model.PropertyStatusPendingReview, 100))
	pending, err := repo.Query(ctx, PropertyFilter{Status: model.PropertyStatusPendingReview}, OrderCreatedDesc)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "p-other", pending[0].ID)
	assert.Equal(t, 100, pending[0].Progress)

	all, err := repo.Query(ctx, PropertyFilter{}, OrderCreatedDesc)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{"p-other", "p-new", "p-old"}, []string{all[0].ID, all[1].ID, all[2].ID})

	require.NoError(t, repo.Delete(ctx, "p-new"))
	_, err = repo.ByID(ctx, "p-new")
	assert.ErrorIs(t, err, ErrPropertyNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, "p-new"), ErrPropertyNotFound)
	assert.ErrorIs(t, repo.Update(ctx, newer), ErrPropertyNotFound)
	assert.ErrorIs(t, repo.UpdateStatus(ctx, "missing", model.PropertyStatusActive, 100), ErrPropertyNotFound)
}
