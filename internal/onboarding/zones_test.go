package onboarding

import (
	"testing"

	"github.com/AyaBm214/PremiumConnect/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPhotoZonesOrder(t *testing.T) {
	d := model.PropertyData{Info: &model.Info{NumRooms: ptr(2), NumBathrooms: ptr(1)}}

	assert.Equal(t, []model.ZoneRef{
		{Type: model.ZoneLivingRoom},
		{Type: model.ZoneKitchen},
		{Type: model.ZoneBedroom, Index: 1},
		{Type: model.ZoneBedroom, Index: 2},
		{Type: model.ZoneBathroom, Index: 1},
		{Type: model.ZoneExterior},
		{Type: model.ZoneFloorPlan},
	}, PhotoZones(d))
}

func TestPhotosViewKeepsOrphanedZones(t *testing.T) {
	bed3 := model.ZoneRef{Type: model.ZoneBedroom, Index: 3}
	d := model.PropertyData{
		Info: &model.Info{NumRooms: ptr(2), NumBathrooms: ptr(1)},
		Photos: &model.Photos{Items: []model.Photo{
			{Zone: bed3, URL: "https://cdn.test/b3.jpg"},
			{Zone: model.ZoneRef{Type: model.ZoneKitchen}, URL: "https://cdn.test/k1.jpg"},
			{Zone: model.ZoneRef{Type: model.ZoneKitchen}, URL: "https://cdn.test/k2.jpg"},
		}},
	}

	m, err := ModuleFor(StepPhotos)
	require.NoError(t, err)
	v := m.View(d)

	require.Len(t, v.PhotoZones, 8)
	assert.Equal(t, []string{"https://cdn.test/k1.jpg", "https://cdn.test/k2.jpg"}, v.PhotoZones[1].URLs)
	assert.True(t, v.PhotoZones[1].Offered)

	last := v.PhotoZones[7]
	assert.Equal(t, bed3, last.Zone)
	assert.False(t, last.Offered)
	assert.Equal(t, []string{"https://cdn.test/b3.jpg"}, last.URLs)
}

func TestValidZone(t *testing.T) {
	assert.True(t, validZone(model.ZoneRef{Type: model.ZoneBedroom, Index: 4}))
	assert.False(t, validZone(model.ZoneRef{Type: model.ZoneBathroom}))
	assert.True(t, validZone(model.ZoneRef{Type: model.ZoneFloorPlan}))
	assert.False(t, validZone(model.ZoneRef{Type: model.ZoneKitchen, Index: 1}))
	assert.False(t, validZone(model.ZoneRef{Type: "garage"}))
}

func TestPhotosUpdateCompactsLinks(t *testing.T) {
	u := &PhotosUpdate{Photos: model.Photos{
		ExternalLinks:   []string{" https://airbnb.test/rooms/1 ", "", "   "},
		GoogleDriveLink: ptr("  "),
	}}
	u.normalize()
	assert.Equal(t, []string{"https://airbnb.test/rooms/1"}, u.Photos.ExternalLinks)
	assert.Nil(t, u.Photos.GoogleDriveLink)
	assert.NoError(t, u.validate(model.PropertyData{}))

	u = &PhotosUpdate{Photos: model.Photos{Items: []model.Photo{
		{Zone: model.ZoneRef{Type: model.ZoneBedroom}, URL: "https://cdn.test/x.jpg"},
	}}}
	assert.Error(t, u.validate(model.PropertyData{}))
}
