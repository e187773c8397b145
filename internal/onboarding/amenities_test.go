package onboarding

import (
	"testing"

	"github.com/AyaBm214/PremiumConnect/internal/model"
	"github.com/AyaBm214/PremiumConnect/internal/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T {
	return &v
}

func countZones(lists []Checklist, zt model.ZoneType) int {
	n := 0
	for _, l := range lists {
		if l.Zone.Type == zt {
			n++
		}
	}
	return n
}

func TestRoomChecklistsTrackCounts(t *testing.T) {
	d := model.PropertyData{Info: &model.Info{NumRooms: ptr(3), NumBathrooms: ptr(2)}}
	lists := RoomChecklists(d)
	assert.Equal(t, 3, countZones(lists, model.ZoneBedroom))
	assert.Equal(t, 2, countZones(lists, model.ZoneBathroom))
	assert.Equal(t, model.ZoneRef{Type: model.ZoneBedroom, Index: 3}, lists[2].Zone)
	assert.Len(t, lists[0].Items, len(BedroomItems))

	// Missing or zero counts still offer one room of each kind.
	lists = RoomChecklists(model.PropertyData{})
	assert.Equal(t, 1, countZones(lists, model.ZoneBedroom))
	assert.Equal(t, 1, countZones(lists, model.ZoneBathroom))

	lists = RoomChecklists(model.PropertyData{Info: &model.Info{NumRooms: ptr(0)}})
	assert.Equal(t, 1, countZones(lists, model.ZoneBedroom))
}

func TestRoomChecklistsIgnoreSelectionsBeyondCount(t *testing.T) {
	d := model.PropertyData{
		Info: &model.Info{NumRooms: ptr(2), NumBathrooms: ptr(1)},
		Amenities: &model.Amenities{Rooms: []model.RoomAmenity{
			{ZoneType: model.ZoneBedroom, ZoneIndex: 1, ItemID: "King bed"},
			{ZoneType: model.ZoneBedroom, ZoneIndex: 3, ItemID: "Queen bed"},
		}},
	}

	lists := RoomChecklists(d)
	require.Len(t, lists, 3)
	assert.Contains(t, lists[0].Items, ChecklistItem{ItemID: "King bed", Checked: true})
	assert.Contains(t, lists[1].Items, ChecklistItem{ItemID: "Queen bed", Checked: false})
}

func TestConditionalFields(t *testing.T) {
	tests := []struct {
		selected []string
		pool     bool
		hotTub   bool
	}{
		{nil, false, false},
		{[]string{"Swimming pool (shared)"}, true, false},
		{[]string{"HOT TUB / Jacuzzi"}, false, true},
		{[]string{"Piscine chauffée", "Spa"}, true, true},
		{[]string{"Sauna", "Garden"}, false, false},
	}
	for _, tt := range tests {
		pool, hotTub := ConditionalFields(&model.Amenities{Selected: tt.selected})
		assert.Equal(t, tt.pool, pool, "pool for %v", tt.selected)
		assert.Equal(t, tt.hotTub, hotTub, "hot tub for %v", tt.selected)
	}
}

func TestPruneRoomsCopiesOnWrite(t *testing.T) {
	a := &model.Amenities{
		Selected: []string{"WiFi"},
		Rooms: []model.RoomAmenity{
			{ZoneType: model.ZoneBedroom, ZoneIndex: 1, ItemID: "King bed"},
			{ZoneType: model.ZoneBedroom, ZoneIndex: 3, ItemID: "Crib (baby)"},
			{ZoneType: model.ZoneBathroom, ZoneIndex: 2, ItemID: "Bathtub"},
		},
	}

	pruned, removed := PruneRooms(a, 2, 1)
	assert.Equal(t, 2, removed)
	assert.Equal(t, []model.RoomAmenity{{ZoneType: model.ZoneBedroom, ZoneIndex: 1, ItemID: "King bed"}}, pruned.Rooms)
	assert.Equal(t, []string{"WiFi"}, pruned.Selected)
	assert.Len(t, a.Rooms, 3)

	pruned, removed = PruneRooms(nil, 1, 1)
	assert.Nil(t, pruned)
	assert.Zero(t, removed)
}

func TestAmenitiesUpdateNormalizesAndValidates(t *testing.T) {
	current := model.PropertyData{Info: &model.Info{NumRooms: ptr(1), NumBathrooms: ptr(1)}}

	u := &AmenitiesUpdate{Amenities: model.Amenities{
		Selected: []string{" WiFi ", "wifi", "", "Sauna"},
		Rooms: []model.RoomAmenity{
			{ZoneType: model.ZoneBedroom, ZoneIndex: 1, ItemID: "King bed"},
			{ZoneType: model.ZoneBedroom, ZoneIndex: 1, ItemID: "King bed "},
		},
	}}
	u.normalize()
	assert.Equal(t, []string{"WiFi", "Sauna"}, u.Amenities.Selected)
	assert.Len(t, u.Amenities.Rooms, 1)
	require.NoError(t, u.validate(current))

	u = &AmenitiesUpdate{Amenities: model.Amenities{
		Rooms: []model.RoomAmenity{
			{ZoneType: model.ZoneBedroom, ZoneIndex: 2, ItemID: "King bed"},
			{ZoneType: model.ZoneBathroom, ZoneIndex: 1, ItemID: "Hot tub"},
		},
	}}
	err := u.validate(current)
	var verr *validation.Error
	require.ErrorAs(t, err, &verr)
	fields := []string{}
	for _, f := range verr.Fields {
		fields = append(fields, f.Field)
	}
	assert.ElementsMatch(t, []string{"rooms[0].zoneIndex", "rooms[1].itemId"}, fields)

	u = &AmenitiesUpdate{Amenities: model.Amenities{PoolOpeningDate: ptr("June 1st")}}
	require.ErrorAs(t, u.validate(current), &verr)
	assert.Equal(t, "poolOpeningDate", verr.Fields[0].Field)
	assert.Equal(t, "datetime", verr.Fields[0].Rule)
}
