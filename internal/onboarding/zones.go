package onboarding

import "github.com/AyaBm214/PremiumConnect/internal/model"

// PhotoZones lists the areas the owner is asked to photograph, in display
// order: shared rooms, each bedroom, each bathroom, the exterior, then the
// floor plan.
func PhotoZones(d model.PropertyData) []model.ZoneRef {
	bedrooms, bathrooms := RoomCounts(d)

	zones := make([]model.ZoneRef, 0, bedrooms+bathrooms+4)
	zones = append(zones,
		model.ZoneRef{Type: model.ZoneLivingRoom},
		model.ZoneRef{Type: model.ZoneKitchen},
	)
	for i := 1; i <= bedrooms; i++ {
		zones = append(zones, model.ZoneRef{Type: model.ZoneBedroom, Index: i})
	}
	for i := 1; i <= bathrooms; i++ {
		zones = append(zones, model.ZoneRef{Type: model.ZoneBathroom, Index: i})
	}
	zones = append(zones,
		model.ZoneRef{Type: model.ZoneExterior},
		model.ZoneRef{Type: model.ZoneFloorPlan},
	)
	return zones
}

// validZone reports whether z is well formed. Room zones need a positive
// index and shared zones must not carry one. Indices above the current room
// count are allowed so photos survive a lowered count.
func validZone(z model.ZoneRef) bool {
	switch z.Type {
	case model.ZoneBedroom, model.ZoneBathroom:
		return z.Index >= 1
	case model.ZoneLivingRoom, model.ZoneKitchen, model.ZoneExterior, model.ZoneFloorPlan:
		return z.Index == 0
	}
	return false
}

// PhotosByZone groups stored photos by zone, including zones no longer offered.
func PhotosByZone(p *model.Photos) map[model.ZoneRef][]string {
	out := map[model.ZoneRef][]string{}
	if p == nil {
		return out
	}
	for _, ph := range p.Items {
		out[ph.Zone] = append(out[ph.Zone], ph.URL)
	}
	return out
}
