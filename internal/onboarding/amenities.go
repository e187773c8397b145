package onboarding

import (
	"fmt"
	"slices"
	"strings"

	"github.com/AyaBm214/PremiumConnect/internal/model"
	"golang.org/x/text/cases"
)

type AmenityCategory struct {
	ID    string   `json:"id"`
	Items []string `json:"items"`
}

// Categories is the general amenity catalog. Bedroom and bathroom items are
// offered per room instead.
var Categories = []AmenityCategory{
	{ID: "living", Items: []string{"Sofa", "Sofa bed", "Armchair", "Coffee table", "TV", "Smart TV", "Cable TV", "Streaming services", "Sound system", "Board games", "Books", "Fireplace", "Air conditioning", "Heating", "Fan", "Curtains / blackout curtains", "Extra pillows & blankets"}},
	{ID: "kitchen", Items: []string{"Refrigerator", "Freezer", "Oven", "Microwave", "Stove", "Dishwasher", "Coffee machine", "Kettle", "Toaster", "Blender", "Rice cooker", "Pots & pans", "Cooking utensils", "Plates & bowls", "Cutlery", "Wine glasses", "Cups & mugs", "Basic cooking essentials", "Dining table"}},
	{ID: "internet", Items: []string{"WiFi", "High-speed WiFi", "Ethernet connection", "Desk", "Office chair", "Printer"}},
	{ID: "heating", Items: []string{"Central heating", "Portable heater"}},
	{ID: "laundry", Items: []string{"Washing machine", "Dryer", "Laundry detergent", "Drying rack"}},
	{ID: "baby", Items: []string{"High chair", "Baby bath", "Baby monitor", "Changing table", "Baby safety gates", "Outlet covers", "Children's books", "Toys"}},
	{ID: "safety", Items: []string{"Smoke detector", "Carbon monoxide detector", "Fire extinguisher", "First aid kit", "Security cameras (outside only)", "Alarm system", "Smart lock", "Keypad lock", "Lockbox", "Safe"}},
	{ID: "outdoor", Items: []string{"Balcony", "Terrace", "Patio", "Garden", "Outdoor furniture", "BBQ grill", "Outdoor dining area", "Fire pit", "Hammock"}},
	{ID: "wellness", Items: []string{"Swimming pool (private)", "Swimming pool (shared)", "Hot tub / Jacuzzi", "Sauna", "Gym / fitness equipment", "Yoga mat", "Massage chair"}},
	{ID: "parking", Items: []string{"Free parking on premises", "Free street parking", "Paid parking nearby", "EV charger", "Elevator", "Wheelchair accessible"}},
	{ID: "pets", Items: []string{"Pets allowed", "Pet bowls", "Pet bed", "Fenced yard"}},
	{ID: "features", Items: []string{"Smoking allowed", "Long-term stays allowed", "Self check-in", "Keyless entry"}},
	{ID: "location", Items: []string{"Beach access", "Lake access", "Ski-in / Ski-out", "Hiking trails nearby", "Bike paths", "Restaurants nearby", "Public transport nearby", "Grocery store nearby", "Tourist attractions nearby"}},
	{ID: "services", Items: []string{"Cleaning service available", "Breakfast available", "Concierge service", "Airport pickup"}},
}

var BedroomItems = []string{"Queen bed", "King bed", "Double bed", "Single bed", "Bunk bed", "Crib (baby)", "Bedside table", "Reading lamp", "Wardrobe / closet", "Hangers", "Iron", "Ironing board", "Extra pillows", "Extra blankets", "Desk / workspace"}

var BathroomItems = []string{"Shower", "Bathtub", "Hot water", "Shampoo", "Conditioner", "Body soap", "Towels", "Toilet paper", "Hair dryer", "Bidet", "Mirror", "Cleaning products"}

var (
	poolTerms   = []string{"pool", "piscine"}
	hotTubTerms = []string{"hot tub", "jacuzzi", "spa"}
)

// RoomCount is the number of room zones offered for a captured count. A
// missing or non-positive count still offers one room.
func RoomCount(n *int) int {
	if n == nil || *n < 1 {
		return 1
	}
	return *n
}

// RoomCounts returns the effective bedroom and bathroom counts of a document.
func RoomCounts(d model.PropertyData) (bedrooms, bathrooms int) {
	if d.Info == nil {
		return 1, 1
	}
	return RoomCount(d.Info.NumRooms), RoomCount(d.Info.NumBathrooms)
}

type ChecklistItem struct {
	ItemID  string `json:"itemId"`
	Checked bool   `json:"checked"`
}

// Checklist is the amenity list of one bedroom or bathroom.
type Checklist struct {
	Zone  model.ZoneRef   `json:"zone"`
	Items []ChecklistItem `json:"items"`
}

// RoomChecklists builds exactly one checklist per effective bedroom and
// bathroom. Stored selections for rooms beyond the counts are ignored here.
func RoomChecklists(d model.PropertyData) []Checklist {
	bedrooms, bathrooms := RoomCounts(d)

	checked := map[model.RoomAmenity]bool{}
	if d.Amenities != nil {
		for _, r := range d.Amenities.Rooms {
			checked[r] = true
		}
	}

	build := func(zt model.ZoneType, index int, items []string) Checklist {
		cl := Checklist{Zone: model.ZoneRef{Type: zt, Index: index}}
		for _, item := range items {
			key := model.RoomAmenity{ZoneType: zt, ZoneIndex: index, ItemID: item}
			cl.Items = append(cl.Items, ChecklistItem{ItemID: item, Checked: checked[key]})
		}
		return cl
	}

	lists := make([]Checklist, 0, bedrooms+bathrooms)
	for i := 1; i <= bedrooms; i++ {
		lists = append(lists, build(model.ZoneBedroom, i, BedroomItems))
	}
	for i := 1; i <= bathrooms; i++ {
		lists = append(lists, build(model.ZoneBathroom, i, BathroomItems))
	}
	return lists
}

// ConditionalFields reports which opening-date inputs the selection reveals.
func ConditionalFields(a *model.Amenities) (showPoolDate, showHotTubDate bool) {
	if a == nil {
		return false, false
	}
	fold := cases.Fold()
	for _, label := range a.Selected {
		folded := fold.String(label)
		if containsAny(folded, poolTerms) {
			showPoolDate = true
		}
		if containsAny(folded, hotTubTerms) {
			showHotTubDate = true
		}
	}
	return showPoolDate, showHotTubDate
}

func containsAny(s string, terms []string) bool {
	for _, t := range terms {
		if strings.Contains(s, t) {
			return true
		}
	}
	return false
}

// PruneRooms drops room selections whose index exceeds the given counts. It
// returns a new value and the number of removed entries; a is not modified.
func PruneRooms(a *model.Amenities, bedrooms, bathrooms int) (*model.Amenities, int) {
	if a == nil {
		return nil, 0
	}
	out := *a
	out.Rooms = make([]model.RoomAmenity, 0, len(a.Rooms))
	for _, r := range a.Rooms {
		limit := bedrooms
		if r.ZoneType == model.ZoneBathroom {
			limit = bathrooms
		}
		if r.ZoneIndex > limit {
			continue
		}
		out.Rooms = append(out.Rooms, r)
	}
	removed := len(a.Rooms) - len(out.Rooms)
	if len(out.Rooms) == 0 {
		out.Rooms = nil
	}
	return &out, removed
}

// normalizeSelected trims labels, drops blanks and removes case-insensitive duplicates.
func normalizeSelected(labels []string) []string {
	if len(labels) == 0 {
		return nil
	}
	fold := cases.Fold()
	seen := make(map[string]bool, len(labels))
	out := make([]string, 0, len(labels))
	for _, l := range labels {
		l = strings.TrimSpace(l)
		if l == "" {
			continue
		}
		key := fold.String(l)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, l)
	}
	return out
}

func normalizeRooms(rooms []model.RoomAmenity) []model.RoomAmenity {
	if len(rooms) == 0 {
		return nil
	}
	out := make([]model.RoomAmenity, 0, len(rooms))
	for _, r := range rooms {
		r.ItemID = strings.TrimSpace(r.ItemID)
		if slices.Contains(out, r) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// checkRooms verifies catalog membership and index bounds of room selections.
func checkRooms(rooms []model.RoomAmenity, bedrooms, bathrooms int) []string {
	var problems []string
	for i, r := range rooms {
		var items []string
		limit := 0
		switch r.ZoneType {
		case model.ZoneBedroom:
			items, limit = BedroomItems, bedrooms
		case model.ZoneBathroom:
			items, limit = BathroomItems, bathrooms
		default:
			continue
		}
		if r.ZoneIndex > limit {
			problems = append(problems, fmt.Sprintf("rooms[%d].zoneIndex", i))
		}
		if !slices.Contains(items, r.ItemID) {
			problems = append(problems, fmt.Sprintf("rooms[%d].itemId", i))
		}
	}
	return problems
}
