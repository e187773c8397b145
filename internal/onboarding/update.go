package onboarding

import (
	"fmt"
	"strings"

	"github.com/AyaBm214/PremiumConnect/internal/model"
	"github.com/AyaBm214/PremiumConnect/internal/validation"
)

// Update is a typed partial for exactly one step's slice of the document.
// Applying it replaces that slice and leaves every sibling untouched.
type Update interface {
	Step() Step
	normalize()
	validate(current model.PropertyData) error
	merge(d *model.PropertyData)
}

type InfoUpdate struct {
	Info model.Info
}

func (u *InfoUpdate) Step() Step { return StepInfo }

func (u *InfoUpdate) normalize() {}

func (u *InfoUpdate) validate(model.PropertyData) error {
	return validation.Struct(u.Info)
}

func (u *InfoUpdate) merge(d *model.PropertyData) {
	info := u.Info
	d.Info = &info
}

type AmenitiesUpdate struct {
	Amenities model.Amenities
}

func (u *AmenitiesUpdate) Step() Step { return StepAmenities }

func (u *AmenitiesUpdate) normalize() {
	u.Amenities.Selected = normalizeSelected(u.Amenities.Selected)
	u.Amenities.Rooms = normalizeRooms(u.Amenities.Rooms)
}

func (u *AmenitiesUpdate) validate(current model.PropertyData) error {
	err := validation.Struct(u.Amenities)
	if err != nil {
		return err
	}
	bedrooms, bathrooms := RoomCounts(current)
	verr := &validation.Error{}
	for _, field := range checkRooms(u.Amenities.Rooms, bedrooms, bathrooms) {
		verr.Add(field, "room", "")
	}
	return verr.ErrOrNil()
}

func (u *AmenitiesUpdate) merge(d *model.PropertyData) {
	a := u.Amenities
	d.Amenities = &a
}

type PhotosUpdate struct {
	Photos model.Photos
}

func (u *PhotosUpdate) Step() Step { return StepPhotos }

func (u *PhotosUpdate) normalize() {
	u.Photos.ExternalLinks = compactStrings(u.Photos.ExternalLinks)
	if u.Photos.GoogleDriveLink != nil && strings.TrimSpace(*u.Photos.GoogleDriveLink) == "" {
		u.Photos.GoogleDriveLink = nil
	}
}

func (u *PhotosUpdate) validate(model.PropertyData) error {
	err := validation.Struct(u.Photos)
	if err != nil {
		return err
	}
	verr := &validation.Error{}
	for i, ph := range u.Photos.Items {
		if !validZone(ph.Zone) {
			verr.Add(fmt.Sprintf("items[%d].zone", i), "zone", "")
		}
	}
	return verr.ErrOrNil()
}

func (u *PhotosUpdate) merge(d *model.PropertyData) {
	p := u.Photos
	d.Photos = &p
}

type RulesUpdate struct {
	Rules model.Rules
}

func (u *RulesUpdate) Step() Step { return StepRules }

func (u *RulesUpdate) normalize() {}

func (u *RulesUpdate) validate(model.PropertyData) error {
	return validation.Struct(u.Rules)
}

func (u *RulesUpdate) merge(d *model.PropertyData) {
	r := u.Rules
	d.Rules = &r
}

type GuideUpdate struct {
	Guide model.Guide
}

func (u *GuideUpdate) Step() Step { return StepGuide }

func (u *GuideUpdate) normalize() {
	u.Guide.KitchenPhotos = compactStrings(u.Guide.KitchenPhotos)
	u.Guide.ExtrasPhotos = compactStrings(u.Guide.ExtrasPhotos)
}

func (u *GuideUpdate) validate(model.PropertyData) error {
	return validation.Struct(u.Guide)
}

func (u *GuideUpdate) merge(d *model.PropertyData) {
	g := u.Guide
	d.Guide = &g
}

type PaymentUpdate struct {
	Payment model.Payment
}

func (u *PaymentUpdate) Step() Step { return StepPayment }

func (u *PaymentUpdate) normalize() {}

func (u *PaymentUpdate) validate(model.PropertyData) error {
	return validation.Struct(u.Payment)
}

func (u *PaymentUpdate) merge(d *model.PropertyData) {
	p := u.Payment
	d.Payment = &p
}

// compactStrings trims entries and drops blanks.
func compactStrings(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func blank(s *string) bool {
	return s == nil || strings.TrimSpace(*s) == ""
}
