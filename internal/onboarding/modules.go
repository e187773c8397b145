package onboarding

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/AyaBm214/PremiumConnect/internal/model"
)

// Module is one page of the wizard. Modules hold no state: they decode the
// owner's edits into an Update, report what blocks an advance and describe
// what the page shows for the current document.
type Module interface {
	Step() Step
	Key() string
	Decode(raw []byte) (Update, error)
	Missing(d model.PropertyData) []string
	View(d model.PropertyData) StepView
}

// ZonePhotos is one photo zone with the URLs already uploaded for it.
// Offered is false for zones left over from a larger room count.
type ZonePhotos struct {
	Zone    model.ZoneRef `json:"zone"`
	URLs    []string      `json:"urls"`
	Offered bool          `json:"offered"`
}

// StepView is the render model of a step.
type StepView struct {
	Step           Step              `json:"step"`
	Key            string            `json:"key"`
	Missing        []string          `json:"missing,omitempty"`
	Categories     []AmenityCategory `json:"categories,omitempty"`
	Checklists     []Checklist       `json:"checklists,omitempty"`
	ShowPoolDate   bool              `json:"showPoolOpeningDate,omitempty"`
	ShowHotTubDate bool              `json:"showHotTubOpeningDate,omitempty"`
	PhotoZones     []ZonePhotos      `json:"photoZones,omitempty"`
	Media          []MediaField      `json:"media,omitempty"`
	Finish         bool              `json:"finish,omitempty"`
}

var modules = []Module{
	infoModule{},
	amenitiesModule{},
	photosModule{},
	rulesModule{},
	guideModule{},
	paymentModule{},
}

func ModuleFor(step Step) (Module, error) {
	if !step.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownStep, int(step))
	}
	return modules[step-1], nil
}

// ModuleForKey resolves a data key such as "rules". The legacy "access" key
// resolves to ErrLegacyStep.
func ModuleForKey(key string) (Module, error) {
	if key == "access" {
		return nil, ErrLegacyStep
	}
	for _, m := range modules {
		if m.Key() == key {
			return m, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownStep, key)
}

func decodeStrict(raw []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	err := dec.Decode(v)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedUpdate, err)
	}
	return nil
}

func baseView(m Module, d model.PropertyData) StepView {
	return StepView{
		Step:    m.Step(),
		Key:     m.Key(),
		Missing: m.Missing(d),
		Media:   mediaFieldsFor(m.Step()),
	}
}

type infoModule struct{}

func (infoModule) Step() Step  { return StepInfo }
func (infoModule) Key() string { return "info" }

func (infoModule) Decode(raw []byte) (Update, error) {
	u := &InfoUpdate{}
	err := decodeStrict(raw, &u.Info)
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (infoModule) Missing(d model.PropertyData) []string {
	info := d.Info
	if info == nil {
		info = &model.Info{}
	}
	var missing []string
	if blank(info.PropertyName) {
		missing = append(missing, "propertyName")
	}
	if info.Type == nil || *info.Type == "" {
		missing = append(missing, "type")
	}
	if blank(info.Address) {
		missing = append(missing, "address")
	}
	if info.NumRooms == nil {
		missing = append(missing, "numRooms")
	}
	if info.NumBathrooms == nil {
		missing = append(missing, "numBathrooms")
	}
	if blank(info.CheckInTime) {
		missing = append(missing, "checkInTime")
	}
	if blank(info.CheckOutTime) {
		missing = append(missing, "checkOutTime")
	}
	return missing
}

func (m infoModule) View(d model.PropertyData) StepView {
	return baseView(m, d)
}

type amenitiesModule struct{}

func (amenitiesModule) Step() Step  { return StepAmenities }
func (amenitiesModule) Key() string { return "amenities" }

func (amenitiesModule) Decode(raw []byte) (Update, error) {
	u := &AmenitiesUpdate{}
	err := decodeStrict(raw, &u.Amenities)
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (amenitiesModule) Missing(model.PropertyData) []string { return nil }

func (m amenitiesModule) View(d model.PropertyData) StepView {
	v := baseView(m, d)
	v.Categories = Categories
	v.Checklists = RoomChecklists(d)
	v.ShowPoolDate, v.ShowHotTubDate = ConditionalFields(d.Amenities)
	return v
}

type photosModule struct{}

func (photosModule) Step() Step  { return StepPhotos }
func (photosModule) Key() string { return "photos" }

func (photosModule) Decode(raw []byte) (Update, error) {
	u := &PhotosUpdate{}
	err := decodeStrict(raw, &u.Photos)
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (photosModule) Missing(model.PropertyData) []string { return nil }

func (m photosModule) View(d model.PropertyData) StepView {
	v := baseView(m, d)
	byZone := PhotosByZone(d.Photos)
	for _, z := range PhotoZones(d) {
		v.PhotoZones = append(v.PhotoZones, ZonePhotos{Zone: z, URLs: byZone[z], Offered: true})
		delete(byZone, z)
	}
	// Orphaned zones keep their original upload order.
	if d.Photos != nil {
		for _, ph := range d.Photos.Items {
			urls, ok := byZone[ph.Zone]
			if !ok {
				continue
			}
			v.PhotoZones = append(v.PhotoZones, ZonePhotos{Zone: ph.Zone, URLs: urls})
			delete(byZone, ph.Zone)
		}
	}
	return v
}

type rulesModule struct{}

func (rulesModule) Step() Step  { return StepRules }
func (rulesModule) Key() string { return "rules" }

func (rulesModule) Decode(raw []byte) (Update, error) {
	u := &RulesUpdate{}
	err := decodeStrict(raw, &u.Rules)
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (rulesModule) Missing(model.PropertyData) []string { return nil }

func (m rulesModule) View(d model.PropertyData) StepView {
	return baseView(m, d)
}

type guideModule struct{}

func (guideModule) Step() Step  { return StepGuide }
func (guideModule) Key() string { return "guide" }

func (guideModule) Decode(raw []byte) (Update, error) {
	u := &GuideUpdate{}
	err := decodeStrict(raw, &u.Guide)
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (guideModule) Missing(d model.PropertyData) []string {
	if d.Guide == nil || blank(d.Guide.LockVideoURL) {
		return []string{"lockVideoUrl"}
	}
	return nil
}

func (m guideModule) View(d model.PropertyData) StepView {
	return baseView(m, d)
}

type paymentModule struct{}

func (paymentModule) Step() Step  { return StepPayment }
func (paymentModule) Key() string { return "payment" }

func (paymentModule) Decode(raw []byte) (Update, error) {
	u := &PaymentUpdate{}
	err := decodeStrict(raw, &u.Payment)
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (paymentModule) Missing(model.PropertyData) []string { return nil }

// The payment page finishes the wizard instead of advancing.
func (m paymentModule) View(d model.PropertyData) StepView {
	v := baseView(m, d)
	v.Finish = true
	return v
}
