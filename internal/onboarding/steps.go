// Package onboarding holds the property onboarding wizard: step navigation,
// per-step updates and validation, derived progress, media attachment and
// the persistence bookkeeping of an actively edited property.
package onboarding

import (
	"math"

	"github.com/AyaBm214/PremiumConnect/internal/model"
)

// Step is a position in the active wizard sequence.
type Step int

const (
	StepInfo Step = iota + 1
	StepAmenities
	StepPhotos
	StepRules
	StepGuide
	StepPayment
)

const (
	FirstStep = StepInfo
	LastStep  = StepPayment

	// TotalSteps is recorded on every new property. It still counts the
	// retired access step, so it is one more than LastStep.
	TotalSteps = 7
)

func (s Step) Valid() bool {
	return s >= FirstStep && s <= LastStep
}

func (s Step) String() string {
	switch s {
	case StepInfo:
		return "info"
	case StepAmenities:
		return "amenities"
	case StepPhotos:
		return "photos"
	case StepRules:
		return "rules"
	case StepGuide:
		return "guide"
	case StepPayment:
		return "payment"
	}
	return "unknown"
}

// Next returns the following step, staying on LastStep.
func (s Step) Next() Step {
	return ClampStep(int(s) + 1)
}

// Prev returns the preceding step, staying on FirstStep.
func (s Step) Prev() Step {
	return ClampStep(int(s) - 1)
}

// ClampStep maps any integer onto the navigable range.
func ClampStep(n int) Step {
	if n < int(FirstStep) {
		return FirstStep
	}
	if n > int(LastStep) {
		return LastStep
	}
	return Step(n)
}

// Progress derives the completion percentage. It counts finished steps, so
// visiting the last step is not enough to reach 100.
func Progress(status model.PropertyStatus, currentStep int) int {
	if status != model.PropertyStatusDraft {
		return 100
	}
	done := int(ClampStep(currentStep)) - 1
	return int(math.Round(float64(done) / float64(LastStep) * 100))
}
