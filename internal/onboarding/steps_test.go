package onboarding

import (
	"testing"

	"github.com/AyaBm214/PremiumConnect/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStepNavigationStaysInRange(t *testing.T) {
	for n := int(FirstStep); n <= int(LastStep); n++ {
		s := Step(n)
		assert.Equal(t, Step(min(n+1, int(LastStep))), s.Next(), "next of %d", n)
		assert.Equal(t, Step(max(n-1, int(FirstStep))), s.Prev(), "prev of %d", n)
	}
}

func TestClampStep(t *testing.T) {
	assert.Equal(t, StepInfo, ClampStep(0))
	assert.Equal(t, StepInfo, ClampStep(-3))
	assert.Equal(t, StepPayment, ClampStep(7))
	assert.Equal(t, StepRules, ClampStep(4))
}

func TestProgress(t *testing.T) {
	tests := []struct {
		status model.PropertyStatus
		step   int
		want   int
	}{
		{model.PropertyStatusDraft, 1, 0},
		{model.PropertyStatusDraft, 2, 17},
		{model.PropertyStatusDraft, 3, 33},
		{model.PropertyStatusDraft, 4, 50},
		{model.PropertyStatusDraft, 5, 67},
		{model.PropertyStatusDraft, 6, 83},
		{model.PropertyStatusDraft, 9, 83},
		{model.PropertyStatusPendingReview, 2, 100},
		{model.PropertyStatusActive, 6, 100},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Progress(tt.status, tt.step), "%s at step %d", tt.status, tt.step)
	}
}

func TestModuleForKey(t *testing.T) {
	for step := FirstStep; step <= LastStep; step++ {
		m, err := ModuleFor(step)
		require.NoError(t, err)
		got, err := ModuleForKey(m.Key())
		require.NoError(t, err)
		assert.Equal(t, m.Step(), got.Step())
		assert.Equal(t, m.Key(), got.Step().String())
	}

	_, err := ModuleForKey("access")
	assert.ErrorIs(t, err, ErrLegacyStep)

	_, err = ModuleForKey("billing")
	assert.ErrorIs(t, err, ErrUnknownStep)

	_, err = ModuleFor(Step(7))
	assert.ErrorIs(t, err, ErrUnknownStep)
}

func TestDecodeRejectsUnknownFields(t *testing.T) {
	m, err := ModuleForKey("rules")
	require.NoError(t, err)

	_, err = m.Decode([]byte(`{"smoking": true, "hotTub": true}`))
	assert.ErrorIs(t, err, ErrMalformedUpdate)

	u, err := m.Decode([]byte(`{"smoking": false, "maxGuests": 6}`))
	require.NoError(t, err)
	assert.Equal(t, StepRules, u.Step())
}

func TestPaymentViewFinishes(t *testing.T) {
	m, err := ModuleFor(StepPayment)
	require.NoError(t, err)
	assert.True(t, m.View(model.PropertyData{}).Finish)

	m, err = ModuleFor(StepGuide)
	require.NoError(t, err)
	v := m.View(model.PropertyData{})
	assert.False(t, v.Finish)
	assert.Equal(t, []string{"lockVideoUrl"}, v.Missing)
	assert.Contains(t, v.Media, MediaLockVideo)
}
