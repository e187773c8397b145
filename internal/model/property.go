package model

import (
	"strings"
	"time"
)

type PropertyStatus string

const (
	PropertyStatusDraft         PropertyStatus = "draft"
	PropertyStatusPendingReview PropertyStatus = "pending_review"
	PropertyStatusActive        PropertyStatus = "active"
)

const DefaultPropertyName = "New Property"

type Property struct {
	ID          string         `json:"id"`
	OwnerID     string         `json:"ownerId"`
	Name        string         `json:"name"`
	Status      PropertyStatus `json:"status"`
	CurrentStep int            `json:"currentStep"`
	TotalSteps  int            `json:"totalSteps"`
	Progress    int            `json:"progress"`
	Data        PropertyData   `json:"data"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
}

// DisplayName prefers the name entered in the Info step over the record label.
func (p *Property) DisplayName() string {
	if p.Data.Info != nil && p.Data.Info.PropertyName != nil {
		if name := strings.TrimSpace(*p.Data.Info.PropertyName); name != "" {
			return name
		}
	}
	return p.Name
}

func (p *Property) IsDraft() bool {
	return p.Status == PropertyStatusDraft
}
