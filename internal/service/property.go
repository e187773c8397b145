package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/AyaBm214/PremiumConnect/internal/model"
	"github.com/AyaBm214/PremiumConnect/internal/onboarding"
	"github.com/AyaBm214/PremiumConnect/internal/repository"
	"github.com/google/uuid"
)

var ErrNotPendingReview = errors.New("only properties pending review can be activated")

// PropertyEvictor drops any in-memory state held for a property.
type PropertyEvictor interface {
	Forget(propertyID string)
}

type PropertyService struct {
	propertyRepo repository.PropertyRepository
	evictor      PropertyEvictor
	now          func() time.Time
}

func NewPropertyService(propertyRepo repository.PropertyRepository, evictor PropertyEvictor) *PropertyService {
	return &PropertyService{
		propertyRepo: propertyRepo,
		evictor:      evictor,
		now:          time.Now,
	}
}

// Create starts a new draft for ownerID at the first step.
func (s *PropertyService) Create(ctx context.Context, ownerID string) (*model.Property, error) {
	now := s.now()
	p := &model.Property{
		ID:          uuid.New().String(),
		OwnerID:     ownerID,
		Name:        model.DefaultPropertyName,
		Status:      model.PropertyStatusDraft,
		CurrentStep: int(onboarding.FirstStep),
		TotalSteps:  onboarding.TotalSteps,
		Progress:    0,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err := s.propertyRepo.Create(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("failed to create property: %w", err)
	}

	slog.Info("property created", "property_id", p.ID, "owner_id", ownerID)
	return p, nil
}

// ListForOwner returns the owner's properties, most recently edited first.
func (s *PropertyService) ListForOwner(ctx context.Context, ownerID string) ([]*model.Property, error) {
	properties, err := s.propertyRepo.Query(ctx, repository.PropertyFilter{OwnerID: ownerID}, repository.OrderUpdatedDesc)
	if err != nil {
		return nil, fmt.Errorf("failed to list properties: %w", err)
	}
	return properties, nil
}

func (s *PropertyService) ListAll(ctx context.Context, status model.PropertyStatus) ([]*model.Property, error) {
	properties, err := s.propertyRepo.Query(ctx, repository.PropertyFilter{Status: status}, repository.OrderCreatedDesc)
	if err != nil {
		return nil, fmt.Errorf("failed to list properties: %w", err)
	}
	return properties, nil
}

func (s *PropertyService) ByID(ctx context.Context, id string) (*model.Property, error) {
	p, err := s.propertyRepo.ByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrPropertyNotFound) {
			return nil, onboarding.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get property: %w", err)
	}
	return p, nil
}

func (s *PropertyService) Delete(ctx context.Context, id string) error {
	err := s.propertyRepo.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrPropertyNotFound) {
			return onboarding.ErrNotFound
		}
		return fmt.Errorf("failed to delete property: %w", err)
	}
	if s.evictor != nil {
		s.evictor.Forget(id)
	}

	slog.Info("property deleted", "property_id", id)
	return nil
}

// Activate publishes a property that staff reviewed.
func (s *PropertyService) Activate(ctx context.Context, id string) (*model.Property, error) {
	p, err := s.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.Status != model.PropertyStatusPendingReview {
		return nil, ErrNotPendingReview
	}

	err = s.propertyRepo.UpdateStatus(ctx, id, model.PropertyStatusActive, 100)
	if err != nil {
		return nil, fmt.Errorf("failed to activate property: %w", err)
	}
	if s.evictor != nil {
		s.evictor.Forget(id)
	}

	p.Status = model.PropertyStatusActive
	p.Progress = 100
	slog.Info("property activated", "property_id", id)
	return p, nil
}
