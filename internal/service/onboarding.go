package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/AyaBm214/PremiumConnect/internal/model"
	"github.com/AyaBm214/PremiumConnect/internal/onboarding"
	"github.com/AyaBm214/PremiumConnect/internal/repository"
	"github.com/dgraph-io/ristretto/v2"
	"golang.org/x/sync/singleflight"
)

// OnboardingService keeps one wizard per property being edited. Wizards are
// cached in memory so unsaved revisions survive between requests.
type OnboardingService struct {
	propertyRepo repository.PropertyRepository
	deps         onboarding.Deps
	ttl          time.Duration

	cache   *ristretto.Cache[string, *onboarding.Wizard]
	loads   singleflight.Group
	flushes sync.WaitGroup

	// mu guards epoch, which Forget bumps so a load that raced it is not cached.
	mu    sync.Mutex
	epoch uint64
}

func NewOnboardingService(
	propertyRepo repository.PropertyRepository,
	notifier onboarding.Notifier,
	uploader *onboarding.Uploader,
	cacheSize int64,
	ttl time.Duration,
) (*OnboardingService, error) {
	if cacheSize < 1 {
		cacheSize = 1
	}

	s := &OnboardingService{
		propertyRepo: propertyRepo,
		deps: onboarding.Deps{
			Store:    propertyRepo,
			Notifier: notifier,
			Uploader: uploader,
		},
		ttl: ttl,
	}

	cache, err := ristretto.NewCache(&ristretto.Config[string, *onboarding.Wizard]{
		NumCounters:        cacheSize * 10,
		MaxCost:            cacheSize,
		BufferItems:        64,
		IgnoreInternalCost: true,
		OnEvict:            s.flushEvicted,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create wizard cache: %w", err)
	}
	s.cache = cache
	return s, nil
}

// flushEvicted retries the write of a wizard that leaves the cache with
// unsaved revisions. Close waits for these retries.
func (s *OnboardingService) flushEvicted(item *ristretto.Item[*onboarding.Wizard]) {
	w := item.Value
	if w == nil || !w.SaveState().Unsaved {
		return
	}
	s.flushes.Add(1)
	go func() {
		defer s.flushes.Done()
		res, err := w.Flush(context.Background())
		if err != nil || res.Save.Unsaved {
			slog.Error("evicted wizard lost unsaved changes", "property_id", w.ID(), "last_error", res.Save.LastError)
		}
	}()
}

// wizard returns the cached wizard for propertyID or loads it. Concurrent
// misses for one property share a single load.
func (s *OnboardingService) wizard(ctx context.Context, propertyID, ownerID string) (*onboarding.Wizard, error) {
	w, ok := s.cache.Get(propertyID)
	if ok && s.stale(w) {
		s.Forget(propertyID)
		ok = false
	}
	if !ok {
		v, err, _ := s.loads.Do(propertyID, func() (any, error) {
			return s.load(context.WithoutCancel(ctx), propertyID)
		})
		if err != nil {
			return nil, err
		}
		w = v.(*onboarding.Wizard)
	}

	err := w.Authorize(ownerID)
	if err != nil {
		return nil, err
	}
	return w, nil
}

func (s *OnboardingService) load(ctx context.Context, propertyID string) (*onboarding.Wizard, error) {
	if w, ok := s.cache.Get(propertyID); ok {
		return w, nil
	}

	s.mu.Lock()
	epoch := s.epoch
	s.mu.Unlock()

	w, err := onboarding.Load(ctx, s.propertyRepo, s.deps, propertyID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if epoch == s.epoch && s.cache.SetWithTTL(propertyID, w, 1, s.ttl) {
		s.cache.Wait()
	}
	return w, nil
}

// stale reports a submitted wizard with nothing left to write. Its status
// may have been changed by another process, so it is read again.
func (s *OnboardingService) stale(w *onboarding.Wizard) bool {
	return w.Status() != model.PropertyStatusDraft && !w.SaveState().Unsaved
}

func (s *OnboardingService) View(ctx context.Context, propertyID, ownerID string) (onboarding.Result, onboarding.StepView, error) {
	w, err := s.wizard(ctx, propertyID, ownerID)
	if err != nil {
		return onboarding.Result{}, onboarding.StepView{}, err
	}
	res, view := w.View()
	return res, view, nil
}

// ApplyStep decodes raw as the update of the step named key and applies it.
func (s *OnboardingService) ApplyStep(ctx context.Context, propertyID, ownerID, key string, raw []byte, opts ...onboarding.ApplyOption) (onboarding.Result, error) {
	m, err := onboarding.ModuleForKey(key)
	if err != nil {
		return onboarding.Result{}, err
	}
	u, err := m.Decode(raw)
	if err != nil {
		return onboarding.Result{}, err
	}

	w, err := s.wizard(ctx, propertyID, ownerID)
	if err != nil {
		return onboarding.Result{}, err
	}
	return w.ApplyStepUpdate(ctx, u, opts...)
}

func (s *OnboardingService) Advance(ctx context.Context, propertyID, ownerID string) (onboarding.Result, error) {
	w, err := s.wizard(ctx, propertyID, ownerID)
	if err != nil {
		return onboarding.Result{}, err
	}
	return w.Advance(ctx)
}

func (s *OnboardingService) Retreat(ctx context.Context, propertyID, ownerID string) (onboarding.Result, error) {
	w, err := s.wizard(ctx, propertyID, ownerID)
	if err != nil {
		return onboarding.Result{}, err
	}
	return w.Retreat(ctx)
}

// Finish submits the property for review. It must be on the payment step.
func (s *OnboardingService) Finish(ctx context.Context, propertyID, ownerID string) (onboarding.Result, error) {
	w, err := s.wizard(ctx, propertyID, ownerID)
	if err != nil {
		return onboarding.Result{}, err
	}

	return w.Complete(ctx, onboarding.RequireFinalStep())
}

// Save writes the current document again, for retrying after a failed write.
func (s *OnboardingService) Save(ctx context.Context, propertyID, ownerID string) (onboarding.Result, error) {
	w, err := s.wizard(ctx, propertyID, ownerID)
	if err != nil {
		return onboarding.Result{}, err
	}
	return w.Flush(ctx)
}

func (s *OnboardingService) AttachMedia(ctx context.Context, propertyID, ownerID string, field onboarding.MediaField, zone model.ZoneRef, files []onboarding.File) (onboarding.Result, onboarding.UploadReport, error) {
	w, err := s.wizard(ctx, propertyID, ownerID)
	if err != nil {
		return onboarding.Result{}, onboarding.UploadReport{}, err
	}
	return w.AttachMedia(ctx, field, zone, files)
}

// Forget drops the cached wizard of a property changed outside onboarding.
func (s *OnboardingService) Forget(propertyID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.epoch++
	s.cache.Del(propertyID)
	s.cache.Wait()
}

// Close drops every cached wizard and waits for the final writes of those
// with unsaved revisions.
func (s *OnboardingService) Close() {
	s.cache.Close()
	s.flushes.Wait()
}
