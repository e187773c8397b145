package onboarding

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/AyaBm214/PremiumConnect/internal/model"
	"github.com/AyaBm214/PremiumConnect/internal/repository"
)

// Loader fetches a property by id. Missing rows yield repository.ErrPropertyNotFound.
type Loader interface {
	ByID(ctx context.Context, id string) (*model.Property, error)
}

// Store writes the full property document.
type Store interface {
	Update(ctx context.Context, p *model.Property) error
}

// Notifier is told once when an owner submits a property. Dispatch must not
// block on delivery.
type Notifier interface {
	Dispatch(propertyID, propertyName string)
}

type Deps struct {
	Store    Store
	Notifier Notifier
	Uploader *Uploader
	Now      func() time.Time
}

// SaveState tells whether the latest local revision reached the store.
type SaveState struct {
	Revision      uint64    `json:"revision"`
	SavedRevision uint64    `json:"savedRevision"`
	Unsaved       bool      `json:"unsaved"`
	LastError     string    `json:"lastError,omitempty"`
	LastSavedAt   time.Time `json:"lastSavedAt,omitzero"`
}

// Result is the state after a mutation together with its save outcome.
type Result struct {
	Property model.Property `json:"property"`
	Save     SaveState      `json:"save"`
}

type applyOptions struct {
	progress    *int
	requireLast bool
}

type ApplyOption func(*applyOptions)

// WithProgress overrides the derived progress for a single write.
func WithProgress(p int) ApplyOption {
	p = min(max(p, 0), 100)
	return func(o *applyOptions) {
		o.progress = &p
	}
}

// RequireFinalStep makes Complete fail with ErrNotFinalStep unless the
// wizard is on the last step when the submission is applied.
func RequireFinalStep() ApplyOption {
	return func(o *applyOptions) {
		o.requireLast = true
	}
}

// Wizard owns the in-memory copy of one property while its owner edits it.
// Every mutation is applied locally first and then written in full to the
// store. Writes reach the store one at a time in revision order, and each
// write carries the newest revision at the moment it starts.
type Wizard struct {
	deps Deps

	// writeMu is taken before mu, never while holding it.
	writeMu sync.Mutex

	mu            sync.Mutex
	property      model.Property
	revision      uint64
	savedRevision uint64
	lastErr       *PersistError
	lastSavedAt   time.Time
}

func New(p model.Property, deps Deps) *Wizard {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	p.CurrentStep = int(ClampStep(p.CurrentStep))
	return &Wizard{deps: deps, property: p}
}

// Load builds a wizard for a stored property without checking ownership.
func Load(ctx context.Context, loader Loader, deps Deps, propertyID string) (*Wizard, error) {
	p, err := loader.ByID(ctx, propertyID)
	if err != nil {
		if errors.Is(err, repository.ErrPropertyNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load property: %w", err)
	}
	return New(*p, deps), nil
}

// Open loads a property for its owner. Anyone else gets ErrForbidden.
func Open(ctx context.Context, loader Loader, deps Deps, propertyID, ownerID string) (*Wizard, error) {
	w, err := Load(ctx, loader, deps, propertyID)
	if err != nil {
		return nil, err
	}
	err = w.Authorize(ownerID)
	if err != nil {
		return nil, err
	}
	return w, nil
}

func (w *Wizard) ID() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.property.ID
}

// Authorize checks that ownerID owns the property.
func (w *Wizard) Status() model.PropertyStatus {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.property.Status
}

func (w *Wizard) Authorize(ownerID string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.property.OwnerID != ownerID {
		slog.Warn("onboarding access denied", "property_id", w.property.ID, "user_id", ownerID)
		return ErrForbidden
	}
	return nil
}

// Snapshot returns a deep copy of the current property.
func (w *Wizard) Snapshot() model.Property {
	w.mu.Lock()
	defer w.mu.Unlock()
	return clone(w.property)
}

func (w *Wizard) SaveState() SaveState {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.saveStateLocked()
}

// View returns the current state with the render model of the current step.
func (w *Wizard) View() (Result, StepView) {
	w.mu.Lock()
	defer w.mu.Unlock()
	p := clone(w.property)
	m, _ := ModuleFor(Step(p.CurrentStep))
	return Result{Property: p, Save: w.saveStateLocked()}, m.View(p.Data)
}

// ApplyStepUpdate validates u and replaces its step's slice of the document.
// A rejected update leaves the state unchanged and writes nothing.
func (w *Wizard) ApplyStepUpdate(ctx context.Context, u Update, opts ...ApplyOption) (Result, error) {
	if u == nil {
		return Result{}, ErrMalformedUpdate
	}
	o := applyOptions{}
	for _, opt := range opts {
		opt(&o)
	}
	u.normalize()

	return w.commit(ctx, o.progress, func(p *model.Property) error {
		if !p.IsDraft() {
			return ErrNotEditable
		}
		err := u.validate(p.Data)
		if err != nil {
			return err
		}
		before := p.Data
		u.merge(&p.Data)
		if u.Step() == StepInfo {
			pruneRoomSelections(p, before)
		}
		return nil
	})
}

// Advance moves to the next step once the current one has its required fields.
func (w *Wizard) Advance(ctx context.Context) (Result, error) {
	return w.commit(ctx, nil, func(p *model.Property) error {
		if !p.IsDraft() {
			return ErrNotEditable
		}
		step := ClampStep(p.CurrentStep)
		m, err := ModuleFor(step)
		if err != nil {
			return err
		}
		if missing := m.Missing(p.Data); len(missing) > 0 {
			return &IncompleteStepError{Step: step, Missing: missing}
		}
		p.CurrentStep = int(step.Next())
		return nil
	})
}

func (w *Wizard) Retreat(ctx context.Context) (Result, error) {
	return w.commit(ctx, nil, func(p *model.Property) error {
		if !p.IsDraft() {
			return ErrNotEditable
		}
		p.CurrentStep = int(ClampStep(p.CurrentStep).Prev())
		return nil
	})
}

// Complete submits the property for review and dispatches the completion
// notice. The notice is sent even if the write failed; the failure is
// visible in the returned save state.
func (w *Wizard) Complete(ctx context.Context, opts ...ApplyOption) (Result, error) {
	o := applyOptions{}
	for _, opt := range opts {
		opt(&o)
	}

	full := 100
	res, err := w.commit(ctx, &full, func(p *model.Property) error {
		if !p.IsDraft() {
			return ErrAlreadySubmitted
		}
		if o.requireLast && ClampStep(p.CurrentStep) != LastStep {
			return ErrNotFinalStep
		}
		p.Status = model.PropertyStatusPendingReview
		return nil
	})
	if err != nil {
		return res, err
	}

	slog.Info("property submitted for review", "property_id", res.Property.ID, "owner_id", res.Property.OwnerID)
	if w.deps.Notifier != nil {
		w.deps.Notifier.Dispatch(res.Property.ID, res.Property.DisplayName())
	}
	return res, nil
}

// Flush writes the current document again. It makes one attempt.
func (w *Wizard) Flush(ctx context.Context) (Result, error) {
	return w.commit(ctx, nil, func(*model.Property) error { return nil })
}

// AttachMedia uploads files and merges the resulting URLs into field. Uploads
// run without holding the wizard, so edits to other fields proceed meanwhile.
// When every file fails an *UploadError is returned and nothing is written.
func (w *Wizard) AttachMedia(ctx context.Context, field MediaField, zone model.ZoneRef, files []File) (Result, UploadReport, error) {
	spec, err := field.spec()
	if err != nil {
		return Result{}, UploadReport{}, err
	}
	if len(files) == 0 {
		return Result{}, UploadReport{}, ErrNoFiles
	}
	if spec.zoned && !validZone(zone) {
		return Result{}, UploadReport{}, fmt.Errorf("%w: invalid zone", ErrMalformedUpdate)
	}
	if !spec.multiple {
		files = files[:1]
	}

	w.mu.Lock()
	id, editable := w.property.ID, w.property.IsDraft()
	w.mu.Unlock()
	if !editable {
		return Result{}, UploadReport{}, ErrNotEditable
	}
	if w.deps.Uploader == nil {
		return Result{}, UploadReport{}, errors.New("uploads are not configured")
	}

	report := w.deps.Uploader.Upload(context.WithoutCancel(ctx), id, spec.purpose, spec.name, files)
	if len(report.URLs) == 0 {
		return Result{}, report, &UploadError{Field: field, Failed: report.Failed}
	}

	res, err := w.commit(ctx, nil, func(p *model.Property) error {
		if !p.IsDraft() {
			return ErrNotEditable
		}
		spec.attach(&p.Data, zone, report.URLs)
		return nil
	})
	return res, report, err
}

// commit applies mutate to a copy of the property and, when it succeeds,
// installs the copy and writes it. The write uses a context detached from
// the caller so a dropped request does not abort it.
func (w *Wizard) commit(ctx context.Context, progress *int, mutate func(p *model.Property) error) (Result, error) {
	w.mu.Lock()
	next := w.property
	err := mutate(&next)
	if err != nil {
		w.mu.Unlock()
		return Result{}, err
	}
	if progress != nil {
		next.Progress = *progress
	} else {
		next.Progress = Progress(next.Status, next.CurrentStep)
	}
	next.UpdatedAt = w.deps.Now()
	w.property = next
	w.revision++
	rev := w.revision
	w.mu.Unlock()

	return w.persist(context.WithoutCancel(ctx), rev), nil
}

// persist writes the newest revision. It skips the write when a later write
// already stored rev.
func (w *Wizard) persist(ctx context.Context, rev uint64) Result {
	w.writeMu.Lock()
	defer w.writeMu.Unlock()

	w.mu.Lock()
	if w.savedRevision >= rev {
		res := Result{Property: clone(w.property), Save: w.saveStateLocked()}
		w.mu.Unlock()
		return res
	}
	rev = w.revision
	doc := clone(w.property)
	w.mu.Unlock()

	err := w.deps.Store.Update(ctx, &doc)
	return w.record(rev, err)
}

func (w *Wizard) record(rev uint64, err error) Result {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err != nil {
		perr := &PersistError{PropertyID: w.property.ID, Revision: rev, Err: err}
		slog.Error("failed to persist property", "error", err, "property_id", w.property.ID, "revision", rev)
		if rev > w.savedRevision {
			w.lastErr = perr
		}
	} else if rev > w.savedRevision {
		w.savedRevision = rev
		w.lastSavedAt = w.deps.Now()
		if w.lastErr != nil && w.lastErr.Revision <= rev {
			w.lastErr = nil
		}
	}

	return Result{Property: clone(w.property), Save: w.saveStateLocked()}
}

func (w *Wizard) saveStateLocked() SaveState {
	s := SaveState{
		Revision:      w.revision,
		SavedRevision: w.savedRevision,
		Unsaved:       w.savedRevision < w.revision,
		LastSavedAt:   w.lastSavedAt,
	}
	if w.lastErr != nil {
		s.LastError = w.lastErr.Error()
	}
	return s
}

// pruneRoomSelections drops amenity selections for rooms that no longer
// exist after the Info step changed a room count.
func pruneRoomSelections(p *model.Property, before model.PropertyData) {
	oldBeds, oldBaths := RoomCounts(before)
	beds, baths := RoomCounts(p.Data)
	if oldBeds == beds && oldBaths == baths {
		return
	}
	pruned, removed := PruneRooms(p.Data.Amenities, beds, baths)
	if removed == 0 {
		return
	}
	p.Data.Amenities = pruned
	slog.Debug("pruned room amenities", "property_id", p.ID, "removed", removed, "bedrooms", beds, "bathrooms", baths)
}

// clone deep-copies a property through its JSON form, which is lossless for
// every field of the document.
func clone(p model.Property) model.Property {
	raw, err := json.Marshal(p.Data)
	if err != nil {
		panic(fmt.Sprintf("onboarding: marshal property data: %v", err))
	}
	out := p
	out.Data = model.PropertyData{}
	if err := json.Unmarshal(raw, &out.Data); err != nil {
		panic(fmt.Sprintf("onboarding: unmarshal property data: %v", err))
	}
	return out
}
