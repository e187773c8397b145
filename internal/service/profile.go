package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/AyaBm214/PremiumConnect/internal/model"
	"github.com/AyaBm214/PremiumConnect/internal/onboarding"
	"github.com/AyaBm214/PremiumConnect/internal/repository"
	"github.com/AyaBm214/PremiumConnect/internal/storage"
	"github.com/AyaBm214/PremiumConnect/internal/validation"
)

var ErrUnknownDocument = errors.New("unknown document kind")

// DocumentStore is the blob storage used for profile documents. Replaced
// documents are deleted.
type DocumentStore interface {
	onboarding.BlobStore
	Delete(ctx context.Context, bucket, key string) error
}

type ProfileService struct {
	profileRepo repository.ProfileRepository
	blobs       DocumentStore
	now         func() time.Time
}

func NewProfileService(profileRepo repository.ProfileRepository, blobs DocumentStore) *ProfileService {
	return &ProfileService{
		profileRepo: profileRepo,
		blobs:       blobs,
		now:         time.Now,
	}
}

// ByUserID returns the user's profile. A user who never saved one gets an
// empty profile.
func (s *ProfileService) ByUserID(ctx context.Context, userID string) (*model.UserProfile, error) {
	profile, err := s.profileRepo.ByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrProfileNotFound) {
			return &model.UserProfile{UserID: userID}, nil
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return profile, nil
}

func (s *ProfileService) Upsert(ctx context.Context, profile *model.UserProfile) error {
	profile.FullName = strings.TrimSpace(profile.FullName)
	profile.Email = normalizeEmail(profile.Email)
	profile.PhoneNumber = strings.TrimSpace(profile.PhoneNumber)
	profile.BusinessNumber = strings.TrimSpace(profile.BusinessNumber)

	err := validation.Struct(profile)
	if err != nil {
		return err
	}

	profile.UpdatedAt = s.now()
	err = s.profileRepo.Upsert(ctx, profile)
	if err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}
	return nil
}

// UploadDocument stores a compliance document and records its URL on the
// profile.
func (s *ProfileService) UploadDocument(ctx context.Context, userID string, kind model.DocumentKind, file onboarding.File) (string, error) {
	probe := model.ProfileDocuments{}
	if !probe.SetDocument(kind, "") {
		return "", ErrUnknownDocument
	}

	profile, err := s.ByUserID(ctx, userID)
	if err != nil {
		return "", err
	}

	ext := strings.ToLower(filepath.Ext(file.Name))
	key := path.Join(userID, "documents", fmt.Sprintf("%s_%d%s", kind, s.now().UnixMilli(), ext))

	err = s.blobs.Upload(ctx, storage.BucketUserDocs, key, file.Body, file.ContentType)
	if err != nil {
		return "", fmt.Errorf("failed to upload document: %w", err)
	}

	url := s.blobs.PublicURL(storage.BucketUserDocs, key)
	var previous string
	if old := profile.Documents.Document(kind); old != nil {
		previous = *old
	}
	profile.Documents.SetDocument(kind, url)
	profile.UpdatedAt = s.now()

	err = s.profileRepo.Upsert(ctx, profile)
	if err != nil {
		return "", fmt.Errorf("failed to save profile: %w", err)
	}
	s.deleteReplaced(ctx, previous)

	slog.Info("profile document uploaded", "user_id", userID, "kind", kind)
	return url, nil
}

// deleteReplaced removes the object behind a replaced document URL. Failures
// only leave an orphaned object behind, so they are logged.
func (s *ProfileService) deleteReplaced(ctx context.Context, url string) {
	prefix := s.blobs.PublicURL(storage.BucketUserDocs, "")
	key, ok := strings.CutPrefix(url, prefix)
	if !ok || key == "" {
		return
	}
	err := s.blobs.Delete(ctx, storage.BucketUserDocs, key)
	if err != nil {
		slog.Warn("failed to delete replaced document", "error", err, "key", key)
	}
}
