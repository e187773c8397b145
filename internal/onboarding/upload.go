package onboarding

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// BlobStore is the part of the blob storage client the wizard needs.
type BlobStore interface {
	Upload(ctx context.Context, bucket, key string, body io.Reader, contentType string) error
	PublicURL(bucket, key string) string
}

// File is one file submitted for upload. Body is read once.
type File struct {
	Name        string
	ContentType string
	Body        io.Reader
}

// UploadReport lists the URLs of stored files in submission order and the
// files that failed.
type UploadReport struct {
	URLs   []string      `json:"urls"`
	Failed []FileFailure `json:"failed,omitempty"`
}

// Uploader stores files under {propertyId}/{purpose}/ in one bucket.
type Uploader struct {
	blobs  BlobStore
	bucket string
	limit  int
	now    func() time.Time
}

func NewUploader(blobs BlobStore, bucket string, concurrency int) *Uploader {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Uploader{
		blobs:  blobs,
		bucket: bucket,
		limit:  concurrency,
		now:    time.Now,
	}
}

// Upload sends every file concurrently. A failing file never cancels the
// others; it is reported and left out of URLs.
func (u *Uploader) Upload(ctx context.Context, propertyID, purpose, prefix string, files []File) UploadReport {
	urls := make([]string, len(files))
	errs := make([]error, len(files))

	var g errgroup.Group
	g.SetLimit(u.limit)
	for i, f := range files {
		g.Go(func() error {
			key := path.Join(propertyID, purpose, u.fileName(prefix, f.Name))
			err := u.blobs.Upload(ctx, u.bucket, key, f.Body, f.ContentType)
			if err != nil {
				errs[i] = err
				return nil
			}
			urls[i] = u.blobs.PublicURL(u.bucket, key)
			return nil
		})
	}
	_ = g.Wait()

	report := UploadReport{}
	for i, f := range files {
		if errs[i] != nil {
			slog.Warn("file upload failed", "error", errs[i], "property_id", propertyID, "purpose", purpose, "file", f.Name)
			report.Failed = append(report.Failed, FileFailure{Name: f.Name, Reason: errs[i].Error(), Err: errs[i]})
			continue
		}
		report.URLs = append(report.URLs, urls[i])
	}
	return report
}

// fileName builds "{prefix}_{unixMillis}_{random}{ext}". The random part keeps
// names unique within one batch.
func (u *Uploader) fileName(prefix, original string) string {
	ext := strings.ToLower(filepath.Ext(original))
	random := strings.ReplaceAll(uuid.New().String(), "-", "")[:8]
	return fmt.Sprintf("%s_%d_%s%s", prefix, u.now().UnixMilli(), random, ext)
}
