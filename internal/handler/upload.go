package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"mime/multipart"
	"net/http"

	"github.com/AyaBm214/PremiumConnect/internal/onboarding"
	"github.com/AyaBm214/PremiumConnect/internal/validation"
)

const (
	maxUploadBody   = 512 << 20
	maxUploadMemory = 32 << 20
	filesField      = "files"
)

var errNoMultipart = errors.New("expected a multipart form with files")

// openedFiles is a validated batch of uploaded files. Close releases them.
type openedFiles struct {
	files   []onboarding.File
	closers []multipart.File
}

func (o *openedFiles) Close() {
	for _, c := range o.closers {
		err := c.Close()
		if err != nil {
			slog.Error("failed to close file", "error", err)
		}
	}
}

// parseFiles reads the files of a multipart request and checks each one
// against constraints. Any invalid file rejects the whole batch.
func parseFiles(w http.ResponseWriter, r *http.Request, constraints []validation.FileConstraints) (*openedFiles, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBody)
	err := r.ParseMultipartForm(maxUploadMemory)
	if err != nil {
		return nil, errNoMultipart
	}

	headers := r.MultipartForm.File[filesField]
	if len(headers) == 0 {
		return nil, onboarding.ErrNoFiles
	}

	invalid := &validation.Error{}
	for i, header := range headers {
		err = validation.ValidateFile(header, constraints...)
		if err != nil {
			invalid.Add(fmt.Sprintf("%s[%d]", filesField, i), "file", err.Error())
		}
	}
	err = invalid.ErrOrNil()
	if err != nil {
		return nil, err
	}

	out := &openedFiles{}
	for _, header := range headers {
		contentType, err := validation.DetectContentType(header)
		if err != nil {
			out.Close()
			return nil, err
		}
		f, err := header.Open()
		if err != nil {
			out.Close()
			return nil, fmt.Errorf("failed to open file: %w", err)
		}
		out.closers = append(out.closers, f)
		out.files = append(out.files, onboarding.File{
			Name:        header.Filename,
			ContentType: contentType,
			Body:        f,
		})
	}
	return out, nil
}
