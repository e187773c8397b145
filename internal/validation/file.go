package validation

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
)

// FileConstraints defines validation rules for file uploads
type FileConstraints struct {
	AllowedMimeTypes  map[string]bool
	AllowedExtensions map[string]bool
	MaxSize           int64
}

// FileKind groups the upload rules used by the onboarding media fields.
type FileKind string

const (
	FileKindImage    FileKind = "image"
	FileKindVideo    FileKind = "video"
	FileKindDocument FileKind = "document"
)

var (
	ImageConstraints = FileConstraints{
		AllowedMimeTypes: map[string]bool{
			"image/jpeg": true,
			"image/png":  true,
			"image/webp": true,
		},
		AllowedExtensions: map[string]bool{
			".jpg":  true,
			".jpeg": true,
			".png":  true,
			".webp": true,
		},
		MaxSize: 10 << 20, // 10MB
	}

	VideoConstraints = FileConstraints{
		AllowedMimeTypes: map[string]bool{
			"video/mp4":  true,
			"video/webm": true,
		},
		AllowedExtensions: map[string]bool{
			".mp4":  true,
			".webm": true,
		},
		MaxSize: 200 << 20, // 200MB
	}

	DocumentConstraints = FileConstraints{
		AllowedMimeTypes: map[string]bool{
			"application/pdf": true,
		},
		AllowedExtensions: map[string]bool{
			".pdf": true,
		},
		MaxSize: 10 << 20, // 10MB
	}

	// xlsx sniffs as a zip archive and csv as plain text.
	SpreadsheetConstraints = FileConstraints{
		AllowedMimeTypes: map[string]bool{
			"application/zip":           true,
			"text/plain; charset=utf-8": true,
		},
		AllowedExtensions: map[string]bool{
			".xlsx": true,
			".csv":  true,
		},
		MaxSize: 10 << 20, // 10MB
	}
)

// ConstraintsFor returns the constraint sets a file of the given kind may match.
func ConstraintsFor(kind FileKind) []FileConstraints {
	switch kind {
	case FileKindImage:
		return []FileConstraints{ImageConstraints}
	case FileKindVideo:
		return []FileConstraints{VideoConstraints}
	case FileKindDocument:
		return []FileConstraints{DocumentConstraints, SpreadsheetConstraints, ImageConstraints}
	}
	return nil
}

// ValidateFile validates a file upload against one or more constraint sets
// If multiple constraints are provided, file must match at least one (OR logic)
func ValidateFile(header *multipart.FileHeader, constraints ...FileConstraints) error {
	if len(constraints) == 0 {
		return fmt.Errorf("no file constraints provided")
	}

	var lastErr error
	for _, constraint := range constraints {
		err := validateAgainstConstraint(header, constraint)
		if err == nil {
			return nil
		}
		lastErr = err
	}

	return lastErr
}

// DetectContentType sniffs the content type of an uploaded file from its first bytes.
func DetectContentType(header *multipart.FileHeader) (string, error) {
	file, err := header.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	buffer := make([]byte, 512)
	n, err := file.Read(buffer)
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("failed to read file: %w", err)
	}

	return http.DetectContentType(buffer[:n]), nil
}

func validateAgainstConstraint(header *multipart.FileHeader, constraints FileConstraints) error {
	// Size first, before reading content
	if header.Size > constraints.MaxSize {
		maxMB := constraints.MaxSize / (1 << 20)
		return fmt.Errorf("file too large: maximum size is %d MB", maxMB)
	}

	// Magic numbers cannot be faked by changing the Content-Type header
	detectedType, err := DetectContentType(header)
	if err != nil {
		return err
	}

	if !constraints.AllowedMimeTypes[detectedType] {
		return fmt.Errorf("invalid file type (detected: %s)", detectedType)
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !constraints.AllowedExtensions[ext] {
		return fmt.Errorf("invalid file extension: %s", ext)
	}

	return nil
}
