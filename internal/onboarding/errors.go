package onboarding

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotFound          = errors.New("property not found")
	ErrForbidden         = errors.New("property belongs to another owner")
	ErrNotEditable       = errors.New("property was submitted and can no longer be edited")
	ErrAlreadySubmitted  = errors.New("property was already submitted")
	ErrNotFinalStep      = errors.New("onboarding can only be completed from the last step")
	ErrLegacyStep        = errors.New("the access step is no longer part of onboarding")
	ErrUnknownStep       = errors.New("unknown onboarding step")
	ErrMalformedUpdate   = errors.New("malformed step update")
	ErrUnknownMediaField = errors.New("unknown media field")
	ErrNoFiles           = errors.New("no files to upload")
)

// IncompleteStepError rejects an advance while required fields are missing.
type IncompleteStepError struct {
	Step    Step
	Missing []string
}

func (e *IncompleteStepError) Error() string {
	return fmt.Sprintf("step %s is missing required fields: %s", e.Step, strings.Join(e.Missing, ", "))
}

// FileFailure records one file that did not reach the blob store.
type FileFailure struct {
	Name   string `json:"name"`
	Reason string `json:"reason"`
	Err    error  `json:"-"`
}

func (f FileFailure) Error() string {
	return fmt.Sprintf("%s: %v", f.Name, f.Err)
}

// UploadError is returned when no file of a batch could be uploaded. The
// document is left untouched.
type UploadError struct {
	Field  MediaField
	Failed []FileFailure
}

func (e *UploadError) Error() string {
	msgs := make([]string, 0, len(e.Failed))
	for _, f := range e.Failed {
		msgs = append(msgs, f.Error())
	}
	return fmt.Sprintf("upload for %s failed: %s", e.Field, strings.Join(msgs, "; "))
}

// PersistError wraps a failed record store write of a given revision.
type PersistError struct {
	PropertyID string
	Revision   uint64
	Err        error
}

func (e *PersistError) Error() string {
	return fmt.Sprintf("persist property %s revision %d: %v", e.PropertyID, e.Revision, e.Err)
}

func (e *PersistError) Unwrap() error {
	return e.Err
}
