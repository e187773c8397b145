package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

// NotificationError is a completion notice that could not be delivered.
type NotificationError struct {
	PropertyID string
	Err        error
}

func (e *NotificationError) Error() string {
	return fmt.Sprintf("notify completion of property %s: %v", e.PropertyID, e.Err)
}

func (e *NotificationError) Unwrap() error {
	return e.Err
}

// NotifyResult is the outcome of one completion notice.
type NotifyResult struct {
	Success bool   `json:"success"`
	ID      string `json:"id,omitempty"`
	Err     error  `json:"-"`
}

// OnboardedMailer sends the staff notice for a submitted property.
type OnboardedMailer interface {
	SendPropertyOnboardedEmail(ctx context.Context, to, propertyName, propertyID string) (string, error)
}

// CompletionNotifier emails staff when an owner submits a property. Delivery
// runs in the background and failures are only logged and counted.
type CompletionNotifier struct {
	mailer     OnboardedMailer
	staffEmail string
	timeout    time.Duration

	wg       sync.WaitGroup
	failures atomic.Int64
}

func NewCompletionNotifier(mailer OnboardedMailer, staffEmail string, timeout time.Duration) *CompletionNotifier {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &CompletionNotifier{
		mailer:     mailer,
		staffEmail: staffEmail,
		timeout:    timeout,
	}
}

// NotifyCompletion sends the notice synchronously. It never panics; every
// failure is reported in the result.
func (n *CompletionNotifier) NotifyCompletion(ctx context.Context, propertyID, propertyName string) (result NotifyResult) {
	defer func() {
		if r := recover(); r != nil {
			result = NotifyResult{Err: &NotificationError{PropertyID: propertyID, Err: fmt.Errorf("panic: %v", r)}}
		}
	}()

	if propertyName == "" {
		propertyName = "Untitled"
	}

	id, err := n.mailer.SendPropertyOnboardedEmail(ctx, n.staffEmail, propertyName, propertyID)
	if err != nil {
		return NotifyResult{Err: &NotificationError{PropertyID: propertyID, Err: err}}
	}
	return NotifyResult{Success: true, ID: id}
}

// Dispatch sends the notice in the background and returns immediately.
func (n *CompletionNotifier) Dispatch(propertyID, propertyName string) {
	n.wg.Add(1)
	go func() {
		defer n.wg.Done()

		ctx, cancel := context.WithTimeout(context.Background(), n.timeout)
		defer cancel()

		res := n.NotifyCompletion(ctx, propertyID, propertyName)
		if !res.Success {
			n.failures.Add(1)
			slog.Error("completion notification failed", "error", res.Err, "property_id", propertyID)
			return
		}
		slog.Info("completion notification sent", "property_id", propertyID, "email_id", res.ID)
	}()
}

// Wait blocks until every dispatched notice has finished.
func (n *CompletionNotifier) Wait() {
	n.wg.Wait()
}

// Failures is the number of dispatched notices that failed.
func (n *CompletionNotifier) Failures() int64 {
	return n.failures.Load()
}
