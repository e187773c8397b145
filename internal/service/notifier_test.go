package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sentNotice struct {
	to, name, id string
}

type fakeMailer struct {
	mu      sync.Mutex
	err     error
	explode bool
	sent    []sentNotice
}

func (m *fakeMailer) SendPropertyOnboardedEmail(_ context.Context, to, propertyName, propertyID string) (string, error) {
	if m.explode {
		panic("mailer exploded")
	}
	if m.err != nil {
		return "", m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, sentNotice{to, propertyName, propertyID})
	return "email-1", nil
}

func TestNotifyCompletion(t *testing.T) {
	ctx := context.Background()

	mailer := &fakeMailer{}
	n := NewCompletionNotifier(mailer, "staff@example.com", time.Second)
	res := n.NotifyCompletion(ctx, "p1", "")
	assert.True(t, res.Success)
	assert.Equal(t, "email-1", res.ID)
	assert.Equal(t, []sentNotice{{"staff@example.com", "Untitled", "p1"}}, mailer.sent)

	n = NewCompletionNotifier(&fakeMailer{err: errors.New("rate limited")}, "staff@example.com", time.Second)
	res = n.NotifyCompletion(ctx, "p2", "Chalet")
	assert.False(t, res.Success)
	var nerr *NotificationError
	require.ErrorAs(t, res.Err, &nerr)
	assert.Equal(t, "p2", nerr.PropertyID)

	n = NewCompletionNotifier(&fakeMailer{explode: true}, "staff@example.com", time.Second)
	res = n.NotifyCompletion(ctx, "p3", "Chalet")
	assert.False(t, res.Success)
	assert.ErrorContains(t, res.Err, "mailer exploded")
}

func TestDispatchCountsFailures(t *testing.T) {
	ok := &fakeMailer{}
	n := NewCompletionNotifier(ok, "staff@example.com", time.Second)
	n.Dispatch("p1", "Chalet")
	n.Dispatch("p2", "Loft")
	n.Wait()
	assert.Len(t, ok.sent, 2)
	assert.Zero(t, n.Failures())

	failing := NewCompletionNotifier(&fakeMailer{err: errors.New("down")}, "staff@example.com", 0)
	failing.Dispatch("p1", "Chalet")
	failing.Wait()
	assert.Equal(t, int64(1), failing.Failures())
}

func TestEmailServiceDevModeReturnsMockID(t *testing.T) {
	s := NewEmailService("re_key", "noreply@example.com", "http://localhost:8080", "PremiumConnect", true)

	id, err := s.SendPropertyOnboardedEmail(context.Background(), "staff@example.com", "Chalet", "p1")
	require.NoError(t, err)
	assert.Equal(t, mockEmailID, id)
	assert.NoError(t, s.SendWelcomeEmail(context.Background(), "owner@example.com", "Claire"))
}

func TestPropertyOnboardedTemplate(t *testing.T) {
	subject, body := propertyOnboardedEmailTemplate("Chalet du Lac", "p1", "http://localhost/admin/properties/p1", "PremiumConnect")
	assert.Contains(t, subject, "Chalet du Lac")
	assert.Contains(t, body, "p1")
	assert.Contains(t, body, "http://localhost/admin/properties/p1")
}
