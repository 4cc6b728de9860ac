package contact

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/devfolio/devfolio/backend/internal/mailer"
	"github.com/devfolio/devfolio/backend/internal/verify"
)

type fakeVerifier struct {
	configured bool
	result     *verify.Result
	err        error
}

func (f *fakeVerifier) Configured() bool { return f.configured }
func (f *fakeVerifier) Check(ctx context.Context, email string) (*verify.Result, error) {
	return f.result, f.err
}

type fakeSender struct {
	mu   sync.Mutex
	sent []mailer.Message
	err  error
}

func (f *fakeSender) Send(ctx context.Context, msg mailer.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, msg)
	return f.err
}

func okVerifier() *fakeVerifier {
	return &fakeVerifier{configured: true, result: &verify.Result{FormatValid: true, MXFound: true, SMTPCheck: true}}
}

func undeliverableResult() *verify.Result {
	return &verify.Result{FormatValid: true, MXFound: true, SMTPCheck: false}
}

func validSubmission() Submission {
	return Submission{
		Name:      "Jordan Doe",
		Email:     "jordan@example.com",
		Message:   "I would like to talk about a contract.",
		UserAgent: "test-agent",
		ClientIP:  "203.0.113.9",
	}
}

func TestSubmit_StoresSanitizedRecord(t *testing.T) {
	repo := NewMemoryRepository()
	sender := &fakeSender{}
	svc := NewService(repo, okVerifier(), sender, "noreply@site.dev", "owner@site.dev")

	sub := validSubmission()
	sub.Name = "  Jordan <script> Doe "
	sub.Message = " hello there, <b>bold</b> offer inside "

	id, err := svc.Submit(context.Background(), sub)
	require.NoError(t, err)
	require.NotEmpty(t, id)

	stored := repo.Get(id)
	require.NotNil(t, stored)
	require.Equal(t, "Jordan script Doe", stored.Name)
	require.Equal(t, "hello there, bbold/b offer inside", stored.Message)
	require.Equal(t, "new", stored.Status)
	require.True(t, stored.EmailVerified)
	require.Equal(t, "test-agent", stored.UserAgent)
	require.Equal(t, "203.0.113.9", stored.ClientIP)

	// operator notification + auto-reply
	require.Len(t, sender.sent, 2)
}

func TestSubmit_LengthBoundsCountRunes(t *testing.T) {
	repo := NewMemoryRepository()
	svc := NewService(repo, okVerifier(), &fakeSender{}, "noreply@site.dev", "owner@site.dev")

	// 300 characters of multibyte text is within the 500-character bound even
	// though it is 900 bytes
	sub := validSubmission()
	sub.Name = strings.Repeat("Ж", 33)
	sub.Message = strings.Repeat("日", 300)

	id, err := svc.Submit(context.Background(), sub)
	require.NoError(t, err)
	require.Equal(t, sub.Message, repo.Get(id).Message)

	// the character bound still applies
	sub = validSubmission()
	sub.Message = strings.Repeat("日", 501)
	_, err = svc.Submit(context.Background(), sub)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Contains(t, err.Error(), "10 and 500")
}

func TestSubmit_CollectsAllViolations(t *testing.T) {
	svc := NewService(NewMemoryRepository(), okVerifier(), &fakeSender{}, "noreply@site.dev", "owner@site.dev")

	_, err := svc.Submit(context.Background(), Submission{Name: "J", Email: "nonsense", Message: "too short"})
	require.Error(t, err)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Len(t, verr.Violations, 3)
	require.Contains(t, err.Error(), "10 characters")
	require.Contains(t, err.Error(), "2 and 50")
	require.Contains(t, err.Error(), "valid address")
}

func TestSubmit_UndeliverableMailbox(t *testing.T) {
	v := &fakeVerifier{configured: true, result: &verify.Result{FormatValid: true, MXFound: true, SMTPCheck: false}}
	svc := NewService(NewMemoryRepository(), v, &fakeSender{}, "noreply@site.dev", "owner@site.dev")

	_, err := svc.Submit(context.Background(), validSubmission())
	require.Error(t, err)
	var uerr *UndeliverableEmailError
	require.ErrorAs(t, err, &uerr)
	require.Contains(t, err.Error(), "not deliverable")
}

func TestSubmit_InvalidDomain(t *testing.T) {
	v := &fakeVerifier{configured: true, result: &verify.Result{FormatValid: true, MXFound: false}}
	svc := NewService(NewMemoryRepository(), v, &fakeSender{}, "noreply@site.dev", "owner@site.dev")

	_, err := svc.Submit(context.Background(), validSubmission())
	var ierr *InvalidEmailError
	require.ErrorAs(t, err, &ierr)
	require.Contains(t, err.Error(), "domain")
}

func TestSubmit_FailsOpenWhenVerifierDown(t *testing.T) {
	repo := NewMemoryRepository()
	v := &fakeVerifier{configured: true, err: errors.New("connection refused")}
	svc := NewService(repo, v, &fakeSender{}, "noreply@site.dev", "owner@site.dev")

	id, err := svc.Submit(context.Background(), validSubmission())
	require.NoError(t, err)
	require.False(t, repo.Get(id).EmailVerified)
}

func TestSubmit_FailsOpenWhenUnconfigured(t *testing.T) {
	repo := NewMemoryRepository()
	svc := NewService(repo, &fakeVerifier{configured: false}, &fakeSender{}, "noreply@site.dev", "owner@site.dev")

	id, err := svc.Submit(context.Background(), validSubmission())
	require.NoError(t, err)
	require.False(t, repo.Get(id).EmailVerified)
}

func TestSubmit_SwallowsNotificationFailures(t *testing.T) {
	repo := NewMemoryRepository()
	sender := &fakeSender{err: errors.New("resend down")}
	svc := NewService(repo, okVerifier(), sender, "noreply@site.dev", "owner@site.dev")

	id, err := svc.Submit(context.Background(), validSubmission())
	require.NoError(t, err)
	require.NotEmpty(t, id)
	require.Len(t, sender.sent, 2) // both attempted despite failing
}

func TestSubmit_PersistenceFailureIsFatal(t *testing.T) {
	repo := NewMemoryRepository()
	repo.FailCreates(errors.New("mongo down"))
	sender := &fakeSender{}
	svc := NewService(repo, okVerifier(), sender, "noreply@site.dev", "owner@site.dev")

	_, err := svc.Submit(context.Background(), validSubmission())
	require.Error(t, err)
	require.True(t, strings.Contains(err.Error(), "store message"))
	require.Empty(t, sender.sent) // no notifications without durability
}

func TestSubmit_OperatorNotificationReplyTo(t *testing.T) {
	sender := &fakeSender{}
	svc := NewService(NewMemoryRepository(), okVerifier(), sender, "noreply@site.dev", "owner@site.dev")

	_, err := svc.Submit(context.Background(), validSubmission())
	require.NoError(t, err)

	var operator, autoreply *mailer.Message
	for i := range sender.sent {
		switch sender.sent[i].To[0] {
		case "owner@site.dev":
			operator = &sender.sent[i]
		case "jordan@example.com":
			autoreply = &sender.sent[i]
		}
	}
	require.NotNil(t, operator)
	require.NotNil(t, autoreply)
	require.Equal(t, "jordan@example.com", operator.ReplyTo)
}
