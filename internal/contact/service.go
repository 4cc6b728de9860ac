package contact

import (
	"context"
	"fmt"
	"sync"

	"github.com/devfolio/devfolio/backend/internal/mailer"
	"github.com/devfolio/devfolio/backend/internal/verify"
	"github.com/devfolio/devfolio/backend/pkg/logger"
	"github.com/devfolio/devfolio/backend/pkg/metrics"
)

// Verifier is the deliverability check the pipeline depends on.
// *verify.Client satisfies it.
type Verifier interface {
	Configured() bool
	Check(ctx context.Context, email string) (*verify.Result, error)
}

// Submission is the raw form input plus request metadata captured by the
// handler.
type Submission struct {
	Name      string
	Email     string
	Message   string
	UserAgent string
	ClientIP  string
}

// Service runs the contact pipeline: validate, verify deliverability, persist,
// notify. The Mongo write is the durability point; everything after it is
// best-effort.
type Service struct {
	repo     Repository
	verifier Verifier
	sender   mailer.Sender
	from     string
	operator string
}

func NewService(repo Repository, verifier Verifier, sender mailer.Sender, from, operator string) *Service {
	return &Service{repo: repo, verifier: verifier, sender: sender, from: from, operator: operator}
}

// Submit processes one contact-form submission and returns the stored message
// id. Validation and deliverability failures are typed errors the handler
// maps to 400; a persistence failure is the only 500 path. Notification email
// failures are logged and swallowed.
func (s *Service) Submit(ctx context.Context, sub Submission) (string, error) {
	if verr := validateInput(sub.Name, sub.Email, sub.Message); verr != nil {
		metrics.ContactSubmissions.WithLabelValues("validation_failed").Inc()
		return "", verr
	}

	name := sanitize(sub.Name)
	email := sanitize(sub.Email)
	body := sanitize(sub.Message)

	verified, err := s.checkDeliverability(ctx, email)
	if err != nil {
		metrics.ContactSubmissions.WithLabelValues("email_rejected").Inc()
		return "", err
	}

	msg := &Message{
		Name:          name,
		Email:         email,
		Message:       body,
		Status:        "new",
		EmailVerified: verified,
		UserAgent:     sub.UserAgent,
		ClientIP:      sub.ClientIP,
	}
	id, err := s.repo.Create(ctx, msg)
	if err != nil {
		metrics.ContactSubmissions.WithLabelValues("persistence_failed").Inc()
		return "", fmt.Errorf("store message: %w", err)
	}
	metrics.ContactSubmissions.WithLabelValues("accepted").Inc()

	// The message is durably stored; the two notifications are dispatched
	// concurrently and jointly awaited, and their failures never surface.
	s.notify(ctx, name, email, body)

	return id, nil
}

// checkDeliverability consults the provider. Any provider error or missing
// configuration fails open: the address is treated as deliverable and the
// stored record is marked unverified.
func (s *Service) checkDeliverability(ctx context.Context, email string) (bool, error) {
	if s.verifier == nil || !s.verifier.Configured() {
		return false, nil
	}
	res, err := s.verifier.Check(ctx, email)
	if err != nil {
		logger.Warnf("email verification unavailable, accepting %s unverified: %v", email, err)
		return false, nil
	}
	if !res.FormatValid {
		return false, &InvalidEmailError{Reason: "email address format is invalid"}
	}
	if !res.MXFound {
		return false, &InvalidEmailError{Reason: "email domain does not exist"}
	}
	if !res.SMTPCheck {
		return false, &UndeliverableEmailError{Email: email}
	}
	return true, nil
}

func (s *Service) notify(ctx context.Context, name, email, body string) {
	if s.sender == nil {
		logger.Warnf("no mail sender configured, skipping notifications for %s", email)
		return
	}
	sends := []struct {
		kind string
		msg  mailer.Message
	}{
		{"operator", mailer.OperatorNotification(s.from, s.operator, name, email, body)},
		{"autoreply", mailer.AutoReply(s.from, s.operator, name, email)},
	}

	var wg sync.WaitGroup
	for _, send := range sends {
		wg.Add(1)
		go func(kind string, msg mailer.Message) {
			defer wg.Done()
			if err := s.sender.Send(ctx, msg); err != nil {
				metrics.NotificationFailures.WithLabelValues(kind).Inc()
				logger.Errorf("%s notification failed: %v", kind, err)
			}
		}(send.kind, send.msg)
	}
	wg.Wait()
}

// List returns stored messages, newest first (admin view).
func (s *Service) List(ctx context.Context) ([]*Message, error) {
	return s.repo.List(ctx)
}
