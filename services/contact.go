package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/toqaosama/portfolio-backend/errs"
	"github.com/toqaosama/portfolio-backend/metrics"
	"github.com/toqaosama/portfolio-backend/models"
)

// ContactState is the save state of a contact submission.
type ContactState string

const (
	StateIdle       ContactState = "idle"
	StateSubmitting ContactState = "submitting"
	StateSaved      ContactState = "saved"
	StateSaveFailed ContactState = "save_failed"
)

// EmailState is the notification state, only meaningful once saved.
type EmailState string

const (
	EmailSending EmailState = "email_sending"
	EmailSent    EmailState = "email_sent"
	EmailFailed  EmailState = "email_failed"
)

// Notice is one user-visible message, in the order it was raised.
type Notice struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// ContactOutcome is the final state of one submission. Title and Description
// repeat the last notice.
type ContactOutcome struct {
	State       ContactState           `json:"state"`
	Email       EmailState             `json:"email_state,omitempty"`
	Title       string                 `json:"title"`
	Description string                 `json:"description"`
	Notices     []Notice               `json:"notices"`
	Message     *models.ContactMessage `json:"message,omitempty"`
	Err         error                  `json:"-"`
}

func (o *ContactOutcome) notify(title, description string) {
	o.Notices = append(o.Notices, Notice{Title: title, Description: description})
	o.Title = title
	o.Description = description
}

// Saved reports whether the message reached the store, whatever happened to
// the notification.
func (o ContactOutcome) Saved() bool {
	return o.State == StateSaved
}

type ContactStore interface {
	Insert(ctx context.Context, msg models.ContactMessage) (models.ContactMessage, error)
}

// ContactService runs a submission: persist first, then notify. A
// notification failure never undoes a successful save.
type ContactService struct {
	store     ContactStore
	preflight func() error
	notifiers []Notifier
	logger    zerolog.Logger
}

// NewContactService wires the flow. preflight runs before any network call
// and should return the configuration error when the store is not set up.
func NewContactService(store ContactStore, preflight func() error, notifiers ...Notifier) *ContactService {
	if preflight == nil {
		preflight = func() error { return nil }
	}
	return &ContactService{
		store:     store,
		preflight: preflight,
		notifiers: notifiers,
		logger:    log.With().Str("service", "contact").Logger(),
	}
}

func (s *ContactService) Submit(ctx context.Context, sub models.ContactSubmission) ContactOutcome {
	outcome := ContactOutcome{State: StateIdle, Notices: []Notice{}}
	defer func() {
		metrics.ContactOutcomes.WithLabelValues(string(outcome.State), string(outcome.Email)).Inc()
	}()

	if err := sub.Validate(); err != nil {
		outcome.Err = errs.NewValidationError(err)
		outcome.notify("Check the form", err.Error())
		return outcome
	}

	if err := s.preflight(); err != nil {
		s.logger.Error().Err(err).Msg("contact store not configured")
		outcome.State = StateSaveFailed
		outcome.Err = err
		outcome.notify("Store not configured", err.Error())
		return outcome
	}

	outcome.State = StateSubmitting
	saved, err := s.store.Insert(ctx, sub.ContactMessage())
	if err != nil {
		s.logger.Error().Err(err).Msg("contact insert failed")
		outcome.State = StateSaveFailed
		outcome.Err = err
		msg := errs.StoreMessage(err)
		if errs.IsPermissionError(err) {
			outcome.notify("Save failed - permission", fmt.Sprintf("Insert blocked: %s. %s", msg, errs.PermissionGuidance))
		} else {
			outcome.notify("Save failed", msg)
		}
		return outcome
	}

	outcome.State = StateSaved
	outcome.Message = &saved
	outcome.notify("Message Saved", "Your message was saved. Attempting to send email...")

	outcome.Email = EmailSending
	if err := NotifyEverywhere(ctx, s.notifiers, saved); err != nil {
		outcome.Email = EmailFailed
		outcome.Err = err
		outcome.notify("Email Send Failed", "Message saved but email failed: "+notificationDetail(err))
		return outcome
	}

	outcome.Email = EmailSent
	outcome.notify("Email Sent", "Notification email sent successfully.")
	return outcome
}

func notificationDetail(err error) string {
	if apiErr, ok := errs.As(err); ok && apiErr.Details != "" {
		return apiErr.Details
	}
	return err.Error()
}
