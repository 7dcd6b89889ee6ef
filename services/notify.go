package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/toqaosama/portfolio-backend/config"
	"github.com/toqaosama/portfolio-backend/errs"
	"github.com/toqaosama/portfolio-backend/metrics"
	"github.com/toqaosama/portfolio-backend/models"
)

// ErrNoNotifier is reported when a message was saved but no channel is
// configured to announce it.
var ErrNoNotifier = errors.New("no notification channel configured")

// Notifier announces a stored contact message on one channel.
type Notifier interface {
	Name() string
	Notify(ctx context.Context, msg models.ContactMessage) error
}

// NotifiersFromSettings returns a notifier for every configured channel.
func NotifiersFromSettings(email config.EmailSettings, sms config.SMSSettings) []Notifier {
	var notifiers []Notifier
	if email.EmailJSConfigured() {
		notifiers = append(notifiers, NewEmailJSNotifier(NewEmailJSClient(email.EmailJSPrivateKey), email))
	}
	if email.ResendConfigured() {
		notifiers = append(notifiers, NewResendNotifier(NewResendClient(email.ResendAPIKey, email.From), email.NotifyTo))
	}
	if sms.Configured() {
		notifiers = append(notifiers, NewSMSNotifier(sms))
	}
	return notifiers
}

// NotifyEverywhere sends msg through every notifier. A failing channel does
// not stop the others; the failures are returned together.
func NotifyEverywhere(ctx context.Context, notifiers []Notifier, msg models.ContactMessage) error {
	if len(notifiers) == 0 {
		apiErr := errs.NewNotificationError("email", ErrNoNotifier)
		apiErr.Details = ErrNoNotifier.Error()
		return apiErr
	}

	var failures []string
	var causes []error
	var successes []string

	for _, n := range notifiers {
		log.Info().Str("channel", n.Name()).Msg("Sending contact notification...")
		if err := n.Notify(ctx, msg); err != nil {
			log.Error().Err(err).Str("channel", n.Name()).Msg("Failed to send contact notification")
			metrics.Notifications.WithLabelValues(n.Name(), "failed").Inc()
			failures = append(failures, fmt.Sprintf("%s: %v", n.Name(), err))
			causes = append(causes, err)
			continue
		}
		metrics.Notifications.WithLabelValues(n.Name(), "sent").Inc()
		successes = append(successes, n.Name())
	}

	if len(successes) > 0 {
		log.Info().Strs("channels", successes).Msg("Sent contact notifications")
	}
	if len(failures) > 0 {
		apiErr := errs.NewNotificationError("email", errors.Join(causes...))
		apiErr.Details = strings.Join(failures, "; ")
		return apiErr
	}
	return nil
}
