package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"

	"github.com/toqaosama/portfolio-backend/config"
	"github.com/toqaosama/portfolio-backend/models"
)

const smsPreviewLength = 120

type messageCreator interface {
	CreateMessage(params *twilioApi.CreateMessageParams) (*twilioApi.ApiV2010Message, error)
}

// SMSNotifier texts the site owner a short preview of each contact message.
type SMSNotifier struct {
	api  messageCreator
	from string
	to   string
}

func NewSMSNotifier(settings config.SMSSettings) *SMSNotifier {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: settings.AccountSID,
		Password: settings.AuthToken,
	})
	return &SMSNotifier{api: client.Api, from: settings.From, to: settings.NotifyTo}
}

func (n *SMSNotifier) Name() string { return "SMS" }

func (n *SMSNotifier) Notify(_ context.Context, msg models.ContactMessage) error {
	params := &twilioApi.CreateMessageParams{}
	params.SetTo(n.to)
	params.SetFrom(n.from)
	params.SetBody(smsBody(msg))

	resp, err := n.api.CreateMessage(params)
	if err != nil {
		return fmt.Errorf("failed to send sms: %w", err)
	}
	if resp != nil && resp.Sid != nil {
		log.Info().Str("sid", *resp.Sid).Msg("Sent contact SMS")
	}
	return nil
}

func smsBody(msg models.ContactMessage) string {
	preview := []rune(msg.Message)
	if len(preview) > smsPreviewLength {
		preview = append(preview[:smsPreviewLength], '…')
	}
	return fmt.Sprintf("New message from %s (%s): %s", msg.Name, msg.Email, string(preview))
}
