package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"

	"github.com/toqaosama/portfolio-backend/config"
	"github.com/toqaosama/portfolio-backend/models"
)

var contactMessage = models.ContactMessage{
	Name:    "Ada",
	Email:   "ada@example.com",
	Subject: "Hello",
	Message: "Can we talk?",
}

func TestEmailJSNotifierPostsTemplateParams(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Write([]byte("OK"))
	}))
	defer srv.Close()

	client := NewEmailJSClient("private")
	client.endpoint = srv.URL
	n := NewEmailJSNotifier(client, config.EmailSettings{
		EmailJSServiceID:  "service_1",
		EmailJSTemplateID: "template_1",
		EmailJSPublicKey:  "public_1",
	})

	require.NoError(t, n.Notify(context.Background(), contactMessage))
	assert.Equal(t, "service_1", got["service_id"])
	assert.Equal(t, "template_1", got["template_id"])
	assert.Equal(t, "public_1", got["user_id"])
	assert.Equal(t, "private", got["accessToken"])
	assert.Equal(t, map[string]any{
		"from_name":  "Ada",
		"from_email": "ada@example.com",
		"subject":    "Hello",
		"message":    "Can we talk?",
	}, got["template_params"])
}

func TestEmailJSErrorCarriesResponseText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte("The Public Key is invalid"))
	}))
	defer srv.Close()

	client := NewEmailJSClient("")
	client.endpoint = srv.URL

	err := client.Send(context.Background(), "s", "t", nil, "bad")
	var ejErr *EmailJSError
	require.True(t, errors.As(err, &ejErr))
	assert.Equal(t, http.StatusBadRequest, ejErr.Status)
	assert.Equal(t, "The Public Key is invalid", ejErr.Text)
}

func TestResendNotifier(t *testing.T) {
	var got ResendEmailRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer re_key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Write([]byte(`{"id":"email_1"}`))
	}))
	defer srv.Close()

	client := NewResendClient("re_key", "Portfolio <site@example.com>")
	client.endpoint = srv.URL
	msg := contactMessage
	msg.Message = "<script>alert(1)</script>"

	require.NoError(t, NewResendNotifier(client, "owner@example.com").Notify(context.Background(), msg))
	assert.Equal(t, "Portfolio <site@example.com>", got.From)
	assert.Equal(t, []string{"owner@example.com"}, got.To)
	assert.Equal(t, "ada@example.com", got.ReplyTo)
	assert.Equal(t, "Hello", got.Subject)
	assert.NotContains(t, got.Html, "<script>")
}

func TestResendErrorMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"message":"Invalid from address"}`))
	}))
	defer srv.Close()

	client := NewResendClient("re_key", "bad")
	client.endpoint = srv.URL
	err := client.SendEmail(context.Background(), ResendEmailRequest{To: []string{"a@b.c"}, Subject: "x"})
	require.Error(t, err)
	assert.Equal(t, "resend API error (status 422): Invalid from address", err.Error())

	assert.Error(t, client.SendEmail(context.Background(), ResendEmailRequest{}))
}

type fakeMessages struct {
	params *twilioApi.CreateMessageParams
	err    error
}

func (f *fakeMessages) CreateMessage(params *twilioApi.CreateMessageParams) (*twilioApi.ApiV2010Message, error) {
	f.params = params
	if f.err != nil {
		return nil, f.err
	}
	sid := "SM123"
	return &twilioApi.ApiV2010Message{Sid: &sid}, nil
}

func TestSMSNotifier(t *testing.T) {
	api := &fakeMessages{}
	n := &SMSNotifier{api: api, from: "+15550000000", to: "+15551111111"}

	msg := contactMessage
	msg.Message = strings.Repeat("x", 200)
	require.NoError(t, n.Notify(context.Background(), msg))

	require.NotNil(t, api.params)
	assert.Equal(t, "+15551111111", *api.params.To)
	assert.Equal(t, "+15550000000", *api.params.From)
	assert.True(t, strings.HasPrefix(*api.params.Body, "New message from Ada (ada@example.com): "))
	assert.True(t, strings.HasSuffix(*api.params.Body, "…"))

	api.err = errors.New("invalid 'To' number")
	assert.Error(t, n.Notify(context.Background(), msg))
}

func TestNotifiersFromSettings(t *testing.T) {
	assert.Empty(t, NotifiersFromSettings(config.EmailSettings{}, config.SMSSettings{}))

	notifiers := NotifiersFromSettings(config.EmailSettings{
		EmailJSServiceID:  "s",
		EmailJSTemplateID: "t",
		EmailJSPublicKey:  "p",
		ResendAPIKey:      "re",
		From:              "site@example.com",
		NotifyTo:          "owner@example.com",
	}, config.SMSSettings{AccountSID: "AC1", AuthToken: "tok", From: "+1", NotifyTo: "+2"})

	names := make([]string, len(notifiers))
	for i, n := range notifiers {
		names[i] = n.Name()
	}
	assert.Equal(t, []string{"EmailJS", "Resend", "SMS"}, names)
}
