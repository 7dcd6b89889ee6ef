package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/toqaosama/portfolio-backend/config"
	"github.com/toqaosama/portfolio-backend/models"
)

const emailJSEndpoint = "https://api.emailjs.com/api/v1.0/email/send"

type emailJSRequest struct {
	ServiceID      string            `json:"service_id"`
	TemplateID     string            `json:"template_id"`
	UserID         string            `json:"user_id"`
	TemplateParams map[string]string `json:"template_params"`
	AccessToken    string            `json:"accessToken,omitempty"`
}

// EmailJSError carries the status and text returned by the EmailJS API.
type EmailJSError struct {
	Status int
	Text   string
}

func (e *EmailJSError) Error() string {
	return fmt.Sprintf("emailjs status %d: %s", e.Status, e.Text)
}

// EmailJSClient calls the EmailJS REST API, which renders a stored template
// with the given parameters and delivers it.
type EmailJSClient struct {
	endpoint    string
	accessToken string
	httpClient  *http.Client
}

func NewEmailJSClient(accessToken string) *EmailJSClient {
	return &EmailJSClient{
		endpoint:    emailJSEndpoint,
		accessToken: accessToken,
		httpClient:  &http.Client{Timeout: 15 * time.Second},
	}
}

// Send renders templateID of serviceID with params. publicKey identifies the
// EmailJS account.
func (c *EmailJSClient) Send(ctx context.Context, serviceID, templateID string, params map[string]string, publicKey string) error {
	payload, err := json.Marshal(emailJSRequest{
		ServiceID:      serviceID,
		TemplateID:     templateID,
		UserID:         publicKey,
		TemplateParams: params,
		AccessToken:    c.accessToken,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal emailjs payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create emailjs request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request to emailjs: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &EmailJSError{Status: resp.StatusCode, Text: strings.TrimSpace(string(body))}
	}
	return nil
}

// EmailJSNotifier sends the contact message through a stored EmailJS template.
type EmailJSNotifier struct {
	client     *EmailJSClient
	serviceID  string
	templateID string
	publicKey  string
}

func NewEmailJSNotifier(client *EmailJSClient, settings config.EmailSettings) *EmailJSNotifier {
	return &EmailJSNotifier{
		client:     client,
		serviceID:  settings.EmailJSServiceID,
		templateID: settings.EmailJSTemplateID,
		publicKey:  settings.EmailJSPublicKey,
	}
}

func (n *EmailJSNotifier) Name() string { return "EmailJS" }

func (n *EmailJSNotifier) Notify(ctx context.Context, msg models.ContactMessage) error {
	return n.client.Send(ctx, n.serviceID, n.templateID, msg.TemplateParams(), n.publicKey)
}
