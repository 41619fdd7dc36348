package chatdesk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Email carries the data required to deliver one message.
type Email struct {
	From    string
	To      string
	Subject string
	Text    string
}

// Mailer delivers lead notifications to the business owner.
type Mailer interface {
	Send(ctx context.Context, email Email) error
}

const defaultResendURL = "https://api.resend.com/emails"

// ResendMailer is a minimal client for the Resend transactional email API.
type ResendMailer struct {
	apiKey     string
	url        string
	httpClient *http.Client
}

var _ Mailer = &ResendMailer{}

// NewResendMailer creates a mailer. url overrides the API endpoint and is
// meant for tests; pass "" for the production endpoint.
func NewResendMailer(apiKey, url string, timeout time.Duration) *ResendMailer {
	if url == "" {
		url = defaultResendURL
	}
	return &ResendMailer{
		apiKey:     apiKey,
		url:        url,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type resendRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	Text    string   `json:"text"`
}

// Send posts the email and fails on any non-2xx status.
func (m *ResendMailer) Send(ctx context.Context, email Email) error {
	payload, err := json.Marshal(resendRequest{
		From:    email.From,
		To:      []string{email.To},
		Subject: email.Subject,
		Text:    email.Text,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal email request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create email request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+m.apiKey)

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("email request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 400))
		return fmt.Errorf("email service non-success status=%d body=%s", resp.StatusCode, body)
	}
	return nil
}
