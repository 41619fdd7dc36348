package chatdesk

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

// fakeMailer records sent emails for lead tests.
type fakeMailer struct {
	sent []Email
	err  error
}

func (f *fakeMailer) Send(ctx context.Context, email Email) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, email)
	return nil
}

// memoryLeadStore keeps accepted leads in a slice.
type memoryLeadStore struct {
	leads []Lead
}

func (m *memoryLeadStore) SaveLead(ctx context.Context, lead *Lead) error {
	m.leads = append(m.leads, *lead)
	return nil
}

func (m *memoryLeadStore) ListLeads(ctx context.Context, limit, offset int) ([]Lead, error) {
	return m.leads, nil
}

func TestSubmitRejectsMissingRequiredFields(t *testing.T) {
	service := NewLeadService(&memoryLeadStore{}, &fakeMailer{}, "owner@example.com", "widget@example.com", nil)

	for _, lead := range []*Lead{
		{Phone: "0701234567"},
		{Name: "Test Person"},
		{Name: "   ", Phone: "0701234567"},
	} {
		_, err := service.Submit(context.Background(), lead)
		if !errors.Is(err, ErrInvalidInput) {
			t.Errorf("lead %+v: expected ErrInvalidInput, got %v", lead, err)
		}
	}
}

func TestSubmitPersistsAndEmails(t *testing.T) {
	store := &memoryLeadStore{}
	mailer := &fakeMailer{}
	service := NewLeadService(store, mailer, "owner@example.com", "widget@example.com", nil)

	painLevel := 7
	lead := &Lead{
		Name:      "Test Person",
		Phone:     "0701234567",
		Issue:     "Ont i ryggen",
		PainLevel: &painLevel,
		Message:   "Vill boka",
	}
	result, err := service.Submit(context.Background(), lead)
	if err != nil {
		t.Fatal(err)
	}
	if !result.OK || result.Warning != "" {
		t.Errorf("expected clean success, got %+v", result)
	}

	if lead.ID == "" {
		t.Error("expected a generated lead id")
	}
	if lead.CustomerID != "unknown" {
		t.Errorf("expected default customer id, got %q", lead.CustomerID)
	}
	if len(store.leads) != 1 {
		t.Fatalf("expected 1 persisted lead, got %d", len(store.leads))
	}

	if len(mailer.sent) != 1 {
		t.Fatalf("expected 1 email, got %d", len(mailer.sent))
	}
	email := mailer.sent[0]
	if email.To != "owner@example.com" {
		t.Errorf("unexpected recipient %q", email.To)
	}
	for _, want := range []string{"Test Person", "0701234567", "Ont i ryggen", "Smärtnivå: 7", "Vill boka"} {
		if !strings.Contains(email.Text, want) {
			t.Errorf("email summary missing %q:\n%s", want, email.Text)
		}
	}
}

func TestSubmitWithoutMailerWarnsButAccepts(t *testing.T) {
	store := &memoryLeadStore{}
	service := NewLeadService(store, nil, "", "widget@example.com", nil)

	result, err := service.Submit(context.Background(), &Lead{Name: "Test Person", Phone: "0701234567"})
	if err != nil {
		t.Fatal(err)
	}
	if !result.OK {
		t.Error("expected the lead to be accepted")
	}
	if result.Warning == "" {
		t.Error("expected a warning about skipped email delivery")
	}
	if len(store.leads) != 1 {
		t.Errorf("expected the lead to be persisted, got %d", len(store.leads))
	}
}

func TestSubmitMailerFailureIsAnError(t *testing.T) {
	mailer := &fakeMailer{err: errors.New("boom")}
	service := NewLeadService(&memoryLeadStore{}, mailer, "owner@example.com", "widget@example.com", nil)

	_, err := service.Submit(context.Background(), &Lead{Name: "Test Person", Phone: "0701234567"})
	if err == nil {
		t.Fatal("expected an error when the mailer fails")
	}
}

func TestResendMailerSend(t *testing.T) {
	var gotAuth string
	var gotBody map[string]any

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("failed to decode request: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	mailer := NewResendMailer("re_test", server.URL, 5*time.Second)
	err := mailer.Send(context.Background(), Email{
		From:    "widget@example.com",
		To:      "owner@example.com",
		Subject: "Ny lead: Test Person",
		Text:    "Namn: Test Person",
	})
	if err != nil {
		t.Fatal(err)
	}

	if gotAuth != "Bearer re_test" {
		t.Errorf("unexpected auth header %q", gotAuth)
	}
	if gotBody["subject"] != "Ny lead: Test Person" {
		t.Errorf("unexpected subject %v", gotBody["subject"])
	}
	to, ok := gotBody["to"].([]any)
	if !ok || len(to) != 1 || to[0] != "owner@example.com" {
		t.Errorf("unexpected recipients %v", gotBody["to"])
	}
}

func TestResendMailerNonSuccessStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"invalid api key"}`, http.StatusUnauthorized)
	}))
	defer server.Close()

	mailer := NewResendMailer("re_bad", server.URL, 5*time.Second)
	err := mailer.Send(context.Background(), Email{From: "a@b.se", To: "c@d.se", Subject: "x", Text: "y"})
	if err == nil {
		t.Fatal("expected an error for a non-2xx response")
	}
}
