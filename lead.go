package chatdesk

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// Lead is a structured contact/booking request submitted through the widget.
// Name and Phone are required; everything else is optional.
type Lead struct {
	ID            string    `json:"id,omitempty"`
	CustomerID    string    `json:"customerId,omitempty"`
	Name          string    `json:"name"`
	Phone         string    `json:"phone"`
	Email         string    `json:"email,omitempty"`
	Issue         string    `json:"issue,omitempty"`
	Duration      string    `json:"duration,omitempty"`
	PainLevel     *int      `json:"painLevel,omitempty"`
	PreferredWeek string    `json:"preferredWeek,omitempty"`
	PreferredTime string    `json:"preferredTime,omitempty"`
	Message       string    `json:"message,omitempty"`
	CreatedAt     time.Time `json:"createdAt,omitempty"`
}

// Validate checks the minimum required fields.
func (l *Lead) Validate() error {
	if strings.TrimSpace(l.Name) == "" || strings.TrimSpace(l.Phone) == "" {
		return fmt.Errorf("%w: name and phone are required", ErrInvalidInput)
	}
	return nil
}

// LeadResult reports the outcome of a lead submission. Warning is set when
// the lead was accepted but email delivery was skipped.
type LeadResult struct {
	OK      bool   `json:"ok"`
	Warning string `json:"warning,omitempty"`
}

// LeadStore persists accepted leads.
type LeadStore interface {
	SaveLead(ctx context.Context, lead *Lead) error
	ListLeads(ctx context.Context, limit, offset int) ([]Lead, error)
}

// LeadService validates lead submissions, persists them, and forwards a
// summary through the email boundary.
type LeadService struct {
	store  LeadStore
	mailer Mailer
	to     string
	from   string
	logger *slog.Logger
}

// NewLeadService wires the lead intake pipeline. mailer may be nil when no
// mail API key is configured; leads are then accepted without notification
// and the result carries a warning.
func NewLeadService(store LeadStore, mailer Mailer, to, from string, logger *slog.Logger) *LeadService {
	if logger == nil {
		logger = slog.Default()
	}
	return &LeadService{store: store, mailer: mailer, to: to, from: from, logger: logger}
}

// Submit accepts a lead: validate, stamp id and timestamps, persist, email a
// summary. A missing mailer downgrades to a warning; a mailer transport
// failure is a real error.
func (s *LeadService) Submit(ctx context.Context, lead *Lead) (*LeadResult, error) {
	if err := lead.Validate(); err != nil {
		return nil, err
	}

	id, err := gonanoid.New()
	if err != nil {
		return nil, fmt.Errorf("generate lead id: %w", err)
	}
	lead.ID = id
	if lead.CustomerID == "" {
		lead.CustomerID = "unknown"
	}
	lead.CreatedAt = time.Now().UTC()

	if s.store != nil {
		if err := s.store.SaveLead(ctx, lead); err != nil {
			return nil, fmt.Errorf("save lead: %w", err)
		}
	}

	s.logger.Info("new lead", "leadID", lead.ID, "customerID", lead.CustomerID, "name", lead.Name)

	if s.mailer == nil {
		s.logger.Warn("no mail API key configured, skipping lead notification", "leadID", lead.ID)
		return &LeadResult{OK: true, Warning: "email delivery skipped: mail service not configured"}, nil
	}

	email := Email{
		From:    s.from,
		To:      s.to,
		Subject: fmt.Sprintf("Ny lead: %s", lead.Name),
		Text:    formatLeadSummary(lead),
	}
	if err := s.mailer.Send(ctx, email); err != nil {
		return nil, fmt.Errorf("send lead notification: %w", err)
	}

	return &LeadResult{OK: true}, nil
}

func formatLeadSummary(lead *Lead) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Namn: %s\n", lead.Name)
	fmt.Fprintf(&b, "Telefon: %s\n", lead.Phone)
	if lead.Email != "" {
		fmt.Fprintf(&b, "E-post: %s\n", lead.Email)
	}
	if lead.Issue != "" {
		fmt.Fprintf(&b, "Besvär: %s\n", lead.Issue)
	}
	if lead.Duration != "" {
		fmt.Fprintf(&b, "Varaktighet: %s\n", lead.Duration)
	}
	if lead.PainLevel != nil {
		fmt.Fprintf(&b, "Smärtnivå: %d\n", *lead.PainLevel)
	}
	if lead.PreferredWeek != "" {
		fmt.Fprintf(&b, "Önskad vecka: %s\n", lead.PreferredWeek)
	}
	if lead.PreferredTime != "" {
		fmt.Fprintf(&b, "Önskad tid: %s\n", lead.PreferredTime)
	}
	if lead.Message != "" {
		fmt.Fprintf(&b, "Meddelande: %s\n", lead.Message)
	}
	fmt.Fprintf(&b, "Kund: %s\n", lead.CustomerID)
	fmt.Fprintf(&b, "Mottagen: %s\n", lead.CreatedAt.Format(time.RFC3339))
	return b.String()
}
