package sink

import (
	"context"

	"github.com/rs/zerolog"

	"triage_server/core/domain"
	"triage_server/core/port/out"
	"triage_server/pkg/metrics"
)

// =============================================================================
// Ticketing Adapter
// =============================================================================

// TicketingAdapter implements out.TicketingPort by logging ticket
// creation.
type TicketingAdapter struct {
	log zerolog.Logger
}

// NewTicketingAdapter creates a new ticketing adapter.
func NewTicketingAdapter(log zerolog.Logger) *TicketingAdapter {
	return &TicketingAdapter{
		log: log.With().Str("component", "ticketing_sink").Logger(),
	}
}

var _ out.TicketingPort = (*TicketingAdapter)(nil)

// CreateUrgentTicket opens a high-priority ticket for the email.
func (a *TicketingAdapter) CreateUrgentTicket(_ context.Context, emailID string, category domain.Category, note string) error {
	a.log.Info().
		Str("email_id", emailID).
		Str("category", string(category)).
		Str("priority", "urgent").
		Str("note", note).
		Msg("urgent ticket created")

	metrics.IncrementSinkCall("ticketing", "urgent_ticket")
	return nil
}

// CreateSupportTicket opens a standard support ticket for the email.
func (a *TicketingAdapter) CreateSupportTicket(_ context.Context, emailID, note string) error {
	a.log.Info().
		Str("email_id", emailID).
		Str("priority", "normal").
		Str("note", note).
		Msg("support ticket created")

	metrics.IncrementSinkCall("ticketing", "support_ticket")
	return nil
}
