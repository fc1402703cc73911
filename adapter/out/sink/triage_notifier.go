// Package sink provides the delivery adapters behind the dispatcher.
// Both are mocked: they log the action and report success. Swapping in
// a real mail sender or ticket system replaces this package only.
package sink

import (
	"context"

	"github.com/rs/zerolog"

	"triage_server/core/port/out"
	"triage_server/pkg/metrics"
)

// =============================================================================
// Notification Adapter
// =============================================================================

// NotificationAdapter implements out.NotificationPort by logging the
// outgoing reply.
type NotificationAdapter struct {
	log zerolog.Logger
}

// NewNotificationAdapter creates a new notification adapter.
func NewNotificationAdapter(log zerolog.Logger) *NotificationAdapter {
	return &NotificationAdapter{
		log: log.With().Str("component", "notification_sink").Logger(),
	}
}

var _ out.NotificationPort = (*NotificationAdapter)(nil)

// SendComplaintReply delivers the reply on the complaint lane.
func (a *NotificationAdapter) SendComplaintReply(_ context.Context, emailID, response string) error {
	a.log.Info().
		Str("email_id", emailID).
		Int("response_chars", len(response)).
		Str("preview", preview(response)).
		Msg("complaint reply sent")

	metrics.IncrementSinkCall("notification", "complaint_reply")
	return nil
}

// SendStandardReply delivers the reply on the standard lane.
func (a *NotificationAdapter) SendStandardReply(_ context.Context, emailID, response string) error {
	a.log.Info().
		Str("email_id", emailID).
		Int("response_chars", len(response)).
		Str("preview", preview(response)).
		Msg("standard reply sent")

	metrics.IncrementSinkCall("notification", "standard_reply")
	return nil
}

// preview truncates a reply for log output.
func preview(response string) string {
	const max = 80
	runes := []rune(response)
	if len(runes) <= max {
		return response
	}
	return string(runes[:max]) + "..."
}
