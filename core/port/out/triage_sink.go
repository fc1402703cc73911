package out

import (
	"context"

	"triage_server/core/domain"
)

// NotificationPort delivers generated replies back to customers.
// Fire-and-forget beyond the error return.
type NotificationPort interface {
	// SendComplaintReply delivers a reply on the complaint path.
	SendComplaintReply(ctx context.Context, emailID, response string) error

	// SendStandardReply delivers a reply for every non-complaint path.
	SendStandardReply(ctx context.Context, emailID, response string) error
}

// TicketingPort opens tickets in the downstream tracker. note carries
// the email subject for triage context.
type TicketingPort interface {
	CreateUrgentTicket(ctx context.Context, emailID string, category domain.Category, note string) error
	CreateSupportTicket(ctx context.Context, emailID, note string) error
}
