// Package dispatch routes a classified, responded-to email to its
// category's side-effect sequence.
//
// Every category maps to a fixed ordered list of sink calls. The
// mapping is a switch over the enumeration so a new category fails to
// compile until it gets a branch here.
package dispatch

import (
	"context"
	"fmt"

	"triage_server/core/domain"
	"triage_server/core/port/out"
	"triage_server/pkg/logger"
)

// Dispatcher drives the per-category sink-call sequences.
type Dispatcher struct {
	notifier out.NotificationPort
	ticketer out.TicketingPort
}

// NewDispatcher creates a dispatcher over the given sinks.
func NewDispatcher(notifier out.NotificationPort, ticketer out.TicketingPort) *Dispatcher {
	return &Dispatcher{
		notifier: notifier,
		ticketer: ticketer,
	}
}

// Dispatch runs the call sequence for the category:
//
//	complaint       -> complaint reply + urgent ticket
//	inquiry         -> standard reply
//	feedback        -> standard reply
//	support_request -> standard reply + support ticket
//	other           -> standard reply
//
// The sequence aborts on the first sink error. Tickets carry the email
// subject as triage context.
func (d *Dispatcher) Dispatch(ctx context.Context, email domain.Email, category domain.Category, response string) error {
	note := "Subject: " + email.Subject

	switch category {
	case domain.CategoryComplaint:
		if err := d.notifier.SendComplaintReply(ctx, email.ID, response); err != nil {
			return fmt.Errorf("%w: complaint reply: %w", domain.ErrDispatch, err)
		}
		if err := d.ticketer.CreateUrgentTicket(ctx, email.ID, category, note); err != nil {
			return fmt.Errorf("%w: urgent ticket: %w", domain.ErrDispatch, err)
		}

	case domain.CategorySupportRequest:
		if err := d.notifier.SendStandardReply(ctx, email.ID, response); err != nil {
			return fmt.Errorf("%w: standard reply: %w", domain.ErrDispatch, err)
		}
		if err := d.ticketer.CreateSupportTicket(ctx, email.ID, note); err != nil {
			return fmt.Errorf("%w: support ticket: %w", domain.ErrDispatch, err)
		}

	case domain.CategoryInquiry, domain.CategoryFeedback, domain.CategoryOther:
		if err := d.notifier.SendStandardReply(ctx, email.ID, response); err != nil {
			return fmt.Errorf("%w: standard reply: %w", domain.ErrDispatch, err)
		}

	default:
		// Unreachable while the classifier honors its contract.
		logger.WithEmail(email.ID).Error("Dispatch asked for unknown category %q", category)
		return fmt.Errorf("%w: %q", domain.ErrInvalidCategory, category)
	}

	logger.WithEmail(email.ID).Debug("Dispatched %s actions", category)
	return nil
}
