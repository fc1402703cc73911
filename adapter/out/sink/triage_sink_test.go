package sink

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"triage_server/core/domain"
)

func TestNotificationAdapterLogsAndSucceeds(t *testing.T) {
	var buf bytes.Buffer
	adapter := NewNotificationAdapter(zerolog.New(&buf))

	if err := adapter.SendComplaintReply(context.Background(), "001", "We are sorry."); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := adapter.SendStandardReply(context.Background(), "002", "Happy to help."); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	logged := buf.String()
	for _, want := range []string{"complaint reply sent", "standard reply sent", `"email_id":"001"`, `"email_id":"002"`} {
		if !strings.Contains(logged, want) {
			t.Errorf("expected log output to contain %q, got %s", want, logged)
		}
	}
}

func TestTicketingAdapterLogsAndSucceeds(t *testing.T) {
	var buf bytes.Buffer
	adapter := NewTicketingAdapter(zerolog.New(&buf))

	err := adapter.CreateUrgentTicket(context.Background(), "001", domain.CategoryComplaint, "Subject: Broken product received")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := adapter.CreateSupportTicket(context.Background(), "004", "Subject: App crash"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	logged := buf.String()
	for _, want := range []string{
		"urgent ticket created",
		"support ticket created",
		`"category":"complaint"`,
		`"note":"Subject: Broken product received"`,
	} {
		if !strings.Contains(logged, want) {
			t.Errorf("expected log output to contain %q, got %s", want, logged)
		}
	}
}
