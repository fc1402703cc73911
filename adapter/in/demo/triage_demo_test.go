package demo

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"triage_server/core/domain"
)

type stubTriageService struct {
	failIDs map[string]bool
}

func (s *stubTriageService) Process(_ context.Context, email domain.Email) domain.ProcessingResult {
	if s.failIDs[email.ID] {
		return domain.FailureResult(email.ID, domain.FailureClassification, nil)
	}
	return domain.SuccessResult(email.ID, domain.CategoryOther)
}

func (s *stubTriageService) ProcessBatch(ctx context.Context, emails []domain.Email) *domain.ProcessingReport {
	report := domain.NewProcessingReport(len(emails))
	for _, email := range emails {
		report.Append(s.Process(ctx, email))
	}
	return report
}

func TestRunAllSucceed(t *testing.T) {
	var buf bytes.Buffer
	runner := &Runner{service: &stubTriageService{}, out: &buf}

	if err := runner.Run(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	output := buf.String()
	if !strings.Contains(output, "Processing Summary:") {
		t.Error("expected the summary heading")
	}
	for _, id := range []string{"001", "002", "003", "004", "005"} {
		if !strings.Contains(output, id) {
			t.Errorf("expected the summary to list email %s", id)
		}
	}
}

func TestRunReportsFailures(t *testing.T) {
	var buf bytes.Buffer
	runner := &Runner{
		service: &stubTriageService{failIDs: map[string]bool{"002": true, "004": true}},
		out:     &buf,
	}

	err := runner.Run(context.Background())
	if err == nil {
		t.Fatal("expected an error when emails fail")
	}
	if !strings.Contains(err.Error(), "2 of 5") {
		t.Errorf("expected the error to carry the counts, got %q", err.Error())
	}
}

func TestSampleEmailsAreComplete(t *testing.T) {
	if len(SampleEmails) != 5 {
		t.Fatalf("expected 5 sample emails, got %d", len(SampleEmails))
	}
	seen := make(map[string]bool)
	for _, email := range SampleEmails {
		if email.ID == "" || email.Subject == "" || email.Body == "" {
			t.Errorf("sample email %q is missing content", email.ID)
		}
		if seen[email.ID] {
			t.Errorf("duplicate sample id %q", email.ID)
		}
		seen[email.ID] = true
	}
}
