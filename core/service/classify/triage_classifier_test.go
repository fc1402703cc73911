package classify

import (
	"context"
	"errors"
	"strings"
	"testing"

	"triage_server/core/domain"
	"triage_server/core/port/out"
	"triage_server/pkg/apperr"
)

type stubCompleter struct {
	reply   string
	err     error
	calls   int
	lastReq out.CompletionRequest
}

func (s *stubCompleter) Complete(_ context.Context, req out.CompletionRequest) (string, error) {
	s.calls++
	s.lastReq = req
	if s.err != nil {
		return "", s.err
	}
	return s.reply, nil
}

func testEmail() domain.Email {
	return domain.Email{
		ID:      "001",
		From:    "angry.customer@example.com",
		Subject: "Broken product received",
		Body:    "I received a broken product and I demand a refund.",
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name         string
		reply        string
		err          error
		wantCategory domain.Category
		wantErr      bool
	}{
		{
			name:         "exact label",
			reply:        "complaint",
			wantCategory: domain.CategoryComplaint,
		},
		{
			name:         "label with noise",
			reply:        "  Support_Request \n",
			wantCategory: domain.CategorySupportRequest,
		},
		{
			name:    "label outside the set",
			reply:   "urgent",
			wantErr: true,
		},
		{
			name:    "empty reply",
			reply:   "",
			wantErr: true,
		},
		{
			name:    "completion call fails",
			err:     errors.New("rate limited"),
			wantErr: true,
		},
		{
			name:    "circuit breaker open",
			err:     apperr.CircuitOpen("openai"),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stub := &stubCompleter{reply: tt.reply, err: tt.err}
			classifier := NewClassifier(stub, DefaultOptions())

			category, err := classifier.Classify(context.Background(), testEmail())

			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got category %q", category)
				}
				if !errors.Is(err, domain.ErrClassification) {
					t.Errorf("expected classification error, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if category != tt.wantCategory {
				t.Errorf("expected category %q, got %q", tt.wantCategory, category)
			}
		})
	}
}

func TestClassifyRejectsEmptyContent(t *testing.T) {
	tests := []struct {
		name  string
		email domain.Email
	}{
		{name: "empty subject", email: domain.Email{ID: "010", Body: "some body"}},
		{name: "empty body", email: domain.Email{ID: "011", Subject: "some subject"}},
		{name: "whitespace only", email: domain.Email{ID: "012", Subject: "  ", Body: "\n"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stub := &stubCompleter{reply: "complaint"}
			classifier := NewClassifier(stub, DefaultOptions())

			_, err := classifier.Classify(context.Background(), tt.email)
			if !errors.Is(err, domain.ErrClassification) {
				t.Errorf("expected classification error, got %v", err)
			}
			if stub.calls != 0 {
				t.Errorf("expected no completion call, got %d", stub.calls)
			}
		})
	}
}

func TestClassifyRequestShape(t *testing.T) {
	stub := &stubCompleter{reply: "complaint"}
	classifier := NewClassifier(stub, DefaultOptions())

	if _, err := classifier.Classify(context.Background(), testEmail()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	req := stub.lastReq
	if req.Task != out.TaskClassify {
		t.Errorf("expected task %q, got %q", out.TaskClassify, req.Task)
	}
	if req.Temperature != 0.3 {
		t.Errorf("expected temperature 0.3, got %v", req.Temperature)
	}
	if req.MaxTokens != 10 {
		t.Errorf("expected max tokens 10, got %d", req.MaxTokens)
	}
}

func TestBuildPrompt(t *testing.T) {
	email := testEmail()
	prompt := buildPrompt(email)

	for _, category := range domain.Categories() {
		if !strings.Contains(prompt, string(category)) {
			t.Errorf("prompt missing category %q", category)
		}
	}
	if !strings.Contains(prompt, email.Subject) {
		t.Error("prompt missing email subject")
	}
	if !strings.Contains(prompt, email.Body) {
		t.Error("prompt missing email body")
	}
}
