package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestParseCategory(t *testing.T) {
	tests := []struct {
		name   string
		raw    string
		want   Category
		wantOK bool
	}{
		{"exact label", "complaint", CategoryComplaint, true},
		{"surrounding whitespace", "  support_request \n", CategorySupportRequest, true},
		{"mixed case", "Feedback", CategoryFeedback, true},
		{"upper case", "INQUIRY", CategoryInquiry, true},
		{"other", "other", CategoryOther, true},
		{"label with commentary", "complaint because the customer is angry", "", false},
		{"outside the set", "urgent", "", false},
		{"empty", "", "", false},
		{"whitespace only", "   ", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseCategory(tt.raw)
			if ok != tt.wantOK {
				t.Fatalf("expected ok=%v, got %v", tt.wantOK, ok)
			}
			if got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestCategoriesCoverTheSet(t *testing.T) {
	categories := Categories()
	if len(categories) != 5 {
		t.Fatalf("expected 5 categories, got %d", len(categories))
	}
	for _, c := range categories {
		if !c.IsValid() {
			t.Errorf("category %q failed its own validation", c)
		}
	}
	if Category("urgent").IsValid() {
		t.Error("expected an out-of-set category to be invalid")
	}
}

func TestEmailHasContent(t *testing.T) {
	tests := []struct {
		name  string
		email Email
		want  bool
	}{
		{"both present", Email{Subject: "Hi", Body: "Hello"}, true},
		{"missing subject", Email{Body: "Hello"}, false},
		{"missing body", Email{Subject: "Hi"}, false},
		{"whitespace body", Email{Subject: "Hi", Body: "   \n"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.email.HasContent(); got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestKindForError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want FailureKind
	}{
		{"nil", nil, FailureNone},
		{"missing identifier", ErrMissingIdentifier, FailureMissingIdentifier},
		{"wrapped classification", fmt.Errorf("%w: provider down", ErrClassification), FailureClassification},
		{"wrapped invalid category", fmt.Errorf("%w: %q", ErrInvalidCategory, "urgent"), FailureInvalidCategory},
		{"wrapped response generation", fmt.Errorf("%w: empty completion", ErrResponseGeneration), FailureResponseGeneration},
		{"wrapped dispatch", fmt.Errorf("%w: urgent ticket: queue full", ErrDispatch), FailureDispatch},
		{"foreign error falls back to dispatch", errors.New("socket closed"), FailureDispatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := KindForError(tt.err); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestResultJSONShape(t *testing.T) {
	t.Run("failure before classification omits the category", func(t *testing.T) {
		raw, err := json.Marshal(FailureResult("001", FailureClassification, nil))
		if err != nil {
			t.Fatalf("marshal failed: %v", err)
		}
		if strings.Contains(string(raw), `"classification":`) {
			t.Errorf("expected no classification field, got %s", raw)
		}
		if !strings.Contains(string(raw), `"failure_kind":"classification_failed"`) {
			t.Errorf("expected the failure kind, got %s", raw)
		}
	})

	t.Run("failure after classification keeps the category", func(t *testing.T) {
		category := CategoryInquiry
		raw, err := json.Marshal(FailureResult("002", FailureResponseGeneration, &category))
		if err != nil {
			t.Fatalf("marshal failed: %v", err)
		}
		if !strings.Contains(string(raw), `"classification":"inquiry"`) {
			t.Errorf("expected the retained category, got %s", raw)
		}
	})

	t.Run("success omits the failure kind", func(t *testing.T) {
		raw, err := json.Marshal(SuccessResult("003", CategoryFeedback))
		if err != nil {
			t.Fatalf("marshal failed: %v", err)
		}
		if strings.Contains(string(raw), "failure_kind") {
			t.Errorf("expected no failure_kind field, got %s", raw)
		}
		if !strings.Contains(string(raw), `"response_sent":true`) {
			t.Errorf("expected response_sent, got %s", raw)
		}
	})
}

func TestProcessingReportCounters(t *testing.T) {
	report := NewProcessingReport(3)
	if report.BatchID == "" {
		t.Fatal("expected a batch id")
	}

	report.Append(SuccessResult("001", CategoryComplaint))
	report.Append(FailureResult("002", FailureClassification, nil))
	report.Append(SuccessResult("003", CategoryOther))

	if report.Processed != 3 || report.Succeeded != 2 || report.Failed != 1 {
		t.Errorf("expected counts 3/2/1, got %d/%d/%d", report.Processed, report.Succeeded, report.Failed)
	}
	if report.AllSucceeded() {
		t.Error("expected AllSucceeded to be false with one failure")
	}

	clean := NewProcessingReport(1)
	clean.Append(SuccessResult("001", CategoryComplaint))
	if !clean.AllSucceeded() {
		t.Error("expected AllSucceeded to be true")
	}

	empty := NewProcessingReport(0)
	if empty.AllSucceeded() {
		t.Error("an empty report is not a success")
	}
}
