package llm

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/sony/gobreaker"

	"triage_server/core/port/out"
	"triage_server/pkg/apperr"
)

func newTestAdapter() *CompletionAdapter {
	return NewCompletionAdapter(&Config{
		APIKey:        "test-key",
		ClassifyModel: "gpt-4o-mini",
		ReplyModel:    "gpt-4o",
	})
}

func TestModelSelection(t *testing.T) {
	adapter := newTestAdapter()

	tests := []struct {
		name string
		task out.TaskType
		want string
	}{
		{"classify uses the small model", out.TaskClassify, "gpt-4o-mini"},
		{"respond uses the reply model", out.TaskRespond, "gpt-4o"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := adapter.modelFor(tt.task); got != tt.want {
				t.Errorf("expected model %q, got %q", tt.want, got)
			}
		})
	}
}

func TestTimeoutDefault(t *testing.T) {
	adapter := newTestAdapter()
	if adapter.timeout != 30*time.Second {
		t.Errorf("expected 30s default timeout, got %v", adapter.timeout)
	}

	adapter = NewCompletionAdapter(&Config{APIKey: "k", Timeout: 5 * time.Second})
	if adapter.timeout != 5*time.Second {
		t.Errorf("expected configured timeout, got %v", adapter.timeout)
	}
}

func TestWrapError(t *testing.T) {
	adapter := newTestAdapter()

	tests := []struct {
		name     string
		err      error
		wantCode string
	}{
		{"open breaker fails fast", gobreaker.ErrOpenState, apperr.CodeCircuitOpen},
		{"half-open overflow fails fast", gobreaker.ErrTooManyRequests, apperr.CodeCircuitOpen},
		{"deadline maps to timeout", fmt.Errorf("call: %w", context.DeadlineExceeded), apperr.CodeTimeout},
		{"anything else is an upstream error", errors.New("connection reset"), apperr.CodeExternalError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := adapter.wrapError(out.TaskClassify, tt.err)
			appErr := apperr.AsAppError(wrapped)
			if appErr.Code != tt.wantCode {
				t.Errorf("expected code %q, got %q", tt.wantCode, appErr.Code)
			}
		})
	}
}

func TestBreakerStartsClosed(t *testing.T) {
	adapter := newTestAdapter()
	if adapter.IsCircuitOpen() {
		t.Error("expected a fresh breaker to be closed")
	}
	if state := adapter.GetCircuitBreakerState(); state != "closed" {
		t.Errorf("expected state %q, got %q", "closed", state)
	}
}
