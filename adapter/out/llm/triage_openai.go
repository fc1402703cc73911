package llm

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/sashabaranov/go-openai"
	"github.com/sony/gobreaker"

	"triage_server/core/port/out"
	"triage_server/pkg/apperr"
	"triage_server/pkg/httputil"
	"triage_server/pkg/metrics"
)

// =============================================================================
// OpenAI Completion Adapter
// =============================================================================

// CompletionAdapter implements out.CompletionPort against the OpenAI
// chat completion API.
type CompletionAdapter struct {
	client        *openai.Client
	classifyModel string
	replyModel    string
	timeout       time.Duration
	cb            *gobreaker.CircuitBreaker
}

// Config holds OpenAI adapter configuration.
type Config struct {
	APIKey        string
	ClassifyModel string
	ReplyModel    string
	Timeout       time.Duration
}

// NewCompletionAdapter creates a new OpenAI completion adapter.
func NewCompletionAdapter(cfg *Config) *CompletionAdapter {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	clientCfg.HTTPClient = httputil.CompletionClient()

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	cbSettings := gobreaker.Settings{
		Name:        "openai-api",
		MaxRequests: 3,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.ConsecutiveFailures > 5 ||
				(counts.Requests >= 10 && failureRatio >= 0.6)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Printf("[CircuitBreaker] %s: state changed from %s to %s", name, from.String(), to.String())
		},
	}

	return &CompletionAdapter{
		client:        openai.NewClientWithConfig(clientCfg),
		classifyModel: cfg.ClassifyModel,
		replyModel:    cfg.ReplyModel,
		timeout:       timeout,
		cb:            gobreaker.NewCircuitBreaker(cbSettings),
	}
}

var _ out.CompletionPort = (*CompletionAdapter)(nil)

// Complete issues a single chat completion. No retries: a failed call
// is reported to the caller as-is.
func (a *CompletionAdapter) Complete(ctx context.Context, req out.CompletionRequest) (string, error) {
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}

	start := time.Now()
	content, err := a.executeWithCircuitBreaker(ctx, req)

	status := "ok"
	if err != nil {
		status = "error"
	}
	metrics.RecordCompletionDuration(string(req.Task), status, time.Since(start))

	if err != nil {
		return "", a.wrapError(req.Task, err)
	}
	return content, nil
}

func (a *CompletionAdapter) executeWithCircuitBreaker(ctx context.Context, req out.CompletionRequest) (string, error) {
	result, err := a.cb.Execute(func() (interface{}, error) {
		resp, err := a.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
			Model: a.modelFor(req.Task),
			Messages: []openai.ChatCompletionMessage{
				{Role: openai.ChatMessageRoleUser, Content: req.Prompt},
			},
			Temperature: req.Temperature,
			MaxTokens:   req.MaxTokens,
		})
		if err != nil {
			// Client errors should NOT trip the circuit breaker.
			var apiErr *openai.APIError
			if errors.As(err, &apiErr) {
				switch apiErr.HTTPStatusCode {
				case 400, 401, 403, 404:
					return nil, &nonCircuitError{err: err}
				}
			}
			return nil, err
		}
		if len(resp.Choices) == 0 {
			return nil, &nonCircuitError{err: errors.New("completion returned no choices")}
		}
		return resp.Choices[0].Message.Content, nil
	})

	// Unwrap non-circuit errors
	if nce, ok := err.(*nonCircuitError); ok {
		return "", nce.err
	}
	if err != nil {
		log.Printf("[CompletionAdapter] %s call failed: state=%s, err=%v",
			req.Task, a.cb.State().String(), err)
		return "", err
	}
	return result.(string), nil
}

func (a *CompletionAdapter) modelFor(task out.TaskType) string {
	if task == out.TaskRespond {
		return a.replyModel
	}
	return a.classifyModel
}

func (a *CompletionAdapter) wrapError(task out.TaskType, err error) error {
	switch {
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		return apperr.CircuitOpen("openai")
	case errors.Is(err, context.DeadlineExceeded):
		return apperr.Timeout(fmt.Sprintf("openai %s completion", task))
	default:
		return apperr.ExternalError("openai", err)
	}
}

// nonCircuitError wraps errors that should not trip the circuit breaker.
type nonCircuitError struct {
	err error
}

func (e *nonCircuitError) Error() string {
	return e.err.Error()
}

// GetCircuitBreakerState returns the current state of the circuit breaker.
func (a *CompletionAdapter) GetCircuitBreakerState() string {
	return a.cb.State().String()
}

// IsCircuitOpen returns true if the circuit breaker is open (API calls will fail fast).
func (a *CompletionAdapter) IsCircuitOpen() bool {
	return a.cb.State() == gobreaker.StateOpen
}
