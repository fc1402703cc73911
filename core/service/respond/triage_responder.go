// Package respond generates the reply text for a classified email.
//
// Each category carries one fixed instruction sentence; the completion
// call gets that sentence plus the email verbatim. No retry.
package respond

import (
	"context"
	"fmt"
	"strings"
	"time"

	"triage_server/core/domain"
	"triage_server/core/port/out"
	"triage_server/pkg/logger"
)

// Options tune the completion request the responder issues.
type Options struct {
	Temperature float32
	MaxTokens   int
}

// DefaultOptions allow some variation and enough room for a short
// paragraph.
func DefaultOptions() Options {
	return Options{
		Temperature: 0.4,
		MaxTokens:   100,
	}
}

// Responder produces reply text through the completion port.
type Responder struct {
	completer out.CompletionPort
	opts      Options
}

// NewResponder creates a responder. Zero-valued options fall back to
// DefaultOptions.
func NewResponder(completer out.CompletionPort, opts Options) *Responder {
	if opts.MaxTokens == 0 {
		opts = DefaultOptions()
	}
	return &Responder{
		completer: completer,
		opts:      opts,
	}
}

// Respond generates the reply for an email whose category the
// classifier already confirmed. The trimmed completion text is
// returned verbatim; an empty completion is a failure.
func (r *Responder) Respond(ctx context.Context, email domain.Email, category domain.Category) (string, error) {
	template, ok := templateFor(category)
	if !ok {
		return "", fmt.Errorf("%w: %q", domain.ErrInvalidCategory, category)
	}

	start := time.Now()
	text, err := r.completer.Complete(ctx, out.CompletionRequest{
		Task:        out.TaskRespond,
		Prompt:      buildPrompt(template, email),
		Temperature: r.opts.Temperature,
		MaxTokens:   r.opts.MaxTokens,
	})
	if err != nil {
		logger.WithEmail(email.ID).WithError(err).WithDuration(time.Since(start)).
			Warn("Reply generation call failed")
		return "", fmt.Errorf("%w: %w", domain.ErrResponseGeneration, err)
	}

	text = strings.TrimSpace(text)
	if text == "" {
		logger.WithEmail(email.ID).Warn("Reply generation returned an empty completion")
		return "", fmt.Errorf("%w: empty completion", domain.ErrResponseGeneration)
	}

	logger.WithEmail(email.ID).WithDuration(time.Since(start)).
		Debug("Generated %s reply (%d chars)", category, len(text))
	return text, nil
}

// templateFor returns the fixed instruction sentence for a category.
// The switch keeps the template set in lockstep with the enumeration.
func templateFor(category domain.Category) (string, bool) {
	switch category {
	case domain.CategoryComplaint:
		return "Write a polite reply for a customer complaint.", true
	case domain.CategoryInquiry:
		return "Write a polite reply for a customer inquiry.", true
	case domain.CategoryFeedback:
		return "Write a polite reply thanking the customer for their feedback.", true
	case domain.CategorySupportRequest:
		return "Write a polite reply for a customer support request.", true
	case domain.CategoryOther:
		return "Write a generic response for an uncategorized email.", true
	}
	return "", false
}

func buildPrompt(template string, email domain.Email) string {
	return fmt.Sprintf("%s\nSubject: %s\nBody: %s", template, email.Subject, email.Body)
}
