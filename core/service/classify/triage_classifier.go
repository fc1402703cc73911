// Package classify assigns each email one label from the closed
// category set via a single external completion call.
//
// A failed call and an out-of-vocabulary answer are the same outcome:
// the email is unclassifiable. There is no retry; a single failure is
// final for that email.
package classify

import (
	"context"
	"fmt"
	"strings"
	"time"

	"triage_server/core/domain"
	"triage_server/core/port/out"
	"triage_server/pkg/logger"
)

// Options tune the completion request the classifier issues.
type Options struct {
	Temperature float32
	MaxTokens   int
}

// DefaultOptions favor determinism and leave just enough room for a
// one-word label.
func DefaultOptions() Options {
	return Options{
		Temperature: 0.3,
		MaxTokens:   10,
	}
}

// Classifier labels emails through the completion port.
type Classifier struct {
	completer out.CompletionPort
	opts      Options
}

// NewClassifier creates a classifier. Zero-valued options fall back to
// DefaultOptions.
func NewClassifier(completer out.CompletionPort, opts Options) *Classifier {
	if opts.MaxTokens == 0 {
		opts = DefaultOptions()
	}
	return &Classifier{
		completer: completer,
		opts:      opts,
	}
}

// Classify labels one email. Emails without subject or body are
// rejected before any completion call.
func (c *Classifier) Classify(ctx context.Context, email domain.Email) (domain.Category, error) {
	if !email.HasContent() {
		return "", fmt.Errorf("%w: empty subject or body", domain.ErrClassification)
	}

	start := time.Now()
	raw, err := c.completer.Complete(ctx, out.CompletionRequest{
		Task:        out.TaskClassify,
		Prompt:      buildPrompt(email),
		Temperature: c.opts.Temperature,
		MaxTokens:   c.opts.MaxTokens,
	})
	if err != nil {
		logger.WithEmail(email.ID).WithError(err).WithDuration(time.Since(start)).
			Warn("Classification call failed")
		return "", fmt.Errorf("%w: %w", domain.ErrClassification, err)
	}

	category, ok := domain.ParseCategory(raw)
	if !ok {
		logger.WithEmail(email.ID).WithField("raw_label", strings.TrimSpace(raw)).
			Warn("Classifier returned a label outside the category set")
		return "", fmt.Errorf("%w: unrecognized label %q", domain.ErrClassification, strings.TrimSpace(raw))
	}

	logger.WithEmail(email.ID).WithDuration(time.Since(start)).Debug("Classified as %s", category)
	return category, nil
}

// buildPrompt embeds the category vocabulary, worked examples, and the
// email verbatim. The model must answer with the bare label.
func buildPrompt(email domain.Email) string {
	var b strings.Builder
	b.WriteString(`Classify this email into one of the following categories: complaint, inquiry, feedback, support_request, other.
Focus on the primary intent of the email. If the email is not a complaint, inquiry, feedback or support_request, classify it as other.
Respond with the category name only.

Examples:
- Subject: "Interested in partnership", Body: "Hey, I am interested in a partnership. Let's do it." -> other
- Subject: "Need help with login", Body: "I need your help logging into my account." -> support_request

`)
	fmt.Fprintf(&b, "Subject: %s\nBody: %s", email.Subject, email.Body)
	return b.String()
}
