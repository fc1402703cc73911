// Package pipeline orchestrates the per-email triage sequence and the
// batch loop around it.
//
// Every step failure is absorbed into the ProcessingResult; nothing in
// this package returns an error to its caller. One bad email never
// aborts a batch.
package pipeline

import (
	"context"
	"strings"
	"time"

	"triage_server/core/domain"
	"triage_server/core/port/in"
	"triage_server/pkg/logger"
	"triage_server/pkg/metrics"
)

// EmailClassifier labels an email.
type EmailClassifier interface {
	Classify(ctx context.Context, email domain.Email) (domain.Category, error)
}

// ReplyGenerator produces the reply text for a classified email.
type ReplyGenerator interface {
	Respond(ctx context.Context, email domain.Email, category domain.Category) (string, error)
}

// ActionDispatcher runs the category's sink-call sequence.
type ActionDispatcher interface {
	Dispatch(ctx context.Context, email domain.Email, category domain.Category, response string) error
}

// Service sequences validate, classify, respond, and dispatch for one
// email and accumulates batch reports.
type Service struct {
	classifier EmailClassifier
	responder  ReplyGenerator
	dispatcher ActionDispatcher
}

var _ in.TriageService = (*Service)(nil)

// NewService creates the pipeline over its three stages.
func NewService(classifier EmailClassifier, responder ReplyGenerator, dispatcher ActionDispatcher) *Service {
	return &Service{
		classifier: classifier,
		responder:  responder,
		dispatcher: dispatcher,
	}
}

// Process runs one email through the pipeline. All failures are
// absorbed into the result.
func (s *Service) Process(ctx context.Context, email domain.Email) domain.ProcessingResult {
	result := s.process(ctx, email)

	if result.Success {
		metrics.RecordEmailProcessed("success", string(*result.Classification))
	} else {
		category := "none"
		if result.Classification != nil {
			category = string(*result.Classification)
		}
		metrics.RecordEmailProcessed("failed", category)
		metrics.RecordFailure(string(result.FailureKind))
	}
	return result
}

func (s *Service) process(ctx context.Context, email domain.Email) domain.ProcessingResult {
	if strings.TrimSpace(email.ID) == "" {
		logger.Warn("[Pipeline] Dropping email without identifier")
		return domain.FailureResult("", domain.FailureMissingIdentifier, nil)
	}

	log := logger.WithEmail(email.ID)

	category, err := s.classifier.Classify(ctx, email)
	if err != nil {
		log.WithError(err).Warn("[Pipeline] Classification failed")
		return domain.FailureResult(email.ID, domain.FailureClassification, nil)
	}

	response, err := s.responder.Respond(ctx, email, category)
	if err != nil {
		// Category is retained: classification did succeed.
		log.WithError(err).Warn("[Pipeline] Reply generation failed")
		return domain.FailureResult(email.ID, domain.FailureResponseGeneration, &category)
	}

	if err := s.dispatcher.Dispatch(ctx, email, category, response); err != nil {
		log.WithError(err).Warn("[Pipeline] Dispatch failed")
		return domain.FailureResult(email.ID, domain.KindForError(err), &category)
	}

	log.Info("[Pipeline] Email processed as %s", category)
	return domain.SuccessResult(email.ID, category)
}

// ProcessBatch processes emails strictly in input order. Each email
// runs to completion before the next begins.
func (s *Service) ProcessBatch(ctx context.Context, emails []domain.Email) *domain.ProcessingReport {
	start := time.Now()
	report := domain.NewProcessingReport(len(emails))

	logger.Info("[Pipeline] Processing batch %s with %d emails", report.BatchID, len(emails))

	for _, email := range emails {
		report.Append(s.Process(ctx, email))
	}

	metrics.RecordBatch(time.Since(start), report.Processed)
	logger.WithDuration(time.Since(start)).Info("[Pipeline] Batch %s finished: %d succeeded, %d failed",
		report.BatchID, report.Succeeded, report.Failed)
	return report
}
