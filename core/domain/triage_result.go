package domain

import (
	"errors"

	"github.com/google/uuid"
)

// FailureKind identifies which pipeline step failed for an email.
// Empty means no failure.
type FailureKind string

const (
	FailureNone               FailureKind = ""
	FailureMissingIdentifier  FailureKind = "missing_identifier"
	FailureClassification     FailureKind = "classification_failed"
	FailureInvalidCategory    FailureKind = "invalid_category"
	FailureResponseGeneration FailureKind = "response_generation_failed"
	FailureDispatch           FailureKind = "dispatch_failed"
)

// Sentinel errors for the pipeline failure taxonomy. Services wrap
// these so the orchestrator can map any step error back to its kind.
var (
	ErrMissingIdentifier  = errors.New("email has no identifier")
	ErrClassification     = errors.New("classification failed")
	ErrInvalidCategory    = errors.New("category outside the label set")
	ErrResponseGeneration = errors.New("response generation failed")
	ErrDispatch           = errors.New("dispatch failed")
)

// KindForError maps a pipeline step error to its FailureKind.
// Unrecognized errors fall back to FailureDispatch since dispatch is
// the only step that can surface foreign sink errors.
func KindForError(err error) FailureKind {
	switch {
	case err == nil:
		return FailureNone
	case errors.Is(err, ErrMissingIdentifier):
		return FailureMissingIdentifier
	case errors.Is(err, ErrClassification):
		return FailureClassification
	case errors.Is(err, ErrInvalidCategory):
		return FailureInvalidCategory
	case errors.Is(err, ErrResponseGeneration):
		return FailureResponseGeneration
	default:
		return FailureDispatch
	}
}

// ProcessingResult is the per-email outcome record. Created fresh for
// each email, populated once, never reused.
//
// Invariants:
//   - Success is true only if classification, response generation, and
//     dispatch all completed.
//   - Classification is non-nil if and only if classification
//     succeeded, regardless of later failures.
type ProcessingResult struct {
	EmailID        string      `json:"email_id"`
	Success        bool        `json:"success"`
	Classification *Category   `json:"classification,omitempty"`
	ResponseSent   bool        `json:"response_sent"`
	FailureKind    FailureKind `json:"failure_kind,omitempty"`
}

// SuccessResult builds the full-success record for an email.
func SuccessResult(emailID string, category Category) ProcessingResult {
	return ProcessingResult{
		EmailID:        emailID,
		Success:        true,
		Classification: &category,
		ResponseSent:   true,
	}
}

// FailureResult builds a failed record. category may be nil when the
// failure happened before classification completed.
func FailureResult(emailID string, kind FailureKind, category *Category) ProcessingResult {
	return ProcessingResult{
		EmailID:        emailID,
		Success:        false,
		Classification: category,
		ResponseSent:   false,
		FailureKind:    kind,
	}
}

// ProcessingReport aggregates one ProcessingResult per input email,
// preserving input order.
type ProcessingReport struct {
	BatchID   string             `json:"batch_id"`
	Results   []ProcessingResult `json:"results"`
	Processed int                `json:"processed"`
	Succeeded int                `json:"succeeded"`
	Failed    int                `json:"failed"`
}

// NewProcessingReport allocates a report for a batch of the given size.
func NewProcessingReport(size int) *ProcessingReport {
	return &ProcessingReport{
		BatchID: uuid.NewString(),
		Results: make([]ProcessingResult, 0, size),
	}
}

// Append records one result and updates the counters.
func (r *ProcessingReport) Append(result ProcessingResult) {
	r.Results = append(r.Results, result)
	r.Processed++
	if result.Success {
		r.Succeeded++
	} else {
		r.Failed++
	}
}

// AllSucceeded reports whether every processed email succeeded.
func (r *ProcessingReport) AllSucceeded() bool {
	return r.Processed > 0 && r.Failed == 0
}
