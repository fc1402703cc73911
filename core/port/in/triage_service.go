package in

import (
	"context"

	"triage_server/core/domain"
)

// TriageService drives the classify/respond/dispatch pipeline.
type TriageService interface {
	// Process runs one email through the pipeline. Failures are
	// absorbed into the result; this never returns an error.
	Process(ctx context.Context, email domain.Email) domain.ProcessingResult

	// ProcessBatch processes emails strictly in input order, one
	// result per email. A single email's failure never aborts the
	// batch.
	ProcessBatch(ctx context.Context, emails []domain.Email) *domain.ProcessingReport
}
