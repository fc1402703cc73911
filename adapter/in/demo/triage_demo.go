// Package demo drives the fixed five-email walkthrough through the
// triage pipeline from the command line.
package demo

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"triage_server/core/domain"
	"triage_server/core/port/in"
)

// SampleEmails is the walkthrough dataset. One email per category.
var SampleEmails = []domain.Email{
	{
		ID:        "001",
		From:      "angry.customer@example.com",
		Subject:   "Broken product received",
		Body:      "I received my order #12345 yesterday but it arrived completely damaged. This is unacceptable and I demand a refund immediately. This is the worst customer service I've experienced.",
		Timestamp: "2024-03-15T10:30:00Z",
	},
	{
		ID:        "002",
		From:      "curious.shopper@example.com",
		Subject:   "Question about product specifications",
		Body:      "Hi, I'm interested in buying your premium package but I couldn't find information about whether it's compatible with Mac OS. Could you please clarify this? Thanks!",
		Timestamp: "2024-03-15T11:45:00Z",
	},
	{
		ID:        "003",
		From:      "happy.user@example.com",
		Subject:   "Amazing customer support",
		Body:      "I just wanted to say thank you for the excellent support I received from Sarah on your team. She went above and beyond to help resolve my issue. Keep up the great work!",
		Timestamp: "2024-03-15T13:15:00Z",
	},
	{
		ID:        "004",
		From:      "tech.user@example.com",
		Subject:   "Need help with installation",
		Body:      "I've been trying to install the software for the past hour but keep getting error code 5123. I've already tried restarting my computer and clearing the cache. Please help!",
		Timestamp: "2024-03-15T14:20:00Z",
	},
	{
		ID:        "005",
		From:      "business.client@example.com",
		Subject:   "Partnership opportunity",
		Body:      "Our company is interested in exploring potential partnership opportunities with your organization. Would it be possible to schedule a call next week to discuss this further?",
		Timestamp: "2024-03-15T15:00:00Z",
	},
}

// Runner processes the sample batch and prints a summary table.
type Runner struct {
	service in.TriageService
	out     io.Writer
}

// NewRunner creates a demo runner writing to stdout.
func NewRunner(service in.TriageService) *Runner {
	return &Runner{
		service: service,
		out:     os.Stdout,
	}
}

// Run processes the sample emails in order. It returns an error when
// any email failed so the caller can exit non-zero.
func (r *Runner) Run(ctx context.Context) error {
	report := r.service.ProcessBatch(ctx, SampleEmails)

	r.printSummary(report)

	if !report.AllSucceeded() {
		return fmt.Errorf("%d of %d emails failed", report.Failed, report.Processed)
	}
	return nil
}

func (r *Runner) printSummary(report *domain.ProcessingReport) {
	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, "Processing Summary:")

	table := tablewriter.NewWriter(r.out)
	table.SetHeader([]string{"Email ID", "Success", "Classification", "Response Sent"})

	for _, result := range report.Results {
		classification := "-"
		if result.Classification != nil {
			classification = string(*result.Classification)
		}
		table.Append([]string{
			result.EmailID,
			strconv.FormatBool(result.Success),
			classification,
			strconv.FormatBool(result.ResponseSent),
		})
	}
	table.Render()
}
