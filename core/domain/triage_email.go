package domain

import "strings"

// Category is the closed set of triage labels an email can receive.
// Only the classifier assigns categories; every other component treats
// the set as fixed.
type Category string

const (
	CategoryComplaint      Category = "complaint"       // Product/service complaints, refund demands
	CategoryInquiry        Category = "inquiry"         // Product questions, compatibility checks
	CategoryFeedback       Category = "feedback"        // Praise or general feedback
	CategorySupportRequest Category = "support_request" // Technical issues needing help
	CategoryOther          Category = "other"           // Anything outside the above
)

// Categories returns every valid label in prompt order.
func Categories() []Category {
	return []Category{
		CategoryComplaint,
		CategoryInquiry,
		CategoryFeedback,
		CategorySupportRequest,
		CategoryOther,
	}
}

// ParseCategory normalizes raw model output (trim + lower-case) and
// accepts it only on an exact match against the label set.
func ParseCategory(raw string) (Category, bool) {
	normalized := Category(strings.ToLower(strings.TrimSpace(raw)))
	switch normalized {
	case CategoryComplaint, CategoryInquiry, CategoryFeedback, CategorySupportRequest, CategoryOther:
		return normalized, true
	}
	return "", false
}

// IsValid reports whether c is a member of the label set.
func (c Category) IsValid() bool {
	_, ok := ParseCategory(string(c))
	return ok
}

func (c Category) String() string {
	return string(c)
}

// Email is one inbound customer email. Immutable once read; the
// pipeline never mutates it.
type Email struct {
	ID        string `json:"id"`
	From      string `json:"from"`
	Subject   string `json:"subject"`
	Body      string `json:"body"`
	Timestamp string `json:"timestamp,omitempty"` // ISO-8601, informational only
}

// HasContent reports whether the email carries both a subject and a
// body. The classifier refuses emails without content rather than
// burning a completion call on them.
func (e Email) HasContent() bool {
	return strings.TrimSpace(e.Subject) != "" && strings.TrimSpace(e.Body) != ""
}
