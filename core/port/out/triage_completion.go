package out

import "context"

// TaskType selects which completion request shape an adapter should
// use. Classification wants determinism and a one-word ceiling; reply
// generation wants a short paragraph.
type TaskType string

const (
	TaskClassify TaskType = "classify"
	TaskRespond  TaskType = "respond"
)

// CompletionRequest is a single-turn user-role instruction for the
// external text-generation service.
type CompletionRequest struct {
	Task        TaskType
	Prompt      string
	Temperature float32
	MaxTokens   int
}

// CompletionPort wraps the external completion service. Implementations
// must surface credential and transport problems as errors, never
// panics, and must not retry on their own.
type CompletionPort interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}
