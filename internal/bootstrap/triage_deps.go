package bootstrap

import (
	"os"
	"time"

	"triage_server/adapter/out/llm"
	"triage_server/adapter/out/sink"
	"triage_server/config"
	"triage_server/core/port/in"
	"triage_server/core/service/classify"
	"triage_server/core/service/dispatch"
	"triage_server/core/service/pipeline"
	"triage_server/core/service/respond"
	"triage_server/pkg/apperr"

	"github.com/rs/zerolog"
)

// Dependencies holds the wired adapters and services.
type Dependencies struct {
	Config *config.Config

	// Outbound adapters
	Completion *llm.CompletionAdapter
	Notifier   *sink.NotificationAdapter
	Ticketer   *sink.TicketingAdapter

	// Services
	Classifier    *classify.Classifier
	Responder     *respond.Responder
	Dispatcher    *dispatch.Dispatcher
	TriageService in.TriageService
}

// NewDependencies builds the dependency graph. The returned cleanup
// releases resources in reverse construction order.
func NewDependencies(cfg *config.Config) (*Dependencies, func(), error) {
	if cfg.OpenAIAPIKey == "" {
		return nil, nil, apperr.ConfigError("OPENAI_API_KEY is not set")
	}

	deps := &Dependencies{Config: cfg}
	var cleanups []func()

	// OpenAI completion adapter
	deps.Completion = llm.NewCompletionAdapter(&llm.Config{
		APIKey:        cfg.OpenAIAPIKey,
		ClassifyModel: cfg.ClassifyModel,
		ReplyModel:    cfg.ReplyModel,
		Timeout:       time.Duration(cfg.LLMTimeoutSec) * time.Second,
	})

	// Mocked delivery sinks
	zlog := zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	deps.Notifier = sink.NewNotificationAdapter(zlog)
	deps.Ticketer = sink.NewTicketingAdapter(zlog)

	// Services
	deps.Classifier = classify.NewClassifier(deps.Completion, classify.Options{
		Temperature: float32(cfg.ClassifyTemperature),
		MaxTokens:   cfg.ClassifyMaxTokens,
	})
	deps.Responder = respond.NewResponder(deps.Completion, respond.Options{
		Temperature: float32(cfg.ReplyTemperature),
		MaxTokens:   cfg.ReplyMaxTokens,
	})
	deps.Dispatcher = dispatch.NewDispatcher(deps.Notifier, deps.Ticketer)
	deps.TriageService = pipeline.NewService(deps.Classifier, deps.Responder, deps.Dispatcher)

	cleanup := func() {
		for i := len(cleanups) - 1; i >= 0; i-- {
			cleanups[i]()
		}
	}

	return deps, cleanup, nil
}
