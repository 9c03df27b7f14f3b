package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Netflix/go-env"
	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/logs"

	"conclave/ai"
	"conclave/contract"
	"conclave/domain/event"
	"conclave/moderation"
	"conclave/projection"
	"conclave/runtime"
	"conclave/runtime/workers"
	"conclave/services"
	"conclave/sink"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
		os.Exit(1)
	}
}

// run initializes all components, manages the engine lifecycle, and
// centralizes error reporting so deferred cleanup always executes.
func run() error {
	// 1. Configuration & Logger
	_ = godotenv.Load()
	var config Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	log := logs.GetLoggerFromString(config.LogLevel)

	// 2. Chat moderation
	censoredChar, err := characterRune(config.CharReplacement)
	if err != nil {
		return err
	}
	moderator, err := moderation.Default(censoredChar)
	if err != nil {
		return fmt.Errorf("moderation setup failed: %w", err)
	}

	// 3. Narration backend
	var narrator ai.Narrator = ai.Disabled{}
	if config.OpenAIKey != "" {
		narrator = ai.NewOpenAINarrator(config.OpenAIKey, config.OpenAIModel, log)
	} else {
		log.Info("OPENAI_API_KEY not set, autonomous chatter uses template lines only")
	}

	// 4. Supervision, registry, event pipeline
	sup := workers.NewSupervisor(log, config.RestartInterval)
	registry := runtime.NewRegistry()
	events := make(chan event.DomainEvent, config.BufferSize)

	timeline := projection.NewTimeline()
	stream := sink.NewStream(config.BufferSize)
	fanout := workers.NewEventFanout(
		log,
		[]contract.EventSink{sink.NewLog(log), timeline, stream},
		registry, events, config.SinkTimeout,
	)
	telemetry := workers.NewTelemetry(log, config.TelemetryInterval, registry.Count)
	sup.Add(fanout, telemetry)

	// 5. Engine & service facade
	machine := runtime.NewMachine(log, registry, narrator, moderator, sup, events, config.Timings())
	service := services.NewSessionService(log, machine, registry)

	// 6. Context & Signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	machine.Start(ctx)
	go sup.Run(ctx)

	// 7. Drive one scripted session end to end
	errChan := make(chan error, 1)
	go func() {
		log.Info("Starting scripted session", "at", time.Now().UTC())
		errChan <- simulate(ctx, log, service, stream, timeline)
	}()

	select {
	case <-ctx.Done():
		log.Info("Shutting down gracefully...")
	case err := <-errChan:
		if err != nil {
			return err
		}
	}

	// 8. Final Cleanup
	sup.Stop()
	log.Info("Program stopped cleanly")

	return nil
}
