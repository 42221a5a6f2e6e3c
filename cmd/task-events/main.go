// Command task-events follows the task event topic and writes every task
// lifecycle event to the structured log.
package main

import (
	"cmp"
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/taskhub/taskhub-api/internal/config"
	"github.com/taskhub/taskhub-api/internal/domain"
	"github.com/taskhub/taskhub-api/internal/platform/kafka"
	"github.com/taskhub/taskhub-api/internal/platform/logger"
)

func main() {
	cfg, err := config.LoadEventsFrom(".")
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	l, err := logger.Setup(config.ServerConfig{
		LogLevel: cmp.Or(os.Getenv(config.EnvPrefix+"_SERVER_LOG_LEVEL"), "info"),
	})
	if err != nil {
		log.Fatalf("Failed to set up logger: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	consumer := kafka.NewTaskEventConsumer(*cfg, l)
	defer func() {
		if err := consumer.Close(); err != nil {
			l.Error("Failed to leave consumer group", "error", err)
		}
	}()

	l.Info("Task event logger started", "topic", cfg.Topic, "group_id", cfg.GroupID)
	if err := consumer.Run(ctx, logEvent(l)); err != nil {
		l.Error("Task event logger stopped", "error", err)
		os.Exit(1)
	}
	l.Info("Task event logger stopped")
}

func logEvent(l *slog.Logger) kafka.HandlerFunc {
	return func(ctx context.Context, event domain.TaskEvent) error {
		attrs := []any{
			slog.String("event_type", string(event.Type)),
			slog.String("task_id", event.TaskID),
			slog.Time("occurred_at", event.OccurredAt),
		}
		if event.Task != nil {
			attrs = append(attrs,
				slog.String("title", event.Task.Title),
				slog.Bool("completed", event.Task.Completed))
		}
		l.InfoContext(ctx, "task event", attrs...)
		return nil
	}
}
