package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/taskhub/taskhub-api/internal/config"
	"github.com/taskhub/taskhub-api/internal/domain"
)

type messageReader interface {
	ReadMessage(ctx context.Context) (kafkago.Message, error)
	Close() error
}

// HandlerFunc processes one decoded task event.
type HandlerFunc func(ctx context.Context, event domain.TaskEvent) error

// TaskEventConsumer reads task lifecycle events as a member of a consumer group.
type TaskEventConsumer struct {
	reader messageReader
	logger *slog.Logger
}

// NewTaskEventConsumer joins cfg.GroupID on cfg.Topic.
func NewTaskEventConsumer(cfg config.EventsConfig, logger *slog.Logger) *TaskEventConsumer {
	r := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers: cfg.KafkaBrokers,
		Topic:   cfg.Topic,
		GroupID: cfg.GroupID,
	})
	return newTaskEventConsumer(r, logger)
}

func newTaskEventConsumer(r messageReader, logger *slog.Logger) *TaskEventConsumer {
	if logger == nil {
		logger = slog.Default()
	}
	return &TaskEventConsumer{
		reader: r,
		logger: logger.With(slog.String("component", "task_event_consumer")),
	}
}

// Run passes every event to handle until ctx is cancelled, which is not an
// error. Undecodable messages and handler failures are logged and skipped.
func (c *TaskEventConsumer) Run(ctx context.Context, handle HandlerFunc) error {
	for {
		msg, err := c.reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, context.Canceled) {
				return nil
			}
			return fmt.Errorf("failed to read task event: %w", err)
		}

		var event domain.TaskEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			c.logger.WarnContext(ctx, "skipping undecodable task event",
				slog.Int("partition", msg.Partition),
				slog.Int64("offset", msg.Offset),
				slog.String("error", err.Error()))
			continue
		}

		if err := handle(ctx, event); err != nil {
			c.logger.ErrorContext(ctx, "task event handler failed",
				slog.String("event_type", string(event.Type)),
				slog.String("task_id", event.TaskID),
				slog.String("error", err.Error()))
		}
	}
}

// Close leaves the consumer group.
func (c *TaskEventConsumer) Close() error {
	return c.reader.Close()
}
