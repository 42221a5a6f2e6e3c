package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/taskhub/taskhub-api/internal/config"
	"github.com/taskhub/taskhub-api/internal/domain"
)

// EventTypeHeader carries the domain.TaskEventType of each message.
const EventTypeHeader = "event_type"

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

// TaskEventPublisher writes task lifecycle events to a Kafka topic, keyed by
// task ID so events of one task stay ordered within a partition.
type TaskEventPublisher struct {
	writer messageWriter
	logger *slog.Logger
}

// NewTaskEventPublisher creates an asynchronous publisher for cfg.Topic.
// Delivery failures are reported through the logger.
func NewTaskEventPublisher(cfg config.EventsConfig, logger *slog.Logger) *TaskEventPublisher {
	if logger == nil {
		logger = slog.Default()
	}
	log := logger.With(slog.String("component", "task_event_publisher"), slog.String("topic", cfg.Topic))

	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafkago.Hash{},
		RequiredAcks: kafkago.RequireOne,
		Async:        true,
		Completion: func(msgs []kafkago.Message, err error) {
			if err != nil {
				log.Warn("failed to deliver task events",
					slog.Int("count", len(msgs)),
					slog.String("error", err.Error()))
			}
		},
	}
	return newTaskEventPublisher(w, log)
}

func newTaskEventPublisher(w messageWriter, logger *slog.Logger) *TaskEventPublisher {
	return &TaskEventPublisher{writer: w, logger: logger}
}

// Publish enqueues event for delivery.
func (p *TaskEventPublisher) Publish(ctx context.Context, event domain.TaskEvent) error {
	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to encode task event: %w", err)
	}

	msg := kafkago.Message{
		Key:   []byte(event.TaskID),
		Value: value,
		Time:  event.OccurredAt,
		Headers: []kafkago.Header{
			{Key: EventTypeHeader, Value: []byte(event.Type)},
		},
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to publish task event: %w", err)
	}

	p.logger.DebugContext(ctx, "task event published",
		slog.String("event_type", string(event.Type)),
		slog.String("task_id", event.TaskID))
	return nil
}

// Close flushes pending messages and releases the writer.
func (p *TaskEventPublisher) Close() error {
	return p.writer.Close()
}
