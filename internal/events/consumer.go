package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-kafka/v2/pkg/kafka"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
)

// ExamEventHandler receives decoded exam events. Returning an error nacks the message.
type ExamEventHandler func(ctx context.Context, event *ExamEvent) error

// SubscriberConfig holds configuration for consuming exam events from Kafka
type SubscriberConfig struct {
	KafkaBrokers  []string
	ConsumerGroup string
	Logger        *slog.Logger
}

// NewKafkaSubscriber creates a Watermill Kafka subscriber for exam events
func NewKafkaSubscriber(config SubscriberConfig) (message.Subscriber, error) {
	subscriber, err := kafka.NewSubscriber(kafka.SubscriberConfig{
		Brokers:               config.KafkaBrokers,
		Unmarshaler:           kafka.DefaultMarshaler{},
		OverwriteSaramaConfig: kafka.DefaultSaramaSubscriberConfig(),
		ConsumerGroup:         config.ConsumerGroup,
	}, watermill.NewSlogLogger(config.Logger))
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka subscriber: %w", err)
	}
	return subscriber, nil
}

type rawExamEvent struct {
	ExamEvent
	Data json.RawMessage `json:"data"`
}

// DecodeMessage rebuilds an ExamEvent from a message produced by NewMessage.
// Data is decoded into the payload type matching the event type.
func DecodeMessage(msg *message.Message) (*ExamEvent, error) {
	var raw rawExamEvent
	if err := json.Unmarshal(msg.Payload, &raw); err != nil {
		return nil, fmt.Errorf("failed to unmarshal exam event: %w", err)
	}

	event := raw.ExamEvent
	var err error
	switch event.Type {
	case EventSessionStarted:
		event.Data, err = decodeData[SessionStartedEvent](raw.Data)
	case EventTimeWarning:
		event.Data, err = decodeData[TimeWarningEvent](raw.Data)
	case EventSubmitted:
		event.Data, err = decodeData[SubmittedEvent](raw.Data)
	default:
		return nil, fmt.Errorf("unknown exam event type %q", event.Type)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal %s payload: %w", event.Type, err)
	}
	return &event, nil
}

func decodeData[T any](data json.RawMessage) (T, error) {
	var out T
	err := json.Unmarshal(data, &out)
	return out, err
}

// Consume routes exam events from topic to handle until ctx is cancelled.
// Undecodable messages are logged and acked so they do not block the partition.
func Consume(ctx context.Context, subscriber message.Subscriber, topic string, logger *slog.Logger, handle ExamEventHandler) error {
	router, err := message.NewRouter(message.RouterConfig{}, watermill.NewSlogLogger(logger))
	if err != nil {
		return fmt.Errorf("failed to create event router: %w", err)
	}
	router.AddMiddleware(middleware.Recoverer)

	router.AddNoPublisherHandler("exam_events", topic, subscriber, func(msg *message.Message) error {
		event, err := DecodeMessage(msg)
		if err != nil {
			logger.Warn("Dropping undecodable exam event", "message_id", msg.UUID, "error", err)
			return nil
		}
		return handle(msg.Context(), event)
	})

	return router.Run(ctx)
}
