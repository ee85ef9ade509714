// Command exam-events tails the exam event topic and logs each event.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/Rtx09x/Meow-Mocks/internal/config"
	"github.com/Rtx09x/Meow-Mocks/internal/events"
	"github.com/Rtx09x/Meow-Mocks/internal/utils"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		utils.NewLogger("", os.Stderr).LogError(err, "Failed to load configuration")
		os.Exit(1)
	}
	logger := utils.NewLogger(cfg.Environment, os.Stdout).Slog()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	subscriber, err := events.NewKafkaSubscriber(events.SubscriberConfig{
		KafkaBrokers:  cfg.Events.GetKafkaBrokers(),
		ConsumerGroup: getEnv("EXAM_EVENTS_GROUP", "meow-mocks-tail"),
		Logger:        logger,
	})
	if err != nil {
		logger.Error("Failed to create subscriber", "error", err)
		os.Exit(1)
	}
	defer subscriber.Close()

	logger.Info("Listening for exam events", "topic", cfg.Events.ExamTopic, "brokers", cfg.Events.KafkaBrokers)

	err = events.Consume(ctx, subscriber, cfg.Events.ExamTopic, logger, func(_ context.Context, e *events.ExamEvent) error {
		logger.Info("Exam event",
			"event_id", e.ID,
			"event_type", e.Type,
			"session_id", e.SessionID,
			"timestamp", e.Timestamp,
			"data", e.Data)
		return nil
	})
	if err != nil {
		logger.Error("Event consumer stopped", "error", err)
		os.Exit(1)
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
