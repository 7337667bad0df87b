package utils

import (
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/sharath018/ewm-backend/config"
)

// NewHitsWriter returns the producer for endpoint hits, or nil when Kafka is off.
// Writes are async, so delivery failures surface only through the completion log.
func NewHitsWriter(cfg *config.Config, log *zap.Logger) *kafka.Writer {
	if len(cfg.KafkaBrokers) == 0 {
		return nil
	}

	return &kafka.Writer{
		Addr:                   kafka.TCP(cfg.KafkaBrokers...),
		Topic:                  cfg.KafkaHitsTopic,
		Balancer:               &kafka.Hash{},
		BatchTimeout:           50 * time.Millisecond,
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
		Async:                  true,
		Completion:             hitsCompletion(log),
	}
}

func hitsCompletion(log *zap.Logger) func([]kafka.Message, error) {
	return func(msgs []kafka.Message, err error) {
		if err == nil {
			return
		}
		log.Error("❌ hit delivery failed",
			zap.Int("messages", len(msgs)),
			zap.Error(err),
		)
	}
}

// NewHitsReader returns the consumer-group reader for endpoint hits, or nil when Kafka is off.
func NewHitsReader(cfg *config.Config) *kafka.Reader {
	if len(cfg.KafkaBrokers) == 0 {
		return nil
	}

	return kafka.NewReader(kafka.ReaderConfig{
		Brokers:        cfg.KafkaBrokers,
		GroupID:        cfg.KafkaGroupID,
		Topic:          cfg.KafkaHitsTopic,
		MinBytes:       1,
		MaxBytes:       1 << 20,
		CommitInterval: time.Second,
	})
}
