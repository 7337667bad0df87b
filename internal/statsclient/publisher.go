package statsclient

import (
	"context"
	"encoding/json"

	"github.com/segmentio/kafka-go"

	"github.com/sharath018/ewm-backend/internal/stats"
)

// HitPublisher delivers a hit to the stats-service.
type HitPublisher interface {
	Publish(ctx context.Context, hit stats.EndpointHitDto) error
}

// MessageWriter is the part of *kafka.Writer the publisher needs.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

// KafkaPublisher writes hits to the hits topic, keyed by uri.
type KafkaPublisher struct {
	writer MessageWriter
}

func NewKafkaPublisher(writer MessageWriter) *KafkaPublisher {
	return &KafkaPublisher{writer: writer}
}

func (p *KafkaPublisher) Publish(ctx context.Context, hit stats.EndpointHitDto) error {
	value, err := json.Marshal(hit)
	if err != nil {
		return err
	}
	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(hit.URI),
		Value: value,
	})
}
