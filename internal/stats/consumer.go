package stats

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// MessageReader is the part of *kafka.Reader the consumer needs.
type MessageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
}

// readRetryDelay is the pause after a failed read before polling the broker again.
var readRetryDelay = 2 * time.Second

// ConsumeHits stores every hit published on the hits topic until ctx is done
// or the reader is closed. Malformed messages are logged and skipped; read
// errors are retried.
func ConsumeHits(ctx context.Context, reader MessageReader, svc *Service, log *zap.Logger) {
	log.Info("hit consumer started")
	for {
		msg, err := reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, context.Canceled) || errors.Is(err, io.EOF) {
				log.Info("hit consumer stopped")
				return
			}
			log.Error("read hit message failed, retrying",
				zap.Duration("retry_in", readRetryDelay),
				zap.Error(err),
			)
			select {
			case <-ctx.Done():
				log.Info("hit consumer stopped")
				return
			case <-time.After(readRetryDelay):
			}
			continue
		}

		var dto EndpointHitDto
		if err := json.Unmarshal(msg.Value, &dto); err != nil {
			log.Warn("invalid hit message",
				zap.Int64("offset", msg.Offset),
				zap.Error(err),
			)
			continue
		}

		if _, err := svc.RecordHit(ctx, dto); err != nil {
			log.Warn("store hit failed",
				zap.String("uri", dto.URI),
				zap.Error(err),
			)
		}
	}
}
