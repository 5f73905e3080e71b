package broker

import (
	"context"
	"errors"
	"log/slog"

	"github.com/segmentio/kafka-go"
)

// KafkaConsumer wraps one group reader for a single topic.
type KafkaConsumer struct {
	reader *kafka.Reader
}

func NewKafkaConsumer(brokers []string, groupID, topic string) *KafkaConsumer {
	return &KafkaConsumer{
		reader: kafka.NewReader(kafka.ReaderConfig{
			Brokers: brokers,
			GroupID: groupID,
			Topic:   topic,
		}),
	}
}

// Consume reads until ctx is cancelled, handing each message value to the
// handler. Handler failures are logged and skipped; a change event that was
// not deliverable is reconciled by clients against the system of record.
func (c *KafkaConsumer) Consume(ctx context.Context, handler func(ctx context.Context, value []byte) error) error {
	defer c.reader.Close()
	for {
		m, err := c.reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if errors.Is(err, context.Canceled) {
				return err
			}
			slog.Warn("kafka read error", slog.Any("error", err))
			continue
		}
		slog.Debug("kafka message consumed",
			slog.String("topic", m.Topic),
			slog.Int("partition", m.Partition),
			slog.Int64("offset", m.Offset))
		if err := handler(ctx, m.Value); err != nil {
			slog.Warn("kafka handler error", slog.String("topic", m.Topic), slog.Int64("offset", m.Offset), slog.Any("error", err))
		}
	}
}
