package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/BloggingApp/feed-service/internal/config"
	"github.com/BloggingApp/feed-service/internal/dto"
	"github.com/segmentio/kafka-go"
)

type Publisher interface {
	PublishPostCreated(ctx context.Context, msg dto.PostCreatedMsg) error
	Close() error
}

type kafkaPublisher struct {
	w *kafka.Writer
}

// NewPublisher writes to Kafka when brokers are configured and discards
// events otherwise.
func NewPublisher(cfg config.KafkaConfig) Publisher {
	if len(cfg.Brokers) == 0 {
		return noopPublisher{}
	}

	return &kafkaPublisher{
		w: &kafka.Writer{
			Addr:         kafka.TCP(cfg.Brokers...),
			Topic:        cfg.PostsTopic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireOne,
			BatchTimeout: 50 * time.Millisecond,
		},
	}
}

func (p *kafkaPublisher) PublishPostCreated(ctx context.Context, msg dto.PostCreatedMsg) error {
	value, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	return p.w.WriteMessages(ctx, kafka.Message{
		Key:   []byte(msg.UserID.String()),
		Value: value,
		Time:  msg.CreatedAt,
	})
}

func (p *kafkaPublisher) Close() error {
	return p.w.Close()
}

type noopPublisher struct{}

func NewNoop() Publisher {
	return noopPublisher{}
}

func (noopPublisher) PublishPostCreated(ctx context.Context, msg dto.PostCreatedMsg) error {
	return nil
}

func (noopPublisher) Close() error {
	return nil
}
