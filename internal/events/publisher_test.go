package events

import (
	"context"
	"testing"
	"time"

	"github.com/BloggingApp/feed-service/internal/config"
	"github.com/BloggingApp/feed-service/internal/dto"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestNewPublisher_WithoutBrokersDiscards(t *testing.T) {
	publisher := NewPublisher(config.KafkaConfig{PostsTopic: "post.created"})

	_, isNoop := publisher.(noopPublisher)
	assert.True(t, isNoop)

	err := publisher.PublishPostCreated(context.Background(), dto.PostCreatedMsg{
		PostID:    1,
		UserID:    uuid.New(),
		CreatedAt: time.Now(),
	})
	assert.NoError(t, err)
	assert.NoError(t, publisher.Close())
}

func TestNewPublisher_WithBrokers(t *testing.T) {
	publisher := NewPublisher(config.KafkaConfig{Brokers: []string{"localhost:9092"}, PostsTopic: "post.created"})

	kp, ok := publisher.(*kafkaPublisher)
	if assert.True(t, ok) {
		assert.Equal(t, "post.created", kp.w.Topic)
		assert.NoError(t, kp.Close())
	}
}
