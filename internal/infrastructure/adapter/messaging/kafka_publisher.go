package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	coreport "github.com/amirhossein-jamali/pool-access-controller/internal/domain/port/core"
	"github.com/amirhossein-jamali/pool-access-controller/internal/domain/port/messaging"
	"github.com/segmentio/kafka-go"
)

// KafkaPublisher implements messaging.Publisher on top of a kafka-go writer.
// Events are keyed by resource key and hashed to partitions, so all changes
// for one slot+date land on one partition in order.
type KafkaPublisher struct {
	writer *kafka.Writer
	logger coreport.Logger
	closed bool
	mu     sync.Mutex
}

// NewKafkaPublisher creates a publisher writing to the given topic
func NewKafkaPublisher(brokers []string, topic string, logger coreport.Logger) (*KafkaPublisher, error) {
	if len(brokers) == 0 {
		return nil, fmt.Errorf("at least one broker is required")
	}
	if topic == "" {
		return nil, fmt.Errorf("topic cannot be empty")
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{}, // hash by key for per-slot ordering
		RequiredAcks: kafka.RequireOne,
		MaxAttempts:  3,
		Logger:       kafka.LoggerFunc(func(msg string, args ...any) {}),
		ErrorLogger: kafka.LoggerFunc(func(msg string, args ...any) {
			logger.Error(fmt.Sprintf("kafka: "+msg, args...), nil)
		}),
	}

	return &KafkaPublisher{
		writer: writer,
		logger: logger,
	}, nil
}

// Publish sends one occupancy change event
func (p *KafkaPublisher) Publish(ctx context.Context, key string, event messaging.OccupancyChanged) error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return fmt.Errorf("publisher is closed")
	}
	p.mu.Unlock()

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to encode occupancy event: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(key),
		Value: payload,
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to publish occupancy event: %w", err)
	}

	p.logger.Debug("Occupancy event published", map[string]any{
		"key":       key,
		"slot_id":   event.SlotID,
		"date":      event.Date,
		"new_count": event.NewCount,
	})
	return nil
}

// Close closes the underlying writer
func (p *KafkaPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil
	}
	p.closed = true
	return p.writer.Close()
}
