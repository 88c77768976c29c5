// Package events publishes checkout events to Kafka.
package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"triphaven/internal/domain"
)

// DefaultPaymentsTopic is the topic used when none is configured.
const DefaultPaymentsTopic = "payments.recorded"

// messageWriter is satisfied by *kafka.Writer.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// PaymentEventProducer publishes payment events.
type PaymentEventProducer struct {
	writer messageWriter
	topic  string
	logger *zap.Logger
}

// NewPaymentEventProducer creates a producer writing to topic on brokers.
func NewPaymentEventProducer(brokers []string, topic string, logger *zap.Logger) *PaymentEventProducer {
	if topic == "" {
		topic = DefaultPaymentsTopic
	}

	w := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		RequiredAcks: kafka.RequireOne,
		WriteTimeout: 5 * time.Second,
		// Checkout has already committed; delivery happens off the response path.
		Async: true,
		Completion: func(messages []kafka.Message, err error) {
			if err != nil {
				logger.Error("failed to deliver payment events",
					zap.String("topic", topic),
					zap.Int("count", len(messages)),
					zap.Error(err),
				)
			}
		},
	}
	logger.Info("kafka producer initialized", zap.String("topic", topic), zap.Strings("brokers", brokers))

	return &PaymentEventProducer{writer: w, topic: topic, logger: logger}
}

// PublishPaymentRecorded writes event keyed by its payment ID.
func (p *PaymentEventProducer) PublishPaymentRecorded(ctx context.Context, event domain.PaymentRecordedEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	msg := kafka.Message{
		Key:   []byte(event.PaymentID),
		Value: data,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte("payment.recorded")},
		},
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return err
	}

	p.logger.Debug("payment event published",
		zap.String("topic", p.topic),
		zap.String("payment_id", event.PaymentID),
	)
	return nil
}

// Close flushes and closes the underlying writer.
func (p *PaymentEventProducer) Close() error {
	return p.writer.Close()
}
