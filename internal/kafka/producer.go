package kafka

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/segmentio/kafka-go"

	"ms-booking/internal/models"
)

// Producer streams booking lifecycle events, one writer per topic.
type Producer struct {
	createdWriter   *kafka.Writer
	cancelledWriter *kafka.Writer
}

func NewProducer(brokers []string, createdTopic, cancelledTopic string) *Producer {
	return &Producer{
		createdWriter: kafka.NewWriter(kafka.WriterConfig{
			Brokers: brokers,
			Topic:   createdTopic,
		}),
		cancelledWriter: kafka.NewWriter(kafka.WriterConfig{
			Brokers: brokers,
			Topic:   cancelledTopic,
		}),
	}
}

func (p *Producer) publish(writer *kafka.Writer, booking models.Booking) error {
	msgBytes, err := json.Marshal(booking)
	if err != nil {
		return fmt.Errorf("failed to encode booking %s: %w", booking.ID, err)
	}

	return writer.WriteMessages(context.Background(),
		kafka.Message{
			Key:   []byte(booking.ID),
			Value: msgBytes,
		},
	)
}

func (p *Producer) PublishBookingCreated(booking models.Booking) error {
	return p.publish(p.createdWriter, booking)
}

func (p *Producer) PublishBookingCancelled(booking models.Booking) error {
	return p.publish(p.cancelledWriter, booking)
}

func (p *Producer) Close() error {
	if err := p.createdWriter.Close(); err != nil {
		return err
	}
	return p.cancelledWriter.Close()
}

// NoopProducer satisfies the ledger's publisher when Kafka is disabled.
type NoopProducer struct{}

func (NoopProducer) PublishBookingCreated(models.Booking) error   { return nil }
func (NoopProducer) PublishBookingCancelled(models.Booking) error { return nil }
