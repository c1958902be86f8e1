package repository

import (
	"context"
	"fmt"

	"FinCompare/internal/domain/models"
	"FinCompare/internal/domain/repository"
)

// messagePublisher is the subset of *pkgkafka.Producer used here.
type messagePublisher interface {
	Publish(ctx context.Context, topic string, key []byte, value interface{}) error
	Close() error
}

// KafkaPublisher implements EventPublisher for Kafka.
type KafkaPublisher struct {
	producer messagePublisher
	topic    string
}

// NewKafkaPublisher creates Kafka publisher.
func NewKafkaPublisher(producer messagePublisher, topic string) repository.EventPublisher {
	return &KafkaPublisher{producer: producer, topic: topic}
}

// PublishComparison keys events by the symbol pair so a pair's history stays
// on one partition.
func (p *KafkaPublisher) PublishComparison(ctx context.Context, ev *models.ComparisonEvent) error {
	if ev == nil {
		return nil
	}
	if err := p.producer.Publish(ctx, p.topic, eventKey(ev), ev); err != nil {
		return fmt.Errorf("publish comparison %s: %w", ev.ID, err)
	}
	return nil
}

func (p *KafkaPublisher) Close() error {
	if p.producer != nil {
		return p.producer.Close()
	}
	return nil
}

func eventKey(ev *models.ComparisonEvent) []byte {
	return []byte(ev.SymbolA + "|" + ev.SymbolB)
}

// NopPublisher drops events. Used when Kafka is disabled.
type NopPublisher struct{}

func (NopPublisher) PublishComparison(context.Context, *models.ComparisonEvent) error { return nil }
func (NopPublisher) Close() error                                                   { return nil }
