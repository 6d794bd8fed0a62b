package gateway

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/kyudan/motemovil/internal/pkg/constants"
	"github.com/kyudan/motemovil/internal/pkg/logger"
	"github.com/kyudan/motemovil/internal/pkg/models"
	"github.com/nsqio/go-nsq"
)

// NSQGateway publishes domain events to NSQ topics
type NSQGateway struct {
	producer *nsq.Producer
	logger   *logger.ZapLogger
}

// NewNSQGateway creates a new NSQ events gateway
func NewNSQGateway(address string, zapLogger *logger.ZapLogger) (*NSQGateway, error) {
	config := nsq.NewConfig()
	producer, err := nsq.NewProducer(address, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create NSQ producer: %w", err)
	}

	if err := producer.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping NSQ daemon: %w", err)
	}

	return &NSQGateway{producer: producer, logger: zapLogger}, nil
}

func (g *NSQGateway) publish(topic string, message interface{}) error {
	msgBytes, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	if err := g.producer.Publish(topic, msgBytes); err != nil {
		return fmt.Errorf("failed to publish to %s: %w", topic, err)
	}

	g.logger.Debug("Published event", logger.String("topic", topic))
	return nil
}

// PublishTripEvent publishes a trip lifecycle transition
func (g *NSQGateway) PublishTripEvent(ctx context.Context, event models.TripEvent) error {
	var topic string
	switch event.Status {
	case models.TripStatusFinished:
		topic = constants.TopicTripFinished
	case models.TripStatusCancelled:
		topic = constants.TopicTripCancelled
	default:
		topic = constants.TopicTripCreated
	}
	return g.publish(topic, event)
}

// PublishMatchFound publishes a successful passenger match
func (g *NSQGateway) PublishMatchFound(ctx context.Context, event models.MatchFoundEvent) error {
	return g.publish(constants.TopicMatchFound, event)
}

// Stop gracefully stops the producer
func (g *NSQGateway) Stop() {
	g.producer.Stop()
}

// NoopEventsGateway discards all events. Used when NSQ is not configured.
type NoopEventsGateway struct{}

// NewNoopEventsGateway creates an events gateway that drops everything
func NewNoopEventsGateway() *NoopEventsGateway {
	return &NoopEventsGateway{}
}

// PublishTripEvent drops the event
func (g *NoopEventsGateway) PublishTripEvent(ctx context.Context, event models.TripEvent) error {
	return nil
}

// PublishMatchFound drops the event
func (g *NoopEventsGateway) PublishMatchFound(ctx context.Context, event models.MatchFoundEvent) error {
	return nil
}
