package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/diyabansal-1605/full-stack-project/internal/config"
)

const eventTypeCheckoutOutcome = "checkout_outcome"

// CheckoutOutcome records how one checkout attempt ended.
type CheckoutOutcome struct {
	CheckoutID string    `json:"checkout_id"`
	UserID     string    `json:"user_id"`
	State      string    `json:"state"`
	OrderID    string    `json:"order_id,omitempty"`
	Amount     int64     `json:"amount"`
	Currency   string    `json:"currency,omitempty"`
	At         time.Time `json:"at"`
}

type Publisher interface {
	Publish(ctx context.Context, e CheckoutOutcome) error
	Close() error
}

// New returns a kafka publisher when brokers are configured and a Nop
// otherwise.
func New(cfg config.EventsConfig) Publisher {
	if len(cfg.Brokers) == 0 {
		return Nop{}
	}
	return NewKafkaPublisher(cfg.Topic, cfg.Brokers...)
}

type Nop struct{}

func (Nop) Publish(context.Context, CheckoutOutcome) error { return nil }
func (Nop) Close() error                                   { return nil }

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type KafkaPublisher struct {
	writer messageWriter
}

func NewKafkaPublisher(topic string, brokers ...string) *KafkaPublisher {
	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.LeastBytes{},
		AllowAutoTopicCreation: true,
	}
	return &KafkaPublisher{writer: w}
}

func (p *KafkaPublisher) Publish(ctx context.Context, e CheckoutOutcome) error {
	payload, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("marshal checkout outcome: %w", err)
	}
	msg := kafka.Message{
		Key:   []byte(e.CheckoutID), // checkout id keeps one attempt on one partition
		Value: payload,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(eventTypeCheckoutOutcome)},
			{Key: "state", Value: []byte(e.State)},
		},
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("kafka write failed: %w", err)
	}
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
