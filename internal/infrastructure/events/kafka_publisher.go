package events

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"storefront/internal/domain/entities"
	"storefront/internal/usecase/interfaces"

	"github.com/segmentio/kafka-go"
)

const publishTimeout = 5 * time.Second

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher writes order events to a topic keyed by order id, so all
// events of one order land on the same partition in order.
//
// The writer is asynchronous: Publish only enqueues, and delivery failures
// are logged from the completion callback. Close flushes pending batches.
type KafkaPublisher struct {
	w messageWriter
}

var _ interfaces.IOrderEventPublisher = (*KafkaPublisher)(nil)

func NewKafkaPublisher(brokers []string, topic string) *KafkaPublisher {
	log.Printf("[order][events] kafka publisher brokers=%v topic=%s", brokers, topic)
	return &KafkaPublisher{w: newKafkaWriter(brokers, topic)}
}

func newKafkaWriter(brokers []string, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
		MaxAttempts:  5,
		WriteTimeout: 5 * time.Second,
		ReadTimeout:  5 * time.Second,
		BatchTimeout: 50 * time.Millisecond,
		Async:        true,
		Completion:   logDelivery,
	}
}

func logDelivery(msgs []kafka.Message, err error) {
	if err == nil {
		return
	}
	for _, m := range msgs {
		log.Printf("[order][events] kafka delivery failed topic=%s order_id=%s err=%v", m.Topic, m.Key, err)
	}
}

func (p *KafkaPublisher) Close() error { return p.w.Close() }

func (p *KafkaPublisher) Publish(ctx context.Context, evt entities.OrderEvent) error {
	b, err := json.Marshal(evt)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()
	return p.w.WriteMessages(ctx, kafka.Message{
		Key:   []byte(evt.OrderID),
		Value: b,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(evt.Type)},
		},
	})
}
