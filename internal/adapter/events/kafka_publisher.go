package events

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"donation_platform/internal/usecase/interfaces"

	"github.com/IBM/sarama"
)

// Envelope wraps every event so consumers can route on type without decoding the payload.
type Envelope struct {
	Type       string          `json:"type"`
	OccurredAt time.Time       `json:"occurred_at"`
	Payload    json.RawMessage `json:"payload"`
}

// KafkaPublisher sends events through a sarama SyncProducer. The message key is the
// campaign or payment id, so events of one aggregate stay ordered within a partition.
type KafkaPublisher struct {
	producer sarama.SyncProducer
}

var _ interfaces.IEventPublisher = (*KafkaPublisher)(nil)

func NewKafkaPublisher(producer sarama.SyncProducer) *KafkaPublisher {
	return &KafkaPublisher{producer: producer}
}

func (p *KafkaPublisher) Publish(ctx context.Context, topic, key string, payload any) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	data, err := json.Marshal(Envelope{Type: topic, OccurredAt: time.Now().UTC(), Payload: body})
	if err != nil {
		return err
	}

	msg := &sarama.ProducerMessage{
		Topic: topic,
		Key:   sarama.StringEncoder(key),
		Value: sarama.ByteEncoder(data),
	}
	partition, offset, err := p.producer.SendMessage(msg)
	if err != nil {
		log.Printf("[events][kafka] send failed topic=%s key=%s err=%v", topic, key, err)
		return err
	}

	log.Printf("[events][kafka] published topic=%s key=%s partition=%d offset=%d", topic, key, partition, offset)
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.producer.Close()
}
