package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"donation_platform/internal/usecase/interfaces"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
)

func TestKafkaPublisher_Publish(t *testing.T) {
	t.Run("sends envelope keyed by aggregate", func(t *testing.T) {
		cfg := mocks.NewTestConfig()
		cfg.Producer.Return.Successes = true
		producer := mocks.NewSyncProducer(t, cfg)

		producer.ExpectSendMessageWithMessageCheckerFunctionAndSucceed(func(msg *sarama.ProducerMessage) error {
			if msg.Topic != interfaces.TopicDonationRecorded {
				return errors.New("unexpected topic " + msg.Topic)
			}
			key, _ := msg.Key.Encode()
			if string(key) != "camp-1" {
				return errors.New("unexpected key " + string(key))
			}
			raw, _ := msg.Value.Encode()
			var env Envelope
			if err := json.Unmarshal(raw, &env); err != nil {
				return err
			}
			if env.Type != interfaces.TopicDonationRecorded || string(env.Payload) != `{"payment_id":"pay-1"}` {
				return errors.New("unexpected envelope " + string(raw))
			}
			return nil
		})

		pub := NewKafkaPublisher(producer)
		err := pub.Publish(context.Background(), interfaces.TopicDonationRecorded, "camp-1", map[string]string{"payment_id": "pay-1"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := pub.Close(); err != nil {
			t.Fatalf("close: %v", err)
		}
	})

	t.Run("broker error is returned", func(t *testing.T) {
		cfg := mocks.NewTestConfig()
		cfg.Producer.Return.Successes = true
		producer := mocks.NewSyncProducer(t, cfg)
		producer.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

		pub := NewKafkaPublisher(producer)
		err := pub.Publish(context.Background(), interfaces.TopicDonationRefunded, "camp-1", struct{}{})
		if !errors.Is(err, sarama.ErrOutOfBrokers) {
			t.Fatalf("expected ErrOutOfBrokers, got %v", err)
		}
		_ = pub.Close()
	})

	t.Run("canceled context skips the broker", func(t *testing.T) {
		producer := mocks.NewSyncProducer(t, mocks.NewTestConfig())
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		pub := NewKafkaPublisher(producer)
		if err := pub.Publish(ctx, interfaces.TopicReconciliationQueued, "pay-1", nil); !errors.Is(err, context.Canceled) {
			t.Fatalf("expected context.Canceled, got %v", err)
		}
		_ = pub.Close()
	})
}
