package messaging

import (
	"log"
	"time"

	"github.com/IBM/sarama"
)

const (
	producerConnectAttempts = 10
	producerConnectBackoff  = 3 * time.Second
)

// NewSyncProducer connects to the brokers, retrying while they come up.
func NewSyncProducer(brokers []string, clientID string) (sarama.SyncProducer, error) {
	cfg := sarama.NewConfig()
	cfg.ClientID = clientID
	cfg.Producer.Return.Successes = true
	cfg.Producer.RequiredAcks = sarama.WaitForAll
	cfg.Producer.Idempotent = true
	cfg.Producer.Retry.Max = 5
	cfg.Net.MaxOpenRequests = 1
	cfg.Version = sarama.V2_8_0_0

	var (
		producer sarama.SyncProducer
		err      error
	)
	for i := 1; i <= producerConnectAttempts; i++ {
		producer, err = sarama.NewSyncProducer(brokers, cfg)
		if err == nil {
			log.Printf("[messaging][kafka] producer ready brokers=%v", brokers)
			return producer, nil
		}
		log.Printf("[messaging][kafka] waiting for brokers attempt=%d/%d err=%v", i, producerConnectAttempts, err)
		time.Sleep(producerConnectBackoff)
	}
	return nil, err
}
