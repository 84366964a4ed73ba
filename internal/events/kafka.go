package events

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
)

// KafkaSink writes events to Kafka, waiting for every in-sync replica to acknowledge
type KafkaSink struct {
	writer *kafka.Writer
}

// NewKafkaSink verifies a bootstrap broker answers and builds the writer
func NewKafkaSink(ctx context.Context, brokers []string) (*KafkaSink, error) {
	if len(brokers) == 0 {
		return nil, errors.New("no kafka bootstrap servers configured")
	}
	if err := probeKafka(ctx, brokers); err != nil {
		return nil, err
	}
	return &KafkaSink{writer: &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireAll,
		MaxAttempts:            3,
		BatchTimeout:           10 * time.Millisecond,
		AllowAutoTopicCreation: true,
	}}, nil
}

// Send blocks until the broker acknowledges or ctx expires
func (k *KafkaSink) Send(ctx context.Context, topic string, key, payload []byte) error {
	return k.writer.WriteMessages(ctx, kafka.Message{Topic: topic, Key: key, Value: payload})
}

// Close flushes and releases the writer
func (k *KafkaSink) Close() error {
	return k.writer.Close()
}

func probeKafka(ctx context.Context, brokers []string) error {
	dialer := &kafka.Dialer{Timeout: 5 * time.Second}
	var errs []error
	for _, broker := range brokers {
		conn, err := dialer.DialContext(ctx, "tcp", broker)
		if err == nil {
			return conn.Close()
		}
		errs = append(errs, err)
	}
	return fmt.Errorf("no kafka broker reachable: %w", errors.Join(errs...))
}
