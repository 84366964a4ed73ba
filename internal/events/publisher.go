package events

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"chat_storage/internal/config"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Sink delivers one encoded event to a broker and waits for its acknowledgment
type Sink interface {
	Send(ctx context.Context, topic string, key, payload []byte) error
	Close() error
}

// Options tunes the publisher worker pool
type Options struct {
	Workers   int
	QueueSize int
	Timeout   time.Duration
}

type message struct {
	topic   string
	key     []byte
	payload []byte
}

// Publisher sends events off the request path.
// Publish never blocks and never reports failure; a nil *Publisher is a valid no-op.
type Publisher struct {
	sink    Sink
	timeout time.Duration
	queue   chan message
	workers errgroup.Group

	mu     sync.RWMutex
	closed bool
}

// New starts a publisher draining into sink
func New(sink Sink, opts Options) *Publisher {
	if opts.Workers <= 0 {
		opts.Workers = 4
	}
	if opts.QueueSize <= 0 {
		opts.QueueSize = 256
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 60 * time.Second
	}
	p := &Publisher{
		sink:    sink,
		timeout: opts.Timeout,
		queue:   make(chan message, opts.QueueSize),
	}
	for i := 0; i < opts.Workers; i++ {
		p.workers.Go(p.drain)
	}
	return p
}

// Initialize connects to the configured broker.
// It returns nil when eventing is disabled or the broker is unreachable so the service keeps running without it.
func Initialize(ctx context.Context, cfg *config.Config) *Publisher {
	var (
		sink Sink
		err  error
	)
	switch cfg.EventBroker {
	case "", "none":
		logrus.Info("Event publishing disabled")
		return nil
	case "kafka":
		sink, err = NewKafkaSink(ctx, cfg.KafkaBrokers)
	case "redis":
		sink, err = NewRedisSink(ctx, RedisOptions{Addr: cfg.RedisAddr, Password: cfg.RedisPass, DB: cfg.RedisDB})
	default:
		err = fmt.Errorf("unknown event broker %q", cfg.EventBroker)
	}
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"broker": cfg.EventBroker,
			"error":  err.Error(),
		}).Error("Event broker initialization error")
		return nil
	}
	logrus.WithField("broker", cfg.EventBroker).Info("Event publisher initialized")
	return New(sink, Options{Workers: cfg.PublishWorkers, QueueSize: cfg.PublishQueueSize, Timeout: cfg.PublishTimeout})
}

// Publish encodes record as JSON and queues it for topic
func (p *Publisher) Publish(topic, key string, record any) {
	if p == nil {
		return
	}
	payload, err := json.Marshal(record)
	if err != nil {
		logrus.WithFields(logrus.Fields{"topic": topic, "error": err.Error()}).Error("Event encode failed")
		return
	}
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		logrus.WithField("topic", topic).Warn("Event dropped, publisher shut down")
		return
	}
	select {
	case p.queue <- message{topic: topic, key: []byte(key), payload: payload}:
	default:
		logrus.WithField("topic", topic).Warn("Event dropped, publish queue full")
	}
}

// Shutdown stops accepting events, flushes what is queued until ctx expires, and closes the sink
func (p *Publisher) Shutdown(ctx context.Context) error {
	if p == nil {
		return nil
	}
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	close(p.queue)
	p.mu.Unlock()

	done := make(chan struct{})
	go func() {
		_ = p.workers.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
		logrus.Warn("Event publisher shutdown timed out, pending events dropped")
	}
	return p.sink.Close()
}

func (p *Publisher) drain() error {
	for msg := range p.queue {
		p.send(msg)
	}
	return nil
}

// send waits up to the publisher timeout for the broker; failures are logged and discarded
func (p *Publisher) send(msg message) {
	ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
	defer cancel()
	if err := p.sink.Send(ctx, msg.topic, msg.key, msg.payload); err != nil {
		logrus.WithFields(logrus.Fields{
			"topic": msg.topic,
			"key":   string(msg.key),
			"error": err.Error(),
		}).Error("Event send error")
	}
}
