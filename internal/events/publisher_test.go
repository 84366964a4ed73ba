package events

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"chat_storage/internal/config"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sent struct {
	topic   string
	key     string
	payload []byte
}

type fakeSink struct {
	mu      sync.Mutex
	sent    []sent
	err     error
	started chan struct{}
	release chan struct{}
	closed  bool
}

func (f *fakeSink) Send(ctx context.Context, topic string, key, payload []byte) error {
	if f.started != nil {
		f.started <- struct{}{}
	}
	if f.release != nil {
		select {
		case <-f.release:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, sent{topic: topic, key: string(key), payload: payload})
	return nil
}

func (f *fakeSink) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

func (f *fakeSink) messages() []sent {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]sent(nil), f.sent...)
}

func TestPublishDeliversEncodedRecord(t *testing.T) {
	sink := &fakeSink{}
	p := New(sink, Options{Workers: 2, QueueSize: 8, Timeout: time.Second})

	p.Publish(TopicUserEvents, "alice", UserCreated("alice"))
	p.Publish(TopicChatEvents, ChatKey(1), ChatAdded(1, "hi"))
	require.NoError(t, p.Shutdown(context.Background()))

	msgs := sink.messages()
	require.Len(t, msgs, 2)
	byTopic := map[string]sent{}
	for _, m := range msgs {
		byTopic[m.topic] = m
	}

	var user map[string]any
	require.NoError(t, json.Unmarshal(byTopic[TopicUserEvents].payload, &user))
	assert.Equal(t, map[string]any{"event": "create_user", "username": "alice"}, user)
	assert.Equal(t, "alice", byTopic[TopicUserEvents].key)

	var chat map[string]any
	require.NoError(t, json.Unmarshal(byTopic[TopicChatEvents].payload, &chat))
	assert.Equal(t, map[string]any{"event": "add_chat", "user_id": float64(1), "prompt": "hi"}, chat)
	assert.Equal(t, "1", byTopic[TopicChatEvents].key)
	assert.True(t, sink.closed)
}

func TestNilPublisherIsNoop(t *testing.T) {
	var p *Publisher
	assert.NotPanics(t, func() { p.Publish(TopicUserEvents, "alice", UserCreated("alice")) })
	assert.NoError(t, p.Shutdown(context.Background()))
}

func TestPublishFailureIsLoggedAndSwallowed(t *testing.T) {
	hook := logtest.NewGlobal()
	defer hook.Reset()

	sink := &fakeSink{err: errors.New("broker down")}
	p := New(sink, Options{Workers: 1, QueueSize: 1, Timeout: time.Second})
	p.Publish(TopicUserEvents, "alice", UserCreated("alice"))
	require.NoError(t, p.Shutdown(context.Background()))

	assert.Empty(t, sink.messages())
	var found bool
	for _, entry := range hook.AllEntries() {
		if entry.Level == logrus.ErrorLevel && entry.Message == "Event send error" {
			found = true
			assert.Equal(t, TopicUserEvents, entry.Data["topic"])
		}
	}
	assert.True(t, found, "expected send error to be logged")
}

func TestPublishWaitIsBounded(t *testing.T) {
	hook := logtest.NewGlobal()
	defer hook.Reset()

	sink := &fakeSink{release: make(chan struct{})}
	p := New(sink, Options{Workers: 1, QueueSize: 1, Timeout: 20 * time.Millisecond})

	start := time.Now()
	p.Publish(TopicChatEvents, "1", ChatAdded(1, "hi"))
	require.NoError(t, p.Shutdown(context.Background()))

	assert.Less(t, time.Since(start), 5*time.Second)
	assert.Empty(t, sink.messages())
	last := hook.LastEntry()
	require.NotNil(t, last)
	assert.Equal(t, context.DeadlineExceeded.Error(), last.Data["error"])
}

func TestPublishDropsWhenQueueFull(t *testing.T) {
	sink := &fakeSink{started: make(chan struct{}, 4), release: make(chan struct{})}
	p := New(sink, Options{Workers: 1, QueueSize: 1, Timeout: 5 * time.Second})

	p.Publish(TopicUserEvents, "a", UserCreated("a"))
	<-sink.started // worker is now busy with the first event
	p.Publish(TopicUserEvents, "b", UserCreated("b"))
	p.Publish(TopicUserEvents, "c", UserCreated("c"))

	close(sink.release)
	require.NoError(t, p.Shutdown(context.Background()))

	msgs := sink.messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, "a", msgs[0].key)
	assert.Equal(t, "b", msgs[1].key)
}

func TestPublishAfterShutdownIsDropped(t *testing.T) {
	sink := &fakeSink{}
	p := New(sink, Options{Workers: 1, QueueSize: 4, Timeout: time.Second})
	require.NoError(t, p.Shutdown(context.Background()))

	assert.NotPanics(t, func() { p.Publish(TopicUserEvents, "late", UserCreated("late")) })
	assert.NoError(t, p.Shutdown(context.Background()))
	assert.Empty(t, sink.messages())
}

func TestInitializeWithoutBrokerReturnsNil(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.Config
	}{
		{name: "disabled", cfg: config.Config{EventBroker: "none"}},
		{name: "kafka without servers", cfg: config.Config{EventBroker: "kafka"}},
		{name: "kafka unreachable", cfg: config.Config{EventBroker: "kafka", KafkaBrokers: []string{"127.0.0.1:1"}}},
		{name: "redis unreachable", cfg: config.Config{EventBroker: "redis", RedisAddr: "127.0.0.1:1"}},
		{name: "unknown broker", cfg: config.Config{EventBroker: "carrier-pigeon"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			assert.Nil(t, Initialize(ctx, &tt.cfg))
		})
	}
}

func TestInitializeRedisPublishesToStream(t *testing.T) {
	srv := miniredis.RunT(t)
	cfg := &config.Config{EventBroker: "redis", RedisAddr: srv.Addr(), PublishWorkers: 1, PublishQueueSize: 4, PublishTimeout: time.Second}

	p := Initialize(context.Background(), cfg)
	require.NotNil(t, p)
	p.Publish(TopicUserEvents, "alice", UserCreated("alice"))
	require.NoError(t, p.Shutdown(context.Background()))

	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	defer client.Close()
	entries, err := client.XRange(context.Background(), TopicUserEvents, "-", "+").Result()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "alice", entries[0].Values["key"])
	assert.Equal(t, `{"event":"create_user","username":"alice"}`, entries[0].Values["payload"])
}
