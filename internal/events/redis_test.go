package events

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisSinkSend(t *testing.T) {
	srv := miniredis.RunT(t)
	ctx := context.Background()

	sink, err := NewRedisSink(ctx, RedisOptions{Addr: srv.Addr()})
	require.NoError(t, err)
	defer sink.Close()

	require.NoError(t, sink.Send(ctx, TopicChatEvents, []byte("1"), []byte(`{"event":"add_chat"}`)))
	require.NoError(t, sink.Send(ctx, TopicChatEvents, []byte("2"), []byte(`{"event":"add_chat"}`)))

	n, err := sink.client.XLen(ctx, TopicChatEvents).Result()
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	msgs, err := sink.client.XRange(ctx, TopicChatEvents, "-", "+").Result()
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, "1", msgs[0].Values["key"])
	assert.Equal(t, `{"event":"add_chat"}`, msgs[0].Values["payload"])
}

func TestRedisSinkRequiresAddr(t *testing.T) {
	_, err := NewRedisSink(context.Background(), RedisOptions{Addr: "  "})
	assert.Error(t, err)
}
