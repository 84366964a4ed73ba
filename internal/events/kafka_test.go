package events

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewKafkaSinkRequiresReachableBroker(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := NewKafkaSink(ctx, nil)
	assert.Error(t, err)

	_, err = NewKafkaSink(ctx, []string{"127.0.0.1:1"})
	assert.ErrorContains(t, err, "no kafka broker reachable")
}
