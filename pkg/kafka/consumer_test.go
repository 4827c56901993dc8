package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func eventMessage(t *testing.T, offset int64) kafka.Message {
	t.Helper()
	ev, err := NewEvent("payment.succeeded", "o-1", "order", "payment-service", map[string]string{"order_id": "o-1"})
	require.NoError(t, err)
	raw, err := json.Marshal(ev)
	require.NoError(t, err)
	return kafka.Message{Topic: "ecommerce.payment.succeeded", Offset: offset, Value: raw}
}

func testConsumerConfig() ConsumerConfig {
	return ConsumerConfig{Topic: "ecommerce.payment.succeeded", GroupID: "commission-service", MaxAttempts: 3, RetryBackoff: time.Millisecond}
}

func runUntilDrained(t *testing.T, c *Consumer, r *fakeReader, want int) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- c.Run(ctx) }()

	require.Eventually(t, func() bool { return len(r.commits()) >= want }, time.Second, 5*time.Millisecond)
	cancel()
	require.NoError(t, <-done)
}

func TestConsumer_CommitsAfterSuccess(t *testing.T) {
	r := &fakeReader{queue: []kafka.Message{eventMessage(t, 1), eventMessage(t, 2)}}
	var handled atomic.Int32
	c := newConsumer(testConsumerConfig(), r, func(context.Context, *Event) error {
		handled.Add(1)
		return nil
	}, nil, testLogger())

	runUntilDrained(t, c, r, 2)

	assert.Equal(t, int32(2), handled.Load())
	assert.Len(t, r.commits(), 2)
}

func TestConsumer_RetriesThenSucceeds(t *testing.T) {
	r := &fakeReader{queue: []kafka.Message{eventMessage(t, 1)}}
	var calls atomic.Int32
	c := newConsumer(testConsumerConfig(), r, func(context.Context, *Event) error {
		if calls.Add(1) < 3 {
			return errors.New("transient")
		}
		return nil
	}, &fakeDLQ{}, testLogger())

	runUntilDrained(t, c, r, 1)

	assert.Equal(t, int32(3), calls.Load())
}

func TestConsumer_DeadLettersAfterMaxAttempts(t *testing.T) {
	r := &fakeReader{queue: []kafka.Message{eventMessage(t, 7)}}
	dlq := &fakeDLQ{}
	c := newConsumer(testConsumerConfig(), r, func(context.Context, *Event) error {
		return errors.New("constraint violation")
	}, dlq, testLogger())

	runUntilDrained(t, c, r, 1)

	require.Len(t, dlq.msgs, 1)
	assert.Equal(t, int64(7), dlq.msgs[0].Offset)
	assert.EqualError(t, dlq.causes[0], "constraint violation")
}

func TestConsumer_PermanentErrorSkipsRetries(t *testing.T) {
	r := &fakeReader{queue: []kafka.Message{eventMessage(t, 4)}}
	dlq := &fakeDLQ{}
	var calls atomic.Int32
	cause := errors.New("negative amount")
	c := newConsumer(testConsumerConfig(), r, func(context.Context, *Event) error {
		calls.Add(1)
		return Permanent(cause)
	}, dlq, testLogger())

	runUntilDrained(t, c, r, 1)

	assert.Equal(t, int32(1), calls.Load())
	require.Len(t, dlq.msgs, 1)
	assert.ErrorIs(t, dlq.causes[0], cause)
}

func TestPermanent(t *testing.T) {
	cause := errors.New("bad payload")
	wrapped := fmt.Errorf("record: %w", Permanent(cause))

	assert.True(t, IsPermanent(wrapped))
	assert.ErrorIs(t, wrapped, cause)
	assert.False(t, IsPermanent(cause))
	assert.NoError(t, Permanent(nil))
}

func TestConsumer_MalformedMessageGoesToDLQ(t *testing.T) {
	r := &fakeReader{queue: []kafka.Message{{Topic: "t", Offset: 3, Value: []byte("not json")}}}
	dlq := &fakeDLQ{}
	called := false
	c := newConsumer(testConsumerConfig(), r, func(context.Context, *Event) error {
		called = true
		return nil
	}, dlq, testLogger())

	runUntilDrained(t, c, r, 1)

	assert.False(t, called)
	assert.Len(t, dlq.msgs, 1)
}

func TestConsumer_DLQFailureLeavesOffsetUncommitted(t *testing.T) {
	r := &fakeReader{}
	c := newConsumer(testConsumerConfig(), r, func(context.Context, *Event) error {
		return errors.New("always")
	}, &fakeDLQ{err: errors.New("dlq down")}, testLogger())

	err := c.process(context.Background(), eventMessage(t, 9))

	assert.Error(t, err)
	assert.Empty(t, r.commits())
}

func TestConsumer_CloseIsIdempotent(t *testing.T) {
	r := &fakeReader{}
	c := newConsumer(testConsumerConfig(), r, nil, nil, testLogger())

	require.NoError(t, c.Close())
	require.NoError(t, c.Close())
	assert.Equal(t, 1, r.closed)
}
