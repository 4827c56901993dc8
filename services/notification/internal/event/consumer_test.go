package event

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "github.com/eliezerphilippe0-spec/union-digitale-sub006/pkg/errors"
	pkgkafka "github.com/eliezerphilippe0-spec/union-digitale-sub006/pkg/kafka"
	"github.com/eliezerphilippe0-spec/union-digitale-sub006/services/notification/internal/service"
)

type mockDispatcher struct{ mock.Mock }

func (m *mockDispatcher) SendWhatsApp(ctx context.Context, in service.SendWhatsAppInput) (*service.SendResult, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.SendResult), args.Error(1)
}

func discard() *slog.Logger { return slog.New(slog.NewTextHandler(io.Discard, nil)) }

func orderEvent(t *testing.T, data OrderCreatedData) *pkgkafka.Event {
	t.Helper()
	ev, err := pkgkafka.NewEvent(TopicOrderCreated, data.ID, "order", "order-service", data)
	require.NoError(t, err)
	return ev
}

func sampleOrder() OrderCreatedData {
	return OrderCreatedData{
		ID:            "9b2f6c1e-0d4a-4f7e-8a61-3c2b1d0e9f87",
		UserID:        "user-1",
		TotalPrice:    decimal.RequireFromString("1250.5"),
		CustomerName:  "Marie",
		CustomerPhone: "37001234",
	}
}

func TestHandleOrderCreated_SendsConfirmation(t *testing.T) {
	d := &mockDispatcher{}
	c := NewOrderConsumer(d, discard())

	var got service.SendWhatsAppInput
	d.On("SendWhatsApp", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { got = args.Get(1).(service.SendWhatsAppInput) }).
		Return(&service.SendResult{Success: true}, nil).Once()

	require.NoError(t, c.HandleOrderCreated(context.Background(), orderEvent(t, sampleOrder())))

	assert.Equal(t, "user-1", got.UserID)
	assert.Equal(t, "37001234", got.To)
	assert.Equal(t, TemplateOrderConfirmation, got.Template)
	assert.Equal(t,
		"Bonjou Marie! Kòmand #9b2f6c1e ou an anrejistre. Total: 1250.50 HTG. Mèsi paske ou achte sou Union Digitale.",
		got.Data["message"])
	d.AssertExpectations(t)
}

func TestHandleOrderCreated_NoPhoneSkips(t *testing.T) {
	d := &mockDispatcher{}
	c := NewOrderConsumer(d, discard())
	data := sampleOrder()
	data.CustomerPhone = ""

	require.NoError(t, c.HandleOrderCreated(context.Background(), orderEvent(t, data)))
	d.AssertNotCalled(t, "SendWhatsApp", mock.Anything, mock.Anything)
}

func TestHandleOrderCreated_SendFailureIsNotRetried(t *testing.T) {
	for _, sendErr := range []error{
		apperrors.FailedPrecondition("not configured"),
		apperrors.ResourceExhausted("slow down"),
		apperrors.InternalWithMessage("invalid number", errors.New("21211")),
	} {
		d := &mockDispatcher{}
		c := NewOrderConsumer(d, discard())
		d.On("SendWhatsApp", mock.Anything, mock.Anything).Return(nil, sendErr).Once()

		assert.NoError(t, c.HandleOrderCreated(context.Background(), orderEvent(t, sampleOrder())))
		d.AssertNumberOfCalls(t, "SendWhatsApp", 1)
	}
}

func TestHandleOrderCreated_BadPayload(t *testing.T) {
	c := NewOrderConsumer(&mockDispatcher{}, discard())

	ev := &pkgkafka.Event{EventID: "e-1", EventType: TopicOrderCreated, Data: []byte(`{"id":`)}
	err := c.HandleOrderCreated(context.Background(), ev)
	require.Error(t, err)
	assert.True(t, pkgkafka.IsPermanent(err))

	ev = orderEvent(t, OrderCreatedData{ID: "o-1"})
	err = c.HandleOrderCreated(context.Background(), ev)
	require.Error(t, err)
	assert.True(t, pkgkafka.IsPermanent(err))
}

func TestHandleOrderCreated_DuplicateEventSentOnce(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	store := pkgkafka.NewRedisIdempotencyStore(client, "notification:events", time.Hour)

	d := &mockDispatcher{}
	d.On("SendWhatsApp", mock.Anything, mock.Anything).Return(&service.SendResult{Success: true}, nil)
	handler := pkgkafka.IdempotentHandler(store, NewOrderConsumer(d, discard()).HandleOrderCreated, discard())

	ev := orderEvent(t, sampleOrder())
	require.NoError(t, handler(context.Background(), ev))
	require.NoError(t, handler(context.Background(), ev))

	d.AssertNumberOfCalls(t, "SendWhatsApp", 1)
	assert.True(t, mr.Exists("notification:events:"+ev.EventID))
}
