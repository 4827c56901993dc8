package kafka

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"
)

// Handler processes one event. Returning an error triggers a retry unless
// the error is marked with Permanent.
type Handler func(ctx context.Context, event *Event) error

type permanentError struct{ err error }

func (e *permanentError) Error() string { return e.err.Error() }
func (e *permanentError) Unwrap() error { return e.err }

// Permanent marks err as not worth retrying: the consumer dead-letters the
// message after the first failure. A nil err stays nil.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return &permanentError{err: err}
}

// IsPermanent reports whether err was marked with Permanent.
func IsPermanent(err error) bool {
	var p *permanentError
	return errors.As(err, &p)
}

// messageReader is the part of *kafka.Reader the consumer uses.
type messageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type ConsumerConfig struct {
	Brokers      []string
	GroupID      string
	Topic        string
	MaxAttempts  int
	RetryBackoff time.Duration
}

func (c *ConsumerConfig) setDefaults() {
	if c.MaxAttempts <= 0 {
		c.MaxAttempts = 3
	}
	if c.RetryBackoff <= 0 {
		c.RetryBackoff = 200 * time.Millisecond
	}
}

// Consumer reads one topic in a consumer group. Offsets are committed only
// after the handler succeeds or the message has been dead-lettered, so a
// crash mid-handler redelivers the message.
type Consumer struct {
	cfg       ConsumerConfig
	reader    messageReader
	handler   Handler
	dlq       DeadLetterPublisher
	logger    *slog.Logger
	closeOnce sync.Once
}

// NewConsumer builds a consumer. dlq may be nil, in which case poison
// messages are logged and skipped.
func NewConsumer(cfg ConsumerConfig, handler Handler, dlq DeadLetterPublisher, logger *slog.Logger) *Consumer {
	cfg.setDefaults()
	r := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  cfg.Brokers,
		GroupID:  cfg.GroupID,
		Topic:    cfg.Topic,
		MinBytes: 1,
		MaxBytes: 10e6,
	})
	return newConsumer(cfg, r, handler, dlq, logger)
}

func newConsumer(cfg ConsumerConfig, r messageReader, h Handler, dlq DeadLetterPublisher, logger *slog.Logger) *Consumer {
	cfg.setDefaults()
	return &Consumer{
		cfg:     cfg,
		reader:  r,
		handler: h,
		dlq:     dlq,
		logger:  logger.With(slog.String("topic", cfg.Topic), slog.String("group", cfg.GroupID)),
	}
}

// Run consumes until ctx is cancelled.
func (c *Consumer) Run(ctx context.Context) error {
	c.logger.Info("consumer started")
	defer c.logger.Info("consumer stopped")

	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, context.Canceled) {
				return nil
			}
			c.logger.Error("fetch message failed", slog.String("error", err.Error()))
			if sleep(ctx, c.cfg.RetryBackoff) != nil {
				return nil
			}
			continue
		}

		if err := c.process(ctx, msg); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			c.logger.Error("message left uncommitted",
				slog.Int("partition", msg.Partition),
				slog.Int64("offset", msg.Offset),
				slog.String("error", err.Error()),
			)
			continue
		}

		if err := c.reader.CommitMessages(ctx, msg); err != nil && ctx.Err() == nil {
			c.logger.Error("commit failed", slog.Int64("offset", msg.Offset), slog.String("error", err.Error()))
		}
	}
}

// process handles msg with retries. A nil return means the offset may be
// committed; an error means it must not be.
func (c *Consumer) process(ctx context.Context, msg kafka.Message) error {
	start := time.Now()
	defer func() {
		consumerDuration.WithLabelValues(c.cfg.Topic, c.cfg.GroupID).Observe(time.Since(start).Seconds())
	}()

	event, err := ParseEvent(msg.Value)
	if err != nil {
		return c.deadLetter(ctx, msg, err)
	}

	var lastErr error
	for attempt := 1; attempt <= c.cfg.MaxAttempts; attempt++ {
		if lastErr = c.handler(ctx, event); lastErr == nil {
			consumerProcessed.WithLabelValues(c.cfg.Topic, c.cfg.GroupID).Inc()
			return nil
		}
		c.logger.WarnContext(ctx, "handler failed",
			slog.String("event_id", event.EventID),
			slog.Int("attempt", attempt),
			slog.String("error", lastErr.Error()),
		)
		if IsPermanent(lastErr) {
			break
		}
		if attempt < c.cfg.MaxAttempts {
			if err := sleep(ctx, time.Duration(attempt)*c.cfg.RetryBackoff); err != nil {
				return err
			}
		}
	}

	consumerFailed.WithLabelValues(c.cfg.Topic, c.cfg.GroupID).Inc()
	return c.deadLetter(ctx, msg, lastErr)
}

func (c *Consumer) deadLetter(ctx context.Context, msg kafka.Message, cause error) error {
	if c.dlq == nil {
		c.logger.ErrorContext(ctx, "dropping poison message",
			slog.Int("partition", msg.Partition),
			slog.Int64("offset", msg.Offset),
			slog.String("error", cause.Error()),
		)
		return nil
	}
	if err := c.dlq.Publish(ctx, msg, cause, c.cfg.GroupID); err != nil {
		return fmt.Errorf("dead-letter offset %d: %w", msg.Offset, err)
	}
	return nil
}

// Close releases the reader; safe to call more than once.
func (c *Consumer) Close() error {
	var err error
	c.closeOnce.Do(func() { err = c.reader.Close() })
	return err
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
