// Package queue also contains the background consumer that subscribes to
// registration.committed and triggers a full status re-fetch on every
// delivery.
package queue

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// StartStatusConsumer connects to RabbitMQ, declares the durable
// registration.committed queue, and consumes it until ctx is cancelled.
// Each delivery triggers the provided refresh callback with a bounded
// context; the payload is deliberately ignored because readers replace
// their snapshot wholesale instead of patching it. The function runs a
// reconnect loop with exponential backoff and returns only when ctx is
// done, so the subscription cannot leak past teardown.
func StartStatusConsumer(ctx context.Context, refresh func(context.Context) error) error {
	backoff := time.Second
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		conn, err := amqp.Dial(brokerURL())
		if err != nil {
			log.Printf("status-consumer: failed to dial broker: %v; retrying in %s", err, backoff)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
			}
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second // reset after successful connect

		if err := consumeLoop(ctx, conn, refresh); err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				_ = conn.Close()
				return err
			}
			log.Printf("status-consumer: consume loop ended: %v; reconnecting", err)
			_ = conn.Close()
			time.Sleep(2 * time.Second)
		}
	}
}

func consumeLoop(ctx context.Context, conn *amqp.Connection, refresh func(context.Context) error) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if _, err := ch.QueueDeclare(statusQueueName, true, false, false, false, nil); err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}

	msgs, err := ch.Consume(statusQueueName, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("queue consume: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case d, ok := <-msgs:
			if !ok {
				return errors.New("deliveries channel closed")
			}
			// Any commit changes the aggregate; re-read it whole.
			rctx, cancel := context.WithTimeout(ctx, 5*time.Second)
			if err := refresh(rctx); err != nil {
				log.Printf("status-consumer: refresh failed: %v", err)
			}
			cancel()
			_ = d.Ack(false)
		}
	}
}
