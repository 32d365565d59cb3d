// Package bus is an in-process stand-in for the Kafka topic. It satisfies
// both the producer's writer and the consumer's reader so a single process
// can run the outbox pipeline without a broker.
package bus

import (
	"context"

	"github.com/segmentio/kafka-go"
)

const defaultBuffer = 256

type Bus struct {
	ch chan kafka.Message
}

func New(buffer int) *Bus {
	if buffer <= 0 {
		buffer = defaultBuffer
	}
	return &Bus{ch: make(chan kafka.Message, buffer)}
}

// WriteMessages blocks while the buffer is full.
func (b *Bus) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	for _, m := range msgs {
		select {
		case b.ch <- m:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}

func (b *Bus) FetchMessage(ctx context.Context) (kafka.Message, error) {
	select {
	case m := <-b.ch:
		return m, nil
	case <-ctx.Done():
		return kafka.Message{}, ctx.Err()
	}
}

// CommitMessages is a no-op: a fetched message is already gone from the buffer.
func (b *Bus) CommitMessages(context.Context, ...kafka.Message) error {
	return nil
}
