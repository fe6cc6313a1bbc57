package storage

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"tableside/order-svc/internal/domain"

	"github.com/segmentio/kafka-go"
)

type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

const defaultPublishTimeout = 250 * time.Millisecond

// KafkaPublisher keys every order event by order id so one order's events
// land on one partition in commit order.
type KafkaPublisher struct {
	Writer  MessageWriter
	Timeout time.Duration
}

func NewKafkaPublisher(writer MessageWriter, timeout time.Duration) *KafkaPublisher {
	if timeout <= 0 {
		timeout = defaultPublishTimeout
	}
	return &KafkaPublisher{Writer: writer, Timeout: timeout}
}

func (p *KafkaPublisher) PublishOrderEvent(ctx context.Context, msg domain.KafkaMessage) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	// The order is already committed: a caller that went away must not
	// cancel its event, and a slow broker must not hold the caller.
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), p.Timeout)
	defer cancel()

	return p.Writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(strconv.Itoa(msg.OrderID)),
		Value: payload,
		Headers: []kafka.Header{
			{Key: "type", Value: []byte(msg.Type)},
		},
	})
}
