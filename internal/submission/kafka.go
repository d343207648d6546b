package submission

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rotisserie/eris"
	"github.com/segmentio/kafka-go"
)

// EventType is the header value on published submission events.
const EventType = "submission.assessed"

// MessageWriter is the part of *kafka.Writer the sink uses.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaSink publishes each record as a JSON event keyed by submission ID.
type KafkaSink struct {
	w MessageWriter
}

// NewKafkaSink creates a synchronous writer that waits for all replicas.
func NewKafkaSink(brokers []string, topic string) *KafkaSink {
	return NewKafkaSinkWithWriter(&kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
		BatchSize:    1,
		BatchTimeout: 10 * time.Millisecond,
	})
}

// NewKafkaSinkWithWriter uses w as the transport.
func NewKafkaSinkWithWriter(w MessageWriter) *KafkaSink {
	return &KafkaSink{w: w}
}

func (s *KafkaSink) Name() string { return SinkKafka }

func (s *KafkaSink) Write(ctx context.Context, r *Record) error {
	body, err := json.Marshal(r)
	if err != nil {
		return eris.Wrap(err, "kafka: marshal record")
	}
	msg := kafka.Message{
		Key:   []byte(r.ID),
		Value: body,
		Time:  r.SubmittedAt,
		Headers: []kafka.Header{
			{Key: "event-type", Value: []byte(EventType)},
			{Key: "variant", Value: []byte(r.Variant)},
			{Key: "config-hash", Value: []byte(r.ConfigHash)},
		},
	}
	return eris.Wrap(s.w.WriteMessages(ctx, msg), "kafka: write message")
}

// Close flushes and closes the writer.
func (s *KafkaSink) Close() error {
	return s.w.Close()
}
