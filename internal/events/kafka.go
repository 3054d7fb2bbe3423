// Package events publishes run audit records to Kafka. Publishing is
// fire-and-forget: a broker outage must never fail a negotiation run.
package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"

	"marketcrew/internal/logging"
	"marketcrew/internal/negotiation"
)

// KafkaRecorder implements negotiation.Recorder over a Kafka topic.
type KafkaRecorder struct {
	writer *kafka.Writer
}

// NewKafkaRecorder builds a recorder publishing to topic on broker.
func NewKafkaRecorder(broker, topic string) *KafkaRecorder {
	return &KafkaRecorder{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(broker),
			Topic:        topic,
			Balancer:     &kafka.LeastBytes{},
			RequiredAcks: kafka.RequireOne,
			Async:        true,
		},
	}
}

// Record publishes one run summary, keyed by run id so retries of the same
// run land on the same partition. Errors are logged, never propagated.
func (r *KafkaRecorder) Record(ctx context.Context, sum negotiation.RunSummary) {
	msg, err := message(sum)
	if err != nil {
		logging.Events("failed to encode run summary %s: %v", sum.RunID, err)
		return
	}
	if err := r.writer.WriteMessages(ctx, msg); err != nil {
		logging.Events("failed to publish run summary %s: %v", sum.RunID, err)
	}
}

// message shapes a run summary into a Kafka message.
func message(sum negotiation.RunSummary) (kafka.Message, error) {
	data, err := json.Marshal(sum)
	if err != nil {
		return kafka.Message{}, err
	}
	return kafka.Message{
		Key:   []byte(sum.RunID),
		Value: data,
		Time:  time.Now(),
	}, nil
}

// Close flushes and closes the underlying writer.
func (r *KafkaRecorder) Close() error { return r.writer.Close() }
