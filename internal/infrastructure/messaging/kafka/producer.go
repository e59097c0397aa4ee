package kafka

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/turtacn/CarePath-Insight/internal/config"
	"github.com/turtacn/CarePath-Insight/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/CarePath-Insight/pkg/errors"
	"github.com/turtacn/CarePath-Insight/pkg/types/common"
)

// ErrProducerClosed is returned by Publish after Close.
var ErrProducerClosed = errors.New(errors.ErrCodeInternal, "kafka producer is closed")

// writerInterface abstracts kafka.Writer for testing.
type writerInterface interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Producer implements the analysis-service publisher port over kafka-go.
type Producer struct {
	writer writerInterface
	logger logging.Logger
	closed atomic.Bool

	sent   atomic.Int64
	failed atomic.Int64
}

// NewProducer builds a Producer from the platform Kafka configuration.
func NewProducer(cfg config.KafkaConfig, logger logging.Logger) *Producer {
	batchSize := cfg.BatchSize
	if batchSize <= 0 {
		batchSize = 100
	}
	retries := cfg.ProducerRetries
	if retries <= 0 {
		retries = 3
	}
	timeout := time.Duration(cfg.TimeoutMS) * time.Millisecond
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Balancer:     &kafka.Hash{},
		MaxAttempts:  retries,
		BatchSize:    batchSize,
		BatchTimeout: time.Second,
		WriteTimeout: timeout,
		RequiredAcks: kafka.RequireAll,
	}
	return &Producer{writer: writer, logger: logger.Named("kafka")}
}

// newProducerWithWriter injects a writer (for testing).
func newProducerWithWriter(w writerInterface, logger logging.Logger) *Producer {
	return &Producer{writer: w, logger: logger}
}

// Publish sends one message.  Headers are carried over; the topic comes from
// the message itself so one producer serves all platform topics.
func (p *Producer) Publish(ctx context.Context, msg common.ProducerMessage) error {
	if p.closed.Load() {
		return ErrProducerClosed
	}
	if msg.Topic == "" {
		return errors.InvalidParam("message topic is required")
	}

	headers := make([]kafka.Header, 0, len(msg.Headers))
	for k, v := range msg.Headers {
		headers = append(headers, kafka.Header{Key: k, Value: []byte(v)})
	}

	kmsg := kafka.Message{
		Topic:   msg.Topic,
		Key:     msg.Key,
		Value:   msg.Value,
		Headers: headers,
		Time:    msg.Timestamp,
	}

	if err := p.writer.WriteMessages(ctx, kmsg); err != nil {
		p.failed.Add(1)
		p.logger.Error("kafka publish failed",
			logging.Err(err), logging.String("topic", msg.Topic))
		return errors.Wrap(err, errors.ErrCodeAnalysisPublishFailed, "publish message")
	}
	p.sent.Add(1)
	return nil
}

// Stats reports sent/failed counters.
func (p *Producer) Stats() (sent, failed int64) {
	return p.sent.Load(), p.failed.Load()
}

// Close flushes and closes the writer.  Safe to call more than once.
func (p *Producer) Close() error {
	if p.closed.Swap(true) {
		return nil
	}
	return p.writer.Close()
}
