package publish

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"maternal-vitals/internal/config"
	"maternal-vitals/internal/logger"
	"maternal-vitals/internal/model"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"
)

// EventType is sent in the event-type header of every cycle message.
const EventType = "vitals.cycle"

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher writes each simulator cycle as one JSON message.
type KafkaPublisher struct {
	writer messageWriter
	topic  string
	source string
}

func NewKafkaPublisher(cfg config.KafkaConfig) *KafkaPublisher {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafka.LeastBytes{},
		RequiredAcks: kafka.RequireAll,
		Async:        false,
		BatchSize:    1,
		BatchTimeout: 10 * time.Millisecond,
	}
	return &KafkaPublisher{writer: writer, topic: cfg.Topic, source: cfg.Source}
}

func (p *KafkaPublisher) Publish(ctx context.Context, cycle model.Cycle) error {
	msg, err := p.message(cycle)
	if err != nil {
		return err
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to write cycle %d to %s: %w", cycle.Seq, p.topic, err)
	}

	logger.WithFields(logrus.Fields{
		"component": "publisher",
		"seq":       cycle.Seq,
		"topic":     p.topic,
		"key":       string(msg.Key),
	}).Debug("Cycle published")
	return nil
}

func (p *KafkaPublisher) message(cycle model.Cycle) (kafka.Message, error) {
	value, err := json.Marshal(cycle)
	if err != nil {
		return kafka.Message{}, fmt.Errorf("failed to marshal cycle %d: %w", cycle.Seq, err)
	}
	return kafka.Message{
		Key:   []byte(uuid.New().String()),
		Value: value,
		Headers: []kafka.Header{
			{Key: "event-type", Value: []byte(EventType)},
			{Key: "source", Value: []byte(p.source)},
		},
	}, nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
