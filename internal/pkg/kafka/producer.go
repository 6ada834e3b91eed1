package kafka

import (
	"Patchouli/internal/api/config"
	"context"
	log "log/slog"
	"strconv"
	"time"

	"github.com/IBM/sarama"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
)

// EventProducer 帖子生命周期事件生产者
type EventProducer interface {
	EmitPostEvent(ctx context.Context, event *PostEvent) error
	Close() error
}

type eventProducerImpl struct {
	producer sarama.SyncProducer
	topic    string
}

func NewEventProducer(cfg *config.Config) (EventProducer, error) {
	saramaCfg := newSaramaConfig(cfg.Kafka)

	producer, err := sarama.NewSyncProducer(cfg.Kafka.Brokers, saramaCfg)
	if err != nil {
		return nil, err
	}

	return &eventProducerImpl{
		producer: producer,
		topic:    cfg.KafkaPost.Topic,
	}, nil
}

// EmitPostEvent 按 post_id 分区，保证同一帖子的事件有序
func (s *eventProducerImpl) EmitPostEvent(ctx context.Context, event *PostEvent) error {
	if event.EventID == "" {
		event.EventID = uuid.NewString()
	}
	if event.EmittedAt.IsZero() {
		event.EmittedAt = time.Now()
	}
	if event.TS == 0 {
		event.TS = event.EmittedAt.UnixMilli()
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	msg := &sarama.ProducerMessage{
		Topic: s.topic,
		Key:   sarama.StringEncoder(strconv.FormatUint(event.PostID, 10)),
		Value: sarama.ByteEncoder(payload),
	}

	partition, offset, err := s.producer.SendMessage(msg)
	if err != nil {
		log.ErrorContext(ctx, "emit post event error", "type", event.Type, "post_id", event.PostID, "err", err)
		return err
	}

	log.InfoContext(ctx, "post event emitted",
		"type", event.Type,
		"post_id", event.PostID,
		"partition", partition,
		"offset", offset,
	)
	return nil
}

func (s *eventProducerImpl) Close() error {
	return s.producer.Close()
}
