package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"gamecenter/internal/config"
	"gamecenter/internal/model"

	"gorm.io/gorm"
)

// EventRecorder 记录实体变更通知，tx 为写入实体所在的事务
type EventRecorder interface {
	Record(ctx context.Context, tx *gorm.DB, eventType, key string, data interface{}) error
}

// OutboxNotifier 把变更通知写入 outbox 表，由 job.OutboxSender 异步投递到 Kafka
type OutboxNotifier struct {
	outbox OutboxWriter
	topics config.KafkaTopicConfig
}

func NewOutboxNotifier(outbox OutboxWriter, topics config.KafkaTopicConfig) *OutboxNotifier {
	return &OutboxNotifier{outbox: outbox, topics: topics}
}

type eventEnvelope struct {
	Event      string      `json:"event"`
	OccurredAt string      `json:"occurred_at"`
	Data       interface{} `json:"data"`
}

func (n *OutboxNotifier) Record(ctx context.Context, tx *gorm.DB, eventType, key string, data interface{}) error {
	payload, err := json.Marshal(eventEnvelope{
		Event:      eventType,
		OccurredAt: time.Now().UTC().Format(time.RFC3339),
		Data:       data,
	})
	if err != nil {
		return fmt.Errorf("序列化事件失败: %w", err)
	}

	return n.outbox.Create(ctx, tx, &model.OutboxMessage{
		MessageKey: key,
		Topic:      n.topicFor(eventType),
		EventType:  eventType,
		Payload:    string(payload),
		Status:     model.OutboxStatusPending,
	})
}

func (n *OutboxNotifier) topicFor(eventType string) string {
	if strings.HasPrefix(eventType, "transaction.") {
		return n.topics.TransactionEvents
	}
	return n.topics.RechargeEvents
}
