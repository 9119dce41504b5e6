package job

import (
	"context"
	"time"

	"gamecenter/internal/model"
	"gamecenter/pkg/logger"
)

// Publisher 消息投递通道，生产环境为 mq.Producer
type Publisher interface {
	SendMessage(topic, key, value string) error
}

// OutboxStore OutboxSender 用到的 outbox 表操作
type OutboxStore interface {
	GetPendingMessages(ctx context.Context, limit int) ([]*model.OutboxMessage, error)
	UpdateStatus(ctx context.Context, id int64, status string) error
	IncrementRetryCount(ctx context.Context, id int64) error
	MarkAsFailed(ctx context.Context, id int64) error
}

// OutboxSender 轮询 outbox 表，把充值/消费的变更通知投递到 Kafka
type OutboxSender struct {
	outbox        OutboxStore
	publisher     Publisher
	log           *logger.Logger
	stopCh        chan struct{}
	interval      time.Duration
	batchSize     int
	maxRetryCount int
}

func NewOutboxSender(outbox OutboxStore, publisher Publisher, maxRetryCount int, log *logger.Logger) *OutboxSender {
	return &OutboxSender{
		outbox:        outbox,
		publisher:     publisher,
		log:           log.With("component", "OutboxSender"),
		stopCh:        make(chan struct{}),
		interval:      100 * time.Millisecond,
		batchSize:     100,
		maxRetryCount: maxRetryCount,
	}
}

func (s *OutboxSender) Start(ctx context.Context) {
	s.log.Info("消息发送任务启动")

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.log.Info("收到停止信号，任务退出")
			return
		case <-s.stopCh:
			s.log.Info("任务停止")
			return
		case <-ticker.C:
			s.processPendingMessages(ctx)
		}
	}
}

func (s *OutboxSender) Stop() {
	close(s.stopCh)
}

func (s *OutboxSender) processPendingMessages(ctx context.Context) {
	messages, err := s.outbox.GetPendingMessages(ctx, s.batchSize)
	if err != nil {
		s.log.Error("查询消息失败", "error", err)
		return
	}

	for _, msg := range messages {
		s.sendMessage(ctx, msg)
	}
}

func (s *OutboxSender) sendMessage(ctx context.Context, msg *model.OutboxMessage) {
	err := s.publisher.SendMessage(msg.Topic, msg.MessageKey, msg.Payload)

	if err == nil {
		if updateErr := s.outbox.UpdateStatus(ctx, msg.ID, model.OutboxStatusSent); updateErr != nil {
			s.log.Error("更新消息状态失败", "id", msg.ID, "error", updateErr)
		} else {
			s.log.Debug("消息发送成功", "id", msg.ID, "topic", msg.Topic, "key", msg.MessageKey)
		}
		return
	}

	s.log.Warn("消息发送失败", "id", msg.ID, "event", msg.EventType, "error", err)

	if err := s.outbox.IncrementRetryCount(ctx, msg.ID); err != nil {
		s.log.Error("增加重试次数失败", "id", msg.ID, "error", err)
	}

	if msg.RetryCount+1 >= s.maxRetryCount {
		if err := s.outbox.MarkAsFailed(ctx, msg.ID); err != nil {
			s.log.Error("标记消息失败状态失败", "id", msg.ID, "error", err)
		} else {
			s.log.Warn("消息超过最大重试次数，标记为失败", "id", msg.ID)
		}
	}
}
