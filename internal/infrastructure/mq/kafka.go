package mq

import (
	"fmt"

	"gamecenter/internal/config"

	"github.com/IBM/sarama"
)

// Producer 同步 Kafka 生产者
type Producer struct {
	producer sarama.SyncProducer
}

// NewKafkaProducer 连接 brokers 创建生产者
func NewKafkaProducer(cfg *config.KafkaConfig) (*Producer, error) {
	kafkaConfig := sarama.NewConfig()
	kafkaConfig.Producer.RequiredAcks = sarama.WaitForAll // 等待所有副本确认
	kafkaConfig.Producer.Retry.Max = 3
	kafkaConfig.Producer.Return.Successes = true

	producer, err := sarama.NewSyncProducer(cfg.Brokers, kafkaConfig)
	if err != nil {
		return nil, fmt.Errorf("创建 Kafka 生产者失败: %w", err)
	}
	return NewProducer(producer), nil
}

// NewProducer 包装已有的 SyncProducer（测试中传入 mocks.SyncProducer）
func NewProducer(producer sarama.SyncProducer) *Producer {
	return &Producer{producer: producer}
}

// SendMessage 发送消息到 Kafka，key 相同的消息进入同一分区保证顺序
func (p *Producer) SendMessage(topic, key, value string) error {
	msg := &sarama.ProducerMessage{
		Topic: topic,
		Key:   sarama.StringEncoder(key),
		Value: sarama.StringEncoder(value),
	}

	_, _, err := p.producer.SendMessage(msg)
	return err
}

func (p *Producer) Close() error {
	return p.producer.Close()
}
