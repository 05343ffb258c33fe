/*
 * @module service/event/publisher
 * @description Kafka事件发布器，向下游规则引擎通告批次完成与推荐生成事件，
 *              未配置KAFKA_BROKERS时整体停用
 * @architecture 适配器模式 - 封装第三方Kafka客户端
 * @documentReference dev_docs/backend_requirements.md
 * @stateFlow 事件构造 -> JSON序列化 -> 写入topic
 * @rules 事件发布失败只记录日志，不影响业务调用结果
 * @dependencies github.com/segmentio/kafka-go, encoding/json
 * @refs service/ingest/coordinator.go, service/recommendation/scorer.go
 */

package event

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/spf13/cast"

	"insights-engine-service/service/models"
)

// 事件类型
const (
	TypeBatchCompleted        = "insights.batch.completed"
	TypeRecommendationCreated = "insights.recommendation.created"
)

// Envelope 事件信封
type Envelope struct {
	EventType  string      `json:"event_type"`
	OccurredAt time.Time   `json:"occurred_at"`
	Payload    interface{} `json:"payload"`
}

// Publisher Kafka事件发布器
type Publisher struct {
	writer *kafka.Writer
}

// NewPublisherFromEnv 从环境变量创建发布器，KAFKA_BROKERS为空时返回nil（停用）
func NewPublisherFromEnv() *Publisher {
	brokers := os.Getenv("KAFKA_BROKERS")
	if brokers == "" {
		return nil
	}

	topic := os.Getenv("KAFKA_TOPIC")
	if topic == "" {
		topic = "insights.events"
	}

	writer := &kafka.Writer{
		Addr:                   kafka.TCP(strings.Split(brokers, ",")...),
		Topic:                  topic,
		Balancer:               &kafka.LeastBytes{},
		AllowAutoTopicCreation: true,
		RequiredAcks:           kafka.RequireOne,
		WriteTimeout:           10 * time.Second,
	}

	slog.Info("Kafka事件发布器已启用", "brokers", brokers, "topic", topic)
	return &Publisher{writer: writer}
}

// publish 序列化并写入事件，失败只记录日志
func (p *Publisher) publish(ctx context.Context, eventType string, key string, payload interface{}) {
	if p == nil {
		return
	}

	envelope := Envelope{
		EventType:  eventType,
		OccurredAt: time.Now().UTC(),
		Payload:    payload,
	}

	value, err := json.Marshal(envelope)
	if err != nil {
		slog.Error("事件序列化失败", "event_type", eventType, "error", err)
		return
	}

	msg := kafka.Message{
		Key:   []byte(key),
		Value: value,
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		slog.Error("事件发布失败", "event_type", eventType, "error", err)
	}
}

// PublishBatchCompleted 通告批次摄取完成
func (p *Publisher) PublishBatchCompleted(ctx context.Context, result *models.BatchResult) {
	p.publish(ctx, TypeBatchCompleted, result.BatchID, result)
}

// recommendationCreatedPayload 推荐生成事件载荷
type recommendationCreatedPayload struct {
	RecommendationID int64  `json:"recommendation_id"`
	InsightID        int64  `json:"insight_id"`
	Status           string `json:"status"`
	ModelVersion     string `json:"model_version"`
}

// PublishRecommendationCreated 通告推荐已生成
func (p *Publisher) PublishRecommendationCreated(ctx context.Context, rec *models.Recommendation) {
	p.publish(ctx, TypeRecommendationCreated, cast.ToString(rec.InsightID), recommendationCreatedPayload{
		RecommendationID: rec.ID,
		InsightID:        rec.InsightID,
		Status:           rec.Status,
		ModelVersion:     rec.ModelVersion,
	})
}

// Close 关闭底层writer
func (p *Publisher) Close() error {
	if p == nil {
		return nil
	}
	return p.writer.Close()
}
