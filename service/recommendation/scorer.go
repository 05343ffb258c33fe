/*
 * @module service/recommendation/scorer
 * @description 推荐评分器，读取洞察特征，经分类器推断后落库一条Pending状态的推荐
 * @architecture 分层架构 - 业务服务层
 * @documentReference dev_docs/backend_requirements.md
 * @stateFlow 取特征 -> 分类器推断 -> 文案映射 -> 推荐落库
 * @rules 每次评分调用恰好写入一条推荐，不做幂等去重；置信级别从源洞察复制；
 *        投递渠道未指定时取固定默认值
 * @dependencies insights-engine-service/service/storage, insights-engine-service/service/event
 * @refs api/controllers/recommendation_controller.go
 */

package recommendation

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"insights-engine-service/service/event"
	"insights-engine-service/service/models"
	"insights-engine-service/service/storage"
)

// ErrInsightNotFound 待评分的洞察不存在
var ErrInsightNotFound = errors.New("洞察不存在")

// DefaultDeliveryChannelID 默认投递渠道（Notification）
const DefaultDeliveryChannelID int64 = 1

// Scorer 推荐评分器
type Scorer struct {
	gateway    storage.Gateway
	classifier *Classifier
	publisher  *event.Publisher
}

// ScoreResult 单次评分调用的返回
type ScoreResult struct {
	RecommendationID   int64  `json:"recommendation_id"`
	RecommendationText string `json:"recommendation_text"`
	ModelVersion       string `json:"model_version"`
}

// NewScorer 创建推荐评分器实例，publisher可为nil
func NewScorer(gateway storage.Gateway, classifier *Classifier, publisher *event.Publisher) *Scorer {
	return &Scorer{
		gateway:    gateway,
		classifier: classifier,
		publisher:  publisher,
	}
}

// GenerateRecommendation 对指定洞察评分并持久化一条新推荐
func (s *Scorer) GenerateRecommendation(ctx context.Context, insightID int64) (*ScoreResult, error) {
	features, err := s.gateway.GetInsightFeatures(insightID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrInsightNotFound
		}
		return nil, err
	}

	// 特征顺序固定：置信级别、时效性、价值优先级
	label := s.classifier.Predict([FeatureCount]float64{
		float64(features.ConfidenceLevelID),
		float64(features.TimelinessID),
		float64(features.ValuePriorityID),
	})

	text, ok := s.classifier.Label(label)
	if !ok {
		text = FallbackText
	}

	now := time.Now().UTC()
	rec := &models.Recommendation{
		InsightID:          insightID,
		RecommendationText: text,
		ConfidenceLevelID:  features.ConfidenceLevelID,
		DeliveryChannelID:  DefaultDeliveryChannelID,
		Status:             models.RecommendationStatusPending,
		ModelVersion:       s.classifier.Version(),
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	id, err := s.gateway.InsertRecommendation(rec)
	if err != nil {
		return nil, err
	}

	slog.Info("推荐已生成",
		"insight_id", insightID,
		"recommendation_id", id,
		"label", label,
		"model_version", rec.ModelVersion,
	)

	if s.publisher != nil {
		s.publisher.PublishRecommendationCreated(ctx, rec)
	}

	return &ScoreResult{
		RecommendationID:   id,
		RecommendationText: text,
		ModelVersion:       rec.ModelVersion,
	}, nil
}
