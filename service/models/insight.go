/*
 * @module service/models/insight
 * @description 洞察与推荐模型定义
 * @architecture 分层架构 - 数据模型层
 * @documentReference dev_docs/model.md
 * @stateFlow 洞察由摄取协调器创建后不再变更；推荐由评分器创建，状态由外部投递流程推进
 * @rules 洞察content全局唯一作为去重键；推荐状态初始为Pending
 * @dependencies gorm.io/gorm
 * @refs service/ingest, service/recommendation
 */

package models

import (
	"time"
)

// 推荐工作流状态，Pending之后的状态由外部投递流程维护
const (
	RecommendationStatusPending   = "Pending"
	RecommendationStatusSent      = "Sent"
	RecommendationStatusDismissed = "Dismissed"
)

// Insight 洞察模型，八个必填维度外键加可选投递渠道
type Insight struct {
	ID                int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Content           string    `gorm:"not null;uniqueIndex" json:"content"`
	InsightTypeID     int64     `gorm:"not null" json:"insight_type_id"`
	DataSourceID      int64     `gorm:"not null" json:"data_source_id"`
	AudienceID        int64     `gorm:"not null" json:"audience_id"`
	DomainID          int64     `gorm:"not null" json:"domain_id"`
	ConfidenceLevelID int64     `gorm:"not null" json:"confidence_level_id"`
	TimelinessID      int64     `gorm:"not null" json:"timeliness_id"`
	DeliveryChannelID *int64    `json:"delivery_channel_id"`
	AlignmentGoalID   int64     `gorm:"not null" json:"alignment_goal_id"`
	ValuePriorityID   int64     `gorm:"not null" json:"value_priority_id"`
	CreatedAt         time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

// InsightFeatures 评分器使用的特征标识三元组，顺序固定
type InsightFeatures struct {
	ConfidenceLevelID int64 `json:"confidence_level_id"`
	TimelinessID      int64 `json:"timeliness_id"`
	ValuePriorityID   int64 `json:"value_priority_id"`
}

// Recommendation 推荐模型，由评分器创建，每次评分调用恰好写入一行
type Recommendation struct {
	ID                 int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	InsightID          int64     `gorm:"not null;index" json:"insight_id"`
	RecommendationText string    `gorm:"not null" json:"recommendation_text"`
	ConfidenceLevelID  int64     `gorm:"not null" json:"confidence_level_id"`
	DeliveryChannelID  int64     `gorm:"not null" json:"delivery_channel_id"`
	Status             string    `gorm:"not null;default:'Pending'" json:"status"`
	ModelVersion       string    `gorm:"size:50" json:"model_version"`
	CreatedAt          time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt          time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}
