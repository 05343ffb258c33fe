/*
 * @module service/summary/summary_service
 * @description 只读汇总服务，提供洞察全量联表投影与推荐列表投影，
 *              无业务逻辑，仅SQL连接与时间格式化
 * @architecture 分层架构 - 查询服务层
 * @documentReference dev_docs/backend_requirements.md
 * @stateFlow HTTP查询 -> 联表投影 -> JSON输出
 * @rules 只读，不修改任何数据
 * @dependencies gorm.io/gorm
 * @refs api/controllers/insight_controller.go, api/controllers/recommendation_controller.go
 */

package summary

import (
	"time"

	"gorm.io/gorm"
)

// 汇总输出的时间格式
const timestampLayout = "2006-01-02 15:04:05"

// Service 只读汇总服务
type Service struct {
	db *gorm.DB
}

// NewService 创建汇总服务实例
func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// DimensionView 维度条目的名称与描述
type DimensionView struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// InsightView 洞察详情投影，八个维度展开为名称加描述
type InsightView struct {
	InsightID       int64         `json:"insight_id"`
	Content         string        `json:"content"`
	CreatedAt       string        `json:"created_at"`
	InsightType     DimensionView `json:"insight_type"`
	DataSource      DimensionView `json:"data_source"`
	Audience        DimensionView `json:"audience"`
	Domain          DimensionView `json:"domain"`
	ConfidenceLevel DimensionView `json:"confidence_level"`
	Timeliness      DimensionView `json:"timeliness"`
	AlignmentGoal   DimensionView `json:"alignment_goal"`
	ValuePriority   DimensionView `json:"value_priority"`
}

// insightRow 联表查询的扁平扫描结构
type insightRow struct {
	InsightID                  int64
	Content                    string
	CreatedAt                  time.Time
	InsightTypeName            string
	InsightTypeDescription     string
	DataSourceName             string
	DataSourceDescription      string
	AudienceName               string
	AudienceDescription        string
	DomainName                 string
	DomainDescription          string
	ConfidenceLevelName        string
	ConfidenceLevelDescription string
	TimelinessName             string
	TimelinessDescription      string
	AlignmentGoalName          string
	AlignmentGoalDescription   string
	ValuePriorityName          string
	ValuePriorityDescription   string
}

// ListInsights 列出全部洞察的详情投影
func (s *Service) ListInsights() ([]InsightView, error) {
	var rows []insightRow
	err := s.db.Table("insights AS i").
		Select(`i.id AS insight_id, i.content, i.created_at,
			it.name AS insight_type_name, it.description AS insight_type_description,
			ds.name AS data_source_name, ds.description AS data_source_description,
			a.name AS audience_name, a.description AS audience_description,
			d.name AS domain_name, d.description AS domain_description,
			cl.name AS confidence_level_name, cl.description AS confidence_level_description,
			t.name AS timeliness_name, t.description AS timeliness_description,
			ag.name AS alignment_goal_name, ag.description AS alignment_goal_description,
			vp.name AS value_priority_name, vp.description AS value_priority_description`).
		Joins("JOIN insight_types it ON i.insight_type_id = it.id").
		Joins("JOIN data_sources ds ON i.data_source_id = ds.id").
		Joins("JOIN audiences a ON i.audience_id = a.id").
		Joins("JOIN domains d ON i.domain_id = d.id").
		Joins("JOIN confidence_levels cl ON i.confidence_level_id = cl.id").
		Joins("JOIN timelinesses t ON i.timeliness_id = t.id").
		Joins("JOIN alignment_goals ag ON i.alignment_goal_id = ag.id").
		Joins("JOIN value_priorities vp ON i.value_priority_id = vp.id").
		Order("i.id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	views := make([]InsightView, 0, len(rows))
	for _, row := range rows {
		views = append(views, InsightView{
			InsightID:       row.InsightID,
			Content:         row.Content,
			CreatedAt:       row.CreatedAt.Format(timestampLayout),
			InsightType:     DimensionView{row.InsightTypeName, row.InsightTypeDescription},
			DataSource:      DimensionView{row.DataSourceName, row.DataSourceDescription},
			Audience:        DimensionView{row.AudienceName, row.AudienceDescription},
			Domain:          DimensionView{row.DomainName, row.DomainDescription},
			ConfidenceLevel: DimensionView{row.ConfidenceLevelName, row.ConfidenceLevelDescription},
			Timeliness:      DimensionView{row.TimelinessName, row.TimelinessDescription},
			AlignmentGoal:   DimensionView{row.AlignmentGoalName, row.AlignmentGoalDescription},
			ValuePriority:   DimensionView{row.ValuePriorityName, row.ValuePriorityDescription},
		})
	}
	return views, nil
}

// RecommendationView 推荐列表投影，附带源洞察正文
type RecommendationView struct {
	ID                 int64  `json:"id"`
	InsightID          int64  `json:"insight_id"`
	InsightContent     string `json:"insight_content"`
	RecommendationText string `json:"recommendation_text"`
	ConfidenceLevelID  int64  `json:"confidence_level_id"`
	DeliveryChannelID  int64  `json:"delivery_channel_id"`
	Status             string `json:"status"`
	ModelVersion       string `json:"model_version"`
	CreatedAt          string `json:"created_at"`
	UpdatedAt          string `json:"updated_at"`
}

// recommendationRow 联表查询的扁平扫描结构
type recommendationRow struct {
	ID                 int64
	InsightID          int64
	InsightContent     string
	RecommendationText string
	ConfidenceLevelID  int64
	DeliveryChannelID  int64
	Status             string
	ModelVersion       string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// ListRecommendations 列出推荐，insightID大于0时按源洞察过滤
func (s *Service) ListRecommendations(insightID int64) ([]RecommendationView, error) {
	query := s.db.Table("recommendations AS r").
		Select(`r.id, r.insight_id, i.content AS insight_content, r.recommendation_text,
			r.confidence_level_id, r.delivery_channel_id, r.status, r.model_version,
			r.created_at, r.updated_at`).
		Joins("JOIN insights i ON r.insight_id = i.id").
		Order("r.id")
	if insightID > 0 {
		query = query.Where("r.insight_id = ?", insightID)
	}

	var rows []recommendationRow
	if err := query.Scan(&rows).Error; err != nil {
		return nil, err
	}

	views := make([]RecommendationView, 0, len(rows))
	for _, row := range rows {
		views = append(views, RecommendationView{
			ID:                 row.ID,
			InsightID:          row.InsightID,
			InsightContent:     row.InsightContent,
			RecommendationText: row.RecommendationText,
			ConfidenceLevelID:  row.ConfidenceLevelID,
			DeliveryChannelID:  row.DeliveryChannelID,
			Status:             row.Status,
			ModelVersion:       row.ModelVersion,
			CreatedAt:          row.CreatedAt.Format(timestampLayout),
			UpdatedAt:          row.UpdatedAt.Format(timestampLayout),
		})
	}
	return views, nil
}
