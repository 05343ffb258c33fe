/*
 * @module service/models/catalog
 * @description 参考目录维度模型定义，九个只读查找维度表
 * @architecture 分层架构 - 数据模型层
 * @documentReference dev_docs/model.md
 * @stateFlow 应用启动时迁移并初始化种子数据，运行期只读
 * @rules 维度条目名称在各自维度内唯一，摄取期间不可变更
 * @dependencies gorm.io/gorm
 * @refs service/catalog, service/database/migrate.go
 */

package models

// InsightType 洞察类型维度
type InsightType struct {
	ID          int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string `gorm:"not null;uniqueIndex" json:"name"`
	Description string `json:"description"`
}

// DataSource 数据来源维度
type DataSource struct {
	ID          int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string `gorm:"not null;uniqueIndex" json:"name"`
	Description string `json:"description"`
}

// Audience 受众维度
type Audience struct {
	ID          int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string `gorm:"not null;uniqueIndex" json:"name"`
	Description string `json:"description"`
}

// Domain 业务领域维度
type Domain struct {
	ID          int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string `gorm:"not null;uniqueIndex" json:"name"`
	Description string `json:"description"`
}

// ConfidenceLevel 置信级别维度
type ConfidenceLevel struct {
	ID          int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string `gorm:"not null;uniqueIndex" json:"name"`
	Description string `json:"description"`
}

// Timeliness 时效性维度
type Timeliness struct {
	ID          int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string `gorm:"not null;uniqueIndex" json:"name"`
	Description string `json:"description"`
}

// TableName 指定表名，避免gorm默认复数化错误
func (Timeliness) TableName() string {
	return "timelinesses"
}

// DeliveryChannel 投递渠道维度
type DeliveryChannel struct {
	ID          int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string `gorm:"not null;uniqueIndex" json:"name"`
	Description string `json:"description"`
}

// AlignmentGoal 对齐目标维度
type AlignmentGoal struct {
	ID          int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string `gorm:"not null;uniqueIndex" json:"name"`
	Description string `json:"description"`
}

// ValuePriority 价值优先级维度
type ValuePriority struct {
	ID          int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string `gorm:"not null;uniqueIndex" json:"name"`
	Description string `json:"description"`
}

// CatalogEntry 维度条目的统一视图，用于目录缓存和枚举接口
type CatalogEntry struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// 维度键常量，与CSV列名和外键解析保持一致
const (
	DimensionInsightType     = "insight_type"
	DimensionDataSource      = "data_source"
	DimensionAudience        = "audience"
	DimensionDomain          = "domain"
	DimensionConfidenceLevel = "confidence_level"
	DimensionTimeliness      = "timeliness"
	DimensionDeliveryChannel = "delivery_channel"
	DimensionAlignmentGoal   = "alignment_goal"
	DimensionValuePriority   = "value_priority"
)

// DimensionTables 维度键到数据库表名的映射
var DimensionTables = map[string]string{
	DimensionInsightType:     "insight_types",
	DimensionDataSource:      "data_sources",
	DimensionAudience:        "audiences",
	DimensionDomain:          "domains",
	DimensionConfidenceLevel: "confidence_levels",
	DimensionTimeliness:      "timelinesses",
	DimensionDeliveryChannel: "delivery_channels",
	DimensionAlignmentGoal:   "alignment_goals",
	DimensionValuePriority:   "value_priorities",
}

// DimensionKeys 维度键的固定顺序，用于枚举接口的稳定输出
var DimensionKeys = []string{
	DimensionInsightType,
	DimensionDataSource,
	DimensionAudience,
	DimensionDomain,
	DimensionConfidenceLevel,
	DimensionTimeliness,
	DimensionDeliveryChannel,
	DimensionAlignmentGoal,
	DimensionValuePriority,
}
