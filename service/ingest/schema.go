/*
 * @module service/ingest/schema
 * @description 批次表头契约定义，命名、带版本的列描述符，由调用方显式选择
 * @architecture 分层架构 - 业务服务层
 * @documentReference dev_docs/backend_requirements.md
 * @stateFlow 调用方指定契约名 -> 查表 -> 表头与行按描述符校验
 * @rules 契约一经发布不可变更，新列序以新版本注册
 * @refs service/ingest/validator.go, service/ingest/coordinator.go
 */

package ingest

import "insights-engine-service/service/models"

// ColumnKind 列语义类型
type ColumnKind int

const (
	// KindDimension 参考目录维度名称列，需外键解析
	KindDimension ColumnKind = iota
	// KindContent 洞察正文列，同时作为去重键
	KindContent
	// KindCreatedAt 创建时间列
	KindCreatedAt
)

// Column 单列描述：列名及其语义类型
type Column struct {
	Name      string
	Kind      ColumnKind
	Dimension string // Kind为KindDimension时的维度键
}

// Schema 命名表头契约，列顺序即文件内的强制顺序
type Schema struct {
	Name    string
	Columns []Column
}

// DefaultSchemaName 未显式指定契约时的默认值
const DefaultSchemaName = "insights_v1"

func dimensionColumn(dimension string) Column {
	return Column{Name: dimension, Kind: KindDimension, Dimension: dimension}
}

// 已注册的表头契约。v1为十列布局、正文收尾；v2正文打头、带创建时间、无投递渠道列。
var schemas = map[string]*Schema{
	"insights_v1": {
		Name: "insights_v1",
		Columns: []Column{
			dimensionColumn(models.DimensionInsightType),
			dimensionColumn(models.DimensionDataSource),
			dimensionColumn(models.DimensionAudience),
			dimensionColumn(models.DimensionDomain),
			dimensionColumn(models.DimensionConfidenceLevel),
			dimensionColumn(models.DimensionTimeliness),
			dimensionColumn(models.DimensionDeliveryChannel),
			dimensionColumn(models.DimensionAlignmentGoal),
			dimensionColumn(models.DimensionValuePriority),
			{Name: "content", Kind: KindContent},
		},
	},
	"insights_v2": {
		Name: "insights_v2",
		Columns: []Column{
			{Name: "content", Kind: KindContent},
			{Name: "created_at", Kind: KindCreatedAt},
			dimensionColumn(models.DimensionInsightType),
			dimensionColumn(models.DimensionDataSource),
			dimensionColumn(models.DimensionAudience),
			dimensionColumn(models.DimensionDomain),
			dimensionColumn(models.DimensionConfidenceLevel),
			dimensionColumn(models.DimensionTimeliness),
			dimensionColumn(models.DimensionAlignmentGoal),
			dimensionColumn(models.DimensionValuePriority),
		},
	},
}

// LookupSchema 按名称查找表头契约
func LookupSchema(name string) (*Schema, bool) {
	if name == "" {
		name = DefaultSchemaName
	}
	schema, ok := schemas[name]
	return schema, ok
}

// Header 返回契约的期望表头序列
func (s *Schema) Header() []string {
	header := make([]string, len(s.Columns))
	for i, col := range s.Columns {
		header[i] = col.Name
	}
	return header
}

// ContentIndex 返回正文列下标
func (s *Schema) ContentIndex() int {
	for i, col := range s.Columns {
		if col.Kind == KindContent {
			return i
		}
	}
	return -1
}
