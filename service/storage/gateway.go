/*
 * @module service/storage/gateway
 * @description 持久化网关，上层组件访问存储的唯一入口，提供目录查找、去重检查、
 *              洞察/推荐写入与事务边界操作
 * @architecture 分层架构 - 数据访问层
 * @documentReference dev_docs/backend_requirements.md
 * @stateFlow 上层服务调用 -> gorm执行 -> 结果/错误返回
 * @rules 事务在任何退出路径上保证提交或回滚；未找到与存储故障区分上抛
 * @dependencies insights-engine-service/service/models, gorm.io/gorm
 * @refs service/ingest, service/recommendation, service/catalog
 */

package storage

import (
	"errors"
	"insights-engine-service/service/models"

	"gorm.io/gorm"
)

// ErrNotFound 目录条目或洞察不存在
var ErrNotFound = errors.New("记录不存在")

// ErrUnknownDimension 维度键不在参考目录注册表中
var ErrUnknownDimension = errors.New("未知的目录维度")

// Gateway 持久化网关接口
type Gateway interface {
	// FindCatalogID 按名称精确查找维度条目标识
	FindCatalogID(dimension, name string) (int64, error)
	// ListCatalogEntries 列出某维度的全部条目
	ListCatalogEntries(dimension string) ([]models.CatalogEntry, error)
	// ContentExists 检查洞察内容是否已持久化
	ContentExists(content string) (bool, error)
	// InsertInsight 写入洞察并返回存储分配的标识，tx为nil时使用基础连接
	InsertInsight(tx *gorm.DB, insight *models.Insight) (int64, error)
	// GetInsightFeatures 读取洞察的评分特征三元组
	GetInsightFeatures(id int64) (*models.InsightFeatures, error)
	// InsertRecommendation 写入推荐并返回存储分配的标识
	InsertRecommendation(rec *models.Recommendation) (int64, error)
	// WithTransaction 在单个事务内执行操作，提交或回滚由网关保证
	WithTransaction(fn func(tx *gorm.DB) error) error
}

// GormGateway 基于gorm的持久化网关实现
type GormGateway struct {
	db *gorm.DB
}

// NewGormGateway 创建持久化网关实例
func NewGormGateway(db *gorm.DB) *GormGateway {
	return &GormGateway{db: db}
}

// FindCatalogID 按名称精确查找维度条目标识，大小写敏感
func (g *GormGateway) FindCatalogID(dimension, name string) (int64, error) {
	table, ok := models.DimensionTables[dimension]
	if !ok {
		return 0, ErrUnknownDimension
	}

	var entry models.CatalogEntry
	err := g.db.Table(table).Where("name = ?", name).Take(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrNotFound
		}
		return 0, err
	}
	return entry.ID, nil
}

// ListCatalogEntries 列出某维度的全部条目，按标识排序
func (g *GormGateway) ListCatalogEntries(dimension string) ([]models.CatalogEntry, error) {
	table, ok := models.DimensionTables[dimension]
	if !ok {
		return nil, ErrUnknownDimension
	}

	var entries []models.CatalogEntry
	if err := g.db.Table(table).Order("id").Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// ContentExists 检查洞察内容是否已持久化
func (g *GormGateway) ContentExists(content string) (bool, error) {
	var count int64
	err := g.db.Model(&models.Insight{}).Where("content = ?", content).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// InsertInsight 写入洞察并返回存储分配的标识
func (g *GormGateway) InsertInsight(tx *gorm.DB, insight *models.Insight) (int64, error) {
	conn := tx
	if conn == nil {
		conn = g.db
	}

	if err := conn.Create(insight).Error; err != nil {
		return 0, err
	}
	return insight.ID, nil
}

// GetInsightFeatures 读取洞察的评分特征三元组
func (g *GormGateway) GetInsightFeatures(id int64) (*models.InsightFeatures, error) {
	var features models.InsightFeatures
	err := g.db.Model(&models.Insight{}).
		Select("confidence_level_id", "timeliness_id", "value_priority_id").
		Where("id = ?", id).
		Take(&features).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &features, nil
}

// InsertRecommendation 写入推荐并返回存储分配的标识
func (g *GormGateway) InsertRecommendation(rec *models.Recommendation) (int64, error) {
	if err := g.db.Create(rec).Error; err != nil {
		return 0, err
	}
	return rec.ID, nil
}

// WithTransaction 在单个事务内执行操作，gorm在回调返回错误或panic时回滚，否则提交
func (g *GormGateway) WithTransaction(fn func(tx *gorm.DB) error) error {
	return g.db.Transaction(fn)
}
