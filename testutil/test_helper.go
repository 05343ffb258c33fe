/*
 * @module testutil/test_helper
 * @description 测试工具和辅助函数
 * @architecture 测试基础设施 - 提供测试通用工具和数据工厂
 * @documentReference dev_docs/test_plan.md
 * @stateFlow 测试环境初始化 -> 测试数据创建 -> 测试执行 -> 清理资源
 * @rules 提供可重用的测试工具，确保测试环境的一致性
 * @dependencies gorm, sqlite, time
 * @refs service/models
 */

package testutil

import (
	"fmt"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"insights-engine-service/service/database"
	"insights-engine-service/service/models"
)

// TestDB 测试数据库配置
type TestDB struct {
	DB *gorm.DB
}

// NewTestDB 创建内存测试数据库，迁移全部模型并写入参考目录种子数据
func NewTestDB() *TestDB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		panic(fmt.Sprintf("failed to connect test database: %v", err))
	}

	if err := database.AutoMigrate(db); err != nil {
		panic(fmt.Sprintf("failed to migrate test database: %v", err))
	}
	if err := database.InitializeData(db); err != nil {
		panic(fmt.Sprintf("failed to seed test database: %v", err))
	}

	return &TestDB{DB: db}
}

// CleanDB 清理业务表数据，参考目录种子保留
func (tdb *TestDB) CleanDB() {
	tables := []string{
		"recommendations",
		"insights",
	}

	for _, table := range tables {
		tdb.DB.Exec(fmt.Sprintf("DELETE FROM %s", table))
	}
}

// Close 关闭数据库连接
func (tdb *TestDB) Close() {
	if db, err := tdb.DB.DB(); err == nil {
		db.Close()
	}
}

// TestDataFactory 测试数据工厂
type TestDataFactory struct {
	DB *gorm.DB
}

// NewTestDataFactory 创建测试数据工厂
func NewTestDataFactory(db *gorm.DB) *TestDataFactory {
	return &TestDataFactory{DB: db}
}

// InsightOption 洞察选项函数类型
type InsightOption func(*models.Insight)

// WithContent 指定洞察正文
func WithContent(content string) InsightOption {
	return func(i *models.Insight) {
		i.Content = content
	}
}

// WithFeatures 指定评分特征三元组
func WithFeatures(confidenceLevelID, timelinessID, valuePriorityID int64) InsightOption {
	return func(i *models.Insight) {
		i.ConfidenceLevelID = confidenceLevelID
		i.TimelinessID = timelinessID
		i.ValuePriorityID = valuePriorityID
	}
}

// CreateInsight 创建测试洞察，外键默认指向各维度的首个种子条目
func (f *TestDataFactory) CreateInsight(opts ...InsightOption) *models.Insight {
	insight := &models.Insight{
		Content:           fmt.Sprintf("test insight %d", time.Now().UnixNano()),
		InsightTypeID:     1,
		DataSourceID:      1,
		AudienceID:        1,
		DomainID:          1,
		ConfidenceLevelID: 1,
		TimelinessID:      1,
		AlignmentGoalID:   1,
		ValuePriorityID:   1,
		CreatedAt:         time.Now().UTC(),
	}

	for _, opt := range opts {
		opt(insight)
	}

	if err := f.DB.Create(insight).Error; err != nil {
		panic(fmt.Sprintf("failed to create test insight: %v", err))
	}
	return insight
}
