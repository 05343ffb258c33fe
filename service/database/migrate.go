/*
 * @module service/database/migrate
 * @description 数据库迁移模块，负责创建表结构并初始化参考目录种子数据
 * @architecture 数据访问层 - 迁移管理
 * @documentReference dev_docs/model.md
 * @stateFlow 应用启动时执行数据库迁移
 * @rules 确保数据库结构与模型定义保持一致；种子数据幂等写入
 * @dependencies insights-engine-service/service/models, gorm.io/gorm
 * @refs dev_docs/backend_requirements.md
 */

package database

import (
	"insights-engine-service/service/models"
	"log"

	"gorm.io/gorm"
)

// AutoMigrate 自动迁移数据库表结构
func AutoMigrate(db *gorm.DB) error {
	log.Println("开始数据库迁移...")

	// 参考目录维度表
	err := db.AutoMigrate(
		&models.InsightType{},
		&models.DataSource{},
		&models.Audience{},
		&models.Domain{},
		&models.ConfidenceLevel{},
		&models.Timeliness{},
		&models.DeliveryChannel{},
		&models.AlignmentGoal{},
		&models.ValuePriority{},
	)
	if err != nil {
		return err
	}

	// 业务表
	err = db.AutoMigrate(
		&models.Insight{},
		&models.Recommendation{},
	)
	if err != nil {
		return err
	}

	log.Println("数据库迁移完成")
	return nil
}

// seedEntry 目录种子条目
type seedEntry struct {
	Name        string
	Description string
}

// 参考目录种子词表，与历史数据保持一致，运行期只读
var catalogSeeds = map[string][]seedEntry{
	models.DimensionInsightType: {
		{"Clinical", "Clinical observation derived from care records"},
		{"Behavioral", "Behavioral pattern detected in member activity"},
		{"Financial", "Cost or claims related finding"},
		{"Operational", "Care operations or scheduling finding"},
	},
	models.DimensionDataSource: {
		{"EHR", "Electronic health record extract"},
		{"Claims", "Claims processing system"},
		{"Survey", "Member survey responses"},
		{"Wearable", "Connected device telemetry"},
	},
	models.DimensionAudience: {
		{"Member", "Individual plan member"},
		{"Care Manager", "Assigned care management staff"},
		{"Provider", "Treating provider or practice"},
	},
	models.DimensionDomain: {
		{"Primary Care", "Primary care engagement"},
		{"Chronic Care", "Chronic condition management"},
		{"Preventive Care", "Screenings and preventive services"},
		{"Pharmacy", "Medication adherence and pharmacy"},
	},
	models.DimensionConfidenceLevel: {
		{"Low", "Signal supported by a single weak source"},
		{"Medium", "Signal corroborated by at least two sources"},
		{"High", "Signal verified against authoritative records"},
	},
	models.DimensionTimeliness: {
		{"Realtime", "Actionable within hours"},
		{"Daily", "Actionable within a day"},
		{"Weekly", "Actionable within a week"},
		{"Historical", "Retrospective, for trend analysis"},
	},
	models.DimensionDeliveryChannel: {
		{"Notification", "In-app push notification"},
		{"Email", "Email to the member"},
		{"SMS", "Text message"},
		{"Mail", "Printed letter"},
	},
	models.DimensionAlignmentGoal: {
		{"Improve Outcomes", "Improve member health outcomes"},
		{"Reduce Cost", "Reduce avoidable cost of care"},
		{"Increase Engagement", "Increase member engagement"},
		{"Close Care Gaps", "Close open care gaps"},
	},
	models.DimensionValuePriority: {
		{"Low", "Nice to act on"},
		{"Medium", "Should act on"},
		{"High", "Must act on"},
	},
}

// InitializeData 初始化参考目录基础数据，按名称幂等写入
func InitializeData(db *gorm.DB) error {
	log.Println("开始初始化参考目录数据...")

	for _, dimension := range models.DimensionKeys {
		table := models.DimensionTables[dimension]
		for _, seed := range catalogSeeds[dimension] {
			var count int64
			if err := db.Table(table).Where("name = ?", seed.Name).Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				continue
			}
			entry := map[string]interface{}{
				"name":        seed.Name,
				"description": seed.Description,
			}
			if err := db.Table(table).Create(entry).Error; err != nil {
				return err
			}
		}
	}

	log.Println("参考目录数据初始化完成")
	return nil
}
