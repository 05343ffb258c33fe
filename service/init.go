/*
 * @module service/init
 * @description 服务初始化模块，负责数据库连接、迁移、分类器构件加载与服务装配。
 *              存储句柄与分类器为进程级只读资源，启动时构建一次后共享
 * @architecture 分层架构 - 服务层
 * @documentReference dev_docs/backend_requirements.md
 * @stateFlow 应用启动时执行初始化流程
 * @rules 数据库或分类器构件不可用时启动失败；不依赖环境外的可变全局状态
 * @dependencies gorm.io/gorm, gorm.io/driver/postgres
 * @refs dev_docs/model.md
 */

package service

import (
	"fmt"
	"log"
	"os"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"insights-engine-service/service/catalog"
	"insights-engine-service/service/database"
	"insights-engine-service/service/event"
	"insights-engine-service/service/ingest"
	"insights-engine-service/service/recommendation"
	"insights-engine-service/service/storage"
	"insights-engine-service/service/summary"
)

var (
	DB                   *gorm.DB
	GlobalGateway        storage.Gateway
	GlobalCatalogService *catalog.Service
	GlobalClassifier     *recommendation.Classifier
	GlobalEventPublisher *event.Publisher
	GlobalCoordinator    *ingest.Coordinator
	GlobalScorer         *recommendation.Scorer
	GlobalSummaryService *summary.Service
)

func init() {
	initDatabase()
	runMigrations()
	loadClassifier()
	initServices()
}

// initDatabase 初始化数据库连接
func initDatabase() {
	var dsn string

	// 优先使用DATABASE_URL环境变量
	if databaseURL := os.Getenv("DATABASE_URL"); databaseURL != "" {
		dsn = databaseURL
	} else {
		host := getEnvWithDefault("DB_HOST", "localhost")
		port := getEnvWithDefault("DB_PORT", "5432")
		user := getEnvWithDefault("DB_USER", "postgres")
		password := getEnvWithDefault("DB_PASSWORD", "postgres")
		dbname := getEnvWithDefault("DB_NAME", "eureka")
		sslmode := getEnvWithDefault("DB_SSLMODE", "disable")

		dsn = fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
			host, port, user, password, dbname, sslmode)
	}

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("数据库连接失败: %v", err)
	}

	log.Println("数据库连接成功")
}

// getEnvWithDefault 获取环境变量，如果不存在则返回默认值
func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// runMigrations 运行数据库迁移并初始化参考目录
func runMigrations() {
	if err := database.AutoMigrate(DB); err != nil {
		log.Fatalf("数据库迁移失败: %v", err)
	}

	if err := database.InitializeData(DB); err != nil {
		log.Fatalf("参考目录初始化失败: %v", err)
	}
}

// loadClassifier 加载分类器构件，失败为致命错误：没有模型无法评分
func loadClassifier() {
	path := getEnvWithDefault("MODEL_PATH", "recommendation_model.json")

	var err error
	GlobalClassifier, err = recommendation.LoadClassifier(path)
	if err != nil {
		log.Fatalf("分类器构件加载失败: %v", err)
	}
	log.Printf("分类器构件加载成功: %s (版本 %s)", path, GlobalClassifier.Version())
}

// initServices 装配服务
func initServices() {
	GlobalGateway = storage.NewGormGateway(DB)

	var err error
	GlobalCatalogService, err = catalog.NewService(GlobalGateway)
	if err != nil {
		log.Fatalf("参考目录加载失败: %v", err)
	}

	// KAFKA_BROKERS未配置时发布器为nil，事件通道停用
	GlobalEventPublisher = event.NewPublisherFromEnv()

	GlobalCoordinator = ingest.NewCoordinator(GlobalGateway, GlobalCatalogService, GlobalEventPublisher)
	GlobalScorer = recommendation.NewScorer(GlobalGateway, GlobalClassifier, GlobalEventPublisher)
	GlobalSummaryService = summary.NewService(DB)

	// 参考数据由运维人员低频维护，长生命周期进程通过定时刷新保持同步
	if spec := os.Getenv("CATALOG_REFRESH_CRON"); spec != "" {
		if err := GlobalCatalogService.StartAutoRefresh(spec); err != nil {
			log.Fatalf("参考目录定时刷新启动失败: %v", err)
		}
	}
}
