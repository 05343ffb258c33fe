/*
 * @module api/controllers/health_controller
 * @description 健康检查控制器，提供服务健康与就绪状态检查
 * @architecture MVC架构 - 控制器层
 * @documentReference dev_docs/backend_requirements.md
 * @stateFlow HTTP请求处理流程
 * @rules 就绪检查验证数据库连通性与分类器构件可用性
 * @dependencies net/http
 * @refs dev_docs/model.md
 */

package controllers

import (
	"net/http"
	"time"

	"github.com/go-chi/render"

	"insights-engine-service/service"
)

// HealthController 健康检查控制器
type HealthController struct{}

// NewHealthController 创建健康检查控制器实例
func NewHealthController() *HealthController {
	return &HealthController{}
}

// HealthResponse 健康检查响应结构
type HealthResponse struct {
	Status    string    `json:"status" example:"ok"`
	Timestamp time.Time `json:"timestamp" example:"2024-01-01T00:00:00Z"`
	Version   string    `json:"version" example:"1.0.0"`
	Service   string    `json:"service" example:"insights-engine-service"`
}

// Health 健康检查
// @Summary 健康检查
// @Description 检查服务健康状态
// @Tags 系统
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /health [get]
func (c *HealthController) Health(w http.ResponseWriter, r *http.Request) {
	response := HealthResponse{
		Status:    "ok",
		Timestamp: time.Now(),
		Version:   "1.0.0",
		Service:   "insights-engine-service",
	}

	render.JSON(w, r, response)
}

// Ready 就绪检查
// @Summary 就绪检查
// @Description 检查数据库连通性与分类器构件是否就绪
// @Tags 系统
// @Produce json
// @Success 200 {object} HealthResponse
// @Failure 503 {object} HealthResponse
// @Router /ready [get]
func (c *HealthController) Ready(w http.ResponseWriter, r *http.Request) {
	status := "ready"

	sqlDB, err := service.DB.DB()
	if err != nil || sqlDB.PingContext(r.Context()) != nil {
		status = "unavailable"
	}
	if service.GlobalClassifier == nil {
		status = "unavailable"
	}

	if status != "ready" {
		w.WriteHeader(http.StatusServiceUnavailable)
	}
	render.JSON(w, r, HealthResponse{
		Status:    status,
		Timestamp: time.Now(),
		Version:   "1.0.0",
		Service:   "insights-engine-service",
	})
}
