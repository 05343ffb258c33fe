/*
 * @module api/controllers/insight_controller
 * @description 洞察查询控制器，提供洞察全量联表投影
 * @architecture MVC架构 - 控制器层
 * @documentReference dev_docs/backend_requirements.md
 * @stateFlow HTTP请求处理流程
 * @rules 只读查询，不包含业务逻辑
 * @dependencies insights-engine-service/service
 * @refs service/summary/summary_service.go
 */

package controllers

import (
	"net/http"

	"github.com/go-chi/render"

	"insights-engine-service/service"
	"insights-engine-service/service/summary"
)

// InsightController 洞察查询控制器
type InsightController struct {
	summary *summary.Service
}

// NewInsightController 创建洞察查询控制器实例
func NewInsightController() *InsightController {
	return &InsightController{
		summary: service.GlobalSummaryService,
	}
}

// ListInsights 获取洞察列表
// @Summary 获取洞察列表
// @Description 列出全部洞察，八个维度展开为名称与描述
// @Tags 洞察
// @Produce json
// @Success 200 {object} APIResponse{data=[]summary.InsightView}
// @Failure 404 {object} APIResponse
// @Failure 500 {object} APIResponse
// @Router /insights [get]
func (c *InsightController) ListInsights(w http.ResponseWriter, r *http.Request) {
	views, err := c.summary.ListInsights()
	if err != nil {
		render.Render(w, r, InternalErrorResponse("洞察查询失败", nil))
		return
	}
	if len(views) == 0 {
		render.Render(w, r, NotFoundResponse("暂无洞察数据", []summary.InsightView{}))
		return
	}

	render.Render(w, r, SuccessResponse("查询成功", views))
}
