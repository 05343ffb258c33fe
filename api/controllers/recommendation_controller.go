/*
 * @module api/controllers/recommendation_controller
 * @description 推荐控制器，触发洞察评分并提供推荐列表查询
 * @architecture MVC架构 - 控制器层
 * @documentReference dev_docs/backend_requirements.md
 * @stateFlow 请求接收 -> 评分器/汇总服务 -> 响应返回
 * @rules 洞察不存在与内部故障区分返回；存储故障泛化为内部错误不泄露细节
 * @dependencies insights-engine-service/service, github.com/spf13/cast
 * @refs service/recommendation/scorer.go, service/summary/summary_service.go
 */

package controllers

import (
	"errors"
	"net/http"

	"github.com/go-chi/render"
	"github.com/spf13/cast"

	"insights-engine-service/service"
	"insights-engine-service/service/recommendation"
	"insights-engine-service/service/summary"
)

// RecommendationController 推荐控制器
type RecommendationController struct {
	scorer  *recommendation.Scorer
	summary *summary.Service
}

// NewRecommendationController 创建推荐控制器实例
func NewRecommendationController() *RecommendationController {
	return &RecommendationController{
		scorer:  service.GlobalScorer,
		summary: service.GlobalSummaryService,
	}
}

// generateRequest 评分请求体，insight_id也可经查询参数传入
type generateRequest struct {
	InsightID int64 `json:"insight_id"`
}

// GenerateRecommendation 生成推荐
// @Summary 对指定洞察生成推荐
// @Description 读取洞察特征经分类器评分，持久化一条Pending状态的新推荐
// @Tags 推荐
// @Accept json
// @Produce json
// @Param insight_id query int false "洞察ID"
// @Param request body generateRequest false "请求体（insight_id）"
// @Success 200 {object} APIResponse{data=recommendation.ScoreResult}
// @Failure 400 {object} APIResponse
// @Failure 404 {object} APIResponse
// @Failure 500 {object} APIResponse
// @Router /recommendations/generate [post]
func (c *RecommendationController) GenerateRecommendation(w http.ResponseWriter, r *http.Request) {
	insightID := cast.ToInt64(r.URL.Query().Get("insight_id"))
	if insightID == 0 && r.Body != nil {
		var req generateRequest
		if err := render.DecodeJSON(r.Body, &req); err == nil {
			insightID = req.InsightID
		}
	}
	if insightID <= 0 {
		render.Render(w, r, BadRequestResponse("insight_id参数不能为空", nil))
		return
	}

	result, err := c.scorer.GenerateRecommendation(r.Context(), insightID)
	if err != nil {
		if errors.Is(err, recommendation.ErrInsightNotFound) {
			render.Render(w, r, NotFoundResponse("洞察不存在", nil))
			return
		}
		render.Render(w, r, InternalErrorResponse("推荐生成失败", nil))
		return
	}

	render.Render(w, r, SuccessResponse("推荐生成成功", result))
}

// ListRecommendations 获取推荐列表
// @Summary 获取推荐列表
// @Description 列出推荐及其源洞察正文，支持按洞察ID过滤
// @Tags 推荐
// @Produce json
// @Param insight_id query int false "按洞察ID过滤"
// @Success 200 {object} APIResponse{data=[]summary.RecommendationView}
// @Failure 500 {object} APIResponse
// @Router /recommendations [get]
func (c *RecommendationController) ListRecommendations(w http.ResponseWriter, r *http.Request) {
	insightID := cast.ToInt64(r.URL.Query().Get("insight_id"))

	views, err := c.summary.ListRecommendations(insightID)
	if err != nil {
		render.Render(w, r, InternalErrorResponse("推荐查询失败", nil))
		return
	}

	render.Render(w, r, SuccessResponse("查询成功", views))
}
