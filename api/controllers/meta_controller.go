/*
 * @module api/controllers/meta_controller
 * @description 元数据控制器，提供参考目录维度与条目枚举，供运维人员构造批次时查询合法取值
 * @architecture MVC架构 - 控制器层
 * @documentReference dev_docs/backend_requirements.md
 * @stateFlow HTTP请求处理流程
 * @rules 只读枚举，输出顺序稳定
 * @dependencies insights-engine-service/service
 * @refs service/catalog/catalog_service.go
 */

package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"insights-engine-service/service"
	"insights-engine-service/service/catalog"
	"insights-engine-service/service/models"
)

// MetaController 元数据控制器
type MetaController struct {
	catalog *catalog.Service
}

// NewMetaController 创建元数据控制器实例
func NewMetaController() *MetaController {
	return &MetaController{
		catalog: service.GlobalCatalogService,
	}
}

// GetDimensions 获取维度键列表
// @Summary 获取参考目录维度列表
// @Description 列出全部维度键，顺序与CSV契约的列序一致
// @Tags 元数据
// @Produce json
// @Success 200 {object} APIResponse{data=[]string}
// @Router /meta/dimensions [get]
func (c *MetaController) GetDimensions(w http.ResponseWriter, r *http.Request) {
	render.Render(w, r, SuccessResponse("查询成功", models.DimensionKeys))
}

// GetDimensionEntries 获取维度条目列表
// @Summary 获取指定维度的条目列表
// @Description 按维度键列出目录条目的标识、名称与描述
// @Tags 元数据
// @Produce json
// @Param name path string true "维度键"
// @Success 200 {object} APIResponse{data=[]models.CatalogEntry}
// @Failure 404 {object} APIResponse
// @Failure 500 {object} APIResponse
// @Router /meta/dimensions/{name} [get]
func (c *MetaController) GetDimensionEntries(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if _, ok := models.DimensionTables[name]; !ok {
		render.Render(w, r, NotFoundResponse("未知的目录维度", nil))
		return
	}

	entries, err := c.catalog.Entries(name)
	if err != nil {
		render.Render(w, r, InternalErrorResponse("维度条目查询失败", nil))
		return
	}

	render.Render(w, r, SuccessResponse("查询成功", entries))
}
