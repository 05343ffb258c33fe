/*
 * @module api/controllers/ingest_controller
 * @description 洞察批次摄取控制器，接收CSV上传并返回批次结果汇总
 * @architecture MVC架构 - 控制器层
 * @documentReference dev_docs/backend_requirements.md
 * @stateFlow 文件接收 -> 摄取协调器 -> 批次结果返回
 * @rules 无文件、未知契约、表头不符返回整批失败；部分行被拒仍按处理成功返回
 * @dependencies insights-engine-service/service, github.com/go-chi/render
 * @refs service/ingest/coordinator.go
 */

package controllers

import (
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/render"

	"insights-engine-service/service"
	"insights-engine-service/service/ingest"
)

// 上传文件大小上限，同时约束了单批行数
const maxUploadBytes = 32 << 20

// IngestController 洞察批次摄取控制器
type IngestController struct {
	coordinator *ingest.Coordinator
}

// NewIngestController 创建摄取控制器实例
func NewIngestController() *IngestController {
	return &IngestController{
		coordinator: service.GlobalCoordinator,
	}
}

// UploadInsights 上传洞察批次
// @Summary 上传洞察批次CSV
// @Description 接收带表头的CSV文件，逐行校验、解析外键并写入；行级失败记入结果不中断批次
// @Tags 洞察摄取
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "CSV文件"
// @Param schema query string false "表头契约名" default(insights_v1) Enums(insights_v1,insights_v2)
// @Success 200 {object} APIResponse{data=models.BatchResult}
// @Failure 400 {object} APIResponse
// @Failure 500 {object} APIResponse
// @Router /insights/upload [post]
func (c *IngestController) UploadInsights(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		render.Render(w, r, BadRequestResponse("请求不是合法的multipart表单", nil))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		render.Render(w, r, BadRequestResponse("未上传文件", nil))
		return
	}
	defer file.Close()

	payload, err := io.ReadAll(io.LimitReader(file, maxUploadBytes))
	if err != nil {
		render.Render(w, r, BadRequestResponse("读取上传文件失败", nil))
		return
	}

	schemaName := r.URL.Query().Get("schema")

	result, err := c.coordinator.IngestBatch(r.Context(), payload, schemaName, header.Filename)
	if err != nil {
		switch {
		case errors.Is(err, ingest.ErrUnknownSchema),
			errors.Is(err, ingest.ErrEmptyPayload),
			errors.Is(err, ingest.ErrSchemaMismatch):
			render.Render(w, r, BadRequestResponse(err.Error(), nil))
		default:
			render.Render(w, r, InternalErrorResponse("批次处理失败", nil))
		}
		return
	}

	render.Render(w, r, SuccessResponse("批次处理完成", result))
}
