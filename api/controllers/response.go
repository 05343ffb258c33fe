/*
 * @module api/controllers/response
 * @description 统一API响应结构与构造函数
 * @architecture MVC架构 - 控制器层
 * @documentReference dev_docs/backend_requirements.md
 * @rules 成功Status为0，失败Status为对应HTTP状态码；HTTP状态码经render.Render写出
 * @dependencies github.com/go-chi/render
 */

package controllers

import (
	"net/http"

	"github.com/go-chi/render"
)

// APIResponse 统一API响应结构
type APIResponse struct {
	Status int         `json:"status" example:"0"`
	Msg    string      `json:"msg" example:"操作成功"`
	Data   interface{} `json:"data,omitempty"`

	httpStatus int
}

// Render 实现render.Renderer，写出HTTP状态码
func (resp *APIResponse) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, resp.httpStatus)
	return nil
}

// SuccessResponse 构造成功响应
func SuccessResponse(msg string, data interface{}) *APIResponse {
	return &APIResponse{Status: 0, Msg: msg, Data: data, httpStatus: http.StatusOK}
}

// BadRequestResponse 构造参数错误响应
func BadRequestResponse(msg string, data interface{}) *APIResponse {
	return &APIResponse{Status: http.StatusBadRequest, Msg: msg, Data: data, httpStatus: http.StatusBadRequest}
}

// NotFoundResponse 构造未找到响应
func NotFoundResponse(msg string, data interface{}) *APIResponse {
	return &APIResponse{Status: http.StatusNotFound, Msg: msg, Data: data, httpStatus: http.StatusNotFound}
}

// InternalErrorResponse 构造内部错误响应，不泄露存储层细节
func InternalErrorResponse(msg string, data interface{}) *APIResponse {
	return &APIResponse{Status: http.StatusInternalServerError, Msg: msg, Data: data, httpStatus: http.StatusInternalServerError}
}
