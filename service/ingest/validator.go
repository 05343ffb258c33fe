/*
 * @module service/ingest/validator
 * @description 行校验器，负责表头契约校验、字段数校验与内容去重检查
 * @architecture 分层架构 - 数据校验层
 * @documentReference dev_docs/backend_requirements.md
 * @stateFlow 表头校验 -> 逐行字段数校验 -> 去重检查
 * @rules 表头不符整批拒绝；字段数校验先于任何数据库交互；去重检查逐行进行
 * @dependencies insights-engine-service/service/storage
 * @refs service/ingest/coordinator.go
 */

package ingest

import (
	"errors"
	"fmt"

	"insights-engine-service/service/storage"
)

// 整批失败错误
var (
	// ErrUnknownSchema 调用方指定的表头契约未注册
	ErrUnknownSchema = errors.New("未知的表头契约")
	// ErrEmptyPayload 载荷为空或缺少表头行
	ErrEmptyPayload = errors.New("文件为空或缺少表头行")
	// ErrSchemaMismatch 表头与契约在存在性、顺序或拼写上不一致
	ErrSchemaMismatch = errors.New("表头与契约不一致")
)

// 逐行失败错误
var (
	// ErrMalformedRow 行字段数与契约不符或字段无法解析
	ErrMalformedRow = errors.New("行格式不合法")
	// ErrDuplicateContent 洞察内容与已持久化内容重复
	ErrDuplicateContent = errors.New("洞察内容重复")
)

// Validator 行校验器
type Validator struct {
	gateway storage.Gateway
}

// NewValidator 创建行校验器实例
func NewValidator(gateway storage.Gateway) *Validator {
	return &Validator{gateway: gateway}
}

// ValidateHeader 校验表头与契约完全一致：存在性、顺序、拼写，不做部分接受
func (v *Validator) ValidateHeader(header []string, schema *Schema) error {
	expected := schema.Header()
	if len(header) != len(expected) {
		return fmt.Errorf("%w: 期望%d列，实际%d列", ErrSchemaMismatch, len(expected), len(header))
	}
	for i, name := range expected {
		if header[i] != name {
			return fmt.Errorf("%w: 第%d列期望%q，实际%q", ErrSchemaMismatch, i+1, name, header[i])
		}
	}
	return nil
}

// ValidateFieldCount 校验行字段数，先于任何数据库交互执行
func (v *Validator) ValidateFieldCount(record []string, schema *Schema) error {
	if len(record) != len(schema.Columns) {
		return fmt.Errorf("%w: 期望%d个字段，实际%d个", ErrMalformedRow, len(schema.Columns), len(record))
	}
	return nil
}

// CheckDuplicate 对照已持久化内容与本批次已接受内容做精确去重
func (v *Validator) CheckDuplicate(content string, seen map[string]bool) error {
	if seen[content] {
		return ErrDuplicateContent
	}

	exists, err := v.gateway.ContentExists(content)
	if err != nil {
		return err
	}
	if exists {
		return ErrDuplicateContent
	}
	return nil
}
