/*
 * @module service/models/ingest
 * @description 批次摄取结果模型，逐行拒绝记录与接受计数
 * @architecture 分层架构 - 数据模型层
 * @documentReference dev_docs/model.md
 * @stateFlow 随单次摄取调用生成并返回，不落库
 * @rules 逐行失败以数据形式记录，不以异常形式上抛
 * @refs service/ingest/coordinator.go
 */

package models

// 逐行拒绝原因常量
const (
	RejectReasonMalformedRow        = "MalformedRow"
	RejectReasonDuplicateContent    = "DuplicateContent"
	RejectReasonUnresolvedReference = "UnresolvedReference"
	RejectReasonStorageUnavailable  = "StorageUnavailable"
)

// RowRejection 单行拒绝记录，Content为该行去重键字段
type RowRejection struct {
	Line    int    `json:"line"`
	Content string `json:"content"`
	Reason  string `json:"reason"`
}

// BatchResult 批次摄取结果，仅在单次摄取调用期间存在
type BatchResult struct {
	BatchID    string         `json:"batch_id"`
	Filename   string         `json:"filename,omitempty"`
	Schema     string         `json:"schema"`
	Accepted   int            `json:"accepted"`
	Rejections []RowRejection `json:"rejections"`
}
