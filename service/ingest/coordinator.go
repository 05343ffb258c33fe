/*
 * @module service/ingest/coordinator
 * @description 摄取协调器，驱动批次的解析、校验、外键解析与写入循环，
 *              逐行隔离失败并产出批次结果汇总
 * @architecture 分层架构 - 业务服务层
 * @documentReference dev_docs/backend_requirements.md
 * @stateFlow Start -> HeaderCheck -> RowLoop -> Finalize
 * @rules 表头失败整批拒绝、零行处理；行失败记录后继续，不回滚已接受行；
 *        每行单独事务提交，接受计数始终可持久化；行按文件顺序严格处理
 * @dependencies insights-engine-service/service/catalog, insights-engine-service/service/storage
 * @refs api/controllers/ingest_controller.go
 */

package ingest

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"insights-engine-service/service/catalog"
	"insights-engine-service/service/event"
	"insights-engine-service/service/models"
	"insights-engine-service/service/storage"
	"insights-engine-service/service/utils"
)

// Coordinator 摄取协调器
type Coordinator struct {
	gateway   storage.Gateway
	catalog   *catalog.Service
	validator *Validator
	publisher *event.Publisher
}

// NewCoordinator 创建摄取协调器实例，publisher可为nil
func NewCoordinator(gateway storage.Gateway, catalogService *catalog.Service, publisher *event.Publisher) *Coordinator {
	return &Coordinator{
		gateway:   gateway,
		catalog:   catalogService,
		validator: NewValidator(gateway),
		publisher: publisher,
	}
}

// IngestBatch 处理一个批次。返回错误表示整批失败（未知契约、缺表头、表头不符、
// 上下文取消）；逐行失败作为数据记入结果，不上抛。
func (c *Coordinator) IngestBatch(ctx context.Context, payload []byte, schemaName, filename string) (*models.BatchResult, error) {
	schema, ok := LookupSchema(schemaName)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownSchema, schemaName)
	}

	normalized, err := utils.NormalizePayload(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEmptyPayload, err)
	}

	reader := csv.NewReader(bytes.NewReader(normalized))
	// 字段数差异由校验器逐行报告，而不是让解析器整批中断
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, ErrEmptyPayload
	}
	if err := c.validator.ValidateHeader(header, schema); err != nil {
		batchesProcessed.WithLabelValues("rejected").Inc()
		return nil, err
	}

	result := &models.BatchResult{
		BatchID:    uuid.New().String(),
		Filename:   filename,
		Schema:     schema.Name,
		Rejections: []models.RowRejection{},
	}

	// 批内已接受内容集合，封堵同批重复行在首行提交前通过存储检查的竞态
	seen := make(map[string]bool)
	line := 1

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			c.reject(result, line, "", models.RejectReasonMalformedRow)
			continue
		}

		if reason, ok := c.processRow(record, schema, seen); !ok {
			c.reject(result, line, rowKey(record, schema), reason)
			continue
		}

		result.Accepted++
		rowsAccepted.Inc()
	}

	batchesProcessed.WithLabelValues("processed").Inc()
	slog.Info("批次摄取完成",
		"batch_id", result.BatchID,
		"schema", result.Schema,
		"accepted", result.Accepted,
		"rejected", len(result.Rejections),
	)

	if c.publisher != nil {
		c.publisher.PublishBatchCompleted(ctx, result)
	}
	return result, nil
}

// processRow 对单行执行 校验 -> 解析 -> 写入，返回失败原因与是否成功。
// 任何失败都不会越过本函数边界上抛。
func (c *Coordinator) processRow(record []string, schema *Schema, seen map[string]bool) (string, bool) {
	if err := c.validator.ValidateFieldCount(record, schema); err != nil {
		return models.RejectReasonMalformedRow, false
	}

	insight := &models.Insight{CreatedAt: time.Now().UTC()}
	content := ""

	for i, col := range schema.Columns {
		value := record[i]
		switch col.Kind {
		case KindContent:
			content = value
		case KindCreatedAt:
			t, err := utils.ParseTime(value)
			if err != nil {
				return models.RejectReasonMalformedRow, false
			}
			insight.CreatedAt = t
		case KindDimension:
			id, ok := c.catalog.ResolveID(col.Dimension, value)
			if !ok {
				return fmt.Sprintf("%s:%s", models.RejectReasonUnresolvedReference, col.Dimension), false
			}
			applyDimension(insight, col.Dimension, id)
		}
	}
	insight.Content = content

	if err := c.validator.CheckDuplicate(content, seen); err != nil {
		if errors.Is(err, ErrDuplicateContent) {
			return models.RejectReasonDuplicateContent, false
		}
		return models.RejectReasonStorageUnavailable, false
	}

	// 每行单独事务：已接受的行立即持久化，后续行的结局不影响它
	err := c.gateway.WithTransaction(func(tx *gorm.DB) error {
		_, err := c.gateway.InsertInsight(tx, insight)
		return err
	})
	if err != nil {
		slog.Error("洞察写入失败", "content", content, "error", err)
		return models.RejectReasonStorageUnavailable, false
	}

	seen[content] = true
	return "", true
}

// reject 追加一条拒绝记录并计数
func (c *Coordinator) reject(result *models.BatchResult, line int, key, reason string) {
	result.Rejections = append(result.Rejections, models.RowRejection{
		Line:    line,
		Content: key,
		Reason:  reason,
	})
	rowsRejected.WithLabelValues(reason).Inc()
}

// applyDimension 将解析出的目录标识落到洞察对应外键上
func applyDimension(insight *models.Insight, dimension string, id int64) {
	switch dimension {
	case models.DimensionInsightType:
		insight.InsightTypeID = id
	case models.DimensionDataSource:
		insight.DataSourceID = id
	case models.DimensionAudience:
		insight.AudienceID = id
	case models.DimensionDomain:
		insight.DomainID = id
	case models.DimensionConfidenceLevel:
		insight.ConfidenceLevelID = id
	case models.DimensionTimeliness:
		insight.TimelinessID = id
	case models.DimensionDeliveryChannel:
		insight.DeliveryChannelID = &id
	case models.DimensionAlignmentGoal:
		insight.AlignmentGoalID = id
	case models.DimensionValuePriority:
		insight.ValuePriorityID = id
	}
}

// rowKey 取该行的去重键字段作为拒绝记录的行标识
func rowKey(record []string, schema *Schema) string {
	idx := schema.ContentIndex()
	if idx >= 0 && idx < len(record) {
		return record[idx]
	}
	return ""
}
