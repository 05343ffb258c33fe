/*
 * @module service/ingest/metrics
 * @description 摄取链路Prometheus指标
 * @architecture 监控层
 * @documentReference dev_docs/backend_requirements.md
 * @stateFlow 摄取协调器在行与批次边界上计数
 * @dependencies github.com/prometheus/client_golang
 * @refs main.go /metrics
 */

package ingest

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	rowsAccepted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "insights_ingest_rows_accepted_total",
		Help: "已接受并持久化的洞察行数",
	})

	rowsRejected = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "insights_ingest_rows_rejected_total",
		Help: "按原因统计的被拒绝行数",
	}, []string{"reason"})

	batchesProcessed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "insights_ingest_batches_total",
		Help: "按结果统计的批次数",
	}, []string{"outcome"})
)
