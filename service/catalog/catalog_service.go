/*
 * @module service/catalog/catalog_service
 * @description 参考目录服务，启动时整体加载九个维度的只读快照，提供外键解析与枚举，
 *              支持定时刷新以同步运维人员更新的参考数据
 * @architecture 分层架构 - 业务服务层
 * @documentReference dev_docs/backend_requirements.md
 * @stateFlow 启动加载 -> 运行期只读解析 -> 定时整体替换快照
 * @rules 名称解析为精确、大小写敏感匹配，无模糊匹配与默认回退标识
 * @dependencies insights-engine-service/service/storage, github.com/robfig/cron/v3
 * @refs service/ingest/coordinator.go
 */

package catalog

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/robfig/cron/v3"

	"insights-engine-service/service/models"
	"insights-engine-service/service/storage"
)

// snapshot 维度名称到标识的只读快照
type snapshot map[string]map[string]int64

// Service 参考目录服务
type Service struct {
	gateway storage.Gateway

	mu      sync.RWMutex
	indexes snapshot

	cron *cron.Cron
}

// NewService 创建参考目录服务并加载初始快照
func NewService(gateway storage.Gateway) (*Service, error) {
	s := &Service{gateway: gateway}
	if err := s.Refresh(); err != nil {
		return nil, fmt.Errorf("加载参考目录失败: %w", err)
	}
	return s, nil
}

// Refresh 重新加载全部维度并原子替换快照
func (s *Service) Refresh() error {
	fresh := make(snapshot, len(models.DimensionKeys))

	for _, dimension := range models.DimensionKeys {
		entries, err := s.gateway.ListCatalogEntries(dimension)
		if err != nil {
			return err
		}
		index := make(map[string]int64, len(entries))
		for _, entry := range entries {
			index[entry.Name] = entry.ID
		}
		fresh[dimension] = index
	}

	s.mu.Lock()
	s.indexes = fresh
	s.mu.Unlock()

	slog.Info("参考目录快照已刷新", "dimensions", len(fresh))
	return nil
}

// ResolveID 将维度内的可读名称解析为目录标识，精确匹配
func (s *Service) ResolveID(dimension, name string) (int64, bool) {
	s.mu.RLock()
	index, ok := s.indexes[dimension]
	s.mu.RUnlock()
	if !ok {
		return 0, false
	}

	id, ok := index[name]
	return id, ok
}

// Entries 列出某维度的全部条目，供枚举接口使用
func (s *Service) Entries(dimension string) ([]models.CatalogEntry, error) {
	return s.gateway.ListCatalogEntries(dimension)
}

// StartAutoRefresh 按cron表达式启动定时刷新
func (s *Service) StartAutoRefresh(spec string) error {
	c := cron.New()
	_, err := c.AddFunc(spec, func() {
		if err := s.Refresh(); err != nil {
			slog.Error("参考目录定时刷新失败", "error", err)
		}
	})
	if err != nil {
		return fmt.Errorf("无效的目录刷新cron表达式: %w", err)
	}

	c.Start()
	s.cron = c
	slog.Info("参考目录定时刷新已启动", "cron", spec)
	return nil
}

// StopAutoRefresh 停止定时刷新
func (s *Service) StopAutoRefresh() {
	if s.cron != nil {
		s.cron.Stop()
	}
}
