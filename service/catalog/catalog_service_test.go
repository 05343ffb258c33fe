/*
 * @module service/catalog/catalog_service_test
 * @description 参考目录服务单元测试，覆盖精确解析、快照刷新与枚举
 */

package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"insights-engine-service/service/models"
	"insights-engine-service/service/storage"
	"insights-engine-service/testutil"
)

func setupService(t *testing.T) (*Service, *testutil.TestDB) {
	tdb := testutil.NewTestDB()
	service, err := NewService(storage.NewGormGateway(tdb.DB))
	require.NoError(t, err)
	return service, tdb
}

// TestResolveID 名称精确解析到目录标识
func TestResolveID(t *testing.T) {
	service, tdb := setupService(t)
	defer tdb.Close()

	id, ok := service.ResolveID(models.DimensionInsightType, "Clinical")
	assert.True(t, ok)
	assert.EqualValues(t, 1, id)

	id, ok = service.ResolveID(models.DimensionConfidenceLevel, "High")
	assert.True(t, ok)
	assert.EqualValues(t, 3, id)
}

// TestResolveIDExactMatchOnly 大小写偏差与未知名称均不解析
func TestResolveIDExactMatchOnly(t *testing.T) {
	service, tdb := setupService(t)
	defer tdb.Close()

	_, ok := service.ResolveID(models.DimensionInsightType, "clinical")
	assert.False(t, ok)

	_, ok = service.ResolveID(models.DimensionInsightType, "Bogus")
	assert.False(t, ok)

	_, ok = service.ResolveID("nonexistent_dimension", "Clinical")
	assert.False(t, ok)
}

// TestRefresh 刷新后快照可见新增的目录条目
func TestRefresh(t *testing.T) {
	service, tdb := setupService(t)
	defer tdb.Close()

	_, ok := service.ResolveID(models.DimensionInsightType, "Behavioral")
	require.False(t, ok)

	require.NoError(t, tdb.DB.Table("insight_types").Create(map[string]interface{}{
		"name":        "Behavioral",
		"description": "behavioral health insight",
	}).Error)

	// 快照在刷新前保持旧视图
	_, ok = service.ResolveID(models.DimensionInsightType, "Behavioral")
	assert.False(t, ok)

	require.NoError(t, service.Refresh())

	_, ok = service.ResolveID(models.DimensionInsightType, "Behavioral")
	assert.True(t, ok)
}

// TestEntries 枚举维度全部条目
func TestEntries(t *testing.T) {
	service, tdb := setupService(t)
	defer tdb.Close()

	entries, err := service.Entries(models.DimensionConfidenceLevel)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "Low", entries[0].Name)
	assert.Equal(t, "Medium", entries[1].Name)
	assert.Equal(t, "High", entries[2].Name)

	_, err = service.Entries("nonexistent_dimension")
	assert.ErrorIs(t, err, storage.ErrUnknownDimension)
}
