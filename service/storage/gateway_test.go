/*
 * @module service/storage/gateway_test
 * @description 持久化网关单元测试，覆盖目录查找、去重检查与事务回滚
 */

package storage_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"insights-engine-service/service/models"
	"insights-engine-service/service/storage"
	"insights-engine-service/testutil"
)

// TestFindCatalogID 按名称查找维度条目标识
func TestFindCatalogID(t *testing.T) {
	tdb := testutil.NewTestDB()
	defer tdb.Close()

	gateway := storage.NewGormGateway(tdb.DB)

	id, err := gateway.FindCatalogID(models.DimensionDataSource, "EHR")
	require.NoError(t, err)
	assert.EqualValues(t, 1, id)

	_, err = gateway.FindCatalogID(models.DimensionDataSource, "Bogus")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	_, err = gateway.FindCatalogID("nonexistent_dimension", "EHR")
	assert.ErrorIs(t, err, storage.ErrUnknownDimension)
}

// TestContentExists 内容存在性检查
func TestContentExists(t *testing.T) {
	tdb := testutil.NewTestDB()
	defer tdb.Close()

	gateway := storage.NewGormGateway(tdb.DB)
	factory := testutil.NewTestDataFactory(tdb.DB)
	factory.CreateInsight(testutil.WithContent("persisted content"))

	exists, err := gateway.ContentExists("persisted content")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = gateway.ContentExists("never ingested")
	require.NoError(t, err)
	assert.False(t, exists)
}

// TestGetInsightFeatures 读取评分特征三元组
func TestGetInsightFeatures(t *testing.T) {
	tdb := testutil.NewTestDB()
	defer tdb.Close()

	gateway := storage.NewGormGateway(tdb.DB)
	factory := testutil.NewTestDataFactory(tdb.DB)
	insight := factory.CreateInsight(testutil.WithFeatures(3, 2, 3))

	features, err := gateway.GetInsightFeatures(insight.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 3, features.ConfidenceLevelID)
	assert.EqualValues(t, 2, features.TimelinessID)
	assert.EqualValues(t, 3, features.ValuePriorityID)

	_, err = gateway.GetInsightFeatures(9999)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

// TestWithTransactionRollback 回调返回错误时事务内写入全部回滚
func TestWithTransactionRollback(t *testing.T) {
	tdb := testutil.NewTestDB()
	defer tdb.Close()

	gateway := storage.NewGormGateway(tdb.DB)

	insertErr := errors.New("模拟存储故障")
	err := gateway.WithTransaction(func(tx *gorm.DB) error {
		if _, err := gateway.InsertInsight(tx, newInsight("rolled back content")); err != nil {
			return err
		}
		return insertErr
	})
	assert.ErrorIs(t, err, insertErr)

	exists, err := gateway.ContentExists("rolled back content")
	require.NoError(t, err)
	assert.False(t, exists)
}

// TestWithTransactionCommit 回调成功时事务提交
func TestWithTransactionCommit(t *testing.T) {
	tdb := testutil.NewTestDB()
	defer tdb.Close()

	gateway := storage.NewGormGateway(tdb.DB)

	err := gateway.WithTransaction(func(tx *gorm.DB) error {
		_, err := gateway.InsertInsight(tx, newInsight("committed content"))
		return err
	})
	require.NoError(t, err)

	exists, err := gateway.ContentExists("committed content")
	require.NoError(t, err)
	assert.True(t, exists)
}

func newInsight(content string) *models.Insight {
	return &models.Insight{
		Content:           content,
		InsightTypeID:     1,
		DataSourceID:      1,
		AudienceID:        1,
		DomainID:          1,
		ConfidenceLevelID: 1,
		TimelinessID:      1,
		AlignmentGoalID:   1,
		ValuePriorityID:   1,
		CreatedAt:         time.Now().UTC(),
	}
}
