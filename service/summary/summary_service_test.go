/*
 * @module service/summary/summary_service_test
 * @description 汇总服务单元测试，覆盖洞察联表投影与推荐列表过滤
 */

package summary

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"insights-engine-service/service/models"
	"insights-engine-service/testutil"
)

// TestListInsights 洞察投影展开全部八个维度的名称与描述
func TestListInsights(t *testing.T) {
	tdb := testutil.NewTestDB()
	defer tdb.Close()

	factory := testutil.NewTestDataFactory(tdb.DB)
	factory.CreateInsight(
		testutil.WithContent("member overdue for wellness visit"),
		testutil.WithFeatures(2, 1, 3),
	)

	service := NewService(tdb.DB)
	views, err := service.ListInsights()
	require.NoError(t, err)
	require.Len(t, views, 1)

	view := views[0]
	assert.Equal(t, "member overdue for wellness visit", view.Content)
	assert.Equal(t, "Clinical", view.InsightType.Name)
	assert.NotEmpty(t, view.InsightType.Description)
	assert.Equal(t, "EHR", view.DataSource.Name)
	assert.Equal(t, "Medium", view.ConfidenceLevel.Name)
	assert.Equal(t, "High", view.ValuePriority.Name)
	assert.NotEmpty(t, view.CreatedAt)
}

// TestListInsightsEmpty 无数据时返回空切片
func TestListInsightsEmpty(t *testing.T) {
	tdb := testutil.NewTestDB()
	defer tdb.Close()

	service := NewService(tdb.DB)
	views, err := service.ListInsights()
	require.NoError(t, err)
	assert.Empty(t, views)
}

// TestListRecommendations 推荐投影携带源洞察正文并支持按洞察过滤
func TestListRecommendations(t *testing.T) {
	tdb := testutil.NewTestDB()
	defer tdb.Close()

	factory := testutil.NewTestDataFactory(tdb.DB)
	first := factory.CreateInsight(testutil.WithContent("first insight"))
	second := factory.CreateInsight(testutil.WithContent("second insight"))

	now := time.Now().UTC()
	for _, insight := range []*models.Insight{first, second} {
		require.NoError(t, tdb.DB.Create(&models.Recommendation{
			InsightID:          insight.ID,
			RecommendationText: "Send an email to select a primary care physician.",
			ConfidenceLevelID:  insight.ConfidenceLevelID,
			DeliveryChannelID:  1,
			Status:             models.RecommendationStatusPending,
			ModelVersion:       "1.0.0",
			CreatedAt:          now,
			UpdatedAt:          now,
		}).Error)
	}

	service := NewService(tdb.DB)

	all, err := service.ListRecommendations(0)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	filtered, err := service.ListRecommendations(second.ID)
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, second.ID, filtered[0].InsightID)
	assert.Equal(t, "second insight", filtered[0].InsightContent)
	assert.Equal(t, models.RecommendationStatusPending, filtered[0].Status)
	assert.Equal(t, "1.0.0", filtered[0].ModelVersion)
}
