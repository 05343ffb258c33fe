/*
 * @module service/recommendation/scorer_test
 * @description 推荐评分器单元测试，覆盖评分落库、兜底文案与洞察缺失
 */

package recommendation

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"insights-engine-service/service/models"
	"insights-engine-service/service/storage"
	"insights-engine-service/testutil"
)

// TestGenerateRecommendation 评分后写入一条Pending推荐，置信级别复制自源洞察
func TestGenerateRecommendation(t *testing.T) {
	tdb := testutil.NewTestDB()
	defer tdb.Close()

	factory := testutil.NewTestDataFactory(tdb.DB)
	insight := factory.CreateInsight(testutil.WithFeatures(2, 1, 2))

	classifier, err := LoadClassifier(writeArtifact(t, testArtifact))
	require.NoError(t, err)

	scorer := NewScorer(storage.NewGormGateway(tdb.DB), classifier, nil)
	result, err := scorer.GenerateRecommendation(context.Background(), insight.ID)
	require.NoError(t, err)

	assert.Equal(t, "Send an email to select a primary care physician.", result.RecommendationText)
	assert.Equal(t, "1.0.0", result.ModelVersion)

	var rec models.Recommendation
	require.NoError(t, tdb.DB.Take(&rec, result.RecommendationID).Error)
	assert.Equal(t, insight.ID, rec.InsightID)
	assert.Equal(t, models.RecommendationStatusPending, rec.Status)
	assert.EqualValues(t, 2, rec.ConfidenceLevelID)
	assert.Equal(t, DefaultDeliveryChannelID, rec.DeliveryChannelID)
	assert.Equal(t, result.RecommendationText, rec.RecommendationText)
}

// TestGenerateRecommendationNotIdempotent 重复评分同一洞察产生多条推荐
func TestGenerateRecommendationNotIdempotent(t *testing.T) {
	tdb := testutil.NewTestDB()
	defer tdb.Close()

	factory := testutil.NewTestDataFactory(tdb.DB)
	insight := factory.CreateInsight()

	classifier, err := LoadClassifier(writeArtifact(t, testArtifact))
	require.NoError(t, err)

	scorer := NewScorer(storage.NewGormGateway(tdb.DB), classifier, nil)
	first, err := scorer.GenerateRecommendation(context.Background(), insight.ID)
	require.NoError(t, err)
	second, err := scorer.GenerateRecommendation(context.Background(), insight.ID)
	require.NoError(t, err)
	assert.NotEqual(t, first.RecommendationID, second.RecommendationID)

	var count int64
	tdb.DB.Model(&models.Recommendation{}).Where("insight_id = ?", insight.ID).Count(&count)
	assert.EqualValues(t, 2, count)
}

// TestGenerateRecommendationFallbackText 标签无映射时使用兜底文案
func TestGenerateRecommendationFallbackText(t *testing.T) {
	tdb := testutil.NewTestDB()
	defer tdb.Close()

	factory := testutil.NewTestDataFactory(tdb.DB)
	insight := factory.CreateInsight(testutil.WithFeatures(2, 1, 2))

	// 构件标签缺少1，特征(2,1,2)推断结果为1
	sparse := `{
	  "version": "0.9.0",
	  "feature_names": ["confidence_level_id", "timeliness_id", "value_priority_id"],
	  "trees": [
	    {
	      "nodes": [
	        {"feature": 0, "threshold": 1.5, "left": 1, "right": 2},
	        {"leaf": 0},
	        {"leaf": 1}
	      ]
	    }
	  ],
	  "labels": {"0": "Send targeted notification about health resources."}
	}`

	classifier, err := LoadClassifier(writeArtifact(t, sparse))
	require.NoError(t, err)

	scorer := NewScorer(storage.NewGormGateway(tdb.DB), classifier, nil)
	result, err := scorer.GenerateRecommendation(context.Background(), insight.ID)
	require.NoError(t, err)
	assert.Equal(t, FallbackText, result.RecommendationText)

	var rec models.Recommendation
	require.NoError(t, tdb.DB.Take(&rec, result.RecommendationID).Error)
	assert.Equal(t, FallbackText, rec.RecommendationText)
}

// TestGenerateRecommendationInsightNotFound 洞察不存在时返回业务错误且不落库
func TestGenerateRecommendationInsightNotFound(t *testing.T) {
	tdb := testutil.NewTestDB()
	defer tdb.Close()

	classifier, err := LoadClassifier(writeArtifact(t, testArtifact))
	require.NoError(t, err)

	scorer := NewScorer(storage.NewGormGateway(tdb.DB), classifier, nil)
	_, err = scorer.GenerateRecommendation(context.Background(), 9999)
	assert.ErrorIs(t, err, ErrInsightNotFound)

	var count int64
	tdb.DB.Model(&models.Recommendation{}).Count(&count)
	assert.EqualValues(t, 0, count)
}
