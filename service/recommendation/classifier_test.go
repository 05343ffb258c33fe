/*
 * @module service/recommendation/classifier_test
 * @description 分类器构件加载与推断单元测试
 */

package recommendation

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testArtifact = `{
  "version": "1.0.0",
  "feature_names": ["confidence_level_id", "timeliness_id", "value_priority_id"],
  "trees": [
    {
      "nodes": [
        {"feature": 0, "threshold": 1.5, "left": 1, "right": 2},
        {"leaf": 0},
        {"feature": 2, "threshold": 2.5, "left": 3, "right": 4},
        {"leaf": 1},
        {"leaf": 2}
      ]
    },
    {
      "nodes": [
        {"feature": 1, "threshold": 3.5, "left": 1, "right": 2},
        {"feature": 0, "threshold": 1.5, "left": 3, "right": 4},
        {"leaf": 2},
        {"leaf": 0},
        {"leaf": 1}
      ]
    },
    {
      "nodes": [
        {"feature": 2, "threshold": 2.5, "left": 1, "right": 2},
        {"leaf": 1},
        {"leaf": 2}
      ]
    }
  ],
  "labels": {
    "0": "Send targeted notification about health resources.",
    "1": "Send an email to select a primary care physician.",
    "2": "Provide manual review for custom recommendation."
  }
}`

// writeArtifact 将构件内容写入临时文件并返回路径
func writeArtifact(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "model.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// TestLoadClassifier 测试构件加载与版本读取
func TestLoadClassifier(t *testing.T) {
	classifier, err := LoadClassifier(writeArtifact(t, testArtifact))
	require.NoError(t, err)
	assert.Equal(t, "1.0.0", classifier.Version())
}

// TestLoadClassifierInvalidArtifacts 测试非法构件全部拒绝加载
func TestLoadClassifierInvalidArtifacts(t *testing.T) {
	cases := []struct {
		name    string
		content string
	}{
		{"非JSON内容", "not json"},
		{"无决策树", `{"version":"1","feature_names":["a","b","c"],"trees":[],"labels":{}}`},
		{"特征数不符", `{"version":"1","feature_names":["a"],"trees":[{"nodes":[{"leaf":0}]}],"labels":{}}`},
		{"特征下标越界", `{"version":"1","feature_names":["a","b","c"],"trees":[{"nodes":[{"feature":5,"threshold":1,"left":1,"right":1},{"leaf":0}]}],"labels":{}}`},
		{"子树下标越界", `{"version":"1","feature_names":["a","b","c"],"trees":[{"nodes":[{"feature":0,"threshold":1,"left":9,"right":1},{"leaf":0}]}],"labels":{}}`},
		{"标签键非整数", `{"version":"1","feature_names":["a","b","c"],"trees":[{"nodes":[{"leaf":0}]}],"labels":{"x":"text"}}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := LoadClassifier(writeArtifact(t, tc.content))
			assert.Error(t, err)
		})
	}
}

// TestLoadClassifierMissingFile 构件文件缺失时加载失败
func TestLoadClassifierMissingFile(t *testing.T) {
	_, err := LoadClassifier(filepath.Join(t.TempDir(), "absent.json"))
	assert.Error(t, err)
}

// TestPredict 测试多数表决推断结果
func TestPredict(t *testing.T) {
	classifier, err := LoadClassifier(writeArtifact(t, testArtifact))
	require.NoError(t, err)

	cases := []struct {
		name     string
		features [FeatureCount]float64
		label    int
	}{
		{"低置信低优先", [FeatureCount]float64{1, 1, 1}, 0},
		{"中置信中优先", [FeatureCount]float64{2, 1, 2}, 1},
		{"高置信高优先", [FeatureCount]float64{3, 4, 3}, 2},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.label, classifier.Predict(tc.features))
		})
	}
}

// TestPredictDeterministic 同一特征向量重复推断结果恒定
func TestPredictDeterministic(t *testing.T) {
	classifier, err := LoadClassifier(writeArtifact(t, testArtifact))
	require.NoError(t, err)

	features := [FeatureCount]float64{2, 1, 2}
	first := classifier.Predict(features)
	for i := 0; i < 100; i++ {
		assert.Equal(t, first, classifier.Predict(features))
	}
}

// TestLabel 测试标签到文案的映射
func TestLabel(t *testing.T) {
	classifier, err := LoadClassifier(writeArtifact(t, testArtifact))
	require.NoError(t, err)

	text, ok := classifier.Label(1)
	assert.True(t, ok)
	assert.Equal(t, "Send an email to select a primary care physician.", text)

	_, ok = classifier.Label(99)
	assert.False(t, ok)
}
