/*
 * @module service/recommendation/classifier
 * @description 分类器构件加载与推断。构件为带版本的JSON决策森林文件，
 *              由离线训练流程产出，含固定的标签到推荐文案映射
 * @architecture 分层架构 - 模型推断层
 * @documentReference dev_docs/backend_requirements.md
 * @stateFlow 进程启动时加载一次 -> 运行期只读推断
 * @rules 构件加载失败为致命错误；推断确定性：同一特征向量恒产出同一标签
 * @dependencies encoding/json
 * @refs service/recommendation/scorer.go
 */

package recommendation

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strconv"
)

// FeatureCount 特征向量维数：置信级别、时效性、价值优先级
const FeatureCount = 3

// FallbackText 标签未在映射中时的兜底文案
const FallbackText = "No recommendation available."

// treeNode 决策树节点。Leaf非nil时为叶子，否则按阈值走左右子树
type treeNode struct {
	Feature   int     `json:"feature"`
	Threshold float64 `json:"threshold"`
	Left      int     `json:"left"`
	Right     int     `json:"right"`
	Leaf      *int    `json:"leaf,omitempty"`
}

// decisionTree 单棵决策树，节点0为根
type decisionTree struct {
	Nodes []treeNode `json:"nodes"`
}

// artifact 分类器构件文件结构
type artifact struct {
	Version      string            `json:"version"`
	FeatureNames []string          `json:"feature_names"`
	Trees        []decisionTree    `json:"trees"`
	Labels       map[string]string `json:"labels"`
}

// Classifier 已加载的决策森林分类器，进程级只读共享
type Classifier struct {
	version string
	trees   []decisionTree
	labels  map[int]string
}

// LoadClassifier 从文件加载分类器构件。任何失败都应视为致命（模型不可用）。
func LoadClassifier(path string) (*Classifier, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("读取分类器构件失败: %w", err)
	}

	var art artifact
	if err := json.Unmarshal(data, &art); err != nil {
		return nil, fmt.Errorf("解析分类器构件失败: %w", err)
	}

	if len(art.Trees) == 0 {
		return nil, fmt.Errorf("分类器构件不含决策树: %s", path)
	}
	if len(art.FeatureNames) != FeatureCount {
		return nil, fmt.Errorf("分类器特征数不符: 期望%d，实际%d", FeatureCount, len(art.FeatureNames))
	}
	for ti, tree := range art.Trees {
		if len(tree.Nodes) == 0 {
			return nil, fmt.Errorf("第%d棵决策树为空", ti)
		}
		for ni, node := range tree.Nodes {
			if node.Leaf != nil {
				continue
			}
			if node.Feature < 0 || node.Feature >= FeatureCount {
				return nil, fmt.Errorf("第%d棵树第%d个节点特征下标越界: %d", ti, ni, node.Feature)
			}
			if node.Left < 0 || node.Left >= len(tree.Nodes) || node.Right < 0 || node.Right >= len(tree.Nodes) {
				return nil, fmt.Errorf("第%d棵树第%d个节点子树下标越界", ti, ni)
			}
		}
	}

	labels := make(map[int]string, len(art.Labels))
	for key, text := range art.Labels {
		label, err := strconv.Atoi(key)
		if err != nil {
			return nil, fmt.Errorf("标签键不是整数: %q", key)
		}
		labels[label] = text
	}

	return &Classifier{
		version: art.Version,
		trees:   art.Trees,
		labels:  labels,
	}, nil
}

// Version 构件版本号
func (c *Classifier) Version() string {
	return c.version
}

// Predict 对固定顺序的特征向量做多数表决推断。平票取较小标签，保证确定性。
func (c *Classifier) Predict(features [FeatureCount]float64) int {
	votes := make(map[int]int)
	for _, tree := range c.trees {
		votes[tree.predict(features)]++
	}

	labels := make([]int, 0, len(votes))
	for label := range votes {
		labels = append(labels, label)
	}
	sort.Ints(labels)

	best := labels[0]
	for _, label := range labels[1:] {
		if votes[label] > votes[best] {
			best = label
		}
	}
	return best
}

// predict 单树推断，步数上界防御构件中的环
func (t *decisionTree) predict(features [FeatureCount]float64) int {
	idx := 0
	for step := 0; step <= len(t.Nodes); step++ {
		node := t.Nodes[idx]
		if node.Leaf != nil {
			return *node.Leaf
		}
		if features[node.Feature] <= node.Threshold {
			idx = node.Left
		} else {
			idx = node.Right
		}
	}
	return -1
}

// Label 查询标签对应的推荐文案
func (c *Classifier) Label(label int) (string, bool) {
	text, ok := c.labels[label]
	return text, ok
}
