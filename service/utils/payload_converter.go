/*
 * @module service/utils/payload_converter
 * @description 上传载荷规范化工具，处理UTF-8 BOM剥离、GBK转码与时间字段解析
 * @architecture 工具层
 * @documentReference dev_docs/backend_requirements.md
 * @stateFlow 载荷读取 -> 编码检测 -> UTF-8输出
 * @rules 非法UTF-8按GBK尝试解码，解码失败上抛
 * @dependencies golang.org/x/text/encoding/simplifiedchinese, golang.org/x/text/transform
 * @refs service/ingest/coordinator.go
 */

package utils

import (
	"bytes"
	"fmt"
	"time"
	"unicode/utf8"

	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/transform"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// NormalizePayload 将上传载荷规范化为无BOM的UTF-8字节
func NormalizePayload(data []byte) ([]byte, error) {
	data = bytes.TrimPrefix(data, utf8BOM)

	if utf8.Valid(data) {
		return data, nil
	}

	// 非法UTF-8，尝试GBK解码
	decoder := simplifiedchinese.GBK.NewDecoder()
	result, _, err := transform.Bytes(decoder, data)
	if err != nil {
		return nil, fmt.Errorf("载荷编码无法识别: %w", err)
	}
	return result, nil
}

// 时间字段支持的格式
var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseTime 按支持的格式依次解析时间字符串
func ParseTime(value string) (time.Time, error) {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("无法解析时间字段: %s", value)
}
