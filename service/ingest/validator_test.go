/*
 * @module service/ingest/validator_test
 * @description 行校验器单元测试
 */

package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"insights-engine-service/service/storage"
	"insights-engine-service/testutil"
)

// TestValidateHeader 测试表头契约校验
func TestValidateHeader(t *testing.T) {
	tdb := testutil.NewTestDB()
	defer tdb.Close()

	validator := NewValidator(storage.NewGormGateway(tdb.DB))
	schema, ok := LookupSchema("insights_v1")
	require.True(t, ok)

	t.Run("完全一致的表头通过", func(t *testing.T) {
		err := validator.ValidateHeader(schema.Header(), schema)
		assert.NoError(t, err)
	})

	t.Run("列序调换整批拒绝", func(t *testing.T) {
		header := schema.Header()
		header[0], header[1] = header[1], header[0]

		err := validator.ValidateHeader(header, schema)
		assert.ErrorIs(t, err, ErrSchemaMismatch)
	})

	t.Run("拼写偏差整批拒绝", func(t *testing.T) {
		header := schema.Header()
		header[4] = "confidence_Level"

		err := validator.ValidateHeader(header, schema)
		assert.ErrorIs(t, err, ErrSchemaMismatch)
	})

	t.Run("列数不足整批拒绝", func(t *testing.T) {
		header := schema.Header()

		err := validator.ValidateHeader(header[:len(header)-1], schema)
		assert.ErrorIs(t, err, ErrSchemaMismatch)
	})
}

// TestValidateFieldCount 测试行字段数校验
func TestValidateFieldCount(t *testing.T) {
	tdb := testutil.NewTestDB()
	defer tdb.Close()

	validator := NewValidator(storage.NewGormGateway(tdb.DB))
	schema, _ := LookupSchema("insights_v1")

	err := validator.ValidateFieldCount(make([]string, len(schema.Columns)), schema)
	assert.NoError(t, err)

	err = validator.ValidateFieldCount(make([]string, len(schema.Columns)-1), schema)
	assert.ErrorIs(t, err, ErrMalformedRow)

	err = validator.ValidateFieldCount(make([]string, len(schema.Columns)+1), schema)
	assert.ErrorIs(t, err, ErrMalformedRow)
}

// TestCheckDuplicate 测试内容去重检查
func TestCheckDuplicate(t *testing.T) {
	tdb := testutil.NewTestDB()
	defer tdb.Close()

	factory := testutil.NewTestDataFactory(tdb.DB)
	factory.CreateInsight(testutil.WithContent("member missed two appointments"))

	validator := NewValidator(storage.NewGormGateway(tdb.DB))
	seen := make(map[string]bool)

	// 已持久化内容重复
	err := validator.CheckDuplicate("member missed two appointments", seen)
	assert.ErrorIs(t, err, ErrDuplicateContent)

	// 新内容通过
	err = validator.CheckDuplicate("a1c trending upward", seen)
	assert.NoError(t, err)

	// 批内已接受内容重复
	seen["a1c trending upward"] = true
	err = validator.CheckDuplicate("a1c trending upward", seen)
	assert.ErrorIs(t, err, ErrDuplicateContent)
}
