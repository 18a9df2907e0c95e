package jsonish

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFixTrailingCommas(t *testing.T) {
	assert.Equal(t, `[1, 2, 3]`, fixTrailingCommas(`[1, 2, 3,]`))
	assert.Equal(t, `{"a": 1}`, fixTrailingCommas(`{"a": 1,}`))
}

func TestFixUnquotedKeys(t *testing.T) {
	assert.Equal(t, `{"a": 1, "b": 2}`, fixUnquotedKeys(`{a: 1, b: 2}`))
}

func TestFixGroupedNumbers(t *testing.T) {
	assert.Equal(t, `{"a": 1234.56}`, fixGroupedNumbers(`{"a": 1,234.56}`))
}

func TestFixAutoCloseAppendsBrackets(t *testing.T) {
	assert.Equal(t, `{"a": [1, 2]}`, fixAutoClose(`{"a": [1, 2]`))
}

func TestFixUnquotedValues(t *testing.T) {
	assert.Equal(t, `{"a": "hello world"}`, fixUnquotedValues(`{"a": hello world}`))
}

func TestFixTextPipelineRecoversCommonMalformation(t *testing.T) {
	fixed := fixText(`{name: Bob, age: 30,}`)
	assert.Contains(t, fixed, `"name"`)
	assert.Contains(t, fixed, `"age"`)
	assert.NotContains(t, fixed, ",}")
}
