package config

import (
	"testing"

	"github.com/SandeepBatta/OrigamiAI/internal/env"
	"github.com/stretchr/testify/require"
)

func TestEnvironmentVariableResolver_ResolveValue(t *testing.T) {
	t.Parallel()

	vars := env.NewFromMap(map[string]string{
		"OPENAI_API_KEY": "sk-123",
		"HOST":           "api.example.com",
		"V1":             "v1",
	})
	r := NewEnvironmentVariableResolver(vars)

	tests := []struct {
		name        string
		value       string
		expected    string
		expectError bool
	}{
		{name: "普通字符串原样返回", value: "gpt-4.1-mini", expected: "gpt-4.1-mini"},
		{name: "整值变量", value: "$OPENAI_API_KEY", expected: "sk-123"},
		{name: "花括号变量", value: "${OPENAI_API_KEY}", expected: "sk-123"},
		{name: "嵌入多个变量", value: "https://$HOST/${V1}/", expected: "https://api.example.com/v1/"},
		{name: "变量名含数字", value: "$V1-x", expected: "v1-x"},
		{name: "缺失变量", value: "$MISSING", expectError: true},
		{name: "单独的 $", value: "$", expectError: true},
		{name: "末尾的 $", value: "key$", expectError: true},
		{name: "非法变量名", value: "$1abc", expectError: true},
		{name: "未闭合花括号", value: "${HOST", expectError: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.ResolveValue(tt.value)
			if tt.expectError {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.expected, got)
		})
	}
}
