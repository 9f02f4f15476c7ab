package stringext

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTruncate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		n    int
		want string
	}{
		{"短文本原样返回", "hello", 20, "hello"},
		{"恰好等于上限", strings.Repeat("a", 20), 20, strings.Repeat("a", 20)},
		{"超过上限", strings.Repeat("a", 21), 20, strings.Repeat("a", 20) + "..."},
		{"按字符截断", "画一只毛茸茸的猫咪在窗台上晒太阳然后睡着了吧", 20, "画一只毛茸茸的猫咪在窗台上晒太阳然后睡着..."},
		{"空字符串", "", 20, ""},
		{"零长度", "abc", 0, "..."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.want, Truncate(tt.in, tt.n))
		})
	}
}

func TestTruncateIsDeterministic(t *testing.T) {
	t.Parallel()

	in := "Please draw me a picture of a lighthouse at dusk"
	require.Equal(t, Truncate(in, 30), Truncate(in, 30))
	require.Equal(t, "Please draw me a picture of a ...", Truncate(in, 30))
}

func TestSingleLine(t *testing.T) {
	t.Parallel()

	require.Equal(t, "a b c", SingleLine("  a\r\n\tb \n\n c "))
	require.Empty(t, SingleLine(" \n\t"))
}

func TestCapitalize(t *testing.T) {
	t.Parallel()

	require.Equal(t, "Assistant", Capitalize("assistant"))
}
