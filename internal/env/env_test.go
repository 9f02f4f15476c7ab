package env

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestProcessEnv(t *testing.T) {
	t.Setenv("ORIGAMI_ENV_TEST_KEY", "sk-process")

	e := New()
	require.Equal(t, "sk-process", e.Get("ORIGAMI_ENV_TEST_KEY"))
	require.Empty(t, e.Get("ORIGAMI_ENV_TEST_UNSET"))
}

func TestMapEnv(t *testing.T) {
	t.Parallel()

	for name, tc := range map[string]struct {
		vars map[string]string
		key  string
		want string
	}{
		"set":          {map[string]string{"OPENAI_API_KEY": "sk-file"}, "OPENAI_API_KEY", "sk-file"},
		"value with =": {map[string]string{"OPENAI_BASE_URL": "https://h/v1?a=b"}, "OPENAI_BASE_URL", "https://h/v1?a=b"},
		"empty value":  {map[string]string{"OPENAI_API_KEY": ""}, "OPENAI_API_KEY", ""},
		"missing":      {map[string]string{"OTHER": "x"}, "OPENAI_API_KEY", ""},
		"nil map":      {nil, "OPENAI_API_KEY", ""},
	} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tc.want, NewFromMap(tc.vars).Get(tc.key))
		})
	}
}

// 变量表是构造时的快照之外没有别的来源：进程环境不会漏进来。
func TestMapEnvIgnoresProcess(t *testing.T) {
	t.Setenv("ORIGAMI_ENV_TEST_LEAK", "process")

	e := NewFromMap(map[string]string{"OPENAI_API_KEY": "sk"})
	require.Empty(t, e.Get("ORIGAMI_ENV_TEST_LEAK"))
}
