package home

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestShort(t *testing.T) {
	require.NotEmpty(t, Dir())

	for name, tc := range map[string]struct{ in, want string }{
		"数据目录":   {filepath.Join(Dir(), ".local", "share", "origami"), filepath.FromSlash("~/.local/share/origami")},
		"主目录本身":  {Dir(), "~"},
		"同前缀的兄弟": {Dir() + "-other", Dir() + "-other"},
		"主目录之外":  {filepath.FromSlash("/srv/origami"), filepath.FromSlash("/srv/origami")},
		"相对路径":   {"origami.db", "origami.db"},
	} {
		t.Run(name, func(t *testing.T) {
			require.Equal(t, tc.want, Short(tc.in))
		})
	}
}

func TestLong(t *testing.T) {
	for name, tc := range map[string]struct{ in, want string }{
		"波浪号":    {"~", Dir()},
		"主目录下":   {"~/origami/images", filepath.Join(Dir(), "origami", "images")},
		"其他用户":   {"~bob/images", "~bob/images"},
		"普通相对路径": {"images", "images"},
	} {
		t.Run(name, func(t *testing.T) {
			require.Equal(t, tc.want, Long(tc.in))
		})
	}
}
