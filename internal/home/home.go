// Package home 在显示和配置中的路径里缩写、展开用户主目录。
package home

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

var homedir, homedirErr = os.UserHomeDir()

func init() {
	if homedirErr != nil {
		slog.Error("获取用户主目录失败", "error", homedirErr)
	}
}

// Dir 返回用户主目录，获取失败时为空
func Dir() string {
	return homedir
}

// Short 把位于主目录内的路径显示为 ~/...。只在完整的路径段上匹配，
// /home/al 不会把 /home/alice 缩写。
func Short(p string) string {
	if homedir == "" {
		return p
	}
	rel, err := filepath.Rel(homedir, p)
	if err != nil || !filepath.IsAbs(p) || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return p
	}
	if rel == "." {
		return "~"
	}
	return filepath.Join("~", rel)
}

// Long 展开配置里的 ~ 和 ~/...。~user 形式不支持，原样返回。
func Long(p string) string {
	if homedir == "" || !strings.HasPrefix(p, "~") {
		return p
	}
	rest := p[1:]
	if rest == "" {
		return homedir
	}
	if rest[0] != '/' && rest[0] != filepath.Separator {
		return p
	}
	return filepath.Join(homedir, rest)
}
