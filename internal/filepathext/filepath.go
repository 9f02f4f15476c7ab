// Package filepathext 解析配置里的目录：展开 ~，相对路径以给定目录为基准。
package filepathext

import (
	"path/filepath"
	"runtime"
	"strings"

	"github.com/SandeepBatta/OrigamiAI/internal/home"
)

// Resolve 返回 p 的绝对形式。p 以 ~ 开头时展开为主目录；其余相对路径
// 接在 base 之后。结果总是经过 Clean。
func Resolve(base, p string) string {
	p = home.Long(p)
	if isAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(base, p)
}

// isAbs 在 Windows 上也把 / 开头的路径当作绝对路径，配置文件可以跨平台共用。
func isAbs(p string) bool {
	if runtime.GOOS == "windows" && strings.HasPrefix(filepath.ToSlash(p), "/") {
		return true
	}
	return filepath.IsAbs(p)
}
