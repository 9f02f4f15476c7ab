// Package ansiext 处理要打印到终端的不可信文本。
package ansiext

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// Escape 把所有控制字符替换为对应的 Unicode 控制图片，适合单行显示。
func Escape(content string) string {
	return escape(content, false)
}

// Sanitize 去掉 ANSI 转义序列，其余控制字符按 Escape 处理，但保留换行和制表符。
// 模型输出和记录内容打印前都经过这里。
func Sanitize(content string) string {
	return escape(ansi.Strip(content), true)
}

func escape(content string, keepLayout bool) string {
	var sb strings.Builder
	sb.Grow(len(content))
	for _, r := range content {
		switch {
		case keepLayout && (r == '\n' || r == '\t'):
			sb.WriteRune(r)
		case r >= 0 && r <= 0x1f:
			sb.WriteRune('␀' + r)
		case r == ansi.DEL:
			sb.WriteRune('␡')
		default:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
