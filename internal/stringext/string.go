// Package stringext 提供字符串处理相关的扩展功能
package stringext

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Ellipsis 是被截断文本的结尾标记。
const Ellipsis = "..."

// Capitalize 将给定文本的首字母大写
func Capitalize(text string) string {
	return cases.Title(language.English, cases.Compact).String(text)
}

// SingleLine 把连续的空白（包括换行）压成一个空格并去除首尾空白
func SingleLine(content string) string {
	return strings.Join(strings.Fields(content), " ")
}

// Truncate 按字符（rune）而不是字节截断 s：长度不超过 n 时原样返回，
// 否则保留前 n 个字符并追加 Ellipsis。
func Truncate(s string, n int) string {
	if n < 0 {
		n = 0
	}
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos] + Ellipsis
		}
		i++
	}
	return s
}
