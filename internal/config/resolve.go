package config

import (
	"fmt"
	"strings"

	"github.com/SandeepBatta/OrigamiAI/internal/env"
)

// VariableResolver 解析配置值中的变量引用
type VariableResolver interface {
	ResolveValue(value string) (string, error)
}

type environmentVariableResolver struct {
	env env.Env
}

// NewEnvironmentVariableResolver 返回只展开 $VAR 和 ${VAR} 的解析器
func NewEnvironmentVariableResolver(env env.Env) VariableResolver {
	return &environmentVariableResolver{env: env}
}

// ResolveValue 替换字符串中任意位置的 $VAR 和 ${VAR}，变量未设置时返回错误。
func (r *environmentVariableResolver) ResolveValue(value string) (string, error) {
	if value == "$" {
		return "", fmt.Errorf("无效的值格式: %s", value)
	}
	if !strings.Contains(value, "$") {
		return value, nil
	}

	var b strings.Builder
	rest := value
	for {
		start := strings.IndexByte(rest, '$')
		if start == -1 {
			b.WriteString(rest)
			break
		}
		b.WriteString(rest[:start])
		rest = rest[start+1:]

		var name string
		if strings.HasPrefix(rest, "{") {
			end := strings.IndexByte(rest, '}')
			if end == -1 {
				return "", fmt.Errorf("值中未匹配的 ${ : %s", value)
			}
			name, rest = rest[1:end], rest[end+1:]
		} else {
			end := 0
			for end < len(rest) && isNameByte(rest[end], end == 0) {
				end++
			}
			if end == 0 {
				if rest == "" {
					return "", fmt.Errorf("字符串末尾的变量引用不完整: %s", value)
				}
				return "", fmt.Errorf("无效的变量名，以 '%c' 开头: %s", rest[0], value)
			}
			name, rest = rest[:end], rest[end:]
		}

		resolved := r.env.Get(name)
		if resolved == "" {
			return "", fmt.Errorf("环境变量 %q 未设置", name)
		}
		b.WriteString(resolved)
	}
	return b.String(), nil
}

func isNameByte(c byte, first bool) bool {
	switch {
	case c == '_', c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
		return true
	case c >= '0' && c <= '9':
		return !first
	}
	return false
}
