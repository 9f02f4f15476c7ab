// Package env 抽象环境变量的读取，使配置解析可以在测试中使用固定的变量表。
package env

import "os"

// Env 是配置解析读取变量的来源。未设置的变量返回空字符串。
type Env interface {
	Get(key string) string
}

type osEnv struct{}

func (osEnv) Get(key string) string { return os.Getenv(key) }

// New 返回读取进程环境的 Env
func New() Env { return osEnv{} }

type mapEnv map[string]string

func (m mapEnv) Get(key string) string { return m[key] }

// NewFromMap 返回只包含 m 中变量的 Env，用于叠加 .env 之后的变量表
func NewFromMap(m map[string]string) Env {
	return mapEnv(m)
}
