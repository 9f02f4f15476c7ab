// Package version 保存构建版本。
package version

import "runtime/debug"

// Version 在发布构建时通过 -ldflags "-X .../internal/version.Version=..." 设置
var Version = "devel"

// 通过 go install 安装时没有 ldflags，退而使用模块版本。
func init() {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return
	}
	if v := info.Main.Version; v != "" && v != "(devel)" {
		Version = v
	}
}
