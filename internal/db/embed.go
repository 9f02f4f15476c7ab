// Package db 是会话账本的 SQLite 存储层。
// 迁移脚本被嵌入到二进制文件中，由 goose 在 Connect 时执行。
package db

import "embed"

//go:embed migrations/*.sql
var FS embed.FS
