//go:build (darwin && (amd64 || arm64)) || (freebsd && (amd64 || arm64)) || (linux && (386 || amd64 || arm || arm64 || loong64 || ppc64le || riscv64 || s390x)) || (windows && (386 || amd64 || arm64))

package db

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// openDB 用纯 Go 驱动打开账本，参数随 DSN 传入，连接池里每个新连接都会应用。
func openDB(dbPath string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", fileDSN(dbPath))
	if err != nil {
		return nil, fmt.Errorf("打开数据库失败: %w", err)
	}
	return db, nil
}
