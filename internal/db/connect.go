package db

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"

	"github.com/pressly/goose/v3"
)

// FileName 是数据目录下账本数据库的文件名。
const FileName = "origami.db"

// Connect 打开 SQLite 数据库连接并运行迁移。
func Connect(ctx context.Context, dataDir string) (*sql.DB, error) {
	if dataDir == "" {
		return nil, fmt.Errorf("data.dir 未设置")
	}
	dbPath := filepath.Join(dataDir, FileName)

	db, err := openDB(dbPath)
	if err != nil {
		return nil, err
	}

	if err = db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("连接数据库失败: %w", err)
	}

	if err := Migrate(ctx, db); err != nil {
		db.Close()
		return nil, err
	}
	if v, err := Version(ctx, db); err == nil {
		slog.Debug("数据库已就绪", "path", dbPath, "schema", v)
	}
	return db, nil
}

var (
	gooseOnce sync.Once
	gooseErr  error
)

// setupGoose 只配置一次 goose 的全局状态。
func setupGoose() error {
	gooseOnce.Do(func() {
		goose.SetBaseFS(FS)
		goose.SetLogger(goose.NopLogger())
		if err := goose.SetDialect("sqlite3"); err != nil {
			slog.Error("设置方言失败", "error", err)
			gooseErr = fmt.Errorf("设置方言失败: %w", err)
		}
	})
	return gooseErr
}

// Migrate 将嵌入的迁移应用到 db。重复调用是安全的。
func Migrate(ctx context.Context, db *sql.DB) error {
	if err := setupGoose(); err != nil {
		return err
	}
	if err := goose.UpContext(ctx, db, "migrations"); err != nil {
		slog.Error("应用迁移失败", "error", err)
		return fmt.Errorf("应用迁移失败: %w", err)
	}
	return nil
}

// Version 返回当前已应用的迁移版本。
func Version(ctx context.Context, db *sql.DB) (int64, error) {
	if err := setupGoose(); err != nil {
		return 0, err
	}
	return goose.GetDBVersionContext(ctx, db)
}
