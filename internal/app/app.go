// Package app 把账本、会话目录、统计和续接协议连接到同一个数据库上，并管理生命周期。
package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/SandeepBatta/OrigamiAI/internal/analytics"
	"github.com/SandeepBatta/OrigamiAI/internal/config"
	"github.com/SandeepBatta/OrigamiAI/internal/continuity"
	"github.com/SandeepBatta/OrigamiAI/internal/db"
	"github.com/SandeepBatta/OrigamiAI/internal/imagestore"
	"github.com/SandeepBatta/OrigamiAI/internal/ledger"
	"github.com/SandeepBatta/OrigamiAI/internal/provider"
	"github.com/SandeepBatta/OrigamiAI/internal/session"
)

// ErrNotConfigured 表示没有可用的提供方，只能读取历史和统计。
var ErrNotConfigured = errors.New("未配置提供方 API 密钥")

type App struct {
	Ledger    ledger.Service
	Sessions  session.Service
	Analytics *analytics.Engine
	Tracker   *continuity.Tracker
	Images    *imagestore.Store

	protocol *continuity.Protocol
	config   *config.Config

	subscribersWG *sync.WaitGroup

	globalCtx    context.Context
	cleanupFuncs []func(context.Context) error
}

type Option func(*options)

type options struct {
	provider continuity.Provider
}

// WithProvider 使用给定的提供方代替按配置创建的 OpenAI 客户端
func WithProvider(p continuity.Provider) Option {
	return func(o *options) {
		o.provider = p
	}
}

// New 在 conn 上构建全部服务。conn 在 Shutdown 时关闭。
func New(ctx context.Context, conn *sql.DB, cfg *config.Config, opts ...Option) (*App, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	q, err := db.Prepare(ctx, conn)
	if err != nil {
		return nil, fmt.Errorf("预编译查询失败: %w", err)
	}

	app := &App{
		Ledger:    ledger.NewService(conn, q),
		Sessions:  session.NewService(q),
		Analytics: analytics.New(q),
		Tracker:   continuity.NewTracker(),
		Images: imagestore.New(
			cfg.Images.Directory,
			imagestore.WithDownload(cfg.Images.Download),
			imagestore.WithTimeout(cfg.ProviderTimeout()),
		),

		config:        cfg,
		globalCtx:     ctx,
		subscribersWG: &sync.WaitGroup{},
	}
	app.cleanupFuncs = append(app.cleanupFuncs,
		func(context.Context) error {
			app.Ledger.Shutdown()
			app.subscribersWG.Wait()
			return nil
		},
		func(context.Context) error {
			return errors.Join(q.Close(), conn.Close())
		},
	)

	p := o.provider
	if p == nil && cfg.IsConfigured() {
		p = provider.NewOpenAI(provider.Config{
			APIKey:       cfg.Provider.APIKey,
			BaseURL:      cfg.Provider.BaseURL,
			ChatModel:    cfg.Provider.ChatModel,
			ImageModel:   cfg.Provider.ImageModel,
			ImageSize:    cfg.Provider.ImageSize,
			SystemPrompt: cfg.Provider.SystemPrompt,
		})
	}
	if p == nil {
		slog.Warn("未配置提供方，提交将被拒绝")
		return app, nil
	}
	app.protocol = continuity.New(p, continuity.WithTimeout(cfg.ProviderTimeout()))
	return app, nil
}

func (app *App) Config() *config.Config {
	return app.config
}

// Submission 是用户在某个会话中的一次提交
type Submission struct {
	UserID      string
	SessionID   string
	Prompt      string
	Attachments []continuity.Attachment
}

// Exchange 是一次提交写入账本的两条记录
type Exchange struct {
	User      ledger.Turn `json:"user"`
	Assistant ledger.Turn `json:"assistant"`
}

// Submit 调用提供方并把用户记录和助手记录一次写入账本。
// 任何失败都不写入记录，也不推进续接令牌，调用方可以原样重试。
func (app *App) Submit(ctx context.Context, s Submission) (Exchange, error) {
	if s.UserID == "" || s.SessionID == "" {
		return Exchange{}, fmt.Errorf("%w: 缺少用户或会话标识", ledger.ErrInvalidTurn)
	}
	if app.protocol == nil {
		return Exchange{}, ErrNotConfigured
	}

	token := app.Tracker.Begin(s.UserID, s.SessionID)
	start := time.Now()
	result, err := app.protocol.Submit(ctx, continuity.Request{
		Prompt:      s.Prompt,
		Attachments: s.Attachments,
		Token:       token,
	})
	if err != nil {
		slog.Warn("提交失败", "user", s.UserID, "session", s.SessionID, "error", err)
		return Exchange{}, err
	}
	if ctx.Err() != nil {
		return Exchange{}, &continuity.ProviderError{Op: "提交", Err: continuity.ErrCanceled}
	}

	assistant := result.Turn
	if assistant.Kind == ledger.Image {
		assistant.URL = app.persistImage(ctx, assistant.URL)
	}

	stored, err := app.Ledger.Append(ctx, s.UserID, s.SessionID,
		ledger.TextTurn(ledger.User, strings.TrimSpace(s.Prompt)),
		assistant,
	)
	if err != nil {
		return Exchange{}, err
	}
	app.Tracker.Advance(s.UserID, s.SessionID, result.Token)

	slog.Info("提交完成",
		"user", s.UserID,
		"session", s.SessionID,
		"kind", assistant.Kind,
		"continued", token != "",
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return Exchange{User: stored[0], Assistant: stored[1]}, nil
}

// persistImage 保存图片到本地，失败时保留提供方的地址
func (app *App) persistImage(ctx context.Context, locator string) string {
	path, err := app.Images.Persist(ctx, locator)
	if err != nil {
		slog.Warn("保存图片失败，保留原地址", "error", err)
		return locator
	}
	return path
}

// NewSession 生成新的会话标识并把它设为用户的活动会话
func (app *App) NewSession(userID string) string {
	id := app.Sessions.Create(userID)
	app.Tracker.Switch(userID, id)
	return id
}

// ActivateSession 把已有会话设为用户的活动会话。切换到另一个会话时
// 令牌重置；会话本来就是活动会话时令牌保持不变。
func (app *App) ActivateSession(userID, sessionID string) {
	app.Tracker.Begin(userID, sessionID)
}

// Shutdown 并行执行清理函数，最多等待 5 秒。
func (app *App) Shutdown() {
	start := time.Now()
	defer func() { slog.Debug("关闭耗时 " + time.Since(start).String()) }()

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(app.globalCtx), 5*time.Second)
	defer cancel()

	var wg sync.WaitGroup
	for _, cleanup := range app.cleanupFuncs {
		wg.Go(func() {
			if err := cleanup(shutdownCtx); err != nil {
				slog.Error("应用程序关闭时清理失败", "error", err)
			}
		})
	}
	wg.Wait()
}
