// Package server 通过 gin 把账本、会话目录、统计和提交暴露为 JSON HTTP 接口。
// 用户身份由调用方在请求头中给出，本服务不做认证。
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/SandeepBatta/OrigamiAI/internal/app"
	"github.com/SandeepBatta/OrigamiAI/internal/log"
	"github.com/gin-gonic/gin"
)

const (
	HeaderUserID   = "X-User-ID"
	HeaderTimezone = "X-Timezone"

	// maxRequestBody 限制提交请求的大小，附件以 base64 内联
	maxRequestBody = 20 << 20
)

type Server struct {
	app    *app.App
	engine *gin.Engine
	now    func() time.Time
}

func New(a *app.App) *Server {
	s := &Server{app: a, engine: gin.New(), now: time.Now}
	s.engine.Use(requestLogger(), recovery())
	s.routes()
	return s
}

func (s *Server) routes() {
	s.engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := s.engine.Group("/api", s.identity())
	api.POST("/sessions", s.createSession)
	api.GET("/sessions", s.listSessions)
	api.POST("/sessions/:session/activate", s.activateSession)
	api.GET("/sessions/:session/turns", s.listTurns)
	api.POST("/sessions/:session/turns", s.submit)
	api.GET("/stats", s.stats)
	api.GET("/export", s.export)
	api.GET("/events", s.events)

	admin := api.Group("/admin", s.requireAdmin())
	admin.GET("/users", s.users)
}

func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run 监听 addr 直到 ctx 结束，然后在 10 秒内优雅关闭。
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		defer log.RecoverPanic("server.Run", func() {
			errc <- errors.New("HTTP 服务 panic")
		})
		slog.Info("HTTP 服务已启动", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
	defer cancel()
	slog.Info("正在关闭 HTTP 服务")
	return srv.Shutdown(shutdownCtx)
}
