package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const (
	ctxUser     = "origami.user"
	ctxLocation = "origami.location"
)

// identity 读取调用方声明的用户和时区
func (s *Server) identity() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := c.GetHeader(HeaderUserID)
		if user == "" {
			abort(c, http.StatusBadRequest, "缺少 "+HeaderUserID+" 请求头", false)
			return
		}
		loc := s.app.Config().Location()
		if tz := c.GetHeader(HeaderTimezone); tz != "" {
			l, err := time.LoadLocation(tz)
			if err != nil {
				abort(c, http.StatusBadRequest, "无效的时区: "+tz, false)
				return
			}
			loc = l
		}
		c.Set(ctxUser, user)
		c.Set(ctxLocation, loc)
		c.Next()
	}
}

func (s *Server) requireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !s.app.Config().IsAdmin(userOf(c)) {
			abort(c, http.StatusForbidden, "需要管理员权限", false)
			return
		}
		c.Next()
	}
}

func userOf(c *gin.Context) string {
	return c.GetString(ctxUser)
}

func locationOf(c *gin.Context) *time.Location {
	if loc, ok := c.Get(ctxLocation); ok {
		return loc.(*time.Location)
	}
	return time.UTC
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		slog.Debug("HTTP请求",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"user", userOf(c),
			"duration_ms", time.Since(start).Milliseconds(),
		)
	}
}

func recovery() gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(nil, func(c *gin.Context, err any) {
		slog.Error("处理请求时 panic", "path", c.Request.URL.Path, "panic", err)
		abort(c, http.StatusInternalServerError, "内部错误", false)
	})
}
