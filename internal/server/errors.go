package server

import (
	"errors"
	"net/http"

	"github.com/SandeepBatta/OrigamiAI/internal/app"
	"github.com/SandeepBatta/OrigamiAI/internal/continuity"
	"github.com/SandeepBatta/OrigamiAI/internal/ledger"
	"github.com/gin-gonic/gin"
)

type errorResponse struct {
	Error     string `json:"error"`
	Retryable bool   `json:"retryable"`
}

func abort(c *gin.Context, status int, msg string, retryable bool) {
	c.AbortWithStatusJSON(status, errorResponse{Error: msg, Retryable: retryable})
}

// writeError 把领域错误映射为 HTTP 状态码。提供方失败时没有写入任何记录，可以重试。
func writeError(c *gin.Context, err error) {
	var (
		perr *continuity.ProviderError
		serr *ledger.StorageError
	)
	switch {
	case errors.Is(err, ledger.ErrInvalidTurn), errors.Is(err, continuity.ErrEmptyPrompt):
		abort(c, http.StatusBadRequest, err.Error(), false)
	case errors.Is(err, app.ErrNotConfigured):
		abort(c, http.StatusServiceUnavailable, err.Error(), false)
	case errors.As(err, &perr):
		status := http.StatusBadGateway
		if perr.Timeout() {
			status = http.StatusGatewayTimeout
		}
		abort(c, status, err.Error(), true)
	case errors.As(err, &serr):
		abort(c, http.StatusInternalServerError, err.Error(), serr.Timeout())
	default:
		abort(c, http.StatusInternalServerError, err.Error(), false)
	}
}
