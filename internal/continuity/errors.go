package continuity

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrTimeout 表示提供方调用超过了截止时间，同时满足 errors.Is(err, context.DeadlineExceeded)。
	ErrTimeout = fmt.Errorf("提供方调用超时: %w", context.DeadlineExceeded)
	// ErrCanceled 表示调用方在提供方返回之前放弃了请求。
	ErrCanceled = fmt.Errorf("请求已取消: %w", context.Canceled)
	// ErrEmptyPrompt 表示既没有提示词也没有附件。
	ErrEmptyPrompt = errors.New("提示词不能为空")
)

// ProviderError 表示外部提供方调用失败。失败时不会写入任何记录，
// 续接令牌保持不变，调用方可以原样重试。
type ProviderError struct {
	Op  string
	Err error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("提供方%s调用失败: %v", e.Op, e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }

// Timeout 报告失败是否由超时引起。
func (e *ProviderError) Timeout() bool {
	return errors.Is(e.Err, ErrTimeout)
}

// Canceled 报告调用方是否放弃了请求。
func (e *ProviderError) Canceled() bool {
	return errors.Is(e.Err, ErrCanceled)
}

// newProviderError 把截止时间和取消归入 ErrTimeout 和 ErrCanceled。
func newProviderError(ctx context.Context, op string, err error) *ProviderError {
	var kind error
	switch {
	case errors.Is(err, context.DeadlineExceeded), errors.Is(ctx.Err(), context.DeadlineExceeded):
		kind = ErrTimeout
	case errors.Is(err, context.Canceled), errors.Is(ctx.Err(), context.Canceled):
		kind = ErrCanceled
	}
	if kind != nil && !errors.Is(err, kind) {
		err = fmt.Errorf("%w: %w", kind, err)
	}
	return &ProviderError{Op: op, Err: err}
}
