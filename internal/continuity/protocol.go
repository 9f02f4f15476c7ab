// Package continuity 调用外部 AI 提供方，在一个会话的多轮之间传递续接令牌，
// 并把提供方的输出归类为文本或图片记录。
package continuity

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/SandeepBatta/OrigamiAI/internal/ledger"
)

// DefaultTimeout 是一次提交（包括可能的图片生成）的默认时限。
const DefaultTimeout = 2 * time.Minute

type Request struct {
	Prompt      string
	Attachments []Attachment
	Token       string
}

// Result 是归类后的助手记录和下一轮要使用的令牌。
type Result struct {
	Turn  ledger.Turn
	Token string
}

type Protocol struct {
	provider Provider
	timeout  time.Duration
}

type Option func(*Protocol)

// WithTimeout 设置每次提交的时限，0 表示只受调用方 ctx 约束。
func WithTimeout(d time.Duration) Option {
	return func(p *Protocol) {
		p.timeout = d
	}
}

func New(provider Provider, opts ...Option) *Protocol {
	p := &Protocol{provider: provider, timeout: DefaultTimeout}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Submit 发送提示词并归类输出。最多两次提供方调用：一次文本，
// 输出声明了图片意图时再加一次图片生成。失败时返回 *ProviderError，不返回令牌。
func (p *Protocol) Submit(ctx context.Context, req Request) (Result, error) {
	if strings.TrimSpace(req.Prompt) == "" && len(req.Attachments) == 0 {
		return Result{}, ErrEmptyPrompt
	}
	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	text, err := p.provider.GenerateText(ctx, TextRequest{
		Prompt:      req.Prompt,
		Attachments: req.Attachments,
		Token:       req.Token,
	})
	if err != nil {
		return Result{}, newProviderError(ctx, "文本", err)
	}

	op := "文本"
	turn := ledger.TextTurn(ledger.Assistant, text.Text)
	if in := decodeIntent(text.Text); in.image {
		op = "图片"
		slog.Debug("输出声明了图片意图", "prompt", in.prompt)
		img, err := p.provider.GenerateImage(ctx, in.prompt)
		if err != nil {
			return Result{}, newProviderError(ctx, "图片", err)
		}
		if img.Locator == "" {
			return Result{}, &ProviderError{Op: "图片", Err: errors.New("提供方没有返回图片地址")}
		}
		caption := img.RevisedPrompt
		if caption == "" {
			caption = in.prompt
		}
		turn = ledger.ImageTurn(caption, img.Locator)
	}

	// 提供方已经返回但调用方放弃了请求：结果作废。
	if err := ctx.Err(); err != nil {
		kind := ErrCanceled
		if errors.Is(err, context.DeadlineExceeded) {
			kind = ErrTimeout
		}
		return Result{}, &ProviderError{Op: op, Err: kind}
	}
	return Result{Turn: turn, Token: text.Token}, nil
}
