package continuity

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/SandeepBatta/OrigamiAI/internal/ledger"
	"github.com/stretchr/testify/require"
)

func TestSubmitImageIntent(t *testing.T) {
	t.Parallel()

	p := &fakeProvider{
		TextFn: func(_ context.Context, req TextRequest) (TextResponse, error) {
			require.Equal(t, "draw a cat", req.Prompt)
			require.Empty(t, req.Token)
			return TextResponse{Text: `{"action":"generate_image","prompt":"a cat"}`, Token: "resp_1"}, nil
		},
		ImageFn: func(_ context.Context, prompt string) (ImageResponse, error) {
			require.Equal(t, "a cat", prompt)
			return ImageResponse{Locator: "img/123.png", RevisedPrompt: "a fluffy cat"}, nil
		},
	}

	res, err := New(p).Submit(t.Context(), Request{Prompt: "draw a cat"})
	require.NoError(t, err)
	require.Equal(t, ledger.Turn{
		Role:    ledger.Assistant,
		Kind:    ledger.Image,
		Content: "a fluffy cat",
		URL:     "img/123.png",
	}, res.Turn)
	require.Equal(t, "resp_1", res.Token)
	require.Equal(t, int32(1), p.imageCalls.Load())
}

func TestSubmitImageWithoutRevisedPrompt(t *testing.T) {
	t.Parallel()

	p := &fakeProvider{
		TextFn: replyWith(`{"action":"generate_image","prompt":"a cat"}`, "resp_1"),
		ImageFn: func(context.Context, string) (ImageResponse, error) {
			return ImageResponse{Locator: "img/1.png"}, nil
		},
	}

	res, err := New(p).Submit(t.Context(), Request{Prompt: "draw a cat"})
	require.NoError(t, err)
	require.Equal(t, "a cat", res.Turn.Content)
}

func TestSubmitPlainText(t *testing.T) {
	t.Parallel()

	p := &fakeProvider{
		TextFn: func(_ context.Context, req TextRequest) (TextResponse, error) {
			require.Equal(t, "resp_1", req.Token)
			return TextResponse{Text: "hi there", Token: "resp_2"}, nil
		},
	}

	res, err := New(p).Submit(t.Context(), Request{Prompt: "hello", Token: "resp_1"})
	require.NoError(t, err)
	require.Equal(t, ledger.TextTurn(ledger.Assistant, "hi there"), res.Turn)
	require.Equal(t, "resp_2", res.Token)
	require.Zero(t, p.imageCalls.Load())
}

func TestSubmitMalformedOutputIsText(t *testing.T) {
	t.Parallel()

	raw := `{"action":"generate_image","prompt":`
	p := &fakeProvider{TextFn: replyWith(raw, "t")}

	res, err := New(p).Submit(t.Context(), Request{Prompt: "x"})
	require.NoError(t, err)
	require.Equal(t, ledger.Text, res.Turn.Kind)
	require.Equal(t, raw, res.Turn.Content)
}

func TestSubmitPassesAttachments(t *testing.T) {
	t.Parallel()

	att := Attachment{Data: []byte{0xff, 0xd8, 0xff}, MIMEType: "image/jpeg"}
	p := &fakeProvider{
		TextFn: func(_ context.Context, req TextRequest) (TextResponse, error) {
			require.Equal(t, []Attachment{att}, req.Attachments)
			return TextResponse{Text: "nice photo"}, nil
		},
	}

	_, err := New(p).Submit(t.Context(), Request{Attachments: []Attachment{att}})
	require.NoError(t, err)
	require.Equal(t, "data:image/jpeg;base64,/9j/", att.DataURL())
}

func TestSubmitEmptyPrompt(t *testing.T) {
	t.Parallel()

	p := &fakeProvider{}
	_, err := New(p).Submit(t.Context(), Request{Prompt: "   "})
	require.ErrorIs(t, err, ErrEmptyPrompt)
	require.Zero(t, p.textCalls.Load())
}

func TestSubmitProviderFailure(t *testing.T) {
	t.Parallel()

	cause := errors.New("429 rate limited")
	p := &fakeProvider{
		TextFn: func(context.Context, TextRequest) (TextResponse, error) {
			return TextResponse{Token: "should-not-leak"}, cause
		},
	}

	res, err := New(p).Submit(t.Context(), Request{Prompt: "hello", Token: "resp_1"})
	var perr *ProviderError
	require.ErrorAs(t, err, &perr)
	require.ErrorIs(t, err, cause)
	require.False(t, perr.Timeout())
	require.False(t, perr.Canceled())
	require.Empty(t, res.Token)
}

func TestSubmitImageFailure(t *testing.T) {
	t.Parallel()

	p := &fakeProvider{
		TextFn: replyWith(`{"action":"generate_image","prompt":"a cat"}`, "resp_1"),
		ImageFn: func(context.Context, string) (ImageResponse, error) {
			return ImageResponse{}, errors.New("content policy")
		},
	}

	res, err := New(p).Submit(t.Context(), Request{Prompt: "draw"})
	var perr *ProviderError
	require.ErrorAs(t, err, &perr)
	require.Equal(t, "图片", perr.Op)
	require.Empty(t, res.Token)
}

func TestSubmitImageWithoutLocator(t *testing.T) {
	t.Parallel()

	p := &fakeProvider{
		TextFn: replyWith(`{"action":"generate_image","prompt":"a cat"}`, "resp_1"),
		ImageFn: func(context.Context, string) (ImageResponse, error) {
			return ImageResponse{RevisedPrompt: "a cat"}, nil
		},
	}

	_, err := New(p).Submit(t.Context(), Request{Prompt: "draw"})
	var perr *ProviderError
	require.ErrorAs(t, err, &perr)
}

func TestSubmitTimeout(t *testing.T) {
	t.Parallel()

	p := &fakeProvider{
		TextFn: func(ctx context.Context, _ TextRequest) (TextResponse, error) {
			<-ctx.Done()
			return TextResponse{}, ctx.Err()
		},
	}

	_, err := New(p, WithTimeout(10*time.Millisecond)).Submit(t.Context(), Request{Prompt: "slow"})
	var perr *ProviderError
	require.ErrorAs(t, err, &perr)
	require.True(t, perr.Timeout())
	require.ErrorIs(t, err, ErrTimeout)
	require.ErrorIs(t, err, context.DeadlineExceeded)
}

// 提供方没有把截止时间透出为错误类型时，仍然根据 ctx 判定为超时。
func TestSubmitTimeoutOpaqueError(t *testing.T) {
	t.Parallel()

	p := &fakeProvider{
		TextFn: func(ctx context.Context, _ TextRequest) (TextResponse, error) {
			<-ctx.Done()
			return TextResponse{}, errors.New("connection reset")
		},
	}

	_, err := New(p, WithTimeout(10*time.Millisecond)).Submit(t.Context(), Request{Prompt: "slow"})
	require.ErrorIs(t, err, ErrTimeout)
}

func TestSubmitCanceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(t.Context())
	p := &fakeProvider{
		TextFn: func(context.Context, TextRequest) (TextResponse, error) {
			// 提供方已经成功返回，但调用方在此之前放弃了请求
			cancel()
			return TextResponse{Text: "too late", Token: "resp_9"}, nil
		},
	}

	res, err := New(p).Submit(ctx, Request{Prompt: "hello"})
	var perr *ProviderError
	require.ErrorAs(t, err, &perr)
	require.True(t, perr.Canceled())
	require.ErrorIs(t, err, context.Canceled)
	require.Equal(t, "文本", perr.Op)
	require.Equal(t, "提供方文本调用失败: 请求已取消: context canceled", err.Error())
	require.Empty(t, res.Token)
}

func TestSubmitCanceledAfterImage(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(t.Context())
	p := &fakeProvider{
		TextFn: replyWith(`{"action":"generate_image","prompt":"a cat"}`, "resp_3"),
		ImageFn: func(context.Context, string) (ImageResponse, error) {
			cancel()
			return ImageResponse{Locator: "img/1.png"}, nil
		},
	}

	_, err := New(p).Submit(ctx, Request{Prompt: "draw a cat"})
	var perr *ProviderError
	require.ErrorAs(t, err, &perr)
	require.Equal(t, "图片", perr.Op)
	require.True(t, perr.Canceled())
	require.Equal(t, 1, strings.Count(err.Error(), "context canceled"))
}

func TestAttachmentDataURLDetectsType(t *testing.T) {
	t.Parallel()

	png := []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\x0dIHDR")
	require.Contains(t, Attachment{Data: png}.DataURL(), "data:image/png;base64,")
}
