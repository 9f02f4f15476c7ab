package continuity

import (
	"context"
	"sync/atomic"
)

var _ Provider = (*fakeProvider)(nil)

// fakeProvider 是函数字段形式的测试替身。
type fakeProvider struct {
	TextFn  func(ctx context.Context, req TextRequest) (TextResponse, error)
	ImageFn func(ctx context.Context, prompt string) (ImageResponse, error)

	textCalls  atomic.Int32
	imageCalls atomic.Int32
}

func (f *fakeProvider) GenerateText(ctx context.Context, req TextRequest) (TextResponse, error) {
	f.textCalls.Add(1)
	return f.TextFn(ctx, req)
}

func (f *fakeProvider) GenerateImage(ctx context.Context, prompt string) (ImageResponse, error) {
	f.imageCalls.Add(1)
	if f.ImageFn == nil {
		panic("unexpected GenerateImage call")
	}
	return f.ImageFn(ctx, prompt)
}

func replyWith(text, token string) func(context.Context, TextRequest) (TextResponse, error) {
	return func(context.Context, TextRequest) (TextResponse, error) {
		return TextResponse{Text: text, Token: token}, nil
	}
}
