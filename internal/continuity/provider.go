package continuity

import (
	"context"
	"encoding/base64"
	"net/http"
)

// Provider 是外部的文本和图片生成服务。实现不应自行重试。
type Provider interface {
	// GenerateText 发送提示词和上一轮的续接令牌，返回原始输出和新令牌。
	GenerateText(ctx context.Context, req TextRequest) (TextResponse, error)
	// GenerateImage 根据提示词生成一张图片。
	GenerateImage(ctx context.Context, prompt string) (ImageResponse, error)
}

type TextRequest struct {
	Prompt      string
	Attachments []Attachment
	// Token 为空表示新的对话线程
	Token string
}

type TextResponse struct {
	Text  string
	Token string
}

type ImageResponse struct {
	// Locator 是图片的 URL 或本地路径；提供方只返回数据时为 data URL
	Locator       string
	RevisedPrompt string
}

// Attachment 是随提示词上传的一张图片
type Attachment struct {
	Data     []byte
	MIMEType string
}

// DataURL 把附件编码为 base64 data URL。未指定类型时从内容推断。
func (a Attachment) DataURL() string {
	mime := a.MIMEType
	if mime == "" {
		mime = http.DetectContentType(a.Data)
	}
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(a.Data)
}
