// Package provider 把 OpenAI 兼容的接口适配为对话续接所需的文本和图片生成服务。
package provider

import (
	"cmp"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/SandeepBatta/OrigamiAI/internal/continuity"
	"github.com/SandeepBatta/OrigamiAI/internal/log"
	"github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"
	"github.com/openai/openai-go/v2/responses"
	"github.com/openai/openai-go/v2/shared"
)

const (
	DefaultChatModel  = "gpt-4.1-mini"
	DefaultImageModel = "dall-e-3"
	DefaultImageSize  = "1024x1024"
)

// Config 是 OpenAI 提供方的连接参数
type Config struct {
	APIKey       string
	BaseURL      string
	ChatModel    string
	ImageModel   string
	ImageSize    string
	SystemPrompt string
	// HTTPClient 为空时使用带调试日志的默认客户端
	HTTPClient *http.Client
}

// OpenAI 实现 continuity.Provider。文本调用使用 Responses 接口，
// 以 previous_response_id 续接上一轮；图片调用使用 Images 接口。
type OpenAI struct {
	client       openai.Client
	chatModel    string
	imageModel   string
	imageSize    string
	systemPrompt string
}

var _ continuity.Provider = (*OpenAI)(nil)

func NewOpenAI(cfg Config) *OpenAI {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = log.NewHTTPClient()
	}
	opts := []option.RequestOption{
		option.WithHTTPClient(httpClient),
		// 重试由调用方决定
		option.WithMaxRetries(0),
	}
	if cfg.APIKey != "" {
		opts = append(opts, option.WithAPIKey(cfg.APIKey))
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	return &OpenAI{
		client:       openai.NewClient(opts...),
		chatModel:    cmp.Or(cfg.ChatModel, DefaultChatModel),
		imageModel:   cmp.Or(cfg.ImageModel, DefaultImageModel),
		imageSize:    cmp.Or(cfg.ImageSize, DefaultImageSize),
		systemPrompt: cfg.SystemPrompt,
	}
}

func (p *OpenAI) GenerateText(ctx context.Context, req continuity.TextRequest) (continuity.TextResponse, error) {
	var content responses.ResponseInputMessageContentListParam
	if req.Prompt != "" {
		content = append(content, responses.ResponseInputContentUnionParam{
			OfInputText: &responses.ResponseInputTextParam{Text: req.Prompt},
		})
	}
	for _, att := range req.Attachments {
		content = append(content, responses.ResponseInputContentUnionParam{
			OfInputImage: &responses.ResponseInputImageParam{
				ImageURL: openai.String(att.DataURL()),
				Detail:   responses.ResponseInputImageDetailAuto,
			},
		})
	}

	params := responses.ResponseNewParams{
		Model: shared.ResponsesModel(p.chatModel),
		Input: responses.ResponseNewParamsInputUnion{
			OfInputItemList: responses.ResponseInputParam{
				{
					OfMessage: &responses.EasyInputMessageParam{
						Role: responses.EasyInputMessageRoleUser,
						Content: responses.EasyInputMessageContentUnionParam{
							OfInputItemContentList: content,
						},
					},
				},
			},
		},
	}
	if req.Token != "" {
		params.PreviousResponseID = openai.String(req.Token)
	}
	if p.systemPrompt != "" {
		params.Instructions = openai.String(p.systemPrompt)
	}

	resp, err := p.client.Responses.New(ctx, params)
	if err != nil {
		return continuity.TextResponse{}, apiError("responses", err)
	}
	if resp.ID == "" {
		return continuity.TextResponse{}, errors.New("响应缺少 id")
	}
	slog.Debug("收到文本响应", "response_id", resp.ID, "continued", req.Token != "")
	return continuity.TextResponse{Text: resp.OutputText(), Token: resp.ID}, nil
}

func (p *OpenAI) GenerateImage(ctx context.Context, prompt string) (continuity.ImageResponse, error) {
	resp, err := p.client.Images.Generate(ctx, openai.ImageGenerateParams{
		Prompt: prompt,
		Model:  openai.ImageModel(p.imageModel),
		N:      openai.Int(1),
		Size:   openai.ImageGenerateParamsSize(p.imageSize),
	})
	if err != nil {
		return continuity.ImageResponse{}, apiError("images", err)
	}
	if len(resp.Data) == 0 {
		return continuity.ImageResponse{}, errors.New("图片响应为空")
	}

	img := resp.Data[0]
	locator := img.URL
	if locator == "" && img.B64JSON != "" {
		if _, err := base64.StdEncoding.DecodeString(img.B64JSON); err != nil {
			return continuity.ImageResponse{}, fmt.Errorf("解码图片数据: %w", err)
		}
		locator = "data:image/png;base64," + img.B64JSON
	}
	return continuity.ImageResponse{
		Locator:       locator,
		RevisedPrompt: strings.TrimSpace(img.RevisedPrompt),
	}, nil
}

// apiError 保留 ctx 错误链，并把 API 错误归纳为状态码加消息。
func apiError(op string, err error) error {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		return fmt.Errorf("%s: HTTP %d: %w", op, apiErr.StatusCode, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}
