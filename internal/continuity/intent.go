package continuity

import (
	"strings"

	"github.com/tidwall/gjson"
)

// ActionGenerateImage 是模型请求生成图片时使用的 action 值。
const ActionGenerateImage = "generate_image"

// intent 是对提供方输出的解码结果。image 为 false 时输出按原样作为文本记录。
type intent struct {
	image  bool
	prompt string
}

// decodeIntent 尝试把整段输出解析为 {"action":"generate_image","prompt":"..."}。
// 任何不符合的形式都落到文本分支，从不返回错误。
func decodeIntent(raw string) intent {
	body := strings.TrimSpace(raw)
	if !gjson.Valid(body) {
		return intent{}
	}
	doc := gjson.Parse(body)
	if !doc.IsObject() {
		return intent{}
	}
	action := doc.Get("action")
	if action.Type != gjson.String || action.Str != ActionGenerateImage {
		return intent{}
	}
	prompt := doc.Get("prompt")
	if prompt.Type != gjson.String || strings.TrimSpace(prompt.Str) == "" {
		return intent{}
	}
	return intent{image: true, prompt: prompt.Str}
}
