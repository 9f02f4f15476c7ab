// Package ledger 是对话记录的只追加账本，所有会话和统计都从这里派生。
package ledger

import (
	"fmt"
	"time"

	"github.com/SandeepBatta/OrigamiAI/internal/db"
)

// Role 表示记录的作者
type Role string

const (
	User      Role = "user"
	Assistant Role = "assistant"
)

// Kind 表示记录的内容类型
type Kind string

const (
	Text  Kind = "text"
	Image Kind = "image"
)

// Turn 是一条不可变的对话记录。ID 和 CreatedAt 由账本在写入时分配。
type Turn struct {
	ID        int64     `json:"id" yaml:"id"`
	UserID    string    `json:"user_id" yaml:"user_id"`
	SessionID string    `json:"session_id" yaml:"session_id"`
	Role      Role      `json:"role" yaml:"role"`
	Kind      Kind      `json:"kind" yaml:"kind"`
	Content   string    `json:"content" yaml:"content"`
	URL       string    `json:"url,omitempty" yaml:"url,omitempty"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
}

// TextTurn 构造一条文本记录。
func TextTurn(role Role, content string) Turn {
	return Turn{Role: role, Kind: Text, Content: content}
}

// ImageTurn 构造一条助手生成的图片记录。
func ImageTurn(caption, url string) Turn {
	return Turn{Role: Assistant, Kind: Image, Content: caption, URL: url}
}

// Validate 检查记录是否满足账本的不变量。
func (t Turn) Validate() error {
	switch t.Role {
	case User, Assistant:
	default:
		return fmt.Errorf("%w: 未知角色 %q", ErrInvalidTurn, t.Role)
	}
	switch t.Kind {
	case Text:
		if t.URL != "" {
			return fmt.Errorf("%w: 文本记录不能带 url", ErrInvalidTurn)
		}
	case Image:
		if t.URL == "" {
			return fmt.Errorf("%w: 图片记录缺少 url", ErrInvalidTurn)
		}
	default:
		return fmt.Errorf("%w: 未知类型 %q", ErrInvalidTurn, t.Kind)
	}
	return nil
}

func fromDBItem(item db.Turn) Turn {
	return Turn{
		ID:        item.ID,
		UserID:    item.UserID,
		SessionID: item.SessionID,
		Role:      Role(item.Role),
		Kind:      Kind(item.Kind),
		Content:   item.Content,
		URL:       item.Url,
		CreatedAt: time.Unix(item.CreatedAt, 0).UTC(),
	}
}

func fromDBItems(items []db.Turn) []Turn {
	turns := make([]Turn, len(items))
	for i, item := range items {
		turns[i] = fromDBItem(item)
	}
	return turns
}
