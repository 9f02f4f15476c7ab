// Package session 从账本派生每个用户的会话列表。会话没有独立存储：
// 只要账本里有带该会话 ID 的记录，会话就存在。
package session

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/SandeepBatta/OrigamiAI/internal/db"
	"github.com/SandeepBatta/OrigamiAI/internal/ledger"
	"github.com/SandeepBatta/OrigamiAI/internal/stringext"
	"github.com/google/uuid"
)

const (
	// SnippetLength 是会话列表中摘要的最大字符数
	SnippetLength = 20
	// DetailedSnippetLength 是详细列表中摘要的最大字符数
	DetailedSnippetLength = 30
	// EmptySnippet 用于第一条记录内容为空的会话
	EmptySnippet = "Empty session"
)

// Summary 是侧边栏使用的会话摘要
type Summary struct {
	ID      string    `json:"id"`
	Snippet string    `json:"snippet"`
	FirstAt time.Time `json:"first_at"`
}

// DetailedSummary 额外带有记录数和最近活动时间
type DetailedSummary struct {
	ID        string    `json:"id"`
	Snippet   string    `json:"snippet"`
	TurnCount int64     `json:"turn_count"`
	LastAt    time.Time `json:"last_at"`
}

type Service interface {
	// Create 分配一个新的会话 ID，不写入任何记录。
	Create(userID string) string
	// List 按第一条记录时间倒序列出会话。
	List(ctx context.Context, userID string) ([]Summary, error)
	// ListDetailed 按最近活动时间倒序列出会话。
	ListDetailed(ctx context.Context, userID string) ([]DetailedSummary, error)
}

type service struct {
	q db.Querier
}

func NewService(q db.Querier) Service {
	return &service{q: q}
}

// NewID 返回一个不带连字符的随机 UUID。
func NewID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

func (s *service) Create(userID string) string {
	id := NewID()
	slog.Debug("创建会话", "user", userID, "session", id)
	return id
}

func (s *service) List(ctx context.Context, userID string) ([]Summary, error) {
	rows, err := s.q.ListSessionSummaries(ctx, userID)
	if err != nil {
		return nil, &ledger.StorageError{Op: "列出会话", Err: err}
	}
	summaries := make([]Summary, len(rows))
	for i, row := range rows {
		summaries[i] = Summary{
			ID:      row.SessionID,
			Snippet: stringext.Truncate(row.Content, SnippetLength),
			FirstAt: time.Unix(row.FirstAt, 0).UTC(),
		}
	}
	return summaries, nil
}

func (s *service) ListDetailed(ctx context.Context, userID string) ([]DetailedSummary, error) {
	rows, err := s.q.ListSessionDetails(ctx, userID)
	if err != nil {
		return nil, &ledger.StorageError{Op: "列出会话", Err: err}
	}
	summaries := make([]DetailedSummary, len(rows))
	for i, row := range rows {
		snippet := EmptySnippet
		if row.FirstContent.Valid && row.FirstContent.String != "" {
			snippet = stringext.Truncate(row.FirstContent.String, DetailedSnippetLength)
		}
		summaries[i] = DetailedSummary{
			ID:        row.SessionID,
			Snippet:   snippet,
			TurnCount: row.TurnCount,
			LastAt:    time.Unix(row.LastAt, 0).UTC(),
		}
	}
	return summaries, nil
}
