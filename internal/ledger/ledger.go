package ledger

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/SandeepBatta/OrigamiAI/internal/csync"
	"github.com/SandeepBatta/OrigamiAI/internal/db"
	"github.com/SandeepBatta/OrigamiAI/internal/pubsub"
	"golang.org/x/sync/semaphore"
)

// Service 是账本的全部能力：追加和按顺序读取，没有修改或删除。
type Service interface {
	pubsub.Subscriber[Turn]
	// Append 在一个事务内写入 turns，全部成功或全部失败，返回带 ID 和时间戳的记录。
	Append(ctx context.Context, userID, sessionID string, turns ...Turn) ([]Turn, error)
	// List 按 (created_at, id) 升序返回一个会话的记录。
	List(ctx context.Context, userID, sessionID string) ([]Turn, error)
	// ListByUser 按账本顺序返回一个用户的全部记录。
	ListByUser(ctx context.Context, userID string) ([]Turn, error)
	// Shutdown 关闭事件订阅。
	Shutdown()
}

// Option 配置账本服务。
type Option func(*service)

// WithClock 替换时间来源，主要用于测试。
func WithClock(now func() time.Time) Option {
	return func(s *service) {
		s.now = now
	}
}

type service struct {
	*pubsub.Broker[Turn]
	conn  *sql.DB
	q     *db.Queries
	now   func() time.Time
	locks *csync.Map[string, *sessionLock]
}

// NewService 创建基于 conn 的账本服务。q 通常是对 conn 预编译过的 Queries。
func NewService(conn *sql.DB, q *db.Queries, opts ...Option) Service {
	s := &service{
		Broker: pubsub.NewBroker[Turn](),
		conn:   conn,
		q:      q,
		now:    time.Now,
		locks:  csync.NewMap[string, *sessionLock](),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// sessionLock 是一个会话的写锁。refs 统计持有或等待它的调用者，
// 只在 locks 的写锁内修改；归零时条目被删除。
type sessionLock struct {
	sem  *semaphore.Weighted
	refs int
}

// lock 获取会话的写锁，等待期间可被 ctx 取消。
func (s *service) lock(ctx context.Context, userID, sessionID string) (func(), error) {
	key := userID + "\x00" + sessionID
	l := s.locks.Compute(key, func(l *sessionLock, ok bool) (*sessionLock, bool) {
		if !ok {
			l = &sessionLock{sem: semaphore.NewWeighted(1)}
		}
		l.refs++
		return l, true
	})
	release := func() {
		s.locks.Compute(key, func(l *sessionLock, _ bool) (*sessionLock, bool) {
			l.refs--
			return l, l.refs > 0
		})
	}
	if err := l.sem.Acquire(ctx, 1); err != nil {
		release()
		return nil, err
	}
	return func() {
		l.sem.Release(1)
		release()
	}, nil
}

func (s *service) Append(ctx context.Context, userID, sessionID string, turns ...Turn) ([]Turn, error) {
	if userID == "" || sessionID == "" {
		return nil, fmt.Errorf("%w: 缺少用户或会话标识", ErrInvalidTurn)
	}
	if len(turns) == 0 {
		return nil, fmt.Errorf("%w: 没有要写入的记录", ErrInvalidTurn)
	}
	for _, t := range turns {
		if err := t.Validate(); err != nil {
			return nil, err
		}
	}

	unlock, err := s.lock(ctx, userID, sessionID)
	if err != nil {
		return nil, storageErr("追加", err)
	}
	defer unlock()

	tx, err := s.conn.BeginTx(ctx, nil)
	if err != nil {
		return nil, storageErr("追加", err)
	}
	defer tx.Rollback() //nolint:errcheck

	qtx := s.q.WithTx(tx)
	stored := make([]Turn, 0, len(turns))
	for _, t := range turns {
		item, err := qtx.CreateTurn(ctx, db.CreateTurnParams{
			UserID:    userID,
			SessionID: sessionID,
			Role:      string(t.Role),
			Kind:      string(t.Kind),
			Content:   t.Content,
			Url:       t.URL,
			CreatedAt: s.now().Unix(),
		})
		if err != nil {
			return nil, storageErr("追加", err)
		}
		stored = append(stored, fromDBItem(item))
	}
	if err := tx.Commit(); err != nil {
		return nil, storageErr("提交", err)
	}

	slog.Debug("已追加对话记录", "user", userID, "session", sessionID, "count", len(stored))
	for _, t := range stored {
		s.Publish(pubsub.CreatedEvent, t)
	}
	return stored, nil
}

func (s *service) List(ctx context.Context, userID, sessionID string) ([]Turn, error) {
	items, err := s.q.ListSessionTurns(ctx, db.ListSessionTurnsParams{
		UserID:    userID,
		SessionID: sessionID,
	})
	if err != nil {
		return nil, storageErr("读取", err)
	}
	return fromDBItems(items), nil
}

func (s *service) ListByUser(ctx context.Context, userID string) ([]Turn, error) {
	items, err := s.q.ListUserTurns(ctx, userID)
	if err != nil {
		return nil, storageErr("读取", err)
	}
	return fromDBItems(items), nil
}
