// 由 sqlc 自动生成的代码。请勿编辑。
// 版本:
//   sqlc v1.30.0
// 源文件: turns.sql

package db

import (
	"context"
)

const createTurn = `-- name: CreateTurn :one
INSERT INTO turns (
    user_id,
    session_id,
    role,
    kind,
    content,
    url,
    created_at
) VALUES (
    ?, ?, ?, ?, ?, ?,
    MAX(?, (SELECT COALESCE(MAX(created_at), 0) FROM turns))
)
RETURNING id, user_id, session_id, role, kind, content, url, created_at
`

// CreateTurnParams 追加对话记录的参数
type CreateTurnParams struct {
	UserID    string `json:"user_id"`
	SessionID string `json:"session_id"`
	Role      string `json:"role"`
	Kind      string `json:"kind"`
	Content   string `json:"content"`
	Url       string `json:"url"`
	CreatedAt int64  `json:"created_at"`
}

// CreateTurn 追加一条对话记录并返回写入后的完整行。
// 写入的 created_at 不会早于库中已有的最新时间戳。
func (q *Queries) CreateTurn(ctx context.Context, arg CreateTurnParams) (Turn, error) {
	row := q.queryRow(ctx, q.createTurnStmt, createTurn,
		arg.UserID,
		arg.SessionID,
		arg.Role,
		arg.Kind,
		arg.Content,
		arg.Url,
		arg.CreatedAt,
	)
	var i Turn
	err := row.Scan(
		&i.ID,
		&i.UserID,
		&i.SessionID,
		&i.Role,
		&i.Kind,
		&i.Content,
		&i.Url,
		&i.CreatedAt,
	)
	return i, err
}

const getLatestTurnTime = `-- name: GetLatestTurnTime :one
SELECT CAST(COALESCE(MAX(created_at), 0) AS INTEGER) AS latest
FROM turns
`

func (q *Queries) GetLatestTurnTime(ctx context.Context) (int64, error) {
	row := q.queryRow(ctx, q.getLatestTurnTimeStmt, getLatestTurnTime)
	var latest int64
	err := row.Scan(&latest)
	return latest, err
}

const listSessionTurns = `-- name: ListSessionTurns :many
SELECT id, user_id, session_id, role, kind, content, url, created_at
FROM turns
WHERE user_id = ? AND session_id = ?
ORDER BY created_at ASC, id ASC
`

type ListSessionTurnsParams struct {
	UserID    string `json:"user_id"`
	SessionID string `json:"session_id"`
}

// ListSessionTurns 按对话顺序列出一个会话的全部记录
func (q *Queries) ListSessionTurns(ctx context.Context, arg ListSessionTurnsParams) ([]Turn, error) {
	rows, err := q.query(ctx, q.listSessionTurnsStmt, listSessionTurns, arg.UserID, arg.SessionID)
	if err != nil {
		return nil, err
	}
	return scanTurns(rows)
}

const listUserTurns = `-- name: ListUserTurns :many
SELECT id, user_id, session_id, role, kind, content, url, created_at
FROM turns
WHERE user_id = ?
ORDER BY created_at ASC, id ASC
`

// ListUserTurns 按时间顺序列出一个用户的全部记录
func (q *Queries) ListUserTurns(ctx context.Context, userID string) ([]Turn, error) {
	rows, err := q.query(ctx, q.listUserTurnsStmt, listUserTurns, userID)
	if err != nil {
		return nil, err
	}
	return scanTurns(rows)
}
