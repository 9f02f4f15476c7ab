// 由 sqlc 自动生成的代码。请勿编辑。
// 版本:
//   sqlc v1.30.0
// 源文件: sessions.sql

package db

import (
	"context"
	"database/sql"
)

const listSessionDetails = `-- name: ListSessionDetails :many
SELECT
    t.session_id,
    (
        SELECT f.content
        FROM turns f
        WHERE f.user_id = t.user_id AND f.session_id = t.session_id
        ORDER BY f.created_at ASC, f.id ASC
        LIMIT 1
    ) AS first_content,
    COUNT(*) AS turn_count,
    CAST(MAX(t.created_at) AS INTEGER) AS last_at
FROM turns t
WHERE t.user_id = ?
GROUP BY t.session_id
ORDER BY last_at DESC, MAX(t.id) DESC
`

// ListSessionDetailsRow 会话详情查询结果行
type ListSessionDetailsRow struct {
	SessionID    string         `json:"session_id"`
	FirstContent sql.NullString `json:"first_content"` // 会话第一条记录的内容
	TurnCount    int64          `json:"turn_count"`
	LastAt       int64          `json:"last_at"` // 最近一条记录的时间戳
}

// ListSessionDetails 列出用户的会话及其记录数，按最近活动时间倒序
func (q *Queries) ListSessionDetails(ctx context.Context, userID string) ([]ListSessionDetailsRow, error) {
	rows, err := q.query(ctx, q.listSessionDetailsStmt, listSessionDetails, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []ListSessionDetailsRow{}
	for rows.Next() {
		var i ListSessionDetailsRow
		if err := rows.Scan(
			&i.SessionID,
			&i.FirstContent,
			&i.TurnCount,
			&i.LastAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const listSessionSummaries = `-- name: ListSessionSummaries :many
SELECT
    t.session_id,
    t.content,
    t.created_at AS first_at
FROM turns t
WHERE t.user_id = ?
  AND t.id = (
    SELECT f.id
    FROM turns f
    WHERE f.user_id = t.user_id AND f.session_id = t.session_id
    ORDER BY f.created_at ASC, f.id ASC
    LIMIT 1
  )
ORDER BY t.created_at DESC, t.id DESC
`

// ListSessionSummariesRow 会话摘要查询结果行
type ListSessionSummariesRow struct {
	SessionID string `json:"session_id"`
	Content   string `json:"content"`
	FirstAt   int64  `json:"first_at"`
}

func (q *Queries) ListSessionSummaries(ctx context.Context, userID string) ([]ListSessionSummariesRow, error) {
	rows, err := q.query(ctx, q.listSessionSummariesStmt, listSessionSummaries, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []ListSessionSummariesRow{}
	for rows.Next() {
		var i ListSessionSummariesRow
		if err := rows.Scan(&i.SessionID, &i.Content, &i.FirstAt); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
