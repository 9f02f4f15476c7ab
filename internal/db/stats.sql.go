// 由 sqlc 自动生成的代码。请勿编辑。
// 版本:
//   sqlc v1.30.0
// 源文件: stats.sql

package db

import (
	"context"
	"database/sql"
)

const getActivityByDay = `-- name: GetActivityByDay :many
SELECT
    date(created_at, 'unixepoch') AS day,
    COUNT(*) AS count
FROM turns
WHERE user_id = ?
GROUP BY day
ORDER BY day ASC
`

// GetActivityByDayRow 按天计数的结果行，day 为 UTC 日期（YYYY-MM-DD）
type GetActivityByDayRow struct {
	Day   string `json:"day"`
	Count int64  `json:"count"`
}

// GetActivityByDay 按 UTC 日期统计用户的全部记录
func (q *Queries) GetActivityByDay(ctx context.Context, userID string) ([]GetActivityByDayRow, error) {
	rows, err := q.query(ctx, q.getActivityByDayStmt, getActivityByDay, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []GetActivityByDayRow{}
	for rows.Next() {
		var i GetActivityByDayRow
		if err := rows.Scan(&i.Day, &i.Count); err != nil {
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

const getHourlyBreakdown = `-- name: GetHourlyBreakdown :many
SELECT
    CAST(strftime('%H', created_at, 'unixepoch') AS INTEGER) AS hour,
    CAST(SUM(CASE WHEN role = 'user' THEN 1 ELSE 0 END) AS INTEGER) AS user_count,
    CAST(SUM(CASE WHEN role = 'assistant' THEN 1 ELSE 0 END) AS INTEGER) AS ai_count
FROM turns
WHERE user_id = ?
GROUP BY hour
ORDER BY hour ASC
`

// GetHourlyBreakdownRow 按小时统计的结果行
type GetHourlyBreakdownRow struct {
	Hour      int64 `json:"hour"` // 小时（0-23）
	UserCount int64 `json:"user_count"`
	AiCount   int64 `json:"ai_count"`
}

// GetHourlyBreakdown 按一天中的小时统计用户与助手的记录数，只返回有记录的小时
func (q *Queries) GetHourlyBreakdown(ctx context.Context, userID string) ([]GetHourlyBreakdownRow, error) {
	rows, err := q.query(ctx, q.getHourlyBreakdownStmt, getHourlyBreakdown, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []GetHourlyBreakdownRow{}
	for rows.Next() {
		var i GetHourlyBreakdownRow
		if err := rows.Scan(&i.Hour, &i.UserCount, &i.AiCount); err != nil {
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

const getImagesByDay = `-- name: GetImagesByDay :many
SELECT
    date(created_at, 'unixepoch') AS day,
    COUNT(*) AS count
FROM turns
WHERE user_id = ? AND role = 'assistant' AND kind = 'image'
GROUP BY day
ORDER BY day ASC
`

// GetImagesByDayRow 按天计数的结果行，day 为 UTC 日期（YYYY-MM-DD）
type GetImagesByDayRow struct {
	Day   string `json:"day"`
	Count int64  `json:"count"`
}

func (q *Queries) GetImagesByDay(ctx context.Context, userID string) ([]GetImagesByDayRow, error) {
	rows, err := q.query(ctx, q.getImagesByDayStmt, getImagesByDay, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []GetImagesByDayRow{}
	for rows.Next() {
		var i GetImagesByDayRow
		if err := rows.Scan(&i.Day, &i.Count); err != nil {
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

const getMessageTypeDistribution = `-- name: GetMessageTypeDistribution :many
SELECT
    CASE
        WHEN role = 'user' THEN 'User Messages'
        WHEN role = 'assistant' AND kind = 'text' THEN 'AI Text Responses'
        WHEN role = 'assistant' AND kind = 'image' THEN 'AI Images'
        ELSE 'Other'
    END AS message_type,
    COUNT(*) AS count
FROM turns
WHERE user_id = ?
GROUP BY message_type
ORDER BY count DESC, message_type ASC
`

type GetMessageTypeDistributionRow struct {
	MessageType string `json:"message_type"`
	Count       int64  `json:"count"`
}

// GetMessageTypeDistribution 按消息类型统计记录数，数量相同时按类型名排序
func (q *Queries) GetMessageTypeDistribution(ctx context.Context, userID string) ([]GetMessageTypeDistributionRow, error) {
	rows, err := q.query(ctx, q.getMessageTypeDistributionStmt, getMessageTypeDistribution, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []GetMessageTypeDistributionRow{}
	for rows.Next() {
		var i GetMessageTypeDistributionRow
		if err := rows.Scan(&i.MessageType, &i.Count); err != nil {
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

const getSessionLengths = `-- name: GetSessionLengths :many
SELECT
    session_id,
    COUNT(*) AS turn_count,
    CAST((MAX(created_at) - MIN(created_at)) / 60 AS INTEGER) AS duration_minutes
FROM turns
WHERE user_id = ?
GROUP BY session_id
HAVING COUNT(*) > 1
ORDER BY turn_count DESC, session_id ASC
LIMIT ?
`

type GetSessionLengthsParams struct {
	UserID string `json:"user_id"`
	Limit  int64  `json:"limit"`
}

// GetSessionLengthsRow 会话长度统计结果行
type GetSessionLengthsRow struct {
	SessionID       string `json:"session_id"`
	TurnCount       int64  `json:"turn_count"`
	DurationMinutes int64  `json:"duration_minutes"` // 首末记录间隔的整分钟数
}

// GetSessionLengths 统计多于一条记录的会话的记录数和持续时间
func (q *Queries) GetSessionLengths(ctx context.Context, arg GetSessionLengthsParams) ([]GetSessionLengthsRow, error) {
	rows, err := q.query(ctx, q.getSessionLengthsStmt, getSessionLengths, arg.UserID, arg.Limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []GetSessionLengthsRow{}
	for rows.Next() {
		var i GetSessionLengthsRow
		if err := rows.Scan(&i.SessionID, &i.TurnCount, &i.DurationMinutes); err != nil {
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

const getUserMessagesByDay = `-- name: GetUserMessagesByDay :many
SELECT
    date(created_at, 'unixepoch') AS day,
    COUNT(*) AS count
FROM turns
WHERE user_id = ? AND role = 'user'
GROUP BY day
ORDER BY day ASC
`

// GetUserMessagesByDayRow 按天计数的结果行，day 为 UTC 日期（YYYY-MM-DD）
type GetUserMessagesByDayRow struct {
	Day   string `json:"day"`
	Count int64  `json:"count"`
}

// GetUserMessagesByDay 按 UTC 日期统计用户发送的消息
func (q *Queries) GetUserMessagesByDay(ctx context.Context, userID string) ([]GetUserMessagesByDayRow, error) {
	rows, err := q.query(ctx, q.getUserMessagesByDayStmt, getUserMessagesByDay, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []GetUserMessagesByDayRow{}
	for rows.Next() {
		var i GetUserMessagesByDayRow
		if err := rows.Scan(&i.Day, &i.Count); err != nil {
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

const getUserTotals = `-- name: GetUserTotals :one
SELECT
    COUNT(*) AS total_messages,
    COUNT(DISTINCT session_id) AS total_sessions,
    CAST(COALESCE(SUM(CASE WHEN role = 'assistant' AND kind = 'image' THEN 1 ELSE 0 END), 0) AS INTEGER) AS total_images,
    MAX(created_at) AS last_activity
FROM turns
WHERE user_id = ?
`

// GetUserTotalsRow 用户汇总统计结果行
type GetUserTotalsRow struct {
	TotalMessages int64         `json:"total_messages"`
	TotalSessions int64         `json:"total_sessions"`
	TotalImages   int64         `json:"total_images"`
	LastActivity  sql.NullInt64 `json:"last_activity"` // 没有记录时为 NULL
}

// GetUserTotals 获取用户的记录总数、会话数、图片数和最近活动时间
func (q *Queries) GetUserTotals(ctx context.Context, userID string) (GetUserTotalsRow, error) {
	row := q.queryRow(ctx, q.getUserTotalsStmt, getUserTotals, userID)
	var i GetUserTotalsRow
	err := row.Scan(
		&i.TotalMessages,
		&i.TotalSessions,
		&i.TotalImages,
		&i.LastActivity,
	)
	return i, err
}

const listUsersWithTurns = `-- name: ListUsersWithTurns :many
SELECT
    user_id,
    COUNT(*) AS turn_count,
    COUNT(DISTINCT session_id) AS session_count,
    CAST(MAX(created_at) AS INTEGER) AS last_activity
FROM turns
GROUP BY user_id
ORDER BY last_activity DESC, user_id ASC
`

type ListUsersWithTurnsRow struct {
	UserID       string `json:"user_id"`
	TurnCount    int64  `json:"turn_count"`
	SessionCount int64  `json:"session_count"`
	LastActivity int64  `json:"last_activity"`
}

// ListUsersWithTurns 列出所有有记录的用户，最近活跃的在前
func (q *Queries) ListUsersWithTurns(ctx context.Context) ([]ListUsersWithTurnsRow, error) {
	rows, err := q.query(ctx, q.listUsersWithTurnsStmt, listUsersWithTurns)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []ListUsersWithTurnsRow{}
	for rows.Next() {
		var i ListUsersWithTurnsRow
		if err := rows.Scan(
			&i.UserID,
			&i.TurnCount,
			&i.SessionCount,
			&i.LastActivity,
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
