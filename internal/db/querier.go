// 本文件由 sqlc 自动生成。请勿手动编辑。
// 版本信息:
//   sqlc v1.30.0

package db

import (
	"context"
)

// Querier 定义了账本的全部数据库操作
type Querier interface {
	// CreateTurn 追加一条对话记录
	CreateTurn(ctx context.Context, arg CreateTurnParams) (Turn, error)
	GetActivityByDay(ctx context.Context, userID string) ([]GetActivityByDayRow, error)
	GetHourlyBreakdown(ctx context.Context, userID string) ([]GetHourlyBreakdownRow, error)
	GetImagesByDay(ctx context.Context, userID string) ([]GetImagesByDayRow, error)
	// GetLatestTurnTime 返回全库最新的时间戳，空库返回 0
	GetLatestTurnTime(ctx context.Context) (int64, error)
	GetMessageTypeDistribution(ctx context.Context, userID string) ([]GetMessageTypeDistributionRow, error)
	// GetSessionLengths 返回多于一条记录的会话，limit 为 -1 时不限制条数
	GetSessionLengths(ctx context.Context, arg GetSessionLengthsParams) ([]GetSessionLengthsRow, error)
	GetUserMessagesByDay(ctx context.Context, userID string) ([]GetUserMessagesByDayRow, error)
	GetUserTotals(ctx context.Context, userID string) (GetUserTotalsRow, error)
	ListSessionDetails(ctx context.Context, userID string) ([]ListSessionDetailsRow, error)
	// ListSessionSummaries 返回每个会话的第一条记录，按开始时间倒序
	ListSessionSummaries(ctx context.Context, userID string) ([]ListSessionSummariesRow, error)
	ListSessionTurns(ctx context.Context, arg ListSessionTurnsParams) ([]Turn, error)
	ListUserTurns(ctx context.Context, userID string) ([]Turn, error)
	ListUsersWithTurns(ctx context.Context) ([]ListUsersWithTurnsRow, error)
}

var _ Querier = (*Queries)(nil)
