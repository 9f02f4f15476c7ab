// 由 sqlc 自动生成的代码。请勿编辑。
// 版本信息:
//   sqlc v1.30.0

package db

import (
	"context"
	"database/sql"
	"fmt"
)

// DBTX 定义数据库事务接口，封装了数据库操作的核心方法
type DBTX interface {
	ExecContext(context.Context, string, ...interface{}) (sql.Result, error)
	PrepareContext(context.Context, string) (*sql.Stmt, error)
	QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error)
	QueryRowContext(context.Context, string, ...interface{}) *sql.Row
}

// New 创建并返回一个新的 Queries 实例
func New(db DBTX) *Queries {
	return &Queries{db: db}
}

// Prepare 预编译所有 SQL 查询语句并返回 Queries 实例
func Prepare(ctx context.Context, db DBTX) (*Queries, error) {
	q := Queries{db: db}
	var err error
	if q.createTurnStmt, err = db.PrepareContext(ctx, createTurn); err != nil {
		return nil, fmt.Errorf("准备查询 CreateTurn 时出错: %w", err)
	}
	if q.getActivityByDayStmt, err = db.PrepareContext(ctx, getActivityByDay); err != nil {
		return nil, fmt.Errorf("准备查询 GetActivityByDay 时出错: %w", err)
	}
	if q.getHourlyBreakdownStmt, err = db.PrepareContext(ctx, getHourlyBreakdown); err != nil {
		return nil, fmt.Errorf("准备查询 GetHourlyBreakdown 时出错: %w", err)
	}
	if q.getImagesByDayStmt, err = db.PrepareContext(ctx, getImagesByDay); err != nil {
		return nil, fmt.Errorf("准备查询 GetImagesByDay 时出错: %w", err)
	}
	if q.getLatestTurnTimeStmt, err = db.PrepareContext(ctx, getLatestTurnTime); err != nil {
		return nil, fmt.Errorf("准备查询 GetLatestTurnTime 时出错: %w", err)
	}
	if q.getMessageTypeDistributionStmt, err = db.PrepareContext(ctx, getMessageTypeDistribution); err != nil {
		return nil, fmt.Errorf("准备查询 GetMessageTypeDistribution 时出错: %w", err)
	}
	if q.getSessionLengthsStmt, err = db.PrepareContext(ctx, getSessionLengths); err != nil {
		return nil, fmt.Errorf("准备查询 GetSessionLengths 时出错: %w", err)
	}
	if q.getUserMessagesByDayStmt, err = db.PrepareContext(ctx, getUserMessagesByDay); err != nil {
		return nil, fmt.Errorf("准备查询 GetUserMessagesByDay 时出错: %w", err)
	}
	if q.getUserTotalsStmt, err = db.PrepareContext(ctx, getUserTotals); err != nil {
		return nil, fmt.Errorf("准备查询 GetUserTotals 时出错: %w", err)
	}
	if q.listSessionDetailsStmt, err = db.PrepareContext(ctx, listSessionDetails); err != nil {
		return nil, fmt.Errorf("准备查询 ListSessionDetails 时出错: %w", err)
	}
	if q.listSessionSummariesStmt, err = db.PrepareContext(ctx, listSessionSummaries); err != nil {
		return nil, fmt.Errorf("准备查询 ListSessionSummaries 时出错: %w", err)
	}
	if q.listSessionTurnsStmt, err = db.PrepareContext(ctx, listSessionTurns); err != nil {
		return nil, fmt.Errorf("准备查询 ListSessionTurns 时出错: %w", err)
	}
	if q.listUserTurnsStmt, err = db.PrepareContext(ctx, listUserTurns); err != nil {
		return nil, fmt.Errorf("准备查询 ListUserTurns 时出错: %w", err)
	}
	if q.listUsersWithTurnsStmt, err = db.PrepareContext(ctx, listUsersWithTurns); err != nil {
		return nil, fmt.Errorf("准备查询 ListUsersWithTurns 时出错: %w", err)
	}
	return &q, nil
}

// Close 关闭所有预编译语句，返回遇到的第一个错误
func (q *Queries) Close() error {
	var err error
	if q.createTurnStmt != nil {
		if cerr := q.createTurnStmt.Close(); cerr != nil {
			err = fmt.Errorf("关闭 createTurnStmt 时出错: %w", cerr)
		}
	}
	if q.getActivityByDayStmt != nil {
		if cerr := q.getActivityByDayStmt.Close(); cerr != nil {
			err = fmt.Errorf("关闭 getActivityByDayStmt 时出错: %w", cerr)
		}
	}
	if q.getHourlyBreakdownStmt != nil {
		if cerr := q.getHourlyBreakdownStmt.Close(); cerr != nil {
			err = fmt.Errorf("关闭 getHourlyBreakdownStmt 时出错: %w", cerr)
		}
	}
	if q.getImagesByDayStmt != nil {
		if cerr := q.getImagesByDayStmt.Close(); cerr != nil {
			err = fmt.Errorf("关闭 getImagesByDayStmt 时出错: %w", cerr)
		}
	}
	if q.getLatestTurnTimeStmt != nil {
		if cerr := q.getLatestTurnTimeStmt.Close(); cerr != nil {
			err = fmt.Errorf("关闭 getLatestTurnTimeStmt 时出错: %w", cerr)
		}
	}
	if q.getMessageTypeDistributionStmt != nil {
		if cerr := q.getMessageTypeDistributionStmt.Close(); cerr != nil {
			err = fmt.Errorf("关闭 getMessageTypeDistributionStmt 时出错: %w", cerr)
		}
	}
	if q.getSessionLengthsStmt != nil {
		if cerr := q.getSessionLengthsStmt.Close(); cerr != nil {
			err = fmt.Errorf("关闭 getSessionLengthsStmt 时出错: %w", cerr)
		}
	}
	if q.getUserMessagesByDayStmt != nil {
		if cerr := q.getUserMessagesByDayStmt.Close(); cerr != nil {
			err = fmt.Errorf("关闭 getUserMessagesByDayStmt 时出错: %w", cerr)
		}
	}
	if q.getUserTotalsStmt != nil {
		if cerr := q.getUserTotalsStmt.Close(); cerr != nil {
			err = fmt.Errorf("关闭 getUserTotalsStmt 时出错: %w", cerr)
		}
	}
	if q.listSessionDetailsStmt != nil {
		if cerr := q.listSessionDetailsStmt.Close(); cerr != nil {
			err = fmt.Errorf("关闭 listSessionDetailsStmt 时出错: %w", cerr)
		}
	}
	if q.listSessionSummariesStmt != nil {
		if cerr := q.listSessionSummariesStmt.Close(); cerr != nil {
			err = fmt.Errorf("关闭 listSessionSummariesStmt 时出错: %w", cerr)
		}
	}
	if q.listSessionTurnsStmt != nil {
		if cerr := q.listSessionTurnsStmt.Close(); cerr != nil {
			err = fmt.Errorf("关闭 listSessionTurnsStmt 时出错: %w", cerr)
		}
	}
	if q.listUserTurnsStmt != nil {
		if cerr := q.listUserTurnsStmt.Close(); cerr != nil {
			err = fmt.Errorf("关闭 listUserTurnsStmt 时出错: %w", cerr)
		}
	}
	if q.listUsersWithTurnsStmt != nil {
		if cerr := q.listUsersWithTurnsStmt.Close(); cerr != nil {
			err = fmt.Errorf("关闭 listUsersWithTurnsStmt 时出错: %w", cerr)
		}
	}
	return err
}

func (q *Queries) exec(ctx context.Context, stmt *sql.Stmt, query string, args ...interface{}) (sql.Result, error) {
	switch {
	case stmt != nil && q.tx != nil:
		return q.tx.StmtContext(ctx, stmt).ExecContext(ctx, args...)
	case stmt != nil:
		return stmt.ExecContext(ctx, args...)
	default:
		return q.db.ExecContext(ctx, query, args...)
	}
}

func (q *Queries) query(ctx context.Context, stmt *sql.Stmt, query string, args ...interface{}) (*sql.Rows, error) {
	switch {
	case stmt != nil && q.tx != nil:
		return q.tx.StmtContext(ctx, stmt).QueryContext(ctx, args...)
	case stmt != nil:
		return stmt.QueryContext(ctx, args...)
	default:
		return q.db.QueryContext(ctx, query, args...)
	}
}

func (q *Queries) queryRow(ctx context.Context, stmt *sql.Stmt, query string, args ...interface{}) *sql.Row {
	switch {
	case stmt != nil && q.tx != nil:
		return q.tx.StmtContext(ctx, stmt).QueryRowContext(ctx, args...)
	case stmt != nil:
		return stmt.QueryRowContext(ctx, args...)
	default:
		return q.db.QueryRowContext(ctx, query, args...)
	}
}

// Queries 封装了账本的所有查询以及对应的预编译语句
type Queries struct {
	db                             DBTX
	tx                             *sql.Tx
	createTurnStmt                 *sql.Stmt
	getActivityByDayStmt           *sql.Stmt
	getHourlyBreakdownStmt         *sql.Stmt
	getImagesByDayStmt             *sql.Stmt
	getLatestTurnTimeStmt          *sql.Stmt
	getMessageTypeDistributionStmt *sql.Stmt
	getSessionLengthsStmt          *sql.Stmt
	getUserMessagesByDayStmt       *sql.Stmt
	getUserTotalsStmt              *sql.Stmt
	listSessionDetailsStmt         *sql.Stmt
	listSessionSummariesStmt       *sql.Stmt
	listSessionTurnsStmt           *sql.Stmt
	listUserTurnsStmt              *sql.Stmt
	listUsersWithTurnsStmt         *sql.Stmt
}

// WithTx 返回绑定到事务 tx 的 Queries 副本，预编译语句被复用
func (q *Queries) WithTx(tx *sql.Tx) *Queries {
	return &Queries{
		db:                             tx,
		tx:                             tx,
		createTurnStmt:                 q.createTurnStmt,
		getActivityByDayStmt:           q.getActivityByDayStmt,
		getHourlyBreakdownStmt:         q.getHourlyBreakdownStmt,
		getImagesByDayStmt:             q.getImagesByDayStmt,
		getLatestTurnTimeStmt:          q.getLatestTurnTimeStmt,
		getMessageTypeDistributionStmt: q.getMessageTypeDistributionStmt,
		getSessionLengthsStmt:          q.getSessionLengthsStmt,
		getUserMessagesByDayStmt:       q.getUserMessagesByDayStmt,
		getUserTotalsStmt:              q.getUserTotalsStmt,
		listSessionDetailsStmt:         q.listSessionDetailsStmt,
		listSessionSummariesStmt:       q.listSessionSummariesStmt,
		listSessionTurnsStmt:           q.listSessionTurnsStmt,
		listUserTurnsStmt:              q.listUserTurnsStmt,
		listUsersWithTurnsStmt:         q.listUsersWithTurnsStmt,
	}
}
