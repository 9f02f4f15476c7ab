// Package analytics 在账本上做只读的聚合统计。所有查询都限定在一个用户内，
// 每次调用都直接查询数据库，不做缓存。
package analytics

import (
	"cmp"
	"context"
	"slices"
	"time"

	"github.com/SandeepBatta/OrigamiAI/internal/db"
	"github.com/SandeepBatta/OrigamiAI/internal/ledger"
	"golang.org/x/sync/errgroup"
)

// SessionLengthLimit 是会话长度统计返回的最大条数。
const SessionLengthLimit = 50

type Engine struct {
	q   db.Querier
	now func() time.Time
}

func New(q db.Querier) *Engine {
	return &Engine{q: q, now: time.Now}
}

func wrap(err error) error {
	if err == nil {
		return nil
	}
	return &ledger.StorageError{Op: "统计", Err: err}
}

// Totals 返回用户的记录数、会话数、图片数和最近活动时间。
func (e *Engine) Totals(ctx context.Context, userID string) (Totals, error) {
	row, err := e.q.GetUserTotals(ctx, userID)
	if err != nil {
		return Totals{}, wrap(err)
	}
	t := Totals{
		Messages: row.TotalMessages,
		Sessions: row.TotalSessions,
		Images:   row.TotalImages,
	}
	if row.LastActivity.Valid {
		t.LastActivity = Activity{At: time.Unix(row.LastActivity.Int64, 0).UTC(), Valid: true}
	}
	return t, nil
}

func (e *Engine) TotalMessages(ctx context.Context, userID string) (int64, error) {
	t, err := e.Totals(ctx, userID)
	return t.Messages, err
}

func (e *Engine) TotalSessions(ctx context.Context, userID string) (int64, error) {
	t, err := e.Totals(ctx, userID)
	return t.Sessions, err
}

// TotalImagesCreated 只统计 kind=image 的助手记录。
func (e *Engine) TotalImagesCreated(ctx context.Context, userID string) (int64, error) {
	t, err := e.Totals(ctx, userID)
	return t.Images, err
}

func (e *Engine) LastActivity(ctx context.Context, userID string) (Activity, error) {
	t, err := e.Totals(ctx, userID)
	return t.LastActivity, err
}

func (e *Engine) ActivityOverTime(ctx context.Context, userID string) ([]DailyCount, error) {
	rows, err := e.q.GetActivityByDay(ctx, userID)
	if err != nil {
		return nil, wrap(err)
	}
	out := make([]DailyCount, len(rows))
	for i, r := range rows {
		out[i] = DailyCount{Day: r.Day, Count: r.Count}
	}
	return out, nil
}

func (e *Engine) UserMessagesOverTime(ctx context.Context, userID string) ([]DailyCount, error) {
	rows, err := e.q.GetUserMessagesByDay(ctx, userID)
	if err != nil {
		return nil, wrap(err)
	}
	out := make([]DailyCount, len(rows))
	for i, r := range rows {
		out[i] = DailyCount{Day: r.Day, Count: r.Count}
	}
	return out, nil
}

func (e *Engine) ImagesCreatedOverTime(ctx context.Context, userID string) ([]DailyCount, error) {
	rows, err := e.q.GetImagesByDay(ctx, userID)
	if err != nil {
		return nil, wrap(err)
	}
	out := make([]DailyCount, len(rows))
	for i, r := range rows {
		out[i] = DailyCount{Day: r.Day, Count: r.Count}
	}
	return out, nil
}

// MessageTypeDistribution 按数量降序返回三类消息的计数，数量相同时按
// User Messages、AI Text Responses、AI Images 的顺序。计数为零的类别不出现，
// 不属于这三类的记录被忽略。
func (e *Engine) MessageTypeDistribution(ctx context.Context, userID string) ([]TypeCount, error) {
	rows, err := e.q.GetMessageTypeDistribution(ctx, userID)
	if err != nil {
		return nil, wrap(err)
	}
	out := make([]TypeCount, 0, len(rows))
	for _, r := range rows {
		if _, ok := typeOrder[r.MessageType]; !ok || r.Count == 0 {
			continue
		}
		out = append(out, TypeCount{Label: r.MessageType, Count: r.Count})
	}
	slices.SortStableFunc(out, func(a, b TypeCount) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return cmp.Compare(typeOrder[a.Label], typeOrder[b.Label])
	})
	return out, nil
}

// HourlyBreakdown 只返回有记录的小时，按小时升序。
func (e *Engine) HourlyBreakdown(ctx context.Context, userID string) ([]HourlyCount, error) {
	rows, err := e.q.GetHourlyBreakdown(ctx, userID)
	if err != nil {
		return nil, wrap(err)
	}
	out := make([]HourlyCount, len(rows))
	for i, r := range rows {
		out[i] = HourlyCount{Hour: int(r.Hour), User: r.UserCount, AI: r.AiCount}
	}
	return out, nil
}

// SessionLengthStats 返回多于一条记录的会话，按记录数降序、会话 ID 升序，
// 最多 SessionLengthLimit 条。
func (e *Engine) SessionLengthStats(ctx context.Context, userID string) ([]SessionLength, error) {
	return e.sessionLengths(ctx, userID, SessionLengthLimit)
}

func (e *Engine) sessionLengths(ctx context.Context, userID string, limit int64) ([]SessionLength, error) {
	rows, err := e.q.GetSessionLengths(ctx, db.GetSessionLengthsParams{UserID: userID, Limit: limit})
	if err != nil {
		return nil, wrap(err)
	}
	out := make([]SessionLength, len(rows))
	for i, r := range rows {
		out[i] = SessionLength{
			SessionID:       r.SessionID,
			TurnCount:       r.TurnCount,
			DurationMinutes: r.DurationMinutes,
		}
	}
	return out, nil
}

// Engagement 计算参与度指标。会话时长取自全部多于一条记录的会话，不受
// SessionLengthLimit 限制。
func (e *Engine) Engagement(ctx context.Context, userID string) (Engagement, error) {
	totals, err := e.Totals(ctx, userID)
	if err != nil {
		return Engagement{}, err
	}
	// SQLite 中 LIMIT -1 表示不限制
	lengths, err := e.sessionLengths(ctx, userID, -1)
	if err != nil {
		return Engagement{}, err
	}
	daily, err := e.ActivityOverTime(ctx, userID)
	if err != nil {
		return Engagement{}, err
	}
	return engagementFrom(totals, lengths, daily), nil
}

func engagementFrom(totals Totals, lengths []SessionLength, daily []DailyCount) Engagement {
	var eng Engagement
	eng.AvgTurnsPerSession = ratio(totals.Messages, totals.Sessions)

	for _, l := range lengths {
		eng.TotalSessionMinutes += l.DurationMinutes
	}
	eng.AvgSessionMinutes = ratio(eng.TotalSessionMinutes, int64(len(lengths)))

	eng.ActiveDays = len(daily)
	var turns int64
	for _, d := range daily {
		turns += d.Count
	}
	eng.AvgDailyTurns = ratio(turns, int64(len(daily)))
	for _, d := range daily {
		c := float64(d.Count)
		switch {
		case c >= eng.AvgDailyTurns*1.5:
			eng.HighDays++
		case c >= eng.AvgDailyTurns:
			eng.MediumDays++
		default:
			eng.LowDays++
		}
	}
	return eng
}

// ratio 在分母为零时返回 0。
func ratio(num, den int64) float64 {
	if den == 0 {
		return 0
	}
	return float64(num) / float64(den)
}

// Report 并发收集一个用户的全部统计。
func (e *Engine) Report(ctx context.Context, userID string) (Report, error) {
	r := Report{UserID: userID, GeneratedAt: e.now().UTC()}
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		r.Totals, err = e.Totals(ctx, userID)
		return err
	})
	g.Go(func() (err error) {
		r.ActivityOverTime, err = e.ActivityOverTime(ctx, userID)
		return err
	})
	g.Go(func() (err error) {
		r.UserMessagesOverTime, err = e.UserMessagesOverTime(ctx, userID)
		return err
	})
	g.Go(func() (err error) {
		r.ImagesCreatedOverTime, err = e.ImagesCreatedOverTime(ctx, userID)
		return err
	})
	g.Go(func() (err error) {
		r.MessageTypes, err = e.MessageTypeDistribution(ctx, userID)
		return err
	})
	g.Go(func() (err error) {
		r.Hourly, err = e.HourlyBreakdown(ctx, userID)
		return err
	})
	g.Go(func() (err error) {
		r.SessionLengths, err = e.SessionLengthStats(ctx, userID)
		return err
	})
	g.Go(func() (err error) {
		r.Engagement, err = e.Engagement(ctx, userID)
		return err
	})
	if err := g.Wait(); err != nil {
		return Report{}, err
	}
	return r, nil
}

// Users 列出所有有记录的用户，最近活跃的在前。
func (e *Engine) Users(ctx context.Context) ([]UserActivity, error) {
	rows, err := e.q.ListUsersWithTurns(ctx)
	if err != nil {
		return nil, wrap(err)
	}
	out := make([]UserActivity, len(rows))
	for i, r := range rows {
		out[i] = UserActivity{
			UserID:       r.UserID,
			MessageCount: r.TurnCount,
			SessionCount: r.SessionCount,
			LastActivity: time.Unix(r.LastActivity, 0).UTC(),
		}
	}
	return out, nil
}
