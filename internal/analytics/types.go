package analytics

import (
	"encoding/json"
	"time"
)

// 消息类型分布使用的分类标签，按显示顺序排列。
const (
	UserMessages    = "User Messages"
	AITextResponses = "AI Text Responses"
	AIImages        = "AI Images"
)

var typeOrder = map[string]int{
	UserMessages:    0,
	AITextResponses: 1,
	AIImages:        2,
}

// Never 是没有任何记录时最近活动时间的显示值。
const Never = "Never"

// Activity 是可能不存在的时间点。
type Activity struct {
	At    time.Time
	Valid bool
}

func (a Activity) String() string {
	if !a.Valid {
		return Never
	}
	return a.At.UTC().Format(time.DateTime)
}

// MarshalJSON 输出 RFC 3339 时间，没有活动时输出 "Never"。
func (a Activity) MarshalJSON() ([]byte, error) {
	if !a.Valid {
		return json.Marshal(Never)
	}
	return json.Marshal(a.At.UTC().Format(time.RFC3339))
}

// Totals 是用户的汇总计数
type Totals struct {
	Messages     int64    `json:"messages"`
	Sessions     int64    `json:"sessions"`
	Images       int64    `json:"images"`
	LastActivity Activity `json:"last_activity"`
}

// DailyCount 是某个 UTC 日期（YYYY-MM-DD）的计数
type DailyCount struct {
	Day   string `json:"day"`
	Count int64  `json:"count"`
}

type TypeCount struct {
	Label string `json:"label"`
	Count int64  `json:"count"`
}

// HourlyCount 是一天中某个 UTC 小时内用户和助手的记录数
type HourlyCount struct {
	Hour int   `json:"hour"`
	User int64 `json:"user"`
	AI   int64 `json:"ai"`
}

type SessionLength struct {
	SessionID       string `json:"session_id"`
	TurnCount       int64  `json:"turn_count"`
	DurationMinutes int64  `json:"duration_minutes"`
}

// Engagement 是管理面板上的参与度指标，分母为零时对应的值为 0。
type Engagement struct {
	AvgTurnsPerSession  float64 `json:"avg_turns_per_session"`
	AvgSessionMinutes   float64 `json:"avg_session_minutes"`
	TotalSessionMinutes int64   `json:"total_session_minutes"`
	ActiveDays          int     `json:"active_days"`
	AvgDailyTurns       float64 `json:"avg_daily_turns"`
	// 每天的记录数相对于日均值分为高（>= 1.5 倍）、中、低三档
	HighDays   int `json:"high_days"`
	MediumDays int `json:"medium_days"`
	LowDays    int `json:"low_days"`
}

// Report 一次性收集一个用户的全部统计
type Report struct {
	UserID                string          `json:"user_id"`
	GeneratedAt           time.Time       `json:"generated_at"`
	Totals                Totals          `json:"totals"`
	ActivityOverTime      []DailyCount    `json:"activity_over_time"`
	UserMessagesOverTime  []DailyCount    `json:"user_messages_over_time"`
	ImagesCreatedOverTime []DailyCount    `json:"images_created_over_time"`
	MessageTypes          []TypeCount     `json:"message_types"`
	Hourly                []HourlyCount   `json:"hourly"`
	SessionLengths        []SessionLength `json:"session_lengths"`
	Engagement            Engagement      `json:"engagement"`
}

// UserActivity 是管理员用户列表中的一行
type UserActivity struct {
	UserID       string    `json:"user_id"`
	MessageCount int64     `json:"message_count"`
	SessionCount int64     `json:"session_count"`
	LastActivity time.Time `json:"last_activity"`
}
