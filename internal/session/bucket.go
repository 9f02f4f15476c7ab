package session

import (
	"encoding/json"
	"time"
)

// Bucket 是会话按开始日期划分的显示分组
type Bucket int

const (
	Today Bucket = iota
	LastWeek
	Older
)

func (b Bucket) String() string {
	switch b {
	case Today:
		return "Today"
	case LastWeek:
		return "Last 7 days"
	default:
		return "Older"
	}
}

func (b Bucket) MarshalJSON() ([]byte, error) {
	return json.Marshal(b.String())
}

// Group 是同一分组内的会话，保持 List 的顺序
type Group struct {
	Bucket   Bucket    `json:"bucket"`
	Sessions []Summary `json:"sessions"`
}

// BucketOf 把 first 和 now 都换算到 loc 后比较日历日期：同一天为 Today，
// 之前 1 到 7 天为 LastWeek，更早为 Older。晚于 now 的日期算作 Today。
// loc 为 nil 时使用 UTC。
func BucketOf(first, now time.Time, loc *time.Location) Bucket {
	days := calendarDaysBetween(first, now, loc)
	switch {
	case days <= 0:
		return Today
	case days <= 7:
		return LastWeek
	default:
		return Older
	}
}

func calendarDaysBetween(from, to time.Time, loc *time.Location) int {
	if loc == nil {
		loc = time.UTC
	}
	day := func(t time.Time) time.Time {
		y, m, d := t.In(loc).Date()
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	}
	return int(day(to).Sub(day(from)).Hours() / 24)
}

// GroupByDate 按 Today、Last 7 days、Older 的顺序分组，省略空分组。
func GroupByDate(summaries []Summary, now time.Time, loc *time.Location) []Group {
	var buckets [Older + 1][]Summary
	for _, s := range summaries {
		b := BucketOf(s.FirstAt, now, loc)
		buckets[b] = append(buckets[b], s)
	}
	groups := make([]Group, 0, len(buckets))
	for b, sessions := range buckets {
		if len(sessions) == 0 {
			continue
		}
		groups = append(groups, Group{Bucket: Bucket(b), Sessions: sessions})
	}
	return groups
}
