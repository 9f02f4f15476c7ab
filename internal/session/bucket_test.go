package session

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestBucketOf(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC)
	tests := []struct {
		name  string
		first time.Time
		want  Bucket
	}{
		{"同一天", time.Date(2025, 3, 10, 0, 0, 1, 0, time.UTC), Today},
		{"昨天", time.Date(2025, 3, 9, 23, 59, 0, 0, time.UTC), LastWeek},
		{"七天前", time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC), LastWeek},
		{"八天前", time.Date(2025, 3, 2, 23, 0, 0, 0, time.UTC), Older},
		{"未来时间", now.Add(48 * time.Hour), Today},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.want, BucketOf(tt.first, now, nil))
		})
	}
}

// 日期边界由调用方时区决定，而不是存储时区。
func TestBucketOfUsesCallerTimezone(t *testing.T) {
	t.Parallel()

	tokyo := time.FixedZone("JST", 9*60*60)
	losAngeles := time.FixedZone("PST", -8*60*60)

	// UTC 3 月 9 日 20:00 在东京已经是 3 月 10 日早上
	first := time.Date(2025, 3, 9, 20, 0, 0, 0, time.UTC)
	now := time.Date(2025, 3, 10, 1, 0, 0, 0, time.UTC)

	require.Equal(t, LastWeek, BucketOf(first, now, time.UTC))
	require.Equal(t, Today, BucketOf(first, now, tokyo))
	// 洛杉矶此时两者都还是 3 月 9 日
	require.Equal(t, Today, BucketOf(first, now, losAngeles))
}

func TestBucketString(t *testing.T) {
	t.Parallel()

	require.Equal(t, "Today", Today.String())
	require.Equal(t, "Last 7 days", LastWeek.String())
	require.Equal(t, "Older", Older.String())

	out, err := json.Marshal(Group{Bucket: LastWeek})
	require.NoError(t, err)
	require.JSONEq(t, `{"bucket":"Last 7 days","sessions":null}`, string(out))
}

func TestGroupByDate(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	summaries := []Summary{
		{ID: "a", FirstAt: now.Add(-time.Hour)},
		{ID: "b", FirstAt: now.Add(-2 * time.Hour)},
		{ID: "c", FirstAt: now.AddDate(0, 0, -30)},
	}

	groups := GroupByDate(summaries, now, nil)
	require.Len(t, groups, 2)
	require.Equal(t, Today, groups[0].Bucket)
	require.Equal(t, []Summary{summaries[0], summaries[1]}, groups[0].Sessions)
	require.Equal(t, Older, groups[1].Bucket)
	require.Equal(t, "c", groups[1].Sessions[0].ID)

	require.Empty(t, GroupByDate(nil, now, nil))
}
