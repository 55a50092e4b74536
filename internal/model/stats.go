package model

import (
	"github.com/rs/zerolog"
	"gopkg.in/guregu/null.v3"
)

// StatsPayload is the Todoist productivity snapshot fetched for a single run.
// Every field is optional: an invalid null.Int means the upstream response
// did not carry the field, which is not the same as a zero value.
type StatsPayload struct {
	Karma             null.Int `json:"karma"`
	CompletedCount    null.Int `json:"completedCount"`
	DailyCompleted    null.Int `json:"dailyCompleted"`
	WeeklyCompleted   null.Int `json:"weeklyCompleted"`
	CurrentStreakDays null.Int `json:"currentStreakDays"`
	LongestStreakDays null.Int `json:"longestStreakDays"`
}

var _ zerolog.LogObjectMarshaler = (*StatsPayload)(nil)

func (p *StatsPayload) MarshalZerologObject(e *zerolog.Event) {
	fields := []struct {
		key string
		val null.Int
	}{
		{"karma", p.Karma},
		{"completedCount", p.CompletedCount},
		{"dailyCompleted", p.DailyCompleted},
		{"weeklyCompleted", p.WeeklyCompleted},
		{"currentStreakDays", p.CurrentStreakDays},
		{"longestStreakDays", p.LongestStreakDays},
	}
	for _, f := range fields {
		if f.val.Valid {
			e.Int64(f.key, f.val.Int64)
		} else {
			e.Str(f.key, "absent")
		}
	}
}
