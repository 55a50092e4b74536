// Package stat turns a StatsPayload into the display lines rendered into the README.
package stat

import (
	"exusiai.dev/todoist-readme/internal/model"
)

// Kind identifies one of the stats the README can show.
type Kind int

const (
	Karma Kind = iota
	Daily
	Weekly
	Total
	CurrentStreak
	LongestStreak
)

// Kinds lists every stat in declaration order. The combined block keeps this order.
var Kinds = []Kind{Karma, Daily, Weekly, Total, CurrentStreak, LongestStreak}

var kindNames = map[Kind]string{
	Karma:         "karma",
	Daily:         "daily",
	Weekly:        "weekly",
	Total:         "total",
	CurrentStreak: "current-streak",
	LongestStreak: "longest-streak",
}

var kindTags = map[Kind]string{
	Karma:         "KARMA",
	Daily:         "DAILY",
	Weekly:        "WEEKLY",
	Total:         "TOTAL",
	CurrentStreak: "CURRENT-STREAK",
	LongestStreak: "LONGEST-STREAK",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Tag is the suffix used by the per-stat marker pair, e.g. KARMA in TODO-IST-KARMA.
func (k Kind) Tag() string {
	return kindTags[k]
}

// KindByTag resolves a marker tag suffix back to its Kind.
func KindByTag(tag string) (Kind, bool) {
	for k, t := range kindTags {
		if t == tag {
			return k, true
		}
	}
	return 0, false
}

// Rendered is the formatted line for one stat. Line is empty when Available is false.
type Rendered struct {
	Kind      Kind
	Line      string
	Available bool
}

// Render formats a single stat from the payload.
func Render(k Kind, p *model.StatsPayload, premium bool) Rendered {
	var (
		line string
		ok   bool
	)
	switch k {
	case Karma:
		line, ok = FormatKarma(p.Karma)
	case Daily:
		line, ok = FormatDaily(p.DailyCompleted)
	case Weekly:
		line, ok = FormatWeekly(p.WeeklyCompleted, premium)
	case Total:
		line, ok = FormatTotal(p.CompletedCount)
	case CurrentStreak:
		line, ok = FormatCurrentStreak(p.CurrentStreakDays)
	case LongestStreak:
		line, ok = FormatLongestStreak(p.LongestStreakDays)
	}
	return Rendered{Kind: k, Line: line, Available: ok}
}

// RenderAll formats every stat in declaration order. The returned slice is
// freshly allocated on each call.
func RenderAll(p *model.StatsPayload, premium bool) []Rendered {
	rendered := make([]Rendered, 0, len(Kinds))
	for _, k := range Kinds {
		rendered = append(rendered, Render(k, p, premium))
	}
	return rendered
}
