package stat

import (
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gopkg.in/guregu/null.v3"
)

var printer = message.NewPrinter(language.English)

// grouped formats n with en-US thousands separators, e.g. 12345 -> "12,345".
func grouped(n int64) string {
	return printer.Sprintf("%d", n)
}

func FormatKarma(karma null.Int) (string, bool) {
	if !karma.Valid {
		return "", false
	}
	return "🏆  **" + grouped(karma.Int64) + "** Karma Points", true
}

func FormatDaily(completed null.Int) (string, bool) {
	if !completed.Valid {
		return "", false
	}
	return "🌸  Completed **" + strconv.FormatInt(completed.Int64, 10) + "** tasks today", true
}

// FormatWeekly is only available for premium accounts; the weekly bucket is
// not meaningful otherwise even if the API returns it.
func FormatWeekly(completed null.Int, premium bool) (string, bool) {
	if !premium || !completed.Valid {
		return "", false
	}
	return "🗓  Completed **" + strconv.FormatInt(completed.Int64, 10) + "** tasks this week", true
}

func FormatTotal(completed null.Int) (string, bool) {
	if !completed.Valid {
		return "", false
	}
	return "✅  Completed **" + grouped(completed.Int64) + "** tasks so far", true
}

func FormatCurrentStreak(days null.Int) (string, bool) {
	if !days.Valid {
		return "", false
	}
	switch n := days.Int64; n {
	case 0:
		return "🔥  Current streak: **0 days** - Start one today!", true
	case 1:
		return "🔥  Current streak: **1 day**", true
	default:
		return "🔥  Current streak: **" + strconv.FormatInt(n, 10) + " days**", true
	}
}

func FormatLongestStreak(days null.Int) (string, bool) {
	if !days.Valid {
		return "", false
	}
	return "⏳  Longest streak is **" + strconv.FormatInt(days.Int64, 10) + "** days", true
}
