package render

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/guregu/null.v3"

	"exusiai.dev/todoist-readme/internal/core/marker"
	"exusiai.dev/todoist-readme/internal/model"
	"exusiai.dev/todoist-readme/internal/pkg/runerr"
)

const legacyDoc = "# Profile\n\n<!-- TODO-IST:START -->\n<!-- TODO-IST:END -->\n\nBye\n"

func examplePayload() *model.StatsPayload {
	return &model.StatsPayload{
		Karma:             null.IntFrom(12345),
		CompletedCount:    null.IntFrom(6789),
		DailyCompleted:    null.IntFrom(3),
		CurrentStreakDays: null.IntFrom(0),
		LongestStreakDays: null.IntFrom(42),
	}
}

func fullPayload() *model.StatsPayload {
	p := examplePayload()
	p.WeeklyCompleted = null.IntFrom(11)
	p.CurrentStreakDays = null.IntFrom(5)
	return p
}

func TestLegacyExampleScenario(t *testing.T) {
	got, summary, err := Legacy(legacyDoc, examplePayload(), false)
	require.NoError(t, err)

	block := strings.Join([]string{
		"🏆  **12,345** Karma Points",
		"🌸  Completed **3** tasks today",
		"✅  Completed **6,789** tasks so far",
		"🔥  Current streak: **0 days** - Start one today!",
		"⏳  Longest streak is **42** days",
	}, LegacySeparator)
	assert.Equal(t, "# Profile\n\n<!-- TODO-IST:START -->\n"+block+"\n<!-- TODO-IST:END -->\n\nBye\n", got)
	assert.NotContains(t, got, "this week")

	assert.Equal(t, []string{"KARMA", "DAILY", "TOTAL", "CURRENT-STREAK", "LONGEST-STREAK"}, summary.Processed)
	assert.Equal(t, []Skip{{Tag: "WEEKLY", Reason: SkipUnavailable}}, summary.Skipped)
	assert.False(t, summary.Noop)
}

func TestLegacyPartialDataKeepsOrder(t *testing.T) {
	p := fullPayload()
	p.WeeklyCompleted = null.Int{}

	got, _, err := Legacy(legacyDoc, p, true)
	require.NoError(t, err)

	lines := []string{"Karma Points", "tasks today", "tasks so far", "Current streak: **5 days**", "Longest streak"}
	last := -1
	for _, line := range lines {
		idx := strings.Index(got, line)
		require.NotEqual(t, -1, idx, line)
		assert.Greater(t, idx, last, line)
		last = idx
	}
	assert.NotContains(t, got, "this week")
}

func TestLegacyWeeklyWithPremium(t *testing.T) {
	got, _, err := Legacy(legacyDoc, fullPayload(), true)
	require.NoError(t, err)
	assert.Contains(t, got, "🌸  Completed **3** tasks today"+LegacySeparator+"🗓  Completed **11** tasks this week"+LegacySeparator)
}

func TestLegacyNoStatsIsNoop(t *testing.T) {
	got, summary, err := Legacy(legacyDoc, &model.StatsPayload{}, true)
	require.NoError(t, err)
	assert.Equal(t, legacyDoc, got)
	assert.True(t, summary.Noop)
	assert.Len(t, summary.Skipped, 6)
}

func TestLegacyMalformedMarkersIsFatal(t *testing.T) {
	doc := "<!-- TODO-IST:START --> <!-- TODO-IST:START --> <!-- TODO-IST:END -->"

	got, _, err := Legacy(doc, examplePayload(), false)
	require.Error(t, err)
	assert.Equal(t, doc, got)
	assert.True(t, errors.Is(err, runerr.ErrMarkerNotFound))

	var ambiguousErr *marker.AmbiguousError
	assert.True(t, errors.As(err, &ambiguousErr))
}

func TestGranular(t *testing.T) {
	doc := "intro\n" +
		"<!-- TODO-IST-KARMA:START -->\nstale karma\n<!-- TODO-IST-KARMA:END -->\n" +
		"between\n" +
		"<!-- TODO-IST-WEEKLY:START -->\nstale weekly\n<!-- TODO-IST-WEEKLY:END -->\n" +
		"<!-- TODO-IST-CURRENT-STREAK:START -->\n<!-- TODO-IST-CURRENT-STREAK:END -->\n" +
		"<!-- TODO-IST-TOTAL:START -->\nno end marker\n" +
		"<!-- TODO-IST-KARAM:START --><!-- TODO-IST-KARAM:END -->\n" +
		"outro\n"

	got, summary := Granular(doc, examplePayload(), false)

	assert.Equal(t, "intro\n"+
		"<!-- TODO-IST-KARMA:START -->\n🏆  **12,345** Karma Points\n<!-- TODO-IST-KARMA:END -->\n"+
		"between\n"+
		"<!-- TODO-IST-WEEKLY:START -->\nstale weekly\n<!-- TODO-IST-WEEKLY:END -->\n"+
		"<!-- TODO-IST-CURRENT-STREAK:START -->\n🔥  Current streak: **0 days** - Start one today!\n<!-- TODO-IST-CURRENT-STREAK:END -->\n"+
		"<!-- TODO-IST-TOTAL:START -->\nno end marker\n"+
		"<!-- TODO-IST-KARAM:START --><!-- TODO-IST-KARAM:END -->\n"+
		"outro\n", got)

	assert.Equal(t, []string{"KARMA", "CURRENT-STREAK"}, summary.Processed)
	if assert.Len(t, summary.Skipped, 2) {
		assert.Equal(t, "WEEKLY", summary.Skipped[0].Tag)
		assert.Equal(t, SkipUnavailable, summary.Skipped[0].Reason)
		assert.Equal(t, "TOTAL", summary.Skipped[1].Tag)
		assert.Equal(t, SkipMarkerNotFound, summary.Skipped[1].Reason)
		assert.NotEmpty(t, summary.Skipped[1].Detail)
	}
	assert.Equal(t, []string{"KARAM"}, summary.Unknown)
}

func TestGranularAmbiguousMarkerSkipsOnlyThatTag(t *testing.T) {
	doc := "<!-- TODO-IST-DAILY:START --><!-- TODO-IST-DAILY:END -->\n" +
		"<!-- TODO-IST-DAILY:START --><!-- TODO-IST-DAILY:END -->\n" +
		"<!-- TODO-IST-LONGEST-STREAK:START --><!-- TODO-IST-LONGEST-STREAK:END -->\n"

	got, summary := Granular(doc, examplePayload(), false)
	assert.Contains(t, got, "⏳  Longest streak is **42** days")
	assert.Equal(t, []string{"LONGEST-STREAK"}, summary.Processed)
	require.Len(t, summary.Skipped, 1)
	assert.Equal(t, "DAILY", summary.Skipped[0].Tag)
	assert.Equal(t, SkipAmbiguousMarker, summary.Skipped[0].Reason)
}

func TestUpdate(t *testing.T) {
	t.Run("no markers is fatal", func(t *testing.T) {
		decision, err := Update("# nothing here\n", examplePayload(), false)
		require.Error(t, err)
		assert.True(t, errors.Is(err, runerr.ErrNoRecognizedMarkers))
		assert.Contains(t, err.Error(), "<!-- TODO-IST:START -->")
		assert.Contains(t, err.Error(), "<!-- TODO-IST-KARMA:START -->")
		assert.Equal(t, marker.ModeNone, decision.Mode)
	})

	t.Run("legacy updates then settles", func(t *testing.T) {
		first, err := Update(legacyDoc, examplePayload(), false)
		require.NoError(t, err)
		assert.Equal(t, Updated, first.Outcome)
		assert.Equal(t, marker.ModeLegacy, first.Mode)

		second, err := Update(first.Content, examplePayload(), false)
		require.NoError(t, err)
		assert.Equal(t, Unchanged, second.Outcome)
		assert.Equal(t, first.Content, second.Content)
	})

	t.Run("granular updates then settles", func(t *testing.T) {
		doc := "<!-- TODO-IST-KARMA:START --><!-- TODO-IST-KARMA:END -->\n" +
			"<!-- TODO-IST-LONGEST-STREAK:START -->\nold\n<!-- TODO-IST-LONGEST-STREAK:END -->\n"

		first, err := Update(doc, fullPayload(), true)
		require.NoError(t, err)
		assert.Equal(t, Updated, first.Outcome)
		assert.Equal(t, marker.ModeGranular, first.Mode)

		second, err := Update(first.Content, fullPayload(), true)
		require.NoError(t, err)
		assert.Equal(t, Unchanged, second.Outcome)
	})

	t.Run("granular preferred over legacy", func(t *testing.T) {
		doc := legacyDoc + "<!-- TODO-IST-DAILY:START --><!-- TODO-IST-DAILY:END -->\n"

		decision, err := Update(doc, examplePayload(), false)
		require.NoError(t, err)
		assert.Equal(t, marker.ModeGranular, decision.Mode)
		assert.Contains(t, decision.Content, "<!-- TODO-IST:START -->\n<!-- TODO-IST:END -->")
	})

	t.Run("legacy with nothing to show is unchanged", func(t *testing.T) {
		decision, err := Update(legacyDoc, &model.StatsPayload{}, false)
		require.NoError(t, err)
		assert.Equal(t, Unchanged, decision.Outcome)
		assert.True(t, decision.Summary.Noop)
	})
}
