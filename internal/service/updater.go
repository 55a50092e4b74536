package service

import (
	"context"

	"github.com/rs/xid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/guregu/null.v3"

	"exusiai.dev/todoist-readme/internal/app/appconfig"
	"exusiai.dev/todoist-readme/internal/core/marker"
	"exusiai.dev/todoist-readme/internal/core/render"
	"exusiai.dev/todoist-readme/internal/core/stat"
	"exusiai.dev/todoist-readme/internal/model"
	"exusiai.dev/todoist-readme/internal/pkg/observability"
	"exusiai.dev/todoist-readme/internal/pkg/runerr"
	"exusiai.dev/todoist-readme/internal/repo"
)

// Document is the README the updater reads once and writes at most once.
type Document interface {
	Path() string
	Read(ctx context.Context) (string, error)
	Write(ctx context.Context, content string) error
}

type UpdateOptions struct {
	// DryRun renders the document without writing or committing it.
	DryRun bool
}

type Result struct {
	RunID    xid.ID
	Decision render.Decision
	Payload  *model.StatsPayload

	Written   bool
	Committed bool
}

type Updater struct {
	stats     StatsProvider
	doc       Document
	committer Committer

	premium bool
	commit  bool
}

func NewUpdater(todoist *Todoist, readme *repo.Readme, git *Git, conf *appconfig.Config) *Updater {
	return &Updater{
		stats:     todoist,
		doc:       readme,
		committer: git,
		premium:   conf.Premium,
		commit:    conf.CommitEnabled && !conf.TestMode,
	}
}

// Run fetches the stats, renders them into the document and persists the
// document only if it changed. Every fatal condition returns before anything
// is written.
func (u *Updater) Run(ctx context.Context, opts UpdateOptions) (*Result, error) {
	result := &Result{RunID: xid.New()}

	l := log.With().Str("run", result.RunID.String()).Logger()
	ctx = l.WithContext(ctx)

	defer observability.LastRunTimestamp.SetToCurrentTime()

	payload, err := u.stats.FetchStats(ctx)
	if err != nil {
		return u.fail(ctx, result, marker.ModeNone, err)
	}
	result.Payload = payload
	l.Info().Object("stats", payload).Bool("premium", u.premium).Msg("fetched stats")
	recordStats(payload)

	doc, err := u.doc.Read(ctx)
	if err != nil {
		return u.fail(ctx, result, marker.ModeNone, runerr.ErrDocumentIOFailure.Msg("failed to read %s", u.doc.Path()).Wrap(err))
	}

	decision, err := render.Update(doc, payload, u.premium)
	result.Decision = decision
	if err != nil {
		return u.fail(ctx, result, decision.Mode, err)
	}
	logSummary(l, decision)

	if decision.Outcome == render.Unchanged {
		l.Info().Str("mode", decision.Mode.String()).Msg("No change detected, skipping")
		observability.RunOutcome.WithLabelValues(render.Unchanged.String(), decision.Mode.String()).Inc()
		return result, nil
	}

	if opts.DryRun {
		l.Info().Str("path", u.doc.Path()).Msg("dry run: document would be updated")
		observability.RunOutcome.WithLabelValues("dry-run", decision.Mode.String()).Inc()
		return result, nil
	}

	l.Info().Str("path", u.doc.Path()).Msg("Writing document")
	if err = u.doc.Write(ctx, decision.Content); err != nil {
		return u.fail(ctx, result, decision.Mode, runerr.ErrDocumentIOFailure.Msg("failed to write %s", u.doc.Path()).Wrap(err))
	}
	result.Written = true

	if u.commit {
		if err = u.committer.Commit(ctx, u.doc.Path()); err != nil {
			return u.fail(ctx, result, decision.Mode, err)
		}
		result.Committed = true
	} else {
		l.Info().Msg("commit disabled, leaving the document uncommitted")
	}

	observability.RunOutcome.WithLabelValues(render.Updated.String(), decision.Mode.String()).Inc()
	return result, nil
}

func (u *Updater) fail(ctx context.Context, result *Result, mode marker.Mode, err error) (*Result, error) {
	observability.RunOutcome.WithLabelValues("failed", mode.String()).Inc()
	log.Ctx(ctx).Debug().Err(err).Msg("update run failed")
	return result, err
}

func recordStats(p *model.StatsPayload) {
	values := map[stat.Kind]null.Int{
		stat.Karma:         p.Karma,
		stat.Daily:         p.DailyCompleted,
		stat.Weekly:        p.WeeklyCompleted,
		stat.Total:         p.CompletedCount,
		stat.CurrentStreak: p.CurrentStreakDays,
		stat.LongestStreak: p.LongestStreakDays,
	}
	for kind, v := range values {
		if v.Valid {
			observability.StatValue.WithLabelValues(kind.String()).Set(float64(v.Int64))
		}
	}
}

func logSummary(l zerolog.Logger, d render.Decision) {
	for _, tag := range d.Summary.Processed {
		l.Info().Str("tag", tag).Msg("rendered stat")
		observability.RegionOutcome.WithLabelValues(tag, "processed").Inc()
	}
	for _, skip := range d.Summary.Skipped {
		evt := l.Info()
		if skip.Reason != render.SkipUnavailable {
			evt = l.Warn()
		}
		evt.Str("tag", skip.Tag).Str("reason", string(skip.Reason)).Str("detail", skip.Detail).Msg("skipped stat")
		observability.RegionOutcome.WithLabelValues(skip.Tag, string(skip.Reason)).Inc()
	}
	for _, tag := range d.Summary.Unknown {
		l.Warn().
			Str("tag", tag).
			Str("marker", "<!-- "+marker.LegacyName+"-"+tag+":START -->").
			Msg("unknown tag in document, possibly a typo")
	}
	observability.UnknownTags.Set(float64(len(d.Summary.Unknown)))

	if d.Summary.Noop {
		l.Info().Msg("Nothing fetched, no stat is available to render")
	}

	l.Info().
		Str("mode", d.Mode.String()).
		Str("outcome", d.Outcome.String()).
		Int("processed", len(d.Summary.Processed)).
		Int("skipped", len(d.Summary.Skipped)).
		Int("unknown", len(d.Summary.Unknown)).
		Msg("render summary")
}
