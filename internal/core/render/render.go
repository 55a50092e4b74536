// Package render writes rendered stats into a README according to its marker mode.
package render

import (
	"errors"
	"strings"

	"github.com/samber/lo"

	"exusiai.dev/todoist-readme/internal/core/marker"
	"exusiai.dev/todoist-readme/internal/core/stat"
	"exusiai.dev/todoist-readme/internal/model"
	"exusiai.dev/todoist-readme/internal/pkg/runerr"
)

// LegacySeparator joins the lines of the combined block.
const LegacySeparator = "           \n"

type SkipReason string

const (
	SkipUnavailable     SkipReason = "unavailable"
	SkipMarkerNotFound  SkipReason = "marker-not-found"
	SkipAmbiguousMarker SkipReason = "ambiguous-marker"
)

type Skip struct {
	Tag    string
	Reason SkipReason
	// Detail is the human readable cause for marker failures
	Detail string
}

// Summary records what happened to each stat during one render.
type Summary struct {
	Processed []string
	Skipped   []Skip
	Unknown   []string

	// Noop is set when the combined block had nothing to show and the
	// document was left as is.
	Noop bool
}

// Legacy renders every available stat into the single TODO-IST block. Marker
// problems are fatal since a partial combined block is meaningless.
func Legacy(doc string, p *model.StatsPayload, premium bool) (string, Summary, error) {
	var summary Summary

	rendered := stat.RenderAll(p, premium)
	available := lo.Filter(rendered, func(r stat.Rendered, _ int) bool {
		return r.Available
	})
	for _, r := range rendered {
		if !r.Available {
			summary.Skipped = append(summary.Skipped, Skip{Tag: r.Kind.Tag(), Reason: SkipUnavailable})
		}
	}

	if len(available) == 0 {
		summary.Noop = true
		return doc, summary, nil
	}

	block := strings.Join(lo.Map(available, func(r stat.Rendered, _ int) string {
		return r.Line
	}), LegacySeparator)

	out, err := marker.Replace(doc, marker.Legacy, block)
	if err != nil {
		return doc, summary, runerr.ErrMarkerNotFound.
			Msg("cannot find the comment tag pair in the document, expected:\n%s\n%s", marker.Legacy.StartToken(), marker.Legacy.EndToken()).
			Wrap(err)
	}

	summary.Processed = lo.Map(available, func(r stat.Rendered, _ int) string {
		return r.Kind.Tag()
	})
	return out, summary, nil
}

// Granular replaces each per-stat region present in doc on its own. A stat
// that is unavailable, or whose markers are broken, only skips its region.
func Granular(doc string, p *model.StatsPayload, premium bool) (string, Summary) {
	var summary Summary

	out := doc
	for _, k := range stat.Kinds {
		region := marker.Granular(k)
		if !region.HasStart(out) {
			continue
		}

		r := stat.Render(k, p, premium)
		if !r.Available {
			summary.Skipped = append(summary.Skipped, Skip{Tag: k.Tag(), Reason: SkipUnavailable})
			continue
		}

		replaced, err := marker.Replace(out, region, r.Line)
		if err != nil {
			summary.Skipped = append(summary.Skipped, Skip{Tag: k.Tag(), Reason: skipReason(err), Detail: err.Error()})
			continue
		}

		out = replaced
		summary.Processed = append(summary.Processed, k.Tag())
	}

	summary.Unknown = marker.UnknownTags(doc)
	return out, summary
}

func skipReason(err error) SkipReason {
	var ambiguousErr *marker.AmbiguousError
	if errors.As(err, &ambiguousErr) {
		return SkipAmbiguousMarker
	}
	return SkipMarkerNotFound
}
