package render

import (
	"exusiai.dev/todoist-readme/internal/core/marker"
	"exusiai.dev/todoist-readme/internal/model"
	"exusiai.dev/todoist-readme/internal/pkg/runerr"
)

type Outcome int

const (
	Unchanged Outcome = iota
	Updated
)

func (o Outcome) String() string {
	if o == Updated {
		return "updated"
	}
	return "unchanged"
}

// Decision is the result of rendering a payload into a document.
type Decision struct {
	Outcome Outcome
	Mode    marker.Mode
	// Content is the full new document. It equals the input when Outcome is Unchanged.
	Content string
	Summary Summary
}

// Update detects the marker mode of doc, renders p into it and reports
// whether the document changed. It performs no I/O.
func Update(doc string, p *model.StatsPayload, premium bool) (Decision, error) {
	mode := marker.Detect(doc)

	var (
		content string
		summary Summary
		err     error
	)
	switch mode {
	case marker.ModeGranular:
		content, summary = Granular(doc, p, premium)
	case marker.ModeLegacy:
		content, summary, err = Legacy(doc, p, premium)
		if err != nil {
			return Decision{Mode: mode, Content: doc, Summary: summary}, err
		}
	default:
		return Decision{Mode: mode, Content: doc}, runerr.ErrNoRecognizedMarkers.
			Msg("cannot find any supported comment tags in the document. Add either the %s", marker.SupportedFormats())
	}

	outcome := Unchanged
	if content != doc {
		outcome = Updated
	}

	return Decision{
		Outcome: outcome,
		Mode:    mode,
		Content: content,
		Summary: summary,
	}, nil
}
