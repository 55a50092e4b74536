package marker

import "exusiai.dev/todoist-readme/internal/core/stat"

// Status is the state of one region in a document.
type Status struct {
	Region string
	// Present is true when either token of the region appears.
	Present bool
	Span    Span
	Err     error
}

// Usable reports whether the region can be replaced.
func (s Status) Usable() bool {
	return s.Present && s.Err == nil
}

// Survey reports the combined block region followed by every per-stat region.
func Survey(doc string) []Status {
	regions := make([]Region, 0, len(stat.Kinds)+1)
	regions = append(regions, Legacy)
	for _, k := range stat.Kinds {
		regions = append(regions, Granular(k))
	}

	statuses := make([]Status, 0, len(regions))
	for _, r := range regions {
		s := Status{Region: r.Name, Present: r.HasStart(doc) || r.HasEnd(doc)}
		if s.Present {
			s.Span, s.Err = Locate(doc, r)
		}
		statuses = append(statuses, s)
	}
	return statuses
}
