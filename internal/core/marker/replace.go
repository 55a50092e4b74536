package marker

import (
	"fmt"
	"strings"
)

// NotFoundError is returned when one side of a region is missing. A missing
// end token also covers an end token that only appears before the start.
type NotFoundError struct {
	Region string
	Side   Side
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("marker %s: <!-- %s:%s --> not found", e.Region, e.Region, e.Side)
}

// AmbiguousError is returned when a token of the region appears more than once.
type AmbiguousError struct {
	Region string
	Side   Side
	Count  int
}

func (e *AmbiguousError) Error() string {
	return fmt.Sprintf("marker %s: <!-- %s:%s --> appears %d times, expected exactly once", e.Region, e.Region, e.Side, e.Count)
}

// Span is the interior of a located region: doc[Start:End] is everything
// between the end of the start token and the beginning of the end token.
type Span struct {
	Start int
	End   int
}

// Locate finds the unique start token of r and the first end token after it.
func Locate(doc string, r Region) (Span, error) {
	starts := r.start.FindAllStringIndex(doc, -1)
	switch {
	case len(starts) == 0:
		return Span{}, &NotFoundError{Region: r.Name, Side: SideStart}
	case len(starts) > 1:
		return Span{}, &AmbiguousError{Region: r.Name, Side: SideStart, Count: len(starts)}
	}

	if ends := r.end.FindAllStringIndex(doc, -1); len(ends) > 1 {
		return Span{}, &AmbiguousError{Region: r.Name, Side: SideEnd, Count: len(ends)}
	}

	from := starts[0][1]
	loc := r.end.FindStringIndex(doc[from:])
	if loc == nil {
		return Span{}, &NotFoundError{Region: r.Name, Side: SideEnd}
	}

	return Span{Start: from, End: from + loc[0]}, nil
}

// Replace returns doc with the interior of r replaced by a newline, interior
// and another newline. On error doc is returned unchanged.
func Replace(doc string, r Region, interior string) (string, error) {
	span, err := Locate(doc, r)
	if err != nil {
		return doc, err
	}

	var b strings.Builder
	b.Grow(span.Start + len(interior) + 2 + len(doc) - span.End)
	b.WriteString(doc[:span.Start])
	b.WriteByte('\n')
	b.WriteString(interior)
	b.WriteByte('\n')
	b.WriteString(doc[span.End:])
	return b.String(), nil
}
