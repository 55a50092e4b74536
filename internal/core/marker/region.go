// Package marker finds and rewrites the HTML-comment delimited regions of a README.
//
// A region is a pair of tokens such as
//
//	<!-- TODO-IST:START -->
//	...
//	<!-- TODO-IST:END -->
//
// Only the interior between the two tokens is ever rewritten; the tokens
// themselves are preserved so the same document can be updated again.
package marker

import (
	"fmt"
	"regexp"
	"strings"

	"exusiai.dev/todoist-readme/internal/core/stat"
)

const (
	// LegacyName is the marker name of the combined block.
	LegacyName = "TODO-IST"

	granularPrefix = LegacyName + "-"
)

type Side string

const (
	SideStart Side = "START"
	SideEnd   Side = "END"
)

// Region is a named marker pair. Use NewRegion to build one.
type Region struct {
	Name string

	start *regexp.Regexp
	end   *regexp.Regexp
}

func NewRegion(name string) Region {
	return Region{
		Name:  name,
		start: tokenPattern(name, SideStart),
		end:   tokenPattern(name, SideEnd),
	}
}

// tokenPattern matches the whole comment token, so a name never matches a
// longer name it happens to prefix (TODO-IST vs TODO-IST-KARMA).
func tokenPattern(name string, side Side) *regexp.Regexp {
	return regexp.MustCompile(`<!--\s*` + regexp.QuoteMeta(name) + `:` + string(side) + `\s*-->`)
}

func (r Region) StartToken() string {
	return "<!-- " + r.Name + ":" + string(SideStart) + " -->"
}

func (r Region) EndToken() string {
	return "<!-- " + r.Name + ":" + string(SideEnd) + " -->"
}

// HasStart reports whether doc contains the region's start token.
func (r Region) HasStart(doc string) bool {
	return r.start.MatchString(doc)
}

// HasEnd reports whether doc contains the region's end token.
func (r Region) HasEnd(doc string) bool {
	return r.end.MatchString(doc)
}

var (
	Legacy = NewRegion(LegacyName)

	granular = func() map[stat.Kind]Region {
		m := make(map[stat.Kind]Region, len(stat.Kinds))
		for _, k := range stat.Kinds {
			m[k] = NewRegion(granularPrefix + k.Tag())
		}
		return m
	}()

	unknownTagPattern = regexp.MustCompile(`<!--\s*` + regexp.QuoteMeta(granularPrefix) + `([A-Za-z0-9_-]+):START\s*-->`)
)

// Granular returns the per-stat region for k.
func Granular(k stat.Kind) Region {
	return granular[k]
}

// UnknownTags returns the distinct tag names that follow the per-stat marker
// pattern but are not one of the known stats, in order of first appearance.
// These are almost always typos.
func UnknownTags(doc string) []string {
	var unknown []string
	seen := make(map[string]struct{})
	for _, m := range unknownTagPattern.FindAllStringSubmatch(doc, -1) {
		tag := m[1]
		if _, ok := stat.KindByTag(tag); ok {
			continue
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		unknown = append(unknown, tag)
	}
	return unknown
}

// SupportedFormats describes both marker schemes, for operator-facing messages.
func SupportedFormats() string {
	var b strings.Builder
	b.WriteString("combined block:\n")
	b.WriteString(Legacy.StartToken() + "\n" + Legacy.EndToken() + "\n")
	b.WriteString("or one pair per stat, any of:\n")
	for _, k := range stat.Kinds {
		r := Granular(k)
		fmt.Fprintf(&b, "%s\n%s\n", r.StartToken(), r.EndToken())
	}
	return b.String()
}
