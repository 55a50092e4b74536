package marker

import "exusiai.dev/todoist-readme/internal/core/stat"

// Mode is the annotation scheme a document uses.
type Mode int

const (
	ModeNone Mode = iota
	ModeLegacy
	ModeGranular
)

func (m Mode) String() string {
	switch m {
	case ModeLegacy:
		return "legacy"
	case ModeGranular:
		return "granular"
	default:
		return "none"
	}
}

// Detect classifies doc. Any per-stat start token wins over the combined
// block, so a partially migrated README is treated as granular.
func Detect(doc string) Mode {
	for _, k := range stat.Kinds {
		if Granular(k).HasStart(doc) {
			return ModeGranular
		}
	}
	if Legacy.HasStart(doc) && Legacy.HasEnd(doc) {
		return ModeLegacy
	}
	return ModeNone
}
