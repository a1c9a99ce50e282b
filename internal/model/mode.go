package model

import "fmt"

// Mode selects which generation pass handles a union.
type Mode int

const (
	// OnDemand unions are generated on every compilation (go generate).
	OnDemand Mode = iota
	// AheadOfTime unions are generated once and persisted by the pregen pass.
	AheadOfTime
)

// String returns a human-readable mode name.
func (m Mode) String() string {
	switch m {
	case OnDemand:
		return "on-demand"
	case AheadOfTime:
		return "ahead-of-time"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Accepts reports whether a run in mode run should generate spec. Each
// declaration is handled by exactly one of the two passes.
func Accepts(spec UnionSpec, run Mode) bool {
	return spec.Mode == run
}
