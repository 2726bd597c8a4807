// Package motion implements the transition authoring helper: named
// duration/easing token tables and a composer producing CSS `transition`
// shorthand values.
package motion

import "maps"

// Tables holds the lookup tables the composer resolves tokens against.
// Tables are treated as immutable after construction - the composer never
// writes to them, so concurrent use is safe.
type Tables struct {
	// Durations maps token names to durations in milliseconds. Values
	// strictly increase within each named tier, nothing is promised across
	// tiers.
	Durations map[string]int
	// Easings maps token names to cubic-bezier literals.
	Easings map[string]string
	// Aliases maps common easing names onto Easings entries by indirection.
	Aliases map[string]string
}

// Default composer arguments. Both are guaranteed to resolve against
// DefaultTables.
const (
	DefaultDuration = "medium2"
	DefaultEasing   = "ease-out"
)

// DefaultTables returns a copy of the built-in tables, safe to amend before
// constructing a composer.
func DefaultTables() Tables {
	return Tables{
		Durations: maps.Clone(defaultDurations),
		Easings:   maps.Clone(defaultEasings),
		Aliases:   maps.Clone(defaultAliases),
	}
}

// Twenty duration tokens in five tiers.
var defaultDurations = map[string]int{
	"extra-short1": 25,
	"extra-short2": 50,
	"extra-short3": 75,
	"extra-short4": 100,

	"short1": 50,
	"short2": 100,
	"short3": 150,
	"short4": 200,

	"medium1": 240,
	"medium2": 280,
	"medium3": 320,
	"medium4": 360,

	"long1": 400,
	"long2": 450,
	"long3": 500,
	"long4": 550,

	"extra-long1": 600,
	"extra-long2": 700,
	"extra-long3": 800,
	"extra-long4": 900,
}

// Ten easing tokens. Control points conventionally stay in [0,1] but that is
// not enforced.
var defaultEasings = map[string]string{
	"standard":            "cubic-bezier(0.2, 0, 0, 1)",
	"standard-accelerate": "cubic-bezier(0.3, 0, 1, 1)",
	"standard-decelerate": "cubic-bezier(0, 0, 0, 1)",

	"emphasized":            "cubic-bezier(0.2, 0, 0, 1)",
	"emphasized-accelerate": "cubic-bezier(0.3, 0, 0.8, 0.15)",
	"emphasized-decelerate": "cubic-bezier(0.05, 0.7, 0.1, 1)",

	"legacy":            "cubic-bezier(0.4, 0, 0.2, 1)",
	"legacy-accelerate": "cubic-bezier(0.4, 0, 1, 1)",
	"legacy-decelerate": "cubic-bezier(0, 0, 0.2, 1)",

	"linear": "cubic-bezier(0, 0, 1, 1)",
}

// Friendly names resolved by indirection, never by duplicating bezier
// literals.
var defaultAliases = map[string]string{
	"ease":        "standard",
	"ease-in":     "standard-accelerate",
	"ease-out":    "standard-decelerate",
	"ease-in-out": "emphasized",
}
