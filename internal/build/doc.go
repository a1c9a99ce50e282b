// Package build turns raw declarations into canonical union models.
//
// Build resolves the tag width, collects variants and empty cases in
// declaration order, applies custom names, optionally recovers arguments
// from raw annotation text and validates every name, including the Go
// identifiers the emitter will derive from it.
//
// The outcome of each candidate is an explicit Result (built, skipped or
// failed); nothing is thrown past the candidate.
package build
