// Package model defines the canonical in-memory description of a tagged
// union to generate.
//
// Key types:
//   - UnionSpec: one union, its tag width, variants and empty cases
//   - Variant: a payload-carrying case
//   - TagWidth: the integer type backing the tag enumeration
//   - Mode: on-demand or ahead-of-time generation
//
// A UnionSpec is produced by internal/build, consumed once by internal/gen
// and never mutated in between.
package model
