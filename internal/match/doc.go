// Package match provides name normalization, Levenshtein distance and
// candidate ranking used to suggest the intended spelling of a misspelled
// annotation kind, argument key or package qualifier.
//
// Key functions:
//   - NormalizeIdent: normalizes identifiers for fuzzy matching
//   - Levenshtein: computes edit distance between strings
//   - Rank: orders known names by similarity to an input
//   - Hint: formats a "did you mean" suffix for diagnostics
package match
