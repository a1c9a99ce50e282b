// Package gen emits Go source for tagged unions.
//
// Generation uses embedded text/template files and go/format. Output is a
// pure function of the union model: the same model always yields the same
// bytes.
//
// Each union gets:
//   - a tag type with one constant per case
//   - factories and predicates per case
//   - Match/Switch dispatch functions, with and without a context value
//   - String, Equal, NotEqual and Hash
package gen
