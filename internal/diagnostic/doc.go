// Package diagnostic provides structured warnings, errors and notes
// produced while turning union declarations into generated code.
//
// Key capabilities:
//   - Stable diagnostic codes (e.g. invalid_tag_width)
//   - An append-only Reporter contract with collecting, logging
//     and fan-out implementations
//   - Colored rendering for terminals
package diagnostic
