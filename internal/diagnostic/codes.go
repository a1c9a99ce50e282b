package diagnostic

// Stable diagnostic codes.
const (
	// CodeInvalidTagWidth is reported when the tag-width selector is outside
	// the known enumeration and the default was used instead.
	CodeInvalidTagWidth = "invalid_tag_width"
	// CodeRawFallback is reported every time an argument was recovered from
	// raw annotation text instead of a structured value.
	CodeRawFallback = "raw_fallback"

	CodeNameCollision       = "name_collision"
	CodeIdentifierCollision = "identifier_collision"
	CodeInvalidName         = "invalid_name"
	CodeUnresolvedArgument  = "unresolved_argument"
	CodeMissingArgument     = "missing_argument"
	CodeEmitFailed          = "emit_failed"

	// Warnings for annotation content the builder ignores.
	CodeUnknownAnnotation = "unknown_annotation"
	CodeUnknownArgument   = "unknown_argument"
	CodeUnknownQualifier  = "unknown_qualifier"

	CodeCandidateSkipped = "candidate_skipped"
	// CodeInvalidInput is reported for an input file that could not be
	// decoded; the other inputs are still processed.
	CodeInvalidInput = "invalid_input"
)
