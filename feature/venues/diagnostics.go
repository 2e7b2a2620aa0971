package venues

// DiagnosticKind classifies a reconciliation finding.
type DiagnosticKind string

const (
	// DiagLengthMismatch reports a record whose full and abbreviated
	// name lists differ in length.
	DiagLengthMismatch DiagnosticKind = "length_mismatch"
	// DiagDuplicateName reports a name already seen under another (or
	// the same) acronym, compared case-insensitively.
	DiagDuplicateName DiagnosticKind = "duplicate_name"
	// DiagFuzzyMatch reports two distinct acronyms sharing a name after
	// normalization (lowercase, parentheses stripped).
	DiagFuzzyMatch DiagnosticKind = "fuzzy_match"
	// DiagReviewRequired reports new name variants under an existing
	// acronym; these are surfaced for manual curation, never auto-merged.
	DiagReviewRequired DiagnosticKind = "review_required"
)

// Field names diagnostics refer to, matching the persisted JSON fields.
const (
	fieldFull = "names_full"
	fieldAbbr = "names_abbr"
)

// Diagnostic is one structured validation, diff, or merge finding.
// The engine returns these instead of printing; callers decide how to
// render them.
type Diagnostic struct {
	// Kind classifies the finding.
	Kind DiagnosticKind `json:"kind"`
	// Acronym is the key owning the offending record.
	Acronym string `json:"acronym"`
	// Other is the second acronym involved, if any.
	Other string `json:"other,omitempty"`
	// Field is the name list the finding refers to.
	Field string `json:"field,omitempty"`
	// Values holds the offending names or observed lengths.
	Values []string `json:"values,omitempty"`
}
