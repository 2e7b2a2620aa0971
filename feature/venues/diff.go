package venues

import (
	"slices"

	"venue-manager/core/table"
)

// Diff compares an existing (validated) table against a freshly parsed
// candidate for the same namespace. It returns the candidate records whose
// acronym keys are absent from the existing table, in candidate insertion
// order, plus review findings for shared keys whose candidate full names
// are not covered by the existing record under normalization. Review
// findings are surfaced for manual curation and never auto-merged.
// Neither input table is mutated.
func Diff(existing, candidate *table.Table) (*table.Table, []Diagnostic) {
	newOnly := table.New()
	var diags []Diagnostic

	for _, key := range candidate.Keys() {
		rec, _ := candidate.Get(key)
		if !existing.Has(key) {
			newOnly.Set(key, rec.Clone())
			continue
		}

		existingRec, _ := existing.Get(key)
		known := normalizeNames(existingRec.FullNames)

		var unmatched []string
		for _, full := range rec.FullNames {
			if !slices.Contains(known, normalizeName(full)) {
				unmatched = append(unmatched, full)
			}
		}
		if len(unmatched) > 0 {
			diags = append(diags, Diagnostic{
				Kind:    DiagReviewRequired,
				Acronym: key,
				Field:   fieldFull,
				Values:  unmatched,
			})
		}
	}
	return newOnly, diags
}
