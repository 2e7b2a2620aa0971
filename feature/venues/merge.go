package venues

import (
	"sort"

	"venue-manager/core/table"
)

// MergeResult is the outcome of combining the three source tiers for one
// namespace.
type MergeResult struct {
	// Table is the combined, re-validated table.
	Table *table.Table
	// Excluded lists new-tier keys dropped by post-merge validation.
	Excluded []string
	// Diags holds the violations found when re-validating the union,
	// before any exclusion.
	Diags []Diagnostic
	// Safe is true iff the final table carries zero violations and may
	// be persisted.
	Safe bool
}

// Merge combines the default, user, and new-only tables by key union with
// whole-record replacement on collision. Priority is fixed:
// user overrides default overrides new.
//
// The union is then re-validated with the duplicate and fuzzy-match
// checks. Keys still implicated in a violation are excluded from the
// new-tier contribution (default and user records are never dropped here)
// and the merge is recomputed, so the returned table is always
// re-validated. Safe reports whether the final table is violation-free;
// it stays false when the remaining violations implicate default or user
// records, which only manual curation can resolve.
func Merge(def, user, newOnly *table.Table) MergeResult {
	merged := overlay(newOnly, def, user)

	diags := revalidate(merged)
	if len(diags) == 0 {
		return MergeResult{Table: merged, Excluded: []string{}, Diags: diags, Safe: true}
	}

	// Exclude implicated keys owned solely by the new tier.
	implicated := make(map[string]bool)
	for _, d := range diags {
		implicated[d.Acronym] = true
		if d.Other != "" {
			implicated[d.Other] = true
		}
	}

	var excluded []string
	for key := range implicated {
		if newOnly.Has(key) && !def.Has(key) && !user.Has(key) {
			excluded = append(excluded, key)
		}
	}
	sort.Strings(excluded)

	final := diags
	if len(excluded) > 0 {
		trimmed := newOnly.Clone()
		for _, key := range excluded {
			trimmed.Delete(key)
		}
		merged = overlay(trimmed, def, user)
		final = revalidate(merged)
	}

	return MergeResult{
		Table:    merged,
		Excluded: excluded,
		Diags:    diags,
		Safe:     len(final) == 0,
	}
}

// overlay unions tables lowest-priority first, so a later tier's record
// replaces an earlier one's while the colliding key keeps the position of
// its first insertion.
func overlay(tiers ...*table.Table) *table.Table {
	out := table.New()
	for _, tier := range tiers {
		for _, key := range tier.Keys() {
			rec, _ := tier.Get(key)
			out.Set(key, rec.Clone())
		}
	}
	return out
}

// revalidate runs the duplicate and fuzzy-match checks over a combined
// table without keeping the cleaned copy; only the findings matter here.
func revalidate(t *table.Table) []Diagnostic {
	_, dupDiags := checkDuplicates(t)
	_, abbrDiags := checkFuzzyMatches(t, fieldAbbr)
	_, fullDiags := checkFuzzyMatches(t, fieldFull)

	diags := dupDiags
	diags = append(diags, abbrDiags...)
	return append(diags, fullDiags...)
}
