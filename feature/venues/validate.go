package venues

import (
	"fmt"
	"slices"
	"strings"

	"venue-manager/core/table"
)

// Validate checks one acronym table for internal consistency and returns
// the cleaned table, the structural findings, and an overall validity flag
// (true iff no findings). Three checks run in sequence, each removing the
// offending records so they do not participate in later checks:
//
//  1. paired-list length equality per record;
//  2. global case-insensitive uniqueness of full and abbreviated names;
//  3. fuzzy cross-acronym matching of normalized names, run separately
//     for abbreviations and full names.
//
// The cleaned table preserves the input insertion order of survivors.
func Validate(t *table.Table) (*table.Table, []Diagnostic, bool) {
	cleaned, diags := checkLengths(t)

	cleaned, dupDiags := checkDuplicates(cleaned)
	diags = append(diags, dupDiags...)

	cleaned, abbrDiags := checkFuzzyMatches(cleaned, fieldAbbr)
	diags = append(diags, abbrDiags...)

	cleaned, fullDiags := checkFuzzyMatches(cleaned, fieldFull)
	diags = append(diags, fullDiags...)

	return cleaned, diags, len(diags) == 0
}

// checkLengths drops records whose full and abbreviated name lists differ
// in length, reporting both observed lengths.
func checkLengths(t *table.Table) (*table.Table, []Diagnostic) {
	cleaned := table.New()
	var diags []Diagnostic
	for _, key := range t.Keys() {
		rec, _ := t.Get(key)
		if len(rec.FullNames) != len(rec.AbbrNames) {
			diags = append(diags, Diagnostic{
				Kind:    DiagLengthMismatch,
				Acronym: key,
				Values: []string{
					fmt.Sprintf("%s=%d", fieldFull, len(rec.FullNames)),
					fmt.Sprintf("%s=%d", fieldAbbr, len(rec.AbbrNames)),
				},
			})
			continue
		}
		cleaned.Set(key, rec)
	}
	return cleaned, diags
}

// checkDuplicates drops every record containing a name (full or
// abbreviated, compared case-insensitively) that appears under more than
// one acronym. A shared name invalidates both owning records, not just
// the later one, so ambiguity never survives in either direction.
func checkDuplicates(t *table.Table) (*table.Table, []Diagnostic) {
	seenFull := make(map[string]string)
	seenAbbr := make(map[string]string)
	flagged := make(map[string]bool)
	var diags []Diagnostic

	for _, key := range t.Keys() {
		rec, _ := t.Get(key)

		for _, abbr := range uniqueLower(rec.AbbrNames) {
			if owner, seen := seenAbbr[abbr]; seen {
				diags = append(diags, Diagnostic{
					Kind:    DiagDuplicateName,
					Acronym: key,
					Other:   owner,
					Field:   fieldAbbr,
					Values:  []string{abbr},
				})
				flagged[key] = true
				flagged[owner] = true
			} else {
				seenAbbr[abbr] = key
			}
		}

		for _, full := range uniqueLower(rec.FullNames) {
			if owner, seen := seenFull[full]; seen {
				diags = append(diags, Diagnostic{
					Kind:    DiagDuplicateName,
					Acronym: key,
					Other:   owner,
					Field:   fieldFull,
					Values:  []string{full},
				})
				flagged[key] = true
				flagged[owner] = true
			} else {
				seenFull[full] = key
			}
		}
	}

	cleaned := table.New()
	for _, key := range t.Keys() {
		if flagged[key] {
			continue
		}
		rec, _ := t.Get(key)
		cleaned.Set(key, rec)
	}
	return cleaned, diags
}

// checkFuzzyMatches compares every acronym's normalized names in the given
// field against every other acronym's, scanning the sorted key set once
// ascending and once descending to cover both sides of each pair. A record
// implicated in either direction is dropped. Matching is plain string
// equality after normalization; venue names never carry intentional
// pattern syntax, and equality cannot misparse the ones that contain
// regex metacharacters.
func checkFuzzyMatches(t *table.Table, field string) (*table.Table, []Diagnostic) {
	ascending := t.SortedKeys()
	descending := slices.Clone(ascending)
	slices.Reverse(descending)

	flagged := make(map[string]bool)
	var diags []Diagnostic

	for _, order := range [][]string{ascending, descending} {
		for i, main := range order {
			mainNames := normalizeNames(fieldNames(t, main, field))
			if len(mainNames) == 0 {
				continue
			}
			for _, other := range order[i+1:] {
				for _, name := range normalizeNames(fieldNames(t, other, field)) {
					if slices.Contains(mainNames, name) {
						diags = append(diags, Diagnostic{
							Kind:    DiagFuzzyMatch,
							Acronym: main,
							Other:   other,
							Field:   field,
							Values:  []string{name},
						})
						flagged[main] = true
					}
				}
			}
		}
	}

	cleaned := table.New()
	for _, key := range t.Keys() {
		if flagged[key] {
			continue
		}
		rec, _ := t.Get(key)
		cleaned.Set(key, rec)
	}
	return cleaned, diags
}

// fieldNames returns the requested name list of a record.
func fieldNames(t *table.Table, key, field string) []string {
	rec, ok := t.Get(key)
	if !ok {
		return nil
	}
	if field == fieldAbbr {
		return rec.AbbrNames
	}
	return rec.FullNames
}

// normalizeName lowercases a name and strips parenthesis characters, the
// canonical form used for cross-acronym comparison.
func normalizeName(name string) string {
	name = strings.ToLower(name)
	name = strings.ReplaceAll(name, "(", "")
	return strings.ReplaceAll(name, ")", "")
}

// normalizeNames normalizes a list of names, preserving order.
func normalizeNames(names []string) []string {
	out := make([]string, len(names))
	for i, name := range names {
		out[i] = normalizeName(name)
	}
	return out
}

// uniqueLower lowercases names and removes repeats, keeping first-seen
// order so diagnostics are deterministic.
func uniqueLower(names []string) []string {
	var out []string
	for _, name := range names {
		lower := strings.ToLower(name)
		if !slices.Contains(out, lower) {
			out = append(out, lower)
		}
	}
	return out
}
