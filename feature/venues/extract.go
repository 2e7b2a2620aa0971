package venues

import (
	"fmt"
	"strings"

	"venue-manager/core/table"
)

// Extract scans raw bibliography text and returns the acronym table of
// name pairs observed in entries of the given kind. It is a pure function
// of its input; file access is the caller's concern.
//
// Only entries whose cite key carries the kind's prefix (C_ or J_) are
// considered. The full-name field is mandatory; a missing abbreviated
// field degenerates to the full name. The acronym is the second
// underscore-delimited component of the cite key, so keys with fewer than
// three components are skipped.
//
// An unsupported kind is a contract violation and fails immediately.
func Extract(content string, kind Kind) (*table.Table, error) {
	spec, ok := kindSpecs[kind]
	if !ok {
		return nil, fmt.Errorf("unsupported entry kind %q (want %q or %q)", kind, KindArticle, KindInproceedings)
	}

	out := table.New()
	for _, m := range spec.entry.FindAllStringSubmatch(content, -1) {
		citeKey := strings.TrimSpace(m[1])
		body := m[2]

		if !strings.HasPrefix(citeKey, spec.prefix) {
			continue
		}

		fullMatch := spec.fullField.FindStringSubmatch(body)
		if fullMatch == nil {
			// Full name is mandatory; skip the entry.
			continue
		}
		full := strings.TrimSpace(fullMatch[1])

		abbr := full
		if abbrMatch := spec.abbrField.FindStringSubmatch(body); abbrMatch != nil {
			abbr = strings.TrimSpace(abbrMatch[1])
		}

		parts := strings.Split(citeKey, "_")
		if len(parts) < 3 {
			// Not enough structure to derive an acronym key.
			continue
		}
		key := parts[1]

		if rec, exists := out.Get(key); exists {
			// Append only unseen-verbatim full names. Case and
			// punctuation variants are the validator's job.
			if rec.HasFullName(full) {
				continue
			}
			rec.FullNames = append(rec.FullNames, full)
			rec.AbbrNames = append(rec.AbbrNames, abbr)
			out.Set(key, rec)
		} else {
			out.Set(key, table.Record{
				FullNames: []string{full},
				AbbrNames: []string{abbr},
			})
		}
	}
	return out, nil
}
