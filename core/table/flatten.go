package table

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// FlattenUserSource un-nests the user override layout
// {"<publisher>": {"<section>": {"<acronym>": {...}}}} into a flat table.
// sections is the fixed vocabulary of recognized section names for the
// namespace; matching is case-insensitive. Publishers and acronyms keep
// their document order, and only the names_full/names_abbr fields are
// carried over.
func FlattenUserSource(raw []byte, sections []string) (*Table, error) {
	out := New()
	if len(bytes.TrimSpace(raw)) == 0 {
		return out, nil
	}

	wanted := make(map[string]struct{}, len(sections))
	for _, s := range sections {
		wanted[strings.ToLower(s)] = struct{}{}
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	if err := expectDelim(dec, '{'); err != nil {
		return nil, fmt.Errorf("user table: %w", err)
	}

	for dec.More() {
		pubTok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("user table: %w", err)
		}
		publisher, ok := pubTok.(string)
		if !ok {
			return nil, fmt.Errorf("user table: expected publisher key, got %v", pubTok)
		}

		if err := expectDelim(dec, '{'); err != nil {
			return nil, fmt.Errorf("user table: publisher %q: %w", publisher, err)
		}
		for dec.More() {
			secTok, err := dec.Token()
			if err != nil {
				return nil, fmt.Errorf("user table: publisher %q: %w", publisher, err)
			}
			section, ok := secTok.(string)
			if !ok {
				return nil, fmt.Errorf("user table: publisher %q: expected section key, got %v", publisher, secTok)
			}

			if _, match := wanted[strings.ToLower(section)]; !match {
				// Unrecognized section: skip its value entirely.
				var skip json.RawMessage
				if err := dec.Decode(&skip); err != nil {
					return nil, fmt.Errorf("user table: publisher %q section %q: %w", publisher, section, err)
				}
				continue
			}

			var sub Table
			if err := dec.Decode(&sub); err != nil {
				return nil, fmt.Errorf("user table: publisher %q section %q: %w", publisher, section, err)
			}
			for _, key := range sub.Keys() {
				rec, _ := sub.Get(key)
				out.Set(key, Record{
					FullNames: ensureList(rec.FullNames),
					AbbrNames: ensureList(rec.AbbrNames),
				})
			}
		}
		if err := expectDelim(dec, '}'); err != nil {
			return nil, fmt.Errorf("user table: publisher %q: %w", publisher, err)
		}
	}
	return out, nil
}

// expectDelim consumes one token and verifies it is the given delimiter.
func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != want {
		return fmt.Errorf("expected %q, got %v", want, tok)
	}
	return nil
}

// ensureList replaces a nil slice with an empty one so that records with
// missing fields still marshal as [] rather than null.
func ensureList(names []string) []string {
	if names == nil {
		return []string{}
	}
	return names
}
