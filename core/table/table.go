package table

import (
	"slices"
	"sort"
)

// Record holds the name variants observed for one acronym.
// Position i in FullNames and AbbrNames denotes a single observed
// (full, abbreviated) pairing; the two lists are not independent sets.
type Record struct {
	// FullNames lists every long-form name variant ever seen.
	FullNames []string `json:"names_full"`
	// AbbrNames lists the abbreviated variants, paired positionally
	// with FullNames.
	AbbrNames []string `json:"names_abbr"`
}

// Clone returns a deep copy of the record.
func (r Record) Clone() Record {
	return Record{
		FullNames: slices.Clone(r.FullNames),
		AbbrNames: slices.Clone(r.AbbrNames),
	}
}

// HasFullName reports whether full is already present verbatim.
func (r Record) HasFullName(full string) bool {
	return slices.Contains(r.FullNames, full)
}

// Table is an insertion-ordered mapping from acronym keys to records.
type Table struct {
	keys []string
	data map[string]Record
}

// New creates an empty table.
func New() *Table {
	return &Table{data: make(map[string]Record)}
}

// Set stores a record under key. A new key is appended to the iteration
// order; an existing key keeps its original position.
func (t *Table) Set(key string, rec Record) {
	if t.data == nil {
		t.data = make(map[string]Record)
	}
	if _, exists := t.data[key]; !exists {
		t.keys = append(t.keys, key)
	}
	t.data[key] = rec
}

// Get returns the record for key and whether it exists.
func (t *Table) Get(key string) (Record, bool) {
	rec, ok := t.data[key]
	return rec, ok
}

// Has reports whether key exists in the table.
func (t *Table) Has(key string) bool {
	_, ok := t.data[key]
	return ok
}

// Delete removes key from the table. Missing keys are a no-op.
func (t *Table) Delete(key string) {
	if _, ok := t.data[key]; !ok {
		return
	}
	delete(t.data, key)
	if i := slices.Index(t.keys, key); i >= 0 {
		t.keys = slices.Delete(t.keys, i, i+1)
	}
}

// Len returns the number of records.
func (t *Table) Len() int {
	return len(t.keys)
}

// Keys returns a copy of the keys in insertion order.
func (t *Table) Keys() []string {
	return slices.Clone(t.keys)
}

// SortedKeys returns a copy of the keys in ascending order.
func (t *Table) SortedKeys() []string {
	keys := slices.Clone(t.keys)
	sort.Strings(keys)
	return keys
}

// Clone returns a deep copy of the table, preserving insertion order.
func (t *Table) Clone() *Table {
	out := New()
	for _, key := range t.keys {
		out.Set(key, t.data[key].Clone())
	}
	return out
}

// Equal reports content equality: the same key set with identical records.
// Insertion order is ignored, matching the round-trip guarantee of the
// sorted-key on-disk format.
func (t *Table) Equal(other *Table) bool {
	if t.Len() != other.Len() {
		return false
	}
	for _, key := range t.keys {
		rec, ok := other.Get(key)
		if !ok {
			return false
		}
		mine := t.data[key]
		if !slices.Equal(mine.FullNames, rec.FullNames) || !slices.Equal(mine.AbbrNames, rec.AbbrNames) {
			return false
		}
	}
	return true
}
