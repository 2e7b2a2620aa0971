// Package table provides the in-memory representation of a venue acronym
// table: an insertion-ordered mapping from acronym keys (e.g. "NIPS") to
// the paired lists of full and abbreviated names observed for that venue.
//
// # Ordering
//
// Iteration always follows insertion order. Updating the record of an
// existing key keeps the key at its original position, so copy and update
// operations are deterministic regardless of which keys are new versus
// overwritten. On disk, tables are persisted with sorted keys for stable
// diffs; loading preserves the on-disk key order in memory.
//
// # Persistence
//
//   - Load reads a flat {"<acronym>": {"names_full": [...], "names_abbr": [...]}}
//     JSON file, returning an empty table (with a logged diagnostic) on
//     missing or malformed input.
//   - Save writes sorted-key, indented JSON atomically: a failed write
//     leaves the destination file unmodified.
//   - FlattenUserSource un-nests the user override layout
//     {"<publisher>": {"<section>": {"<acronym>": {...}}}} into the flat
//     per-acronym view consumed by the reconciliation engine.
package table
