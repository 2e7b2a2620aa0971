// Package venues implements the reconciliation engine for publication-venue
// acronym tables.
//
// A run extracts freshly observed (full, abbreviated) name pairs from a
// BibLaTeX source, validates both the existing and the extracted tables,
// isolates genuinely new acronyms, and merges the default, user, and new
// tiers into a single re-validated table per namespace.
//
// # Pipeline
//
//	Extract -> Validate (existing and parsed independently) -> Diff -> Merge
//
// Two namespaces are tracked independently: conferences (@inproceedings,
// cite-key prefix C_) and journals (@article, cite-key prefix J_).
//
// All validation, diff, and merge findings are returned as structured
// Diagnostic events; the engine never writes to the console. Rendering is
// the cmd layer's job.
//
// # HTTP Surface
//
//   - GET /venues/:namespace : the merged (default + user) table.
//   - GET /venues/:namespace/:acronym : one record.
//   - GET /venues/:namespace/resolve?name=... : reverse lookup of an
//     acronym from a cited name, using the engine's normalization rules.
package venues
