// Package index mirrors a catalog into SQLite so repeated year and title
// lookups do not have to decode the whole JSON document.
//
// The index is derived data. Replace rebuilds it wholesale from a catalog
// slice and records keep their catalog position, so queries return matches
// in the same order as a linear scan of the JSON file would.
//
// Schema changes bump schemaVersion in schema.go; an index written by an
// older version is rejected with ErrSchemaMismatch and must be rebuilt.
package index
