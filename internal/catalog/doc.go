// Package catalog builds, migrates, persists, and loads the movie catalog.
//
// A catalog is an ordered slice of MovieRecord written as one pretty-printed
// JSON array. Records come from three sources: folder names in a flat root,
// (year, folder) pairs in an organized root, or legacy per-movie metadata
// files that Migrate flattens into the current record shape. Every write
// replaces the whole file; there is no merge with earlier contents.
package catalog
