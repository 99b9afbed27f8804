// Package reconcile compares two copies of a movie library by file name.
//
// The reference copy is an organized root (year/movie/file) and the candidate
// copy is a flat root (movie/file). Unique reports candidate file names that
// never appear anywhere in the reference, matching names exactly and
// case-sensitively with no path normalization.
package reconcile
