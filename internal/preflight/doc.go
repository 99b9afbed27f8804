// Package preflight provides readiness checks for the filesystem paths
// movieshelf reads and writes.
//
// These checks run in two contexts:
//   - The "movieshelf check" command calls RunAll to report every configured
//     location and the log directory.
//   - Catalog-writing commands call CheckOutputFile before walking a library
//     so an unwritable destination fails before any traversal work.
package preflight
