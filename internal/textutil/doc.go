// Package textutil provides small string helpers shared by the walker, the
// query layer, and the CLI.
//
// The primary use cases are:
//   - Ordering directory entry names under the configured sort mode
//   - Rendering optional catalog fields with a stable placeholder
package textutil
