// Package walker enumerates the two supported library layouts without
// interpreting file contents.
//
// A flat root holds one folder per movie. An organized root holds one folder
// per year, each holding one folder per movie. The walker lists names at one,
// two, or three levels, keeps directory-listing order unless a sort mode is
// configured, and either aborts on the first unreadable folder (strict) or
// logs and skips it (lenient). The root itself must always be readable.
package walker
