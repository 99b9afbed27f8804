// Package main hosts the movieshelf CLI entrypoint and command graph.
//
// The Cobra-based command tree counts movie folders across configured
// library locations, builds and collects JSON catalogs, answers year and
// title lookups, reconciles a flat library copy against an organized one,
// and mirrors catalogs into a SQLite index. It centralizes configuration
// resolution, traversal options, and structured logging setup so
// subcommands can focus on their own output.
//
// Results go to stdout; logs go to stderr and the configured log file.
package main
