package reconcile

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"movieshelf/internal/fileutil"
	"movieshelf/internal/logging"
	"movieshelf/internal/walker"
)

// Diff returns the names in candidate that are absent from reference. The
// result holds each name once, in order of first appearance in candidate.
func Diff(reference, candidate []string) []string {
	known := make(map[string]struct{}, len(reference))
	for _, name := range reference {
		known[name] = struct{}{}
	}
	seen := make(map[string]struct{})
	unique := make([]string, 0)
	for _, name := range candidate {
		if _, ok := known[name]; ok {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		unique = append(unique, name)
	}
	return unique
}

// Result describes one reconciliation run.
type Result struct {
	ReferenceFiles int
	CandidateFiles int
	Unique         []string
}

// Engine walks both library copies and diffs their file names.
type Engine struct {
	walker *walker.Walker
	logger *slog.Logger
}

// NewEngine creates an Engine over w.
func NewEngine(w *walker.Walker, logger *slog.Logger) *Engine {
	return &Engine{walker: w, logger: logging.NewComponentLogger(logger, "reconcile")}
}

// Unique lists files present under the flat candidate root but missing from
// the organized reference root. Directories never count as files.
func (e *Engine) Unique(ctx context.Context, referenceRoot, candidateRoot string) (Result, error) {
	logger := logging.WithContext(ctx, e.logger)

	referenceFiles, err := e.walker.OrganizedFiles(referenceRoot)
	if err != nil {
		return Result{}, fmt.Errorf("walk reference: %w", err)
	}
	logger.Debug("reference files listed",
		logging.String("root", referenceRoot),
		logging.Int("files", len(referenceFiles)))

	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	candidateFiles, err := e.walker.FlatFiles(candidateRoot)
	if err != nil {
		return Result{}, fmt.Errorf("walk candidate: %w", err)
	}

	unique := Diff(fileNames(referenceFiles), fileNames(candidateFiles))
	logger.Info("reconciled library copies",
		logging.String("reference", referenceRoot),
		logging.String("candidate", candidateRoot),
		logging.Int("reference_files", len(referenceFiles)),
		logging.Int("candidate_files", len(candidateFiles)),
		logging.Int("unique", len(unique)))

	return Result{
		ReferenceFiles: len(referenceFiles),
		CandidateFiles: len(candidateFiles),
		Unique:         unique,
	}, nil
}

// Extensions lists the distinct file extensions (without the dot) across the
// movie folders of a flat root, in order of first appearance. Files without
// an extension are ignored.
func (e *Engine) Extensions(root string) ([]string, error) {
	files, err := e.walker.FlatFiles(root)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]struct{})
	extensions := make([]string, 0)
	for _, f := range files {
		ext, ok := extension(f.Name)
		if !ok {
			continue
		}
		if _, dup := seen[ext]; dup {
			continue
		}
		seen[ext] = struct{}{}
		extensions = append(extensions, ext)
	}
	return extensions, nil
}

// WriteNames overwrites path with names as a pretty-printed JSON array.
func WriteNames(path string, names []string) error {
	if names == nil {
		names = []string{}
	}
	data, err := json.MarshalIndent(names, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal file list: %w", err)
	}
	if err := fileutil.WriteFileAtomic(path, data, 0o644); err != nil {
		return fmt.Errorf("write file list %q: %w", path, err)
	}
	return nil
}

func fileNames(files []walker.File) []string {
	names := make([]string, len(files))
	for i, f := range files {
		names[i] = f.Name
	}
	return names
}

// extension returns the text after the last dot. Dot-files such as
// ".nomedia" and names ending in a dot have no extension.
func extension(name string) (string, bool) {
	idx := strings.LastIndexByte(name, '.')
	if idx <= 0 || idx == len(name)-1 {
		return "", false
	}
	return name[idx+1:], true
}
