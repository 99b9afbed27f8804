package walker

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"movieshelf/internal/logging"
	"movieshelf/internal/textutil"
)

// ErrNotDirectory is returned when a root path exists but is not a directory.
var ErrNotDirectory = errors.New("not a directory")

// Options controls traversal behaviour.
type Options struct {
	// Sort is one of textutil.OrderNone, OrderLexical, OrderCollated.
	Sort string
	// Lenient skips unreadable sub-folders instead of failing the walk.
	Lenient bool
	Logger  *slog.Logger
}

// Pair is one movie folder inside an organized root.
type Pair struct {
	Year  string
	Movie string
	Path  string
}

// File is one regular file found inside a movie folder. Year is empty for
// flat layouts.
type File struct {
	Year  string
	Movie string
	Name  string
	Path  string
}

// Skipped records a folder that lenient mode left out.
type Skipped struct {
	Path string
	Err  error
}

// Walker lists library layouts. It is not safe for concurrent use.
type Walker struct {
	opts    Options
	logger  *slog.Logger
	skipped []Skipped
}

// New creates a walker with the given options.
func New(opts Options) *Walker {
	return &Walker{
		opts:   opts,
		logger: logging.NewComponentLogger(opts.Logger, "walker"),
	}
}

// Skipped returns folders omitted so far by lenient walks.
func (w *Walker) Skipped() []Skipped {
	out := make([]Skipped, len(w.skipped))
	copy(out, w.skipped)
	return out
}

// Movies lists the movie folder names directly under a flat root.
func (w *Walker) Movies(root string) ([]string, error) {
	if err := checkRoot(root); err != nil {
		return nil, err
	}
	return w.dirNames(root)
}

// Pairs walks an organized root two levels deep and returns one pair per
// movie folder, grouped by year bucket in listing order.
func (w *Walker) Pairs(root string) ([]Pair, error) {
	if err := checkRoot(root); err != nil {
		return nil, err
	}
	years, err := w.dirNames(root)
	if err != nil {
		return nil, err
	}

	var pairs []Pair
	for _, year := range years {
		yearPath := filepath.Join(root, year)
		movies, err := w.dirNames(yearPath)
		if err != nil {
			if w.skip(yearPath, err) {
				continue
			}
			return nil, err
		}
		for _, movie := range movies {
			pairs = append(pairs, Pair{Year: year, Movie: movie, Path: filepath.Join(yearPath, movie)})
		}
	}
	return pairs, nil
}

// OrganizedFiles walks year -> movie -> file and returns every regular file.
func (w *Walker) OrganizedFiles(root string) ([]File, error) {
	pairs, err := w.Pairs(root)
	if err != nil {
		return nil, err
	}
	var files []File
	for _, pair := range pairs {
		names, err := w.fileNames(pair.Path)
		if err != nil {
			if w.skip(pair.Path, err) {
				continue
			}
			return nil, err
		}
		for _, name := range names {
			files = append(files, File{Year: pair.Year, Movie: pair.Movie, Name: name, Path: filepath.Join(pair.Path, name)})
		}
	}
	return files, nil
}

// FlatFiles walks movie -> file under a flat root and returns every regular file.
func (w *Walker) FlatFiles(root string) ([]File, error) {
	movies, err := w.Movies(root)
	if err != nil {
		return nil, err
	}
	var files []File
	for _, movie := range movies {
		moviePath := filepath.Join(root, movie)
		names, err := w.fileNames(moviePath)
		if err != nil {
			if w.skip(moviePath, err) {
				continue
			}
			return nil, err
		}
		for _, name := range names {
			files = append(files, File{Movie: movie, Name: name, Path: filepath.Join(moviePath, name)})
		}
	}
	return files, nil
}

// FindFile returns the path of the regular file called name directly inside
// dir, matching the name exactly.
func (w *Walker) FindFile(dir, name string) (string, bool, error) {
	names, err := w.fileNames(dir)
	if err != nil {
		return "", false, err
	}
	for _, candidate := range names {
		if candidate == name {
			return filepath.Join(dir, candidate), true, nil
		}
	}
	return "", false, nil
}

func (w *Walker) skip(path string, err error) bool {
	if !w.opts.Lenient {
		return false
	}
	w.skipped = append(w.skipped, Skipped{Path: path, Err: err})
	logging.WarnWithContext(w.logger, "skipping unreadable folder", "walk_skip",
		logging.String("path", path),
		logging.Error(err),
		logging.String(logging.FieldErrorHint, "check folder permissions"),
		logging.String(logging.FieldImpact, "folder contents left out of the result"))
	return true
}

func (w *Walker) dirNames(dir string) ([]string, error) {
	return w.list(dir, func(info fs.FileMode) bool { return info.IsDir() })
}

func (w *Walker) fileNames(dir string) ([]string, error) {
	return w.list(dir, func(info fs.FileMode) bool { return info.IsRegular() })
}

// list reads dir in listing order and keeps entries whose resolved mode
// satisfies keep. Symlinks are followed; dangling links are ignored.
func (w *Walker) list(dir string, keep func(fs.FileMode) bool) ([]string, error) {
	entries, err := readDirUnsorted(dir)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		mode := entry.Type()
		if mode&fs.ModeSymlink != 0 {
			info, err := os.Stat(filepath.Join(dir, entry.Name()))
			if err != nil {
				w.logger.Debug("ignoring dangling symlink", logging.String("path", filepath.Join(dir, entry.Name())))
				continue
			}
			mode = info.Mode()
		}
		if !keep(mode) {
			w.logger.Debug("ignoring entry", logging.String("path", filepath.Join(dir, entry.Name())))
			continue
		}
		names = append(names, entry.Name())
	}
	if err := textutil.SortNames(names, w.opts.Sort); err != nil {
		return nil, err
	}
	return names, nil
}

// readDirUnsorted returns entries in the order the filesystem yields them;
// os.ReadDir would sort by name.
func readDirUnsorted(dir string) ([]fs.DirEntry, error) {
	f, err := os.Open(dir)
	if err != nil {
		return nil, fmt.Errorf("read directory %q: %w", dir, err)
	}
	defer f.Close()
	entries, err := f.ReadDir(-1)
	if err != nil {
		return nil, fmt.Errorf("read directory %q: %w", dir, err)
	}
	return entries, nil
}

func checkRoot(root string) error {
	info, err := os.Stat(root)
	if err != nil {
		return fmt.Errorf("open library root: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("open library root %q: %w", root, ErrNotDirectory)
	}
	return nil
}
