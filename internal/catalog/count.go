package catalog

import (
	"fmt"

	"movieshelf/internal/config"
	"movieshelf/internal/walker"
)

// Count returns the number of movie folders under root for the given layout.
func Count(w *walker.Walker, root string, layout config.Layout) (int, error) {
	switch layout {
	case config.LayoutFlat:
		movies, err := w.Movies(root)
		if err != nil {
			return 0, err
		}
		return len(movies), nil
	case config.LayoutOrganized, "":
		pairs, err := w.Pairs(root)
		if err != nil {
			return 0, err
		}
		return len(pairs), nil
	default:
		return 0, fmt.Errorf("unsupported layout %q", layout)
	}
}
