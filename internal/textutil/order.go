package textutil

import (
	"fmt"
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Sort modes understood by SortNames.
const (
	OrderNone     = "none"
	OrderLexical  = "lexical"
	OrderCollated = "collated"
)

// SortNames orders names in place. OrderNone leaves listing order alone.
// OrderCollated uses the root Unicode collation, so "Amélie" sorts next to "Amelie".
func SortNames(names []string, mode string) error {
	switch mode {
	case "", OrderNone:
		return nil
	case OrderLexical:
		sort.Strings(names)
		return nil
	case OrderCollated:
		collate.New(language.Und, collate.Loose).SortStrings(names)
		return nil
	default:
		return fmt.Errorf("unsupported sort mode %q", mode)
	}
}
