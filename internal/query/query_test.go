package query

import (
	"bytes"
	"context"
	"testing"

	"movieshelf/internal/catalog"
)

func fixture() []catalog.MovieRecord {
	return []catalog.MovieRecord{
		{Title: catalog.Str("A"), Year: catalog.Str("2010")},
		{Title: catalog.Str("B"), Year: catalog.Str("2011")},
		{Title: catalog.Str("C")},
		{FolderName: catalog.Str("Untitled (2010)"), Year: catalog.Str("2010")},
		{Title: catalog.Str("D"), Year: catalog.Str("2010")},
	}
}

func TestFindByYearExactMatchInOrder(t *testing.T) {
	got := FindByYear(fixture(), "2010")
	if len(got) != 3 {
		t.Fatalf("expected 3 matches, got %d", len(got))
	}
	if *got[0].Title != "A" || got[1].Title != nil || *got[2].Title != "D" {
		t.Fatalf("unexpected order %+v", got)
	}
	if len(FindByYear(fixture(), "10")) != 0 {
		t.Fatal("year must match exactly")
	}
	if len(FindByYear(fixture(), " 2010")) != 0 {
		t.Fatal("year must not be trimmed or coerced")
	}
}

func TestFindByTitle(t *testing.T) {
	records := []catalog.MovieRecord{
		{Title: catalog.Str("A"), Year: catalog.Str("1999")},
		{Title: catalog.Str("B"), Year: catalog.Str("2001")},
	}
	got := FindByTitle(records, "B")
	if len(got) != 1 || *got[0].Year != "2001" {
		t.Fatalf("unexpected matches %+v", got)
	}
	if len(FindByTitle(records, "b")) != 0 {
		t.Fatal("title match must be case-sensitive")
	}
}

func TestPrintTitlesUsesPlaceholder(t *testing.T) {
	var buf bytes.Buffer
	if err := PrintTitles(&buf, FindByYear(fixture(), "2010")); err != nil {
		t.Fatalf("PrintTitles: %v", err)
	}
	if got, want := buf.String(), "A\nunknown\nD\n"; got != want {
		t.Fatalf("output = %q, want %q", got, want)
	}
}

func TestPrintTitleYears(t *testing.T) {
	records := []catalog.MovieRecord{
		{Title: catalog.Str("A"), Year: catalog.Str("1999")},
		{Title: catalog.Str("B"), Year: catalog.Str("2001")},
	}
	var buf bytes.Buffer
	if err := PrintTitleYears(&buf, FindByTitle(records, "B")); err != nil {
		t.Fatalf("PrintTitleYears: %v", err)
	}
	if got, want := buf.String(), "title: B\nyear: 2001\n"; got != want {
		t.Fatalf("output = %q, want %q", got, want)
	}

	buf.Reset()
	if err := PrintTitleYears(&buf, FindByTitle(fixture(), "C")); err != nil {
		t.Fatalf("PrintTitleYears: %v", err)
	}
	if got, want := buf.String(), "title: C\nyear: unknown\n"; got != want {
		t.Fatalf("output = %q, want %q", got, want)
	}
}

func TestCatalogFinder(t *testing.T) {
	var finder Finder = Catalog{Records: fixture()}
	got, err := finder.FindByTitle(context.Background(), "A")
	if err != nil || len(got) != 1 {
		t.Fatalf("FindByTitle = %v, %v", got, err)
	}
	got, err = finder.FindByYear(context.Background(), "1900")
	if err != nil || len(got) != 0 {
		t.Fatalf("FindByYear = %v, %v", got, err)
	}
}
