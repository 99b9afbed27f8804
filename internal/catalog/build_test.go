package catalog

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"movieshelf/internal/config"
	"movieshelf/internal/testsupport"
	"movieshelf/internal/textutil"
	"movieshelf/internal/walker"
)

func newTestBuilder(lenient bool) *Builder {
	w := walker.New(walker.Options{Sort: textutil.OrderLexical, Lenient: lenient})
	return NewBuilder(w, WithLenient(lenient))
}

func legacyDoc(title, year string) map[string]any {
	return map[string]any{
		"title":   title,
		"year":    year,
		"quality": "1080p",
		"tmdbid":  "1",
		"details": map[string]any{
			"poster_path": "/" + title + ".jpg",
			"tagline":     "tagline",
			"genres":      []string{"Drama"},
		},
		"cast": []any{},
	}
}

func TestBuildFlatOneRecordPerFolder(t *testing.T) {
	root := t.TempDir()
	testsupport.Tree(t, root, "Alien (1979)/alien.mkv", "Heat (1995)/", "readme.txt")

	records, err := newTestBuilder(false).BuildFlat(context.Background(), root)
	if err != nil {
		t.Fatalf("BuildFlat: %v", err)
	}
	want := []MovieRecord{
		{FolderName: Str("Alien (1979)")},
		{FolderName: Str("Heat (1995)")},
	}
	if len(records) != len(want) {
		t.Fatalf("expected %d records, got %d", len(want), len(records))
	}
	for i := range want {
		want[i].normalize()
		if !Equal(records[i], want[i]) {
			t.Fatalf("record %d = %+v, want %+v", i, records[i], want[i])
		}
	}
}

func TestBuildOrganizedPairsYearAndFolder(t *testing.T) {
	root := t.TempDir()
	testsupport.Tree(t, root,
		"1999/The Matrix (1999)/",
		"1999/Fight Club (1999)/",
		"2010/Inception (2010)/",
		"2011/",
	)

	records, err := newTestBuilder(false).BuildOrganized(context.Background(), root)
	if err != nil {
		t.Fatalf("BuildOrganized: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}
	wantPairs := [][2]string{
		{"Fight Club (1999)", "1999"},
		{"The Matrix (1999)", "1999"},
		{"Inception (2010)", "2010"},
	}
	for i, pair := range wantPairs {
		if *records[i].FolderName != pair[0] || *records[i].Year != pair[1] {
			t.Fatalf("record %d = (%s, %s), want %v", i, *records[i].FolderName, *records[i].Year, pair)
		}
		if records[i].Title != nil {
			t.Fatalf("record %d should have no title", i)
		}
	}
}

func TestBuildMissingRootFails(t *testing.T) {
	_, err := newTestBuilder(false).BuildOrganized(context.Background(), filepath.Join(t.TempDir(), "missing"))
	if err == nil {
		t.Fatal("expected error")
	}
}

func TestCollectSkipsFoldersWithoutMetadata(t *testing.T) {
	root := t.TempDir()
	testsupport.WriteJSON(t, filepath.Join(root, "2010", "Inception", DefaultMetadataFile), legacyDoc("Inception", "2010"))
	testsupport.WriteJSON(t, filepath.Join(root, "1999", "Matrix", DefaultMetadataFile), legacyDoc("Matrix", "1999"))
	testsupport.Tree(t, root, "1999/Fight Club/fightclub.mkv")

	records, report, err := newTestBuilder(false).Collect(context.Background(), root)
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records (one fewer than folders), got %d", len(records))
	}
	if report.Folders != 3 || report.Collected != 2 {
		t.Fatalf("unexpected report %+v", report)
	}
	if len(report.Missing) != 1 || report.Missing[0] != filepath.Join(root, "1999", "Fight Club") {
		t.Fatalf("unexpected missing list %v", report.Missing)
	}
	if *records[0].Title != "Matrix" || *records[1].Title != "Inception" {
		t.Fatalf("unexpected order: %s, %s", *records[0].Title, *records[1].Title)
	}
	for _, r := range records {
		if r.FolderName != nil {
			t.Fatalf("collected records must not carry a folder name: %+v", r)
		}
	}
}

func TestCollectStrictAbortsOnMalformedFile(t *testing.T) {
	root := t.TempDir()
	testsupport.WriteJSON(t, filepath.Join(root, "2010", "Inception", DefaultMetadataFile), legacyDoc("Inception", "2010"))
	bad := filepath.Join(root, "2011", "Drive", DefaultMetadataFile)
	testsupport.WriteText(t, bad, `{"title": "Drive"}`)

	_, _, err := newTestBuilder(false).Collect(context.Background(), root)
	var metaErr *MetadataError
	if !errors.As(err, &metaErr) {
		t.Fatalf("expected MetadataError, got %v", err)
	}
	if metaErr.Path != bad {
		t.Fatalf("unexpected path %q", metaErr.Path)
	}
	if !errors.Is(err, ErrMissingField) {
		t.Fatalf("expected missing field cause, got %v", err)
	}
}

func TestCollectLenientSkipsMalformedFile(t *testing.T) {
	root := t.TempDir()
	testsupport.WriteJSON(t, filepath.Join(root, "2010", "Inception", DefaultMetadataFile), legacyDoc("Inception", "2010"))
	testsupport.WriteText(t, filepath.Join(root, "2011", "Drive", DefaultMetadataFile), `{"title": 7}`)

	records, report, err := newTestBuilder(true).Collect(context.Background(), root)
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	if len(records) != 1 || *records[0].Title != "Inception" {
		t.Fatalf("unexpected records %+v", records)
	}
	if len(report.Invalid) != 1 {
		t.Fatalf("expected one invalid file, got %+v", report.Invalid)
	}
}

func TestCollectCustomMetadataFileName(t *testing.T) {
	root := t.TempDir()
	testsupport.WriteJSON(t, filepath.Join(root, "2010", "Inception", "movie.json"), legacyDoc("Inception", "2010"))

	w := walker.New(walker.Options{})
	records, _, err := NewBuilder(w, WithMetadataFile("movie.json")).Collect(context.Background(), root)
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
}

func TestCollectHonoursCancellation(t *testing.T) {
	root := t.TempDir()
	testsupport.WriteJSON(t, filepath.Join(root, "2010", "Inception", DefaultMetadataFile), legacyDoc("Inception", "2010"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, _, err := newTestBuilder(false).Collect(ctx, root); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestCountByLayout(t *testing.T) {
	organized := t.TempDir()
	testsupport.Tree(t, organized, "1999/A/", "1999/B/", "2000/C/")
	flat := t.TempDir()
	testsupport.Tree(t, flat, "A/", "B/")

	w := walker.New(walker.Options{})
	if n, err := Count(w, organized, config.LayoutOrganized); err != nil || n != 3 {
		t.Fatalf("Count organized = %d, %v", n, err)
	}
	if n, err := Count(w, flat, config.LayoutFlat); err != nil || n != 2 {
		t.Fatalf("Count flat = %d, %v", n, err)
	}
	if _, err := Count(w, flat, "nested"); err == nil {
		t.Fatal("expected error for unknown layout")
	}
}
