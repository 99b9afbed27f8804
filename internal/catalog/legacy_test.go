package catalog

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"movieshelf/internal/testsupport"
)

const legacyInception = `{
  "title": "Inception",
  "year": "2010",
  "quality": "1080p",
  "tmdbid": "27205",
  "details": {
    "imdbid": "tt1375666",
    "poster_path": "/poster.jpg",
    "backdrop_path": "/backdrop.jpg",
    "tagline": "Your mind is the scene of the crime.",
    "genres": ["Action", "Science Fiction"]
  },
  "cast": [
    {"id": 6193, "name": "Leonardo DiCaprio", "cast_id": 1, "credit_id": "52fe4534", "character": "Cobb", "profile_path": "/leo.jpg"},
    {"id": 24045, "name": "Joseph Gordon-Levitt", "cast_id": 3, "credit_id": "52fe4535", "character": "Arthur", "profile_path": null}
  ],
  "source": "ignored"
}`

func TestMigrateIsLossless(t *testing.T) {
	legacy, err := ParseLegacy(strings.NewReader(legacyInception))
	if err != nil {
		t.Fatalf("ParseLegacy: %v", err)
	}

	got := Migrate(legacy)
	want := MovieRecord{
		Title:        Str("Inception"),
		Year:         Str("2010"),
		Quality:      Str("1080p"),
		TMDBID:       Str("27205"),
		IMDBID:       Str("tt1375666"),
		PosterPath:   Str("/poster.jpg"),
		BackdropPath: Str("/backdrop.jpg"),
		Tagline:      Str("Your mind is the scene of the crime."),
		Genres:       []string{"Action", "Science Fiction"},
		Cast: []CastMember{
			{ID: 6193, Name: "Leonardo DiCaprio", CastID: 1, CreditID: "52fe4534", Character: "Cobb", ProfilePath: Str("/leo.jpg")},
			{ID: 24045, Name: "Joseph Gordon-Levitt", CastID: 3, CreditID: "52fe4535", Character: "Arthur"},
		},
	}
	if !Equal(got, want) {
		t.Fatalf("Migrate mismatch:\n got %+v\nwant %+v", got, want)
	}
	if got.FolderName != nil {
		t.Fatalf("folder name must stay unset, got %q", *got.FolderName)
	}
}

func TestMigrateKeepsOptionalAbsent(t *testing.T) {
	legacy := LegacyMovieRecord{
		Title:   "Alien",
		Year:    "1979",
		Quality: "720p",
		TMDBID:  "348",
		Details: LegacyDetails{PosterPath: "/alien.jpg", Tagline: "In space no one can hear you scream.", Genres: []string{}},
	}
	got := Migrate(legacy)
	if got.IMDBID != nil || got.BackdropPath != nil {
		t.Fatalf("optional fields should stay absent: %+v", got)
	}
	if got.Cast == nil || len(got.Cast) != 0 {
		t.Fatalf("expected empty cast slice, got %#v", got.Cast)
	}
	if got.Tagline == nil || *got.Tagline != legacy.Details.Tagline {
		t.Fatalf("tagline not copied: %+v", got.Tagline)
	}
}

func TestParseLegacyErrors(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		missing bool
	}{
		{"missing title", `{"year":"2010","quality":"x","tmdbid":"1","details":{"poster_path":"p","tagline":"t","genres":[]},"cast":[]}`, true},
		{"missing details", `{"title":"A","year":"2010","quality":"x","tmdbid":"1","cast":[]}`, true},
		{"missing poster", `{"title":"A","year":"2010","quality":"x","tmdbid":"1","details":{"tagline":"t","genres":[]},"cast":[]}`, true},
		{"null genres", `{"title":"A","year":"2010","quality":"x","tmdbid":"1","details":{"poster_path":"p","tagline":"t","genres":null},"cast":[]}`, true},
		{"missing cast", `{"title":"A","year":"2010","quality":"x","tmdbid":"1","details":{"poster_path":"p","tagline":"t","genres":[]}}`, true},
		{"null cast member", `{"title":"A","year":"2010","quality":"x","tmdbid":"1","details":{"poster_path":"p","tagline":"t","genres":[]},"cast":[null]}`, true},
		{"empty cast member", `{"title":"A","year":"2010","quality":"x","tmdbid":"1","details":{"poster_path":"p","tagline":"t","genres":[]},"cast":[{}]}`, true},
		{"cast member without character", `{"title":"A","year":"2010","quality":"x","tmdbid":"1","details":{"poster_path":"p","tagline":"t","genres":[]},"cast":[{"id":1,"name":"N","cast_id":2,"credit_id":"c"}]}`, true},
		{"numeric year", `{"title":"A","year":2010,"quality":"x","tmdbid":"1","details":{"poster_path":"p","tagline":"t","genres":[]},"cast":[]}`, false},
		{"truncated", `{"title":"A"`, false},
		{"trailing data", `{"title":"A","year":"2010","quality":"x","tmdbid":"1","details":{"poster_path":"p","tagline":"t","genres":[]},"cast":[]} {}`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseLegacy(strings.NewReader(tt.doc))
			if err == nil {
				t.Fatal("expected error")
			}
			if got := errors.Is(err, ErrMissingField); got != tt.missing {
				t.Fatalf("errors.Is(ErrMissingField) = %v, want %v (err=%v)", got, tt.missing, err)
			}
		})
	}
}

func TestReadLegacyFileWrapsPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "metadata-file.json")
	testsupport.WriteText(t, path, "not json")

	_, err := ReadLegacyFile(path)
	var metaErr *MetadataError
	if !errors.As(err, &metaErr) {
		t.Fatalf("expected MetadataError, got %v", err)
	}
	if metaErr.Path != path {
		t.Fatalf("unexpected path %q", metaErr.Path)
	}
}
