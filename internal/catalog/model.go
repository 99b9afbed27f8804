package catalog

import (
	"cmp"
	"slices"
)

// CastMember is one credited performer as reported by the metadata provider.
type CastMember struct {
	ID          uint64  `json:"id"`
	Name        string  `json:"name"`
	CastID      uint64  `json:"cast_id"`
	CreditID    string  `json:"credit_id"`
	Character   string  `json:"character"`
	ProfilePath *string `json:"profile_path"`
}

// MovieRecord is the unified catalog entry. Scalar fields are optional because
// a record may come from a folder name alone or from full metadata.
type MovieRecord struct {
	FolderName   *string      `json:"foldername"`
	Title        *string      `json:"title"`
	Year         *string      `json:"year"`
	Quality      *string      `json:"quality"`
	TMDBID       *string      `json:"tmdbid"`
	IMDBID       *string      `json:"imdbid"`
	PosterPath   *string      `json:"poster_path"`
	BackdropPath *string      `json:"backdrop_path"`
	Tagline      *string      `json:"tagline"`
	Genres       []string     `json:"genres"`
	Cast         []CastMember `json:"cast"`
}

// Str returns a pointer to s, for populating optional fields.
func Str(s string) *string {
	return &s
}

// normalize replaces nil slices with empty ones so records serialize as []
// rather than null and compare equal after a round trip.
func (m *MovieRecord) normalize() {
	if m.Genres == nil {
		m.Genres = []string{}
	}
	if m.Cast == nil {
		m.Cast = []CastMember{}
	}
}

func compareOptional(a, b *string) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	default:
		return cmp.Compare(*a, *b)
	}
}

// CompareCast orders cast members field by field in declaration order.
func CompareCast(a, b CastMember) int {
	if c := cmp.Compare(a.ID, b.ID); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Name, b.Name); c != 0 {
		return c
	}
	if c := cmp.Compare(a.CastID, b.CastID); c != 0 {
		return c
	}
	if c := cmp.Compare(a.CreditID, b.CreditID); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Character, b.Character); c != 0 {
		return c
	}
	return compareOptional(a.ProfilePath, b.ProfilePath)
}

// Compare is a total order over every field of MovieRecord, in declaration
// order. Absent values sort before present ones; slices compare element-wise.
func Compare(a, b MovieRecord) int {
	for _, pair := range [][2]*string{
		{a.FolderName, b.FolderName},
		{a.Title, b.Title},
		{a.Year, b.Year},
		{a.Quality, b.Quality},
		{a.TMDBID, b.TMDBID},
		{a.IMDBID, b.IMDBID},
		{a.PosterPath, b.PosterPath},
		{a.BackdropPath, b.BackdropPath},
		{a.Tagline, b.Tagline},
	} {
		if c := compareOptional(pair[0], pair[1]); c != 0 {
			return c
		}
	}
	if c := slices.Compare(a.Genres, b.Genres); c != 0 {
		return c
	}
	return slices.CompareFunc(a.Cast, b.Cast, CompareCast)
}

// Equal reports whether two records hold the same values.
func Equal(a, b MovieRecord) bool {
	return Compare(a, b) == 0
}
