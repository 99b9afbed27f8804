package catalog

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// LegacyDetails is the nested block of the legacy per-movie metadata schema.
type LegacyDetails struct {
	IMDBID       *string  `json:"imdbid"`
	PosterPath   string   `json:"poster_path"`
	BackdropPath *string  `json:"backdrop_path"`
	Tagline      string   `json:"tagline"`
	Genres       []string `json:"genres"`
}

// LegacyMovieRecord is the older per-movie metadata schema stored as
// metadata-file.json inside each movie folder.
type LegacyMovieRecord struct {
	Title   string        `json:"title"`
	Year    string        `json:"year"`
	Quality string        `json:"quality"`
	TMDBID  string        `json:"tmdbid"`
	Details LegacyDetails `json:"details"`
	Cast    []CastMember  `json:"cast"`
}

// Migrate flattens a legacy record into the unified schema. The folder name is
// left unset because metadata alone does not know it.
func Migrate(legacy LegacyMovieRecord) MovieRecord {
	record := MovieRecord{
		Title:        Str(legacy.Title),
		Year:         Str(legacy.Year),
		Quality:      Str(legacy.Quality),
		TMDBID:       Str(legacy.TMDBID),
		IMDBID:       legacy.Details.IMDBID,
		PosterPath:   Str(legacy.Details.PosterPath),
		BackdropPath: legacy.Details.BackdropPath,
		Tagline:      Str(legacy.Details.Tagline),
		Genres:       legacy.Details.Genres,
		Cast:         legacy.Cast,
	}
	record.normalize()
	return record
}

// legacyWire mirrors LegacyMovieRecord with pointers so absent required
// fields can be told apart from empty strings.
type legacyWire struct {
	Title   *string `json:"title"`
	Year    *string `json:"year"`
	Quality *string `json:"quality"`
	TMDBID  *string `json:"tmdbid"`
	Details *struct {
		IMDBID       *string   `json:"imdbid"`
		PosterPath   *string   `json:"poster_path"`
		BackdropPath *string   `json:"backdrop_path"`
		Tagline      *string   `json:"tagline"`
		Genres       *[]string `json:"genres"`
	} `json:"details"`
	Cast *[]*castWire `json:"cast"`
}

type castWire struct {
	ID          *uint64 `json:"id"`
	Name        *string `json:"name"`
	CastID      *uint64 `json:"cast_id"`
	CreditID    *string `json:"credit_id"`
	Character   *string `json:"character"`
	ProfilePath *string `json:"profile_path"`
}

// castMembers checks every cast entry for its required fields. Only
// profile_path may be absent or null.
func castMembers(wire []*castWire) ([]CastMember, error) {
	cast := make([]CastMember, 0, len(wire))
	for i, c := range wire {
		field := func(name string) error {
			return fmt.Errorf("%w: cast[%d]%s", ErrMissingField, i, name)
		}
		switch {
		case c == nil:
			return nil, field("")
		case c.ID == nil:
			return nil, field(".id")
		case c.Name == nil:
			return nil, field(".name")
		case c.CastID == nil:
			return nil, field(".cast_id")
		case c.CreditID == nil:
			return nil, field(".credit_id")
		case c.Character == nil:
			return nil, field(".character")
		}
		cast = append(cast, CastMember{
			ID:          *c.ID,
			Name:        *c.Name,
			CastID:      *c.CastID,
			CreditID:    *c.CreditID,
			Character:   *c.Character,
			ProfilePath: c.ProfilePath,
		})
	}
	return cast, nil
}

// ParseLegacy decodes one legacy metadata document. Unknown fields are
// ignored; missing required fields and type mismatches are errors.
func ParseLegacy(r io.Reader) (LegacyMovieRecord, error) {
	var wire legacyWire
	dec := json.NewDecoder(r)
	if err := dec.Decode(&wire); err != nil {
		return LegacyMovieRecord{}, err
	}
	if err := expectEOF(dec); err != nil {
		return LegacyMovieRecord{}, err
	}

	missing := func(field string) error {
		return fmt.Errorf("%w: %s", ErrMissingField, field)
	}
	switch {
	case wire.Title == nil:
		return LegacyMovieRecord{}, missing("title")
	case wire.Year == nil:
		return LegacyMovieRecord{}, missing("year")
	case wire.Quality == nil:
		return LegacyMovieRecord{}, missing("quality")
	case wire.TMDBID == nil:
		return LegacyMovieRecord{}, missing("tmdbid")
	case wire.Details == nil:
		return LegacyMovieRecord{}, missing("details")
	case wire.Details.PosterPath == nil:
		return LegacyMovieRecord{}, missing("details.poster_path")
	case wire.Details.Tagline == nil:
		return LegacyMovieRecord{}, missing("details.tagline")
	case wire.Details.Genres == nil:
		return LegacyMovieRecord{}, missing("details.genres")
	case wire.Cast == nil:
		return LegacyMovieRecord{}, missing("cast")
	}
	cast, err := castMembers(*wire.Cast)
	if err != nil {
		return LegacyMovieRecord{}, err
	}

	return LegacyMovieRecord{
		Title:   *wire.Title,
		Year:    *wire.Year,
		Quality: *wire.Quality,
		TMDBID:  *wire.TMDBID,
		Details: LegacyDetails{
			IMDBID:       wire.Details.IMDBID,
			PosterPath:   *wire.Details.PosterPath,
			BackdropPath: wire.Details.BackdropPath,
			Tagline:      *wire.Details.Tagline,
			Genres:       *wire.Details.Genres,
		},
		Cast: cast,
	}, nil
}

// ReadLegacyFile parses the legacy metadata file at path. Failures are
// reported as *MetadataError.
func ReadLegacyFile(path string) (LegacyMovieRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return LegacyMovieRecord{}, &MetadataError{Path: path, Err: err}
	}
	defer f.Close()

	legacy, err := ParseLegacy(f)
	if err != nil {
		return LegacyMovieRecord{}, &MetadataError{Path: path, Err: err}
	}
	return legacy, nil
}

func expectEOF(dec *json.Decoder) error {
	if _, err := dec.Token(); err != io.EOF {
		if err == nil {
			return fmt.Errorf("unexpected data after JSON value")
		}
		return err
	}
	return nil
}
