package movie

import (
	"moviecatalog/errs"
	"regexp"
	"strconv"
	"strings"
)

const (
	MaxNameLength = 200
	MinYear       = 1888
	MaxYear       = 2100
)

var (
	ErrNameRequired   = errs.Errorf(errs.EINVALID, "movie: name is required")
	ErrYearRequired   = errs.Errorf(errs.EINVALID, "movie: year is required")
	ErrRatingRequired = errs.Errorf(errs.EINVALID, "movie: rating is required")
	ErrNameTooLong    = errs.Errorf(errs.EINVALID, "movie: name must be at most %d characters", MaxNameLength)
	ErrInvalidYear    = errs.Errorf(errs.EINVALID, "movie: year must be a four digit year between %d and %d", MinYear, MaxYear)
	ErrInvalidRating  = errs.Errorf(errs.EINVALID, "movie: rating must be a number between 0 and 10 with at most one decimal")
	ErrIDRequired     = errs.Errorf(errs.EINVALID, "movie: id is required")
	ErrInvalidID      = errs.Errorf(errs.EINVALID, "movie: malformed id")
	ErrStoreNotReady  = errs.Errorf(errs.EINTERNAL, "movie: store is not ready")
)

var (
	yearPattern   = regexp.MustCompile(`^[0-9]{4}$`)
	ratingPattern = regexp.MustCompile(`^(10(\.0)?|[0-9](\.[0-9])?)$`)
)

// Movie is a catalog entry. Year and Rating are kept as the text the caller
// submitted once they pass validation.
type Movie struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Year   string `json:"year"`
	Rating string `json:"rating"`
}

// DeleteResult reports how many records a delete removed (0 or 1).
type DeleteResult struct {
	DeletedCount int64 `json:"deletedCount"`
}

// Normalize trims surrounding whitespace from every text field.
func (m Movie) Normalize() Movie {
	return Movie{
		ID:     strings.TrimSpace(m.ID),
		Name:   strings.TrimSpace(m.Name),
		Year:   strings.TrimSpace(m.Year),
		Rating: strings.TrimSpace(m.Rating),
	}
}

func (m Movie) Validate() error {
	name := strings.TrimSpace(m.Name)
	year := strings.TrimSpace(m.Year)
	rating := strings.TrimSpace(m.Rating)

	if name == "" {
		return ErrNameRequired
	}

	if year == "" {
		return ErrYearRequired
	}

	if rating == "" {
		return ErrRatingRequired
	}

	if len([]rune(name)) > MaxNameLength {
		return ErrNameTooLong
	}

	if !ValidYear(year) {
		return ErrInvalidYear
	}

	if !ValidRating(rating) {
		return ErrInvalidRating
	}

	return nil
}

func ValidYear(s string) bool {
	s = strings.TrimSpace(s)
	if !yearPattern.MatchString(s) {
		return false
	}
	year, err := strconv.Atoi(s)
	if err != nil {
		return false
	}
	return year >= MinYear && year <= MaxYear
}

func ValidRating(s string) bool {
	return ratingPattern.MatchString(strings.TrimSpace(s))
}
