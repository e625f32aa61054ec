package domain

import (
	"context"
	"errors"

	"github.com/meetzone/meetzone/internal/infrastructure/validate"
)

const (
	// MinUTCOffsetHours and MaxUTCOffsetHours bound real-world fixed offsets.
	MinUTCOffsetHours = -12
	MaxUTCOffsetHours = 14
)

var (
	ErrScheduleNotFound      = errors.New("schedule not found")
	ErrScheduleAlreadyExists = errors.New("schedule already exists")
	ErrCountryNotFound       = errors.New("country not found")
	ErrEmptyRoster           = errors.New("roster is empty")
	ErrNotCreator            = errors.New("not the schedule creator")
	ErrInvalidInput          = errors.New("invalid input")
)

// Country is one entry of a directory snapshot. Directories are shared
// read-only between the roster and the world clock feed; nothing mutates a
// Country once it leaves the directory.
type Country struct {
	Name           string `json:"name"`
	Code           string `json:"code"`
	TimezoneLabel  string `json:"timezoneLabel"`
	UTCOffsetHours int    `json:"utcOffsetHours"`
	Capital        string `json:"capital"`
}

// validateCode enforces the ISO 3166-1 alpha-2 shape.
var validateCode = validate.Compose(validate.Length(2), validate.Uppercase())

// Valid reports whether the record honors the directory invariants: a
// non-empty name, a two-letter uppercase code and an offset inside
// [-12, +14].
func (c Country) Valid() bool {
	if c.Name == "" || validateCode(c.Code) != nil {
		return false
	}
	return c.UTCOffsetHours >= MinUTCOffsetHours && c.UTCOffsetHours <= MaxUTCOffsetHours
}

// CountryDirectory lists countries and resolves them by code. ListCountries
// never fails: implementations fall back to an embedded table when the
// remote source is unreachable.
type CountryDirectory interface {
	ListCountries(ctx context.Context) []Country
	Search(ctx context.Context, query string) []Country
	FindByCode(ctx context.Context, code string) (Country, error)
}
