package directory

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meetzone/meetzone/internal/infrastructure/configs"
	"github.com/meetzone/meetzone/internal/infrastructure/logging"
)

func testLogger() logging.Logger {
	return logging.NewLogger(&logging.LoggerConfig{
		Logger:   "zerolog",
		Level:    "error",
		Encoding: "json",
	})
}

func newTestService(t *testing.T, countriesHandler http.HandlerFunc) *Service {
	t.Helper()

	srv := httptest.NewServer(countriesHandler)
	t.Cleanup(srv.Close)

	return NewService(configs.DirectoryConfig{
		CountriesURL: srv.URL,
		WorldTimeURL: srv.URL,
		FetchTimeout: 2 * time.Second,
	}, testLogger(), nil)
}

const remotePayload = `[
	{"name":{"common":"Japan"},"cca2":"JP","timezones":["Asia/Tokyo"],"capital":["Tokyo"]},
	{"name":{"common":"France"},"cca2":"FR","timezones":["Europe/Paris"],"capital":["Paris"]},
	{"name":{"common":"Éire"},"cca2":"IE","timezones":["Europe/Dublin"],"capital":["Dublin"]},
	{"name":{"common":"Nauru"},"cca2":"NR","timezones":[],"capital":[]},
	{"name":{"common":""},"cca2":"XX","timezones":["UTC"],"capital":[]}
]`

func TestListCountriesMapsAndSorts(t *testing.T) {
	s := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(remotePayload))
	})

	countries := s.ListCountries(context.Background())

	// The nameless record is dropped; the rest sorted by name.
	require.Len(t, countries, 4)
	assert.Equal(t, "Éire", countries[0].Name)
	assert.Equal(t, "France", countries[1].Name)
	assert.Equal(t, "Japan", countries[2].Name)
	assert.Equal(t, "Nauru", countries[3].Name)

	japan := countries[2]
	assert.Equal(t, "JP", japan.Code)
	assert.Equal(t, "Asia/Tokyo", japan.TimezoneLabel)
	assert.Equal(t, 9, japan.UTCOffsetHours)
	assert.Equal(t, "Tokyo", japan.Capital)

	// Missing timezone and capital fall back to UTC and the country name.
	nauru := countries[3]
	assert.Equal(t, "UTC", nauru.TimezoneLabel)
	assert.Equal(t, 0, nauru.UTCOffsetHours)
	assert.Equal(t, "Nauru", nauru.Capital)

	// A label outside the offset table resolves to 0.
	assert.Equal(t, 0, countries[0].UTCOffsetHours)
}

func TestListCountriesFallsBack(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"server error", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}},
		{"malformed payload", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"not":"an array"}`))
		}},
		{"empty payload", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`[]`))
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestService(t, tt.handler)

			countries := s.ListCountries(context.Background())

			require.Len(t, countries, 12)
			for _, c := range countries {
				assert.True(t, c.Valid(), "fallback entry %q must satisfy directory invariants", c.Name)
				assert.NotZero(t, c.UTCOffsetHours)
			}
			assert.Equal(t, "United Kingdom", countries[0].Name)
			assert.Equal(t, "New Zealand", countries[11].Name)
		})
	}
}

func TestListCountriesFallsBackWhenUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close() // connection refused from here on

	s := NewService(configs.DirectoryConfig{
		CountriesURL: srv.URL,
		WorldTimeURL: srv.URL,
		FetchTimeout: time.Second,
	}, testLogger(), nil)

	countries := s.ListCountries(context.Background())
	require.Len(t, countries, 12)
}

func TestSearchCapsResults(t *testing.T) {
	payload := `[`
	for i := 0; i < 15; i++ {
		if i > 0 {
			payload += ","
		}
		payload += `{"name":{"common":"Country ` + string(rune('A'+i)) + `"},"cca2":"` + string(rune('A'+i)) + `A","timezones":["UTC"],"capital":["X"]}`
	}
	payload += `]`

	s := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(payload))
	})

	results := s.Search(context.Background(), "country")
	assert.Len(t, results, 10)
}

func TestSearchFailureYieldsEmpty(t *testing.T) {
	s := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	results := s.Search(context.Background(), "atlantis")
	assert.NotNil(t, results)
	assert.Empty(t, results, "a failed search is an empty result, not the fallback table")
}

func TestSearchEmptyQuery(t *testing.T) {
	s := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("empty query must not hit the remote source")
	})

	assert.Empty(t, s.Search(context.Background(), ""))
}

func TestFindByCode(t *testing.T) {
	s := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(remotePayload))
	})

	c, err := s.FindByCode(context.Background(), "jp")
	require.NoError(t, err)
	assert.Equal(t, "Japan", c.Name)

	c, err = s.FindByCode(context.Background(), " FR ")
	require.NoError(t, err)
	assert.Equal(t, "France", c.Name)

	_, err = s.FindByCode(context.Background(), "ZZ")
	assert.Error(t, err)

	_, err = s.FindByCode(context.Background(), "JPN")
	assert.Error(t, err)
}

func TestParseUTCOffset(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"+09:00", 9},
		{"-05:00", -5},
		{"+00:00", 0},
		{"+12:45", 12},
		{"", 0},
		{"09:00", 0},
		{"+xx:00", 0},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, parseUTCOffset(tt.in), "parseUTCOffset(%q)", tt.in)
	}
}

func TestCurrentTimeFallsBackToComputed(t *testing.T) {
	s := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	data := s.CurrentTime(context.Background(), "Asia/Tokyo")

	assert.Equal(t, "Asia/Tokyo", data.TimezoneLabel)
	assert.Equal(t, "Asia", data.Region)
	assert.Equal(t, "Tokyo", data.City)
	assert.Equal(t, 9, data.UTCOffsetHours)
	assert.NotEmpty(t, data.CurrentTime)
}

func TestCurrentTimeUsesRemoteReading(t *testing.T) {
	s := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"timezone":"Asia/Tokyo","datetime":"2024-06-01T18:00:00+09:00","utc_offset":"+09:00"}`))
	})

	data := s.CurrentTime(context.Background(), "Asia/Tokyo")

	assert.Equal(t, "Asia/Tokyo", data.TimezoneLabel)
	assert.Equal(t, 9, data.UTCOffsetHours)
	assert.Equal(t, "2024-06-01T18:00:00+09:00", data.CurrentTime)
}
