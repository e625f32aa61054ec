package directory

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/meetzone/meetzone/internal/domain"
	"github.com/meetzone/meetzone/internal/infrastructure/configs"
	"github.com/meetzone/meetzone/internal/infrastructure/logging"
	"github.com/meetzone/meetzone/internal/timezone"
)

const (
	allCountriesFields = "name,cca2,timezones,capital"
	maxSearchResults   = 10
)

// Service resolves country metadata from a restcountries-style source and
// degrades to the embedded fallback table on any failure. There is no retry
// and no cache: each call may re-fetch, and a failed fetch falls back
// immediately.
type Service struct {
	client       *http.Client
	countriesURL string
	worldTimeURL string
	logger       logging.Logger
	fallbacks    prometheus.Counter
	collator     *collate.Collator
}

// rawCountry mirrors the subset of the remote payload we consume.
type rawCountry struct {
	Name struct {
		Common string `json:"common"`
	} `json:"name"`
	Code      string   `json:"cca2"`
	Timezones []string `json:"timezones"`
	Capital   []string `json:"capital"`
}

func NewService(cfg configs.DirectoryConfig, logger logging.Logger, fallbacks prometheus.Counter) *Service {
	return &Service{
		client: &http.Client{
			Timeout:   cfg.FetchTimeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		countriesURL: strings.TrimRight(cfg.CountriesURL, "/"),
		worldTimeURL: strings.TrimRight(cfg.WorldTimeURL, "/"),
		logger:       logger,
		fallbacks:    fallbacks,
		collator:     collate.New(language.English, collate.IgnoreCase),
	}
}

// ListCountries returns the full directory snapshot, sorted by name. It
// never fails: a fetch or decode error yields the fallback table, which is
// served in its fixed order.
func (s *Service) ListCountries(ctx context.Context) []domain.Country {
	raws, err := s.fetchCountries(ctx, s.countriesURL+"/all?fields="+allCountriesFields)
	if err != nil {
		s.fallback(err)
		return fallbackCountries()
	}

	countries := s.mapCountries(raws)
	if len(countries) == 0 {
		s.fallback(fmt.Errorf("remote source returned no usable countries"))
		return fallbackCountries()
	}

	sort.SliceStable(countries, func(i, j int) bool {
		return s.collator.CompareString(countries[i].Name, countries[j].Name) < 0
	})

	return countries
}

// Search queries countries by name. Failures produce an empty result, not
// the fallback table; an empty result is a valid answer to a search.
func (s *Service) Search(ctx context.Context, query string) []domain.Country {
	if query == "" {
		return []domain.Country{}
	}

	raws, err := s.fetchCountries(ctx, s.countriesURL+"/name/"+url.PathEscape(query))
	if err != nil {
		s.logger.Warn(logging.Directory, logging.ExternalService, "country search failed", map[logging.ExtraKey]any{
			logging.ErrorMessage: err.Error(),
			"query":              query,
		})
		return []domain.Country{}
	}

	countries := s.mapCountries(raws)
	if len(countries) > maxSearchResults {
		countries = countries[:maxSearchResults]
	}
	return countries
}

// FindByCode resolves a single country by its two-letter code from the
// current directory snapshot.
func (s *Service) FindByCode(ctx context.Context, code string) (domain.Country, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if len(code) != 2 {
		return domain.Country{}, domain.ErrInvalidInput
	}

	for _, c := range s.ListCountries(ctx) {
		if c.Code == code {
			return c, nil
		}
	}
	return domain.Country{}, domain.ErrCountryNotFound
}

func (s *Service) fetchCountries(ctx context.Context, endpoint string) ([]rawCountry, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d from %s", resp.StatusCode, endpoint)
	}

	var raws []rawCountry
	if err := json.NewDecoder(resp.Body).Decode(&raws); err != nil {
		return nil, fmt.Errorf("malformed country payload: %w", err)
	}
	return raws, nil
}

// mapCountries derives directory entries from raw records: first timezone
// label (or UTC), offset via the fixed resolver table, first capital (or
// the country name). Records that break directory invariants are dropped.
func (s *Service) mapCountries(raws []rawCountry) []domain.Country {
	countries := make([]domain.Country, 0, len(raws))

	for _, raw := range raws {
		label := "UTC"
		if len(raw.Timezones) > 0 && raw.Timezones[0] != "" {
			label = raw.Timezones[0]
		}

		capital := raw.Name.Common
		if len(raw.Capital) > 0 && raw.Capital[0] != "" {
			capital = raw.Capital[0]
		}

		c := domain.Country{
			Name:           raw.Name.Common,
			Code:           raw.Code,
			TimezoneLabel:  label,
			UTCOffsetHours: timezone.ResolveOffset(label),
			Capital:        capital,
		}
		if c.Valid() {
			countries = append(countries, c)
		}
	}

	return countries
}

func (s *Service) fallback(err error) {
	if s.fallbacks != nil {
		s.fallbacks.Inc()
	}
	s.logger.Warn(logging.Directory, logging.Fallback, "serving embedded country table", map[logging.ExtraKey]any{
		logging.ErrorMessage: err.Error(),
	})
}
