package countries

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/meetzone/meetzone/internal/domain"
	"github.com/meetzone/meetzone/internal/infrastructure/json"
)

type Handler struct {
	directory domain.CountryDirectory
}

func NewHandler(directory domain.CountryDirectory) *Handler {
	return &Handler{directory: directory}
}

// ListCountriesHandler godoc
// @Summary      List countries
// @Description  Returns the directory snapshot sorted by name; falls back to the embedded table when the remote source is unreachable
// @Tags         countries
// @Produce      json
// @Success      200 {object} countriesResponse
// @Router       /countries [get]
func (h *Handler) ListCountriesHandler(w http.ResponseWriter, r *http.Request) {
	countries := h.directory.ListCountries(r.Context())

	json.Write(w, http.StatusOK, countriesResponse{
		Countries: countries,
		Count:     len(countries),
	})
}

// SearchCountriesHandler godoc
// @Summary      Search countries by name
// @Description  Returns up to ten matches; an empty result is a valid answer
// @Tags         countries
// @Produce      json
// @Param        q query string true "Name fragment"
// @Success      200 {object} countriesResponse
// @Failure      400 {object} map[string]interface{} "Missing query"
// @Router       /countries/search [get]
func (h *Handler) SearchCountriesHandler(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		json.WriteValidationError(w, errors.New("q query parameter is required"))
		return
	}

	countries := h.directory.Search(r.Context(), query)

	json.Write(w, http.StatusOK, countriesResponse{
		Countries: countries,
		Count:     len(countries),
	})
}

// GetCountryHandler godoc
// @Summary      Get a country by code
// @Tags         countries
// @Produce      json
// @Param        code path string true "ISO 3166-1 alpha-2 code"
// @Success      200 {object} domain.Country
// @Failure      404 {object} map[string]interface{} "Country not found"
// @Router       /countries/{code} [get]
func (h *Handler) GetCountryHandler(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	country, err := h.directory.FindByCode(r.Context(), code)
	if err != nil {
		json.WriteError(w, http.StatusNotFound, err, "Country not found")
		return
	}

	json.Write(w, http.StatusOK, country)
}
