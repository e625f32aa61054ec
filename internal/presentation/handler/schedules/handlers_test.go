package schedules

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meetzone/meetzone/internal/domain"
	"github.com/meetzone/meetzone/internal/infrastructure/repository"
)

// stubDirectory serves a fixed two-country table without touching the network.
type stubDirectory struct{}

func (stubDirectory) ListCountries(ctx context.Context) []domain.Country {
	return []domain.Country{
		{Name: "France", Code: "FR", TimezoneLabel: "Europe/Paris", UTCOffsetHours: 2, Capital: "Paris"},
		{Name: "Japan", Code: "JP", TimezoneLabel: "Asia/Tokyo", UTCOffsetHours: 9, Capital: "Tokyo"},
	}
}

func (d stubDirectory) Search(ctx context.Context, query string) []domain.Country {
	return d.ListCountries(ctx)
}

func (d stubDirectory) FindByCode(ctx context.Context, code string) (domain.Country, error) {
	for _, c := range d.ListCountries(ctx) {
		if c.Code == code {
			return c, nil
		}
	}
	return domain.Country{}, domain.ErrCountryNotFound
}

func newTestRouter(t *testing.T) (*chi.Mux, domain.ScheduleRepository) {
	t.Helper()

	repo := repository.NewScheduleRepository(10, time.Hour)
	h := NewHandler(repo, stubDirectory{})

	r := chi.NewRouter()
	r.Post("/api/schedules", h.CreateScheduleHandler)
	r.Get("/api/schedules/{scheduleId}", h.GetScheduleHandler)
	r.Put("/api/schedules/{scheduleId}/draft", h.UpdateDraftHandler)
	r.Post("/api/schedules/{scheduleId}/participants", h.AddParticipantHandler)
	r.Delete("/api/schedules/{scheduleId}/participants/{participantId}", h.RemoveParticipantHandler)
	r.Post("/api/schedules/{scheduleId}/submit", h.SubmitHandler)

	return r, repo
}

func doJSON(t *testing.T, router http.Handler, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func createSession(t *testing.T, router http.Handler) (scheduleID, creatorToken string) {
	t.Helper()

	rec := doJSON(t, router, http.MethodPost, "/api/schedules", map[string]any{"utcOffsetMinutes": 0}, nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp struct {
		ScheduleID   string `json:"scheduleId"`
		CreatorToken string `json:"creatorToken"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.ScheduleID)
	require.NotEmpty(t, resp.CreatorToken)
	return resp.ScheduleID, resp.CreatorToken
}

func creatorHeaders(token string) map[string]string {
	return map[string]string{"X-Creator-Token": token}
}

func TestCreateScheduleSetsCookie(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/schedules", map[string]any{"utcOffsetMinutes": 120}, nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	cookies := rec.Result().Cookies()
	require.NotEmpty(t, cookies, "a fresh caller gets a creator token cookie")
	assert.Equal(t, "creator_token", cookies[0].Name)
}

func TestCreateScheduleRejectsAbsurdOffset(t *testing.T) {
	router, _ := newTestRouter(t)

	for _, offset := range []int{-13 * 60, 15 * 60} {
		rec := doJSON(t, router, http.MethodPost, "/api/schedules", map[string]any{"utcOffsetMinutes": offset}, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code, "offset %d", offset)
	}
}

func TestGetScheduleNotFound(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/api/schedules/does-not-exist", nil, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateDraftRequiresCreator(t *testing.T) {
	router, _ := newTestRouter(t)
	id, _ := createSession(t, router)

	draft := map[string]any{"title": "Sync", "date": "2024-06-01", "time": "09:00"}

	rec := doJSON(t, router, http.MethodPut, "/api/schedules/"+id+"/draft", draft, creatorHeaders("wrong-token"))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = doJSON(t, router, http.MethodPut, "/api/schedules/"+id+"/draft", draft, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code, "no token at all is still not the creator")
}

func TestAddParticipantMandatoryFields(t *testing.T) {
	router, _ := newTestRouter(t)
	id, _ := createSession(t, router)

	tests := []struct {
		name string
		body map[string]any
	}{
		{"missing name", map[string]any{"email": "a@b.com", "countryCode": "JP"}},
		{"missing email", map[string]any{"name": "Alice", "countryCode": "JP"}},
		{"missing country", map[string]any{"name": "Alice", "email": "a@b.com"}},
		{"unknown country", map[string]any{"name": "Alice", "email": "a@b.com", "countryCode": "ZZ"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doJSON(t, router, http.MethodPost, "/api/schedules/"+id+"/participants", tt.body, nil)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}

	// The roster stayed empty through all rejections.
	rec := doJSON(t, router, http.MethodGet, "/api/schedules/"+id, nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var view struct {
		Participants []domain.Participant `json:"participants"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	assert.Empty(t, view.Participants)
}

func TestDraftThenParticipantGetsStamped(t *testing.T) {
	router, _ := newTestRouter(t)
	id, token := createSession(t, router)

	draft := map[string]any{"title": "Sync", "date": "2024-06-01", "time": "09:00"}
	rec := doJSON(t, router, http.MethodPut, "/api/schedules/"+id+"/draft", draft, creatorHeaders(token))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/api/schedules/"+id+"/participants",
		map[string]any{"name": "Alice", "email": "alice@example.com", "countryCode": "JP"}, nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	var p domain.Participant
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &p))
	assert.Equal(t, "01/06/2024 18:00", p.LocalTime)
	assert.Equal(t, "JP", p.Country.Code)
}

func TestRemoveParticipantIdempotent(t *testing.T) {
	router, _ := newTestRouter(t)
	id, _ := createSession(t, router)

	rec := doJSON(t, router, http.MethodPost, "/api/schedules/"+id+"/participants",
		map[string]any{"name": "Alice", "email": "alice@example.com", "countryCode": "FR"}, nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	var p domain.Participant
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &p))

	rec = doJSON(t, router, http.MethodDelete, "/api/schedules/"+id+"/participants/"+p.ID, nil, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	// Removing again, or removing an unknown id, still reports success.
	rec = doJSON(t, router, http.MethodDelete, "/api/schedules/"+id+"/participants/"+p.ID, nil, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestSubmitEmptyRosterRejected(t *testing.T) {
	router, _ := newTestRouter(t)
	id, token := createSession(t, router)

	draft := map[string]any{"title": "Sync", "date": "2024-06-01", "time": "09:00"}
	rec := doJSON(t, router, http.MethodPut, "/api/schedules/"+id+"/draft", draft, creatorHeaders(token))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/api/schedules/"+id+"/submit", nil, creatorHeaders(token))
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	// The rejection left the draft in place.
	rec = doJSON(t, router, http.MethodGet, "/api/schedules/"+id, nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var view struct {
		Draft domain.Draft `json:"draft"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	assert.Equal(t, "Sync", view.Draft.Title)
}

func TestSubmitFullFlow(t *testing.T) {
	router, _ := newTestRouter(t)
	id, token := createSession(t, router)

	draft := map[string]any{"title": "Quarterly review", "date": "2024-06-01", "time": "09:00"}
	rec := doJSON(t, router, http.MethodPut, "/api/schedules/"+id+"/draft", draft, creatorHeaders(token))
	require.Equal(t, http.StatusOK, rec.Code)

	for _, p := range []map[string]any{
		{"name": "Alice", "email": "alice@example.com", "countryCode": "JP"},
		{"name": "Bob", "email": "bob@example.com", "countryCode": "FR"},
	} {
		rec = doJSON(t, router, http.MethodPost, "/api/schedules/"+id+"/participants", p, nil)
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	rec = doJSON(t, router, http.MethodPost, "/api/schedules/"+id+"/submit", nil, creatorHeaders(token))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Title        string               `json:"title"`
		Notified     int                  `json:"notified"`
		Participants []domain.Participant `json:"participants"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Quarterly review", resp.Title)
	assert.Equal(t, 2, resp.Notified)
	require.Len(t, resp.Participants, 2)
	assert.Equal(t, "01/06/2024 18:00", resp.Participants[0].LocalTime)
	assert.Equal(t, "01/06/2024 11:00", resp.Participants[1].LocalTime)

	// Submission reset the session for the next appointment.
	rec = doJSON(t, router, http.MethodGet, "/api/schedules/"+id, nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var view struct {
		Draft        domain.Draft         `json:"draft"`
		Participants []domain.Participant `json:"participants"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	assert.Equal(t, domain.Draft{}, view.Draft)
	assert.Empty(t, view.Participants)
}

func TestConcurrentAddParticipants(t *testing.T) {
	router, _ := newTestRouter(t)
	id, token := createSession(t, router)

	draft := map[string]any{"title": "Sync", "date": "2024-06-01", "time": "09:00"}
	rec := doJSON(t, router, http.MethodPut, "/api/schedules/"+id+"/draft", draft, creatorHeaders(token))
	require.Equal(t, http.StatusOK, rec.Code)

	const requests = 50
	start := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(requests)

	for i := 0; i < requests; i++ {
		go func() {
			defer wg.Done()
			<-start
			rec := doJSON(t, router, http.MethodPost, "/api/schedules/"+id+"/participants",
				map[string]any{"name": "Alice", "email": "alice@example.com", "countryCode": "JP"}, nil)
			assert.Equal(t, http.StatusCreated, rec.Code)
		}()
	}

	close(start)
	wg.Wait()

	// Each add increased the roster by exactly one.
	rec = doJSON(t, router, http.MethodGet, "/api/schedules/"+id, nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var view struct {
		Participants []domain.Participant `json:"participants"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	assert.Len(t, view.Participants, requests)
}

func TestSubmitRequiresCreator(t *testing.T) {
	router, _ := newTestRouter(t)
	id, _ := createSession(t, router)

	rec := doJSON(t, router, http.MethodPost, "/api/schedules/"+id+"/submit", nil, creatorHeaders("intruder"))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
