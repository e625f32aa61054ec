package worldclock

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/meetzone/meetzone/internal/infrastructure/json"
	"github.com/meetzone/meetzone/internal/infrastructure/logging"
	"github.com/meetzone/meetzone/internal/infrastructure/ws"
	"github.com/meetzone/meetzone/internal/timezone"
)

type Handler struct {
	directory Directory
	core      *ws.Core
	logger    logging.Logger
}

func NewHandler(directory Directory, core *ws.Core, logger logging.Logger) *Handler {
	return &Handler{
		directory: directory,
		core:      core,
		logger:    logger,
	}
}

// SnapshotHandler godoc
// @Summary      World clock snapshot
// @Description  Returns one clock entry per directory country, computed at request time
// @Tags         worldclock
// @Produce      json
// @Success      200 {object} clockResponse
// @Router       /worldclock [get]
func (h *Handler) SnapshotHandler(w http.ResponseWriter, r *http.Request) {
	now := time.Now()
	entries := ws.SnapshotEntries(h.directory.ListCountries(r.Context()), now)

	json.Write(w, http.StatusOK, clockResponse{
		At:      now.UTC().Format(time.RFC3339),
		Entries: entries,
	})
}

// ZoneHandler godoc
// @Summary      Current time for one timezone label
// @Description  Live reading from the world-time source, falling back to the fixed offset table
// @Tags         worldclock
// @Produce      json
// @Param        region path string true "Timezone region, e.g. Asia"
// @Param        city path string true "Timezone city, e.g. Tokyo"
// @Success      200 {object} directory.TimeZoneData
// @Failure      404 {object} map[string]interface{} "Unknown label"
// @Router       /worldclock/{region}/{city} [get]
func (h *Handler) ZoneHandler(w http.ResponseWriter, r *http.Request) {
	label := chi.URLParam(r, "region") + "/" + chi.URLParam(r, "city")

	known := false
	for _, l := range timezone.KnownLabels() {
		if l == label {
			known = true
			break
		}
	}
	if !known {
		json.WriteError(w, http.StatusNotFound, errors.New("unknown timezone label"), "Timezone label not found")
		return
	}

	json.Write(w, http.StatusOK, h.directory.CurrentTime(r.Context(), label))
}

// LiveHandler godoc
// @Summary      Live world clock feed
// @Description  Upgrades to a websocket; the first frame is a full snapshot, then one tick per interval
// @Tags         worldclock
// @Success      101 "Switching protocols"
// @Router       /worldclock/live [get]
func (h *Handler) LiveHandler(w http.ResponseWriter, r *http.Request) {
	conn, err := h.core.Upgrade(w, r)
	if err != nil {
		h.logger.Warn(logging.WorldClock, logging.Broadcast, "websocket upgrade failed", map[logging.ExtraKey]any{
			logging.ErrorMessage: err.Error(),
		})
		return
	}

	client := ws.NewClient(conn, uuid.NewString())
	h.core.Register() <- client

	go client.WriteMessage()
	go client.ReadMessage(h.core)
}
