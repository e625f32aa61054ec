package schedules

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/meetzone/meetzone/internal/domain"
	"github.com/meetzone/meetzone/internal/infrastructure/json"
	"github.com/meetzone/meetzone/internal/presentation/utils"
)

type Handler struct {
	scheduleRepository domain.ScheduleRepository
	directory          domain.CountryDirectory
}

func NewHandler(scheduleRepository domain.ScheduleRepository, directory domain.CountryDirectory) *Handler {
	return &Handler{
		scheduleRepository: scheduleRepository,
		directory:          directory,
	}
}

// CreateScheduleHandler godoc
// @Summary      Open a scheduling session
// @Description  Creates an empty appointment draft with its roster, owned by the caller's creator token
// @Tags         schedules
// @Accept       json
// @Produce      json
// @Param        request body createScheduleRequest true "Session parameters"
// @Success      201 {object} createScheduleResponse "Session created"
// @Failure      400 {object} map[string]interface{} "Bad request"
// @Failure      500 {object} map[string]interface{} "Internal server error"
// @Router       /schedules [post]
func (h *Handler) CreateScheduleHandler(w http.ResponseWriter, r *http.Request) {
	var req createScheduleRequest
	if err := json.Read(r, &req); err != nil {
		json.WriteValidationError(w, err)
		return
	}

	if req.UTCOffsetMinutes < domain.MinUTCOffsetHours*60 || req.UTCOffsetMinutes > domain.MaxUTCOffsetHours*60 {
		json.WriteValidationError(w, errors.New("utcOffsetMinutes out of range"))
		return
	}

	creatorToken := utils.EnsureCreatorToken(w, r)

	schedule := domain.NewSchedule(creatorToken, req.UTCOffsetMinutes)
	if err := h.scheduleRepository.Create(r.Context(), schedule); err != nil {
		json.WriteInternalError(w, err)
		return
	}

	json.Write(w, http.StatusCreated, createScheduleResponse{
		ScheduleID:       schedule.ID,
		CreatorToken:     creatorToken,
		UTCOffsetMinutes: schedule.UTCOffsetMinutes,
		CreatedAt:        schedule.CreatedAt,
	})
}

// GetScheduleHandler godoc
// @Summary      Get a scheduling session
// @Description  Returns the draft and the roster with each participant's computed local meeting time
// @Tags         schedules
// @Produce      json
// @Param        scheduleId path string true "Schedule ID"
// @Success      200 {object} scheduleResponse
// @Failure      404 {object} map[string]interface{} "Schedule not found"
// @Router       /schedules/{scheduleId} [get]
func (h *Handler) GetScheduleHandler(w http.ResponseWriter, r *http.Request) {
	schedule, ok := h.loadSchedule(w, r)
	if !ok {
		return
	}

	json.Write(w, http.StatusOK, newScheduleResponse(schedule))
}

// UpdateDraftHandler godoc
// @Summary      Edit the appointment draft
// @Description  Replaces the draft fields and restamps every participant's local time against the new instant
// @Tags         schedules
// @Accept       json
// @Produce      json
// @Param        scheduleId path string true "Schedule ID"
// @Param        request body draftRequest true "Draft fields"
// @Success      200 {object} scheduleResponse
// @Failure      400 {object} map[string]interface{} "Bad request"
// @Failure      403 {object} map[string]interface{} "Not the session creator"
// @Failure      404 {object} map[string]interface{} "Schedule not found"
// @Router       /schedules/{scheduleId}/draft [put]
func (h *Handler) UpdateDraftHandler(w http.ResponseWriter, r *http.Request) {
	schedule, ok := h.loadSchedule(w, r)
	if !ok {
		return
	}

	if !schedule.IsCreator(utils.GetCreatorToken(r)) {
		json.WriteError(w, http.StatusForbidden, domain.ErrNotCreator, "Only the session creator may edit the draft")
		return
	}

	var req draftRequest
	if err := json.Read(r, &req); err != nil {
		json.WriteValidationError(w, err)
		return
	}

	schedule.SetDraft(domain.Draft{
		Title:       req.Title,
		Description: req.Description,
		Date:        req.Date,
		Time:        req.Time,
	})

	if err := h.scheduleRepository.Update(r.Context(), schedule); err != nil {
		json.WriteInternalError(w, err)
		return
	}

	json.Write(w, http.StatusOK, newScheduleResponse(schedule))
}

// AddParticipantHandler godoc
// @Summary      Add a participant to the roster
// @Description  Name, email and a resolvable country code are all mandatory; on rejection the roster is unchanged
// @Tags         schedules
// @Accept       json
// @Produce      json
// @Param        scheduleId path string true "Schedule ID"
// @Param        request body addParticipantRequest true "Participant fields"
// @Success      201 {object} domain.Participant "Participant added, stamped when an appointment instant exists"
// @Failure      400 {object} map[string]interface{} "Missing field or unknown country code"
// @Failure      404 {object} map[string]interface{} "Schedule not found"
// @Router       /schedules/{scheduleId}/participants [post]
func (h *Handler) AddParticipantHandler(w http.ResponseWriter, r *http.Request) {
	schedule, ok := h.loadSchedule(w, r)
	if !ok {
		return
	}

	var req addParticipantRequest
	if err := json.Read(r, &req); err != nil {
		json.WriteValidationError(w, err)
		return
	}

	if req.CountryCode == "" {
		json.WriteValidationError(w, errors.New("countryCode: this field is required"))
		return
	}

	country, err := h.directory.FindByCode(r.Context(), req.CountryCode)
	if err != nil {
		json.WriteValidationError(w, errors.New("countryCode does not resolve to a known country"))
		return
	}

	participant, err := schedule.AddParticipant(req.Name, req.Email, country)
	if err != nil {
		json.WriteValidationError(w, err)
		return
	}

	if err := h.scheduleRepository.Update(r.Context(), schedule); err != nil {
		json.WriteInternalError(w, err)
		return
	}

	json.Write(w, http.StatusCreated, participant)
}

// RemoveParticipantHandler godoc
// @Summary      Remove a participant
// @Description  Removes the matching roster entry; removing an unknown id is a no-op
// @Tags         schedules
// @Produce      json
// @Param        scheduleId path string true "Schedule ID"
// @Param        participantId path string true "Participant ID"
// @Success      204 "Removed (or already absent)"
// @Failure      404 {object} map[string]interface{} "Schedule not found"
// @Router       /schedules/{scheduleId}/participants/{participantId} [delete]
func (h *Handler) RemoveParticipantHandler(w http.ResponseWriter, r *http.Request) {
	schedule, ok := h.loadSchedule(w, r)
	if !ok {
		return
	}

	participantID := chi.URLParam(r, "participantId")
	if participantID == "" {
		json.WriteValidationError(w, errors.New("participant ID is missing"))
		return
	}

	if schedule.RemoveParticipant(participantID) {
		if err := h.scheduleRepository.Update(r.Context(), schedule); err != nil {
			json.WriteInternalError(w, err)
			return
		}
	}

	w.WriteHeader(http.StatusNoContent)
}

// SubmitHandler godoc
// @Summary      Send the invitations
// @Description  Stamps every participant against the final instant, reports the notified count, then resets draft and roster
// @Tags         schedules
// @Produce      json
// @Param        scheduleId path string true "Schedule ID"
// @Success      200 {object} submitResponse "Appointment scheduled"
// @Failure      403 {object} map[string]interface{} "Not the session creator"
// @Failure      404 {object} map[string]interface{} "Schedule not found"
// @Failure      422 {object} map[string]interface{} "Roster is empty; draft and roster kept"
// @Router       /schedules/{scheduleId}/submit [post]
func (h *Handler) SubmitHandler(w http.ResponseWriter, r *http.Request) {
	schedule, ok := h.loadSchedule(w, r)
	if !ok {
		return
	}

	if !schedule.IsCreator(utils.GetCreatorToken(r)) {
		json.WriteError(w, http.StatusForbidden, domain.ErrNotCreator, "Only the session creator may submit")
		return
	}

	result, err := schedule.Submit()
	if err != nil {
		if errors.Is(err, domain.ErrEmptyRoster) {
			json.WriteRejection(w, err, "Add at least one participant before sending invitations")
			return
		}
		json.WriteInternalError(w, err)
		return
	}

	if err := h.scheduleRepository.Update(r.Context(), schedule); err != nil {
		json.WriteInternalError(w, err)
		return
	}

	json.Write(w, http.StatusOK, submitResponse{
		Title:        result.Title,
		Notified:     result.Notified,
		Participants: result.Participants,
	})
}

func (h *Handler) loadSchedule(w http.ResponseWriter, r *http.Request) (*domain.Schedule, bool) {
	scheduleID := chi.URLParam(r, "scheduleId")
	if scheduleID == "" {
		json.WriteValidationError(w, errors.New("schedule ID is missing"))
		return nil, false
	}

	schedule, err := h.scheduleRepository.GetByID(r.Context(), scheduleID)
	if err != nil {
		if errors.Is(err, domain.ErrScheduleNotFound) {
			json.WriteError(w, http.StatusNotFound, err, "Schedule not found")
		} else {
			json.WriteInternalError(w, err)
		}
		return nil, false
	}
	return schedule, true
}
