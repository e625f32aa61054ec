package schedules

import (
	"time"

	"github.com/meetzone/meetzone/internal/domain"
)

// createScheduleRequest opens a scheduling session
type createScheduleRequest struct {
	UTCOffsetMinutes int `json:"utcOffsetMinutes" example:"120"` // Creator's reference offset, minutes east of UTC
}

// createScheduleResponse carries the new session and its owner token
type createScheduleResponse struct {
	ScheduleID       string    `json:"scheduleId" example:"550e8400-e29b-41d4-a716-446655440000"`
	CreatorToken     string    `json:"creatorToken" example:"9b2d7c3a-5f1e-4b8a-9c6d-1e2f3a4b5c6d"`
	UTCOffsetMinutes int       `json:"utcOffsetMinutes" example:"120"`
	CreatedAt        time.Time `json:"createdAt"`
}

// draftRequest replaces the appointment draft fields
type draftRequest struct {
	Title       string `json:"title" example:"International team sync" maxLength:"200"`
	Description string `json:"description" example:"Agenda, dial-in links..." maxLength:"2000"`
	Date        string `json:"date" example:"2024-06-01"` // Calendar date, 2006-01-02
	Time        string `json:"time" example:"09:00"`      // Wall-clock time, 15:04
}

// addParticipantRequest appends a roster entry; all three fields are mandatory
type addParticipantRequest struct {
	Name        string `json:"name" example:"John Doe"`
	Email       string `json:"email" example:"john@company.com"`
	CountryCode string `json:"countryCode" example:"JP"` // ISO 3166-1 alpha-2
}

// scheduleResponse is the full session view: draft plus stamped roster
type scheduleResponse struct {
	ScheduleID       string               `json:"scheduleId"`
	UTCOffsetMinutes int                  `json:"utcOffsetMinutes"`
	Draft            domain.Draft         `json:"draft"`
	Participants     []domain.Participant `json:"participants"`
	CreatedAt        time.Time            `json:"createdAt"`
}

// submitResponse reports an accepted submission
type submitResponse struct {
	Title        string               `json:"title"`
	Notified     int                  `json:"notified" example:"3"` // Participants whose invitations were sent
	Participants []domain.Participant `json:"participants"`
}

func newScheduleResponse(s *domain.Schedule) scheduleResponse {
	draft, roster := s.Snapshot()
	return scheduleResponse{
		ScheduleID:       s.ID,
		UTCOffsetMinutes: s.UTCOffsetMinutes,
		Draft:            draft,
		Participants:     roster,
		CreatedAt:        s.CreatedAt,
	}
}
