package domain

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/meetzone/meetzone/internal/timezone"
)

// Draft accumulates the appointment form state. Date ("2006-01-02") and
// Time ("15:04") stay plain strings until both are present; only then does
// the draft carry an instant.
type Draft struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Date        string `json:"date"`
	Time        string `json:"time"`
}

// Schedule is a single scheduling session: one appointment draft plus the
// roster attached to it. The repository hands out live pointers and chi
// serves requests concurrently, so the aggregate guards its own state; all
// draft and roster access goes through the methods below.
type Schedule struct {
	ID               string
	CreatorToken     string
	UTCOffsetMinutes int
	CreatedAt        time.Time

	mu           sync.RWMutex
	draft        Draft
	participants []Participant
}

// ScheduleRepository stores live scheduling sessions. Implementations are
// in-memory only; nothing outlives the process.
type ScheduleRepository interface {
	Create(ctx context.Context, schedule *Schedule) error
	GetByID(ctx context.Context, id string) (*Schedule, error)
	Update(ctx context.Context, schedule *Schedule) error
	Delete(ctx context.Context, id string) error
}

// SubmitResult reports an accepted submission: how many participants were
// notified and their final stamped roster entries.
type SubmitResult struct {
	Title        string
	Notified     int
	Participants []Participant
}

// NewSchedule opens a session. creatorToken identifies the owner for later
// draft edits and submission; utcOffsetMinutes is the creator's reference
// offset, made explicit here so instant computation never reads the host
// clock's zone.
func NewSchedule(creatorToken string, utcOffsetMinutes int) *Schedule {
	return &Schedule{
		ID:               uuid.NewString(),
		CreatorToken:     creatorToken,
		UTCOffsetMinutes: utcOffsetMinutes,
		participants:     make([]Participant, 0, 8),
		CreatedAt:        time.Now().UTC(),
	}
}

// IsCreator reports whether token matches the session owner.
func (s *Schedule) IsCreator(token string) bool {
	return token != "" && token == s.CreatorToken
}

// Snapshot returns the current draft and a copy of the roster, consistent
// with each other. Callers render from the copy; concurrent mutation never
// tears a read.
func (s *Schedule) Snapshot() (Draft, []Participant) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	roster := make([]Participant, len(s.participants))
	copy(roster, s.participants)
	return s.draft, roster
}

// Instant combines the draft date and time into the appointment instant,
// interpreted in the creator's zone. ok is false while the draft is
// incomplete.
func (s *Schedule) Instant() (time.Time, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.instant()
}

// instant is Instant without the lock, for use under a held mutex.
func (s *Schedule) instant() (time.Time, bool) {
	return timezone.ParseInstant(s.draft.Date, s.draft.Time, timezone.CreatorZone(s.UTCOffsetMinutes))
}

// AddParticipant appends a new roster entry. All three fields are mandatory;
// on any rejection the roster is left untouched. When the draft instant is
// already known the new entry is stamped immediately.
func (s *Schedule) AddParticipant(name, email string, country Country) (*Participant, error) {
	p, err := NewParticipant(name, email, country)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if instant, ok := s.instant(); ok {
		p.LocalTime = timezone.LocalTimeFor(instant, country.UTCOffsetHours)
	}

	s.participants = append(s.participants, *p)
	return p, nil
}

// RemoveParticipant drops the entry with the given id. Removing an unknown
// id is a no-op; the returned bool says whether anything changed.
func (s *Schedule) RemoveParticipant(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, p := range s.participants {
		if p.ID == id {
			s.participants = append(s.participants[:i], s.participants[i+1:]...)
			return true
		}
	}
	return false
}

// SetDraft replaces the draft fields and restamps the roster so displayed
// local times never go stale relative to the draft.
func (s *Schedule) SetDraft(d Draft) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.draft = d
	s.restamp()
}

// RestampAll recomputes every participant's local meeting time against the
// current draft instant.
func (s *Schedule) RestampAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.restamp()
}

// restamp is the locked core of RestampAll. Identity and order are
// preserved. With an incomplete draft existing stamps are kept as they are:
// a stamped entry never reverts to unstamped.
func (s *Schedule) restamp() {
	instant, ok := s.instant()
	if !ok {
		return
	}
	for i := range s.participants {
		s.participants[i].LocalTime = timezone.LocalTimeFor(instant, s.participants[i].Country.UTCOffsetHours)
	}
}

// Submit consumes the draft. An empty roster is rejected and leaves both
// draft and roster untouched so the caller can surface the rejection and
// retry. On acceptance every participant is stamped against the final
// instant, the notified count is reported, and draft and roster reset to
// empty for the next appointment.
func (s *Schedule) Submit() (*SubmitResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.participants) == 0 {
		return nil, ErrEmptyRoster
	}

	s.restamp()

	result := &SubmitResult{
		Title:        s.draft.Title,
		Notified:     len(s.participants),
		Participants: s.participants,
	}

	s.draft = Draft{}
	s.participants = make([]Participant, 0, 8)

	return result, nil
}
