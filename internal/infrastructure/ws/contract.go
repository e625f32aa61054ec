package ws

import (
	"time"

	"github.com/meetzone/meetzone/internal/domain"
	"github.com/meetzone/meetzone/internal/timezone"
)

type FeedMessage struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

// ClockEntry is the live projection of one directory country: its fixed
// offset plus the wall clock currently showing there.
type ClockEntry struct {
	Country        string `json:"country"`
	Code           string `json:"code"`
	City           string `json:"city"`
	TimezoneLabel  string `json:"timezoneLabel"`
	UTCOffsetHours int    `json:"utcOffsetHours"`
	CurrentTime    string `json:"currentTime"`
}

type ClockPayload struct {
	At      string       `json:"at"`
	Entries []ClockEntry `json:"entries"`
}

type ErrorPayload struct {
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
}

// SnapshotEntries projects a directory snapshot to clock entries at a given
// moment. The snapshot is read-only; entries are recomputed on every tick.
func SnapshotEntries(countries []domain.Country, now time.Time) []ClockEntry {
	entries := make([]ClockEntry, 0, len(countries))
	for _, c := range countries {
		entries = append(entries, ClockEntry{
			Country:        c.Name,
			Code:           c.Code,
			City:           c.Capital,
			TimezoneLabel:  c.TimezoneLabel,
			UTCOffsetHours: c.UTCOffsetHours,
			CurrentTime:    timezone.ClockAt(now, c.UTCOffsetHours),
		})
	}
	return entries
}

func NewClockTick(entries []ClockEntry, now time.Time) *FeedMessage {
	return &FeedMessage{
		Type: ClockTick,
		Data: ClockPayload{
			At:      now.UTC().Format(time.RFC3339),
			Entries: entries,
		},
	}
}

func NewClockSnapshot(entries []ClockEntry, now time.Time) *FeedMessage {
	return &FeedMessage{
		Type: ClockSnapshot,
		Data: ClockPayload{
			At:      now.UTC().Format(time.RFC3339),
			Entries: entries,
		},
	}
}

func NewError(message string) *FeedMessage {
	return &FeedMessage{
		Type: ErrorEvent,
		Data: ErrorPayload{
			Message: message,
		},
	}
}
