package worldclock

import (
	"context"

	"github.com/meetzone/meetzone/internal/domain"
	"github.com/meetzone/meetzone/internal/infrastructure/directory"
	"github.com/meetzone/meetzone/internal/infrastructure/ws"
)

// Directory is the slice of the directory service the world clock needs.
type Directory interface {
	ListCountries(ctx context.Context) []domain.Country
	CurrentTime(ctx context.Context, label string) directory.TimeZoneData
}

// clockResponse is the one-shot snapshot of every directory clock
type clockResponse struct {
	At      string          `json:"at" example:"2024-06-01T09:00:00Z"`
	Entries []ws.ClockEntry `json:"entries"`
}
