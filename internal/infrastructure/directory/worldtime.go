package directory

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/meetzone/meetzone/internal/infrastructure/logging"
	"github.com/meetzone/meetzone/internal/timezone"
)

// TimeZoneData is the live reading for one timezone label.
type TimeZoneData struct {
	TimezoneLabel  string `json:"timezoneLabel"`
	Region         string `json:"region"`
	City           string `json:"city"`
	UTCOffsetHours int    `json:"utcOffsetHours"`
	CurrentTime    string `json:"currentTime"`
}

type rawWorldTime struct {
	Timezone  string `json:"timezone"`
	Datetime  string `json:"datetime"`
	UTCOffset string `json:"utc_offset"`
}

// CurrentTime asks the world-time source for the live reading of a label.
// The source is opportunistic: on any failure the reading is computed from
// the fixed offset table instead, so the call never fails.
func (s *Service) CurrentTime(ctx context.Context, label string) TimeZoneData {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.worldTimeURL+"/timezone/"+label, nil)
	if err != nil {
		return s.computedTime(label)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		s.logger.Warn(logging.Directory, logging.ExternalService, "world time lookup failed", map[logging.ExtraKey]any{
			logging.ErrorMessage: err.Error(),
			"label":              label,
		})
		return s.computedTime(label)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return s.computedTime(label)
	}

	var raw rawWorldTime
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return s.computedTime(label)
	}

	return TimeZoneData{
		TimezoneLabel:  raw.Timezone,
		Region:         timezone.RegionFromLabel(label),
		City:           timezone.CityFromLabel(label),
		UTCOffsetHours: parseUTCOffset(raw.UTCOffset),
		CurrentTime:    raw.Datetime,
	}
}

func (s *Service) computedTime(label string) TimeZoneData {
	offset := timezone.ResolveOffset(label)
	return TimeZoneData{
		TimezoneLabel:  label,
		Region:         timezone.RegionFromLabel(label),
		City:           timezone.CityFromLabel(label),
		UTCOffsetHours: offset,
		CurrentTime:    timezone.ClockAt(time.Now(), offset),
	}
}

// parseUTCOffset reads offsets of the "+09:00" form; anything else is 0.
func parseUTCOffset(v string) int {
	if len(v) < 3 {
		return 0
	}

	sign := 1
	switch v[0] {
	case '+':
	case '-':
		sign = -1
	default:
		return 0
	}

	hours, _, _ := strings.Cut(v[1:], ":")
	n, err := strconv.Atoi(hours)
	if err != nil {
		return 0
	}
	return sign * n
}
