package timezone

import "time"

const (
	// DisplayLayout is the single display format for stamped meeting times.
	DisplayLayout = "02/01/2006 15:04"

	// ClockLayout is the wall-clock format used by the world clock feed.
	ClockLayout = "15:04:05"

	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

// LocalTimeFor converts an appointment instant to the wall-clock display
// string at a fixed UTC offset. The instant carries the creator's own zone,
// so the computation reads no ambient clock state: normalize to UTC, shift
// by the target offset, format.
func LocalTimeFor(instant time.Time, utcOffsetHours int) string {
	shifted := instant.UTC().Add(time.Duration(utcOffsetHours) * time.Hour)
	return shifted.Format(DisplayLayout)
}

// ClockAt returns the current wall-clock reading at a fixed UTC offset.
func ClockAt(now time.Time, utcOffsetHours int) string {
	return now.UTC().Add(time.Duration(utcOffsetHours) * time.Hour).Format(ClockLayout)
}

// ParseInstant combines a draft's date and time fields into a single instant
// expressed in the creator's zone. While either field is still empty the
// draft is incomplete and no instant exists; that is not an error.
func ParseInstant(date, clock string, loc *time.Location) (time.Time, bool) {
	if date == "" || clock == "" {
		return time.Time{}, false
	}
	t, err := time.ParseInLocation(dateLayout+" "+timeLayout, date+" "+clock, loc)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// CreatorZone builds the fixed zone a schedule interprets naive draft
// instants in. Offset is minutes east of UTC.
func CreatorZone(offsetMinutes int) *time.Location {
	if offsetMinutes == 0 {
		return time.UTC
	}
	return time.FixedZone("creator", offsetMinutes*60)
}
