package timezone

import "strings"

// utcOffsets maps known timezone labels to their fixed UTC offset in hours.
// The model is deliberately fixed-offset: no DST, no historical rules.
// Labels not present resolve to 0.
var utcOffsets = map[string]int{
	"Europe/London":    1,
	"Europe/Paris":     2,
	"Europe/Berlin":    2,
	"Africa/Cairo":     3,
	"Europe/Moscow":    4,
	"Asia/Dubai":       5,
	"Asia/Karachi":     6,
	"Asia/Bangkok":     7,
	"Asia/Shanghai":    8,
	"Asia/Tokyo":       9,
	"Australia/Sydney": 10,
	"Pacific/Auckland": 12,
}

// ResolveOffset returns the fixed UTC offset in hours for a timezone label.
// Lookup is exact-match; any unknown, empty or malformed label yields 0.
func ResolveOffset(label string) int {
	return utcOffsets[label]
}

// KnownLabels returns every label present in the offset table.
func KnownLabels() []string {
	labels := make([]string, 0, len(utcOffsets))
	for label := range utcOffsets {
		labels = append(labels, label)
	}
	return labels
}

// RegionFromLabel extracts the region part of a "Region/City" label.
func RegionFromLabel(label string) string {
	parts := strings.Split(label, "/")
	return strings.ReplaceAll(parts[0], "_", " ")
}

// CityFromLabel extracts the city part of a "Region/City" label.
func CityFromLabel(label string) string {
	parts := strings.Split(label, "/")
	return strings.ReplaceAll(parts[len(parts)-1], "_", " ")
}
