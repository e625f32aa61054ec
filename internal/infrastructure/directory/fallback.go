package directory

import "github.com/meetzone/meetzone/internal/domain"

// fallbackCountries is the embedded directory served whenever the remote
// metadata source is unreachable or returns garbage. Twelve representative
// countries, one per offset column of the dashboard, in fixed order.
func fallbackCountries() []domain.Country {
	return []domain.Country{
		{Name: "United Kingdom", Code: "GB", TimezoneLabel: "Europe/London", UTCOffsetHours: 1, Capital: "London"},
		{Name: "France", Code: "FR", TimezoneLabel: "Europe/Paris", UTCOffsetHours: 2, Capital: "Paris"},
		{Name: "Germany", Code: "DE", TimezoneLabel: "Europe/Berlin", UTCOffsetHours: 2, Capital: "Berlin"},
		{Name: "Egypt", Code: "EG", TimezoneLabel: "Africa/Cairo", UTCOffsetHours: 3, Capital: "Cairo"},
		{Name: "Russia", Code: "RU", TimezoneLabel: "Europe/Moscow", UTCOffsetHours: 4, Capital: "Moscow"},
		{Name: "United Arab Emirates", Code: "AE", TimezoneLabel: "Asia/Dubai", UTCOffsetHours: 5, Capital: "Dubai"},
		{Name: "Pakistan", Code: "PK", TimezoneLabel: "Asia/Karachi", UTCOffsetHours: 6, Capital: "Karachi"},
		{Name: "Thailand", Code: "TH", TimezoneLabel: "Asia/Bangkok", UTCOffsetHours: 7, Capital: "Bangkok"},
		{Name: "China", Code: "CN", TimezoneLabel: "Asia/Shanghai", UTCOffsetHours: 8, Capital: "Beijing"},
		{Name: "Japan", Code: "JP", TimezoneLabel: "Asia/Tokyo", UTCOffsetHours: 9, Capital: "Tokyo"},
		{Name: "Australia", Code: "AU", TimezoneLabel: "Australia/Sydney", UTCOffsetHours: 10, Capital: "Sydney"},
		{Name: "New Zealand", Code: "NZ", TimezoneLabel: "Pacific/Auckland", UTCOffsetHours: 12, Capital: "Auckland"},
	}
}
