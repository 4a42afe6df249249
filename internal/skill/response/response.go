package response

import (
	"time"

	"timeskill/internal/skill/geolocation"
)

// Response is the orchestration result for one request/response cycle. It
// is owned by the caller for that cycle only.
type Response struct {
	// DateTime is the computed target date-time. It stays nil when the
	// future-time entry finds no parseable offset; the caller falls back
	// to the current-time protocol in that case.
	DateTime *time.Time

	// DialogKey selects the phrasing template. Always set when the build
	// succeeded and DateTime is present.
	DialogKey string

	// DialogData maps template placeholders to values.
	DialogData map[string]string

	// RequestedLocation echoes the raw extracted location text. It is
	// recorded before resolution is attempted so that not-found dialogs
	// can name what the user asked for.
	RequestedLocation string

	// Geolocation is present only when a location was resolved; DateTime
	// then reflects that location's local time.
	Geolocation *geolocation.Geolocation
}
