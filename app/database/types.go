package database

import (
	"time"
)

// SavedPage represents one bookmarked URL. Rows are written once when a save
// request completes and are never updated or deleted by the application.
type SavedPage struct {
	ID                int64
	Title             string
	URL               string
	SavedAt           time.Time
	ExtractionPayload []byte // raw JSON from the pipeline, nil when extraction never ran
	ExternalRunID     string // unique; "local-" prefixed when the pipeline returned no run id
}
