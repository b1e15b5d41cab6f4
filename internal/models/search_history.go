package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Media types accepted by the search API and stored in history rows.
const (
	MediaTypeImage = "image"
	MediaTypeAudio = "audio"
	MediaTypeVideo = "video"
	MediaTypeAll   = "all"
)

// ValidMediaType reports whether t is a known media type.
func ValidMediaType(t string) bool {
	switch t {
	case MediaTypeImage, MediaTypeAudio, MediaTypeVideo, MediaTypeAll:
		return true
	}
	return false
}

// Filters is the effective upstream filter set persisted with a search,
// stored as JSONB.
type Filters map[string]string

// Value implements driver.Valuer for JSONB columns.
func (f Filters) Value() (driver.Value, error) {
	if f == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(f)
}

// Scan implements sql.Scanner for JSONB columns.
func (f *Filters) Scan(src any) error {
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, f)
	case string:
		return json.Unmarshal([]byte(v), f)
	case nil:
		*f = Filters{}
		return nil
	}
	return errors.New("unsupported type for Filters")
}

// SearchHistoryDB represents a search-history record in the database
type SearchHistoryDB struct {
	ID          uuid.UUID `json:"id" db:"id"`                     // Primary key
	UserID      uuid.UUID `json:"user_id" db:"user_id"`           // Owning user
	Query       string    `json:"query" db:"query"`               // Free-text query
	Filters     Filters   `json:"filters" db:"filters"`           // Effective upstream filters
	MediaType   string    `json:"media_type" db:"media_type"`     // image | audio | video | all
	ResultCount int       `json:"result_count" db:"result_count"` // Result count reported upstream
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}
