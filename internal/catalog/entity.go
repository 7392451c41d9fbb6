// AngelaMos | 2026
// entity.go

package catalog

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// StringList stores a tag set (seasons, climates) as a JSONB array.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		l = StringList{}
	}
	return json.Marshal(l)
}

func (l *StringList) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*l = nil
		return nil
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return fmt.Errorf("scan StringList: unsupported type %T", src)
	}
}

type Perfume struct {
	ID            string     `db:"id"`
	Name          string     `db:"name"`
	Brand         string     `db:"brand"`
	Gender        string     `db:"gender"`
	PriceTier     string     `db:"price_tier"`
	ApproxPrice   *float64   `db:"approx_price"`
	ReleaseYear   *int       `db:"release_year"`
	Concentration *string    `db:"concentration"`
	Intensity     string     `db:"intensity"`
	Seasons       StringList `db:"seasons"`
	Climates      StringList `db:"climates"`
	ExternalID    *string    `db:"external_id"`
	CreatedAt     time.Time  `db:"created_at"`
	UpdatedAt     time.Time  `db:"updated_at"`
}

type Note struct {
	ID        string    `db:"id"`
	Name      string    `db:"name"`
	Family    string    `db:"family"`
	CreatedAt time.Time `db:"created_at"`
}

// PerfumeNote links one perfume to one note at a pyramid level. The pair is
// the primary key, so a perfume carries a note at most once.
type PerfumeNote struct {
	PerfumeID string `db:"perfume_id"`
	NoteID    string `db:"note_id"`
	Level     string `db:"level"`
}

// NoteWithLevel is a note joined with its level on a specific perfume.
type NoteWithLevel struct {
	ID     string `db:"id"     json:"id"`
	Name   string `db:"name"   json:"name"`
	Family string `db:"family" json:"family"`
	Level  string `db:"level"  json:"level"`
}

const (
	LevelTop   = "top"
	LevelHeart = "heart"
	LevelBase  = "base"
)
