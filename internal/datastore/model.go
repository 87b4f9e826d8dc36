// model.go this code defines the data model for the application
package datastore

import "time"

// Event represents a single imported event, keyed by the remote API's
// stable identifier. The external ID is immutable once set; every later
// import with the same ID mutates this row in place.
type Event struct {
	ID               uint   `gorm:"primaryKey"`
	ExternalID       string `gorm:"uniqueIndex:idx_events_external_id;not null"`
	Title            string
	Description      string `gorm:"type:text"`
	Price            float64
	TicketsRemaining int
	OrganizerName    string
	StartTime        string // local time formatted as 2006-01-02T15:04:05, empty if unknown
	EndTime          string // same format as StartTime, empty if unknown
	MediaID          *uint  `gorm:"index"` // optional reference to the primary image Media
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Media represents the wrapper entity around a stored image file. Other
// entities reference Media by ID rather than pointing at the file directly,
// and at most one Media exists per underlying file path.
type Media struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string
	Alt       string
	FilePath  string `gorm:"uniqueIndex:idx_media_file_path;not null"`
	CreatedAt time.Time
}
