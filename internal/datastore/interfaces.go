// interfaces.go: this code defines the interface for the database operations
package datastore

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/Dresse/eksponent-test/internal/conf"
	"github.com/Dresse/eksponent-test/internal/errors"
)

// Sentinel errors for lookups that found nothing.
var (
	ErrEventNotFound = errors.Newf("event not found").Component("datastore").Category(errors.CategoryNotFound).Build()
	ErrMediaNotFound = errors.Newf("media not found").Component("datastore").Category(errors.CategoryNotFound).Build()
)

// Interface abstracts the underlying database implementation and defines the
// storage operations needed by the importer.
type Interface interface {
	Open() error
	Close() error
	EventByExternalID(externalID string) (*Event, error)
	SaveEvent(event *Event) error
	GetAllEvents() ([]Event, error)
	CountEvents() (int64, error)
	MediaByFilePath(filePath string) (*Media, error)
	SaveMedia(media *Media) error
	CountMedia() (int64, error)
}

// DataStore implements Interface using a GORM database.
type DataStore struct {
	DB *gorm.DB // GORM database instance
}

// New creates a new datastore instance based on the enabled output backend.
func New(settings *conf.Settings) Interface {
	switch {
	case settings.Output.SQLite.Enabled:
		return &SQLiteStore{
			Settings: settings,
		}
	case settings.Output.MySQL.Enabled:
		return &MySQLStore{
			Settings: settings,
		}
	default:
		return nil
	}
}

// EventByExternalID retrieves the event with the given external identifier.
// If duplicates somehow exist the first match wins; they are not merged.
func (ds *DataStore) EventByExternalID(externalID string) (*Event, error) {
	var event Event
	if err := ds.DB.Where("external_id = ?", externalID).First(&event).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, errors.New(fmt.Errorf("getting event by external id: %w", err)).
			Component("datastore").
			Category(errors.CategoryDatabase).
			Context("external_id", externalID).
			Build()
	}
	return &event, nil
}

// SaveEvent creates the event or updates it in place when it already has a
// primary key.
func (ds *DataStore) SaveEvent(event *Event) error {
	if ds.DB == nil {
		return errors.Newf("database connection is not initialized").
			Component("datastore").
			Category(errors.CategoryDatabase).
			Build()
	}
	if err := ds.DB.Save(event).Error; err != nil {
		return errors.New(fmt.Errorf("saving event: %w", err)).
			Component("datastore").
			Category(errors.CategoryDatabase).
			Context("external_id", event.ExternalID).
			Build()
	}
	return nil
}

// GetAllEvents retrieves all stored events ordered by creation.
func (ds *DataStore) GetAllEvents() ([]Event, error) {
	var events []Event
	if err := ds.DB.Order("id").Find(&events).Error; err != nil {
		return nil, errors.New(fmt.Errorf("getting all events: %w", err)).
			Component("datastore").
			Category(errors.CategoryDatabase).
			Build()
	}
	return events, nil
}

// CountEvents returns the number of stored events.
func (ds *DataStore) CountEvents() (int64, error) {
	var count int64
	if err := ds.DB.Model(&Event{}).Count(&count).Error; err != nil {
		return 0, errors.New(fmt.Errorf("counting events: %w", err)).
			Component("datastore").
			Category(errors.CategoryDatabase).
			Build()
	}
	return count, nil
}

// MediaByFilePath retrieves the media wrapper referencing the given file path.
func (ds *DataStore) MediaByFilePath(filePath string) (*Media, error) {
	var media Media
	if err := ds.DB.Where("file_path = ?", filePath).First(&media).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMediaNotFound
		}
		return nil, errors.New(fmt.Errorf("getting media by file path: %w", err)).
			Component("datastore").
			Category(errors.CategoryDatabase).
			Context("file_path", filePath).
			Build()
	}
	return &media, nil
}

// SaveMedia creates or updates a media wrapper entity.
func (ds *DataStore) SaveMedia(media *Media) error {
	if ds.DB == nil {
		return errors.Newf("database connection is not initialized").
			Component("datastore").
			Category(errors.CategoryDatabase).
			Build()
	}
	if err := ds.DB.Save(media).Error; err != nil {
		return errors.New(fmt.Errorf("saving media: %w", err)).
			Component("datastore").
			Category(errors.CategoryDatabase).
			Context("file_path", media.FilePath).
			Build()
	}
	return nil
}

// CountMedia returns the number of stored media wrappers.
func (ds *DataStore) CountMedia() (int64, error) {
	var count int64
	if err := ds.DB.Model(&Media{}).Count(&count).Error; err != nil {
		return 0, errors.New(fmt.Errorf("counting media: %w", err)).
			Component("datastore").
			Category(errors.CategoryDatabase).
			Build()
	}
	return count, nil
}

// performAutoMigration automates database migrations with error handling.
func performAutoMigration(db *gorm.DB, debug bool, dbType, connectionInfo string) error {
	if err := db.AutoMigrate(&Event{}, &Media{}); err != nil {
		return errors.New(fmt.Errorf("failed to auto-migrate %s database: %w", dbType, err)).
			Component("datastore").
			Category(errors.CategoryDatabase).
			Context("db_type", dbType).
			Build()
	}
	if debug {
		getLogger().Debug("Database migration completed successfully",
			"db_type", dbType,
			"connection_info", connectionInfo)
	}
	return nil
}
