// Package events implements the import of event listings from the remote
// events API into the local content store.
package events

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/Dresse/eksponent-test/internal/conf"
	"github.com/Dresse/eksponent-test/internal/datastore"
	"github.com/Dresse/eksponent-test/internal/filestore"
	"github.com/Dresse/eksponent-test/internal/logging"
	"github.com/Dresse/eksponent-test/internal/media"
)

// Package-level logger for the events import service
var (
	eventsLogger   *slog.Logger
	eventsLevelVar = new(slog.LevelVar) // Dynamic level control
)

func init() {
	var err error
	eventsLevelVar.Set(slog.LevelDebug)

	eventsLogger, _, err = logging.NewFileLogger("logs/events.log", "events", eventsLevelVar)
	if err != nil {
		logging.Error("Failed to initialize events file logger", "error", err)
		eventsLogger = logging.NewDiscardLogger("events", eventsLevelVar)
	}
}

// Summary reports the outcome of one import run.
type Summary struct {
	Processed    int  // records seen in the decoded payload
	Succeeded    int  // records reconciled and persisted
	Failed       int  // records that could not be persisted
	FetchFailed  bool // the whole batch failed before any record was processed
	DecodeFailed bool // payload fetched but could not be decoded
}

// String renders the summary for terminal output.
func (s Summary) String() string {
	switch {
	case s.FetchFailed:
		return "import failed: could not fetch events"
	case s.DecodeFailed:
		return "import failed: could not decode events payload"
	default:
		return fmt.Sprintf("processed %d events: %d succeeded, %d failed",
			s.Processed, s.Succeeded, s.Failed)
	}
}

// Service sequences fetch, decode and per-record reconciliation.
type Service struct {
	settings   *conf.Settings
	store      datastore.Interface
	reconciler *Reconciler
	client     *http.Client
}

// NewService creates an import service wired to the given store.
func NewService(settings *conf.Settings, store datastore.Interface) *Service {
	client := &http.Client{Timeout: settings.Import.HTTPTimeout()}
	materializer := media.New(client, store, filestore.New(), settings.Import.ImageDir)

	return &Service{
		settings:   settings,
		store:      store,
		reconciler: NewReconciler(store, materializer),
		client:     client,
	}
}

// RunImport fetches the payload from sourceURL and reconciles every record in
// it. A fetch or decode failure aborts the whole run; a failure on one record
// is logged and the batch continues with the next record.
func (s *Service) RunImport(sourceURL string) Summary {
	var summary Summary

	body, err := FetchEvents(s.client, sourceURL)
	if err != nil {
		eventsLogger.Error("Failed to fetch events from remote API",
			"url", sourceURL,
			"error", err)
		summary.FetchFailed = true
		return summary
	}

	records, err := DecodeEvents(body)
	if err != nil {
		eventsLogger.Error("Failed to decode events payload",
			"url", sourceURL,
			"error", err)
		summary.DecodeFailed = true
		return summary
	}

	eventsLogger.Info("Fetched events payload",
		"url", sourceURL,
		"record_count", len(records))

	for i := range records {
		summary.Processed++
		if err := s.reconciler.Reconcile(&records[i]); err != nil {
			eventsLogger.Error("Failed to reconcile event record",
				"external_id", records[i].ID,
				"title", records[i].Title,
				"error", err)
			summary.Failed++
			continue
		}
		summary.Succeeded++
	}

	eventsLogger.Info("Import run completed",
		"processed", summary.Processed,
		"succeeded", summary.Succeeded,
		"failed", summary.Failed)

	return summary
}

// StartPolling runs the import on a fixed interval until stopChan closes.
// A single goroutine drives all runs, so no two imports ever overlap.
func (s *Service) StartPolling(stopChan <-chan struct{}) {
	interval := time.Duration(s.settings.Import.PollInterval) * time.Minute
	if interval <= 0 {
		eventsLogger.Error("Refusing to start polling with a non-positive interval",
			"interval_minutes", s.settings.Import.PollInterval)
		return
	}

	eventsLogger.Info("Starting events polling service",
		"url", s.settings.Import.SourceURL,
		"interval_minutes", s.settings.Import.PollInterval,
	)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	// Initial import
	summary := s.RunImport(s.settings.Import.SourceURL)
	eventsLogger.Info("Initial import finished", "summary", summary.String())

	for {
		select {
		case <-ticker.C:
			eventsLogger.Info("Polling events data...")
			summary := s.RunImport(s.settings.Import.SourceURL)
			eventsLogger.Info("Scheduled import finished", "summary", summary.String())
		case <-stopChan:
			eventsLogger.Info("Stopping events polling service")
			return
		}
	}
}
