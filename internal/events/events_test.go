package events

import (
	"net/http"
	"path/filepath"
	"testing"
	"time"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dresse/eksponent-test/internal/conf"
	"github.com/Dresse/eksponent-test/internal/datastore"
	"github.com/Dresse/eksponent-test/internal/errors"
)

func testImportSettings(t *testing.T) *conf.Settings {
	t.Helper()

	settings := &conf.Settings{}
	settings.Import.SourceURL = testSourceURL
	settings.Import.Timeout = 10
	settings.Import.PollInterval = 60
	settings.Import.ImageDir = filepath.Join(t.TempDir(), "imported-event-images")
	settings.Output.SQLite.Enabled = true
	settings.Output.SQLite.Path = ":memory:"
	return settings
}

const twoEventPayload = `[
	{
		"id": "e1",
		"title": "Gala",
		"description": "A fancy night",
		"price": {"amount": 125.5},
		"available_tickets": 8,
		"organizer": {"name": "Org"},
		"image": "https://example.com/gala.jpg"
	},
	{
		"id": "e2",
		"title": "Workshop",
		"description": "Hands on",
		"price": {"amount": 50},
		"available_tickets": 42,
		"organizer": {"name": "Org"}
	}
]`

func TestRunImport(t *testing.T) {
	setupHTTPMock(t)
	settings := testImportSettings(t)
	store := newTestStore(t)

	httpmock.RegisterResponder("GET", testSourceURL,
		httpmock.NewStringResponder(http.StatusOK, twoEventPayload))
	httpmock.RegisterResponder("GET", "https://example.com/gala.jpg",
		httpmock.NewStringResponder(http.StatusOK, "fake image bytes"))

	service := NewService(settings, store)
	summary := service.RunImport(settings.Import.SourceURL)

	assert.Equal(t, 2, summary.Processed)
	assert.Equal(t, 2, summary.Succeeded)
	assert.Zero(t, summary.Failed)
	assert.False(t, summary.FetchFailed)

	gala, err := store.EventByExternalID("e1")
	require.NoError(t, err)
	assert.Equal(t, "Gala", gala.Title)
	require.NotNil(t, gala.MediaID)

	workshop, err := store.EventByExternalID("e2")
	require.NoError(t, err)
	assert.Equal(t, 42, workshop.TicketsRemaining)
	assert.Nil(t, workshop.MediaID)
}

func TestRunImportIsIdempotent(t *testing.T) {
	setupHTTPMock(t)
	settings := testImportSettings(t)
	store := newTestStore(t)

	httpmock.RegisterResponder("GET", testSourceURL,
		httpmock.NewStringResponder(http.StatusOK, twoEventPayload))
	httpmock.RegisterResponder("GET", "https://example.com/gala.jpg",
		httpmock.NewStringResponder(http.StatusOK, "fake image bytes"))

	service := NewService(settings, store)
	first := service.RunImport(settings.Import.SourceURL)
	second := service.RunImport(settings.Import.SourceURL)

	assert.Equal(t, first.Succeeded, second.Succeeded)

	eventCount, err := store.CountEvents()
	require.NoError(t, err)
	assert.Equal(t, int64(2), eventCount)

	mediaCount, err := store.CountMedia()
	require.NoError(t, err)
	assert.Equal(t, int64(1), mediaCount)
}

func TestRunImportSoldOutScenario(t *testing.T) {
	setupHTTPMock(t)
	settings := testImportSettings(t)
	store := newTestStore(t)

	payload := `[{"id":"e1","title":"Gala","description":"d","price":{"amount":10},"available_tickets":0,"organizer":{"name":"Org"}}]`
	httpmock.RegisterResponder("GET", testSourceURL,
		httpmock.NewStringResponder(http.StatusOK, payload))

	service := NewService(settings, store)
	summary := service.RunImport(settings.Import.SourceURL)
	assert.Equal(t, 1, summary.Succeeded)

	event, err := store.EventByExternalID("e1")
	require.NoError(t, err)
	assert.Equal(t, 0, event.TicketsRemaining)

	label, show := FormatTicketLabel(event.TicketsRemaining)
	assert.True(t, show)
	assert.Equal(t, "SOLD OUT", label)
}

func TestRunImportFetchFailure(t *testing.T) {
	setupHTTPMock(t)
	settings := testImportSettings(t)
	store := newTestStore(t)

	httpmock.RegisterResponder("GET", testSourceURL,
		httpmock.NewStringResponder(http.StatusInternalServerError, "boom"))

	service := NewService(settings, store)
	summary := service.RunImport(settings.Import.SourceURL)

	assert.True(t, summary.FetchFailed)
	assert.Zero(t, summary.Processed)
	assert.Zero(t, summary.Succeeded)

	count, err := store.CountEvents()
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestRunImportDecodeFailure(t *testing.T) {
	setupHTTPMock(t)
	settings := testImportSettings(t)
	store := newTestStore(t)

	httpmock.RegisterResponder("GET", testSourceURL,
		httpmock.NewStringResponder(http.StatusOK, `{"not":"an array"}`))

	service := NewService(settings, store)
	summary := service.RunImport(settings.Import.SourceURL)

	assert.True(t, summary.DecodeFailed)
	assert.Zero(t, summary.Processed)
}

// failingStore wraps a real store and refuses to persist one external ID.
type failingStore struct {
	datastore.Interface
	failID string
}

func (f *failingStore) SaveEvent(event *datastore.Event) error {
	if event.ExternalID == f.failID {
		return errors.Newf("simulated persistence failure").
			Component("datastore").
			Category(errors.CategoryDatabase).
			Build()
	}
	return f.Interface.SaveEvent(event)
}

func TestRunImportIsolatesRecordFailures(t *testing.T) {
	setupHTTPMock(t)
	settings := testImportSettings(t)
	store := &failingStore{Interface: newTestStore(t), failID: "e2"}

	payload := `[{"id":"e1","title":"a"},{"id":"e2","title":"b"},{"id":"e3","title":"c"}]`
	httpmock.RegisterResponder("GET", testSourceURL,
		httpmock.NewStringResponder(http.StatusOK, payload))

	service := NewService(settings, store)
	summary := service.RunImport(settings.Import.SourceURL)

	assert.Equal(t, 3, summary.Processed)
	assert.Equal(t, 2, summary.Succeeded)
	assert.Equal(t, 1, summary.Failed)

	_, err := store.EventByExternalID("e1")
	assert.NoError(t, err)
	_, err = store.EventByExternalID("e3")
	assert.NoError(t, err)
	_, err = store.EventByExternalID("e2")
	assert.ErrorIs(t, err, datastore.ErrEventNotFound)
}

func TestStartPollingNonPositiveInterval(t *testing.T) {
	setupHTTPMock(t)
	settings := testImportSettings(t)
	settings.Import.PollInterval = 0
	store := newTestStore(t)

	service := NewService(settings, store)

	done := make(chan struct{})
	go func() {
		defer close(done)
		service.StartPolling(make(chan struct{}))
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("StartPolling did not return for a zero interval")
	}

	// Nothing was imported: the service refused to start.
	count, err := store.CountEvents()
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestSummaryString(t *testing.T) {
	assert.Equal(t, "import failed: could not fetch events", Summary{FetchFailed: true}.String())
	assert.Equal(t, "import failed: could not decode events payload", Summary{DecodeFailed: true}.String())
	assert.Equal(t, "processed 3 events: 2 succeeded, 1 failed",
		Summary{Processed: 3, Succeeded: 2, Failed: 1}.String())
}
