package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeEvents(t *testing.T) {
	payload := `[
		{
			"id": "e1",
			"title": "Gala",
			"description": "A fancy night",
			"price": {"amount": 125.5},
			"available_tickets": 8,
			"organizer": {"name": "Org"},
			"start_date": "2026-09-01T18:00:00",
			"end_date": "2026-09-01T23:00:00",
			"image": "https://example.com/gala.jpg"
		},
		{
			"id": "e2",
			"title": "Workshop"
		}
	]`

	records, err := DecodeEvents([]byte(payload))
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "e1", records[0].ID)
	assert.Equal(t, "Gala", records[0].Title)
	assert.InDelta(t, 125.5, records[0].Price.Amount, 0.001)
	assert.Equal(t, 8, records[0].AvailableTickets)
	assert.Equal(t, "Org", records[0].Organizer.Name)
	assert.Equal(t, "https://example.com/gala.jpg", records[0].Image)

	// Absent fields decode to zero values.
	assert.Equal(t, "e2", records[1].ID)
	assert.Zero(t, records[1].Price.Amount)
	assert.Zero(t, records[1].AvailableTickets)
	assert.Empty(t, records[1].Image)
}

func TestDecodeEventsPreservesOrder(t *testing.T) {
	payload := `[{"id":"c"},{"id":"a"},{"id":"b"}]`

	records, err := DecodeEvents([]byte(payload))
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "c", records[0].ID)
	assert.Equal(t, "a", records[1].ID)
	assert.Equal(t, "b", records[2].ID)
}

func TestDecodeEventsNotAnArray(t *testing.T) {
	_, err := DecodeEvents([]byte(`{"id":"e1"}`))
	require.Error(t, err)

	_, err = DecodeEvents([]byte(`not json`))
	require.Error(t, err)
}

func TestDecodeEventsMistypedFields(t *testing.T) {
	// Mistyped price must not fail the decode, nor poison the sibling fields.
	payload := `[{"id":"e1","title":"Gala","price":"free","available_tickets":5}]`

	records, err := DecodeEvents([]byte(payload))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "e1", records[0].ID)
	assert.Equal(t, "Gala", records[0].Title)
	assert.Zero(t, records[0].Price.Amount)
	assert.Equal(t, 5, records[0].AvailableTickets)
}

func TestDecodeEventsNonObjectElement(t *testing.T) {
	records, err := DecodeEvents([]byte(`["just a string", {"id":"e2"}]`))
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Empty(t, records[0].ID)
	assert.Equal(t, "e2", records[1].ID)
}

func TestDecodeEventsEmptyArray(t *testing.T) {
	records, err := DecodeEvents([]byte(`[]`))
	require.NoError(t, err)
	assert.Empty(t, records)
}
