package events

import (
	"encoding/json"

	"github.com/Dresse/eksponent-test/internal/errors"
)

// EventRecord mirrors one object in the remote API's events array.
type EventRecord struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Price       struct {
		Amount float64 `json:"amount"`
	} `json:"price"`
	AvailableTickets int `json:"available_tickets"`
	Organizer        struct {
		Name string `json:"name"`
	} `json:"organizer"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Image     string `json:"image"`
}

// DecodeEvents parses the payload as a JSON array of event records,
// preserving source order. The payload itself must be a JSON array; within a
// record, absent or mistyped fields fall back to zero values instead of
// failing the decode.
func DecodeEvents(data []byte) ([]EventRecord, error) {
	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return nil, errors.New(err).
			Component("events").
			Category(errors.CategoryValidation).
			Context("operation", "unmarshal_events_payload").
			Build()
	}

	records := make([]EventRecord, 0, len(raws))
	for i, raw := range raws {
		var rec EventRecord
		if err := json.Unmarshal(raw, &rec); err != nil {
			eventsLogger.Warn("Event record has mistyped fields, decoding leniently",
				"index", i,
				"error", err)
			rec = salvageRecord(raw)
		}
		records = append(records, rec)
	}
	return records, nil
}

// salvageRecord extracts whatever well-typed fields it can from a record that
// failed the strict decode, leaving everything else at zero values.
func salvageRecord(raw json.RawMessage) EventRecord {
	var rec EventRecord

	var obj map[string]any
	if err := json.Unmarshal(raw, &obj); err != nil {
		return rec
	}

	rec.ID, _ = obj["id"].(string)
	rec.Title, _ = obj["title"].(string)
	rec.Description, _ = obj["description"].(string)
	rec.StartDate, _ = obj["start_date"].(string)
	rec.EndDate, _ = obj["end_date"].(string)
	rec.Image, _ = obj["image"].(string)

	if price, ok := obj["price"].(map[string]any); ok {
		rec.Price.Amount, _ = price["amount"].(float64)
	}
	if organizer, ok := obj["organizer"].(map[string]any); ok {
		rec.Organizer.Name, _ = organizer["name"].(string)
	}
	if tickets, ok := obj["available_tickets"].(float64); ok {
		rec.AvailableTickets = int(tickets)
	}

	return rec
}
