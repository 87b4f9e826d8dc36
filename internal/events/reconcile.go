package events

import (
	"github.com/araddon/dateparse"

	"github.com/Dresse/eksponent-test/internal/datastore"
	"github.com/Dresse/eksponent-test/internal/errors"
)

// storedTimeLayout is the fixed local-time representation used for the
// start/end fields of a stored event.
const storedTimeLayout = "2006-01-02T15:04:05"

// Materializer produces a media entity for an image URL, or an error when
// the image cannot be materialized.
type Materializer interface {
	Materialize(imageURL, title string) (*datastore.Media, error)
}

// Reconciler creates or updates one stored event per external identifier.
type Reconciler struct {
	store datastore.Interface
	media Materializer
}

// NewReconciler creates a reconciler writing to the given store.
func NewReconciler(store datastore.Interface, media Materializer) *Reconciler {
	return &Reconciler{
		store: store,
		media: media,
	}
}

// Reconcile looks up the stored event by external identifier and overwrites
// its fields from the record, creating the event on first sight. An image
// failure never fails the record; a persistence failure does.
func (r *Reconciler) Reconcile(rec *EventRecord) error {
	event, err := r.store.EventByExternalID(rec.ID)
	switch {
	case err == nil:
		// Existing event, update in place
	case errors.Is(err, datastore.ErrEventNotFound):
		event = &datastore.Event{}
	default:
		return err
	}

	event.ExternalID = rec.ID
	event.Title = rec.Title
	event.Description = rec.Description
	event.Price = rec.Price.Amount
	event.TicketsRemaining = rec.AvailableTickets
	event.OrganizerName = rec.Organizer.Name
	event.StartTime = r.normalizeDate(rec.ID, "start_date", rec.StartDate)
	event.EndTime = r.normalizeDate(rec.ID, "end_date", rec.EndDate)

	if rec.Image != "" {
		if m, err := r.media.Materialize(rec.Image, rec.Title); err != nil {
			// Record is still imported, just without an image. Any image
			// reference from an earlier run stays untouched.
			eventsLogger.Error("Image import failed",
				"external_id", rec.ID,
				"image_url", rec.Image,
				"error", err)
		} else {
			event.MediaID = &m.ID
		}
	}

	return r.store.SaveEvent(event)
}

// normalizeDate parses a source date string and reformats it to the fixed
// stored layout. An empty source stays empty; an unparsable one is logged
// and left empty rather than guessing a value.
func (r *Reconciler) normalizeDate(externalID, field, value string) string {
	if value == "" {
		return ""
	}
	t, err := dateparse.ParseLocal(value)
	if err != nil {
		eventsLogger.Warn("Could not parse event date, leaving field unset",
			"external_id", externalID,
			"field", field,
			"value", value,
			"error", err)
		return ""
	}
	return t.Format(storedTimeLayout)
}
