package events

import "fmt"

// FormatTicketLabel renders a ticket count as display text. The second
// return value reports whether a label should be shown at all: healthy
// stock (more than 10 tickets) produces no label to keep the display
// uncluttered, and so does a negative count from bad data.
func FormatTicketLabel(value int) (string, bool) {
	switch {
	case value == 0:
		return "SOLD OUT", true
	case value >= 1 && value <= 10:
		return fmt.Sprintf("%d seats left", value), true
	default:
		return "", false
	}
}
