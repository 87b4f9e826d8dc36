package events

import (
	"fmt"
	"io"
	"net/http"

	"github.com/Dresse/eksponent-test/internal/errors"
)

const (
	// UserAgent identifies the importer to the remote API.
	UserAgent = "eksponent-events/1.0"

	maxBodyPreviewSize = 200 // Maximum characters to show in error logs
)

// FetchEvents performs a single GET against the events API and returns the
// raw response body. There is no retry: a transport error or non-200 status
// fails the whole run for this cycle.
func FetchEvents(client *http.Client, url string) ([]byte, error) {
	req, err := http.NewRequest(http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, errors.New(err).
			Component("events").
			Category(errors.CategoryNetwork).
			Context("operation", "create_http_request").
			Context("url", url).
			Build()
	}
	req.Header.Set("User-Agent", UserAgent)

	resp, err := client.Do(req)
	if err != nil {
		return nil, errors.New(err).
			Component("events").
			Category(errors.CategoryNetwork).
			Context("operation", "events_api_request").
			Context("url", url).
			Build()
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			eventsLogger.Debug("Failed to close response body", "error", closeErr)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		eventsLogger.Warn("Received non-OK status code",
			"status_code", resp.StatusCode,
			"response_body", truncateBodyPreview(string(bodyBytes)))
		return nil, errors.New(fmt.Errorf("received non-OK response (%d)", resp.StatusCode)).
			Component("events").
			Category(errors.CategoryNetwork).
			Context("operation", "events_api_response").
			Context("url", url).
			Context("status_code", fmt.Sprintf("%d", resp.StatusCode)).
			Build()
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.New(err).
			Component("events").
			Category(errors.CategoryNetwork).
			Context("operation", "read_response_body").
			Context("url", url).
			Build()
	}

	return body, nil
}

// truncateBodyPreview truncates response body for logging
func truncateBodyPreview(body string) string {
	if len(body) > maxBodyPreviewSize {
		return body[:maxBodyPreviewSize] + "... (truncated)"
	}
	return body
}
