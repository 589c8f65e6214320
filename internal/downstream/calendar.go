package downstream

import (
	"context"
	"net/url"

	"github.com/baechuer/real-time-ressys/services/aggregator-service/internal/adapter"
)

const SourceCalendar = "google_calendar"

// CalendarClient reads public Google calendars with an API key.
type CalendarClient struct {
	baseURL string
	http    *Client
}

func NewCalendarClient(baseURL string, cfg ClientConfig) *CalendarClient {
	cfg.Source = SourceCalendar
	return &CalendarClient{baseURL: baseURL, http: NewClient(cfg)}
}

// ListEvents returns single (already expanded) occurrences ordered by
// start time. Recurrence expansion is done by the upstream.
func (c *CalendarClient) ListEvents(ctx context.Context, apiKey, calendarID string) ([]adapter.CalendarEvent, error) {
	params := url.Values{}
	params.Set("key", apiKey)
	params.Set("singleEvents", "true")
	params.Set("orderBy", "startTime")

	endpoint := c.baseURL + "/calendars/" + url.PathEscape(calendarID) + "/events?" + params.Encode()

	resp, err := c.http.Get(ctx, endpoint, map[string]string{
		"Accept": "application/json",
	})
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if err := checkStatus(SourceCalendar, resp); err != nil {
		return nil, err
	}

	var body adapter.CalendarEventsResponse
	if err := decodeJSON(SourceCalendar, resp.Body, &body); err != nil {
		return nil, err
	}
	return body.Items, nil
}
