package downstream

import (
	"context"
	"net/url"

	"github.com/baechuer/real-time-ressys/services/aggregator-service/internal/adapter"
)

const SourceEventbrite = "eventbrite"

// EventbriteClient calls the Eventbrite event search API.
type EventbriteClient struct {
	baseURL string
	http    *Client
}

func NewEventbriteClient(baseURL string, cfg ClientConfig) *EventbriteClient {
	cfg.Source = SourceEventbrite
	return &EventbriteClient{baseURL: baseURL, http: NewClient(cfg)}
}

// Search fetches one page of results. q and page are forwarded verbatim.
func (c *EventbriteClient) Search(ctx context.Context, token, q, page string) ([]adapter.EventbriteEvent, error) {
	params := url.Values{}
	params.Set("q", q)
	params.Set("page", page)
	params.Set("expand", "venue,organizer")

	resp, err := c.http.Get(ctx, c.baseURL+"/events/search/?"+params.Encode(), map[string]string{
		"Authorization": "Bearer " + token,
		"Accept":        "application/json",
	})
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if err := checkStatus(SourceEventbrite, resp); err != nil {
		return nil, err
	}

	var body adapter.EventbriteSearchResponse
	if err := decodeJSON(SourceEventbrite, resp.Body, &body); err != nil {
		return nil, err
	}
	return body.Events, nil
}
