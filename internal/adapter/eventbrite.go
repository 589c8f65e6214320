package adapter

import "github.com/baechuer/real-time-ressys/services/aggregator-service/internal/domain"

const EventbriteSourceName = "Eventbrite"

// EventbriteText is Eventbrite's multipart text wrapper ({"text","html"}).
type EventbriteText struct {
	Text string `json:"text"`
	HTML string `json:"html,omitempty"`
}

type EventbriteDateTime struct {
	UTC      string `json:"utc"`
	Local    string `json:"local"`
	Timezone string `json:"timezone,omitempty"`
}

type EventbriteAddress struct {
	LocalizedAddressDisplay string `json:"localized_address_display"`
}

type EventbriteVenue struct {
	Name    string             `json:"name"`
	Address *EventbriteAddress `json:"address"`
}

type EventbriteOrganizer struct {
	Name string `json:"name"`
}

// EventbriteEvent is one record of the event search response, with
// venue and organizer expanded.
type EventbriteEvent struct {
	ID          string               `json:"id"`
	Name        *EventbriteText      `json:"name"`
	Description *EventbriteText      `json:"description"`
	Start       *EventbriteDateTime  `json:"start"`
	End         *EventbriteDateTime  `json:"end"`
	Venue       *EventbriteVenue     `json:"venue"`
	Organizer   *EventbriteOrganizer `json:"organizer"`
}

// EventbriteSearchResponse is the upstream search envelope. Only the page of
// events is consumed.
type EventbriteSearchResponse struct {
	Events []EventbriteEvent `json:"events"`
}

// FromEventbrite maps a search result into normalizer input.
func FromEventbrite(ev EventbriteEvent) domain.NormalizeInput {
	in := domain.NormalizeInput{
		ID:            domain.EventID(domain.PrefixEventbrite, ev.ID),
		Start:         ev.Start.preferred(),
		End:           ev.End.preferred(),
		OrganizerType: domain.OrganizerCompany,
		SourceName:    EventbriteSourceName,
		External:      domain.Bool(true),
	}

	if ev.Name != nil {
		in.Title = ev.Name.Text
	}
	if ev.Description != nil {
		in.Description = ev.Description.Text
	}
	if ev.Venue != nil {
		in.Venue = ev.Venue.Name
		if ev.Venue.Address != nil && ev.Venue.Address.LocalizedAddressDisplay != "" {
			in.Venue = ev.Venue.Address.LocalizedAddressDisplay
		}
	}
	if ev.Organizer != nil {
		in.OrganizerName = ev.Organizer.Name
	}

	return in
}

// preferred returns the UTC timestamp, falling back to the local one.
func (t *EventbriteDateTime) preferred() string {
	if t == nil {
		return ""
	}
	if t.UTC != "" {
		return t.UTC
	}
	return t.Local
}
