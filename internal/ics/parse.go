package ics

import (
	"bytes"
	"errors"
	"fmt"
	"time"

	ical "github.com/arran4/golang-ical"
)

// Kind discriminates the top-level components of a calendar document.
type Kind string

const (
	KindEvent    Kind = "VEVENT"
	KindTimezone Kind = "VTIMEZONE"
	KindTodo     Kind = "VTODO"
	KindJournal  Kind = "VJOURNAL"
	KindOther    Kind = "OTHER"
)

var ErrEmptyDocument = errors.New("empty ICS document")

// Component is one top-level entry of a parsed calendar. The descriptive
// fields are only populated for KindEvent.
type Component struct {
	Kind Kind

	UID         string
	Summary     string
	Description string
	Location    string
	// Organizer is the raw ORGANIZER value, typically "mailto:...".
	Organizer string

	Start *time.Time
	End   *time.Time
}

// Parse decodes an RFC-5545 document into its top-level components in
// document order. Timezone resolution of DTSTART/DTEND is left to the
// underlying library, which honours TZID parameters.
func Parse(body []byte) ([]Component, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, ErrEmptyDocument
	}

	cal, err := ical.ParseCalendar(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse calendar: %w", err)
	}

	out := make([]Component, 0, len(cal.Components))
	for _, c := range cal.Components {
		switch comp := c.(type) {
		case *ical.VEvent:
			out = append(out, fromVEvent(comp))
		case *ical.VTimezone:
			out = append(out, Component{Kind: KindTimezone})
		case *ical.VTodo:
			out = append(out, Component{Kind: KindTodo})
		case *ical.VJournal:
			out = append(out, Component{Kind: KindJournal})
		default:
			out = append(out, Component{Kind: KindOther})
		}
	}

	return out, nil
}

// Events filters components down to VEVENTs.
func Events(components []Component) []Component {
	out := make([]Component, 0, len(components))
	for _, c := range components {
		if c.Kind == KindEvent {
			out = append(out, c)
		}
	}
	return out
}

func fromVEvent(ve *ical.VEvent) Component {
	c := Component{
		Kind:        KindEvent,
		UID:         propValue(ve, ical.ComponentPropertyUniqueId),
		Summary:     propValue(ve, ical.ComponentPropertySummary),
		Description: propValue(ve, ical.ComponentPropertyDescription),
		Location:    propValue(ve, ical.ComponentPropertyLocation),
		Organizer:   propValue(ve, ical.ComponentPropertyOrganizer),
	}

	normalizeTimezones(ve)
	if p := ve.GetProperty(ical.ComponentPropertyDtStart); p != nil {
		c.Start = resolveTime(p, ve.GetStartAt, ve.GetAllDayStartAt)
	}
	if p := ve.GetProperty(ical.ComponentPropertyDtEnd); p != nil {
		c.End = resolveTime(p, ve.GetEndAt, ve.GetAllDayEndAt)
	}

	return c
}

func propValue(ve *ical.VEvent, prop ical.ComponentProperty) string {
	if p := ve.GetProperty(prop); p != nil {
		return p.Value
	}
	return ""
}

// resolveTime tries the date-time accessor first, then the all-day
// (VALUE=DATE) accessor, then the raw value. A present but unparseable
// value resolves to nil.
func resolveTime(p *ical.IANAProperty, accessors ...func() (time.Time, error)) *time.Time {
	for _, get := range accessors {
		t, err := get()
		if err == nil && !t.IsZero() {
			return &t
		}
	}
	return parseFloating(p)
}
