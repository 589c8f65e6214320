package adapter

import (
	"time"

	"github.com/baechuer/real-time-ressys/services/aggregator-service/internal/domain"
	"github.com/baechuer/real-time-ressys/services/aggregator-service/internal/ics"
)

const (
	ICSSourceName = "ICS"

	// icsLocalIDMax bounds the uid/summary suffix of an ICS event id.
	icsLocalIDMax = 40

	// isoInstantLayout renders UTC instants with millisecond precision.
	isoInstantLayout = "2006-01-02T15:04:05.000Z07:00"
)

// FromICS maps a parsed calendar component into normalizer input. ok is
// false for anything other than a VEVENT.
func FromICS(c ics.Component) (in domain.NormalizeInput, ok bool) {
	if c.Kind != ics.KindEvent {
		return domain.NormalizeInput{}, false
	}

	localID := c.UID
	if localID == "" {
		localID = c.Summary
	}

	return domain.NormalizeInput{
		ID:            domain.EventID(domain.PrefixICS, truncate(localID, icsLocalIDMax)),
		Title:         c.Summary,
		Description:   c.Description,
		Start:         isoInstant(c.Start),
		End:           isoInstant(c.End),
		Venue:         c.Location,
		OrganizerName: c.Organizer,
		OrganizerType: domain.OrganizerOther,
		SourceName:    ICSSourceName,
		External:      domain.Bool(true),
	}, true
}

// FromICSComponents maps every VEVENT in document order, skipping all
// other component kinds.
func FromICSComponents(components []ics.Component) []domain.NormalizeInput {
	events := ics.Events(components)
	out := make([]domain.NormalizeInput, 0, len(events))
	for _, c := range events {
		in, _ := FromICS(c)
		out = append(out, in)
	}
	return out
}

func isoInstant(t *time.Time) string {
	if t == nil || t.IsZero() {
		return ""
	}
	return t.UTC().Format(isoInstantLayout)
}

// truncate keeps at most n characters (code points) of s.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
