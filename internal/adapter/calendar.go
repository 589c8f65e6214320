package adapter

import "github.com/baechuer/real-time-ressys/services/aggregator-service/internal/domain"

const CalendarSourceName = "Google Calendar"

// CalendarTime holds either a timed value (dateTime) or an all-day value (date).
type CalendarTime struct {
	DateTime string `json:"dateTime"`
	Date     string `json:"date"`
	TimeZone string `json:"timeZone,omitempty"`
}

type CalendarPerson struct {
	DisplayName string `json:"displayName"`
	Email       string `json:"email"`
}

// CalendarEvent is one item of a calendar events list.
type CalendarEvent struct {
	ID          string          `json:"id"`
	Summary     string          `json:"summary"`
	Description string          `json:"description"`
	Location    string          `json:"location"`
	Start       *CalendarTime   `json:"start"`
	End         *CalendarTime   `json:"end"`
	Organizer   *CalendarPerson `json:"organizer"`
}

type CalendarEventsResponse struct {
	Items []CalendarEvent `json:"items"`
}

// FromCalendar maps a calendar item into normalizer input.
func FromCalendar(item CalendarEvent) domain.NormalizeInput {
	orgName := CalendarSourceName
	if item.Organizer != nil {
		switch {
		case item.Organizer.DisplayName != "":
			orgName = item.Organizer.DisplayName
		case item.Organizer.Email != "":
			orgName = item.Organizer.Email
		}
	}

	return domain.NormalizeInput{
		ID:            domain.EventID(domain.PrefixCalendar, item.ID),
		Title:         item.Summary,
		Description:   item.Description,
		Start:         item.Start.preferred(),
		End:           item.End.preferred(),
		Venue:         item.Location,
		OrganizerName: orgName,
		OrganizerType: domain.OrganizerOther,
		SourceName:    CalendarSourceName,
		External:      domain.Bool(true),
	}
}

func (t *CalendarTime) preferred() string {
	if t == nil {
		return ""
	}
	if t.DateTime != "" {
		return t.DateTime
	}
	return t.Date
}
