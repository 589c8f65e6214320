package domain

// OrganizerType tags who runs an event. It is fixed per source and never
// inferred from record content.
type OrganizerType string

const (
	OrganizerGovernment OrganizerType = "government"
	OrganizerCompany    OrganizerType = "company"
	OrganizerOther      OrganizerType = "other"
)

// Verified reports whether events from this organizer type are trusted.
func (t OrganizerType) Verified() bool {
	return t == OrganizerGovernment || t == OrganizerCompany
}

// SourcePrefix namespaces source-local ids so they stay unique across sources.
type SourcePrefix string

const (
	PrefixEventbrite SourcePrefix = "eventbrite"
	PrefixCalendar   SourcePrefix = "gcal"
	PrefixICS        SourcePrefix = "ics"
)

// EventID builds the canonical "<prefix>_<localID>" identifier.
func EventID(prefix SourcePrefix, localID string) string {
	return string(prefix) + "_" + localID
}

// Event is the canonical shape every source record is converted into.
type Event struct {
	ID           string       `json:"id"`
	Title        string       `json:"title"`
	Description  string       `json:"description"`
	Start        string       `json:"start"`
	End          string       `json:"end"`
	Venue        string       `json:"venue"`
	Organizer    Organizer    `json:"organizer"`
	Source       Source       `json:"source"`
	Tags         []string     `json:"tags"`
	External     bool         `json:"external"`
	Registration Registration `json:"registration"`
}

type Organizer struct {
	Name     string        `json:"name"`
	Type     OrganizerType `json:"type"`
	Verified bool          `json:"verified"`
}

type Source struct {
	Name string `json:"name"`
}

type Registration struct {
	Open bool `json:"open"`
}

// EventsResponse is the success body of every source endpoint.
type EventsResponse struct {
	Events []Event `json:"events"`
}
