package domain

const (
	unknownOrganizer  = "Unknown"
	defaultSourceName = "external"
)

// NormalizeInput carries the source-agnostic fields an adapter extracted
// from one raw record. Every field is optional.
type NormalizeInput struct {
	ID            string
	Title         string
	Description   string
	Start         string
	End           string
	Venue         string
	OrganizerName string
	OrganizerType OrganizerType
	SourceName    string
	// External defaults to true when nil.
	External *bool
}

// Normalize converts adapter output into a canonical Event. It never fails:
// missing data degrades to defaults.
//
// The id is passed through as-is; adapters build it with EventID.
func Normalize(in NormalizeInput) Event {
	orgType := in.OrganizerType
	if orgType == "" {
		orgType = OrganizerOther
	}

	external := true
	if in.External != nil {
		external = *in.External
	}

	return Event{
		ID:          in.ID,
		Title:       in.Title,
		Description: in.Description,
		Start:       in.Start,
		End:         in.End,
		Venue:       in.Venue,
		Organizer: Organizer{
			Name:     firstNonEmpty(in.OrganizerName, in.SourceName, unknownOrganizer),
			Type:     orgType,
			Verified: orgType.Verified(),
		},
		Source:       Source{Name: firstNonEmpty(in.SourceName, defaultSourceName)},
		Tags:         []string{},
		External:     external,
		Registration: Registration{Open: true},
	}
}

// NormalizeAll maps a batch of inputs, always returning a non-nil slice.
func NormalizeAll(inputs []NormalizeInput) []Event {
	out := make([]Event, 0, len(inputs))
	for _, in := range inputs {
		out = append(out, Normalize(in))
	}
	return out
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

// Bool returns a pointer to b, for NormalizeInput.External.
func Bool(b bool) *bool {
	return &b
}
