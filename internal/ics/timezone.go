package ics

import (
	"strings"
	"time"
	// Zone lookups must not depend on the host's zoneinfo.
	_ "time/tzdata"

	ical "github.com/arran4/golang-ical"
)

// Outlook and Exchange feeds name zones the Windows way.
var windowsToIANA = map[string]string{
	"Dateline Standard Time":         "Etc/GMT+12",
	"Hawaiian Standard Time":         "Pacific/Honolulu",
	"Alaskan Standard Time":          "America/Anchorage",
	"Pacific Standard Time":          "America/Los_Angeles",
	"US Mountain Standard Time":      "America/Phoenix",
	"Mountain Standard Time":         "America/Denver",
	"Central Standard Time":          "America/Chicago",
	"Central America Standard Time":  "America/Guatemala",
	"Eastern Standard Time":          "America/New_York",
	"Atlantic Standard Time":         "America/Halifax",
	"Newfoundland Standard Time":     "America/St_Johns",
	"E. South America Standard Time": "America/Sao_Paulo",
	"Argentina Standard Time":        "America/Argentina/Buenos_Aires",
	"UTC":                            "Etc/UTC",
	"GMT Standard Time":              "Europe/London",
	"Greenwich Standard Time":        "Atlantic/Reykjavik",
	"W. Europe Standard Time":        "Europe/Berlin",
	"Central Europe Standard Time":   "Europe/Budapest",
	"Central European Standard Time": "Europe/Warsaw",
	"Romance Standard Time":          "Europe/Paris",
	"E. Europe Standard Time":        "Europe/Chisinau",
	"GTB Standard Time":              "Europe/Bucharest",
	"FLE Standard Time":              "Europe/Kiev",
	"Israel Standard Time":           "Asia/Jerusalem",
	"Russian Standard Time":          "Europe/Moscow",
	"Turkey Standard Time":           "Europe/Istanbul",
	"Arabian Standard Time":          "Asia/Dubai",
	"South Africa Standard Time":     "Africa/Johannesburg",
	"India Standard Time":            "Asia/Kolkata",
	"SE Asia Standard Time":          "Asia/Bangkok",
	"China Standard Time":            "Asia/Shanghai",
	"Singapore Standard Time":        "Asia/Singapore",
	"Tokyo Standard Time":            "Asia/Tokyo",
	"Korea Standard Time":            "Asia/Seoul",
	"AUS Eastern Standard Time":      "Australia/Sydney",
	"E. Australia Standard Time":     "Australia/Brisbane",
	"W. Australia Standard Time":     "Australia/Perth",
	"New Zealand Standard Time":      "Pacific/Auckland",
}

// normalizeTimezones rewrites Windows TZID parameters on DTSTART/DTEND to
// their IANA names so the library accessors can load them.
func normalizeTimezones(ve *ical.VEvent) {
	for _, prop := range []ical.ComponentProperty{ical.ComponentPropertyDtStart, ical.ComponentPropertyDtEnd} {
		p := ve.GetProperty(prop)
		if p == nil || p.ICalParameters == nil {
			continue
		}
		tzs := p.ICalParameters[string(ical.ParameterTzid)]
		if len(tzs) == 0 {
			continue
		}
		if iana, ok := windowsToIANA[strings.TrimSpace(tzs[0])]; ok {
			p.ICalParameters[string(ical.ParameterTzid)] = []string{iana}
		}
	}
}

var rawLayouts = []string{
	"20060102T150405Z",
	"20060102T150405",
	"20060102",
}

// parseFloating reads a DATE or DATE-TIME value the library rejected,
// usually because of an unknown TZID. Values without a loadable zone are
// read as floating time in UTC.
func parseFloating(p *ical.IANAProperty) *time.Time {
	value := strings.TrimSpace(p.Value)

	loc := time.UTC
	if tzs := p.ICalParameters[string(ical.ParameterTzid)]; len(tzs) > 0 {
		if l, err := time.LoadLocation(tzs[0]); err == nil {
			loc = l
		}
	}

	for _, layout := range rawLayouts {
		l := loc
		if strings.HasSuffix(layout, "Z") {
			l = time.UTC
		}
		if t, err := time.ParseInLocation(layout, value, l); err == nil {
			return &t
		}
	}
	return nil
}
