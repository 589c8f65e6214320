package handlers

import (
	"context"
	"net/http"

	"github.com/baechuer/real-time-ressys/services/aggregator-service/internal/adapter"
	"github.com/baechuer/real-time-ressys/services/aggregator-service/internal/domain"
	"github.com/baechuer/real-time-ressys/services/aggregator-service/internal/downstream"
	"github.com/baechuer/real-time-ressys/services/aggregator-service/internal/ics"
	"github.com/baechuer/real-time-ressys/services/aggregator-service/internal/logger"
	"github.com/baechuer/real-time-ressys/services/aggregator-service/internal/metrics"
)

type EventbriteSearcher interface {
	Search(ctx context.Context, token, q, page string) ([]adapter.EventbriteEvent, error)
}

type CalendarLister interface {
	ListEvents(ctx context.Context, apiKey, calendarID string) ([]adapter.CalendarEvent, error)
}

type ICSFetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// Credentials are checked per request so the service can start without
// them; only the affected endpoint refuses.
type Credentials struct {
	EventbriteToken string
	GoogleAPIKey    string
}

type SourcesHandler struct {
	eventbrite EventbriteSearcher
	calendar   CalendarLister
	ics        ICSFetcher
	creds      Credentials
}

func NewSourcesHandler(eb EventbriteSearcher, cal CalendarLister, f ICSFetcher, creds Credentials) *SourcesHandler {
	return &SourcesHandler{
		eventbrite: eb,
		calendar:   cal,
		ics:        f,
		creds:      creds,
	}
}

// Eventbrite handles GET /api/eventbrite?q=&page=.
func (h *SourcesHandler) Eventbrite(w http.ResponseWriter, r *http.Request) {
	if h.creds.EventbriteToken == "" {
		sendError(w, r, http.StatusInternalServerError, "Missing EVENTBRITE_TOKEN env var", nil)
		return
	}

	q := r.URL.Query().Get("q")
	page := r.URL.Query().Get("page")
	if page == "" {
		page = "1"
	}

	raw, err := h.eventbrite.Search(r.Context(), h.creds.EventbriteToken, q, page)
	if err != nil {
		logger.Ctx(r.Context()).Error().Err(err).
			Str("source", downstream.SourceEventbrite).
			Msg("eventbrite fetch failed")
		sendError(w, r, http.StatusInternalServerError, "Eventbrite fetch failed", err)
		return
	}

	inputs := make([]domain.NormalizeInput, 0, len(raw))
	for _, ev := range raw {
		inputs = append(inputs, adapter.FromEventbrite(ev))
	}
	h.respond(w, r, downstream.SourceEventbrite, inputs)
}

// GoogleCalendar handles GET /api/google-calendar?calendarId=.
func (h *SourcesHandler) GoogleCalendar(w http.ResponseWriter, r *http.Request) {
	calendarID := r.URL.Query().Get("calendarId")
	if calendarID == "" {
		sendError(w, r, http.StatusBadRequest, "calendarId required", nil)
		return
	}
	if h.creds.GoogleAPIKey == "" {
		sendError(w, r, http.StatusInternalServerError, "Missing GOOGLE_API_KEY env var", nil)
		return
	}

	items, err := h.calendar.ListEvents(r.Context(), h.creds.GoogleAPIKey, calendarID)
	if err != nil {
		logger.Ctx(r.Context()).Error().Err(err).
			Str("source", downstream.SourceCalendar).
			Msg("google calendar fetch failed")
		sendError(w, r, http.StatusInternalServerError, "Google Calendar fetch failed", err)
		return
	}

	inputs := make([]domain.NormalizeInput, 0, len(items))
	for _, item := range items {
		inputs = append(inputs, adapter.FromCalendar(item))
	}
	h.respond(w, r, downstream.SourceCalendar, inputs)
}

// FetchICS handles GET /api/fetch-ics?url=.
func (h *SourcesHandler) FetchICS(w http.ResponseWriter, r *http.Request) {
	docURL := r.URL.Query().Get("url")
	if docURL == "" {
		sendError(w, r, http.StatusBadRequest, "url query param required", nil)
		return
	}

	body, err := h.ics.Fetch(r.Context(), docURL)
	if err == nil {
		var components []ics.Component
		components, err = ics.Parse(body)
		if err == nil {
			h.respond(w, r, downstream.SourceICS, adapter.FromICSComponents(components))
			return
		}
	}

	logger.Ctx(r.Context()).Error().Err(err).
		Str("source", downstream.SourceICS).
		Msg("ics fetch/parse failed")
	sendError(w, r, http.StatusInternalServerError, "Failed to fetch/parse ICS", err)
}

func (h *SourcesHandler) respond(w http.ResponseWriter, r *http.Request, source string, inputs []domain.NormalizeInput) {
	events := domain.NormalizeAll(inputs)
	metrics.RecordNormalized(source, len(events))
	sendJSON(w, r, domain.EventsResponse{Events: events})
}
