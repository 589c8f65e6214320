package downstream

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/baechuer/real-time-ressys/services/aggregator-service/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventbriteClient_Search(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v3/events/search/", r.URL.Path)
		assert.Equal(t, "Bearer eb-token", r.Header.Get("Authorization"))
		assert.Equal(t, "jazz night", r.URL.Query().Get("q"))
		assert.Equal(t, "3", r.URL.Query().Get("page"))
		assert.Equal(t, "venue,organizer", r.URL.Query().Get("expand"))
		assert.Equal(t, "req-1", r.Header.Get(middleware.HeaderXRequestID))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"pagination":{"page_number":3},"events":[{"id":"123","name":{"text":"Jazz"}}]}`))
	}))
	defer upstream.Close()

	c := NewEventbriteClient(upstream.URL+"/v3", ClientConfig{})
	ctx := middleware.SetRequestIDForTest(context.Background(), "req-1")

	events, err := c.Search(ctx, "eb-token", "jazz night", "3")
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "123", events[0].ID)
	require.NotNil(t, events[0].Name)
	assert.Equal(t, "Jazz", events[0].Name.Text)
}

func TestEventbriteClient_StatusError(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":"INVALID_AUTH"}`))
	}))
	defer upstream.Close()

	c := NewEventbriteClient(upstream.URL, ClientConfig{})
	_, err := c.Search(context.Background(), "bad", "", "1")
	require.Error(t, err)

	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusUnauthorized, se.StatusCode)
	assert.Equal(t, SourceEventbrite, se.Source)
	assert.Contains(t, err.Error(), "401")
	assert.Contains(t, err.Error(), "INVALID_AUTH")
}

func TestEventbriteClient_MalformedJSON(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"events": [`))
	}))
	defer upstream.Close()

	c := NewEventbriteClient(upstream.URL, ClientConfig{})
	_, err := c.Search(context.Background(), "t", "", "1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode eventbrite response")
}

func TestCalendarClient_ListEvents(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/calendars/team@group.calendar.google.com/events", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "g-key", q.Get("key"))
		assert.Equal(t, "true", q.Get("singleEvents"))
		assert.Equal(t, "startTime", q.Get("orderBy"))

		w.Write([]byte(`{"kind":"calendar#events","items":[{"id":"a","summary":"One"},{"id":"b","summary":"Two"}]}`))
	}))
	defer upstream.Close()

	c := NewCalendarClient(upstream.URL, ClientConfig{})
	items, err := c.ListEvents(context.Background(), "g-key", "team@group.calendar.google.com")
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "a", items[0].ID)
	assert.Equal(t, "Two", items[1].Summary)
}

func TestCalendarClient_EscapesCalendarID(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/calendars/a%2Fb/events", r.URL.EscapedPath())
		w.Write([]byte(`{"items":[]}`))
	}))
	defer upstream.Close()

	c := NewCalendarClient(upstream.URL, ClientConfig{})
	items, err := c.ListEvents(context.Background(), "k", "a/b")
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestICSClient_Fetch(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.Header.Get("Accept"), "text/calendar")
		w.Header().Set("Content-Type", "text/calendar")
		w.Write([]byte("BEGIN:VCALENDAR\r\nEND:VCALENDAR\r\n"))
	}))
	defer upstream.Close()

	c := NewICSClient(1024, ClientConfig{})
	body, err := c.Fetch(context.Background(), upstream.URL+"/cal.ics")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(body), "BEGIN:VCALENDAR"))
}

func TestICSClient_TooLarge(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(strings.Repeat("x", 64)))
	}))
	defer upstream.Close()

	c := NewICSClient(32, ClientConfig{})
	_, err := c.Fetch(context.Background(), upstream.URL)
	assert.ErrorIs(t, err, ErrTooLarge)
}

func TestICSClient_NotFound(t *testing.T) {
	upstream := httptest.NewServer(http.NotFoundHandler())
	defer upstream.Close()

	c := NewICSClient(1024, ClientConfig{})
	_, err := c.Fetch(context.Background(), upstream.URL)

	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusNotFound, se.StatusCode)
}

func TestClient_TransportErrors(t *testing.T) {
	t.Run("Unavailable", func(t *testing.T) {
		upstream := httptest.NewServer(http.NotFoundHandler())
		addr := upstream.URL
		upstream.Close()

		c := NewICSClient(1024, ClientConfig{})
		_, err := c.Fetch(context.Background(), addr)
		assert.ErrorIs(t, err, ErrUnavailable)
		assert.NotEqual(t, ErrUnavailable.Error(), err.Error(), "underlying message kept")
	})

	t.Run("Unsupported Scheme", func(t *testing.T) {
		c := NewICSClient(1024, ClientConfig{})
		_, err := c.Fetch(context.Background(), "ftp://example.com/cal.ics")
		assert.ErrorIs(t, err, ErrUnavailable)
	})

	t.Run("Timeout", func(t *testing.T) {
		release := make(chan struct{})
		upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-release:
			case <-r.Context().Done():
			}
		}))
		defer upstream.Close()
		defer close(release)

		c := NewICSClient(1024, ClientConfig{Timeout: 50 * time.Millisecond})
		_, err := c.Fetch(context.Background(), upstream.URL)
		assert.ErrorIs(t, err, ErrTimeout)
	})
}

func TestClient_TimeoutDoesNotCutBodyRead(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"items":[{"id":"late"}]}`))
	}))
	defer upstream.Close()

	c := NewCalendarClient(upstream.URL, ClientConfig{Timeout: time.Second})
	items, err := c.ListEvents(context.Background(), "k", "cal")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "late", items[0].ID)
}

func TestCalendarClient_TransportErrorHidesAPIKey(t *testing.T) {
	upstream := httptest.NewServer(http.NotFoundHandler())
	addr := upstream.URL
	upstream.Close()

	c := NewCalendarClient(addr, ClientConfig{})
	_, err := c.ListEvents(context.Background(), "SECRET-API-KEY", "team")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.NotContains(t, err.Error(), "SECRET-API-KEY")
	assert.NotContains(t, err.Error(), "key=")
	assert.Contains(t, err.Error(), "/calendars/team/events")
}

func TestClient_CanceledByCaller(t *testing.T) {
	release := make(chan struct{})
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer upstream.Close()
	defer close(release)

	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(20*time.Millisecond, cancel)

	c := NewICSClient(1024, ClientConfig{})
	_, err := c.Fetch(ctx, upstream.URL)
	assert.ErrorIs(t, err, ErrCanceled)
	assert.NotErrorIs(t, err, ErrTimeout)
}

func TestSafeURL(t *testing.T) {
	assert.Equal(t, "https://www.googleapis.com/calendar/v3/calendars/c/events",
		safeURL("https://www.googleapis.com/calendar/v3/calendars/c/events?key=abc&singleEvents=true"))
	assert.Equal(t, "https://host.example/feed.ics", safeURL("https://user:pw@host.example/feed.ics#frag"))
}
