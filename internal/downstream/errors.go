package downstream

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

var (
	ErrTimeout     = errors.New("downstream_timeout")
	ErrUnavailable = errors.New("downstream_unavailable")
	ErrCanceled    = errors.New("downstream_canceled")
	ErrTooLarge    = errors.New("downstream_body_too_large")
)

// maxErrorBody bounds how much of a failed response ends up in error details.
const maxErrorBody = 512

// StatusError is returned when an upstream answers with a non-2xx status.
type StatusError struct {
	Source     string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s responded with status %d", e.Source, e.StatusCode)
	}
	return fmt.Sprintf("%s responded with status %d: %s", e.Source, e.StatusCode, e.Body)
}

// checkStatus turns a non-2xx response into a *StatusError, reading a
// bounded excerpt of the body.
func checkStatus(source string, resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode <= 299 {
		return nil
	}
	excerpt, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	return &StatusError{
		Source:     source,
		StatusCode: resp.StatusCode,
		Body:       strings.TrimSpace(string(excerpt)),
	}
}

func decodeJSON(source string, r io.Reader, v any) error {
	if err := json.NewDecoder(r).Decode(v); err != nil {
		return fmt.Errorf("decode %s response: %w", source, err)
	}
	return nil
}
