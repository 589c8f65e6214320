package downstream

import (
	"context"
	"fmt"
	"io"
)

const SourceICS = "ics"

// ICSClient downloads calendar documents from caller-supplied URLs.
type ICSClient struct {
	http     *Client
	maxBytes int64
}

func NewICSClient(maxBytes int64, cfg ClientConfig) *ICSClient {
	cfg.Source = SourceICS
	return &ICSClient{http: NewClient(cfg), maxBytes: maxBytes}
}

// Fetch returns the raw document. Bodies larger than maxBytes fail with
// ErrTooLarge rather than being truncated into an unparseable document.
func (c *ICSClient) Fetch(ctx context.Context, url string) ([]byte, error) {
	resp, err := c.http.Get(ctx, url, map[string]string{
		"Accept": "text/calendar, */*;q=0.8",
	})
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if err := checkStatus(SourceICS, resp); err != nil {
		return nil, err
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read ics body: %w", err)
	}
	if int64(len(body)) > c.maxBytes {
		return nil, fmt.Errorf("%w: ics document exceeds %d bytes", ErrTooLarge, c.maxBytes)
	}
	return body, nil
}
