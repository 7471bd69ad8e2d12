package client

import (
	"bufio"
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/JaimeStill/storefront/pkg/decode"
	"github.com/JaimeStill/storefront/pkg/notify"
)

// Stream subscribes to the server-sent event stream at path and delivers each
// decoded notification on the returned channel. The channel closes when ctx
// is cancelled or the server ends the stream. Malformed events are skipped.
func (c *Client) Stream(ctx context.Context, path string) (<-chan notify.Message, error) {
	reqURL := c.resolve(path, nil)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "text/event-stream")
	req.Header.Set("User-Agent", c.userAgent)

	// The stream outlives any request timeout.
	hc := *c.http
	hc.Timeout = 0

	resp, err := hc.Do(req)
	if err != nil {
		return nil, &TransportError{Method: http.MethodGet, URL: reqURL, Err: err}
	}
	if resp.StatusCode != http.StatusOK {
		_ = resp.Body.Close()
		return nil, &TransportError{
			Method: http.MethodGet,
			URL:    reqURL,
			Status: resp.StatusCode,
			Err:    fmt.Errorf("%s", http.StatusText(resp.StatusCode)),
		}
	}

	out := make(chan notify.Message)
	go func() {
		defer close(out)
		defer func() { _ = resp.Body.Close() }()

		scanner := bufio.NewScanner(resp.Body)
		var data strings.Builder

		for scanner.Scan() {
			line := scanner.Text()

			switch {
			case line == "":
				if data.Len() == 0 {
					continue
				}
				msg, err := decode.Raw[notify.Message]([]byte(data.String()))
				data.Reset()
				if err != nil {
					continue
				}
				select {
				case out <- msg:
				case <-ctx.Done():
					return
				}
			case strings.HasPrefix(line, "data:"):
				if data.Len() > 0 {
					data.WriteByte('\n')
				}
				data.WriteString(strings.TrimSpace(strings.TrimPrefix(line, "data:")))
			}
		}
	}()

	return out, nil
}
