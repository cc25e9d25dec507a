package directory

import (
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"go.uber.org/zap"
)

const (
	contentType     = "application/json"
	contentEncoding = "gzip"
)

type ItemResponse struct {
	Items   []Item `json:"items"`
	Found   int    `json:"found"`
	Pages   int    `json:"pages"`
	Page    int    `json:"page"`
	PerPage int    `json:"per_page"`
}

type Item any

// getItems fetches a listing endpoint and follows pages until the listing
// ends, limit items are collected, or the page cap is reached. A limit of 0
// means no limit.
func (c *Client) getItems(ctx context.Context, endpoint string, q url.Values, limit int) ([]Item, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	req = c.setHeaders(req)
	req.Header.Set("Content-Type", contentType)
	req.URL.RawQuery = q.Encode()

	var items []Item
	for fetched := 0; ; fetched++ {
		resp, err := c.request(ctx, req)
		if err != nil {
			return nil, err
		}

		response, err := parseItemResponse(resp)
		if err != nil {
			return nil, err
		}

		c.logger.Debug("got directory page",
			zap.String("url", req.URL.Path),
			zap.Int("page", response.Page),
			zap.Int("pages", response.Pages),
			zap.Int("found", response.Found),
		)

		items = append(items, response.Items...)

		if limit > 0 && len(items) >= limit {
			return items[:limit], nil
		}
		if response.Page >= response.Pages-1 {
			return items, nil
		}
		if fetched+1 >= c.maxPages {
			c.logger.Warn("directory page cap reached", zap.Int("pages", fetched+1), zap.Int("items", len(items)))
			return items, nil
		}

		req = addPage(req, response.Page+1)
	}
}

func parseItemResponse(resp *http.Response) (*ItemResponse, error) {
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("bad status: %s", resp.Status)
	}

	var body io.Reader = resp.Body
	if resp.Header.Get("Content-Encoding") == "gzip" {
		gz, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, err
		}
		defer gz.Close()
		body = gz
	}

	var response ItemResponse
	if err := json.NewDecoder(body).Decode(&response); err != nil {
		return nil, fmt.Errorf("decode directory response: %w", err)
	}
	return &response, nil
}

func (c *Client) request(ctx context.Context, req *http.Request) (*http.Response, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	c.logger.Debug("make request", zap.String("url", req.URL.String()))
	return c.HTTPClient.Do(req)
}

func (c *Client) setHeaders(req *http.Request) *http.Request {
	if c.token != "" {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.token))
	}
	req.Header.Set("User-Agent", c.UserAgent)
	req.Header.Set("Accept-Encoding", contentEncoding)

	return req
}

// addPage returns a copy of req pointing at the given page.
func addPage(req *http.Request, page int) *http.Request {
	next := req.Clone(req.Context())
	q := next.URL.Query()
	q.Set("page", strconv.Itoa(page))
	next.URL.RawQuery = q.Encode()

	return next
}
