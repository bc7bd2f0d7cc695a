package dashboard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"
)

// ErrStatus is wrapped by errors for non-success API responses.
var ErrStatus = errors.New("unexpected status")

type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Fetch returns every page of q's result sorted by ascending date. Paging stops
// at a 204 response or when the API reports no next page.
func (c *Client) Fetch(ctx context.Context, q Query) ([]*Record, error) {
	structure, err := json.Marshal(q.Structure)
	if err != nil {
		return nil, fmt.Errorf("Client Fetch marshal structure error: %w", err)
	}
	var records []*Record
	for n := 1; ; n++ {
		p, err := c.fetchPage(ctx, q.Filters, string(structure), n)
		if err != nil {
			return nil, err
		}
		if p == nil {
			break
		}
		records = append(records, p.Data...)
		if p.Pagination.Next == nil || *p.Pagination.Next == "" {
			break
		}
	}
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Date.Time().Before(records[j].Date.Time())
	})
	return records, nil
}

func (c *Client) fetchPage(ctx context.Context, filters []string, structure string, n int) (*page, error) {
	params := url.Values{
		"filters":   {strings.Join(filters, ";")},
		"structure": {structure},
		"format":    {"json"},
		"page":      {strconv.Itoa(n)},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v1/data?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("Client fetchPage create request error: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("Client fetchPage page %d request error: %w", n, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNoContent {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("Client fetchPage page %d: %w %d: %s", n, ErrStatus, resp.StatusCode, body)
	}

	var p page
	if err := json.NewDecoder(resp.Body).Decode(&p); err != nil {
		return nil, fmt.Errorf("Client fetchPage page %d decode error: %w", n, err)
	}
	return &p, nil
}
