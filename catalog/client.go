// Package catalog talks to the two external book-metadata services: the
// primary keyword-search catalog and the secondary per-ISBN lookup used to
// fill in page counts and better cover art.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/seowoojae/shelfd/config"
	"github.com/seowoojae/shelfd/log"
	"github.com/seowoojae/shelfd/model"
)

type Client struct {
	httpClient *http.Client

	searchURL string
	searchKey string
	lookupURL string
	lookupKey string
}

func NewClient(opts *config.Options) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		searchURL:  opts.SearchEndpoint,
		searchKey:  opts.SearchAPIKey,
		lookupURL:  opts.LookupEndpoint,
		lookupKey:  opts.LookupAPIKey,
	}
}

type searchResponse struct {
	Documents []model.CandidateBook `json:"documents"`
}

// Search queries the primary catalog by title. Page and size are forwarded
// verbatim; a shorter-than-size result is how callers detect the last page.
func (c *Client) Search(ctx context.Context, query string, page, size int) ([]model.CandidateBook, error) {
	if query == "" {
		return nil, errors.New("empty search query")
	}
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = 20
	}

	u := fmt.Sprintf("%s?query=%s&target=title&page=%d&size=%d",
		c.searchURL, url.QueryEscape(query), page, size)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build search request")
	}
	req.Header.Set("Authorization", "KakaoAK "+c.searchKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "search request failed")
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("search upstream returned %d", resp.StatusCode)
	}

	var body searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, errors.Wrap(err, "failed to decode search response")
	}
	if body.Documents == nil {
		return []model.CandidateBook{}, nil
	}
	return body.Documents, nil
}

// SearchOrEmpty is the degrading form of Search: any transport or upstream
// failure is logged and collapsed into an empty result list, which callers
// cannot tell apart from a true zero-match search.
func (c *Client) SearchOrEmpty(ctx context.Context, query string, page, size int) []model.CandidateBook {
	docs, err := c.Search(ctx, query, page, size)
	if err != nil {
		log.Warn("Search degraded to empty result", zap.String("query", query), zap.Error(err))
		return []model.CandidateBook{}
	}
	return docs
}
