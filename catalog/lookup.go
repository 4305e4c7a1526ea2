package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/seowoojae/shelfd/log"
)

// Enrichment is what the secondary lookup can add to a candidate book. A
// zero Page and empty Cover mean the lookup had nothing, which is also what
// every failure collapses into.
type Enrichment struct {
	Page  int    `json:"page"`
	Cover string `json:"-"`
}

// MarshalJSON emits a missing cover as null rather than "".
func (e Enrichment) MarshalJSON() ([]byte, error) {
	var cover *string
	if e.Cover != "" {
		cover = &e.Cover
	}
	return json.Marshal(struct {
		Page  int     `json:"page"`
		Cover *string `json:"cover"`
	}{Page: e.Page, Cover: cover})
}

type lookupResponse struct {
	ErrorCode int `json:"errorCode"`
	Item      []struct {
		Cover   string `json:"cover"`
		SubInfo struct {
			ItemPage int `json:"itemPage"`
		} `json:"subInfo"`
	} `json:"item"`
}

// Lookup resolves page count and a higher-resolution cover for an ISBN
// field. The field may hold several space-separated codes; the first
// 13-digit code wins, else the first 10-digit one. Lookup never fails: any
// upstream or transport error is logged and swallowed, the book is simply
// added without enrichment.
func (c *Client) Lookup(ctx context.Context, isbn string) Enrichment {
	code, idType := PickISBN(isbn)
	if code == "" {
		return Enrichment{}
	}

	u := fmt.Sprintf("%s?ttbkey=%s&itemIdType=%s&ItemId=%s&output=js&Version=20131101&OptResult=packing",
		c.lookupURL, c.lookupKey, idType, code)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		log.Warn("Failed to build lookup request", zap.Error(err))
		return Enrichment{}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Warn("Lookup request failed", zap.String("isbn", code), zap.Error(err))
		return Enrichment{}
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		log.Warn("Lookup upstream returned non-OK", zap.Int("status", resp.StatusCode))
		return Enrichment{}
	}

	var body lookupResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		log.Warn("Failed to decode lookup response", zap.Error(err))
		return Enrichment{}
	}
	if body.ErrorCode != 0 || len(body.Item) == 0 {
		return Enrichment{}
	}

	item := body.Item[0]
	return Enrichment{
		Page:  item.SubInfo.ItemPage,
		Cover: RewriteCoverURL(item.Cover),
	}
}

// PickISBN selects the code the lookup should use out of a space-separated
// ISBN field. It returns the code and the upstream id-type parameter for it.
func PickISBN(field string) (code, idType string) {
	for _, part := range strings.Fields(field) {
		if len(part) == 13 {
			return part, "ISBN13"
		}
	}
	for _, part := range strings.Fields(field) {
		if len(part) == 10 {
			return part, "ISBN"
		}
	}
	return "", ""
}

// RewriteCoverURL upgrades thumbnail-resolution cover paths to the
// high-resolution variant.
func RewriteCoverURL(cover string) string {
	if cover == "" {
		return ""
	}
	cover = strings.Replace(cover, "/coversum/", "/cover500/", 1)
	cover = strings.Replace(cover, "/cover/", "/cover500/", 1)
	return cover
}
