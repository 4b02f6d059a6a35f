package ndbc

import (
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// CatalogEntry is one station folder discovered in a dataset's THREDDS
// catalog listing. IDs are lower-cased so matching against user input is
// case-insensitive.
type CatalogEntry struct {
	ID  string
	URL string
}

// Buoys scrapes the catalog listing for a dataset and returns one entry per
// station subdirectory, in listing order. An unreachable or empty listing
// yields an empty result rather than an error; downstream callers report
// that as "no buoy found".
func (c *Client) Buoys(ctx context.Context, dataset string) []CatalogEntry {
	listURL := c.catalogBase + dataset + "/catalog.html"
	doc, err := c.fetchDocument(ctx, listURL)
	if err != nil {
		c.logger.Debug().Err(err).Str("dataset", dataset).Msg("catalog listing unavailable")
		return nil
	}

	var entries []CatalogEntry
	doc.Find("a").Each(func(_ int, a *goquery.Selection) {
		text := strings.TrimSpace(a.Text())
		// Subdirectories render with a trailing slash; everything else on
		// the page is navigation or a file.
		if !strings.HasSuffix(text, "/") {
			return
		}
		id := strings.ToLower(strings.TrimSuffix(text, "/"))
		if id == "" {
			return
		}
		entries = append(entries, CatalogEntry{
			ID:  id,
			URL: c.catalogBase + dataset + "/" + id + "/catalog.html",
		})
	})
	return entries
}
