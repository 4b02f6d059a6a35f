// Package ndbc retrieves oceanographic buoy observations published by the
// US National Data Buoy Center. It discovers stations and data files from
// the NDBC THREDDS directory listings, downloads a selected netCDF file and
// decodes it into a flat, row-oriented table with per-variable metadata.
package ndbc

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog"
)

const (
	defaultCatalogBase     = "https://dods.ndbc.noaa.gov/thredds/catalog/data/"
	defaultFileServerBase  = "https://dods.ndbc.noaa.gov/thredds/fileServer/data/"
	defaultStationPageBase = "https://www.ndbc.noaa.gov/station_page.php?station="
)

// Datasets lists the NDBC data collections known to be published on the
// THREDDS server. The list is informational; any string is accepted as a
// dataset name, unknown ones simply yield an empty catalog.
var Datasets = []string{
	"adcp", "adcp2", "cwind", "dart", "mmbcur",
	"ocean", "pwind", "stdmet", "swden", "wlevel",
}

// Client talks to the NDBC catalog, file server and station pages. The zero
// value is not usable; construct one with NewClient. A Client is safe for
// concurrent use: it holds no per-request state and every download gets its
// own staging directory.
type Client struct {
	httpClient      *http.Client
	catalogBase     string
	fileServerBase  string
	stationPageBase string
	userAgent       string
	scratchDir      string
	logger          zerolog.Logger

	// decode is the netCDF decoding step, indirected so the pipeline can be
	// exercised without real netCDF fixtures.
	decode func(path string) (*BuoyDataset, error)
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets the HTTP client used for all fetches. Transport
// behavior (timeouts, proxies, TLS) is entirely the caller's.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithLogger sets the logger used for informational notes, such as which
// file was chosen when a request is ambiguous.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// WithScratchDir sets the directory under which downloaded files are staged.
func WithScratchDir(dir string) Option {
	return func(c *Client) { c.scratchDir = dir }
}

// WithUserAgent sets the User-Agent header sent on all requests.
func WithUserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = ua }
}

// WithBaseURLs overrides the THREDDS catalog and fileServer roots. Both must
// end with a trailing slash.
func WithBaseURLs(catalog, fileServer string) Option {
	return func(c *Client) {
		c.catalogBase = catalog
		c.fileServerBase = fileServer
	}
}

// WithStationPageBase overrides the station metadata page URL prefix.
func WithStationPageBase(base string) Option {
	return func(c *Client) { c.stationPageBase = base }
}

// NewClient returns a Client with NOAA production endpoints, a 30 second
// HTTP timeout, the OS temp directory as scratch space and a no-op logger.
func NewClient(opts ...Option) *Client {
	c := &Client{
		httpClient:      &http.Client{Timeout: 30 * time.Second},
		catalogBase:     defaultCatalogBase,
		fileServerBase:  defaultFileServerBase,
		stationPageBase: defaultStationPageBase,
		scratchDir:      os.TempDir(),
		logger:          zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.decode == nil {
		c.decode = Decode
	}
	return c
}

// fetchDocument fetches a URL and parses the response body as HTML. A
// non-200 status is an error; the body is always closed.
func (c *Client) fetchDocument(ctx context.Context, url string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	c.logger.Debug().Str("url", url).Msg("fetching listing")
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching %s: HTTP %d", url, resp.StatusCode)
	}
	return goquery.NewDocumentFromReader(resp.Body)
}
