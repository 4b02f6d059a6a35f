package ndbc

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// The three "no data found" conditions the pipeline can fail fast on. Each
// is distinct so callers can tell which stage came up empty. None of them is
// ever retried.
var (
	ErrNoBuoy         = errors.New("no buoy found in dataset catalog")
	ErrNoFiles        = errors.New("no data files found for buoy")
	ErrNoMatchingFile = errors.New("no data file matches the given year/datatype")
)

// Buoy runs the full pipeline for one request: discover the buoy in the
// dataset catalog, list its data files, select exactly one using the
// optional year (0 = unset) and datatype ("" = unset) hints, download it and
// decode it. The buoy id is matched case-insensitively. The pipeline is
// strictly sequential; cancel it through ctx and the underlying transport.
func (c *Client) Buoy(ctx context.Context, dataset, buoyID string, year int, datatype string) (*BuoyDataset, error) {
	buoyID = strings.ToLower(strings.TrimSpace(buoyID))

	var entry *CatalogEntry
	for _, e := range c.Buoys(ctx, dataset) {
		if e.ID == buoyID {
			entry = &e
			break
		}
	}
	if entry == nil {
		return nil, fmt.Errorf("%w: %s/%s", ErrNoBuoy, dataset, buoyID)
	}

	files, err := c.BuoyFiles(ctx, entry.URL, buoyID)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w: %s/%s", ErrNoFiles, dataset, buoyID)
	}

	filename, ok := c.selectFile(files, year, datatype)
	if !ok {
		return nil, fmt.Errorf("%w: %s/%s year=%d datatype=%q",
			ErrNoMatchingFile, dataset, buoyID, year, datatype)
	}

	srcURL := c.FileURL(dataset, buoyID, filename)
	path, err := c.download(ctx, srcURL, dataset, buoyID, filename)
	if err != nil {
		return nil, err
	}
	return c.decode(path)
}
