package ndbc

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// download performs a single blocking fetch of srcURL to scratch disk and
// returns the local path. Each call stages into its own directory so
// concurrent invocations never share a destination; the file name embeds
// dataset, buoy and filename. Transport errors and non-200 statuses surface
// verbatim, with no retries. The caller owns cleanup of the staging
// directory.
func (c *Client) download(ctx context.Context, srcURL, dataset, buoyID, filename string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srcURL, nil)
	if err != nil {
		return "", err
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	c.logger.Debug().Str("url", srcURL).Msg("downloading data file")
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("downloading %s: HTTP %d", srcURL, resp.StatusCode)
	}

	dir := filepath.Join(c.scratchDir, "ndbc-"+uuid.NewString())
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	dest := filepath.Join(dir, dataset+"-"+buoyID+filename)

	f, err := os.Create(dest)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if _, err := io.Copy(f, resp.Body); err != nil {
		return "", err
	}
	return dest, nil
}
