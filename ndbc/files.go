package ndbc

import (
	"context"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// BuoyFiles scrapes a station's catalog page and returns the netCDF
// filenames available for that buoy, with the buoy id substring removed
// (case-insensitively). What remains follows the "<typecode><year>.nc"
// convention, e.g. "c2008.nc". Listing order is preserved exactly: the
// server lists the most recent file first and the no-hint selection path
// relies on that.
func (c *Client) BuoyFiles(ctx context.Context, pageURL, buoyID string) ([]string, error) {
	doc, err := c.fetchDocument(ctx, pageURL)
	if err != nil {
		return nil, err
	}

	idPattern, err := regexp.Compile("(?i)" + regexp.QuoteMeta(buoyID))
	if err != nil {
		return nil, err
	}

	var files []string
	doc.Find("a").Each(func(_ int, a *goquery.Selection) {
		text := strings.TrimSpace(a.Text())
		if !strings.HasSuffix(text, ".nc") {
			return
		}
		files = append(files, idPattern.ReplaceAllString(text, ""))
	})
	return files, nil
}

// selectFile picks exactly one candidate filename. A zero year and empty
// datatype mean "no hint": the first listed file wins. With hints, selection
// is plain substring containment; when both hints are given the datatype
// must immediately precede the year. The boolean is false when nothing
// matches.
func (c *Client) selectFile(files []string, year int, datatype string) (string, bool) {
	if len(files) == 0 {
		return "", false
	}

	var needle string
	switch {
	case year == 0 && datatype == "":
		c.logger.Info().Str("file", files[0]).Msg("no year or datatype given; using first listed file")
		return files[0], true
	case year != 0 && datatype != "":
		needle = datatype + strconv.Itoa(year)
	case year != 0:
		needle = strconv.Itoa(year)
	default:
		needle = datatype
	}

	return c.firstMatch(files, needle, func(f string) bool {
		return strings.Contains(f, needle)
	})
}

// firstMatch is the single disambiguation policy shared by all hinted
// selection paths: scan in listing order, return the first candidate the
// predicate accepts. Multiple matches are resolved silently in favor of the
// first, with an informational note.
func (c *Client) firstMatch(files []string, hint string, pred func(string) bool) (string, bool) {
	var matches []string
	for _, f := range files {
		if pred(f) {
			matches = append(matches, f)
		}
	}
	if len(matches) == 0 {
		return "", false
	}
	if len(matches) > 1 {
		c.logger.Info().
			Str("hint", hint).
			Int("candidates", len(matches)).
			Str("file", matches[0]).
			Msg("multiple files match; using first")
	}
	return matches[0], true
}
