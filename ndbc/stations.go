package ndbc

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"
)

// Station is one row of the scraped station location table.
type Station struct {
	ID   string
	Name string
	Lat  float64
	Lon  float64
}

// Station pages print coordinates like "32.501 N 79.099 W".
var coordPattern = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*°?\s*([NS])\s+(\d+(?:\.\d+)?)\s*°?\s*([EW])`)

// Stations fetches the NDBC metadata page for every given station id and
// returns the ones that could be located. Fetches fan out concurrently with
// no ordering guarantee on the output; pages that fail to load or parse are
// dropped silently. Best-effort, not exhaustive.
func (c *Client) Stations(ctx context.Context, ids []string) []Station {
	results := make(chan Station, len(ids))

	var wg sync.WaitGroup
	for _, id := range ids {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			st, err := c.station(ctx, id)
			if err != nil {
				c.logger.Debug().Err(err).Str("station", id).Msg("skipping station")
				return
			}
			results <- st
		}(id)
	}
	wg.Wait()
	close(results)

	var out []Station
	for st := range results {
		out = append(out, st)
	}
	return out
}

func (c *Client) station(ctx context.Context, id string) (Station, error) {
	doc, err := c.fetchDocument(ctx, c.stationPageBase+id)
	if err != nil {
		return Station{}, err
	}

	m := coordPattern.FindStringSubmatch(doc.Text())
	if m == nil {
		return Station{}, fmt.Errorf("station %s: no coordinates on page", id)
	}
	lat, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return Station{}, err
	}
	lon, err := strconv.ParseFloat(m[3], 64)
	if err != nil {
		return Station{}, err
	}
	if m[2] == "S" {
		lat = -lat
	}
	if m[4] == "W" {
		lon = -lon
	}

	return Station{
		ID:   strings.ToLower(id),
		Name: strings.TrimSpace(doc.Find("h1").First().Text()),
		Lat:  lat,
		Lon:  lon,
	}, nil
}
