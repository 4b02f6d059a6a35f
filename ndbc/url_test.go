package ndbc

import "testing"

func TestFileURL(t *testing.T) {
	c := NewClient()

	got := c.FileURL("cwind", "46085", "c2020.nc")
	want := "https://dods.ndbc.noaa.gov/thredds/fileServer/data/cwind/46085/46085c2020.nc"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

// The builder is a pure function of (dataset, buoyid, filename): distinct
// alphanumeric inputs must yield distinct URLs with no encoding surprises.
func TestFileURLInjective(t *testing.T) {
	c := NewClient()

	triples := [][3]string{
		{"cwind", "46085", "c2020.nc"},
		{"cwind", "46085", "c2021.nc"},
		{"cwind", "41001", "c2020.nc"},
		{"stdmet", "46085", "c2020.nc"},
	}
	seen := map[string][3]string{}
	for _, tr := range triples {
		u := c.FileURL(tr[0], tr[1], tr[2])
		if prev, dup := seen[u]; dup {
			t.Errorf("URL collision: %v and %v both map to %q", prev, tr, u)
		}
		seen[u] = tr
	}
}
