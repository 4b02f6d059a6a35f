package ndbc

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

const datasetCatalogPage = `<html><body>
<h1>Catalog data/cwind</h1>
<a href="41001/catalog.html"><tt>41001/</tt></a>
<a href="VCAF1/catalog.html"><tt>VCAF1/</tt></a>
<a href="catalog.xml"><tt>catalog.xml</tt></a>
</body></html>`

func TestBuoys(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/thredds/catalog/data/cwind/catalog.html" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(datasetCatalogPage))
	}))
	defer srv.Close()

	c := NewClient(WithBaseURLs(srv.URL+"/thredds/catalog/data/", srv.URL+"/thredds/fileServer/data/"))
	entries := c.Buoys(context.Background(), "cwind")

	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %v", entries)
	}
	// IDs lower-cased, page URLs built from the catalog template.
	if entries[0].ID != "41001" || entries[1].ID != "vcaf1" {
		t.Errorf("unexpected ids: %q, %q", entries[0].ID, entries[1].ID)
	}
	wantURL := srv.URL + "/thredds/catalog/data/cwind/vcaf1/catalog.html"
	if entries[1].URL != wantURL {
		t.Errorf("expected URL %q, got %q", wantURL, entries[1].URL)
	}
}

func TestBuoysEmptyOnUnreachableListing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(http.NotFound))
	defer srv.Close()

	c := NewClient(WithBaseURLs(srv.URL+"/thredds/catalog/data/", srv.URL+"/thredds/fileServer/data/"))
	if entries := c.Buoys(context.Background(), "nosuch"); len(entries) != 0 {
		t.Fatalf("expected empty catalog, got %v", entries)
	}
}
