package provider

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"portal/internal/media"
)

func newEpisodeServer(t *testing.T, hits *atomic.Int32) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits != nil {
			hits.Add(1)
		}
		if r.URL.Path != "/api/episode" {
			http.NotFound(w, r)
			return
		}
		var fixture string
		switch r.URL.Query().Get("page") {
		case "1":
			fixture = "episodes_page1.json"
		case "2":
			fixture = "episodes_page2.json"
		default:
			http.NotFound(w, r)
			return
		}
		data, err := os.ReadFile(filepath.Join("testdata", fixture))
		if err != nil {
			t.Errorf("reading fixture: %v", err)
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write(data)
	}))
}

func TestRickAndMortyEpisodes(t *testing.T) {
	srv := newEpisodeServer(t, nil)
	defer srv.Close()

	videos, _ := NewVideoIndex(map[string]string{"S01": "https://cdn.example.com/s1.mp4"})
	p := NewRickAndMorty(srv.URL, WithClient(srv.Client()), WithVideos(videos), WithRateLimit(time.Millisecond))

	page, err := p.Episodes(context.Background(), 1)
	if err != nil {
		t.Fatalf("Episodes(1) error: %v", err)
	}
	if !page.HasNext {
		t.Error("page 1 should have a next page")
	}
	if len(page.Episodes) != 2 {
		t.Fatalf("expected 2 episodes, got %d", len(page.Episodes))
	}

	pilot := page.Episodes[0]
	if pilot.Name != "Pilot" || pilot.Episode != "S01E01" || pilot.ID != 1 {
		t.Errorf("pilot = %+v", pilot)
	}
	if pilot.Season != media.Season1 {
		t.Errorf("pilot season = %v, want SEASON_1", pilot.Season)
	}
	if pilot.VideoURL != "https://cdn.example.com/s1.mp4" {
		t.Errorf("pilot video = %q", pilot.VideoURL)
	}

	second := page.Episodes[1]
	if second.Season != media.Season2 {
		t.Errorf("second season = %v, want SEASON_2", second.Season)
	}
	if second.VideoURL != "" {
		t.Errorf("season 2 has no video configured, got %q", second.VideoURL)
	}
}

func TestRickAndMortyLastPage(t *testing.T) {
	srv := newEpisodeServer(t, nil)
	defer srv.Close()

	p := NewRickAndMorty(srv.URL, WithClient(srv.Client()))

	page, err := p.Episodes(context.Background(), 2)
	if err != nil {
		t.Fatalf("Episodes(2) error: %v", err)
	}
	if page.HasNext {
		t.Error("page 2 is the last page")
	}
	if page.Episodes[0].Season != media.SeasonUnknown {
		t.Errorf("unparseable code should map to UNKNOWN, got %v", page.Episodes[0].Season)
	}
}

func TestRickAndMortyErrors(t *testing.T) {
	srv := newEpisodeServer(t, nil)
	defer srv.Close()

	p := NewRickAndMorty(srv.URL, WithClient(srv.Client()))

	if _, err := p.Episodes(context.Background(), 0); err == nil {
		t.Error("page 0 should be rejected")
	}
	if _, err := p.Episodes(context.Background(), 3); err == nil {
		t.Error("missing page should return an error")
	}
}

func TestCachedServesFromDisk(t *testing.T) {
	var hits atomic.Int32
	srv := newEpisodeServer(t, &hits)
	defer srv.Close()

	inner := NewRickAndMorty(srv.URL, WithClient(srv.Client()))
	cachePath := filepath.Join(t.TempDir(), "pages.json")

	c := NewCached(inner, cachePath, time.Hour)
	first, err := c.Episodes(context.Background(), 1)
	if err != nil {
		t.Fatalf("first Episodes() error: %v", err)
	}

	// A fresh wrapper over the same file must not hit the network.
	c2 := NewCached(inner, cachePath, time.Hour)
	second, err := c2.Episodes(context.Background(), 1)
	if err != nil {
		t.Fatalf("cached Episodes() error: %v", err)
	}

	if hits.Load() != 1 {
		t.Errorf("server hit %d times, want 1", hits.Load())
	}
	if len(second.Episodes) != len(first.Episodes) || second.Episodes[0].Name != "Pilot" {
		t.Errorf("cached page = %+v", second)
	}
	if second.Episodes[0].Season != media.Season1 {
		t.Errorf("cached season = %v", second.Episodes[0].Season)
	}
}
