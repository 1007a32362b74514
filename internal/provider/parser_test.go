package provider

import (
	"net/url"
	"os"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"

	"portal/internal/media"
)

func loadTestDoc(t *testing.T, filename string) *goquery.Document {
	t.Helper()
	data, err := os.ReadFile("testdata/" + filename)
	if err != nil {
		t.Fatalf("reading test fixture %s: %v", filename, err)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(data)))
	if err != nil {
		t.Fatalf("parsing test fixture %s: %v", filename, err)
	}
	return doc
}

func TestParseVideoIndex(t *testing.T) {
	doc := loadTestDoc(t, "video_index.html")
	base, _ := url.Parse("https://videos.example.com/index.html")

	idx := parseVideoIndex(doc, base)

	tests := []struct {
		name   string
		code   string
		season media.Season
		want   string
	}{
		{"exact code", "S01E01", media.Season1, "https://cdn.example.com/s01e01.mp4"},
		{"lowercase code, relative href", "S02E03", media.Season2, "https://videos.example.com/media/s02e03.mp4"},
		{"season by number", "S03E05", media.Season3, "https://cdn.example.com/season3.mp4"},
		{"season by name", "S04E01", media.Season4, "https://cdn.example.com/season4.mp4"},
		{"javascript href dropped", "S01E02", media.Season1, ""},
		{"file href dropped", "S01E03", media.Season1, ""},
		{"unknown season", "S05E01", media.Season5, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := idx.Resolve(tt.code, tt.season); got != tt.want {
				t.Errorf("Resolve(%q, %v) = %q, want %q", tt.code, tt.season, got, tt.want)
			}
		})
	}

	if idx.Len() != 4 {
		t.Errorf("index has %d entries, want 4", idx.Len())
	}
}

func TestNewVideoIndex(t *testing.T) {
	idx, rejected := NewVideoIndex(map[string]string{
		"S01E01":  "https://a.example/pilot.mp4",
		"season2": "https://a.example/s2.mp4",
		"S03":     "https://a.example/s3.mp4",
		"bogus":   "https://a.example/x.mp4",
		"S04":     "",
	})

	if len(rejected) != 2 {
		t.Errorf("rejected = %v, want 2 keys", rejected)
	}
	if got := idx.Resolve("S01E01", media.Season1); got != "https://a.example/pilot.mp4" {
		t.Errorf("code lookup = %q", got)
	}
	if got := idx.Resolve("S02E09", media.Season2); got != "https://a.example/s2.mp4" {
		t.Errorf("season2 lookup = %q", got)
	}
	if got := idx.Resolve("S03E01", media.Season3); got != "https://a.example/s3.mp4" {
		t.Errorf("season3 lookup = %q", got)
	}
	if got := idx.Resolve("S01E02", media.Season1); got != "" {
		t.Errorf("unmapped episode = %q, want empty", got)
	}
}

func TestVideoIndexMergeKeepsExisting(t *testing.T) {
	local, _ := NewVideoIndex(map[string]string{"S01": "https://local/s1.mp4"})
	remote, _ := NewVideoIndex(map[string]string{
		"S01": "https://remote/s1.mp4",
		"S02": "https://remote/s2.mp4",
	})

	local.Merge(remote)

	if got := local.Resolve("S01E01", media.Season1); got != "https://local/s1.mp4" {
		t.Errorf("merge overwrote local entry: %q", got)
	}
	if got := local.Resolve("S02E01", media.Season2); got != "https://remote/s2.mp4" {
		t.Errorf("merge dropped remote entry: %q", got)
	}
}

func TestNilVideoIndexResolves(t *testing.T) {
	var idx *VideoIndex
	if got := idx.Resolve("S01E01", media.Season1); got != "" {
		t.Errorf("nil index resolved %q", got)
	}
}

func TestFormatDisplayTitle(t *testing.T) {
	tests := []struct {
		ep   media.Episode
		want string
	}{
		{media.Episode{Episode: "S01E01", Name: "Pilot", AirDate: "December 2, 2013"}, "S01E01 · Pilot (December 2, 2013)"},
		{media.Episode{Episode: "Pilot", Name: "Pilot"}, "Pilot"},
		{media.Episode{Name: "Pilot"}, "Pilot"},
	}
	for _, tt := range tests {
		if got := FormatDisplayTitle(tt.ep); got != tt.want {
			t.Errorf("FormatDisplayTitle(%+v) = %q, want %q", tt.ep, got, tt.want)
		}
	}
}
