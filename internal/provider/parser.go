package provider

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"portal/internal/httputil"
	"portal/internal/media"
)

// VideoIndex maps episodes to video URLs, first by exact episode code and
// then by season.
type VideoIndex struct {
	byCode   map[string]string
	bySeason map[media.Season]string
}

// NewVideoIndex builds an index from a table whose keys are either episode
// codes ("S01E01") or seasons ("S01", "season1"). Unrecognised keys are
// returned so the caller can report them.
func NewVideoIndex(table map[string]string) (*VideoIndex, []string) {
	idx := &VideoIndex{
		byCode:   make(map[string]string),
		bySeason: make(map[media.Season]string),
	}

	var rejected []string
	for k, v := range table {
		if !idx.add(k, v) {
			rejected = append(rejected, k)
		}
	}
	return idx, rejected
}

// Resolve implements VideoResolver.
func (v *VideoIndex) Resolve(code string, season media.Season) string {
	if v == nil {
		return ""
	}
	if u, ok := v.byCode[strings.ToUpper(code)]; ok {
		return u
	}
	return v.bySeason[season]
}

// Len returns the number of entries in the index.
func (v *VideoIndex) Len() int {
	return len(v.byCode) + len(v.bySeason)
}

// Merge copies entries from other that are not already present.
func (v *VideoIndex) Merge(other *VideoIndex) {
	if other == nil {
		return
	}
	for k, u := range other.byCode {
		if _, ok := v.byCode[k]; !ok {
			v.byCode[k] = u
		}
	}
	for s, u := range other.bySeason {
		if _, ok := v.bySeason[s]; !ok {
			v.bySeason[s] = u
		}
	}
}

func (v *VideoIndex) add(key, videoURL string) bool {
	key = strings.ToUpper(strings.TrimSpace(key))
	videoURL = strings.TrimSpace(videoURL)
	if key == "" || videoURL == "" {
		return false
	}

	if httputil.ValidateEpisodeCode(key) == nil {
		v.byCode[key] = videoURL
		return true
	}

	key = strings.TrimPrefix(key, "SEASON")
	if !strings.HasPrefix(key, "S") {
		key = "S" + key
	}
	if s := media.ParseSeason(key); s != media.SeasonUnknown {
		v.bySeason[s] = videoURL
		return true
	}
	return false
}

// FetchVideoIndex downloads and parses an HTML video index page.
func FetchVideoIndex(ctx context.Context, client *http.Client, pageURL string) (*VideoIndex, error) {
	body, err := httputil.GetHTML(ctx, client, pageURL)
	if err != nil {
		return nil, fmt.Errorf("fetching video index: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parsing video index: %w", err)
	}

	base, _ := url.Parse(pageURL)
	return parseVideoIndex(doc, base), nil
}

// parseVideoIndex extracts video links from an index document.
// Links are <a data-episode="S01E01" href="..."> or <a data-season="1" href="...">.
// Relative hrefs are resolved against base; non-http(s) links are dropped.
func parseVideoIndex(doc *goquery.Document, base *url.URL) *VideoIndex {
	idx, _ := NewVideoIndex(nil)

	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href := resolveHref(base, s.AttrOr("href", ""))
		if href == "" {
			return
		}

		if code, ok := s.Attr("data-episode"); ok {
			idx.add(code, href)
			return
		}
		if season, ok := s.Attr("data-season"); ok {
			idx.add(season, href)
		}
	})

	return idx
}

func resolveHref(base *url.URL, href string) string {
	href = strings.TrimSpace(href)
	if href == "" {
		return ""
	}

	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	if base != nil {
		ref = base.ResolveReference(ref)
	}

	if httputil.ValidatePlayableURL(ref.String()) != nil {
		return ""
	}
	return ref.String()
}
