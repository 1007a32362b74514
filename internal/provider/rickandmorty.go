package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/samber/lo"
	"golang.org/x/time/rate"

	"portal/internal/httputil"
	"portal/internal/media"
)

// RickAndMorty implements the Provider interface for the public
// Rick and Morty episode API.
type RickAndMorty struct {
	base    string // e.g., "https://rickandmortyapi.com"
	client  *http.Client
	videos  VideoResolver
	limiter *rate.Limiter
}

// Option configures a RickAndMorty provider.
type Option func(*RickAndMorty)

// WithClient overrides the HTTP client.
func WithClient(c *http.Client) Option {
	return func(r *RickAndMorty) { r.client = c }
}

// WithVideos sets the resolver used to attach video URLs to episodes.
func WithVideos(v VideoResolver) Option {
	return func(r *RickAndMorty) { r.videos = v }
}

// WithRateLimit sets the minimum interval between API requests.
func WithRateLimit(every time.Duration) Option {
	return func(r *RickAndMorty) { r.limiter = rate.NewLimiter(rate.Every(every), 1) }
}

// NewRickAndMorty creates a new provider for the API at base.
func NewRickAndMorty(base string, opts ...Option) *RickAndMorty {
	r := &RickAndMorty{
		base:    base,
		client:  httputil.NewClient(),
		limiter: rate.NewLimiter(rate.Every(200*time.Millisecond), 2),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

type episodeResponse struct {
	Info struct {
		Count int     `json:"count"`
		Pages int     `json:"pages"`
		Next  *string `json:"next"`
	} `json:"info"`
	Results []episodeDTO `json:"results"`
}

type episodeDTO struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	AirDate string `json:"air_date"`
	Episode string `json:"episode"`
}

// Episodes returns one page of episodes.
func (r *RickAndMorty) Episodes(ctx context.Context, page int) (Page, error) {
	if page < 1 {
		return Page{}, fmt.Errorf("invalid page %d", page)
	}

	if err := r.limiter.Wait(ctx); err != nil {
		return Page{}, err
	}

	pageURL := httputil.BuildURL(r.base, "api", "episode") + "?" + url.Values{"page": {strconv.Itoa(page)}}.Encode()
	body, err := httputil.GetJSON(ctx, r.client, pageURL)
	if err != nil {
		return Page{}, fmt.Errorf("fetching episodes page %d: %w", page, err)
	}

	return r.parsePage(body)
}

func (r *RickAndMorty) parsePage(body []byte) (Page, error) {
	var resp episodeResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return Page{}, fmt.Errorf("decoding episodes: %w", err)
	}

	episodes := lo.Map(resp.Results, func(dto episodeDTO, _ int) media.Episode {
		return r.toDomain(dto)
	})

	return Page{
		Episodes: episodes,
		HasNext:  resp.Info.Next != nil && *resp.Info.Next != "",
	}, nil
}

func (r *RickAndMorty) toDomain(dto episodeDTO) media.Episode {
	season := media.ParseSeason(dto.Episode)

	var video string
	if r.videos != nil {
		video = r.videos.Resolve(dto.Episode, season)
	}

	return media.Episode{
		ID:       dto.ID,
		Name:     dto.Name,
		Episode:  dto.Episode,
		Season:   season,
		AirDate:  dto.AirDate,
		VideoURL: video,
	}
}
