package media

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"
)

// DefaultTimeout bounds one metadata lookup.
const DefaultTimeout = 3 * time.Second

const defaultEndpoint = "https://www.youtube.com/oembed"

// Metadata describes a resolved media reference for display.
type Metadata struct {
	Title     string
	Author    string
	Thumbnail string
}

// Resolver maps a video id to display metadata. Implementations never
// block longer than their configured timeout and never fail: a lookup
// problem yields synthesized fallback metadata instead of an error.
type Resolver interface {
	Resolve(ctx context.Context, id string) Metadata
}

// Fallback synthesizes metadata for id when the lookup is unavailable.
func Fallback(id string) Metadata {
	return Metadata{
		Title:     "Video " + id,
		Author:    "Unknown",
		Thumbnail: fmt.Sprintf("https://i.ytimg.com/vi/%s/hqdefault.jpg", id),
	}
}

type oembedResponse struct {
	Title        string `json:"title"`
	AuthorName   string `json:"author_name"`
	ThumbnailURL string `json:"thumbnail_url"`
}

// OEmbedResolver looks up metadata against the YouTube oEmbed endpoint.
type OEmbedResolver struct {
	// Endpoint is overridable for tests.
	Endpoint string

	client  *http.Client
	timeout time.Duration
	log     *zerolog.Logger
}

// NewOEmbedResolver builds a resolver with the given per-lookup timeout.
func NewOEmbedResolver(timeout time.Duration, logger *zerolog.Logger) *OEmbedResolver {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &OEmbedResolver{
		Endpoint: defaultEndpoint,
		client:   &http.Client{Timeout: timeout},
		timeout:  timeout,
		log:      logger,
	}
}

// Resolve fetches title, author and thumbnail for id. Any failure, a
// timeout included, degrades to Fallback; the lookup carries no side
// effects so an abandoned request needs no rollback.
func (r *OEmbedResolver) Resolve(ctx context.Context, id string) Metadata {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	watchURL := "https://www.youtube.com/watch?v=" + id
	endpoint := r.Endpoint + "?format=json&url=" + url.QueryEscape(watchURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		r.log.Warn().Err(err).Str("id", id).Msg("build oembed request")
		return Fallback(id)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		r.log.Warn().Err(err).Str("id", id).Msg("oembed lookup failed, using fallback")
		return Fallback(id)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		r.log.Warn().Int("status", resp.StatusCode).Str("id", id).Msg("oembed lookup rejected, using fallback")
		return Fallback(id)
	}

	var body oembedResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		r.log.Warn().Err(err).Str("id", id).Msg("decode oembed response, using fallback")
		return Fallback(id)
	}

	meta := Metadata{
		Title:     body.Title,
		Author:    body.AuthorName,
		Thumbnail: body.ThumbnailURL,
	}
	fb := Fallback(id)
	if meta.Title == "" {
		meta.Title = fb.Title
	}
	if meta.Author == "" {
		meta.Author = fb.Author
	}
	if meta.Thumbnail == "" {
		meta.Thumbnail = fb.Thumbnail
	}
	return meta
}
