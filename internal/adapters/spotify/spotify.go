package spotify

import (
	"github.com/jpp0ca/MusicRecognition-API/internal/domain"
)

// Provider implements ports.MetadataProvider for the Spotify enrichment block.
type Provider struct{}

// NewProvider creates a new Spotify metadata provider.
func NewProvider() *Provider {
	return &Provider{}
}

func (p *Provider) Name() string {
	return domain.ProviderSpotify
}

// ArtworkURL returns the first album image. Spotify images come pre-sized, so
// size is ignored.
func (p *Provider) ArtworkURL(r domain.Result, _ int) (string, bool) {
	if r.Spotify == nil || len(r.Spotify.AlbumImageURLs) == 0 {
		return "", false
	}
	url := r.Spotify.AlbumImageURLs[0]
	return url, url != ""
}

func (p *Provider) PreviewURL(r domain.Result) (string, bool) {
	if r.Spotify == nil || r.Spotify.PreviewURL == "" {
		return "", false
	}
	return r.Spotify.PreviewURL, true
}

func (p *Provider) ListenURL(r domain.Result) (string, bool) {
	if r.Spotify == nil || r.Spotify.ExternalURL == "" {
		return "", false
	}
	return r.Spotify.ExternalURL, true
}
