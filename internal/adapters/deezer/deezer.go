package deezer

import (
	"github.com/jpp0ca/MusicRecognition-API/internal/domain"
)

// Provider implements ports.MetadataProvider for the Deezer enrichment block.
type Provider struct{}

// NewProvider creates a new Deezer metadata provider.
func NewProvider() *Provider {
	return &Provider{}
}

func (p *Provider) Name() string {
	return domain.ProviderDeezer
}

// ArtworkURL returns the medium album cover (250px); size is ignored.
func (p *Provider) ArtworkURL(r domain.Result, _ int) (string, bool) {
	if r.Deezer == nil || r.Deezer.AlbumCoverURL == "" {
		return "", false
	}
	return r.Deezer.AlbumCoverURL, true
}

func (p *Provider) PreviewURL(r domain.Result) (string, bool) {
	if r.Deezer == nil || r.Deezer.PreviewURL == "" {
		return "", false
	}
	return r.Deezer.PreviewURL, true
}

func (p *Provider) ListenURL(r domain.Result) (string, bool) {
	if r.Deezer == nil || r.Deezer.Link == "" {
		return "", false
	}
	return r.Deezer.Link, true
}
