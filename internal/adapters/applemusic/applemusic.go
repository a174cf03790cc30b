package applemusic

import (
	"strconv"
	"strings"

	"github.com/jpp0ca/MusicRecognition-API/internal/domain"
)

// Provider implements ports.MetadataProvider for the Apple Music enrichment
// block.
type Provider struct{}

// NewProvider creates a new Apple Music metadata provider.
func NewProvider() *Provider {
	return &Provider{}
}

func (p *Provider) Name() string {
	return domain.ProviderAppleMusic
}

// ArtworkURL fills the {w} and {h} placeholders of the artwork template with
// size.
func (p *Provider) ArtworkURL(r domain.Result, size int) (string, bool) {
	if r.AppleMusic == nil || r.AppleMusic.ArtworkURLTemplate == "" {
		return "", false
	}
	px := strconv.Itoa(size)
	url := strings.NewReplacer("{w}", px, "{h}", px).Replace(r.AppleMusic.ArtworkURLTemplate)
	return url, true
}

func (p *Provider) PreviewURL(r domain.Result) (string, bool) {
	if r.AppleMusic == nil || len(r.AppleMusic.PreviewURLs) == 0 {
		return "", false
	}
	url := r.AppleMusic.PreviewURLs[0]
	return url, url != ""
}

func (p *Provider) ListenURL(r domain.Result) (string, bool) {
	if r.AppleMusic == nil || r.AppleMusic.URL == "" {
		return "", false
	}
	return r.AppleMusic.URL, true
}
