// Package audiourl decides whether a URL is worth sending to the recognition
// endpoint. It is a heuristic pre-filter; the endpoint has the final word.
package audiourl

import (
	"net/url"
	"strings"
)

var supportedDomains = []string{
	"youtube.com", "youtu.be", "soundcloud.com", "spotify.com",
	"deezer.com", "instagram.com", "twitter.com", "facebook.com",
	"tiktok.com",
}

var audioExtensions = []string{
	".mp3", ".wav", ".m4a", ".aac", ".ogg", ".flac", ".wma", ".mp4", ".avi",
}

// Domains returns the platform domains accepted regardless of path.
func Domains() []string {
	return append([]string(nil), supportedDomains...)
}

// Extensions returns the file extensions accepted regardless of host.
func Extensions() []string {
	return append([]string(nil), audioExtensions...)
}

// IsValidAudioURL reports whether raw parses as an absolute URL and either
// its hostname contains a supported platform domain or its path ends with a
// known audio/video extension. It never panics.
func IsValidAudioURL(raw string) bool {
	if raw == "" {
		return false
	}

	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Opaque != "" {
		return false
	}
	if u.Host == "" && (u.Scheme == "http" || u.Scheme == "https") {
		return false
	}

	host := strings.ToLower(u.Hostname())
	for _, domain := range supportedDomains {
		if strings.Contains(host, domain) {
			return true
		}
	}

	path := strings.ToLower(u.Path)
	for _, ext := range audioExtensions {
		if strings.HasSuffix(path, ext) {
			return true
		}
	}

	return false
}
