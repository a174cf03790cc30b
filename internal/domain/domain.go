package domain

import "strings"

// Default request options sent to the recognition endpoint.
const (
	DefaultMarket = "us"

	ProviderAppleMusic = "apple_music"
	ProviderSpotify    = "spotify"
	ProviderDeezer     = "deezer"
)

// DefaultReturnMeta lists the provider enrichment blocks requested when the
// caller does not specify any.
func DefaultReturnMeta() []string {
	return []string{ProviderAppleMusic, ProviderSpotify, ProviderDeezer}
}

// Result is the metadata of an identified track.
type Result struct {
	Artist      string `json:"artist"`
	Title       string `json:"title"`
	Album       string `json:"album,omitempty"`
	ReleaseDate string `json:"release_date,omitempty"`
	Label       string `json:"label,omitempty"`
	Timecode    string `json:"timecode,omitempty"`
	SongLink    string `json:"song_link,omitempty"`

	AppleMusic *AppleMusic `json:"apple_music,omitempty"`
	Spotify    *Spotify    `json:"spotify,omitempty"`
	Deezer     *Deezer     `json:"deezer,omitempty"`
}

// AppleMusic is the Apple Music enrichment block of a Result.
type AppleMusic struct {
	PreviewURLs []string `json:"preview_urls,omitempty"`
	// ArtworkURLTemplate contains {w} and {h} placeholders for the image size.
	ArtworkURLTemplate string `json:"artwork_url_template,omitempty"`
	URL                string `json:"url,omitempty"`
}

// Spotify is the Spotify enrichment block of a Result.
type Spotify struct {
	ExternalURL    string   `json:"external_url,omitempty"`
	PreviewURL     string   `json:"preview_url,omitempty"`
	AlbumImageURLs []string `json:"album_image_urls,omitempty"`
}

// Deezer is the Deezer enrichment block of a Result.
type Deezer struct {
	PreviewURL    string `json:"preview_url,omitempty"`
	Link          string `json:"link,omitempty"`
	AlbumCoverURL string `json:"album_cover_url,omitempty"`
}

// Identity is the deduplication key of a Result. Comparison is case-sensitive.
type Identity struct {
	Artist string
	Title  string
}

func (r Result) Identity() Identity {
	return Identity{Artist: r.Artist, Title: r.Title}
}

// SameTrack reports whether both results identify the same (artist, title).
func (r Result) SameTrack(other Result) bool {
	return r.Identity() == other.Identity()
}

// ResponseStatus is the discriminator of a RecognitionResponse.
type ResponseStatus string

const (
	StatusSuccess ResponseStatus = "success"
	StatusError   ResponseStatus = "error"
)

// ErrorInfo is the error payload of a failed recognition.
type ErrorInfo struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// RecognitionResponse is what the recognition endpoint answered, or what was
// synthesized locally when the request never left the client.
type RecognitionResponse struct {
	Status ResponseStatus `json:"status"`
	Result *Result        `json:"result"`
	Error  *ErrorInfo     `json:"error,omitempty"`
}

// Outcome classifies a RecognitionResponse for callers.
type Outcome string

const (
	OutcomeMatched Outcome = "matched"
	OutcomeNoMatch Outcome = "no_match"
	OutcomeError   Outcome = "error"
)

// Outcome returns matched when a result is present, no_match for a success
// without a result, and error otherwise.
func (r *RecognitionResponse) Outcome() Outcome {
	if r == nil || r.Status != StatusSuccess {
		return OutcomeError
	}
	if r.Result == nil {
		return OutcomeNoMatch
	}
	return OutcomeMatched
}

// InvalidURLCode is the error code of locally rejected URLs.
const InvalidURLCode = 600

// InvalidURLMessage is the error message of locally rejected URLs.
const InvalidURLMessage = "Invalid audio URL. Please provide a direct link to an audio file or a supported platform (YouTube, SoundCloud, etc.)"

// InvalidURLResponse is returned instead of calling the endpoint when a URL
// fails the audio URL pre-filter.
func InvalidURLResponse() *RecognitionResponse {
	return &RecognitionResponse{
		Status: StatusError,
		Error: &ErrorInfo{
			Code:    InvalidURLCode,
			Message: InvalidURLMessage,
		},
	}
}

// JoinReturnMeta renders provider names the way the endpoint expects them.
func JoinReturnMeta(names []string) string {
	return strings.Join(names, ",")
}
