package domain

import "strings"

// Recognition is the outcome of a recognition as handed to the presenter.
type Recognition struct {
	Outcome    Outcome    `json:"outcome"`
	Result     *Result    `json:"result,omitempty"`
	Error      *ErrorInfo `json:"error,omitempty"`
	Message    string     `json:"message"`
	Tips       []string   `json:"tips,omitempty"`
	ArtworkURL string     `json:"artwork_url,omitempty"`
	PreviewURL string     `json:"preview_url,omitempty"`
	Links      []Link     `json:"links,omitempty"`
}

// Link is a labelled listen link for a matched track.
type Link struct {
	Provider string `json:"provider"`
	URL      string `json:"url"`
}

// User-facing messages.
const (
	MessageMatched        = "Song successfully identified!"
	MessageNoMatch        = "No matches found. Try with a different audio sample."
	MessageRemoteFallback = "An error occurred during recognition"
	MessageRequestFailed  = "Failed to process your request. Please try again."
)

var fingerprintTips = []string{
	"Use direct links to audio files or from supported platforms",
	"For YouTube videos, use the regular watch URL (e.g., https://youtube.com/watch?v=...)",
	"Make sure your audio sample is 2-12 seconds long",
	"Ensure the audio is clear with minimal background noise",
}

// NewRecognition builds the presenter view of a response. Provider-derived
// fields (artwork, preview, links) are filled in by the caller.
func NewRecognition(resp *RecognitionResponse) *Recognition {
	rec := &Recognition{Outcome: resp.Outcome()}

	switch rec.Outcome {
	case OutcomeMatched:
		rec.Result = resp.Result
		rec.Message = MessageMatched
	case OutcomeNoMatch:
		rec.Message = MessageNoMatch
	default:
		rec.Error = resp.Error
		rec.Message = MessageRemoteFallback
		if resp.Error != nil && resp.Error.Message != "" {
			rec.Message = resp.Error.Message
		}
		if strings.Contains(rec.Message, "fingerprint") {
			rec.Tips = append([]string(nil), fingerprintTips...)
		}
	}

	return rec
}

// RecentSearch is a recent match with its thumbnail.
type RecentSearch struct {
	Result
	ArtworkURL string `json:"artwork_url"`
}
