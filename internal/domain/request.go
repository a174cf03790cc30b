package domain

// RecognitionRequest is either a URLRequest or a FileRequest.
type RecognitionRequest interface {
	// Options returns the provider list and market with defaults applied.
	Options() (returnMeta []string, market string)

	isRecognitionRequest()
}

// URLRequest asks the endpoint to fetch and recognize audio at a URL.
type URLRequest struct {
	URL        string   `json:"url" binding:"required"`
	ReturnMeta []string `json:"return,omitempty"`
	Market     string   `json:"market,omitempty"`
}

// FileRequest uploads an audio payload for recognition.
type FileRequest struct {
	Audio      []byte
	Filename   string
	MimeType   string
	ReturnMeta []string
	Market     string
}

func (r URLRequest) Options() ([]string, string) {
	return normalizeOptions(r.ReturnMeta, r.Market)
}

func (r FileRequest) Options() ([]string, string) {
	return normalizeOptions(r.ReturnMeta, r.Market)
}

func (URLRequest) isRecognitionRequest()  {}
func (FileRequest) isRecognitionRequest() {}

func normalizeOptions(returnMeta []string, market string) ([]string, string) {
	meta := make([]string, 0, len(returnMeta))
	seen := make(map[string]struct{}, len(returnMeta))
	for _, name := range returnMeta {
		if name == "" {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		meta = append(meta, name)
	}
	if len(meta) == 0 {
		meta = DefaultReturnMeta()
	}
	if market == "" {
		market = DefaultMarket
	}
	return meta, market
}

// AudioFormat describes the bytes an audio device produces.
type AudioFormat struct {
	// MimeType is MimePCM for raw little-endian samples, or a container type
	// such as audio/webm when the device encodes on its own.
	MimeType   string
	SampleRate int
	Channels   int
	BitDepth   int
}

// Audio MIME types used by capture and upload.
const (
	MimePCM = "audio/pcm"
	MimeWAV = "audio/wav"
)
