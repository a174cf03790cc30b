package audd

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"

	"github.com/Laky-64/gologging"

	"github.com/jpp0ca/MusicRecognition-API/internal/audiourl"
	"github.com/jpp0ca/MusicRecognition-API/internal/domain"
)

// DefaultEndpoint is the public AudD recognition endpoint.
const DefaultEndpoint = "https://api.audd.io/"

// Client implements ports.Recognizer against the AudD HTTP API. It holds only
// configuration and is safe for concurrent use; overlapping calls are
// independent of each other.
type Client struct {
	client   *http.Client
	endpoint string
	token    string
}

// NewClient creates a new AudD client with the given HTTP client, endpoint and
// API token. If client is nil, http.DefaultClient is used; if endpoint is
// empty, DefaultEndpoint is used.
func NewClient(client *http.Client, endpoint, token string) *Client {
	if client == nil {
		client = http.DefaultClient
	}
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	return &Client{client: client, endpoint: endpoint, token: token}
}

// StatusError is returned when the endpoint answers with a non-2xx status.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("audd API returned status %d: %s", e.StatusCode, e.Body)
}

// -- API response types (internal) ------------------------------------------

type recognizeResponse struct {
	Status string       `json:"status"`
	Result *songResult  `json:"result"`
	Error  *errorResult `json:"error"`
}

type errorResult struct {
	Code    int    `json:"error_code"`
	Message string `json:"error_message"`
}

type songResult struct {
	Artist      string `json:"artist"`
	Title       string `json:"title"`
	Album       string `json:"album"`
	ReleaseDate string `json:"release_date"`
	Label       string `json:"label"`
	Timecode    string `json:"timecode"`
	SongLink    string `json:"song_link"`

	AppleMusic *appleMusicData `json:"apple_music"`
	Spotify    *spotifyData    `json:"spotify"`
	Deezer     *deezerData     `json:"deezer"`
}

type urlRef struct {
	URL string `json:"url"`
}

type appleMusicData struct {
	Previews []urlRef `json:"previews"`
	Artwork  *urlRef  `json:"artwork"`
	URL      string   `json:"url"`
}

type spotifyData struct {
	ExternalURLs struct {
		Spotify string `json:"spotify"`
	} `json:"external_urls"`
	PreviewURL string `json:"preview_url"`
	Album      *struct {
		Images []urlRef `json:"images"`
	} `json:"album"`
}

type deezerData struct {
	Preview string `json:"preview"`
	Link    string `json:"link"`
	Album   *struct {
		CoverMedium string `json:"cover_medium"`
	} `json:"album"`
}

// -- Recognizer implementation ----------------------------------------------

// Recognize dispatches on the request variant.
func (c *Client) Recognize(ctx context.Context, req domain.RecognitionRequest) (*domain.RecognitionResponse, error) {
	switch r := req.(type) {
	case domain.URLRequest:
		return c.RecognizeByURL(ctx, r)
	case *domain.URLRequest:
		return c.RecognizeByURL(ctx, *r)
	case domain.FileRequest:
		return c.RecognizeByFile(ctx, r)
	case *domain.FileRequest:
		return c.RecognizeByFile(ctx, *r)
	default:
		return nil, fmt.Errorf("audd: unsupported request type %T", req)
	}
}

func (c *Client) RecognizeByURL(ctx context.Context, req domain.URLRequest) (*domain.RecognitionResponse, error) {
	if !audiourl.IsValidAudioURL(req.URL) {
		gologging.DebugF("[audd] rejected url before sending: %q", req.URL)
		return domain.InvalidURLResponse(), nil
	}

	returnMeta, market := req.Options()
	gologging.DebugF("[audd] recognizing url %s", req.URL)

	body, contentType, err := encodeForm(c.token, returnMeta, market, func(w *multipart.Writer) error {
		return w.WriteField("url", req.URL)
	})
	if err != nil {
		return nil, fmt.Errorf("audd: failed to encode request: %w", err)
	}

	return c.send(ctx, body, contentType)
}

func (c *Client) RecognizeByFile(ctx context.Context, req domain.FileRequest) (*domain.RecognitionResponse, error) {
	returnMeta, market := req.Options()
	gologging.DebugF("[audd] recognizing file %s (%d bytes, %s)", req.Filename, len(req.Audio), req.MimeType)

	body, contentType, err := encodeForm(c.token, returnMeta, market, func(w *multipart.Writer) error {
		part, err := w.CreatePart(filePartHeader(req.Filename, req.MimeType))
		if err != nil {
			return err
		}
		_, err = part.Write(req.Audio)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("audd: failed to encode request: %w", err)
	}

	return c.send(ctx, body, contentType)
}

// -- HTTP helpers ------------------------------------------------------------

// encodeForm writes the multipart body in field order api_token, payload,
// return, market.
func encodeForm(token string, returnMeta []string, market string, payload func(*multipart.Writer) error) (*bytes.Buffer, string, error) {
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)

	if err := w.WriteField("api_token", token); err != nil {
		return nil, "", err
	}
	if err := payload(w); err != nil {
		return nil, "", err
	}
	if err := w.WriteField("return", domain.JoinReturnMeta(returnMeta)); err != nil {
		return nil, "", err
	}
	if err := w.WriteField("market", market); err != nil {
		return nil, "", err
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}

	return buf, w.FormDataContentType(), nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func filePartHeader(filename, mimeType string) textproto.MIMEHeader {
	if filename == "" {
		filename = "audio"
	}
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition",
		fmt.Sprintf(`form-data; name="file"; filename="%s"`, quoteEscaper.Replace(filename)))
	h.Set("Content-Type", mimeType)
	return h
}

func (c *Client) send(ctx context.Context, body io.Reader, contentType string) (*domain.RecognitionResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("audd: failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("audd: request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("audd: failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: string(raw)}
	}

	var decoded recognizeResponse
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, fmt.Errorf("audd: failed to parse response: %w", err)
	}

	gologging.DebugF("[audd] response status=%s matched=%t", decoded.Status, decoded.Result != nil)
	return toResponse(decoded), nil
}

// -- Helpers -----------------------------------------------------------------

func toResponse(r recognizeResponse) *domain.RecognitionResponse {
	out := &domain.RecognitionResponse{Status: domain.ResponseStatus(r.Status)}
	if r.Result != nil {
		res := toResult(*r.Result)
		out.Result = &res
	}
	if r.Error != nil {
		out.Error = &domain.ErrorInfo{Code: r.Error.Code, Message: r.Error.Message}
	}
	return out
}

func toResult(s songResult) domain.Result {
	res := domain.Result{
		Artist:      s.Artist,
		Title:       s.Title,
		Album:       s.Album,
		ReleaseDate: s.ReleaseDate,
		Label:       s.Label,
		Timecode:    s.Timecode,
		SongLink:    s.SongLink,
	}

	if am := s.AppleMusic; am != nil {
		res.AppleMusic = &domain.AppleMusic{
			PreviewURLs: collectURLs(am.Previews),
			URL:         am.URL,
		}
		if am.Artwork != nil {
			res.AppleMusic.ArtworkURLTemplate = am.Artwork.URL
		}
	}

	if sp := s.Spotify; sp != nil {
		res.Spotify = &domain.Spotify{
			ExternalURL: sp.ExternalURLs.Spotify,
			PreviewURL:  sp.PreviewURL,
		}
		if sp.Album != nil {
			res.Spotify.AlbumImageURLs = collectURLs(sp.Album.Images)
		}
	}

	if dz := s.Deezer; dz != nil {
		res.Deezer = &domain.Deezer{
			PreviewURL: dz.Preview,
			Link:       dz.Link,
		}
		if dz.Album != nil {
			res.Deezer.AlbumCoverURL = dz.Album.CoverMedium
		}
	}

	return res
}

func collectURLs(refs []urlRef) []string {
	if len(refs) == 0 {
		return nil
	}
	urls := make([]string, 0, len(refs))
	for _, ref := range refs {
		urls = append(urls, ref.URL)
	}
	return urls
}
