package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jpp0ca/MusicRecognition-API/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// -- Mock service ------------------------------------------------------------

type mockRecognitionService struct {
	recognition *domain.Recognition
	recent      []domain.RecentSearch
	err         error
	clearErr    error
	block       bool

	lastRequest domain.RecognitionRequest
	cleared     bool
}

func (m *mockRecognitionService) Recognize(ctx context.Context, req domain.RecognitionRequest) (*domain.Recognition, error) {
	m.lastRequest = req
	if m.block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if m.err != nil {
		return nil, m.err
	}
	return m.recognition, nil
}

func (m *mockRecognitionService) RecentSearches(_ context.Context) []domain.RecentSearch {
	return m.recent
}

func (m *mockRecognitionService) ClearRecentSearches(_ context.Context) error {
	m.cleared = true
	return m.clearErr
}

// -- Helpers -----------------------------------------------------------------

func setupRouter(svc *mockRecognitionService, opts Options) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID())
	h := NewHandler(svc, opts)
	h.RegisterRoutes(r)
	return r
}

func multipartBody(t *testing.T, filename string, content []byte, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if filename != "" {
		part, err := w.CreateFormFile("file", filename)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return body, w.FormDataContentType()
}

func matchedRecognition() *domain.Recognition {
	return &domain.Recognition{
		Outcome:    domain.OutcomeMatched,
		Result:     &domain.Result{Artist: "A", Title: "B"},
		Message:    domain.MessageMatched,
		ArtworkURL: "https://i.scdn.co/640",
	}
}

// -- Tests -------------------------------------------------------------------

func TestHealth(t *testing.T) {
	r := setupRouter(&mockRecognitionService{}, Options{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var body map[string]string
	err := json.Unmarshal(w.Body.Bytes(), &body)
	require.NoError(t, err)
	assert.Equal(t, "ok", body["status"])
}

func TestRecognizeURL_Success(t *testing.T) {
	svc := &mockRecognitionService{recognition: matchedRecognition()}
	r := setupRouter(svc, Options{})

	body, _ := json.Marshal(map[string]any{
		"url":    "https://youtu.be/x",
		"return": []string{"spotify"},
		"market": "gb",
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/recognize/url", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))

	var got domain.Recognition
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, domain.OutcomeMatched, got.Outcome)
	assert.Equal(t, "A", got.Result.Artist)

	sent, ok := svc.lastRequest.(domain.URLRequest)
	require.True(t, ok)
	assert.Equal(t, "https://youtu.be/x", sent.URL)
	assert.Equal(t, []string{"spotify"}, sent.ReturnMeta)
	assert.Equal(t, "gb", sent.Market)
}

func TestRecognizeURL_MissingURL(t *testing.T) {
	r := setupRouter(&mockRecognitionService{}, Options{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/recognize/url", bytes.NewBufferString(`{}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(RequestIDHeader, "req-1")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var got ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "bad_request", got.Error)
	assert.Equal(t, "req-1", got.RequestID)
}

func TestRecognizeURL_TransportFailure(t *testing.T) {
	svc := &mockRecognitionService{err: errors.New("connection refused")}
	r := setupRouter(svc, Options{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/recognize/url", bytes.NewBufferString(`{"url":"https://youtu.be/x"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadGateway, w.Code)

	var got ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, domain.MessageRequestFailed, got.Message)
}

func TestRecognizeURL_Timeout(t *testing.T) {
	svc := &mockRecognitionService{block: true}
	r := setupRouter(svc, Options{RequestTimeout: 10 * time.Millisecond})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/recognize/url", bytes.NewBufferString(`{"url":"https://youtu.be/x"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusGatewayTimeout, w.Code)
}

func TestRecognizeURL_RemoteErrorIsOK(t *testing.T) {
	svc := &mockRecognitionService{recognition: &domain.Recognition{
		Outcome: domain.OutcomeError,
		Error:   &domain.ErrorInfo{Code: domain.InvalidURLCode, Message: domain.InvalidURLMessage},
		Message: domain.InvalidURLMessage,
	}}
	r := setupRouter(svc, Options{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/recognize/url", bytes.NewBufferString(`{"url":"nope"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var got domain.Recognition
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, domain.OutcomeError, got.Outcome)
	assert.Equal(t, 600, got.Error.Code)
}

func TestRecognizeFile_Success(t *testing.T) {
	svc := &mockRecognitionService{recognition: matchedRecognition()}
	r := setupRouter(svc, Options{})

	body, contentType := multipartBody(t, "clip.mp3", []byte("ID3audio"), map[string]string{
		"return": "spotify, deezer",
		"market": "fr",
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/recognize/file", body)
	req.Header.Set("Content-Type", contentType)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	sent, ok := svc.lastRequest.(domain.FileRequest)
	require.True(t, ok)
	assert.Equal(t, []byte("ID3audio"), sent.Audio)
	assert.Equal(t, "clip.mp3", sent.Filename)
	assert.NotEmpty(t, sent.MimeType)
	assert.Equal(t, []string{"spotify", "deezer"}, sent.ReturnMeta)
	assert.Equal(t, "fr", sent.Market)
}

func TestRecognizeFile_MissingFile(t *testing.T) {
	r := setupRouter(&mockRecognitionService{}, Options{})

	body, contentType := multipartBody(t, "", nil, map[string]string{"market": "us"})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/recognize/file", body)
	req.Header.Set("Content-Type", contentType)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRecognizeFile_TooLarge(t *testing.T) {
	svc := &mockRecognitionService{recognition: matchedRecognition()}
	r := setupRouter(svc, Options{MaxUploadBytes: 16})

	body, contentType := multipartBody(t, "clip.wav", bytes.Repeat([]byte{1}, 17), nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/recognize/file", body)
	req.Header.Set("Content-Type", contentType)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	assert.Nil(t, svc.lastRequest)
}

func TestRecentSearches(t *testing.T) {
	svc := &mockRecognitionService{recent: []domain.RecentSearch{
		{Result: domain.Result{Artist: "A", Title: "B"}, ArtworkURL: "https://x/120.jpg"},
	}}
	r := setupRouter(svc, Options{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/recent", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var got []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "A", got[0]["artist"])
	assert.Equal(t, "https://x/120.jpg", got[0]["artwork_url"])
}

func TestClearRecentSearches(t *testing.T) {
	svc := &mockRecognitionService{}
	r := setupRouter(svc, Options{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/api/v1/recent", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.True(t, svc.cleared)
}

func TestClearRecentSearches_Failure(t *testing.T) {
	svc := &mockRecognitionService{clearErr: errors.New("store down")}
	r := setupRouter(svc, Options{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/api/v1/recent", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, splitList(" a, b ,,c"))
	assert.Nil(t, splitList(""))
}

func TestHumanBytes(t *testing.T) {
	assert.Equal(t, "16 B", humanBytes(16))
	assert.Equal(t, "10 MB", humanBytes(10<<20))
}
