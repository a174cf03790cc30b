package app

import (
	"context"
	"errors"
	"testing"

	"github.com/jpp0ca/MusicRecognition-API/internal/adapters"
	"github.com/jpp0ca/MusicRecognition-API/internal/adapters/applemusic"
	"github.com/jpp0ca/MusicRecognition-API/internal/adapters/deezer"
	"github.com/jpp0ca/MusicRecognition-API/internal/adapters/spotify"
	"github.com/jpp0ca/MusicRecognition-API/internal/adapters/storage/memory"
	"github.com/jpp0ca/MusicRecognition-API/internal/domain"
	"github.com/jpp0ca/MusicRecognition-API/internal/history"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// -- Mock recognizer ---------------------------------------------------------

type mockRecognizer struct {
	resp *domain.RecognitionResponse
	err  error

	urlCalls  []domain.URLRequest
	fileCalls []domain.FileRequest
}

func (m *mockRecognizer) RecognizeByURL(_ context.Context, req domain.URLRequest) (*domain.RecognitionResponse, error) {
	m.urlCalls = append(m.urlCalls, req)
	return m.resp, m.err
}

func (m *mockRecognizer) RecognizeByFile(_ context.Context, req domain.FileRequest) (*domain.RecognitionResponse, error) {
	m.fileCalls = append(m.fileCalls, req)
	return m.resp, m.err
}

// -- Helpers -----------------------------------------------------------------

func newTestService(rec *mockRecognizer, opts ...Option) (*Service, *history.RecentSearches) {
	registry := adapters.NewProviderRegistry()
	registry.Register(applemusic.NewProvider())
	registry.Register(spotify.NewProvider())
	registry.Register(deezer.NewProvider())

	h := history.New(memory.NewStore())
	return NewService(rec, h, registry, opts...), h
}

func matched(artist, title string) *domain.RecognitionResponse {
	return &domain.RecognitionResponse{
		Status: domain.StatusSuccess,
		Result: &domain.Result{
			Artist:   artist,
			Title:    title,
			SongLink: "https://lis.tn/x",
			Spotify: &domain.Spotify{
				ExternalURL:    "https://open.spotify.com/track/x",
				PreviewURL:     "https://p.scdn.co/x",
				AlbumImageURLs: []string{"https://i.scdn.co/640"},
			},
		},
	}
}

// -- Tests -------------------------------------------------------------------

func TestRecognize_MatchIsRecordedAndDecorated(t *testing.T) {
	rec := &mockRecognizer{resp: matched("A", "B")}
	svc, h := newTestService(rec)

	got, err := svc.Recognize(context.Background(), domain.URLRequest{URL: "https://youtu.be/x"})
	require.NoError(t, err)

	assert.Equal(t, domain.OutcomeMatched, got.Outcome)
	assert.Equal(t, domain.MessageMatched, got.Message)
	assert.Equal(t, "https://i.scdn.co/640", got.ArtworkURL)
	assert.Equal(t, "https://p.scdn.co/x", got.PreviewURL)
	require.Len(t, got.Links, 2)
	assert.Equal(t, "song_link", got.Links[0].Provider)
	assert.Equal(t, "spotify", got.Links[1].Provider)

	recent := h.Load(context.Background())
	require.Len(t, recent, 1)
	assert.Equal(t, "A", recent[0].Artist)
}

func TestRecognize_AppliesDefaults(t *testing.T) {
	rec := &mockRecognizer{resp: matched("A", "B")}
	svc, _ := newTestService(rec, WithMarket("gb"))

	_, err := svc.Recognize(context.Background(), domain.URLRequest{URL: "https://youtu.be/x"})
	require.NoError(t, err)

	require.Len(t, rec.urlCalls, 1)
	assert.Equal(t, []string{"apple_music", "spotify", "deezer"}, rec.urlCalls[0].ReturnMeta)
	assert.Equal(t, "gb", rec.urlCalls[0].Market)
}

func TestRecognize_KeepsRequestOptions(t *testing.T) {
	rec := &mockRecognizer{resp: matched("A", "B")}
	svc, _ := newTestService(rec, WithReturnMeta([]string{"deezer"}), WithMarket("gb"))

	_, err := svc.Recognize(context.Background(), &domain.FileRequest{
		Audio:      []byte{1, 2},
		Filename:   "a.mp3",
		ReturnMeta: []string{"spotify"},
		Market:     "fr",
	})
	require.NoError(t, err)

	require.Len(t, rec.fileCalls, 1)
	assert.Equal(t, []string{"spotify"}, rec.fileCalls[0].ReturnMeta)
	assert.Equal(t, "fr", rec.fileCalls[0].Market)
	assert.Equal(t, []string{"deezer"}, svc.DefaultReturnMeta())
}

func TestRecognize_NoMatchIsNotRecorded(t *testing.T) {
	rec := &mockRecognizer{resp: &domain.RecognitionResponse{Status: domain.StatusSuccess}}
	svc, h := newTestService(rec)

	got, err := svc.Recognize(context.Background(), domain.FileRequest{Audio: []byte{1}, Filename: "a.wav"})
	require.NoError(t, err)

	assert.Equal(t, domain.OutcomeNoMatch, got.Outcome)
	assert.Equal(t, domain.MessageNoMatch, got.Message)
	assert.Nil(t, got.Result)
	assert.Empty(t, h.Load(context.Background()))
}

func TestRecognize_RemoteErrorWithTips(t *testing.T) {
	rec := &mockRecognizer{resp: &domain.RecognitionResponse{
		Status: domain.StatusError,
		Error:  &domain.ErrorInfo{Code: 300, Message: "Recognition failed: can't generate fingerprint"},
	}}
	svc, h := newTestService(rec)

	got, err := svc.Recognize(context.Background(), domain.URLRequest{URL: "https://youtu.be/x"})
	require.NoError(t, err)

	assert.Equal(t, domain.OutcomeError, got.Outcome)
	assert.Equal(t, "Recognition failed: can't generate fingerprint", got.Message)
	assert.Len(t, got.Tips, 4)
	assert.Equal(t, 300, got.Error.Code)
	assert.Empty(t, h.Load(context.Background()))
}

func TestRecognize_TransportError(t *testing.T) {
	cause := errors.New("connection refused")
	svc, _ := newTestService(&mockRecognizer{err: cause})

	_, err := svc.Recognize(context.Background(), domain.URLRequest{URL: "https://youtu.be/x"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, cause))
}

func TestRecognize_NilResponseIsTransportError(t *testing.T) {
	svc, h := newTestService(&mockRecognizer{})

	got, err := svc.Recognize(context.Background(), domain.URLRequest{URL: "https://youtu.be/x"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrEmptyResponse))
	assert.Nil(t, got)
	assert.Empty(t, h.Load(context.Background()))
}

func TestRecognize_UnsupportedRequest(t *testing.T) {
	svc, _ := newTestService(&mockRecognizer{})

	_, err := svc.Recognize(context.Background(), nil)
	require.Error(t, err)
}

func TestRecentSearches(t *testing.T) {
	rec := &mockRecognizer{}
	svc, _ := newTestService(rec)
	ctx := context.Background()

	rec.resp = matched("A", "B")
	_, err := svc.Recognize(ctx, domain.URLRequest{URL: "https://youtu.be/1"})
	require.NoError(t, err)

	rec.resp = &domain.RecognitionResponse{Status: domain.StatusSuccess, Result: &domain.Result{Artist: "C", Title: "D"}}
	_, err = svc.Recognize(ctx, domain.URLRequest{URL: "https://youtu.be/2"})
	require.NoError(t, err)

	recent := svc.RecentSearches(ctx)
	require.Len(t, recent, 2)
	assert.Equal(t, "C", recent[0].Artist)
	assert.Equal(t, adapters.PlaceholderArtworkURL(adapters.RecentArtworkSize), recent[0].ArtworkURL)
	assert.Equal(t, "A", recent[1].Artist)
	assert.Equal(t, "https://i.scdn.co/640", recent[1].ArtworkURL)

	require.NoError(t, svc.ClearRecentSearches(ctx))
	assert.Empty(t, svc.RecentSearches(ctx))
}
