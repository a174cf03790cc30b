package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/Laky-64/gologging"

	"github.com/jpp0ca/MusicRecognition-API/internal/adapters"
	"github.com/jpp0ca/MusicRecognition-API/internal/domain"
	"github.com/jpp0ca/MusicRecognition-API/internal/history"
	"github.com/jpp0ca/MusicRecognition-API/internal/ports"
)

// ErrEmptyResponse is returned when the recognizer reports neither a
// response nor an error.
var ErrEmptyResponse = errors.New("recognition request failed: empty response")

// Service implements ports.RecognitionService: it sends requests to the
// recognizer, folds matches into the recent searches and decorates results
// with provider artwork, previews and links.
type Service struct {
	recognizer ports.Recognizer
	history    *history.RecentSearches
	providers  *adapters.ProviderRegistry
	market     string
	returnMeta []string
}

// Option customizes a Service.
type Option func(*Service)

// WithMarket sets the market used when a request names none.
func WithMarket(market string) Option {
	return func(s *Service) { s.market = market }
}

// WithReturnMeta sets the providers requested when a request names none.
func WithReturnMeta(names []string) Option {
	return func(s *Service) { s.returnMeta = append([]string(nil), names...) }
}

// NewService creates a recognition service. Unless overridden, requests ask
// for every registered provider, in registry order.
func NewService(recognizer ports.Recognizer, recent *history.RecentSearches, providers *adapters.ProviderRegistry, opts ...Option) *Service {
	s := &Service{
		recognizer: recognizer,
		history:    recent,
		providers:  providers,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// DefaultReturnMeta returns the providers requested when a request names none.
func (s *Service) DefaultReturnMeta() []string {
	if len(s.returnMeta) > 0 {
		return append([]string(nil), s.returnMeta...)
	}
	return s.providers.Available()
}

func (s *Service) Recognize(ctx context.Context, req domain.RecognitionRequest) (*domain.Recognition, error) {
	var (
		resp *domain.RecognitionResponse
		err  error
	)

	switch r := req.(type) {
	case *domain.URLRequest:
		if r != nil {
			req = *r
		}
	case *domain.FileRequest:
		if r != nil {
			req = *r
		}
	}

	switch r := req.(type) {
	case domain.URLRequest:
		r.ReturnMeta, r.Market = s.applyDefaults(r.ReturnMeta, r.Market)
		gologging.InfoF("[recognition] recognizing url %s", r.URL)
		resp, err = s.recognizer.RecognizeByURL(ctx, r)
	case domain.FileRequest:
		r.ReturnMeta, r.Market = s.applyDefaults(r.ReturnMeta, r.Market)
		gologging.InfoF("[recognition] recognizing file %s (%d bytes)", r.Filename, len(r.Audio))
		resp, err = s.recognizer.RecognizeByFile(ctx, r)
	default:
		return nil, fmt.Errorf("unsupported recognition request %T", req)
	}
	if err != nil {
		gologging.ErrorF("[recognition] request failed: %v", err)
		return nil, fmt.Errorf("recognition request failed: %w", err)
	}
	if resp == nil {
		gologging.ErrorF("[recognition] recognizer returned no response")
		return nil, ErrEmptyResponse
	}

	rec := domain.NewRecognition(resp)

	switch rec.Outcome {
	case domain.OutcomeMatched:
		gologging.InfoF("[recognition] matched %q by %q", rec.Result.Title, rec.Result.Artist)
		rec.ArtworkURL = s.providers.ArtworkURL(*rec.Result, adapters.ResultArtworkSize)
		rec.PreviewURL, _ = s.providers.PreviewURL(*rec.Result)
		rec.Links = s.providers.Links(*rec.Result)
		if _, err := s.history.Record(ctx, *rec.Result); err != nil {
			gologging.WarnF("[recognition] could not update recent searches: %v", err)
		}
	case domain.OutcomeNoMatch:
		gologging.InfoF("[recognition] no match")
	default:
		gologging.WarnF("[recognition] remote error: %s", rec.Message)
	}

	return rec, nil
}

func (s *Service) RecentSearches(ctx context.Context) []domain.RecentSearch {
	results := s.history.Load(ctx)
	out := make([]domain.RecentSearch, 0, len(results))
	for _, r := range results {
		out = append(out, domain.RecentSearch{
			Result:     r,
			ArtworkURL: s.providers.ArtworkURL(r, adapters.RecentArtworkSize),
		})
	}
	return out
}

func (s *Service) ClearRecentSearches(ctx context.Context) error {
	if err := s.history.Clear(ctx); err != nil {
		return err
	}
	gologging.InfoF("[recognition] recent searches cleared")
	return nil
}

func (s *Service) applyDefaults(returnMeta []string, market string) ([]string, string) {
	if len(returnMeta) == 0 {
		returnMeta = s.DefaultReturnMeta()
	}
	if market == "" {
		market = s.market
	}
	return returnMeta, market
}
