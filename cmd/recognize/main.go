package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/Laky-64/gologging"
	"github.com/fatih/color"

	"github.com/jpp0ca/MusicRecognition-API/internal/adapters"
	"github.com/jpp0ca/MusicRecognition-API/internal/adapters/applemusic"
	"github.com/jpp0ca/MusicRecognition-API/internal/adapters/audd"
	"github.com/jpp0ca/MusicRecognition-API/internal/adapters/deezer"
	"github.com/jpp0ca/MusicRecognition-API/internal/adapters/microphone"
	"github.com/jpp0ca/MusicRecognition-API/internal/adapters/spotify"
	"github.com/jpp0ca/MusicRecognition-API/internal/adapters/storage"
	"github.com/jpp0ca/MusicRecognition-API/internal/app"
	"github.com/jpp0ca/MusicRecognition-API/internal/capture"
	"github.com/jpp0ca/MusicRecognition-API/internal/config"
	"github.com/jpp0ca/MusicRecognition-API/internal/domain"
	"github.com/jpp0ca/MusicRecognition-API/internal/history"
	"github.com/jpp0ca/MusicRecognition-API/internal/ports"
)

var (
	green  = color.New(color.FgGreen, color.Bold)
	yellow = color.New(color.FgYellow)
	red    = color.New(color.FgRed)
	cyan   = color.New(color.FgCyan)
)

// Hardware and signal hooks, replaced in tests.
var (
	newDevice = func() ports.AudioDevice { return microphone.NewDevice(0, 0) }
	interrupt = func() (<-chan os.Signal, func()) {
		ch := make(chan os.Signal, 1)
		signal.Notify(ch, os.Interrupt)
		return ch, func() { signal.Stop(ch) }
	}
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	cfg := config.Load()

	var (
		audioURL string
		filePath string
		record   bool
		seconds  int
		recent   bool
		clearAll bool
		market   string
	)
	fs := flag.NewFlagSet("recognize", flag.ContinueOnError)
	fs.StringVar(&audioURL, "url", "", "Audio URL to recognize")
	fs.StringVar(&filePath, "file", "", "Audio file to upload")
	fs.BoolVar(&record, "record", false, "Record from the default microphone")
	fs.IntVar(&seconds, "seconds", cfg.RecordSeconds, "Recording length in seconds")
	fs.BoolVar(&recent, "recent", false, "List recent searches")
	fs.BoolVar(&clearAll, "clear", false, "Clear recent searches")
	fs.StringVar(&market, "market", cfg.Market, "Market for provider metadata")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	openCtx, cancelOpen := context.WithTimeout(context.Background(), 10*time.Second)
	store, err := storage.Open(openCtx, cfg)
	cancelOpen()
	if err != nil {
		red.Printf("Failed to open cache backend %s: %v\n", cfg.CacheBackend, err)
		return 1
	}
	defer store.Close()

	registry := adapters.NewProviderRegistry()
	registry.Register(applemusic.NewProvider())
	registry.Register(spotify.NewProvider())
	registry.Register(deezer.NewProvider())

	svc := app.NewService(
		audd.NewClient(&http.Client{}, cfg.AuddEndpoint, cfg.AuddAPIToken),
		history.New(store),
		registry,
		app.WithMarket(market),
		app.WithReturnMeta(cfg.ReturnMeta),
	)

	switch {
	case clearAll:
		if err := svc.ClearRecentSearches(context.Background()); err != nil {
			red.Println("Could not clear recent searches:", err)
			return 1
		}
		green.Println("Recent searches cleared.")
		return 0
	case recent:
		printRecent(svc.RecentSearches(context.Background()))
		return 0
	}

	req, err := buildRequest(audioURL, filePath, record, time.Duration(seconds)*time.Second)
	if err != nil {
		red.Println(err)
		return 1
	}
	if req == nil {
		fs.Usage()
		return 2
	}

	// Ctrl+C during recording only ends the recording; from here on it
	// cancels the request.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, cfg.RequestTimeout)
	defer cancel()

	rec, err := svc.Recognize(ctx, req)
	if err != nil {
		gologging.DebugF("[recognize] %v", err)
		red.Println(domain.MessageRequestFailed)
		return 1
	}
	printRecognition(rec)
	return 0
}

func buildRequest(audioURL, filePath string, record bool, d time.Duration) (domain.RecognitionRequest, error) {
	switch {
	case audioURL != "":
		return domain.URLRequest{URL: audioURL}, nil
	case filePath != "":
		data, err := os.ReadFile(filePath)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", filePath, err)
		}
		return domain.FileRequest{
			Audio:    data,
			Filename: filepath.Base(filePath),
			MimeType: http.DetectContentType(data),
		}, nil
	case record:
		sig, release := interrupt()
		defer release()
		payload, err := recordAudio(capture.NewController(newDevice()), d, sig)
		if err != nil {
			return nil, err
		}
		return payload.Request(nil, ""), nil
	default:
		return nil, nil
	}
}

// recordAudio records for d, or until a signal arrives on stopEarly.
func recordAudio(ctl *capture.Controller, d time.Duration, stopEarly <-chan os.Signal) (*capture.Payload, error) {
	if err := ctl.StartRecording(); err != nil {
		return nil, err
	}

	yellow.Printf("Recording for %s... (Ctrl+C to stop early)\n", d)
	select {
	case <-time.After(d):
	case <-stopEarly:
	}

	payload, err := ctl.StopRecording()
	if err != nil {
		return nil, err
	}
	if payload == nil {
		if err := ctl.LastError(); err != nil {
			return nil, err
		}
		return nil, capture.ErrMicrophoneAccess
	}
	cyan.Printf("Captured %d bytes (%s)\n", payload.Size(), payload.MimeType())
	return payload, nil
}

func printRecognition(rec *domain.Recognition) {
	switch rec.Outcome {
	case domain.OutcomeMatched:
		green.Println(rec.Message)
		r := rec.Result
		fmt.Printf("  %s - %s\n", r.Artist, r.Title)
		if r.Album != "" {
			fmt.Printf("  Album:    %s\n", r.Album)
		}
		if r.ReleaseDate != "" {
			fmt.Printf("  Released: %s\n", r.ReleaseDate)
		}
		if r.Label != "" {
			fmt.Printf("  Label:    %s\n", r.Label)
		}
		if rec.PreviewURL != "" {
			fmt.Printf("  Preview:  %s\n", rec.PreviewURL)
		}
		for _, l := range rec.Links {
			cyan.Printf("  %-12s %s\n", l.Provider, l.URL)
		}
	case domain.OutcomeNoMatch:
		yellow.Println(rec.Message)
	default:
		red.Println(rec.Message)
		for _, tip := range rec.Tips {
			yellow.Println("  -", tip)
		}
	}
}

func printRecent(recent []domain.RecentSearch) {
	if len(recent) == 0 {
		yellow.Println("No recent searches.")
		return
	}
	for i, r := range recent {
		fmt.Printf("%d. %s - %s\n", i+1, r.Artist, r.Title)
	}
}
