package http

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/Laky-64/gologging"
	"github.com/gin-gonic/gin"

	"github.com/jpp0ca/MusicRecognition-API/internal/domain"
	"github.com/jpp0ca/MusicRecognition-API/internal/ports"
)

// DefaultMaxUploadBytes is the largest accepted audio upload.
const DefaultMaxUploadBytes = 10 << 20

// multipartOverhead is the room left for form fields and part headers on top
// of the file itself.
const multipartOverhead = 1 << 20

// Options tunes the handler.
type Options struct {
	// RequestTimeout bounds each recognition call. Zero means no deadline.
	RequestTimeout time.Duration
	// MaxUploadBytes caps the uploaded file size.
	MaxUploadBytes int64
}

// Handler holds the HTTP handlers for the recognition API.
type Handler struct {
	service ports.RecognitionService
	opts    Options
}

// NewHandler creates a new HTTP handler with the given recognition service.
func NewHandler(service ports.RecognitionService, opts Options) *Handler {
	if opts.MaxUploadBytes <= 0 {
		opts.MaxUploadBytes = DefaultMaxUploadBytes
	}
	return &Handler{service: service, opts: opts}
}

// RegisterRoutes sets up all API routes on the given Gin engine.
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", h.Health)

	api := r.Group("/api/v1")
	{
		api.POST("/recognize/url", h.RecognizeURL)
		api.POST("/recognize/file", h.RecognizeFile)
		api.GET("/recent", h.RecentSearches)
		api.DELETE("/recent", h.ClearRecentSearches)
	}
}

// Health returns a simple health check response.
//
//	@Summary		Health check
//	@Description	Returns the health status of the API
//	@Tags			health
//	@Produce		json
//	@Success		200	{object}	map[string]string
//	@Router			/health [get]
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}

// RecognizeURL identifies the track behind an audio URL.
//
//	@Summary		Recognize by URL
//	@Description	Sends a direct audio link or a supported platform URL (YouTube, SoundCloud, ...) to the recognition service.
//	@Description	URLs that are clearly not audio are rejected locally with error code 600.
//	@Tags			recognition
//	@Accept			json
//	@Produce		json
//	@Param			request	body		domain.URLRequest	true	"Audio URL and optional provider list / market"
//	@Success		200		{object}	domain.Recognition
//	@Failure		400		{object}	ErrorResponse
//	@Failure		502		{object}	ErrorResponse
//	@Failure		504		{object}	ErrorResponse
//	@Router			/api/v1/recognize/url [post]
func (h *Handler) RecognizeURL(c *gin.Context) {
	var req domain.URLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "bad_request", "invalid request body: "+err.Error())
		return
	}

	h.recognize(c, req)
}

// RecognizeFile identifies the track in an uploaded audio file.
//
//	@Summary		Recognize by file
//	@Description	Uploads an audio file (or a browser recording) to the recognition service.
//	@Tags			recognition
//	@Accept			multipart/form-data
//	@Produce		json
//	@Param			file	formData	file	true	"Audio file"
//	@Param			return	formData	string	false	"Comma-separated providers"	default(apple_music,spotify,deezer)
//	@Param			market	formData	string	false	"Market"	default(us)
//	@Success		200		{object}	domain.Recognition
//	@Failure		400		{object}	ErrorResponse
//	@Failure		413		{object}	ErrorResponse
//	@Failure		502		{object}	ErrorResponse
//	@Failure		504		{object}	ErrorResponse
//	@Router			/api/v1/recognize/file [post]
func (h *Handler) RecognizeFile(c *gin.Context) {
	limit := h.opts.MaxUploadBytes
	if c.Request.ContentLength > limit+multipartOverhead {
		abortTooLarge(c, limit)
		return
	}
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit+multipartOverhead)

	fh, err := c.FormFile("file")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			abortTooLarge(c, limit)
			return
		}
		abortWithError(c, http.StatusBadRequest, "bad_request", "multipart field 'file' is required")
		return
	}
	if fh.Size > limit {
		abortTooLarge(c, limit)
		return
	}

	f, err := fh.Open()
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "bad_request", "could not read uploaded file: "+err.Error())
		return
	}
	defer f.Close()

	audio, err := io.ReadAll(f)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "bad_request", "could not read uploaded file: "+err.Error())
		return
	}

	mimeType := fh.Header.Get("Content-Type")
	if mimeType == "" || mimeType == "application/octet-stream" {
		mimeType = http.DetectContentType(audio)
	}

	h.recognize(c, domain.FileRequest{
		Audio:      audio,
		Filename:   fh.Filename,
		MimeType:   mimeType,
		ReturnMeta: splitList(c.PostForm("return")),
		Market:     c.PostForm("market"),
	})
}

// RecentSearches lists the most recent matches.
//
//	@Summary		Recent searches
//	@Description	Returns up to five recent matches, newest first.
//	@Tags			recent
//	@Produce		json
//	@Success		200	{array}	domain.RecentSearch
//	@Router			/api/v1/recent [get]
func (h *Handler) RecentSearches(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.RecentSearches(c.Request.Context()))
}

// ClearRecentSearches forgets every recent match.
//
//	@Summary		Clear recent searches
//	@Tags			recent
//	@Success		204
//	@Failure		500	{object}	ErrorResponse
//	@Router			/api/v1/recent [delete]
func (h *Handler) ClearRecentSearches(c *gin.Context) {
	if err := h.service.ClearRecentSearches(c.Request.Context()); err != nil {
		abortWithError(c, http.StatusInternalServerError, "internal_error", err.Error())
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) recognize(c *gin.Context, req domain.RecognitionRequest) {
	ctx := c.Request.Context()
	if h.opts.RequestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.opts.RequestTimeout)
		defer cancel()
	}

	rec, err := h.service.Recognize(ctx, req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			gologging.WarnF("[http] recognition timed out after %s", h.opts.RequestTimeout)
			abortWithError(c, http.StatusGatewayTimeout, "timeout", domain.MessageRequestFailed)
			return
		}
		abortWithError(c, http.StatusBadGateway, "recognition_failed", domain.MessageRequestFailed)
		return
	}

	c.JSON(http.StatusOK, rec)
}

// ErrorResponse is the standard error response format.
type ErrorResponse struct {
	Error     string `json:"error"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

func abortWithError(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, ErrorResponse{
		Error:     code,
		Message:   message,
		RequestID: c.GetString(requestIDKey),
	})
}

func abortTooLarge(c *gin.Context, limit int64) {
	abortWithError(c, http.StatusRequestEntityTooLarge, "payload_too_large",
		"audio file exceeds the upload limit of "+humanBytes(limit))
}

// splitList parses "a, b,c" into [a b c].
func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
