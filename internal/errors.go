package internal

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidIdentifier means the input is neither a recognised YouTube URL nor a bare video ID
	ErrInvalidIdentifier = errors.New("invalid YouTube URL or video ID")
	// ErrNoSearchResults means a search produced no usable videos
	ErrNoSearchResults = errors.New("no videos found")
	// ErrTranscriptUnavailable means the video has no captions, captions are disabled, or the video is private
	ErrTranscriptUnavailable = errors.New("no transcripts available")
	// ErrTranscriptService covers every other caption service failure (rate limits, network errors)
	ErrTranscriptService = errors.New("transcript service error")
	// ErrBrowserAutomation means the search page failed to load or render in time
	ErrBrowserAutomation = errors.New("browser automation failed")
)

// TranscriptError is returned by the transcript fetcher.
// Kind is either ErrTranscriptUnavailable or ErrTranscriptService.
type TranscriptError struct {
	VideoID string
	Kind    error
	Reason  string
	Err     error
}

func (e *TranscriptError) Error() string {
	msg := fmt.Sprintf("%s for %s: %s", e.Kind, e.VideoID, e.Reason)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap exposes both the kind and the underlying cause to errors.Is and errors.As
func (e *TranscriptError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func unavailable(videoID, reason string, err error) error {
	return &TranscriptError{VideoID: videoID, Kind: ErrTranscriptUnavailable, Reason: reason, Err: err}
}

func serviceError(videoID, reason string, err error) error {
	return &TranscriptError{VideoID: videoID, Kind: ErrTranscriptService, Reason: reason, Err: err}
}
