package internal

import (
	"fmt"
	"strings"
	"time"
)

// InputKind represents how a line of user input is handled
type InputKind int

const (
	InputKindUnknown InputKind = iota
	InputKindVideo
	InputKindSearch
)

// String returns a human-readable representation of the input kind
func (k InputKind) String() string {
	switch k {
	case InputKindVideo:
		return "video"
	case InputKindSearch:
		return "search"
	default:
		return "unknown"
	}
}

// VideoRef identifies a single YouTube video.
// Only build it with NewVideoRef or through the search collector so ID is always valid.
type VideoRef struct {
	ID    string `json:"id"`
	URL   string `json:"url"`
	Title string `json:"title,omitempty"`
}

// NewVideoRef extracts the video ID from input and returns a reference with the canonical URL
func NewVideoRef(input, title string) (VideoRef, error) {
	id, ok := ExtractVideoID(input)
	if !ok {
		return VideoRef{}, fmt.Errorf("%w: %q", ErrInvalidIdentifier, strings.TrimSpace(input))
	}
	return VideoRef{ID: id, URL: CanonicalURL(id), Title: title}, nil
}

// String returns the title when known, otherwise the canonical URL
func (v VideoRef) String() string {
	if v.Title != "" {
		return fmt.Sprintf("%s (%s)", v.Title, v.ID)
	}
	return v.URL
}

// Snippet is one caption line
type Snippet struct {
	Text     string  `json:"text"`
	Start    float64 `json:"start"`
	Duration float64 `json:"duration,omitempty"`
}

// Transcript holds the snippets of one video in caption order
type Transcript struct {
	VideoID  string    `json:"video_id"`
	Title    string    `json:"title,omitempty"`
	Language string    `json:"language"`
	Snippets []Snippet `json:"snippets"`
}

// Length returns the start offset of the last snippet, used as an approximation of video length
func (t *Transcript) Length() time.Duration {
	if t == nil || len(t.Snippets) == 0 {
		return 0
	}
	return time.Duration(t.Snippets[len(t.Snippets)-1].Start * float64(time.Second))
}

// SavedTranscript describes a transcript written to disk
type SavedTranscript struct {
	Video      VideoRef
	Path       string
	Transcript *Transcript
}

// FailedVideo describes a video whose transcript could not be saved
type FailedVideo struct {
	Video VideoRef
	Err   error
}

// BatchReport is the outcome of handling one line of input
type BatchReport struct {
	Kind   InputKind
	Input  string
	Saved  []SavedTranscript
	Failed []FailedVideo
}

// Attempted returns the number of videos the batch tried to fetch
func (r *BatchReport) Attempted() int {
	return len(r.Saved) + len(r.Failed)
}

// formatLength formats a duration as m:ss
func formatLength(d time.Duration) string {
	total := int(d / time.Second)
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}
