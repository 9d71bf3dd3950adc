package internal

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// fileDateLayout is ddmmyy
const fileDateLayout = "020106"

// TranscriptFileName returns the file name for a video fetched at t
func TranscriptFileName(videoID string, t time.Time) string {
	return fmt.Sprintf("%s_%s.txt", videoID, t.Format(fileDateLayout))
}

// FlattenTranscript joins all snippet texts, each followed by a single space
func FlattenTranscript(tr *Transcript) string {
	if tr == nil {
		return ""
	}
	var sb strings.Builder
	for _, s := range tr.Snippets {
		sb.WriteString(s.Text)
		sb.WriteString(" ")
	}
	return sb.String()
}

// OutputWriter writes flattened transcripts into a directory
type OutputWriter struct {
	dir string
	now func() time.Time
}

// NewOutputWriter creates a writer for dir. An empty dir means the working directory.
func NewOutputWriter(dir string) *OutputWriter {
	return &OutputWriter{dir: dir, now: time.Now}
}

// Dir returns the output directory
func (w *OutputWriter) Dir() string {
	return w.dir
}

// Path returns the path the transcript of videoID would be written to today
func (w *OutputWriter) Path(videoID string) string {
	return filepath.Join(w.dir, TranscriptFileName(videoID, w.now()))
}

// Write saves the transcript, replacing any file of the same name, and returns its path
func (w *OutputWriter) Write(tr *Transcript) (string, error) {
	if tr == nil || tr.VideoID == "" {
		return "", fmt.Errorf("writing transcript: missing video ID")
	}
	if w.dir != "" {
		if err := EnsureDirs(w.dir); err != nil {
			return "", fmt.Errorf("creating output directory: %w", err)
		}
	}

	path := w.Path(tr.VideoID)
	if err := os.WriteFile(path, []byte(FlattenTranscript(tr)), 0644); err != nil {
		return "", fmt.Errorf("saving transcript: %w", err)
	}
	return path, nil
}
