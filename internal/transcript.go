package internal

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"html"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/kkdai/youtube/v2"
)

// TranscriptSource fetches the captions of a single video
type TranscriptSource interface {
	Fetch(ctx context.Context, videoID string) (*Transcript, error)
}

// videoLookup resolves a video and its caption tracks, implemented by *youtube.Client
type videoLookup interface {
	GetVideoContext(ctx context.Context, id string) (*youtube.Video, error)
}

// TranscriptFetcher downloads captions from YouTube
type TranscriptFetcher struct {
	videos     videoLookup
	httpClient *http.Client
	languages  []string
	verbose    bool
}

// NewTranscriptFetcher creates a fetcher whose requests are bounded by timeout
func NewTranscriptFetcher(languages []string, timeout time.Duration, verbose bool) *TranscriptFetcher {
	httpClient := &http.Client{Timeout: timeout}
	return &TranscriptFetcher{
		videos:     &youtube.Client{HTTPClient: httpClient},
		httpClient: httpClient,
		languages:  languages,
		verbose:    verbose,
	}
}

// Fetch returns the ordered caption snippets of a video.
// Failures are *TranscriptError values of kind ErrTranscriptUnavailable or ErrTranscriptService.
func (f *TranscriptFetcher) Fetch(ctx context.Context, videoID string) (*Transcript, error) {
	if !IsValidVideoID(videoID) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidIdentifier, videoID)
	}

	if f.verbose {
		fmt.Printf("Looking up caption tracks for %s\n", videoID)
	}

	video, err := f.videos.GetVideoContext(ctx, videoID)
	if err != nil {
		return nil, classifyLookupError(videoID, err)
	}

	if len(video.CaptionTracks) == 0 {
		return nil, unavailable(videoID, "captions are disabled or missing", nil)
	}

	track := selectCaptionTrack(video.CaptionTracks, f.languages)
	if f.verbose {
		fmt.Printf("Using %s caption track (kind %q)\n", track.LanguageCode, track.Kind)
	}

	snippets, err := f.download(ctx, videoID, track.BaseURL)
	if err != nil {
		return nil, err
	}
	if len(snippets) == 0 {
		return nil, unavailable(videoID, "caption track is empty", nil)
	}

	return &Transcript{
		VideoID:  videoID,
		Title:    video.Title,
		Language: track.LanguageCode,
		Snippets: snippets,
	}, nil
}

// classifyLookupError maps errors from the video lookup to transcript error kinds
func classifyLookupError(videoID string, err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return serviceError(videoID, "request timed out", err)
	}

	if errors.Is(err, youtube.ErrVideoPrivate) ||
		errors.Is(err, youtube.ErrLoginRequired) ||
		errors.Is(err, youtube.ErrNotPlayableInEmbed) {
		return unavailable(videoID, "video is private or unavailable", err)
	}

	var status *youtube.ErrPlayabiltyStatus
	var statusValue youtube.ErrPlayabiltyStatus
	if errors.As(err, &status) || errors.As(err, &statusValue) {
		return unavailable(videoID, "video is not playable", err)
	}

	var code youtube.ErrUnexpectedStatusCode
	if errors.As(err, &code) && int(code) == http.StatusTooManyRequests {
		return serviceError(videoID, "rate limited by YouTube", err)
	}

	return serviceError(videoID, "looking up video", err)
}

// selectCaptionTrack picks the track for the first preferred language that has one.
// Exact language codes beat prefix matches and manual captions beat auto-generated ones.
func selectCaptionTrack(tracks []youtube.CaptionTrack, languages []string) youtube.CaptionTrack {
	matchers := []func(code, lang string) bool{
		func(code, lang string) bool { return strings.EqualFold(code, lang) },
		func(code, lang string) bool {
			return strings.HasPrefix(strings.ToLower(code), strings.ToLower(lang)+"-")
		},
	}

	for _, lang := range languages {
		for _, match := range matchers {
			var auto *youtube.CaptionTrack
			for i := range tracks {
				if !match(tracks[i].LanguageCode, lang) {
					continue
				}
				if tracks[i].Kind != "asr" {
					return tracks[i]
				}
				if auto == nil {
					auto = &tracks[i]
				}
			}
			if auto != nil {
				return *auto
			}
		}
	}

	return tracks[0]
}

// download fetches a timedtext document and parses it into snippets
func (f *TranscriptFetcher) download(ctx context.Context, videoID, baseURL string) ([]Snippet, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, serviceError(videoID, "parsing caption URL", err)
	}
	q := u.Query()
	if q.Get("fmt") == "" {
		q.Set("fmt", "srv3")
		u.RawQuery = q.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, serviceError(videoID, "creating caption request", err)
	}
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, serviceError(videoID, "downloading captions", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, serviceError(videoID, "rate limited by YouTube", fmt.Errorf("HTTP %d", resp.StatusCode))
	case resp.StatusCode == http.StatusNotFound:
		return nil, unavailable(videoID, "caption track not found", fmt.Errorf("HTTP %d", resp.StatusCode))
	case resp.StatusCode != http.StatusOK:
		return nil, serviceError(videoID, "downloading captions", fmt.Errorf("HTTP %d", resp.StatusCode))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, serviceError(videoID, "reading captions", err)
	}
	if len(strings.TrimSpace(string(body))) == 0 {
		return nil, serviceError(videoID, "caption service returned an empty document", nil)
	}

	snippets, err := parseTimedText(body)
	if err != nil {
		return nil, serviceError(videoID, "parsing captions", err)
	}
	return snippets, nil
}

// timedTextDoc matches both the legacy <transcript><text> format and srv3 <timedtext><body><p>
type timedTextDoc struct {
	XMLName xml.Name
	Legacy  []legacyText `xml:"text"`
	Paras   []srv3Para   `xml:"body>p"`
}

type legacyText struct {
	Start string `xml:"start,attr"`
	Dur   string `xml:"dur,attr"`
	Text  string `xml:",chardata"`
}

type srv3Para struct {
	Start    int64         `xml:"t,attr"` // milliseconds
	Duration int64         `xml:"d,attr"` // milliseconds
	Text     string        `xml:",chardata"`
	Segments []srv3Segment `xml:"s"`
}

type srv3Segment struct {
	Text string `xml:",chardata"`
}

var inlineTags = regexp.MustCompile(`<[^>]*>`)

// parseTimedText converts a timedtext document to snippets in document order
func parseTimedText(data []byte) ([]Snippet, error) {
	var doc timedTextDoc
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decoding timedtext XML: %w", err)
	}

	snippets := make([]Snippet, 0, len(doc.Legacy)+len(doc.Paras))

	for _, t := range doc.Legacy {
		text := cleanCaptionText(t.Text)
		if text == "" {
			continue
		}
		start, err := strconv.ParseFloat(t.Start, 64)
		if err != nil {
			return nil, fmt.Errorf("parsing start %q: %w", t.Start, err)
		}
		var dur float64
		if t.Dur != "" {
			if dur, err = strconv.ParseFloat(t.Dur, 64); err != nil {
				return nil, fmt.Errorf("parsing duration %q: %w", t.Dur, err)
			}
		}
		snippets = append(snippets, Snippet{Text: text, Start: start, Duration: dur})
	}

	for _, p := range doc.Paras {
		raw := p.Text
		if len(p.Segments) > 0 {
			var sb strings.Builder
			for _, s := range p.Segments {
				sb.WriteString(s.Text)
			}
			raw = sb.String()
		}
		// srv3 markup is XML elements, so any < left in chardata is literal text
		text := collapseSpace(raw)
		if text == "" {
			continue
		}
		snippets = append(snippets, Snippet{
			Text:     text,
			Start:    float64(p.Start) / 1000,
			Duration: float64(p.Duration) / 1000,
		})
	}

	return snippets, nil
}

// cleanCaptionText drops inline markup from legacy caption lines, then unescapes the
// entities YouTube double-encodes. Markup must go first: an escaped &lt; is caption text.
func cleanCaptionText(s string) string {
	s = inlineTags.ReplaceAllString(s, "")
	return collapseSpace(html.UnescapeString(s))
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
