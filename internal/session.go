package internal

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/time/rate"
)

const appTitle = "YT TRANSCRIPT"

var countPrinter = message.NewPrinter(language.English)

// Session drives the classify → search/fetch → write workflow for user input
type Session struct {
	config   *Config
	searcher VideoSearcher
	fetcher  TranscriptSource
	writer   *OutputWriter
	ui       UIManager
	limiter  *rate.Limiter
}

// NewSession creates a session. Consecutive fetches within a batch are spaced by config.FetchInterval.
func NewSession(config *Config, searcher VideoSearcher, fetcher TranscriptSource, writer *OutputWriter, ui UIManager) *Session {
	limit := rate.Inf
	if config.FetchInterval > 0 {
		limit = rate.Every(config.FetchInterval)
	}
	return &Session{
		config:   config,
		searcher: searcher,
		fetcher:  fetcher,
		writer:   writer,
		ui:       ui,
		limiter:  rate.NewLimiter(limit, 1),
	}
}

// Run reads one input per line until an empty line, EOF, or ctx is cancelled
func (s *Session) Run(ctx context.Context, in io.Reader) error {
	lines := readLines(in)

	for {
		s.ui.Header(appTitle)
		s.ui.Prompt("🎬 Enter YouTube URL, video ID or search:")

		var input string
		select {
		case <-ctx.Done():
			s.goodbye()
			return nil
		case line, ok := <-lines:
			if !ok {
				s.goodbye()
				return nil
			}
			input = strings.TrimSpace(line)
		}

		if input == "" {
			s.goodbye()
			return nil
		}
		s.ui.Println()

		if _, err := s.Handle(ctx, input); err != nil {
			if ctx.Err() != nil {
				s.goodbye()
				return nil
			}
			s.ReportError(err)
		}

		s.ui.Println()
		s.ui.Rule()
		s.ui.Printf("\n%s🔄 Enter another URL or search, or press Enter to exit\n", indent)
	}
}

// Handle processes a single line of input.
// Per-video failures inside a search batch are collected in the report and do not stop the batch.
func (s *Session) Handle(ctx context.Context, input string) (*BatchReport, error) {
	input = strings.TrimSpace(input)
	report := &BatchReport{Kind: Classify(input), Input: input}

	switch report.Kind {
	case InputKindVideo:
		ref, err := NewVideoRef(input, "")
		if err != nil {
			return report, err
		}
		s.ui.Verbose("Resolved %q to video %s\n", input, ref.ID)
		spinner := s.ui.NewSpinner(indent + "Fetching transcript...")
		saved, err := s.fetchAndSave(ctx, ref)
		spinner.Finish()
		if err != nil {
			report.Failed = append(report.Failed, FailedVideo{Video: ref, Err: err})
			return report, err
		}
		report.Saved = append(report.Saved, saved)
		s.showSaved(saved)
		return report, nil

	case InputKindSearch:
		return report, s.searchAndFetchAll(ctx, input, report)

	default:
		return report, ErrInvalidIdentifier
	}
}

func (s *Session) searchAndFetchAll(ctx context.Context, query string, report *BatchReport) error {
	spinner := s.ui.NewSpinner(indent + fmt.Sprintf("Searching YouTube for %q...", query))
	refs, err := s.searcher.Search(ctx, query, s.config.MaxResults)
	spinner.Finish()
	if err != nil {
		return fmt.Errorf("searching for %q: %w", query, err)
	}
	if len(refs) == 0 {
		return fmt.Errorf("%w for %q", ErrNoSearchResults, query)
	}

	s.ui.Printf("%sFound %d videos:\n", indent, len(refs))
	for i, ref := range refs {
		s.ui.Printf("%s  %d. %s\n", indent, i+1, ref)
	}
	s.ui.Println()

	bar := s.ui.NewProgressBar(len(refs), "Fetching transcripts")
	for i, ref := range refs {
		bar.Set(i)
		bar.Describe(indent + ref.String())

		if err := s.limiter.Wait(ctx); err != nil {
			bar.Finish()
			return err
		}

		saved, err := s.fetchAndSave(ctx, ref)
		if err != nil {
			s.ui.Verbose("Failed to save transcript for %s: %v\n", ref.ID, err)
			report.Failed = append(report.Failed, FailedVideo{Video: ref, Err: err})
			continue
		}
		report.Saved = append(report.Saved, saved)
	}
	bar.Set(len(refs))
	bar.Finish()

	s.showBatch(report)
	return nil
}

// fetchAndSave fetches one transcript and writes it to the output directory
func (s *Session) fetchAndSave(ctx context.Context, ref VideoRef) (SavedTranscript, error) {
	tr, err := s.fetcher.Fetch(ctx, ref.ID)
	if err != nil {
		return SavedTranscript{}, err
	}

	path, err := s.writer.Write(tr)
	if err != nil {
		return SavedTranscript{}, err
	}

	return SavedTranscript{Video: ref, Path: path, Transcript: tr}, nil
}

func (s *Session) showSaved(saved SavedTranscript) {
	s.ui.Success("✨ Success! Transcript saved")
	s.ui.Println()
	s.ui.Detail("📄 File", saved.Path)
	s.ui.Detail("📝 Size", countPrinter.Sprintf("%d snippets", len(saved.Transcript.Snippets)))
	if len(saved.Transcript.Snippets) > 0 {
		s.ui.Detail("⏱️  Video length", formatLength(saved.Transcript.Length()))
	}
	s.ui.Detail("🌍 Language", saved.Transcript.Language)
}

func (s *Session) showBatch(report *BatchReport) {
	s.ui.Success("Saved %d of %d transcripts", len(report.Saved), report.Attempted())
	for _, saved := range report.Saved {
		s.ui.Detail("📄 "+saved.Video.ID, fmt.Sprintf("%s (%s, %s)",
			saved.Path,
			countPrinter.Sprintf("%d snippets", len(saved.Transcript.Snippets)),
			saved.Transcript.Language))
	}

	if len(report.Failed) == 0 {
		return
	}

	s.ui.Println()
	showHints := false
	for _, failed := range report.Failed {
		s.ui.Failure("%s: %v", failed.Video, failed.Err)
		if errors.Is(failed.Err, ErrTranscriptUnavailable) {
			showHints = true
		}
	}
	if showHints {
		s.unavailableHints()
	}
}

// ReportError turns an operation error into a user-facing message
func (s *Session) ReportError(err error) {
	switch {
	case errors.Is(err, ErrInvalidIdentifier):
		s.ui.Failure("Invalid YouTube URL")
		s.ui.Hint("Use a watch, embed or youtu.be link, or an 11 character video ID")
	case errors.Is(err, ErrNoSearchResults):
		s.ui.Failure("No videos found")
		s.ui.Hint("Try different search terms")
	case errors.Is(err, ErrBrowserAutomation):
		s.ui.Failure("Search failed")
		s.ui.Hint("%v", err)
	case errors.Is(err, ErrTranscriptUnavailable):
		s.ui.Failure("Oops! Something went wrong")
		s.ui.Hint("%v", err)
		s.unavailableHints()
	default:
		s.ui.Failure("Oops! Something went wrong")
		s.ui.Hint("%v", err)
	}
}

func (s *Session) unavailableHints() {
	s.ui.Printf("%s   • Check if the video is public\n", indent)
	s.ui.Printf("%s   • Some videos disable captions\n", indent)
	s.ui.Printf("%s   • Try a different video\n", indent)
}

func (s *Session) goodbye() {
	s.ui.Printf("\n%s%s\n\n", indent, hintStyle.Render("Goodbye! 👋"))
}

// readLines streams lines from r until EOF
func readLines(r io.Reader) <-chan string {
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
	}()
	return lines
}
