package internal

import (
	"context"
	"fmt"
)

// App holds the application state and dependencies
type App struct {
	searcher      VideoSearcher
	fetcher       TranscriptSource
	writer        *OutputWriter
	ai            *AI
	promptManager *PromptManager
	config        *Config
	ui            UIManager
}

// NewApp initializes the application
func NewApp(config *Config, options ...AppOption) *App {
	driver := NewRodDriver(config.Headless, config.BrowserBin)

	app := &App{
		searcher:      NewSearcher(driver, config.SearchTimeout, config.Verbose),
		fetcher:       NewTranscriptFetcher(config.Languages, config.FetchTimeout, config.Verbose),
		writer:        NewOutputWriter(config.OutputDir),
		ai:            NewAIWithKey(config.OpenAIAPIKey, config.SummaryModel, config.SummaryTimeout, config.Verbose),
		promptManager: NewPromptManager(config.ConfigDir, config.Prompt),
		config:        config,
		ui:            NewUIManager(config.Verbose, config.Quiet),
	}

	// Apply any custom options
	for _, option := range options {
		option(app)
	}

	return app
}

// AppOption customizes App creation
type AppOption func(*App)

// WithSearcher sets a custom video searcher
func WithSearcher(searcher VideoSearcher) AppOption {
	return func(a *App) {
		a.searcher = searcher
	}
}

// WithFetcher sets a custom transcript source
func WithFetcher(fetcher TranscriptSource) AppOption {
	return func(a *App) {
		a.fetcher = fetcher
	}
}

// WithOutputWriter sets a custom output writer
func WithOutputWriter(writer *OutputWriter) AppOption {
	return func(a *App) {
		a.writer = writer
	}
}

// WithAI sets a custom AI processor
func WithAI(ai *AI) AppOption {
	return func(a *App) {
		a.ai = ai
	}
}

// WithUI sets a custom UI manager
func WithUI(ui UIManager) AppOption {
	return func(a *App) {
		a.ui = ui
	}
}

// SetPromptManager sets a new prompt manager
func (app *App) SetPromptManager(pm *PromptManager) {
	app.promptManager = pm
}

// Config returns the configuration the app was built with
func (app *App) Config() *Config {
	return app.config
}

// Session returns an interactive session sharing the app's collaborators
func (app *App) Session() *Session {
	return NewSession(app.config, app.searcher, app.fetcher, app.writer, app.ui)
}

// GetTranscript fetches the transcript for a URL or video ID
func (app *App) GetTranscript(ctx context.Context, input string) (*Transcript, VideoRef, error) {
	return app.GetTranscriptWithStatus(ctx, input, false)
}

// GetTranscriptWithStatus fetches a transcript with an optional status spinner
func (app *App) GetTranscriptWithStatus(ctx context.Context, input string, showStatus bool) (*Transcript, VideoRef, error) {
	ref, err := NewVideoRef(input, "")
	if err != nil {
		return nil, VideoRef{}, err
	}

	var spinner ProgressBar
	if showStatus {
		spinner = app.ui.NewSpinner("Fetching YouTube captions...")
	}

	tr, err := app.fetcher.Fetch(ctx, ref.ID)
	if spinner != nil {
		spinner.Finish()
	}
	if err != nil {
		return nil, ref, err
	}

	if ref.Title == "" {
		ref.Title = tr.Title
	}
	return tr, ref, nil
}

// SaveTranscript fetches a transcript and writes it to the output directory
func (app *App) SaveTranscript(ctx context.Context, input string) (SavedTranscript, error) {
	tr, ref, err := app.GetTranscriptWithStatus(ctx, input, !app.config.Quiet)
	if err != nil {
		return SavedTranscript{}, err
	}

	path, err := app.writer.Write(tr)
	if err != nil {
		return SavedTranscript{}, fmt.Errorf("saving transcript: %w", err)
	}

	return SavedTranscript{Video: ref, Path: path, Transcript: tr}, nil
}

// Search returns up to maxResults videos for query; a non-positive maxResults uses the configured default
func (app *App) Search(ctx context.Context, query string, maxResults int) ([]VideoRef, error) {
	if maxResults <= 0 {
		maxResults = app.config.MaxResults
	}

	refs, err := app.searcher.Search(ctx, query, maxResults)
	if err != nil {
		return nil, err
	}
	if len(refs) == 0 {
		return nil, fmt.Errorf("%w for %q", ErrNoSearchResults, query)
	}
	return refs, nil
}

// GenerateSummary creates a summary from a transcript and returns the rendered markdown
func (app *App) GenerateSummary(ctx context.Context, ref VideoRef, tr *Transcript) (string, error) {
	if tr == nil || len(tr.Snippets) == 0 {
		return "", fmt.Errorf("transcript is empty")
	}

	prompt, err := app.promptManager.CreatePrompt(ref, tr)
	if err != nil {
		return "", fmt.Errorf("creating prompt: %w", err)
	}

	var spinner ProgressBar
	if !app.config.Quiet {
		spinner = app.ui.NewSpinner("Summarizing with " + app.config.SummaryModel + "...")
	}
	summaryContent, err := app.ai.Summary(ctx, prompt)
	if spinner != nil {
		spinner.Finish()
	}
	if err != nil {
		return "", fmt.Errorf("generating summary: %w", err)
	}

	renderedSummary, err := RenderMarkdown(summaryContent)
	if err != nil {
		return "", fmt.Errorf("rendering markdown: %w", err)
	}

	return renderedSummary, nil
}

// SummarizeYouTube performs the complete workflow: get transcript -> summarize -> print
func (app *App) SummarizeYouTube(ctx context.Context, input string) error {
	tr, ref, err := app.GetTranscriptWithStatus(ctx, input, !app.config.Quiet)
	if err != nil {
		return err
	}

	summary, err := app.GenerateSummary(ctx, ref, tr)
	if err != nil {
		return err
	}

	fmt.Println(summary)
	return nil
}
