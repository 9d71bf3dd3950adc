package internal

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// MCPServer wraps the MCP server and application dependencies
type MCPServer struct {
	app       *App
	mcpServer *server.MCPServer
}

// NewMCPServer creates a new MCP server instance
func NewMCPServer(app *App, version string) *MCPServer {
	mcpServer := server.NewMCPServer(
		"tubescribe-server",
		version,
		server.WithToolCapabilities(true),
	)

	s := &MCPServer{
		app:       app,
		mcpServer: mcpServer,
	}

	s.registerTools()

	return s
}

// registerTools registers all available MCP tools
func (s *MCPServer) registerTools() {
	s.mcpServer.AddTool(mcp.NewTool("get_youtube_transcript",
		mcp.WithDescription("Get the existing YouTube captions of a video as plain text. Accepts a watch, embed or youtu.be URL, or a bare 11 character video ID. Fails if the video has no captions."),
		mcp.WithString("url",
			mcp.Description("YouTube video URL or video ID"),
			mcp.Required(),
		),
	), s.handleGetTranscript)

	s.mcpServer.AddTool(mcp.NewTool("search_youtube",
		mcp.WithDescription("Search YouTube and return the top non-sponsored videos with their title, URL and video ID. Use get_youtube_transcript on a result to read its captions."),
		mcp.WithString("query",
			mcp.Description("Free-text search query"),
			mcp.Required(),
		),
		mcp.WithNumber("max_results",
			mcp.Description("Maximum number of videos to return (defaults to the configured max_results)"),
		),
	), s.handleSearch)

	s.mcpServer.AddTool(mcp.NewTool("save_youtube_transcript",
		mcp.WithDescription("Fetch a video's captions and save them as <id>_<ddmmyy>.txt in the configured output directory. Returns the path written."),
		mcp.WithString("url",
			mcp.Description("YouTube video URL or video ID"),
			mcp.Required(),
		),
	), s.handleSaveTranscript)
}

// handleGetTranscript implements the get_youtube_transcript tool
func (s *MCPServer) handleGetTranscript(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	url, err := request.RequireString("url")
	if err != nil {
		return mcp.NewToolResultError("url parameter is required and must be a string"), nil
	}
	MCPLogInfo("get_youtube_transcript url=%q", url)

	tr, _, err := s.app.GetTranscript(ctx, url)
	if err != nil {
		MCPLogError("get_youtube_transcript url=%q: %v", url, err)
		return mcp.NewToolResultErrorFromErr(transcriptFailureMessage(err), err), nil
	}

	return mcp.NewToolResultText(strings.TrimSpace(FlattenTranscript(tr))), nil
}

// handleSearch implements the search_youtube tool
func (s *MCPServer) handleSearch(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := request.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError("query parameter is required and must be a string"), nil
	}
	maxResults := request.GetInt("max_results", 0)
	MCPLogInfo("search_youtube query=%q max_results=%d", query, maxResults)

	refs, err := s.app.Search(ctx, query, maxResults)
	if err != nil {
		MCPLogError("search_youtube query=%q: %v", query, err)
		return mcp.NewToolResultErrorFromErr("search failed", err), nil
	}

	return mcp.NewToolResultText(formatSearchResults(refs)), nil
}

// handleSaveTranscript implements the save_youtube_transcript tool
func (s *MCPServer) handleSaveTranscript(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	url, err := request.RequireString("url")
	if err != nil {
		return mcp.NewToolResultError("url parameter is required and must be a string"), nil
	}
	MCPLogInfo("save_youtube_transcript url=%q", url)

	saved, err := s.app.SaveTranscript(ctx, url)
	if err != nil {
		MCPLogError("save_youtube_transcript url=%q: %v", url, err)
		return mcp.NewToolResultErrorFromErr(transcriptFailureMessage(err), err), nil
	}
	MCPLogDebug("saved %s (%d snippets)", saved.Path, len(saved.Transcript.Snippets))

	return mcp.NewToolResultText(fmt.Sprintf("Saved transcript to %s (%d snippets, language %s)",
		saved.Path, len(saved.Transcript.Snippets), saved.Transcript.Language)), nil
}

// formatSearchResults renders one numbered block per video
func formatSearchResults(refs []VideoRef) string {
	var buf strings.Builder
	for i, ref := range refs {
		title := ref.Title
		if title == "" {
			title = "(untitled)"
		}
		buf.WriteString(fmt.Sprintf("%d. %s\n", i+1, title))
		buf.WriteString(fmt.Sprintf("   URL: %s\n", ref.URL))
		buf.WriteString(fmt.Sprintf("   ID: %s\n", ref.ID))
	}
	return buf.String()
}

func transcriptFailureMessage(err error) string {
	switch {
	case errors.Is(err, ErrInvalidIdentifier):
		return "not a YouTube URL or video ID"
	case errors.Is(err, ErrTranscriptUnavailable):
		return "no captions available - the video may be private or have captions disabled"
	default:
		return "failed to fetch transcript"
	}
}

// Start starts the MCP server using the specified transport
func (s *MCPServer) Start(ctx context.Context, transport string, port int) error {
	MCPLogInfo("starting MCP server transport=%s port=%d", transport, port)

	if transport == "http" {
		httpServer := server.NewStreamableHTTPServer(s.mcpServer)
		addr := fmt.Sprintf(":%d", port)
		if ctx.Err() != nil {
			return ctx.Err()
		}

		errCh := make(chan error, 1)
		go func() { errCh <- httpServer.Start(addr) }()

		select {
		case err := <-errCh:
			return err
		case <-ctx.Done():
			return httpServer.Shutdown(context.Background())
		}
	}

	// Default to stdio transport
	return server.ServeStdio(s.mcpServer)
}

// GetServer returns the underlying MCP server for advanced configuration
func (s *MCPServer) GetServer() *server.MCPServer {
	return s.mcpServer
}
