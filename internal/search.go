package internal

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"
)

const (
	searchEndpoint = "https://www.youtube.com/results?search_query="
	youtubeOrigin  = "https://www.youtube.com"

	// resultReadySelector must render before results are read
	resultReadySelector = "ytd-video-renderer"
	// resultListSelector matches organic results and the ad units interleaved with them, in page order
	resultListSelector = "ytd-video-renderer, ytd-promoted-video-renderer, ytd-promoted-sparkles-web-renderer, ytd-ad-slot-renderer, ytd-in-feed-ad-layout-renderer"
	titleLinkSelector  = "a#video-title"
)

var adRendererTags = map[string]bool{
	"ytd-promoted-video-renderer":        true,
	"ytd-promoted-sparkles-web-renderer": true,
	"ytd-ad-slot-renderer":               true,
	"ytd-in-feed-ad-layout-renderer":     true,
}

var sponsoredMarkers = []string{
	".badge-style-type-ad",
	`[aria-label="Sponsored"]`,
	"ytd-ad-inline-playback-meta-block",
}

var adDomains = []string{"googleadservices.com", "doubleclick.net", "googlesyndication.com"}

// VideoSearcher finds videos for a free-text query
type VideoSearcher interface {
	Search(ctx context.Context, query string, maxResults int) ([]VideoRef, error)
}

// Searcher collects search results from a rendered YouTube results page
type Searcher struct {
	driver  BrowserDriver
	timeout time.Duration
	verbose bool
}

// NewSearcher creates a searcher that waits up to timeout for results to render
func NewSearcher(driver BrowserDriver, timeout time.Duration, verbose bool) *Searcher {
	return &Searcher{driver: driver, timeout: timeout, verbose: verbose}
}

// SearchURL returns the results page URL for query
func SearchURL(query string) string {
	return searchEndpoint + url.QueryEscape(strings.TrimSpace(query))
}

// Search returns up to maxResults non-sponsored videos in page order.
// The browser session is always closed before returning.
func (s *Searcher) Search(ctx context.Context, query string, maxResults int) ([]VideoRef, error) {
	refs := []VideoRef{}
	if maxResults <= 0 {
		return refs, nil
	}

	session, err := s.driver.Open(ctx, SearchURL(query))
	if err != nil {
		return refs, fmt.Errorf("%w: %w", ErrBrowserAutomation, err)
	}
	defer session.Close()

	if err := session.WaitFor(resultReadySelector, s.timeout); err != nil {
		return refs, fmt.Errorf("%w: waiting for search results: %w", ErrBrowserAutomation, err)
	}

	nodes, err := session.Elements(resultListSelector)
	if err != nil {
		return refs, fmt.Errorf("%w: reading search results: %w", ErrBrowserAutomation, err)
	}

	seen := make(map[string]bool)
	for _, node := range nodes {
		if len(refs) >= maxResults {
			break
		}

		ref, ok := s.collectResult(node)
		if !ok || seen[ref.ID] {
			continue
		}
		seen[ref.ID] = true
		refs = append(refs, ref)
	}

	if s.verbose {
		fmt.Printf("Collected %d of %d result elements for %q\n", len(refs), len(nodes), query)
	}

	return refs, nil
}

// collectResult turns one result element into a reference, rejecting ads and unusable links
func (s *Searcher) collectResult(node ResultNode) (VideoRef, bool) {
	if isSponsored(node) {
		if s.verbose {
			fmt.Println("Skipping sponsored result")
		}
		return VideoRef{}, false
	}

	href, ok := node.Attr(titleLinkSelector, "href")
	href = strings.TrimSpace(href)
	if !ok || href == "" || isAdLink(href) {
		return VideoRef{}, false
	}
	if strings.HasPrefix(href, "/") {
		href = youtubeOrigin + href
	}

	title, _ := node.Attr(titleLinkSelector, "title")
	if strings.TrimSpace(title) == "" {
		title = node.Text(titleLinkSelector)
	}

	ref, err := NewVideoRef(href, strings.TrimSpace(title))
	if err != nil {
		return VideoRef{}, false
	}
	return ref, true
}

func isSponsored(node ResultNode) bool {
	tag, err := node.Tag()
	if err != nil || adRendererTags[strings.ToLower(tag)] {
		return true
	}
	for _, marker := range sponsoredMarkers {
		if node.Has(marker) {
			return true
		}
	}
	return false
}

func isAdLink(href string) bool {
	u, err := url.Parse(href)
	if err != nil {
		return true
	}
	host := strings.ToLower(u.Hostname())
	for _, domain := range adDomains {
		if host == domain || strings.HasSuffix(host, "."+domain) {
			return true
		}
	}
	return false
}
