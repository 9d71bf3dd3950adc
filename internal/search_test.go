package internal

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeNode struct {
	tag     string
	tagErr  error
	markers map[string]bool
	href    string
	hasLink bool
	title   string
	text    string
}

func (n *fakeNode) Tag() (string, error) { return n.tag, n.tagErr }

func (n *fakeNode) Has(selector string) bool { return n.markers[selector] }

func (n *fakeNode) Attr(selector, name string) (string, bool) {
	if selector != titleLinkSelector || !n.hasLink {
		return "", false
	}
	switch name {
	case "href":
		return n.href, n.href != ""
	case "title":
		return n.title, n.title != ""
	}
	return "", false
}

func (n *fakeNode) Text(selector string) string {
	if selector != titleLinkSelector || !n.hasLink {
		return ""
	}
	return n.text
}

func videoNode(href, title string) *fakeNode {
	return &fakeNode{tag: "ytd-video-renderer", href: href, hasLink: true, title: title}
}

type fakeSession struct {
	nodes   []ResultNode
	waitErr error
	elemErr error
	waited  time.Duration
	closed  int
}

func (s *fakeSession) WaitFor(selector string, timeout time.Duration) error {
	s.waited = timeout
	return s.waitErr
}

func (s *fakeSession) Elements(selector string) ([]ResultNode, error) {
	return s.nodes, s.elemErr
}

func (s *fakeSession) Close() error {
	s.closed++
	return nil
}

type fakeDriver struct {
	session *fakeSession
	openErr error
	urls    []string
}

func (d *fakeDriver) Open(ctx context.Context, url string) (BrowserSession, error) {
	d.urls = append(d.urls, url)
	if d.openErr != nil {
		return nil, d.openErr
	}
	return d.session, nil
}

func TestSearchURL(t *testing.T) {
	assert.Equal(t, "https://www.youtube.com/results?search_query=golang+channels+%26+select", SearchURL(" golang channels & select "))
}

func TestSearcherCollectsInPageOrder(t *testing.T) {
	session := &fakeSession{nodes: []ResultNode{
		videoNode("/watch?v=aaaaaaaaaaa", "First"),
		videoNode("https://www.youtube.com/watch?v=bbbbbbbbbbb&pp=xyz", "Second"),
		videoNode("/shorts/ccccccccccc", "Third"),
	}}
	driver := &fakeDriver{session: session}

	refs, err := NewSearcher(driver, 5*time.Second, false).Search(context.Background(), "golang", 5)
	require.NoError(t, err)

	require.Len(t, refs, 3)
	assert.Equal(t, VideoRef{ID: "aaaaaaaaaaa", URL: CanonicalURL("aaaaaaaaaaa"), Title: "First"}, refs[0])
	assert.Equal(t, "bbbbbbbbbbb", refs[1].ID)
	assert.Equal(t, "ccccccccccc", refs[2].ID)

	assert.Equal(t, []string{SearchURL("golang")}, driver.urls)
	assert.Equal(t, 5*time.Second, session.waited)
	assert.Equal(t, 1, session.closed)
}

func TestSearcherStopsAtMaxResults(t *testing.T) {
	session := &fakeSession{nodes: []ResultNode{
		videoNode("/watch?v=aaaaaaaaaaa", "1"),
		videoNode("/watch?v=bbbbbbbbbbb", "2"),
		videoNode("/watch?v=ccccccccccc", "3"),
	}}

	refs, err := NewSearcher(&fakeDriver{session: session}, time.Second, false).Search(context.Background(), "q", 2)
	require.NoError(t, err)
	require.Len(t, refs, 2)
	assert.Equal(t, "aaaaaaaaaaa", refs[0].ID)
	assert.Equal(t, "bbbbbbbbbbb", refs[1].ID)
	assert.Equal(t, 1, session.closed)
}

func TestSearcherSkipsAdsAndUnusableResults(t *testing.T) {
	session := &fakeSession{nodes: []ResultNode{
		&fakeNode{tag: "ytd-ad-slot-renderer", href: "/watch?v=adadadadada", hasLink: true},
		&fakeNode{tag: "YTD-PROMOTED-VIDEO-RENDERER", href: "/watch?v=adadadadadb", hasLink: true},
		&fakeNode{tag: "ytd-video-renderer", href: "/watch?v=sponsoredaa", hasLink: true,
			markers: map[string]bool{`[aria-label="Sponsored"]`: true}},
		&fakeNode{tagErr: errors.New("node detached"), href: "/watch?v=detachedaaa", hasLink: true},
		&fakeNode{tag: "ytd-video-renderer", hasLink: false},
		&fakeNode{tag: "ytd-video-renderer", hasLink: true, href: "  "},
		videoNode("https://www.googleadservices.com/pagead/aclk?v=clickclick1", "Ad link"),
		videoNode("https://ad.doubleclick.net/watch?v=clickclick2", "Ad link"),
		videoNode("/channel/UC1234", "Channel"),
		videoNode("/watch?v=organic0001", "Organic"),
		videoNode("/watch?v=organic0001&t=10s", "Duplicate"),
		&fakeNode{tag: "ytd-video-renderer", href: "/watch?v=organic0002", hasLink: true, text: " From text "},
	}}

	refs, err := NewSearcher(&fakeDriver{session: session}, time.Second, false).Search(context.Background(), "q", 10)
	require.NoError(t, err)

	require.Len(t, refs, 2)
	assert.Equal(t, "organic0001", refs[0].ID)
	assert.Equal(t, "Organic", refs[0].Title)
	assert.Equal(t, "organic0002", refs[1].ID)
	assert.Equal(t, "From text", refs[1].Title)
}

func TestSearcherNonPositiveMaxResults(t *testing.T) {
	driver := &fakeDriver{session: &fakeSession{}}

	refs, err := NewSearcher(driver, time.Second, false).Search(context.Background(), "q", 0)
	require.NoError(t, err)
	assert.NotNil(t, refs)
	assert.Empty(t, refs)
	assert.Empty(t, driver.urls)
}

func TestSearcherBrowserFailures(t *testing.T) {
	t.Run("launch fails", func(t *testing.T) {
		driver := &fakeDriver{openErr: errors.New("no chromium")}

		refs, err := NewSearcher(driver, time.Second, false).Search(context.Background(), "q", 3)
		assert.ErrorIs(t, err, ErrBrowserAutomation)
		assert.NotNil(t, refs)
		assert.Empty(t, refs)
	})

	t.Run("results never render", func(t *testing.T) {
		session := &fakeSession{waitErr: context.DeadlineExceeded}

		refs, err := NewSearcher(&fakeDriver{session: session}, time.Millisecond, false).Search(context.Background(), "q", 3)
		assert.ErrorIs(t, err, ErrBrowserAutomation)
		assert.ErrorIs(t, err, context.DeadlineExceeded)
		assert.Empty(t, refs)
		assert.Equal(t, 1, session.closed)
	})

	t.Run("elements unreadable", func(t *testing.T) {
		session := &fakeSession{elemErr: errors.New("page crashed")}

		_, err := NewSearcher(&fakeDriver{session: session}, time.Second, false).Search(context.Background(), "q", 3)
		assert.ErrorIs(t, err, ErrBrowserAutomation)
		assert.Equal(t, 1, session.closed)
	})
}

func TestIsAdLink(t *testing.T) {
	assert.True(t, isAdLink("https://www.googleadservices.com/pagead/aclk"))
	assert.True(t, isAdLink("https://googlesyndication.com/x"))
	assert.True(t, isAdLink("https://ad.doubleclick.net/x"))
	assert.False(t, isAdLink("https://www.youtube.com/watch?v=dQw4w9WgXcQ"))
	assert.False(t, isAdLink("/watch?v=dQw4w9WgXcQ"))
	assert.False(t, isAdLink("https://notdoubleclick.net.example.com/"))
}
