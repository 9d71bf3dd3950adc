package internal

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

const browserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 " +
	"(KHTML, like Gecko) Chrome/127.0.0.0 Safari/537.36"

// BrowserDriver opens browser sessions on a page
type BrowserDriver interface {
	Open(ctx context.Context, url string) (BrowserSession, error)
}

// BrowserSession is one open page. Close must always be called.
type BrowserSession interface {
	WaitFor(selector string, timeout time.Duration) error
	Elements(selector string) ([]ResultNode, error)
	Close() error
}

// ResultNode is a rendered element on the page
type ResultNode interface {
	Tag() (string, error)
	Has(selector string) bool
	Attr(selector, name string) (string, bool)
	Text(selector string) string
}

// RodDriver drives a local Chromium through go-rod
type RodDriver struct {
	headless bool
	bin      string
}

// NewRodDriver creates a driver. An empty bin lets rod find or download a browser.
func NewRodDriver(headless bool, bin string) *RodDriver {
	return &RodDriver{headless: headless, bin: bin}
}

// Open launches a browser and navigates a new page to url
func (d *RodDriver) Open(ctx context.Context, url string) (BrowserSession, error) {
	l := launcher.New().
		Context(ctx).
		Headless(d.headless).
		Set("mute-audio").
		Set("disable-blink-features", "AutomationControlled").
		Set("user-agent", browserUserAgent)
	if d.bin != "" {
		l = l.Bin(d.bin)
	}

	controlURL, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("launching browser: %w", err)
	}

	browser := rod.New().ControlURL(controlURL).Context(ctx)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return nil, fmt.Errorf("connecting to browser: %w", err)
	}

	page, err := browser.Page(proto.TargetCreateTarget{URL: url})
	if err != nil {
		_ = browser.Close()
		l.Kill()
		return nil, fmt.Errorf("opening page: %w", err)
	}

	return &rodSession{launcher: l, browser: browser, page: page}, nil
}

type rodSession struct {
	launcher *launcher.Launcher
	browser  *rod.Browser
	page     *rod.Page
}

func (s *rodSession) WaitFor(selector string, timeout time.Duration) error {
	p := s.page.Timeout(timeout)
	defer p.CancelTimeout()
	_, err := p.Element(selector)
	return err
}

func (s *rodSession) Elements(selector string) ([]ResultNode, error) {
	els, err := s.page.Elements(selector)
	if err != nil {
		return nil, err
	}
	nodes := make([]ResultNode, 0, len(els))
	for _, el := range els {
		nodes = append(nodes, &rodNode{el: el})
	}
	return nodes, nil
}

func (s *rodSession) Close() error {
	err := s.browser.Close()
	s.launcher.Kill()
	s.launcher.Cleanup()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: closing browser: %v\n", err)
	}
	return err
}

type rodNode struct {
	el *rod.Element
}

func (n *rodNode) Tag() (string, error) {
	obj, err := n.el.Eval(`() => this.tagName.toLowerCase()`)
	if err != nil {
		return "", err
	}
	return obj.Value.Str(), nil
}

func (n *rodNode) Has(selector string) bool {
	has, _, err := n.el.Has(selector)
	return err == nil && has
}

func (n *rodNode) Attr(selector, name string) (string, bool) {
	has, child, err := n.el.Has(selector)
	if err != nil || !has {
		return "", false
	}
	v, err := child.Attribute(name)
	if err != nil || v == nil {
		return "", false
	}
	return *v, true
}

func (n *rodNode) Text(selector string) string {
	has, child, err := n.el.Has(selector)
	if err != nil || !has {
		return ""
	}
	text, err := child.Text()
	if err != nil {
		return ""
	}
	return text
}
