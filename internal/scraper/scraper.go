package scraper

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/pfrederiksen/bbref/internal/logger"
)

// BaseURL is the site every page is fetched from
const BaseURL = "https://www.baseball-reference.com"

// ErrUnexpectedStatus is returned when a page responds with anything but 200 OK
var ErrUnexpectedStatus = errors.New("unexpected status code")

// Client fetches pages and extracts their tables
type Client struct {
	client  *http.Client
	baseURL string
	locator Locator
}

// Option configures a Client
type Option func(*Client)

// WithBaseURL points the client at another host, such as a mirror or a test server
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithHTTPClient replaces the default HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.client = hc
	}
}

// WithLocator replaces the default direct-then-comments table lookup
func WithLocator(l Locator) Option {
	return func(c *Client) {
		c.locator = l
	}
}

// New creates a new Client
func New(opts ...Option) *Client {
	c := &Client{
		client:  &http.Client{},
		baseURL: BaseURL,
		locator: DefaultLocator(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// fetch downloads a page and parses it. Transport errors are wrapped, not replaced.
func (c *Client) fetch(pageURL string) (*goquery.Document, error) {
	start := time.Now()

	req, err := http.NewRequest(http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		logger.IncrCounter("fetch.status_error")
		return nil, fmt.Errorf("%w: %d from %s", ErrUnexpectedStatus, resp.StatusCode, pageURL)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	elapsed := time.Since(start)
	logger.RecordTiming("fetch", elapsed)
	logger.Debug("fetched page", logger.Fields{
		"url":         pageURL,
		"duration_ms": elapsed.Milliseconds(),
	})

	return doc, nil
}

// locate fetches a page and returns the table accepted by match
func (c *Client) locate(pageURL string, match Matcher, label string) (*goquery.Selection, error) {
	doc, err := c.fetch(pageURL)
	if err != nil {
		return nil, err
	}

	sel, err := c.locator.Locate(doc, match)
	if err != nil {
		logger.Debug("table not found", logger.Fields{"url": pageURL, "table": label})
		return nil, err
	}

	return sel, nil
}
