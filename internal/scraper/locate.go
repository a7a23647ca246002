package scraper

import (
	"errors"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// ErrTableNotFound is returned when no table matches, rendered or commented out
var ErrTableNotFound = errors.New("table not found")

// Matcher reports whether a table element is the one being looked for
type Matcher func(*goquery.Selection) bool

// ByID matches the table whose id attribute equals id
func ByID(id string) Matcher {
	return func(s *goquery.Selection) bool {
		v, ok := s.Attr("id")
		return ok && v == id
	}
}

// IDContains matches tables whose id contains marker, e.g. "gamelogs"
func IDContains(marker string) Matcher {
	return func(s *goquery.Selection) bool {
		v, ok := s.Attr("id")
		return ok && strings.Contains(v, marker)
	}
}

// HasClass matches tables carrying the given class
func HasClass(class string) Matcher {
	return func(s *goquery.Selection) bool {
		return s.HasClass(class)
	}
}

// Locator finds a table in a parsed page
type Locator interface {
	Locate(doc *goquery.Document, match Matcher) (*goquery.Selection, error)
}

// DirectLocator searches the page's rendered table elements
type DirectLocator struct{}

// Locate returns the first rendered table accepted by match
func (DirectLocator) Locate(doc *goquery.Document, match Matcher) (*goquery.Selection, error) {
	return findTable(doc.Selection, match)
}

// CommentLocator searches tables the page ships inside HTML comments.
// The data of every comment node is concatenated in document order and
// parsed as one fragment.
type CommentLocator struct{}

// Locate returns the first commented-out table accepted by match
func (CommentLocator) Locate(doc *goquery.Document, match Matcher) (*goquery.Selection, error) {
	var b strings.Builder
	for _, n := range doc.Nodes {
		collectComments(n, &b)
	}
	if b.Len() == 0 {
		return nil, ErrTableNotFound
	}

	hidden, err := goquery.NewDocumentFromReader(strings.NewReader(b.String()))
	if err != nil {
		return nil, fmt.Errorf("parsing commented markup: %w", err)
	}

	return findTable(hidden.Selection, match)
}

// FallbackLocator tries each locator in turn until one finds the table
type FallbackLocator []Locator

// Locate returns the first match any locator finds. Errors other than
// ErrTableNotFound stop the search.
func (f FallbackLocator) Locate(doc *goquery.Document, match Matcher) (*goquery.Selection, error) {
	for _, l := range f {
		sel, err := l.Locate(doc, match)
		if err == nil {
			return sel, nil
		}
		if !errors.Is(err, ErrTableNotFound) {
			return nil, err
		}
	}
	return nil, ErrTableNotFound
}

// DefaultLocator searches rendered tables first, then commented-out ones
func DefaultLocator() Locator {
	return FallbackLocator{DirectLocator{}, CommentLocator{}}
}

func findTable(root *goquery.Selection, match Matcher) (*goquery.Selection, error) {
	sel := root.Find("table").FilterFunction(func(_ int, s *goquery.Selection) bool {
		return match(s)
	}).First()
	if sel.Length() == 0 {
		return nil, ErrTableNotFound
	}
	return sel, nil
}

func collectComments(n *html.Node, b *strings.Builder) {
	if n.Type == html.CommentNode {
		b.WriteString(n.Data)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectComments(c, b)
	}
}
