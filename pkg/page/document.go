// Package page wraps the host page document. It is the only place that touches the HTML tree:
// card discovery, the display toggle, overlay elements owned by the filter and structural
// mutations that observers (the scheduler) react to.
package page

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-pkgz/lgr"
	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/umputun/cardfilter/pkg/domain"
)

// Selectors describes the host page structure
type Selectors struct {
	Card         string
	Title        string
	Owner        string
	Author       string
	Container    string
	TooltipClass string
	NoticeClass  string
	Noise        []string
}

// MutationKind tells what a structural mutation did
type MutationKind int

const (
	MutationAdded MutationKind = iota
	MutationRemoved
)

// Mutation is a child-list change of the document
type Mutation struct {
	Kind    MutationKind
	Nodes   int
	Overlay bool // change made to an overlay element owned by the filter
}

// Document is the host page together with its mutation observers
type Document struct {
	doc       *goquery.Document
	sel       Selectors
	sanitizer *bluemonday.Policy
	observers map[int]func(Mutation)
	nextObsID int
}

// Parse reads the host page HTML
func Parse(r io.Reader, sel Selectors) (*Document, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parse page: %w", err)
	}
	return &Document{doc: doc, sel: sel, sanitizer: cardPolicy(), observers: map[int]func(Mutation){}}, nil
}

// Selectors returns the structural selectors the document was built with
func (d *Document) Selectors() Selectors {
	return d.sel
}

// Observe registers fn for every structural mutation and returns a function removing it
func (d *Document) Observe(fn func(Mutation)) (cancel func()) {
	id := d.nextObsID
	d.nextObsID++
	d.observers[id] = fn
	return func() { delete(d.observers, id) }
}

// Find queries the whole document
func (d *Document) Find(selector string) *goquery.Selection {
	return d.doc.Find(selector)
}

// Cards returns all content cards currently present
func (d *Document) Cards() *goquery.Selection {
	return d.doc.Find(d.sel.Card)
}

// Card returns the card at zero-based index i, empty selection if out of range
func (d *Document) Card(i int) *goquery.Selection {
	return d.Cards().Eq(i)
}

// CardIndex returns the zero-based index of card node n among all cards, -1 if n is not a card
func (d *Document) CardIndex(n *html.Node) int {
	return d.Cards().IndexOfNode(n)
}

// Select wraps a node attached to the document into a selection, empty if n is detached
func (d *Document) Select(n *html.Node) *goquery.Selection {
	if n == nil {
		return d.doc.FindNodes()
	}
	return d.doc.FindNodes(n)
}

// Region resolves a card-relative region to a node. Tooltip region ignores the card index.
func (d *Document) Region(card int, region domain.Region) (*html.Node, bool) {
	var s *goquery.Selection
	switch region {
	case domain.RegionTooltip:
		s = d.doc.Find(classSelector(d.sel.TooltipClass))
	case domain.RegionCard:
		s = d.Card(card)
	case domain.RegionOwner:
		s = d.Card(card).Find(d.sel.Owner)
	case domain.RegionAuthor:
		s = d.Card(card).Find(d.sel.Author)
	case domain.RegionTitle:
		s = d.Card(card).Find(d.sel.Title)
	default:
		return nil, false
	}
	if s.Length() == 0 {
		return nil, false
	}
	return s.Get(0), true
}

// AppendCards sanitizes an HTML fragment and appends its top-level nodes to the container
func (d *Document) AppendCards(fragment string) (int, error) {
	container := d.doc.Find(d.sel.Container).First()
	if container.Length() == 0 {
		return 0, fmt.Errorf("container %q not found", d.sel.Container)
	}
	parent := container.Get(0)

	clean := d.sanitizer.Sanitize(fragment)
	nodes, err := html.ParseFragment(strings.NewReader(clean), &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div})
	if err != nil {
		return 0, fmt.Errorf("parse fragment: %w", err)
	}
	added := 0
	for _, n := range nodes {
		if n.Type == html.TextNode && strings.TrimSpace(n.Data) == "" {
			continue
		}
		parent.AppendChild(n)
		added++
	}
	if added > 0 {
		d.notify(Mutation{Kind: MutationAdded, Nodes: added})
	}
	return added, nil
}

// RemoveCard detaches the card at zero-based index i
func (d *Document) RemoveCard(i int) bool {
	card := d.Card(i)
	if card.Length() == 0 {
		return false
	}
	card.Remove()
	d.notify(Mutation{Kind: MutationRemoved, Nodes: 1})
	return true
}

// AddOverlay creates a filter-owned element with the given class and text at the end of body
func (d *Document) AddOverlay(class, text string) *html.Node {
	n := &html.Node{
		Type:     html.ElementNode,
		Data:     "div",
		DataAtom: atom.Div,
		Attr:     []html.Attribute{{Key: "class", Val: class}},
	}
	n.AppendChild(&html.Node{Type: html.TextNode, Data: text})

	body := d.doc.Find("body").First()
	if body.Length() == 0 {
		lgr.Printf("[DEBUG] no body element, overlay attached to document root")
		d.doc.Get(0).AppendChild(n)
	} else {
		body.Get(0).AppendChild(n)
	}
	d.notify(Mutation{Kind: MutationAdded, Nodes: 1, Overlay: true})
	return n
}

// RemoveOverlay detaches an overlay element; false if it was already gone
func (d *Document) RemoveOverlay(n *html.Node) bool {
	if n == nil || n.Parent == nil {
		return false
	}
	n.Parent.RemoveChild(n)
	d.notify(Mutation{Kind: MutationRemoved, Nodes: 1, Overlay: true})
	return true
}

// HTML renders the whole document
func (d *Document) HTML() (string, error) {
	res, err := d.doc.Html()
	if err != nil {
		return "", fmt.Errorf("render page: %w", err)
	}
	return res, nil
}

func (d *Document) notify(m Mutation) {
	for _, fn := range d.observers {
		fn(m)
	}
}

// Contains reports whether n is ancestor itself or one of its descendants
func Contains(ancestor, n *html.Node) bool {
	if ancestor == nil {
		return false
	}
	for c := n; c != nil; c = c.Parent {
		if c == ancestor {
			return true
		}
	}
	return false
}

func classSelector(class string) string {
	return "." + class
}

// cardPolicy allows the markup content cards are built from and nothing executable
func cardPolicy() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowElements("div", "span", "a", "h3", "h4", "p", "img", "picture", "source", "i", "b", "em", "strong", "ul", "li")
	p.AllowAttrs("class", "title", "aria-label").Globally()
	p.AllowAttrs("href", "target").OnElements("a")
	p.AllowAttrs("src", "alt").OnElements("img")
	p.AllowAttrs("srcset", "type").OnElements("source")
	p.AllowURLSchemes("http", "https")
	p.AllowRelativeURLs(true)
	p.RequireParseableURLs(true)
	return p
}
