// Package identity derives author id, author name and title from a region of a content card.
// Each piece is resolved by an ordered chain of strategies; the first non-empty result wins.
// Strategies only read the tree and treat a missing element as "no result", so a page whose
// structure changed degrades to empty fields instead of failing.
package identity

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-pkgz/lgr"

	"github.com/umputun/cardfilter/pkg/domain"
)

// Selectors used to navigate from a region to the card parts
type Selectors struct {
	Card   string
	Title  string
	Owner  string
	Author string
}

// idStrategy returns a candidate href for the region, empty if none
type idStrategy struct {
	name string
	fn   func(region *goquery.Selection) string
}

// nameStrategy returns a candidate author name, empty if none. id is the already resolved author id.
type nameStrategy struct {
	name string
	fn   func(region *goquery.Selection, id string) string
}

// Extractor resolves identities from card regions
type Extractor struct {
	sel     Selectors
	profile *regexp.Regexp
	ids     []idStrategy
	names   []nameStrategy
}

var (
	dateSuffix = regexp.MustCompile(`\s*·\s*\d{1,2}-\d{1,2}\s*$`)
	numericID  = regexp.MustCompile(`^\d+$`)
)

// New makes an extractor. profile must contain a capture group for the numeric id.
func New(sel Selectors, profile *regexp.Regexp) *Extractor {
	e := &Extractor{sel: sel, profile: profile}
	e.ids = []idStrategy{
		{name: "self href", fn: selfHref},
		{name: "descendant anchor", fn: descendantHref},
		{name: "ancestor anchor", fn: ancestorHref},
		{name: "sibling profile anchor", fn: e.siblingProfileHref},
	}
	e.names = []nameStrategy{
		{name: "author element", fn: e.descendantAuthor},
		{name: "self author", fn: e.selfAuthor},
		{name: "label attribute", fn: labelAttr},
		{name: "own text", fn: ownText},
		{name: "card owner", fn: e.cardOwnerAuthor},
	}
	return e
}

// Extract returns the best-effort identity for region. It never fails, fields may be empty.
func (e *Extractor) Extract(region *goquery.Selection) (res domain.Identity) {
	defer func() {
		if r := recover(); r != nil {
			lgr.Printf("[WARN] identity extraction failed: %v", r)
		}
	}()
	res.AuthorID = e.AuthorID(region)
	res.AuthorName = e.AuthorName(region, res.AuthorID)
	res.Title = e.Title(region)
	return res
}

// AuthorID runs the id chain: every candidate href is matched against the profile pattern
// and the first numeric capture wins
func (e *Extractor) AuthorID(region *goquery.Selection) string {
	if region == nil || region.Length() == 0 {
		return ""
	}
	for _, s := range e.ids {
		if id := e.idFromHref(s.fn(region)); id != "" {
			lgr.Printf("[DEBUG] author id %s resolved by %s", id, s.name)
			return id
		}
	}
	return ""
}

// AuthorName runs the name chain
func (e *Extractor) AuthorName(region *goquery.Selection, id string) string {
	if region == nil || region.Length() == 0 {
		return ""
	}
	for _, s := range e.names {
		if name := s.fn(region, id); name != "" {
			return name
		}
	}
	return ""
}

// Title returns the title link text of the card containing region, empty if absent
func (e *Extractor) Title(region *goquery.Selection) string {
	if region == nil || region.Length() == 0 {
		return ""
	}
	card := region.Closest(e.sel.Card)
	if card.Length() == 0 {
		card = region
	}
	title := card.Find(e.sel.Title).First()
	if title.Length() == 0 {
		return ""
	}
	return title.Text()
}

// ParseInput turns free-form author input into an id: a bare number is the id, a profile link
// yields its captured id, anything else is used verbatim
func (e *Extractor) ParseInput(input string) string {
	input = strings.TrimSpace(input)
	if numericID.MatchString(input) {
		return input
	}
	if id := e.idFromHref(input); id != "" {
		return id
	}
	return input
}

func (e *Extractor) idFromHref(href string) string {
	if href == "" || e.profile == nil {
		return ""
	}
	m := e.profile.FindStringSubmatch(href)
	if len(m) < 2 {
		return ""
	}
	return m[1]
}

func selfHref(region *goquery.Selection) string {
	href, _ := region.First().Attr("href")
	return href
}

func descendantHref(region *goquery.Selection) string {
	href, _ := region.Find("a[href]").First().Attr("href")
	return href
}

func ancestorHref(region *goquery.Selection) string {
	href, _ := region.First().Parent().Closest("a[href]").Attr("href")
	return href
}

func (e *Extractor) siblingProfileHref(region *goquery.Selection) string {
	var res string
	region.First().Parent().Find("a[href]").EachWithBreak(func(_ int, a *goquery.Selection) bool {
		href, _ := a.Attr("href")
		if e.idFromHref(href) != "" {
			res = href
			return false
		}
		return true
	})
	return res
}

func (e *Extractor) descendantAuthor(region *goquery.Selection, _ string) string {
	return textOrLabel(region.Find(e.sel.Author).First())
}

func (e *Extractor) selfAuthor(region *goquery.Selection, _ string) string {
	self := region.First()
	if !self.Is(e.sel.Author) {
		return ""
	}
	return textOrLabel(self)
}

func labelAttr(region *goquery.Selection, _ string) string {
	if title, ok := region.Find("[title]").First().Attr("title"); ok && strings.TrimSpace(title) != "" {
		return strings.TrimSpace(title)
	}
	title, _ := region.First().Attr("title")
	return strings.TrimSpace(title)
}

func ownText(region *goquery.Selection, _ string) string {
	text := strings.TrimSpace(region.First().Text())
	return strings.TrimSpace(dateSuffix.ReplaceAllString(text, ""))
}

func (e *Extractor) cardOwnerAuthor(region *goquery.Selection, id string) string {
	if id == "" {
		return ""
	}
	owner := region.First().Closest(e.sel.Card).Find(e.sel.Owner).First()
	return textOrLabel(owner.Find(e.sel.Author).First())
}

func textOrLabel(s *goquery.Selection) string {
	if s.Length() == 0 {
		return ""
	}
	if text := strings.TrimSpace(s.Text()); text != "" {
		return text
	}
	title, _ := s.Attr("title")
	return strings.TrimSpace(title)
}
