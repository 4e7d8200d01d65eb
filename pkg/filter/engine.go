// Package filter decides per-card visibility against the rule collections and applies it to the page.
package filter

import (
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-pkgz/lgr"
	"golang.org/x/net/html"

	"github.com/umputun/cardfilter/pkg/domain"
	"github.com/umputun/cardfilter/pkg/page"
)

// Rules is the read side of the rule store the engine matches against
type Rules interface {
	MatchKeyword(text string) (string, bool)
	IsBlockedID(id string) bool
}

// Identities resolves the parts of a card the engine needs
type Identities interface {
	AuthorID(region *goquery.Selection) string
	Title(region *goquery.Selection) string
}

// Engine runs filtering passes over the document. Not safe for concurrent use.
type Engine struct {
	doc   *page.Document
	ids   Identities
	rules Rules
	last  domain.PassResult
}

// New makes an engine over the document
func New(doc *page.Document, ids Identities, rules Rules) *Engine {
	return &Engine{doc: doc, ids: ids, rules: rules}
}

// evaluate reports whether card should be hidden: its title contains a keyword
// or the author id found in its owner region is blocked
func (e *Engine) evaluate(card *goquery.Selection) bool {
	hide, _ := e.reason(card)
	return hide
}

// RunPass evaluates every card on the page and toggles visibility.
// Cards already hidden are not counted again, so a repeated pass with no changes reports zero hidden.
func (e *Engine) RunPass() domain.PassResult {
	st := time.Now()
	res := domain.PassResult{}

	noise := map[*html.Node]bool{}
	if sel := e.doc.Selectors().Noise; len(sel) > 0 {
		e.doc.Find(strings.Join(sel, ", ")).Each(func(_ int, s *goquery.Selection) {
			noise[s.Get(0)] = true
			if !page.IsHidden(s) {
				page.Hide(s)
				res.Noise++
			}
		})
	}

	e.doc.Cards().Each(func(i int, card *goquery.Selection) {
		if noise[card.Get(0)] {
			return
		}
		res.Cards++
		if err := e.apply(i, card, &res); err != nil {
			res.Faults++
			lgr.Printf("[WARN] card %d skipped: %v", i, err)
		}
	})

	res.Finished = time.Now()
	res.Duration = res.Finished.Sub(st)
	e.last = res
	if res.Hidden > 0 || res.Restored > 0 || res.Noise > 0 {
		lgr.Printf("[DEBUG] pass done: %d cards, hidden %d, restored %d, noise %d, in %v",
			res.Cards, res.Hidden, res.Restored, res.Noise, res.Duration)
	}
	return res
}

// LastPass returns the result of the most recent pass
func (e *Engine) LastPass() domain.PassResult {
	return e.last
}

// apply evaluates a single card, containing any fault to this card
func (e *Engine) apply(i int, card *goquery.Selection, res *domain.PassResult) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("evaluate card: %v", r)
		}
	}()

	hide, why := e.reason(card)
	hidden := page.IsHidden(card)
	switch {
	case hide && !hidden:
		page.Hide(card)
		res.Hidden++
		lgr.Printf("[DEBUG] card %d hidden, %s", i, why)
	case !hide && hidden:
		page.Show(card)
		res.Restored++
	}
	return nil
}

func (e *Engine) reason(card *goquery.Selection) (bool, string) {
	if kw, ok := e.rules.MatchKeyword(e.ids.Title(card)); ok {
		return true, fmt.Sprintf("keyword %q", kw)
	}
	owner := card.Find(e.doc.Selectors().Owner).First()
	if id := e.ids.AuthorID(owner); id != "" && e.rules.IsBlockedID(id) {
		return true, "author " + id
	}
	return false, ""
}
