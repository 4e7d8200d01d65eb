// Package hover offers a "block this author" tooltip when the pointer dwells over an author
// region of a card, and blocks the author when the tooltip is clicked.
//
// Advisor is a state machine with three states: Idle, DwellPending and Showing. At most one
// tooltip exists at a time; any new target tears the previous one down first. Every timer
// callback checks the generation it was scheduled in, so a superseded timer that still fires
// is a no-op. Leaving the tooltip or the source region schedules a grace teardown which the
// retained flag, set again on re-entry, suppresses.
package hover

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-pkgz/lgr"
	"golang.org/x/net/html"

	"github.com/umputun/cardfilter/pkg/domain"
	"github.com/umputun/cardfilter/pkg/eventloop"
	"github.com/umputun/cardfilter/pkg/page"
)

//go:generate moq -out mocks/blocker.go -pkg mocks -skip-ensure -fmt goimports . Blocker
//go:generate moq -out mocks/refilter.go -pkg mocks -skip-ensure -fmt goimports . Refilter

// Blocker is the part of the rule store the advisor reads and writes
type Blocker interface {
	IsBlocked(id, name string) bool
	AddBlockedAuthor(ctx context.Context, id, name string) bool
}

// Identities resolves the author of a region
type Identities interface {
	Extract(region *goquery.Selection) domain.Identity
}

// Refilter re-evaluates all cards
type Refilter interface {
	RunPass() domain.PassResult
}

// Clock schedules callbacks on the event loop
type Clock interface {
	AfterFunc(d time.Duration, fn func()) eventloop.Timer
}

// State of the advisor
type State int

// advisor states
const (
	StateIdle State = iota
	StateDwellPending
	StateShowing
)

func (s State) String() string {
	switch s {
	case StateDwellPending:
		return "dwell-pending"
	case StateShowing:
		return "showing"
	default:
		return "idle"
	}
}

// Config holds advisor timings and the profile host used to recognize author links
type Config struct {
	Dwell       time.Duration
	Grace       time.Duration
	AutoDismiss time.Duration
	Notice      time.Duration
	ProfileHost string
}

// Status is a snapshot of the advisor for the panel
type Status struct {
	State      string `json:"state"`
	Card       int    `json:"card"`
	AuthorID   string `json:"author_id,omitempty"`
	AuthorName string `json:"author_name,omitempty"`
	Retained   bool   `json:"retained"`
	Tooltip    string `json:"tooltip,omitempty"`
	Notice     string `json:"notice,omitempty"`
}

// Advisor drives the tooltip lifecycle. All methods must be called on the event loop.
type Advisor struct {
	clock  Clock
	doc    *page.Document
	ids    Identities
	rules  Blocker
	filter Refilter
	cfg    Config
	now    func() time.Time

	state    State
	gen      uint64
	target   *html.Node // author region the pointer is over
	card     int
	ident    domain.Identity
	retained bool
	tooltip  *html.Node
	text     string

	dwell    eventloop.Timer
	dismiss  eventloop.Timer
	teardown eventloop.Timer

	notice      *html.Node
	noticeText  string
	noticeTimer eventloop.Timer
}

// New makes an advisor. Zero timings fall back to 400ms dwell, 300ms grace, 10s auto-dismiss and 3s notice.
func New(clock Clock, doc *page.Document, ids Identities, rules Blocker, filter Refilter, cfg Config) *Advisor {
	if cfg.Dwell == 0 {
		cfg.Dwell = 400 * time.Millisecond
	}
	if cfg.Grace == 0 {
		cfg.Grace = 300 * time.Millisecond
	}
	if cfg.AutoDismiss == 0 {
		cfg.AutoDismiss = 10 * time.Second
	}
	if cfg.Notice == 0 {
		cfg.Notice = 3 * time.Second
	}
	return &Advisor{clock: clock, doc: doc, ids: ids, rules: rules, filter: filter, cfg: cfg, now: time.Now, card: -1}
}

// State returns the current state
func (a *Advisor) State() State {
	return a.state
}

// Status returns a snapshot of the current state
func (a *Advisor) Status() Status {
	res := Status{State: a.state.String(), Card: a.card, Retained: a.retained}
	if a.state == StateShowing {
		res.AuthorID, res.AuthorName, res.Tooltip = a.ident.AuthorID, a.ident.AuthorName, a.text
	}
	if a.notice != nil {
		res.Notice = a.noticeText
	}
	return res
}

// Handle dispatches a pointer event addressed by card index and region
func (a *Advisor) Handle(ctx context.Context, ev domain.PointerEvent) error {
	n, ok := a.doc.Region(ev.Card, ev.Region)
	if !ok {
		return fmt.Errorf("region %s of card %d not found", ev.Region, ev.Card)
	}
	switch ev.Type {
	case domain.PointerOver:
		a.PointerOver(n)
	case domain.PointerOut:
		a.PointerOut(n)
	case domain.PointerClick:
		a.Click(ctx, n)
	default:
		return fmt.Errorf("unknown pointer event %q", ev.Type)
	}
	return nil
}

// PointerOver handles the pointer entering node n
func (a *Advisor) PointerOver(n *html.Node) {
	if a.state == StateShowing && page.Contains(a.tooltip, n) {
		a.retain()
		return
	}

	region := a.authorRegion(n)
	if region == nil {
		return
	}
	if page.Contains(a.target, region) && a.state != StateIdle {
		if a.state == StateShowing {
			a.retain() // back on the source region within the grace window
		}
		return
	}

	a.reset()
	a.state = StateDwellPending
	a.target = region
	a.card = a.doc.CardIndex(a.doc.Select(region).Closest(a.doc.Selectors().Card).Get(0))
	gen := a.gen
	a.dwell = a.clock.AfterFunc(a.cfg.Dwell, func() {
		if a.gen != gen || a.state != StateDwellPending {
			return
		}
		a.show()
	})
}

// PointerOut handles the pointer leaving node n
func (a *Advisor) PointerOut(n *html.Node) {
	switch a.state {
	case StateDwellPending:
		if page.Contains(a.target, n) {
			a.reset()
		}
	case StateShowing:
		if page.Contains(a.tooltip, n) || page.Contains(a.target, n) {
			a.release()
		}
	}
}

// Click handles a click on node n; only a click on the tooltip does anything
func (a *Advisor) Click(ctx context.Context, n *html.Node) {
	if a.state != StateShowing || !page.Contains(a.tooltip, n) {
		return
	}
	ident := a.ident
	id := ident.AuthorID
	if id == "" {
		id = ident.AuthorName
	}
	if id == "" {
		id = strconv.FormatInt(a.now().UnixMilli(), 10)
	}
	if a.rules.AddBlockedAuthor(ctx, id, ident.AuthorName) {
		lgr.Printf("[INFO] blocked author %s from card %d", domain.BlockedAuthor{ID: id, Name: ident.AuthorName}.Display(), a.card+1)
	}
	a.reset()
	a.showNotice("Blocked: " + displayName(ident.AuthorName))
	res := a.filter.RunPass()
	lgr.Printf("[DEBUG] re-filter after block hid %d cards", res.Hidden)
}

// show resolves the identity of the dwell target and either shows the tooltip or goes idle
func (a *Advisor) show() {
	owner := a.doc.Select(a.target)
	if card := owner.Closest(a.doc.Selectors().Card); card.Length() > 0 {
		if o := card.Find(a.doc.Selectors().Owner).First(); o.Length() > 0 {
			owner = o
		}
	}
	ident := a.ids.Extract(owner)
	if !ident.Actionable() {
		lgr.Printf("[DEBUG] no author identity on card %d", a.card)
		a.reset()
		return
	}
	if a.rules.IsBlocked(ident.AuthorID, ident.AuthorName) {
		lgr.Printf("[DEBUG] author %s already blocked", domain.BlockedAuthor{ID: ident.AuthorID, Name: ident.AuthorName}.Display())
		a.reset()
		return
	}

	a.gen++
	a.state = StateShowing
	a.ident = ident
	a.retained = false
	a.text = fmt.Sprintf("Block: %s (card %d)", displayName(ident.AuthorName), a.card+1)
	a.tooltip = a.doc.AddOverlay(a.doc.Selectors().TooltipClass, a.text)
	gen := a.gen
	a.dismiss = a.clock.AfterFunc(a.cfg.AutoDismiss, func() {
		if a.gen != gen || a.state != StateShowing || a.retained {
			return
		}
		lgr.Printf("[DEBUG] tooltip auto-dismissed")
		a.reset()
	})
}

func (a *Advisor) retain() {
	a.retained = true
	if a.teardown != nil {
		a.teardown.Stop()
		a.teardown = nil
	}
}

// release schedules teardown after the grace period unless the pointer comes back
func (a *Advisor) release() {
	a.retained = false
	if a.teardown != nil {
		a.teardown.Stop()
	}
	gen := a.gen
	a.teardown = a.clock.AfterFunc(a.cfg.Grace, func() {
		if a.gen != gen || a.state != StateShowing || a.retained {
			return
		}
		a.reset()
	})
}

// reset destroys the tooltip, cancels its timers and returns to idle
func (a *Advisor) reset() {
	a.gen++
	for _, t := range []eventloop.Timer{a.dwell, a.dismiss, a.teardown} {
		if t != nil {
			t.Stop()
		}
	}
	a.dwell, a.dismiss, a.teardown = nil, nil, nil
	if a.tooltip != nil {
		a.doc.RemoveOverlay(a.tooltip)
	}
	a.tooltip, a.target, a.text = nil, nil, ""
	a.ident = domain.Identity{}
	a.retained = false
	a.card = -1
	a.state = StateIdle
}

func (a *Advisor) showNotice(text string) {
	if a.noticeTimer != nil {
		a.noticeTimer.Stop()
	}
	if a.notice != nil {
		a.doc.RemoveOverlay(a.notice)
	}
	n := a.doc.AddOverlay(a.doc.Selectors().NoticeClass, text)
	a.notice, a.noticeText = n, text
	a.noticeTimer = a.clock.AfterFunc(a.cfg.Notice, func() {
		if a.notice != n {
			return
		}
		a.doc.RemoveOverlay(n)
		a.notice, a.noticeText, a.noticeTimer = nil, "", nil
	})
}

// authorRegion finds the author region containing n: the configured owner region, the configured
// author element, a profile link, then any author-ish or owner-ish element.
// Regions outside of a card don't qualify.
func (a *Advisor) authorRegion(n *html.Node) *html.Node {
	s := a.doc.Select(n)
	if s.Length() == 0 {
		return nil
	}
	sel := a.doc.Selectors()
	candidates := []string{sel.Owner, sel.Author}
	if a.cfg.ProfileHost != "" {
		candidates = append(candidates, fmt.Sprintf("a[href*=%q]", a.cfg.ProfileHost))
	}
	candidates = append(candidates, "[class*=author]", "[class*=owner]")
	for _, c := range candidates {
		if c == "" {
			continue
		}
		region := s.Closest(c)
		if region.Length() == 0 {
			continue
		}
		if region.Closest(sel.Card).Length() == 0 {
			return nil
		}
		return region.Get(0)
	}
	return nil
}

func displayName(name string) string {
	if name == "" {
		return "this author"
	}
	return name
}
