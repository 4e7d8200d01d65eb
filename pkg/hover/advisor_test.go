package hover

import (
	"context"
	"io"
	"os"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"

	"github.com/umputun/cardfilter/pkg/domain"
	"github.com/umputun/cardfilter/pkg/eventloop"
	"github.com/umputun/cardfilter/pkg/hover/mocks"
	"github.com/umputun/cardfilter/pkg/identity"
	"github.com/umputun/cardfilter/pkg/page"
)

var testSelectors = page.Selectors{
	Card:         ".bili-video-card",
	Title:        ".bili-video-card__info--tit a",
	Owner:        ".bili-video-card__info--owner",
	Author:       ".bili-video-card__info--author",
	Container:    ".feed2 .container",
	TooltipClass: "cardfilter-tooltip",
	NoticeClass:  "cardfilter-notice",
}

type fixture struct {
	adv      *Advisor
	clock    *eventloop.Fake
	doc      *page.Document
	blocked  map[string]string // id -> name
	blocker  *mocks.BlockerMock
	refilter *mocks.RefilterMock
}

func setup(t *testing.T) *fixture {
	t.Helper()
	fh, err := os.Open("testdata/home.html")
	require.NoError(t, err)
	defer fh.Close()
	return setupFrom(t, fh)
}

func setupFrom(t *testing.T, r io.Reader) *fixture {
	t.Helper()
	doc, err := page.Parse(r, testSelectors)
	require.NoError(t, err)

	f := &fixture{clock: eventloop.NewFake(), doc: doc, blocked: map[string]string{}}
	f.blocker = &mocks.BlockerMock{
		IsBlockedFunc: func(id, name string) bool {
			for bid, bname := range f.blocked {
				if (id != "" && bid == id) || (name != "" && bname == name) {
					return true
				}
			}
			return false
		},
		AddBlockedAuthorFunc: func(ctx context.Context, id, name string) bool {
			if _, ok := f.blocked[id]; ok {
				return false
			}
			f.blocked[id] = name
			return true
		},
	}
	f.refilter = &mocks.RefilterMock{RunPassFunc: func() domain.PassResult { return domain.PassResult{} }}
	ext := identity.New(identity.Selectors{Card: testSelectors.Card, Title: testSelectors.Title,
		Owner: testSelectors.Owner, Author: testSelectors.Author}, regexp.MustCompile(`space\.bilibili\.com/(\d+)`))
	f.adv = New(f.clock, doc, ext, f.blocker, f.refilter, Config{
		Dwell:       400 * time.Millisecond,
		Grace:       300 * time.Millisecond,
		AutoDismiss: 10 * time.Second,
		Notice:      3 * time.Second,
		ProfileHost: "space.bilibili.com",
	})
	return f
}

func (f *fixture) region(t *testing.T, card int, r domain.Region) *html.Node {
	t.Helper()
	n, ok := f.doc.Region(card, r)
	require.True(t, ok, "region %s of card %d", r, card)
	return n
}

func (f *fixture) tooltips() int {
	return f.doc.Find(".cardfilter-tooltip").Length()
}

// showOn dwells over the author of card until the tooltip is up
func (f *fixture) showOn(t *testing.T, card int) *html.Node {
	t.Helper()
	f.adv.PointerOver(f.region(t, card, domain.RegionAuthor))
	f.clock.Advance(400 * time.Millisecond)
	require.Equal(t, StateShowing, f.adv.State())
	return f.region(t, 0, domain.RegionTooltip)
}

func TestAdvisor_DwellShowsTooltip(t *testing.T) {
	f := setup(t)
	f.adv.PointerOver(f.region(t, 0, domain.RegionAuthor))
	assert.Equal(t, StateDwellPending, f.adv.State())

	f.clock.Advance(399 * time.Millisecond)
	assert.Equal(t, StateDwellPending, f.adv.State())
	assert.Equal(t, 0, f.tooltips())

	f.clock.Advance(time.Millisecond)
	assert.Equal(t, StateShowing, f.adv.State())
	assert.Equal(t, 1, f.tooltips())
	assert.Equal(t, "Block: Alice (card 1)", f.doc.Find(".cardfilter-tooltip").Text())
	assert.Equal(t, Status{State: "showing", Card: 0, AuthorID: "123", AuthorName: "Alice",
		Tooltip: "Block: Alice (card 1)"}, f.adv.Status())
}

func TestAdvisor_NonAuthorRegionIgnored(t *testing.T) {
	f := setup(t)
	f.adv.PointerOver(f.region(t, 0, domain.RegionTitle))
	f.adv.PointerOver(f.region(t, 2, domain.RegionCard))
	f.adv.PointerOver(f.doc.Find("div.bili-live-card").Get(0))
	assert.Equal(t, StateIdle, f.adv.State())
	assert.Equal(t, 0, f.clock.Pending())
}

func TestAdvisor_LeaveBeforeDwell(t *testing.T) {
	f := setup(t)
	f.adv.PointerOver(f.region(t, 0, domain.RegionAuthor))
	f.clock.Advance(200 * time.Millisecond)
	f.adv.PointerOut(f.region(t, 0, domain.RegionAuthor))
	assert.Equal(t, StateIdle, f.adv.State())

	f.clock.Advance(time.Second)
	assert.Equal(t, StateIdle, f.adv.State())
	assert.Equal(t, 0, f.tooltips())
}

func TestAdvisor_TooltipSingleton(t *testing.T) {
	t.Run("second dwell replaces shown tooltip", func(t *testing.T) {
		f := setup(t)
		f.showOn(t, 0)
		f.adv.PointerOver(f.region(t, 1, domain.RegionAuthor))
		assert.Equal(t, StateDwellPending, f.adv.State())
		assert.Equal(t, 0, f.tooltips(), "previous tooltip destroyed before new dwell")

		f.clock.Advance(400 * time.Millisecond)
		assert.Equal(t, StateShowing, f.adv.State())
		assert.Equal(t, 1, f.tooltips())
		assert.Equal(t, "Block: Bob (card 2)", f.doc.Find(".cardfilter-tooltip").Text())
		assert.Equal(t, "456", f.adv.Status().AuthorID)
	})

	t.Run("overlapping dwells keep the latest target", func(t *testing.T) {
		f := setup(t)
		f.adv.PointerOver(f.region(t, 0, domain.RegionAuthor))
		f.clock.Advance(300 * time.Millisecond)
		f.adv.PointerOver(f.region(t, 3, domain.RegionOwner))
		f.clock.Advance(time.Second)
		assert.Equal(t, 1, f.tooltips())
		assert.Equal(t, "Block: Carol (card 4)", f.doc.Find(".cardfilter-tooltip").Text())
	})
}

func TestAdvisor_AlreadyBlockedSuppressed(t *testing.T) {
	tests := []struct {
		name    string
		blocked map[string]string
	}{
		{name: "by id", blocked: map[string]string{"123": ""}},
		{name: "by name", blocked: map[string]string{"1700000000000": "Alice"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := setup(t)
			f.blocked = tt.blocked
			f.adv.PointerOver(f.region(t, 0, domain.RegionAuthor))
			f.clock.Advance(time.Second)
			assert.Equal(t, StateIdle, f.adv.State())
			assert.Equal(t, 0, f.tooltips())
			assert.Len(t, f.blocker.IsBlockedCalls(), 1)
		})
	}
}

func TestAdvisor_NoIdentity(t *testing.T) {
	f := setup(t)
	_, err := f.doc.AppendCards(`<div class="bili-video-card"><span class="x-author"></span></div>`)
	require.NoError(t, err)
	f.adv.PointerOver(f.doc.Find(".x-author").Get(0))
	assert.Equal(t, StateDwellPending, f.adv.State())
	f.clock.Advance(400 * time.Millisecond)
	assert.Equal(t, StateIdle, f.adv.State())
	assert.Equal(t, 0, f.tooltips())
	assert.Empty(t, f.blocker.IsBlockedCalls())
}

func TestAdvisor_GraceTeardown(t *testing.T) {
	f := setup(t)
	f.showOn(t, 0)
	f.adv.PointerOut(f.region(t, 0, domain.RegionAuthor))
	f.clock.Advance(299 * time.Millisecond)
	assert.Equal(t, StateShowing, f.adv.State())
	f.clock.Advance(time.Millisecond)
	assert.Equal(t, StateIdle, f.adv.State())
	assert.Equal(t, 0, f.tooltips())
}

func TestAdvisor_HoverTransfersToTooltip(t *testing.T) {
	f := setup(t)
	tip := f.showOn(t, 0)

	f.adv.PointerOut(f.region(t, 0, domain.RegionAuthor))
	f.clock.Advance(100 * time.Millisecond)
	f.adv.PointerOver(tip)
	assert.True(t, f.adv.Status().Retained)

	f.clock.Advance(time.Second)
	assert.Equal(t, StateShowing, f.adv.State(), "retained tooltip survives the grace period")

	f.adv.PointerOut(tip)
	f.clock.Advance(300 * time.Millisecond)
	assert.Equal(t, StateIdle, f.adv.State())
	assert.Equal(t, 0, f.tooltips())
}

func TestAdvisor_ReenterSourceWithinGrace(t *testing.T) {
	f := setup(t)
	f.showOn(t, 0)
	f.adv.PointerOut(f.region(t, 0, domain.RegionAuthor))
	f.clock.Advance(100 * time.Millisecond)
	f.adv.PointerOver(f.region(t, 0, domain.RegionOwner))
	f.clock.Advance(time.Second)
	assert.Equal(t, StateShowing, f.adv.State())
	assert.Equal(t, 1, f.tooltips())
}

func TestAdvisor_OwnerWrapperIsOneRegion(t *testing.T) {
	f := setupFrom(t, strings.NewReader(`<div class="feed2"><div class="container">
<div class="bili-video-card">
  <div class="bili-video-card__info--tit"><a href="//www.bilibili.com/video/BV9">Garden tour</a></div>
  <div class="bili-video-card__info--owner">
    <a href="//space.bilibili.com/321"><span class="bili-video-card__info--author">Dave</span></a>
    <span class="bili-video-card__info--date">9-1</span>
  </div>
</div></div></div>`))
	link := f.doc.Find(".bili-video-card__info--owner a").Get(0)
	date := f.doc.Find(".bili-video-card__info--date").Get(0)

	f.adv.PointerOver(link)
	f.clock.Advance(400 * time.Millisecond)
	require.Equal(t, StateShowing, f.adv.State())
	assert.Equal(t, "Block: Dave (card 1)", f.doc.Find(".cardfilter-tooltip").Text())

	// moving inside the owner area keeps the same tooltip
	f.adv.PointerOut(link)
	f.adv.PointerOver(date)
	f.clock.Advance(time.Second)
	assert.Equal(t, StateShowing, f.adv.State())
	assert.Equal(t, 1, f.tooltips())
	assert.Equal(t, "321", f.adv.Status().AuthorID)
}

func TestAdvisor_AutoDismiss(t *testing.T) {
	t.Run("not retained", func(t *testing.T) {
		f := setup(t)
		f.showOn(t, 0)
		f.clock.Advance(10*time.Second - time.Millisecond)
		assert.Equal(t, StateShowing, f.adv.State())
		f.clock.Advance(time.Millisecond)
		assert.Equal(t, StateIdle, f.adv.State())
		assert.Equal(t, 0, f.tooltips())
	})

	t.Run("retained", func(t *testing.T) {
		f := setup(t)
		tip := f.showOn(t, 0)
		f.adv.PointerOver(tip)
		f.clock.Advance(time.Minute)
		assert.Equal(t, StateShowing, f.adv.State())
	})
}

func TestAdvisor_ClickBlocks(t *testing.T) {
	f := setup(t)
	tip := f.showOn(t, 0)

	f.adv.Click(context.Background(), f.region(t, 0, domain.RegionTitle))
	assert.Equal(t, StateShowing, f.adv.State(), "clicks outside the tooltip are ignored")

	f.adv.Click(context.Background(), tip)
	require.Len(t, f.blocker.AddBlockedAuthorCalls(), 1)
	assert.Equal(t, "123", f.blocker.AddBlockedAuthorCalls()[0].ID)
	assert.Equal(t, "Alice", f.blocker.AddBlockedAuthorCalls()[0].Name)
	assert.Len(t, f.refilter.RunPassCalls(), 1)
	assert.Equal(t, StateIdle, f.adv.State())
	assert.Equal(t, 0, f.tooltips())

	assert.Equal(t, "Blocked: Alice", f.doc.Find(".cardfilter-notice").Text())
	assert.Equal(t, "Blocked: Alice", f.adv.Status().Notice)
	f.clock.Advance(3 * time.Second)
	assert.Equal(t, 0, f.doc.Find(".cardfilter-notice").Length())
	assert.Empty(t, f.adv.Status().Notice)

	// blocked now, hovering again shows nothing
	f.adv.PointerOver(f.region(t, 0, domain.RegionAuthor))
	f.clock.Advance(time.Second)
	assert.Equal(t, StateIdle, f.adv.State())
}

func TestAdvisor_ClickWithoutIDUsesName(t *testing.T) {
	f := setup(t)
	_, err := f.doc.AppendCards(`<div class="bili-video-card"><span class="up-author">Dave</span></div>`)
	require.NoError(t, err)
	f.adv.PointerOver(f.doc.Find(".up-author").Get(0))
	f.clock.Advance(400 * time.Millisecond)
	require.Equal(t, StateShowing, f.adv.State())
	assert.Equal(t, "Block: Dave (card 5)", f.adv.Status().Tooltip)

	f.adv.Click(context.Background(), f.region(t, 0, domain.RegionTooltip))
	require.Len(t, f.blocker.AddBlockedAuthorCalls(), 1)
	assert.Equal(t, "Dave", f.blocker.AddBlockedAuthorCalls()[0].ID)
	assert.Equal(t, "Dave", f.blocker.AddBlockedAuthorCalls()[0].Name)
}

func TestAdvisor_NoticeReplaced(t *testing.T) {
	f := setup(t)
	f.adv.Click(context.Background(), f.showOn(t, 0))
	f.clock.Advance(time.Second)
	f.adv.Click(context.Background(), f.showOn(t, 1))
	assert.Equal(t, 1, f.doc.Find(".cardfilter-notice").Length())
	assert.Equal(t, "Blocked: Bob", f.doc.Find(".cardfilter-notice").Text())

	f.clock.Advance(2 * time.Second) // first notice timer fires, must not remove the second notice
	assert.Equal(t, 1, f.doc.Find(".cardfilter-notice").Length())
	f.clock.Advance(time.Second)
	assert.Equal(t, 0, f.doc.Find(".cardfilter-notice").Length())
}

func TestAdvisor_Handle(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	require.NoError(t, f.adv.Handle(ctx, domain.PointerEvent{Type: domain.PointerOver, Card: 1, Region: domain.RegionAuthor}))
	f.clock.Advance(400 * time.Millisecond)
	require.Equal(t, StateShowing, f.adv.State())

	require.NoError(t, f.adv.Handle(ctx, domain.PointerEvent{Type: domain.PointerOver, Region: domain.RegionTooltip}))
	assert.True(t, f.adv.Status().Retained)
	require.NoError(t, f.adv.Handle(ctx, domain.PointerEvent{Type: domain.PointerClick, Region: domain.RegionTooltip}))
	assert.Equal(t, "Bob", f.blocked["456"])

	err := f.adv.Handle(ctx, domain.PointerEvent{Type: domain.PointerOver, Card: 42, Region: domain.RegionAuthor})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")

	err = f.adv.Handle(ctx, domain.PointerEvent{Type: "drag", Card: 0, Region: domain.RegionCard})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown pointer event")
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "idle", StateIdle.String())
	assert.Equal(t, "dwell-pending", StateDwellPending.String())
	assert.Equal(t, "showing", StateShowing.String())
}
