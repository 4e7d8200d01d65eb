package page

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/cardfilter/pkg/domain"
)

func testSelectors() Selectors {
	return Selectors{
		Card:         ".bili-video-card",
		Title:        ".bili-video-card__info--tit a",
		Owner:        ".bili-video-card__info--owner",
		Author:       ".bili-video-card__info--author",
		Container:    ".feed2 .container",
		TooltipClass: "cardfilter-tooltip",
		NoticeClass:  "cardfilter-notice",
	}
}

func loadHome(t *testing.T) *Document {
	t.Helper()
	fh, err := os.Open("testdata/home.html")
	require.NoError(t, err)
	defer fh.Close()
	doc, err := Parse(fh, testSelectors())
	require.NoError(t, err)
	return doc
}

func TestDocument_Cards(t *testing.T) {
	doc := loadHome(t)
	assert.Equal(t, 4, doc.Cards().Length())
	assert.Equal(t, "Cooking with Bob", doc.Card(1).Find(".bili-video-card__info--tit a").Text())
	assert.Equal(t, 0, doc.Card(10).Length())
	assert.Equal(t, 1, doc.CardIndex(doc.Card(1).Get(0)))
	assert.Equal(t, -1, doc.CardIndex(doc.Find("body").Get(0)))
}

func TestDocument_Region(t *testing.T) {
	doc := loadHome(t)

	tests := []struct {
		name   string
		card   int
		region domain.Region
		want   string
		ok     bool
	}{
		{name: "owner", card: 0, region: domain.RegionOwner, want: "a", ok: true},
		{name: "author", card: 1, region: domain.RegionAuthor, want: "span", ok: true},
		{name: "title", card: 0, region: domain.RegionTitle, want: "a", ok: true},
		{name: "card", card: 2, region: domain.RegionCard, want: "div", ok: true},
		{name: "missing owner", card: 2, region: domain.RegionOwner},
		{name: "no tooltip yet", card: 0, region: domain.RegionTooltip},
		{name: "unknown region", card: 0, region: domain.Region("bogus")},
		{name: "card out of range", card: 99, region: domain.RegionCard},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, ok := doc.Region(tt.card, tt.region)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				require.NotNil(t, n)
				assert.Equal(t, tt.want, n.Data)
			}
		})
	}
}

func TestDocument_AppendCardsNotifies(t *testing.T) {
	doc := loadHome(t)
	var got []Mutation
	cancel := doc.Observe(func(m Mutation) { got = append(got, m) })

	added, err := doc.AppendCards(`
		<div class="bili-video-card"><div class="bili-video-card__info--tit"><a href="//www.bilibili.com/video/BV9">New one</a></div></div>
		<script>alert(1)</script>`)
	require.NoError(t, err)
	assert.Equal(t, 1, added)
	assert.Equal(t, 5, doc.Cards().Length())
	assert.Equal(t, 0, doc.Find("script").Length(), "scripts are sanitized away")
	require.Len(t, got, 1)
	assert.Equal(t, Mutation{Kind: MutationAdded, Nodes: 1}, got[0])

	cancel()
	assert.True(t, doc.RemoveCard(4))
	assert.Len(t, got, 1, "cancelled observer gets nothing")
	assert.False(t, doc.RemoveCard(4))
}

func TestDocument_AppendCardsNoContainer(t *testing.T) {
	sel := testSelectors()
	sel.Container = ".absent"
	doc, err := Parse(strings.NewReader("<html><body></body></html>"), sel)
	require.NoError(t, err)
	_, err = doc.AppendCards(`<div class="bili-video-card"></div>`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestDocument_Overlay(t *testing.T) {
	doc := loadHome(t)
	var got []Mutation
	doc.Observe(func(m Mutation) { got = append(got, m) })

	n := doc.AddOverlay("cardfilter-tooltip", "Block: Alice")
	require.NotNil(t, n)
	tip := doc.Find(".cardfilter-tooltip")
	assert.Equal(t, 1, tip.Length())
	assert.Equal(t, "Block: Alice", tip.Text())
	assert.Equal(t, 1, doc.Select(n).Length())

	node, ok := doc.Region(0, domain.RegionTooltip)
	require.True(t, ok)
	assert.Equal(t, n, node)

	assert.True(t, doc.RemoveOverlay(n))
	assert.False(t, doc.RemoveOverlay(n), "second removal is a no-op")
	assert.Equal(t, 0, doc.Find(".cardfilter-tooltip").Length())
	assert.Equal(t, 0, doc.Select(n).Length())

	require.Len(t, got, 2)
	assert.True(t, got[0].Overlay)
	assert.Equal(t, MutationRemoved, got[1].Kind)
}

func TestDocument_HTML(t *testing.T) {
	doc := loadHome(t)
	Hide(doc.Card(0))
	res, err := doc.HTML()
	require.NoError(t, err)
	assert.Contains(t, res, `style="display: none;"`)
	assert.Contains(t, res, "Cooking with Bob")
}

func TestContains(t *testing.T) {
	doc := loadHome(t)
	card := doc.Card(0).Get(0)
	author := doc.Card(0).Find(".bili-video-card__info--author").Get(0)
	assert.True(t, Contains(card, author))
	assert.True(t, Contains(card, card))
	assert.False(t, Contains(author, card))
	assert.False(t, Contains(nil, card))
}
