package service

import (
	"context"
	"os"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/cardfilter/pkg/domain"
	"github.com/umputun/cardfilter/pkg/filter"
	"github.com/umputun/cardfilter/pkg/identity"
	"github.com/umputun/cardfilter/pkg/page"
	"github.com/umputun/cardfilter/pkg/rules"
	"github.com/umputun/cardfilter/pkg/rules/mocks"
)

func setup(t *testing.T) (*FilterService, *page.Document, map[string]string) {
	t.Helper()
	sel := page.Selectors{
		Card:   ".bili-video-card",
		Title:  ".bili-video-card__info--tit a",
		Owner:  ".bili-video-card__info--owner",
		Author: ".bili-video-card__info--author",
	}
	fh, err := os.Open("testdata/home.html")
	require.NoError(t, err)
	defer fh.Close()
	doc, err := page.Parse(fh, sel)
	require.NoError(t, err)

	data := map[string]string{}
	store := rules.NewStore(&mocks.StorageMock{
		GetSettingFunc: func(ctx context.Context, key string) (string, error) { return data[key], nil },
		SetSettingFunc: func(ctx context.Context, key, value string) error { data[key] = value; return nil },
	}, rules.Keys{Keywords: "filtered_keywords", Authors: "blocked_users"})
	store.Load(context.Background())

	ext := identity.New(identity.Selectors{Card: sel.Card, Title: sel.Title, Owner: sel.Owner, Author: sel.Author},
		regexp.MustCompile(`space\.bilibili\.com/(\d+)`))
	return NewFilterService(store, filter.New(doc, ext, store), ext), doc, data
}

func TestFilterService_Keywords(t *testing.T) {
	ctx := context.Background()
	svc, doc, data := setup(t)

	assert.True(t, svc.AddKeyword(ctx, "  Cooking "))
	assert.True(t, page.IsHidden(doc.Card(1)), "add re-filters immediately")
	assert.Equal(t, domain.Stats{Keywords: 1, Authors: 0, Hidden: 1}, svc.Stats())
	assert.JSONEq(t, `["Cooking"]`, data["filtered_keywords"])

	assert.False(t, svc.AddKeyword(ctx, "Cooking"))
	assert.False(t, svc.AddKeyword(ctx, "   "))

	svc.RemoveKeyword(ctx, "Cooking")
	assert.False(t, page.IsHidden(doc.Card(1)), "remove re-filters immediately")
	assert.Equal(t, []string{}, svc.Rules().Keywords)
}

func TestFilterService_AddAuthor(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  domain.BlockedAuthor
	}{
		{name: "numeric id", input: "456", want: domain.BlockedAuthor{ID: "456"}},
		{name: "profile link", input: "https://space.bilibili.com/456?spm=1", want: domain.BlockedAuthor{ID: "456", Name: "https://space.bilibili.com/456?spm=1"}},
		{name: "plain name", input: " Bob ", want: domain.BlockedAuthor{ID: "Bob"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, _ := setup(t)
			got, ok := svc.AddAuthor(context.Background(), tt.input)
			assert.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFilterService_AuthorHidesAndRestores(t *testing.T) {
	ctx := context.Background()
	svc, doc, _ := setup(t)

	author, ok := svc.AddAuthor(ctx, "//space.bilibili.com/123")
	require.True(t, ok)
	assert.True(t, page.IsHidden(doc.Card(0)))
	_, ok = svc.AddAuthor(ctx, "123")
	assert.False(t, ok, "same id is not added twice")

	assert.Equal(t, RulesView{Keywords: []string{}, Authors: []AuthorView{
		{ID: "123", Name: "//space.bilibili.com/123", Display: "//space.bilibili.com/123 (123)"},
	}}, svc.Rules())

	svc.RemoveAuthor(ctx, author.ID)
	assert.False(t, page.IsHidden(doc.Card(0)))
	assert.Empty(t, svc.Rules().Authors)
	assert.Equal(t, 0, svc.Stats().Authors)
}

func TestFilterService_Refilter(t *testing.T) {
	svc, _, _ := setup(t)
	res := svc.Refilter()
	assert.Equal(t, 4, res.Cards, "no noise selectors configured")
	assert.Equal(t, 0, res.Hidden)
}
