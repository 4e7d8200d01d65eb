// Package service is the surface the management panel drives: rule edits followed by an
// immediate re-filter, and read-only snapshots of rules and stats.
package service

import (
	"context"
	"strings"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/cardfilter/pkg/domain"
	"github.com/umputun/cardfilter/pkg/filter"
	"github.com/umputun/cardfilter/pkg/identity"
	"github.com/umputun/cardfilter/pkg/rules"
)

// FilterService ties the rule store to the filter engine. Must be used from the event loop.
type FilterService struct {
	store     *rules.Store
	engine    *filter.Engine
	extractor *identity.Extractor
}

// AuthorView is a blocked author as the panel lists it
type AuthorView struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Display string `json:"display"`
}

// RulesView is the snapshot of both rule collections
type RulesView struct {
	Keywords []string     `json:"keywords"`
	Authors  []AuthorView `json:"authors"`
}

// NewFilterService creates a new filter service
func NewFilterService(store *rules.Store, engine *filter.Engine, extractor *identity.Extractor) *FilterService {
	return &FilterService{store: store, engine: engine, extractor: extractor}
}

// AddKeyword adds a trimmed keyword and re-filters. Returns false for empty or duplicate keywords.
func (s *FilterService) AddKeyword(ctx context.Context, keyword string) bool {
	keyword = strings.TrimSpace(keyword)
	if !s.store.AddKeyword(ctx, keyword) {
		return false
	}
	lgr.Printf("[INFO] keyword %q added", keyword)
	s.Refilter()
	return true
}

// RemoveKeyword removes a keyword and re-filters so released cards show up again
func (s *FilterService) RemoveKeyword(ctx context.Context, keyword string) {
	s.store.RemoveKeyword(ctx, keyword)
	lgr.Printf("[INFO] keyword %q removed", keyword)
	s.Refilter()
}

// AddAuthor blocks the author described by free-form input: an id, a profile link or a name.
// Returns the stored entry and false if nothing was added.
func (s *FilterService) AddAuthor(ctx context.Context, input string) (domain.BlockedAuthor, bool) {
	input = strings.TrimSpace(input)
	id := s.extractor.ParseInput(input)
	author := domain.BlockedAuthor{ID: id}
	if input != id {
		author.Name = input
	}
	if !s.store.AddBlockedAuthor(ctx, author.ID, author.Name) {
		return author, false
	}
	lgr.Printf("[INFO] author %s blocked", author.Display())
	s.Refilter()
	return author, true
}

// RemoveAuthor unblocks the author with id and re-filters
func (s *FilterService) RemoveAuthor(ctx context.Context, id string) {
	s.store.RemoveBlockedAuthor(ctx, id)
	lgr.Printf("[INFO] author %s unblocked", id)
	s.Refilter()
}

// Rules returns both rule collections
func (s *FilterService) Rules() RulesView {
	res := RulesView{Keywords: s.store.Keywords(), Authors: []AuthorView{}}
	for _, a := range s.store.BlockedAuthors() {
		res.Authors = append(res.Authors, AuthorView{ID: a.ID, Name: a.Name, Display: a.Display()})
	}
	return res
}

// Stats returns rule counts and the hidden count of the last pass
func (s *FilterService) Stats() domain.Stats {
	return domain.Stats{
		Keywords: len(s.store.Keywords()),
		Authors:  len(s.store.BlockedAuthors()),
		Hidden:   s.engine.LastPass().Hidden,
	}
}

// Refilter runs a pass right away
func (s *FilterService) Refilter() domain.PassResult {
	return s.engine.RunPass()
}
