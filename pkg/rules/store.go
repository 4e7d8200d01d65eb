// Package rules owns the two user rule collections, keywords and blocked authors,
// and their round-trip through the key-value storage.
//
// Store is not safe for concurrent use; all access happens on the event loop.
package rules

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/cardfilter/pkg/domain"
)

//go:generate moq -out mocks/storage.go -pkg mocks -skip-ensure -fmt goimports . Storage

// Storage is the key-value collaborator holding the serialized rule collections
type Storage interface {
	GetSetting(ctx context.Context, key string) (string, error)
	SetSetting(ctx context.Context, key, value string) error
}

// Keys are the storage entry names of the two collections
type Keys struct {
	Keywords string
	Authors  string
}

// Store holds keyword rules and blocked authors, persisting after every mutation
type Store struct {
	storage  Storage
	keys     Keys
	keywords []string
	authors  []domain.BlockedAuthor
}

// NewStore makes an empty store; call Load to read persisted rules
func NewStore(storage Storage, keys Keys) *Store {
	return &Store{storage: storage, keys: keys, keywords: []string{}, authors: []domain.BlockedAuthor{}}
}

// Load reads both collections. Missing or corrupt entries load as empty collections.
func (s *Store) Load(ctx context.Context) {
	s.keywords = []string{}
	if err := s.read(ctx, s.keys.Keywords, &s.keywords); err != nil {
		lgr.Printf("[WARN] keywords reset to empty: %v", err)
		s.keywords = []string{}
	}
	if s.keywords == nil {
		s.keywords = []string{}
	}

	s.authors = []domain.BlockedAuthor{}
	if err := s.read(ctx, s.keys.Authors, &s.authors); err != nil {
		lgr.Printf("[WARN] blocked authors reset to empty: %v", err)
		s.authors = []domain.BlockedAuthor{}
	}
	if s.authors == nil {
		s.authors = []domain.BlockedAuthor{}
	}
	lgr.Printf("[INFO] loaded %d keywords and %d blocked authors", len(s.keywords), len(s.authors))
}

// AddKeyword appends k unless it is empty or already present. Returns true if added.
func (s *Store) AddKeyword(ctx context.Context, k string) bool {
	if k == "" || s.HasKeyword(k) {
		return false
	}
	s.keywords = append(s.keywords, k)
	s.Persist(ctx)
	return true
}

// RemoveKeyword removes every exact match of k and persists
func (s *Store) RemoveKeyword(ctx context.Context, k string) {
	kept := s.keywords[:0]
	for _, kw := range s.keywords {
		if kw != k {
			kept = append(kept, kw)
		}
	}
	s.keywords = kept
	s.Persist(ctx)
}

// AddBlockedAuthor appends {id, name} unless an entry with the same id exists or id is empty.
// Returns true if added.
func (s *Store) AddBlockedAuthor(ctx context.Context, id, name string) bool {
	if id == "" || s.IsBlockedID(id) {
		return false
	}
	s.authors = append(s.authors, domain.BlockedAuthor{ID: id, Name: name})
	s.Persist(ctx)
	return true
}

// RemoveBlockedAuthor removes the entry with id and persists
func (s *Store) RemoveBlockedAuthor(ctx context.Context, id string) {
	kept := s.authors[:0]
	for _, a := range s.authors {
		if a.ID != id {
			kept = append(kept, a)
		}
	}
	s.authors = kept
	s.Persist(ctx)
}

// Persist writes both collections. Failures are logged; the in-memory state stays authoritative.
// Writes ignore cancellation of ctx, a mutation applied in memory is always written through.
func (s *Store) Persist(ctx context.Context) {
	ctx = context.WithoutCancel(ctx)
	if err := s.write(ctx, s.keys.Keywords, s.keywords); err != nil {
		lgr.Printf("[WARN] failed to persist keywords: %v", err)
	}
	if err := s.write(ctx, s.keys.Authors, s.authors); err != nil {
		lgr.Printf("[WARN] failed to persist blocked authors: %v", err)
	}
}

// Keywords returns a copy of the keyword rules
func (s *Store) Keywords() []string {
	res := make([]string, len(s.keywords))
	copy(res, s.keywords)
	return res
}

// BlockedAuthors returns a copy of the blocked authors
func (s *Store) BlockedAuthors() []domain.BlockedAuthor {
	res := make([]domain.BlockedAuthor, len(s.authors))
	copy(res, s.authors)
	return res
}

// HasKeyword reports an exact keyword match
func (s *Store) HasKeyword(k string) bool {
	for _, kw := range s.keywords {
		if kw == k {
			return true
		}
	}
	return false
}

// MatchKeyword returns the first keyword contained in text, case-sensitive
func (s *Store) MatchKeyword(text string) (string, bool) {
	for _, kw := range s.keywords {
		if strings.Contains(text, kw) {
			return kw, true
		}
	}
	return "", false
}

// IsBlockedID reports whether id is a blocked author id
func (s *Store) IsBlockedID(id string) bool {
	if id == "" {
		return false
	}
	for _, a := range s.authors {
		if a.ID == id {
			return true
		}
	}
	return false
}

// IsBlocked reports whether an author is blocked by id or by display name
func (s *Store) IsBlocked(id, name string) bool {
	for _, a := range s.authors {
		if (id != "" && a.ID == id) || (name != "" && a.Name == name) {
			return true
		}
	}
	return false
}

func (s *Store) read(ctx context.Context, key string, dest any) error {
	raw, err := s.storage.GetSetting(ctx, key)
	if err != nil {
		return fmt.Errorf("get %s: %w", key, err)
	}
	if raw == "" {
		return nil
	}
	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		return fmt.Errorf("decode %s: %w", key, err)
	}
	return nil
}

func (s *Store) write(ctx context.Context, key string, val any) error {
	data, err := json.Marshal(val)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := s.storage.SetSetting(ctx, key, string(data)); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}
