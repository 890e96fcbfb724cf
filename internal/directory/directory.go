// Package directory resolves human-entered player names and slugs to stable
// numeric identifiers and back.
//
// The underlying listing is quasi-static, so both lookup directions are
// memoized by input value for the process lifetime: the listing is fetched
// fresh on a cache miss and never explicitly invalidated.
package directory

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/hoopsight/hoopsight/internal/cache"
)

// ErrNotFound indicates a name or slug with no exact directory match.
var ErrNotFound = errors.New("player not found")

// UnknownPlayerName is the sentinel returned by ResolveName for identifiers
// absent from the directory.
const UnknownPlayerName = "Unknown Player"

// Player is one immutable directory entry.
type Player struct {
	ID       int
	FullName string
	Active   bool
}

// Lister supplies the full directory listing.
type Lister interface {
	AllPlayers(ctx context.Context) ([]Player, error)
}

// Service is the memoizing directory adapter.
type Service struct {
	lister Lister
	cache  *cache.Store
	logger *slog.Logger
}

// New creates a directory service backed by the given lister.
func New(lister Lister, store *cache.Store, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{lister: lister, cache: store, logger: logger}
}

// Normalize canonicalizes a name or slug for matching: lowercased, hyphens
// replaced with spaces, whitespace collapsed.
func Normalize(nameOrSlug string) string {
	s := strings.ToLower(strings.ReplaceAll(nameOrSlug, "-", " "))
	return strings.Join(strings.Fields(s), " ")
}

// ResolveID resolves a name or slug to a player identifier via exact
// case-insensitive full-name match. No fuzzy matching.
func (s *Service) ResolveID(ctx context.Context, nameOrSlug string) (int, error) {
	normalized := Normalize(nameOrSlug)
	key := "directory:id:" + normalized
	if v, ok := s.cache.Get(key); ok {
		id := v.(int)
		if id == 0 {
			return 0, fmt.Errorf("%w: %s", ErrNotFound, nameOrSlug)
		}
		return id, nil
	}

	players, err := s.listing(ctx)
	if err != nil {
		return 0, err
	}
	for _, p := range players {
		if Normalize(p.FullName) == normalized {
			s.cache.Set(key, p.ID)
			return p.ID, nil
		}
	}
	s.cache.Set(key, 0)
	return 0, fmt.Errorf("%w: %s", ErrNotFound, nameOrSlug)
}

// ResolveName is the reverse lookup. Returns the canonical full name, or the
// "Unknown Player" sentinel when the identifier is absent; never errors.
func (s *Service) ResolveName(ctx context.Context, id int) string {
	key := "directory:name:" + strconv.Itoa(id)
	if v, ok := s.cache.Get(key); ok {
		return v.(string)
	}

	name := UnknownPlayerName
	players, err := s.listing(ctx)
	if err != nil {
		s.logger.Warn("directory listing unavailable for name lookup", "player_id", id, "error", err)
		return name
	}
	for _, p := range players {
		if p.ID == id {
			name = p.FullName
			break
		}
	}
	s.cache.Set(key, name)
	return name
}

// ActivePlayers returns the active-player pool for the recommender.
func (s *Service) ActivePlayers(ctx context.Context) ([]Player, error) {
	players, err := s.listing(ctx)
	if err != nil {
		return nil, err
	}
	active := make([]Player, 0, len(players))
	for _, p := range players {
		if p.Active {
			active = append(active, p)
		}
	}
	return active, nil
}

func (s *Service) listing(ctx context.Context) ([]Player, error) {
	const key = "directory:players"
	if v, ok := s.cache.Get(key); ok {
		return v.([]Player), nil
	}
	players, err := s.lister.AllPlayers(ctx)
	if err != nil {
		return nil, fmt.Errorf("directory listing: %w", err)
	}
	s.cache.Set(key, players)
	return players, nil
}
