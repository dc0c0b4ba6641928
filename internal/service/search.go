package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"lightbnb/internal/cache"
	"lightbnb/internal/database"
	"lightbnb/internal/model"
	"lightbnb/internal/store"

	"github.com/rs/zerolog"
)

const searchKeyPrefix = "lightbnb:search:"

var (
	jsonMarshal   = json.Marshal
	jsonUnmarshal = json.Unmarshal
)

// PropertySearch runs property searches, reading through the cache when
// one is configured. Cache errors are logged and the database is queried
// instead.
type PropertySearch struct {
	db    database.DB
	cache cache.Cache
	ttl   time.Duration
	log   zerolog.Logger
}

// NewPropertySearch returns a searcher. A nil cache or a ttl <= 0 disables caching.
func NewPropertySearch(db database.DB, c cache.Cache, ttl time.Duration, log zerolog.Logger) *PropertySearch {
	return &PropertySearch{db: db, cache: c, ttl: ttl, log: log}
}

func (s *PropertySearch) cacheEnabled() bool {
	return s.cache != nil && s.ttl > 0
}

// Search returns at most limit listings matching f, cheapest first.
func (s *PropertySearch) Search(ctx context.Context, f store.PropertyFilter, limit int) ([]model.PropertyListing, error) {
	if !s.cacheEnabled() {
		return store.GetAllProperties(ctx, s.db, f, limit)
	}

	key, err := searchKey(f, limit)
	if err != nil {
		s.log.Warn().Err(err).Msg("search cache key")
		return store.GetAllProperties(ctx, s.db, f, limit)
	}

	if listings, ok := s.lookup(ctx, key); ok {
		return listings, nil
	}

	listings, err := store.GetAllProperties(ctx, s.db, f, limit)
	if err != nil {
		return nil, err
	}
	s.save(ctx, key, listings)
	return listings, nil
}

func (s *PropertySearch) lookup(ctx context.Context, key string) ([]model.PropertyListing, bool) {
	raw, err := s.cache.Get(ctx, key).Bytes()
	if err != nil {
		if !cache.IsMiss(err) {
			s.log.Warn().Err(err).Str("key", key).Msg("search cache get")
		}
		return nil, false
	}
	var listings []model.PropertyListing
	if err := jsonUnmarshal(raw, &listings); err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("search cache decode")
		return nil, false
	}
	if listings == nil {
		listings = make([]model.PropertyListing, 0)
	}
	s.log.Debug().Str("key", key).Int("results", len(listings)).Msg("search cache hit")
	return listings, true
}

func (s *PropertySearch) save(ctx context.Context, key string, listings []model.PropertyListing) {
	payload, err := jsonMarshal(listings)
	if err != nil {
		s.log.Warn().Err(err).Msg("search cache encode")
		return
	}
	if err := s.cache.Set(ctx, key, payload, s.ttl).Err(); err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("search cache set")
	}
}

// searchKey derives the cache key from the built statement, so two filters
// producing the same SQL and arguments share an entry.
func searchKey(f store.PropertyFilter, limit int) (string, error) {
	sql, args := store.BuildPropertySearch(f, limit)
	encoded, err := jsonMarshal(args)
	if err != nil {
		return "", fmt.Errorf("encode search args: %w", err)
	}
	sum := sha256.New()
	sum.Write([]byte(sql))
	sum.Write([]byte{0})
	sum.Write(encoded)
	return searchKeyPrefix + hex.EncodeToString(sum.Sum(nil)), nil
}
