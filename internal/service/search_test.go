package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"lightbnb/internal/cache"
	"lightbnb/internal/database"
	"lightbnb/internal/model"
	"lightbnb/internal/store"

	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func listingRow(id, cost int) []any {
	return []any{
		id, 1, "Flat", "", "", "", cost, 0, 1, 1,
		"Canada", "1 Main St", "Vancouver", "BC", "V5K", true, 4.0,
	}
}

func rowsDB(calls *int, data ...[]any) *database.FakeDB {
	return &database.FakeDB{
		QueryFn: func(context.Context, string, ...any) (pgx.Rows, error) {
			*calls++
			return &database.FakeRows{Data: data}, nil
		},
	}
}

func TestPropertySearchWithoutCache(t *testing.T) {
	calls := 0
	s := NewPropertySearch(rowsDB(&calls, listingRow(1, 100)), nil, time.Minute, zerolog.Nop())
	got, err := s.Search(context.Background(), store.PropertyFilter{City: "van"}, 10)
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, 1, calls)

	// ttl 0 disables caching even with a client
	s = NewPropertySearch(rowsDB(&calls), &cache.FakeCache{}, 0, zerolog.Nop())
	_, err = s.Search(context.Background(), store.PropertyFilter{}, 10)
	require.NoError(t, err)
	require.Equal(t, 2, calls)
}

func TestPropertySearchMissThenStore(t *testing.T) {
	t.Cleanup(restoreGlobals)
	calls := 0
	var setKey string
	var setVal []byte
	var setTTL time.Duration
	c := &cache.FakeCache{
		GetFn: func(context.Context, string) *redis.StringCmd {
			return redis.NewStringResult("", redis.Nil)
		},
		SetFn: func(_ context.Context, key string, val any, ttl time.Duration) *redis.StatusCmd {
			setKey, setVal, setTTL = key, val.([]byte), ttl
			return redis.NewStatusResult("OK", nil)
		},
	}
	s := NewPropertySearch(rowsDB(&calls, listingRow(1, 100), listingRow(2, 200)), c, time.Minute, zerolog.Nop())

	got, err := s.Search(context.Background(), store.PropertyFilter{City: "van"}, 10)
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, 1, calls)

	key, err := searchKey(store.PropertyFilter{City: "van"}, 10)
	require.NoError(t, err)
	require.Equal(t, key, setKey)
	require.Equal(t, time.Minute, setTTL)
	var stored []model.PropertyListing
	require.NoError(t, json.Unmarshal(setVal, &stored))
	require.Equal(t, got, stored)
}

func TestPropertySearchHit(t *testing.T) {
	rating := 4.5
	cached := []model.PropertyListing{{Property: model.Property{ID: 9, CostPerNight: 5000}, AverageRating: &rating}}
	payload, err := json.Marshal(cached)
	require.NoError(t, err)

	c := &cache.FakeCache{
		GetFn: func(context.Context, string) *redis.StringCmd {
			return redis.NewStringResult(string(payload), nil)
		},
	}
	// FakeDB without QueryFn panics if the database is reached.
	s := NewPropertySearch(&database.FakeDB{}, c, time.Minute, zerolog.Nop())
	got, err := s.Search(context.Background(), store.PropertyFilter{}, 10)
	require.NoError(t, err)
	require.Equal(t, cached, got)
}

func TestPropertySearchCacheFailuresFallBack(t *testing.T) {
	t.Cleanup(restoreGlobals)
	ctx := context.Background()
	calls := 0
	c := &cache.FakeCache{
		GetFn: func(context.Context, string) *redis.StringCmd {
			return redis.NewStringResult("", errors.New("connection refused"))
		},
		SetFn: func(context.Context, string, any, time.Duration) *redis.StatusCmd {
			return redis.NewStatusResult("", errors.New("connection refused"))
		},
	}
	s := NewPropertySearch(rowsDB(&calls, listingRow(1, 100)), c, time.Minute, zerolog.Nop())
	got, err := s.Search(ctx, store.PropertyFilter{}, 10)
	require.NoError(t, err)
	require.Len(t, got, 1)

	c.GetFn = func(context.Context, string) *redis.StringCmd {
		return redis.NewStringResult("{corrupt", nil)
	}
	got, err = s.Search(ctx, store.PropertyFilter{}, 10)
	require.NoError(t, err)
	require.Len(t, got, 1)

	jsonMarshal = func(any) ([]byte, error) { return nil, errors.New("encode") }
	got, err = s.Search(ctx, store.PropertyFilter{}, 10)
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, 3, calls)
}

func TestPropertySearchDatabaseError(t *testing.T) {
	setCalled := false
	c := &cache.FakeCache{
		GetFn: func(context.Context, string) *redis.StringCmd {
			return redis.NewStringResult("", redis.Nil)
		},
		SetFn: func(context.Context, string, any, time.Duration) *redis.StatusCmd {
			setCalled = true
			return redis.NewStatusResult("OK", nil)
		},
	}
	db := &database.FakeDB{
		QueryFn: func(context.Context, string, ...any) (pgx.Rows, error) { return nil, errors.New("down") },
	}
	s := NewPropertySearch(db, c, time.Minute, zerolog.Nop())
	_, err := s.Search(context.Background(), store.PropertyFilter{}, 10)
	var qe *store.QueryExecutionError
	require.ErrorAs(t, err, &qe)
	require.False(t, setCalled)
}

func TestSearchKey(t *testing.T) {
	owner := 5
	a, err := searchKey(store.PropertyFilter{OwnerID: &owner}, 10)
	require.NoError(t, err)
	b, err := searchKey(store.PropertyFilter{OwnerID: &owner}, 10)
	require.NoError(t, err)
	c, err := searchKey(store.PropertyFilter{OwnerID: &owner}, 20)
	require.NoError(t, err)
	d, err := searchKey(store.PropertyFilter{City: "5"}, 10)
	require.NoError(t, err)

	require.Equal(t, a, b)
	require.NotEqual(t, a, c)
	require.NotEqual(t, a, d)
	require.Contains(t, a, searchKeyPrefix)
}
