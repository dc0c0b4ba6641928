package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"lightbnb/internal/database"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"
)

func reservationRow(id int, start time.Time, rating any) []any {
	row := []any{id, 9, 3, start, start.AddDate(0, 0, 4)}
	return append(row, propertyRow(3, 8000, rating)...)
}

func TestGetAllReservations(t *testing.T) {
	ctx := context.Background()

	t.Run("past stays for guest", func(t *testing.T) {
		start := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
		var gotSQL string
		var gotArgs []any
		db := &database.FakeDB{
			QueryFn: func(_ context.Context, sql string, args ...any) (pgx.Rows, error) {
				gotSQL, gotArgs = sql, args
				return &database.FakeRows{Data: [][]any{
					reservationRow(1, start, 4.0),
					reservationRow(2, start.AddDate(0, 1, 0), nil),
				}}, nil
			},
		}
		got, err := GetAllReservations(ctx, db, 9, 5)
		require.NoError(t, err)
		require.Len(t, got, 2)
		require.Equal(t, 1, got[0].Reservation.ID)
		require.Equal(t, 9, got[0].Reservation.GuestID)
		require.Equal(t, start, got[0].Reservation.StartDate)
		require.Equal(t, 3, got[0].Property.ID)
		require.Equal(t, 8000, got[0].Property.CostPerNight)
		require.InDelta(t, 4.0, *got[0].AverageRating, 0.001)
		require.Nil(t, got[1].AverageRating)

		require.Equal(t, []any{9, 5}, gotArgs)
		require.Contains(t, gotSQL, "reservations.end_date < now()::date")
		require.Contains(t, gotSQL, "ORDER BY reservations.start_date")
		require.Contains(t, gotSQL, "LIMIT $2")
	})

	t.Run("default limit", func(t *testing.T) {
		var gotArgs []any
		db := &database.FakeDB{
			QueryFn: func(_ context.Context, _ string, args ...any) (pgx.Rows, error) {
				gotArgs = args
				return &database.FakeRows{}, nil
			},
		}
		_, err := GetAllReservations(ctx, db, 9, 0)
		require.NoError(t, err)
		require.Equal(t, []any{9, DefaultLimit}, gotArgs)
	})

	t.Run("no past reservations", func(t *testing.T) {
		db := &database.FakeDB{
			QueryFn: func(context.Context, string, ...any) (pgx.Rows, error) { return &database.FakeRows{}, nil },
		}
		got, err := GetAllReservations(ctx, db, 42, 10)
		require.NoError(t, err)
		require.NotNil(t, got)
		require.Empty(t, got)
	})

	t.Run("query error", func(t *testing.T) {
		db := &database.FakeDB{
			QueryFn: func(context.Context, string, ...any) (pgx.Rows, error) { return nil, errors.New("pool closed") },
		}
		got, err := GetAllReservations(ctx, db, 42, 10)
		require.Nil(t, got)
		var qe *QueryExecutionError
		require.ErrorAs(t, err, &qe)
		require.Equal(t, "GetAllReservations", qe.Op)
		require.ErrorContains(t, err, "pool closed")
	})
}
