package store

import (
	"context"

	"lightbnb/internal/database"
	"lightbnb/internal/model"
)

const guestReservationsSQL = `
SELECT reservations.id, reservations.guest_id, reservations.property_id,
       reservations.start_date, reservations.end_date,
       ` + propertyColumns + `,
       avg(property_reviews.rating)::float8 AS average_rating
FROM reservations
JOIN properties ON reservations.property_id = properties.id
LEFT JOIN property_reviews ON properties.id = property_reviews.property_id
WHERE reservations.guest_id = $1
  AND reservations.end_date < now()::date
GROUP BY properties.id, reservations.id
ORDER BY reservations.start_date
LIMIT $2`

// GetAllReservations lists the guest's past stays (ended before today),
// earliest first, each with the property and its average rating.
func GetAllReservations(ctx context.Context, db database.DB, guestID int, limit int) ([]model.GuestReservation, error) {
	rows, err := db.Query(ctx, guestReservationsSQL, guestID, normalizeLimit(limit))
	if err != nil {
		return nil, queryError("GetAllReservations", err)
	}
	defer rows.Close()

	out := make([]model.GuestReservation, 0)
	for rows.Next() {
		var gr model.GuestReservation
		dest := []any{
			&gr.Reservation.ID,
			&gr.Reservation.GuestID,
			&gr.Reservation.PropertyID,
			&gr.Reservation.StartDate,
			&gr.Reservation.EndDate,
		}
		dest = append(dest, propertyFields(&gr.Property)...)
		dest = append(dest, &gr.AverageRating)
		if err := rows.Scan(dest...); err != nil {
			return nil, queryError("GetAllReservations", err)
		}
		out = append(out, gr)
	}
	if err := rows.Err(); err != nil {
		return nil, queryError("GetAllReservations", err)
	}
	return out, nil
}
