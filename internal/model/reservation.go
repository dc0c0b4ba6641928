// File: internal/model/reservation.go
package model

import "time"

type Reservation struct {
	ID         int       `db:"id" json:"id"`
	GuestID    int       `db:"guest_id" json:"guest_id"`
	PropertyID int       `db:"property_id" json:"property_id"`
	StartDate  time.Time `db:"start_date" json:"start_date"`
	EndDate    time.Time `db:"end_date" json:"end_date"`
}

// GuestReservation is a past stay as shown to the guest.
type GuestReservation struct {
	Reservation   Reservation `json:"reservation"`
	Property      Property    `json:"property"`
	AverageRating *float64    `json:"average_rating"`
}
