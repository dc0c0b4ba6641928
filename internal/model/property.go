// File: internal/model/property.go
package model

// Property is a rentable listing. CostPerNight is in cents.
type Property struct {
	ID                int    `db:"id" json:"id"`
	OwnerID           int    `db:"owner_id" json:"owner_id" validate:"required,gt=0"`
	Title             string `db:"title" json:"title" validate:"required"`
	Description       string `db:"description" json:"description"`
	ThumbnailPhotoURL string `db:"thumbnail_photo_url" json:"thumbnail_photo_url" validate:"omitempty,url"`
	CoverPhotoURL     string `db:"cover_photo_url" json:"cover_photo_url" validate:"omitempty,url"`
	CostPerNight      int    `db:"cost_per_night" json:"cost_per_night" validate:"gte=0"`
	ParkingSpaces     int    `db:"parking_spaces" json:"parking_spaces" validate:"gte=0"`
	NumberOfBathrooms int    `db:"number_of_bathrooms" json:"number_of_bathrooms" validate:"gte=0"`
	NumberOfBedrooms  int    `db:"number_of_bedrooms" json:"number_of_bedrooms" validate:"gte=0"`
	Country           string `db:"country" json:"country" validate:"required"`
	Street            string `db:"street" json:"street" validate:"required"`
	City              string `db:"city" json:"city" validate:"required"`
	Province          string `db:"province" json:"province" validate:"required"`
	PostCode          string `db:"post_code" json:"post_code" validate:"required"`
	Active            bool   `db:"active" json:"active"`
}

// PropertyListing is a search result: the property plus its mean review
// rating, nil when the property has no reviews.
type PropertyListing struct {
	Property
	AverageRating *float64 `db:"average_rating" json:"average_rating"`
}
