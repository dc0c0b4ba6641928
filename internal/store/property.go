// File: internal/store/property.go
package store

import (
	"context"
	"strings"

	"lightbnb/internal/database"
	"lightbnb/internal/model"
	"lightbnb/internal/query"

	"github.com/shopspring/decimal"
)

const propertyColumns = `properties.id, properties.owner_id, properties.title, properties.description,
       properties.thumbnail_photo_url, properties.cover_photo_url, properties.cost_per_night,
       properties.parking_spaces, properties.number_of_bathrooms, properties.number_of_bedrooms,
       properties.country, properties.street, properties.city, properties.province,
       properties.post_code, properties.active`

// PropertyFilter holds the optional search criteria. Zero values disable
// a criterion. Prices are in major currency units.
type PropertyFilter struct {
	City                 string
	OwnerID              *int
	MinimumPricePerNight *decimal.Decimal
	MaximumPricePerNight *decimal.Decimal
	MinimumRating        *float64
}

// The price range applies only when both bounds are given.
func (f PropertyFilter) hasPriceRange() bool {
	return f.MinimumPricePerNight != nil && f.MaximumPricePerNight != nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// BuildPropertySearch returns the search statement and its arguments.
// Filters bind in the order city, owner, price range, minimum rating and
// the limit is always the last argument. Prices beyond what the cents
// column can hold are clamped to its bounds.
func BuildPropertySearch(f PropertyFilter, limit int) (string, []any) {
	var q query.Query

	if f.City != "" {
		q.Where("properties.city ILIKE " + q.Arg("%"+likeEscaper.Replace(f.City)+"%"))
	}
	if f.OwnerID != nil {
		q.Where("properties.owner_id = " + q.Arg(*f.OwnerID))
	}
	if f.hasPriceRange() {
		low := q.Arg(model.ClampCents(*f.MinimumPricePerNight))
		high := q.Arg(model.ClampCents(*f.MaximumPricePerNight))
		q.Where("properties.cost_per_night BETWEEN " + low + " AND " + high)
	}
	if f.MinimumRating != nil {
		q.Having("avg(property_reviews.rating) >= " + q.Arg(*f.MinimumRating))
	}
	limitArg := q.Arg(normalizeLimit(limit))

	parts := []string{
		"SELECT " + propertyColumns + ",\n       avg(property_reviews.rating)::float8 AS average_rating",
		"FROM properties",
		"LEFT JOIN property_reviews ON properties.id = property_reviews.property_id",
		q.WhereClause(),
		"GROUP BY properties.id",
		q.HavingClause(),
		"ORDER BY properties.cost_per_night ASC",
		"LIMIT " + limitArg,
	}
	lines := parts[:0]
	for _, p := range parts {
		if p != "" {
			lines = append(lines, p)
		}
	}
	return strings.Join(lines, "\n"), q.Args()
}

// GetAllProperties runs the filtered search, cheapest first. No match
// yields an empty slice.
func GetAllProperties(ctx context.Context, db database.DB, f PropertyFilter, limit int) ([]model.PropertyListing, error) {
	sql, args := BuildPropertySearch(f, limit)
	rows, err := db.Query(ctx, sql, args...)
	if err != nil {
		return nil, queryError("GetAllProperties", err)
	}
	defer rows.Close()

	listings := make([]model.PropertyListing, 0)
	for rows.Next() {
		var l model.PropertyListing
		if err := rows.Scan(append(propertyFields(&l.Property), &l.AverageRating)...); err != nil {
			return nil, queryError("GetAllProperties", err)
		}
		listings = append(listings, l)
	}
	if err := rows.Err(); err != nil {
		return nil, queryError("GetAllProperties", err)
	}
	return listings, nil
}

// AddProperty inserts p and fills in the generated id and active flag.
func AddProperty(ctx context.Context, db database.DB, p *model.Property) (*model.Property, error) {
	row := db.QueryRow(ctx, `
        INSERT INTO properties
            (owner_id, title, description, thumbnail_photo_url, cover_photo_url, cost_per_night,
             parking_spaces, number_of_bathrooms, number_of_bedrooms,
             country, street, city, province, post_code)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)
        RETURNING id, active
    `,
		p.OwnerID,
		p.Title,
		p.Description,
		p.ThumbnailPhotoURL,
		p.CoverPhotoURL,
		p.CostPerNight,
		p.ParkingSpaces,
		p.NumberOfBathrooms,
		p.NumberOfBedrooms,
		p.Country,
		p.Street,
		p.City,
		p.Province,
		p.PostCode,
	)
	if err := row.Scan(&p.ID, &p.Active); err != nil {
		return nil, queryError("AddProperty", err)
	}
	return p, nil
}

// propertyFields returns scan targets in propertyColumns order.
func propertyFields(p *model.Property) []any {
	return []any{
		&p.ID,
		&p.OwnerID,
		&p.Title,
		&p.Description,
		&p.ThumbnailPhotoURL,
		&p.CoverPhotoURL,
		&p.CostPerNight,
		&p.ParkingSpaces,
		&p.NumberOfBathrooms,
		&p.NumberOfBedrooms,
		&p.Country,
		&p.Street,
		&p.City,
		&p.Province,
		&p.PostCode,
		&p.Active,
	}
}
