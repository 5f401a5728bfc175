package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/stwalsh4118/dealsheet/internal/database"
	"github.com/stwalsh4118/dealsheet/internal/models"
)

// ListingRepository defines the read accessor over the listings database.
type ListingRepository interface {
	// FindByAddress fetches the listing row for the given full address.
	// Returns nil, nil if no listing is found (not an error).
	// Returns error only for actual database failures.
	FindByAddress(ctx context.Context, address string) (*models.PropertyRecord, error)
}

// listingRepository is the concrete implementation of ListingRepository.
type listingRepository struct {
	db *database.Database
}

// NewListingRepository creates a new instance of ListingRepository.
func NewListingRepository(db *database.Database) ListingRepository {
	return &listingRepository{
		db: db,
	}
}

// FindByAddress queries the listings table by exact address. Raw fields come
// back as stored; normalization is the caller's concern. NULL columns map to
// zero values or nil pointers so missing data stays non-fatal.
func (r *listingRepository) FindByAddress(ctx context.Context, address string) (*models.PropertyRecord, error) {
	query := `
		SELECT
			id,
			price,
			tax_information,
			estimated_rent,
			sqft,
			year_built,
			zip,
			city
		FROM listings
		WHERE address = ?
		LIMIT 1
	`

	var (
		record    models.PropertyRecord
		price     sql.NullFloat64
		taxRaw    sql.NullString
		rentRaw   sql.NullString
		sqft      sql.NullFloat64
		yearBuilt sql.NullString
		zip       sql.NullString
		city      sql.NullString
	)

	err := r.db.DB.QueryRowContext(ctx, query, address).Scan(
		&record.ID,
		&price,
		&taxRaw,
		&rentRaw,
		&sqft,
		&yearBuilt,
		&zip,
		&city,
	)

	// No listing for this address is not an error at the repository level.
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query listing for address %q: %w", address, err)
	}

	if price.Valid {
		v := price.Float64
		record.Price = &v
	}
	if sqft.Valid && sqft.Float64 > 0 {
		v := sqft.Float64
		record.Sqft = &v
	}
	record.TaxRaw = taxRaw.String
	record.RentRaw = rentRaw.String
	record.YearBuiltRaw = yearBuilt.String
	record.Zip = zip.String
	record.City = city.String

	return &record, nil
}
