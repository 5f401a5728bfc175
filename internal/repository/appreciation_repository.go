package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/stwalsh4118/dealsheet/internal/database"
)

// Minimum homes_sold for a historical row to be trusted; thin markets produce
// noisy medians.
const minHomesSoldThreshold = 5

// historicalPropertyType pins the historical lookup to one property class so
// condo and multi-family medians never leak into a single-family analysis.
const historicalPropertyType = "Single Family Residential"

// validMetrics is the allow-list of metric_type values the historical
// database carries. Anything else is rejected before touching SQL.
var validMetrics = map[string]bool{
	"median_sale_price_ptp_appreciation":          true,
	"median_ppsf_ptp_appreciation":                true,
	"median_sale_price_quarterly_appreciation":    true,
	"median_ppsf_quarterly_appreciation":          true,
	"median_sale_price_annual_appreciation":       true,
	"median_ppsf_annual_appreciation":             true,
	"median_sale_price_3_year_cagr_appreciation":  true,
	"median_ppsf_3_year_cagr_appreciation":        true,
	"median_sale_price_5_year_cagr_appreciation":  true,
	"median_ppsf_5_year_cagr_appreciation":        true,
	"median_sale_price_10_year_cagr_appreciation": true,
	"median_ppsf_10_year_cagr_appreciation":       true,
}

// IsValidMetric reports whether name is a known historical metric.
func IsValidMetric(name string) bool {
	return validMetrics[name]
}

// AppreciationRepository defines the read accessor over the historical
// neighborhood-analysis database.
type AppreciationRepository interface {
	// LatestMetric returns the most recent value of the named metric for the
	// given city and neighborhood, subject to the property-type and
	// homes-sold filters. When the exact neighborhood name yields no rows the
	// query is retried once with a substring match.
	// Returns nil, nil when no row qualifies (not an error).
	LatestMetric(ctx context.Context, metric, city, neighborhood string) (*float64, error)
}

// appreciationRepository is the concrete implementation of AppreciationRepository.
type appreciationRepository struct {
	db *database.Database
}

// NewAppreciationRepository creates a new instance of AppreciationRepository.
func NewAppreciationRepository(db *database.Database) AppreciationRepository {
	return &appreciationRepository{
		db: db,
	}
}

const metricQueryExact = `
	SELECT na.value
	FROM neighborhood_appreciation na
	JOIN neighborhood_data nd ON na.neighborhood_data_id = nd.id
	WHERE na.metric_type = ?
	  AND nd.property_type = ?
	  AND nd.homes_sold >= ?
	  AND lower(nd.city) = ?
	  AND lower(nd.neighborhood_name) = ?
	ORDER BY nd.period_end DESC
	LIMIT 1
`

const metricQueryLike = `
	SELECT na.value
	FROM neighborhood_appreciation na
	JOIN neighborhood_data nd ON na.neighborhood_data_id = nd.id
	WHERE na.metric_type = ?
	  AND nd.property_type = ?
	  AND nd.homes_sold >= ?
	  AND lower(nd.city) = ?
	  AND lower(nd.neighborhood_name) LIKE ?
	ORDER BY nd.period_end DESC
	LIMIT 1
`

// LatestMetric runs the exact-name query and falls back to a LIKE match when
// it returns no rows. Neighborhood keys arrive underscore-separated
// ("sloan_lake"); the database stores display names ("Sloan Lake"), so the
// input is lower-cased and de-underscored before matching.
func (r *appreciationRepository) LatestMetric(ctx context.Context, metric, city, neighborhood string) (*float64, error) {
	if metric == "" || neighborhood == "" || city == "" {
		return nil, nil
	}
	if !IsValidMetric(metric) {
		return nil, fmt.Errorf("unknown historical metric %q", metric)
	}

	normalized := strings.ReplaceAll(strings.ToLower(neighborhood), "_", " ")
	cityNorm := strings.ToLower(city)

	value, err := r.queryOne(ctx, metricQueryExact, metric, cityNorm, normalized)
	if err != nil {
		return nil, err
	}
	if value != nil {
		return value, nil
	}

	return r.queryOne(ctx, metricQueryLike, metric, cityNorm, "%"+normalized+"%")
}

func (r *appreciationRepository) queryOne(ctx context.Context, query, metric, city, neighborhood string) (*float64, error) {
	var value sql.NullFloat64
	err := r.db.DB.QueryRowContext(ctx, query,
		metric,
		historicalPropertyType,
		minHomesSoldThreshold,
		city,
		neighborhood,
	).Scan(&value)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query historical metric %q for %q: %w", metric, neighborhood, err)
	}
	if !value.Valid {
		return nil, nil
	}
	v := value.Float64
	return &v, nil
}
