package services

import (
	"context"
	"strings"
)

// MarketDataSource fetches a recent annualized appreciation rate for a
// neighborhood from an external market-data provider.
type MarketDataSource interface {
	// FiveYearAverage returns the five-year average annual appreciation rate
	// (percent) for the given neighborhood.
	// Returns nil, nil when the provider has no data for the neighborhood.
	// Returns error only for provider failures.
	FiveYearAverage(ctx context.Context, neighborhood string) (*float64, error)
}

// denverFiveYearAverages holds five-year average annual appreciation rates
// (percent) by neighborhood, from the bundled Denver market snapshot. Keys
// use the same underscore convention as the neighborhood config table.
var denverFiveYearAverages = map[string]float64{
	"five_points":  6.8,
	"highland":     6.2,
	"cherry_creek": 5.9,
	"wash_park":    6.5,
	"stapleton":    5.7,
	"lodo":         6.0,
	"downtown":     5.8,
	"capitol_hill": 5.6,
	"baker":        5.5,
	"city_park":    6.1,
}

// staticMarketDataSource serves rates from the bundled snapshot table. It
// stands in for a live provider integration and keeps runs deterministic.
type staticMarketDataSource struct{}

// NewStaticMarketDataSource creates a MarketDataSource backed by the bundled
// Denver snapshot.
func NewStaticMarketDataSource() MarketDataSource {
	return staticMarketDataSource{}
}

// FiveYearAverage looks up the snapshot table by normalized neighborhood key.
func (staticMarketDataSource) FiveYearAverage(_ context.Context, neighborhood string) (*float64, error) {
	key := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(neighborhood)), " ", "_")
	if rate, ok := denverFiveYearAverages[key]; ok {
		v := rate
		return &v, nil
	}
	return nil, nil
}
