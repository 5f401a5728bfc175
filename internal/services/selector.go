package services

import (
	"context"

	"github.com/stwalsh4118/dealsheet/internal/logger"
	"github.com/stwalsh4118/dealsheet/internal/models"
	"github.com/stwalsh4118/dealsheet/internal/repository"
)

// Appreciation source labels, in precedence order. The rank constants match:
// a lower rank always beats a higher one, and exactly one source wins per run.
const (
	SourceManualOverride = "CLI Manual Rate Override"
	SourceHistoricalDB   = "Historical Sales Database"
	SourceMarketData     = "Live Market Data (5-Year Average)"
	SourceStaticTable    = "Static Neighborhood Table"
	SourceGlobalFallback = "Global Fallback (No Data)"

	RankManualOverride = 1
	RankHistoricalDB   = 2
	RankMarketData     = 3
	RankStaticTable    = 4
	RankGlobalFallback = 5
)

// AppreciationSelector resolves the annual appreciation rate for a run by
// walking a fixed precedence chain of sources. Selection never fails: every
// miss is logged and the chain falls through, bottoming out at a global
// fallback of 0%.
type AppreciationSelector struct {
	historical repository.AppreciationRepository
	market     MarketDataSource
	tables     models.MarketTables
	log        *logger.Logger
}

// NewAppreciationSelector creates a selector over the given sources. The
// historical repository may be nil when no historical database is attached;
// that tier is then skipped.
func NewAppreciationSelector(
	historical repository.AppreciationRepository,
	market MarketDataSource,
	tables models.MarketTables,
	log *logger.Logger,
) *AppreciationSelector {
	return &AppreciationSelector{
		historical: historical,
		market:     market,
		tables:     tables,
		log:        log,
	}
}

// ResolveNeighborhood determines the neighborhood key for a run: an explicit
// parameter wins, otherwise the listing's zip maps through the static table,
// with city and default fallbacks. Never fails.
func (s *AppreciationSelector) ResolveNeighborhood(p models.EffectiveParameters, record *models.PropertyRecord) string {
	if p.Neighborhood != "" {
		return p.Neighborhood
	}
	zip, city := "", ""
	if record != nil {
		zip, city = record.Zip, record.City
	}
	key := s.tables.NeighborhoodForZip(zip, city)
	s.log.Debug("Resolved neighborhood from listing location", map[string]interface{}{
		"zip":          zip,
		"city":         city,
		"neighborhood": key,
	})
	return key
}

// Select walks the precedence chain and returns the winning appreciation
// decision: manual override, then historical database, then live market data,
// then the static neighborhood table, then the global fallback.
func (s *AppreciationSelector) Select(ctx context.Context, p models.EffectiveParameters, neighborhood string) models.AppreciationDecision {
	// Tier 1: a manual override is terminal. No other source is consulted.
	if p.AppreciationOverride != nil {
		decision := models.AppreciationDecision{
			RatePercent: *p.AppreciationOverride,
			Outlook:     models.OutlookManualOverride,
			Source:      SourceManualOverride,
			Rank:        RankManualOverride,
		}
		s.log.Info("Appreciation rate set by manual override", map[string]interface{}{
			"rate_percent": decision.RatePercent,
		})
		return decision
	}

	// Tier 2: latest qualifying row from the historical sales database.
	if s.historical != nil {
		rate, err := s.historical.LatestMetric(ctx, p.HistoricalMetric, p.TargetCity, neighborhood)
		if err != nil {
			s.log.Warn("Historical appreciation lookup failed", map[string]interface{}{
				"metric":       p.HistoricalMetric,
				"city":         p.TargetCity,
				"neighborhood": neighborhood,
				"error":        err.Error(),
			})
		} else if rate != nil {
			decision := models.AppreciationDecision{
				RatePercent: *rate,
				Outlook:     models.OutlookForRate(*rate),
				Source:      SourceHistoricalDB,
				Rank:        RankHistoricalDB,
			}
			s.log.Info("Appreciation rate from historical database", map[string]interface{}{
				"metric":       p.HistoricalMetric,
				"neighborhood": neighborhood,
				"rate_percent": decision.RatePercent,
			})
			return decision
		} else {
			s.log.Debug("No qualifying historical rows", map[string]interface{}{
				"metric":       p.HistoricalMetric,
				"city":         p.TargetCity,
				"neighborhood": neighborhood,
			})
		}
	}

	// Tier 3: live market data, only when explicitly requested.
	if p.FetchRealAppreciation && s.market != nil {
		rate, err := s.market.FiveYearAverage(ctx, neighborhood)
		if err != nil {
			s.log.Warn("Market data fetch failed", map[string]interface{}{
				"neighborhood": neighborhood,
				"error":        err.Error(),
			})
		} else if rate != nil {
			decision := models.AppreciationDecision{
				RatePercent: *rate,
				Outlook:     models.OutlookForRate(*rate),
				Source:      SourceMarketData,
				Rank:        RankMarketData,
			}
			s.log.Info("Appreciation rate from market data", map[string]interface{}{
				"neighborhood": neighborhood,
				"rate_percent": decision.RatePercent,
			})
			return decision
		} else {
			s.log.Debug("Market data has no entry for neighborhood", map[string]interface{}{
				"neighborhood": neighborhood,
			})
		}
	}

	// Tier 4: the static neighborhood table, with its default entry as the
	// catch-all for unmapped neighborhoods.
	if info, ok := s.tables.Lookup(neighborhood); ok {
		decision := models.AppreciationDecision{
			RatePercent: info.HistoricalAppreciation,
			Outlook:     models.Outlook(info.LongTermOutlook),
			Source:      SourceStaticTable,
			Rank:        RankStaticTable,
		}
		if decision.Outlook == "" {
			decision.Outlook = models.OutlookForRate(decision.RatePercent)
		}
		s.log.Info("Appreciation rate from static neighborhood table", map[string]interface{}{
			"neighborhood": neighborhood,
			"rate_percent": decision.RatePercent,
		})
		return decision
	}

	// Tier 5: nothing matched anywhere, including no default table entry.
	s.log.Warn("No appreciation data from any source, assuming 0%", map[string]interface{}{
		"neighborhood": neighborhood,
	})
	return models.AppreciationDecision{
		RatePercent: 0.0,
		Outlook:     models.OutlookUnknown,
		Source:      SourceGlobalFallback,
		Rank:        RankGlobalFallback,
	}
}
