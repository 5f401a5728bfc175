package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/stwalsh4118/dealsheet/internal/errors"
	"github.com/stwalsh4118/dealsheet/internal/finance"
	"github.com/stwalsh4118/dealsheet/internal/logger"
	"github.com/stwalsh4118/dealsheet/internal/models"
	"github.com/stwalsh4118/dealsheet/internal/parse"
	"github.com/stwalsh4118/dealsheet/internal/repository"
)

// Analysis is the full result of one run: the resolved inputs alongside every
// computed stage, ready for rendering.
type Analysis struct {
	RunID       string
	GeneratedAt time.Time

	Address      string
	Record       *models.PropertyRecord
	Params       models.EffectiveParameters
	Neighborhood string

	Appreciation models.AppreciationDecision
	Cashflow     models.CashflowResult
	Projection   models.ProjectionResult
	Score        models.ScoreResult
}

// Analyzer orchestrates one analysis run: listing lookup, field
// normalization, appreciation selection, and the financial calculations.
type Analyzer struct {
	listings repository.ListingRepository
	selector *AppreciationSelector
	log      *logger.Logger
	now      func() time.Time
}

// NewAnalyzer creates an Analyzer over the given listing repository and
// appreciation selector. The now function supplies the run timestamp and the
// reference year for age derivation; pass time.Now outside tests.
func NewAnalyzer(
	listings repository.ListingRepository,
	selector *AppreciationSelector,
	log *logger.Logger,
	now func() time.Time,
) *Analyzer {
	if now == nil {
		now = time.Now
	}
	return &Analyzer{
		listings: listings,
		selector: selector,
		log:      log,
		now:      now,
	}
}

// Analyze runs the full pipeline for one address with the given merged
// parameters. Returns ErrListingNotFound when no listing row exists, and
// ErrInvalidPurchasePrice when the row carries no usable price. Unparseable
// tax or rent fields degrade to defaults with a warning rather than failing
// the run.
func (a *Analyzer) Analyze(ctx context.Context, address string, p models.EffectiveParameters) (*Analysis, error) {
	runID := uuid.New().String()
	log := a.log.WithRunID(runID)
	now := a.now()

	log.Info("Starting analysis", map[string]interface{}{
		"address": address,
	})

	record, err := a.listings.FindByAddress(ctx, address)
	if err != nil {
		log.Error("Listing lookup failed", err, map[string]interface{}{
			"address": address,
		})
		return nil, fmt.Errorf("failed to look up listing: %w", err)
	}
	if record == nil {
		log.Warn("No listing for address", map[string]interface{}{
			"address": address,
		})
		return nil, apperrors.ErrListingNotFound
	}

	if record.Price == nil || *record.Price <= 0 {
		log.Warn("Listing has no usable price", map[string]interface{}{
			"address":    address,
			"listing_id": record.ID,
		})
		return nil, apperrors.ErrInvalidPurchasePrice
	}
	p.PurchasePrice = *record.Price

	// Listing data overrides the configured square footage and age when the
	// row carries usable values.
	if record.Sqft != nil {
		p.SquareFeet = *record.Sqft
	}
	if record.YearBuiltRaw != "" {
		age, ageErr := parse.PropertyAge(record.YearBuiltRaw, now)
		if ageErr != nil {
			log.Warn("Unparseable year built, keeping configured age", map[string]interface{}{
				"raw": record.YearBuiltRaw,
				"age": p.PropertyAge,
			})
		} else {
			p.PropertyAge = age
		}
	}

	if err := p.Validate(); err != nil {
		log.Error("Parameter validation failed", err, nil)
		return nil, err
	}

	// Tax and rent normalization is forgiving: a garbled string costs the
	// figure, not the run.
	var annualTax *float64
	if tax, taxErr := parse.AnnualTax(record.TaxRaw); taxErr != nil {
		log.Warn("Unparseable tax information, assuming zero", map[string]interface{}{
			"raw": record.TaxRaw,
		})
	} else {
		annualTax = &tax
	}

	grossRent := 0.0
	if rent, rentErr := parse.MonthlyRent(record.RentRaw); rentErr != nil {
		log.Warn("Unparseable estimated rent, assuming zero", map[string]interface{}{
			"raw": record.RentRaw,
		})
	} else {
		grossRent = rent
	}

	var capexModel finance.CapexModel
	if p.UseDynamicCapex {
		capexModel = finance.ComponentCapex{}
	} else {
		capexModel = finance.PercentOfPriceCapex{AnnualPercent: p.CapexPercent}
	}

	cashflow := finance.ComputeCashflow(p, grossRent, annualTax, capexModel)

	neighborhood := a.selector.ResolveNeighborhood(p, record)
	appreciation := a.selector.Select(ctx, p, neighborhood)

	projection := finance.Project(p, appreciation.RatePercent, cashflow.NetMonthly)
	score := finance.Score(cashflow, projection)

	log.Info("Analysis complete", map[string]interface{}{
		"address":       address,
		"net_monthly":   cashflow.NetMonthly,
		"overall_score": score.Overall,
		"rate_source":   appreciation.Source,
	})

	return &Analysis{
		RunID:        runID,
		GeneratedAt:  now,
		Address:      address,
		Record:       record,
		Params:       p,
		Neighborhood: neighborhood,
		Appreciation: appreciation,
		Cashflow:     cashflow,
		Projection:   projection,
		Score:        score,
	}, nil
}
