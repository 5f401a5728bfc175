package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/pflag"

	"github.com/stwalsh4118/dealsheet/internal/config"
	"github.com/stwalsh4118/dealsheet/internal/database"
	apperrors "github.com/stwalsh4118/dealsheet/internal/errors"
	"github.com/stwalsh4118/dealsheet/internal/logger"
	"github.com/stwalsh4118/dealsheet/internal/report"
	"github.com/stwalsh4118/dealsheet/internal/repository"
	"github.com/stwalsh4118/dealsheet/internal/services"
)

func main() {
	os.Exit(run())
}

func run() int {
	flags := pflag.NewFlagSet("analyzer", pflag.ExitOnError)
	config.RegisterFlags(flags)
	if err := flags.Parse(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to parse flags: %v\n", err)
		return 1
	}

	// The guide needs no config, database, or address.
	if guide, _ := flags.GetBool("capex-guide"); guide {
		fmt.Print(report.CapexGuide())
		return 0
	}

	cfg, err := config.Load(flags)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		return 1
	}

	if cfg.Address == "" {
		fmt.Fprintln(os.Stderr, "Missing required flag --address")
		return 1
	}

	log := logger.New(cfg.Verbose)
	log.Debug("Configuration resolved", map[string]interface{}{
		"address":            cfg.Address,
		"db_path":            cfg.DBPath,
		"historical_db_path": cfg.HistoricalDBPath,
		"config_path":        cfg.ConfigPath,
		"dynamic_capex":      cfg.Params.UseDynamicCapex,
	})

	ctx := context.Background()

	db, err := database.Open(ctx, cfg.DBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open listings database %s: %v\n", cfg.DBPath, err)
		return 1
	}
	defer db.Close()

	// The historical database is optional: without it the selector simply
	// skips the historical tier.
	var historicalRepo repository.AppreciationRepository
	historicalDB, err := database.Open(ctx, cfg.HistoricalDBPath)
	if err != nil {
		log.Warn("Historical database unavailable, skipping historical lookups", map[string]interface{}{
			"path":  cfg.HistoricalDBPath,
			"error": err.Error(),
		})
	} else {
		defer historicalDB.Close()
		historicalRepo = repository.NewAppreciationRepository(historicalDB)
	}

	listings := repository.NewListingRepository(db)
	selector := services.NewAppreciationSelector(historicalRepo, services.NewStaticMarketDataSource(), cfg.Tables, log)
	analyzer := services.NewAnalyzer(listings, selector, log, time.Now)

	analysis, err := analyzer.Analyze(ctx, cfg.Address, cfg.Params)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrListingNotFound):
			fmt.Fprintf(os.Stderr, "No listing found for address %q in %s\n", cfg.Address, cfg.DBPath)
		case errors.Is(err, apperrors.ErrInvalidPurchasePrice):
			fmt.Fprintf(os.Stderr, "Listing for %q has no usable purchase price\n", cfg.Address)
		default:
			fmt.Fprintf(os.Stderr, "Analysis failed: %v\n", err)
		}
		return 1
	}

	fmt.Print(report.Render(analysis))
	return 0
}
