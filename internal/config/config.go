// Package config merges the three parameter layers of a run: script
// defaults, the JSON config file, and command-line flags, in ascending
// precedence. The merged result is validated once and read-only afterwards.
package config

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	apperrors "github.com/stwalsh4118/dealsheet/internal/errors"
	"github.com/stwalsh4118/dealsheet/internal/models"
)

// Default file locations, relative to the working directory.
const (
	DefaultDBPath           = "data/listings.db"
	DefaultHistoricalDBPath = "data/neighborhood_analysis.db"
	DefaultConfigPath       = "config/cashflow_config.json"
)

// Config holds the fully-resolved settings for one invocation.
type Config struct {
	Address          string
	DBPath           string
	HistoricalDBPath string
	ConfigPath       string
	Verbose          bool
	CapexGuide       bool

	Params models.EffectiveParameters
	Tables models.MarketTables
}

// RegisterFlags defines every command-line flag on the given flag set.
// Defaults here are placeholders; real precedence is resolved in Load, where
// only flags the user actually set override the config file.
func RegisterFlags(flags *pflag.FlagSet) {
	flags.String("address", "", "Full property address to analyze")
	flags.String("db-path", DefaultDBPath, "Path to the listings SQLite database")
	flags.String("config-path", DefaultConfigPath, "Path to the JSON config file")

	flags.Float64("down-payment", 0, "Down payment amount (dollars)")
	flags.Float64("rate", 0, "Annual interest rate (e.g. 5.5)")
	flags.Float64("insurance", 0, "Annual insurance cost")
	flags.Float64("misc-monthly", 0, "Miscellaneous monthly costs")

	flags.Int("loan-term", 30, "Loan term in years")
	flags.Float64("vacancy-rate", 5.0, "Vacancy rate (%)")
	flags.Float64("property-mgmt-fee", 0.0, "Property management fee (%)")
	flags.Float64("maintenance-percent", 1.0, "Annual maintenance (% of property value)")
	flags.Float64("capex-percent", 1.0, "Annual CapEx reserve (% of property value)")
	flags.Float64("utilities-monthly", 0.0, "Monthly utilities paid by landlord")
	flags.Int("property-age", 20, "Property age in years, used when the listing has no year built")
	flags.String("property-condition", "good", "Property condition: excellent, good, fair, or poor")
	flags.Float64("square-feet", 1400.0, "Square footage, used when the listing has none")

	flags.Bool("use-dynamic-capex", false, "Use component-based CapEx reserves")
	flags.Bool("capex-guide", false, "Print the CapEx reference guide and exit")
	flags.BoolP("verbose", "v", false, "Enable verbose debug output")

	flags.Float64("appreciation-rate", 0, "Manual annual appreciation rate (%), overrides every other source")
	flags.String("neighborhood", "", "Manual neighborhood override, auto-detected by ZIP when unset")
	flags.Int("investment-horizon", 5, "Investment holding period in years")
	flags.Bool("fetch-real-appreciation", false, "Consult live market data when no historical row exists")

	flags.String("historical-db-path", DefaultHistoricalDBPath, "Path to the historical appreciation database")
	flags.String("historical-metric", "median_sale_price_5_year_cagr_appreciation", "Metric name from the historical database to use")
	flags.String("target-city", "", "City for disambiguating neighborhoods in the historical database")
}

// flagBindings maps viper keys to flag names. Explicit bindings because flag
// names use dashes where config keys use underscores.
var flagBindings = map[string]string{
	"down_payment":            "down-payment",
	"rate":                    "rate",
	"insurance":               "insurance",
	"misc_monthly":            "misc-monthly",
	"loan_term":               "loan-term",
	"vacancy_rate":            "vacancy-rate",
	"property_mgmt_fee":       "property-mgmt-fee",
	"maintenance_percent":     "maintenance-percent",
	"capex_percent":           "capex-percent",
	"utilities_monthly":       "utilities-monthly",
	"property_age":            "property-age",
	"property_condition":      "property-condition",
	"square_feet":             "square-feet",
	"use_dynamic_capex":       "use-dynamic-capex",
	"neighborhood":            "neighborhood",
	"investment_horizon":      "investment-horizon",
	"fetch_real_appreciation": "fetch-real-appreciation",
	"use_historical_metric":   "historical-metric",
	"target_city":             "target-city",
}

// requiredKeys are the financial parameters with no sane script default. They
// must arrive via flag or config file or the run aborts.
var requiredKeys = []string{"down_payment", "rate", "insurance", "misc_monthly"}

// Load resolves the full configuration from the given parsed flag set. A
// missing config file is treated as empty; a malformed one is an error.
// Returns a MissingParameterError when a required financial parameter is
// absent from both the flags and the config file.
func Load(flags *pflag.FlagSet) (*Config, error) {
	configPath, _ := flags.GetString("config-path")

	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("json")

	setDefaults(v)

	for key, flagName := range flagBindings {
		if err := v.BindPFlag(key, flags.Lookup(flagName)); err != nil {
			return nil, fmt.Errorf("failed to bind flag %s: %w", flagName, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
		}
	}

	for _, key := range requiredKeys {
		if !flags.Changed(flagBindings[key]) && !v.InConfig(key) {
			return nil, apperrors.MissingParameter(key)
		}
	}

	cfg := &Config{
		ConfigPath: configPath,
		Params: models.EffectiveParameters{
			SquareFeet:             v.GetFloat64("square_feet"),
			PropertyAge:            v.GetInt("property_age"),
			Condition:              models.Condition(v.GetString("property_condition")),
			DownPayment:            v.GetFloat64("down_payment"),
			RatePercent:            v.GetFloat64("rate"),
			LoanTermYears:          v.GetInt("loan_term"),
			InsuranceAnnual:        v.GetFloat64("insurance"),
			MiscMonthly:            v.GetFloat64("misc_monthly"),
			UtilitiesMonthly:       v.GetFloat64("utilities_monthly"),
			VacancyRatePercent:     v.GetFloat64("vacancy_rate"),
			MgmtFeePercent:         v.GetFloat64("property_mgmt_fee"),
			MaintenancePercent:     v.GetFloat64("maintenance_percent"),
			CapexPercent:           v.GetFloat64("capex_percent"),
			UseDynamicCapex:        v.GetBool("use_dynamic_capex"),
			Neighborhood:           v.GetString("neighborhood"),
			InvestmentHorizonYears: v.GetInt("investment_horizon"),
			FetchRealAppreciation:  v.GetBool("fetch_real_appreciation"),
			HistoricalMetric:       v.GetString("use_historical_metric"),
			TargetCity:             v.GetString("target_city"),
		},
	}

	cfg.Address, _ = flags.GetString("address")
	cfg.DBPath, _ = flags.GetString("db-path")
	cfg.HistoricalDBPath, _ = flags.GetString("historical-db-path")
	cfg.Verbose, _ = flags.GetBool("verbose")
	cfg.CapexGuide, _ = flags.GetBool("capex-guide")

	// A manual appreciation rate only counts when the operator actually set
	// the flag; the flag's zero default is not an override.
	if flags.Changed("appreciation-rate") {
		rate, _ := flags.GetFloat64("appreciation-rate")
		cfg.Params.AppreciationOverride = &rate
	}

	if err := loadTables(v, &cfg.Tables); err != nil {
		return nil, err
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("loan_term", 30)
	v.SetDefault("vacancy_rate", 5.0)
	v.SetDefault("property_mgmt_fee", 0.0)
	v.SetDefault("maintenance_percent", 1.0)
	v.SetDefault("capex_percent", 1.0)
	v.SetDefault("utilities_monthly", 0.0)
	v.SetDefault("property_age", 20)
	v.SetDefault("property_condition", "good")
	v.SetDefault("square_feet", 1400.0)
	v.SetDefault("use_dynamic_capex", false)
	v.SetDefault("investment_horizon", 5)
	v.SetDefault("fetch_real_appreciation", false)
	v.SetDefault("use_historical_metric", "median_sale_price_5_year_cagr_appreciation")
}

// loadTables unmarshals the static neighborhood and zip lookup tables from
// the config file. Absent tables load as empty maps, which the selector
// treats as a miss.
func loadTables(v *viper.Viper, tables *models.MarketTables) error {
	tables.Neighborhoods = map[string]models.NeighborhoodInfo{}
	tables.ZipToNeighborhood = map[string]string{}

	if v.IsSet("neighborhood_appreciation_data") {
		if err := v.UnmarshalKey("neighborhood_appreciation_data", &tables.Neighborhoods); err != nil {
			return fmt.Errorf("malformed neighborhood_appreciation_data in config: %w", err)
		}
	}
	if v.IsSet("zip_to_neighborhood_mapping") {
		for zip, hood := range v.GetStringMapString("zip_to_neighborhood_mapping") {
			tables.ZipToNeighborhood[zip] = hood
		}
	}
	return nil
}
