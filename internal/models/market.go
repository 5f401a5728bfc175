package models

import "strings"

// Condition is the qualitative state of a property. It scales maintenance and
// CapEx reserves in dynamic mode.
type Condition string

const (
	ConditionPoor      Condition = "poor"
	ConditionFair      Condition = "fair"
	ConditionGood      Condition = "good"
	ConditionExcellent Condition = "excellent"
)

// Outlook is the qualitative market-direction label attached to an
// appreciation rate.
type Outlook string

const (
	OutlookVeryStrong     Outlook = "very_strong"
	OutlookStrong         Outlook = "strong"
	OutlookModerate       Outlook = "moderate"
	OutlookWeak           Outlook = "weak"
	OutlookManualOverride Outlook = "manual_override"
	OutlookUnknown        Outlook = "unknown"
)

// OutlookForRate derives an outlook label from an annual appreciation rate's
// sign and magnitude, used when a numeric source (historical DB, market data)
// carries no label of its own.
func OutlookForRate(ratePercent float64) Outlook {
	switch {
	case ratePercent >= 6:
		return OutlookVeryStrong
	case ratePercent >= 3:
		return OutlookStrong
	case ratePercent >= 1:
		return OutlookModerate
	default:
		return OutlookWeak
	}
}

// NeighborhoodInfo is one entry of the static neighborhood appreciation table
// from the JSON config.
type NeighborhoodInfo struct {
	ShortTermOutlook       string  `mapstructure:"short_term_outlook" json:"short_term_outlook"`
	LongTermOutlook        string  `mapstructure:"long_term_outlook" json:"long_term_outlook"`
	HistoricalAppreciation float64 `mapstructure:"historical_appreciation" json:"historical_appreciation"`
}

// MarketTables holds the static lookup tables loaded once at process start
// and treated as read-only for the remainder of execution.
type MarketTables struct {
	Neighborhoods     map[string]NeighborhoodInfo
	ZipToNeighborhood map[string]string
}

// DefaultNeighborhoodKey is the catch-all entry of the neighborhood table.
const DefaultNeighborhoodKey = "default"

// NeighborhoodForZip resolves a zip code to a neighborhood key. An unmapped
// zip falls back to the lower-cased city when the table carries a city-wide
// bucket, and otherwise to the default entry. Never fails.
func (t MarketTables) NeighborhoodForZip(zip, city string) string {
	if key, ok := t.ZipToNeighborhood[zip]; ok && key != "" {
		return key
	}
	cityKey := strings.ToLower(strings.TrimSpace(city))
	if _, ok := t.Neighborhoods[cityKey]; ok && cityKey != "" {
		return cityKey
	}
	return DefaultNeighborhoodKey
}

// Lookup returns the table entry for a neighborhood, falling back to the
// default entry when the neighborhood is unmapped. The second return reports
// whether any entry (including the default) was found.
func (t MarketTables) Lookup(neighborhood string) (NeighborhoodInfo, bool) {
	if info, ok := t.Neighborhoods[neighborhood]; ok {
		return info, true
	}
	// Config keys may use either underscores or spaces; try both spellings.
	lowered := strings.ToLower(neighborhood)
	if info, ok := t.Neighborhoods[strings.ReplaceAll(lowered, " ", "_")]; ok {
		return info, true
	}
	if info, ok := t.Neighborhoods[strings.ReplaceAll(lowered, "_", " ")]; ok {
		return info, true
	}
	info, ok := t.Neighborhoods[DefaultNeighborhoodKey]
	return info, ok
}

// AppreciationDecision records which appreciation rate won, where it came
// from, and at what precedence rank. Exactly one decision exists per run.
type AppreciationDecision struct {
	RatePercent float64
	Outlook     Outlook
	Source      string
	Rank        int
}
