package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stwalsh4118/dealsheet/internal/logger"
	"github.com/stwalsh4118/dealsheet/internal/models"
)

// MockAppreciationRepository is a mock implementation of AppreciationRepository for testing
type MockAppreciationRepository struct {
	mock.Mock
}

func (m *MockAppreciationRepository) LatestMetric(ctx context.Context, metric, city, neighborhood string) (*float64, error) {
	args := m.Called(ctx, metric, city, neighborhood)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	rate, ok := args.Get(0).(*float64)
	if !ok {
		return nil, args.Error(1)
	}
	return rate, args.Error(1)
}

func testTables() models.MarketTables {
	return models.MarketTables{
		Neighborhoods: map[string]models.NeighborhoodInfo{
			"five_points": {ShortTermOutlook: "strong", LongTermOutlook: "very_strong", HistoricalAppreciation: 6.8},
			"baker":       {ShortTermOutlook: "moderate", LongTermOutlook: "moderate", HistoricalAppreciation: 5.5},
			"denver":      {ShortTermOutlook: "moderate", LongTermOutlook: "strong", HistoricalAppreciation: 5.2},
			"default":     {ShortTermOutlook: "moderate", LongTermOutlook: "moderate", HistoricalAppreciation: 4.0},
		},
		ZipToNeighborhood: map[string]string{
			"80205": "five_points",
			"80223": "baker",
		},
	}
}

func testParams() models.EffectiveParameters {
	return models.EffectiveParameters{
		HistoricalMetric: "median_sale_price_5_year_cagr_appreciation",
		TargetCity:       "Denver",
	}
}

func TestSelect_ManualOverrideDominates(t *testing.T) {
	// Arrange
	mockRepo := new(MockAppreciationRepository)
	log := logger.New(false)
	selector := NewAppreciationSelector(mockRepo, NewStaticMarketDataSource(), testTables(), log)

	p := testParams()
	override := 9.9
	p.AppreciationOverride = &override
	p.FetchRealAppreciation = true

	// Act
	decision := selector.Select(context.Background(), p, "five_points")

	// Assert: no other source is consulted once an override is set.
	assert.Equal(t, 9.9, decision.RatePercent)
	assert.Equal(t, SourceManualOverride, decision.Source)
	assert.Equal(t, models.OutlookManualOverride, decision.Outlook)
	assert.Equal(t, RankManualOverride, decision.Rank)
	mockRepo.AssertNotCalled(t, "LatestMetric", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestSelect_HistoricalDatabaseWins(t *testing.T) {
	// Arrange
	mockRepo := new(MockAppreciationRepository)
	log := logger.New(false)
	selector := NewAppreciationSelector(mockRepo, NewStaticMarketDataSource(), testTables(), log)

	p := testParams()
	rate := 6.069
	mockRepo.On("LatestMetric", mock.Anything, p.HistoricalMetric, p.TargetCity, "five_points").Return(&rate, nil)

	// Act
	decision := selector.Select(context.Background(), p, "five_points")

	// Assert
	assert.Equal(t, 6.069, decision.RatePercent)
	assert.Equal(t, SourceHistoricalDB, decision.Source)
	assert.Equal(t, models.OutlookVeryStrong, decision.Outlook)
	assert.Equal(t, RankHistoricalDB, decision.Rank)
	mockRepo.AssertExpectations(t)
}

func TestSelect_HistoricalErrorFallsThrough(t *testing.T) {
	// Arrange: a failing historical lookup degrades, it does not abort.
	mockRepo := new(MockAppreciationRepository)
	log := logger.New(false)
	selector := NewAppreciationSelector(mockRepo, NewStaticMarketDataSource(), testTables(), log)

	p := testParams()
	mockRepo.On("LatestMetric", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil, assert.AnError)

	// Act
	decision := selector.Select(context.Background(), p, "baker")

	// Assert
	assert.Equal(t, SourceStaticTable, decision.Source)
	assert.Equal(t, 5.5, decision.RatePercent)
}

func TestSelect_MarketDataWhenRequested(t *testing.T) {
	// Arrange
	mockRepo := new(MockAppreciationRepository)
	log := logger.New(false)
	selector := NewAppreciationSelector(mockRepo, NewStaticMarketDataSource(), testTables(), log)

	p := testParams()
	p.FetchRealAppreciation = true
	mockRepo.On("LatestMetric", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil, nil)

	// Act
	decision := selector.Select(context.Background(), p, "wash_park")

	// Assert
	assert.Equal(t, SourceMarketData, decision.Source)
	assert.Equal(t, 6.5, decision.RatePercent)
	assert.Equal(t, models.OutlookVeryStrong, decision.Outlook)
	assert.Equal(t, RankMarketData, decision.Rank)
}

func TestSelect_MarketDataSkippedWithoutFlag(t *testing.T) {
	// Arrange
	mockRepo := new(MockAppreciationRepository)
	log := logger.New(false)
	selector := NewAppreciationSelector(mockRepo, NewStaticMarketDataSource(), testTables(), log)

	p := testParams()
	mockRepo.On("LatestMetric", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil, nil)

	// Act
	decision := selector.Select(context.Background(), p, "five_points")

	// Assert: with the fetch flag off, the chain skips straight to the table.
	assert.Equal(t, SourceStaticTable, decision.Source)
	assert.Equal(t, 6.8, decision.RatePercent)
	assert.Equal(t, models.Outlook("very_strong"), decision.Outlook)
}

func TestSelect_UnmappedNeighborhoodUsesDefaultEntry(t *testing.T) {
	// Arrange
	log := logger.New(false)
	selector := NewAppreciationSelector(nil, NewStaticMarketDataSource(), testTables(), log)

	// Act
	decision := selector.Select(context.Background(), testParams(), "nowhere_special")

	// Assert
	assert.Equal(t, SourceStaticTable, decision.Source)
	assert.Equal(t, 4.0, decision.RatePercent)
}

func TestSelect_GlobalFallbackWhenNoTableEntries(t *testing.T) {
	// Arrange
	log := logger.New(false)
	selector := NewAppreciationSelector(nil, nil, models.MarketTables{}, log)

	// Act
	decision := selector.Select(context.Background(), testParams(), "anywhere")

	// Assert
	assert.Equal(t, 0.0, decision.RatePercent)
	assert.Equal(t, models.OutlookUnknown, decision.Outlook)
	assert.Equal(t, SourceGlobalFallback, decision.Source)
	assert.Equal(t, RankGlobalFallback, decision.Rank)
}

func TestResolveNeighborhood(t *testing.T) {
	log := logger.New(false)
	selector := NewAppreciationSelector(nil, nil, testTables(), log)

	tests := []struct {
		name     string
		param    string
		record   *models.PropertyRecord
		expected string
	}{
		{"explicit parameter wins", "cherry_creek", &models.PropertyRecord{Zip: "80205"}, "cherry_creek"},
		{"zip maps through table", "", &models.PropertyRecord{Zip: "80223", City: "Denver"}, "baker"},
		{"unmapped zip falls to city bucket", "", &models.PropertyRecord{Zip: "99999", City: "Denver"}, "denver"},
		{"unknown zip and city use default", "", &models.PropertyRecord{Zip: "99999", City: "Elsewhere"}, "default"},
		{"nil record uses default", "", nil, "default"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := testParams()
			p.Neighborhood = tt.param
			assert.Equal(t, tt.expected, selector.ResolveNeighborhood(p, tt.record))
		})
	}
}
