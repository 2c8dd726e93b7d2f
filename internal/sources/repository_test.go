package sources_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"adsight/internal/kpi"
	"adsight/internal/sources"
	"adsight/internal/testsupport"
	"adsight/internal/timeframe"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestRepositoryFetchAdsDataset(t *testing.T) {
	db := testsupport.SetupTestDB(t)
	repo := sources.NewRepository(db, testsupport.GetLogger())
	ctx := context.Background()

	t.Run("Empty table is an empty dataset", func(t *testing.T) {
		records, err := repo.FetchAdsDataset(ctx)
		require.NoError(t, err)
		assert.Empty(t, records)
	})

	t.Run("Rows are normalized", func(t *testing.T) {
		require.NoError(t, db.Create(&[]sources.AdsReport{
			{ReportDate: day(2024, 1, 1), SearchTerm: "shoe", KeywordInfo: "shoes", CampaignName: "Spring", Cost: 100, Clicks: 50, Impressions: 1000, Sales1d: 200, Purchases1d: 5},
			{ReportDate: day(2024, 1, 9), SearchTerm: "boot", CampaignName: "Winter", Cost: 5, Clicks: 1, Impressions: 10},
		}).Error)

		records, err := repo.FetchAdsDataset(ctx)
		require.NoError(t, err)
		require.Len(t, records, 2)

		assert.Equal(t, day(2024, 1, 1), records[0].Date)
		assert.Equal(t, "shoe", records[0].SearchTerm)
		assert.Equal(t, "shoes", records[0].Keyword)
		assert.Equal(t, 100.0, records[0].Cost)
		assert.Equal(t, int64(5), records[0].Purchases1d)
		assert.Equal(t, day(2024, 1, 8), records[1].WeekStart())
	})
}

func TestRepositoryBusinessDataset(t *testing.T) {
	db := testsupport.SetupTestDB(t)
	repo := sources.NewRepository(db, testsupport.GetLogger())
	ctx := context.Background()

	require.NoError(t, db.Create(&[]sources.SalesTraffic{
		{Date: day(2024, 2, 28), SKU: "A", ParentASIN: "P1", Sessions: 10, PageViews: 20, UnitsOrdered: 2, OrderedProductSales: "$1,000.50"},
		{Date: day(2024, 2, 29), SKU: "B", ParentASIN: "P1", Sessions: 5, PageViews: 10, UnitsOrdered: 1, OrderedProductSales: "₹250"},
		{Date: day(2024, 3, 1), SKU: "A", ParentASIN: "P1", Sessions: 1, PageViews: 2, UnitsOrdered: 0, OrderedProductSales: "49.5"},
	}).Error)

	records, err := repo.FetchBusinessDataset(ctx)
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, 1000.5, records[0].OrderedProductSales)
	assert.Equal(t, 250.0, records[1].OrderedProductSales)

	testCases := []struct {
		name     string
		from, to *time.Time
		expected float64
	}{
		{"Open range", nil, nil, 1300.0},
		{"Single day", ptr(day(2024, 2, 29)), ptr(day(2024, 2, 29)), 250.0},
		{"Leap month", ptr(day(2024, 2, 1)), ptr(day(2024, 2, 29)), 1250.5},
		{"Only lower bound", ptr(day(2024, 3, 1)), nil, 49.5},
		{"Only upper bound", nil, ptr(day(2024, 2, 28)), 1000.5},
		{"No rows in range", ptr(day(2025, 1, 1)), ptr(day(2025, 1, 31)), 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			total, err := repo.SumBusinessSales(ctx, tc.from, tc.to)
			require.NoError(t, err)
			assert.InDelta(t, tc.expected, total, 0.001)
		})
	}

	total, err := repo.SumBusinessSalesInSpan(ctx, timeframe.BucketSpan(day(2024, 2, 26), timeframe.GranularityWeekly))
	require.NoError(t, err)
	assert.InDelta(t, 1300.0, total, 0.001)

	counts, err := repo.CountRows(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), counts[sources.BusinessTable])
	assert.Equal(t, int64(0), counts[sources.AdsTable])
}

func TestSumBusinessSalesMatchesNormalizedTotals(t *testing.T) {
	db := testsupport.SetupTestDB(t)
	repo := sources.NewRepository(db, testsupport.GetLogger())
	ctx := context.Background()

	require.NoError(t, db.Create(&[]sources.SalesTraffic{
		{Date: day(2024, 4, 2), SKU: "A", ParentASIN: "P1", OrderedProductSales: "INR 1,200"},
		{Date: day(2024, 4, 2), SKU: "B", ParentASIN: "P1", OrderedProductSales: "(12.50)"},
		{Date: day(2024, 4, 2), SKU: "C", ParentASIN: "P2", OrderedProductSales: "€300"},
		{Date: day(2024, 4, 2), SKU: "D", ParentASIN: "P2", OrderedProductSales: "n/a"},
		{Date: day(2024, 4, 3), SKU: "A", ParentASIN: "P1", OrderedProductSales: "$ 99.99"},
	}).Error)

	records, err := repo.FetchBusinessDataset(ctx)
	require.NoError(t, err)
	expected := kpi.CalculateBusiness(records).TotalSales
	assert.InDelta(t, 1587.49, expected, 0.001)

	total, err := repo.SumBusinessSales(ctx, nil, nil)
	require.NoError(t, err)
	assert.InDelta(t, expected, total, 0.001)

	oneDay, err := repo.SumBusinessSales(ctx, ptr(day(2024, 4, 2)), ptr(day(2024, 4, 2)))
	require.NoError(t, err)
	assert.InDelta(t, 1487.5, oneDay, 0.001)
}

func TestRepositoryMissingTable(t *testing.T) {
	db := testsupport.SetupTestDB(t)
	require.NoError(t, db.Migrator().DropTable(&sources.SalesTraffic{}))
	repo := sources.NewRepository(db, testsupport.GetLogger())

	records, err := repo.FetchBusinessDataset(context.Background())
	require.NoError(t, err)
	assert.Empty(t, records)

	total, err := repo.SumBusinessSales(context.Background(), nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 0.0, total)
}

func TestRepositoryWithoutConnection(t *testing.T) {
	repo := sources.NewRepository(nil, nil)

	_, err := repo.FetchAdsDataset(context.Background())
	assert.ErrorIs(t, err, sources.ErrNoConnection)

	_, err = repo.SumBusinessSales(context.Background(), nil, nil)
	assert.ErrorIs(t, err, sources.ErrNoConnection)

	_, err = repo.FetchDataset(context.Background())
	assert.ErrorIs(t, err, sources.ErrNoConnection)
}

func ptr(t time.Time) *time.Time {
	return &t
}
