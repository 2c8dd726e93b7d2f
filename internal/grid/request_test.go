package grid_test

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"adsight/internal/grid"
	"adsight/internal/reports"
	"adsight/internal/timeframe"
)

func TestParseRequest(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		req, err := grid.ParseRequest(url.Values{}, 0)
		require.NoError(t, err)
		assert.Equal(t, 1, req.Draw)
		assert.Equal(t, 0, req.Start)
		assert.Equal(t, grid.DefaultPageSize, req.Length)
		assert.Equal(t, -1, req.OrderColumn)
		assert.Equal(t, grid.DirAsc, req.OrderDir)
		assert.Equal(t, reports.ReportKeywords, req.ReportType)
		assert.True(t, req.Filters.Range.IsZero())
	})

	t.Run("Widget parameters", func(t *testing.T) {
		values := url.Values{}
		values.Set("draw", "3")
		values.Set("start", "-4")
		values.Set("length", "-1")
		values.Set("search[value]", "  shoe ")
		values.Set("order[0][column]", "2")
		values.Set("order[0][dir]", "DESC")
		values.Set("report_type", "Campaigns")
		values.Add("campaigns[]", "Spring")
		values.Add("campaigns", "Summer")
		values.Add("campaigns", "")
		values.Set("start_date", "2024-01-01")
		values.Set("end_date", "2024-01-31")

		req, err := grid.ParseRequest(values, 10)
		require.NoError(t, err)
		assert.Equal(t, 3, req.Draw)
		assert.Equal(t, 0, req.Start)
		assert.Equal(t, -1, req.Length)
		assert.Equal(t, "shoe", req.Search)
		assert.Equal(t, 2, req.OrderColumn)
		assert.True(t, req.Descending())
		assert.Equal(t, reports.ReportCampaigns, req.ReportType)
		assert.Equal(t, []string{"Spring", "Summer"}, req.Filters.Campaigns)
		require.NotNil(t, req.Filters.Range.From)
		from, to := req.Filters.Range.Format()
		assert.Equal(t, "2024-01-01", from)
		assert.Equal(t, "2024-01-31", to)
	})

	t.Run("Malformed values fall back", func(t *testing.T) {
		values := url.Values{}
		values.Set("draw", "x")
		values.Set("order[0][dir]", "sideways")
		values.Set("start_date", "not-a-date")
		values.Set("end_date", "2024-02-01")

		req, err := grid.ParseRequest(values, 5)
		assert.ErrorIs(t, err, timeframe.ErrMalformedDate)
		assert.Equal(t, 1, req.Draw)
		assert.Equal(t, 5, req.Length)
		assert.False(t, req.Descending())
		assert.Nil(t, req.Filters.Range.From)
		assert.NotNil(t, req.Filters.Range.To)
	})
}
