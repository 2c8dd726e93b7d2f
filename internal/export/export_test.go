package export_test

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"adsight/internal/export"
	"adsight/internal/reports"
)

func sampleTable() reports.Table {
	return reports.Table{
		Fields:  []reports.Field{reports.FieldCampaignName, reports.FieldCost, reports.FieldClicks},
		Headers: []string{"Campaign Name", "Spend", "Clicks"},
		Records: [][]any{
			{"Spring, Sale", 14.5, int64(7)},
			{"Summer", 0.0, int64(0)},
		},
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, export.WriteCSV(&buf, sampleTable()))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Campaign Name", "Spend", "Clicks"}, rows[0])
	assert.Equal(t, []string{"Spring, Sale", "14.5", "7"}, rows[1])
	assert.Equal(t, []string{"Summer", "0", "0"}, rows[2])
}

func TestWriteCSVEmptyTable(t *testing.T) {
	var buf bytes.Buffer
	table := reports.BuildTable(nil, reports.BusinessDailyFields)
	require.NoError(t, export.WriteCSV(&buf, table))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 1)

	back := reports.Table{Headers: rows[0]}
	fields, err := back.CanonicalFields()
	require.NoError(t, err)
	assert.Equal(t, reports.BusinessDailyFields, fields)
}

func TestWriteXLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, export.WriteXLSX(&buf, "Campaigns Report", sampleTable()))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Campaigns Report"}, f.GetSheetList())

	rows, err := f.GetRows("Campaigns Report")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Campaign Name", "Spend", "Clicks"}, rows[0])
	assert.Equal(t, "Spring, Sale", rows[1][0])
	assert.Equal(t, "14.5", rows[1][1])
	assert.Equal(t, "7", rows[1][2])
}

func TestParseFormat(t *testing.T) {
	f, err := export.ParseFormat("CSV")
	require.NoError(t, err)
	assert.Equal(t, export.FormatCSV, f)
	assert.Equal(t, "csv", f.Extension())

	f, err = export.ParseFormat("excel")
	require.NoError(t, err)
	assert.Equal(t, "xlsx", f.Extension())
	assert.Contains(t, f.ContentType(), "spreadsheetml")

	_, err = export.ParseFormat("pdf")
	assert.ErrorIs(t, err, export.ErrUnknownFormat)

	var buf bytes.Buffer
	assert.ErrorIs(t, export.Write(&buf, "pdf", "", sampleTable()), export.ErrUnknownFormat)
}

func TestNaming(t *testing.T) {
	now := time.Date(2024, 1, 31, 15, 45, 0, 0, time.UTC)

	assert.Equal(t, "amazon_keywords_report_20240131_154500.csv",
		export.Filename(export.AdsPrefix(reports.ReportKeywords), export.FormatCSV, now))
	assert.Equal(t, "business_reports_20240131_154500.xlsx",
		export.Filename(export.BusinessPrefix, export.FormatExcel, now))
	assert.Equal(t, "Campaigns Report", export.AdsSheet(reports.ReportCampaigns))
}
