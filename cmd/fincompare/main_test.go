package main

import (
	"bytes"
	"strings"
	"testing"

	"FinCompare/internal/domain/models"
	"FinCompare/internal/services/presentation"

	"github.com/charmbracelet/glamour"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteCompanies(t *testing.T) {
	var buf bytes.Buffer
	writeCompanies(&buf, []models.SelectedCompany{{Symbol: "AAPL", Name: "Apple Inc.", ExchangeShortName: "NASDAQ", Currency: "USD"}})
	out := buf.String()
	assert.Contains(t, out, "SYMBOL")
	assert.Contains(t, out, "Apple Inc.")

	buf.Reset()
	writeCompanies(&buf, nil)
	assert.Equal(t, "No companies found.\n", buf.String())
}

func TestWriteSnapshots(t *testing.T) {
	var buf bytes.Buffer
	writeSnapshots(&buf, []models.RatioSnapshot{{
		CalendarYear: "2023",
		Period:       "FY",
		CurrentRatio: models.Text("1.5abc"),
	}})
	out := buf.String()
	assert.Contains(t, out, "CR")
	assert.Contains(t, out, "1.50")
	assert.Contains(t, out, presentation.NotAvailable)
}

func TestWriteComparison(t *testing.T) {
	rows := []models.ComparisonRow{
		{Year: 2023, CompanyA: models.Some(2.5), CompanyB: models.Some(0.8), CompanyAName: "AAPL", CompanyBName: "MSFT"},
		{Year: 2022, CompanyA: models.Some(2.0), CompanyB: models.Absent(), CompanyAName: "AAPL", CompanyBName: "MSFT"},
	}
	c := &models.Comparison{
		Render:   true,
		Ratios:   []models.RatioComparison{presentation.Build(models.CurrentRatio, rows)},
		Warnings: []models.Warning{{Code: models.WarnNoData, Symbol: "XYZ", Detail: "no data"}},
	}

	var buf bytes.Buffer
	writeComparison(&buf, c)
	out := buf.String()
	assert.Contains(t, out, "warning [NO_DATA] XYZ")
	assert.Contains(t, out, "Current Ratio (CR)")
	assert.Contains(t, out, "2023: 2.50 [good]")
	assert.Contains(t, out, "2022: N/A [unavailable]")
	assert.Contains(t, out, "up")

	buf.Reset()
	writeComparison(&buf, &models.Comparison{})
	assert.Equal(t, presentation.EmptyMessage+"\n", buf.String())
}

func TestWriteDescriptions(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeDescriptions(&buf, presentation.NewDescriber(), []string{"pe"}, nil))
	assert.True(t, strings.HasPrefix(buf.String(), "# "))

	r, err := glamour.NewTermRenderer(glamour.WithStandardStyle("notty"), glamour.WithWordWrap(60))
	require.NoError(t, err)
	buf.Reset()
	require.NoError(t, writeDescriptions(&buf, presentation.NewDescriber(), []string{"ROE"}, r.Render))
	assert.Contains(t, buf.String(), "Return on Equity")

	err = writeDescriptions(&buf, presentation.NewDescriber(), []string{"XX"}, nil)
	assert.ErrorIs(t, err, presentation.ErrNoDescription)
}
