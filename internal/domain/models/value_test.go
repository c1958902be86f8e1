package models_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"FinCompare/internal/domain/models"
	"FinCompare/internal/services/comparison"
)

func TestRawValueUnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    models.RawValue
		coerced models.Value
	}{
		{"null", `null`, models.Missing(), models.Absent()},
		{"number", `1.25`, models.Number(1.25), models.Some(1.25)},
		{"negative number", `-3`, models.Number(-3), models.Some(-3)},
		{"text", `"0.75"`, models.Text("0.75"), models.Some(0.75)},
		{"bool", `true`, models.Missing(), models.Absent()},
		{"object", `{}`, models.Missing(), models.Absent()},
		{"array", `[]`, models.Missing(), models.Absent()},
		{"array with numbers", `[1,2]`, models.Missing(), models.Absent()},
		{"out of range number", `1e400`, models.Text("1e400"), models.Absent()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got models.RawValue
			require.NoError(t, json.Unmarshal([]byte(tt.in), &got))
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.coerced, comparison.Coerce(got))
		})
	}
}

func TestRatioSnapshotDecodesMixedFields(t *testing.T) {
	payload := `{"symbol":"AAPL","calendarYear":2023,"quickRatio":true,"returnOnAssets":1e400,
		"currentRatio":"1.5x","debtEquityRatio":{},"priceToBookRatio":[0.4]}`

	var s models.RatioSnapshot
	require.NoError(t, json.Unmarshal([]byte(payload), &s))

	assert.Equal(t, models.CalendarYear("2023"), s.CalendarYear)
	assert.Equal(t, models.RawMissing, s.QuickRatio.Kind())
	assert.Equal(t, models.RawText, s.ReturnOnAssets.Kind())
	assert.False(t, comparison.Coerce(s.ReturnOnAssets).Valid())
	assert.Equal(t, models.Some(1.5), comparison.Coerce(s.CurrentRatio))
	assert.Equal(t, models.RawMissing, s.DebtEquityRatio.Kind())
	assert.Equal(t, models.RawMissing, s.PriceToBookRatio.Kind())
	assert.Equal(t, models.RawMissing, s.PriceEarningsRatio.Kind())
}

func TestCalendarYearUnmarshalJSON(t *testing.T) {
	tests := []struct {
		in   string
		want models.CalendarYear
	}{
		{`"2023"`, "2023"},
		{`2023`, "2023"},
		{`2023.0`, "2023.0"},
		{`" 2022 "`, " 2022 "},
		{`null`, ""},
	}

	for _, tt := range tests {
		var y models.CalendarYear
		require.NoError(t, json.Unmarshal([]byte(tt.in), &y), tt.in)
		assert.Equal(t, tt.want, y, tt.in)
	}
}

func TestRatioSnapshotJSONRoundTrip(t *testing.T) {
	in := models.RatioSnapshot{
		Symbol:             "MSFT",
		CalendarYear:       "2022",
		Period:             "FY",
		CurrentRatio:       models.Number(1.78),
		QuickRatio:         models.Text("1.2abc"),
		ReturnOnEquity:     models.Missing(),
		ReturnOnAssets:     models.Text("1e400"),
		PriceEarningsRatio: models.Number(-4),
	}

	b, err := json.Marshal([]models.RatioSnapshot{in})
	require.NoError(t, err)

	var out []models.RatioSnapshot
	require.NoError(t, json.Unmarshal(b, &out))
	require.Len(t, out, 1)
	assert.Equal(t, in, out[0])

	for _, key := range models.AllRatioKeys() {
		assert.Equal(t, comparison.Coerce(key.Field(&in)), comparison.Coerce(key.Field(&out[0])), string(key))
	}
}
