package comparison

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"FinCompare/internal/domain/models"
)

func snap(symbol, year string, roa models.RawValue) models.RatioSnapshot {
	return models.RatioSnapshot{
		Symbol:         symbol,
		CalendarYear:   models.CalendarYear(year),
		Period:         "FY",
		ReturnOnAssets: roa,
	}
}

var (
	acme   = &models.SelectedCompany{Symbol: "ACME", Name: "Acme Corp"}
	globex = &models.SelectedCompany{Symbol: "GLBX", Name: "Globex"}
)

func TestReconcileEmptyInputs(t *testing.T) {
	rows := Reconcile(nil, nil, nil, nil, models.ReturnOnAssets)
	require.NotNil(t, rows)
	assert.Empty(t, rows)

	rows = Reconcile([]models.RatioSnapshot{}, []models.RatioSnapshot{}, acme, globex, models.CurrentRatio)
	assert.Empty(t, rows)
}

func TestReconcileMisalignedYears(t *testing.T) {
	a := []models.RatioSnapshot{
		snap("ACME", "2022", models.Number(0.08)),
		snap("ACME", "2023", models.Text("0.11")),
	}
	b := []models.RatioSnapshot{
		snap("GLBX", "2021", models.Number(0.02)),
		snap("GLBX", "2023", models.Number(0.05)),
	}

	rows := Reconcile(a, b, acme, globex, models.ReturnOnAssets)
	require.Len(t, rows, 2)

	assert.Equal(t, models.ComparisonRow{
		Year:         2023,
		CompanyA:     models.Some(0.11),
		CompanyB:     models.Some(0.05),
		CompanyAName: "Acme Corp",
		CompanyBName: "Globex",
	}, rows[0])
	assert.Equal(t, models.ComparisonRow{
		Year:         2022,
		CompanyA:     models.Some(0.08),
		CompanyB:     models.Absent(),
		CompanyAName: "Acme Corp",
		CompanyBName: "Globex",
	}, rows[1])
}

func TestReconcileUnselectedCompanies(t *testing.T) {
	rows := Reconcile(nil, nil, nil, nil, models.CurrentRatio)
	assert.Empty(t, rows)

	a := []models.RatioSnapshot{snap("ACME", "2023", models.Number(1))}
	rows = Reconcile(a, nil, nil, nil, models.ReturnOnAssets)
	require.Len(t, rows, 1)
	assert.Equal(t, "", rows[0].CompanyAName)
	assert.Equal(t, "", rows[0].CompanyBName)
	assert.False(t, rows[0].CompanyB.Valid())
}

func TestReconcileInvalidCalendarYear(t *testing.T) {
	a := []models.RatioSnapshot{
		snap("ACME", "FY-twenty", models.Number(9)),
		snap("ACME", "2020", models.Number(1)),
		snap("ACME", "", models.Number(9)),
	}
	b := []models.RatioSnapshot{snap("GLBX", "n/a", models.Number(9))}

	rows := Reconcile(a, b, acme, globex, models.ReturnOnAssets)
	require.Len(t, rows, 1)
	assert.Equal(t, 2020, rows[0].Year)
	assert.Equal(t, models.Some(1), rows[0].CompanyA)
	assert.Equal(t, models.Absent(), rows[0].CompanyB)

	rows = Reconcile(b, b, acme, globex, models.ReturnOnAssets)
	assert.Empty(t, rows)
}

func TestReconcileFirstMatchWins(t *testing.T) {
	a := []models.RatioSnapshot{
		snap("ACME", "2023", models.Number(1)),
		snap("ACME", " 2023 ", models.Number(2)),
	}
	rows := Reconcile(a, nil, acme, nil, models.ReturnOnAssets)
	require.Len(t, rows, 1)
	assert.Equal(t, models.Some(1), rows[0].CompanyA)
}

func TestReconcileUnknownKeyDegradesToAbsent(t *testing.T) {
	a := []models.RatioSnapshot{snap("ACME", "2023", models.Number(1))}
	rows := Reconcile(a, a, acme, globex, models.RatioKey("ebitdaMargin"))
	require.Len(t, rows, 1)
	assert.False(t, rows[0].CompanyA.Valid())
	assert.False(t, rows[0].CompanyB.Valid())
}

func TestReconcileWindowProperties(t *testing.T) {
	tests := []struct {
		name     string
		a, b     []string
		distinct int
	}{
		{"one side", []string{"2019", "2021", "2020"}, nil, 3},
		{"shared years", []string{"2020", "2021"}, []string{"2021", "2020"}, 2},
		{"single year", []string{"2018"}, []string{"2018"}, 1},
		{"unsorted union", []string{"2015", "2024"}, []string{"2019", "2001", "2024"}, 4},
	}

	build := func(years []string) []models.RatioSnapshot {
		var out []models.RatioSnapshot
		for _, y := range years {
			out = append(out, snap("X", y, models.Number(1)))
		}
		return out
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows := Reconcile(build(tt.a), build(tt.b), acme, globex, models.ReturnOnAssets)
			want := tt.distinct
			if want > WindowSize {
				want = WindowSize
			}
			require.Len(t, rows, want)
			for i := 0; i+1 < len(rows); i++ {
				assert.Greater(t, rows[i].Year, rows[i+1].Year)
			}
		})
	}
}

func TestReconcileIsSymmetric(t *testing.T) {
	a := []models.RatioSnapshot{snap("ACME", "2022", models.Number(1)), snap("ACME", "2023", models.Number(2))}
	b := []models.RatioSnapshot{snap("GLBX", "2023", models.Number(3))}

	ab := Reconcile(a, b, acme, globex, models.ReturnOnAssets)
	ba := Reconcile(b, a, globex, acme, models.ReturnOnAssets)
	require.Len(t, ba, len(ab))
	for i := range ab {
		assert.Equal(t, ab[i].Year, ba[i].Year)
		assert.Equal(t, ab[i].CompanyA, ba[i].CompanyB)
		assert.Equal(t, ab[i].CompanyB, ba[i].CompanyA)
	}
}

func TestInspectYears(t *testing.T) {
	list := []models.RatioSnapshot{
		snap("ACME", "2023", models.Missing()),
		snap("ACME", "20x3", models.Missing()),
	}
	warnings := InspectYears(models.SlotA, list)
	require.Len(t, warnings, 1)
	assert.Equal(t, models.WarnInvalidYear, warnings[0].Code)
	assert.Equal(t, models.SlotA, warnings[0].Slot)
	assert.Contains(t, warnings[0].Detail, "20x3")

	assert.Empty(t, InspectYears(models.SlotB, nil))
}

func TestShouldRender(t *testing.T) {
	loaded := []models.RatioSnapshot{}

	assert.False(t, ShouldRender(nil, nil, nil, nil))
	assert.False(t, ShouldRender(nil, nil, loaded, loaded))
	assert.False(t, ShouldRender(acme, nil, nil, nil))
	assert.False(t, ShouldRender(nil, globex, nil, nil))
	assert.True(t, ShouldRender(acme, nil, loaded, nil))
	assert.True(t, ShouldRender(nil, globex, nil, loaded))
	assert.True(t, ShouldRender(acme, globex, nil, loaded))
}

func TestParseYear(t *testing.T) {
	y := ParseYear(" 2023\n")
	n, ok := y.Int()
	assert.True(t, ok)
	assert.Equal(t, 2023, n)

	bad := ParseYear("2023a")
	assert.False(t, bad.Valid())
	assert.False(t, bad.Equal(bad))
	assert.False(t, ParseYear("").Valid())
	assert.True(t, ParseYear("2020").Equal(ParseYear("2020")))

	// integer text only: decimal and hex spellings are invalid
	for _, in := range []models.CalendarYear{"2023.0", "0x7E7", "2e3", "+"} {
		assert.False(t, ParseYear(in).Valid(), string(in))
	}
}
