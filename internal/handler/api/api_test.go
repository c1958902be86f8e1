package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	models "FinCompare/internal/domain/models"
	domrepo "FinCompare/internal/domain/repository"
	"FinCompare/internal/repository"
	"FinCompare/internal/services/presentation"
	"FinCompare/internal/usecase"
	xlogger "FinCompare/pkg/logger"
	"FinCompare/pkg/metrics"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubProvider struct {
	snaps   map[string][]models.RatioSnapshot
	results []models.SelectedCompany
	err     error
	period  domrepo.Period
}

func (s *stubProvider) Ratios(_ context.Context, symbol string, period domrepo.Period) ([]models.RatioSnapshot, error) {
	s.period = period
	if s.err != nil {
		return nil, s.err
	}
	return s.snaps[symbol], nil
}

func (s *stubProvider) Search(context.Context, string, int) ([]models.SelectedCompany, error) {
	return s.results, s.err
}

type envelope struct {
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func newTestEcho(p *stubProvider) *echo.Echo {
	l := xlogger.Nop()
	svc := usecase.NewComparisonService(p, repository.NopPublisher{}, metrics.Nop{}, l)
	e := echo.New()
	NewCompareEchoHandler(l, svc, p, p, presentation.NewDescriber()).RegisterRoutes(e)
	NewSessionWSHandler(l, svc).RegisterRoutes(e)
	return e
}

func do(t *testing.T, e *echo.Echo, method, target, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return rec, env
}

func providerFixture() *stubProvider {
	return &stubProvider{
		snaps: map[string][]models.RatioSnapshot{
			"AAPL": {
				{Symbol: "AAPL", CalendarYear: "2022", ReturnOnAssets: models.Number(0.12)},
				{Symbol: "AAPL", CalendarYear: "2023", ReturnOnAssets: models.Number(0.15)},
			},
			"MSFT": {
				{Symbol: "MSFT", CalendarYear: "2021", ReturnOnAssets: models.Text("0.08")},
				{Symbol: "MSFT", CalendarYear: "2023", ReturnOnAssets: models.Text("0.10")},
			},
		},
		results: []models.SelectedCompany{{Symbol: "AAPL", Name: "Apple Inc."}},
	}
}

func TestSearchEndpoint(t *testing.T) {
	e := newTestEcho(providerFixture())

	rec, env := do(t, e, http.MethodGet, "/api/search?query=apple", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	var got []models.SelectedCompany
	require.NoError(t, json.Unmarshal(env.Data, &got))
	require.Len(t, got, 1)
	assert.Equal(t, "Apple Inc.", got[0].Name)

	rec, env = do(t, e, http.MethodGet, "/api/search", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, string(env.Data), `"field":"query"`)
}

func TestRatiosEndpoint(t *testing.T) {
	p := providerFixture()
	e := newTestEcho(p)

	rec, env := do(t, e, http.MethodGet, "/api/ratios/AAPL?period=quarter", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, domrepo.PeriodQuarter, p.period)
	var got []models.RatioSnapshot
	require.NoError(t, json.Unmarshal(env.Data, &got))
	assert.Len(t, got, 2)

	rec, env = do(t, e, http.MethodGet, "/api/ratios/ZZZZ", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, string(env.Data))

	p.err = errors.New("upstream 503")
	rec, env = do(t, e, http.MethodGet, "/api/ratios/AAPL", "")
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Equal(t, http.StatusBadGateway, env.Status)
	assert.Contains(t, string(env.Data), "ERR_PROVIDER")
}

func TestCatalogEndpoint(t *testing.T) {
	e := newTestEcho(providerFixture())

	rec, env := do(t, e, http.MethodGet, "/api/ratios/catalog", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	var got []models.RatioInfo
	require.NoError(t, json.Unmarshal(env.Data, &got))
	require.Len(t, got, 9)
	assert.Equal(t, models.CurrentRatio, got[0].Key)
	assert.Equal(t, "CR", got[0].Code)
}

func TestDescriptionEndpoint(t *testing.T) {
	e := newTestEcho(providerFixture())

	rec, env := do(t, e, http.MethodGet, "/api/ratios/descriptions/pe?format=html", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	var got models.RatioDescription
	require.NoError(t, json.Unmarshal(env.Data, &got))
	assert.Equal(t, "PE", got.Code)
	assert.Contains(t, got.HTML, "<h1>")

	rec, _ = do(t, e, http.MethodGet, "/api/ratios/descriptions/XX", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, _ = do(t, e, http.MethodGet, "/api/ratios/descriptions/PE?format=pdf", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCompareEndpoint(t *testing.T) {
	e := newTestEcho(providerFixture())

	body := `{
		"companyA": {"symbol": "AAPL", "name": "Apple Inc."},
		"companyB": {"symbol": "MSFT", "name": "Microsoft Corporation"},
		"ratios": ["returnOnAssets"]
	}`
	rec, env := do(t, e, http.MethodPost, "/api/compare", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var got models.Comparison
	require.NoError(t, json.Unmarshal(env.Data, &got))
	assert.True(t, got.Render)
	assert.Equal(t, "annual", got.Period)
	assert.Equal(t, []int{2023, 2022}, got.Years)
	require.Len(t, got.Ratios, 1)
	rows := got.Ratios[0].Rows
	require.Len(t, rows, 2)
	assert.Equal(t, models.Some(0.15), rows[0].CompanyA)
	assert.Equal(t, models.Some(0.10), rows[0].CompanyB)
	assert.False(t, rows[1].CompanyB.Valid())
}

func TestCompareEndpointErrors(t *testing.T) {
	e := newTestEcho(providerFixture())

	rec, env := do(t, e, http.MethodPost, "/api/compare", `{"ratios":["ebitda"]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, string(env.Data), "ERR_UNKNOWN_RATIO")

	rec, _ = do(t, e, http.MethodPost, "/api/compare", `{"period":"monthly"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = do(t, e, http.MethodPost, "/api/compare", `{"companyA":{"name":"no symbol"}}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCompareEndpointNoSelection(t *testing.T) {
	e := newTestEcho(providerFixture())

	rec, env := do(t, e, http.MethodPost, "/api/compare", `{}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var got models.Comparison
	require.NoError(t, json.Unmarshal(env.Data, &got))
	assert.False(t, got.Render)
	assert.Len(t, got.Ratios, 9)
	assert.Equal(t, presentation.EmptyMessage, got.Ratios[0].Empty)
}
