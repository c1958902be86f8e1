package api

import (
	"errors"

	models "FinCompare/internal/domain/models"
	domrepo "FinCompare/internal/domain/repository"
	"FinCompare/internal/services/presentation"
	"FinCompare/internal/usecase"
	xhttp "FinCompare/pkg/http"
	xlogger "FinCompare/pkg/logger"

	"github.com/labstack/echo/v4"
)

// CompareEchoHandler serves search, ratio and comparison endpoints.
type CompareEchoHandler struct {
	logger    *xlogger.Logger
	svc       *usecase.ComparisonService
	source    domrepo.RatioSource
	searcher  domrepo.CompanySearcher
	describer *presentation.Describer
}

func NewCompareEchoHandler(
	logger *xlogger.Logger,
	svc *usecase.ComparisonService,
	source domrepo.RatioSource,
	searcher domrepo.CompanySearcher,
	describer *presentation.Describer,
) *CompareEchoHandler {
	return &CompareEchoHandler{
		logger:    logger,
		svc:       svc,
		source:    source,
		searcher:  searcher,
		describer: describer,
	}
}

func (h *CompareEchoHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.GET("/search", h.Search)
	g.GET("/ratios/catalog", h.Catalog)
	g.GET("/ratios/descriptions/:code", h.Description)
	g.GET("/ratios/:symbol", h.Ratios)
	g.POST("/compare", h.Compare)
}

func (h *CompareEchoHandler) Search(c echo.Context) error {
	req := &models.SearchRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.searcher.Search(c.Request().Context(), req.Query, req.Limit)
	if err != nil {
		h.logger.Error("search provider error", xlogger.String("query", req.Query), xlogger.Error(err))
		return xhttp.AppErrorResponse(c, xhttp.BadGatewayError("company search failed").WithError(err))
	}
	if res == nil {
		res = []models.SelectedCompany{}
	}
	c.Response().Header().Set(echo.HeaderCacheControl, "private, max-age=60")
	return xhttp.SuccessResponse(c, res)
}

func (h *CompareEchoHandler) Catalog(c echo.Context) error {
	c.Response().Header().Set(echo.HeaderCacheControl, "public, max-age=3600")
	return xhttp.SuccessResponse(c, models.RatioCatalog())
}

func (h *CompareEchoHandler) Description(c echo.Context) error {
	req := &models.DescriptionRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.describer.Describe(req.Code, req.Format == "html")
	if errors.Is(err, presentation.ErrNoDescription) {
		return xhttp.AppErrorResponse(c, xhttp.NotFoundErrorf("no description for ratio %q", req.Code))
	}
	if err != nil {
		h.logger.Error("describe error", xlogger.String("code", req.Code), xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *CompareEchoHandler) Ratios(c echo.Context) error {
	req := &models.RatiosRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	period := domrepo.NormalizePeriod(req.Period)

	res, err := h.source.Ratios(c.Request().Context(), req.Symbol, period)
	if err != nil {
		h.logger.Error("ratios provider error", xlogger.String("symbol", req.Symbol), xlogger.Error(err))
		return xhttp.AppErrorResponse(c, xhttp.BadGatewayError("ratio provider failed").WithError(err))
	}
	if res == nil {
		res = []models.RatioSnapshot{}
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *CompareEchoHandler) Compare(c echo.Context) error {
	req := &models.CompareRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	keys, err := models.ParseRatioKeys(req.Ratios)
	if err != nil {
		return xhttp.AppErrorResponse(c, xhttp.UnknownRatioError("ratios", err.Error()))
	}

	res, err := h.svc.Compare(c.Request().Context(), usecase.CompareInput{
		CompanyA: req.CompanyA,
		CompanyB: req.CompanyB,
		Period:   domrepo.NormalizePeriod(req.Period),
		Ratios:   keys,
	})
	if err != nil {
		h.logger.Error("compare usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, res)
}
