package models

// Requests for comparison HTTP endpoints. Defined in domain for reuse by the websocket session.

type CompareRequest struct {
	CompanyA *SelectedCompany `json:"companyA" validate:"omitempty"`
	CompanyB *SelectedCompany `json:"companyB" validate:"omitempty"`
	Period   string           `json:"period" default:"annual" validate:"oneof=annual quarter"`
	Ratios   []string         `json:"ratios" validate:"max=9,dive,required"`
}

type SearchRequest struct {
	Query string `query:"query" json:"query" validate:"required,max=64"`
	Limit int    `query:"limit" json:"limit" default:"10" validate:"gte=1,lte=50"`
}

type RatiosRequest struct {
	Symbol string `param:"symbol" json:"symbol" validate:"required,max=20"`
	Period string `query:"period" json:"period" default:"annual" validate:"oneof=annual quarter"`
}

type DescriptionRequest struct {
	Code   string `param:"code" json:"code" validate:"required,max=8"`
	Format string `query:"format" json:"format" default:"markdown" validate:"oneof=markdown html"`
}
