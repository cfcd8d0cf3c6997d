package models

// Requests for the astro HTTP endpoints.

type StockAspectsRequest struct {
	Stock  string `query:"stock" json:"stock" validate:"required,max=64"`
	Date   string `query:"date" json:"date" validate:"omitempty,datetime=2006-01-02"`
	Format string `query:"format" json:"format" default:"json" validate:"oneof=json text"`
}

type TransitsRequest struct {
	At     string `query:"at" json:"at" validate:"max=40"`
	Limit  int    `query:"limit" json:"limit" default:"10" validate:"gte=1,lte=100"`
	Format string `query:"format" json:"format" default:"json" validate:"oneof=json text"`
}

type MoonScanRequest struct {
	Date   string `query:"date" json:"date" validate:"omitempty,datetime=2006-01-02"`
	Stock  string `query:"stock" json:"stock" validate:"max=64"`
	Format string `query:"format" json:"format" default:"json" validate:"oneof=json text"`
}

type SectorRequest struct {
	Sign   string `param:"sign" json:"sign" validate:"required,max=32"`
	Date   string `query:"date" json:"date" validate:"omitempty,datetime=2006-01-02"`
	Top    int    `query:"top" json:"top" default:"2" validate:"gte=1,lte=20"`
	Format string `query:"format" json:"format" default:"json" validate:"oneof=json text"`
}
