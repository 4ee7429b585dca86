package dto

import "github.com/shopspring/decimal"

// TrybeProduct mirrors one record of the external Trybe inventory API.
// Money fields are decoded into decimals so the passthrough never re-rounds
// what the upstream reported.
type TrybeProduct struct {
	ID             string           `json:"id"`
	Name           string           `json:"name"`
	Description    *string          `json:"description"`
	Barcode        *int64           `json:"barcode"`
	SKU            *string          `json:"sku"`
	ReorderLevel   *int             `json:"reorder_level"`
	Currency       string           `json:"currency"`
	BrandID        *string          `json:"brand_id"`
	CategoryID     *string          `json:"category_id"`
	OrganisationID string           `json:"organisation_id"`
	SiteID         string           `json:"site_id"`
	AverageCost    *decimal.Decimal `json:"average_cost"`
	StockValue     *decimal.Decimal `json:"stock_value"`
	StockLevel     *decimal.Decimal `json:"stock_level"`
}

// TrybeListResponse is the upstream list envelope, passed through verbatim.
type TrybeListResponse struct {
	Data []TrybeProduct `json:"data"`
	Meta TrybeMeta      `json:"meta"`
}

type TrybeMeta struct {
	From        int    `json:"from"`
	To          int    `json:"to"`
	Total       int    `json:"total"`
	CurrentPage int    `json:"current_page"`
	LastPage    int    `json:"last_page"`
	PerPage     int    `json:"per_page"`
	Path        string `json:"path"`
}
