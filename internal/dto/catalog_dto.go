package dto

type CreateCategoryRequest struct {
	Name string `json:"name" validate:"required,min=2"`
}

type UpdateCategoryRequest struct {
	Name   *string `json:"name" validate:"omitempty,min=2"`
	Active *bool   `json:"active"`
}

type CategoryResponse struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Active bool   `json:"active"`
}

type CreateProductRequest struct {
	SKU         *string `json:"sku"`
	Name        string  `json:"name" validate:"required,min=2"`
	Unit        string  `json:"unit" validate:"omitempty,oneof=PCS ML L G KG PACK BOX"`
	CategoryID  *string `json:"category_id" validate:"omitempty,uuid"`
	Description *string `json:"description"`
}

type UpdateProductRequest struct {
	SKU         *string `json:"sku"`
	Name        *string `json:"name" validate:"omitempty,min=2"`
	Unit        *string `json:"unit" validate:"omitempty,oneof=PCS ML L G KG PACK BOX"`
	CategoryID  *string `json:"category_id" validate:"omitempty,uuid"`
	Description *string `json:"description"`
	Active      *bool   `json:"active"`
}

type ProductResponse struct {
	ID          string            `json:"id"`
	SKU         *string           `json:"sku,omitempty"`
	Name        string            `json:"name"`
	Unit        string            `json:"unit"`
	Description *string           `json:"description,omitempty"`
	Active      bool              `json:"active"`
	Category    *CategoryResponse `json:"category,omitempty"`
}

// ProductFilter binds the product list query string.
type ProductFilter struct {
	CategoryID string `form:"category_id"`
	Active     *bool  `form:"active"`
	Q          string `form:"q"`
	Page       int    `form:"page,default=1"`
	Limit      int    `form:"limit,default=50"`
}

type ProductListResponse struct {
	Data       []ProductResponse `json:"data"`
	Pagination Pagination        `json:"pagination"`
}

// Pagination is the shared list envelope metadata.
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}
