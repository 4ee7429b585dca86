package dto

type CreateLocationRequest struct {
	Name    string  `json:"name" validate:"required,min=2"`
	Address *string `json:"address"`
}

type UpdateLocationRequest struct {
	Name    *string `json:"name" validate:"omitempty,min=2"`
	Address *string `json:"address"`
	Active  *bool   `json:"active"`
}

type AssignProductRequest struct {
	ProductID    string `json:"product_id" validate:"required,uuid"`
	MinStock     *int   `json:"min_stock" validate:"omitempty,gt=0"`
	PreferredQty *int   `json:"preferred_qty" validate:"omitempty,gt=0"`
}

type LocationResponse struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Address *string `json:"address,omitempty"`
	Active  bool    `json:"active"`
}

type LocationAssignmentResponse struct {
	Product      ProductResponse `json:"product"`
	MinStock     *int            `json:"min_stock,omitempty"`
	PreferredQty *int            `json:"preferred_qty,omitempty"`
}
