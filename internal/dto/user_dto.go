package dto

type CreateUserRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Name     string `json:"name" validate:"required,min=2"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role" validate:"required,oneof=ADMIN PROCUREMENT REQUESTER"`
}

type UpdateUserRequest struct {
	Name     *string `json:"name" validate:"omitempty,min=2"`
	Password *string `json:"password" validate:"omitempty,min=8"`
	Role     *string `json:"role" validate:"omitempty,oneof=ADMIN PROCUREMENT REQUESTER"`
}

type UpdateUserRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=ADMIN PROCUREMENT REQUESTER"`
}

type AssignLocationRequest struct {
	LocationID string `json:"location_id" validate:"required,uuid"`
}

type UserResponse struct {
	ID        string             `json:"id"`
	Email     string             `json:"email"`
	Name      string             `json:"name"`
	Role      string             `json:"role"`
	Active    bool               `json:"active"`
	Locations []LocationResponse `json:"locations,omitempty"`
}
