package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/CroSSer23/spa-procurement/internal/dto"
	"github.com/CroSSer23/spa-procurement/internal/model"
	"github.com/CroSSer23/spa-procurement/internal/repository"
)

// LocationService maintains SPA sites and their product assignments.
type LocationService interface {
	Create(ctx context.Context, req dto.CreateLocationRequest) (*dto.LocationResponse, error)
	List(ctx context.Context) ([]dto.LocationResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.LocationResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateLocationRequest) (*dto.LocationResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
	AssignProduct(ctx context.Context, id uuid.UUID, req dto.AssignProductRequest) error
	ListAssignments(ctx context.Context, id uuid.UUID) ([]dto.LocationAssignmentResponse, error)
}

type locationService struct {
	locations repository.LocationRepository
	products  repository.ProductRepository
}

func NewLocationService(locations repository.LocationRepository, products repository.ProductRepository) LocationService {
	return &locationService{locations: locations, products: products}
}

func (s *locationService) Create(ctx context.Context, req dto.CreateLocationRequest) (*dto.LocationResponse, error) {
	if existing, err := s.locations.FindByName(ctx, req.Name); err == nil && existing != nil {
		return nil, errValidation("location %q already exists", req.Name)
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	location := &model.Location{Name: req.Name, Address: req.Address, Active: true}
	if err := s.locations.Create(ctx, location); err != nil {
		return nil, err
	}
	resp := mapLocation(*location)
	return &resp, nil
}

func (s *locationService) List(ctx context.Context) ([]dto.LocationResponse, error) {
	locations, err := s.locations.List(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.LocationResponse, len(locations))
	for i, l := range locations {
		resp[i] = mapLocation(l)
	}
	return resp, nil
}

func (s *locationService) Get(ctx context.Context, id uuid.UUID) (*dto.LocationResponse, error) {
	location, err := s.locations.FindByID(ctx, id)
	if err != nil {
		return nil, &NotFoundError{Entity: "location"}
	}
	resp := mapLocation(*location)
	return &resp, nil
}

func (s *locationService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateLocationRequest) (*dto.LocationResponse, error) {
	location, err := s.locations.FindByID(ctx, id)
	if err != nil {
		return nil, &NotFoundError{Entity: "location"}
	}
	if req.Name != nil {
		location.Name = *req.Name
	}
	if req.Address != nil {
		location.Address = req.Address
	}
	if req.Active != nil {
		location.Active = *req.Active
	}
	if err := s.locations.Update(ctx, location); err != nil {
		return nil, err
	}
	resp := mapLocation(*location)
	return &resp, nil
}

func (s *locationService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.locations.FindByID(ctx, id); err != nil {
		return &NotFoundError{Entity: "location"}
	}
	// Soft delete: past requisitions keep their location.
	return s.locations.Deactivate(ctx, id)
}

func (s *locationService) AssignProduct(ctx context.Context, id uuid.UUID, req dto.AssignProductRequest) error {
	if _, err := s.locations.FindByID(ctx, id); err != nil {
		return &NotFoundError{Entity: "location"}
	}
	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		return errValidation("invalid product id")
	}
	if _, err := s.products.FindByID(ctx, productID); err != nil {
		return errValidation("product %s does not exist", req.ProductID)
	}
	return s.locations.UpsertAssignment(ctx, &model.LocationProduct{
		LocationID:   id,
		ProductID:    productID,
		MinStock:     req.MinStock,
		PreferredQty: req.PreferredQty,
	})
}

func (s *locationService) ListAssignments(ctx context.Context, id uuid.UUID) ([]dto.LocationAssignmentResponse, error) {
	if _, err := s.locations.FindByID(ctx, id); err != nil {
		return nil, &NotFoundError{Entity: "location"}
	}
	assignments, err := s.locations.ListAssignments(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.LocationAssignmentResponse, 0, len(assignments))
	for _, a := range assignments {
		entry := dto.LocationAssignmentResponse{MinStock: a.MinStock, PreferredQty: a.PreferredQty}
		if a.Product != nil {
			entry.Product = mapProduct(*a.Product)
		}
		resp = append(resp, entry)
	}
	return resp, nil
}

func mapLocation(l model.Location) dto.LocationResponse {
	return dto.LocationResponse{
		ID:      l.ID.String(),
		Name:    l.Name,
		Address: l.Address,
		Active:  l.Active,
	}
}
