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

// CatalogService maintains the product catalog and its categories. Write
// access is gated at the router (procurement staff only), so the service
// itself only validates referential integrity.
type CatalogService interface {
	CreateCategory(ctx context.Context, req dto.CreateCategoryRequest) (*dto.CategoryResponse, error)
	ListCategories(ctx context.Context) ([]dto.CategoryResponse, error)
	UpdateCategory(ctx context.Context, id uuid.UUID, req dto.UpdateCategoryRequest) (*dto.CategoryResponse, error)
	DeleteCategory(ctx context.Context, id uuid.UUID) error

	CreateProduct(ctx context.Context, req dto.CreateProductRequest) (*dto.ProductResponse, error)
	GetProduct(ctx context.Context, id uuid.UUID) (*dto.ProductResponse, error)
	ListProducts(ctx context.Context, filter dto.ProductFilter) (*dto.ProductListResponse, error)
	UpdateProduct(ctx context.Context, id uuid.UUID, req dto.UpdateProductRequest) (*dto.ProductResponse, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) error
}

type catalogService struct {
	categories repository.CategoryRepository
	products   repository.ProductRepository
}

func NewCatalogService(categories repository.CategoryRepository, products repository.ProductRepository) CatalogService {
	return &catalogService{categories: categories, products: products}
}

// ── Categories ───────────────────────────────────────────────────────────────

func (s *catalogService) CreateCategory(ctx context.Context, req dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	if existing, err := s.categories.FindByName(ctx, req.Name); err == nil && existing != nil {
		return nil, errValidation("category %q already exists", req.Name)
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	category := &model.Category{Name: req.Name, Active: true}
	if err := s.categories.Create(ctx, category); err != nil {
		return nil, err
	}
	resp := mapCategory(*category)
	return &resp, nil
}

func (s *catalogService) ListCategories(ctx context.Context) ([]dto.CategoryResponse, error) {
	categories, err := s.categories.List(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.CategoryResponse, len(categories))
	for i, c := range categories {
		resp[i] = mapCategory(c)
	}
	return resp, nil
}

func (s *catalogService) UpdateCategory(ctx context.Context, id uuid.UUID, req dto.UpdateCategoryRequest) (*dto.CategoryResponse, error) {
	category, err := s.categories.FindByID(ctx, id)
	if err != nil {
		return nil, &NotFoundError{Entity: "category"}
	}
	if req.Name != nil {
		category.Name = *req.Name
	}
	if req.Active != nil {
		category.Active = *req.Active
	}
	if err := s.categories.Update(ctx, category); err != nil {
		return nil, err
	}
	resp := mapCategory(*category)
	return &resp, nil
}

func (s *catalogService) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	if _, err := s.categories.FindByID(ctx, id); err != nil {
		return &NotFoundError{Entity: "category"}
	}
	// Soft delete; products keep their category reference for history.
	return s.categories.Deactivate(ctx, id)
}

// ── Products ─────────────────────────────────────────────────────────────────

func (s *catalogService) CreateProduct(ctx context.Context, req dto.CreateProductRequest) (*dto.ProductResponse, error) {
	product := &model.Product{
		SKU:         req.SKU,
		Name:        req.Name,
		Unit:        model.UnitPcs,
		Description: req.Description,
		Active:      true,
	}
	if req.Unit != "" {
		product.Unit = model.Unit(req.Unit)
	}
	if req.CategoryID != nil {
		catID, err := uuid.Parse(*req.CategoryID)
		if err != nil {
			return nil, errValidation("invalid category id")
		}
		if _, err := s.categories.FindByID(ctx, catID); err != nil {
			return nil, errValidation("category %s does not exist", *req.CategoryID)
		}
		product.CategoryID = &catID
	}
	if err := s.products.Create(ctx, product); err != nil {
		return nil, err
	}
	return s.GetProduct(ctx, product.ID)
}

func (s *catalogService) GetProduct(ctx context.Context, id uuid.UUID) (*dto.ProductResponse, error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, &NotFoundError{Entity: "product"}
	}
	resp := mapProduct(*product)
	return &resp, nil
}

func (s *catalogService) ListProducts(ctx context.Context, filter dto.ProductFilter) (*dto.ProductListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 200 {
		filter.Limit = 50
	}
	products, total, err := s.products.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	data := make([]dto.ProductResponse, len(products))
	for i, p := range products {
		data[i] = mapProduct(p)
	}
	totalPages := int((total + int64(filter.Limit) - 1) / int64(filter.Limit))
	return &dto.ProductListResponse{
		Data: data,
		Pagination: dto.Pagination{
			Page:       filter.Page,
			Limit:      filter.Limit,
			Total:      total,
			TotalPages: totalPages,
		},
	}, nil
}

func (s *catalogService) UpdateProduct(ctx context.Context, id uuid.UUID, req dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, &NotFoundError{Entity: "product"}
	}
	if req.SKU != nil {
		product.SKU = req.SKU
	}
	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Unit != nil {
		product.Unit = model.Unit(*req.Unit)
	}
	if req.Description != nil {
		product.Description = req.Description
	}
	if req.Active != nil {
		product.Active = *req.Active
	}
	if req.CategoryID != nil {
		catID, err := uuid.Parse(*req.CategoryID)
		if err != nil {
			return nil, errValidation("invalid category id")
		}
		if _, err := s.categories.FindByID(ctx, catID); err != nil {
			return nil, errValidation("category %s does not exist", *req.CategoryID)
		}
		product.CategoryID = &catID
	}
	if err := s.products.Update(ctx, product); err != nil {
		return nil, err
	}
	return s.GetProduct(ctx, id)
}

func (s *catalogService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	if _, err := s.products.FindByID(ctx, id); err != nil {
		return &NotFoundError{Entity: "product"}
	}
	// Soft delete: existing requisition lines keep pointing at the product.
	return s.products.Deactivate(ctx, id)
}

func mapCategory(c model.Category) dto.CategoryResponse {
	return dto.CategoryResponse{ID: c.ID.String(), Name: c.Name, Active: c.Active}
}

func mapProduct(p model.Product) dto.ProductResponse {
	resp := dto.ProductResponse{
		ID:          p.ID.String(),
		SKU:         p.SKU,
		Name:        p.Name,
		Unit:        string(p.Unit),
		Description: p.Description,
		Active:      p.Active,
	}
	if p.Category != nil {
		c := mapCategory(*p.Category)
		resp.Category = &c
	}
	return resp
}
