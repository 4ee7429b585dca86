package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/CroSSer23/spa-procurement/internal/model"
)

// LocationRepository defines CRUD operations for Location and its product
// assignments.
type LocationRepository interface {
	Create(ctx context.Context, l *model.Location) error
	List(ctx context.Context) ([]model.Location, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Location, error)
	FindByName(ctx context.Context, name string) (*model.Location, error)
	Update(ctx context.Context, l *model.Location) error
	Deactivate(ctx context.Context, id uuid.UUID) error
	UpsertAssignment(ctx context.Context, a *model.LocationProduct) error
	ListAssignments(ctx context.Context, locationID uuid.UUID) ([]model.LocationProduct, error)
}

type locationRepo struct{ db *gorm.DB }

func NewLocationRepository(db *gorm.DB) LocationRepository { return &locationRepo{db: db} }

func (r *locationRepo) Create(ctx context.Context, l *model.Location) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *locationRepo) List(ctx context.Context) ([]model.Location, error) {
	var list []model.Location
	err := r.db.WithContext(ctx).Order("name asc").Find(&list).Error
	return list, err
}

func (r *locationRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Location, error) {
	var l model.Location
	if err := r.db.WithContext(ctx).First(&l, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *locationRepo) FindByName(ctx context.Context, name string) (*model.Location, error) {
	var l model.Location
	err := r.db.WithContext(ctx).Where("lower(name) = lower(?)", name).First(&l).Error
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *locationRepo) Update(ctx context.Context, l *model.Location) error {
	return r.db.WithContext(ctx).Save(l).Error
}

func (r *locationRepo) Deactivate(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Location{}).
		Where("id = ?", id).Update("active", false).Error
}

func (r *locationRepo) UpsertAssignment(ctx context.Context, a *model.LocationProduct) error {
	existing := &model.LocationProduct{}
	err := r.db.WithContext(ctx).
		Where("location_id = ? AND product_id = ?", a.LocationID, a.ProductID).
		First(existing).Error
	if err == gorm.ErrRecordNotFound {
		return r.db.WithContext(ctx).Create(a).Error
	}
	if err != nil {
		return err
	}
	existing.MinStock = a.MinStock
	existing.PreferredQty = a.PreferredQty
	return r.db.WithContext(ctx).
		Where("location_id = ? AND product_id = ?", a.LocationID, a.ProductID).
		Updates(map[string]any{"min_stock": a.MinStock, "preferred_qty": a.PreferredQty}).Error
}

func (r *locationRepo) ListAssignments(ctx context.Context, locationID uuid.UUID) ([]model.LocationProduct, error) {
	var list []model.LocationProduct
	err := r.db.WithContext(ctx).Preload("Product.Category").
		Where("location_id = ?", locationID).Find(&list).Error
	return list, err
}
