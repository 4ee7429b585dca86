package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/CroSSer23/spa-procurement/internal/dto"
	"github.com/CroSSer23/spa-procurement/internal/model"
)

// RequisitionScope restricts listing to a requester's own requisitions in
// their accessible locations. Nil means unrestricted (admin/procurement).
type RequisitionScope struct {
	CreatedByID uuid.UUID
	LocationIDs []uuid.UUID
}

// RequisitionRepository persists requisitions, their items and history.
// Mutating methods take an explicit *gorm.DB so the service layer controls the
// transaction boundary; the guarded update is the optimistic-lock primitive.
type RequisitionRepository interface {
	Create(ctx context.Context, tx *gorm.DB, r *model.Requisition) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Requisition, error)
	List(ctx context.Context, filter dto.RequisitionFilter, scope *RequisitionScope) ([]model.Requisition, int64, error)
	// UpdateGuarded applies fields to the requisition row only if the stored
	// version still equals expectedVersion, bumping the version in the same
	// statement. Returns false when another writer got there first.
	UpdateGuarded(ctx context.Context, tx *gorm.DB, id uuid.UUID, expectedVersion int64, fields map[string]any) (bool, error)
	UpdateItemFields(ctx context.Context, tx *gorm.DB, itemID uuid.UUID, fields map[string]any) error
	AppendHistory(ctx context.Context, tx *gorm.DB, entry *model.ActivityLog) error
	Delete(ctx context.Context, id uuid.UUID) error
	CreateAttachment(ctx context.Context, a *model.Attachment) error
	DB() *gorm.DB // exposes the DB for transaction creation in the service layer
}

type requisitionRepo struct{ db *gorm.DB }

func NewRequisitionRepository(db *gorm.DB) RequisitionRepository {
	return &requisitionRepo{db: db}
}

func (r *requisitionRepo) DB() *gorm.DB { return r.db }

func (r *requisitionRepo) Create(ctx context.Context, tx *gorm.DB, req *model.Requisition) error {
	// Items and the initial history entry ride along in the same insert.
	return tx.WithContext(ctx).Create(req).Error
}

func (r *requisitionRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Requisition, error) {
	var req model.Requisition
	err := r.db.WithContext(ctx).
		Preload("Location").
		Preload("CreatedBy").
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("created_at asc") }).
		Preload("Items.Product.Category").
		Preload("History", func(db *gorm.DB) *gorm.DB { return db.Order("created_at desc") }).
		Preload("History.Actor").
		Preload("Attachments").
		First(&req, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *requisitionRepo) List(ctx context.Context, filter dto.RequisitionFilter, scope *RequisitionScope) ([]model.Requisition, int64, error) {
	var reqs []model.Requisition
	var total int64
	offset := (filter.Page - 1) * filter.Limit

	q := r.db.WithContext(ctx).Model(&model.Requisition{})

	if scope != nil {
		q = q.Where("created_by_id = ? AND location_id IN ?", scope.CreatedByID, scope.LocationIDs)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.LocationID != "" {
		q = q.Where("location_id = ?", filter.LocationID)
	}
	if filter.Q != "" {
		like := "%" + filter.Q + "%"
		q = q.Where("CAST(id AS TEXT) ILIKE ? OR note ILIKE ? OR po_number ILIKE ?", like, like, like)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := q.Preload("Location").Preload("CreatedBy").Preload("Items").
		Order("created_at DESC").
		Offset(offset).Limit(filter.Limit).
		Find(&reqs).Error

	return reqs, total, err
}

func (r *requisitionRepo) UpdateGuarded(ctx context.Context, tx *gorm.DB, id uuid.UUID, expectedVersion int64, fields map[string]any) (bool, error) {
	fields["version"] = gorm.Expr("version + 1")
	res := tx.WithContext(ctx).Model(&model.Requisition{}).
		Where("id = ? AND version = ?", id, expectedVersion).
		Updates(fields)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *requisitionRepo) UpdateItemFields(ctx context.Context, tx *gorm.DB, itemID uuid.UUID, fields map[string]any) error {
	return tx.WithContext(ctx).Model(&model.RequisitionItem{}).
		Where("id = ?", itemID).Updates(fields).Error
}

func (r *requisitionRepo) AppendHistory(ctx context.Context, tx *gorm.DB, entry *model.ActivityLog) error {
	return tx.WithContext(ctx).Create(entry).Error
}

func (r *requisitionRepo) Delete(ctx context.Context, id uuid.UUID) error {
	// Items, history and attachments go with it via ON DELETE CASCADE.
	return r.db.WithContext(ctx).Delete(&model.Requisition{}, "id = ?", id).Error
}

func (r *requisitionRepo) CreateAttachment(ctx context.Context, a *model.Attachment) error {
	return r.db.WithContext(ctx).Create(a).Error
}
