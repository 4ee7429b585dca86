package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/CroSSer23/spa-procurement/internal/dto"
	"github.com/CroSSer23/spa-procurement/internal/metrics"
	"github.com/CroSSer23/spa-procurement/internal/model"
	"github.com/CroSSer23/spa-procurement/internal/policy"
	"github.com/CroSSer23/spa-procurement/internal/repository"
	"github.com/CroSSer23/spa-procurement/internal/worker"
)

// Notifier decouples the lifecycle core from the queue transport. Enqueues
// happen only after the transaction commits and are at-most-once: a failed
// enqueue is logged, never retried, and never rolls back the state change.
type Notifier interface {
	EnqueueNotification(ctx context.Context, ev worker.NotificationEvent) error
	EnqueuePurchaseOrder(ctx context.Context, job worker.PurchaseOrderJob) error
}

// RequisitionService is the lifecycle core: every mutation validates input,
// consults policy, and runs a version-guarded update inside one transaction,
// so state, items and history can never drift apart.
type RequisitionService interface {
	Create(ctx context.Context, actor policy.Actor, req dto.CreateRequisitionRequest) (*dto.RequisitionResponse, error)
	Get(ctx context.Context, actor policy.Actor, id uuid.UUID) (*dto.RequisitionResponse, error)
	List(ctx context.Context, actor policy.Actor, filter dto.RequisitionFilter) (*dto.RequisitionListResponse, error)
	Submit(ctx context.Context, actor policy.Actor, id uuid.UUID, req dto.SubmitRequest) (*dto.RequisitionResponse, error)
	EditItems(ctx context.Context, actor policy.Actor, id uuid.UUID, req dto.EditItemsRequest) (*dto.RequisitionResponse, error)
	ReceiveItems(ctx context.Context, actor policy.Actor, id uuid.UUID, req dto.ReceiveItemsRequest) (*dto.RequisitionResponse, error)
	ChangeStatus(ctx context.Context, actor policy.Actor, id uuid.UUID, req dto.ChangeStatusRequest) (*dto.RequisitionResponse, error)
	AddComment(ctx context.Context, actor policy.Actor, id uuid.UUID, req dto.CommentRequest) (*dto.RequisitionResponse, error)
	AddAttachment(ctx context.Context, actor policy.Actor, id uuid.UUID, req dto.CreateAttachmentRequest) (*dto.AttachmentResponse, error)
	Delete(ctx context.Context, actor policy.Actor, id uuid.UUID) error
}

type requisitionService struct {
	repo      repository.RequisitionRepository
	users     repository.UserRepository
	locations repository.LocationRepository
	products  repository.ProductRepository
	notifier  Notifier
}

func NewRequisitionService(
	repo repository.RequisitionRepository,
	users repository.UserRepository,
	locations repository.LocationRepository,
	products repository.ProductRepository,
	notifier Notifier,
) RequisitionService {
	return &requisitionService{
		repo:      repo,
		users:     users,
		locations: locations,
		products:  products,
		notifier:  notifier,
	}
}

// runTx wraps fn in a database transaction. With a nil db (unit tests against
// in-memory repositories) fn runs directly without transactional semantics.
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

func ref(r *model.Requisition) policy.RequisitionRef {
	return policy.RequisitionRef{
		CreatedByID: r.CreatedByID,
		LocationID:  r.LocationID,
		Status:      r.Status,
	}
}

// ── Create ───────────────────────────────────────────────────────────────────

func (s *requisitionService) Create(ctx context.Context, actor policy.Actor, req dto.CreateRequisitionRequest) (*dto.RequisitionResponse, error) {
	locID, err := uuid.Parse(req.LocationID)
	if err != nil {
		return nil, errValidation("invalid location id")
	}
	if !policy.CanCreateRequisition(actor, locID) {
		return nil, errForbidden("you cannot create requisitions for this location")
	}

	loc, err := s.locations.FindByID(ctx, locID)
	if err != nil {
		return nil, &NotFoundError{Entity: "location"}
	}
	if !loc.Active {
		return nil, errValidation("location %q is inactive", loc.Name)
	}

	if len(req.Items) == 0 {
		return nil, errValidation("a requisition needs at least one item")
	}
	items := make([]model.RequisitionItem, 0, len(req.Items))
	for _, it := range req.Items {
		pid, err := uuid.Parse(it.ProductID)
		if err != nil {
			return nil, errValidation("invalid product id %q", it.ProductID)
		}
		if it.RequestedQty <= 0 {
			return nil, errValidation("requested quantity must be positive")
		}
		product, err := s.products.FindByID(ctx, pid)
		if err != nil {
			return nil, errValidation("product %s does not exist", it.ProductID)
		}
		if !product.Active {
			return nil, errValidation("product %q is no longer available", product.Name)
		}
		items = append(items, model.RequisitionItem{
			ProductID:    pid,
			RequestedQty: it.RequestedQty,
			Note:         it.Note,
		})
	}

	status := model.StatusSubmitted
	if req.Draft {
		status = model.StatusDraft
	}

	requisition := &model.Requisition{
		LocationID:  locID,
		CreatedByID: actor.UserID,
		Status:      status,
		Note:        req.Note,
		Version:     1,
		Items:       items,
	}
	if status == model.StatusSubmitted {
		// The submit entry rides in the same insert: a requisition is never
		// visible as SUBMITTED without its history saying who submitted it.
		to := status
		requisition.History = []model.ActivityLog{{
			ActorID:  actor.UserID,
			Action:   model.ActionSubmit,
			ToStatus: &to,
		}}
	}

	err = runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		return s.repo.Create(ctx, tx, requisition)
	})
	if err != nil {
		return nil, err
	}

	metrics.RequisitionsCreated.WithLabelValues(string(status)).Inc()

	if status == model.StatusSubmitted {
		s.notifySubmitted(ctx, requisition.ID, locID, actor)
	}

	return s.reload(ctx, requisition.ID)
}

// ── Submit (draft → submitted) ───────────────────────────────────────────────

func (s *requisitionService) Submit(ctx context.Context, actor policy.Actor, id uuid.UUID, req dto.SubmitRequest) (*dto.RequisitionResponse, error) {
	requisition, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !policy.CanAccessRequisition(actor, ref(requisition)) {
		return nil, errForbidden("you do not have access to this requisition")
	}
	if requisition.Status != model.StatusDraft {
		return nil, errBusinessRule("only drafts can be submitted")
	}
	if !policy.CanSubmitDraft(actor, ref(requisition)) {
		return nil, errForbidden("you cannot submit this draft")
	}

	from, to := requisition.Status, model.StatusSubmitted
	err = runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		ok, err := s.repo.UpdateGuarded(ctx, tx, id, req.Version, map[string]any{"status": to})
		if err != nil {
			return err
		}
		if !ok {
			return &ConflictError{}
		}
		return s.repo.AppendHistory(ctx, tx, &model.ActivityLog{
			RequisitionID: id,
			ActorID:       actor.UserID,
			Action:        model.ActionSubmit,
			FromStatus:    &from,
			ToStatus:      &to,
		})
	})
	if err != nil {
		return nil, s.classify(err)
	}

	metrics.StatusTransitions.WithLabelValues(string(from), string(to)).Inc()
	s.notifySubmitted(ctx, id, requisition.LocationID, actor)

	return s.reload(ctx, id)
}

// ── Edit items ───────────────────────────────────────────────────────────────

func (s *requisitionService) EditItems(ctx context.Context, actor policy.Actor, id uuid.UUID, req dto.EditItemsRequest) (*dto.RequisitionResponse, error) {
	requisition, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !policy.CanEditRequisition(actor, ref(requisition)) {
		return nil, errForbidden("you cannot edit this requisition")
	}
	if req.Comment == "" {
		return nil, errValidation("a comment describing the change is required")
	}
	// Line items freeze once goods are fully received; CLOSED stays terminal.
	if requisition.Status == model.StatusReceived || requisition.Status == model.StatusClosed {
		return nil, errBusinessRule("cannot edit items of a %s requisition", requisition.Status)
	}

	byID := itemIndex(requisition.Items)
	updates := make(map[uuid.UUID]map[string]any, len(req.Items))
	for _, it := range req.Items {
		itemID, err := uuid.Parse(it.ID)
		if err != nil {
			return nil, errValidation("invalid item id %q", it.ID)
		}
		if _, ok := byID[itemID]; !ok {
			return nil, errValidation("item %s does not belong to this requisition", it.ID)
		}
		if it.RequestedQty != nil && *it.RequestedQty <= 0 {
			return nil, errValidation("requested quantity must be positive")
		}
		if it.ApprovedQty != nil && *it.ApprovedQty < 0 {
			return nil, errValidation("approved quantity cannot be negative")
		}
		fields := map[string]any{}
		if it.RequestedQty != nil {
			fields["requested_qty"] = *it.RequestedQty
		}
		if it.ApprovedQty != nil {
			fields["approved_qty"] = *it.ApprovedQty
		}
		if it.Note != nil {
			fields["note"] = *it.Note
		}
		if len(fields) > 0 {
			updates[itemID] = fields
		}
	}

	// A staff edit on a pre-order requisition marks it EDITED so the requester
	// can see that quantities were adjusted. Drafts and anything already
	// ordered keep their status: an edit must never walk a requisition
	// backwards through the lifecycle.
	from := requisition.Status
	to := from
	if (actor.Role == model.RoleAdmin || actor.Role == model.RoleProcurement) &&
		(from == model.StatusSubmitted || from == model.StatusEdited) {
		to = model.StatusEdited
	}

	err = runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		ok, err := s.repo.UpdateGuarded(ctx, tx, id, req.Version, map[string]any{"status": to})
		if err != nil {
			return err
		}
		if !ok {
			return &ConflictError{}
		}
		for itemID, fields := range updates {
			if err := s.repo.UpdateItemFields(ctx, tx, itemID, fields); err != nil {
				return err
			}
		}
		comment := req.Comment
		return s.repo.AppendHistory(ctx, tx, &model.ActivityLog{
			RequisitionID: id,
			ActorID:       actor.UserID,
			Action:        model.ActionEdit,
			FromStatus:    &from,
			ToStatus:      &to,
			Message:       &comment,
		})
	})
	if err != nil {
		return nil, s.classify(err)
	}

	if from != to {
		metrics.StatusTransitions.WithLabelValues(string(from), string(to)).Inc()
	}
	s.notifyEdited(ctx, requisition, actor, req.Comment)

	return s.reload(ctx, id)
}

// ── Receive items ────────────────────────────────────────────────────────────

func (s *requisitionService) ReceiveItems(ctx context.Context, actor policy.Actor, id uuid.UUID, req dto.ReceiveItemsRequest) (*dto.RequisitionResponse, error) {
	requisition, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !policy.CanReceiveItems(actor, ref(requisition)) {
		return nil, errForbidden("you cannot record receipts for this requisition")
	}

	byID := itemIndex(requisition.Items)
	merged := make([]model.RequisitionItem, len(requisition.Items))
	copy(merged, requisition.Items)
	updates := make(map[uuid.UUID]int, len(req.Items))
	for _, it := range req.Items {
		itemID, err := uuid.Parse(it.ID)
		if err != nil {
			return nil, errValidation("invalid item id %q", it.ID)
		}
		idx, ok := byID[itemID]
		if !ok {
			return nil, errValidation("item %s does not belong to this requisition", it.ID)
		}
		if it.ReceivedQty < 0 {
			return nil, errValidation("received quantity cannot be negative")
		}
		qty := it.ReceivedQty
		merged[idx].ReceivedQty = &qty
		updates[itemID] = qty
	}

	// Status is recomputed from the merged line state, not chosen by the
	// caller: full coverage is RECEIVED, anything above zero is
	// PARTIALLY_RECEIVED, otherwise the status stays where it was.
	from := requisition.Status
	to := from
	switch {
	case model.AllItemsReceived(merged):
		to = model.StatusReceived
	case model.AnyItemReceived(merged):
		to = model.StatusPartiallyReceived
	}

	err = runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		ok, err := s.repo.UpdateGuarded(ctx, tx, id, req.Version, map[string]any{"status": to})
		if err != nil {
			return err
		}
		if !ok {
			return &ConflictError{}
		}
		for itemID, qty := range updates {
			if err := s.repo.UpdateItemFields(ctx, tx, itemID, map[string]any{"received_qty": qty}); err != nil {
				return err
			}
		}
		return s.repo.AppendHistory(ctx, tx, &model.ActivityLog{
			RequisitionID: id,
			ActorID:       actor.UserID,
			Action:        model.ActionReceive,
			FromStatus:    &from,
			ToStatus:      &to,
			Message:       req.Comment,
		})
	})
	if err != nil {
		return nil, s.classify(err)
	}

	if from != to {
		metrics.StatusTransitions.WithLabelValues(string(from), string(to)).Inc()
		s.notifyStatusChanged(ctx, requisition, actor, from, to, req.Comment)
	}

	return s.reload(ctx, id)
}

// ── Change status ────────────────────────────────────────────────────────────

func (s *requisitionService) ChangeStatus(ctx context.Context, actor policy.Actor, id uuid.UUID, req dto.ChangeStatusRequest) (*dto.RequisitionResponse, error) {
	if !policy.CanChangeStatus(actor) {
		return nil, errForbidden("only procurement staff can change requisition status")
	}

	requisition, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	to := model.RequisitionStatus(req.Status)
	if !to.Valid() {
		return nil, errValidation("unknown status %q", req.Status)
	}
	from := requisition.Status
	if !from.CanTransitionTo(to) {
		return nil, errBusinessRule("cannot move a requisition from %s to %s", from, to)
	}
	if to == model.StatusClosed && !model.AllItemsReceived(requisition.Items) {
		return nil, errBusinessRule("cannot close: some items have not been fully received")
	}

	fields := map[string]any{"status": to}
	if req.PONumber != nil {
		fields["po_number"] = *req.PONumber
	}
	if req.InvoiceID != nil {
		fields["invoice_id"] = *req.InvoiceID
	}

	err = runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		ok, err := s.repo.UpdateGuarded(ctx, tx, id, req.Version, fields)
		if err != nil {
			return err
		}
		if !ok {
			return &ConflictError{}
		}
		return s.repo.AppendHistory(ctx, tx, &model.ActivityLog{
			RequisitionID: id,
			ActorID:       actor.UserID,
			Action:        model.StatusChangeAction(to),
			FromStatus:    &from,
			ToStatus:      &to,
			Message:       req.Comment,
		})
	})
	if err != nil {
		return nil, s.classify(err)
	}

	metrics.StatusTransitions.WithLabelValues(string(from), string(to)).Inc()
	s.notifyStatusChanged(ctx, requisition, actor, from, to, req.Comment)

	if to == model.StatusOrdered && s.notifier != nil {
		job := worker.PurchaseOrderJob{RequisitionID: id.String(), ActorID: actor.UserID.String()}
		if err := s.notifier.EnqueuePurchaseOrder(ctx, job); err != nil {
			log.Warn().Err(err).Str("requisition_id", id.String()).Msg("enqueue purchase order failed")
		}
	}

	return s.reload(ctx, id)
}

// ── Comments and attachments ─────────────────────────────────────────────────

// AddComment appends a COMMENT history entry. Comments do not touch the
// requisition row, so they carry no version token and can never conflict.
func (s *requisitionService) AddComment(ctx context.Context, actor policy.Actor, id uuid.UUID, req dto.CommentRequest) (*dto.RequisitionResponse, error) {
	requisition, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !policy.CanAccessRequisition(actor, ref(requisition)) {
		return nil, errForbidden("you do not have access to this requisition")
	}

	message := req.Message
	err = runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		return s.repo.AppendHistory(ctx, tx, &model.ActivityLog{
			RequisitionID: id,
			ActorID:       actor.UserID,
			Action:        model.ActionComment,
			Message:       &message,
		})
	})
	if err != nil {
		return nil, err
	}
	return s.reload(ctx, id)
}

func (s *requisitionService) AddAttachment(ctx context.Context, actor policy.Actor, id uuid.UUID, req dto.CreateAttachmentRequest) (*dto.AttachmentResponse, error) {
	requisition, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !policy.CanAccessRequisition(actor, ref(requisition)) {
		return nil, errForbidden("you do not have access to this requisition")
	}

	attachment := &model.Attachment{
		RequisitionID: id,
		UploadedByID:  actor.UserID,
		URL:           req.URL,
		Type:          model.AttachmentType(req.Type),
	}
	if err := s.repo.CreateAttachment(ctx, attachment); err != nil {
		return nil, err
	}
	resp := mapAttachment(*attachment)
	return &resp, nil
}

// ── Read and delete ──────────────────────────────────────────────────────────

func (s *requisitionService) Get(ctx context.Context, actor policy.Actor, id uuid.UUID) (*dto.RequisitionResponse, error) {
	requisition, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !policy.CanAccessRequisition(actor, ref(requisition)) {
		return nil, errForbidden("you do not have access to this requisition")
	}
	resp := mapRequisition(requisition)
	return &resp, nil
}

func (s *requisitionService) List(ctx context.Context, actor policy.Actor, filter dto.RequisitionFilter) (*dto.RequisitionListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 20
	}

	var scope *repository.RequisitionScope
	if actor.Role == model.RoleRequester {
		scope = &repository.RequisitionScope{
			CreatedByID: actor.UserID,
			LocationIDs: actor.LocationIDs,
		}
	}

	reqs, total, err := s.repo.List(ctx, filter, scope)
	if err != nil {
		return nil, err
	}

	data := make([]dto.RequisitionResponse, len(reqs))
	for i := range reqs {
		data[i] = mapRequisition(&reqs[i])
	}
	totalPages := int((total + int64(filter.Limit) - 1) / int64(filter.Limit))
	return &dto.RequisitionListResponse{
		Data: data,
		Pagination: dto.Pagination{
			Page:       filter.Page,
			Limit:      filter.Limit,
			Total:      total,
			TotalPages: totalPages,
		},
	}, nil
}

func (s *requisitionService) Delete(ctx context.Context, actor policy.Actor, id uuid.UUID) error {
	requisition, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	if !policy.CanDeleteRequisition(actor, ref(requisition)) {
		return errForbidden("you cannot delete this requisition")
	}
	return s.repo.Delete(ctx, id)
}

// ── Internals ────────────────────────────────────────────────────────────────

func (s *requisitionService) load(ctx context.Context, id uuid.UUID) (*model.Requisition, error) {
	requisition, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Entity: "requisition"}
		}
		return nil, err
	}
	return requisition, nil
}

func (s *requisitionService) reload(ctx context.Context, id uuid.UUID) (*dto.RequisitionResponse, error) {
	requisition, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := mapRequisition(requisition)
	return &resp, nil
}

// classify keeps conflict accounting in one place.
func (s *requisitionService) classify(err error) error {
	var conflict *ConflictError
	if errors.As(err, &conflict) {
		metrics.VersionConflicts.Inc()
	}
	return err
}

func itemIndex(items []model.RequisitionItem) map[uuid.UUID]int {
	byID := make(map[uuid.UUID]int, len(items))
	for i, it := range items {
		byID[it.ID] = i
	}
	return byID
}

// ── Notifications ────────────────────────────────────────────────────────────

func (s *requisitionService) notifySubmitted(ctx context.Context, id, locationID uuid.UUID, actor policy.Actor) {
	if s.notifier == nil {
		return
	}
	staff, err := s.users.ListByRole(ctx, model.RoleProcurement)
	if err != nil {
		log.Warn().Err(err).Msg("resolve notification recipients failed")
		return
	}
	recipients := make([]string, 0, len(staff))
	for _, u := range staff {
		recipients = append(recipients, u.Email)
	}
	ev := worker.NotificationEvent{
		Kind:          worker.KindSubmitted,
		RequisitionID: id.String(),
		LocationName:  s.locationName(ctx, locationID),
		ActorName:     s.actorName(ctx, actor.UserID),
		Recipients:    recipients,
	}
	if err := s.notifier.EnqueueNotification(ctx, ev); err != nil {
		log.Warn().Err(err).Str("requisition_id", id.String()).Msg("enqueue notification failed")
	}
}

func (s *requisitionService) notifyEdited(ctx context.Context, requisition *model.Requisition, actor policy.Actor, comment string) {
	// Only staff edits notify the creator; a creator editing their own draft
	// does not email themselves.
	if s.notifier == nil || actor.UserID == requisition.CreatedByID {
		return
	}
	if requisition.CreatedBy == nil || requisition.CreatedBy.Email == "" {
		return
	}
	ev := worker.NotificationEvent{
		Kind:          worker.KindEdited,
		RequisitionID: requisition.ID.String(),
		LocationName:  requisitionLocationName(requisition),
		ActorName:     s.actorName(ctx, actor.UserID),
		Message:       &comment,
		Recipients:    []string{requisition.CreatedBy.Email},
	}
	if err := s.notifier.EnqueueNotification(ctx, ev); err != nil {
		log.Warn().Err(err).Str("requisition_id", requisition.ID.String()).Msg("enqueue notification failed")
	}
}

func (s *requisitionService) notifyStatusChanged(ctx context.Context, requisition *model.Requisition, actor policy.Actor, from, to model.RequisitionStatus, comment *string) {
	if s.notifier == nil || actor.UserID == requisition.CreatedByID {
		return
	}
	if requisition.CreatedBy == nil || requisition.CreatedBy.Email == "" {
		return
	}
	fromStr, toStr := string(from), string(to)
	ev := worker.NotificationEvent{
		Kind:          worker.KindStatusChanged,
		RequisitionID: requisition.ID.String(),
		LocationName:  requisitionLocationName(requisition),
		ActorName:     s.actorName(ctx, actor.UserID),
		FromStatus:    &fromStr,
		ToStatus:      &toStr,
		Message:       comment,
		Recipients:    []string{requisition.CreatedBy.Email},
	}
	if err := s.notifier.EnqueueNotification(ctx, ev); err != nil {
		log.Warn().Err(err).Str("requisition_id", requisition.ID.String()).Msg("enqueue notification failed")
	}
}

func (s *requisitionService) actorName(ctx context.Context, id uuid.UUID) string {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return "someone"
	}
	return user.Name
}

func (s *requisitionService) locationName(ctx context.Context, id uuid.UUID) string {
	loc, err := s.locations.FindByID(ctx, id)
	if err != nil {
		return ""
	}
	return loc.Name
}

func requisitionLocationName(r *model.Requisition) string {
	if r.Location != nil {
		return r.Location.Name
	}
	return ""
}

// ── Mapping ──────────────────────────────────────────────────────────────────

func mapRequisition(r *model.Requisition) dto.RequisitionResponse {
	resp := dto.RequisitionResponse{
		ID:          r.ID.String(),
		LocationID:  r.LocationID.String(),
		CreatedByID: r.CreatedByID.String(),
		Status:      string(r.Status),
		Note:        r.Note,
		PONumber:    r.PONumber,
		InvoiceID:   r.InvoiceID,
		Version:     r.Version,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
	if r.Location != nil {
		resp.LocationName = r.Location.Name
	}
	if r.CreatedBy != nil {
		resp.CreatedBy = r.CreatedBy.Name
	}
	for _, it := range r.Items {
		item := dto.RequisitionItemResponse{
			ID:           it.ID.String(),
			ProductID:    it.ProductID.String(),
			RequestedQty: it.RequestedQty,
			ApprovedQty:  it.ApprovedQty,
			ReceivedQty:  it.ReceivedQty,
			Note:         it.Note,
		}
		if it.Product != nil {
			p := mapProduct(*it.Product)
			item.Product = &p
		}
		resp.Items = append(resp.Items, item)
	}
	for _, h := range r.History {
		entry := dto.HistoryEntryResponse{
			ID:        h.ID.String(),
			ActorID:   h.ActorID.String(),
			Action:    string(h.Action),
			Message:   h.Message,
			CreatedAt: h.CreatedAt,
		}
		if h.Actor != nil {
			entry.ActorName = h.Actor.Name
		}
		if h.FromStatus != nil {
			v := string(*h.FromStatus)
			entry.FromStatus = &v
		}
		if h.ToStatus != nil {
			v := string(*h.ToStatus)
			entry.ToStatus = &v
		}
		resp.History = append(resp.History, entry)
	}
	for _, a := range r.Attachments {
		resp.Attachments = append(resp.Attachments, mapAttachment(a))
	}
	return resp
}

func mapAttachment(a model.Attachment) dto.AttachmentResponse {
	return dto.AttachmentResponse{
		ID:           a.ID.String(),
		URL:          a.URL,
		Type:         string(a.Type),
		UploadedByID: a.UploadedByID.String(),
		CreatedAt:    a.CreatedAt,
	}
}
