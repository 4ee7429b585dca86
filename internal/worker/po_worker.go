package worker

// po_worker.go
// Renders a purchase-order PDF when a requisition is moved to ORDERED, records
// it as an attachment, and emails it to the requisition's creator.

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/CroSSer23/spa-procurement/internal/infra"
	"github.com/CroSSer23/spa-procurement/internal/model"
	"github.com/CroSSer23/spa-procurement/internal/repository"
)

// PurchaseOrderJob is the job envelope sent to QueuePurchaseOrder.
type PurchaseOrderJob struct {
	RequisitionID string `json:"requisition_id"`
	ActorID       string `json:"actor_id"`
}

// PurchaseOrderWorker processes PO PDF jobs from QueuePurchaseOrder.
type PurchaseOrderWorker struct {
	repo        repository.RequisitionRepository
	mailer      EmailSender
	storagePath string
}

func NewPurchaseOrderWorker(repo repository.RequisitionRepository, mailer EmailSender, storagePath string) *PurchaseOrderWorker {
	return &PurchaseOrderWorker{repo: repo, mailer: mailer, storagePath: storagePath}
}

// Process handles one PO job:
//  1. Fetch the requisition with items and relations
//  2. Render the PO PDF
//  3. Record an Attachment row (type PO)
//  4. Email the document to the creator
func (w *PurchaseOrderWorker) Process(ctx context.Context, rdb *redis.Client, raw json.RawMessage) {
	var job PurchaseOrderJob
	if err := json.Unmarshal(raw, &job); err != nil {
		log.Error().Err(err).Msg("po_worker: invalid payload")
		return
	}

	reqID, err := uuid.Parse(job.RequisitionID)
	if err != nil {
		log.Error().Str("requisition_id", job.RequisitionID).Msg("po_worker: invalid requisition_id")
		return
	}
	actorID, err := uuid.Parse(job.ActorID)
	if err != nil {
		log.Error().Str("actor_id", job.ActorID).Msg("po_worker: invalid actor_id")
		return
	}

	req, err := w.repo.FindByID(ctx, reqID)
	if err != nil {
		log.Error().Err(err).Str("requisition_id", job.RequisitionID).Msg("po_worker: requisition not found")
		return
	}

	path, err := infra.GeneratePurchaseOrderPDF(req, w.storagePath)
	if err != nil {
		log.Error().Err(err).Str("requisition_id", job.RequisitionID).Msg("po_worker: pdf generation failed")
		SendToDLQ(ctx, rdb, QueuePurchaseOrder, "po_pdf", raw, err.Error(), 1)
		return
	}

	att := &model.Attachment{
		RequisitionID: req.ID,
		UploadedByID:  actorID,
		URL:           "file://" + path,
		Type:          model.AttachmentPO,
	}
	if err := w.repo.CreateAttachment(ctx, att); err != nil {
		log.Error().Err(err).Str("requisition_id", job.RequisitionID).Msg("po_worker: attachment record failed")
	}

	if req.CreatedBy != nil && req.CreatedBy.Email != "" {
		subject := "Purchase order issued for your requisition"
		body := "Your requisition has been ordered. The purchase order is attached.\n"
		if err := w.mailer.Send(req.CreatedBy.Email, subject, body, path); err != nil {
			log.Error().Err(err).
				Str("to", req.CreatedBy.Email).
				Str("requisition_id", job.RequisitionID).
				Msg("po_worker: email delivery failed")
		}
	}

	log.Info().Str("requisition_id", job.RequisitionID).Str("path", path).Msg("po_worker: purchase order generated")
}
