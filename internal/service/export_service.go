package service

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/CroSSer23/spa-procurement/internal/dto"
	"github.com/CroSSer23/spa-procurement/internal/repository"
)

// ExportService renders requisition lists as xlsx workbooks for the
// procurement team. The route is staff-only; the export always sees the full
// data set, subject only to the caller's filter.
type ExportService interface {
	RequisitionsXLSX(ctx context.Context, filter dto.RequisitionFilter) ([]byte, error)
}

type exportService struct {
	repo repository.RequisitionRepository
}

func NewExportService(repo repository.RequisitionRepository) ExportService {
	return &exportService{repo: repo}
}

const exportSheet = "Requisitions"

func (s *exportService) RequisitionsXLSX(ctx context.Context, filter dto.RequisitionFilter) ([]byte, error) {
	filter.Page = 1
	filter.Limit = 10000 // exports are unpaginated

	reqs, _, err := s.repo.List(ctx, filter, nil)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName("Sheet1", exportSheet)

	headers := []string{"ID", "Location", "Created By", "Status", "PO Number", "Invoice",
		"Items", "Requested", "Approved", "Received", "Created At", "Updated At"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(exportSheet, cell, h); err != nil {
			return nil, err
		}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"DDDDDD"}, Pattern: 1},
	})
	if err == nil {
		endCell, _ := excelize.CoordinatesToCellName(len(headers), 1)
		_ = f.SetCellStyle(exportSheet, "A1", endCell, headerStyle)
	}

	for i, r := range reqs {
		row := i + 2
		requested, approved, received := 0, 0, 0
		for _, it := range r.Items {
			requested += it.RequestedQty
			if it.ApprovedQty != nil {
				approved += *it.ApprovedQty
			}
			if it.ReceivedQty != nil {
				received += *it.ReceivedQty
			}
		}
		locationName, creatorName := "", ""
		if r.Location != nil {
			locationName = r.Location.Name
		}
		if r.CreatedBy != nil {
			creatorName = r.CreatedBy.Name
		}
		poNumber, invoiceID := "", ""
		if r.PONumber != nil {
			poNumber = *r.PONumber
		}
		if r.InvoiceID != nil {
			invoiceID = *r.InvoiceID
		}
		values := []any{
			r.ID.String(),
			locationName,
			creatorName,
			string(r.Status),
			poNumber,
			invoiceID,
			len(r.Items),
			requested,
			approved,
			received,
			r.CreatedAt.Format("2006-01-02 15:04"),
			r.UpdatedAt.Format("2006-01-02 15:04"),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			if err := f.SetCellValue(exportSheet, cell, v); err != nil {
				return nil, err
			}
		}
	}

	_ = f.SetColWidth(exportSheet, "A", "A", 38)
	_ = f.SetColWidth(exportSheet, "B", "C", 22)
	_ = f.SetColWidth(exportSheet, "K", "L", 18)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
