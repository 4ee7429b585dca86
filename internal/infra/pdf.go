package infra

// pdf.go — purchase-order PDF generation using go-pdf/fpdf.
// Rendered asynchronously when a requisition transitions to ORDERED:
//   - Header with PO number and order date
//   - Location and requester block
//   - Item table (product, requested, approved)
//   - Note footer
//
// The output file is saved to storagePath/po_{poNumber|id}.pdf.

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-pdf/fpdf"

	"github.com/CroSSer23/spa-procurement/internal/model"
)

// GeneratePurchaseOrderPDF renders the PO document for an ordered requisition.
// storagePath is created if needed. Returns the absolute path of the file.
func GeneratePurchaseOrderPDF(req *model.Requisition, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	ref := req.ID.String()
	if req.PONumber != nil && *req.PONumber != "" {
		ref = *req.PONumber
	}
	filePath := filepath.Join(storagePath, fmt.Sprintf("po_%s.pdf", ref))

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 30

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(contentW, 9, "Purchase Order", "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(contentW, 6, fmt.Sprintf("PO: %s", ref), "", 1, "L", false, 0, "")
	pdf.CellFormat(contentW, 6, req.CreatedAt.Format("02 Jan 2006"), "", 1, "L", false, 0, "")
	pdf.Ln(2)

	// ── Location / requester block ───────────────────────────────────────────
	if req.Location != nil {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(contentW, 6, "Deliver to", "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		pdf.CellFormat(contentW, 5, req.Location.Name, "", 1, "L", false, 0, "")
		if req.Location.Address != nil {
			pdf.CellFormat(contentW, 5, *req.Location.Address, "", 1, "L", false, 0, "")
		}
	}
	if req.CreatedBy != nil {
		pdf.SetFont("Helvetica", "", 9)
		pdf.CellFormat(contentW, 5, fmt.Sprintf("Requested by %s", req.CreatedBy.Name), "", 1, "L", false, 0, "")
	}
	pdf.Ln(3)

	// ── Item table ───────────────────────────────────────────────────────────
	col1 := contentW * 0.56 // product
	col2 := contentW * 0.12 // unit
	col3 := contentW * 0.16 // requested
	col4 := contentW * 0.16 // approved

	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(col1, 6, "Product", "B", 0, "L", false, 0, "")
	pdf.CellFormat(col2, 6, "Unit", "B", 0, "C", false, 0, "")
	pdf.CellFormat(col3, 6, "Requested", "B", 0, "R", false, 0, "")
	pdf.CellFormat(col4, 6, "Approved", "B", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	for _, item := range req.Items {
		name := item.ProductID.String()
		unit := ""
		if item.Product != nil {
			name = item.Product.Name
			unit = string(item.Product.Unit)
		}
		approved := "-"
		if item.ApprovedQty != nil {
			approved = fmt.Sprintf("%d", *item.ApprovedQty)
		}
		pdf.CellFormat(col1, 6, name, "", 0, "L", false, 0, "")
		pdf.CellFormat(col2, 6, unit, "", 0, "C", false, 0, "")
		pdf.CellFormat(col3, 6, fmt.Sprintf("%d", item.RequestedQty), "", 0, "R", false, 0, "")
		pdf.CellFormat(col4, 6, approved, "", 1, "R", false, 0, "")
	}
	pdf.Ln(4)

	if req.Note != nil && *req.Note != "" {
		pdf.SetFont("Helvetica", "I", 9)
		pdf.MultiCell(contentW, 5, "Note: "+*req.Note, "", "L", false)
	}

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}
	return filePath, nil
}
