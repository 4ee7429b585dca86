package service

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/CroSSer23/spa-procurement/internal/dto"
)

func TestRequisitionsXLSX_RendersWorkbook(t *testing.T) {
	f := newFixture(t)
	created := f.create(t, f.requester, false)

	export := NewExportService(f.repo)
	data, err := export.RequisitionsXLSX(context.Background(), dto.RequisitionFilter{})
	require.NoError(t, err)
	require.NotEmpty(t, data)

	wb, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer wb.Close()

	rows, err := wb.GetRows("Requisitions")
	require.NoError(t, err)
	require.Len(t, rows, 2) // header + one requisition
	assert.Equal(t, "ID", rows[0][0])
	assert.Equal(t, created.ID, rows[1][0])
	assert.Equal(t, "SUBMITTED", rows[1][3])

	// The header carries the bold/filled style.
	styleID, err := wb.GetCellStyle("Requisitions", "A1")
	require.NoError(t, err)
	assert.NotZero(t, styleID)
}
