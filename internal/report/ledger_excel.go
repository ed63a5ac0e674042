// Package report renders facility data into downloadable documents.
package report

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/mahamabbas5/HospitalManagement-DSA/internal/model"
)

const (
	PendingSheet = "Pending"
	SettledSheet = "Settled"
)

// LedgerHeader is the first row of both ledger sheets.
var LedgerHeader = []string{"Patient ID", "Amount", "Paid", "Payment Method"}

// LedgerWorkbook builds an .xlsx workbook with one sheet of pending bills
// and one of settled bills, in the order given.
func LedgerWorkbook(pending, settled []model.BillingRecord) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E6F3FF"}, Pattern: 1},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	if err := f.SetSheetName("Sheet1", PendingSheet); err != nil {
		return nil, fmt.Errorf("failed to rename sheet: %w", err)
	}
	if _, err := f.NewSheet(SettledSheet); err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}

	for sheet, rows := range map[string][]model.BillingRecord{PendingSheet: pending, SettledSheet: settled} {
		if err := writeLedgerSheet(f, sheet, rows, headerStyle); err != nil {
			return nil, err
		}
	}
	f.SetActiveSheet(0)

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeLedgerSheet(f *excelize.File, sheet string, rows []model.BillingRecord, headerStyle int) error {
	if err := f.SetSheetRow(sheet, "A1", &LedgerHeader); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	if err := f.SetCellStyle(sheet, "A1", "D1", headerStyle); err != nil {
		return fmt.Errorf("failed to style header: %w", err)
	}
	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		paid := "No"
		if r.Paid {
			paid = "Yes"
		}
		row := []interface{}{r.PatientID, r.Amount, paid, string(r.PaymentMethod)}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}
	return f.SetColWidth(sheet, "A", "D", 16)
}
