package service

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"apartment-be-svc/internal/billing"
	"apartment-be-svc/internal/repository"
)

const exportSheetName = "Invoices"

// ExportToExcel writes the matching invoices to an .xlsx workbook and returns it with a file name
func (s *invoiceService) ExportToExcel(ctx context.Context, filter InvoiceExportFilter) ([]byte, string, error) {
	repoFilter := repository.InvoiceFilter{Month: filter.Month, Year: filter.Year}
	if filter.Status != "" {
		status, err := billing.ParseInvoiceStatus(filter.Status)
		if err != nil {
			return nil, "", newError(ErrInvalidInput, "status must be paid or unpaid")
		}
		repoFilter.Status = string(status)
	}

	invoices, err := s.invoiceRepo.ListForExport(ctx, repoFilter)
	if err != nil {
		s.logger.WithError(err).Error("Failed to load invoices for export")
		return nil, "", err
	}

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			s.logger.WithError(err).Warn("Failed to close Excel file")
		}
	}()

	if err := f.SetSheetName("Sheet1", exportSheetName); err != nil {
		return nil, "", fmt.Errorf("failed to create sheet: %w", err)
	}

	headers := []string{"No", "Invoice ID", "Room", "Title", "Period", "Amount", "Status", "Due Date"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(exportSheetName, cell, header)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold: true,
		},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#D3D3D3"},
			Pattern: 1,
		},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err == nil {
		f.SetCellStyle(exportSheetName, "A1", "H1", headerStyle)
	}

	var paid, unpaid int64
	for i, model := range invoices {
		inv := toInvoice(model)
		row := i + 2
		values := []interface{}{
			i + 1,
			inv.ID,
			inv.RoomNumber,
			inv.Title,
			billing.MonthLabel(inv.Month, inv.Year),
			inv.TotalAmount,
			string(inv.Status),
			billing.FormatDate(inv.DueDate),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			f.SetCellValue(exportSheetName, cell, v)
		}

		switch inv.Status {
		case billing.StatusPaid:
			paid += inv.TotalAmount
		case billing.StatusUnpaid:
			unpaid += inv.TotalAmount
		default:
			s.logger.WithField("invoice_id", inv.ID).Error("Invoice has an unknown status, export aborted")
			return nil, "", fmt.Errorf("invoice %d: %w: %q", inv.ID, billing.ErrUnknownInvoiceStatus, inv.Status)
		}
	}

	summaryRow := len(invoices) + 3
	summary := [][2]interface{}{
		{"Collected", billing.FormatCurrency(paid)},
		{"Outstanding", billing.FormatCurrency(unpaid)},
		{"Collection rate", fmt.Sprintf("%d%%", billing.CollectionRate(paid, unpaid))},
	}
	for i, pair := range summary {
		labelCell, _ := excelize.CoordinatesToCellName(5, summaryRow+i)
		valueCell, _ := excelize.CoordinatesToCellName(6, summaryRow+i)
		f.SetCellValue(exportSheetName, labelCell, pair[0])
		f.SetCellValue(exportSheetName, valueCell, pair[1])
	}

	f.SetColWidth(exportSheetName, "C", "D", 24)
	f.SetColWidth(exportSheetName, "F", "H", 16)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", fmt.Errorf("failed to write Excel file: %w", err)
	}

	filename := "invoices"
	if filter.Month != nil && filter.Year != nil {
		filename = fmt.Sprintf("invoices_%d_%02d", *filter.Year, *filter.Month)
	} else if filter.Year != nil {
		filename = fmt.Sprintf("invoices_%d", *filter.Year)
	}
	if repoFilter.Status != "" {
		filename += "_" + repoFilter.Status
	}

	s.logger.WithField("rows", len(invoices)).Info("Invoices exported to Excel")
	return buf.Bytes(), filename + ".xlsx", nil
}
