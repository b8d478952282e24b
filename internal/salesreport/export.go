package salesreport

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/dailymart/admin-dashboard/internal/shared"
)

// ErrNothingToExport is returned when the loaded report has no transactions.
var ErrNothingToExport = errors.New("salesreport: nothing to export")

// SheetName is the worksheet of the spreadsheet export.
const SheetName = "Laporan Transaksi"

// Export content types.
const (
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	ContentTypeCSV  = "text/csv; charset=utf-8"
)

var sheetHeader = []any{
	"No", "ID Transaksi", "Tanggal", "Jenis", "Pelanggan", "Petugas", "Kurir",
	"Total", "Pembayaran", "Status", "Pengiriman", "Produk", "Qty", "Subtotal",
}

var sheetWidths = []float64{5, 10, 18, 8, 20, 15, 15, 15, 12, 12, 15, 25, 8, 15}

var csvHeader = []string{
	"ID Transaksi", "Tanggal", "Jenis", "Pelanggan", "Total", "Pembayaran",
	"Status", "Pengiriman", "Produk", "Qty", "Subtotal",
}

// FileName builds the download name, e.g.
// Laporan_Transaksi_Cabang_Pusat_2024-05-01_1530.xlsx.
func FileName(branchName, ext string, now time.Time) string {
	name := strings.Join(strings.Fields(branchName), "_")
	if name == "" {
		name = "cabang"
	}
	stamp := now.Format("2006-01-02")
	if ext == "xlsx" {
		stamp = now.Format("2006-01-02_1504")
	}
	return fmt.Sprintf("Laporan_Transaksi_%s_%s.%s", name, stamp, ext)
}

// SheetRows lays out the spreadsheet: title block, summary block, the
// flattened detail table with a blank row between transactions and the
// grand total.
func SheetRows(report Report, now time.Time) [][]any {
	s := report.Summary
	rows := [][]any{
		{"LAPORAN TRANSAKSI PER CABANG"},
		{"Cabang: " + report.Branch.Name},
		{"Periode: " + report.Params.Period()},
		{"Tanggal Ekspor: " + shared.FormatDateTime(now)},
		{},
		{"SUMMARY"},
		{"Total Transaksi", s.TotalTransactions},
		{"Total Pendapatan", shared.FormatNumber(s.TotalRevenue.Float())},
		{"Rata-rata Transaksi", shared.FormatNumber(s.AverageTransaction.Float())},
		{"Transaksi Selesai", s.CompletedCount},
		{"Transaksi Dibatalkan", s.CancelledCount},
		{"Transaksi Pending", s.PendingCount},
		{"Transaksi Dibayar", s.PaidCount},
		{},
		sheetHeader,
	}
	for i, row := range Flatten(report.Transactions) {
		if row.First && i > 0 {
			rows = append(rows, []any{})
		}
		rows = append(rows, sheetCells(row))
	}
	rows = append(rows, []any{})
	rows = append(rows, []any{"TOTAL KESELURUHAN", "", "", "", "", "", "", shared.FormatNumber(s.TotalRevenue.Float())})
	return rows
}

func sheetCells(row Row) []any {
	item := []any{row.Product, row.Qty, shared.FormatNumber(row.Subtotal)}
	if row.Placeholder {
		item = []any{"-", 0, "Rp 0"}
	}
	if !row.First {
		return append([]any{"", "", "", "", "", "", "", "", "", "", ""}, item...)
	}
	t := row.Transaction
	return append([]any{
		row.Number,
		t.ID,
		shared.FormatDateTime(t.Time()),
		t.TypeLabel(),
		t.CustomerName(),
		t.StaffName(),
		t.CourierName(),
		shared.FormatNumber(t.Total.Float()),
		t.PaymentLabel(),
		t.StatusLabel(),
		t.DeliveryLabel(),
	}, item...)
}

// WriteXLSX writes the spreadsheet export of report.
func WriteXLSX(w io.Writer, report Report, now time.Time) error {
	if report.Empty() {
		return ErrNothingToExport
	}
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("xlsx: rename sheet: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("xlsx: style: %w", err)
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#D3D3D3"}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("xlsx: header style: %w", err)
	}

	rows := SheetRows(report, now)
	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return fmt.Errorf("xlsx: row %d: %w", i+1, err)
		}
	}
	for _, r := range []int{1, 6, len(rows)} {
		cell, _ := excelize.CoordinatesToCellName(1, r)
		if err := f.SetCellStyle(SheetName, cell, cell, bold); err != nil {
			return err
		}
	}
	headerRow := 15
	first, _ := excelize.CoordinatesToCellName(1, headerRow)
	last, _ := excelize.CoordinatesToCellName(len(sheetHeader), headerRow)
	if err := f.SetCellStyle(SheetName, first, last, headerStyle); err != nil {
		return err
	}
	for i, width := range sheetWidths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(SheetName, col, col, width); err != nil {
			return err
		}
	}
	return f.Write(w)
}

// WriteCSV writes the delimited export: a header and one row per line item
// with raw values. Transaction columns are only filled on a transaction's
// first row. Transactions without line items are skipped.
func WriteCSV(w io.Writer, report Report) error {
	if report.Empty() {
		return ErrNothingToExport
	}
	writer := csv.NewWriter(w)
	if err := writer.Write(csvHeader); err != nil {
		return err
	}
	for _, row := range Flatten(report.Transactions) {
		if row.Placeholder {
			continue
		}
		record := make([]string, 0, len(csvHeader))
		if row.First {
			t := row.Transaction
			record = append(record,
				strconv.FormatInt(t.ID, 10),
				shared.FormatDateTime(t.Time()),
				t.TypeLabel(),
				t.CustomerName(),
				formatFloat(t.Total.Float()),
				t.PaymentMethod,
				t.Status,
				t.DeliveryStatus,
			)
		} else {
			// Continuation rows only carry the line item.
			record = append(record, "", "", "", "", "", "", "", "")
		}
		record = append(record, row.Product, formatFloat(row.Qty), formatFloat(row.Subtotal))
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
