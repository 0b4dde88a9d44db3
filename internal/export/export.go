// Package export writes a transactions view as a downloadable file.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"

	apperrors "finboard/internal/errors"
	"finboard/internal/ledger"
	"finboard/internal/models"
)

// Format is an export file format.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

const sheetName = "Transactions"

// utf8BOM lets spreadsheet applications detect the encoding of a CSV file.
const utf8BOM = "\xEF\xBB\xBF"

var headers = []string{"ID", "Date", "Description", "Category", "Type", "Amount", "Payment Method", "Status"}

// ParseFormat validates a format name. An empty name selects CSV.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case "", FormatCSV:
		return FormatCSV, nil
	case FormatXLSX:
		return FormatXLSX, nil
	}
	return "", apperrors.WithMessage(apperrors.ErrInvalidInput, "format must be csv or xlsx")
}

// ContentType returns the MIME type of f.
func (f Format) ContentType() string {
	if f == FormatXLSX {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "text/csv; charset=utf-8"
}

// Filename returns the download name of an export made at t.
func (f Format) Filename(t time.Time) string {
	return fmt.Sprintf("transactions_%s.%s", t.Format("20060102_150405"), f)
}

// Write encodes records in format f, followed by a totals row.
func Write(w io.Writer, f Format, records []models.Record) error {
	switch f {
	case FormatCSV:
		return writeCSV(w, records)
	case FormatXLSX:
		return writeXLSX(w, records)
	}
	return apperrors.WithMessage(apperrors.ErrInvalidInput, "format must be csv or xlsx")
}

func row(r models.Record) []string {
	return []string{
		r.ID,
		r.OccurredOn.String(),
		r.Description,
		r.Category,
		string(r.Kind),
		strconv.FormatFloat(r.Amount, 'f', 2, 64),
		r.PaymentMethod,
		string(r.Status),
	}
}

func writeCSV(w io.Writer, records []models.Record) error {
	buf := new(bytes.Buffer)
	buf.WriteString(utf8BOM)

	writer := csv.NewWriter(buf)
	if err := writer.Write(headers); err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	for _, r := range records {
		if err := writer.Write(row(r)); err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}
	s := ledger.Summarize(records)
	if err := writer.Write([]string{"", "", "Net", "", "", strconv.FormatFloat(s.Net, 'f', 2, 64), "", ""}); err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if _, err := buf.WriteTo(w); err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

func writeXLSX(w io.Writer, records []models.Record) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"225BA4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	totalStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	_ = f.SetColWidth(sheetName, "A", "A", 38)
	_ = f.SetColWidth(sheetName, "B", "B", 12)
	_ = f.SetColWidth(sheetName, "C", "C", 30)
	_ = f.SetColWidth(sheetName, "D", "H", 16)

	if err := f.SetSheetRow(sheetName, "A1", &headers); err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	_ = f.SetCellStyle(sheetName, "A1", "H1", headerStyle)

	for i, r := range records {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		values := []interface{}{r.ID, r.OccurredOn.String(), r.Description, r.Category, string(r.Kind), r.Amount, r.PaymentMethod, string(r.Status)}
		if err := f.SetSheetRow(sheetName, cell, &values); err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	s := ledger.Summarize(records)
	totalRow := len(records) + 2
	labelCell, _ := excelize.CoordinatesToCellName(3, totalRow)
	amountCell, _ := excelize.CoordinatesToCellName(6, totalRow)
	_ = f.SetCellValue(sheetName, labelCell, "Net")
	_ = f.SetCellValue(sheetName, amountCell, s.Net)
	_ = f.SetCellStyle(sheetName, labelCell, amountCell, totalStyle)

	if err := f.Write(w); err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
