package excel

import (
	"errors"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/iliyamo/passenger-registry/internal/model"
)

// ErrEmptyWorkbook is returned when the first worksheet holds no data rows.
// The importer rejects such files before attempting any creates.
var ErrEmptyWorkbook = errors.New("spreadsheet file appears to be empty")

// columnWidths matches the layout of the original export files, indexed in
// Labels order.
var columnWidths = []float64{20, 15, 15, 12, 15, 20, 15, 15, 15, 18, 12, 16, 15, 15, 20}

// amountLabels are the columns written as numeric cells on export.
var amountLabels = map[string]bool{
	"Slip Payment Receive": true,
	"Commission":           true,
	"Slip Payment Send":    true,
	"Profit Margin":        true,
}

// ParseWorkbook reads an .xlsx/.xls stream and returns the data rows of the
// first worksheet keyed by the header labels in its first row. Any other
// sheets are ignored. An unreadable file or a sheet without data rows is a
// parse failure.
func ParseWorkbook(r io.Reader) ([]Row, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("read workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrEmptyWorkbook
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read worksheet %q: %w", sheets[0], err)
	}
	if len(rows) < 2 {
		return nil, ErrEmptyWorkbook
	}

	headers := rows[0]
	out := make([]Row, 0, len(rows)-1)
	for _, cells := range rows[1:] {
		row := Row{}
		for i, header := range headers {
			if header == "" || i >= len(cells) {
				continue
			}
			row[header] = cells[i]
		}
		if len(row) > 0 {
			out = append(out, row)
		}
	}
	if len(out) == 0 {
		return nil, ErrEmptyWorkbook
	}
	return out, nil
}

// BuildPassengerWorkbook produces an export workbook: one header row with
// the fifteen labels followed by one row per record, preserving the order
// of the given sequence.
func BuildPassengerWorkbook(records []*model.Passenger) (*excelize.File, error) {
	rows := make([]Row, 0, len(records))
	for _, p := range records {
		rows = append(rows, ToRow(p))
	}
	return buildWorkbook("Passengers", Labels, columnWidths, rows, true)
}

// BuildTemplateWorkbook produces the import template: the header row plus a
// single example row with fixed sample values.
func BuildTemplateWorkbook() (*excelize.File, error) {
	sample := Row{
		"Passenger Name":       "John Doe",
		"Passport":             "AB123456",
		"Registration No":      "REG001",
		"Report":               "FIT",
		"Wafid Status":         "Approved",
		"Unfit Comment":        "",
		"Registration Date":    model.Today().String(),
		"Slip File Submit":     "Yes",
		"Sender":               "Agent 1",
		"Slip Payment Receive": "500",
		"Commission":           "50",
		"Slip Payment Send":    "450",
		"Profit Margin":        "50",
		"Code":                 "CODE001",
		"Remark":               "Sample data",
	}
	return buildWorkbook("Template", Labels, columnWidths, []Row{sample}, true)
}

// instructionRow is one line of the static import reference table.
type instructionRow struct {
	Column      string
	Required    string
	Description string
	Example     string
}

var instructions = []instructionRow{
	{"Passenger Name", "Yes", "Full name of the passenger", "John Doe"},
	{"Passport", "Yes", "Passport number", "AB123456"},
	{"Registration No", "Yes", "Unique registration number", "REG001"},
	{"Report", "No", "FIT or UNFIT status", "FIT"},
	{"Wafid Status", "No", "Status like Pending, Approved, Rejected", "Approved"},
	{"Unfit Comment", "No", "Reason if unfit", "Medical condition"},
	{"Registration Date", "No", "Date of registration (YYYY-MM-DD format)", "2026-02-09"},
	{"Slip File Submit", "No", "Whether slip file was submitted (Yes or No)", "Yes"},
	{"Sender", "No", "Name of sender", "Agent 1"},
	{"Slip Payment Receive", "No", "Payment amount received", "500"},
	{"Commission", "No", "Commission amount", "50"},
	{"Slip Payment Send", "No", "Payment amount sent", "450"},
	{"Profit Margin", "No", "Profit margin value", "50"},
	{"Code", "No", "Reference code", "CODE001"},
	{"Remark", "No", "Additional remarks", "Any notes"},
}

// BuildInstructionsWorkbook produces the static four-column reference table
// describing each import column.
func BuildInstructionsWorkbook() (*excelize.File, error) {
	headers := []string{"Column", "Required", "Description", "Example"}
	rows := make([]Row, 0, len(instructions))
	for _, ins := range instructions {
		rows = append(rows, Row{
			"Column":      ins.Column,
			"Required":    ins.Required,
			"Description": ins.Description,
			"Example":     ins.Example,
		})
	}
	return buildWorkbook("Instructions", headers, []float64{20, 10, 30, 20}, rows, false)
}

func buildWorkbook(sheet string, headers []string, widths []float64, rows []Row, freeze bool) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}

	header := make([]interface{}, len(headers))
	for i, h := range headers {
		header[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, err
	}

	for i, row := range rows {
		cells := make([]interface{}, len(headers))
		for j, label := range headers {
			cells[j] = cellValue(label, row[label])
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(sheet, cell, &cells); err != nil {
			return nil, err
		}
	}

	for i, w := range widths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetColWidth(sheet, col, col, w); err != nil {
			return nil, err
		}
	}

	if freeze {
		if err := f.SetPanes(sheet, &excelize.Panes{
			Freeze:      true,
			YSplit:      1,
			TopLeftCell: "A2",
			ActivePane:  "bottomLeft",
		}); err != nil {
			return nil, err
		}
	}
	return f, nil
}

// cellValue keeps monetary columns numeric in generated files; everything
// else is written as text.
func cellValue(label, v string) interface{} {
	if amountLabels[label] {
		return parseAmount(v)
	}
	return v
}
