// Package excel implements the spreadsheet side of the registry: the fixed
// mapping between human-readable column labels and passenger fields, and the
// workbook reader/writers built on top of it. The mapper itself never
// returns errors; malformed files are rejected by the workbook reader and
// bad field values surface later as row validation failures.
package excel

import (
	"strconv"
	"strings"

	"github.com/iliyamo/passenger-registry/internal/model"
)

// Labels is the fixed, ordered set of column headers used for both import
// and export. Header order in generated files follows this slice.
var Labels = []string{
	"Passenger Name",
	"Passport",
	"Registration No",
	"Report",
	"Wafid Status",
	"Unfit Comment",
	"Registration Date",
	"Slip File Submit",
	"Sender",
	"Slip Payment Receive",
	"Commission",
	"Slip Payment Send",
	"Profit Margin",
	"Code",
	"Remark",
}

// Row is one spreadsheet row keyed by column label. Cells are kept as raw
// strings; typing happens when the row is applied to a record.
type Row map[string]string

// ApplyRow overlays the known labels of a row onto p. Unknown labels are
// ignored and absent labels leave the corresponding field untouched, so
// callers start from model.DefaultPassenger() to fill the gaps.
func ApplyRow(p *model.Passenger, row Row) {
	for label, raw := range row {
		value := strings.TrimSpace(raw)
		switch label {
		case "Passenger Name":
			p.PassengerName = value
		case "Passport":
			p.Passport = value
		case "Registration No":
			p.RegistrationNo = value
		case "Report":
			p.Report = value
		case "Wafid Status":
			p.WafidStatus = value
		case "Unfit Comment":
			p.UnfitCom = value
		case "Registration Date":
			if d, err := model.ParseDate(value); err == nil {
				p.RegistrationDate = d
			}
		case "Slip File Submit":
			p.SlipFileSubmit = parseSlipSubmit(value)
		case "Sender":
			p.Sender = value
		case "Slip Payment Receive":
			p.SlipPaymentReceive = parseAmount(value)
		case "Commission":
			p.Commission = parseAmount(value)
		case "Slip Payment Send":
			p.SlipPaymentSend = parseAmount(value)
		case "Profit Margin":
			p.ProfitMargin = parseAmount(value)
		case "Code":
			p.Code = value
		case "Remark":
			p.Remark = value
		}
	}
}

// ToRow serializes a record for export. All fifteen labels are present:
// booleans as "Yes"/"No", dates as date strings, missing numerics as 0 and
// missing text as the empty string.
func ToRow(p *model.Passenger) Row {
	return Row{
		"Passenger Name":       p.PassengerName,
		"Passport":             p.Passport,
		"Registration No":      p.RegistrationNo,
		"Report":               p.Report,
		"Wafid Status":         p.WafidStatus,
		"Unfit Comment":        p.UnfitCom,
		"Registration Date":    p.RegistrationDate.String(),
		"Slip File Submit":     formatYesNo(p.SlipFileSubmit),
		"Sender":               p.Sender,
		"Slip Payment Receive": formatAmount(p.SlipPaymentReceive),
		"Commission":           formatAmount(p.Commission),
		"Slip Payment Send":    formatAmount(p.SlipPaymentSend),
		"Profit Margin":        formatAmount(p.ProfitMargin),
		"Code":                 p.Code,
		"Remark":               p.Remark,
	}
}

// parseSlipSubmit coerces the slip-submit cell to a boolean: "Yes", a true
// boolean cell or a numeric 1 all mean true, anything else false.
func parseSlipSubmit(v string) bool {
	switch v {
	case "Yes", "yes", "TRUE", "true", "True", "1":
		return true
	}
	return false
}

// parseAmount reads a monetary cell leniently; anything unparseable is 0.
func parseAmount(v string) float64 {
	if v == "" {
		return 0
	}
	f, err := strconv.ParseFloat(strings.ReplaceAll(v, ",", ""), 64)
	if err != nil {
		return 0
	}
	return f
}

func formatYesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

func formatAmount(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
