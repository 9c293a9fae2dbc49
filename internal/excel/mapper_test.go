package excel

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/iliyamo/passenger-registry/internal/model"
)

func TestApplyRow(t *testing.T) {
	p := model.DefaultPassenger()
	ApplyRow(&p, Row{
		"Passenger Name":       " John Doe ",
		"Passport":             "AB123456",
		"Registration No":      "REG001",
		"Report":               "UNFIT",
		"Wafid Status":         "Rejected",
		"Unfit Comment":        "Medical condition",
		"Registration Date":    "2026-02-09",
		"Slip File Submit":     "Yes",
		"Sender":               "Agent 1",
		"Slip Payment Receive": "1,500.50",
		"Commission":           "50",
		"Slip Payment Send":    "450",
		"Profit Margin":        "1000.5",
		"Code":                 "CODE001",
		"Remark":               "notes",
	})

	assert.Equal(t, "John Doe", p.PassengerName)
	assert.Equal(t, "AB123456", p.Passport)
	assert.Equal(t, "REG001", p.RegistrationNo)
	assert.Equal(t, model.ReportUnfit, p.Report)
	assert.Equal(t, model.WafidRejected, p.WafidStatus)
	assert.Equal(t, "Medical condition", p.UnfitCom)
	assert.Equal(t, model.NewDate(2026, time.February, 9), p.RegistrationDate)
	assert.True(t, p.SlipFileSubmit)
	assert.Equal(t, "Agent 1", p.Sender)
	assert.Equal(t, 1500.50, p.SlipPaymentReceive)
	assert.Equal(t, 50.0, p.Commission)
	assert.Equal(t, 450.0, p.SlipPaymentSend)
	assert.Equal(t, 1000.5, p.ProfitMargin)
	assert.Equal(t, "CODE001", p.Code)
	assert.Equal(t, "notes", p.Remark)
}

func TestApplyRowKeepsDefaultsForAbsentLabels(t *testing.T) {
	p := model.DefaultPassenger()
	ApplyRow(&p, Row{
		"Passenger Name":  "Jane Roe",
		"Passport":        "CD789012",
		"Registration No": "REG002",
	})

	assert.Equal(t, model.ReportFit, p.Report)
	assert.Equal(t, model.WafidPending, p.WafidStatus)
	assert.Equal(t, model.Today(), p.RegistrationDate)
	assert.False(t, p.SlipFileSubmit)
	assert.Zero(t, p.Commission)
}

func TestApplyRowIgnoresUnknownLabels(t *testing.T) {
	p := model.DefaultPassenger()
	before := p
	ApplyRow(&p, Row{"Frequent Flyer": "gold", "Seat Preference": "aisle"})
	assert.Equal(t, before, p)
}

func TestApplyRowBadValues(t *testing.T) {
	p := model.DefaultPassenger()
	ApplyRow(&p, Row{
		"Registration Date":    "soon",
		"Slip Payment Receive": "lots",
		"Slip File Submit":     "maybe",
	})

	assert.Equal(t, model.Today(), p.RegistrationDate, "unparseable date keeps the default")
	assert.Zero(t, p.SlipPaymentReceive, "unparseable amount reads as zero")
	assert.False(t, p.SlipFileSubmit)
}

func TestParseSlipSubmit(t *testing.T) {
	for _, v := range []string{"Yes", "yes", "TRUE", "true", "True", "1"} {
		assert.Truef(t, parseSlipSubmit(v), "value %q", v)
	}
	for _, v := range []string{"No", "no", "false", "0", "", "on"} {
		assert.Falsef(t, parseSlipSubmit(v), "value %q", v)
	}
}

func TestRowRoundTrip(t *testing.T) {
	orig := model.DefaultPassenger()
	orig.PassengerName = "John Doe"
	orig.Passport = "AB123456"
	orig.RegistrationNo = "REG001"
	orig.Report = model.ReportHeldUp
	orig.WafidStatus = model.WafidOnHold
	orig.UnfitCom = "pending docs"
	orig.RegistrationDate = model.NewDate(2026, time.January, 20)
	orig.SlipFileSubmit = true
	orig.Sender = "Agent 2"
	orig.SlipPaymentReceive = 500
	orig.Commission = 50
	orig.SlipPaymentSend = 450
	orig.ProfitMargin = 50
	orig.Code = "CODE001"
	orig.Remark = "Sample data"

	row := ToRow(&orig)
	assert.Len(t, row, len(Labels))
	for _, label := range Labels {
		assert.Containsf(t, row, label, "label %s", label)
	}

	back := model.DefaultPassenger()
	ApplyRow(&back, row)
	assert.Equal(t, orig, back)
}

func TestToRowZeroRecord(t *testing.T) {
	p := model.Passenger{}
	row := ToRow(&p)

	assert.Equal(t, "No", row["Slip File Submit"])
	assert.Equal(t, "0", row["Commission"])
	assert.Equal(t, "", row["Registration Date"])
	assert.Equal(t, "", row["Passenger Name"])
}
