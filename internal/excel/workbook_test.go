package excel

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/passenger-registry/internal/model"
)

func sampleRecord(name, passport, regNo string) *model.Passenger {
	p := model.DefaultPassenger()
	p.PassengerName = name
	p.Passport = passport
	p.RegistrationNo = regNo
	p.RegistrationDate = model.NewDate(2026, time.January, 20)
	p.SlipFileSubmit = true
	p.SlipPaymentReceive = 500
	p.Commission = 50
	p.SlipPaymentSend = 450
	p.ProfitMargin = 50
	p.Code = "CODE001"
	return &p
}

func TestBuildAndParseRoundTrip(t *testing.T) {
	records := []*model.Passenger{
		sampleRecord("John Doe", "AB123456", "REG001"),
		sampleRecord("Jane Roe", "CD789012", "REG002"),
	}

	f, err := BuildPassengerWorkbook(records)
	require.NoError(t, err)
	defer f.Close()

	var buf bytes.Buffer
	_, err = f.WriteTo(&buf)
	require.NoError(t, err)

	rows, err := ParseWorkbook(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	require.Len(t, rows, len(records))

	for i, p := range records {
		back := model.DefaultPassenger()
		ApplyRow(&back, rows[i])
		assert.Equalf(t, *p, back, "row %d", i+1)
	}
}

func TestParseWorkbookEmpty(t *testing.T) {
	f, err := BuildPassengerWorkbook(nil)
	require.NoError(t, err)
	defer f.Close()

	var buf bytes.Buffer
	_, err = f.WriteTo(&buf)
	require.NoError(t, err)

	_, err = ParseWorkbook(bytes.NewReader(buf.Bytes()))
	assert.ErrorIs(t, err, ErrEmptyWorkbook)
}

func TestParseWorkbookGarbage(t *testing.T) {
	_, err := ParseWorkbook(strings.NewReader("this is not a spreadsheet"))
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrEmptyWorkbook)
}

func TestBuildTemplateWorkbook(t *testing.T) {
	f, err := BuildTemplateWorkbook()
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Template")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, Labels, rows[0])

	sample := Row{}
	for i, header := range rows[0] {
		if i < len(rows[1]) {
			sample[header] = rows[1][i]
		}
	}
	assert.Equal(t, "John Doe", sample["Passenger Name"])
	assert.Equal(t, "AB123456", sample["Passport"])
	assert.Equal(t, "REG001", sample["Registration No"])
	assert.Equal(t, "FIT", sample["Report"])
	assert.Equal(t, "Approved", sample["Wafid Status"])
	assert.Equal(t, "Yes", sample["Slip File Submit"])
	assert.Equal(t, "CODE001", sample["Code"])
	assert.Equal(t, "Sample data", sample["Remark"])
}

func TestBuildInstructionsWorkbook(t *testing.T) {
	f, err := BuildInstructionsWorkbook()
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Instructions")
	require.NoError(t, err)
	require.Len(t, rows, len(Labels)+1)
	assert.Equal(t, []string{"Column", "Required", "Description", "Example"}, rows[0])

	for i, label := range Labels {
		assert.Equalf(t, label, rows[i+1][0], "row %d", i+2)
	}
	// The three required fields come first in the table.
	assert.Equal(t, "Yes", rows[1][1])
	assert.Equal(t, "Yes", rows[2][1])
	assert.Equal(t, "Yes", rows[3][1])
	assert.Equal(t, "No", rows[4][1])
}
