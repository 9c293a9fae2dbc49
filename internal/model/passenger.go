// Package model defines the entities persisted by the service. The
// Passenger struct mirrors the `passengers` table column for column and
// carries the JSON field names used on the wire, so the same type flows
// from the repository layer through handlers and into spreadsheet export.
package model

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"
)

// Report values describe the medical fitness outcome for a passenger.
const (
	ReportFit    = "FIT"
	ReportUnfit  = "UNFIT"
	ReportHeldUp = "HELD-UP"
)

// Wafid status values track the administrative approval state, which is
// independent of the medical report.
const (
	WafidPending  = "Pending"
	WafidApproved = "Approved"
	WafidRejected = "Rejected"
	WafidOnHold   = "On Hold"
)

// Date is a calendar date without a time component. Registration dates are
// compared and exchanged as plain days, so the type marshals to and from
// "YYYY-MM-DD" and scans MySQL DATE columns directly.
type Date struct {
	time.Time
}

const dateLayout = "2006-01-02"

// Today returns the current date in UTC with the time component dropped.
func Today() Date {
	now := time.Now().UTC()
	return Date{time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)}
}

// NewDate builds a Date from year, month and day.
func NewDate(y int, m time.Month, d int) Date {
	return Date{time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

// ParseDate accepts "YYYY-MM-DD" as well as the slash-separated forms that
// appear in spreadsheets exported with locale date strings.
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{dateLayout, "1/2/2006", "01/02/2006", "2/1/2006", time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return Date{time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)}, nil
		}
	}
	return Date{}, fmt.Errorf("unrecognized date %q", s)
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(dateLayout)
}

// Before reports whether d falls on an earlier calendar day than other.
func (d Date) Before(other Date) bool {
	return d.Time.Before(other.Time)
}

// After reports whether d falls on a later calendar day than other.
func (d Date) After(other Date) bool {
	return d.Time.After(other.Time)
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte(`""`), nil
	}
	return []byte(`"` + d.Format(dateLayout) + `"`), nil
}

func (d *Date) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Scan implements sql.Scanner so DATE columns land directly in a Date.
func (d *Date) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*d = Date{}
		return nil
	case time.Time:
		*d = Date{time.Date(v.Year(), v.Month(), v.Day(), 0, 0, 0, 0, time.UTC)}
		return nil
	case []byte:
		parsed, err := ParseDate(string(v))
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	case string:
		parsed, err := ParseDate(v)
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	}
	return fmt.Errorf("cannot scan %T into Date", src)
}

// Value implements driver.Valuer for writing DATE columns.
func (d Date) Value() (driver.Value, error) {
	if d.IsZero() {
		return nil, nil
	}
	return d.Format(dateLayout), nil
}

// Passenger is one record tracked by the registry. Passport numbers are
// unique across all records; the identifier and both timestamps are assigned
// by the repository on insert, and UpdatedAt is refreshed on every mutation.
type Passenger struct {
	ID                 uint64    `json:"id"`
	PassengerName      string    `json:"passengerName"`
	Passport           string    `json:"passport"`
	RegistrationNo     string    `json:"registrationNo"`
	Report             string    `json:"report"`
	WafidStatus        string    `json:"wafidStatus"`
	UnfitCom           string    `json:"unfitCom"`
	RegistrationDate   Date      `json:"registrationDate"`
	SlipFileSubmit     bool      `json:"slipFileSubmit"`
	Sender             string    `json:"sender"`
	SlipPaymentReceive float64   `json:"slipPaymentReceive"`
	Commission         float64   `json:"commission"`
	SlipPaymentSend    float64   `json:"slipPaymentSend"`
	ProfitMargin       float64   `json:"profitMargin"`
	Code               string    `json:"code"`
	Remark             string    `json:"remark"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

// DefaultPassenger is the single default-record template used by both the
// create path and the bulk importer: partially specified input is overlaid
// onto this value so every field ends up populated.
func DefaultPassenger() Passenger {
	return Passenger{
		Report:           ReportFit,
		WafidStatus:      WafidPending,
		RegistrationDate: Today(),
	}
}

// Validate checks the three required fields and enum membership. It is the
// one validation shared by the create handler and the bulk importer.
func (p *Passenger) Validate() error {
	p.PassengerName = strings.TrimSpace(p.PassengerName)
	p.Passport = strings.TrimSpace(p.Passport)
	p.RegistrationNo = strings.TrimSpace(p.RegistrationNo)

	if p.PassengerName == "" {
		return fmt.Errorf("passengerName is required")
	}
	if p.Passport == "" {
		return fmt.Errorf("passport is required")
	}
	if p.RegistrationNo == "" {
		return fmt.Errorf("registrationNo is required")
	}
	switch p.Report {
	case ReportFit, ReportUnfit, ReportHeldUp:
	default:
		return fmt.Errorf("report must be one of FIT, UNFIT, HELD-UP")
	}
	switch p.WafidStatus {
	case WafidPending, WafidApproved, WafidRejected, WafidOnHold:
	default:
		return fmt.Errorf("wafidStatus must be one of Pending, Approved, Rejected, On Hold")
	}
	return nil
}
