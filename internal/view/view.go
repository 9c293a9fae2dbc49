// Package view derives the displayed ordering of passenger records from a
// sort key, a sort direction and an optional registration-date range. The
// same derivation backs the list endpoint and spreadsheet export, so what
// the user sees is exactly what gets downloaded.
package view

import (
	"sort"
	"strings"
	"time"

	"github.com/iliyamo/passenger-registry/internal/model"
)

// Sort directions.
const (
	Asc  = "asc"
	Desc = "desc"
)

// DefaultSortKey matches the list's initial ordering: newest first.
const DefaultSortKey = "createdAt"

// Model holds the inputs of the derivation. The record slice is owned by
// the caller and is never mutated; Derive always works on a copy.
type Model struct {
	records []*model.Passenger
	SortKey string
	SortDir string
	From    model.Date // zero value = open lower bound
	To      model.Date // zero value = open upper bound
}

// New builds a view over the given records with the default ordering
// (createdAt descending).
func New(records []*model.Passenger) *Model {
	return &Model{records: records, SortKey: DefaultSortKey, SortDir: Desc}
}

// SetRecords replaces the underlying collection wholesale.
func (m *Model) SetRecords(records []*model.Passenger) {
	m.records = records
}

// SetSort selects a sort key. Selecting the key already active flips the
// direction; a new key resets to ascending.
func (m *Model) SetSort(key string) {
	if key == m.SortKey {
		if m.SortDir == Asc {
			m.SortDir = Desc
		} else {
			m.SortDir = Asc
		}
		return
	}
	m.SortKey = key
	m.SortDir = Asc
}

// SetDateRange sets the inclusive registrationDate bounds. Either bound may
// be the zero Date, which leaves that side open.
func (m *Model) SetDateRange(from, to model.Date) {
	m.From = from
	m.To = to
}

// Derive returns the displayed sequence: a stable sort of the records by
// the current key and direction, followed by the date-range filter. Records
// whose registrationDate falls before From or after To are excluded.
func (m *Model) Derive() []*model.Passenger {
	out := make([]*model.Passenger, len(m.records))
	copy(out, m.records)

	key, dir := m.SortKey, m.SortDir
	sort.SliceStable(out, func(i, j int) bool {
		c := compare(out[i], out[j], key)
		if dir == Desc {
			return c > 0
		}
		return c < 0
	})

	if m.From.IsZero() && m.To.IsZero() {
		return out
	}
	filtered := out[:0]
	for _, p := range out {
		if !m.From.IsZero() && p.RegistrationDate.Before(m.From) {
			continue
		}
		if !m.To.IsZero() && p.RegistrationDate.After(m.To) {
			continue
		}
		filtered = append(filtered, p)
	}
	return filtered
}

// compare orders two records by one field. Text fields compare
// case-insensitively; ties are left to the stable sort.
func compare(a, b *model.Passenger, key string) int {
	switch key {
	case "passengerName":
		return compareText(a.PassengerName, b.PassengerName)
	case "passport":
		return compareText(a.Passport, b.Passport)
	case "registrationNo":
		return compareText(a.RegistrationNo, b.RegistrationNo)
	case "report":
		return compareText(a.Report, b.Report)
	case "wafidStatus":
		return compareText(a.WafidStatus, b.WafidStatus)
	case "unfitCom":
		return compareText(a.UnfitCom, b.UnfitCom)
	case "sender":
		return compareText(a.Sender, b.Sender)
	case "code":
		return compareText(a.Code, b.Code)
	case "remark":
		return compareText(a.Remark, b.Remark)
	case "slipPaymentReceive":
		return compareFloat(a.SlipPaymentReceive, b.SlipPaymentReceive)
	case "commission":
		return compareFloat(a.Commission, b.Commission)
	case "slipPaymentSend":
		return compareFloat(a.SlipPaymentSend, b.SlipPaymentSend)
	case "profitMargin":
		return compareFloat(a.ProfitMargin, b.ProfitMargin)
	case "slipFileSubmit":
		return compareBool(a.SlipFileSubmit, b.SlipFileSubmit)
	case "registrationDate":
		return compareTime(a.RegistrationDate.Time, b.RegistrationDate.Time)
	case "updatedAt":
		return compareTime(a.UpdatedAt, b.UpdatedAt)
	default: // createdAt
		return compareTime(a.CreatedAt, b.CreatedAt)
	}
}

func compareText(a, b string) int {
	return strings.Compare(strings.ToLower(a), strings.ToLower(b))
}

func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func compareBool(a, b bool) int {
	switch {
	case !a && b:
		return -1
	case a && !b:
		return 1
	}
	return 0
}

func compareTime(a, b time.Time) int {
	switch {
	case a.Before(b):
		return -1
	case a.After(b):
		return 1
	}
	return 0
}
