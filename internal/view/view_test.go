package view

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/passenger-registry/internal/model"
)

func record(name string, created time.Time, regDate model.Date, commission float64) *model.Passenger {
	p := model.DefaultPassenger()
	p.PassengerName = name
	p.CreatedAt = created
	p.RegistrationDate = regDate
	p.Commission = commission
	return &p
}

func names(records []*model.Passenger) []string {
	out := make([]string, len(records))
	for i, p := range records {
		out[i] = p.PassengerName
	}
	return out
}

func fixture() []*model.Passenger {
	base := time.Date(2026, time.January, 1, 10, 0, 0, 0, time.UTC)
	return []*model.Passenger{
		record("charlie", base.Add(1*time.Hour), model.NewDate(2026, time.January, 5), 30),
		record("Alice", base.Add(3*time.Hour), model.NewDate(2026, time.January, 1), 10),
		record("bob", base.Add(2*time.Hour), model.NewDate(2026, time.January, 9), 20),
	}
}

func TestDefaultOrderNewestFirst(t *testing.T) {
	vm := New(fixture())
	assert.Equal(t, DefaultSortKey, vm.SortKey)
	assert.Equal(t, Desc, vm.SortDir)
	assert.Equal(t, []string{"Alice", "bob", "charlie"}, names(vm.Derive()))
}

func TestSetSortTogglesAndResets(t *testing.T) {
	vm := New(fixture())

	vm.SetSort("passengerName")
	assert.Equal(t, Asc, vm.SortDir, "new key starts ascending")
	asc := names(vm.Derive())
	assert.Equal(t, []string{"Alice", "bob", "charlie"}, asc, "text sort ignores case")

	vm.SetSort("passengerName")
	assert.Equal(t, Desc, vm.SortDir, "same key flips direction")
	desc := names(vm.Derive())
	assert.Equal(t, []string{"charlie", "bob", "Alice"}, desc)

	vm.SetSort("commission")
	assert.Equal(t, Asc, vm.SortDir, "switching keys resets to ascending")
	assert.Equal(t, []string{"Alice", "bob", "charlie"}, names(vm.Derive()))
}

func TestSortByRegistrationDate(t *testing.T) {
	vm := New(fixture())
	vm.SortKey = "registrationDate"
	vm.SortDir = Asc
	assert.Equal(t, []string{"Alice", "charlie", "bob"}, names(vm.Derive()))
}

func TestStableSortKeepsTiedOrder(t *testing.T) {
	records := fixture()
	for _, p := range records {
		p.Commission = 10
	}
	vm := New(records)
	vm.SortKey = "commission"
	vm.SortDir = Asc
	assert.Equal(t, []string{"charlie", "Alice", "bob"}, names(vm.Derive()),
		"ties keep input order")
}

func TestDateRangeFilterInclusive(t *testing.T) {
	vm := New(fixture())
	vm.SortKey = "registrationDate"
	vm.SortDir = Asc

	vm.SetDateRange(model.NewDate(2026, time.January, 5), model.NewDate(2026, time.January, 9))
	assert.Equal(t, []string{"charlie", "bob"}, names(vm.Derive()),
		"boundary dates are included")

	vm.SetDateRange(model.NewDate(2026, time.January, 2), model.Date{})
	assert.Equal(t, []string{"charlie", "bob"}, names(vm.Derive()),
		"zero To leaves the upper bound open")

	vm.SetDateRange(model.Date{}, model.NewDate(2026, time.January, 5))
	assert.Equal(t, []string{"Alice", "charlie"}, names(vm.Derive()),
		"zero From leaves the lower bound open")
}

func TestInvertedRangeYieldsNothing(t *testing.T) {
	vm := New(fixture())
	vm.SetDateRange(model.NewDate(2026, time.January, 9), model.NewDate(2026, time.January, 1))
	assert.Empty(t, vm.Derive())
}

func TestDeriveDoesNotMutateInput(t *testing.T) {
	records := fixture()
	vm := New(records)
	vm.SetSort("passengerName")
	_ = vm.Derive()
	require.Equal(t, []string{"charlie", "Alice", "bob"}, names(records))
}
