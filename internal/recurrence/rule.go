// Package recurrence decides whether a task template is due on a given
// date. Each recurrence kind is its own rule type so that invalid
// parameter combinations are caught when the rule is built, not when it
// fires.
package recurrence

import (
	"time"

	"everyday-planner/internal/apperr"
)

// Kind names a recurrence rule variant.
type Kind string

const (
	KindDaily        Kind = "DAILY"
	KindWorkday      Kind = "WORKDAY"
	KindHoliday      Kind = "HOLIDAY"
	KindWeekly       Kind = "WEEKLY"
	KindSpecificDate Kind = "SPECIFIC_DATE"
	KindIntervalDays Kind = "INTERVAL_DAYS"
)

// ValidKind reports whether k names a known recurrence kind.
func ValidKind(k Kind) bool {
	switch k {
	case KindDaily, KindWorkday, KindHoliday, KindWeekly, KindSpecificDate, KindIntervalDays:
		return true
	}
	return false
}

// Rule is one recurrence variant. dueOn is deliberately unexported: the
// set of variants is closed and evaluation goes through Schedule.DueOn.
type Rule interface {
	Kind() Kind
	dueOn(date time.Time, dayIsHoliday bool) bool
}

// Params carries the kind-specific template fields. Fields irrelevant to
// the kind being built are ignored.
type Params struct {
	DayOfWeek    *int       // WEEKLY, ISO 1=Monday..7=Sunday
	SpecificDate *time.Time // SPECIFIC_DATE
	IntervalDays *int       // INTERVAL_DAYS
	ActiveFrom   *time.Time // INTERVAL_DAYS anchor
}

// New validates the parameters for kind and returns the matching rule.
func New(kind Kind, p Params) (Rule, error) {
	switch kind {
	case KindDaily:
		return Daily{}, nil
	case KindWorkday:
		return Workday{}, nil
	case KindHoliday:
		return Holiday{}, nil
	case KindWeekly:
		if p.DayOfWeek == nil || *p.DayOfWeek < 1 || *p.DayOfWeek > 7 {
			return nil, apperr.Validationf("dayOfWeek (1-7) is required for WEEKLY templates")
		}
		return Weekly{DayOfWeek: *p.DayOfWeek}, nil
	case KindSpecificDate:
		if p.SpecificDate == nil {
			return nil, apperr.Validationf("specificDate is required for SPECIFIC_DATE templates")
		}
		return SpecificDate{Date: *p.SpecificDate}, nil
	case KindIntervalDays:
		if p.IntervalDays == nil || *p.IntervalDays < 1 {
			return nil, apperr.Validationf("intervalDays (>= 1) is required for INTERVAL_DAYS templates")
		}
		if p.ActiveFrom == nil {
			return nil, apperr.Validationf("activeFrom is required for INTERVAL_DAYS templates")
		}
		return IntervalDays{Every: *p.IntervalDays, Anchor: dateOnly(*p.ActiveFrom)}, nil
	default:
		return nil, apperr.Validationf("unknown recurrence kind %q", kind)
	}
}

// Daily fires every date.
type Daily struct{}

func (Daily) Kind() Kind                 { return KindDaily }
func (Daily) dueOn(time.Time, bool) bool { return true }

// Workday fires on dates the holiday calendar classifies as workdays.
type Workday struct{}

func (Workday) Kind() Kind { return KindWorkday }
func (Workday) dueOn(_ time.Time, dayIsHoliday bool) bool {
	return !dayIsHoliday
}

// Holiday fires on dates the holiday calendar classifies as holidays.
type Holiday struct{}

func (Holiday) Kind() Kind { return KindHoliday }
func (Holiday) dueOn(_ time.Time, dayIsHoliday bool) bool {
	return dayIsHoliday
}

// Weekly fires on one ISO weekday.
type Weekly struct {
	DayOfWeek int
}

func (Weekly) Kind() Kind { return KindWeekly }
func (w Weekly) dueOn(date time.Time, _ bool) bool {
	return isoWeekday(date) == w.DayOfWeek
}

// SpecificDate fires exactly once.
type SpecificDate struct {
	Date time.Time
}

func (SpecificDate) Kind() Kind { return KindSpecificDate }
func (s SpecificDate) dueOn(date time.Time, _ bool) bool {
	return dateOnly(date).Equal(dateOnly(s.Date))
}

// IntervalDays fires every Every days counted from Anchor.
type IntervalDays struct {
	Every  int
	Anchor time.Time
}

func (IntervalDays) Kind() Kind { return KindIntervalDays }
func (i IntervalDays) dueOn(date time.Time, _ bool) bool {
	d := dateOnly(date)
	if d.Before(i.Anchor) {
		return false
	}
	days := int(d.Sub(i.Anchor).Hours() / 24)
	return days%i.Every == 0
}

// Schedule pairs a rule with the template's activity bounds.
type Schedule struct {
	Rule       Rule
	ActiveFrom *time.Time
	ActiveTo   *time.Time
	Enabled    bool
}

// DueOn reports whether the schedule fires on date. dayIsHoliday is the
// holiday calendar's classification of that date; the decision is pure
// given that input.
func (s Schedule) DueOn(date time.Time, dayIsHoliday bool) bool {
	if !s.Enabled {
		return false
	}
	d := dateOnly(date)
	if s.ActiveFrom != nil && d.Before(dateOnly(*s.ActiveFrom)) {
		return false
	}
	if s.ActiveTo != nil && d.After(dateOnly(*s.ActiveTo)) {
		return false
	}
	return s.Rule.dueOn(d, dayIsHoliday)
}

// isoWeekday maps time.Weekday to ISO numbering, 1=Monday..7=Sunday.
func isoWeekday(date time.Time) int {
	wd := int(date.Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
