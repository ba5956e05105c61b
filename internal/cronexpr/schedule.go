package cronexpr

import "time"

// searchHorizon bounds the forward search performed by Next. A schedule
// whose configured date never lands on the calendar (day 30 in a 29-day
// February, say) exhausts the horizon instead of raising an error.
const searchHorizon = 366 * 24 * time.Hour

// fieldSet is the set of permitted integers for one field, stored as a
// boolean array sized to the field's bounds.
type fieldSet struct {
	min, max int
	member   []bool
}

func newFieldSet(min, max int) *fieldSet {
	return &fieldSet{min: min, max: max, member: make([]bool, max-min+1)}
}

func (s *fieldSet) mark(v int) {
	s.member[v-s.min] = true
}

func (s *fieldSet) markRange(first, last int) {
	for v := first; v <= last; v++ {
		s.member[v-s.min] = true
	}
}

func (s *fieldSet) contains(v int) bool {
	if v < s.min || v > s.max {
		return false
	}
	return s.member[v-s.min]
}

// values returns the marked integers in ascending order.
func (s *fieldSet) values() []int {
	var out []int
	for i, ok := range s.member {
		if ok {
			out = append(out, s.min+i)
		}
	}
	return out
}

// Schedule is the immutable result of parsing an expression: one permitted
// value set per field. It never changes after construction and is safe for
// concurrent use.
type Schedule struct {
	source    string
	hasSecond bool
	fields    map[Field]*fieldSet
}

// Source returns the expression the schedule was parsed from, verbatim.
func (s *Schedule) Source() string {
	return s.source
}

// HasSecond reports whether the schedule was built from a six-field
// expression and therefore matches at one-second granularity.
func (s *Schedule) HasSecond() bool {
	return s.hasSecond
}

// FieldValues returns the permitted values for one field in ascending
// order, for introspection. It returns nil for the second field of a
// five-field schedule.
func (s *Schedule) FieldValues(field Field) []int {
	set, ok := s.fields[field]
	if !ok {
		return nil
	}
	return set.values()
}

// Matches reports whether an instant satisfies the schedule. Components
// are extracted in the instant's own location; the second component is
// consulted only for six-field schedules. Day-of-month and day-of-week
// must both hold when both are restricted (AND combination).
func (s *Schedule) Matches(t time.Time) bool {
	if s.hasSecond && !s.fields[FieldSecond].contains(t.Second()) {
		return false
	}
	return s.fields[FieldMinute].contains(t.Minute()) &&
		s.fields[FieldHour].contains(t.Hour()) &&
		s.fields[FieldDay].contains(t.Day()) &&
		s.fields[FieldMonth].contains(int(t.Month())) &&
		s.fields[FieldWeekday].contains(int(t.Weekday()))
}

// Next returns the earliest instant at or after from that satisfies the
// schedule. It walks forward at the schedule's finest granularity (one
// second for six-field schedules, one minute otherwise), skipping whole
// months, days, and hours whose field components cannot match. The search
// is bounded: when no instant within 366 days matches, Next returns false
// rather than an error.
func (s *Schedule) Next(from time.Time) (time.Time, bool) {
	granularity := time.Minute
	if s.hasSecond {
		granularity = time.Second
	}

	t := from.Truncate(granularity)
	if t.Before(from) {
		t = t.Add(granularity)
	}
	horizon := from.Add(searchHorizon)

	for !t.After(horizon) {
		switch {
		case !s.fields[FieldMonth].contains(int(t.Month())):
			t = time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location()).AddDate(0, 1, 0)

		case !s.fields[FieldDay].contains(t.Day()) || !s.fields[FieldWeekday].contains(int(t.Weekday())):
			t = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location()).AddDate(0, 0, 1)

		case !s.fields[FieldHour].contains(t.Hour()):
			t = time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), 0, 0, 0, t.Location()).Add(time.Hour)

		case !s.fields[FieldMinute].contains(t.Minute()):
			t = t.Truncate(time.Minute).Add(time.Minute)

		case s.hasSecond && !s.fields[FieldSecond].contains(t.Second()):
			t = t.Add(time.Second)

		default:
			return t, true
		}
	}

	return time.Time{}, false
}
