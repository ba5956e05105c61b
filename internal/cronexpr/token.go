// Package cronexpr implements scanning, parsing, matching, and next-run
// search for cron-style schedule expressions.
//
// Expressions have five fields (minute, hour, day, month, weekday) or six
// fields (a leading second field). Each field accepts wildcards (*), plain
// numbers, ranges (a-b), steps (*/n, a/n, -b/n, a-b/n), and comma-separated
// lists of any of the above. The named aliases @yearly, @monthly, @weekly,
// @daily, @hourly, and @minutely expand to their canonical five-field forms
// before scanning.
//
// Day-of-month and day-of-week are combined with logical AND: when both are
// restricted, an instant must satisfy both. This is a deliberate departure
// from cron dialects that use OR in that case.
package cronexpr

// Field identifies one component of a cron expression.
type Field string

const (
	FieldSecond  Field = "second"
	FieldMinute  Field = "minute"
	FieldHour    Field = "hour"
	FieldDay     Field = "day"
	FieldMonth   Field = "month"
	FieldWeekday Field = "weekday"
)

// fiveFieldOrder and sixFieldOrder give the field meaning of each
// whitespace-separated group, by position.
var (
	fiveFieldOrder = []Field{FieldMinute, FieldHour, FieldDay, FieldMonth, FieldWeekday}
	sixFieldOrder  = []Field{FieldSecond, FieldMinute, FieldHour, FieldDay, FieldMonth, FieldWeekday}
)

// fieldBounds holds the inclusive numeric range permitted for each field.
// Weekday runs 0-6 with 0 meaning Sunday, matching time.Weekday.
var fieldBounds = map[Field]struct{ Min, Max int }{
	FieldSecond:  {0, 59},
	FieldMinute:  {0, 59},
	FieldHour:    {0, 23},
	FieldDay:     {1, 31},
	FieldMonth:   {1, 12},
	FieldWeekday: {0, 6},
}

// TokenKind classifies a scanned list item.
type TokenKind int

const (
	// TokenAny is a bare wildcard (*).
	TokenAny TokenKind = iota
	// TokenNumber is a plain integer literal.
	TokenNumber
	// TokenRange is an inclusive a-b range.
	TokenRange
	// TokenStep is a stepped expression (*/n, a/n, -b/n, a-b/n).
	TokenStep
)

// String returns a human-readable name for the token kind.
func (k TokenKind) String() string {
	switch k {
	case TokenAny:
		return "any"
	case TokenNumber:
		return "number"
	case TokenRange:
		return "range"
	case TokenStep:
		return "step"
	default:
		return "unknown"
	}
}

// Token is one scanned list item, tagged with the field it belongs to.
// The lexeme is preserved verbatim; numeric interpretation and bounds
// checking happen during parsing, not scanning.
type Token struct {
	Lexeme string
	Kind   TokenKind
	Field  Field
}
