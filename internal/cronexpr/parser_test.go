package cronexpr

import (
	"errors"
	"reflect"
	"testing"
)

func TestParse_WildcardExpandsFullBounds(t *testing.T) {
	schedule, err := Parse("* * * * *")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	tests := []struct {
		field Field
		first int
		last  int
		count int
	}{
		{FieldMinute, 0, 59, 60},
		{FieldHour, 0, 23, 24},
		{FieldDay, 1, 31, 31},
		{FieldMonth, 1, 12, 12},
		{FieldWeekday, 0, 6, 7},
	}
	for _, tt := range tests {
		values := schedule.FieldValues(tt.field)
		if len(values) != tt.count {
			t.Errorf("%s: %d values, want %d", tt.field, len(values), tt.count)
			continue
		}
		if values[0] != tt.first || values[len(values)-1] != tt.last {
			t.Errorf("%s: range [%d, %d], want [%d, %d]",
				tt.field, values[0], values[len(values)-1], tt.first, tt.last)
		}
	}
}

func TestParse_Numbers(t *testing.T) {
	schedule, err := Parse("30 12 15 6 3")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	want := map[Field][]int{
		FieldMinute:  {30},
		FieldHour:    {12},
		FieldDay:     {15},
		FieldMonth:   {6},
		FieldWeekday: {3},
	}
	for field, values := range want {
		if got := schedule.FieldValues(field); !reflect.DeepEqual(got, values) {
			t.Errorf("%s = %v, want %v", field, got, values)
		}
	}
}

func TestParse_Ranges(t *testing.T) {
	tests := []struct {
		name       string
		expression string
		field      Field
		want       []int
		wantErr    bool
	}{
		{
			name:       "plain range",
			expression: "* 9-12 * * *",
			field:      FieldHour,
			want:       []int{9, 10, 11, 12},
		},
		{
			name:       "degenerate range marks singleton",
			expression: "* 9-9 * * *",
			field:      FieldHour,
			want:       []int{9},
		},
		{
			name:       "inverted range rejected",
			expression: "* 12-9 * * *",
			wantErr:    true,
		},
		{
			name:       "range end out of bounds",
			expression: "* * * 10-13 *",
			wantErr:    true,
		},
		{
			name:       "range start out of bounds",
			expression: "* 24-25 * * *",
			wantErr:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			schedule, err := Parse(tt.expression)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Parse() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				if schedule != nil {
					t.Errorf("schedule = %v, want nil on error", schedule)
				}
				return
			}
			if got := schedule.FieldValues(tt.field); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("%s = %v, want %v", tt.field, got, tt.want)
			}
		})
	}
}

func TestParse_Steps(t *testing.T) {
	tests := []struct {
		name       string
		expression string
		field      Field
		want       []int
		wantErr    bool
	}{
		{
			name:       "wildcard step",
			expression: "*/15 * * * *",
			field:      FieldMinute,
			want:       []int{0, 15, 30, 45},
		},
		{
			name:       "step overflow marks base only",
			expression: "*/60 * * * *",
			field:      FieldMinute,
			want:       []int{0},
		},
		{
			name:       "range step overflow marks start only",
			expression: "* 10-20/15 * * *",
			field:      FieldHour,
			want:       []int{10},
		},
		{
			name:       "explicit start implicit end",
			expression: "40/7 * * * *",
			field:      FieldMinute,
			want:       []int{40, 47, 54},
		},
		{
			name:       "implicit start explicit end",
			expression: "* -10/4 * * *",
			field:      FieldHour,
			want:       []int{0, 4, 8},
		},
		{
			name:       "range with step",
			expression: "* * * * 1-5/2",
			field:      FieldWeekday,
			want:       []int{1, 3, 5},
		},
		{
			name:       "zero step rejected",
			expression: "*/0 * * * *",
			wantErr:    true,
		},
		{
			name:       "step start out of bounds",
			expression: "60/5 * * * *",
			wantErr:    true,
		},
		{
			name:       "step range inverted",
			expression: "20-10/2 * * * *",
			wantErr:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			schedule, err := Parse(tt.expression)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Parse() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if got := schedule.FieldValues(tt.field); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("%s = %v, want %v", tt.field, got, tt.want)
			}
		})
	}
}

func TestParse_ListsUnion(t *testing.T) {
	schedule, err := Parse("*/10,30 * * * *")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	want := []int{0, 10, 20, 30, 40, 50}
	if got := schedule.FieldValues(FieldMinute); !reflect.DeepEqual(got, want) {
		t.Errorf("minute = %v, want %v", got, want)
	}
}

func TestParse_SteppedListItemExpandsFully(t *testing.T) {
	// A stepped item inside a list expands exactly as a standalone step
	// would, rather than keeping only the written value.
	schedule, err := Parse("50/5,30 * * * *")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	want := []int{30, 50, 55}
	if got := schedule.FieldValues(FieldMinute); !reflect.DeepEqual(got, want) {
		t.Errorf("minute = %v, want %v", got, want)
	}
}

func TestParse_WildcardListItemExpandsFullRange(t *testing.T) {
	schedule, err := Parse("*,5 * * * *")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if got := schedule.FieldValues(FieldMinute); len(got) != 60 {
		t.Errorf("minute has %d values, want 60", len(got))
	}
}

func TestParse_OutOfBoundValues(t *testing.T) {
	tests := []struct {
		name       string
		expression string
	}{
		{name: "minute 60", expression: "60 * * * *"},
		{name: "hour 24", expression: "* 24 * * *"},
		{name: "day 0", expression: "* * 0 * *"},
		{name: "day 32", expression: "* * 32 * *"},
		{name: "month 0", expression: "* * * 0 *"},
		{name: "month 13", expression: "* * * 13 *"},
		{name: "weekday 7", expression: "* * * * 7"},
		{name: "second 60", expression: "60 * * * * *"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			schedule, err := Parse(tt.expression)
			var parseErr *ParseError
			if !errors.As(err, &parseErr) {
				t.Fatalf("Parse(%q) error = %v, want *ParseError", tt.expression, err)
			}
			if parseErr.Kind != ErrOutOfBound {
				t.Errorf("Kind = %v, want ErrOutOfBound", parseErr.Kind)
			}
			if schedule != nil {
				t.Errorf("schedule = %v, want nil on error", schedule)
			}
		})
	}
}

func TestParse_Aliases(t *testing.T) {
	tests := []struct {
		alias     string
		canonical string
	}{
		{"@yearly", "0 0 1 1 *"},
		{"@monthly", "0 0 1 * *"},
		{"@weekly", "0 0 * * 0"},
		{"@daily", "0 0 * * *"},
		{"@hourly", "0 * * * *"},
		{"@minutely", "* * * * *"},
	}

	for _, tt := range tests {
		t.Run(tt.alias, func(t *testing.T) {
			fromAlias, err := Parse(tt.alias)
			if err != nil {
				t.Fatalf("Parse(%q) error = %v", tt.alias, err)
			}
			canonical, err := Parse(tt.canonical)
			if err != nil {
				t.Fatalf("Parse(%q) error = %v", tt.canonical, err)
			}

			for _, field := range fiveFieldOrder {
				if !reflect.DeepEqual(fromAlias.FieldValues(field), canonical.FieldValues(field)) {
					t.Errorf("%s: %s differs from %s", tt.alias, field, tt.canonical)
				}
			}
			if fromAlias.Source() != tt.alias {
				t.Errorf("Source() = %q, want %q", fromAlias.Source(), tt.alias)
			}
		})
	}
}

func TestParse_UnknownAlias(t *testing.T) {
	schedule, err := Parse("@fortnightly")
	if err == nil {
		t.Fatal("Parse() expected error")
	}
	if schedule != nil {
		t.Errorf("schedule = %v, want nil", schedule)
	}
}

func TestParse_SixFieldHasSecond(t *testing.T) {
	schedule, err := Parse("30 * * * * *")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if !schedule.HasSecond() {
		t.Error("HasSecond() = false, want true")
	}
	if got := schedule.FieldValues(FieldSecond); !reflect.DeepEqual(got, []int{30}) {
		t.Errorf("second = %v, want [30]", got)
	}

	fiveField, err := Parse("* * * * *")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if fiveField.HasSecond() {
		t.Error("HasSecond() = true for five-field expression")
	}
	if got := fiveField.FieldValues(FieldSecond); got != nil {
		t.Errorf("second = %v, want nil for five-field expression", got)
	}
}
