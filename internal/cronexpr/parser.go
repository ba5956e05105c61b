package cronexpr

import (
	"fmt"
	"strconv"
	"strings"
)

// aliases maps the recognized named shorthands to their canonical
// five-field forms. Substitution happens textually, before scanning.
var aliases = map[string]string{
	"@yearly":   "0 0 1 1 *",
	"@monthly":  "0 0 1 * *",
	"@weekly":   "0 0 * * 0",
	"@daily":    "0 0 * * *",
	"@hourly":   "0 * * * *",
	"@minutely": "* * * * *",
}

// Parse scans and expands an expression into an immutable Schedule.
// Construction is atomic: the first lexical or semantic error aborts the
// whole parse, and no partially-built schedule is returned.
func Parse(expression string) (*Schedule, error) {
	source := expression

	trimmed := strings.TrimSpace(expression)
	if strings.HasPrefix(trimmed, "@") {
		expanded, ok := aliases[trimmed]
		if !ok {
			return nil, &ScanError{
				Kind:    ErrMalformedToken,
				Message: fmt.Sprintf("Unrecognized alias '%s'", trimmed),
			}
		}
		expression = expanded
	}

	tokens, err := Scan(expression)
	if err != nil {
		return nil, err
	}

	schedule := &Schedule{
		source: source,
		fields: make(map[Field]*fieldSet),
	}
	for _, token := range tokens {
		if token.Field == FieldSecond {
			schedule.hasSecond = true
		}
		set, ok := schedule.fields[token.Field]
		if !ok {
			bounds := fieldBounds[token.Field]
			set = newFieldSet(bounds.Min, bounds.Max)
			schedule.fields[token.Field] = set
		}
		if err := expandToken(token, set); err != nil {
			return nil, err
		}
	}

	return schedule, nil
}

// expandToken marks the values a single token permits. List items sharing a
// field union into the same set.
func expandToken(token Token, set *fieldSet) error {
	switch token.Kind {
	case TokenAny:
		set.markRange(set.min, set.max)
		return nil

	case TokenNumber:
		v, err := fieldValue(token.Lexeme, token.Field)
		if err != nil {
			return err
		}
		if v < set.min || v > set.max {
			return outOfBound(v, token.Field, set)
		}
		set.mark(v)
		return nil

	case TokenRange:
		first, last, err := rangeEndpoints(token.Lexeme, token.Field, set)
		if err != nil {
			return err
		}
		set.markRange(first, last)
		return nil

	case TokenStep:
		return expandStep(token, set)

	default:
		return &ParseError{
			Kind:    ErrInvalidValue,
			Message: fmt.Sprintf("Unknown token kind for field '%s'", token.Field),
		}
	}
}

// expandStep resolves a step token's implicit start (field minimum) and end
// (field maximum) and marks every n-th value between them. A start whose
// first increment already overshoots the end marks the start alone; that is
// a valid, narrow expansion, not an error.
func expandStep(token Token, set *fieldSet) error {
	base, stepText, _ := strings.Cut(token.Lexeme, "/")
	step, err := fieldValue(stepText, token.Field)
	if err != nil {
		return err
	}
	if step < 1 {
		return &ParseError{
			Kind:    ErrInvalidValue,
			Message: fmt.Sprintf("Step must be at least 1 in '%s' for field '%s'", token.Lexeme, token.Field),
		}
	}

	first, last := set.min, set.max
	switch {
	case base == "*":
		// Full field range.
	case isDigits(base):
		first, err = fieldValue(base, token.Field)
		if err != nil {
			return err
		}
	case strings.HasPrefix(base, "-"):
		last, err = fieldValue(base[1:], token.Field)
		if err != nil {
			return err
		}
	default:
		first, last, err = rangeEndpoints(base, token.Field, set)
		if err != nil {
			return err
		}
	}

	if first < set.min || first > set.max {
		return outOfBound(first, token.Field, set)
	}
	if last < set.min || last > set.max {
		return outOfBound(last, token.Field, set)
	}
	if first > last {
		return &ParseError{
			Kind:    ErrInvalidValue,
			Message: fmt.Sprintf("Inverted range %d-%d in '%s' for field '%s'", first, last, token.Lexeme, token.Field),
		}
	}

	for v := first; v <= last; v += step {
		set.mark(v)
	}
	return nil
}

// rangeEndpoints parses and bounds-checks an a-b range lexeme.
func rangeEndpoints(lexeme string, field Field, set *fieldSet) (int, int, error) {
	a, b, _ := strings.Cut(lexeme, "-")
	first, err := fieldValue(a, field)
	if err != nil {
		return 0, 0, err
	}
	last, err := fieldValue(b, field)
	if err != nil {
		return 0, 0, err
	}
	if first > last {
		return 0, 0, &ParseError{
			Kind:    ErrInvalidValue,
			Message: fmt.Sprintf("Inverted range '%s' for field '%s'", lexeme, field),
		}
	}
	if first < set.min || last > set.max {
		return 0, 0, &ParseError{
			Kind:    ErrOutOfBound,
			Message: fmt.Sprintf("Range '%s' outside bounds [%d, %d] for field '%s'", lexeme, set.min, set.max, field),
		}
	}
	return first, last, nil
}

// fieldValue converts a digit lexeme to an integer. The scanner guarantees
// digit-only input, so the only failure mode left is overflow.
func fieldValue(text string, field Field) (int, error) {
	v, err := strconv.Atoi(text)
	if err != nil {
		return 0, &ParseError{
			Kind:    ErrInvalidValue,
			Message: fmt.Sprintf("Invalid number '%s' for field '%s'", text, field),
		}
	}
	return v, nil
}

func outOfBound(v int, field Field, set *fieldSet) error {
	return &ParseError{
		Kind:    ErrOutOfBound,
		Message: fmt.Sprintf("Value %d outside bounds [%d, %d] for field '%s'", v, set.min, set.max, field),
	}
}
