package cronexpr

import (
	"fmt"
	"strings"
)

// Scan tokenizes a raw schedule expression into an ordered token sequence.
// A field yields multiple tokens when it is a comma-separated list. The
// result is all-or-nothing: either the complete token slice or exactly one
// error, never a partial slice. Scanning checks syntax only; numeric bounds
// are enforced by Parse.
func Scan(expression string) ([]Token, error) {
	if expression == "" {
		return nil, &ScanError{
			Kind:    ErrEmptyExpression,
			Message: "expression has zero length",
		}
	}

	groups := strings.Fields(expression)
	if len(groups) != 5 && len(groups) != 6 {
		return nil, &ScanError{
			Kind:    ErrLengthMismatch,
			Message: fmt.Sprintf("Expected 5 or 6 fields but got %d field(s) in %q", len(groups), expression),
		}
	}

	order := fiveFieldOrder
	if len(groups) == 6 {
		order = sixFieldOrder
	}

	var tokens []Token
	for i, group := range groups {
		field := order[i]
		items := strings.Split(group, ",")
		for _, item := range items {
			if item == "" {
				return nil, &ScanError{
					Kind:    ErrMalformedToken,
					Message: fmt.Sprintf("Invalid list expression %q for field '%s': empty item", group, field),
				}
			}
			token, err := scanItem(expression, item, field)
			if err != nil {
				return nil, err
			}
			tokens = append(tokens, token)
		}
	}

	return tokens, nil
}

// scanItem classifies a single list item. The full expression is carried
// along only for error reporting.
func scanItem(expression, item string, field Field) (Token, error) {
	switch {
	case item == "*":
		return Token{Lexeme: item, Kind: TokenAny, Field: field}, nil

	case strings.ContainsRune(item, '/'):
		if err := checkStep(item, field); err != nil {
			return Token{}, err
		}
		return Token{Lexeme: item, Kind: TokenStep, Field: field}, nil

	case strings.ContainsRune(item, '-'):
		if err := checkRange(item, field); err != nil {
			return Token{}, err
		}
		return Token{Lexeme: item, Kind: TokenRange, Field: field}, nil

	case isDigits(item):
		return Token{Lexeme: item, Kind: TokenNumber, Field: field}, nil

	case item[0] >= '0' && item[0] <= '9':
		// Starts numeric but isn't a pure digit sequence: a decimal point,
		// exponent marker, or other trailing garbage.
		return Token{}, &ScanError{
			Kind:    ErrMalformedToken,
			Message: fmt.Sprintf("Invalid number '%s' for field '%s'", item, field),
		}

	default:
		return Token{}, &ScanError{
			Kind:    ErrMalformedToken,
			Message: fmt.Sprintf("Invalid token '%s' for field '%s' in %q", item, field, expression),
		}
	}
}

// checkStep validates the syntax of a stepped item: */n, a/n, -b/n, a-b/n.
// The step value must be a digit sequence; ranges, second slashes, and
// backslashes in the step are rejected.
func checkStep(item string, field Field) error {
	malformed := &ScanError{
		Kind:    ErrMalformedToken,
		Message: fmt.Sprintf("Invalid step expression '%s' for field '%s'", item, field),
	}

	if strings.Count(item, "/") != 1 {
		return malformed
	}
	base, step, _ := strings.Cut(item, "/")
	if !isDigits(step) {
		return malformed
	}

	switch {
	case base == "*":
		return nil
	case isDigits(base):
		return nil
	case strings.HasPrefix(base, "-") && isDigits(base[1:]):
		// Implicit start: -b/n walks from the field minimum to b.
		return nil
	case strings.Count(base, "-") == 1:
		a, b, _ := strings.Cut(base, "-")
		if isDigits(a) && isDigits(b) {
			return nil
		}
		return malformed
	default:
		return malformed
	}
}

// checkRange validates the syntax of an a-b range item. Missing endpoints,
// doubled hyphens, and extra hyphens are rejected.
func checkRange(item string, field Field) error {
	a, b, _ := strings.Cut(item, "-")
	if isDigits(a) && isDigits(b) {
		return nil
	}
	return &ScanError{
		Kind:    ErrMalformedToken,
		Message: fmt.Sprintf("Invalid range expression '%s' for field '%s'", item, field),
	}
}

// isDigits reports whether s is a non-empty ASCII digit sequence.
func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
