package cronexpr

// ScanErrorKind classifies lexical failures.
type ScanErrorKind int

const (
	// ErrEmptyExpression means the input string was empty.
	ErrEmptyExpression ScanErrorKind = iota
	// ErrLengthMismatch means the input did not split into 5 or 6 fields.
	ErrLengthMismatch
	// ErrMalformedToken means a field contained invalid syntax.
	ErrMalformedToken
)

// ScanError is a lexical error produced while tokenizing an expression.
type ScanError struct {
	Kind    ScanErrorKind
	Message string
}

func (e *ScanError) Error() string {
	return e.Message
}

// ParseErrorKind classifies semantic failures.
type ParseErrorKind int

const (
	// ErrInvalidValue means a token could not be interpreted: an inverted
	// range, a non-positive step, or an unparseable number.
	ErrInvalidValue ParseErrorKind = iota
	// ErrOutOfBound means a value fell outside its field's permitted range.
	ErrOutOfBound
)

// ParseError is a semantic error produced while expanding tokens into
// per-field value sets.
type ParseError struct {
	Kind    ParseErrorKind
	Message string
}

func (e *ParseError) Error() string {
	return e.Message
}
