package sfv

import "fmt"

// Parser is a character-based scanner for Structured Field Values.
// It keeps the input immutable and advances an offset, so every rule
// consumes from the same cursor and nothing is copied until a value is built.
//
// Outside display strings the wire format is ASCII, so the parser walks
// bytes: the first byte of any multi-byte UTF-8 sequence is rejected by
// every character class, which rejects the whole code point.
type Parser struct {
	data   string // immutable input
	offset int    // current position
	limits Limits // size limits for DoS prevention
}

// NewParser returns a parser over data. A Parser parses one top-level value;
// create a new one per field.
//
//	dict, err := sfv.NewParser(value, sfv.DefaultLimits()).ParseDictionary()
func NewParser(data string, limits Limits) *Parser {
	return &Parser{data: data, limits: limits}
}

// peek returns the byte at the cursor, or 0 at end of input.
func (p *Parser) peek() byte {
	return p.peekAt(0)
}

// peekAt returns the byte n positions past the current offset, or 0.
func (p *Parser) peekAt(n int) byte {
	if p.offset+n >= len(p.data) {
		return 0
	}
	return p.data[p.offset+n]
}

// consume advances past want if it is the byte at the cursor.
func (p *Parser) consume(want byte) bool {
	if p.offset < len(p.data) && p.data[p.offset] == want {
		p.offset++
		return true
	}
	return false
}

// skipOWS skips SP and HTAB.
func (p *Parser) skipOWS() {
	for p.offset < len(p.data) && (p.data[p.offset] == ' ' || p.data[p.offset] == '\t') {
		p.offset++
	}
}

// skipSP skips SP only.
func (p *Parser) skipSP() {
	for p.offset < len(p.data) && p.data[p.offset] == ' ' {
		p.offset++
	}
}

func (p *Parser) isEOF() bool {
	return p.offset >= len(p.data)
}

// Offset returns the number of bytes consumed so far.
func (p *Parser) Offset() int {
	return p.offset
}

// getContext returns up to 20 bytes either side of the cursor, with "..."
// marking truncation.
func (p *Parser) getContext() string {
	const radius = 20
	start := max(p.offset-radius, 0)
	end := min(p.offset+radius, len(p.data))

	snippet := p.data[start:end]
	if start > 0 {
		snippet = "..." + snippet
	}
	if end < len(p.data) {
		snippet += "..."
	}
	return snippet
}

// ErrorKind classifies parse and serialize failures.
type ErrorKind int

const (
	// ErrGrammar is an unexpected character, missing delimiter or
	// unterminated construct.
	ErrGrammar ErrorKind = iota
	// ErrDomain is a value outside its range or encoding: integer and
	// decimal bounds, fractional digits, dates, base64, percent-encoding, UTF-8.
	ErrDomain
	// ErrTrailingInput is unconsumed input after a complete top-level value.
	ErrTrailingInput
	// ErrLimit is a configured Limits value being exceeded.
	ErrLimit
	// ErrShape is a value whose structure does not match the requested
	// field type, or a leaf of an unsupported type.
	ErrShape
	// ErrValidation is an invalid key, token or string found while serializing.
	ErrValidation
)

func (k ErrorKind) String() string {
	switch k {
	case ErrGrammar:
		return "grammar"
	case ErrDomain:
		return "domain"
	case ErrTrailingInput:
		return "trailing input"
	case ErrLimit:
		return "limit"
	case ErrShape:
		return "shape"
	case ErrValidation:
		return "validation"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// ParseError represents a parsing error with location context.
type ParseError struct {
	Offset  int       // byte position where error occurred
	Kind    ErrorKind // failure class
	Message string    // human-readable description
	Context string    // surrounding input for debugging
}

// Error returns a formatted error message.
func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at offset %d: %s (near: %q)", e.Offset, e.Message, e.Context)
}

// newParseError creates a grammar ParseError at the current parser offset.
func (p *Parser) newParseError(message string) *ParseError {
	return p.newParseErrorKind(ErrGrammar, message)
}

func (p *Parser) newParseErrorKind(kind ErrorKind, message string) *ParseError {
	return &ParseError{
		Offset:  p.offset,
		Kind:    kind,
		Message: message,
		Context: p.getContext(),
	}
}

// newDomainError creates a ParseError for a value out of range or badly encoded.
func (p *Parser) newDomainError(message string) *ParseError {
	return p.newParseErrorKind(ErrDomain, message)
}

// newLimitError creates a ParseError for an exceeded Limits value.
func (p *Parser) newLimitError(what string, got, limit int) *ParseError {
	return p.newParseErrorKind(ErrLimit, fmt.Sprintf("%s %d exceeds limit %d", what, got, limit))
}

// checkInputLength runs before any top-level rule.
func (p *Parser) checkInputLength() error {
	if p.limits.MaxInputLength > 0 && len(p.data) > p.limits.MaxInputLength {
		return p.newLimitError("input length", len(p.data), p.limits.MaxInputLength)
	}
	return nil
}

// checkTrailing fails if any input remains after a top-level value.
func (p *Parser) checkTrailing(what string) error {
	if !p.isEOF() {
		return p.newParseErrorKind(ErrTrailingInput, fmt.Sprintf("unexpected characters at end of %s", what))
	}
	return nil
}

// SerializeError reports a value that cannot be serialized.
type SerializeError struct {
	Kind    ErrorKind // ErrShape, ErrValidation or ErrDomain
	Message string
}

// Error returns a formatted error message.
func (e *SerializeError) Error() string {
	return "serialize error: " + e.Message
}

func newSerializeError(kind ErrorKind, format string, args ...interface{}) *SerializeError {
	return &SerializeError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}
