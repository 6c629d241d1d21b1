package sfv

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// parseBoolean parses a boolean: ?0 (false) or ?1 (true).
func (p *Parser) parseBoolean() (Boolean, error) {
	if !p.consume('?') {
		return false, p.newParseError("expected '?' at start of boolean")
	}

	switch p.peek() {
	case '1':
		p.offset++
		return true, nil
	case '0':
		p.offset++
		return false, nil
	}

	return false, p.newParseError("expected '0' or '1' after '?'")
}

// parseNumber parses an integer or decimal.
// Integers carry at most 15 digits; decimals at most 3 fractional digits
// and a magnitude below 10^12. A negative zero comes back as zero.
func (p *Parser) parseNumber() (BareItem, error) {
	neg := p.consume('-')

	if !isDigit(p.peek()) {
		if neg {
			return nil, p.newParseError("expected digit after minus sign")
		}
		return nil, p.newParseError("expected digit in number")
	}

	// Parse integer digits
	digitStart := p.offset
	for p.offset < len(p.data) && isDigit(p.data[p.offset]) {
		p.offset++
	}
	intPart := p.data[digitStart:p.offset]

	// Check 15-digit limit
	if len(intPart) > 15 {
		return nil, p.newDomainError("integer too large: more than 15 digits")
	}

	if p.peek() != '.' {
		value, err := strconv.ParseInt(intPart, 10, 64)
		if err != nil {
			return nil, p.newDomainError("invalid integer: " + err.Error())
		}
		if neg {
			value = -value
		}
		if value < MinInteger || value > MaxInteger {
			return nil, p.newDomainError("integer out of range")
		}
		return Integer(value), nil
	}

	if len(intPart) > 12 {
		return nil, p.newDomainError("decimal has more than 12 integer digits")
	}
	p.offset++ // consume '.'

	fracStart := p.offset
	for p.offset < len(p.data) && isDigit(p.data[p.offset]) {
		p.offset++
	}
	fracPart := p.data[fracStart:p.offset]

	if len(fracPart) == 0 {
		return nil, p.newParseError("expected digit after decimal point")
	}
	if len(fracPart) > 3 {
		return nil, p.newDomainError("decimal has more than 3 fractional digits")
	}

	whole, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return nil, p.newDomainError("invalid decimal: " + err.Error())
	}
	frac, err := strconv.ParseInt(fracPart+strings.Repeat("0", 3-len(fracPart)), 10, 64)
	if err != nil {
		return nil, p.newDomainError("invalid decimal: " + err.Error())
	}

	thousandths := whole*1000 + frac
	if thousandths >= decimalLimit {
		return nil, p.newDomainError("decimal out of range")
	}
	if neg {
		thousandths = -thousandths
	}

	return Decimal{thousandths: thousandths}, nil
}

// parseString parses a quoted string.
// Only \" and \\ are valid escape sequences.
func (p *Parser) parseString() (String, error) {
	if !p.consume('"') {
		return "", p.newParseError("expected '\"' at start of string")
	}

	var buf []byte
	for {
		if p.isEOF() {
			return "", p.newParseError("unterminated string (missing closing quote)")
		}

		c := p.data[p.offset]
		p.offset++

		switch {
		case c == '"':
			return String(buf), nil

		case c == '\\':
			if p.isEOF() {
				return "", p.newParseError("unexpected EOF after backslash")
			}

			escaped := p.data[p.offset]
			p.offset++

			if escaped != '"' && escaped != '\\' {
				return "", p.newParseError("invalid escape sequence: only \\\" and \\\\ are allowed")
			}

			buf = append(buf, escaped)

		case !isPrintableASCII(c):
			// Control characters and non-ASCII not allowed
			p.offset--
			return "", p.newParseError(fmt.Sprintf("invalid character 0x%02x in string (must be printable ASCII)", c))

		default:
			buf = append(buf, c)
		}

		// Check string length limit during parsing to fail fast
		if p.limits.MaxStringLength > 0 && len(buf) > p.limits.MaxStringLength {
			return "", p.newLimitError("string length", len(buf), p.limits.MaxStringLength)
		}
	}
}

// parseToken parses a token (unquoted identifier).
// It must start with a letter or '*' and extends greedily over tchar, ':' and '/'.
func (p *Parser) parseToken() (Token, error) {
	start := p.offset

	if p.isEOF() {
		return Token{}, p.newParseError("expected token, got EOF")
	}

	c := p.data[p.offset]
	if !isAlpha(c) && c != '*' {
		return Token{}, p.newParseError("token must start with letter or '*'")
	}
	p.offset++

	for p.offset < len(p.data) && isTokenChar(p.data[p.offset]) {
		p.offset++
	}

	tokenLen := p.offset - start
	if p.limits.MaxTokenLength > 0 && tokenLen > p.limits.MaxTokenLength {
		return Token{}, p.newLimitError("token length", tokenLen, p.limits.MaxTokenLength)
	}

	return Token{Value: p.data[start:p.offset]}, nil
}

// parseKey parses a dictionary or parameter key: [a-z*][a-z0-9_.*-]*
func (p *Parser) parseKey() (string, error) {
	start := p.offset

	if p.isEOF() {
		return "", p.newParseError("expected key, got EOF")
	}
	if !isKeyStart(p.data[p.offset]) {
		return "", p.newParseError("key must start with lowercase letter or '*'")
	}
	p.offset++

	for p.offset < len(p.data) && isKeyChar(p.data[p.offset]) {
		p.offset++
	}

	keyLen := p.offset - start
	if p.limits.MaxKeyLength > 0 && keyLen > p.limits.MaxKeyLength {
		return "", p.newLimitError("key length", keyLen, p.limits.MaxKeyLength)
	}

	return p.data[start:p.offset], nil
}

// parseByteSequence parses a byte sequence (:base64:).
// The base64 text is kept as-is; it must decode, padded or not.
func (p *Parser) parseByteSequence() (Binary, error) {
	if !p.consume(':') {
		return Binary{}, p.newParseError("expected ':' at start of byte sequence")
	}

	start := p.offset

	// Find closing colon
	for p.offset < len(p.data) {
		c := p.data[p.offset]
		if c == ':' {
			break
		}
		if !isBase64Char(c) {
			return Binary{}, p.newParseError(fmt.Sprintf("invalid base64 character 0x%02x in byte sequence", c))
		}
		p.offset++
	}

	if !p.consume(':') {
		return Binary{}, p.newParseError("expected closing ':' for byte sequence")
	}

	encoded := p.data[start : p.offset-1]

	decoded, err := decodeBase64(encoded)
	if err != nil {
		return Binary{}, p.newDomainError("invalid base64 in byte sequence: " + err.Error())
	}

	// Check decoded byte sequence length limit
	if p.limits.MaxByteSequenceLength > 0 && len(decoded) > p.limits.MaxByteSequenceLength {
		return Binary{}, p.newLimitError("byte sequence length", len(decoded), p.limits.MaxByteSequenceLength)
	}

	return Binary{Value: encoded}, nil
}

// parseDate parses an RFC 9651 date: '@' followed by an integer number of
// seconds within years 1 to 9999.
func (p *Parser) parseDate() (Date, error) {
	if !p.consume('@') {
		return Date{}, p.newParseError("expected '@' at start of date")
	}

	num, err := p.parseNumber()
	if err != nil {
		return Date{}, err
	}

	seconds, ok := num.(Integer)
	if !ok {
		return Date{}, p.newDomainError("timestamp must be integer")
	}
	if seconds < MinDate || seconds > MaxDate {
		return Date{}, p.newDomainError("date out of supported range")
	}

	return Date{Value: int64(seconds)}, nil
}

// parseDisplayString parses an RFC 9651 display string: %"...".
// Bytes are either printable ASCII other than '"' and '%', or '%' followed
// by two lowercase hex digits. The collected bytes must be valid UTF-8.
func (p *Parser) parseDisplayString() (DisplayString, error) {
	if p.peek() != '%' || p.peekAt(1) != '"' {
		return DisplayString{}, p.newParseError("expected '%\"' at start of display string")
	}
	p.offset += 2

	var buf []byte
	for !p.isEOF() {
		c := p.data[p.offset]

		switch {
		case c == '"':
			p.offset++
			if !utf8.Valid(buf) {
				return DisplayString{}, p.newDomainError("invalid UTF-8 in display string")
			}
			return DisplayString{Value: string(buf)}, nil

		case c == '%':
			if p.offset+2 >= len(p.data) {
				return DisplayString{}, p.newParseError("incomplete percent encoding in display string")
			}
			h1, h2 := p.data[p.offset+1], p.data[p.offset+2]
			if !isLCHexDigit(h1) || !isLCHexDigit(h2) {
				return DisplayString{}, p.newDomainError("invalid hex digits in percent encoding")
			}
			buf = append(buf, unhex(h1)<<4|unhex(h2))
			p.offset += 3

		case isPrintableASCII(c):
			buf = append(buf, c)
			p.offset++

		default:
			return DisplayString{}, p.newParseError(fmt.Sprintf("invalid character 0x%02x in display string", c))
		}

		if p.limits.MaxDisplayStringLength > 0 && len(buf) > p.limits.MaxDisplayStringLength {
			return DisplayString{}, p.newLimitError("display string length", len(buf), p.limits.MaxDisplayStringLength)
		}
	}

	return DisplayString{}, p.newParseError("unterminated display string")
}

// unhex converts a lowercase hex digit to its value.
func unhex(c byte) byte {
	if c >= 'a' {
		return c - 'a' + 10
	}
	return c - '0'
}
