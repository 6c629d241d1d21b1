package sfv

// Character classes are kept in a 256-entry table so every grammar
// position is a single lookup. Bytes 0x80..0xFF have no class bits.
const (
	cAlpha = 1 << iota
	cLCAlpha
	cDigit
	cLCHex
	cTchar     // RFC 9110 tchar
	cKey       // key continuation: lcalpha / DIGIT / "_" / "-" / "." / "*"
	cBase64    // ALPHA / DIGIT / "+" / "/" / "="
	cPrintable // VCHAR / SP
)

var charClass [256]uint8

func init() {
	for i := 0; i < 256; i++ {
		c := byte(i)
		var cls uint8
		switch {
		case c >= 'a' && c <= 'z':
			cls |= cAlpha | cLCAlpha
		case c >= 'A' && c <= 'Z':
			cls |= cAlpha
		case c >= '0' && c <= '9':
			cls |= cDigit
		}
		if cls&(cDigit) != 0 || (c >= 'a' && c <= 'f') {
			cls |= cLCHex
		}
		if cls&(cAlpha|cDigit) != 0 {
			cls |= cTchar | cBase64
		}
		switch c {
		case '!', '#', '$', '%', '&', '\'', '*', '+', '-', '.', '^', '_', '`', '|', '~':
			cls |= cTchar
		}
		if cls&(cLCAlpha|cDigit) != 0 {
			cls |= cKey
		}
		switch c {
		case '_', '-', '.', '*':
			cls |= cKey
		case '+', '/', '=':
			cls |= cBase64
		}
		if c >= 0x20 && c <= 0x7E {
			cls |= cPrintable
		}
		charClass[i] = cls
	}
}

func isAlpha(c byte) bool {
	return charClass[c]&cAlpha != 0
}

func isLCAlpha(c byte) bool {
	return charClass[c]&cLCAlpha != 0
}

func isDigit(c byte) bool {
	return charClass[c]&cDigit != 0
}

func isLCHexDigit(c byte) bool {
	return charClass[c]&cLCHex != 0
}

// isTokenChar reports whether c may follow the first character of a token:
// tchar plus ":" and "/".
func isTokenChar(c byte) bool {
	return charClass[c]&cTchar != 0 || c == ':' || c == '/'
}

func isKeyStart(c byte) bool {
	return isLCAlpha(c) || c == '*'
}

func isKeyChar(c byte) bool {
	return charClass[c]&cKey != 0
}

func isBase64Char(c byte) bool {
	return charClass[c]&cBase64 != 0
}

func isPrintableASCII(c byte) bool {
	return charClass[c]&cPrintable != 0
}

// isValidKey checks the key grammar: [a-z*][a-z0-9_.*-]*
func isValidKey(s string) bool {
	if len(s) == 0 || !isKeyStart(s[0]) {
		return false
	}
	for i := 1; i < len(s); i++ {
		if !isKeyChar(s[i]) {
			return false
		}
	}
	return true
}

// isValidToken checks the token grammar: [A-Za-z*] followed by tchar, ":" or "/".
func isValidToken(s string) bool {
	if len(s) == 0 {
		return false
	}
	if !isAlpha(s[0]) && s[0] != '*' {
		return false
	}
	for i := 1; i < len(s); i++ {
		if !isTokenChar(s[i]) {
			return false
		}
	}
	return true
}
