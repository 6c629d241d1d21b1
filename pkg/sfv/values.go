package sfv

import (
	"encoding/base64"
	"fmt"
	"math"
	"strconv"
	"time"
)

// Kind identifies the variant of a BareItem.
type Kind int

const (
	KindInteger Kind = iota + 1
	KindDecimal
	KindString
	KindBoolean
	KindToken
	KindBinary
	KindDate
	KindDisplayString
)

func (k Kind) String() string {
	switch k {
	case KindInteger:
		return "integer"
	case KindDecimal:
		return "decimal"
	case KindString:
		return "string"
	case KindBoolean:
		return "boolean"
	case KindToken:
		return "token"
	case KindBinary:
		return "binary"
	case KindDate:
		return "date"
	case KindDisplayString:
		return "displaystring"
	default:
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// BareItem is a single scalar value before parameters are attached.
// The set of implementations is closed: Integer, Decimal, String, Boolean,
// Token, Binary, Date and DisplayString.
type BareItem interface {
	Kind() Kind
	bareItem()
}

// Integer is an integer bare item in [-999999999999999, 999999999999999].
type Integer int64

// Decimal is a fixed-point number with three fractional digits, stored as
// a count of thousandths. Its magnitude must stay below 10^12.
type Decimal struct {
	thousandths int64
}

// String is a quoted string bare item. Only printable ASCII is allowed.
type String string

// Boolean is a boolean bare item (?1 / ?0).
type Boolean bool

// Token represents an unquoted identifier.
// Tokens are distinct from strings: they are serialized without quotes.
type Token struct {
	Value string
}

// Binary represents a byte sequence. Value holds the base64 text exactly
// as it appears (or will appear) on the wire; Bytes decodes it.
type Binary struct {
	Value string
}

// Date represents an RFC 9651 date as integer seconds since the Unix epoch.
type Date struct {
	Value int64
}

// DisplayString represents an RFC 9651 display string: arbitrary Unicode
// text that travels percent-encoded as UTF-8.
type DisplayString struct {
	Value string
}

func (Integer) Kind() Kind       { return KindInteger }
func (Decimal) Kind() Kind       { return KindDecimal }
func (String) Kind() Kind        { return KindString }
func (Boolean) Kind() Kind       { return KindBoolean }
func (Token) Kind() Kind         { return KindToken }
func (Binary) Kind() Kind        { return KindBinary }
func (Date) Kind() Kind          { return KindDate }
func (DisplayString) Kind() Kind { return KindDisplayString }

func (Integer) bareItem()       {}
func (Decimal) bareItem()       {}
func (String) bareItem()        {}
func (Boolean) bareItem()       {}
func (Token) bareItem()         {}
func (Binary) bareItem()        {}
func (Date) bareItem()          {}
func (DisplayString) bareItem() {}

// Numeric and date bounds.
const (
	MaxInteger = 999999999999999
	MinInteger = -999999999999999

	// decimalLimit is 10^12 expressed in thousandths.
	decimalLimit = 1000000000000000

	MinDate = -62135596800 // 0001-01-01T00:00:00Z
	MaxDate = 253402214400 // 9999-12-31T00:00:00Z
)

// NewToken tags s as a token. The lexeme is validated when serialized.
func NewToken(lexeme string) Token {
	return Token{Value: lexeme}
}

// NewBinary tags base64Text as a byte sequence. The text is validated
// when serialized and emitted as given.
func NewBinary(base64Text string) Binary {
	return Binary{Value: base64Text}
}

// NewBinaryFromBytes encodes b with padded standard base64.
func NewBinaryFromBytes(b []byte) Binary {
	return Binary{Value: base64.StdEncoding.EncodeToString(b)}
}

// NewDate tags seconds since the Unix epoch as a date.
func NewDate(seconds int64) Date {
	return Date{Value: seconds}
}

// DateFromTime converts t to a Date, truncating to whole seconds.
func DateFromTime(t time.Time) Date {
	return Date{Value: t.Unix()}
}

// NewDisplayString tags text as a display string.
func NewDisplayString(text string) DisplayString {
	return DisplayString{Value: text}
}

// Bytes decodes the base64 text. Both padded and unpadded forms are accepted.
func (b Binary) Bytes() ([]byte, error) {
	return decodeBase64(b.Value)
}

// Time returns the date as a UTC time.
func (d Date) Time() time.Time {
	return time.Unix(d.Value, 0).UTC()
}

// NewDecimal converts f to a Decimal, rounding to three fractional digits
// with halves rounded away from zero. Values whose magnitude cannot be held
// saturate and fail when serialized; NaN saturates positively.
func NewDecimal(f float64) Decimal {
	scaled := math.Round(f * 1000)
	switch {
	case math.IsNaN(scaled), scaled >= math.MaxInt64:
		return Decimal{thousandths: math.MaxInt64}
	case scaled <= math.MinInt64:
		return Decimal{thousandths: math.MinInt64}
	}
	if scaled == 0 {
		// -0 collapses to 0
		return Decimal{}
	}
	return Decimal{thousandths: int64(scaled)}
}

// DecimalFromThousandths builds a Decimal from an exact count of thousandths,
// so DecimalFromThousandths(1500) is 1.5.
func DecimalFromThousandths(n int64) Decimal {
	return Decimal{thousandths: n}
}

// Thousandths returns the exact fixed-point representation.
func (d Decimal) Thousandths() int64 {
	return d.thousandths
}

// Float64 returns the nearest float64.
func (d Decimal) Float64() float64 {
	return float64(d.thousandths) / 1000
}

// String formats the decimal in its canonical wire form, e.g. "1.5", "-0.25", "2.0".
func (d Decimal) String() string {
	n := d.thousandths
	neg := n < 0
	var u uint64
	if neg {
		u = uint64(-(n + 1)) + 1
	} else {
		u = uint64(n)
	}
	whole := u / 1000
	frac := u % 1000

	s := strconv.FormatUint(whole, 10) + "."
	switch {
	case frac == 0:
		s += "0"
	case frac%100 == 0:
		s += strconv.FormatUint(frac/100, 10)
	case frac%10 == 0:
		s += fmt.Sprintf("%02d", frac/10)
	default:
		s += fmt.Sprintf("%03d", frac)
	}
	if neg {
		s = "-" + s
	}
	return s
}

// decodeBase64 accepts padded and unpadded standard base64.
func decodeBase64(s string) ([]byte, error) {
	decoded, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		// Try raw encoding (without padding)
		var rawErr error
		decoded, rawErr = base64.RawStdEncoding.DecodeString(s)
		if rawErr != nil {
			return nil, err
		}
	}
	return decoded, nil
}
