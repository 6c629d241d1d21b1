package sfv

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// SerializeItem serializes an Item to its canonical string representation.
// Format: bare-item[;param1=value1;param2=value2...]
func SerializeItem(item Item) (string, error) {
	var sb strings.Builder
	if err := writeItem(&sb, item); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// SerializeInnerList serializes an InnerList to its canonical string representation.
// Format: (item1 item2 ...)[;param1=value1;param2=value2...]
func SerializeInnerList(innerList InnerList) (string, error) {
	var sb strings.Builder
	if err := writeInnerList(&sb, innerList); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// SerializeList serializes a List to its canonical string representation.
// Format: member1, member2, ...
func SerializeList(list *List) (string, error) {
	if list == nil {
		return "", newSerializeError(ErrShape, "list is nil")
	}

	var sb strings.Builder

	for i, member := range list.Members {
		if i > 0 {
			sb.WriteString(", ")
		}
		if err := writeMember(&sb, member); err != nil {
			return "", err
		}
	}

	return sb.String(), nil
}

// SerializeDictionary serializes a Dictionary to its canonical string representation.
// Format: key1=value1, key2, ...
// Boolean true items are written as the bare key followed by their parameters.
func SerializeDictionary(dict *Dictionary) (string, error) {
	if dict == nil {
		return "", newSerializeError(ErrShape, "dictionary is nil")
	}

	var sb strings.Builder

	for i, key := range dict.Keys {
		if err := validateKey(key); err != nil {
			return "", err
		}

		value, ok := dict.Values[key]
		if !ok {
			return "", newSerializeError(ErrShape, "dictionary key %q has no value", key)
		}

		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(key)

		if ip, ok := value.(*Item); ok && ip != nil {
			value = *ip
		}
		if item, ok := value.(Item); ok {
			if b, isBool := item.Value.(Boolean); isBool && bool(b) {
				if err := writeParameters(&sb, item.Parameters); err != nil {
					return "", err
				}
				continue
			}
		}

		sb.WriteByte('=')
		if err := writeMember(&sb, value); err != nil {
			return "", err
		}
	}

	return sb.String(), nil
}

// SerializeString serializes a string to quoted string format,
// escaping backslashes and double quotes. It does not validate s;
// use SerializeItem for checked output.
func SerializeString(s string) string {
	var sb strings.Builder
	writeQuoted(&sb, s)
	return sb.String()
}

func writeMember(sb *strings.Builder, member Member) error {
	switch v := member.(type) {
	case Item:
		return writeItem(sb, v)
	case InnerList:
		return writeInnerList(sb, v)
	case *Item:
		if v == nil {
			return newSerializeError(ErrShape, "nil member")
		}
		return writeItem(sb, *v)
	case *InnerList:
		if v == nil {
			return newSerializeError(ErrShape, "nil member")
		}
		return writeInnerList(sb, *v)
	default:
		return newSerializeError(ErrShape, "invalid member type: %T", member)
	}
}

func writeItem(sb *strings.Builder, item Item) error {
	if err := writeBareItem(sb, item.Value); err != nil {
		return err
	}
	return writeParameters(sb, item.Parameters)
}

func writeInnerList(sb *strings.Builder, innerList InnerList) error {
	sb.WriteByte('(')

	for i, item := range innerList.Items {
		if i > 0 {
			sb.WriteByte(' ')
		}
		if err := writeItem(sb, item); err != nil {
			return err
		}
	}

	sb.WriteByte(')')

	return writeParameters(sb, innerList.Parameters)
}

// writeParameters writes ;key for Boolean(true) values and ;key=value otherwise.
func writeParameters(sb *strings.Builder, params Params) error {
	for _, param := range params {
		if err := validateKey(param.Key); err != nil {
			return err
		}

		sb.WriteByte(';')
		sb.WriteString(param.Key)

		if b, ok := param.Value.(Boolean); ok && bool(b) {
			continue
		}

		sb.WriteByte('=')
		if err := writeBareItem(sb, param.Value); err != nil {
			return err
		}
	}

	return nil
}

// writeBareItem validates a bare item and writes its canonical form.
func writeBareItem(sb *strings.Builder, value BareItem) error {
	switch v := value.(type) {
	case Integer:
		if v < MinInteger || v > MaxInteger {
			return newSerializeError(ErrDomain, "integer %d out of range", int64(v))
		}
		sb.WriteString(strconv.FormatInt(int64(v), 10))

	case Decimal:
		if v.thousandths >= decimalLimit || v.thousandths <= -decimalLimit {
			return newSerializeError(ErrDomain, "decimal out of range")
		}
		sb.WriteString(v.String())

	case String:
		for i := 0; i < len(v); i++ {
			if !isPrintableASCII(v[i]) {
				return newSerializeError(ErrValidation, "string contains invalid character 0x%02x", v[i])
			}
		}
		writeQuoted(sb, string(v))

	case Boolean:
		if v {
			sb.WriteString("?1")
		} else {
			sb.WriteString("?0")
		}

	case Token:
		if !isValidToken(v.Value) {
			return newSerializeError(ErrValidation, "invalid token %q", v.Value)
		}
		sb.WriteString(v.Value)

	case Binary:
		for i := 0; i < len(v.Value); i++ {
			if !isBase64Char(v.Value[i]) {
				return newSerializeError(ErrValidation, "invalid base64 character 0x%02x in byte sequence", v.Value[i])
			}
		}
		if _, err := decodeBase64(v.Value); err != nil {
			return newSerializeError(ErrDomain, "invalid base64 in byte sequence: %v", err)
		}
		sb.WriteByte(':')
		sb.WriteString(v.Value)
		sb.WriteByte(':')

	case Date:
		if v.Value < MinDate || v.Value > MaxDate {
			return newSerializeError(ErrDomain, "date %d out of supported range", v.Value)
		}
		sb.WriteByte('@')
		sb.WriteString(strconv.FormatInt(v.Value, 10))

	case DisplayString:
		if !utf8.ValidString(v.Value) {
			return newSerializeError(ErrValidation, "display string is not valid UTF-8")
		}
		writeDisplayString(sb, v.Value)

	case nil:
		return newSerializeError(ErrShape, "missing bare item value")

	default:
		return newSerializeError(ErrShape, "unsupported bare item type: %T", value)
	}

	return nil
}

func writeQuoted(sb *strings.Builder, s string) {
	sb.WriteByte('"')
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '\\' || c == '"' {
			sb.WriteByte('\\')
		}
		sb.WriteByte(c)
	}
	sb.WriteByte('"')
}

const lowerHex = "0123456789abcdef"

// writeDisplayString percent-encodes '%', '"' and every byte outside
// printable ASCII of the UTF-8 form of s.
func writeDisplayString(sb *strings.Builder, s string) {
	sb.WriteString(`%"`)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '%' || c == '"' || !isPrintableASCII(c) {
			sb.WriteByte('%')
			sb.WriteByte(lowerHex[c>>4])
			sb.WriteByte(lowerHex[c&0x0f])
			continue
		}
		sb.WriteByte(c)
	}
	sb.WriteByte('"')
}

// validateKey checks a dictionary or parameter key before it is written.
func validateKey(key string) error {
	if key == "" {
		return newSerializeError(ErrValidation, "key must be a non-empty string")
	}
	if !isValidKey(key) {
		return newSerializeError(ErrValidation, "invalid key %q: must match [a-z*][a-z0-9_.*-]*", key)
	}
	return nil
}
