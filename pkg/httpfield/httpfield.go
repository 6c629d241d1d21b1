// Package httpfield reads and writes structured field values on net/http headers.
//
// Multiple field lines with the same name are combined the way HTTP
// intermediaries do, by joining them with ", ", before parsing. Header
// semantics are left to the caller; this package only moves values
// between http.Header and the sfv types.
package httpfield

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/forcebit/structured-fields-rfc9651-go/pkg/sfv"
)

// ErrNotPresent is returned by Get when the header has no lines for the field.
var ErrNotPresent = errors.New("field not present")

// normalizeLineFolding replaces obsolete line folding with a single space.
// obs-fold is CRLF or LF followed by one or more SP or HTAB. Any other CR or LF
// is rejected, since a bare newline inside a field value would let a value
// smuggle in extra header lines.
func normalizeLineFolding(s string) (string, error) {
	if !strings.ContainsAny(s, "\r\n") {
		return s, nil
	}

	var result strings.Builder
	result.Grow(len(s))

	i := 0
	for i < len(s) {
		switch {
		case s[i] == '\r' && i+1 < len(s) && s[i+1] == '\n':
			if i+2 >= len(s) || (s[i+2] != ' ' && s[i+2] != '\t') {
				return "", fmt.Errorf("invalid field value: bare CRLF not part of obs-fold")
			}
			i += 2
			i = skipWS(s, i)
			result.WriteByte(' ')
		case s[i] == '\r':
			return "", fmt.Errorf("invalid field value: bare CR not part of obs-fold")
		case s[i] == '\n':
			if i+1 >= len(s) || (s[i+1] != ' ' && s[i+1] != '\t') {
				return "", fmt.Errorf("invalid field value: bare LF not part of obs-fold")
			}
			i++
			i = skipWS(s, i)
			result.WriteByte(' ')
		default:
			result.WriteByte(s[i])
			i++
		}
	}

	return result.String(), nil
}

func skipWS(s string, i int) int {
	for i < len(s) && (s[i] == ' ' || s[i] == '\t') {
		i++
	}
	return i
}

// Combine normalizes each field line and joins them with ", ".
// Leading and trailing SP and HTAB are removed from every line.
func Combine(values []string) (string, error) {
	normalized := make([]string, len(values))
	for i, v := range values {
		line, err := normalizeLineFolding(v)
		if err != nil {
			return "", err
		}
		normalized[i] = strings.Trim(line, " \t")
	}
	return strings.Join(normalized, ", "), nil
}

// Get combines every line of the named field in h and parses the result as ft.
// Returns ErrNotPresent (wrapped) when h has no such field.
func Get(h http.Header, name string, ft sfv.FieldType, limits sfv.Limits) (sfv.Field, error) {
	values := h.Values(name)
	if len(values) == 0 {
		return nil, fmt.Errorf("field %q: %w", name, ErrNotPresent)
	}

	raw, err := Combine(values)
	if err != nil {
		return nil, fmt.Errorf("field %q: %w", name, err)
	}

	f, err := sfv.ParseWithLimits(raw, ft, limits)
	if err != nil {
		return nil, fmt.Errorf("field %q: %w", name, err)
	}
	return f, nil
}

// GetList parses the named field as a list.
func GetList(h http.Header, name string, limits sfv.Limits) (*sfv.List, error) {
	f, err := Get(h, name, sfv.FieldList, limits)
	if err != nil {
		return nil, err
	}
	return f.(*sfv.List), nil
}

// GetDictionary parses the named field as a dictionary.
func GetDictionary(h http.Header, name string, limits sfv.Limits) (*sfv.Dictionary, error) {
	f, err := Get(h, name, sfv.FieldDictionary, limits)
	if err != nil {
		return nil, err
	}
	return f.(*sfv.Dictionary), nil
}

// GetItem parses the named field as an item.
func GetItem(h http.Header, name string, limits sfv.Limits) (*sfv.Item, error) {
	f, err := Get(h, name, sfv.FieldItem, limits)
	if err != nil {
		return nil, err
	}
	return f.(*sfv.Item), nil
}

// Set serializes f and replaces any existing lines of the named field.
// h is left untouched when serialization fails.
func Set(h http.Header, name string, f sfv.Field) error {
	s, err := sfv.SerializeField(f)
	if err != nil {
		return fmt.Errorf("field %q: %w", name, err)
	}
	h.Set(name, s)
	return nil
}

// Add serializes f and appends it as another line of the named field.
// Only lists and dictionaries may be split across lines.
func Add(h http.Header, name string, f sfv.Field) error {
	switch f.(type) {
	case *sfv.Item, sfv.Item:
		if len(h.Values(name)) > 0 {
			return fmt.Errorf("field %q: item fields cannot span multiple lines", name)
		}
	}

	s, err := sfv.SerializeField(f)
	if err != nil {
		return fmt.Errorf("field %q: %w", name, err)
	}
	h.Add(name, s)
	return nil
}
