// Package sfvjson converts structured field values to and from the JSON
// representation used by the httpwg structured-field-tests suite.
//
//	item:        [bare-item, parameters]
//	parameters:  [[key, bare-item], ...]
//	list:        [member, ...]
//	inner list:  [[item, ...], parameters]
//	dictionary:  [[key, member], ...]
//
// Integers, decimals, strings and booleans map to their JSON counterparts.
// Other bare items are objects tagged with "__type": tokens and display
// strings carry their text, dates their seconds, and byte sequences the
// base32 encoding of their bytes.
package sfvjson

import (
	"bytes"
	"encoding/base32"
	"fmt"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"

	"github.com/forcebit/structured-fields-rfc9651-go/pkg/sfv"
)

const (
	typeToken         = "token"
	typeBinary        = "binary"
	typeDate          = "date"
	typeDisplayString = "displaystring"
)

type tagged struct {
	Type  string      `json:"__type"`
	Value interface{} `json:"value"`
}

// Marshal encodes f as JSON.
func Marshal(f sfv.Field) ([]byte, error) {
	v, err := fromField(f)
	if err != nil {
		return nil, err
	}
	return json.Marshal(v)
}

// Unmarshal decodes JSON produced by Marshal, or found in a fixture's
// "expected" member, into a field of type ft.
func Unmarshal(data []byte, ft sfv.FieldType) (sfv.Field, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw interface{}
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode %s: %w", ft, err)
	}

	switch ft {
	case sfv.FieldList:
		return toList(raw)
	case sfv.FieldDictionary:
		return toDictionary(raw)
	case sfv.FieldItem:
		item, err := toItem(raw)
		if err != nil {
			return nil, err
		}
		return &item, nil
	default:
		return nil, fmt.Errorf("unknown field type %v", ft)
	}
}

func fromField(f sfv.Field) (interface{}, error) {
	switch v := f.(type) {
	case *sfv.List:
		if v == nil {
			return nil, fmt.Errorf("nil list")
		}
		return fromList(*v)
	case sfv.List:
		return fromList(v)
	case *sfv.Dictionary:
		if v == nil {
			return nil, fmt.Errorf("nil dictionary")
		}
		return fromDictionary(*v)
	case sfv.Dictionary:
		return fromDictionary(v)
	case *sfv.Item:
		if v == nil {
			return nil, fmt.Errorf("nil item")
		}
		return fromItem(*v)
	case sfv.Item:
		return fromItem(v)
	default:
		return nil, fmt.Errorf("unsupported field value %T", f)
	}
}

func fromList(l sfv.List) (interface{}, error) {
	out := make([]interface{}, 0, len(l.Members))
	for _, m := range l.Members {
		v, err := fromMember(m)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func fromDictionary(d sfv.Dictionary) (interface{}, error) {
	out := make([]interface{}, 0, len(d.Keys))
	for _, k := range d.Keys {
		m, ok := d.Values[k]
		if !ok {
			return nil, fmt.Errorf("dictionary key %q has no value", k)
		}
		v, err := fromMember(m)
		if err != nil {
			return nil, fmt.Errorf("dictionary key %q: %w", k, err)
		}
		out = append(out, []interface{}{k, v})
	}
	return out, nil
}

func fromMember(m sfv.Member) (interface{}, error) {
	switch v := m.(type) {
	case sfv.Item:
		return fromItem(v)
	case *sfv.Item:
		if v != nil {
			return fromItem(*v)
		}
	case sfv.InnerList:
		return fromInnerList(v)
	case *sfv.InnerList:
		if v != nil {
			return fromInnerList(*v)
		}
	}
	return nil, fmt.Errorf("unsupported member %T", m)
}

func fromInnerList(il sfv.InnerList) (interface{}, error) {
	items := make([]interface{}, 0, len(il.Items))
	for _, it := range il.Items {
		v, err := fromItem(it)
		if err != nil {
			return nil, err
		}
		items = append(items, v)
	}
	params, err := fromParams(il.Parameters)
	if err != nil {
		return nil, err
	}
	return []interface{}{items, params}, nil
}

func fromItem(it sfv.Item) (interface{}, error) {
	bare, err := fromBareItem(it.Value)
	if err != nil {
		return nil, err
	}
	params, err := fromParams(it.Parameters)
	if err != nil {
		return nil, err
	}
	return []interface{}{bare, params}, nil
}

func fromParams(ps sfv.Params) (interface{}, error) {
	out := make([]interface{}, 0, len(ps))
	for _, p := range ps {
		v, err := fromBareItem(p.Value)
		if err != nil {
			return nil, fmt.Errorf("parameter %q: %w", p.Key, err)
		}
		out = append(out, []interface{}{p.Key, v})
	}
	return out, nil
}

func fromBareItem(b sfv.BareItem) (interface{}, error) {
	switch v := b.(type) {
	case sfv.Integer:
		return int64(v), nil
	case sfv.Decimal:
		return json.Number(v.String()), nil
	case sfv.String:
		return string(v), nil
	case sfv.Boolean:
		return bool(v), nil
	case sfv.Token:
		return tagged{Type: typeToken, Value: v.Value}, nil
	case sfv.Binary:
		raw, err := v.Bytes()
		if err != nil {
			return nil, fmt.Errorf("byte sequence: %w", err)
		}
		return tagged{Type: typeBinary, Value: base32.StdEncoding.EncodeToString(raw)}, nil
	case sfv.Date:
		return tagged{Type: typeDate, Value: v.Value}, nil
	case sfv.DisplayString:
		return tagged{Type: typeDisplayString, Value: v.Value}, nil
	default:
		return nil, fmt.Errorf("unsupported bare item %T", b)
	}
}

func toList(raw interface{}) (*sfv.List, error) {
	arr, ok := raw.([]interface{})
	if !ok {
		return nil, fmt.Errorf("list: expected array, got %T", raw)
	}
	list := &sfv.List{}
	for i, m := range arr {
		member, err := toMember(m)
		if err != nil {
			return nil, fmt.Errorf("list member %d: %w", i, err)
		}
		list.Members = append(list.Members, member)
	}
	return list, nil
}

func toDictionary(raw interface{}) (*sfv.Dictionary, error) {
	arr, ok := raw.([]interface{})
	if !ok {
		return nil, fmt.Errorf("dictionary: expected array, got %T", raw)
	}
	dict := sfv.NewDictionary()
	for i, e := range arr {
		pair, ok := e.([]interface{})
		if !ok || len(pair) != 2 {
			return nil, fmt.Errorf("dictionary entry %d: expected [key, member]", i)
		}
		key, ok := pair[0].(string)
		if !ok {
			return nil, fmt.Errorf("dictionary entry %d: key must be a string", i)
		}
		member, err := toMember(pair[1])
		if err != nil {
			return nil, fmt.Errorf("dictionary key %q: %w", key, err)
		}
		dict.Set(key, member)
	}
	return dict, nil
}

// toMember tells an inner list from an item by its first element:
// an inner list starts with an array of items, an item with a bare value.
func toMember(raw interface{}) (sfv.Member, error) {
	pair, ok := raw.([]interface{})
	if !ok || len(pair) != 2 {
		return nil, fmt.Errorf("expected [value, parameters]")
	}
	items, isInner := pair[0].([]interface{})
	if !isInner {
		return toItem(raw)
	}

	var il sfv.InnerList
	for i, it := range items {
		item, err := toItem(it)
		if err != nil {
			return nil, fmt.Errorf("inner list item %d: %w", i, err)
		}
		il.Items = append(il.Items, item)
	}
	params, err := toParams(pair[1])
	if err != nil {
		return nil, err
	}
	il.Parameters = params
	return il, nil
}

func toItem(raw interface{}) (sfv.Item, error) {
	pair, ok := raw.([]interface{})
	if !ok || len(pair) != 2 {
		return sfv.Item{}, fmt.Errorf("item: expected [bare-item, parameters]")
	}
	bare, err := toBareItem(pair[0])
	if err != nil {
		return sfv.Item{}, err
	}
	params, err := toParams(pair[1])
	if err != nil {
		return sfv.Item{}, err
	}
	return sfv.Item{Value: bare, Parameters: params}, nil
}

func toParams(raw interface{}) (sfv.Params, error) {
	arr, ok := raw.([]interface{})
	if !ok {
		return nil, fmt.Errorf("parameters: expected array, got %T", raw)
	}
	var params sfv.Params
	for i, e := range arr {
		pair, ok := e.([]interface{})
		if !ok || len(pair) != 2 {
			return nil, fmt.Errorf("parameter %d: expected [key, value]", i)
		}
		key, ok := pair[0].(string)
		if !ok {
			return nil, fmt.Errorf("parameter %d: key must be a string", i)
		}
		v, err := toBareItem(pair[1])
		if err != nil {
			return nil, fmt.Errorf("parameter %q: %w", key, err)
		}
		params.Set(key, v)
	}
	return params, nil
}

func toBareItem(raw interface{}) (sfv.BareItem, error) {
	switch v := raw.(type) {
	case json.Number:
		return toNumber(v)
	case string:
		return sfv.String(v), nil
	case bool:
		return sfv.Boolean(v), nil
	case map[string]interface{}:
		return toTagged(v)
	default:
		return nil, fmt.Errorf("unsupported bare item %T", raw)
	}
}

func toNumber(n json.Number) (sfv.BareItem, error) {
	s := n.String()
	if !strings.ContainsAny(s, ".eE") {
		i, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("integer %s: %w", s, err)
		}
		return sfv.Integer(i), nil
	}
	// Plain decimals with at most three fractional digits are read exactly.
	if item, err := sfv.Parse(s, sfv.FieldItem); err == nil {
		if d, ok := item.(*sfv.Item).Value.(sfv.Decimal); ok {
			return d, nil
		}
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, fmt.Errorf("decimal %s: %w", s, err)
	}
	return sfv.NewDecimal(f), nil
}

func toTagged(m map[string]interface{}) (sfv.BareItem, error) {
	typ, _ := m["__type"].(string)
	value := m["value"]

	switch typ {
	case typeToken:
		s, ok := value.(string)
		if !ok {
			return nil, fmt.Errorf("token value must be a string")
		}
		return sfv.NewToken(s), nil
	case typeBinary:
		s, ok := value.(string)
		if !ok {
			return nil, fmt.Errorf("binary value must be a string")
		}
		raw, err := base32.StdEncoding.DecodeString(s)
		if err != nil {
			return nil, fmt.Errorf("binary value: %w", err)
		}
		return sfv.NewBinaryFromBytes(raw), nil
	case typeDate:
		n, ok := value.(json.Number)
		if !ok {
			return nil, fmt.Errorf("date value must be a number")
		}
		secs, err := strconv.ParseInt(n.String(), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("date value: %w", err)
		}
		return sfv.NewDate(secs), nil
	case typeDisplayString:
		s, ok := value.(string)
		if !ok {
			return nil, fmt.Errorf("displaystring value must be a string")
		}
		return sfv.NewDisplayString(s), nil
	default:
		return nil, fmt.Errorf("unknown __type %q", typ)
	}
}
