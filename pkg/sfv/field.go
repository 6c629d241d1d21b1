package sfv

import "fmt"

// FieldType selects the top-level structure of a field value.
type FieldType int

const (
	FieldList FieldType = iota + 1
	FieldDictionary
	FieldItem
)

func (t FieldType) String() string {
	switch t {
	case FieldList:
		return "list"
	case FieldDictionary:
		return "dictionary"
	case FieldItem:
		return "item"
	default:
		return fmt.Sprintf("FieldType(%d)", int(t))
	}
}

// ParseFieldType maps "list", "dictionary" or "item" to a FieldType.
func ParseFieldType(s string) (FieldType, error) {
	switch s {
	case "list":
		return FieldList, nil
	case "dictionary":
		return FieldDictionary, nil
	case "item":
		return FieldItem, nil
	default:
		return 0, fmt.Errorf(`field type must be "list", "dictionary", or "item", got %q`, s)
	}
}

// Field is a top-level structured field value: *List, *Dictionary or *Item.
// The non-pointer forms are accepted by Serialize as well.
type Field interface {
	FieldType() FieldType
}

// FieldType reports FieldList.
func (List) FieldType() FieldType { return FieldList }

// FieldType reports FieldDictionary.
func (Dictionary) FieldType() FieldType { return FieldDictionary }

// FieldType reports FieldItem.
func (Item) FieldType() FieldType { return FieldItem }

// Parse parses input as a field of type ft using DefaultLimits.
// The result is a *List, *Dictionary or *Item.
//
// Example:
//
//	f, err := sfv.Parse("sugar, tea, rum", sfv.FieldList)
//	list := f.(*sfv.List)
func Parse(input string, ft FieldType) (Field, error) {
	return ParseWithLimits(input, ft, DefaultLimits())
}

// ParseWithLimits is Parse with caller-chosen limits.
func ParseWithLimits(input string, ft FieldType, limits Limits) (Field, error) {
	p := NewParser(input, limits)

	switch ft {
	case FieldList:
		return nilIfError(p.ParseList())
	case FieldDictionary:
		return nilIfError(p.ParseDictionary())
	case FieldItem:
		return nilIfError(p.ParseItem())
	default:
		return nil, fmt.Errorf("unknown field type %v", ft)
	}
}

// nilIfError keeps a typed nil pointer from escaping as a non-nil Field.
func nilIfError[T Field](v T, err error) (Field, error) {
	if err != nil {
		return nil, err
	}
	return v, nil
}

// Serialize serializes v, which must be of field type ft.
// A shape mismatch or any invalid leaf value yields a *SerializeError.
func Serialize(v Field, ft FieldType) (string, error) {
	switch f := v.(type) {
	case *List:
		if f == nil {
			break
		}
		if ft != FieldList {
			return "", shapeMismatch(v, ft)
		}
		return SerializeList(f)
	case List:
		if ft != FieldList {
			return "", shapeMismatch(v, ft)
		}
		return SerializeList(&f)
	case *Dictionary:
		if f == nil {
			break
		}
		if ft != FieldDictionary {
			return "", shapeMismatch(v, ft)
		}
		return SerializeDictionary(f)
	case Dictionary:
		if ft != FieldDictionary {
			return "", shapeMismatch(v, ft)
		}
		return SerializeDictionary(&f)
	case *Item:
		if f == nil {
			break
		}
		if ft != FieldItem {
			return "", shapeMismatch(v, ft)
		}
		return SerializeItem(*f)
	case Item:
		if ft != FieldItem {
			return "", shapeMismatch(v, ft)
		}
		return SerializeItem(f)
	case nil:
	default:
		return "", newSerializeError(ErrShape, "unsupported field value %T", v)
	}

	return "", newSerializeError(ErrShape, "%s value is nil", ft)
}

// SerializeField serializes v as the field type its Go type implies.
func SerializeField(v Field) (string, error) {
	switch v.(type) {
	case *List, List:
		return Serialize(v, FieldList)
	case *Dictionary, Dictionary:
		return Serialize(v, FieldDictionary)
	case *Item, Item:
		return Serialize(v, FieldItem)
	default:
		return "", newSerializeError(ErrShape, "unsupported field value %T", v)
	}
}

func shapeMismatch(v Field, ft FieldType) *SerializeError {
	return newSerializeError(ErrShape, "value of type %T is not a %s", v, ft)
}
