// Package sfv implements Structured Field Values for HTTP (RFC 8941, as
// updated by RFC 9651): parsing header text into typed lists, dictionaries
// and items, and serializing them back to canonical text.
//
// Bare items are the closed set Integer, Decimal, String, Boolean, Token,
// Binary, Date and DisplayString. Token, Binary, Date and DisplayString
// values built with NewToken, NewBinary, NewDate and NewDisplayString are
// not validated until they are serialized.
//
// Parsing:
//
//	f, err := sfv.Parse(`a=1, b=2;x=y, c=(foo bar)`, sfv.FieldDictionary)
//	if err != nil {
//	    return err
//	}
//	dict := f.(*sfv.Dictionary)
//
// Serializing:
//
//	list := &sfv.List{Members: []sfv.Member{
//	    sfv.NewItem(sfv.NewToken("sugar")),
//	    sfv.Item{Value: sfv.NewToken("tea"), Parameters: sfv.Params{{Key: "quality", Value: sfv.NewDecimal(0.8)}}},
//	}}
//	s, err := sfv.Serialize(list, sfv.FieldList) // "sugar, tea;quality=0.8"
//
// The package keeps no state between calls and is safe for concurrent use.
package sfv
