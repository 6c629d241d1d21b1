package sfv

import (
	"testing"
)

// Examples from RFC 9651 Section 3, parsed and re-serialized to their
// canonical form.
func TestRFC9651_Examples(t *testing.T) {
	tests := []struct {
		section   string
		input     string
		ft        FieldType
		canonical string
	}{
		// 3.1 Lists
		{"3.1", `sugar, tea, rum`, FieldList, `sugar, tea, rum`},
		// 3.1.1 Inner Lists
		{"3.1.1", `("foo" "bar"), ("baz"), ("bat" "one"), ()`, FieldList, `("foo" "bar"), ("baz"), ("bat" "one"), ()`},
		{"3.1.1/params", `("foo"; a=1;b=2);lvl=5, ("bar" "baz");lvl=1`, FieldList, `("foo";a=1;b=2);lvl=5, ("bar" "baz");lvl=1`},
		// 3.1.2 Parameters
		{"3.1.2", `abc;a=1;b=2; cde_456, (ghi;jk=4 l);q="9";r=w`, FieldList, `abc;a=1;b=2;cde_456, (ghi;jk=4 l);q="9";r=w`},
		// 3.2 Dictionaries
		{"3.2", `en="Applepie", da=:w4ZibGV0w6ZydGU=:`, FieldDictionary, `en="Applepie", da=:w4ZibGV0w6ZydGU=:`},
		{"3.2/bare", `a=?0, b, c; foo=bar`, FieldDictionary, `a=?0, b, c;foo=bar`},
		{"3.2/inner", `rating=1.5, feelings=(joy sadness)`, FieldDictionary, `rating=1.5, feelings=(joy sadness)`},
		{"3.2/mixed", `a=(1 2), b=3, c=4;aa=bb, d=(5 6);valid`, FieldDictionary, `a=(1 2), b=3, c=4;aa=bb, d=(5 6);valid`},
		// 3.3 Items
		{"3.3", `5; foo=bar`, FieldItem, `5;foo=bar`},
		{"3.3.1", `42`, FieldItem, `42`},
		{"3.3.2", `4.5`, FieldItem, `4.5`},
		{"3.3.3", `"hello world"`, FieldItem, `"hello world"`},
		{"3.3.4", `foo123/456`, FieldItem, `foo123/456`},
		{"3.3.5", `:cHJldGVuZCB0aGlzIGlzIGJpbmFyeSBjb250ZW50Lg==:`, FieldItem, `:cHJldGVuZCB0aGlzIGlzIGJpbmFyeSBjb250ZW50Lg==:`},
		{"3.3.6", `?1`, FieldItem, `?1`},
		{"3.3.7", `@1659578233`, FieldItem, `@1659578233`},
		{"3.3.8", `%"This is intended for display to %c3%bcsers."`, FieldItem, `%"This is intended for display to %c3%bcsers."`},
	}

	for _, tt := range tests {
		t.Run(tt.section, func(t *testing.T) {
			f, err := Parse(tt.input, tt.ft)
			if err != nil {
				t.Fatalf("Parse(%q) error = %v", tt.input, err)
			}
			got, err := Serialize(f, tt.ft)
			if err != nil {
				t.Fatalf("Serialize() error = %v", err)
			}
			if got != tt.canonical {
				t.Errorf("Serialize() = %q, want %q", got, tt.canonical)
			}
		})
	}
}

// RFC 9651 Section 3.2: "a=?0, b, c; foo=bar" holds a false, a true, and a
// true with a parameter.
func TestRFC9651_DictionaryBooleans(t *testing.T) {
	f, err := Parse(`a=?0, b, c; foo=bar`, FieldDictionary)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	dict := f.(*Dictionary)

	wantBool := map[string]bool{"a": false, "b": true, "c": true}
	for key, want := range wantBool {
		m, ok := dict.Get(key)
		if !ok {
			t.Fatalf("key %q missing", key)
		}
		item := m.(Item)
		if item.Value != Boolean(want) {
			t.Errorf("%s = %#v, want %v", key, item.Value, want)
		}
	}

	c, _ := dict.Get("c")
	if v, ok := c.(Item).Parameters.Get("foo"); !ok || v != NewToken("bar") {
		t.Errorf("c;foo = %#v, want token bar", v)
	}
}

// RFC 9651 Section 3.3.8: percent-encoded UTF-8 decodes to "üsers".
func TestRFC9651_DisplayString(t *testing.T) {
	f, err := Parse(`%"This is intended for display to %c3%bcsers."`, FieldItem)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	want := NewDisplayString("This is intended for display to üsers.")
	if got := f.(*Item).Value; got != want {
		t.Errorf("value = %#v, want %#v", got, want)
	}
}

// RFC 9651 Section 3.3.5 decodes to an ASCII sentence.
func TestRFC9651_ByteSequence(t *testing.T) {
	f, err := Parse(`:cHJldGVuZCB0aGlzIGlzIGJpbmFyeSBjb250ZW50Lg==:`, FieldItem)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	b, err := f.(*Item).Value.(Binary).Bytes()
	if err != nil {
		t.Fatalf("Bytes() error = %v", err)
	}
	if string(b) != "pretend this is binary content." {
		t.Errorf("Bytes() = %q", b)
	}
}
