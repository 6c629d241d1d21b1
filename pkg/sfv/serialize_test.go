package sfv

import (
	"errors"
	"testing"
)

func TestSerializeItem(t *testing.T) {
	tests := []struct {
		name    string
		item    Item
		want    string
		wantErr bool
	}{
		{name: "boolean true", item: NewItem(Boolean(true)), want: "?1"},
		{name: "boolean false", item: NewItem(Boolean(false)), want: "?0"},
		{name: "integer", item: NewItem(Integer(42)), want: "42"},
		{name: "negative integer", item: NewItem(Integer(-123)), want: "-123"},
		{name: "max integer", item: NewItem(Integer(MaxInteger)), want: "999999999999999"},
		{name: "min integer", item: NewItem(Integer(MinInteger)), want: "-999999999999999"},
		{name: "integer too large", item: NewItem(Integer(MaxInteger + 1)), wantErr: true},
		{name: "integer too small", item: NewItem(Integer(MinInteger - 1)), wantErr: true},
		{name: "decimal", item: NewItem(DecimalFromThousandths(1500)), want: "1.5"},
		{name: "decimal whole", item: NewItem(DecimalFromThousandths(2000)), want: "2.0"},
		{name: "decimal negative", item: NewItem(DecimalFromThousandths(-250)), want: "-0.25"},
		{name: "decimal three digits", item: NewItem(DecimalFromThousandths(1234)), want: "1.234"},
		{name: "decimal max", item: NewItem(DecimalFromThousandths(999999999999999)), want: "999999999999.999"},
		{name: "decimal too large", item: NewItem(DecimalFromThousandths(decimalLimit)), wantErr: true},
		{name: "token", item: NewItem(NewToken("application/json")), want: "application/json"},
		{name: "token with colon", item: NewItem(NewToken("text/html:level-1")), want: "text/html:level-1"},
		{name: "star token", item: NewItem(NewToken("*foo")), want: "*foo"},
		{name: "token starting with digit", item: NewItem(NewToken("1abc")), wantErr: true},
		{name: "token with space", item: NewItem(NewToken("a b")), wantErr: true},
		{name: "empty token", item: NewItem(NewToken("")), wantErr: true},
		{name: "string with space", item: NewItem(String("hello world")), want: `"hello world"`},
		{name: "string with escapes", item: NewItem(String(`hello "world" \`)), want: `"hello \"world\" \\"`},
		{name: "empty string", item: NewItem(String("")), want: `""`},
		{name: "string with control char", item: NewItem(String("a\nb")), wantErr: true},
		{name: "string with non-ASCII", item: NewItem(String("café")), wantErr: true},
		{name: "byte sequence from bytes", item: NewItem(NewBinaryFromBytes([]byte("hello"))), want: ":aGVsbG8=:"},
		{name: "empty byte sequence", item: NewItem(NewBinaryFromBytes(nil)), want: "::"},
		{name: "byte sequence text kept", item: NewItem(NewBinary("aGVsbG8")), want: ":aGVsbG8:"},
		{name: "byte sequence bad char", item: NewItem(NewBinary("a-b=")), wantErr: true},
		{name: "byte sequence bad length", item: NewItem(NewBinary("a")), wantErr: true},
		{name: "date", item: NewItem(NewDate(1659578233)), want: "@1659578233"},
		{name: "negative date", item: NewItem(NewDate(-1)), want: "@-1"},
		{name: "date out of range", item: NewItem(NewDate(MaxDate + 1)), wantErr: true},
		{name: "display string ascii", item: NewItem(NewDisplayString("hi")), want: `%"hi"`},
		{name: "display string unicode", item: NewItem(NewDisplayString("Hello 世界")), want: `%"Hello %e4%b8%96%e7%95%8c"`},
		{name: "display string escapes", item: NewItem(NewDisplayString(`50% "off"`)), want: `%"50%25 %22off%22"`},
		{name: "display string control", item: NewItem(NewDisplayString("a\tb")), want: `%"a%09b"`},
		{name: "display string invalid utf-8", item: NewItem(NewDisplayString("\xff")), wantErr: true},
		{name: "nil bare item", item: Item{}, wantErr: true},
		{
			name: "item with boolean parameter",
			item: Item{Value: NewToken("test"), Parameters: Params{{Key: "flag", Value: Boolean(true)}}},
			want: "test;flag",
		},
		{
			name: "item with multiple parameters",
			item: Item{
				Value: Integer(123),
				Parameters: Params{
					{Key: "a", Value: Boolean(false)},
					{Key: "b", Value: NewToken("text")},
					{Key: "c", Value: Integer(456)},
				},
			},
			want: "123;a=?0;b=text;c=456",
		},
		{
			name: "invalid parameter key",
			item: Item{Value: Integer(1), Parameters: Params{{Key: "Bad", Value: Integer(1)}}},
			wantErr: true,
		},
		{
			name: "empty parameter key",
			item: Item{Value: Integer(1), Parameters: Params{{Key: "", Value: Integer(1)}}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SerializeItem(tt.item)
			if (err != nil) != tt.wantErr {
				t.Errorf("SerializeItem() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if got != tt.want {
				t.Errorf("SerializeItem() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSerializeItem_ErrorKinds(t *testing.T) {
	tests := []struct {
		name string
		item Item
		want ErrorKind
	}{
		{name: "integer range", item: NewItem(Integer(MaxInteger + 1)), want: ErrDomain},
		{name: "date range", item: NewItem(NewDate(MinDate - 1)), want: ErrDomain},
		{name: "string character", item: NewItem(String("\x7f")), want: ErrValidation},
		{name: "token grammar", item: NewItem(NewToken("a,b")), want: ErrValidation},
		{name: "missing value", item: Item{}, want: ErrShape},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := SerializeItem(tt.item)
			var se *SerializeError
			if !errors.As(err, &se) {
				t.Fatalf("SerializeItem() error = %v, want *SerializeError", err)
			}
			if se.Kind != tt.want {
				t.Errorf("error kind = %v, want %v", se.Kind, tt.want)
			}
		})
	}
}

func TestSerializeInnerList(t *testing.T) {
	tests := []struct {
		name    string
		list    InnerList
		want    string
		wantErr bool
	}{
		{
			name: "empty inner list",
			list: InnerList{},
			want: "()",
		},
		{
			name: "multiple items",
			list: InnerList{Items: []Item{NewItem(Integer(1)), NewItem(Integer(2)), NewItem(Integer(3))}},
			want: "(1 2 3)",
		},
		{
			name: "items with mixed types",
			list: InnerList{Items: []Item{NewItem(NewToken("token")), NewItem(Integer(42)), NewItem(Boolean(true))}},
			want: "(token 42 ?1)",
		},
		{
			name: "inner list with parameters",
			list: InnerList{
				Items: []Item{NewItem(Integer(1)), NewItem(Integer(2))},
				Parameters: Params{
					{Key: "level", Value: Integer(5)},
					{Key: "safe", Value: Boolean(true)},
				},
			},
			want: "(1 2);level=5;safe",
		},
		{
			name: "items with item parameters",
			list: InnerList{
				Items: []Item{
					{Value: NewToken("a"), Parameters: Params{{Key: "x", Value: Integer(1)}}},
					{Value: NewToken("b"), Parameters: Params{{Key: "y", Value: Integer(2)}}},
					{Value: NewToken("c"), Parameters: Params{{Key: "z", Value: Boolean(false)}}},
				},
			},
			want: "(a;x=1 b;y=2 c;z=?0)",
		},
		{
			name:    "invalid item",
			list:    InnerList{Items: []Item{NewItem(String("\x00"))}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SerializeInnerList(tt.list)
			if (err != nil) != tt.wantErr {
				t.Errorf("SerializeInnerList() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if got != tt.want {
				t.Errorf("SerializeInnerList() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSerializeList(t *testing.T) {
	tests := []struct {
		name    string
		list    *List
		want    string
		wantErr bool
	}{
		{name: "empty", list: &List{}, want: ""},
		{
			name: "items and inner list",
			list: &List{Members: []Member{
				NewItem(NewToken("sugar")),
				Item{Value: NewToken("tea"), Parameters: Params{{Key: "q", Value: DecimalFromThousandths(800)}}},
				InnerList{Items: []Item{NewItem(Integer(1)), NewItem(Integer(2))}, Parameters: Params{{Key: "p", Value: Boolean(true)}}},
			}},
			want: "sugar, tea;q=0.8, (1 2);p",
		},
		{
			name: "pointer members",
			list: &List{Members: []Member{&Item{Value: Integer(1)}, &InnerList{}}},
			want: "1, ()",
		},
		{name: "nil list", list: nil, wantErr: true},
		{name: "nil member", list: &List{Members: []Member{nil}}, wantErr: true},
		{name: "nil item pointer", list: &List{Members: []Member{(*Item)(nil)}}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SerializeList(tt.list)
			if (err != nil) != tt.wantErr {
				t.Errorf("SerializeList() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if got != tt.want {
				t.Errorf("SerializeList() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSerializeDictionary(t *testing.T) {
	build := func(pairs ...interface{}) *Dictionary {
		d := NewDictionary()
		for i := 0; i < len(pairs); i += 2 {
			d.Set(pairs[i].(string), pairs[i+1].(Member))
		}
		return d
	}

	tests := []struct {
		name    string
		dict    *Dictionary
		want    string
		wantErr bool
	}{
		{name: "empty", dict: NewDictionary(), want: ""},
		{
			name: "items",
			dict: build("a", NewItem(Integer(1)), "b", NewItem(String("x"))),
			want: `a=1, b="x"`,
		},
		{
			name: "boolean true is bare key",
			dict: build("private", NewItem(Boolean(true)), "max-age", NewItem(Integer(3600))),
			want: "private, max-age=3600",
		},
		{
			name: "boolean true keeps parameters",
			dict: build("a", Item{Value: Boolean(true), Parameters: Params{{Key: "x", Value: Integer(1)}}}),
			want: "a;x=1",
		},
		{
			name: "boolean false written explicitly",
			dict: build("a", NewItem(Boolean(false))),
			want: "a=?0",
		},
		{
			name: "inner list with parameters",
			dict: build("sig1", InnerList{
				Items:      []Item{NewItem(String("@method")), NewItem(String("@authority"))},
				Parameters: Params{{Key: "created", Value: Integer(1618884473)}, {Key: "keyid", Value: String("k")}},
			}),
			want: `sig1=("@method" "@authority");created=1618884473;keyid="k"`,
		},
		{
			name:    "invalid key",
			dict:    build("Key", NewItem(Integer(1))),
			wantErr: true,
		},
		{
			name:    "key without value",
			dict:    &Dictionary{Keys: []string{"a"}, Values: map[string]Member{}},
			wantErr: true,
		},
		{name: "nil dictionary", dict: nil, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SerializeDictionary(tt.dict)
			if (err != nil) != tt.wantErr {
				t.Errorf("SerializeDictionary() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if got != tt.want {
				t.Errorf("SerializeDictionary() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSerializeString(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", `""`},
		{"simple", `"simple"`},
		{`with "quotes"`, `"with \"quotes\""`},
		{`back\slash`, `"back\\slash"`},
	}

	for _, tt := range tests {
		if got := SerializeString(tt.input); got != tt.want {
			t.Errorf("SerializeString(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestIsValidToken(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"foo", true},
		{"*", true},
		{"Foo123", true},
		{"text/html", true},
		{"a:b", true},
		{"!#$%&'*+-.^_`|~", false},
		{"a!#$%&'*+-.^_`|~", true},
		{"", false},
		{"1a", false},
		{"-a", false},
		{"a b", false},
		{`a"b`, false},
		{"a,b", false},
		{"a;b", false},
		{"a(b", false},
		{"ü", false},
	}

	for _, tt := range tests {
		if got := isValidToken(tt.input); got != tt.want {
			t.Errorf("isValidToken(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		input string
		ft    FieldType
		want  string // canonical form
	}{
		{name: "dictionary", input: `a=1,b=2;x="y" ,  c`, ft: FieldDictionary, want: `a=1, b=2;x="y", c`},
		{name: "list", input: "sugar,tea ,\trum", ft: FieldList, want: "sugar, tea, rum"},
		{name: "item", input: "  1.50;q  ", ft: FieldItem, want: "1.5;q"},
		{name: "decimal trailing zeros", input: "1.000", ft: FieldItem, want: "1.0"},
		{name: "negative zero", input: "-0", ft: FieldItem, want: "0"},
		{name: "inner list spacing", input: "(  a   b  );p=?1", ft: FieldList, want: "(a b);p"},
		{name: "display string", input: `%"Hello %e4%b8%96%e7%95%8c"`, ft: FieldItem, want: `%"Hello %e4%b8%96%e7%95%8c"`},
		{name: "date", input: "@-62135596800", ft: FieldItem, want: "@-62135596800"},
		{name: "unpadded binary kept", input: ":aGVsbG8:", ft: FieldItem, want: ":aGVsbG8:"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parsed, err := Parse(tt.input, tt.ft)
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			got, err := Serialize(parsed, tt.ft)
			if err != nil {
				t.Fatalf("Serialize() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Serialize() = %q, want %q", got, tt.want)
			}

			again, err := Parse(got, tt.ft)
			if err != nil {
				t.Fatalf("re-Parse(%q) error = %v", got, err)
			}
			got2, err := Serialize(again, tt.ft)
			if err != nil {
				t.Fatalf("re-Serialize() error = %v", err)
			}
			if got2 != got {
				t.Errorf("serialization not idempotent: %q then %q", got, got2)
			}
		})
	}
}
