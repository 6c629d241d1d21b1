// Package comparison benchmarks this module against dunglas/httpsfv and
// checks that both agree on the serialization of shared inputs.
package comparison

import (
	"testing"

	"github.com/dunglas/httpsfv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forcebit/structured-fields-rfc9651-go/pkg/sfv"
)

type testCase struct {
	name  string
	ft    sfv.FieldType
	input string
}

// Inputs stay within what both libraries represent identically:
// no whole-number decimals, dates or display strings.
var cases = []testCase{
	{"item/integer", sfv.FieldItem, "-999999999999999"},
	{"item/decimal", sfv.FieldItem, "12.345;unit=ms"},
	{"item/string", sfv.FieldItem, `"hello \"world\"";lang=en`},
	{"item/binary", sfv.FieldItem, ":cHJldGVuZCB0aGlzIGlzIGJpbmFyeSBjb250ZW50Lg==:"},
	{"list/tokens", sfv.FieldList, "sugar, tea;q=0.8, rum;q=0.5"},
	{"list/inner", sfv.FieldList, `("foo" "bar");a=1, ("baz" x/y);b=?0, ()`},
	{"dictionary/cache", sfv.FieldDictionary, `a=?0, b, c;foo=bar, d=("x" 1;p=2);q=3`},
	{"dictionary/signature-input", sfv.FieldDictionary,
		`sig1=("@method" "@authority" "@path" "content-digest");created=1618884473;keyid="test-key-rsa-pss"`},
}

func parseHTTPSFV(tc testCase) (httpsfv.StructuredFieldValue, error) {
	in := []string{tc.input}
	switch tc.ft {
	case sfv.FieldList:
		return httpsfv.UnmarshalList(in)
	case sfv.FieldDictionary:
		return httpsfv.UnmarshalDictionary(in)
	default:
		return httpsfv.UnmarshalItem(in)
	}
}

func TestAgreesWithHTTPSFV(t *testing.T) {
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ours, err := sfv.Parse(tc.input, tc.ft)
			require.NoError(t, err)
			oursText, err := sfv.Serialize(ours, tc.ft)
			require.NoError(t, err)

			theirs, err := parseHTTPSFV(tc)
			require.NoError(t, err)
			theirsText, err := httpsfv.Marshal(theirs)
			require.NoError(t, err)

			assert.Equal(t, theirsText, oursText)
		})
	}
}

func TestBothRejectInvalid(t *testing.T) {
	invalid := []testCase{
		{"trailing comma", sfv.FieldList, "a, b,"},
		{"unterminated string", sfv.FieldItem, `"abc`},
		{"integer too long", sfv.FieldItem, "1234567890123456"},
		{"uppercase key", sfv.FieldDictionary, "A=1"},
	}

	for _, tc := range invalid {
		t.Run(tc.name, func(t *testing.T) {
			_, err := sfv.Parse(tc.input, tc.ft)
			assert.Error(t, err, "sfv")
			_, err = parseHTTPSFV(tc)
			assert.Error(t, err, "httpsfv")
		})
	}
}

func BenchmarkParse(b *testing.B) {
	for _, tc := range cases {
		b.Run("sfv/"+tc.name, func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				if _, err := sfv.Parse(tc.input, tc.ft); err != nil {
					b.Fatal(err)
				}
			}
		})
		b.Run("httpsfv/"+tc.name, func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				if _, err := parseHTTPSFV(tc); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkSerialize(b *testing.B) {
	for _, tc := range cases {
		ours, err := sfv.Parse(tc.input, tc.ft)
		if err != nil {
			b.Fatal(err)
		}
		theirs, err := parseHTTPSFV(tc)
		if err != nil {
			b.Fatal(err)
		}

		b.Run("sfv/"+tc.name, func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				if _, err := sfv.Serialize(ours, tc.ft); err != nil {
					b.Fatal(err)
				}
			}
		})
		b.Run("httpsfv/"+tc.name, func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				if _, err := httpsfv.Marshal(theirs); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
