package sfvjson

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	json "github.com/goccy/go-json"

	"github.com/forcebit/structured-fields-rfc9651-go/pkg/sfv"
)

// ErrInvalidFixture is returned by LoadFixtures for a malformed test case.
var ErrInvalidFixture = errors.New("invalid fixture")

// Fixture is one test case in the httpwg structured-field-tests format.
//
// A parsing case has Raw set: the lines are joined with ", ", parsed as
// HeaderType and compared with Expected, then re-serialized and compared
// with Canonical (or the joined Raw when Canonical is absent).
// A serialization case has no Raw: Expected is serialized and compared
// with Canonical.
type Fixture struct {
	Name       string          `json:"name"`
	Raw        []string        `json:"raw"`
	HeaderType string          `json:"header_type"`
	Expected   json.RawMessage `json:"expected"`
	MustFail   bool            `json:"must_fail"`
	CanFail    bool            `json:"can_fail"`
	Canonical  []string        `json:"canonical"`
}

// LoadFixtures reads a JSON array of fixtures from r.
func LoadFixtures(r io.Reader) ([]Fixture, error) {
	var fixtures []Fixture
	if err := json.NewDecoder(r).Decode(&fixtures); err != nil {
		return nil, fmt.Errorf("decode fixtures: %w", err)
	}

	for i, f := range fixtures {
		if f.Name == "" {
			return nil, fmt.Errorf("%w: entry %d has no name", ErrInvalidFixture, i)
		}
		if _, err := sfv.ParseFieldType(f.HeaderType); err != nil {
			return nil, fmt.Errorf("%w: %q: %v", ErrInvalidFixture, f.Name, err)
		}
		if f.Raw == nil && len(f.Expected) == 0 {
			return nil, fmt.Errorf("%w: %q has neither raw nor expected", ErrInvalidFixture, f.Name)
		}
	}

	return fixtures, nil
}

// FieldType returns the parsed header_type.
func (f Fixture) FieldType() (sfv.FieldType, error) {
	return sfv.ParseFieldType(f.HeaderType)
}

// Run executes the fixture against the parser and serializer using limits.
// A nil error means the implementation behaved as the fixture requires.
func (f Fixture) Run(limits sfv.Limits) error {
	ft, err := f.FieldType()
	if err != nil {
		return err
	}
	if f.Raw == nil {
		return f.runSerialize(ft)
	}
	return f.runParse(ft, limits)
}

func (f Fixture) runParse(ft sfv.FieldType, limits sfv.Limits) error {
	input := strings.Join(f.Raw, ", ")

	parsed, err := sfv.ParseWithLimits(input, ft, limits)
	if err != nil {
		if f.MustFail || f.CanFail {
			return nil
		}
		return fmt.Errorf("parse %q: %w", input, err)
	}
	if f.MustFail {
		return fmt.Errorf("parse %q: succeeded, want failure", input)
	}

	if len(f.Expected) > 0 {
		want, err := Unmarshal(f.Expected, ft)
		if err != nil {
			return fmt.Errorf("expected: %w", err)
		}
		if err := sameValue(parsed, want); err != nil {
			return fmt.Errorf("parse %q: %w", input, err)
		}
	}

	canonical := input
	if f.Canonical != nil {
		canonical = strings.Join(f.Canonical, ", ")
	}
	got, err := sfv.Serialize(parsed, ft)
	if err != nil {
		return fmt.Errorf("serialize parsed %q: %w", input, err)
	}
	if got != canonical {
		return fmt.Errorf("serialize parsed %q = %q, want %q", input, got, canonical)
	}
	return nil
}

func (f Fixture) runSerialize(ft sfv.FieldType) error {
	value, err := Unmarshal(f.Expected, ft)
	if err != nil {
		if f.MustFail {
			return nil
		}
		return fmt.Errorf("expected: %w", err)
	}

	got, err := sfv.Serialize(value, ft)
	if err != nil {
		if f.MustFail {
			return nil
		}
		return fmt.Errorf("serialize: %w", err)
	}
	if f.MustFail {
		return fmt.Errorf("serialize = %q, want failure", got)
	}

	if want := strings.Join(f.Canonical, ", "); f.Canonical != nil && got != want {
		return fmt.Errorf("serialize = %q, want %q", got, want)
	}
	return nil
}

// sameValue compares two fields through their JSON form, which normalizes
// byte sequences to their decoded bytes.
func sameValue(got, want sfv.Field) error {
	g, err := Marshal(got)
	if err != nil {
		return err
	}
	w, err := Marshal(want)
	if err != nil {
		return err
	}
	if !bytes.Equal(g, w) {
		return fmt.Errorf("got %s, want %s", g, w)
	}
	return nil
}
