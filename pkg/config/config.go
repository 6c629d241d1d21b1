// Package config loads the sfv command configuration from YAML.
//
// Loading follows a fixed sequence: read the file, unmarshal, apply
// defaults, apply SFV_* environment overrides, validate.
//
// Example file:
//
//	log:
//	  level: debug
//	  format: json
//	limits:
//	  max_input_length: 131072
//	  max_list_members: -1   # no limit
package config

import "github.com/forcebit/structured-fields-rfc9651-go/pkg/sfv"

// Config is the root configuration.
type Config struct {
	Log    LogConfig    `yaml:"log"`
	Limits LimitsConfig `yaml:"limits"`
}

// LogConfig controls command logging.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `yaml:"level"`

	// Format is text or json.
	Format string `yaml:"format"`
}

// LimitsConfig mirrors sfv.Limits. A zero field takes the sfv default,
// -1 disables that limit, and Unlimited disables all of them.
type LimitsConfig struct {
	Unlimited bool `yaml:"unlimited"`

	MaxInputLength         int `yaml:"max_input_length"`
	MaxStringLength        int `yaml:"max_string_length"`
	MaxByteSequenceLength  int `yaml:"max_byte_sequence_length"`
	MaxDisplayStringLength int `yaml:"max_display_string_length"`
	MaxListMembers         int `yaml:"max_list_members"`
	MaxDictionaryMembers   int `yaml:"max_dictionary_members"`
	MaxInnerListMembers    int `yaml:"max_inner_list_members"`
	MaxParameters          int `yaml:"max_parameters"`
	MaxTokenLength         int `yaml:"max_token_length"`
	MaxKeyLength           int `yaml:"max_key_length"`
}

// ParserLimits converts the limits section to sfv.Limits.
func (c *Config) ParserLimits() sfv.Limits {
	if c.Limits.Unlimited {
		return sfv.NoLimits()
	}

	l := c.Limits
	return sfv.Limits{
		MaxInputLength:         unlimitedAsZero(l.MaxInputLength),
		MaxStringLength:        unlimitedAsZero(l.MaxStringLength),
		MaxByteSequenceLength:  unlimitedAsZero(l.MaxByteSequenceLength),
		MaxDisplayStringLength: unlimitedAsZero(l.MaxDisplayStringLength),
		MaxListMembers:         unlimitedAsZero(l.MaxListMembers),
		MaxDictionaryMembers:   unlimitedAsZero(l.MaxDictionaryMembers),
		MaxInnerListMembers:    unlimitedAsZero(l.MaxInnerListMembers),
		MaxParameters:          unlimitedAsZero(l.MaxParameters),
		MaxTokenLength:         unlimitedAsZero(l.MaxTokenLength),
		MaxKeyLength:           unlimitedAsZero(l.MaxKeyLength),
	}
}

func unlimitedAsZero(n int) int {
	if n == Unlimited {
		return 0
	}
	return n
}
