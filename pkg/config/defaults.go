package config

import "github.com/forcebit/structured-fields-rfc9651-go/pkg/sfv"

// Default values for configuration fields.
const (
	DefaultLogLevel  = "info"
	DefaultLogFormat = "text"

	// Unlimited in a limits field disables that limit.
	Unlimited = -1
)

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}

// ApplyDefaults fills zero-valued fields. Limits default to sfv.DefaultLimits.
func ApplyDefaults(cfg *Config) {
	if cfg.Log.Level == "" {
		cfg.Log.Level = DefaultLogLevel
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = DefaultLogFormat
	}

	d := sfv.DefaultLimits()
	l := &cfg.Limits
	setDefault(&l.MaxInputLength, d.MaxInputLength)
	setDefault(&l.MaxStringLength, d.MaxStringLength)
	setDefault(&l.MaxByteSequenceLength, d.MaxByteSequenceLength)
	setDefault(&l.MaxDisplayStringLength, d.MaxDisplayStringLength)
	setDefault(&l.MaxListMembers, d.MaxListMembers)
	setDefault(&l.MaxDictionaryMembers, d.MaxDictionaryMembers)
	setDefault(&l.MaxInnerListMembers, d.MaxInnerListMembers)
	setDefault(&l.MaxParameters, d.MaxParameters)
	setDefault(&l.MaxTokenLength, d.MaxTokenLength)
	setDefault(&l.MaxKeyLength, d.MaxKeyLength)
}

func setDefault(field *int, value int) {
	if *field == 0 {
		*field = value
	}
}
