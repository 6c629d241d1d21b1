package sfv

// Limits defines configurable size limits for SFV parsing to prevent DoS attacks.
// All limits are optional - zero value means no limit (unlimited).
type Limits struct {
	// MaxInputLength is the maximum total input string length in bytes.
	// Default: 65536 (64KB)
	MaxInputLength int

	// MaxStringLength is the maximum length of a single string value.
	// Default: 8192 (8KB)
	MaxStringLength int

	// MaxByteSequenceLength is the maximum decoded length of a byte sequence.
	// Default: 16384 (16KB)
	MaxByteSequenceLength int

	// MaxDisplayStringLength is the maximum decoded length, in bytes, of a
	// display string.
	// Default: 8192 (8KB)
	MaxDisplayStringLength int

	// MaxListMembers is the maximum number of list members.
	// Default: 1024
	MaxListMembers int

	// MaxDictionaryMembers is the maximum number of dictionary entries.
	// Default: 1024
	MaxDictionaryMembers int

	// MaxInnerListMembers is the maximum number of items in an inner list.
	// Default: 256
	MaxInnerListMembers int

	// MaxParameters is the maximum number of parameters per item/inner list.
	// Default: 256
	MaxParameters int

	// MaxTokenLength is the maximum length of a token.
	// Default: 512
	MaxTokenLength int

	// MaxKeyLength is the maximum length of a dictionary or parameter key.
	// Default: 256
	MaxKeyLength int
}

// DefaultLimits returns limits suitable for untrusted input.
// Every value is at or above the minimum sizes RFC 9651 Section 3
// requires parsers to support.
func DefaultLimits() Limits {
	return Limits{
		MaxInputLength:         65536, // 64KB - typical max header size
		MaxStringLength:        8192,  // RFC minimum is 1024
		MaxByteSequenceLength:  16384, // RFC minimum
		MaxDisplayStringLength: 8192,
		MaxListMembers:         1024, // RFC minimum
		MaxDictionaryMembers:   1024, // RFC minimum
		MaxInnerListMembers:    256,  // RFC minimum
		MaxParameters:          256,  // RFC minimum
		MaxTokenLength:         512,  // RFC minimum
		MaxKeyLength:           256,  // RFC minimum is 64
	}
}

// NoLimits returns a Limits struct with all limits disabled (zero values).
// Use with caution - only for trusted input where DoS is not a concern.
func NoLimits() Limits {
	return Limits{}
}
