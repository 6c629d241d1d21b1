// Command sfv parses, serializes and checks HTTP structured field values.
//
// Usage:
//
//	# Parse a list and print its JSON form
//	sfv parse 'sugar, tea;q=0.8'
//
//	# Print the canonical serialization of a dictionary read from stdin
//	printf 'a=1\nb=?0\n' | sfv parse --type dictionary --canonical
//
//	# Serialize the JSON form back to field text
//	sfv serialize --type item value.json
//
//	# Exit non-zero when a value does not parse
//	sfv check --type item ':aGVsbG8=:'
package main

import "os"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
