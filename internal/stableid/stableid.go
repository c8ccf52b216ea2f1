// Package stableid derives content-addressed identifiers for parsed entities.
//
// An id is the lowercase hex SHA-256 of the JSON encodings of its defining
// fields, concatenated in argument order. The order is part of the contract:
// each model constructor documents the tuple it hashes.
package stableid

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// Placeholder is what an unencodable field contributes in lenient mode.
// It is empty, so such a field is indistinguishable from an absent one.
var Placeholder = []byte{}

// New returns the id for fields. Fields that cannot be JSON-encoded
// contribute Placeholder instead of failing.
func New(fields ...any) string {
	sum := sha256.New()
	for _, f := range fields {
		data, err := json.Marshal(f)
		if err != nil {
			data = Placeholder
		}
		sum.Write(data)
	}
	return hex.EncodeToString(sum.Sum(nil))
}

// Strict is New without the fallback: the first field that fails to encode
// aborts with an error naming its position.
func Strict(fields ...any) (string, error) {
	sum := sha256.New()
	for i, f := range fields {
		data, err := json.Marshal(f)
		if err != nil {
			return "", fmt.Errorf("stableid: field %d: %w", i, err)
		}
		sum.Write(data)
	}
	return hex.EncodeToString(sum.Sum(nil)), nil
}
