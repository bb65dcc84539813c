// Package canonhash fingerprints JSON-serializable values.
package canonhash

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// Prefix names the digest algorithm in every sum.
const Prefix = "sha256:"

// SumObject returns the prefixed hex digest of v's JSON encoding along with
// the encoded bytes. Struct fields encode in declaration order and map keys
// sorted, so equal values always produce equal sums.
func SumObject(v any) (string, []byte, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", nil, err
	}
	return SumBytes(b), b, nil
}

// SumBytes digests already encoded bytes.
func SumBytes(b []byte) string {
	sum := sha256.Sum256(b)
	return Prefix + hex.EncodeToString(sum[:])
}
