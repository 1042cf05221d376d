package hooks

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// NamespaceLength is the hex length of an encoded hook namespace.
const NamespaceLength = 64

// NamespaceDigest derives the 32-byte hook namespace from a seed string,
// returned as 64 uppercase hex characters. The digest is deterministic;
// the raw seed never appears in a payload.
func NamespaceDigest(seed string) string {
	sum := sha256.Sum256([]byte(seed))
	return strings.ToUpper(hex.EncodeToString(sum[:]))
}

// EncodeParameters hex-normalizes every parameter name and value,
// preserving order. Fields that are already valid hex pass through
// unchanged, so the encoding is idempotent. The input slice is not
// modified.
func EncodeParameters(params []Parameter) []Parameter {
	if params == nil {
		return nil
	}
	encoded := make([]Parameter, len(params))
	for i, p := range params {
		encoded[i] = Parameter{
			Name:  hexNormalize(p.Name),
			Value: hexNormalize(p.Value),
		}
	}
	return encoded
}

// hexNormalize returns s unchanged if it is already valid hex, otherwise
// the uppercase hex transcription of its bytes.
func hexNormalize(s string) string {
	if isHexString(s) {
		return s
	}
	return strings.ToUpper(hex.EncodeToString([]byte(s)))
}

// isHexString reports whether s is non-empty, even-length hex.
// Odd-length strings are re-encoded: the wire format carries whole bytes.
func isHexString(s string) bool {
	if len(s) == 0 || len(s)%2 != 0 {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= '0' && c <= '9':
		case c >= 'a' && c <= 'f':
		case c >= 'A' && c <= 'F':
		default:
			return false
		}
	}
	return true
}
