package dkim

import (
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"fmt"
)

// Key length thresholds per RFC 8301 signing guidance
const (
	minKeyBits         = 1024
	recommendedKeyBits = 2048
	strongKeyBits      = 4096
)

// KeyStrength grades an RSA key length against RFC 8301 guidance
type KeyStrength string

const (
	// StrengthDeprecated marks keys below the RFC 8301 minimum
	StrengthDeprecated KeyStrength = "deprecated"
	// StrengthWeak marks keys at or above the minimum but below the recommended standard
	StrengthWeak KeyStrength = "weak"
	// StrengthAdequate marks keys meeting the recommended standard
	StrengthAdequate KeyStrength = "adequate"
	// StrengthStrong marks keys exceeding the recommended standard
	StrengthStrong KeyStrength = "strong"
)

// InspectKey parses a PEM-encoded SubjectPublicKeyInfo as an RSA public key
// and returns the modulus bit length
func InspectKey(pemData string) (int, error) {
	block, _ := pem.Decode([]byte(pemData))
	if block == nil {
		return 0, fmt.Errorf("%w: no PEM block found", ErrKeyParse)
	}

	pub, err := x509.ParsePKIXPublicKey(block.Bytes)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrKeyParse, err)
	}

	rsaPub, ok := pub.(*rsa.PublicKey)
	if !ok {
		return 0, fmt.Errorf("%w: not an RSA public key", ErrKeyParse)
	}

	return rsaPub.N.BitLen(), nil
}

// ClassifyKeyStrength grades a key's modulus bit length and returns the grade
// along with a human-readable explanation
func ClassifyKeyStrength(bits int) (KeyStrength, string) {
	switch {
	case bits < minKeyBits:
		return StrengthDeprecated, fmt.Sprintf("%d-bit keys are below the RFC 8301 minimum and must not be used", bits)
	case bits < recommendedKeyBits:
		return StrengthWeak, fmt.Sprintf("%d-bit keys are considered weak, upgrading to at least 2048 bits is recommended", bits)
	case bits < strongKeyBits:
		return StrengthAdequate, fmt.Sprintf("%d-bit keys meet the recommended standard for DKIM signing", bits)
	default:
		return StrengthStrong, fmt.Sprintf("%d-bit keys exceed the recommended standard but the record may not fit in a single TXT string", bits)
	}
}
