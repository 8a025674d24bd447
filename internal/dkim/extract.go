package dkim

import (
	"regexp"
	"strings"
)

// pemLineLength is the standard PEM line width for base64 payloads
const pemLineLength = 64

const (
	pemHeader = "-----BEGIN PUBLIC KEY-----"
	pemFooter = "-----END PUBLIC KEY-----"
)

// publicKeyTagPattern matches a p= tag anchored at the start of the record or
// after a tag separator, capturing the base64 payload up to the next separator
// or end of string. The payload may be empty, which signals a revoked key.
var publicKeyTagPattern = regexp.MustCompile(`(?:^|;)\s*p\s*=\s*([A-Za-z0-9+/=]*)\s*(?:;|$)`)

// PublicKeyMaterial holds the public key extracted from a DKIM record
type PublicKeyMaterial struct {
	// Base64 is the raw base64 payload of the p= tag
	Base64 string
	// PEM is the payload wrapped as a PEM public key block
	PEM string
}

// ExtractPublicKey locates the p= tag in a DKIM record and returns the key
// material in both base64 and PEM form
func ExtractPublicKey(record string) (PublicKeyMaterial, error) {
	m := publicKeyTagPattern.FindStringSubmatch(record)
	if m == nil {
		return PublicKeyMaterial{}, ErrMissingPublicKeyTag
	}

	payload := strings.TrimSpace(m[1])
	if payload == "" {
		return PublicKeyMaterial{}, ErrEmptyPublicKey
	}

	return PublicKeyMaterial{
		Base64: payload,
		PEM:    wrapPEM(payload),
	}, nil
}

// wrapPEM frames a base64 payload as a PEM public key block, breaking the
// payload at the standard 64-column width with a trailing newline
func wrapPEM(payload string) string {
	var b strings.Builder

	b.WriteString(pemHeader)
	b.WriteByte('\n')

	for i := 0; i < len(payload); i += pemLineLength {
		end := i + pemLineLength
		if end > len(payload) {
			end = len(payload)
		}

		b.WriteString(payload[i:end])
		b.WriteByte('\n')
	}

	b.WriteString(pemFooter)
	b.WriteByte('\n')

	return b.String()
}
