// Package dkim resolves a DKIM selector/domain pair to its published DNS TXT
// record, extracts the base64-encoded RSA public key from the p= tag, and
// reports the key's modulus bit length together with a strength grade.
package dkim

import "strings"

// domainKeyLabel joins the selector and domain into the DKIM query name
const domainKeyLabel = "._domainkey."

// publicKeyTag marks the DKIM record field holding the base64 public key
const publicKeyTag = "p="

// Report captures the full result of a DKIM key check
type Report struct {
	// Selector is the DKIM selector that was checked
	Selector string `json:"selector"`
	// Domain is the domain that was checked
	Domain string `json:"domain"`
	// DKIMRecord is the raw TXT record the key was extracted from
	DKIMRecord string `json:"dkim_record"`
	// PublicKeyPEM is the PEM-encoded public key from the p= tag
	PublicKeyPEM string `json:"public_key_pem"`
	// KeyLengthBits is the RSA modulus bit length
	KeyLengthBits int `json:"key_length_bits"`
	// KeyLengthLabel is the human-readable key length (e.g. "2048b")
	KeyLengthLabel string `json:"key_length_label"`
	// KeyStrength grades the key length against RFC 8301 guidance
	KeyStrength KeyStrength `json:"key_strength"`
	// StrengthDetail explains the assigned strength grade
	StrengthDetail string `json:"strength_detail"`
}

// QueryName builds the DNS query name for a DKIM selector/domain pair.
// Trailing dots are trimmed from both inputs so the result carries none
// unless the caller re-qualifies it.
func QueryName(selector, domain string) string {
	return strings.TrimRight(selector, ".") + domainKeyLabel + strings.TrimRight(domain, ".")
}
