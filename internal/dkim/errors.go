package dkim

import "errors"

var (
	// ErrEmptySelector is returned when an empty selector is provided
	ErrEmptySelector = errors.New("selector must not be empty")
	// ErrEmptyDomain is returned when an empty domain is provided
	ErrEmptyDomain = errors.New("domain must not be empty")
	// ErrDomainNotFound is returned when the DKIM query name does not exist (NXDOMAIN)
	ErrDomainNotFound = errors.New("domain does not exist")
	// ErrNoRecordsFound is returned when the TXT query succeeds but returns zero records
	ErrNoRecordsFound = errors.New("no DKIM TXT records found")
	// ErrResolutionFailed is returned on network, timeout, or protocol failures during resolution
	ErrResolutionFailed = errors.New("DNS resolution failed")
	// ErrMissingPublicKeyTag is returned when the chosen record carries no p= tag
	ErrMissingPublicKeyTag = errors.New("no p= public key tag found in DKIM record")
	// ErrEmptyPublicKey is returned when the p= tag is present but blank, meaning the key was revoked
	ErrEmptyPublicKey = errors.New("public key is empty, key has been revoked")
	// ErrKeyParse is returned when the p= payload is not a valid RSA public key
	ErrKeyParse = errors.New("failed to parse RSA public key")
)
