package dkim

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog/log"
)

// CommonSelectors are well-known DKIM selectors probed during discovery
var CommonSelectors = []string{
	"google",
	"default",
	"selector1",
	"selector2",
	"k1",
	"mandrill",
	"dkim",
	"mail",
	"s1",
	"s2",
}

// ProbeFinding describes one selector discovered during probing
type ProbeFinding struct {
	// Selector is the selector the key was found under
	Selector string `json:"selector"`
	// KeyLengthBits is the RSA modulus bit length, zero for revoked keys
	KeyLengthBits int `json:"key_length_bits,omitempty"`
	// KeyStrength grades the key length, empty for revoked keys
	KeyStrength KeyStrength `json:"key_strength,omitempty"`
	// Revoked indicates the selector publishes an empty p= tag
	Revoked bool `json:"revoked,omitempty"`
}

// ProbeResult captures the outcome of probing a domain's selectors
type ProbeResult struct {
	// Domain is the domain that was probed
	Domain string `json:"domain"`
	// SelectorsChecked is the total number of selectors probed
	SelectorsChecked int `json:"selectors_checked"`
	// Findings lists the selectors with published keys, revoked included
	Findings []ProbeFinding `json:"findings,omitempty"`
	// Found indicates whether at least one selector was discovered
	Found bool `json:"found"`
}

// Probe sequentially checks each selector against the domain, recording key
// length and strength for published keys and flagging revoked ones. Selectors
// that fail to resolve are skipped; probing honors context cancellation.
func (c *Checker) Probe(ctx context.Context, domain string, selectors []string) (*ProbeResult, error) {
	domain = strings.TrimSpace(strings.ToLower(domain))
	if domain == "" {
		return nil, ErrEmptyDomain
	}

	if len(selectors) == 0 {
		selectors = CommonSelectors
	}

	result := &ProbeResult{
		Domain:           domain,
		SelectorsChecked: len(selectors),
	}

	for _, selector := range selectors {
		if ctx.Err() != nil {
			break
		}

		report, err := c.Check(ctx, selector, domain)

		switch {
		case err == nil:
			result.Findings = append(result.Findings, ProbeFinding{
				Selector:      selector,
				KeyLengthBits: report.KeyLengthBits,
				KeyStrength:   report.KeyStrength,
			})
			result.Found = true
		case errors.Is(err, ErrEmptyPublicKey):
			result.Findings = append(result.Findings, ProbeFinding{
				Selector: selector,
				Revoked:  true,
			})
			result.Found = true
		default:
			log.Debug().Err(err).Str("selector", selector).Str("domain", domain).Msg("selector probe miss")
		}
	}

	return result, nil
}
