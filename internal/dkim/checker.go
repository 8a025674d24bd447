package dkim

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/miekg/dns"
	"github.com/rs/zerolog/log"
)

// defaultTimeout bounds both the individual DNS exchange and the overall
// resolution lifetime when no timeout is configured
const defaultTimeout = 4 * time.Second

// Checker runs the DKIM key check pipeline: fetch, extract, inspect
type Checker struct {
	client     *dns.Client
	nameserver string
	timeout    time.Duration
}

// CheckerOption configures the Checker
type CheckerOption func(*Checker)

// WithNameserver overrides the nameserver used for lookups, bypassing the
// system resolver chain. Addresses without a port default to port 53.
func WithNameserver(server string) CheckerOption {
	return func(c *Checker) {
		if server != "" {
			c.nameserver = normalizeNameserver(server)
		}
	}
}

// WithTimeout overrides the DNS resolution timeout
func WithTimeout(timeout time.Duration) CheckerOption {
	return func(c *Checker) {
		if timeout > 0 {
			c.timeout = timeout
			c.client.Timeout = timeout
		}
	}
}

// NewChecker creates a DKIM key checker
func NewChecker(opts ...CheckerOption) *Checker {
	c := &Checker{
		client:  &dns.Client{Timeout: defaultTimeout},
		timeout: defaultTimeout,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Check resolves the DKIM record for the selector/domain pair, extracts its
// public key, and reports the key length and strength. The first failing
// stage short-circuits the pipeline.
func (c *Checker) Check(ctx context.Context, selector, domain string) (*Report, error) {
	selector = strings.TrimSpace(selector)
	domain = strings.TrimSpace(strings.ToLower(domain))

	if selector == "" {
		return nil, ErrEmptySelector
	}

	if domain == "" {
		return nil, ErrEmptyDomain
	}

	record, err := c.FetchRecord(ctx, selector, domain)
	if err != nil {
		return nil, err
	}

	log.Debug().Str("selector", selector).Str("domain", domain).Str("record", record).Msg("fetched DKIM record")

	material, err := ExtractPublicKey(record)
	if err != nil {
		return nil, err
	}

	bits, err := InspectKey(material.PEM)
	if err != nil {
		return nil, err
	}

	strength, detail := ClassifyKeyStrength(bits)

	log.Debug().Int("bits", bits).Str("strength", string(strength)).Msg("inspected DKIM public key")

	return &Report{
		Selector:       selector,
		Domain:         domain,
		DKIMRecord:     record,
		PublicKeyPEM:   material.PEM,
		KeyLengthBits:  bits,
		KeyLengthLabel: fmt.Sprintf("%db", bits),
		KeyStrength:    strength,
		StrengthDetail: detail,
	}, nil
}
