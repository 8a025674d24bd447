package dkim

import (
	"context"
	"fmt"
	"net"
	"strings"
	"unicode/utf8"

	"github.com/miekg/dns"
	"github.com/samber/lo"
)

const (
	// defaultDNSPort is appended to nameserver addresses without an explicit port
	defaultDNSPort = "53"
	// fallbackNameserver is used when the system resolver config cannot be read
	fallbackNameserver = "8.8.8.8:53"
	// resolvConfPath is the system resolver configuration file
	resolvConfPath = "/etc/resolv.conf"
)

// FetchRecord resolves the DKIM TXT record for a selector/domain pair.
// Each answer's constituent strings are concatenated before use; the record
// containing a p= tag is preferred, falling back to the first record when
// none carries one.
func (c *Checker) FetchRecord(ctx context.Context, selector, domain string) (string, error) {
	qname := QueryName(selector, domain)

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	msg := new(dns.Msg)
	msg.SetQuestion(dns.Fqdn(qname), dns.TypeTXT)
	msg.RecursionDesired = true

	var lastErr error

	for _, server := range c.servers() {
		if ctx.Err() != nil {
			break
		}

		resp, _, err := c.client.ExchangeContext(ctx, msg, server)
		if err != nil {
			lastErr = err
			continue
		}

		switch resp.Rcode {
		case dns.RcodeSuccess:
			return selectRecord(txtAnswers(resp))
		case dns.RcodeNameError:
			return "", fmt.Errorf("%w: %s", ErrDomainNotFound, qname)
		default:
			lastErr = fmt.Errorf("unexpected rcode %s", dns.RcodeToString[resp.Rcode])
		}
	}

	if lastErr == nil {
		lastErr = ctx.Err()
	}

	return "", fmt.Errorf("%w: %v", ErrResolutionFailed, lastErr)
}

// servers returns the nameservers to query: the explicitly configured one,
// or the system resolver chain when none is set
func (c *Checker) servers() []string {
	if c.nameserver != "" {
		return []string{c.nameserver}
	}

	return systemNameservers()
}

// systemNameservers reads the resolver chain from /etc/resolv.conf, falling
// back to a public resolver when the file is missing or empty
func systemNameservers() []string {
	cfg, err := dns.ClientConfigFromFile(resolvConfPath)
	if err != nil || len(cfg.Servers) == 0 {
		return []string{fallbackNameserver}
	}

	return lo.Map(cfg.Servers, func(server string, _ int) string {
		return normalizeNameserver(server)
	})
}

// normalizeNameserver ensures a nameserver address carries a port
func normalizeNameserver(server string) string {
	if _, _, err := net.SplitHostPort(server); err == nil {
		return server
	}

	return net.JoinHostPort(server, defaultDNSPort)
}

// txtAnswers concatenates the character strings of each TXT answer into one
// record string, replacing bytes that do not form valid UTF-8
func txtAnswers(resp *dns.Msg) []string {
	txts := lo.FilterMap(resp.Answer, func(rr dns.RR, _ int) (*dns.TXT, bool) {
		txt, ok := rr.(*dns.TXT)
		return txt, ok
	})

	return lo.Map(txts, func(txt *dns.TXT, _ int) string {
		return strings.ToValidUTF8(strings.Join(txt.Txt, ""), string(utf8.RuneError))
	})
}

// selectRecord picks the record to extract the key from: the first record
// containing a p= tag, else the first record
func selectRecord(records []string) (string, error) {
	if len(records) == 0 {
		return "", ErrNoRecordsFound
	}

	for _, record := range records {
		if strings.Contains(record, publicKeyTag) {
			return record, nil
		}
	}

	return records[0], nil
}
