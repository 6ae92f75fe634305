package validators

import (
	"context"
	"errors"
	"net"
	"strings"
	"time"
)

const lookupTimeout = 3 * time.Second

// IsEmailDomainValid reports whether the address carries a domain that can
// receive mail. MX records are checked first, then a plain host lookup for
// domains that take mail on an A record. A transient resolver failure counts
// as valid: registration must not bounce because DNS hiccuped.
func IsEmailDomainValid(email string) bool {
	domain, ok := emailDomain(email)
	if !ok {
		return false
	}

	ctx, cancel := context.WithTimeout(context.Background(), lookupTimeout)
	defer cancel()

	mx, err := net.DefaultResolver.LookupMX(ctx, domain)
	if err == nil && len(mx) > 0 {
		return true
	}
	if isTransientLookupError(err) {
		return true
	}

	ips, err := net.DefaultResolver.LookupIP(ctx, "ip", domain)
	if err == nil && len(ips) > 0 {
		return true
	}
	return isTransientLookupError(err)
}

// emailDomain extracts the domain part; addresses with an empty local part
// or empty domain are rejected outright.
func emailDomain(email string) (string, bool) {
	at := strings.LastIndex(email, "@")
	if at <= 0 || at == len(email)-1 {
		return "", false
	}
	return email[at+1:], true
}

func isTransientLookupError(err error) bool {
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return dnsErr.IsTimeout || dnsErr.IsTemporary
	}
	return false
}
