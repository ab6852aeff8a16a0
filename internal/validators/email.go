package validators

import (
	"net"
	"net/mail"
	"strings"
)

// IsEmailSyntaxValid accepts a bare address (no display name).
func IsEmailSyntaxValid(email string) bool {
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email
}

// IsEmailDomainValid reports whether the domain of email resolves to an MX
// record or, failing that, to an address.
func IsEmailDomainValid(email string) bool {
	return emailDomainResolves(email, net.LookupMX, net.LookupIP)
}

func emailDomainResolves(
	email string,
	lookupMX func(string) ([]*net.MX, error),
	lookupIP func(string) ([]net.IP, error),
) bool {
	at := strings.LastIndex(email, "@")
	if at < 0 || at == len(email)-1 {
		return false
	}

	domain := email[at+1:]

	if mx, err := lookupMX(domain); err == nil && len(mx) > 0 {
		return true
	}

	if ips, err := lookupIP(domain); err == nil && len(ips) > 0 {
		return true
	}

	return false
}
