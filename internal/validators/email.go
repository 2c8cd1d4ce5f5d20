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

func IsEmailDomainValid(email string) bool {
	at := strings.LastIndex(email, "@")
	if at < 0 || at == len(email)-1 {
		return false
	}

	domain := email[at+1:]

	if mx, err := net.LookupMX(domain); err == nil && len(mx) > 0 {
		return true
	}

	if ips, err := net.LookupIP(domain); err == nil && len(ips) > 0 {
		return true
	}

	return false
}

// EmailChecker normalizes and validates addresses. The DNS lookup only
// runs when CheckDomain is set.
type EmailChecker struct {
	CheckDomain bool
}

// Normalize lowercases and trims the address and returns an error code
// when it is not acceptable.
func (c EmailChecker) Normalize(email string) (string, string) {
	email = strings.ToLower(strings.TrimSpace(email))
	if !IsEmailSyntaxValid(email) {
		return email, "invalid_email"
	}
	if c.CheckDomain && !IsEmailDomainValid(email) {
		return email, "invalid_email_domain"
	}
	return email, ""
}
