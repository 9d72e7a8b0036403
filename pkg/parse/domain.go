package parse

import (
	"net"
	"net/url"
	"strings"

	"golang.org/x/net/publicsuffix"

	asterrors "github.com/Ramsey-B/aster/pkg/errors"
)

// ParseDomain returns the registrable domain (eTLD+1) of a URL, hostname or
// email address. With includeSubdomain the full hostname is returned instead,
// provided it has a registrable domain.
func ParseDomain(s string, includeSubdomain bool) (string, error) {
	host, err := hostOf(s)
	if err != nil {
		return "", err
	}
	return registrableDomain(s, host, includeSubdomain)
}

// ParsePathname returns the path of a URL, defaulting to "/".
func ParsePathname(s string) (string, error) {
	u, err := parseURL(s)
	if err != nil {
		return "", err
	}
	if u.Path == "" {
		return "/", nil
	}
	return u.Path, nil
}

func hostOf(s string) (string, error) {
	// an email resolves to its own domain part
	if email, err := ParseEmail(s); err == nil {
		return email.Domain(), nil
	}

	u, err := parseURL(s)
	if err != nil {
		return "", err
	}
	return u.Hostname(), nil
}

func parseURL(s string) (*url.URL, error) {
	raw := strings.TrimSpace(s)
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return nil, asterrors.NewDomainResolutionError(s, asterrors.CodeInvalidURL, err.Error())
	}
	return u, nil
}

func registrableDomain(input, host string, includeSubdomain bool) (string, error) {
	host = strings.TrimSuffix(strings.ToLower(host), ".")
	if host == "" {
		return "", asterrors.NewDomainResolutionError(input, asterrors.CodeEmptyHost, "no hostname found")
	}
	if net.ParseIP(host) != nil {
		return "", asterrors.NewDomainResolutionError(input, asterrors.CodeIPAddress, "IP addresses have no registrable domain")
	}

	// the list's implicit "*" rule matches anything; only accept it for multi-label private suffixes
	suffix, icann := publicsuffix.PublicSuffix(host)
	if !icann && !strings.Contains(suffix, ".") {
		return "", asterrors.NewDomainResolutionError(input, asterrors.CodeTLDNotListed, "top level domain '"+suffix+"' is not listed")
	}

	domain, err := publicsuffix.EffectiveTLDPlusOne(host)
	if err != nil {
		return "", asterrors.NewDomainResolutionError(input, asterrors.CodeDomainTooShort, err.Error())
	}

	if includeSubdomain {
		return host, nil
	}
	return domain, nil
}
