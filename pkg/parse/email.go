package parse

import (
	"net/mail"
	"strings"
	"unicode"

	"github.com/Gobusters/ectolinq"

	asterrors "github.com/Ramsey-B/aster/pkg/errors"
)

// ParsedEmail is a single mailbox extracted from an RFC 5322 address string.
// Name is empty when the mailbox has no display name.
type ParsedEmail struct {
	Address   string `json:"address"`
	Name      string `json:"name"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
}

// Domain returns the part of the address after the last '@'.
func (p ParsedEmail) Domain() string {
	at := strings.LastIndex(p.Address, "@")
	if at < 0 {
		return ""
	}
	return p.Address[at+1:]
}

// ParseEmail returns the first mailbox in s.
func ParseEmail(s string) (ParsedEmail, error) {
	mailboxes := ParseEmails(s)
	if len(mailboxes) == 0 {
		return ParsedEmail{}, asterrors.NewClassificationError(s)
	}
	return mailboxes[0], nil
}

// ParseEmails returns every mailbox in s, in order. Groups are flattened.
// An unparseable list is retried element by element so that one malformed
// address does not discard the valid ones around it.
func ParseEmails(s string) []ParsedEmail {
	addresses, err := mail.ParseAddressList(s)
	if err != nil {
		addresses = parseLenient(s)
	}

	return ectolinq.Map(addresses, func(a *mail.Address) ParsedEmail {
		return newParsedEmail(a)
	})
}

func newParsedEmail(a *mail.Address) ParsedEmail {
	first, last := SplitName(a.Name)
	return ParsedEmail{
		Address:   a.Address,
		Name:      a.Name,
		FirstName: first,
		LastName:  last,
	}
}

func parseLenient(s string) []*mail.Address {
	addresses := []*mail.Address{}
	for _, part := range splitAddressList(s) {
		if parsed, err := mail.ParseAddressList(part); err == nil {
			addresses = append(addresses, parsed...)
			continue
		}

		if parsed := parseLeading(part); parsed != nil {
			addresses = append(addresses, parsed)
		}
	}
	return addresses
}

// parseLeading tolerates trailing garbage after a mailbox. An angle address
// keeps everything up to its last '>'; a bare address ends at the first
// whitespace or ';'.
func parseLeading(part string) *mail.Address {
	end := strings.LastIndex(part, ">")
	if end == len(part)-1 {
		return nil
	}

	prefix := part[:end+1]
	if end < 0 {
		cut := strings.IndexFunc(part, func(r rune) bool {
			return r == ';' || unicode.IsSpace(r)
		})
		if cut <= 0 {
			return nil
		}
		prefix = part[:cut]
	}

	parsed, err := mail.ParseAddress(prefix)
	if err != nil {
		return nil
	}
	return parsed
}

// splitAddressList splits on commas that are outside quotes, comments and angle brackets.
func splitAddressList(s string) []string {
	var (
		parts   []string
		current strings.Builder
		quoted  bool
		escaped bool
		angle   int
		comment int
	)

	for _, r := range s {
		switch {
		case escaped:
			escaped = false
		case r == '\\' && (quoted || comment > 0):
			escaped = true
		case r == '"' && comment == 0:
			quoted = !quoted
		case quoted:
		case r == '(':
			comment++
		case r == ')' && comment > 0:
			comment--
		case comment > 0:
		case r == '<':
			angle++
		case r == '>' && angle > 0:
			angle--
		case r == ',' && angle == 0:
			parts = append(parts, strings.TrimSpace(current.String()))
			current.Reset()
			continue
		}
		current.WriteRune(r)
	}
	parts = append(parts, strings.TrimSpace(current.String()))

	return ectolinq.Filter(parts, func(p string) bool {
		return p != ""
	})
}
