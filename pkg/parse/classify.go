package parse

import (
	"encoding/json"
	"strings"

	"github.com/google/uuid"
)

// InputType tags the result of Classify.
type InputType string

const (
	InputTypeEmail  InputType = "email"
	InputTypeDomain InputType = "domain"
	InputTypeError  InputType = "error"
)

// ClassifiedInput is the result of Classify. Email is only set for InputTypeEmail.
type ClassifiedInput struct {
	Type  InputType
	Value string
	Name  string
	Email ParsedEmail
}

func (c ClassifiedInput) MarshalJSON() ([]byte, error) {
	out := map[string]any{"type": c.Type, "value": nil}
	switch c.Type {
	case InputTypeEmail:
		out["value"] = c.Value
		out["name"] = c.Name
	case InputTypeDomain:
		out["value"] = c.Value
	}
	return json.Marshal(out)
}

// Classify decides whether input is an email address, a domain, or neither.
// It never fails; unrecognized input is tagged InputTypeError.
func Classify(input string) ClassifiedInput {
	if email, err := ParseEmail(input); err == nil {
		return ClassifiedInput{
			Type:  InputTypeEmail,
			Value: email.Address,
			Name:  email.Name,
			Email: email,
		}
	}

	// '@' without a mailbox is a broken email, never a domain, unless it sits in a URL path
	if !brokenEmail(input) {
		if domain, err := ParseDomain(input, false); err == nil {
			return ClassifiedInput{
				Type:  InputTypeDomain,
				Value: domain,
			}
		}
	}

	return ClassifiedInput{Type: InputTypeError}
}

func brokenEmail(input string) bool {
	at := strings.Index(input, "@")
	if at < 0 {
		return false
	}
	slash := strings.Index(input, "/")
	return slash < 0 || at < slash
}

// SplitName splits a display name into a first name and the remaining words.
// Either part is empty when absent.
func SplitName(name string) (firstName, lastName string) {
	parts := strings.Fields(name)
	if len(parts) == 0 {
		return "", ""
	}
	return parts[0], strings.Join(parts[1:], " ")
}

// IsUUID reports whether s is a canonical UUID.
func IsUUID(s string) bool {
	if len(s) != 36 {
		return false
	}
	_, err := uuid.Parse(s)
	return err == nil
}
