package parse

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	asterrors "github.com/Ramsey-B/aster/pkg/errors"
)

func TestParseDomain(t *testing.T) {
	tests := []struct {
		input            string
		includeSubdomain bool
		expected         string
	}{
		{"http://google.com", false, "google.com"},
		{"https://amazon.com", false, "amazon.com"},
		{"http://google.com?id=1232#fda", false, "google.com"},
		{"http://www.google.com?id=1232#fda", false, "google.com"},
		{"http://attio.com/ada/", false, "attio.com"},
		{"attio.com", false, "attio.com"},
		{"app.attio.com/test?adf=122", false, "attio.com"},
		{"tony@venice.is", false, "venice.is"},
		{"Hi Venice <hi@venice.is>", false, "venice.is"},
		{"https://medium.com/@user", false, "medium.com"},
		{"app.attio.com/test?adf=122", true, "app.attio.com"},
		{"xxxx@resource.calendar.google.com", true, "resource.calendar.google.com"},
		{"HTTPS://WWW.Example.CO.UK./path", false, "example.co.uk"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			domain, err := ParseDomain(tt.input, tt.includeSubdomain)

			assert.NoError(t, err)
			assert.Equal(t, tt.expected, domain)
		})
	}

	t.Run("should reject hosts that are not under a listed suffix", func(t *testing.T) {
		tests := []struct {
			input string
			code  string
		}{
			{"bademal", asterrors.CodeTLDNotListed},
			{"dd", asterrors.CodeTLDNotListed},
			{"https://", asterrors.CodeEmptyHost},
			{"http://127.0.0.1:8080/health", asterrors.CodeIPAddress},
			{"co.uk", asterrors.CodeDomainTooShort},
			{"http://[::1", asterrors.CodeInvalidURL},
		}

		for _, tt := range tests {
			_, err := ParseDomain(tt.input, false)
			require.Error(t, err, tt.input)

			var resolutionErr *asterrors.DomainResolutionError
			require.True(t, errors.As(err, &resolutionErr), tt.input)
			assert.Equal(t, tt.code, resolutionErr.Code, tt.input)
			assert.Equal(t, tt.input, resolutionErr.Input, tt.input)
		}
	})
}

func TestParsePathname(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"http://google.com", "/"},
		{"http://google.com?id=1232#fda", "/"},
		{"http://www.google.com?id=1232#fda", "/"},
		{"http://attio.com/ada/", "/ada/"},
		{"attio.com", "/"},
		{"app.attio.com/test?adf=122", "/test"},
		{"tony@venice.is", "/"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			pathname, err := ParsePathname(tt.input)

			assert.NoError(t, err)
			assert.Equal(t, tt.expected, pathname)
		})
	}
}
