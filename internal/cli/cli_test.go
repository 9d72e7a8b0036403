package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(args ...string) (string, error) {
	out := &bytes.Buffer{}
	cmd := NewRootCommand()
	cmd.SetOut(out)
	cmd.SetErr(out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestOfflineCommands(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected string
	}{
		{
			name:     "should classify an email",
			args:     []string{"classify", "Tony <tony@venice.is>"},
			expected: `{"type":"email","value":"tony@venice.is","name":"Tony"}`,
		},
		{
			name:     "should classify a domain",
			args:     []string{"classify", "https://www.venice.is"},
			expected: `{"type":"domain","value":"venice.is"}`,
		},
		{
			name:     "should parse a domain",
			args:     []string{"parse-domain", "app.attio.com/test?adf=122"},
			expected: `{"domain":"attio.com"}`,
		},
		{
			name:     "should keep the subdomain",
			args:     []string{"parse-domain", "--subdomain", "app.attio.com/test?adf=122"},
			expected: `{"domain":"app.attio.com"}`,
		},
		{
			name:     "should parse email lists",
			args:     []string{"parse-emails", "a@venice.is, Bo Ek <b@venice.is>"},
			expected: `[{"address":"a@venice.is","name":""},{"address":"b@venice.is","name":"Bo Ek","first_name":"Bo","last_name":"Ek"}]`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := run(tt.args...)

			require.NoError(t, err)
			assert.JSONEq(t, tt.expected, out)
		})
	}
}

func TestOutputFormats(t *testing.T) {
	t.Run("should write yaml", func(t *testing.T) {
		out, err := run("parse-domain", "-o", "yaml", "google.com")

		require.NoError(t, err)
		assert.Equal(t, "domain: google.com\n", out)
	})

	t.Run("should reject unknown formats", func(t *testing.T) {
		_, err := run("parse-domain", "-o", "xml", "google.com")

		assert.EqualError(t, err, "unknown output format 'xml', expected json or yaml")
	})

	t.Run("should fail on unresolvable domains", func(t *testing.T) {
		_, err := run("parse-domain", "127.0.0.1")

		assert.ErrorContains(t, err, "IP_ADDRESS")
	})
}
