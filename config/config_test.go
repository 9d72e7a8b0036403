package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{AttioPageSize: 250, OTLPProtocol: "grpc"}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "should accept the defaults", mutate: func(*Config) {}},
		{name: "should reject a zero page size", mutate: func(c *Config) { c.AttioPageSize = 0 }, wantErr: "ATTIO_PAGE_SIZE must be between 1 and 500, got 0"},
		{name: "should reject an oversized page", mutate: func(c *Config) { c.AttioPageSize = 501 }, wantErr: "ATTIO_PAGE_SIZE must be between 1 and 500, got 501"},
		{name: "should reject unknown protocols", mutate: func(c *Config) { c.OTLPProtocol = "udp" }, wantErr: "OTLP_PROTOCOL must be grpc or http, got 'udp'"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)

			err := cfg.validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.EqualError(t, err, tt.wantErr)
		})
	}
}
