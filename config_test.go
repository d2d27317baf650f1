package main

import (
	"testing"
	"time"
)

func validConfig() *Config {
	return &Config{
		bind:         "0.0.0.0",
		port:         8080,
		flagURL:      "https://flagsapi.com/%s/flat/64.png",
		rounds:       10,
		roundTimeout: 15 * time.Second,
		graceDelay:   2 * time.Second,
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(c *Config) {}, false},
		{"tls cert without key", func(c *Config) { c.tlsCert = "cert.pem" }, true},
		{"tls key without cert", func(c *Config) { c.tlsKey = "key.pem" }, true},
		{"tls pair", func(c *Config) { c.tlsCert, c.tlsKey = "cert.pem", "key.pem" }, false},
		{"port too low", func(c *Config) { c.port = 0 }, true},
		{"port too high", func(c *Config) { c.port = 70000 }, true},
		{"zero rounds", func(c *Config) { c.rounds = 0 }, true},
		{"rounds exceed bank", func(c *Config) { c.rounds = len(countries) + 1 }, true},
		{"rounds fill bank", func(c *Config) { c.rounds = len(countries) }, false},
		{"zero round timeout", func(c *Config) { c.roundTimeout = 0 }, true},
		{"negative grace delay", func(c *Config) { c.graceDelay = -time.Second }, true},
		{"zero grace delay", func(c *Config) { c.graceDelay = 0 }, false},
		{"flag url without placeholder", func(c *Config) { c.flagURL = "https://flagsapi.com/flat/64.png" }, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := validConfig()
			tc.mutate(cfg)
			err := cfg.validate()
			if (err != nil) != tc.wantErr {
				t.Errorf("validate() error = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}

func TestSchemeFollowsTLS(t *testing.T) {
	cfg := validConfig()
	if got := cfg.scheme(); got != "http" {
		t.Errorf("scheme() = %q, want http", got)
	}

	cfg.tlsCert, cfg.tlsKey = "cert.pem", "key.pem"
	if got := cfg.scheme(); got != "https" {
		t.Errorf("scheme() = %q, want https", got)
	}
}
