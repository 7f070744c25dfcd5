package logging

import (
	"testing"
)

func TestMaskHeader(t *testing.T) {
	tests := []struct {
		name     string
		header   string
		value    string
		expected string
	}{
		// Password/secret headers (full redaction)
		{"password header", "X-Password", "hunter2", "[REDACTED]"},
		{"secret header", "X-Application-Secret", "topsecret", "[REDACTED]"},
		{"private key header", "X-Private-Key", "keydata", "[REDACTED]"},
		{"case insensitive secret", "x-APP-SECRET", "topsecret", "[REDACTED]"},

		// Signing and token headers (last 4 chars)
		{"authorization", "Authorization", "Bearer abc123def456", "****f456"},
		{"api key", "X-Api-Key", "key-0123456789", "****6789"},
		{"ovh consumer", "X-Ovh-Consumer", "consumer-key-abcd", "****abcd"},
		{"ovh timestamp", "X-Ovh-Timestamp", "1366560945", "****0945"},
		{"ovh signature", "X-Ovh-Signature", "$1$d3705e8954032a0f05bf536dc771ecc6999b", "****999b"},
		{"case insensitive signature", "x-ovh-signature", "$1$deadbeef", "****beef"},

		// Short sensitive values never reveal anything
		{"short token", "X-Api-Key", "abc", "****"},
		{"empty token", "X-Ovh-Consumer", "", "****"},

		// Ordinary headers pass through
		{"content type", "Content-Type", "application/json; charset=utf-8", "application/json; charset=utf-8"},
		{"application key", "X-Ovh-Application", "app-key-1234", "app-key-1234"},
		{"accept", "Accept", "application/json", "application/json"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MaskHeader(tt.header, tt.value); got != tt.expected {
				t.Errorf("MaskHeader(%q, %q) = %q, want %q", tt.header, tt.value, got, tt.expected)
			}
		})
	}
}
