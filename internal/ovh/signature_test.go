package ovh

import (
	"testing"
)

const (
	testSecret   = "application-secret"
	testConsumer = "consumer-key"
	testURL      = "https://eu.api.ovh.com/1.0/domain/zone/example.com/record"
)

// TestSign checks the signature against fixed vectors: lower-case hex SHA-1
// of the `+`-joined fields, tagged with "$1$".
func TestSign(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		method    string
		body      string
		timestamp string
		want      string
	}{
		{
			name:      "GET without body",
			method:    "GET",
			body:      "",
			timestamp: "1366560945",
			want:      "$1$caeeeb8e91b58ac9f42d6c5f8946f029f5d0919c",
		},
		{
			name:      "GET at the next second",
			method:    "GET",
			body:      "",
			timestamp: "1366560946",
			want:      "$1$0b041ba6a849c6537591f2bc23debebf8903ccb8",
		},
		{
			name:      "POST with JSON body",
			method:    "POST",
			body:      `{"fieldType":"A","subDomain":"www","target":"203.0.113.7","ttl":3600}`,
			timestamp: "1366560945",
			want:      "$1$061892257b53ea11820d86ef8b808b4a668c7320",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := Sign(testSecret, testConsumer, tt.method, testURL, tt.body, tt.timestamp)
			if got != tt.want {
				t.Errorf("Sign() = %q, want %q", got, tt.want)
			}
		})
	}
}

// TestSignDeterministic verifies identical inputs always produce identical
// signatures.
func TestSignDeterministic(t *testing.T) {
	t.Parallel()

	first := Sign(testSecret, testConsumer, "GET", testURL, "", "1366560945")
	second := Sign(testSecret, testConsumer, "GET", testURL, "", "1366560945")
	if first != second {
		t.Errorf("signatures differ for identical inputs: %q vs %q", first, second)
	}
}

// TestSignFieldSensitivity verifies that changing any single field changes
// the signature.
func TestSignFieldSensitivity(t *testing.T) {
	t.Parallel()

	base := Sign(testSecret, testConsumer, "GET", testURL, "", "1366560945")

	variants := map[string]string{
		"secret":    Sign("other-secret", testConsumer, "GET", testURL, "", "1366560945"),
		"consumer":  Sign(testSecret, "other-consumer", "GET", testURL, "", "1366560945"),
		"method":    Sign(testSecret, testConsumer, "DELETE", testURL, "", "1366560945"),
		"url":       Sign(testSecret, testConsumer, "GET", testURL+"/1", "", "1366560945"),
		"body":      Sign(testSecret, testConsumer, "GET", testURL, "{}", "1366560945"),
		"timestamp": Sign(testSecret, testConsumer, "GET", testURL, "", "1366560946"),
	}

	seen := map[string]string{base: "base"}
	for field, sig := range variants {
		if sig == base {
			t.Errorf("changing %s did not change the signature", field)
		}
		if prev, dup := seen[sig]; dup {
			t.Errorf("signature collision between %s and %s", field, prev)
		}
		seen[sig] = field
	}
}
