package ovh

import (
	"crypto/sha1" //nolint:gosec // SHA-1 is mandated by the OVH signature scheme.
	"encoding/hex"
	"strings"
)

// Sign computes the OVH request signature: the lower-case hex SHA-1 of the
// `+`-joined request fields, prefixed with the literal tag "$1$".
//
// The field order (secret, consumer key, method, URL, body, timestamp) and
// the separator are fixed by the wire protocol; body is the empty string
// for body-less requests.
func Sign(appSecret, consumerKey, method, url, body, timestamp string) string {
	payload := strings.Join([]string{appSecret, consumerKey, method, url, body, timestamp}, "+")
	sum := sha1.Sum([]byte(payload)) //nolint:gosec
	return "$1$" + hex.EncodeToString(sum[:])
}
