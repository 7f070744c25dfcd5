// Package mockovh provides a mock OVH API server for testing the signed
// client and the resource repositories.
package mockovh

// Record is the wire shape of a DNS record as the OVH API serves it.
// Unset optional fields are served as their sentinel values (empty
// subdomain, zero TTL), exactly like the real API; normalization is the
// client's job.
type Record struct {
	ID        int64  `json:"id"`
	Zone      string `json:"zone"`
	FieldType string `json:"fieldType"`
	SubDomain string `json:"subDomain"`
	Target    string `json:"target"`
	TTL       int64  `json:"ttl"`
}

// Redirection is the wire shape of an email redirection.
type Redirection struct {
	ID   string `json:"id"`
	From string `json:"from"`
	To   string `json:"to"`
}

// Credentials is the credential tuple the server verifies signatures
// against when signature checking is enabled.
type Credentials struct {
	ApplicationKey    string
	ApplicationSecret string
	ConsumerKey       string
}

// zoneState holds one zone's records and refresh counter.
type zoneState struct {
	records   map[int64]*Record
	nextID    int64
	refreshes int
}

// failure is an injected failure response for one method+path.
type failure struct {
	status int
	body   string
}

// ErrorResponse is the error body shape served by the API.
type ErrorResponse struct {
	Message string `json:"message"`
}
