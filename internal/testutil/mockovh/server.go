package mockovh

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/sipico/ovh-api-client/internal/ovh"
)

// Server is a mock OVH API server for testing. It keeps zones, records,
// and email redirections in memory, serves the server-time endpoint, and
// can verify request signatures against a known credential tuple.
type Server struct {
	srv *httptest.Server

	mu       sync.RWMutex
	zones    map[string]*zoneState
	redirs   map[string]map[string]*Redirection
	failures map[string]failure
	now      func() int64
	creds    *Credentials
	requests int
}

// New creates and starts a mock OVH API server.
func New() *Server {
	s := &Server{
		zones:    make(map[string]*zoneState),
		redirs:   make(map[string]map[string]*Redirection),
		failures: make(map[string]failure),
		now:      func() int64 { return time.Now().Unix() },
	}

	r := chi.NewRouter()
	r.Use(s.countRequests)
	r.Use(s.injectFailures)
	r.Use(s.verifySignature)

	r.Get("/auth/time", s.handleTime)

	r.Get("/domain/zone/{zone}/record", s.handleListRecords)
	r.Post("/domain/zone/{zone}/record", s.handleCreateRecord)
	r.Get("/domain/zone/{zone}/record/{id}", s.handleGetRecord)
	r.Delete("/domain/zone/{zone}/record/{id}", s.handleDeleteRecord)
	r.Post("/domain/zone/{zone}/refresh", s.handleRefreshZone)

	r.Get("/email/domain/{domain}/redirection", s.handleListRedirections)
	r.Post("/email/domain/{domain}/redirection", s.handleCreateRedirection)
	r.Get("/email/domain/{domain}/redirection/{id}", s.handleGetRedirection)
	r.Delete("/email/domain/{domain}/redirection/{id}", s.handleDeleteRedirection)

	s.srv = httptest.NewServer(r)
	return s
}

// URL returns the server's base URL, suitable for ovh.WithBaseURL.
func (s *Server) URL() string {
	return s.srv.URL
}

// Handler returns the server's HTTP handler so it can be mounted on a
// listener other than the built-in httptest one.
func (s *Server) Handler() http.Handler {
	return s.srv.Config.Handler
}

// Close shuts the server down.
func (s *Server) Close() {
	s.srv.Close()
}

// SetTime replaces the clock backing the server-time endpoint.
func (s *Server) SetTime(now func() int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

// SetCredentials enables signature verification against the given
// credential tuple on every endpoint except the server-time endpoint.
func (s *Server) SetCredentials(creds Credentials) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.creds = &creds
}

// FailPath makes every request matching method and path fail with the
// given status until ClearFailures is called. An empty body serves a
// generic error message.
func (s *Server) FailPath(method, path string, status int, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[method+" "+path] = failure{status: status, body: body}
}

// ClearFailures removes all injected failures.
func (s *Server) ClearFailures() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures = make(map[string]failure)
}

// Requests returns the number of requests the server has handled.
func (s *Server) Requests() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.requests
}

// AddZone registers an empty zone.
func (s *Server) AddZone(zone string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.addZoneLocked(zone)
}

func (s *Server) addZoneLocked(zone string) *zoneState {
	z, ok := s.zones[zone]
	if !ok {
		z = &zoneState{records: make(map[int64]*Record), nextID: 1}
		s.zones[zone] = z
	}
	return z
}

// AddRecord seeds a record into a zone (creating the zone if needed) and
// returns its id. Unset optional fields are represented by "" and 0.
func (s *Server) AddRecord(zone, fieldType, subDomain, target string, ttl int64) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	z := s.addZoneLocked(zone)
	id := z.nextID
	z.nextID++
	z.records[id] = &Record{
		ID:        id,
		Zone:      zone,
		FieldType: fieldType,
		SubDomain: subDomain,
		Target:    target,
		TTL:       ttl,
	}
	return id
}

// GetRecord returns a copy of a seeded or created record.
func (s *Server) GetRecord(zone string, id int64) (Record, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	z, ok := s.zones[zone]
	if !ok {
		return Record{}, false
	}
	rec, ok := z.records[id]
	if !ok {
		return Record{}, false
	}
	return *rec, true
}

// RecordCount returns how many records a zone holds.
func (s *Server) RecordCount(zone string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	z, ok := s.zones[zone]
	if !ok {
		return 0
	}
	return len(z.records)
}

// RefreshCount returns how many refresh calls a zone has received.
func (s *Server) RefreshCount(zone string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	z, ok := s.zones[zone]
	if !ok {
		return 0
	}
	return z.refreshes
}

// AddRedirection seeds an email redirection and returns its generated id.
func (s *Server) AddRedirection(domain, from, to string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.redirs[domain] == nil {
		s.redirs[domain] = make(map[string]*Redirection)
	}
	id := uuid.NewString()
	s.redirs[domain][id] = &Redirection{ID: id, From: from, To: to}
	return id
}

// RedirectionCount returns how many redirections a domain holds.
func (s *Server) RedirectionCount(domain string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.redirs[domain])
}

// countRequests tracks the total number of handled requests.
func (s *Server) countRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.requests++
		s.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

// injectFailures serves configured failures before any handler runs.
func (s *Server) injectFailures(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.RLock()
		f, ok := s.failures[r.Method+" "+r.URL.Path]
		s.mu.RUnlock()

		if ok {
			body := f.body
			if body == "" {
				body = "injected failure"
			}
			writeError(w, f.status, body)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// verifySignature rejects requests whose signing headers do not match the
// configured credentials. The server-time endpoint is public.
func (s *Server) verifySignature(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.RLock()
		creds := s.creds
		s.mu.RUnlock()

		if creds == nil || r.URL.Path == "/auth/time" {
			next.ServeHTTP(w, r)
			return
		}

		if r.Header.Get("X-Ovh-Application") != creds.ApplicationKey {
			writeError(w, http.StatusForbidden, "invalid application key")
			return
		}
		if r.Header.Get("X-Ovh-Consumer") != creds.ConsumerKey {
			writeError(w, http.StatusForbidden, "invalid consumer key")
			return
		}

		var body []byte
		if r.Body != nil {
			var err error
			body, err = io.ReadAll(r.Body)
			if err != nil {
				writeError(w, http.StatusBadRequest, "unreadable body")
				return
			}
			// Restore body for handler
			r.Body = io.NopCloser(bytes.NewReader(body))
		}

		// The mock always serves plain HTTP, so the signed URL can be
		// rebuilt from the Host header regardless of which listener the
		// handler is mounted on.
		timestamp := r.Header.Get("X-Ovh-Timestamp")
		url := "http://" + r.Host + r.URL.RequestURI()
		expected := ovh.Sign(creds.ApplicationSecret, creds.ConsumerKey, r.Method, url, string(body), timestamp)
		if r.Header.Get("X-Ovh-Signature") != expected {
			writeError(w, http.StatusForbidden, "invalid signature")
			return
		}

		next.ServeHTTP(w, r)
	})
}

// sortedRecordIDs returns a zone's record ids in ascending order for
// deterministic list responses.
func (z *zoneState) sortedRecordIDs() []int64 {
	ids := make([]int64, 0, len(z.records))
	for id := range z.records {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// writeJSON writes a JSON response with correct Content-Type.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	//nolint:errcheck
	json.NewEncoder(w).Encode(v)
}

// writeError writes an API-shaped error body.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorResponse{Message: message})
}
