package mockovh

import (
	"encoding/json"
	"net/http"
	"sort"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// handleTime handles GET /auth/time.
// The real endpoint answers with a bare decimal unix timestamp, not JSON.
func (s *Server) handleTime(w http.ResponseWriter, _ *http.Request) {
	s.mu.RLock()
	now := s.now()
	s.mu.RUnlock()

	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	//nolint:errcheck
	w.Write([]byte(strconv.FormatInt(now, 10)))
}

// handleListRecords handles GET /domain/zone/{zone}/record.
// Supports the fieldType and subDomain query filters and returns ids only.
func (s *Server) handleListRecords(w http.ResponseWriter, r *http.Request) {
	zone := chi.URLParam(r, "zone")

	s.mu.RLock()
	defer s.mu.RUnlock()

	z, ok := s.zones[zone]
	if !ok {
		writeError(w, http.StatusNotFound, "zone not found")
		return
	}

	query := r.URL.Query()
	fieldType := query.Get("fieldType")
	filterSub := query.Has("subDomain")
	subDomain := query.Get("subDomain")

	ids := make([]int64, 0)
	for _, id := range z.sortedRecordIDs() {
		rec := z.records[id]
		if fieldType != "" && rec.FieldType != fieldType {
			continue
		}
		if filterSub && rec.SubDomain != subDomain {
			continue
		}
		ids = append(ids, id)
	}

	writeJSON(w, http.StatusOK, ids)
}

// handleGetRecord handles GET /domain/zone/{zone}/record/{id}.
func (s *Server) handleGetRecord(w http.ResponseWriter, r *http.Request) {
	zone := chi.URLParam(r, "zone")
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid record id")
		return
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	z, ok := s.zones[zone]
	if !ok {
		writeError(w, http.StatusNotFound, "zone not found")
		return
	}
	rec, ok := z.records[id]
	if !ok {
		writeError(w, http.StatusNotFound, "record not found")
		return
	}

	writeJSON(w, http.StatusOK, rec)
}

// handleCreateRecord handles POST /domain/zone/{zone}/record.
func (s *Server) handleCreateRecord(w http.ResponseWriter, r *http.Request) {
	zone := chi.URLParam(r, "zone")

	var req struct {
		FieldType string `json:"fieldType"`
		SubDomain string `json:"subDomain"`
		Target    string `json:"target"`
		TTL       int64  `json:"ttl"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.FieldType == "" || req.Target == "" {
		writeError(w, http.StatusBadRequest, "fieldType and target are required")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	z, ok := s.zones[zone]
	if !ok {
		writeError(w, http.StatusNotFound, "zone not found")
		return
	}

	id := z.nextID
	z.nextID++
	rec := &Record{
		ID:        id,
		Zone:      zone,
		FieldType: req.FieldType,
		SubDomain: req.SubDomain,
		Target:    req.Target,
		TTL:       req.TTL,
	}
	z.records[id] = rec

	writeJSON(w, http.StatusOK, rec)
}

// handleDeleteRecord handles DELETE /domain/zone/{zone}/record/{id}.
func (s *Server) handleDeleteRecord(w http.ResponseWriter, r *http.Request) {
	zone := chi.URLParam(r, "zone")
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid record id")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	z, ok := s.zones[zone]
	if !ok {
		writeError(w, http.StatusNotFound, "zone not found")
		return
	}
	if _, ok := z.records[id]; !ok {
		writeError(w, http.StatusNotFound, "record not found")
		return
	}
	delete(z.records, id)

	writeJSON(w, http.StatusOK, nil)
}

// handleRefreshZone handles POST /domain/zone/{zone}/refresh.
func (s *Server) handleRefreshZone(w http.ResponseWriter, r *http.Request) {
	zone := chi.URLParam(r, "zone")

	s.mu.Lock()
	defer s.mu.Unlock()

	z, ok := s.zones[zone]
	if !ok {
		writeError(w, http.StatusNotFound, "zone not found")
		return
	}
	z.refreshes++

	writeJSON(w, http.StatusOK, nil)
}

// handleListRedirections handles GET /email/domain/{domain}/redirection.
// Supports the from and to query filters and returns ids only.
func (s *Server) handleListRedirections(w http.ResponseWriter, r *http.Request) {
	domain := chi.URLParam(r, "domain")

	s.mu.RLock()
	defer s.mu.RUnlock()

	query := r.URL.Query()
	from := query.Get("from")
	to := query.Get("to")

	ids := make([]string, 0)
	for id, redir := range s.redirs[domain] {
		if from != "" && redir.From != from {
			continue
		}
		if to != "" && redir.To != to {
			continue
		}
		ids = append(ids, id)
	}
	sort.Strings(ids)

	writeJSON(w, http.StatusOK, ids)
}

// handleGetRedirection handles GET /email/domain/{domain}/redirection/{id}.
func (s *Server) handleGetRedirection(w http.ResponseWriter, r *http.Request) {
	domain := chi.URLParam(r, "domain")
	id := chi.URLParam(r, "id")

	s.mu.RLock()
	defer s.mu.RUnlock()

	redir, ok := s.redirs[domain][id]
	if !ok {
		writeError(w, http.StatusNotFound, "redirection not found")
		return
	}

	writeJSON(w, http.StatusOK, redir)
}

// handleCreateRedirection handles POST /email/domain/{domain}/redirection.
// Answers with a task object the way the real API does.
func (s *Server) handleCreateRedirection(w http.ResponseWriter, r *http.Request) {
	domain := chi.URLParam(r, "domain")

	var req struct {
		From      string `json:"from"`
		To        string `json:"to"`
		LocalCopy bool   `json:"localCopy"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.From == "" || req.To == "" {
		writeError(w, http.StatusBadRequest, "from and to are required")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.redirs[domain] == nil {
		s.redirs[domain] = make(map[string]*Redirection)
	}
	id := uuid.NewString()
	s.redirs[domain][id] = &Redirection{ID: id, From: req.From, To: req.To}

	writeJSON(w, http.StatusOK, struct {
		Action string `json:"action"`
		ID     string `json:"id"`
		From   string `json:"from"`
		To     string `json:"to"`
	}{
		Action: "redirection/create",
		ID:     id,
		From:   req.From,
		To:     req.To,
	})
}

// handleDeleteRedirection handles DELETE /email/domain/{domain}/redirection/{id}.
func (s *Server) handleDeleteRedirection(w http.ResponseWriter, r *http.Request) {
	domain := chi.URLParam(r, "domain")
	id := chi.URLParam(r, "id")

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.redirs[domain][id]; !ok {
		writeError(w, http.StatusNotFound, "redirection not found")
		return
	}
	delete(s.redirs[domain], id)

	writeJSON(w, http.StatusOK, nil)
}
