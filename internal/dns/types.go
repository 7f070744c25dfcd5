// Package dns provides typed access to the OVH DNS zone records API.
package dns

import (
	"fmt"
)

// RecordType is the resource record type of a DNS record.
type RecordType string

// Record types accepted by the zone records API.
const (
	TypeA     RecordType = "A"
	TypeAAAA  RecordType = "AAAA"
	TypeCAA   RecordType = "CAA"
	TypeCNAME RecordType = "CNAME"
	TypeDKIM  RecordType = "DKIM"
	TypeDMARC RecordType = "DMARC"
	TypeDNAME RecordType = "DNAME"
	TypeLOC   RecordType = "LOC"
	TypeMX    RecordType = "MX"
	TypeNAPTR RecordType = "NAPTR"
	TypeNS    RecordType = "NS"
	TypePTR   RecordType = "PTR"
	TypeSPF   RecordType = "SPF"
	TypeSRV   RecordType = "SRV"
	TypeSSHFP RecordType = "SSHFP"
	TypeTLSA  RecordType = "TLSA"
	TypeTXT   RecordType = "TXT"
)

// Record represents a single record of a DNS zone.
//
// SubDomain and TTL are nil when unset. The API reports "unset" as an empty
// subdomain and a zero TTL; those sentinels are normalized to nil before a
// Record is handed to the caller.
type Record struct {
	ID        int64      `json:"id"`
	Zone      string     `json:"zone"`
	Type      RecordType `json:"fieldType"`
	SubDomain *string    `json:"subDomain,omitempty"`
	Target    string     `json:"target"`
	TTL       *int64     `json:"ttl,omitempty"`
}

// normalize maps the server's unset sentinels (empty subdomain, zero TTL)
// to nil.
func (r *Record) normalize() {
	if r.SubDomain != nil && *r.SubDomain == "" {
		r.SubDomain = nil
	}
	if r.TTL != nil && *r.TTL == 0 {
		r.TTL = nil
	}
}

// FQN returns the fully qualified, dot-terminated name for a subdomain
// within a zone. An empty subdomain yields the zone apex.
func FQN(subDomain, zone string) string {
	if subDomain == "" {
		return zone + "."
	}
	return subDomain + "." + zone + "."
}

// FQN returns the record's fully qualified, dot-terminated name.
func (r *Record) FQN() string {
	sub := ""
	if r.SubDomain != nil {
		sub = *r.SubDomain
	}
	return FQN(sub, r.Zone)
}

// String renders the record as a zone-file style line.
func (r *Record) String() string {
	var ttl int64
	if r.TTL != nil {
		ttl = *r.TTL
	}
	return fmt.Sprintf("%s %d %s %s", r.FQN(), ttl, r.Type, r.Target)
}

// Filter narrows ListIDs to records of one type and/or one subdomain.
// Zero-value fields are not sent.
type Filter struct {
	Type      RecordType
	SubDomain string
}

// CreateRecordRequest is the creatable subset of a record's fields. The id
// is assigned by the server and the zone comes from the repository.
type CreateRecordRequest struct {
	Type      RecordType `json:"fieldType"`
	SubDomain string     `json:"subDomain,omitempty"`
	Target    string     `json:"target"`
	TTL       int64      `json:"ttl,omitempty"`
}
