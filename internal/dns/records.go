package dns

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/sipico/ovh-api-client/internal/ovh"
)

// Repository manages the records of one DNS zone through a signed client.
type Repository struct {
	client *ovh.Client
	zone   string
}

// NewRepository creates a repository for the given zone name.
func NewRepository(client *ovh.Client, zone string) *Repository {
	return &Repository{client: client, zone: zone}
}

// Zone returns the zone name this repository operates on.
func (r *Repository) Zone() string {
	return r.zone
}

// ListIDs returns the ids of the zone's records in the order the server
// returns them. A non-nil filter is encoded as query parameters.
func (r *Repository) ListIDs(ctx context.Context, filter *Filter) ([]int64, error) {
	path := "/domain/zone/" + r.zone + "/record"
	if filter != nil {
		query := url.Values{}
		if filter.Type != "" {
			query.Set("fieldType", string(filter.Type))
		}
		if filter.SubDomain != "" {
			query.Set("subDomain", filter.SubDomain)
		}
		if len(query) > 0 {
			path += "?" + query.Encode()
		}
	}

	resp, err := r.client.Get(ctx, path)
	if err != nil {
		return nil, err
	}
	if err := resp.Err(); err != nil {
		return nil, err
	}

	var ids []int64
	if err := resp.JSON(&ids); err != nil {
		return nil, err
	}
	return ids, nil
}

// Get fetches one record by id and normalizes its optional fields.
func (r *Repository) Get(ctx context.Context, id int64) (*Record, error) {
	resp, err := r.client.Get(ctx, r.recordPath(id))
	if err != nil {
		return nil, err
	}
	if err := resp.Err(); err != nil {
		return nil, err
	}

	var record Record
	if err := resp.JSON(&record); err != nil {
		return nil, err
	}
	record.normalize()
	return &record, nil
}

// List fetches every matching record, issuing one detail request per id
// concurrently. Results follow the id order of ListIDs. If any single
// fetch fails, List fails with an error naming the id; it never drops
// records silently.
func (r *Repository) List(ctx context.Context, filter *Filter) ([]*Record, error) {
	ids, err := r.ListIDs(ctx, filter)
	if err != nil {
		return nil, err
	}
	return ovh.Collect(ctx, ids, r.Get)
}

// Create adds a record to the zone and refreshes the zone so the change
// takes effect.
//
// When the create call succeeds but the refresh fails, the returned record
// is non-nil alongside a *RefreshError: the record exists server-side but
// is not yet live. Callers batching many mutations should use the
// repository's mutation calls followed by one explicit Refresh instead.
func (r *Repository) Create(ctx context.Context, req *CreateRecordRequest) (*Record, error) {
	resp, err := r.client.Post(ctx, "/domain/zone/"+r.zone+"/record", req)
	if err != nil {
		return nil, err
	}
	if err := resp.Err(); err != nil {
		return nil, err
	}

	var record Record
	if err := resp.JSON(&record); err != nil {
		return nil, err
	}
	record.normalize()

	if err := r.Refresh(ctx); err != nil {
		return &record, &RefreshError{err: err}
	}
	return &record, nil
}

// Delete removes a record by id and refreshes the zone. A *RefreshError
// means the record was deleted but the zone has not been committed.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	resp, err := r.client.Delete(ctx, r.recordPath(id))
	if err != nil {
		return err
	}
	if err := resp.Err(); err != nil {
		return err
	}

	if err := r.Refresh(ctx); err != nil {
		return &RefreshError{err: err}
	}
	return nil
}

// Refresh commits pending zone mutations. The API applies record changes
// only after this call.
func (r *Repository) Refresh(ctx context.Context) error {
	resp, err := r.client.PostEmpty(ctx, "/domain/zone/"+r.zone+"/refresh")
	if err != nil {
		return err
	}
	return resp.Err()
}

func (r *Repository) recordPath(id int64) string {
	return "/domain/zone/" + r.zone + "/record/" + strconv.FormatInt(id, 10)
}

// RefreshError reports a mutation that was applied but whose zone refresh
// failed. The record change exists server-side and is not yet live; a
// later Refresh commits it.
type RefreshError struct {
	err error
}

// Error implements the error interface for RefreshError.
func (e *RefreshError) Error() string {
	return fmt.Sprintf("dns: zone refresh failed after mutation: %v", e.err)
}

// Unwrap returns the underlying refresh failure.
func (e *RefreshError) Unwrap() error {
	return e.err
}
