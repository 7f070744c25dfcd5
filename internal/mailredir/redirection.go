// Package mailredir provides typed access to the OVH email redirection API.
package mailredir

import (
	"context"
	"fmt"
	"net/url"

	"github.com/sipico/ovh-api-client/internal/ovh"
)

// Redirection represents a single email redirection.
type Redirection struct {
	// Unique identifier of the redirection
	ID string `json:"id"`
	// Email address to redirect from
	From string `json:"from"`
	// Email address to redirect to
	To string `json:"to"`
}

// String renders the redirection as "id: from -> to".
func (r *Redirection) String() string {
	return fmt.Sprintf("%s: %s -> %s", r.ID, r.From, r.To)
}

// Filter narrows ListIDs to redirections matching a from and/or to
// address. Zero-value fields are not sent.
type Filter struct {
	From string
	To   string
}

// CreateRequest holds the fields of a new redirection.
type CreateRequest struct {
	From      string `json:"from"`
	To        string `json:"to"`
	LocalCopy bool   `json:"localCopy"`
}

// Repository manages the email redirections of one mail domain through a
// signed client. Redirection mutations are immediate; there is no commit
// step.
type Repository struct {
	client *ovh.Client
	domain string
}

// NewRepository creates a repository for the given mail domain.
func NewRepository(client *ovh.Client, domain string) *Repository {
	return &Repository{client: client, domain: domain}
}

// Domain returns the mail domain this repository operates on.
func (r *Repository) Domain() string {
	return r.domain
}

// ListIDs returns the redirection ids in the order the server returns
// them. A non-nil filter is encoded as query parameters.
func (r *Repository) ListIDs(ctx context.Context, filter *Filter) ([]string, error) {
	path := "/email/domain/" + r.domain + "/redirection"
	if filter != nil {
		query := url.Values{}
		if filter.From != "" {
			query.Set("from", filter.From)
		}
		if filter.To != "" {
			query.Set("to", filter.To)
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

	var ids []string
	if err := resp.JSON(&ids); err != nil {
		return nil, err
	}
	return ids, nil
}

// Get fetches one redirection by id.
func (r *Repository) Get(ctx context.Context, id string) (*Redirection, error) {
	resp, err := r.client.Get(ctx, r.redirectionPath(id))
	if err != nil {
		return nil, err
	}
	if err := resp.Err(); err != nil {
		return nil, err
	}

	var redir Redirection
	if err := resp.JSON(&redir); err != nil {
		return nil, err
	}
	return &redir, nil
}

// List fetches every matching redirection, issuing one detail request per
// id concurrently. Results follow the id order of ListIDs; any single
// fetch failure fails the whole call with an error naming the id.
func (r *Repository) List(ctx context.Context, filter *Filter) ([]*Redirection, error) {
	ids, err := r.ListIDs(ctx, filter)
	if err != nil {
		return nil, err
	}
	return ovh.Collect(ctx, ids, r.Get)
}

// Create adds a new redirection. The change is effective immediately.
// The API answers with an opaque task object; its raw body is returned so
// callers can display it without depending on its shape.
func (r *Repository) Create(ctx context.Context, req *CreateRequest) ([]byte, error) {
	resp, err := r.client.Post(ctx, "/email/domain/"+r.domain+"/redirection", req)
	if err != nil {
		return nil, err
	}
	if err := resp.Err(); err != nil {
		return nil, err
	}
	return resp.Body, nil
}

// Delete removes a redirection by id. The change is effective immediately.
func (r *Repository) Delete(ctx context.Context, id string) error {
	resp, err := r.client.Delete(ctx, r.redirectionPath(id))
	if err != nil {
		return err
	}
	return resp.Err()
}

func (r *Repository) redirectionPath(id string) string {
	return "/email/domain/" + r.domain + "/redirection/" + url.PathEscape(id)
}
