package mailredir

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sipico/ovh-api-client/internal/ovh"
	"github.com/sipico/ovh-api-client/internal/testutil/mockovh"
)

func newTestRepository(t *testing.T) (*Repository, *mockovh.Server) {
	t.Helper()

	mock := mockovh.New()
	t.Cleanup(mock.Close)

	client, err := ovh.NewClient(context.Background(), "ovh-eu", "ak", "as", "ck",
		ovh.WithBaseURL(mock.URL()))
	require.NoError(t, err)

	return NewRepository(client, "example.com"), mock
}

func TestListIDs_Filters(t *testing.T) {
	t.Parallel()

	repo, mock := newTestRepository(t)
	info := mock.AddRedirection("example.com", "info@example.com", "inbox@example.net")
	mock.AddRedirection("example.com", "sales@example.com", "inbox@example.net")
	mock.AddRedirection("example.com", "info@example.com", "archive@example.org")

	ids, err := repo.ListIDs(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, ids, 3)

	ids, err = repo.ListIDs(context.Background(), &Filter{From: "info@example.com"})
	require.NoError(t, err)
	require.Len(t, ids, 2)

	ids, err = repo.ListIDs(context.Background(), &Filter{
		From: "info@example.com",
		To:   "inbox@example.net",
	})
	require.NoError(t, err)
	require.Equal(t, []string{info}, ids)

	ids, err = repo.ListIDs(context.Background(), &Filter{From: "nobody@example.com"})
	require.NoError(t, err)
	require.Empty(t, ids)
}

func TestGet(t *testing.T) {
	t.Parallel()

	repo, mock := newTestRepository(t)
	id := mock.AddRedirection("example.com", "info@example.com", "inbox@example.net")

	redir, err := repo.Get(context.Background(), id)
	require.NoError(t, err)
	require.Equal(t, id, redir.ID)
	require.Equal(t, id+": info@example.com -> inbox@example.net", redir.String())
}

func TestGet_NotFound(t *testing.T) {
	t.Parallel()

	repo, _ := newTestRepository(t)

	redir, err := repo.Get(context.Background(), "missing-id")
	require.Nil(t, redir)

	var apiErr *ovh.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusNotFound, apiErr.StatusCode)
}

func TestList(t *testing.T) {
	t.Parallel()

	repo, mock := newTestRepository(t)
	mock.AddRedirection("example.com", "info@example.com", "inbox@example.net")
	mock.AddRedirection("example.com", "sales@example.com", "inbox@example.net")

	redirs, err := repo.List(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, redirs, 2)

	froms := []string{redirs[0].From, redirs[1].From}
	require.ElementsMatch(t, []string{"info@example.com", "sales@example.com"}, froms)
}

func TestCreate_ReturnsTaskBody(t *testing.T) {
	t.Parallel()

	repo, mock := newTestRepository(t)

	body, err := repo.Create(context.Background(), &CreateRequest{
		From:      "info@example.com",
		To:        "inbox@example.net",
		LocalCopy: false,
	})
	require.NoError(t, err)
	require.Contains(t, string(body), "redirection/create")
	require.Equal(t, 1, mock.RedirectionCount("example.com"))
}

func TestCreate_MissingFields(t *testing.T) {
	t.Parallel()

	repo, mock := newTestRepository(t)

	body, err := repo.Create(context.Background(), &CreateRequest{From: "info@example.com"})
	require.Nil(t, body)

	var apiErr *ovh.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	require.Equal(t, 0, mock.RedirectionCount("example.com"))
}

func TestDelete(t *testing.T) {
	t.Parallel()

	repo, mock := newTestRepository(t)
	id := mock.AddRedirection("example.com", "info@example.com", "inbox@example.net")

	require.NoError(t, repo.Delete(context.Background(), id))
	require.Equal(t, 0, mock.RedirectionCount("example.com"))
}

func TestDelete_NotFound(t *testing.T) {
	t.Parallel()

	repo, _ := newTestRepository(t)

	err := repo.Delete(context.Background(), "missing-id")

	var apiErr *ovh.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusNotFound, apiErr.StatusCode)
}
