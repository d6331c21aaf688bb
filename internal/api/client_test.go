package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zenfolio/internal/models"
	"zenfolio/internal/portfolio"
)

const listing = `{
  "projects": [
    {
      "id": "prj_1",
      "name": "my-app",
      "framework": "vite",
      "updatedAt": 1769925084923,
      "targets": {"production": {"url": "my-app-a8x9k2p1-team.vercel.app", "alias": ["my-app.vercel.app"], "readyState": "READY"}},
      "alias": [{"domain": "myapp.com"}, "my-app-team.vercel.app", 42],
      "latestDeployments": [{"url": "my-app-git-main-team.vercel.app", "readyState": "BUILDING", "alias": ["x", null]}]
    },
    {"id": "prj_2", "name": "bare", "framework": null, "updatedAt": "yesterday"},
    "not an object"
  ],
  "pagination": {"count": 2, "next": null, "prev": 1700000000000}
}`

func newTestServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func TestListProjectsSendsTokenAndLimit(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/v9/projects", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		assert.Equal(t, "25", r.URL.Query().Get("limit"))
		assert.Equal(t, "team_x", r.URL.Query().Get("teamId"))
		fmt.Fprint(w, listing)
	})

	c := NewClient(srv.URL, nil, WithToken("secret"))
	page, err := c.ListProjects(context.Background(), ListOptions{Limit: 25, TeamID: "team_x"})
	require.NoError(t, err)
	require.Len(t, page.Projects, 2)

	first := page.Projects[0]
	assert.Equal(t, "prj_1", first.ID)
	require.NotNil(t, first.Framework)
	assert.Equal(t, "vite", *first.Framework)
	require.NotNil(t, first.UpdatedAt)
	assert.Equal(t, float64(1769925084923), *first.UpdatedAt)
	require.NotNil(t, first.Production())
	assert.Equal(t, "READY", first.Production().ReadyState)
	assert.Equal(t, []string{"my-app-team.vercel.app"}, first.Alias)
	require.Len(t, first.LatestDeployments, 1)
	assert.Equal(t, []string{"x"}, first.LatestDeployments[0].Alias)

	second := page.Projects[1]
	assert.Nil(t, second.Framework)
	assert.Nil(t, second.UpdatedAt)
	assert.Nil(t, second.Targets)

	assert.Equal(t, 2, page.Pagination.Count)
	assert.Nil(t, page.Pagination.Next)
	require.NotNil(t, page.Pagination.Prev)
}

func TestListProjectsDefaultLimit(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "100", r.URL.Query().Get("limit"))
		assert.Empty(t, r.URL.Query().Get("teamId"))
		fmt.Fprint(w, `{"projects": []}`)
	})

	page, err := NewClient(srv.URL, nil, WithToken("t")).ListProjects(context.Background(), ListOptions{})
	require.NoError(t, err)
	assert.Empty(t, page.Projects)
}

func TestListProjectsMissingOrInvalidProjectsKey(t *testing.T) {
	t.Parallel()

	for _, body := range []string{`{}`, `{"projects": null}`, `{"projects": {"a": 1}}`, `[]`} {
		srv := newTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
			fmt.Fprint(w, body)
		})
		page, err := NewClient(srv.URL, nil, WithToken("t")).ListProjects(context.Background(), ListOptions{})
		require.NoError(t, err, body)
		assert.NotNil(t, page.Projects, body)
		assert.Empty(t, page.Projects, body)
	}
}

func TestListProjectsMalformedBody(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `<html>oops</html>`)
	})
	_, err := NewClient(srv.URL, nil, WithToken("t")).ListProjects(context.Background(), ListOptions{})
	assert.ErrorIs(t, err, models.ErrMalformedResponse)
}

func TestListProjectsAuthenticationErrors(t *testing.T) {
	t.Parallel()

	for _, status := range []int{http.StatusUnauthorized, http.StatusForbidden} {
		srv := newTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(status)
		})

		_, err := NewClient(srv.URL, nil, WithToken("expired")).ListProjects(context.Background(), ListOptions{})
		require.Error(t, err)

		var authErr *models.AuthenticationError
		require.True(t, errors.As(err, &authErr), "status %d", status)
		assert.Equal(t, status, authErr.StatusCode)
		assert.Equal(t, "Invalid Token", err.Error())

		var reqErr *models.RequestError
		assert.False(t, errors.As(err, &reqErr))
	}
}

func TestListProjectsRequestError(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})

	_, err := NewClient(srv.URL, nil, WithToken("t")).ListProjects(context.Background(), ListOptions{})
	var reqErr *models.RequestError
	require.True(t, errors.As(err, &reqErr))
	assert.Equal(t, http.StatusTooManyRequests, reqErr.StatusCode)
	assert.Equal(t, "Too Many Requests", reqErr.StatusText)
}

func TestListProjectsNetworkError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := NewClient(url, nil, WithToken("t")).ListProjects(context.Background(), ListOptions{})
	var netErr *models.NetworkError
	require.True(t, errors.As(err, &netErr))
	assert.NotNil(t, errors.Unwrap(err))
}

func TestListProjectsCancelledContext(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"projects": []}`)
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewClient(srv.URL, nil, WithToken("t")).ListProjects(ctx, ListOptions{})
	var netErr *models.NetworkError
	require.True(t, errors.As(err, &netErr))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestListProjectsWithoutToken(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := newTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
	})

	store := models.NewTokenStore(t.TempDir())
	_, err := NewClient(srv.URL, store).ListProjects(context.Background(), ListOptions{})
	assert.ErrorIs(t, err, models.ErrNotLoggedIn)
	assert.Zero(t, calls.Load())
}

func TestListAllProjectsFollowsPagination(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		switch r.URL.Query().Get("until") {
		case "":
			fmt.Fprint(w, `{"projects":[{"id":"a","name":"a","updatedAt":1}],"pagination":{"count":1,"next":500,"prev":null}}`)
		case "500":
			fmt.Fprint(w, `{"projects":[{"id":"b","name":"b","updatedAt":2}],"pagination":{"count":1,"next":null,"prev":500}}`)
		default:
			t.Errorf("unexpected until %q", r.URL.Query().Get("until"))
		}
	})

	all, err := NewClient(srv.URL, nil, WithToken("t")).ListAllProjects(context.Background(), ListOptions{Limit: 1})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "a", all[0].ID)
	assert.Equal(t, "b", all[1].ID)
	assert.Equal(t, int32(2), calls.Load())
}

func TestListAllProjectsRespectsMaxPages(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := newTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
		n := calls.Add(1)
		fmt.Fprintf(w, `{"projects":[{"id":"p%d","name":"p","updatedAt":1}],"pagination":{"next":%d}}`, n, 1000-n)
	})

	all, err := NewClient(srv.URL, nil, WithToken("t")).ListAllProjects(context.Background(), ListOptions{MaxPages: 3})
	require.NoError(t, err)
	assert.Len(t, all, 3)
	assert.Equal(t, int32(3), calls.Load())
}

func TestLoginStoresVerifiedToken(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer good" {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		assert.Equal(t, "1", r.URL.Query().Get("limit"))
		fmt.Fprint(w, `{"projects": []}`)
	})

	dir := t.TempDir()
	store := models.NewTokenStore(dir)
	c := NewClient(srv.URL, store)

	err := c.Login(context.Background(), "bad")
	var authErr *models.AuthenticationError
	require.True(t, errors.As(err, &authErr))
	_, err = store.GetToken()
	assert.ErrorIs(t, err, models.ErrNotLoggedIn)

	require.ErrorIs(t, c.Login(context.Background(), "   "), models.ErrEmptyToken)

	require.NoError(t, c.Login(context.Background(), "  good\n"))
	token, err := store.GetToken()
	require.NoError(t, err)
	assert.Equal(t, "good", token)
	assert.FileExists(t, filepath.Join(dir, ".auth_token"))

	require.NoError(t, c.Logout())
	assert.Empty(t, c.AuthToken)
	_, err = store.GetToken()
	assert.ErrorIs(t, err, models.ErrNotLoggedIn)
}

func TestGetUser(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v2/user", r.URL.Path)
		fmt.Fprint(w, `{"user": {"id": "u1", "username": "vici", "email": "vici@example.com"}}`)
	})

	user, err := NewClient(srv.URL, nil, WithToken("t")).GetUser(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "vici", user.Username)
	assert.Equal(t, "vici@example.com", user.Email)
}

func TestNewClientDefaults(t *testing.T) {
	t.Parallel()

	c := NewClient("  ", nil)
	assert.Equal(t, DefaultBaseURL, c.BaseURL)
	assert.Empty(t, c.AuthToken)

	c = NewClient("https://example.test/", nil)
	assert.Equal(t, "https://example.test", c.BaseURL)
}

func TestTimeoutLeavesSharedClientAlone(t *testing.T) {
	t.Parallel()

	shared := &http.Client{}
	c := NewClient("https://example.test", nil, WithHTTPClient(shared), WithTimeout(3*time.Second))
	assert.Zero(t, shared.Timeout)
	assert.Equal(t, 3*time.Second, c.client.Timeout)

	c = NewClient("https://example.test", nil, WithTimeout(3*time.Second), WithHTTPClient(shared))
	assert.Zero(t, shared.Timeout)
	assert.Equal(t, 3*time.Second, c.client.Timeout)
}

func TestDecodeSkipsDomainObjectAliases(t *testing.T) {
	t.Parallel()

	page, err := decodeProjectsPage([]byte(`{"projects": [{
		"id": "prj_1",
		"name": "my-app",
		"updatedAt": 1769925084923,
		"targets": {"production": {"alias": ["my-app.vercel.app"], "readyState": "READY"}},
		"alias": [{"domain": "myapp-staging.example.com"}]
	}]}`))
	require.NoError(t, err)
	require.Len(t, page.Projects, 1)

	raw := page.Projects[0]
	assert.Empty(t, raw.Alias)
	assert.Equal(t, "https://my-app.vercel.app", portfolio.SelectBestURL(&raw))
}
