package trustdeck

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDomainsGet(t *testing.T) {
	t.Parallel()

	t.Run("found", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, http.MethodGet, r.Method)
			require.Equal(t, "/api/pseudonymization/domain", r.URL.Path)
			require.Equal(t, "study-a", r.URL.Query().Get("name"))

			w.Header().Set("Content-Type", "application/json")
			fmt.Fprint(w, `{"id":7,"name":"study-a","prefix":"STA-"}`)
		}))
		defer server.Close()

		domain, err := newTestClient(t, server.URL).Domains().Get(context.Background(), "study-a")
		require.NoError(t, err)
		require.NotNil(t, domain)
		require.Equal(t, "study-a", domain.Name)
		require.Equal(t, "STA-", domain.Prefix)
		require.NotNil(t, domain.ID)
		require.Equal(t, 7, *domain.ID)
	})

	t.Run("not found is an error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer server.Close()

		domain, err := newTestClient(t, server.URL).Domains().Get(context.Background(), "missing")
		require.Nil(t, domain)

		var respErr *ResponseError
		require.ErrorAs(t, err, &respErr)
		require.True(t, respErr.NotFound())
	})
}

func TestDomainsGetAll(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/pseudonymization/experimental/domains/hierarchy", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `[{"name":"root"},{"name":"study-a","superDomainName":"root"}]`)
	}))
	defer server.Close()

	domains, err := newTestClient(t, server.URL).Domains().GetAll(context.Background())
	require.NoError(t, err)
	require.Len(t, domains, 2)
	require.Equal(t, "root", domains[0].Name)
	require.Equal(t, "root", domains[1].SuperDomainName)
}

func TestDomainsCreate(t *testing.T) {
	t.Parallel()

	t.Run("created", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, http.MethodPost, r.Method)
			require.Equal(t, "/api/pseudonymization/domain", r.URL.Path)

			var sent Domain
			require.NoError(t, json.NewDecoder(r.Body).Decode(&sent))
			require.Equal(t, "study-a", sent.Name)

			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusCreated)
			fmt.Fprint(w, `{"id":12,"name":"study-a"}`)
		}))
		defer server.Close()

		created, err := newTestClient(t, server.URL).Domains().Create(context.Background(), &Domain{Name: "study-a"})
		require.NoError(t, err)
		require.NotNil(t, created)
		require.Equal(t, 12, *created.ID)
	})

	t.Run("already present returns the stored domain", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			fmt.Fprint(w, `{"id":12,"name":"study-a","prefix":"OLD-"}`)
		}))
		defer server.Close()

		created, err := newTestClient(t, server.URL).Domains().Create(context.Background(), &Domain{Name: "study-a"})
		require.NoError(t, err)
		require.NotNil(t, created)
		require.Equal(t, "OLD-", created.Prefix)
	})

	t.Run("skipped creation is benign", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnprocessableEntity)
		}))
		defer server.Close()

		created, err := newTestClient(t, server.URL).Domains().Create(context.Background(), &Domain{Name: "study-a"})
		require.NoError(t, err)
		require.Nil(t, created)
	})

	t.Run("invalid name is an error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotAcceptable)
		}))
		defer server.Close()

		_, err := newTestClient(t, server.URL).Domains().Create(context.Background(), &Domain{Name: "bad name"})

		var respErr *ResponseError
		require.ErrorAs(t, err, &respErr)
		require.Equal(t, http.StatusNotAcceptable, respErr.Status)
	})

	t.Run("complete uses its own endpoint", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/api/pseudonymization/domain/complete", r.URL.Path)
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusCreated)
			fmt.Fprint(w, `{"name":"study-a"}`)
		}))
		defer server.Close()

		_, err := newTestClient(t, server.URL).Domains().CreateComplete(context.Background(), &Domain{Name: "study-a"})
		require.NoError(t, err)
	})
}

func TestDomainsUpdateComplete(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)
		require.Equal(t, "/api/pseudonymization/domain/complete", r.URL.Path)
		require.Equal(t, "study-a", r.URL.Query().Get("name"))
		require.Equal(t, "true", r.URL.Query().Get("recursive"))

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"name":"study-a","description":"updated"}`)
	}))
	defer server.Close()

	updated, err := newTestClient(t, server.URL).Domains().
		UpdateComplete(context.Background(), "study-a", &Domain{Description: "updated"}, true)
	require.NoError(t, err)
	require.Equal(t, "updated", updated.Description)
}

func TestDomainsDelete(t *testing.T) {
	t.Parallel()

	t.Run("deleted", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, http.MethodDelete, r.Method)
			require.Equal(t, "false", r.URL.Query().Get("recursive"))
			w.WriteHeader(http.StatusNoContent)
		}))
		defer server.Close()

		ok, err := newTestClient(t, server.URL).Domains().Delete(context.Background(), "study-a", false)
		require.NoError(t, err)
		require.True(t, ok)
	})

	t.Run("aborted deletion is benign", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		ok, err := newTestClient(t, server.URL).Domains().Delete(context.Background(), "study-a", true)
		require.NoError(t, err)
		require.False(t, ok)
	})
}

func TestDomainsUpdateSalt(t *testing.T) {
	t.Parallel()

	t.Run("updated", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/api/pseudonymization/domains/study-a/salt", r.URL.Path)
			require.Equal(t, "new-salt", r.URL.Query().Get("salt"))
			require.Equal(t, "false", r.URL.Query().Get("allowEmpty"))

			w.Header().Set("Content-Type", "application/json")
			fmt.Fprint(w, `{"name":"study-a","salt":"new-salt"}`)
		}))
		defer server.Close()

		updated, err := newTestClient(t, server.URL).Domains().
			UpdateSalt(context.Background(), "study-a", "new-salt", false)
		require.NoError(t, err)
		require.Equal(t, "new-salt", updated.Salt)
	})

	t.Run("invalid salt is an error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
		}))
		defer server.Close()

		_, err := newTestClient(t, server.URL).Domains().
			UpdateSalt(context.Background(), "study-a", "", false)

		var respErr *ResponseError
		require.ErrorAs(t, err, &respErr)
		require.Equal(t, http.StatusBadRequest, respErr.Status)
	})
}

func TestDomainsGetAttribute(t *testing.T) {
	t.Parallel()

	t.Run("extracted from the response", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/api/pseudonymization/domains/study-a/prefix", r.URL.Path)
			w.Header().Set("Content-Type", "application/json")
			fmt.Fprint(w, `{"name":"study-a","prefix":"STA-"}`)
		}))
		defer server.Close()

		value, err := newTestClient(t, server.URL).Domains().
			GetAttribute(context.Background(), "study-a", "prefix")
		require.NoError(t, err)
		require.Equal(t, "STA-", value)
	})

	t.Run("insufficient rights is benign", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
		}))
		defer server.Close()

		value, err := newTestClient(t, server.URL).Domains().
			GetAttribute(context.Background(), "study-a", "salt")
		require.NoError(t, err)
		require.Empty(t, value)
	})
}
