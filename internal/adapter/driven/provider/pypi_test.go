package provider

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPyPIFetch_FiltersByAuthor(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/search", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "author:pydev", r.URL.Query().Get("q"))
		assert.Equal(t, "application/vnd.pypi.simple.v1+json", r.Header.Get("Accept"))
		w.Write([]byte(`{"results": [{"name": "goodpkg"}, {"name": "otherpkg"}, {"name": "brokenpkg"}]}`))
	})
	mux.HandleFunc("/pypi/goodpkg/json", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"info": {
				"author": "pydev",
				"summary": "Does things. Quickly.",
				"package_url": "https://pypi.org/project/goodpkg/",
				"version": "2.1.0",
				"downloads": {"last_month": 900}
			},
			"releases": {"1.0.0": [], "2.1.0": []}
		}`))
	})
	mux.HandleFunc("/pypi/otherpkg/json", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"info": {"author": "someoneelse", "version": "0.1.0"}}`))
	})
	mux.HandleFunc("/pypi/brokenpkg/json", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	server := newTestServer(t, mux)
	adapter := NewPyPIWithBaseURL(server.URL+"/search", server.URL+"/pypi")

	projects, err := adapter.Fetch(context.Background(), testAccount("pypi", map[string]string{
		"username": "pydev",
	}))

	require.NoError(t, err)
	// otherpkg has a different author; brokenpkg's metadata call failed.
	require.Len(t, projects, 1)
	assert.Equal(t, "goodpkg", projects[0].Name)
	assert.Equal(t, "Does things.", projects[0].Description)
	assert.Equal(t, "https://pypi.org/project/goodpkg/", projects[0].URL)
	assert.Equal(t, "2.1.0", projects[0].Version)
	assert.Equal(t, 900, projects[0].Downloads)
	assert.Equal(t, "2.1.0", projects[0].UpdatedAt)
	assert.Empty(t, projects[0].CreatedAt)
	assert.Equal(t, "pypi", projects[0].Source)
}

func TestPyPIFetch_SearchFailure(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/search", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	server := newTestServer(t, mux)
	adapter := NewPyPIWithBaseURL(server.URL+"/search", server.URL+"/pypi")

	_, err := adapter.Fetch(context.Background(), testAccount("pypi", map[string]string{
		"username": "pydev",
	}))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "searching pypi packages")
}

func TestPyPIFetch_NoResults(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/search", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"results": []}`))
	})

	server := newTestServer(t, mux)
	adapter := NewPyPIWithBaseURL(server.URL+"/search", server.URL+"/pypi")

	projects, err := adapter.Fetch(context.Background(), testAccount("pypi", map[string]string{
		"username": "pydev",
	}))

	require.NoError(t, err)
	assert.Empty(t, projects)
}

func TestLatestRelease(t *testing.T) {
	assert.Equal(t, "2.1.0", latestRelease(map[string][]struct{}{
		"1.0.0": {}, "2.0.0": {}, "2.1.0": {},
	}))
	assert.Equal(t, "", latestRelease(nil))
}
