package provider

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devfoliohq/devfolio/internal/domain/port/driven"
)

func TestPackagistFetch_MapsPackages(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/users/phpdev/packages.json", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"packageNames": ["phpdev/router", "phpdev/broken"]}`))
	})
	mux.HandleFunc("/packages/phpdev/router.json", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"package": {
				"description": "A fast router. For PHP.",
				"repository": "https://github.com/phpdev/router",
				"favers": 88,
				"keywords": ["router", "http"],
				"downloads": {"total": 150000},
				"versions": {
					"1.0.0": {"time": "2022-01-01T00:00:00+00:00", "license": ["MIT"]},
					"2.0.0": {"time": "2024-05-01T00:00:00+00:00", "license": ["MIT"]}
				}
			}
		}`))
	})
	mux.HandleFunc("/packages/phpdev/broken.json", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	server := newTestServer(t, mux)
	adapter := NewPackagistWithBaseURL(server.URL)

	projects, err := adapter.Fetch(context.Background(), testAccount("packagist", map[string]string{
		"username": "phpdev",
	}))

	require.NoError(t, err)
	// The broken package is skipped, not fatal.
	require.Len(t, projects, 1)

	assert.Equal(t, "router", projects[0].Name)
	assert.Equal(t, "phpdev/router", projects[0].FullName)
	assert.Equal(t, "A fast router.", projects[0].Description)
	assert.Equal(t, "https://packagist.org/packages/phpdev/router", projects[0].URL)
	require.NotNil(t, projects[0].Language)
	assert.Equal(t, "PHP", *projects[0].Language)
	assert.Equal(t, 150000, projects[0].Downloads)
	assert.Equal(t, 88, projects[0].Favers)
	// The newest release by time wins.
	assert.Equal(t, "2.0.0", projects[0].Version)
	assert.Equal(t, "2024-05-01T00:00:00+00:00", projects[0].UpdatedAt)
	assert.Equal(t, []string{"router", "http"}, projects[0].Topics)
	assert.Equal(t, []string{"MIT"}, projects[0].License)
	assert.Equal(t, "https://github.com/phpdev/router", projects[0].RepositoryURL)
	assert.Equal(t, "packagist", projects[0].Source)
}

func TestPackagistFetch_RepositoryFallsBackToSourceURL(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/users/phpdev/packages.json", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"packageNames": ["phpdev/lib"]}`))
	})
	mux.HandleFunc("/packages/phpdev/lib.json", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"package": {
				"versions": {
					"1.0.0": {"time": "2023-01-01T00:00:00+00:00", "source": {"url": "https://github.com/phpdev/lib.git"}}
				}
			}
		}`))
	})

	server := newTestServer(t, mux)
	adapter := NewPackagistWithBaseURL(server.URL)

	projects, err := adapter.Fetch(context.Background(), testAccount("packagist", map[string]string{
		"username": "phpdev",
	}))

	require.NoError(t, err)
	require.Len(t, projects, 1)
	assert.Equal(t, "https://github.com/phpdev/lib.git", projects[0].RepositoryURL)
}

func TestPackagistFetch_UnknownUser(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/users/ghost/packages.json", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	server := newTestServer(t, mux)
	adapter := NewPackagistWithBaseURL(server.URL)

	_, err := adapter.Fetch(context.Background(), testAccount("packagist", map[string]string{
		"username": "ghost",
	}))

	require.ErrorIs(t, err, driven.ErrNotFound)
}

func TestFirstVersion_PicksNewestByTime(t *testing.T) {
	key, v := firstVersion(map[string]packagistVersion{
		"1.0.0":      {Time: "2022-01-01T00:00:00+00:00"},
		"2.0.0":      {Time: "2024-05-01T00:00:00+00:00"},
		"dev-master": {Time: "2023-06-01T00:00:00+00:00"},
	})

	assert.Equal(t, "2.0.0", key)
	assert.Equal(t, "2024-05-01T00:00:00+00:00", v.Time)
}

func TestFirstVersion_Empty(t *testing.T) {
	key, v := firstVersion(nil)

	assert.Empty(t, key)
	assert.Empty(t, v.Time)
}
