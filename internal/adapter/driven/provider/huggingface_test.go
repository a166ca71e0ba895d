package provider

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devfoliohq/devfolio/internal/domain/port/driven"
)

func TestHuggingFaceFetch_MapsModels(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/models", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "hfdev", r.URL.Query().Get("author"))
		assert.Equal(t, "Bearer hf_test123", r.Header.Get("Authorization"))
		w.Write([]byte(`[
			{
				"modelId": "hfdev/text-summarizer",
				"pipeline_tag": "summarization",
				"downloads": 1200,
				"likes": 34,
				"lastModified": "2024-04-10T09:00:00.000Z"
			},
			{"modelId": ""}
		]`))
	})

	server := newTestServer(t, mux)
	adapter := NewHuggingFaceWithBaseURL(server.URL)

	projects, err := adapter.Fetch(context.Background(), testAccount("huggingface", map[string]string{
		"username": "hfdev",
		"token":    "hf_test123",
	}))

	require.NoError(t, err)
	require.Len(t, projects, 1)
	assert.Equal(t, "text-summarizer", projects[0].Name)
	assert.Equal(t, "hfdev/text-summarizer", projects[0].FullName)
	assert.Equal(t, "summarization", projects[0].Description)
	assert.Equal(t, "https://huggingface.co/hfdev/text-summarizer", projects[0].URL)
	assert.Equal(t, 1200, projects[0].Downloads)
	assert.Equal(t, 34, projects[0].Likes)
	assert.Equal(t, "2024-04-10T09:00:00.000Z", projects[0].UpdatedAt)
	assert.Empty(t, projects[0].CreatedAt)
	assert.Equal(t, "huggingface", projects[0].Source)
}

func TestHuggingFaceFetch_NoTokenNoAuthHeader(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/models", func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		w.Write([]byte(`[]`))
	})

	server := newTestServer(t, mux)
	adapter := NewHuggingFaceWithBaseURL(server.URL)

	projects, err := adapter.Fetch(context.Background(), testAccount("huggingface", map[string]string{
		"username": "hfdev",
	}))

	require.NoError(t, err)
	assert.Empty(t, projects)
}

func TestHuggingFaceFetch_Forbidden(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/models", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})

	server := newTestServer(t, mux)
	adapter := NewHuggingFaceWithBaseURL(server.URL)

	_, err := adapter.Fetch(context.Background(), testAccount("huggingface", map[string]string{
		"username": "hfdev",
		"token":    "hf_bad",
	}))

	require.ErrorIs(t, err, driven.ErrForbidden)
}
