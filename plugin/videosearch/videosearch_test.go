package videosearch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const samplePage = `<!DOCTYPE html><html><head><title>results</title></head><body>
<script nonce="x">var ytInitialData = {"contents":{"sectionList":[
{"videoRenderer":{"videoId":"dQw4w9WgXcQ","thumbnail":{},"title":{"runs":[{"text":"Full Body HIIT Workout & Stretch"}]}}},
{"videoRenderer":{"videoId":"abcdefghijk","thumbnail":{},"title":{"runs":[{"text":"Beginner Yoga Flow"}]}}},
{"videoRenderer":{"videoId":"dQw4w9WgXcQ","thumbnail":{},"title":{"runs":[{"text":"Duplicate entry"}]}}}
]}};</script>
</body></html>`

func TestSearchParsesResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "yoga workout", r.URL.Query().Get("search_query"))
		_, _ = w.Write([]byte(samplePage))
	}))
	defer srv.Close()

	c := NewClient(WithSearchURL(srv.URL))
	videos, err := c.Search(context.Background(), "yoga workout", 5)
	require.NoError(t, err)
	// Duplicate video IDs are collapsed.
	require.Len(t, videos, 2)

	assert.Equal(t, "dQw4w9WgXcQ", videos[0].ID)
	assert.Equal(t, "Full Body HIIT Workout & Stretch", videos[0].Title)
	assert.Equal(t, "https://www.youtube.com/watch?v=dQw4w9WgXcQ", videos[0].URL)
	assert.Equal(t, "Beginner Yoga Flow", videos[1].Title)
}

func TestSearchHonorsLimit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(samplePage))
	}))
	defer srv.Close()

	c := NewClient(WithSearchURL(srv.URL))
	videos, err := c.Search(context.Background(), "yoga", 1)
	require.NoError(t, err)
	assert.Len(t, videos, 1)
}

func TestSearchNoResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html><body>nothing here</body></html>"))
	}))
	defer srv.Close()

	c := NewClient(WithSearchURL(srv.URL))
	_, err := c.Search(context.Background(), "yoga", 3)
	assert.Error(t, err)
}
