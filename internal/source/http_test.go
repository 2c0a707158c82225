package source

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenHTTP(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		_, _ = w.Write([]byte("archive bytes"))
	}))
	defer server.Close()

	stream, err := OpenHTTP(t.Context(), server.URL+"/release.tar.gz")
	require.NoError(t, err)
	defer func() { require.NoError(t, stream.Close()) }()

	content, err := io.ReadAll(stream)
	require.NoError(t, err)
	assert.Equal(t, "archive bytes", string(content))
}

func TestOpenHTTP_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	_, err := OpenHTTP(t.Context(), server.URL+"/missing.tar.gz")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}
