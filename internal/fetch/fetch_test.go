package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSON_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "hello", r.URL.Query().Get("text"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"pages": 3, "found": 42}`))
	}))
	defer server.Close()

	params := url.Values{}
	params.Set("text", "hello")

	var out struct {
		Pages int `json:"pages"`
		Found int `json:"found"`
	}
	status, err := JSON(context.Background(), server.URL, params, &out, nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, 3, out.Pages)
	assert.Equal(t, 42, out.Found)
}

func TestJSON_InvalidURL(t *testing.T) {
	var out any
	_, err := JSON(context.Background(), "not-a-valid-url", nil, &out, nil)
	require.Error(t, err)

	var fetchErr *Error
	assert.ErrorAs(t, err, &fetchErr)
	assert.Contains(t, err.Error(), "invalid URL")
}

func TestJSON_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	var out any
	status, err := JSON(context.Background(), server.URL, nil, &out, nil)
	require.Error(t, err)
	assert.Equal(t, http.StatusBadGateway, status)

	var fetchErr *Error
	assert.ErrorAs(t, err, &fetchErr)
	assert.Contains(t, err.Error(), "502")
}

func TestJSON_MalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"pages": `))
	}))
	defer server.Close()

	var out struct{ Pages int }
	status, err := JSON(context.Background(), server.URL, nil, &out, nil)
	require.Error(t, err)
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, err.Error(), "decode JSON")
}

func TestJSON_SetsUserAgent(t *testing.T) {
	var gotUA string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	var out any
	_, err := JSON(context.Background(), server.URL, nil, &out, nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultUserAgent, gotUA)
}
