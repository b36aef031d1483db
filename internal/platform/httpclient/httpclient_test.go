package httpclient

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostJSON_SendsHeadersAndDecodes(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1beta/models/m:generateContent", r.URL.Path)
		assert.Equal(t, "secret", r.Header.Get("X-Goog-Api-Key"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var in map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"echo": in["notes"]})
	}))
	defer ts.Close()

	c, err := New(Config{BaseURL: ts.URL + "/", Headers: map[string]string{"x-goog-api-key": "secret"}})
	require.NoError(t, err)

	var out struct {
		Echo string `json:"echo"`
	}
	err = c.PostJSON(context.Background(), "/v1beta/models/m:generateContent", map[string]string{"notes": "Dog limping"}, &out)
	require.NoError(t, err)
	assert.Equal(t, "Dog limping", out.Echo)
}

func TestPostJSON_Non2xxReturnsStatusError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/quota":
			http.Error(w, "quota exceeded", http.StatusTooManyRequests)
		case "/denied":
			http.Error(w, "API key not valid", http.StatusForbidden)
		default:
			http.Error(w, strings.Repeat("x", 4096), http.StatusInternalServerError)
		}
	}))
	defer ts.Close()

	c, err := New(Config{BaseURL: ts.URL})
	require.NoError(t, err)

	var se *StatusError

	err = c.PostJSON(context.Background(), "/quota", map[string]string{}, nil)
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusTooManyRequests, se.StatusCode)
	assert.Equal(t, "quota exceeded", se.Body)
	assert.False(t, se.Unauthorized())

	err = c.PostJSON(context.Background(), "/denied", map[string]string{}, nil)
	require.True(t, errors.As(err, &se))
	assert.True(t, se.Unauthorized())

	err = c.PostJSON(context.Background(), "/big", map[string]string{}, nil)
	require.True(t, errors.As(err, &se))
	assert.Len(t, se.Body, maxErrorBody)
}

func TestNew_RequiresValidBaseURL(t *testing.T) {
	_, err := New(Config{})
	assert.ErrorIs(t, err, ErrNoBaseURL)

	_, err = New(Config{BaseURL: "::not a url"})
	assert.Error(t, err)
}
