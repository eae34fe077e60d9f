package server

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/speedrun-hq/romanizer/pkg/config"
	"github.com/speedrun-hq/romanizer/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, apiKey string) *Server {
	t.Helper()
	cfg := &config.Config{
		Port:            "0",
		MaxRange:        100,
		ReadTimeout:     time.Second,
		WriteTimeout:    time.Second,
		ShutdownTimeout: time.Second,
		MetricsAPIKey:   apiKey,
	}
	return NewServer(cfg, &logger.EmptyLogger{})
}

func get(t *testing.T, h http.Handler, target string, header http.Header) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	for k, v := range header {
		req.Header[k] = v
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHandleConvert(t *testing.T) {
	h := newTestServer(t, "").Handler()

	tests := []struct {
		name     string
		path     string
		status   int
		expected string
	}{
		{name: "valid", path: "/roman/2499", status: http.StatusOK, expected: `{"decimal":2499,"roman":"MMCDXCIX","present":true}`},
		{name: "max", path: "/roman/3999", status: http.StatusOK, expected: `{"decimal":3999,"roman":"MMMCMXCIX","present":true}`},
		{name: "zero", path: "/roman/0", status: http.StatusNotFound, expected: `{"decimal":0,"roman":null,"present":false}`},
		{name: "above max", path: "/roman/4000", status: http.StatusNotFound, expected: `{"decimal":4000,"roman":null,"present":false}`},
		{name: "negative", path: "/roman/-7", status: http.StatusNotFound, expected: `{"decimal":-7,"roman":null,"present":false}`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := get(t, h, tc.path, nil)

			assert.Equal(t, tc.status, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			assert.JSONEq(t, tc.expected, rec.Body.String())
		})
	}

	t.Run("not a number", func(t *testing.T) {
		rec := get(t, h, "/roman/twelve", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestHandleRange(t *testing.T) {
	h := newTestServer(t, "").Handler()

	t.Run("spans domain edge", func(t *testing.T) {
		rec := get(t, h, "/roman?from=-1&to=3", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var out []struct {
			Decimal int     `json:"decimal"`
			Roman   *string `json:"roman"`
			Present bool    `json:"present"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
		require.Len(t, out, 5)

		assert.Nil(t, out[0].Roman)
		assert.Nil(t, out[1].Roman)
		assert.False(t, out[1].Present)
		require.NotNil(t, out[4].Roman)
		assert.Equal(t, "III", *out[4].Roman)
		assert.Equal(t, 3, out[4].Decimal)
	})

	t.Run("single entry", func(t *testing.T) {
		rec := get(t, h, "/roman?from=13&to=13", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `[{"decimal":13,"roman":"XIII","present":true}]`, rec.Body.String())
	})

	t.Run("max range allowed", func(t *testing.T) {
		rec := get(t, h, "/roman?from=1&to=100", nil)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	bad := []string{
		"/roman?to=5",
		"/roman?from=1",
		"/roman?from=one&to=5",
		"/roman?from=5&to=1",
		"/roman?from=1&to=101",
		fmt.Sprintf("/roman?from=%d&to=%d", -(1 << 62), 1<<62),
	}
	for _, target := range bad {
		t.Run(target, func(t *testing.T) {
			rec := get(t, h, target, nil)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestHealthAndReady(t *testing.T) {
	s := newTestServer(t, "")
	h := s.Handler()

	rec := get(t, h, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())

	rec = get(t, h, "/ready", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	s.ready.Store(true)
	rec = get(t, h, "/ready", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Ready", rec.Body.String())
}

func TestMetricsAuth(t *testing.T) {
	t.Run("open without key", func(t *testing.T) {
		rec := get(t, newTestServer(t, "").Handler(), "/metrics", nil)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	h := newTestServer(t, "secret").Handler()

	tests := []struct {
		name   string
		auth   string
		status int
	}{
		{name: "missing header", auth: "", status: http.StatusUnauthorized},
		{name: "wrong scheme", auth: "Basic secret", status: http.StatusUnauthorized},
		{name: "wrong key", auth: "Bearer nope", status: http.StatusUnauthorized},
		{name: "valid key", auth: "Bearer secret", status: http.StatusOK},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			header := http.Header{}
			if tc.auth != "" {
				header.Set("Authorization", tc.auth)
			}
			rec := get(t, h, "/metrics", header)
			assert.Equal(t, tc.status, rec.Code)
		})
	}

	t.Run("exposes conversion counters", func(t *testing.T) {
		_ = get(t, h, "/roman/5", nil)

		header := http.Header{}
		header.Set("Authorization", "Bearer secret")
		rec := get(t, h, "/metrics", header)
		assert.Contains(t, rec.Body.String(), "romanizer_conversions_total")
	})
}

func TestServeShutsDownOnCancel(t *testing.T) {
	s := newTestServer(t, "")

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- s.Serve(ctx, ln)
	}()

	url := fmt.Sprintf("http://%s/roman/1000", ln.Addr())
	require.Eventually(t, func() bool {
		resp, err := http.Get(url)
		if err != nil {
			return false
		}
		defer resp.Body.Close()
		body, _ := io.ReadAll(resp.Body)
		return resp.StatusCode == http.StatusOK && string(body) == "{\"decimal\":1000,\"roman\":\"M\",\"present\":true}\n"
	}, 2*time.Second, 10*time.Millisecond)
	assert.True(t, s.ready.Load())

	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("server did not shut down")
	}
	assert.False(t, s.ready.Load())
}
