package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bernd/codexbar/config"
	"github.com/bernd/codexbar/provider"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient(t *testing.T) *Client {
	t.Helper()
	cfg, err := config.Load("/nonexistent/config.yaml")
	require.NoError(t, err)
	return New(cfg, false)
}

func TestFetchWeb(t *testing.T) {
	t.Run("decodes the dashboard payload", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "application/json", r.Header.Get("Accept"))
			w.Write([]byte(`{"primary": {"usedPercent": 30}, "secondary": {"usedPercent": 55}}`))
		}))
		defer server.Close()

		info := provider.Info{ID: provider.Cursor, UsageURL: server.URL}
		payloads, err := testClient(t).fetchWeb(context.Background(), info, time.Minute)
		require.NoError(t, err)
		require.Len(t, payloads, 1)
		assert.Equal(t, "web", payloads[0].Source)
		assert.Equal(t, 30.0, payloads[0].Usage.Primary.UsedPercent)
		assert.Equal(t, 55.0, payloads[0].Usage.Secondary.UsedPercent)
	})

	t.Run("timeout surfaces as an error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(500 * time.Millisecond)
			w.Write([]byte(`{}`))
		}))
		defer server.Close()

		info := provider.Info{ID: provider.Cursor, UsageURL: server.URL}
		_, err := testClient(t).fetchWeb(context.Background(), info, 50*time.Millisecond)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "timed out")
	})

	t.Run("non-200 surfaces as an error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "nope", http.StatusForbidden)
		}))
		defer server.Close()

		info := provider.Info{ID: provider.Cursor, UsageURL: server.URL}
		_, err := testClient(t).fetchWeb(context.Background(), info, time.Minute)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "403")
	})

	t.Run("no endpoint is an error", func(t *testing.T) {
		info := provider.Info{ID: provider.Kiro}
		_, err := testClient(t).fetchWeb(context.Background(), info, time.Minute)
		assert.Error(t, err)
	})
}

func TestFetchAPI(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		w.Write([]byte(`{"primary": {"usedPercent": 10}}`))
	}))
	defer server.Close()

	t.Run("uses the env API key", func(t *testing.T) {
		t.Setenv("CODEXBAR_TEST_KEY", "sk-test")
		info := provider.Info{ID: provider.ZAI, APIKeyEnv: "CODEXBAR_TEST_KEY", UsageURL: server.URL}
		payloads, err := testClient(t).fetchAPI(context.Background(), info)
		require.NoError(t, err)
		require.Len(t, payloads, 1)
		assert.Equal(t, "api", payloads[0].Source)
	})

	t.Run("unset env key is an error", func(t *testing.T) {
		t.Setenv("CODEXBAR_TEST_KEY", "")
		info := provider.Info{ID: provider.ZAI, APIKeyEnv: "CODEXBAR_TEST_KEY", UsageURL: server.URL}
		_, err := testClient(t).fetchAPI(context.Background(), info)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "CODEXBAR_TEST_KEY")
	})
}
