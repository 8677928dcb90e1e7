package adapters

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeArtifactsDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "openmmtools-0.23.1-py39_0.tar.bz2"), []byte("bz2"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "openmmtools-0.23.1-py39_0.conda"), []byte("conda"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0644))
	return dir
}

func TestChannelUpload(t *testing.T) {
	var mu sync.Mutex
	var paths []string
	var auths []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)
		mu.Lock()
		paths = append(paths, r.URL.Path)
		auths = append(auths, r.Header.Get("Authorization"))
		mu.Unlock()
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	adapter := NewChannelUploadAdapter(server.URL, writeArtifactsDir(t), "ci", "secret", 2, 5, 3, 10)
	require.NoError(t, adapter.Upload(context.Background(), "linux-64"))

	mu.Lock()
	defer mu.Unlock()
	sort.Strings(paths)
	require.Equal(t, []string{
		"/linux-64/openmmtools-0.23.1-py39_0.conda",
		"/linux-64/openmmtools-0.23.1-py39_0.tar.bz2",
	}, paths)
	for _, auth := range auths {
		require.NotEmpty(t, auth)
	}
}

func TestChannelUploadRetriesOnServerError(t *testing.T) {
	var mu sync.Mutex
	attempts := map[string]int{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		attempts[r.URL.Path]++
		count := attempts[r.URL.Path]
		mu.Unlock()
		if count == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	adapter := NewChannelUploadAdapter(server.URL, writeArtifactsDir(t), "", "", 1, 5, 3, 1)
	require.NoError(t, adapter.Upload(context.Background(), "linux-64"))

	mu.Lock()
	defer mu.Unlock()
	for path, count := range attempts {
		require.Equal(t, 2, count, "expected one retry for %s", path)
	}
}

func TestChannelUploadRejectedNoRetry(t *testing.T) {
	var mu sync.Mutex
	total := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		total++
		mu.Unlock()
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	adapter := NewChannelUploadAdapter(server.URL, writeArtifactsDir(t), "", "", 1, 5, 3, 1)
	err := adapter.Upload(context.Background(), "linux-64")
	require.Error(t, err)

	mu.Lock()
	defer mu.Unlock()
	require.LessOrEqual(t, total, 2)
}

func TestChannelUploadValidation(t *testing.T) {
	adapter := NewChannelUploadAdapter("", t.TempDir(), "", "", 0, 0, 0, 0)
	require.Error(t, adapter.Upload(context.Background(), "linux-64"))

	adapter = NewChannelUploadAdapter("http://example.invalid", t.TempDir(), "", "", 0, 0, 0, 0)
	require.Error(t, adapter.Upload(context.Background(), ""))
	require.Error(t, adapter.Upload(context.Background(), "linux-64"))
}

func TestChannelUploadDefaults(t *testing.T) {
	adapter := NewChannelUploadAdapter("http://example.invalid", "dir", "", "", 0, 0, 0, 0)
	require.Equal(t, defaultUploadWorkers, adapter.Workers)
	require.Equal(t, defaultUploadTimeout, adapter.Timeout)
	require.Equal(t, defaultUploadRetries, adapter.Retries)
	require.Equal(t, defaultUploadRetryDelay, adapter.RetryDelay)
}
