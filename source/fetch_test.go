package source

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFetcher() *Fetcher {
	f := NewFetcher()
	f.BaseDelay = time.Millisecond
	f.Logger = slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	return f
}

func TestFetcher_HTTP(t *testing.T) {
	testCases := []struct {
		description string
		statuses    []int
		expectCalls int32
		expectErr   bool
		statusCode  int
	}{
		{description: "ok", statuses: []int{200}, expectCalls: 1},
		{description: "recovers after 503 and 429", statuses: []int{503, 429, 200}, expectCalls: 3},
		{description: "client error is not retried", statuses: []int{404}, expectCalls: 1, expectErr: true, statusCode: 404},
		{description: "gives up after retries", statuses: []int{500, 500, 500, 500, 500}, expectCalls: 4, expectErr: true, statusCode: 500},
	}
	for _, testCase := range testCases {
		var calls int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			n := atomic.AddInt32(&calls, 1)
			status := testCase.statuses[int(n)-1]
			w.WriteHeader(status)
			if status == http.StatusOK {
				_, _ = w.Write([]byte(`[{"embedding":[1,2]}]`))
			}
		}))

		data, err := testFetcher().Fetch(context.Background(), server.URL+"/slides.json")
		server.Close()

		assert.Equal(t, testCase.expectCalls, atomic.LoadInt32(&calls), testCase.description)
		if testCase.expectErr {
			require.Error(t, err, testCase.description)
			assert.True(t, errors.Is(err, ErrNoData), testCase.description)
			var status *StatusError
			require.True(t, errors.As(err, &status), testCase.description)
			assert.Equal(t, testCase.statusCode, status.StatusCode, testCase.description)
			continue
		}
		require.NoError(t, err, testCase.description)
		assert.Equal(t, `[{"embedding":[1,2]}]`, string(data), testCase.description)
	}
}

func TestFetcher_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "reports.json")
	require.NoError(t, os.WriteFile(path, []byte(`[]`), 0o644))

	data, err := testFetcher().Fetch(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))

	data, err = testFetcher().Fetch(context.Background(), "file://"+path)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))

	_, err = testFetcher().Fetch(context.Background(), filepath.Join(dir, "missing.json"))
	assert.ErrorIs(t, err, ErrNoData)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestFetcher_UnsupportedScheme(t *testing.T) {
	_, err := testFetcher().Fetch(context.Background(), "ftp://example.com/x.json")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoData)
	assert.Contains(t, err.Error(), `unsupported scheme "ftp"`)
}

func TestFetcher_CancelledDuringBackoff(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	f := testFetcher()
	f.BaseDelay = time.Hour
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err := f.Fetch(ctx, server.URL)
	assert.ErrorIs(t, err, ErrNoData)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
