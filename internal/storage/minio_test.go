package storage

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bulkscan/internal/config"
)

// fakeS3 answers just enough of the S3 API for the evidence-store paths:
// bucket existence, object stat, and object get.
func fakeS3(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Has("location") {
			w.Header().Set("Content-Type", "application/xml")
			w.Write([]byte(`<LocationConstraint xmlns="http://s3.amazonaws.com/doc/2006-03-01/"></LocationConstraint>`))
			return
		}

		switch {
		case strings.TrimSuffix(r.URL.Path, "/") == "/evidence":
			w.WriteHeader(http.StatusOK)
		case r.URL.Path == "/evidence/present.pdf":
			w.Header().Set("Content-Length", "10")
			w.Header().Set("Content-Type", "application/pdf")
			w.Header().Set("Last-Modified", time.Now().UTC().Format(http.TimeFormat))
			w.Header().Set("ETag", `"d41d8cd98f00b204e9800998ecf8427e"`)
			if r.Method == http.MethodGet {
				w.Write([]byte("0123456789"))
			}
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
}

func newTestStore(t *testing.T, srv *httptest.Server) EvidenceStore {
	t.Helper()
	store, err := NewMinIO(config.MinIOConfig{
		Endpoint:  strings.TrimPrefix(srv.URL, "http://"),
		AccessKey: "evidence",
		SecretKey: "evidence-secret",
		Bucket:    "evidence",
	})
	require.NoError(t, err)
	return store
}

func TestMinIOPresignDownload(t *testing.T) {
	srv := fakeS3(t)
	defer srv.Close()
	store := newTestStore(t, srv)

	t.Run("existing key is signed", func(t *testing.T) {
		url, err := store.PresignDownload(context.Background(), "present.pdf", time.Minute)
		require.NoError(t, err)
		assert.Contains(t, url, "/evidence/present.pdf")
		assert.Contains(t, url, "X-Amz-Signature")
	})

	t.Run("missing key is not signed", func(t *testing.T) {
		url, err := store.PresignDownload(context.Background(), "definitely-missing.pdf", time.Minute)
		require.Error(t, err)
		assert.True(t, IsNotFound(err))
		assert.Empty(t, url)
	})
}

func TestMinIOFetch(t *testing.T) {
	srv := fakeS3(t)
	defer srv.Close()
	store := newTestStore(t, srv)

	t.Run("existing key streams", func(t *testing.T) {
		body, info, err := store.Fetch(context.Background(), "present.pdf")
		require.NoError(t, err)
		defer body.Close()
		assert.Equal(t, int64(10), info.Size)
		assert.Equal(t, "application/pdf", info.ContentType)
	})

	t.Run("missing key maps to not found", func(t *testing.T) {
		_, _, err := store.Fetch(context.Background(), "definitely-missing.pdf")
		require.Error(t, err)
		assert.True(t, IsNotFound(err))
	})
}
