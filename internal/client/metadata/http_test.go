package metadata

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/metastore/internal/auth"
	"github.com/dmitrijs2005/metastore/internal/common"
	"github.com/dmitrijs2005/metastore/internal/models"
)

const testSecret = "test-secret"

func newAccessor(t *testing.T, srv *httptest.Server) *HTTPAccessor {
	t.Helper()
	return NewHTTPAccessor(srv.URL, "proj", []byte(testSecret), 5*time.Second)
}

func requireBearer(t *testing.T, r *http.Request) {
	t.Helper()
	token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	require.True(t, ok, "missing bearer token")
	project, err := auth.GetProjectFromToken(token, []byte(testSecret), time.Minute)
	require.NoError(t, err)
	require.Equal(t, "proj", project)
}

func TestHTTPAccessor_FetchOK(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requireBearer(t, r)
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/v1/projects/proj/metadata", r.URL.Path)
		_ = json.NewEncoder(w).Encode(models.Document{
			Fingerprint: "fp-1",
			Items:       []models.Item{{Key: "k", Value: "v"}},
		})
	}))
	defer srv.Close()

	doc, err := newAccessor(t, srv).Fetch(context.Background())

	require.NoError(t, err)
	require.Equal(t, "fp-1", doc.Fingerprint)
	require.Equal(t, []models.Item{{Key: "k", Value: "v"}}, doc.Items)
}

func TestHTTPAccessor_FetchMissingItemsMeansEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"fingerprint":"fp-1"}`))
	}))
	defer srv.Close()

	doc, err := newAccessor(t, srv).Fetch(context.Background())

	require.NoError(t, err)
	require.Empty(t, doc.Items)
}

func TestHTTPAccessor_FetchNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "project not found", http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := newAccessor(t, srv).Fetch(context.Background())

	require.ErrorIs(t, err, common.ErrNotFound)
}

func TestHTTPAccessor_CommitOK(t *testing.T) {
	var got models.Document
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requireBearer(t, r)
		require.Equal(t, http.MethodPut, r.Method)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"fingerprint":"fp-2"}`))
	}))
	defer srv.Close()

	doc := &models.Document{Fingerprint: "fp-1", Items: []models.Item{{Key: "k", Value: "v"}}}
	err := newAccessor(t, srv).Commit(context.Background(), doc)

	require.NoError(t, err)
	require.Equal(t, "fp-1", got.Fingerprint)
}

func TestHTTPAccessor_CommitFingerprintConflict(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, common.FingerprintMismatchMessage, http.StatusPreconditionFailed)
	}))
	defer srv.Close()

	err := newAccessor(t, srv).Commit(context.Background(), &models.Document{Fingerprint: "stale"})

	require.ErrorIs(t, err, common.ErrFingerprintMismatch)
}

func TestHTTPAccessor_ConflictRecognizedByMessageAlone(t *testing.T) {
	// a proxy rewrote the status but the body still carries the phrase
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, common.FingerprintMismatchMessage, http.StatusBadRequest)
	}))
	defer srv.Close()

	err := newAccessor(t, srv).Commit(context.Background(), &models.Document{})

	require.ErrorIs(t, err, common.ErrFingerprintMismatch)
}

func TestHTTPAccessor_CommitDuplicateKey(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, common.DuplicateKeyMessage+" k", http.StatusConflict)
	}))
	defer srv.Close()

	err := newAccessor(t, srv).Commit(context.Background(), &models.Document{})

	require.ErrorIs(t, err, common.ErrDuplicateKey)
}

func TestHTTPAccessor_Unauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "invalid token", http.StatusUnauthorized)
	}))
	defer srv.Close()

	_, err := newAccessor(t, srv).Fetch(context.Background())

	require.ErrorIs(t, err, common.ErrInvalidToken)
}

func TestHTTPAccessor_UnexpectedStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "teapot", http.StatusTeapot)
	}))
	defer srv.Close()

	err := newAccessor(t, srv).Commit(context.Background(), &models.Document{})

	require.Error(t, err)
	require.NotErrorIs(t, err, common.ErrFingerprintMismatch)
	require.ErrorContains(t, err, "418")
}

func TestHTTPAccessor_EachProjectWalksPages(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requireBearer(t, r)
		require.Equal(t, "/v1/projects", r.URL.Path)
		switch r.URL.Query().Get("pageToken") {
		case "":
			_, _ = w.Write([]byte(`{"projects":[{"name":"a"},{"name":"b"}],"nextPageToken":"b"}`))
		case "b":
			_, _ = w.Write([]byte(`{"projects":[{"name":"c"}]}`))
		default:
			t.Errorf("unexpected page token %q", r.URL.Query().Get("pageToken"))
		}
	}))
	defer srv.Close()

	var names []string
	err := newAccessor(t, srv).EachProject(context.Background(), 2, func(p Project) error {
		names = append(names, p.Name)
		return nil
	})

	require.NoError(t, err)
	require.Equal(t, []string{"a", "b", "c"}, names)
}
