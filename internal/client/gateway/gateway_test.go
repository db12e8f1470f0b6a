package gateway

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dmskit/dmscli/internal/common"
	"github.com/dmskit/dmscli/internal/logging"
	"github.com/stretchr/testify/require"
)

type staticTokens struct {
	token string
}

func (s *staticTokens) Token() string { return s.token }

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func newTestGateway(t *testing.T, handler http.Handler, token string) *Gateway {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(srv.URL, 5*time.Second, &staticTokens{token: token}, testLogger())
}

func TestAttachesBearerAndRequestID(t *testing.T) {
	var gotAuth, gotReqID string
	g := newTestGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotReqID = r.Header.Get("X-Request-Id")
		_, _ = w.Write([]byte(`[]`))
	}), "tok123")

	_, err := g.ListDocuments(context.Background())
	require.NoError(t, err)
	require.Equal(t, "Bearer tok123", gotAuth)
	require.NotEmpty(t, gotReqID)
}

func TestNoTokenSendsUnauthenticated(t *testing.T) {
	var gotAuth string
	g := newTestGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`[]`))
	}), "")

	_, err := g.ListCategories(context.Background())
	require.NoError(t, err)
	require.Empty(t, gotAuth)
}

func TestServerMessageCarriedInAPIError(t *testing.T) {
	g := newTestGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"message":"title is required"}`))
	}), "tok")

	_, err := g.CreateDepartment(context.Background(), DepartmentInput{})
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusBadRequest, apiErr.Status)
	require.Equal(t, "title is required", apiErr.Message)
}

func TestGenericFallbackMessage(t *testing.T) {
	g := newTestGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}), "tok")

	_, err := g.ListUsers(context.Background())
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, "request failed with status 500", apiErr.Message)
}

func TestNotFoundMapsToSentinel(t *testing.T) {
	g := newTestGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message":"document not found"}`))
	}), "tok")

	_, err := g.GetDocument(context.Background(), "nope")
	require.ErrorIs(t, err, common.ErrorNotFound)
}

func TestUnauthorizedFiresTeardownHook(t *testing.T) {
	g := newTestGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"invalid or expired token"}`))
	}), "stale")

	var fired int
	g.OnUnauthorized(func(ctx context.Context) { fired++ })

	_, err := g.ListDocuments(context.Background())
	require.ErrorIs(t, err, common.ErrorUnauthorized)
	require.Equal(t, 1, fired)

	// The hook fires regardless of which entity kind issued the call.
	_, err = g.ListCategories(context.Background())
	require.ErrorIs(t, err, common.ErrorUnauthorized)
	require.Equal(t, 2, fired)
}

func TestTransportFailureMapsToUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()
	g := New(srv.URL, time.Second, &staticTokens{}, testLogger())

	_, err := g.ListDepartments(context.Background())
	require.ErrorIs(t, err, common.ErrorUnavailable)
}

func TestRecordWithoutIDRejected(t *testing.T) {
	g := newTestGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"name":"Eng"}]`))
	}), "tok")

	_, err := g.ListDepartments(context.Background())
	require.ErrorIs(t, err, common.ErrInvalidPayload)
}

func TestUnknownEnumRejected(t *testing.T) {
	g := newTestGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id":"d1","title":"x","type":"mystery"}`))
	}), "tok")

	_, err := g.GetDocument(context.Background(), "d1")
	require.ErrorIs(t, err, common.ErrInvalidPayload)
}

func TestUploadSendsMultipart(t *testing.T) {
	g := newTestGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/documents/d1/upload", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))

		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		require.Equal(t, "report.pdf", header.Filename)

		data, err := io.ReadAll(file)
		require.NoError(t, err)
		require.Equal(t, "pdf-bytes", string(data))

		_, _ = w.Write([]byte(`{"id":"d1","title":"x","type":"report","fileUrl":"/files/d1/report.pdf","fileName":"report.pdf","fileSize":9}`))
	}), "tok")

	doc, err := g.UploadDocumentFile(context.Background(), "d1", "report.pdf", strings.NewReader("pdf-bytes"))
	require.NoError(t, err)
	require.True(t, doc.HasFile())
	require.Equal(t, "report.pdf", doc.FileName)
}
