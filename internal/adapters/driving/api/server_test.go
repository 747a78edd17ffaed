package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/custodia-labs/kgingest/internal/adapters/driven/fetcher"
	"github.com/custodia-labs/kgingest/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/kgingest/internal/core/domain"
	"github.com/custodia-labs/kgingest/internal/core/services"
	"github.com/custodia-labs/kgingest/internal/metrics"
	"github.com/custodia-labs/kgingest/internal/processors"
)

type testEnv struct {
	handler http.Handler
	docs    *services.DocumentService
}

func newTestEnv(t *testing.T, opts ...Option) *testEnv {
	t.Helper()
	docs := services.NewDocumentService(memory.NewDocumentStore())
	ingest := services.NewIngestService(
		processors.NewDefaultRegistry(),
		fetcher.New(fetcher.Config{}),
		docs,
	)
	srv, err := NewServer(Ports{Ingest: ingest, Document: docs}, opts...)
	require.NoError(t, err)
	return &testEnv{handler: srv.Handler(), docs: docs}
}

func (e *testEnv) do(t *testing.T, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	rr := httptest.NewRecorder()
	e.handler.ServeHTTP(rr, req)
	return rr
}

func multipartRequest(t *testing.T, filename, contentType, content string) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="file"; filename="`+filename+`"`)
	if contentType != "" {
		h.Set("Content-Type", contentType)
	}
	part, err := mw.CreatePart(h)
	require.NoError(t, err)
	_, err = io.WriteString(part, content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/data/documents", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func jsonRequest(method, path, body string) *http.Request {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &v))
	return v
}

func TestNewServer_RequiresIngest(t *testing.T) {
	_, err := NewServer(Ports{})
	assert.ErrorIs(t, err, ErrMissingIngestService)
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t)

	rr := env.do(t, httptest.NewRequest(http.MethodGet, "/healthz", http.NoBody))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rr.Body.String())
	assert.NotEmpty(t, rr.Header().Get("X-Request-ID"))
}

func TestUpload(t *testing.T) {
	env := newTestEnv(t)

	rr := env.do(t, multipartRequest(t, "guide.md", "", "# Guide\nrun `make`"))

	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	resp := decode[ingestResponse](t, rr)
	require.NotNil(t, resp.Document)
	assert.Equal(t, "guide.md", resp.Document.Name)
	assert.Equal(t, "text/markdown", resp.Document.Type)
	assert.Equal(t, domain.StatusCompleted, resp.Document.Status)
	assert.Equal(t, []domain.Entity{
		{Name: "Guide", Type: domain.EntityTypeHeading},
		{Name: "make", Type: domain.EntityTypeCode},
	}, resp.Document.Entities)
	require.NotNil(t, resp.Processed)
	assert.Equal(t, domain.DocumentTypeMarkdown, resp.Processed.Type)

	docs, err := env.docs.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, docs, 1)
}

func TestUpload_ProcessingErrorIsStored(t *testing.T) {
	env := newTestEnv(t)

	rr := env.do(t, multipartRequest(t, "broken.json", "application/json", `{"a":`))

	require.Equal(t, http.StatusCreated, rr.Code)
	resp := decode[ingestResponse](t, rr)
	assert.Equal(t, domain.StatusError, resp.Document.Status)
	assert.Equal(t, domain.StatusError, resp.Processed.Status)
	assert.NotEmpty(t, resp.Processed.Error)
}

func TestUpload_Validation(t *testing.T) {
	t.Run("unsupported type rejected", func(t *testing.T) {
		env := newTestEnv(t)

		rr := env.do(t, multipartRequest(t, "deck.pptx", "application/octet-stream", "x"))

		assert.Equal(t, http.StatusUnsupportedMediaType, rr.Code)
		assert.Equal(t, codeUnsupportedType, decode[errorResponse](t, rr).Code)
		docs, _ := env.docs.List(context.Background())
		assert.Empty(t, docs)
	})

	t.Run("allowed by declared mime", func(t *testing.T) {
		env := newTestEnv(t)

		rr := env.do(t, multipartRequest(t, "notes", "text/plain", "hello"))

		assert.Equal(t, http.StatusCreated, rr.Code)
	})

	t.Run("validation disabled", func(t *testing.T) {
		env := newTestEnv(t, WithUploadValidation(false))

		rr := env.do(t, multipartRequest(t, "deck.pptx", "", "slide"))

		require.Equal(t, http.StatusCreated, rr.Code)
		assert.Equal(t, domain.DocumentTypePPT, decode[ingestResponse](t, rr).Processed.Type)
	})
}

func TestUpload_BadRequests(t *testing.T) {
	env := newTestEnv(t)

	rr := env.do(t, jsonRequest(http.MethodPost, "/api/data/documents", `{}`))
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	require.NoError(t, mw.WriteField("other", "x"))
	require.NoError(t, mw.Close())
	req := httptest.NewRequest(http.MethodPost, "/api/data/documents", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	rr = env.do(t, req)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, decode[errorResponse](t, rr).Message, "missing file")
}

func TestIngestURL(t *testing.T) {
	origin := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/ld+json")
		_, _ = io.WriteString(w, `{"item":{"@type":"Thing","@id":"t1"}}`)
	}))
	defer origin.Close()

	env := newTestEnv(t)

	rr := env.do(t, jsonRequest(http.MethodPost, "/api/data/documents/url", `{"url":"`+origin.URL+`/x"}`))

	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	resp := decode[ingestResponse](t, rr)
	assert.Equal(t, "url", resp.Document.Type)
	assert.Equal(t, "127.0.0.1", resp.Document.Name)
	assert.Equal(t, origin.URL+"/x", resp.Document.URL)
	assert.Equal(t, []domain.Entity{{Name: "t1", Type: "Thing"}}, resp.Document.Entities)
}

func TestIngestURL_Errors(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name string
		body string
		code int
	}{
		{"invalid json", `{`, http.StatusBadRequest},
		{"missing url", `{"url":""}`, http.StatusBadRequest},
		{"relative url", `{"url":"example.com/a"}`, http.StatusBadRequest},
		{"unreachable", `{"url":"http://127.0.0.1:1/"}`, http.StatusBadGateway},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := env.do(t, jsonRequest(http.MethodPost, "/api/data/documents/url", tt.body))
			assert.Equal(t, tt.code, rr.Code, rr.Body.String())
		})
	}
}

func TestDocuments_ListGetDelete(t *testing.T) {
	env := newTestEnv(t)

	rr := env.do(t, httptest.NewRequest(http.MethodGet, "/api/data/documents", http.NoBody))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"documents":[]}`, rr.Body.String())

	created := decode[ingestResponse](t, env.do(t, multipartRequest(t, "a.csv", "", "h1,h2\n1,2\n")))
	id := created.Document.ID

	rr = env.do(t, httptest.NewRequest(http.MethodGet, "/api/data/documents", http.NoBody))
	list := decode[struct {
		Documents []domain.Document `json:"documents"`
	}](t, rr)
	require.Len(t, list.Documents, 1)
	assert.Equal(t, id, list.Documents[0].ID)

	rr = env.do(t, httptest.NewRequest(http.MethodGet, "/api/data/documents/"+id, http.NoBody))
	require.Equal(t, http.StatusOK, rr.Code)
	doc := decode[domain.Document](t, rr)
	assert.Contains(t, doc.Content, "| h1 | h2 |")

	rr = env.do(t, httptest.NewRequest(http.MethodDelete, "/api/data/documents/"+id, http.NoBody))
	assert.Equal(t, http.StatusNoContent, rr.Code)

	rr = env.do(t, httptest.NewRequest(http.MethodGet, "/api/data/documents/"+id, http.NoBody))
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, codeNotFound, decode[errorResponse](t, rr).Code)

	rr = env.do(t, httptest.NewRequest(http.MethodDelete, "/api/data/documents/"+id, http.NoBody))
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestDocuments_NoDocumentService(t *testing.T) {
	srv, err := NewServer(Ports{Ingest: services.NewIngestService(nil, nil, nil)})
	require.NoError(t, err)

	rr := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/data/documents", http.NoBody))

	assert.Equal(t, http.StatusNotImplemented, rr.Code)
}

func TestDetect(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name   string
		body   string
		want   domain.DocumentType
		jsonLD bool
	}{
		{"markdown", `{"filename":"a.md"}`, domain.DocumentTypeMarkdown, false},
		{"plain json", `{"filename":"a.json","content":"{}"}`, domain.DocumentTypeJSON, false},
		{"json-ld", `{"filename":"a.json","content":"{\"@type\":\"X\"}"}`, domain.DocumentTypeJSONLD, true},
		{"fallback", `{"filename":"README"}`, domain.DocumentTypeText, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := env.do(t, jsonRequest(http.MethodPost, "/api/detect", tt.body))
			require.Equal(t, http.StatusOK, rr.Code)
			resp := decode[detectResponse](t, rr)
			assert.Equal(t, tt.want, resp.Type)
			assert.Equal(t, tt.jsonLD, resp.JSONLD)
		})
	}

	rr := env.do(t, jsonRequest(http.MethodPost, "/api/detect", `{"content":"x"}`))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	m := metrics.New()
	env := newTestEnv(t, WithMetrics(m))

	env.do(t, httptest.NewRequest(http.MethodGet, "/healthz", http.NoBody))
	rr := env.do(t, httptest.NewRequest(http.MethodGet, "/metrics", http.NoBody))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `kgingest_http_requests_total{method="GET",path="/healthz",status="200"} 1`)
}

func TestMetricsEndpoint_Disabled(t *testing.T) {
	env := newTestEnv(t)

	rr := env.do(t, httptest.NewRequest(http.MethodGet, "/metrics", http.NoBody))
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestMCPMount(t *testing.T) {
	called := false
	env := newTestEnv(t, WithMCP(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		called = true
		w.WriteHeader(http.StatusAccepted)
	})))

	rr := env.do(t, httptest.NewRequest(http.MethodPost, "/mcp", http.NoBody))

	assert.True(t, called)
	assert.Equal(t, http.StatusAccepted, rr.Code)
}

func TestHandleDomainError(t *testing.T) {
	srv, err := NewServer(Ports{Ingest: services.NewIngestService(nil, nil, nil)})
	require.NoError(t, err)

	tests := []struct {
		err  error
		code int
	}{
		{domain.ErrNotFound, http.StatusNotFound},
		{domain.ErrInvalidInput, http.StatusBadRequest},
		{domain.ErrUnsupportedType, http.StatusUnsupportedMediaType},
		{domain.ErrReadFailed, http.StatusBadRequest},
		{domain.ErrFetchFailed, http.StatusBadGateway},
		{domain.ErrRegistrationFailed, http.StatusInternalServerError},
		{domain.ErrNotImplemented, http.StatusNotImplemented},
		{errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			rr := httptest.NewRecorder()
			srv.handleDomainError(rr, tt.err)
			assert.Equal(t, tt.code, rr.Code)
		})
	}

	rr := httptest.NewRecorder()
	srv.handleDomainError(rr, errors.New("secret detail"))
	assert.NotContains(t, rr.Body.String(), "secret detail")
}

func TestRecoverer(t *testing.T) {
	h := jsonRecoverer(noopLogger())(http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {
		panic("boom")
	}))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", http.NoBody))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Equal(t, codeInternal, decode[errorResponse](t, rr).Code)
}

func noopLogger() *zap.Logger { return zap.NewNop() }
