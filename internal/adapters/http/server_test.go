package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/batuta-io/batuta/internal/adapters/document"
	"github.com/batuta-io/batuta/internal/adapters/jira"
	"github.com/batuta-io/batuta/internal/adapters/script"
	"github.com/batuta-io/batuta/internal/metrics"
	"github.com/batuta-io/batuta/internal/runtime"
	"github.com/batuta-io/batuta/internal/workflows"
	"github.com/batuta-io/batuta/pkg/adapters/memory"
	"github.com/batuta-io/batuta/pkg/classifier"
	"github.com/batuta-io/batuta/pkg/domain"
	"github.com/batuta-io/batuta/pkg/pipeline"
	"github.com/batuta-io/batuta/pkg/ports"
	"github.com/batuta-io/batuta/pkg/schema"
	"github.com/batuta-io/batuta/pkg/session"
)

type noopAnalyzer struct{}

func (noopAnalyzer) Clone(ctx context.Context, url, branch string) (*ports.CloneResult, error) {
	return &ports.CloneResult{LocalPath: "/tmp/work", Branch: branch, CommitHash: "abc123"}, nil
}

func (noopAnalyzer) Diff(ctx context.Context, localPath, since string) (*schema.GitAnalysis, error) {
	return &schema.GitAnalysis{Summary: "no changes"}, nil
}

func (noopAnalyzer) Cleanup(localPath string) error { return nil }

func newTestHandler(t *testing.T) http.Handler {
	t.Helper()

	reg := pipeline.NewRegistry()
	require.NoError(t, workflows.Register(reg, workflows.Deps{
		Git:       noopAnalyzer{},
		Tickets:   jira.NewClient(),
		Documents: document.NewExtractor(),
		Scripts:   script.NewGenerator(),
	}))

	engine, err := runtime.New(classifier.New(), reg, session.NewManager(memory.NewStore()))
	require.NoError(t, err)

	return NewHandler(engine, WithMetricsHandler(metrics.NewCollector().Handler()))
}

func postJSON(t *testing.T, h http.Handler, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw)))
	return rec
}

func TestChat(t *testing.T) {
	h := newTestHandler(t)

	rec := postJSON(t, h, "/chat", chatRequest{
		SessionID: "sess-1",
		UserID:    "user-1",
		Message:   "hello",
	})

	require.Equal(t, http.StatusOK, rec.Code)

	var resp runtime.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "sess-1", resp.SessionID)
	assert.Equal(t, classifier.WorkflowGeneral, resp.Workflow)
	assert.Equal(t, domain.PhaseCompleted, resp.Phase)
	assert.NotEmpty(t, resp.Reply)
}

func TestChat_BadRequests(t *testing.T) {
	h := newTestHandler(t)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/chat", bytes.NewReader([]byte("{"))))
	assert.Equal(t, http.StatusBadRequest, rec.Code, "malformed JSON")

	rec = postJSON(t, h, "/chat", chatRequest{Message: "hello"})
	assert.Equal(t, http.StatusBadRequest, rec.Code, "missing session_id")

	rec = postJSON(t, h, "/chat", chatRequest{SessionID: "s", Message: "   "})
	assert.Equal(t, http.StatusBadRequest, rec.Code, "blank message")
}

func TestClassifyEndpoint(t *testing.T) {
	h := newTestHandler(t)

	rec := postJSON(t, h, "/classify", classifyRequest{Message: "analyze my git repo changes"})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp classifyResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, classifier.WorkflowGitAnalysis, resp.Workflow)
}

func TestListWorkflows(t *testing.T) {
	h := newTestHandler(t)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/workflows", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var names []string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &names))
	assert.Len(t, names, 9)
}

func TestSessionLifecycle(t *testing.T) {
	h := newTestHandler(t)

	// No sessions yet.
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/sessions", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())

	rec = postJSON(t, h, "/chat", chatRequest{SessionID: "sess-1", UserID: "u", Message: "hello"})
	require.Equal(t, http.StatusOK, rec.Code)

	// Inspect.
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/sessions/sess-1", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var state domain.State
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &state))
	assert.Equal(t, "u", state.UserID)
	assert.Equal(t, classifier.WorkflowGeneral, state.Workflow)

	// Delete, then the session is gone.
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/sessions/sess-1", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/sessions/sess-1", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteSession_Idempotent(t *testing.T) {
	h := newTestHandler(t)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/sessions/never-existed", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestHealth(t *testing.T) {
	h := newTestHandler(t)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	h := newTestHandler(t)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestOpenAPISpec(t *testing.T) {
	h := newTestHandler(t)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/openapi.yaml", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "openapi: 3.0.3")

	// The embedded document must parse and validate.
	doc, err := LoadSpec(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, doc.Paths.Find("/chat"))
}
