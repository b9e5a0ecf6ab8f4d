package httpapi_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitaehq/converse"
	"github.com/vitaehq/converse/pkg/adapters/httpapi"
	"github.com/vitaehq/converse/pkg/adapters/memory"
	"github.com/vitaehq/converse/pkg/definition"
	"github.com/vitaehq/converse/pkg/observability"
	"github.com/vitaehq/converse/pkg/session"
)

const testFlow = `{
  "id": "api-test",
  "name": "API Test",
  "version": "1.0.0",
  "nodes": [
    {"id": "s", "type": "start", "data": {}},
    {"id": "q", "type": "question", "data": {
      "text": "Your name?",
      "variableName": "name",
      "validation": [{"type": "required", "message": "name required"}]
    }},
    {"id": "e", "type": "end", "data": {"message": "Hello {{name}}!"}}
  ],
  "edges": [
    {"id": "e1", "source": "s", "target": "q"},
    {"id": "e2", "source": "q", "target": "e"}
  ]
}`

type sessionResponse struct {
	SessionID    string `json:"sessionId"`
	Status       string `json:"status"`
	IsComplete   bool   `json:"isComplete"`
	NextQuestion *struct {
		ID   string `json:"id"`
		Text string `json:"text"`
	} `json:"nextQuestion"`
	Messages []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"messages"`
	Variables map[string]string `json:"variables"`
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	def, err := definition.Parse([]byte(testFlow))
	require.NoError(t, err)
	eng, err := converse.New(def)
	require.NoError(t, err)

	svc := session.NewService(eng, session.NewManager(memory.NewStore()))
	handler, err := httpapi.NewHandler(svc)
	require.NoError(t, err)

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func postJSON(t *testing.T, url string, body any) *http.Response {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := http.Post(url, "application/json", bytes.NewReader(data))
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

func TestSessionLifecycle(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Post(srv.URL+"/sessions", "application/json", nil)
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decode[sessionResponse](t, resp)
	require.NotEmpty(t, created.SessionID)
	require.NotNil(t, created.NextQuestion)
	assert.Equal(t, "Your name?", created.NextQuestion.Text)
	assert.Equal(t, "awaiting-answer", created.Status)

	resp = postJSON(t, fmt.Sprintf("%s/sessions/%s/respond", srv.URL, created.SessionID), map[string]string{"answer": "Ada"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	answered := decode[sessionResponse](t, resp)
	assert.True(t, answered.IsComplete)
	assert.Equal(t, "Ada", answered.Variables["name"])

	var contents []string
	for _, m := range answered.Messages {
		contents = append(contents, m.Content)
	}
	assert.Contains(t, contents, "Hello Ada!")

	// Completed sessions reject further answers.
	resp = postJSON(t, fmt.Sprintf("%s/sessions/%s/respond", srv.URL, created.SessionID), map[string]string{"answer": "again"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	resp.Body.Close()
}

func TestValidationFailureReasks(t *testing.T) {
	srv := newTestServer(t)

	created := decode[sessionResponse](t, postJSON(t, srv.URL+"/sessions", nil))

	resp := postJSON(t, fmt.Sprintf("%s/sessions/%s/respond", srv.URL, created.SessionID), map[string]string{"answer": "  "})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	reasked := decode[sessionResponse](t, resp)
	assert.False(t, reasked.IsComplete)
	require.NotNil(t, reasked.NextQuestion)
	assert.Equal(t, "q", reasked.NextQuestion.ID)
}

func TestGetResetDelete(t *testing.T) {
	srv := newTestServer(t)
	created := decode[sessionResponse](t, postJSON(t, srv.URL+"/sessions", nil))
	base := fmt.Sprintf("%s/sessions/%s", srv.URL, created.SessionID)

	resp, err := http.Get(base)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	got := decode[sessionResponse](t, resp)
	require.NotNil(t, got.NextQuestion)

	// Answer, then reset back to the question.
	postJSON(t, base+"/respond", map[string]string{"answer": "Ada"}).Body.Close()
	resp = postJSON(t, base+"/reset", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	reset := decode[sessionResponse](t, resp)
	assert.False(t, reset.IsComplete)

	req, err := http.NewRequest(http.MethodDelete, base, nil)
	require.NoError(t, err)
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp.Body.Close()

	resp, err = http.Get(base)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestUnknownSessionIs404(t *testing.T) {
	srv := newTestServer(t)
	resp := postJSON(t, srv.URL+"/sessions/nope/respond", map[string]string{"answer": "x"})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestOversizedAnswerIs400(t *testing.T) {
	srv := newTestServer(t)
	created := decode[sessionResponse](t, postJSON(t, srv.URL+"/sessions", nil))

	resp := postJSON(t, fmt.Sprintf("%s/sessions/%s/respond", srv.URL, created.SessionID),
		map[string]string{"answer": strings.Repeat("a", 5000)})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestValidateFlowEndpoint(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Post(srv.URL+"/flows/validate", "application/json", strings.NewReader(testFlow))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	result := decode[struct {
		IsValid bool `json:"isValid"`
	}](t, resp)
	assert.True(t, result.IsValid)

	broken := strings.Replace(testFlow, `"target": "q"`, `"target": "ghost"`, 1)
	resp, err = http.Post(srv.URL+"/flows/validate", "application/json", strings.NewReader(broken))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	result = decode[struct {
		IsValid bool `json:"isValid"`
	}](t, resp)
	assert.False(t, result.IsValid)

	resp, err = http.Post(srv.URL+"/flows/validate", "application/json", strings.NewReader(`{"nodes": [{"id": "x", "type": "teleport"}]}`))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestDocsAndHealthEndpoints(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp, err = http.Get(srv.URL + "/openapi.yaml")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp, err = http.Get(srv.URL + "/swagger")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
}

func TestMetricsEndpoint(t *testing.T) {
	def, err := definition.Parse([]byte(testFlow))
	require.NoError(t, err)

	reg := prometheus.NewRegistry()
	metrics := observability.NewMetrics(reg)

	eng, err := converse.New(def, converse.WithLifecycleHooks(metrics.Hooks()))
	require.NoError(t, err)

	svc := session.NewService(eng, session.NewManager(memory.NewStore()))
	handler, err := httpapi.NewHandler(svc, httpapi.WithMetrics(reg))
	require.NoError(t, err)

	srv := httptest.NewServer(handler)
	defer srv.Close()

	postJSON(t, srv.URL+"/sessions", nil).Body.Close()

	resp, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var buf bytes.Buffer
	_, _ = buf.ReadFrom(resp.Body)
	assert.Contains(t, buf.String(), "converse_node_visits_total")
}
