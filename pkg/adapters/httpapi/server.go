// Package httpapi serves flows over a REST transport: session lifecycle,
// answer submission, flow validation and API documentation.
package httpapi

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vitaehq/converse/internal/logging"
	"github.com/vitaehq/converse/internal/sanitize"
	"github.com/vitaehq/converse/pkg/definition"
	"github.com/vitaehq/converse/pkg/domain"
	"github.com/vitaehq/converse/pkg/session"
)

// Server exposes a session service over HTTP.
type Server struct {
	svc    *session.Service
	logger *slog.Logger

	gatherer prometheus.Gatherer
}

// Option configures the Server.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithMetrics mounts a Prometheus /metrics endpoint for the gatherer.
func WithMetrics(g prometheus.Gatherer) Option {
	return func(s *Server) {
		s.gatherer = g
	}
}

// NewHandler builds the HTTP handler. It fails only when the embedded
// OpenAPI document is broken, which is a build defect, not a runtime
// condition.
func NewHandler(svc *session.Service, opts ...Option) (http.Handler, error) {
	if _, err := loadSpec(); err != nil {
		return nil, err
	}

	s := &Server{
		svc:    svc,
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()

	r.Get("/healthz", s.handleHealth)
	r.Post("/flows/validate", s.handleValidateFlow)

	r.Route("/sessions", func(r chi.Router) {
		r.Get("/", s.handleListSessions)
		r.Post("/", s.handleStartSession)
		r.Get("/{id}", s.handleGetSession)
		r.Delete("/{id}", s.handleDeleteSession)
		r.Post("/{id}/respond", s.handleRespond)
		r.Post("/{id}/reset", s.handleReset)
	})

	r.Get("/openapi.yaml", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/yaml")
		_, _ = w.Write(openapiSpec)
	})
	r.Get("/swagger", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(swaggerHTML))
	})

	if s.gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}

	return enableCORS(r), nil
}

// sessionResponse is the wire shape shared by every session endpoint.
type sessionResponse struct {
	SessionID    string                 `json:"sessionId"`
	Status       domain.ExecutionStatus `json:"status"`
	IsComplete   bool                   `json:"isComplete"`
	Messages     []domain.Message       `json:"messages,omitempty"`
	NextQuestion *questionView          `json:"nextQuestion,omitempty"`
	Variables    map[string]string      `json:"variables,omitempty"`
}

type questionView struct {
	ID      string          `json:"id"`
	Text    string          `json:"text"`
	Options []domain.Option `json:"options,omitempty"`
}

func toResponse(sessionID string, res *domain.ExecutionResult) sessionResponse {
	resp := sessionResponse{
		SessionID:  sessionID,
		Status:     res.State.Status,
		IsComplete: res.IsComplete,
		Messages:   res.Messages,
		Variables:  res.State.Variables,
	}
	if res.NextQuestion != nil {
		view := &questionView{ID: res.NextQuestion.ID}
		if data, ok := res.NextQuestion.Data.(domain.QuestionData); ok {
			view.Text = data.Text
			view.Options = data.Options
		}
		resp.NextQuestion = view
	}
	return resp
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleValidateFlow(w http.ResponseWriter, r *http.Request) {
	var body json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	def, err := definition.Parse(body)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, definition.Validate(def))
}

func (s *Server) handleListSessions(w http.ResponseWriter, r *http.Request) {
	ids, err := s.svc.List(r.Context())
	if err != nil {
		s.serveFailure(w, "list sessions", err)
		return
	}
	if ids == nil {
		ids = []string{}
	}
	s.writeJSON(w, http.StatusOK, map[string][]string{"sessions": ids})
}

func (s *Server) handleStartSession(w http.ResponseWriter, r *http.Request) {
	id, res, err := s.svc.Start(r.Context())
	if err != nil {
		s.serveFailure(w, "start session", err)
		return
	}
	s.writeJSON(w, http.StatusCreated, toResponse(id, res))
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	res, err := s.svc.Get(r.Context(), id)
	if err != nil {
		s.serveFailure(w, "get session", err)
		return
	}
	s.writeJSON(w, http.StatusOK, toResponse(id, res))
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.serveFailure(w, "delete session", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleRespond(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var body struct {
		Answer string `json:"answer"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	answer, err := sanitize.Answer(body.Answer)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	res, err := s.svc.Respond(r.Context(), id, answer)
	if err != nil {
		s.serveFailure(w, "respond", err)
		return
	}
	s.writeJSON(w, http.StatusOK, toResponse(id, res))
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	res, err := s.svc.Reset(r.Context(), id)
	if err != nil {
		s.serveFailure(w, "reset session", err)
		return
	}
	s.writeJSON(w, http.StatusOK, toResponse(id, res))
}

// serveFailure maps domain errors onto HTTP statuses.
func (s *Server) serveFailure(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, domain.ErrSessionNotFound):
		s.writeError(w, http.StatusNotFound, "session not found")
	case errors.Is(err, domain.ErrFlowComplete), errors.Is(err, domain.ErrNotAwaitingAnswer):
		s.writeError(w, http.StatusConflict, err.Error())
	default:
		s.logger.Error("request failed", "op", op, "error", err)
		s.writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("response encode failed", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, map[string]string{"error": msg})
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Custom-Header")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

const swaggerHTML = `
<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="utf-8" />
    <meta name="viewport" content="width=device-width, initial-scale=1" />
    <title>Converse API Documentation</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5.11.0/swagger-ui.css" />
</head>
<body>
<div id="swagger-ui"></div>
<script src="https://unpkg.com/swagger-ui-dist@5.11.0/swagger-ui-bundle.js" crossorigin></script>
<script>
    window.onload = () => {
    window.ui = SwaggerUIBundle({
        url: '/openapi.yaml',
        dom_id: '#swagger-ui',
    });
    };
</script>
</body>
</html>
`
