// Package mcp exposes the flow engine to AI agents over the Model
// Context Protocol: sessions as tools, the flow definition as a
// resource.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/vitaehq/converse"
	"github.com/vitaehq/converse/internal/presentation/graph"
	"github.com/vitaehq/converse/internal/sanitize"
	"github.com/vitaehq/converse/pkg/domain"
	"github.com/vitaehq/converse/pkg/session"
)

// QuestionView describes a pending question in tool output.
type QuestionView struct {
	ID      string          `json:"id" jsonschema_description:"Node ID of the pending question"`
	Text    string          `json:"text" jsonschema_description:"Question text with variables interpolated"`
	Options []domain.Option `json:"options,omitempty" jsonschema_description:"Predefined choices, when the question has any"`
}

// SessionResponse is the structured output shared by every session tool.
// It mirrors the REST adapter's wire shape so agents and HTTP clients see
// the same model.
type SessionResponse struct {
	SessionID    string            `json:"sessionId" jsonschema_description:"Session identifier to pass to follow-up calls"`
	Status       string            `json:"status" jsonschema_description:"awaiting-answer, complete or errored"`
	IsComplete   bool              `json:"isComplete" jsonschema_description:"True once the flow reached an end node"`
	Messages     []domain.Message  `json:"messages,omitempty" jsonschema_description:"Transcript entries produced by this call"`
	NextQuestion *QuestionView     `json:"nextQuestion,omitempty" jsonschema_description:"The question awaiting an answer, if any"`
	Variables    map[string]string `json:"variables,omitempty" jsonschema_description:"Collected flow variables"`
}

// Server wraps a session service and exposes it as an MCP server.
type Server struct {
	svc       *session.Service
	def       *domain.FlowDefinition
	mcpServer *server.MCPServer
}

// NewServer creates the MCP adapter for a session service. The definition
// is served as a resource for flow introspection.
func NewServer(svc *session.Service, def *domain.FlowDefinition) *Server {
	s := &Server{
		svc:       svc,
		def:       def,
		mcpServer: server.NewMCPServer("converse-mcp", strings.TrimSpace(converse.Version)),
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	serverErrors := make(chan error, 1)
	go func() {
		slog.Info("MCP server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	startTool := mcp.NewTool("start_session",
		mcp.WithDescription("Start a new conversation session and receive the first question."),
		mcp.WithOutputSchema[SessionResponse](),
	)
	s.mcpServer.AddTool(startTool, mcp.NewStructuredToolHandler(s.handleStartSession))

	respondTool := mcp.NewTool("respond",
		mcp.WithDescription("Submit one user answer to a session. A rejected answer re-asks the same question with the validation message in the transcript."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Session ID from start_session")),
		mcp.WithString("answer", mcp.Required(), mcp.Description("The user's answer text")),
		mcp.WithOutputSchema[SessionResponse](),
	)
	s.mcpServer.AddTool(respondTool, mcp.NewStructuredToolHandler(s.handleRespond))

	getTool := mcp.NewTool("get_session",
		mcp.WithDescription("Inspect a session and re-render its pending question without consuming an answer."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Session ID to inspect")),
		mcp.WithOutputSchema[SessionResponse](),
	)
	s.mcpServer.AddTool(getTool, mcp.NewStructuredToolHandler(s.handleGetSession))

	resetTool := mcp.NewTool("reset_session",
		mcp.WithDescription("Restart a session from the beginning, discarding collected variables."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Session ID to reset")),
		mcp.WithOutputSchema[SessionResponse](),
	)
	s.mcpServer.AddTool(resetTool, mcp.NewStructuredToolHandler(s.handleResetSession))

	s.mcpServer.AddTool(mcp.NewTool("inspect_flow",
		mcp.WithDescription("Get the full flow definition for introspection."),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		jsonBytes, err := json.Marshal(s.def)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("marshal failed: %v", err)), nil
		}
		return mcp.NewToolResultText(string(jsonBytes)), nil
	})

	s.mcpServer.AddTool(mcp.NewTool("flow_graph",
		mcp.WithDescription("Render the flow as a Mermaid diagram for visualization."),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return mcp.NewToolResultText(graph.GenerateMermaid(s.def, nil)), nil
	})
}

func (s *Server) handleStartSession(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (SessionResponse, error) {
	id, res, err := s.svc.Start(ctx)
	if err != nil {
		return SessionResponse{}, fmt.Errorf("start failed: %w", err)
	}
	return toResponse(id, res), nil
}

func (s *Server) handleRespond(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (SessionResponse, error) {
	sessionID, _ := args["session_id"].(string)
	answer, _ := args["answer"].(string)

	clean, err := sanitize.Answer(answer)
	if err != nil {
		slog.Warn("MCP respond: input rejected", "error", err, "size", len(answer))
		return SessionResponse{}, fmt.Errorf("input rejected: %w", err)
	}

	res, err := s.svc.Respond(ctx, sessionID, clean)
	if err != nil && res == nil {
		return SessionResponse{}, fmt.Errorf("respond failed: %w", err)
	}
	if err != nil {
		// Fatal traversal errors still carry the errored state.
		slog.Error("MCP respond: walk failed", "error", err)
	}
	return toResponse(sessionID, res), nil
}

func (s *Server) handleGetSession(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (SessionResponse, error) {
	sessionID, _ := args["session_id"].(string)
	res, err := s.svc.Get(ctx, sessionID)
	if err != nil {
		return SessionResponse{}, fmt.Errorf("get failed: %w", err)
	}
	return toResponse(sessionID, res), nil
}

func (s *Server) handleResetSession(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (SessionResponse, error) {
	sessionID, _ := args["session_id"].(string)
	res, err := s.svc.Reset(ctx, sessionID)
	if err != nil {
		return SessionResponse{}, fmt.Errorf("reset failed: %w", err)
	}
	return toResponse(sessionID, res), nil
}

func (s *Server) registerResources() {
	uri := "converse://flow"
	s.mcpServer.AddResource(mcp.NewResource(uri, "Current Flow Definition",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		jsonBytes, err := json.Marshal(s.def)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal flow: %w", err)
		}

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      uri,
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})
}

func toResponse(sessionID string, res *domain.ExecutionResult) SessionResponse {
	resp := SessionResponse{
		SessionID:  sessionID,
		Status:     string(res.State.Status),
		IsComplete: res.IsComplete,
		Messages:   res.Messages,
		Variables:  res.State.Variables,
	}
	if res.NextQuestion != nil {
		view := &QuestionView{ID: res.NextQuestion.ID}
		if data, ok := res.NextQuestion.Data.(domain.QuestionData); ok {
			view.Text = data.Text
			view.Options = data.Options
		}
		resp.NextQuestion = view
	}
	return resp
}
