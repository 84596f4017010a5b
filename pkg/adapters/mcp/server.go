// Package mcp exposes the orchestrator as a Model Context Protocol server,
// so agent hosts can classify and dispatch requests as tools.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/batuta-io/batuta/internal/runtime"
	"github.com/batuta-io/batuta/pkg/session"
)

// Engine defines what the MCP tools need from the orchestrator.
type Engine interface {
	Handle(ctx context.Context, sessionID, userID, message string) (*runtime.Response, error)
	Classify(message string) string
	Workflows() []string
	Sessions() *session.Manager
}

// ClassifyResponse is the structured result of the classify_request tool.
type ClassifyResponse struct {
	Workflow string `json:"workflow" jsonschema_description:"The workflow the message routes to"`
}

// Server wraps the engine and exposes it over MCP.
type Server struct {
	engine    Engine
	mcpServer *server.MCPServer
}

// NewServer creates an MCP server for the engine.
func NewServer(engine Engine, version string) *Server {
	s := &Server{
		engine:    engine,
		mcpServer: server.NewMCPServer("batuta-mcp", version),
	}
	s.registerTools()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE and blocks until
// the context is canceled or the listener fails.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	sseServer := server.NewSSEServer(s.mcpServer,
		server.WithBaseURL(fmt.Sprintf("http://localhost:%d", port)))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{Addr: addr, Handler: mux}

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
	// TOOL: handle_request
	handleTool := mcp.NewTool("handle_request",
		mcp.WithDescription("Classify a free-form request, execute the matching workflow, and return the reply."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Session the request belongs to; state accumulates per session")),
		mcp.WithString("user_id", mcp.Description("User the session belongs to (optional)")),
		mcp.WithString("message", mcp.Required(), mcp.Description("The free-form request text")),
		mcp.WithOutputSchema[runtime.Response](),
	)
	s.mcpServer.AddTool(handleTool, mcp.NewStructuredToolHandler(s.handleRequest))

	// TOOL: classify_request
	classifyTool := mcp.NewTool("classify_request",
		mcp.WithDescription("Report which workflow a message would route to, without executing anything."),
		mcp.WithString("message", mcp.Required(), mcp.Description("The free-form request text")),
		mcp.WithOutputSchema[ClassifyResponse](),
	)
	s.mcpServer.AddTool(classifyTool, mcp.NewStructuredToolHandler(s.handleClassify))

	// TOOL: list_workflows
	s.mcpServer.AddTool(mcp.NewTool("list_workflows",
		mcp.WithDescription("List the registered workflow names."),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		jsonBytes, _ := json.Marshal(s.engine.Workflows())
		return mcp.NewToolResultText(string(jsonBytes)), nil
	})

	// TOOL: inspect_session
	s.mcpServer.AddTool(mcp.NewTool("inspect_session",
		mcp.WithDescription("Return the shared state of a session for introspection."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("The session to inspect")),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		sessionID, err := request.RequireString("session_id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		state, err := s.engine.Sessions().Load(ctx, sessionID)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("load failed: %v", err)), nil
		}

		jsonBytes, _ := json.Marshal(state)
		return mcp.NewToolResultText(string(jsonBytes)), nil
	})
}

func (s *Server) handleRequest(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (runtime.Response, error) {
	sessionID, _ := args["session_id"].(string)
	userID, _ := args["user_id"].(string)
	message, _ := args["message"].(string)

	if sessionID == "" {
		return runtime.Response{}, fmt.Errorf("session_id is required")
	}

	resp, err := s.engine.Handle(ctx, sessionID, userID, message)
	if err != nil {
		return runtime.Response{}, fmt.Errorf("handle failed: %w", err)
	}
	return *resp, nil
}

func (s *Server) handleClassify(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (ClassifyResponse, error) {
	message, _ := args["message"].(string)
	return ClassifyResponse{Workflow: s.engine.Classify(message)}, nil
}
