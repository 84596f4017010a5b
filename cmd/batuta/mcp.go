package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/batuta-io/batuta"
	mcpAdapter "github.com/batuta-io/batuta/pkg/adapters/mcp"
	"github.com/batuta-io/batuta/pkg/domain"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the Model Context Protocol server",
	Long: `Exposes the engine as MCP tools (handle_request, classify_request,
list_workflows, inspect_session) over stdio or SSE.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, _, _, err := buildEngine(cmd, domain.LifecycleHooks{})
		if err != nil {
			return err
		}

		srv := mcpAdapter.NewServer(engine, batuta.Version)

		transport, _ := cmd.Flags().GetString("transport")
		switch transport {
		case "stdio":
			return srv.ServeStdio()
		case "sse":
			port, _ := cmd.Flags().GetInt("port")
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return srv.ServeSSE(ctx, port)
		default:
			return fmt.Errorf("unknown transport %q (want stdio or sse)", transport)
		}
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
	mcpCmd.Flags().String("transport", "stdio", "Transport: stdio or sse")
	mcpCmd.Flags().Int("port", 8090, "Port for the SSE transport")
}
