package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/cyberx-cli/internal/adapters/driving/mcp"
	"github.com/custodia-labs/cyberx-cli/internal/core/ports/driving"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  `Commands for the Model Context Protocol (MCP) server integration.`,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Run phases 1 to 4, then serve the knowledge base over the Model Context
Protocol until the client disconnects or the process is interrupted.

Tools:
  ask             answer a question (predefined answers first, then RAG)
  knowledge_base  list the knowledge base entries

By default, the server communicates over stdio using JSON-RPC. Progress is
written to stderr so stdout carries only protocol messages.

Use --port to start an HTTP server instead, which enables:
  - Testing with MCP Inspector web UI
  - Remote access via HTTP

The run log is saved when the server stops.

Examples:
  # Stdio mode (default, for desktop assistants)
  cyberx mcp serve

  # HTTP mode (for MCP Inspector, remote access)
  cyberx mcp serve --port 8080`,
	RunE: runMCPServe,
}

func init() {
	mcpServeCmd.Flags().IntP("port", "p", 0, "HTTP port (0 = use stdio)")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	port, err := cmd.Flags().GetInt("port")
	if err != nil {
		return fmt.Errorf("getting port flag: %w", err)
	}

	progress := progressWriter(cmd)
	reporter := NewReporter(progress)

	return withPipeline(cmd, reporter, func(ctx context.Context, run *driving.Run) error {
		defer run.Session.Finish()

		server, err := mcp.NewServer(&mcp.Ports{
			Session: run.Session,
			Entries: run.Entries,
		})
		if err != nil {
			return err
		}

		if port > 0 {
			addr := fmt.Sprintf(":%d", port)
			fmt.Fprintf(progress, "MCP server listening on http://localhost%s\n", addr)
			return server.RunHTTP(ctx, addr)
		}

		return server.Run(ctx)
	})
}
