package main

import (
	"context"

	"github.com/spf13/cobra"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/OpenNHM/AvaScenarioMapper/internal/logging"
	"github.com/OpenNHM/AvaScenarioMapper/internal/mapmcp"
)

var serveFlags struct {
	cfgPath string
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server over stdio",
	Long: `Starts an MCP server over stdin/stdout exposing the scenario tools
(list_scenarios, inspect_directory, run_scenario) to an MCP client.

The server monitors for parent process death and self-terminates when
the client disconnects, to prevent zombie processes.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVarP(&serveFlags.cfgPath, "config", "c", "avascenmapper.yaml", "Path to mapper configuration")
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfigAndLogging(serveFlags.cfgPath)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	mapmcp.WatchParent(ctx, cancel)

	srv := mapmcp.NewServer(cfg)
	logging.New("mcp").Info("starting avascenmapper MCP server over stdio (parent watchdog active)")
	return srv.MCPServer.Run(ctx, &sdkmcp.StdioTransport{})
}
